// Package lottie defines the animation record shared by the engine, the
// store, and the presentation surfaces, plus the structural predicate that
// decides whether a decoded payload is a Lottie animation at all.
package lottie

// requiredKeys is the minimal field set a Bodymovin/Lottie document carries:
// version, in-point, out-point, layer list, width, height, frame rate.
var requiredKeys = [...]string{"v", "ip", "op", "layers", "w", "h", "fr"}

// LooksLike reports whether v is a JSON object that structurally resembles
// a Lottie animation. It is a shape gate, not a schema validation: every
// required key must be present, values are not inspected.
func LooksLike(v any) bool {
	obj, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, k := range requiredKeys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}
