package lottie

// Record is the persisted result of a validated animation discovery.
// It is immutable once written; a later successful validation for the same
// fingerprint replaces it wholesale.
type Record struct {
	// ID is a UUIDv7 assigned at commit time, used for time-sorted listings.
	ID string `json:"id"`
	// Fingerprint is the session-scoped identity of the source exchange and
	// the store key.
	Fingerprint string `json:"fingerprint"`
	// SessionID is the owning browsing session (CDP target).
	SessionID string `json:"session_id"`

	BMVersion string  `json:"bm_version"`
	NumLayers int     `json:"num_layers"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FrameRate float64 `json:"frame_rate"`
	// NumFrames is out-point minus in-point, copied without clamping:
	// malformed sources yield negative values and that is preserved.
	NumFrames float64 `json:"num_frames"`

	// Meta is the payload's optional meta object (generator, author,
	// keywords, description), copied verbatim.
	Meta map[string]any `json:"meta,omitempty"`

	// LottieURL is the URL the animation was fetched from.
	LottieURL string `json:"lottie_url"`
	// TabURL is the document URL of the owning tab at discovery time.
	TabURL string `json:"tab_url"`
	// FromArchive distinguishes payloads decoded directly from payloads
	// extracted out of a .lottie archive.
	FromArchive bool `json:"from_archive"`

	// DiscoveredAt is the commit time in unix milliseconds.
	DiscoveredAt int64 `json:"discovered_at"`
}

// FromPayload normalises a decoded animation object into a Record.
// It returns false when the payload fails the shape gate; identity fields
// (ID, Fingerprint, SessionID, URLs, provenance, timestamp) are left for
// the caller to fill.
func FromPayload(p map[string]any) (*Record, bool) {
	if !LooksLike(p) {
		return nil, false
	}

	rec := &Record{
		BMVersion: str(p["v"]),
		Width:     num(p["w"]),
		Height:    num(p["h"]),
		FrameRate: num(p["fr"]),
		NumFrames: num(p["op"]) - num(p["ip"]),
	}
	if layers, ok := p["layers"].([]any); ok {
		rec.NumLayers = len(layers)
	}
	if m, ok := p["meta"].(map[string]any); ok {
		rec.Meta = m
	}
	return rec, true
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
