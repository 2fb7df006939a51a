package engine

import (
	"context"
	"maps"
	"slices"

	"github.com/jawish/lottiegrab/internal/dotlottie"
	"github.com/jawish/lottiegrab/internal/lottie"
)

// processArchive is the .lottie pipeline: re-fetch bytes, validate the
// envelope, decode manifest and entries (with asset inlining), select the
// active entry, shape-gate, commit. Failures abort silently with the
// marker released.
func (e *Engine) processArchive(ctx context.Context, ex Exchange, fp string) {
	defer e.guard.Release(fp)

	data, err := e.fetch.Bytes(ctx, ex.URL, ex.Method)
	if err != nil {
		e.logger.Debug("engine: archive fetch failed", "url", ex.URL, "error", err)
		return
	}

	if err := dotlottie.Validate(data); err != nil {
		e.logger.Debug("engine: invalid archive envelope", "url", ex.URL, "error", err)
		return
	}

	anims, err := dotlottie.Animations(data, true)
	if err != nil {
		e.logger.Debug("engine: archive entries undecodable", "url", ex.URL, "error", err)
		return
	}
	manifest, err := dotlottie.ReadManifest(data)
	if err != nil {
		e.logger.Debug("engine: archive manifest unreadable", "url", ex.URL, "error", err)
		return
	}

	payload := selectEntry(manifest, anims)
	if payload == nil {
		e.logger.Debug("engine: archive has no usable entry", "url", ex.URL)
		return
	}

	rec, ok := lottie.FromPayload(payload)
	if !ok {
		e.logger.Debug("engine: archive entry failed shape gate", "url", ex.URL)
		return
	}

	e.commit(ctx, ex, fp, rec, true)
}

// selectEntry picks the animation to record: the manifest's active
// animation when named, else the first manifest-listed one, else the first
// entry in lexicographic order. A named-but-absent entry yields nil.
func selectEntry(m *dotlottie.Manifest, anims map[string]map[string]any) map[string]any {
	if m != nil && len(m.Animations) > 0 {
		if m.ActiveAnimationID != "" {
			return anims[m.ActiveAnimationID]
		}
		return anims[m.Animations[0].ID]
	}
	ids := slices.Sorted(maps.Keys(anims))
	if len(ids) == 0 {
		return nil
	}
	return anims[ids[0]]
}
