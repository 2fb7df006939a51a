package engine

import (
	"context"

	"github.com/jawish/lottiegrab/internal/lottie"
)

// processRaw is the direct-payload pipeline: re-fetch, JSON-decode, shape
// gate, commit. Every failure is a silent abort: the marker is released
// and no record is written.
func (e *Engine) processRaw(ctx context.Context, ex Exchange, fp string) {
	defer e.guard.Release(fp)

	v, err := e.fetch.JSON(ctx, ex.URL, ex.Method)
	if err != nil {
		e.logger.Debug("engine: raw fetch failed", "url", ex.URL, "error", err)
		return
	}

	obj, ok := v.(map[string]any)
	if !ok {
		e.logger.Debug("engine: raw payload not an object", "url", ex.URL)
		return
	}

	rec, ok := lottie.FromPayload(obj)
	if !ok {
		e.logger.Debug("engine: raw payload failed shape gate", "url", ex.URL)
		return
	}

	e.commit(ctx, ex, fp, rec, false)
}
