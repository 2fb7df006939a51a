package engine

import (
	"context"
	"net/http"
	"strings"
)

// verdict is the router's decision for an exchange.
type verdict int

const (
	skip verdict = iota
	rawCandidate
	archiveCandidate
)

// classify applies the filtering rules in order: status/method, content
// type, fingerprint dedup (committed record or in-flight marker), then the
// URL-substring routing between the two pipelines. The in-flight marker is
// acquired here, for accepted candidates only.
//
// The content-type gate only admits the exchange; the pipeline choice is
// made on the URL alone, independent of which type matched. A qualifying
// response whose URL carries neither ".json" nor ".lottie" (an
// extensionless JSON endpoint, say) is skipped.
func (e *Engine) classify(ctx context.Context, ex Exchange) (verdict, string) {
	if ex.StatusCode != http.StatusOK || ex.Method != http.MethodGet {
		return skip, ""
	}

	ct := headerValue(ex.Headers, "content-type")
	isJSON := strings.HasPrefix(ct, "application/json") || strings.HasPrefix(ct, "text/plain")
	isZip := strings.HasPrefix(ct, "application/zip")
	if !isJSON && !isZip {
		return skip, ""
	}

	fp := Fingerprint(ex.SessionID, ex.URL)
	if e.guard.Has(fp) {
		return skip, ""
	}
	committed, err := e.store.Has(ctx, fp)
	if err != nil {
		e.logger.Warn("engine: dedup lookup failed", "fingerprint", fp, "error", err)
		return skip, ""
	}
	if committed {
		return skip, ""
	}

	switch {
	case strings.Contains(ex.URL, ".json"):
		if !e.guard.TryAcquire(fp) {
			return skip, ""
		}
		return rawCandidate, fp
	case strings.Contains(ex.URL, ".lottie"):
		if !e.guard.TryAcquire(fp) {
			return skip, ""
		}
		return archiveCandidate, fp
	}
	return skip, ""
}
