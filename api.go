package lottiegrab

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterHTTP registers the read API on a Chi router. The store is
// eventually consistent with the engine; readers may briefly see records a
// navigation is about to clear.
func (g *Grabber) RegisterHTTP(r chi.Router) {
	r.Get("/v1/animations", g.handleList)
	r.Get("/v1/animations/{fingerprint}", g.handleGet)
	r.Get("/v1/sessions/{id}/count", g.handleCount)
	r.Delete("/v1/sessions/{id}", g.handleClear)
}

func (g *Grabber) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		recs, err := g.st.AllForSession(ctx, sessionID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"animations": recs})
		return
	}

	recs, err := g.st.All(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"animations": recs})
}

func (g *Grabber) handleGet(w http.ResponseWriter, r *http.Request) {
	fp := chi.URLParam(r, "fingerprint")

	rec, err := g.st.Get(r.Context(), fp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "animation not found"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (g *Grabber) handleCount(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	n, err := g.st.CountForSession(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session_id": sessionID, "count": n})
}

func (g *Grabber) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if err := g.st.ClearSession(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared", "session_id": sessionID})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
