package lottiegrab

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jawish/lottiegrab/internal/lottie"
)

func apiServer(t *testing.T) (*Grabber, *httptest.Server) {
	t.Helper()
	g := testGrabber(t)
	r := chi.NewRouter()
	g.RegisterHTTP(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return g, srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestAPI_ListAnimations(t *testing.T) {
	g, srv := apiServer(t)
	seedRecord(t, g, "tab1-100", "tab1")
	seedRecord(t, g, "tab2-200", "tab2")

	var resp struct {
		Animations []lottie.Record `json:"animations"`
	}
	status := getJSON(t, srv.URL+"/v1/animations", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(resp.Animations) != 2 {
		t.Fatalf("got %d animations, want 2", len(resp.Animations))
	}

	status = getJSON(t, srv.URL+"/v1/animations?session_id=tab1", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(resp.Animations) != 1 || resp.Animations[0].SessionID != "tab1" {
		t.Errorf("scoped list = %+v", resp.Animations)
	}
}

func TestAPI_GetAnimation(t *testing.T) {
	g, srv := apiServer(t)
	seedRecord(t, g, "tab1-100", "tab1")

	var rec lottie.Record
	status := getJSON(t, srv.URL+"/v1/animations/tab1-100", &rec)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if rec.Fingerprint != "tab1-100" || rec.BMVersion != "5.5.2" {
		t.Errorf("record = %+v", rec)
	}

	var errResp map[string]string
	status = getJSON(t, srv.URL+"/v1/animations/missing", &errResp)
	if status != http.StatusNotFound {
		t.Errorf("missing fingerprint status = %d, want 404", status)
	}
}

func TestAPI_SessionCount(t *testing.T) {
	g, srv := apiServer(t)
	seedRecord(t, g, "tab1-100", "tab1")
	seedRecord(t, g, "tab1-200", "tab1")

	var resp struct {
		SessionID string `json:"session_id"`
		Count     int    `json:"count"`
	}
	status := getJSON(t, srv.URL+"/v1/sessions/tab1/count", &resp)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}

	status = getJSON(t, srv.URL+"/v1/sessions/empty/count", &resp)
	if status != http.StatusOK || resp.Count != 0 {
		t.Errorf("empty session: status %d count %d", status, resp.Count)
	}
}

func TestAPI_ClearSession(t *testing.T) {
	g, srv := apiServer(t)
	seedRecord(t, g, "tab1-100", "tab1")
	seedRecord(t, g, "tab2-200", "tab2")

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/sessions/tab1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var list struct {
		Animations []lottie.Record `json:"animations"`
	}
	getJSON(t, srv.URL+"/v1/animations", &list)
	if len(list.Animations) != 1 || list.Animations[0].SessionID != "tab2" {
		t.Errorf("remaining = %+v, want only tab2's record", list.Animations)
	}
}
