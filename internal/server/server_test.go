package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/raysh454/phishlens/internal/app"
	"github.com/raysh454/phishlens/internal/history"
	"github.com/raysh454/phishlens/internal/model"
	"github.com/raysh454/phishlens/internal/server"
	"github.com/raysh454/phishlens/internal/testutil"
)

// stubChecker answers phishing for URLs containing "evil", trusted for
// "https://www.google.com" and legitimate otherwise.
type stubChecker struct {
	entries []history.Entry
}

func (c *stubChecker) Check(_ context.Context, url string) (*model.CheckResult, error) {
	switch {
	case strings.TrimSpace(url) == "":
		return nil, app.ErrEmptyURL
	case url == "boom":
		return nil, errors.New("classify: model exploded")
	case url == "https://www.google.com":
		return &model.CheckResult{URL: url, Verdict: model.VerdictTrusted}, nil
	case strings.Contains(url, "evil"):
		return &model.CheckResult{
			URL:         url,
			Verdict:     model.VerdictPhishing,
			Importances: c.TopImportances(),
			Explanations: []model.Explanation{{
				Feature: "length_url", Value: 42, CloserTo: model.VerdictPhishing, Mean: 61.2,
				Text: "length_url = 42.00 is closer to phishing (mean: 61.20)",
			}},
		}, nil
	}
	return &model.CheckResult{URL: url, Verdict: model.VerdictLegitimate, Importances: c.TopImportances()}, nil
}

func (c *stubChecker) TopImportances() []model.FeatureImportance {
	return []model.FeatureImportance{
		{Feature: "length_url", Importance: 0.3},
		{Feature: "nb_dots", Importance: 0.15},
	}
}

func (c *stubChecker) History(_ context.Context, limit int) ([]history.Entry, error) {
	if limit < len(c.entries) {
		return c.entries[:limit], nil
	}
	return c.entries, nil
}

func (c *stubChecker) HistoryEntry(_ context.Context, id string) (*history.Entry, error) {
	for i := range c.entries {
		if c.entries[i].ID == id {
			return &c.entries[i], nil
		}
	}
	return nil, history.ErrNotFound
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	checker := &stubChecker{entries: []history.Entry{
		{ID: "b", URL: "http://evil.example", Verdict: model.VerdictPhishing, CreatedAt: time.Now()},
		{ID: "a", URL: "https://www.google.com", Verdict: model.VerdictTrusted, CreatedAt: time.Now().Add(-time.Minute)},
	}}
	s, err := server.NewServer(server.Config{ListenAddr: ":0", Logger: &testutil.DummyLogger{}}, checker)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

// ─── CORS ──────────────────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/importances", "")
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}

	pre := doJSON(t, s, "OPTIONS", "/api/check", "")
	if pre.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", pre.Code)
	}
	if m := pre.Header().Get("Access-Control-Allow-Methods"); m != "POST" {
		t.Errorf("unexpected allowed methods %q", m)
	}
}

// ─── Checks ────────────────────────────────────────────────────────────

func TestServer_Check(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/check", `{"url":"http://evil.example/login"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res model.CheckResult
	decodeJSON(t, rec, &res)
	if res.Verdict != model.VerdictPhishing {
		t.Errorf("expected phishing, got %s", res.Verdict)
	}
	if len(res.Explanations) != 1 || res.Explanations[0].CloserTo != model.VerdictPhishing {
		t.Errorf("unexpected explanations: %+v", res.Explanations)
	}
}

func TestServer_Check_Errors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	cases := []struct {
		body string
		code int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"url":""}`, http.StatusBadRequest},
		{`{"url":"boom"}`, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := doJSON(t, s, "POST", "/api/check", tc.body)
		if rec.Code != tc.code {
			t.Errorf("body %q: expected %d, got %d", tc.body, tc.code, rec.Code)
		}
		var e server.ErrorResponse
		decodeJSON(t, rec, &e)
		if e.Error == "" {
			t.Errorf("body %q: expected error message", tc.body)
		}
	}
}

func TestServer_Importances(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/importances", "")
	var imps []model.FeatureImportance
	decodeJSON(t, rec, &imps)
	if len(imps) != 2 || imps[0].Feature != "length_url" {
		t.Errorf("unexpected importances: %+v", imps)
	}
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/healthz", "")
	var h server.HealthResponse
	decodeJSON(t, rec, &h)
	if rec.Code != http.StatusOK || h.Status != "ok" {
		t.Errorf("unexpected health response %d %+v", rec.Code, h)
	}
}

// ─── History ───────────────────────────────────────────────────────────

func TestServer_History(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/history?limit=1", "")
	var entries []history.Entry
	decodeJSON(t, rec, &entries)
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Errorf("unexpected entries: %+v", entries)
	}

	one := doJSON(t, s, "GET", "/api/history/a", "")
	if one.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", one.Code)
	}
	var e history.Entry
	decodeJSON(t, one, &e)
	if e.Verdict != model.VerdictTrusted {
		t.Errorf("unexpected entry: %+v", e)
	}

	missing := doJSON(t, s, "GET", "/api/history/zzz", "")
	if missing.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", missing.Code)
	}
}

// ─── Page ──────────────────────────────────────────────────────────────

func TestServer_Page(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	empty := doJSON(t, s, "GET", "/", "")
	if empty.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", empty.Code)
	}
	if strings.Contains(empty.Body.String(), "<svg") {
		t.Error("no chart expected without input")
	}

	rec := doJSON(t, s, "GET", "/?url=http://evil.example/login", "")
	body := rec.Body.String()
	for _, want := range []string{"Phishing suspected", "<svg", "length_url", "closer to phishing"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	trusted := doJSON(t, s, "GET", "/?url=https://www.google.com", "")
	if tb := trusted.Body.String(); !strings.Contains(tb, "Trusted site") || strings.Contains(tb, "<svg") {
		t.Error("trusted page should show the badge and no chart")
	}
}

// ─── Swagger ───────────────────────────────────────────────────────────

func TestServer_SwaggerDoc(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var doc map[string]any
	decodeJSON(t, rec, &doc)
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		t.Fatalf("doc has no paths: %v", doc)
	}
	if _, ok := paths["/api/check"]; !ok {
		t.Error("doc missing /api/check")
	}
}

// ─── WebSocket ─────────────────────────────────────────────────────────

func TestServer_CheckWS(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(newTestServer(t))
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/check"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for _, tc := range []struct {
		url  string
		want model.Verdict
	}{
		{"http://evil.example", model.VerdictPhishing},
		{"https://www.google.com", model.VerdictTrusted},
		{"https://example.org", model.VerdictLegitimate},
	} {
		if err := conn.WriteJSON(server.CheckRequest{URL: tc.url}); err != nil {
			t.Fatalf("write: %v", err)
		}
		var res model.CheckResult
		if err := conn.ReadJSON(&res); err != nil {
			t.Fatalf("read: %v", err)
		}
		if res.Verdict != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.url, tc.want, res.Verdict)
		}
	}

	if err := conn.WriteJSON(server.CheckRequest{URL: ""}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var e server.ErrorResponse
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatalf("read: %v", err)
	}
	if e.Error == "" {
		t.Error("expected an error message for empty url")
	}
}

func TestNewServer_NilChecker(t *testing.T) {
	t.Parallel()
	if _, err := server.NewServer(server.Config{}, nil); err == nil {
		t.Error("expected error for nil checker")
	}
}
