package adminhttp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pkt.systems/gatelog"
	"pkt.systems/gatelog/adminhttp"
	"pkt.systems/gatelog/sink/recorder"
)

type fixture struct {
	core    *gatelog.Core
	network *gatelog.Category
	admin   *gatelog.Category
	rec     *recorder.Recorder
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		core:    gatelog.NewCore(gatelog.WithMaxLevel(gatelog.LevelTrace)),
		network: gatelog.NewCategory("Network", gatelog.LevelInfo),
		admin:   gatelog.NewCategory("Admin", gatelog.LevelInfo),
		rec:     recorder.New("console", recorder.WithFormat(gatelog.FormatMessageOnly)),
	}
	if err := f.core.Init([]*gatelog.Category{f.network, f.admin}, []*gatelog.Sink{f.rec.Sink()}); err != nil {
		t.Fatalf("init: %v", err)
	}
	f.handler = adminhttp.New(f.core, adminhttp.WithAudit(f.admin))
	return f
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" && strings.HasPrefix(body, "{") {
		req.Header.Set("Content-Type", "application/json")
	}
	h.ServeHTTP(w, req)
	return w
}

func TestListCategories(t *testing.T) {
	f := newFixture(t)
	w := do(f.handler, http.MethodGet, "/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body)
	}
	var got []adminhttp.Threshold
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Network" || got[0].Level != gatelog.LevelInfo {
		t.Fatalf("unexpected categories %+v", got)
	}
	if !strings.Contains(w.Body.String(), `"level":"INFO"`) {
		t.Fatalf("levels should be rendered by name, got %s", w.Body)
	}
}

func TestPutCategory(t *testing.T) {
	f := newFixture(t)
	w := do(f.handler, http.MethodPut, "/categories/Network", `{"level":"debug"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body)
	}
	if f.network.Level() != gatelog.LevelDebug {
		t.Fatalf("threshold not applied, got %s", f.network.Level())
	}
	found := false
	for _, msg := range f.rec.Messages() {
		if msg == "category Network threshold set to DEBUG" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected audit message, got %v", f.rec.Messages())
	}
}

func TestPutCategoryErrors(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		path   string
		body   string
		status int
		result string
	}{
		{"/categories/Radio", `{"level":"debug"}`, http.StatusNotFound, "INVALID_PARAMETER"},
		{"/categories/Network", `{"level":"loud"}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"/categories/Network", `{}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"/categories/Network", `{"level":"test"}`, http.StatusBadRequest, "INVALID_PARAMETER"},
		{"/sinks/uart", `{"level":"info"}`, http.StatusNotFound, "INVALID_PARAMETER"},
	}
	for _, tc := range cases {
		w := do(f.handler, http.MethodPut, tc.path, tc.body)
		if w.Code != tc.status {
			t.Fatalf("%s %s: status %d want %d (%s)", tc.path, tc.body, w.Code, tc.status, w.Body)
		}
		var resp adminhttp.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Result != tc.result || resp.Error == "" {
			t.Fatalf("%s: unexpected error body %+v", tc.path, resp)
		}
	}
	if f.network.Level() != gatelog.LevelInfo {
		t.Fatalf("rejected requests must not change thresholds")
	}
}

func TestPutSinkAndLevels(t *testing.T) {
	f := newFixture(t)
	if w := do(f.handler, http.MethodPut, "/sinks/console", `{"level":"error"}`); w.Code != http.StatusOK {
		t.Fatalf("sink update failed %d: %s", w.Code, w.Body)
	}
	if f.rec.Sink().Level() != gatelog.LevelError {
		t.Fatalf("sink threshold not applied")
	}
	w := do(f.handler, http.MethodPut, "/levels", `{"level":"warn"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("levels update failed %d: %s", w.Code, w.Body)
	}
	if f.network.Level() != gatelog.LevelWarn || f.admin.Level() != gatelog.LevelWarn {
		t.Fatalf("bulk update not applied")
	}
	w = do(f.handler, http.MethodGet, "/sinks/console", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"level":"ERROR"`) {
		t.Fatalf("unexpected sink view %d: %s", w.Code, w.Body)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	f := newFixture(t)
	w := do(f.handler, http.MethodPut, "/config", "categories:\n  Network: trace\nsinks:\n  console: debug\n")
	if w.Code != http.StatusOK {
		t.Fatalf("config apply failed %d: %s", w.Code, w.Body)
	}
	if f.network.Level() != gatelog.LevelTrace || f.rec.Sink().Level() != gatelog.LevelDebug {
		t.Fatalf("config not applied")
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/yaml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Network: trace") {
		t.Fatalf("unexpected config body:\n%s", w.Body)
	}

	w = do(f.handler, http.MethodPut, "/config", "categories:\n  Radio: debug\n")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", w.Code)
	}
}

func TestUninitializedCoreConflicts(t *testing.T) {
	h := adminhttp.New(gatelog.NewCore())
	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/categories", ""},
		{http.MethodGet, "/sinks/console", ""},
		{http.MethodPut, "/categories/Network", `{"level":"info"}`},
		{http.MethodPut, "/levels", `{"level":"info"}`},
		{http.MethodGet, "/config", ""},
	} {
		w := do(h, req.method, req.path, req.body)
		if w.Code != http.StatusConflict {
			t.Fatalf("%s %s: status %d want 409", req.method, req.path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "NOT_INITIALIZED") {
			t.Fatalf("%s %s: unexpected body %s", req.method, req.path, w.Body)
		}
	}
}

func TestRequestLogging(t *testing.T) {
	f := newFixture(t)
	f.admin.SetLevel(gatelog.LevelDebug)
	do(f.handler, http.MethodGet, "/sinks", "")
	messages := f.rec.Messages()
	if len(messages) == 0 || messages[len(messages)-1] != "admin GET /sinks -> 200" {
		t.Fatalf("unexpected request log %v", messages)
	}
}
