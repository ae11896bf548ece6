package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
)

func newTestServer(t *testing.T, store cache.Cache) *httptest.Server {
	t.Helper()
	srv := &server{logger: newLogger(io.Discard, log.ErrorLevel), cache: store}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func postRender(t *testing.T, ts *httptest.Server, body string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /render error = %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, string(data)
}

func TestCacheLabel(t *testing.T) {
	tests := []struct {
		name string
		opts serveOpts
		want string
	}{
		{"redis wins", serveOpts{redis: "localhost:6379", cacheDir: "/tmp/c"}, "redis localhost:6379"},
		{"file", serveOpts{cacheDir: "/tmp/c"}, "file /tmp/c"},
		{"disabled", serveOpts{}, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheLabel(&tt.opts); got != tt.want {
				t.Errorf("cacheLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t, cache.NewNullCache())

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestServeRender(t *testing.T) {
	ts := newTestServer(t, cache.NewNullCache())

	resp, body := postRender(t, ts, `{"tree": {"a": [1, 2]}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", resp.StatusCode, http.StatusOK, body)
	}

	want := "map[1]\n" +
		"└─ a ⇒ list[2]\n" +
		"       ├─ 1\n" +
		"       └─ 2\n"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestServeRenderOptions(t *testing.T) {
	ts := newTestServer(t, cache.NewNullCache())

	resp, body := postRender(t, ts, `{"tree": [1, [2]], "options": {"charset": "ascii", "depth": 1, "truncation": false}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %q)", resp.StatusCode, http.StatusOK, body)
	}

	want := "list[2]\n" +
		"+-- 1\n" +
		"\\-- list[1]\n"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestServeRenderMissingTree(t *testing.T) {
	ts := newTestServer(t, cache.NewNullCache())

	resp, body := postRender(t, ts, `{"options": {}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var e errorResponse
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", e.Code)
	}
}

func TestServeRenderBadCharset(t *testing.T) {
	ts := newTestServer(t, cache.NewNullCache())

	resp, body := postRender(t, ts, `{"tree": [1], "options": {"charset": "fancy"}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var e errorResponse
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Code != "INVALID_CHARSET" {
		t.Errorf("code = %q, want INVALID_CHARSET", e.Code)
	}
}

func TestServeRenderCaches(t *testing.T) {
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ts := newTestServer(t, store)

	_, first := postRender(t, ts, `{"tree": {"k": "v"}}`)
	_, second := postRender(t, ts, `{"tree": {"k": "v"}}`)
	if first != second {
		t.Errorf("cached response differs:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(first, "k ⇒ v") {
		t.Errorf("body = %q, want key label", first)
	}
}
