package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"m2align/internal/align"
	"m2align/internal/cache"
	"m2align/internal/lexicon"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	a, err := align.New()
	if err != nil {
		t.Fatal(err)
	}
	return newTestServerOn(t, miniredis.RunT(t), a)
}

func newTestServerOn(t *testing.T, mr *miniredis.Miniredis, a *align.Aligner) (*Server, *httptest.Server) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := New(a, lexicon.New(client), cache.New(client, time.Hour), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestAlignAnnotatedTokens(t *testing.T) {
	_, ts := newTestServer(t)
	body := `{"orig":[{"text":"a","pos":"DET","lemma":"a"},{"text":"cat","pos":"NOUN","lemma":"cat"},{"text":"sits","pos":"VERB","lemma":"sit"}],
	          "cor":[{"text":"a","pos":"DET","lemma":"a"},{"text":"dog","pos":"NOUN","lemma":"dog"},{"text":"sits","pos":"VERB","lemma":"sit"}]}`
	resp, out := do(t, http.MethodPost, ts.URL+"/api/v1/align", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %v", resp.StatusCode, out)
	}
	edits := out["edits"].([]any)
	if len(edits) != 1 {
		t.Fatalf("edits = %v", edits)
	}
	e := edits[0].(map[string]any)
	if e["category"] != "R:NOUN" || e["correction"] != "dog" || e["o_start"] != float64(1) {
		t.Fatalf("edit = %v", e)
	}
	if m := out["m2"].(string); m != "S a cat sits\nA 1 2|||R:NOUN|||dog|||REQUIRED|||-NONE-|||0\n\n" {
		t.Fatalf("m2 = %q", m)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestAlignBareStringsAndCache(t *testing.T) {
	_, ts := newTestServer(t)
	body := `{"orig":["He","go","to","home"],"cor":["He","goes","home"]}`
	_, first := do(t, http.MethodPost, ts.URL+"/api/v1/align", body)
	edits := first["edits"].([]any)
	if len(edits) != 1 || edits[0].(map[string]any)["category"] != "MORPH" {
		t.Fatalf("edits = %v", edits)
	}
	if first["cached"] != false {
		t.Fatalf("first response cached = %v", first["cached"])
	}
	_, second := do(t, http.MethodPost, ts.URL+"/api/v1/align", body)
	if second["cached"] != true || second["m2"] != first["m2"] {
		t.Fatalf("second = %v", second)
	}
}

func TestSharedCacheSeparatesRuleTables(t *testing.T) {
	mr := miniredis.RunT(t)
	base, err := align.New()
	if err != nil {
		t.Fatal(err)
	}
	noRules, err := base.WithRules(align.RuleTable{})
	if err != nil {
		t.Fatal(err)
	}
	_, withRules := newTestServerOn(t, mr, base)
	_, without := newTestServerOn(t, mr, noRules)

	body := `{"orig":["He","go","to","home"],"cor":["He","goes","home"]}`
	if _, out := do(t, http.MethodPost, withRules.URL+"/api/v1/align", body); len(out["edits"].([]any)) != 1 {
		t.Fatalf("default rules: %v", out)
	}
	_, out := do(t, http.MethodPost, without.URL+"/api/v1/align", body)
	if out["cached"] != false {
		t.Fatalf("empty rule table served a result cached under the default table: %v", out)
	}
	if edits := out["edits"].([]any); len(edits) != 2 {
		t.Fatalf("empty rules: edits = %v", edits)
	}
	if _, out := do(t, http.MethodPost, withRules.URL+"/api/v1/align", body); out["cached"] != true {
		t.Fatalf("default rules second request: %v", out)
	}
}

func TestAlignOptions(t *testing.T) {
	_, ts := newTestServer(t)
	body := `{"orig":["the","cat","big"],"cor":["the","big","cat"],"lev":true,"merge":"all-split"}`
	_, out := do(t, http.MethodPost, ts.URL+"/api/v1/align", body)
	if edits := out["edits"].([]any); len(edits) != 2 {
		t.Fatalf("lev all-split edits = %v", edits)
	}
	_, out = do(t, http.MethodPost, ts.URL+"/api/v1/align", `{"orig":[],"cor":[]}`)
	if edits := out["edits"].([]any); len(edits) != 0 || !strings.Contains(out["m2"].(string), "|||noop|||") {
		t.Fatalf("empty pair = %v", out)
	}
}

func TestAlignBadRequests(t *testing.T) {
	_, ts := newTestServer(t)
	for _, body := range []string{
		`not json`,
		`{"orig":["a"],"cor":["b"],"merge":"sometimes"}`,
		`{"orig":[""],"cor":["b"]}`,
		`{"orig":[42],"cor":["b"]}`,
	} {
		resp, out := do(t, http.MethodPost, ts.URL+"/api/v1/align", body)
		if resp.StatusCode != http.StatusBadRequest || out["error"] == nil {
			t.Errorf("%s: status %d, body %v", body, resp.StatusCode, out)
		}
	}
	if resp, _ := do(t, http.MethodGet, ts.URL+"/api/v1/align", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET align: status %d", resp.StatusCode)
	}
}

func TestFunctionWords(t *testing.T) {
	_, ts := newTestServer(t)
	body := `{"orig":["I","wants","ta","go"],"cor":["I","want","go"]}`
	if _, out := do(t, http.MethodPost, ts.URL+"/api/v1/align", body); len(out["edits"].([]any)) != 2 {
		t.Fatalf("before: %v", out["edits"])
	}

	resp, _ := do(t, http.MethodPost, ts.URL+"/api/v1/function-word", `{"word":"Ta"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add: status %d", resp.StatusCode)
	}
	_, out := do(t, http.MethodPost, ts.URL+"/api/v1/align", body)
	if edits := out["edits"].([]any); len(edits) != 1 || out["cached"] != false {
		t.Fatalf("after add: %v", out)
	}
	_, list := do(t, http.MethodGet, ts.URL+"/api/v1/function-word", "")
	if words := list["words"].([]any); len(words) != 1 || words[0] != "ta" {
		t.Fatalf("list = %v", list)
	}

	if resp, _ := do(t, http.MethodDelete, ts.URL+"/api/v1/function-word/ta", ""); resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d", resp.StatusCode)
	}
	if _, out := do(t, http.MethodPost, ts.URL+"/api/v1/align", body); len(out["edits"].([]any)) != 2 {
		t.Fatalf("after delete: %v", out["edits"])
	}

	if resp, _ := do(t, http.MethodPost, ts.URL+"/api/v1/function-word", `{"word":"  "}`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank word: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodDelete, ts.URL+"/api/v1/function-word/", ""); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing word: status %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodPut, ts.URL+"/api/v1/function-word", ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("PUT: status %d", resp.StatusCode)
	}
}
