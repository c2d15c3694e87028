package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/levels"
	"github.com/oncokb/kbtip/internal/tooltip"
)

const esummaryBody = `{"result": {
  "uids": ["123"],
  "123": {"uid": "123", "title": "T", "authors": [{"name": "Doe J"}], "source": "Nature", "pubdate": "2020"}
}}`

// fakeUpstream serves every reference endpoint and records request URIs.
type fakeUpstream struct {
	*httptest.Server
	mu   sync.Mutex
	uris []string
}

func (f *fakeUpstream) lastURI() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.uris) == 0 {
		return ""
	}
	return f.uris[len(f.uris)-1]
}

func (f *fakeUpstream) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uris)
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeUpstream) {
	t.Helper()

	up := &fakeUpstream{}
	up.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up.mu.Lock()
		up.uris = append(up.uris, r.URL.RequestURI())
		up.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/eutils/"):
			_, _ = io.WriteString(w, esummaryBody)
		case strings.HasSuffix(r.URL.Path, "/genes/"):
			_, _ = io.WriteString(w, `[{"hugoSymbol":"BRAF"}]`)
		case strings.Contains(r.URL.RequestURI(), "missing"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"no such thing"}`)
		default:
			_, _ = io.WriteString(w, `{"ok":true}`)
		}
	}))
	t.Cleanup(up.Close)

	client := api.NewClient(
		api.WithEndpoints(api.Endpoints{
			Public:      up.URL + "/api/v1/",
			Legacy:      up.URL + "/legacy-api/",
			StudiesBase: up.URL + "/api-legacy/studies",
			EUtils:      up.URL + "/eutils/",
		}),
		api.WithHTTPClient(up.Client()),
		api.WithRateLimit(1000),
	)
	table := levels.New(map[string]string{"1": "<b>FDA-recognized</b>", "2A": "Standard care"})
	resolver := tooltip.NewResolver(client, table)

	srv, err := New(client, resolver, table)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, up
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body := decode[map[string]string](t, resp); body["status"] != "healthy" {
		t.Errorf("body = %v", body)
	}
}

func TestResolveTooltip(t *testing.T) {
	ts, up := newTestServer(t)

	tests := []struct {
		name        string
		body        string
		wantContent string
		wantClasses string
		wantFetch   bool
	}{
		{
			name:        "default",
			body:        `{"type":"","content":"plain <i>text</i>"}`,
			wantContent: "plain <i>text</i>",
			wantClasses: tooltip.ClassesEvidence,
		},
		{
			name:        "level by number",
			body:        `{"type":"geneLevel","number":1}`,
			wantContent: "<b>FDA-recognized</b>",
			wantClasses: tooltip.ClassesLevel,
		},
		{
			name:        "unknown level",
			body:        `{"type":"geneLevel","number":"9"}`,
			wantContent: "",
			wantClasses: tooltip.ClassesLevel,
		},
		{
			name:        "evidence",
			body:        `{"type":"geneEvidence","pmids":["123"],"abstracts":[{"abstract":"A","link":"http://x"}]}`,
			wantContent: `href="https://www.ncbi.nlm.nih.gov/pubmed/123"`,
			wantClasses: tooltip.ClassesEvidence,
			wantFetch:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := up.count()
			resp := postJSON(t, ts.URL+"/api/v1/tooltips", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}

			got := decode[tooltipResponse](t, resp)
			if !strings.Contains(got.Content, tt.wantContent) {
				t.Errorf("Content = %q, want it to contain %q", got.Content, tt.wantContent)
			}
			if tt.wantContent == "" && got.Content != "" {
				t.Errorf("Content = %q, want empty", got.Content)
			}
			if got.Classes != tt.wantClasses {
				t.Errorf("Classes = %q, want %q", got.Classes, tt.wantClasses)
			}
			if got.Error != "" {
				t.Errorf("Error = %q", got.Error)
			}
			if got.Options.Position.My != tooltip.DefaultMy {
				t.Errorf("Options.Position.My = %q", got.Options.Position.My)
			}
			if fetched := up.count() > before; fetched != tt.wantFetch {
				t.Errorf("upstream fetched = %v, want %v", fetched, tt.wantFetch)
			}
		})
	}
}

func TestResolveTooltip_BadBody(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/tooltips", `{not json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLevels(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/api/v1/levels/2a")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	got := decode[levelEntry](t, resp)
	if got.Code != "2A" || got.Description != "Standard care" {
		t.Errorf("level = %+v", got)
	}

	if resp := get(t, ts.URL+"/api/v1/levels/R9"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing level status = %d, want 404", resp.StatusCode)
	}

	all := decode[[]levelEntry](t, get(t, ts.URL+"/api/v1/levels"))
	if len(all) != 2 || all[0].Code != "1" || all[1].Code != "2A" {
		t.Errorf("levels = %+v", all)
	}
}

func TestRefProxy(t *testing.T) {
	ts, up := newTestServer(t)

	tests := []struct {
		path    string
		wantURI string
	}{
		{"/api/v1/ref/numbers/main", "/api/v1/numbers/main/"},
		{"/api/v1/ref/numbers/gene/BRAF", "/api/v1/numbers/gene/BRAF"},
		{"/api/v1/ref/search/gene?query=BRA", "/api/v1/search/gene?query=BRA&exactMatch=false"},
		{"/api/v1/ref/search/gene?query=BRAF&exactMatch=true", "/api/v1/search/gene?query=BRAF&exactMatch=true"},
		{"/api/v1/ref/genes/BRAF/summary", "/api/v1/search/evidences?hugoSymbol=BRAF&type=GENE_SUMMARY"},
		{"/api/v1/ref/genes/BRAF/background", "/api/v1/search/evidences?hugoSymbol=BRAF&type=GENE_BACKGROUND"},
		{"/api/v1/ref/genes/BRAF/variants/clinical", "/api/v1/search/variants/clinical?hugoSymbol=BRAF"},
		{"/api/v1/ref/genes/BRAF/variants/biological", "/api/v1/search/variants/biological?hugoSymbol=BRAF"},
		{"/api/v1/ref/genes/BRAF/mutations", "/legacy-api/mutationMapperData?hugoSymbol=BRAF"},
		{"/api/v1/ref/samples", "/legacy-api/portalAlterationSampleCount"},
		{"/api/v1/ref/samples?hugoSymbol=BRAF", "/legacy-api/portalAlterationSampleCount?hugoSymbol=BRAF"},
		{"/api/v1/ref/studies?ids=a,b", "/api-legacy/studies?study_ids=a,b"},
		{"/api/v1/ref/articles?ids=1,2", "/eutils/esummary.fcgi?db=pubmed&retmode=json&id=1,2"},
		{"/api/v1/ref/treatments?level=1", "/legacy-api/evidence.json?levels=1"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := get(t, ts.URL+tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := up.lastURI(); got != tt.wantURI {
				t.Errorf("upstream URI = %q, want %q", got, tt.wantURI)
			}
		})
	}
}

func TestRefProxy_Body(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/api/v1/ref/genes")
	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != `[{"hugoSymbol":"BRAF"}]` {
		t.Errorf("body = %s", body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRefProxy_Unspecified(t *testing.T) {
	ts, up := newTestServer(t)

	for _, path := range []string{"/api/v1/ref/treatments", "/api/v1/ref/numbers/bogus"} {
		resp := get(t, ts.URL+path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, resp.StatusCode)
		}
	}
	if up.count() != 0 {
		t.Errorf("upstream called %d times, want 0", up.count())
	}
}

func TestRefProxy_UpstreamNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/api/v1/ref/genes/missing/summary")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if body := decode[errorBody](t, resp); body.Error == "" {
		t.Error("expected error message")
	}
}

func TestPublications(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := get(t, ts.URL+"/api/v1/ref/publications?ids=123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got []struct {
		UID   string `json:"uid"`
		Title string `json:"title"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].UID != "123" || got[0].Title != "T" {
		t.Errorf("records = %+v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	get(t, ts.URL+"/health")
	resp := get(t, ts.URL+"/metrics")
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "kbtip_http_requests_total") {
		t.Error("metrics output missing kbtip_http_requests_total")
	}
}

func TestCORSPreflight(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/tooltips", nil)
	req.Header.Set("Origin", "http://example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}
