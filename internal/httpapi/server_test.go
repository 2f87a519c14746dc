// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/signal"
	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

// fixedAdapter emits one search_growth signal per keyword at a fixed score.
type fixedAdapter struct{ score float64 }

func (a *fixedAdapter) Name() string                 { return "fixed" }
func (a *fixedAdapter) Source() types.SignalSource   { return types.SourceSearchTrend }
func (a *fixedAdapter) SignalType() types.SignalType { return types.SignalSearchGrowth }
func (a *fixedAdapter) Fetch(ctx context.Context, keywords []string, cfg types.SignalsConfig) ([]types.Signal, error) {
	var signals []types.Signal
	for _, kw := range keywords {
		signals = append(signals, types.Signal{
			Keyword: kw, Source: a.Source(), Type: a.SignalType(), Score: a.score,
		})
	}
	return signals, nil
}

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := types.PipelineConfig{}
	cfg.Signals.Keywords = []string{"daily planner", "budget tracker"}
	pipeline := &research.Pipeline{
		Store:    st,
		Adapters: []signal.Adapter{&fixedAdapter{score: 80}},
		Cfg:      cfg,
		Out:      io.Discard,
	}
	creator := &product.Creator{Store: st, Cfg: types.CreationConfig{ProductsDir: t.TempDir()}}
	publisher := publish.NewPublisher(st, types.PublishingConfig{})

	return New(st, pipeline, creator, publisher), st
}

func doRequest(t *testing.T, s *Server, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestGetResearch_Empty(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/research", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (no runs is not an error)", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"run":null`) {
		t.Errorf("body = %s, want null run", w.Body.String())
	}
}

func TestPostResearchRun_ThenGet(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/research/run", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, s, http.MethodGet, "/api/research", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Items []types.ResearchItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Errorf("got %d items, want 2", len(resp.Items))
	}
}

func TestDeleteItem(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/api/research/run", "")

	w := doRequest(t, s, http.MethodDelete, "/api/research/items/daily%20planner", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	// Deleting again is a 404: the item is already gone.
	w = doRequest(t, s, http.MethodDelete, "/api/research/items/daily%20planner", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteItem_NoRuns(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodDelete, "/api/research/items/anything", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestDeleteLatestRun(t *testing.T) {
	s, _ := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/api/research/run", "")

	w := doRequest(t, s, http.MethodDelete, "/api/research/latest", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"deleted_count":2`) {
		t.Errorf("body = %s, want deleted_count 2", w.Body.String())
	}
}

func TestPostProduct_ExplicitKeyword(t *testing.T) {
	s, st := newTestServer(t)

	w := doRequest(t, s, http.MethodPost, "/api/products", `{"keyword":"habit tracker"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	p, err := st.LatestCreatedProduct(context.Background())
	if err != nil {
		t.Fatalf("LatestCreatedProduct: %v", err)
	}
	if p.Type != "Tracker" {
		t.Errorf("type = %q, want Tracker inferred from keyword", p.Type)
	}
}

func TestPostProduct_NoRuns(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/products", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with no research to build from", w.Code)
	}
}

func TestPostPublish_NoProducts(t *testing.T) {
	s, _ := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/publish", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with nothing to publish", w.Code)
	}
}

func TestGetStatusAndRevenue(t *testing.T) {
	s, st := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	id, err := st.SaveProduct(context.Background(), types.Product{Keyword: "a", Name: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.AddRevenue(context.Background(), id, 9.99); err != nil {
		t.Fatal(err)
	}

	w = doRequest(t, s, http.MethodGet, "/api/revenue", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "9.99") {
		t.Errorf("body = %s, want revenue 9.99", w.Body.String())
	}
}

func TestGetActivity(t *testing.T) {
	s, st := newTestServer(t)
	if err := st.LogActivity(context.Background(), "research-agent", "research_run_started", "run_x"); err != nil {
		t.Fatal(err)
	}

	w := doRequest(t, s, http.MethodGet, "/api/activity", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "research_run_started") {
		t.Errorf("body = %s", w.Body.String())
	}
}
