// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

func newTestPublisher(t *testing.T, apiURL string) (*Publisher, *store.Store) {
	t.Helper()
	st, err := store.Open(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	old := pinterestAPIBase
	pinterestAPIBase = apiURL
	t.Cleanup(func() { pinterestAPIBase = old })

	p := NewPublisher(st, types.PublishingConfig{
		BoardID:       "board123",
		AccessToken:   "token456",
		MaxRetries:    1,
		PinsPerMinute: 6000, // effectively unlimited for tests
	})
	return p, st
}

func saveProduct(t *testing.T, st *store.Store) types.Product {
	t.Helper()
	p := types.Product{
		Keyword: "budget tracker",
		Name:    "Budget Tracker",
		Type:    "Tracker",
		Link:    "products/budget-tracker.csv",
		Status:  types.ProductCreated,
	}
	id, err := st.SaveProduct(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	p.ID = id
	return p
}

func TestPublish_Success(t *testing.T) {
	var gotPin pinRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pins" {
			t.Errorf("path = %s, want /pins", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token456" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPin); err != nil {
			t.Errorf("decoding pin request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"pin789"}`))
	}))
	defer ts.Close()

	pub, st := newTestPublisher(t, ts.URL)
	prod := saveProduct(t, st)

	published, err := pub.Publish(context.Background(), prod)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.Status != types.ProductPublished {
		t.Errorf("status = %s, want published", published.Status)
	}
	if gotPin.BoardID != "board123" || gotPin.Title != "Budget Tracker" {
		t.Errorf("pin = %+v", gotPin)
	}
	if !strings.Contains(gotPin.Description, "#budget") {
		t.Errorf("description %q missing keyword hashtags", gotPin.Description)
	}

	// Store reflects the outcome.
	_, err = st.LatestCreatedProduct(context.Background())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("product still unpublished in store: %v", err)
	}
}

func TestPublish_UpstreamFailureMarksProduct(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid board"}`))
	}))
	defer ts.Close()

	pub, st := newTestPublisher(t, ts.URL)
	prod := saveProduct(t, st)

	published, err := pub.Publish(context.Background(), prod)
	if err == nil {
		t.Fatal("expected error on HTTP 400")
	}
	if published.Status != types.ProductPublishFailed {
		t.Errorf("status = %s, want publish_failed", published.Status)
	}

	// The failed product stays in the store for retry inspection.
	all, err := st.Products(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Status != types.ProductPublishFailed {
		t.Errorf("stored products = %+v", all)
	}
}

func TestPublishLatest_NoProducts(t *testing.T) {
	pub, _ := newTestPublisher(t, "http://unused.invalid")
	_, err := pub.PublishLatest(context.Background())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPublish_MissingCredentials(t *testing.T) {
	st, err := store.Open(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	pub := NewPublisher(st, types.PublishingConfig{})
	if _, err := pub.Publish(context.Background(), types.Product{ID: 1}); err == nil {
		t.Error("expected error without credentials")
	}
}

func TestPinDescription(t *testing.T) {
	got := pinDescription(types.Product{
		Keyword: "meal planner",
		Name:    "Meal Planner",
		Type:    "Planner",
	})
	for _, want := range []string{"#meal", "#planner", "#printable", "Meal Planner"} {
		if !strings.Contains(got, want) {
			t.Errorf("description %q missing %q", got, want)
		}
	}
}
