// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

func TestFormatRun(t *testing.T) {
	result := research.RunResult{
		RunID: "run_abc123",
		Trends: []research.RankedTrend{
			{
				Trend:       types.CompositeTrend{Keyword: "daily planner", CompositeScore: 45},
				Enrichment:  types.Enrichment{Category: types.TrendSpiking, ConfidenceLabel: types.ConfidenceHigh},
				ProductType: "Planner",
			},
			{
				Trend:       types.CompositeTrend{Keyword: "budget tracker", CompositeScore: 20},
				Enrichment:  types.Enrichment{Category: types.TrendStable, ConfidenceLabel: types.ConfidenceMedium},
				ProductType: "Tracker",
			},
		},
		SourceErrors: []string{"trends: connection refused"},
	}

	got := formatRun(result)
	for _, want := range []string{"run_abc123", "daily planner", "45.0", "spiking", "high", "1 sources fell back"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatRun output missing %q:\n%s", want, got)
		}
	}

	// Rank order preserved in the listing.
	if strings.Index(got, "daily planner") > strings.Index(got, "budget tracker") {
		t.Error("trends listed out of rank order")
	}
}

func TestFormatRun_Empty(t *testing.T) {
	got := formatRun(research.RunResult{RunID: "run_x"})
	if !strings.Contains(got, "no trends") {
		t.Errorf("got %q", got)
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("item %q: %w", "kw", store.ErrNotFound), "Nothing found"},
		{fmt.Errorf("opening db: %w", store.ErrUnavailable), "Storage is unavailable"},
		{fmt.Errorf("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		if got := errorText(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("errorText(%v) = %q, want substring %q", tt.err, got, tt.want)
		}
	}
}
