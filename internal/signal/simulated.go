// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// The simulated adapters stand in for marketplaces whose terms of service
// forbid scraping. They estimate demand from keyword heuristics and
// seasonal patterns; their contract is only "a score in [0,100] per
// keyword", not fidelity (R2.4, R2.5).

// seasonalPatterns maps month to keyword fragments that get a seasonal boost.
var seasonalPatterns = map[time.Month][]string{
	time.January:   {"new year", "goal", "resolution", "planner", "budget"},
	time.February:  {"valentine", "love"},
	time.March:     {"spring", "cleaning", "declutter"},
	time.April:     {"easter", "spring", "tax"},
	time.May:       {"mother", "graduation", "spring"},
	time.June:      {"summer", "wedding", "father"},
	time.July:      {"summer", "vacation", "travel"},
	time.August:    {"back to school", "student", "college"},
	time.September: {"fall", "autumn", "organization"},
	time.October:   {"halloween", "fall"},
	time.November:  {"thanksgiving", "gratitude", "holiday prep"},
	time.December:  {"christmas", "holiday", "gift"},
}

// marketplaceHotKeywords are known high-converting listings and their base
// buyer-intent scores.
var marketplaceHotKeywords = []struct {
	keyword string
	score   float64
}{
	{"daily planner", 90},
	{"budget tracker", 88},
	{"habit tracker", 85},
	{"weekly planner", 82},
	{"meal planner", 80},
	{"fitness tracker", 78},
	{"goal planner", 75},
	{"study planner", 73},
	{"digital stickers", 70},
	{"bullet journal", 68},
}

// visualCategories are trending pinboard categories and their base scores.
var visualCategories = []struct {
	category string
	score    float64
}{
	{"productivity", 85},
	{"organization", 82},
	{"minimalist", 78},
	{"aesthetic", 75},
	{"self care", 72},
	{"wellness", 70},
}

var aestheticTerms = []string{"minimalist", "aesthetic", "cute", "boho", "modern", "pastel"}

// BuyerIntentAdapter simulates marketplace buyer-intent signals in the
// style of Etsy search conversion data.
type BuyerIntentAdapter struct {
	// Now lets tests pin the month for seasonal boosts; defaults to time.Now.
	Now func() time.Time
}

func (a *BuyerIntentAdapter) Name() string                 { return "simulated-buyer-intent" }
func (a *BuyerIntentAdapter) Source() types.SignalSource   { return types.SourceSimulatedBuyerIntent }
func (a *BuyerIntentAdapter) SignalType() types.SignalType { return types.SignalBuyerIntent }

func (a *BuyerIntentAdapter) Fetch(ctx context.Context, keywords []string, cfg types.SignalsConfig) ([]types.Signal, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	ts := now().UTC()
	seasonal := seasonalPatterns[ts.Month()]

	signals := make([]types.Signal, 0, len(keywords))
	for _, kw := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		folded := strings.ToLower(strings.TrimSpace(kw))

		base := 0.0
		for _, hot := range marketplaceHotKeywords {
			if strings.Contains(folded, hot.keyword) || strings.Contains(hot.keyword, folded) {
				base = hot.score
				break
			}
		}
		if base == 0 {
			base = float64(30 + rand.Intn(31))
		}

		multiplier := 1.0
		for _, s := range seasonal {
			if strings.Contains(folded, s) {
				multiplier = 1.2
				break
			}
		}

		// Templates and trackers convert better than generic listings.
		switch {
		case containsAny(folded, "template", "printable", "spreadsheet"):
			multiplier *= 1.15
		case containsAny(folded, "tracker", "planner", "journal"):
			multiplier *= 1.1
		}

		signals = append(signals, types.Signal{
			Keyword:   kw,
			Source:    types.SourceSimulatedBuyerIntent,
			Type:      types.SignalBuyerIntent,
			Score:     clampScore(math.Round(base * multiplier)),
			Timestamp: ts,
			Simulated: true,
		})
	}
	return signals, nil
}

// SearchGrowthAdapter simulates visual-platform search signals in the
// style of Pinterest category trends.
type SearchGrowthAdapter struct {
	Now func() time.Time
}

func (a *SearchGrowthAdapter) Name() string                 { return "simulated-search" }
func (a *SearchGrowthAdapter) Source() types.SignalSource   { return types.SourceSimulatedSearch }
func (a *SearchGrowthAdapter) SignalType() types.SignalType { return types.SignalSearchGrowth }

func (a *SearchGrowthAdapter) Fetch(ctx context.Context, keywords []string, cfg types.SignalsConfig) ([]types.Signal, error) {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	ts := now().UTC()
	seasonal := seasonalPatterns[ts.Month()]

	signals := make([]types.Signal, 0, len(keywords))
	for _, kw := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		folded := strings.ToLower(strings.TrimSpace(kw))

		base := 0.0
		for _, cat := range visualCategories {
			if strings.Contains(folded, cat.category) && cat.score > base {
				base = cat.score
			}
		}
		if base == 0 {
			base = float64(35 + rand.Intn(31))
		}

		if containsAny(folded, aestheticTerms...) {
			base += 15
		}

		multiplier := 1.0
		for _, s := range seasonal {
			if strings.Contains(folded, s) {
				multiplier = 1.15
				break
			}
		}

		signals = append(signals, types.Signal{
			Keyword:   kw,
			Source:    types.SourceSimulatedSearch,
			Type:      types.SignalSearchGrowth,
			Score:     clampScore(math.Round(base * multiplier)),
			Timestamp: ts,
			Simulated: true,
		})
	}
	return signals, nil
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
