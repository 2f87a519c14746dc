// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate folds raw signals into per-keyword composite trends.
// Implements: prd002-scoring (R1-R2);
//
//	docs/ARCHITECTURE § Scoring.
package aggregate

import (
	"sort"
	"strings"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// Fixed signal-type weights. They sum to 1.0; a type with no observations
// contributes 0 to the weighted sum rather than being excluded, so the
// composite is bounded by [0, weighted max] (R2.2).
var typeWeights = map[types.SignalType]float64{
	types.SignalSearchGrowth:     0.5,
	types.SignalDiscussionVolume: 0.3,
	types.SignalBuyerIntent:      0.2,
}

// FoldKeyword normalizes a keyword for grouping and dedup: case-folded,
// trimmed, interior whitespace collapsed (R1.1).
func FoldKeyword(keyword string) string {
	return strings.Join(strings.Fields(strings.ToLower(keyword)), " ")
}

// accumulator collects same-type observations for one folded keyword.
type accumulator struct {
	keyword string // first-seen spelling, trimmed
	order   int    // insertion order, for stable tie-breaking
	sums    map[types.SignalType]float64
	counts  map[types.SignalType]int
	sources map[types.SignalSource]bool
	srcSeen []types.SignalSource
}

// Aggregate groups signals by folded keyword, averages multiple
// observations of the same signal type, and computes the weighted
// composite score. The result is ordered by composite score descending
// with ties broken by first insertion order; this total order is what
// downstream consumers use to pick the best trend (R2.3, R2.4).
func Aggregate(signals []types.Signal) []types.CompositeTrend {
	byKeyword := make(map[string]*accumulator)
	var order []string

	for _, s := range signals {
		key := FoldKeyword(s.Keyword)
		if key == "" {
			continue
		}
		acc, ok := byKeyword[key]
		if !ok {
			acc = &accumulator{
				keyword: strings.TrimSpace(s.Keyword),
				order:   len(order),
				sums:    make(map[types.SignalType]float64),
				counts:  make(map[types.SignalType]int),
				sources: make(map[types.SignalSource]bool),
			}
			byKeyword[key] = acc
			order = append(order, key)
		}
		acc.sums[s.Type] += s.Score
		acc.counts[s.Type]++
		if !acc.sources[s.Source] {
			acc.sources[s.Source] = true
			acc.srcSeen = append(acc.srcSeen, s.Source)
		}
	}

	trends := make([]types.CompositeTrend, 0, len(order))
	for _, key := range order {
		acc := byKeyword[key]

		typeScores := make(map[types.SignalType]float64, len(acc.sums))
		composite := 0.0
		for st, weight := range typeWeights {
			if acc.counts[st] == 0 {
				continue
			}
			avg := acc.sums[st] / float64(acc.counts[st])
			typeScores[st] = avg
			composite += avg * weight
		}

		trends = append(trends, types.CompositeTrend{
			Keyword:        acc.keyword,
			CompositeScore: composite,
			TypeScores:     typeScores,
			Sources:        acc.srcSeen,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].CompositeScore > trends[j].CompositeScore
	})
	return trends
}
