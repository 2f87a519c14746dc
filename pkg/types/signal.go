// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SignalSource identifies the external system a Signal was observed on.
// Per prd001-signals R1.1.
type SignalSource string

const (
	SourceSearchTrend          SignalSource = "search_trend"
	SourceDiscussion           SignalSource = "discussion"
	SourceSimulatedBuyerIntent SignalSource = "simulated_buyer_intent"
	SourceSimulatedSearch      SignalSource = "simulated_search"
)

// SignalType categorizes what kind of demand a Signal measures.
// Per prd001-signals R1.2.
type SignalType string

const (
	SignalSearchGrowth     SignalType = "search_growth"
	SignalDiscussionVolume SignalType = "discussion_volume"
	SignalBuyerIntent      SignalType = "buyer_intent"
)

// Signal is one raw observation of demand for a keyword from one source.
// Signals are ephemeral: they are consumed by the aggregator and never
// persisted directly.
type Signal struct {
	// Keyword is the product keyword the observation is about.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Source identifies the adapter that produced the observation.
	Source SignalSource `json:"source" yaml:"source"`

	// Type categorizes the observation: search_growth, discussion_volume,
	// or buyer_intent.
	Type SignalType `json:"signal_type" yaml:"signal_type"`

	// Score is the normalized signal strength in [0, 100].
	Score float64 `json:"score" yaml:"score"`

	// Timestamp records when the observation was taken.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Simulated marks observations substituted after a live source failed.
	Simulated bool `json:"simulated,omitempty" yaml:"simulated,omitempty"`
}

// CompositeTrend is the weighted combination of a keyword's per-type
// averaged signal scores. Recomputed each run; projected down to a
// ResearchItem before storage. Per prd002-scoring R2.1-R2.4.
type CompositeTrend struct {
	// Keyword is the normalized (case-folded, trimmed) keyword.
	Keyword string `json:"keyword" yaml:"keyword"`

	// CompositeScore is the fixed-weight average of the per-type scores,
	// with absent types contributing 0.
	CompositeScore float64 `json:"composite_score" yaml:"composite_score"`

	// TypeScores holds the averaged score for each signal type observed.
	TypeScores map[SignalType]float64 `json:"per_type_scores" yaml:"per_type_scores"`

	// Sources lists the distinct sources that contributed observations.
	Sources []SignalSource `json:"contributing_sources" yaml:"contributing_sources"`
}
