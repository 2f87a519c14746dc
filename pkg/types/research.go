// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus tracks the lifecycle of a research run. A run is created as
// running and flipped to complete exactly once when the pipeline finishes,
// whether or not it produced items. Per prd003-research-store R1.2.
type RunStatus string

const (
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
)

// ResearchRun records one execution of the research pipeline.
type ResearchRun struct {
	// RunID is an opaque unique identifier. Runs are never deleted; only
	// their items are soft-deleted.
	RunID string `json:"run_id" yaml:"run_id"`

	// CreatedAt is the run's creation instant.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// KeywordCount is the number of items persisted when the run completed.
	KeywordCount int `json:"keyword_count" yaml:"keyword_count"`

	// Status is running until the pipeline finishes, then complete.
	Status RunStatus `json:"status" yaml:"status"`
}

// ResearchItem is one ranked keyword belonging to exactly one run.
// Within a run, (run_id, keyword) is unique among non-deleted items;
// the pipeline's deduplicator enforces this before persistence.
type ResearchItem struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Keyword     string    `json:"keyword" yaml:"keyword"`
	DemandScore float64   `json:"demand_score" yaml:"demand_score"`
	ProductType string    `json:"product_type" yaml:"product_type"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`

	// Deleted is a monotonic soft-delete flag: it only ever flips from
	// false to true.
	Deleted bool `json:"deleted,omitempty" yaml:"deleted,omitempty"`
}

// TrendCategory buckets a keyword by growth behaviour.
// Per prd002-scoring R3.2.
type TrendCategory string

const (
	TrendSpiking  TrendCategory = "spiking"
	TrendEmerging TrendCategory = "emerging"
	TrendStable   TrendCategory = "stable"
)

// ConfidenceLabel grades how trustworthy an enrichment verdict is.
type ConfidenceLabel string

const (
	ConfidenceHigh   ConfidenceLabel = "high"
	ConfidenceMedium ConfidenceLabel = "medium"
	ConfidenceLow    ConfidenceLabel = "low"
)

// Enrichment holds the velocity and confidence estimates computed from a
// keyword's historical demand-score series. Per prd002-scoring R3.1-R3.5.
type Enrichment struct {
	// Velocity is the percentage change between the mean of the second
	// half of the series and the mean of the first half.
	Velocity float64 `json:"velocity" yaml:"velocity"`

	// Category buckets the keyword: spiking, emerging, or stable.
	Category TrendCategory `json:"category" yaml:"category"`

	// ConfidenceScore is in [0, 1], derived from series volatility and
	// signal strength.
	ConfidenceScore float64 `json:"confidence_score" yaml:"confidence_score"`

	// ConfidenceLabel is high (>=0.7), medium (>=0.4), or low.
	ConfidenceLabel ConfidenceLabel `json:"confidence_label" yaml:"confidence_label"`

	// Explanation is a short templated sentence for display only; it is
	// never used for sorting.
	Explanation string `json:"explanation" yaml:"explanation"`
}

// Activity is one row of the append-only activity log.
type Activity struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Agent     string    `json:"agent" yaml:"agent"`
	Action    string    `json:"action" yaml:"action"`
	Result    string    `json:"result" yaml:"result"`
}
