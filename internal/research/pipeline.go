// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research orchestrates one research run end to end: collect
// signals, aggregate, enrich, classify, persist.
// Implements: prd002-scoring (R4), prd003-research-store (R2-R3);
//
//	docs/ARCHITECTURE § Research Pipeline.
package research

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/trend-engine/internal/aggregate"
	"github.com/pdiddy/trend-engine/internal/enrich"
	"github.com/pdiddy/trend-engine/internal/signal"
	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

// agentName tags activity-log rows written by this pipeline.
const agentName = "research-agent"

// RankedTrend is one keyword's full research result: composite trend,
// enrichment, and the product type it maps to.
type RankedTrend struct {
	Trend       types.CompositeTrend
	Enrichment  types.Enrichment
	ProductType string
}

// RunResult is everything a front end needs to render a finished run.
type RunResult struct {
	RunID        string
	Trends       []RankedTrend
	Items        []types.ResearchItem
	SourceErrors []string
}

// Pipeline wires the research stages to a store and a set of signal
// adapters. Out receives human-readable progress; pass io.Discard to
// silence it.
type Pipeline struct {
	Store    *store.Store
	Adapters []signal.Adapter
	Cfg      types.PipelineConfig
	Out      io.Writer
}

// Run executes one research run. The run record is created first and
// completed last; between the two, signal collection degrades per-source
// to simulated fallbacks, but a store failure while saving items aborts
// without completing the run so the partial write stays visible (R3.2).
// An empty result still completes the run with zero keywords.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	keywords := p.Cfg.Signals.Keywords
	if len(keywords) == 0 {
		return RunResult{}, fmt.Errorf("no keywords to research: configure signals.keywords")
	}
	if len(p.Adapters) == 0 {
		return RunResult{}, fmt.Errorf("no signal adapters configured")
	}

	runID, err := p.Store.CreateRun(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("starting research run: %w", err)
	}
	p.logActivity(ctx, "research_run_started", fmt.Sprintf("run %s, %d keywords", runID, len(keywords)))
	fmt.Fprintf(out, "research run %s: collecting signals for %d keywords\n", runID, len(keywords))

	collected, err := signal.Collect(ctx, keywords, p.Adapters, p.Cfg.Signals, out)
	if err != nil {
		return RunResult{RunID: runID}, fmt.Errorf("collecting signals: %w", err)
	}

	trends := aggregate.Aggregate(collected.Signals)
	trends = Dedupe(trends, func(t types.CompositeTrend) string { return t.Keyword })

	result := RunResult{RunID: runID, SourceErrors: collected.SourceErrors}
	now := time.Now().UTC()
	for _, t := range trends {
		history, err := p.Store.KeywordHistory(ctx, t.Keyword)
		if err != nil {
			return result, fmt.Errorf("loading history for %q: %w", t.Keyword, err)
		}
		series := append(history, t.CompositeScore)
		enrichment := enrich.Enrich(t.Keyword, t.CompositeScore, series)
		productType := Classify(t.Keyword)

		result.Trends = append(result.Trends, RankedTrend{
			Trend:       t,
			Enrichment:  enrichment,
			ProductType: productType,
		})
		result.Items = append(result.Items, types.ResearchItem{
			RunID:       runID,
			Keyword:     t.Keyword,
			DemandScore: t.CompositeScore,
			ProductType: productType,
			Timestamp:   now,
		})
	}

	if err := p.Store.SaveItems(ctx, runID, result.Items); err != nil {
		p.logActivity(ctx, "research_run_failed", fmt.Sprintf("run %s: %v", runID, err))
		return result, fmt.Errorf("saving research items (run %s left running): %w", runID, err)
	}
	if err := p.Store.CompleteRun(ctx, runID, len(result.Items)); err != nil {
		return result, fmt.Errorf("completing run %s: %w", runID, err)
	}

	p.logActivity(ctx, "research_run_completed", fmt.Sprintf("run %s, %d trends", runID, len(result.Items)))
	fmt.Fprintf(out, "research run %s complete: %d trends\n", runID, len(result.Items))
	return result, nil
}

// logActivity is fire-and-forget: activity rows are informational and a
// write failure must not abort the run.
func (p *Pipeline) logActivity(ctx context.Context, action, detail string) {
	_ = p.Store.LogActivity(ctx, agentName, action, detail)
}
