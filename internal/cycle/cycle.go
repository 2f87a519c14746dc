// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cycle runs the daily business loop: research trends, create a
// product for the top one, publish it.
// Implements: prd004-products (R4), prd005-publishing (R4);
//
//	docs/ARCHITECTURE § Business Cycle.
package cycle

import (
	"context"
	"fmt"
	"io"

	"github.com/robfig/cron/v3"

	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/pkg/types"
)

// Result summarizes one business cycle for front ends.
type Result struct {
	Research research.RunResult
	Product  types.Product
	// PublishErr records a failed publish step. Publishing failure does
	// not fail the cycle: the product stays in the store as
	// publish_failed and can be retried.
	PublishErr error
}

// Runner executes the three-stage cycle against shared components.
type Runner struct {
	Pipeline  *research.Pipeline
	Creator   *product.Creator
	Publisher *publish.Publisher
	Out       io.Writer
}

// Run performs research, builds a product from the top trend, and
// publishes it. Research and creation failures abort; a publish failure
// is carried in the result instead so the rest of the cycle's work
// survives.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	var res Result
	runResult, err := r.Pipeline.Run(ctx)
	if err != nil {
		return res, fmt.Errorf("research stage: %w", err)
	}
	res.Research = runResult
	if len(runResult.Items) == 0 {
		fmt.Fprintln(out, "cycle finished: no trends found, nothing to create")
		return res, nil
	}

	prod, err := r.Creator.CreateFromLatest(ctx)
	if err != nil {
		return res, fmt.Errorf("creation stage: %w", err)
	}
	res.Product = prod

	published, err := r.Publisher.Publish(ctx, prod)
	res.Product = published
	if err != nil {
		res.PublishErr = err
		fmt.Fprintf(out, "cycle finished with publish failure: %v\n", err)
		return res, nil
	}

	fmt.Fprintf(out, "cycle finished: %d trends, created and published %q\n",
		len(runResult.Items), published.Name)
	return res, nil
}

// Scheduler runs the cycle on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the cycle under spec (standard five-field
// cron). Each firing gets a fresh background context so a hung cycle
// cannot poison later ones via a cancelled parent.
func NewScheduler(spec string, runner *Runner, out io.Writer) (*Scheduler, error) {
	if out == nil {
		out = io.Discard
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := runner.Run(context.Background()); err != nil {
			fmt.Fprintf(out, "scheduled cycle failed: %v\n", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start begins firing scheduled cycles.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the schedule and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
