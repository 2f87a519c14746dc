// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package signal collects raw demand observations from external sources.
// Implements: prd001-signals (R1-R5);
//
//	docs/ARCHITECTURE § Signal Collection.
package signal

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// Adapter fetches raw per-keyword signals from a single external source.
// Each source (trends API, discussion forum, simulated marketplaces)
// implements this interface per the Strategy pattern (R2.1).
//
// Fetch must be cancellable through ctx. A failed or timed-out fetch is
// reported through the error return; the caller substitutes simulated
// signals so the pipeline never stalls (R3.1).
type Adapter interface {
	Name() string
	Source() types.SignalSource
	SignalType() types.SignalType
	Fetch(ctx context.Context, keywords []string, cfg types.SignalsConfig) ([]types.Signal, error)
}

// CollectOutput holds the gathered signals and per-source failure notes.
type CollectOutput struct {
	Signals      []types.Signal
	SourceErrors []string
}

// Collect fans the keyword list out to all adapters and gathers their
// signals. It acts as the synchronization barrier before aggregation:
// it returns only after every adapter has either delivered signals or
// been replaced by its simulated fallback (R3.1-R3.3).
//
// Adapters run concurrently; each one's rate-limit pauses block only its
// own goroutine.
func Collect(ctx context.Context, keywords []string, adapters []Adapter, cfg types.SignalsConfig, w io.Writer) (CollectOutput, error) {
	if len(keywords) == 0 {
		return CollectOutput{}, fmt.Errorf("no keywords to research: configure signals.keywords")
	}
	if len(adapters) == 0 {
		return CollectOutput{}, fmt.Errorf("no signal adapters configured")
	}

	type sourceResult struct {
		adapter Adapter
		signals []types.Signal
		err     error
	}

	ch := make(chan sourceResult, len(adapters))
	var wg sync.WaitGroup

	for _, a := range adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			signals, err := a.Fetch(ctx, keywords, cfg)
			ch <- sourceResult{adapter: a, signals: signals, err: err}
		}(a)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var out CollectOutput
	for sr := range ch {
		if sr.err != nil {
			// Degrade, never abort: substitute simulated signals for the
			// failed source (R3.2).
			out.SourceErrors = append(out.SourceErrors, fmt.Sprintf("%s: %v", sr.adapter.Name(), sr.err))
			fmt.Fprintf(w, "warning: source %s failed, using simulated fallback: %v\n", sr.adapter.Name(), sr.err)
			out.Signals = append(out.Signals, Fallback(sr.adapter, keywords)...)
			continue
		}
		out.Signals = append(out.Signals, sr.signals...)
	}

	return out, nil
}

// fallbackLow and fallbackHigh bound the synthetic score range used when a
// live source is replaced. Matches the historic fallback behaviour (R3.2).
const (
	fallbackLow  = 20
	fallbackHigh = 100
)

// Fallback produces one simulated signal per keyword carrying the failed
// adapter's source and signal type, with scores drawn from a bounded
// synthetic range.
func Fallback(a Adapter, keywords []string) []types.Signal {
	now := time.Now().UTC()
	signals := make([]types.Signal, 0, len(keywords))
	for _, kw := range keywords {
		signals = append(signals, types.Signal{
			Keyword:   kw,
			Source:    a.Source(),
			Type:      a.SignalType(),
			Score:     float64(fallbackLow + rand.Intn(fallbackHigh-fallbackLow+1)),
			Timestamp: now,
			Simulated: true,
		})
	}
	return signals
}

// batches splits keywords into consecutive groups of at most size.
func batches(keywords []string, size int) [][]string {
	if size <= 0 {
		size = 5
	}
	var out [][]string
	for start := 0; start < len(keywords); start += size {
		end := start + size
		if end > len(keywords) {
			end = len(keywords)
		}
		out = append(out, keywords[start:end])
	}
	return out
}

// sleepJitter pauses for a random duration in [min, max], or until ctx is
// cancelled. The pause is a blocking courtesy delay between upstream
// requests, scoped to the calling adapter (R4.2, R4.3).
func sleepJitter(ctx context.Context, min, max time.Duration) error {
	if max <= 0 {
		return nil
	}
	if min < 0 {
		min = 0
	}
	d := min
	if max > min {
		d = min + time.Duration(rand.Int63n(int64(max-min)))
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// clampScore bounds a score to the common [0, 100] scale (R1.3).
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
