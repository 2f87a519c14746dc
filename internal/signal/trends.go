// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// trendsAPIBase is the search-trend interest endpoint. Declared as a var
// so tests can substitute an httptest server.
var trendsAPIBase = "https://trends-gateway.meshintel.dev/v1/interest"

// trendsBatchLimit is the upstream payload limit: at most five keywords
// per interest request.
const trendsBatchLimit = 5

// TrendsAdapter queries the search-trend gateway for interest-over-time
// means (R2.2).
type TrendsAdapter struct {
	Client *http.Client
}

func (a *TrendsAdapter) Name() string                 { return "trends" }
func (a *TrendsAdapter) Source() types.SignalSource   { return types.SourceSearchTrend }
func (a *TrendsAdapter) SignalType() types.SignalType { return types.SignalSearchGrowth }

// trendsResponse is the gateway's JSON shape: mean interest per keyword
// over the trailing 30 days, on a 0-100 scale.
type trendsResponse struct {
	Keywords []struct {
		Keyword  string  `json:"keyword"`
		Interest float64 `json:"interest"`
	} `json:"keywords"`
}

// Fetch requests interest scores in batches of at most five keywords with
// a jittered pause between batches (R4.1, R4.2). Keywords with zero
// interest are filtered out, matching the gateway's sparse reporting.
func (a *TrendsAdapter) Fetch(ctx context.Context, keywords []string, cfg types.SignalsConfig) ([]types.Signal, error) {
	batchSize := cfg.BatchSize
	if batchSize <= 0 || batchSize > trendsBatchLimit {
		batchSize = trendsBatchLimit
	}

	var signals []types.Signal
	for i, batch := range batches(keywords, batchSize) {
		if i > 0 {
			if err := sleepJitter(ctx, cfg.BatchDelayMin, cfg.BatchDelayMax); err != nil {
				return nil, err
			}
		}
		batchSignals, err := a.fetchBatch(ctx, batch, cfg)
		if err != nil {
			return nil, fmt.Errorf("trends batch %d: %w", i+1, err)
		}
		signals = append(signals, batchSignals...)
	}
	return signals, nil
}

func (a *TrendsAdapter) fetchBatch(ctx context.Context, batch []string, cfg types.SignalsConfig) ([]types.Signal, error) {
	q := url.Values{}
	q.Set("keywords", strings.Join(batch, ","))
	q.Set("window", "30d")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trendsAPIBase+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trends API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends API returned HTTP %d", resp.StatusCode)
	}

	var tr trendsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing trends response: %w", err)
	}

	now := time.Now().UTC()
	var signals []types.Signal
	for _, kw := range tr.Keywords {
		if kw.Interest <= 0 {
			continue
		}
		signals = append(signals, types.Signal{
			Keyword:   kw.Keyword,
			Source:    types.SourceSearchTrend,
			Type:      types.SignalSearchGrowth,
			Score:     clampScore(kw.Interest),
			Timestamp: now,
		})
	}
	return signals, nil
}
