// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish posts created products to Pinterest as pins.
// Implements: prd005-publishing (R1-R3);
//
//	docs/ARCHITECTURE § Publishing.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/trend-engine/internal/httputil"
	"github.com/pdiddy/trend-engine/internal/store"
	"github.com/pdiddy/trend-engine/pkg/types"
)

// pinterestAPIBase is swapped by tests for an httptest server.
var pinterestAPIBase = "https://api.pinterest.com/v5"

const agentName = "publishing-agent"

// Publisher posts pins for created products and records the outcome.
// A rate limiter keeps pin creation under the configured per-minute
// budget across calls.
type Publisher struct {
	Store   *store.Store
	Cfg     types.PublishingConfig
	Client  *http.Client
	Out     io.Writer
	limiter *rate.Limiter
}

// NewPublisher wires a publisher with its rate limiter. PinsPerMinute
// at or below zero defaults to 10.
func NewPublisher(st *store.Store, cfg types.PublishingConfig) *Publisher {
	ppm := cfg.PinsPerMinute
	if ppm <= 0 {
		ppm = 10
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Publisher{
		Store:   st,
		Cfg:     cfg,
		Client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(float64(ppm)/60.0), 1),
	}
}

// pinRequest is the Pinterest v5 pin creation payload.
type pinRequest struct {
	BoardID     string `json:"board_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

type pinResponse struct {
	ID string `json:"id"`
}

// PublishLatest posts the most recent unpublished product. The product
// flips to published on success or publish_failed on any upstream
// failure; either way the outcome lands in the store before the error
// is returned (R2.1, R2.2).
func (p *Publisher) PublishLatest(ctx context.Context) (types.Product, error) {
	prod, err := p.Store.LatestCreatedProduct(ctx)
	if err != nil {
		return types.Product{}, err
	}
	return p.Publish(ctx, prod)
}

// Publish posts one product as a pin.
func (p *Publisher) Publish(ctx context.Context, prod types.Product) (types.Product, error) {
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	if p.Cfg.AccessToken == "" {
		return prod, fmt.Errorf("pinterest access token not configured: add .secrets/pinterest-access-token")
	}
	if p.Cfg.BoardID == "" {
		return prod, fmt.Errorf("pinterest board not configured: add .secrets/pinterest-board-id")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return prod, err
	}

	pinID, err := p.createPin(ctx, prod)
	if err != nil {
		if serr := p.Store.SetProductStatus(ctx, prod.ID, types.ProductPublishFailed); serr != nil {
			return prod, fmt.Errorf("publishing %q: %v (and recording failure: %w)", prod.Name, err, serr)
		}
		prod.Status = types.ProductPublishFailed
		_ = p.Store.LogActivity(ctx, agentName, "publish_failed", fmt.Sprintf("%s: %v", prod.Name, err))
		return prod, fmt.Errorf("publishing %q: %w", prod.Name, err)
	}

	if err := p.Store.SetProductStatus(ctx, prod.ID, types.ProductPublished); err != nil {
		return prod, err
	}
	prod.Status = types.ProductPublished
	_ = p.Store.LogActivity(ctx, agentName, "product_published", fmt.Sprintf("%s -> pin %s", prod.Name, pinID))
	fmt.Fprintf(out, "published %q as pin %s\n", prod.Name, pinID)
	return prod, nil
}

func (p *Publisher) createPin(ctx context.Context, prod types.Product) (string, error) {
	body, err := json.Marshal(pinRequest{
		BoardID:     p.Cfg.BoardID,
		Title:       prod.Name,
		Description: pinDescription(prod),
		Link:        prod.Link,
	})
	if err != nil {
		return "", fmt.Errorf("encoding pin: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pinterestAPIBase+"/pins", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building pin request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.Cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	if p.Cfg.UserAgent != "" {
		req.Header.Set("User-Agent", p.Cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, p.Cfg.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("posting pin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("pinterest returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var pr pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("decoding pin response: %w", err)
	}
	return pr.ID, nil
}

// pinDescription composes the marketing copy for a pin: a one-line
// pitch plus hashtags derived from the keyword.
func pinDescription(prod types.Product) string {
	var tags []string
	for _, w := range strings.Fields(strings.ToLower(prod.Keyword)) {
		tags = append(tags, "#"+w)
	}
	tags = append(tags, "#printable", "#digitaldownload")
	return fmt.Sprintf("%s | Printable %s template, instant digital download. %s",
		prod.Name, strings.ToLower(prod.Type), strings.Join(tags, " "))
}
