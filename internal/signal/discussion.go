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

// redditAPIBase is the public search endpoint root. Declared as a var so
// tests can substitute an httptest server.
var redditAPIBase = "https://www.reddit.com"

// buyerPhrases are title substrings that indicate purchase intent (R2.3).
var buyerPhrases = []string{
	"looking for", "need a", "recommend", "best", "where can i find",
	"template", "planner", "tracker", "printable", "spreadsheet",
}

// DiscussionAdapter measures discussion volume on Reddit through the
// public JSON search API, no authentication required (R2.3).
type DiscussionAdapter struct {
	Client *http.Client
}

func (a *DiscussionAdapter) Name() string                 { return "discussion" }
func (a *DiscussionAdapter) Source() types.SignalSource   { return types.SourceDiscussion }
func (a *DiscussionAdapter) SignalType() types.SignalType { return types.SignalDiscussionVolume }

// Reddit listing JSON structures (the subset we read).
type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string `json:"title"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
}

// Fetch searches each configured subreddit for each keyword and emits one
// discussion_volume signal per (keyword, subreddit) pair with matches.
// The aggregator later averages same-type observations per keyword. A
// jittered pause separates consecutive searches (R4.2).
func (a *DiscussionAdapter) Fetch(ctx context.Context, keywords []string, cfg types.SignalsConfig) ([]types.Signal, error) {
	subreddits := cfg.Subreddits
	if len(subreddits) == 0 {
		return nil, fmt.Errorf("no subreddits configured")
	}
	limit := cfg.PostsPerQuery
	if limit <= 0 {
		limit = 10
	}

	var signals []types.Signal
	first := true
	for _, kw := range keywords {
		for _, sub := range subreddits {
			if !first {
				if err := sleepJitter(ctx, cfg.BatchDelayMin, cfg.BatchDelayMax); err != nil {
					return nil, err
				}
			}
			first = false

			posts, err := a.search(ctx, sub, kw, limit, cfg)
			if err != nil {
				return nil, fmt.Errorf("searching r/%s for %q: %w", sub, kw, err)
			}
			if len(posts) == 0 {
				continue
			}
			signals = append(signals, types.Signal{
				Keyword:   kw,
				Source:    types.SourceDiscussion,
				Type:      types.SignalDiscussionVolume,
				Score:     scoreDiscussion(posts),
				Timestamp: time.Now().UTC(),
			})
		}
	}
	return signals, nil
}

func (a *DiscussionAdapter) search(ctx context.Context, subreddit, keyword string, limit int, cfg types.SignalsConfig) ([]redditPost, error) {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("sort", "relevance")
	q.Set("t", "month")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("restrict_sr", "1")

	u := fmt.Sprintf("%s/r/%s/search.json?%s", redditAPIBase, subreddit, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned HTTP %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parsing reddit response: %w", err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, c := range listing.Data.Children {
		posts = append(posts, c.Data)
	}
	return posts, nil
}

// scoreDiscussion folds a post sample into one [0,100] score:
// 40% discussion volume, 40% engagement, 20% buyer-intent phrasing.
func scoreDiscussion(posts []redditPost) float64 {
	count := len(posts)
	engagement := 0
	intentHits := 0
	for _, p := range posts {
		engagement += p.Score + p.NumComments
		if hasBuyerIntent(p.Title) {
			intentHits++
		}
	}

	volumeScore := clampScore(float64(count) * 10)
	engagementScore := clampScore(float64(engagement) / float64(count))
	intentScore := clampScore(float64(intentHits) / float64(count) * 100)

	return clampScore(volumeScore*0.4 + engagementScore*0.4 + intentScore*0.2)
}

func hasBuyerIntent(title string) bool {
	t := strings.ToLower(title)
	for _, phrase := range buyerPhrases {
		if strings.Contains(t, phrase) {
			return true
		}
	}
	return false
}
