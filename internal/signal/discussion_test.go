// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package signal

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/trend-engine/pkg/types"
)

func discussionConfig(subs ...string) types.SignalsConfig {
	return types.SignalsConfig{Subreddits: subs, PostsPerQuery: 10}
}

func redditJSON(posts ...redditPost) string {
	type child struct {
		Data redditPost `json:"data"`
	}
	var children []child
	for _, p := range posts {
		children = append(children, child{Data: p})
	}
	payload := map[string]any{"data": map[string]any{"children": children}}
	b, _ := json.Marshal(payload)
	return string(b)
}

func TestDiscussionAdapter_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/r/EtsySellers/search.json") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("restrict_sr") != "1" {
			t.Error("search not restricted to subreddit")
		}
		w.Write([]byte(redditJSON(
			redditPost{Title: "Looking for a budget tracker template", Score: 40, NumComments: 10},
			redditPost{Title: "My shop update", Score: 20, NumComments: 10},
		)))
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	adapter := &DiscussionAdapter{Client: ts.Client()}
	signals, err := adapter.Fetch(context.Background(), []string{"budget tracker"}, discussionConfig("EtsySellers"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}

	// 2 posts: volume 20, engagement (50+30)/2 = 40, intent 1/2 = 50.
	want := 20*0.4 + 40*0.4 + 50*0.2
	if math.Abs(signals[0].Score-want) > 1e-9 {
		t.Errorf("score = %v, want %v", signals[0].Score, want)
	}
	if signals[0].Type != types.SignalDiscussionVolume {
		t.Errorf("signal type = %s", signals[0].Type)
	}
}

func TestDiscussionAdapter_NoMatchesNoSignal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(redditJSON()))
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	adapter := &DiscussionAdapter{Client: ts.Client()}
	signals, err := adapter.Fetch(context.Background(), []string{"nothing"}, discussionConfig("EtsySellers"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(signals) != 0 {
		t.Errorf("got %d signals for empty listing, want 0", len(signals))
	}
}

func TestDiscussionAdapter_NoSubreddits(t *testing.T) {
	adapter := &DiscussionAdapter{Client: http.DefaultClient}
	if _, err := adapter.Fetch(context.Background(), []string{"x"}, types.SignalsConfig{}); err == nil {
		t.Error("expected error with no subreddits configured")
	}
}

func TestScoreDiscussion_Clamped(t *testing.T) {
	// Huge engagement still lands in [0, 100].
	posts := make([]redditPost, 20)
	for i := range posts {
		posts[i] = redditPost{Title: "best planner template", Score: 5000, NumComments: 900}
	}
	got := scoreDiscussion(posts)
	if got < 0 || got > 100 {
		t.Errorf("score %v outside [0, 100]", got)
	}
	if got != 100 {
		t.Errorf("saturated sample scored %v, want 100", got)
	}
}

func TestHasBuyerIntent(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Looking for a meal planner", true},
		{"Best budget SPREADSHEET?", true},
		{"Where can I find a wedding checklist", true},
		{"My cat photos", false},
	}
	for _, tt := range tests {
		if got := hasBuyerIntent(tt.title); got != tt.want {
			t.Errorf("hasBuyerIntent(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}
