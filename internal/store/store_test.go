// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trend-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func items(runID string, keywords ...string) []types.ResearchItem {
	out := make([]types.ResearchItem, 0, len(keywords))
	for i, kw := range keywords {
		out = append(out, types.ResearchItem{
			RunID:       runID,
			Keyword:     kw,
			DemandScore: float64(90 - i*10),
			ProductType: "Planner",
		})
	}
	return out
}

func TestCreateRun_UniqueIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx)
	require.NoError(t, err)
	b, err := s.CreateRun(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestCompleteRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.CreateRun(ctx)
	require.NoError(t, err)

	run, _, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.RunRunning, run.Status)

	require.NoError(t, s.CompleteRun(ctx, runID, 3))

	run, _, err = s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.RunComplete, run.Status)
	assert.Equal(t, 3, run.KeywordCount)
}

func TestCompleteRun_UnknownID(t *testing.T) {
	s := newTestStore(t)
	err := s.CompleteRun(context.Background(), "run_missing", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatestRun_NoRuns(t *testing.T) {
	s := newTestStore(t)

	run, got, err := s.LatestRun(context.Background())
	require.NoError(t, err, "an empty store is not an error condition")
	assert.Empty(t, run.RunID)
	assert.Nil(t, got)
}

func TestLatestRun_ByCreationOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, first, items(first, "old keyword")))
	require.NoError(t, s.CompleteRun(ctx, first, 1))

	// The second run is latest by creation sequence even while running
	// and empty.
	second, err := s.CreateRun(ctx)
	require.NoError(t, err)

	run, got, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, run.RunID)
	assert.Empty(t, got)
}

func TestSaveItems_OrderPreserved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, runID, items(runID, "daily planner", "budget tracker", "meal planner")))

	_, got, err := s.LatestRun(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "daily planner", got[0].Keyword)
	assert.Equal(t, "budget tracker", got[1].Keyword)
	assert.Equal(t, "meal planner", got[2].Keyword)
}

func TestSaveItems_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NoError(t, s.SaveItems(ctx, runID, nil))
}

func TestSaveItems_UnknownRunRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Foreign key enforcement rejects the batch; nothing lands.
	err := s.SaveItems(ctx, "run_missing", items("run_missing", "a", "b"))
	assert.ErrorIs(t, err, ErrUnavailable)

	run, got, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Empty(t, run.RunID)
	assert.Nil(t, got)
}

func TestDeleteItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, runID, items(runID, "keyword a", "keyword b")))
	require.NoError(t, s.CompleteRun(ctx, runID, 2))

	require.NoError(t, s.DeleteItem(ctx, "keyword a"))

	_, got, err := s.LatestRun(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keyword b", got[0].Keyword)

	// Soft delete is monotonic; deleting again finds nothing.
	assert.ErrorIs(t, s.DeleteItem(ctx, "keyword a"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteItem(ctx, "never existed"), ErrNotFound)
}

func TestDeleteItem_NoRuns(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteItem(context.Background(), "anything"), ErrNotFound)
}

func TestDeleteItem_OnlyTouchesLatestRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, first, items(first, "shared keyword")))
	require.NoError(t, s.CompleteRun(ctx, first, 1))

	second, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, second, items(second, "shared keyword")))
	require.NoError(t, s.CompleteRun(ctx, second, 1))

	require.NoError(t, s.DeleteItem(ctx, "shared keyword"))

	// The older run's copy survives and still feeds history.
	history, err := s.KeywordHistory(ctx, "shared keyword")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDeleteLatestRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, runID, items(runID, "a", "b", "c")))
	require.NoError(t, s.CompleteRun(ctx, runID, 3))

	n, err := s.DeleteLatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// The run record survives with its items hidden.
	run, got, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, runID, run.RunID)
	assert.Empty(t, got)

	// A second sweep deletes nothing.
	n, err = s.DeleteLatestRun(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteLatestRun_NoRuns(t *testing.T) {
	s := newTestStore(t)
	_, err := s.DeleteLatestRun(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeywordHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	scores := []float64{30, 45, 60}
	for _, score := range scores {
		runID, err := s.CreateRun(ctx)
		require.NoError(t, err)
		require.NoError(t, s.SaveItems(ctx, runID, []types.ResearchItem{
			{RunID: runID, Keyword: "habit tracker", DemandScore: score},
		}))
		require.NoError(t, s.CompleteRun(ctx, runID, 1))
	}

	// A running run must not contribute to history.
	pending, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveItems(ctx, pending, []types.ResearchItem{
		{RunID: pending, Keyword: "habit tracker", DemandScore: 99},
	}))

	history, err := s.KeywordHistory(ctx, "habit tracker")
	require.NoError(t, err)
	assert.Equal(t, scores, history, "history must be chronological, completed runs only")
}

func TestKeywordHistory_CappedAtDepth(t *testing.T) {
	s, err := Open(types.StoreConfig{DataDir: t.TempDir(), HistoryDepth: 2})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	for _, score := range []float64{10, 20, 30} {
		runID, err := s.CreateRun(ctx)
		require.NoError(t, err)
		require.NoError(t, s.SaveItems(ctx, runID, []types.ResearchItem{
			{RunID: runID, Keyword: "kw", DemandScore: score},
		}))
		require.NoError(t, s.CompleteRun(ctx, runID, 1))
	}

	history, err := s.KeywordHistory(ctx, "kw")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 30}, history, "depth cap keeps the newest runs")
}
