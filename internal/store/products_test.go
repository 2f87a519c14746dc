// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trend-engine/pkg/types"
)

func TestSaveProduct_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveProduct(ctx, types.Product{
		Keyword: "daily planner",
		Name:    "Daily Planner",
		Type:    "Planner",
		Link:    "products/daily-planner.csv",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	p, err := s.LatestCreatedProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, types.ProductCreated, p.Status, "status defaults to created")

	require.NoError(t, s.SetProductStatus(ctx, id, types.ProductPublished))

	// No unpublished product remains.
	_, err = s.LatestCreatedProduct(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.Products(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, types.ProductPublished, all[0].Status)
}

func TestLatestCreatedProduct_PicksNewest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.SaveProduct(ctx, types.Product{Keyword: "a", Name: "Older"})
	require.NoError(t, err)
	newer, err := s.SaveProduct(ctx, types.Product{Keyword: "b", Name: "Newer"})
	require.NoError(t, err)

	p, err := s.LatestCreatedProduct(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer, p.ID)
}

func TestSetProductStatus_Unknown(t *testing.T) {
	s := newTestStore(t)
	err := s.SetProductStatus(context.Background(), 999, types.ProductPublished)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevenue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	total, err := s.Revenue(ctx)
	require.NoError(t, err)
	assert.Zero(t, total, "empty store reports zero revenue")

	a, err := s.SaveProduct(ctx, types.Product{Keyword: "a", Name: "A"})
	require.NoError(t, err)
	b, err := s.SaveProduct(ctx, types.Product{Keyword: "b", Name: "B"})
	require.NoError(t, err)

	require.NoError(t, s.AddRevenue(ctx, a, 12.50))
	require.NoError(t, s.AddRevenue(ctx, a, 7.50))
	require.NoError(t, s.AddRevenue(ctx, b, 5.00))

	total, err = s.Revenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 25.00, total, 1e-9)

	assert.ErrorIs(t, s.AddRevenue(ctx, 999, 1.00), ErrNotFound)
}

func TestActivityLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.LogActivity(ctx, "research-agent", "research_run_started", "run_abc"))
	require.NoError(t, s.LogActivity(ctx, "creation-agent", "product_created", "Daily Planner"))

	got, err := s.RecentActivity(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Newest first.
	assert.Equal(t, "creation-agent", got[0].Agent)
	assert.Equal(t, "research-agent", got[1].Agent)
}

func TestRecentActivity_DefaultLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, s.LogActivity(ctx, "agent", "action", ""))
	}
	got, err := s.RecentActivity(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
