// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// LogActivity appends one row to the activity log. It is best-effort:
// callers fire and forget, and a logging failure must never abort the
// pipeline, so the error is informational only (R6.3).
func (s *Store) LogActivity(ctx context.Context, agent, action, result string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity_log (timestamp, agent, action, result) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), agent, action, result,
	)
	if err != nil {
		return fmt.Errorf("logging activity: %w: %w", ErrUnavailable, err)
	}
	return nil
}

// RecentActivity returns the newest limit activity rows, most recent first.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]types.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, agent, action, result FROM activity_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var activities []types.Activity
	for rows.Next() {
		var a types.Activity
		var ts string
		if err := rows.Scan(&ts, &a.Agent, &a.Action, &a.Result); err != nil {
			return nil, fmt.Errorf("scanning activity: %w: %w", ErrUnavailable, err)
		}
		a.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading activity: %w: %w", ErrUnavailable, err)
	}
	return activities, nil
}
