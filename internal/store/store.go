// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists research runs, their items, products, and the
// activity log in SQLite.
// Implements: prd003-research-store (R1-R6);
//
//	docs/ARCHITECTURE § Run Store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/trend-engine/pkg/types"
)

const dbFile = "trends.db"

// Sentinel errors distinguishing "nothing there" from "system down" so
// front ends can render the two differently (R6.1, R6.2).
var (
	// ErrNotFound reports that the requested run or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable reports that the persistence backend cannot be
	// reached or refused the operation.
	ErrUnavailable = errors.New("store unavailable")
)

// Store owns all write access to the research tables. Other components
// treat persisted rows as read/append-only.
type Store struct {
	db           *sql.DB
	historyDepth int
}

// Open opens or creates the SQLite database at dataDir/trends.db and
// bootstraps the schema (R1.1).
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w: %w", ErrUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w: %w", ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reaching database: %w: %w", ErrUnavailable, err)
	}

	historyDepth := cfg.HistoryDepth
	if historyDepth <= 0 {
		historyDepth = 12
	}

	s := &Store{db: db, historyDepth: historyDepth}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	// research_runs.seq is the monotonic creation order; "latest run"
	// queries resolve by seq, never by timestamp (R2.3).
	statements := []string{
		`CREATE TABLE IF NOT EXISTS research_runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			keyword_count INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'running'
		)`,
		`CREATE TABLE IF NOT EXISTS research_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES research_runs(run_id),
			keyword TEXT NOT NULL,
			demand_score REAL NOT NULL DEFAULT 0,
			product_type TEXT,
			timestamp TEXT NOT NULL,
			deleted INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_run_id ON research_items(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_items_keyword ON research_items(keyword)`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			agent TEXT NOT NULL,
			action TEXT NOT NULL,
			result TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			keyword TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT,
			link TEXT,
			status TEXT NOT NULL DEFAULT 'created',
			revenue REAL NOT NULL DEFAULT 0,
			timestamp TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w: %w", ErrUnavailable, err)
		}
	}
	return nil
}

// CreateRun allocates a fresh run identifier and persists the run as
// running with zero keywords (R2.1). The UUID-derived identifier keeps
// concurrent creates collision-free.
func (s *Store) CreateRun(ctx context.Context) (string, error) {
	runID := "run_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO research_runs (run_id, timestamp, keyword_count, status) VALUES (?, ?, 0, ?)`,
		runID, now, string(types.RunRunning),
	)
	if err != nil {
		return "", fmt.Errorf("creating run: %w: %w", ErrUnavailable, err)
	}
	return runID, nil
}

// CompleteRun flips a run to complete with its final item count. This is
// the run's single atomic status change; it fails with ErrNotFound for an
// unknown run_id (R2.2).
func (s *Store) CompleteRun(ctx context.Context, runID string, count int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE research_runs SET keyword_count = ?, status = ? WHERE run_id = ?`,
		count, string(types.RunComplete), runID,
	)
	if err != nil {
		return fmt.Errorf("completing run %s: %w: %w", runID, ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("completing run %s: %w: %w", runID, ErrUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// SaveItems appends all items to a run inside one transaction. Either
// every row lands or none does: a partial write rolls back and surfaces
// as an error, leaving the run visibly running and empty (R3.1, R3.2).
func (s *Store) SaveItems(ctx context.Context, runID string, items []types.ResearchItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w: %w", ErrUnavailable, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO research_items (run_id, keyword, demand_score, product_type, timestamp, deleted)
		 VALUES (?, ?, ?, ?, ?, 0)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w: %w", ErrUnavailable, err)
	}
	defer stmt.Close()

	for _, item := range items {
		ts := item.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			runID, item.Keyword, item.DemandScore, item.ProductType,
			ts.Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("inserting item %q: %w: %w", item.Keyword, ErrUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w: %w", ErrUnavailable, err)
	}
	return nil
}

// LatestRun returns the most recently created run (by creation sequence,
// not completion time) with its non-deleted items in insertion order.
// When no runs exist it returns a zero-valued run with an empty RunID and
// no error (R4.1, R4.2).
func (s *Store) LatestRun(ctx context.Context) (types.ResearchRun, []types.ResearchItem, error) {
	run, err := s.latestRunRow(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return types.ResearchRun{}, nil, nil
		}
		return types.ResearchRun{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT keyword, demand_score, product_type, timestamp
		 FROM research_items
		 WHERE run_id = ? AND deleted = 0
		 ORDER BY id`,
		run.RunID,
	)
	if err != nil {
		return types.ResearchRun{}, nil, fmt.Errorf("querying items for %s: %w: %w", run.RunID, ErrUnavailable, err)
	}
	defer rows.Close()

	var items []types.ResearchItem
	for rows.Next() {
		item := types.ResearchItem{RunID: run.RunID}
		var ts string
		if err := rows.Scan(&item.Keyword, &item.DemandScore, &item.ProductType, &ts); err != nil {
			return types.ResearchRun{}, nil, fmt.Errorf("scanning item: %w: %w", ErrUnavailable, err)
		}
		item.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return types.ResearchRun{}, nil, fmt.Errorf("reading items: %w: %w", ErrUnavailable, err)
	}
	return run, items, nil
}

// latestRunRow resolves "the latest run" by the monotonic seq column.
func (s *Store) latestRunRow(ctx context.Context) (types.ResearchRun, error) {
	var run types.ResearchRun
	var ts, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, timestamp, keyword_count, status
		 FROM research_runs ORDER BY seq DESC LIMIT 1`,
	).Scan(&run.RunID, &ts, &run.KeywordCount, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ResearchRun{}, fmt.Errorf("no research runs: %w", ErrNotFound)
	}
	if err != nil {
		return types.ResearchRun{}, fmt.Errorf("querying latest run: %w: %w", ErrUnavailable, err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, ts)
	run.Status = types.RunStatus(status)
	return run, nil
}

// DeleteItem soft-deletes the matching non-deleted item in the latest run
// only. Soft delete is monotonic: there is no undelete (R5.1).
func (s *Store) DeleteItem(ctx context.Context, keyword string) error {
	run, err := s.latestRunRow(ctx)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE research_items SET deleted = 1
		 WHERE run_id = ? AND keyword = ? AND deleted = 0`,
		run.RunID, keyword,
	)
	if err != nil {
		return fmt.Errorf("deleting item %q: %w: %w", keyword, ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item %q: %w: %w", keyword, ErrUnavailable, err)
	}
	if n == 0 {
		return fmt.Errorf("item %q in run %s: %w", keyword, run.RunID, ErrNotFound)
	}
	return nil
}

// DeleteLatestRun soft-deletes every non-deleted item in the latest run
// and returns the count deleted. The run record itself is never removed
// (R5.2).
func (s *Store) DeleteLatestRun(ctx context.Context) (int, error) {
	run, err := s.latestRunRow(ctx)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE research_items SET deleted = 1 WHERE run_id = ? AND deleted = 0`,
		run.RunID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting run %s items: %w: %w", run.RunID, ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting run %s items: %w: %w", run.RunID, ErrUnavailable, err)
	}
	return int(n), nil
}

// KeywordHistory returns the keyword's demand scores from completed runs
// in creation order, oldest first, capped at the configured history
// depth. Feeds the enrichment time series (R4.3).
func (s *Store) KeywordHistory(ctx context.Context, keyword string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.demand_score
		 FROM research_items i
		 JOIN research_runs r ON r.run_id = i.run_id
		 WHERE i.keyword = ? AND i.deleted = 0 AND r.status = ?
		 ORDER BY r.seq DESC LIMIT ?`,
		keyword, string(types.RunComplete), s.historyDepth,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history for %q: %w: %w", keyword, ErrUnavailable, err)
	}
	defer rows.Close()

	var reversed []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scanning history: %w: %w", ErrUnavailable, err)
		}
		reversed = append(reversed, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w: %w", ErrUnavailable, err)
	}

	// Query returns newest-first for the LIMIT; flip to chronological.
	history := make([]float64, len(reversed))
	for i, v := range reversed {
		history[len(reversed)-1-i] = v
	}
	return history, nil
}
