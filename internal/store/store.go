// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists aggregation runs in a SQLite database and
// exports them as JSON, the boundary format between pipeline stages.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/signal-digest/pkg/types"
)

const (
	dbFile = "signals.db"

	// dateLayout is the day-resolution key format for runs.
	dateLayout = "2006-01-02"
)

// Store manages the signal database. One row per scored record per run;
// re-saving a run replaces it wholesale.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the SQLite database at dataDir/signals.db,
// creating the schema when missing.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: dataDir}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_date TEXT NOT NULL,
			identity_key TEXT NOT NULL,
			title TEXT,
			source TEXT,
			relevance_score REAL NOT NULL,
			published TEXT,
			payload TEXT NOT NULL
		)`,
		// Empty identity keys are sentinels for unidentifiable records;
		// only real keys are unique within a run.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_records_run_key
			ON records(run_date, identity_key) WHERE identity_key <> ''`,
		`CREATE INDEX IF NOT EXISTS idx_records_run_score
			ON records(run_date, relevance_score)`,
		`CREATE TABLE IF NOT EXISTS yield_metrics (
			run_date TEXT PRIMARY KEY,
			total_items INTEGER NOT NULL,
			high_relevance_items INTEGER NOT NULL,
			filter_threshold REAL NOT NULL,
			quality_ratio REAL NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveRun persists one aggregation run, replacing any previous run for
// the same date. Record order is preserved through insertion order.
func (s *Store) SaveRun(ctx context.Context, result types.AggregateResult) error {
	date := result.Date.Format(dateLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE run_date = ?`, date); err != nil {
		return fmt.Errorf("clearing previous run: %w", err)
	}

	for _, r := range result.Records {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshaling record %q: %w", r.Title, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (run_date, identity_key, title, source, relevance_score, published, payload)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			date, r.IdentityKey(), r.Title, r.Source, r.RelevanceScore,
			r.Published.UTC().Format(time.RFC3339), string(payload))
		if err != nil {
			return fmt.Errorf("inserting record %q: %w", r.Title, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO yield_metrics (run_date, total_items, high_relevance_items, filter_threshold, quality_ratio)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(run_date) DO UPDATE SET
			total_items = excluded.total_items,
			high_relevance_items = excluded.high_relevance_items,
			filter_threshold = excluded.filter_threshold,
			quality_ratio = excluded.quality_ratio`,
		date, result.Yield.TotalItems, result.Yield.HighRelevanceItems,
		result.Yield.FilterThreshold, result.Yield.QualityRatio)
	if err != nil {
		return fmt.Errorf("saving yield metrics: %w", err)
	}

	return tx.Commit()
}

// LoadRun reads the aggregation run for a date, in its persisted ranked
// order. A date with no run yields an empty result, not an error.
func (s *Store) LoadRun(ctx context.Context, date time.Time) (types.AggregateResult, error) {
	day := date.Format(dateLayout)
	result := types.AggregateResult{Date: date}

	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM records WHERE run_date = ? ORDER BY rowid`, day)
	if err != nil {
		return result, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return result, fmt.Errorf("scanning record: %w", err)
		}
		var r types.ScoredRecord
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return result, fmt.Errorf("unmarshaling record: %w", err)
		}
		result.Records = append(result.Records, r)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("iterating records: %w", err)
	}

	yield, err := s.loadYield(ctx, day)
	if err != nil {
		return result, err
	}
	result.Yield = yield
	return result, nil
}

// SaveYield persists yield metrics on their own, for runs recorded
// without a record set.
func (s *Store) SaveYield(ctx context.Context, date time.Time, yield types.YieldMetrics) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO yield_metrics (run_date, total_items, high_relevance_items, filter_threshold, quality_ratio)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(run_date) DO UPDATE SET
			total_items = excluded.total_items,
			high_relevance_items = excluded.high_relevance_items,
			filter_threshold = excluded.filter_threshold,
			quality_ratio = excluded.quality_ratio`,
		date.Format(dateLayout), yield.TotalItems, yield.HighRelevanceItems,
		yield.FilterThreshold, yield.QualityRatio)
	if err != nil {
		return fmt.Errorf("saving yield metrics: %w", err)
	}
	return nil
}

// LoadYield reads yield metrics for a date. A date with no metrics
// yields the zero value, not an error.
func (s *Store) LoadYield(ctx context.Context, date time.Time) (types.YieldMetrics, error) {
	return s.loadYield(ctx, date.Format(dateLayout))
}

func (s *Store) loadYield(ctx context.Context, day string) (types.YieldMetrics, error) {
	var y types.YieldMetrics
	err := s.db.QueryRowContext(ctx,
		`SELECT total_items, high_relevance_items, filter_threshold, quality_ratio
		 FROM yield_metrics WHERE run_date = ?`, day).
		Scan(&y.TotalItems, &y.HighRelevanceItems, &y.FilterThreshold, &y.QualityRatio)
	if err == sql.ErrNoRows {
		return types.YieldMetrics{}, nil
	}
	if err != nil {
		return types.YieldMetrics{}, fmt.Errorf("querying yield metrics: %w", err)
	}
	return y, nil
}

// ExportJSON writes a run to dir/YYYY-MM-DD.json, the boundary format
// the report stage consumes.
func (s *Store) ExportJSON(ctx context.Context, date time.Time, dir string) (string, error) {
	result, err := s.LoadRun(ctx, date)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}

	path := filepath.Join(dir, date.Format(dateLayout)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
