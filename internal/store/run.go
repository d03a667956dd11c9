package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunRecord summarizes one bulk generation run.
type RunRecord struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Requested  int
	Succeeded  int
	Failed     int
	Note       string
}

// RunRepo persists bulk-run summaries.
type RunRepo interface {
	// Record stores a finished run and fills in its assigned ID.
	Record(ctx context.Context, run *RunRecord) error

	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, limit int) ([]RunRecord, error)
}

type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Record(ctx context.Context, run *RunRecord) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO generation_runs
		(started_at, finished_at, requested, succeeded, failed, note)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.FinishedAt, run.Requested, run.Succeeded, run.Failed, run.Note)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, started_at, finished_at, requested, succeeded, failed, note
		FROM generation_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var run RunRecord
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.Requested, &run.Succeeded, &run.Failed, &run.Note); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
