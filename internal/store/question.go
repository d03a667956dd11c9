package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// QuestionRecord is the persisted form of one generated question. Options
// are stored as a JSON array so the schema stays stable as option fields
// evolve.
type QuestionRecord struct {
	ID            string
	ModelID       string
	Format        string
	Level         string
	CognitiveLoad int
	Text          string
	OptionsJSON   string
	CorrectIndex  int
	Theme         string
	Status        string
	GenerationMs  int64
	CreatedAt     time.Time
}

// QuestionRepo persists and queries generated questions.
type QuestionRepo interface {
	// Save stores one question record.
	Save(ctx context.Context, rec *QuestionRecord) error

	// List returns the most recent questions, newest first.
	List(ctx context.Context, limit int) ([]QuestionRecord, error)

	// CountByFormat returns how many stored questions each format has.
	CountByFormat(ctx context.Context) (map[string]int, error)
}

type questionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *questionRepo) Save(ctx context.Context, rec *QuestionRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO questions
		(id, sequence, model_id, format, level, cognitive_load, text,
		 options_json, correct_index, theme, status, generation_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, seqNum, rec.ModelID, rec.Format, rec.Level, rec.CognitiveLoad,
		rec.Text, rec.OptionsJSON, rec.CorrectIndex, rec.Theme, rec.Status,
		rec.GenerationMs, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("save question %s: %w", rec.ID, err)
	}
	return nil
}

func (r *questionRepo) List(ctx context.Context, limit int) ([]QuestionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, model_id, format, level, cognitive_load, text, options_json,
		correct_index, theme, status, generation_ms, created_at
		FROM questions ORDER BY sequence DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRecord
	for rows.Next() {
		var rec QuestionRecord
		if err := rows.Scan(&rec.ID, &rec.ModelID, &rec.Format, &rec.Level,
			&rec.CognitiveLoad, &rec.Text, &rec.OptionsJSON, &rec.CorrectIndex,
			&rec.Theme, &rec.Status, &rec.GenerationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *questionRepo) CountByFormat(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT format, COUNT(*) FROM questions GROUP BY format`)
	if err != nil {
		return nil, fmt.Errorf("count by format: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var f string
		var n int
		if err := rows.Scan(&f, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[f] = n
	}
	return out, rows.Err()
}
