package store

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"questions", "generation_runs", "llm_request_events"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestQuestionSaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &QuestionRecord{
			ID:            fmt.Sprintf("q-%d", i),
			ModelID:       "ADDITION",
			Format:        "DIRECT_CALCULATION",
			Level:         "3.2",
			CognitiveLoad: 36,
			Text:          "What is 7 + 5?",
			OptionsJSON:   `[{"text":"12","value":12}]`,
			CorrectIndex:  0,
			Theme:         "school",
			Status:        "partial",
			GenerationMs:  4,
			CreatedAt:     now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	got, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("list returned %d records, want 3", len(got))
	}
	// Newest first.
	if got[0].ID != "q-2" {
		t.Errorf("first record = %s, want q-2", got[0].ID)
	}
	if got[0].Format != "DIRECT_CALCULATION" || got[0].Level != "3.2" {
		t.Errorf("record fields lost: %+v", got[0])
	}
}

func TestQuestionCountByFormat(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	formats := []string{"DIRECT_CALCULATION", "DIRECT_CALCULATION", "ORDERING"}
	for i, f := range formats {
		err := repo.Save(ctx, &QuestionRecord{
			ID: fmt.Sprintf("q-%d", i), ModelID: "ADDITION", Format: f,
			Level: "2.1", Text: "t", OptionsJSON: "[]",
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	counts, err := repo.CountByFormat(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["DIRECT_CALCULATION"] != 2 || counts["ORDERING"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestRunRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	run := &RunRecord{
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Requested:  10,
		Succeeded:  9,
		Failed:     1,
		Note:       "nightly manifest",
	}
	if err := repo.Record(ctx, run); err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.ID == 0 {
		t.Error("run ID not assigned")
	}

	got, err := repo.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recent returned %d runs", len(got))
	}
	if got[0].Succeeded != 9 || got[0].Failed != 1 {
		t.Errorf("run fields lost: %+v", got[0])
	}
}

func TestEventAppend(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "scenario-enrichment",
		InputTokens:  100,
		OutputTokens: 50,
		LatencyMs:    12,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events").Scan(&count); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Errorf("event count = %d, want 1", count)
	}
}

func TestEventQueryFiltersByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	purposes := []string{"scenario-enrichment", "question-review", "scenario-enrichment"}
	for i, p := range purposes {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: p,
			InputTokens: 10 * (i + 1), Success: true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "scenario-enrichment"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("filtered query returned %d events, want 2", len(got))
	}
	for _, e := range got {
		if e.Purpose != "scenario-enrichment" {
			t.Errorf("event %d purpose = %q", e.ID, e.Purpose)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("unfiltered query: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered query returned %d events, want 3", len(all))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}
