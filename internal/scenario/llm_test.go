package scenario

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/llm"
	"github.com/primagen/primagen/internal/rng"
)

func TestLLMService_EnrichesTemplates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"templates":[{"text":"{character} plants {operand_1} seeds and then {operand_2} more. How many seeds?"}]}`),
	})
	svc := NewLLM(NewProcedural(rng.NewSeeded("enrich")), mock)

	sc, err := svc.SelectScenario(context.Background(), Request{
		Theme:     ThemeGarden,
		MathModel: "ADDITION",
		Level:     difficulty.Level{Year: 2, SubLevel: 2},
	})
	if err != nil {
		t.Fatalf("SelectScenario: %v", err)
	}

	if len(sc.Templates) == 0 {
		t.Fatal("no templates")
	}
	first := sc.Templates[0]
	if first.Text == "" || first.Models[0] != "ADDITION" {
		t.Errorf("enriched template not first: %+v", first)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestLLMService_FallsBackSilently(t *testing.T) {
	// Empty mock queue: every Generate call fails with provider unavailable.
	mock := llm.NewMockProvider()
	svc := NewLLM(NewProcedural(rng.NewSeeded("fallback")), mock)

	sc, err := svc.SelectScenario(context.Background(), Request{
		Theme:     ThemeSchool,
		MathModel: "SUBTRACTION",
		Level:     difficulty.Level{Year: 3, SubLevel: 1},
	})
	if err != nil {
		t.Fatalf("SelectScenario must not fail when enrichment does: %v", err)
	}
	if sc.Theme != ThemeSchool {
		t.Errorf("theme = %s, want school", sc.Theme)
	}
	// Procedural templates survive untouched.
	if len(sc.Templates) == 0 {
		t.Error("procedural templates lost on enrichment failure")
	}
}

func TestLLMService_PropagatesSelectionError(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewLLM(NewProcedural(rng.NewSeeded("bad-theme")), mock)

	_, err := svc.SelectScenario(context.Background(), Request{
		Theme:     "volcanoes",
		MathModel: "ADDITION",
	})
	if err == nil {
		t.Fatal("unknown theme accepted")
	}
	if mock.CallCount() != 0 {
		t.Error("provider called despite selection failure")
	}
}

func TestLLMService_RejectsEmptyTemplateList(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"templates":[]}`),
	})
	inner := NewProcedural(rng.NewSeeded("empty"))
	svc := NewLLM(inner, mock)

	sc, err := svc.SelectScenario(context.Background(), Request{
		Theme:     ThemeCooking,
		MathModel: "MULTIPLICATION",
		Level:     difficulty.Level{Year: 4, SubLevel: 2},
	})
	if err != nil {
		t.Fatalf("SelectScenario: %v", err)
	}
	// An empty enrichment result is rejected, so the template list stays the
	// procedural bank's.
	if len(sc.Templates) != len(themeBanks[ThemeCooking].templates) {
		t.Errorf("template count = %d, want the bank's %d",
			len(sc.Templates), len(themeBanks[ThemeCooking].templates))
	}
}
