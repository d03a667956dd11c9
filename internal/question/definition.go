// Package question holds the work-in-progress question record assembled by
// format controllers and consumed by the renderer and orchestrator.
package question

import (
	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/mathengine"
	"github.com/primagen/primagen/internal/scenario"
)

// Answer is a formatted correct answer.
type Answer struct {
	Value   float64
	Display string
}

// Params is the parameter bag a controller fills while assembling the
// question.
type Params struct {
	// MathValues are the numeric values the narrative references, keyed by
	// field name ("operand_1", "step_2_result", ...).
	MathValues map[string]float64

	// NarrativeValues are pre-formatted strings for template placeholders
	// ("price" -> "£1.20", "item" -> "comic").
	NarrativeValues map[string]string

	// Units maps value keys to display units.
	Units map[string]string

	// Formatting carries display hints ("currency" -> "true").
	Formatting map[string]string
}

// Solution is the correct answer plus its pedagogical scaffolding.
type Solution struct {
	CorrectAnswer Answer

	// Distractors is deduplicated against CorrectAnswer.Value and capped
	// at distractor.MaxPerQuestion.
	Distractors []distractor.Distractor

	// WorkingSteps enumerates the solution path, one line per step.
	WorkingSteps []string

	// Explanation is a short worked justification shown after answering.
	Explanation string

	// Strategy names the expected solution strategy when one applies.
	Strategy string
}

// Content carries controller-built narrative text, when present.
type Content struct {
	// FullText is a complete question text that bypasses template
	// resolution in the renderer.
	FullText string
}

// Definition is the central record a controller assembles for one question.
type Definition struct {
	Format   format.Format
	ModelID  string
	Level    difficulty.Level
	Scenario *scenario.Context
	Params   Params
	Solution Solution
	Content  *Content

	// MathOutput is the raw oracle output kept for downstream consumers.
	MathOutput *mathengine.Output
}

// NewParams returns an empty, fully-initialized parameter bag.
func NewParams() Params {
	return Params{
		MathValues:      make(map[string]float64),
		NarrativeValues: make(map[string]string),
		Units:           make(map[string]string),
		Formatting:      make(map[string]string),
	}
}
