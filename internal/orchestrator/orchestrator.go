// Package orchestrator coordinates the full question-generation pipeline:
// difficulty parsing, parameter resolution, format selection, controller
// dispatch, rendering, and final packaging.
package orchestrator

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/primagen/primagen/internal/controller"
	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/mathengine"
	"github.com/primagen/primagen/internal/render"
	"github.com/primagen/primagen/internal/rng"
	"github.com/primagen/primagen/internal/scenario"
)

// Request is the single caller-facing input.
type Request struct {
	// ModelID names the math model, e.g. "ADDITION".
	ModelID string

	// DifficultyLevel is a "Y.S" string. Takes precedence over YearLevel.
	DifficultyLevel string

	// YearLevel is the legacy bare-year input; sub-level defaults to 3.
	YearLevel int

	// FormatPreference, if set and available, wins format selection.
	FormatPreference format.Format

	// ScenarioTheme is the preferred narrative theme.
	ScenarioTheme scenario.Theme

	// PedagogicalFocus narrows format selection: "fluency", "reasoning",
	// "problem_solving", or "number_sense".
	PedagogicalFocus string

	// DifficultyParams overrides curriculum parameter resolution when
	// non-nil.
	DifficultyParams *difficulty.Params

	// SessionID threads a caller session through for audit.
	SessionID string

	// Cultural overrides the default cultural context when non-nil.
	Cultural *scenario.CulturalContext
}

// EnhancementLevel records how much of the rich pipeline a question used.
type EnhancementLevel string

const (
	// EnhancementFull means a rich (non-direct) format controller ran.
	EnhancementFull EnhancementLevel = "full"

	// EnhancementPartial means the direct-calculation controller ran.
	EnhancementPartial EnhancementLevel = "partial"

	// EnhancementFallback means the selected format had no controller and
	// direct calculation was forced.
	EnhancementFallback EnhancementLevel = "fallback"
)

// Status is the enhancement-status record attached to every question.
type Status struct {
	Level  EnhancementLevel
	Reason string
}

// Setup is the generation audit record.
type Setup struct {
	ControllerUsed       string
	RequestedFormat      format.Format
	ActualFormat         format.Format
	ScenarioID           string
	ScenarioTheme        scenario.Theme
	DistractorStrategies []string
}

// EnhancedQuestion is the final, immutable output of one generation request.
type EnhancedQuestion struct {
	ID            string
	Text          string
	Options       []render.Option
	CorrectIndex  int
	Format        format.Format
	Level         difficulty.Level
	CognitiveLoad int
	Scenario      *scenario.Context
	Distractors   []distractor.Distractor
	Status        Status
	Setup         Setup

	// MathOutput is the raw oracle output, kept for callers that still
	// consume the unrendered fields.
	MathOutput *mathengine.Output

	GenerationTime time.Duration
	CreatedAt      time.Time
}

// Generator is the pipeline coordinator. Stateless across requests aside
// from its read-only collaborator tables.
type Generator struct {
	engine      mathengine.Engine
	scenarios   scenario.Service
	params      difficulty.ParamSource
	controllers map[format.Format]controller.Controller
	selector    *format.Selector
	renderer    *render.Renderer
	src         rng.Source
}

// Options configures a Generator. Zero-value fields get defaults.
type Options struct {
	Engine    mathengine.Engine
	Scenarios scenario.Service
	Params    difficulty.ParamSource
	Src       rng.Source
}

// New wires the full pipeline: engine, scenario service, all eight format
// controllers, the selector over the registered set, and the renderer.
func New(opts Options) *Generator {
	if opts.Src == nil {
		opts.Src = rng.Default()
	}
	if opts.Engine == nil {
		opts.Engine = mathengine.New(opts.Src)
	}
	if opts.Scenarios == nil {
		opts.Scenarios = scenario.NewProcedural(opts.Src)
	}
	if opts.Params == nil {
		opts.Params = difficulty.CurriculumSource{}
	}

	controllers := controller.New(controller.Deps{
		Engine:      opts.Engine,
		Scenarios:   opts.Scenarios,
		Distractors: distractor.NewEngine(nil),
		Src:         opts.Src,
	})

	registered := make([]format.Format, 0, len(controllers))
	for f := range controllers {
		registered = append(registered, f)
	}

	return &Generator{
		engine:      opts.Engine,
		scenarios:   opts.Scenarios,
		params:      opts.Params,
		controllers: controllers,
		selector:    format.NewSelector(registered, opts.Src),
		renderer:    render.New(opts.Src),
		src:         opts.Src,
	}
}

// Generate runs one request through the full pipeline. It fails only on a
// malformed request or when not even the direct-calculation controller is
// registered (a configuration error, not a per-question one).
func (g *Generator) Generate(ctx context.Context, req Request) (*EnhancedQuestion, error) {
	started := time.Now()

	lvl, err := g.parseDifficulty(req)
	if err != nil {
		return nil, err
	}

	params := g.resolveParams(req, lvl)

	available := g.selector.AvailableFormats(req.ModelID, lvl)
	selected, err := g.selector.Select(available, req.FormatPreference, req.PedagogicalFocus)
	if err != nil {
		return nil, fmt.Errorf("format selection for %s at %s: %w", req.ModelID, lvl.DisplayName(), err)
	}

	ctrl, status := g.dispatch(selected)
	if ctrl == nil {
		return nil, fmt.Errorf("no controller registered, not even direct calculation")
	}
	actual := ctrl.Format()

	def := ctrl.Generate(ctx, controller.Params{
		ModelID:          req.ModelID,
		Level:            lvl,
		DifficultyParams: params,
		PreferredTheme:   req.ScenarioTheme,
		Cultural:         req.Cultural,
		SessionID:        req.SessionID,
	})
	// The controller may have fallen back internally; the actually-used
	// format is authoritative.
	def.Format = actual

	rendered, err := g.renderer.Render(def)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	text := rendered.Text
	if degenerateText(text) {
		text = regenerateText(def.ModelID, rendered.Theme, def.Params.MathValues)
	}

	options := g.repairOptions(rendered.Options, def.Solution.CorrectAnswer.Value)
	correctIdx := locateCorrect(options, def.Solution.CorrectAnswer.Value, rendered.CorrectIndex)

	strategies := make([]string, 0, len(def.Solution.Distractors))
	for _, d := range def.Solution.Distractors {
		strategies = append(strategies, d.Strategy)
	}

	scenarioID := ""
	if def.Scenario != nil {
		scenarioID = def.Scenario.ID
	}

	return &EnhancedQuestion{
		ID:            uuid.NewString(),
		Text:          text,
		Options:       options,
		CorrectIndex:  correctIdx,
		Format:        actual,
		Level:         lvl,
		CognitiveLoad: lvl.CognitiveLoad(),
		Scenario:      def.Scenario,
		Distractors:   def.Solution.Distractors,
		Status:        status,
		Setup: Setup{
			ControllerUsed:       string(actual),
			RequestedFormat:      req.FormatPreference,
			ActualFormat:         actual,
			ScenarioID:           scenarioID,
			ScenarioTheme:        rendered.Theme,
			DistractorStrategies: strategies,
		},
		MathOutput:     def.MathOutput,
		GenerationTime: time.Since(started),
		CreatedAt:      time.Now(),
	}, nil
}

// parseDifficulty resolves the request's difficulty: "Y.S" string first,
// then the legacy bare year, then the default. Malformed input is a
// validation failure, never a clamp.
func (g *Generator) parseDifficulty(req Request) (difficulty.Level, error) {
	if req.DifficultyLevel != "" {
		return difficulty.Parse(req.DifficultyLevel)
	}
	if req.YearLevel != 0 {
		return difficulty.FromYear(req.YearLevel)
	}
	return difficulty.DefaultLevel, nil
}

// resolveParams runs the parameter fallback chain: explicit override, then
// the curriculum source, then the model's own defaults, then the generic
// default scaled by year.
func (g *Generator) resolveParams(req Request, lvl difficulty.Level) difficulty.Params {
	if req.DifficultyParams != nil {
		return *req.DifficultyParams
	}
	if params, err := g.params.SubLevelParams(req.ModelID, lvl); err == nil {
		return params
	}
	if m, err := g.engine.Model(req.ModelID); err == nil {
		return m.DefaultParams(lvl.Year)
	}
	return difficulty.GenericDefault(lvl)
}

// dispatch finds the controller for the selected format, forcing direct
// calculation when the format has no controller.
func (g *Generator) dispatch(selected format.Format) (controller.Controller, Status) {
	if ctrl, ok := g.controllers[selected]; ok {
		if selected == format.DirectCalculation {
			return ctrl, Status{Level: EnhancementPartial}
		}
		return ctrl, Status{Level: EnhancementFull}
	}
	ctrl := g.controllers[format.DirectCalculation]
	return ctrl, Status{
		Level:  EnhancementFallback,
		Reason: fmt.Sprintf("no controller for %s, using direct calculation", selected),
	}
}

// degenerateText flags missing, placeholder, or implausibly short question
// text so it can be regenerated rather than surfaced.
func degenerateText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "undefined") || strings.EqualFold(trimmed, "null") {
		return true
	}
	return len(trimmed) < 10
}

// regenerateText deterministically rebuilds question text from the model and
// theme. Second-chance fallback only; a broken question never reaches the
// caller.
func regenerateText(modelID string, theme scenario.Theme, values map[string]float64) string {
	a := values["operand_1"]
	b := values["operand_2"]
	setting := "at school"
	if theme != "" && theme != scenario.ThemeSchool {
		setting = fmt.Sprintf("in a %s problem", scenario.ThemeDisplayName(theme))
	}
	word := strings.ToLower(strings.ReplaceAll(modelID, "_", " "))
	return fmt.Sprintf("Work out this %s question %s: what is %s and %s combined the right way?",
		word, setting, distractor.FormatValue(a), distractor.FormatValue(b))
}

// repairOptions guarantees every option carries a finite numeric value. The
// first broken option becomes the correct value; later ones get a small
// perturbation of it.
func (g *Generator) repairOptions(options []render.Option, correct float64) []render.Option {
	usedCorrect := false
	for i := range options {
		v := options[i].Value
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			if v == correct {
				usedCorrect = true
			}
			continue
		}
		repaired := correct
		if usedCorrect {
			repaired = correct + float64(rng.IntBetween(g.src, 1, 5))
		}
		fmt.Fprintf(os.Stderr, "warning: non-numeric option %d repaired to %v\n", i, repaired)
		options[i].Value = repaired
		options[i].Text = distractor.FormatValue(repaired)
		usedCorrect = true
	}
	return options
}

// locateCorrect re-derives the correct index after any repairs.
func locateCorrect(options []render.Option, correct float64, fallback int) int {
	rounded := math.Round(correct*100) / 100
	for i, opt := range options {
		if opt.Value == rounded || opt.Value == correct {
			return i
		}
	}
	return fallback
}
