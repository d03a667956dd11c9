package orchestrator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/mathengine"
	"github.com/primagen/primagen/internal/render"
	"github.com/primagen/primagen/internal/rng"
	"github.com/primagen/primagen/internal/scenario"
)

func testGenerator(seed string) *Generator {
	return New(Options{Src: rng.NewSeeded(seed)})
}

func TestGenerate_EndToEndDirectAddition(t *testing.T) {
	g := testGenerator("e2e")

	q, err := g.Generate(context.Background(), Request{
		ModelID:          "ADDITION",
		DifficultyLevel:  "2.2",
		FormatPreference: format.DirectCalculation,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if q.Format != format.DirectCalculation {
		t.Errorf("format = %s, want DIRECT_CALCULATION", q.Format)
	}
	if len(q.Options) != 4 {
		t.Fatalf("option count = %d, want 4", len(q.Options))
	}
	if q.Level != (difficulty.Level{Year: 2, SubLevel: 2}) {
		t.Errorf("level = %+v, want 2.2", q.Level)
	}

	a := q.MathOutput.Field("operand_1", -1)
	b := q.MathOutput.Field("operand_2", -1)
	got := q.Options[q.CorrectIndex].Value
	if math.Abs(got-(a+b)) > 0.001 {
		t.Errorf("correct option %v, want %v + %v", got, a, b)
	}

	if q.ID == "" {
		t.Error("missing question id")
	}
	if q.Text == "" {
		t.Error("missing question text")
	}
	if q.Status.Level != EnhancementPartial {
		t.Errorf("status = %s, want partial for direct calculation", q.Status.Level)
	}
	if q.Setup.ActualFormat != format.DirectCalculation {
		t.Errorf("audit actual format = %s", q.Setup.ActualFormat)
	}
}

func TestGenerate_MalformedDifficultyRejected(t *testing.T) {
	g := testGenerator("malformed")

	for _, input := range []string{"abc", "7.1", "3.9", "3.2.1", "0.4"} {
		_, err := g.Generate(context.Background(), Request{
			ModelID:         "ADDITION",
			DifficultyLevel: input,
		})
		var perr *difficulty.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("difficulty %q: got %v, want parse error", input, err)
		}
	}
}

func TestGenerate_LegacyYearLevel(t *testing.T) {
	g := testGenerator("legacy")

	q, err := g.Generate(context.Background(), Request{ModelID: "ADDITION", YearLevel: 5})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Level.Year != 5 || q.Level.SubLevel != difficulty.DefaultSubLevel {
		t.Errorf("level = %+v, want 5.3", q.Level)
	}

	_, err = g.Generate(context.Background(), Request{ModelID: "ADDITION", YearLevel: 9})
	if err == nil {
		t.Error("out-of-range year accepted")
	}
}

func TestGenerate_DefaultsDifficulty(t *testing.T) {
	g := testGenerator("defaults")

	q, err := g.Generate(context.Background(), Request{ModelID: "SUBTRACTION"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Level != difficulty.DefaultLevel {
		t.Errorf("level = %+v, want default %+v", q.Level, difficulty.DefaultLevel)
	}
	if q.CognitiveLoad != difficulty.DefaultLevel.CognitiveLoad() {
		t.Errorf("cognitive load = %d", q.CognitiveLoad)
	}
}

func TestGenerate_UnavailablePreferenceFallsThrough(t *testing.T) {
	g := testGenerator("preference")

	// MULTI_STEP needs year >= 4; at 1.1 the preference cannot be honored
	// and selection falls through to a weighted draw.
	q, err := g.Generate(context.Background(), Request{
		ModelID:          "ADDITION",
		DifficultyLevel:  "1.1",
		FormatPreference: format.MultiStep,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Format == format.MultiStep {
		t.Error("multi-step selected despite year 1 incompatibility")
	}
	if len(q.Options) == 0 {
		t.Error("no options")
	}
}

func TestGenerate_MissingControllerForcesDirectFallback(t *testing.T) {
	src := rng.NewSeeded("missing-controller")
	g := New(Options{Src: src})

	// Deregister one controller while leaving its format selectable, the
	// state a build with a partial controller set would be in.
	delete(g.controllers, format.MultiStep)
	registered := make([]format.Format, 0, len(g.controllers)+1)
	for f := range g.controllers {
		registered = append(registered, f)
	}
	registered = append(registered, format.MultiStep)
	g.selector = format.NewSelector(registered, src)

	q, err := g.Generate(context.Background(), Request{
		ModelID:          "ADDITION",
		DifficultyLevel:  "5.2",
		FormatPreference: format.MultiStep,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if q.Status.Level != EnhancementFallback {
		t.Errorf("status = %s, want fallback", q.Status.Level)
	}
	if q.Status.Reason == "" {
		t.Error("fallback status carries no reason")
	}
	if q.Format != format.DirectCalculation {
		t.Errorf("format = %s, want DIRECT_CALCULATION", q.Format)
	}
	if q.Setup.RequestedFormat != format.MultiStep {
		t.Errorf("audit requested format = %s", q.Setup.RequestedFormat)
	}
	if q.Setup.ActualFormat != format.DirectCalculation {
		t.Errorf("audit actual format = %s", q.Setup.ActualFormat)
	}
	if len(q.Options) == 0 {
		t.Error("no options")
	}
}

func TestGenerate_UnknownModelStillGeneratesDirect(t *testing.T) {
	g := testGenerator("unknown-model")

	// Unmapped models get the default compatibility rule: direct
	// calculation only. The controller then falls back internally when the
	// oracle rejects the model, so the caller still gets a question.
	q, err := g.Generate(context.Background(), Request{ModelID: "TELEPATHY", DifficultyLevel: "3.1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Format != format.DirectCalculation {
		t.Errorf("format = %s, want DIRECT_CALCULATION for an unmapped model", q.Format)
	}
	if len(q.Options) == 0 {
		t.Error("no options")
	}
}

// failingEngine forces every oracle call to error.
type failingEngine struct{}

func (failingEngine) Generate(context.Context, string, difficulty.Params) (*mathengine.Output, error) {
	return nil, errors.New("oracle down")
}

func (failingEngine) Model(string) (mathengine.Model, error) {
	return nil, errors.New("oracle down")
}

func TestGenerate_OracleFailureStillYieldsQuestion(t *testing.T) {
	g := New(Options{Engine: failingEngine{}, Src: rng.NewSeeded("oracle-down")})

	q, err := g.Generate(context.Background(), Request{
		ModelID:         "ADDITION",
		DifficultyLevel: "4.2",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Text == "" {
		t.Error("missing text")
	}
	if len(q.Options) == 0 {
		t.Fatal("no options")
	}
	correct := q.Options[q.CorrectIndex].Value
	if math.IsNaN(correct) || math.IsInf(correct, 0) {
		t.Errorf("correct option not finite: %v", correct)
	}
}

func TestGenerate_OptionValuesAlwaysFinite(t *testing.T) {
	g := testGenerator("finite")

	for _, model := range []string{"ADDITION", "DIVISION", "PERCENTAGE", "UNIT_RATE"} {
		for i := 0; i < 10; i++ {
			q, err := g.Generate(context.Background(), Request{ModelID: model, DifficultyLevel: "5.3"})
			if err != nil {
				t.Fatalf("%s: %v", model, err)
			}
			for _, opt := range q.Options {
				if math.IsNaN(opt.Value) || math.IsInf(opt.Value, 0) {
					t.Errorf("%s: non-finite option value %v", model, opt.Value)
				}
				if opt.Text == "" {
					t.Errorf("%s: empty option text", model)
				}
			}
		}
	}
}

func TestGenerate_ThemePreferenceHonored(t *testing.T) {
	g := testGenerator("theme")

	q, err := g.Generate(context.Background(), Request{
		ModelID:         "ADDITION",
		DifficultyLevel: "3.2",
		ScenarioTheme:   scenario.ThemeCooking,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if q.Scenario == nil {
		t.Fatal("missing scenario")
	}
	if q.Scenario.Theme != scenario.ThemeCooking {
		t.Errorf("theme = %s, want cooking", q.Scenario.Theme)
	}
}

func TestGenerateBatch_PartialFailure(t *testing.T) {
	g := testGenerator("batch")

	requests := []Request{
		{ModelID: "ADDITION", DifficultyLevel: "2.1"},
		{ModelID: "SUBTRACTION", DifficultyLevel: "not-a-level"},
		{ModelID: "MULTIPLICATION", DifficultyLevel: "4.3"},
	}

	result, err := g.GenerateBatch(context.Background(), requests)
	if err != nil {
		t.Fatalf("GenerateBatch: %v", err)
	}
	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 2/1", result.Succeeded, result.Failed)
	}
	if len(result.Items) != 3 {
		t.Fatalf("item count = %d", len(result.Items))
	}
	if result.Items[1].Err == nil {
		t.Error("malformed item recorded no error")
	}
	if result.Items[2].Question == nil {
		t.Error("batch aborted after a failed item")
	}
}

func TestGenerateBatch_ContextCancellation(t *testing.T) {
	g := testGenerator("cancel")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := g.GenerateBatch(ctx, []Request{{ModelID: "ADDITION"}})
	if err == nil {
		t.Error("cancelled batch returned nil error")
	}
	if len(result.Items) != 0 {
		t.Errorf("cancelled batch still processed %d items", len(result.Items))
	}
}

func TestDegenerateText(t *testing.T) {
	cases := map[string]bool{
		"":                          true,
		"   ":                       true,
		"undefined":                 true,
		"What?":                     true,
		"What is 7 + 5?":            false,
		"Priya buys three comics.":  false,
	}
	for text, want := range cases {
		if got := degenerateText(text); got != want {
			t.Errorf("degenerateText(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestRepairOptions(t *testing.T) {
	g := testGenerator("repair")

	options := []render.Option{
		{Value: math.NaN(), Text: "NaN"},
		{Value: 12, Text: "12"},
		{Value: math.Inf(1), Text: "Inf"},
	}
	repaired := g.repairOptions(options, 12)

	for i, opt := range repaired {
		if math.IsNaN(opt.Value) || math.IsInf(opt.Value, 0) {
			t.Errorf("option %d still non-finite: %v", i, opt.Value)
		}
	}
	// The first broken option is repaired before the genuine 12 is seen,
	// so it takes the correct value; the next one must not duplicate it.
	if repaired[0].Value != 12 {
		t.Errorf("first repaired option = %v, want the correct value", repaired[0].Value)
	}
	if repaired[2].Value == 12 {
		t.Error("second repaired option duplicated the correct value")
	}
}
