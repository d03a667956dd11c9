package render

import (
	"sort"
	"strings"
	"testing"

	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/rng"
	"github.com/primagen/primagen/internal/scenario"
)

func fixtureDefinition() *question.Definition {
	params := question.NewParams()
	params.MathValues["operand_1"] = 7
	params.MathValues["operand_2"] = 5

	return &question.Definition{
		Format:  format.DirectCalculation,
		ModelID: "ADDITION",
		Level:   difficulty.Level{Year: 3, SubLevel: 2},
		Scenario: &scenario.Context{
			ID:    "fixture",
			Theme: scenario.ThemeShopping,
			Characters: []scenario.Character{
				{Name: "Priya", Role: "shopper"},
			},
			Cultural: scenario.DefaultCulturalContext(),
		},
		Params: params,
		Solution: question.Solution{
			CorrectAnswer: question.Answer{Value: 12, Display: "12"},
			Distractors: []distractor.Distractor{
				{Value: 2, Display: "2", Strategy: "wrong-operation"},
				{Value: 11, Display: "11", Strategy: "small-slip"},
				{Value: 120, Display: "120", Strategy: "place-value"},
			},
		},
		Content: &question.Content{FullText: "Priya has 7 apples and buys 5 more. How many now?"},
	}
}

func TestRender_UsesControllerText(t *testing.T) {
	r := New(rng.NewSeeded("text"))
	def := fixtureDefinition()

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Text != def.Content.FullText {
		t.Errorf("text = %q, want controller text", got.Text)
	}
	if got.Theme != scenario.ThemeShopping {
		t.Errorf("theme = %s, want shopping", got.Theme)
	}
}

func TestRender_OptionsAndCorrectIndex(t *testing.T) {
	r := New(rng.NewSeeded("options"))
	def := fixtureDefinition()

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(got.Options) != 4 {
		t.Fatalf("option count = %d, want 4", len(got.Options))
	}
	for i, opt := range got.Options {
		if opt.Index != i {
			t.Errorf("option %d carries index %d", i, opt.Index)
		}
	}
	correct := got.Options[got.CorrectIndex]
	if correct.Value != 12 {
		t.Errorf("correct option value = %v, want 12", correct.Value)
	}
}

func TestRender_ShuffleIsPermutation(t *testing.T) {
	def := fixtureDefinition()

	first, err := New(rng.NewSeeded("perm-a")).Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := New(rng.NewSeeded("perm-b")).Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if first.Text != second.Text {
		t.Errorf("text differs between renders of a fixed definition")
	}

	a := optionValues(first.Options)
	b := optionValues(second.Options)
	sort.Float64s(a)
	sort.Float64s(b)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("option multisets differ: %v vs %v", a, b)
		}
	}

	if first.Options[first.CorrectIndex].Text != second.Options[second.CorrectIndex].Text {
		t.Errorf("correct option text differs between renders")
	}
}

func TestRender_TemplateSubstitution(t *testing.T) {
	r := New(rng.NewSeeded("template"))
	def := fixtureDefinition()
	def.Content = nil
	def.Scenario.Items = []scenario.Item{{Name: "comic", Category: "toys"}}
	def.Scenario.Templates = []scenario.Template{
		{
			Format: string(format.DirectCalculation),
			Models: []string{"ADDITION"},
			Text:   "{character} buys a {item} at {location}. {question}",
		},
	}
	def.Scenario.Setting.Location = "the market"

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Priya buys a comic at the market. What is 7 + 5?"
	if got.Text != want {
		t.Errorf("text = %q, want %q", got.Text, want)
	}
	if got.Theme != scenario.ThemeShopping {
		t.Errorf("template-rendered text must keep the scenario theme")
	}
}

func TestRender_SkipsIncompatibleTemplates(t *testing.T) {
	r := New(rng.NewSeeded("skip"))
	def := fixtureDefinition()
	def.Content = nil
	def.Scenario.Templates = []scenario.Template{
		{Format: string(format.Ordering), Text: "should not match: {character}"},
		{Models: []string{"DIVISION"}, Text: "should not match either"},
		{Text: "{character} counts to {operand_1}."},
	}

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Text != "Priya counts to 7." {
		t.Errorf("text = %q, want the only compatible template", got.Text)
	}
}

func TestRender_BareFallbackForcesSchoolTheme(t *testing.T) {
	r := New(rng.NewSeeded("bare"))
	def := fixtureDefinition()
	def.Content = nil
	def.Scenario.Templates = nil

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Text != "What is 7 + 5?" {
		t.Errorf("text = %q, want bare operation description", got.Text)
	}
	if got.Theme != scenario.ThemeSchool {
		t.Errorf("theme = %s, want school after bare fallback", got.Theme)
	}
}

func TestRender_UnresolvablePlaceholderFailsTemplate(t *testing.T) {
	r := New(rng.NewSeeded("unresolved"))
	def := fixtureDefinition()
	def.Content = nil
	def.Scenario.Templates = []scenario.Template{
		{Text: "{character} measures {wingspan} metres."},
	}

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got.Text, "{") {
		t.Errorf("unresolved placeholder leaked into text: %q", got.Text)
	}
	if got.Theme != scenario.ThemeSchool {
		t.Errorf("theme = %s, want school after falling through all templates", got.Theme)
	}
}

func TestRender_ValuesRoundedToTwoPlaces(t *testing.T) {
	r := New(rng.NewSeeded("round"))
	def := fixtureDefinition()
	def.Solution.CorrectAnswer = question.Answer{Value: 3.14159}
	def.Solution.Distractors = []distractor.Distractor{{Value: 2.71828}}

	got, err := r.Render(def)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, opt := range got.Options {
		if opt.Value != 3.14 && opt.Value != 2.72 {
			t.Errorf("option value %v not rounded to 2 places", opt.Value)
		}
	}
	if got.Options[got.CorrectIndex].Value != 3.14 {
		t.Errorf("correct index does not point at the rounded correct value")
	}
}

func optionValues(options []Option) []float64 {
	values := make([]float64, len(options))
	for i, o := range options {
		values[i] = o.Value
	}
	return values
}
