// Package render converts an assembled question definition into final
// display text and shuffled multiple-choice options.
package render

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/rng"
	"github.com/primagen/primagen/internal/scenario"
)

// Option is one shuffled multiple-choice option.
type Option struct {
	Text  string
	Value float64
	Index int
}

// Rendered is the renderer's output: final text, shuffled options, and the
// correct option's post-shuffle index.
type Rendered struct {
	Text         string
	Options      []Option
	CorrectIndex int

	// Theme is the narrative theme the text actually reflects. Forced to
	// school when the bare operation fallback produced the text.
	Theme scenario.Theme
}

// Renderer turns question definitions into rendered questions.
type Renderer struct {
	src rng.Source
}

// New builds a renderer. A nil source uses the process-wide one.
func New(src rng.Source) *Renderer {
	if src == nil {
		src = rng.Default()
	}
	return &Renderer{src: src}
}

var placeholderPattern = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

// fixedRecipes backs the {recipe} placeholder when no narrative value
// supplies one.
var fixedRecipes = []string{"flapjacks", "scones", "fruit salad", "pancakes"}

// Render produces the final question text and shuffled options.
//
// Text resolution order: controller-built full text, then the first
// compatible scenario template with every placeholder resolved, then a bare
// operation description (which forces the theme to school so the narrative
// label matches the text).
func (r *Renderer) Render(def *question.Definition) (*Rendered, error) {
	if def == nil {
		return nil, fmt.Errorf("render: nil definition")
	}

	theme := scenario.ThemeSchool
	if def.Scenario != nil {
		theme = def.Scenario.Theme
	}

	text, ok := r.resolveText(def)
	if !ok {
		text = bareText(def)
		theme = scenario.ThemeSchool
	}

	options, correctIdx := r.buildOptions(def)

	return &Rendered{
		Text:         text,
		Options:      options,
		CorrectIndex: correctIdx,
		Theme:        theme,
	}, nil
}

// resolveText tries the controller's full text, then scenario templates.
func (r *Renderer) resolveText(def *question.Definition) (string, bool) {
	if def.Content != nil && strings.TrimSpace(def.Content.FullText) != "" {
		return def.Content.FullText, true
	}
	if def.Scenario == nil {
		return "", false
	}
	for _, tpl := range def.Scenario.Templates {
		if !templateMatches(tpl, def) {
			continue
		}
		if text, ok := r.substitute(tpl.Text, def); ok {
			return text, true
		}
	}
	return "", false
}

// templateMatches checks a template's format, model, and operand-count tags
// against the definition. Empty tags match anything.
func templateMatches(tpl scenario.Template, def *question.Definition) bool {
	if tpl.Format != "" && tpl.Format != string(def.Format) {
		return false
	}
	if len(tpl.Models) > 0 {
		found := false
		for _, m := range tpl.Models {
			if m == def.ModelID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if tpl.OperandCount > 0 && tpl.OperandCount != operandCount(def) {
		return false
	}
	return true
}

func operandCount(def *question.Definition) int {
	count := 0
	for key := range def.Params.MathValues {
		if strings.HasPrefix(key, "operand_") {
			count++
		}
	}
	return count
}

// substitute fills every {placeholder} in the template. Resolution order per
// placeholder: narrative values, math values, character names, then the
// context-aware fallback generators. An unresolvable placeholder fails the
// whole template so the next candidate can be tried.
func (r *Renderer) substitute(text string, def *question.Definition) (string, bool) {
	ok := true
	out := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := match[1 : len(match)-1]
		if v, resolved := r.resolvePlaceholder(key, def); resolved {
			return v
		}
		ok = false
		return match
	})
	return out, ok
}

func (r *Renderer) resolvePlaceholder(key string, def *question.Definition) (string, bool) {
	if v, ok := def.Params.NarrativeValues[key]; ok && v != "" {
		return v, true
	}
	if v, ok := def.Params.MathValues[key]; ok {
		return distractor.FormatValue(v), true
	}

	sc := def.Scenario
	switch key {
	case "character":
		return sc.Lead().Name, true
	case "character_2":
		if sc != nil && len(sc.Characters) > 1 {
			return sc.Characters[1].Name, true
		}
		return "Alex", true
	case "item":
		if sc != nil && len(sc.Items) > 0 {
			return sc.Items[0].Name, true
		}
		return "counter", true
	case "location":
		if sc != nil && sc.Setting.Location != "" {
			return sc.Setting.Location, true
		}
		return "the classroom", true
	case "price":
		// Synthesize a price from the first math operand.
		if v, ok := def.Params.MathValues["operand_1"]; ok {
			cultural := scenario.DefaultCulturalContext()
			if sc != nil {
				cultural = sc.Cultural
			}
			return fmt.Sprintf("%s%.2f", cultural.CurrencySymbol, v), true
		}
		return "", false
	case "recipe":
		return rng.Pick(r.src, fixedRecipes), true
	case "question":
		return bareText(def), true
	}
	return "", false
}

// bareText is the last-resort operation description, e.g. "What is 7 + 5?".
func bareText(def *question.Definition) string {
	a, aok := def.Params.MathValues["operand_1"]
	b, bok := def.Params.MathValues["operand_2"]
	if aok && bok {
		return fmt.Sprintf("What is %s %s %s?",
			distractor.FormatValue(a), modelSymbol(def.ModelID), distractor.FormatValue(b))
	}
	return fmt.Sprintf("What is the answer? (%s)", def.ModelID)
}

func modelSymbol(modelID string) string {
	switch modelID {
	case "SUBTRACTION":
		return "-"
	case "MULTIPLICATION", "AREA_PERIMETER":
		return "×"
	case "DIVISION", "UNIT_RATE":
		return "÷"
	default:
		return "+"
	}
}

// buildOptions assembles and shuffles the option list. Values are rounded to
// two decimal places for display consistency; the correct index is located by
// value equality after the shuffle.
func (r *Renderer) buildOptions(def *question.Definition) ([]Option, int) {
	correct := round2(def.Solution.CorrectAnswer.Value)

	options := []Option{{
		Text:  optionText(def.Solution.CorrectAnswer.Display, correct),
		Value: correct,
	}}
	for _, d := range def.Solution.Distractors {
		v := round2(d.Value)
		options = append(options, Option{
			Text:  optionText(d.Display, v),
			Value: v,
		})
	}

	rng.Shuffle(r.src, options)

	correctIdx := 0
	for i := range options {
		options[i].Index = i
		if options[i].Value == correct {
			correctIdx = i
		}
	}
	return options, correctIdx
}

func optionText(display string, value float64) string {
	if display != "" {
		return display
	}
	return distractor.FormatValue(value)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
