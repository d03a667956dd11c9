package controller

import (
	"context"
	"fmt"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/rng"
)

// patternController shows the first terms of a sequence and asks for the
// next. Younger years get counting patterns; doubling patterns appear from
// year 4.
type patternController struct {
	*base
}

func (c *patternController) Format() format.Format { return format.PatternRecognition }

func (c *patternController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

func (c *patternController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	geometric := p.Level.Year >= 4 && c.src().Float64() < 0.3

	start := float64(rng.IntBetween(c.src(), 1, 9))
	var step float64
	var terms []float64
	termCount := 4

	if geometric {
		step = float64(rng.IntBetween(c.src(), 2, 3))
		v := start
		for i := 0; i < termCount; i++ {
			terms = append(terms, v)
			v *= step
		}
	} else {
		step = float64(rng.IntBetween(c.src(), 2, 2+2*p.Level.Year))
		v := start
		for i := 0; i < termCount; i++ {
			terms = append(terms, v)
			v += step
		}
	}

	last := terms[len(terms)-1]
	next := last + step
	rule := fmt.Sprintf("add %s each time", distractor.FormatValue(step))
	if geometric {
		next = last * step
		rule = fmt.Sprintf("multiply by %s each time", distractor.FormatValue(step))
	}

	sc := c.selectScenario(ctx, p)
	text := fmt.Sprintf("%s spots a number pattern: %s, ... What number comes next?",
		sc.Lead().Name, joinValues(terms))

	params := question.NewParams()
	for i, t := range terms {
		params.MathValues[fmt.Sprintf("term_%d", i+1)] = t
	}
	params.MathValues["step"] = step

	pool := []distractor.Distractor{
		{Value: round2(last + step + 1), Strategy: "wrong-step",
			Reasoning: "misread the step size"},
		{Value: last, Strategy: "repeated-term",
			Reasoning: "repeated the last term"},
		{Value: round2(last + terms[0]), Strategy: "added-first-term",
			Reasoning: "added the first term instead of the step"},
	}
	if geometric {
		pool[0] = distractor.Distractor{Value: round2(last + step), Strategy: "wrong-rule",
			Reasoning: "added instead of multiplying"}
	}
	pool = distractor.Dedup(pool, next)
	if len(pool) > distractor.MaxPerQuestion {
		pool = pool[:distractor.MaxPerQuestion]
	}
	for i := range pool {
		pool[i].Display = distractor.FormatValue(pool[i].Value)
	}

	return &question.Definition{
		Format:   c.Format(),
		ModelID:  p.ModelID,
		Level:    p.Level,
		Scenario: sc,
		Params:   params,
		Content:  &question.Content{FullText: text},
		Solution: question.Solution{
			CorrectAnswer: question.Answer{Value: next, Display: distractor.FormatValue(next)},
			Distractors:   pool,
			WorkingSteps:  []string{fmt.Sprintf("rule: %s", rule)},
			Explanation: fmt.Sprintf("The rule is to %s, so after %s comes %s.",
				rule, distractor.FormatValue(last), distractor.FormatValue(next)),
			Strategy: "find-the-rule",
		},
		MathOutput: out,
	}, nil
}
