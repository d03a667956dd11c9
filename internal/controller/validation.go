package controller

import (
	"context"
	"fmt"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
)

// validationController presents a character's wrong answer to check and
// correct. The claimed value is drawn from the distractor engine so it
// embodies a real misconception.
type validationController struct {
	*base
}

func (c *validationController) Format() format.Format { return format.Validation }

func (c *validationController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

func (c *validationController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	canon := out.Canonicalize()
	result := canon.Result

	dctx := c.distractorCtx(c.Format(), p, canon.Operands, operationWord(out.Operation))
	candidates := c.deps.Distractors.Generate(result, dctx, distractor.MaxPerQuestion)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no claim candidate for validation question")
	}
	claim := candidates[0]

	sc := c.selectScenario(ctx, p)
	rival := sc.Lead()
	if len(sc.Characters) > 1 {
		rival = sc.Characters[1]
	}

	text := fmt.Sprintf("%s worked out %s and wrote down %s. That answer is wrong. What should it be?",
		rival.Name, describeComputation(out.Operation, canon.Operands), claim.Display)

	params := question.NewParams()
	for i, op := range canon.Operands {
		params.MathValues[fmt.Sprintf("operand_%d", i+1)] = op
	}
	params.MathValues["claimed"] = claim.Value

	// The claimed value leads the distractor list: accepting it is the
	// headline misconception for this format.
	pool := []distractor.Distractor{{
		Value:     claim.Value,
		Display:   claim.Display,
		Strategy:  "accepted-claim",
		Reasoning: "accepted the wrong answer as given",
	}}
	pool = append(pool, candidates[1:]...)
	pool = distractor.Dedup(pool, result)
	if len(pool) > distractor.MaxPerQuestion {
		pool = pool[:distractor.MaxPerQuestion]
	}

	return &question.Definition{
		Format:   c.Format(),
		ModelID:  p.ModelID,
		Level:    p.Level,
		Scenario: sc,
		Params:   params,
		Content:  &question.Content{FullText: text},
		Solution: question.Solution{
			CorrectAnswer: question.Answer{Value: result, Display: distractor.FormatValue(result)},
			Distractors:   pool,
			WorkingSteps: []string{
				fmt.Sprintf("check: %s = %s, not %s",
					describeComputation(out.Operation, canon.Operands),
					distractor.FormatValue(result), claim.Display),
			},
			Explanation: fmt.Sprintf("%s — the likely slip: %s.",
				fmt.Sprintf("The correct answer is %s", distractor.FormatValue(result)), claim.Reasoning),
			Strategy: "check-and-correct",
		},
		MathOutput: out,
	}, nil
}
