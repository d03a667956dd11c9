package controller

import (
	"context"
	"fmt"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/rng"
)

// missingValueController hides one slot of a binary equation and asks for
// it. The framing varies with year: bare equations for the youngest,
// balanced equations and word problems in the middle years, a simple
// function framing from year 6.
type missingValueController struct {
	*base
}

func (c *missingValueController) Format() format.Format { return format.MissingValue }

func (c *missingValueController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

type hiddenSlot string

const (
	hideOperand1 hiddenSlot = "operand1"
	hideOperand2 hiddenSlot = "operand2"
	hideResult   hiddenSlot = "result"
)

type framing string

const (
	frameBare     framing = "bare"
	frameBalanced framing = "balanced"
	frameFunction framing = "function"
	frameWord     framing = "word"
)

func (c *missingValueController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	canon := out.Canonicalize()
	if len(canon.Operands) < 2 {
		return nil, fmt.Errorf("missing-value needs a binary operation, got %d operands", len(canon.Operands))
	}
	a, b, result := canon.Operands[0], canon.Operands[1], canon.Result

	slot := rng.Pick(c.src(), []hiddenSlot{hideOperand1, hideOperand2, hideResult})
	frame := chooseFraming(p.Level.Year, c.src())

	hidden := result
	switch slot {
	case hideOperand1:
		hidden = a
	case hideOperand2:
		hidden = b
	}

	sc := c.selectScenario(ctx, p)
	sym := operationSymbol(out.Operation)
	text := frameText(frame, slot, sym, a, b, result, sc.Lead().Name)

	params := question.NewParams()
	params.MathValues["operand_1"] = a
	params.MathValues["operand_2"] = b
	params.MathValues["result"] = result
	params.Formatting["hidden"] = string(slot)
	params.Formatting["framing"] = string(frame)

	pool := missingValueDistractors(slot, sym, a, b, result, hidden)
	pool = distractor.Dedup(pool, hidden)
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
			CorrectAnswer: question.Answer{Value: hidden, Display: distractor.FormatValue(hidden)},
			Distractors:   pool,
			WorkingSteps:  []string{inverseWorking(slot, sym, a, b, result)},
			Explanation: fmt.Sprintf("Use the inverse operation: %s. The missing value is %s.",
				inverseWorking(slot, sym, a, b, result), distractor.FormatValue(hidden)),
			Strategy: "inverse-operation",
		},
		MathOutput: out,
	}, nil
}

// chooseFraming gates framings by year: bare only up to year 2, the
// function framing from year 6.
func chooseFraming(year int, src rng.Source) framing {
	if year <= 2 {
		return frameBare
	}
	options := []framing{frameBare, frameBalanced, frameWord}
	if year >= 6 {
		options = append(options, frameFunction)
	}
	return rng.Pick(src, options)
}

func frameText(frame framing, slot hiddenSlot, sym string, a, b, result float64, name string) string {
	fa, fb, fr := distractor.FormatValue(a), distractor.FormatValue(b), distractor.FormatValue(result)
	switch slot {
	case hideOperand1:
		fa = "?"
	case hideOperand2:
		fb = "?"
	default:
		fr = "?"
	}

	switch frame {
	case frameBalanced:
		return fmt.Sprintf("Balance the equation: %s %s %s = %s. What is the missing number?", fa, sym, fb, fr)
	case frameFunction:
		// f(x) = x <op> b framing for the oldest pupils.
		return fmt.Sprintf("The machine uses the rule f(x) = x %s %s. %s puts in %s and gets out %s. What is the missing number?",
			sym, fb, name, fa, fr)
	case frameWord:
		return fmt.Sprintf("%s writes the number sentence %s %s %s = %s but smudges one number. What is the smudged number?",
			name, fa, sym, fb, fr)
	default:
		return fmt.Sprintf("%s %s %s = %s. What is the missing number?", fa, sym, fb, fr)
	}
}

// inverseWorking renders the inverse-operation line that recovers the
// hidden slot.
func inverseWorking(slot hiddenSlot, sym string, a, b, result float64) string {
	fa, fb, fr := distractor.FormatValue(a), distractor.FormatValue(b), distractor.FormatValue(result)
	inv := map[string]string{"+": "-", "-": "+", "×": "÷", "÷": "×"}[sym]

	switch slot {
	case hideResult:
		return fmt.Sprintf("%s %s %s = %s", fa, sym, fb, fr)
	case hideOperand2:
		if sym == "-" || sym == "÷" {
			// a - ? = r  =>  ? = a - r;  a ÷ ? = r  =>  ? = a ÷ r
			return fmt.Sprintf("%s %s %s = %s", fa, sym, fr, fb)
		}
		return fmt.Sprintf("%s %s %s = %s", fr, inv, fa, fb)
	default: // hideOperand1
		return fmt.Sprintf("%s %s %s = %s", fr, inv, fb, fa)
	}
}

// missingValueDistractors covers the classic inverse-operation slips.
func missingValueDistractors(slot hiddenSlot, sym string, a, b, result, hidden float64) []distractor.Distractor {
	var wrongInverse float64
	switch sym {
	case "+":
		wrongInverse = result + b
	case "-":
		wrongInverse = result - b
	case "×":
		if b != 0 {
			wrongInverse = result * b
		}
	case "÷":
		if b != 0 {
			wrongInverse = result / b
		}
	}
	if slot == hideResult {
		// Hiding the result makes "wrong inverse" the sibling operation.
		switch sym {
		case "+":
			wrongInverse = a - b
		case "-":
			wrongInverse = a + b
		case "×":
			wrongInverse = a + b
		case "÷":
			wrongInverse = a * b
		}
	}

	confused := a
	if slot == hideOperand1 {
		confused = b
	}

	return []distractor.Distractor{
		{Value: round2(wrongInverse), Strategy: "wrong-inverse",
			Reasoning: "applied the wrong inverse operation"},
		{Value: round2(hidden + 1), Strategy: "small-slip",
			Reasoning: "arithmetic slip of one"},
		{Value: confused, Strategy: "confused-given",
			Reasoning: "gave one of the numbers already in the equation"},
		{Value: result, Strategy: "order-of-operations",
			Reasoning: "read the equation left to right and gave the result"},
	}
}
