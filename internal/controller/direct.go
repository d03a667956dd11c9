package controller

import (
	"context"
	"fmt"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/mathengine"
	"github.com/primagen/primagen/internal/question"
)

// directController is the workhorse format: state the computation, ask for
// the result.
type directController struct {
	*base
}

func (c *directController) Format() format.Format { return format.DirectCalculation }

func (c *directController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

func (c *directController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	sc := c.selectScenario(ctx, p)
	currency := isCurrencyScenario(sc)

	params := question.NewParams()
	operands, result, working := extractFields(out, params)

	if currency {
		params.Formatting["currency"] = "true"
		for key := range params.MathValues {
			params.NarrativeValues[key] = formatCurrency(params.MathValues[key], sc.Cultural)
		}
	}

	answer := question.Answer{
		Value:   result,
		Display: formatAnswer(result, currency, sc.Cultural),
	}

	ds := c.deps.Distractors.Generate(result,
		c.distractorCtx(c.Format(), p, operands, operationWord(out.Operation)),
		distractor.MaxPerQuestion)
	if currency {
		for i := range ds {
			ds[i].Display = formatCurrency(ds[i].Value, sc.Cultural)
		}
	}

	return &question.Definition{
		Format:   c.Format(),
		ModelID:  p.ModelID,
		Level:    p.Level,
		Scenario: sc,
		Params:   params,
		Solution: question.Solution{
			CorrectAnswer: answer,
			Distractors:   ds,
			WorkingSteps:  working,
			Explanation:   fmt.Sprintf("%s, so the answer is %s.", working[len(working)-1], answer.Display),
		},
		MathOutput: out,
	}, nil
}

// extractFields maps the operation-specific output fields into the
// parameter bag and returns the operands, result and working steps.
// Each operation has its own field names; absent fields default safely.
func extractFields(out *mathengine.Output, params question.Params) (operands []float64, result float64, working []string) {
	switch out.Operation {
	case "SUBTRACTION":
		a := out.Field("minuend", 0)
		b := out.Field("subtrahend", 0)
		result = out.Field("result", a-b)
		params.MathValues["operand_1"] = a
		params.MathValues["operand_2"] = b
		working = []string{fmt.Sprintf("%s - %s = %s",
			distractor.FormatValue(a), distractor.FormatValue(b), distractor.FormatValue(result))}
		return []float64{a, b}, result, working

	case "MULTIPLICATION":
		a := out.Field("multiplicand", 0)
		b := out.Field("multiplier", 0)
		result = out.Field("result", a*b)
		params.MathValues["operand_1"] = a
		params.MathValues["operand_2"] = b
		working = []string{fmt.Sprintf("%s × %s = %s",
			distractor.FormatValue(a), distractor.FormatValue(b), distractor.FormatValue(result))}
		return []float64{a, b}, result, working

	case "DIVISION":
		a := out.Field("dividend", 0)
		b := out.Field("divisor", 1)
		if b == 0 {
			b = 1
		}
		result = out.Field("quotient", a/b)
		params.MathValues["operand_1"] = a
		params.MathValues["operand_2"] = b
		working = []string{fmt.Sprintf("%s ÷ %s = %s",
			distractor.FormatValue(a), distractor.FormatValue(b), distractor.FormatValue(result))}
		return []float64{a, b}, result, working

	case "PERCENTAGE":
		pct := out.Field("percentage", 0)
		base := out.Field("base_value", 0)
		result = out.Field("result", pct/100*base)
		params.MathValues["percentage"] = pct
		params.MathValues["operand_1"] = pct
		params.MathValues["operand_2"] = base
		working = []string{
			fmt.Sprintf("%s%% of %s = %s ÷ 100 × %s = %s",
				distractor.FormatValue(pct), distractor.FormatValue(base),
				distractor.FormatValue(pct), distractor.FormatValue(base),
				distractor.FormatValue(result)),
		}
		return []float64{pct, base}, result, working

	case "FRACTION_OF_AMOUNT":
		num := out.Field("numerator", 1)
		den := out.Field("denominator", 2)
		amount := out.Field("amount", 0)
		result = out.Field("result", num/den*amount)
		params.MathValues["numerator"] = num
		params.MathValues["denominator"] = den
		params.MathValues["operand_1"] = amount
		working = []string{
			fmt.Sprintf("%s ÷ %s = %s", distractor.FormatValue(amount),
				distractor.FormatValue(den), distractor.FormatValue(amount/den)),
			fmt.Sprintf("%s × %s = %s", distractor.FormatValue(amount/den),
				distractor.FormatValue(num), distractor.FormatValue(result)),
		}
		return []float64{num, den, amount}, result, working

	case "UNIT_RATE":
		total := out.Field("total_price", 0)
		qty := out.Field("quantity", 1)
		if qty == 0 {
			qty = 1
		}
		result = out.Field("unit_price", total/qty)
		params.MathValues["operand_1"] = total
		params.MathValues["operand_2"] = qty
		working = []string{fmt.Sprintf("%s ÷ %s = %s",
			distractor.FormatValue(total), distractor.FormatValue(qty), distractor.FormatValue(result))}
		return []float64{total, qty}, result, working

	case "AREA_PERIMETER":
		l := out.Field("length", 0)
		w := out.Field("width", 0)
		result = out.Field("area", l*w)
		params.MathValues["operand_1"] = l
		params.MathValues["operand_2"] = w
		params.Units["operand_1"] = "cm"
		params.Units["operand_2"] = "cm"
		working = []string{fmt.Sprintf("area = %s × %s = %s",
			distractor.FormatValue(l), distractor.FormatValue(w), distractor.FormatValue(result))}
		return []float64{l, w}, result, working

	default: // ADDITION and anything unrecognized
		a := out.Field("operand_1", 0)
		b := out.Field("operand_2", 0)
		result = out.Field("result", a+b)
		params.MathValues["operand_1"] = a
		params.MathValues["operand_2"] = b
		working = []string{fmt.Sprintf("%s + %s = %s",
			distractor.FormatValue(a), distractor.FormatValue(b), distractor.FormatValue(result))}
		return []float64{a, b}, result, working
	}
}
