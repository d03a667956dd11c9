package controller

import (
	"context"
	"fmt"
	"math"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
)

// benchmarkLadder is the fixed ladder for nearest-benchmark estimation.
var benchmarkLadder = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// estimationController asks for an estimate of an exact result rather than
// the result itself. One of four sub-types is chosen from the model and the
// magnitude of the exact value.
type estimationController struct {
	*base
}

func (c *estimationController) Format() format.Format { return format.Estimation }

func (c *estimationController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

type estimationSubtype string

const (
	subtypeRounding  estimationSubtype = "round-to-place"
	subtypeApprox    estimationSubtype = "approximate"
	subtypeMagnitude estimationSubtype = "order-of-magnitude"
	subtypeBenchmark estimationSubtype = "nearest-benchmark"
)

func (c *estimationController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	canon := out.Canonicalize()
	exact := canon.Result
	if exact <= 0 {
		return nil, fmt.Errorf("estimation needs a positive exact value, got %v", exact)
	}

	sub := chooseSubtype(out.Operation, exact)
	target, pool, hint := estimate(sub, exact)

	sc := c.selectScenario(ctx, p)

	params := question.NewParams()
	params.MathValues["exact"] = exact
	params.MathValues["target"] = target
	params.Formatting["subtype"] = string(sub)
	for i, op := range canon.Operands {
		params.MathValues[fmt.Sprintf("operand_%d", i+1)] = op
	}

	text := fmt.Sprintf("%s works out %s and gets exactly %s. %s",
		sc.Lead().Name, describeComputation(out.Operation, canon.Operands),
		distractor.FormatValue(exact), hint)

	pool = distractor.Dedup(pool, target)
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
			CorrectAnswer: question.Answer{Value: target, Display: distractor.FormatValue(target)},
			Distractors:   pool,
			Explanation:   fmt.Sprintf("%s rounds to %s.", distractor.FormatValue(exact), distractor.FormatValue(target)),
			Strategy:      string(sub),
		},
		MathOutput: out,
	}, nil
}

// chooseSubtype picks the estimation flavour from the model and magnitude.
func chooseSubtype(operation string, exact float64) estimationSubtype {
	switch {
	case exact < 15:
		return subtypeBenchmark
	case exact >= 1000:
		return subtypeMagnitude
	case operation == "MULTIPLICATION" || operation == "UNIT_RATE":
		return subtypeApprox
	default:
		return subtypeRounding
	}
}

// estimate computes the target value and sub-type-specific distractors.
func estimate(sub estimationSubtype, exact float64) (float64, []distractor.Distractor, string) {
	switch sub {
	case subtypeBenchmark:
		idx := nearestBenchmark(exact)
		target := benchmarkLadder[idx]
		var pool []distractor.Distractor
		if idx > 0 {
			pool = append(pool, distractor.Distractor{
				Value: benchmarkLadder[idx-1], Strategy: "adjacent-benchmark",
				Reasoning: "picked the benchmark below"})
		}
		if idx < len(benchmarkLadder)-1 {
			pool = append(pool, distractor.Distractor{
				Value: benchmarkLadder[idx+1], Strategy: "adjacent-benchmark",
				Reasoning: "picked the benchmark above"})
		}
		pool = append(pool, distractor.Distractor{
			Value: round2(target * 2), Strategy: "doubled-magnitude",
			Reasoning: "estimate twice too large"})
		return target, pool, "Which benchmark number is it closest to?"

	case subtypeMagnitude:
		exp := math.Round(math.Log10(exact))
		target := math.Pow(10, exp)
		pool := []distractor.Distractor{
			{Value: target * 10, Strategy: "doubled-magnitude", Reasoning: "one order of magnitude too large"},
			{Value: target / 10, Strategy: "doubled-magnitude", Reasoning: "one order of magnitude too small"},
			{Value: round2(target * 2), Strategy: "doubled-magnitude", Reasoning: "doubled the estimate"},
		}
		return target, pool, "Roughly what power of ten is that?"

	default: // rounding and free approximation share the place-value rule
		pv := placeValueFor(exact)
		target := math.Round(exact/pv) * pv
		pool := []distractor.Distractor{
			{Value: math.Round(exact/(pv*10)) * pv * 10, Strategy: "wrong-place-value",
				Reasoning: "rounded to the next place value up"},
			{Value: math.Floor(exact/pv) * pv, Strategy: "truncation",
				Reasoning: "truncated instead of rounding"},
			{Value: math.Ceil(exact/pv) * pv, Strategy: "always-round-up",
				Reasoning: "always rounds up"},
		}
		hint := fmt.Sprintf("What is that rounded to the nearest %s?", distractor.FormatValue(pv))
		if sub == subtypeApprox {
			hint = "Roughly how much is that?"
		}
		return target, pool, hint
	}
}

// placeValueFor picks the rounding unit for a magnitude: tens below 100,
// hundreds below 1000, and so on.
func placeValueFor(v float64) float64 {
	switch {
	case v < 100:
		return 10
	case v < 1000:
		return 100
	default:
		return 1000
	}
}

// nearestBenchmark returns the index of the closest ladder entry.
func nearestBenchmark(v float64) int {
	best := 0
	bestDist := math.Abs(v - benchmarkLadder[0])
	for i, b := range benchmarkLadder {
		if d := math.Abs(v - b); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// describeComputation renders "a + b" style text for the narrative.
func describeComputation(operation string, operands []float64) string {
	if len(operands) < 2 {
		return "a calculation"
	}
	if operation == "PERCENTAGE" {
		return fmt.Sprintf("%s%% of %s",
			distractor.FormatValue(operands[0]), distractor.FormatValue(operands[1]))
	}
	return fmt.Sprintf("%s %s %s",
		distractor.FormatValue(operands[0]),
		operationSymbol(operation),
		distractor.FormatValue(operands[1]))
}
