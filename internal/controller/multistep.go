package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/mathengine"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/rng"
	"github.com/primagen/primagen/internal/scenario"
)

// multiStepController plans a chain of 2-4 operations where each step feeds
// the next. Every intermediate result stays a positive whole number and
// every division is exact.
type multiStepController struct {
	*base
}

func (c *multiStepController) Format() format.Format { return format.MultiStep }

func (c *multiStepController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

// planStep is one operation in the chain. The step's first operand is the
// previous step's result.
type planStep struct {
	op      string // "add", "subtract", "multiply", "divide"
	operand float64
	result  float64
}

// resultCap keeps chained results in a child-friendly range.
const resultCap = 500

func (c *multiStepController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	start := startValue(out, c.src())
	steps, err := c.planSteps(start, stepCount(p.Level.Year, c.src()))
	if err != nil {
		return nil, err
	}

	sc := c.selectScenario(ctx, p)
	final := steps[len(steps)-1].result

	params := question.NewParams()
	params.MathValues["start"] = start
	var working []string
	prev := start
	for i, s := range steps {
		params.MathValues[fmt.Sprintf("step_%d_result", i+1)] = s.result
		working = append(working, fmt.Sprintf("%s %s %s = %s",
			distractor.FormatValue(prev), stepSymbol(s.op),
			distractor.FormatValue(s.operand), distractor.FormatValue(s.result)))
		prev = s.result
	}

	text := narrateSteps(sc, start, steps)

	pool := c.stepDistractors(start, steps)
	pool = distractor.Dedup(pool, final)
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
			CorrectAnswer: question.Answer{Value: final, Display: distractor.FormatValue(final)},
			Distractors:   pool,
			WorkingSteps:  working,
			Explanation:   fmt.Sprintf("Work through each step in order: %s.", strings.Join(working, ", then ")),
			Strategy:      "step-by-step",
		},
		MathOutput: out,
	}, nil
}

// stepCount picks the chain length for a year: at most 2 steps up to year 2,
// 2-3 up to year 4, 2-4 beyond.
func stepCount(year int, src rng.Source) int {
	switch {
	case year <= 2:
		return 2
	case year <= 4:
		return rng.IntBetween(src, 2, 3)
	default:
		return rng.IntBetween(src, 2, 4)
	}
}

// startValue seeds the chain from the oracle output's first operand, clamped
// to a workable whole number.
func startValue(out *mathengine.Output, src rng.Source) float64 {
	canon := out.Canonicalize()
	v := 0.0
	if len(canon.Operands) > 0 {
		v = float64(int(canon.Operands[0]))
	}
	if v < 5 || v > 100 {
		v = float64(rng.IntBetween(src, 5, 40))
	}
	return v
}

// planSteps builds the operation chain. Subtraction keeps results at 1 or
// above; division searches small factors so it is always exact; results are
// capped to stay small.
func (c *multiStepController) planSteps(start float64, count int) ([]planStep, error) {
	steps := make([]planStep, 0, count)
	current := start

	for i := 0; i < count; i++ {
		ops := feasibleOps(current)
		if len(ops) == 0 {
			return nil, fmt.Errorf("no feasible operation from %v", current)
		}
		op := rng.Pick(c.src(), ops)

		var operand float64
		switch op {
		case "add":
			operand = float64(rng.IntBetween(c.src(), 2, 20))
		case "subtract":
			// Never drop below 1.
			operand = float64(rng.IntBetween(c.src(), 1, int(current)-1))
		case "multiply":
			operand = float64(rng.IntBetween(c.src(), 2, 4))
		case "divide":
			divisors := smallDivisors(int(current))
			operand = float64(rng.Pick(c.src(), divisors))
		}

		current = applyStep(current, op, operand)
		steps = append(steps, planStep{op: op, operand: operand, result: current})
	}
	return steps, nil
}

// feasibleOps lists the operations that keep the chain well-formed from the
// current value.
func feasibleOps(current float64) []string {
	var ops []string
	if current <= resultCap-20 {
		ops = append(ops, "add")
	}
	if current >= 2 {
		ops = append(ops, "subtract")
	}
	// The multiplier drawn in planSteps can be as large as 4.
	if current*4 <= resultCap {
		ops = append(ops, "multiply")
	}
	if len(smallDivisors(int(current))) > 0 {
		ops = append(ops, "divide")
	}
	return ops
}

// smallDivisors returns the divisors of n in [2,10] that divide exactly.
func smallDivisors(n int) []int {
	var out []int
	for d := 2; d <= 10; d++ {
		if n >= d && n%d == 0 {
			out = append(out, d)
		}
	}
	return out
}

func applyStep(current float64, op string, operand float64) float64 {
	switch op {
	case "add":
		return current + operand
	case "subtract":
		return current - operand
	case "multiply":
		return current * operand
	case "divide":
		return current / operand
	}
	return current
}

func stepSymbol(op string) string {
	switch op {
	case "add":
		return "+"
	case "subtract":
		return "-"
	case "multiply":
		return "×"
	case "divide":
		return "÷"
	}
	return "?"
}

// stepDistractors covers the classic multi-step slips: stopping one step
// early, inverting one step, swapping the last two steps, and a small final
// slip.
func (c *multiStepController) stepDistractors(start float64, steps []planStep) []distractor.Distractor {
	final := steps[len(steps)-1].result
	var pool []distractor.Distractor

	if len(steps) >= 2 {
		pool = append(pool, distractor.Distractor{
			Value:     steps[len(steps)-2].result,
			Strategy:  "stopped-early",
			Reasoning: "stopped after the penultimate step",
		})
	}

	// Invert the last step's operation.
	last := steps[len(steps)-1]
	prev := start
	if len(steps) >= 2 {
		prev = steps[len(steps)-2].result
	}
	inverted := applyStep(prev, invertOp(last.op), last.operand)
	if inverted > 0 {
		pool = append(pool, distractor.Distractor{
			Value:     round2(inverted),
			Strategy:  "inverted-step",
			Reasoning: fmt.Sprintf("did the opposite of %s in the last step", last.op),
		})
	}

	// Swap the order of the last two steps.
	if len(steps) >= 2 {
		a, b := steps[len(steps)-2], steps[len(steps)-1]
		base := start
		if len(steps) >= 3 {
			base = steps[len(steps)-3].result
		}
		swapped := applyStep(applyStep(base, b.op, b.operand), a.op, a.operand)
		if swapped > 0 {
			pool = append(pool, distractor.Distractor{
				Value:     round2(swapped),
				Strategy:  "swapped-steps",
				Reasoning: "did the last two steps in the wrong order",
			})
		}
	}

	slip := 2.0
	pool = append(pool, distractor.Distractor{
		Value:     round2(final + slip),
		Strategy:  "small-slip",
		Reasoning: "arithmetic slip on the final step",
	})

	return pool
}

func invertOp(op string) string {
	switch op {
	case "add":
		return "subtract"
	case "subtract":
		return "add"
	case "multiply":
		return "divide"
	case "divide":
		return "multiply"
	}
	return op
}

// narrateSteps renders the themed story enumerating each step.
func narrateSteps(sc *scenario.Context, start float64, steps []planStep) string {
	lead := sc.Lead().Name
	noun, opening := stepTheme(sc)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s. ", lead, opening, distractor.FormatValue(start), noun)
	for i, s := range steps {
		fmt.Fprintf(&b, "%s ", stepPhrase(lead, s, noun, i))
	}
	fmt.Fprintf(&b, "How many %s does %s have now?", noun, lead)
	return b.String()
}

// stepTheme picks the counted noun and opening verb for the scenario theme.
func stepTheme(sc *scenario.Context) (noun, opening string) {
	switch sc.Theme {
	case scenario.ThemeShopping, scenario.ThemePocketMoney:
		return "pounds", "starts with"
	case scenario.ThemeSports:
		return "points", "scores"
	case scenario.ThemeSchool:
		return "stickers", "has"
	default:
		if len(sc.Items) > 0 {
			return sc.Items[0].Name + "s", "collects"
		}
		return "counters", "has"
	}
}

func stepPhrase(lead string, s planStep, noun string, index int) string {
	connector := "Then"
	if index == 0 {
		connector = "First"
	}
	v := distractor.FormatValue(s.operand)
	switch s.op {
	case "add":
		return fmt.Sprintf("%s %s gets %s more.", connector, lead, v)
	case "subtract":
		return fmt.Sprintf("%s %s gives away %s.", connector, lead, v)
	case "multiply":
		return fmt.Sprintf("%s the number of %s is multiplied by %s.", connector, noun, v)
	case "divide":
		return fmt.Sprintf("%s the %s are shared equally into %s groups and %s keeps one group.", connector, noun, v, lead)
	}
	return ""
}
