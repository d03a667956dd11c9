package distractor

import (
	"fmt"
	"math"
)

// Rule is one misconception strategy in the registry.
type Rule struct {
	// ID tags distractors produced by this rule.
	ID string

	// Formats lists the question formats the rule applies to; empty = all.
	Formats []string

	// Models lists the math models the rule applies to; empty = all.
	Models []string

	// Weight orders rule invocation; higher weight rules contribute first.
	Weight float64

	// Generate produces candidates. Candidates equal to the correct answer
	// are permitted here — the engine's dedup pass removes them. Generators
	// must not assume they run alone.
	Generate func(correct float64, ctx Context) []Distractor
}

// AppliesTo reports whether the rule covers the given format and model.
func (r *Rule) AppliesTo(format, model string) bool {
	return containsOrEmpty(r.Formats, format) && containsOrEmpty(r.Models, model)
}

func containsOrEmpty(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// seedRules is the built-in misconception registry.
var seedRules = []Rule{
	{
		ID:       "wrong-operation",
		Models:   []string{"ADDITION", "SUBTRACTION", "MULTIPLICATION", "DIVISION"},
		Weight:   0.9,
		Generate: wrongOperation,
	},
	{
		ID:       "place-value",
		Models:   []string{"ADDITION", "SUBTRACTION", "MULTIPLICATION"},
		Weight:   0.7,
		Generate: placeValue,
	},
	{
		ID:       "unit-confusion",
		Models:   []string{"PERCENTAGE"},
		Weight:   0.8,
		Generate: unitConfusion,
	},
	{
		ID:       "small-slip",
		Weight:   0.4,
		Generate: smallSlip,
	},
}

// SeedRules returns a copy of the built-in rule set.
func SeedRules() []Rule {
	rules := make([]Rule, len(seedRules))
	copy(rules, seedRules)
	return rules
}

// wrongOperation applies the sibling operation to the same operands:
// subtracting instead of adding, multiplying instead of dividing, and so on.
func wrongOperation(correct float64, ctx Context) []Distractor {
	if len(ctx.Operands) < 2 {
		return nil
	}
	a, b := ctx.Operands[0], ctx.Operands[1]

	var value float64
	var reason string
	switch ctx.MathModel {
	case "ADDITION":
		value, reason = math.Abs(a-b), "subtracted instead of adding"
	case "SUBTRACTION":
		value, reason = a+b, "added instead of subtracting"
	case "MULTIPLICATION":
		value, reason = a+b, "added instead of multiplying"
	case "DIVISION":
		value, reason = a*b, "multiplied instead of dividing"
	default:
		return nil
	}

	return []Distractor{{
		Value:     round2(value),
		Strategy:  "wrong-operation",
		Reasoning: reason,
	}}
}

// placeValue shifts the answer by one order of magnitude either way.
func placeValue(correct float64, _ Context) []Distractor {
	return []Distractor{
		{
			Value:     round2(correct * 10),
			Strategy:  "place-value",
			Reasoning: "answer one place value too large",
		},
		{
			Value:     round2(correct / 10),
			Strategy:  "place-value",
			Reasoning: "answer one place value too small",
		},
	}
}

// unitConfusion covers percentage slips: forgetting the division by 100, or
// treating the percentage as an absolute amount to add.
func unitConfusion(correct float64, ctx Context) []Distractor {
	if len(ctx.Operands) < 2 {
		return nil
	}
	pct, base := ctx.Operands[0], ctx.Operands[1]
	return []Distractor{
		{
			Value:     round2(pct * base),
			Strategy:  "unit-confusion",
			Reasoning: "forgot to divide by 100",
		},
		{
			Value:     round2(base + pct),
			Strategy:  "unit-confusion",
			Reasoning: "added the percentage as an amount",
		},
	}
}

// smallSlip is a near-miss arithmetic error on the final value.
func smallSlip(correct float64, ctx Context) []Distractor {
	delta := 1.0
	if ctx.YearLevel >= 5 && correct >= 100 {
		delta = 10
	}
	return []Distractor{
		{
			Value:     round2(correct + delta),
			Strategy:  "small-slip",
			Reasoning: fmt.Sprintf("counted %v too many", delta),
		},
		{
			Value:     round2(correct - delta),
			Strategy:  "small-slip",
			Reasoning: fmt.Sprintf("counted %v too few", delta),
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
