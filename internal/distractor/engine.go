package distractor

import (
	"fmt"
	"sort"
	"strconv"
)

// MaxPerQuestion caps the distractors attached to any one question.
const MaxPerQuestion = 3

// Engine generates misconception-driven wrong answers from a rule registry.
// The registry is read-only after construction.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine. A nil rule slice uses the built-in registry.
func NewEngine(rules []Rule) *Engine {
	if rules == nil {
		rules = SeedRules()
	}
	// Highest-weight rules contribute candidates first.
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	return &Engine{rules: sorted}
}

// Generate produces up to count distractors for the correct answer.
// Candidates equal to the correct value or duplicating an earlier candidate
// are dropped; when trimming, one distractor per strategy is kept before any
// strategy repeats.
func (e *Engine) Generate(correct float64, ctx Context, count int) []Distractor {
	if count <= 0 || count > MaxPerQuestion {
		count = MaxPerQuestion
	}

	var pool []Distractor
	for i := range e.rules {
		r := &e.rules[i]
		if !r.AppliesTo(ctx.Format, ctx.MathModel) {
			continue
		}
		pool = append(pool, r.Generate(correct, ctx)...)
	}

	pool = Dedup(pool, correct)
	pool = trimDiverse(pool, count)

	for i := range pool {
		if pool[i].Display == "" {
			pool[i].Display = FormatValue(pool[i].Value)
		}
	}
	return pool
}

// Dedup removes candidates whose value equals the correct answer or repeats
// an earlier candidate's value. Mandatory: generators do not guard against
// colliding with the correct value (equal operands make "wrong operation"
// produce it, for example).
func Dedup(pool []Distractor, correct float64) []Distractor {
	seen := map[float64]bool{round2(correct): true}
	out := pool[:0]
	for _, d := range pool {
		v := round2(d.Value)
		if seen[v] {
			continue
		}
		seen[v] = true
		d.Value = v
		out = append(out, d)
	}
	return out
}

// trimDiverse trims the pool to count entries, preferring distinct
// strategies over repeats of one strategy.
func trimDiverse(pool []Distractor, count int) []Distractor {
	if len(pool) <= count {
		return pool
	}

	var out []Distractor
	used := make(map[string]bool)

	// First pass: one per strategy, in pool order.
	for _, d := range pool {
		if len(out) == count {
			return out
		}
		if used[d.Strategy] {
			continue
		}
		used[d.Strategy] = true
		out = append(out, d)
	}

	// Second pass: fill remaining slots with leftovers.
	taken := make(map[float64]bool, len(out))
	for _, d := range out {
		taken[d.Value] = true
	}
	for _, d := range pool {
		if len(out) == count {
			break
		}
		if taken[d.Value] {
			continue
		}
		taken[d.Value] = true
		out = append(out, d)
	}
	return out
}

// FormatValue renders a numeric value the way options display it: whole
// numbers without a decimal point, otherwise up to two decimal places.
func FormatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.2f", v)
}
