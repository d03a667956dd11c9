package controller

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/rng"
)

// orderingController generates a shuffled value set and asks for it in
// ascending or descending order. Options are candidate orderings; each
// option's numeric value is a position-weighted signature of its sequence so
// options stay distinct and numerically comparable.
type orderingController struct {
	*base
}

func (c *orderingController) Format() format.Format { return format.Ordering }

func (c *orderingController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

func (c *orderingController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	out, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("math output: %w", err)
	}

	values := c.generateValues(out.Canonicalize().Result, p.Level.Year)
	ascending := c.src().IntN(2) == 0

	shuffled := make([]float64, len(values))
	copy(shuffled, values)
	rng.Shuffle(c.src(), shuffled)

	correct := make([]float64, len(shuffled))
	copy(correct, shuffled)
	sort.Float64s(correct)
	if !ascending {
		reverse(correct)
	}

	direction := "smallest to largest"
	if !ascending {
		direction = "largest to smallest"
	}

	sc := c.selectScenario(ctx, p)
	text := fmt.Sprintf("%s writes down the numbers %s. Put them in order from %s.",
		sc.Lead().Name, joinValues(shuffled), direction)

	params := question.NewParams()
	for i, v := range shuffled {
		params.MathValues[fmt.Sprintf("value_%d", i+1)] = v
	}
	params.Formatting["direction"] = direction

	answer := question.Answer{Value: sequenceSignature(correct), Display: joinValues(correct)}
	pool := orderingDistractors(correct, shuffled)
	pool = distractor.Dedup(pool, answer.Value)
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
			CorrectAnswer: answer,
			Distractors:   pool,
			Explanation:   fmt.Sprintf("In order from %s: %s.", direction, joinValues(correct)),
			Strategy:      "compare-place-values",
		},
		MathOutput: out,
	}, nil
}

// generateValues builds 3-6 distinct values (count by year) in a shared
// magnitude range around the oracle result. Higher years may get one
// decimal-equivalent value for variety.
func (c *orderingController) generateValues(anchor float64, year int) []float64 {
	count := 3
	switch {
	case year >= 6:
		count = 6
	case year >= 5:
		count = 5
	case year >= 3:
		count = 4
	}

	max := int(anchor) * 2
	if max < 20 {
		max = 20
	}

	seen := make(map[float64]bool)
	var values []float64
	for len(values) < count {
		v := float64(rng.IntBetween(c.src(), 1, max))
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	if year >= 5 && c.src().Float64() < 0.5 {
		// Replace one value with a decimal neighbour of another.
		dec := round2(values[0] + 0.5)
		if !seen[dec] {
			values[len(values)-1] = dec
		}
	}
	return values
}

// orderingDistractors covers the classic ordering mistakes relative to the
// correct sequence.
func orderingDistractors(correct, shuffled []float64) []distractor.Distractor {
	reversed := make([]float64, len(correct))
	copy(reversed, correct)
	reverse(reversed)

	lastTwo := make([]float64, len(correct))
	copy(lastTwo, correct)
	n := len(lastTwo)
	lastTwo[n-1], lastTwo[n-2] = lastTwo[n-2], lastTwo[n-1]

	adjacent := make([]float64, len(correct))
	copy(adjacent, correct)
	if n > 2 {
		adjacent[0], adjacent[1] = adjacent[1], adjacent[0]
	}

	candidates := []struct {
		seq       []float64
		strategy  string
		reasoning string
	}{
		{reversed, "reversed-order", "ordered the wrong way round"},
		{shuffled, "unsorted", "left the numbers as written"},
		{lastTwo, "partially-correct", "swapped the last two numbers"},
		{adjacent, "nearly-correct", "one adjacent pair out of place"},
	}

	var pool []distractor.Distractor
	for _, cand := range candidates {
		pool = append(pool, distractor.Distractor{
			Value:     sequenceSignature(cand.seq),
			Display:   joinValues(cand.seq),
			Strategy:  cand.strategy,
			Reasoning: cand.reasoning,
		})
	}
	return pool
}

// sequenceSignature maps an ordered sequence to a number that differs for
// any two sequences related by a transposition or reversal. Used as the
// option value for ordering questions.
func sequenceSignature(seq []float64) float64 {
	var sig float64
	for i, v := range seq {
		sig += v * float64(i+1)
	}
	return round2(sig)
}

// CorrectOrder returns the indices that sort values in the given direction.
// Exported for tests and downstream consumers that need to re-apply the
// ordering.
func CorrectOrder(values []float64, ascending bool) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if ascending {
			return values[idx[a]] < values[idx[b]]
		}
		return values[idx[a]] > values[idx[b]]
	})
	return idx
}

func reverse(s []float64) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func joinValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = distractor.FormatValue(v)
	}
	return strings.Join(parts, ", ")
}
