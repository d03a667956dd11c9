package controller

import (
	"context"
	"fmt"
	"math"

	"github.com/primagen/primagen/internal/distractor"
	"github.com/primagen/primagen/internal/format"
	"github.com/primagen/primagen/internal/question"
	"github.com/primagen/primagen/internal/scenario"
)

// comparisonController builds two parallel computations and asks which side
// wins and by how much. The correct answer is the margin.
type comparisonController struct {
	*base
}

func (c *comparisonController) Format() format.Format { return format.Comparison }

func (c *comparisonController) Generate(ctx context.Context, p Params) *question.Definition {
	return c.generate(ctx, c.Format(), p, func() (*question.Definition, error) {
		return c.tryGenerate(ctx, p)
	})
}

func (c *comparisonController) tryGenerate(ctx context.Context, p Params) (*question.Definition, error) {
	first, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("first output: %w", err)
	}
	second, err := c.mathOutput(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("second output: %w", err)
	}

	a := first.Canonicalize().Result
	b := second.Canonicalize().Result
	// A tie makes "by how much" degenerate; separate the sides.
	if a == b {
		b++
	}

	winner, loser := a, b
	winnerSide := "first"
	if b > a {
		winner, loser = b, a
		winnerSide = "second"
	}
	diff := round2(winner - loser)

	sc := c.selectScenario(ctx, p)
	lead := sc.Lead()
	rival := scenario.Character{Name: "Alex", Role: "friend"}
	if len(sc.Characters) > 1 {
		rival = sc.Characters[1]
	}
	// A one-character scenario would otherwise have the lead competing
	// with themselves.
	if rival.Name == lead.Name {
		rival.Name = rivalName(lead.Name)
	}

	winnerName := lead.Name
	if winnerSide == "second" {
		winnerName = rival.Name
	}

	params := question.NewParams()
	params.MathValues["first_result"] = a
	params.MathValues["second_result"] = b
	params.MathValues["difference"] = diff
	params.NarrativeValues["winner"] = winnerName

	text := fmt.Sprintf("%s scores %s and %s scores %s. How many more does %s have than the other?",
		lead.Name, distractor.FormatValue(a), rival.Name, distractor.FormatValue(b), winnerName)

	answer := question.Answer{Value: diff, Display: distractor.FormatValue(diff)}

	pool := []distractor.Distractor{
		{
			Value:     loser,
			Strategy:  "picked-other-option",
			Reasoning: "compared the wrong way round and gave the smaller amount",
		},
		{
			Value:     0,
			Strategy:  "thinks-equal",
			Reasoning: "thinks the two amounts are the same",
		},
		{
			Value:     round2(diff * 2),
			Strategy:  "doubled-difference",
			Reasoning: "arithmetic slip doubled the difference",
		},
	}
	pool = distractor.Dedup(pool, diff)
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
			CorrectAnswer: answer,
			Distractors:   pool,
			WorkingSteps: []string{
				fmt.Sprintf("%s has %s, %s has %s", lead.Name, distractor.FormatValue(a), rival.Name, distractor.FormatValue(b)),
				fmt.Sprintf("%s - %s = %s", distractor.FormatValue(winner), distractor.FormatValue(loser), distractor.FormatValue(diff)),
			},
			Explanation: fmt.Sprintf("%s has more: %s - %s = %s.",
				winnerName, distractor.FormatValue(winner), distractor.FormatValue(loser), distractor.FormatValue(diff)),
			Strategy: "compare-then-subtract",
		},
		MathOutput: first,
	}, nil
}

// rivalName picks a second character name guaranteed to differ from the lead.
func rivalName(taken string) string {
	for _, n := range []string{"Alex", "Jo", "Sam"} {
		if n != taken {
			return n
		}
	}
	return "Alex"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
