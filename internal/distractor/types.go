// Package distractor synthesizes plausible wrong answers, each tied to a
// specific misconception a pupil might hold.
package distractor

// Distractor is one wrong answer candidate.
type Distractor struct {
	// Value is the numeric wrong answer.
	Value float64

	// Display is the formatted text shown as the option.
	Display string

	// Strategy is the misconception tag that produced this value,
	// e.g. "wrong-operation", "place-value".
	Strategy string

	// Reasoning is a human-readable rationale for reviewers,
	// e.g. "subtracted instead of adding".
	Reasoning string
}

// Context describes the question a distractor set is being generated for.
type Context struct {
	// MathModel is the model id, e.g. "ADDITION".
	MathModel string

	// Format is the question format tag, e.g. "DIRECT_CALCULATION".
	Format string

	// Operands are the operands of the computation, in order.
	Operands []float64

	// Operation is a lower-case operation word when known
	// ("addition", "subtraction", ...). Empty when not applicable.
	Operation string

	// YearLevel gates how subtle the misconceptions may be.
	YearLevel int
}
