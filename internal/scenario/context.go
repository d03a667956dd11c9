package scenario

import (
	"github.com/primagen/primagen/internal/difficulty"
)

// Character is a named person appearing in the narrative.
type Character struct {
	Name string
	Role string
}

// Item is a priced or counted object the narrative can reference.
type Item struct {
	Name     string
	Category string
	MinValue float64 // typical value range lower bound
	MaxValue float64
	Unit     string // "£", "g", "ml", "" for plain counts
}

// Setting describes where and when the scenario takes place.
type Setting struct {
	Location   string
	TimeOfDay  string
	Atmosphere string
}

// CulturalContext carries locale markers used when formatting values.
type CulturalContext struct {
	// CurrencySymbol prefixes major-unit amounts, e.g. "£1.20".
	CurrencySymbol string

	// MinorUnitSuffix renders sub-unit amounts, e.g. "37p".
	MinorUnitSuffix string
}

// DefaultCulturalContext is the UK default.
func DefaultCulturalContext() CulturalContext {
	return CulturalContext{CurrencySymbol: "£", MinorUnitSuffix: "p"}
}

// Template is a format-tagged narrative template with {placeholder} slots.
type Template struct {
	// Format restricts the template to one question format, empty = any.
	Format string

	// Models restricts the template to specific math models, empty = any.
	Models []string

	// OperandCount is the number of operands the template narrates
	// (0 = any).
	OperandCount int

	// Text is the template body, e.g.
	// "{character} buys a {item} for {price}. ...".
	Text string
}

// Context is one synthesized narrative scenario. Created fresh per question;
// never persisted by the pipeline.
type Context struct {
	ID         string
	Theme      Theme
	Setting    Setting
	Characters []Character
	Items      []Item
	Cultural   CulturalContext
	Templates  []Template
}

// Lead returns the scenario's lead character, or a default when the
// character list is empty.
func (c *Context) Lead() Character {
	if c == nil || len(c.Characters) == 0 {
		return Character{Name: "Sam", Role: "pupil"}
	}
	return c.Characters[0]
}

// Request asks the service for a scenario fitting the question being built.
type Request struct {
	// Theme is the caller's preference; empty means pick one.
	Theme Theme

	// MathModel is the model id the scenario must support.
	MathModel string

	// Level gates vocabulary and value ranges.
	Level difficulty.Level

	// Cultural overrides the default cultural context when non-nil.
	Cultural *CulturalContext
}
