package format

import "github.com/primagen/primagen/internal/difficulty"

// Rule gates one format to a difficulty window for a model.
type Rule struct {
	Format      Format
	MinYear     int
	MaxYear     int
	MinSubLevel int
}

// Matches reports whether the level falls inside the rule's window.
func (r Rule) Matches(lvl difficulty.Level) bool {
	if lvl.Year < r.MinYear || lvl.Year > r.MaxYear {
		return false
	}
	if lvl.Year == r.MinYear && lvl.SubLevel < r.MinSubLevel {
		return false
	}
	return true
}

// arithmeticRules is the shared rule set for the four basic operations.
var arithmeticRules = []Rule{
	{Format: DirectCalculation, MinYear: 1, MaxYear: 6},
	{Format: Comparison, MinYear: 2, MaxYear: 6},
	{Format: Estimation, MinYear: 3, MaxYear: 6},
	{Format: Validation, MinYear: 2, MaxYear: 6},
	{Format: MultiStep, MinYear: 4, MaxYear: 6},
	{Format: MissingValue, MinYear: 2, MaxYear: 6, MinSubLevel: 2},
	{Format: Ordering, MinYear: 2, MaxYear: 6},
	{Format: PatternRecognition, MinYear: 2, MaxYear: 6},
}

// compatibility maps model id -> rules. Models without an entry fall back to
// direct calculation across all years and sub-levels.
var compatibility = map[string][]Rule{
	"ADDITION":       arithmeticRules,
	"SUBTRACTION":    arithmeticRules,
	"MULTIPLICATION": arithmeticRules,
	"DIVISION": {
		{Format: DirectCalculation, MinYear: 2, MaxYear: 6},
		{Format: Comparison, MinYear: 3, MaxYear: 6},
		{Format: Validation, MinYear: 3, MaxYear: 6},
		{Format: MultiStep, MinYear: 4, MaxYear: 6},
		{Format: MissingValue, MinYear: 3, MaxYear: 6},
	},
	"PERCENTAGE": {
		{Format: DirectCalculation, MinYear: 5, MaxYear: 6},
		{Format: Comparison, MinYear: 5, MaxYear: 6},
		{Format: Estimation, MinYear: 5, MaxYear: 6},
		{Format: Validation, MinYear: 5, MaxYear: 6, MinSubLevel: 2},
		{Format: MultiStep, MinYear: 6, MaxYear: 6},
	},
	"FRACTION_OF_AMOUNT": {
		{Format: DirectCalculation, MinYear: 2, MaxYear: 6},
		{Format: Comparison, MinYear: 3, MaxYear: 6},
		{Format: Validation, MinYear: 3, MaxYear: 6},
		{Format: MissingValue, MinYear: 4, MaxYear: 6},
	},
	"UNIT_RATE": {
		{Format: DirectCalculation, MinYear: 4, MaxYear: 6},
		{Format: Comparison, MinYear: 4, MaxYear: 6},
		{Format: Estimation, MinYear: 5, MaxYear: 6},
	},
	"AREA_PERIMETER": {
		{Format: DirectCalculation, MinYear: 3, MaxYear: 6},
		{Format: Comparison, MinYear: 4, MaxYear: 6},
		{Format: Estimation, MinYear: 4, MaxYear: 6},
		{Format: MissingValue, MinYear: 5, MaxYear: 6},
	},
}

// defaultRules applies to models with no explicit compatibility entry.
var defaultRules = []Rule{
	{Format: DirectCalculation, MinYear: 1, MaxYear: 6},
}

// rulesFor returns the rule set for a model.
func rulesFor(modelID string) []Rule {
	if rules, ok := compatibility[modelID]; ok {
		return rules
	}
	return defaultRules
}
