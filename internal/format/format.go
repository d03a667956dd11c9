// Package format defines the cognitive question formats and the policy for
// choosing one: a static model/difficulty compatibility table, then explicit
// preference, then pedagogical focus, then a weighted random draw.
package format

// Format is the cognitive task shape of a question.
type Format string

const (
	DirectCalculation  Format = "DIRECT_CALCULATION"
	Comparison         Format = "COMPARISON"
	Estimation         Format = "ESTIMATION"
	Validation         Format = "VALIDATION"
	MultiStep          Format = "MULTI_STEP"
	MissingValue       Format = "MISSING_VALUE"
	Ordering           Format = "ORDERING"
	PatternRecognition Format = "PATTERN_RECOGNITION"
)

// AllFormats returns every format in display order.
func AllFormats() []Format {
	return []Format{
		DirectCalculation,
		Comparison,
		Estimation,
		Validation,
		MultiStep,
		MissingValue,
		Ordering,
		PatternRecognition,
	}
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	for _, known := range AllFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// DisplayName returns a human-readable name for a format.
func (f Format) DisplayName() string {
	switch f {
	case DirectCalculation:
		return "Direct Calculation"
	case Comparison:
		return "Comparison"
	case Estimation:
		return "Estimation"
	case Validation:
		return "Checking an Answer"
	case MultiStep:
		return "Multi-Step Problem"
	case MissingValue:
		return "Missing Number"
	case Ordering:
		return "Ordering"
	case PatternRecognition:
		return "Spot the Pattern"
	default:
		return string(f)
	}
}

// selectionWeights drives the weighted random draw. Direct calculation is
// the workhorse; pattern recognition and ordering appear least often.
var selectionWeights = map[Format]float64{
	DirectCalculation:  0.30,
	Comparison:         0.12,
	Estimation:         0.12,
	Validation:         0.10,
	MultiStep:          0.14,
	MissingValue:       0.10,
	Ordering:           0.06,
	PatternRecognition: 0.06,
}

// focusFormats maps a pedagogical focus to the formats that serve it.
var focusFormats = map[string][]Format{
	"fluency":         {DirectCalculation},
	"reasoning":       {Comparison, Estimation, Validation},
	"problem_solving": {MultiStep, Validation},
	"number_sense":    {Estimation, Ordering},
}
