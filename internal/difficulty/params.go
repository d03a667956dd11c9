package difficulty

import "fmt"

// Params bounds the numbers a math model may draw when generating a
// question at a particular level.
type Params struct {
	// MaxValue is the upper bound for generated operands.
	MaxValue int

	// MinValue is the lower bound for generated operands.
	MinValue int

	// OperandCount is how many operands the operation combines.
	OperandCount int

	// DecimalPlaces is the number of decimal places allowed (0 = whole numbers).
	DecimalPlaces int
}

// ParamSource resolves curriculum-aligned parameters for a model at a level.
// Implementations may fail for models that are not yet curriculum-mapped;
// callers are expected to fall back (see orchestrator).
type ParamSource interface {
	SubLevelParams(modelID string, lvl Level) (Params, error)
}

// yearBand holds the base parameters for one school year.
// Sub-levels scale MaxValue within the band.
type yearBand struct {
	maxValue      int
	decimalPlaces int
}

// curriculum maps model id -> year (1-6) -> base parameters.
// Derived from UK national curriculum number ranges per year.
var curriculum = map[string][6]yearBand{
	"ADDITION": {
		{maxValue: 10}, {maxValue: 20}, {maxValue: 100},
		{maxValue: 1000}, {maxValue: 10000, decimalPlaces: 2}, {maxValue: 100000, decimalPlaces: 2},
	},
	"SUBTRACTION": {
		{maxValue: 10}, {maxValue: 20}, {maxValue: 100},
		{maxValue: 1000}, {maxValue: 10000, decimalPlaces: 2}, {maxValue: 100000, decimalPlaces: 2},
	},
	"MULTIPLICATION": {
		{maxValue: 5}, {maxValue: 10}, {maxValue: 12},
		{maxValue: 12}, {maxValue: 100}, {maxValue: 1000, decimalPlaces: 2},
	},
	"DIVISION": {
		{maxValue: 10}, {maxValue: 20}, {maxValue: 50},
		{maxValue: 144}, {maxValue: 500}, {maxValue: 1000},
	},
	"PERCENTAGE": {
		{}, {}, {},
		{}, {maxValue: 100}, {maxValue: 1000},
	},
	"FRACTION_OF_AMOUNT": {
		{}, {maxValue: 20}, {maxValue: 40},
		{maxValue: 100}, {maxValue: 200}, {maxValue: 500},
	},
	"UNIT_RATE": {
		{}, {}, {},
		{maxValue: 50}, {maxValue: 100, decimalPlaces: 2}, {maxValue: 500, decimalPlaces: 2},
	},
	"AREA_PERIMETER": {
		{}, {}, {maxValue: 10},
		{maxValue: 20}, {maxValue: 50}, {maxValue: 100},
	},
}

// CurriculumSource is the static curriculum mapping shipped with the binary.
type CurriculumSource struct{}

// SubLevelParams returns the curriculum parameters for the model at the
// level, scaled by sub-level within the year band. Fails for models with no
// curriculum mapping or years where the model is not taught.
func (CurriculumSource) SubLevelParams(modelID string, lvl Level) (Params, error) {
	if err := lvl.Validate(); err != nil {
		return Params{}, err
	}
	bands, ok := curriculum[modelID]
	if !ok {
		return Params{}, fmt.Errorf("model %q not curriculum-mapped", modelID)
	}
	band := bands[lvl.Year-1]
	if band.maxValue == 0 {
		return Params{}, fmt.Errorf("model %q not taught in year %d", modelID, lvl.Year)
	}

	// Sub-level scales the band: 1 = 40% of the range, 4 = full range.
	scaled := band.maxValue * (2 + lvl.SubLevel) / 6
	if scaled < 2 {
		scaled = 2
	}

	return Params{
		MaxValue:      scaled,
		MinValue:      1,
		OperandCount:  2,
		DecimalPlaces: band.decimalPlaces,
	}, nil
}

// GenericDefault is the last-resort parameter set, scaled only by year.
func GenericDefault(lvl Level) Params {
	p := Params{
		MaxValue:     10 * lvl.Year * lvl.Year,
		MinValue:     1,
		OperandCount: 2,
	}
	if lvl.Year >= 5 {
		p.DecimalPlaces = 2
	}
	return p
}
