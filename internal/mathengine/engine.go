package mathengine

import (
	"context"
	"fmt"
	"math"

	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/rng"
)

// Engine generates math outputs for registered models.
type Engine interface {
	// Generate produces one computation for the model within the parameter
	// bounds. Failure aborts the current generation attempt only.
	Generate(ctx context.Context, modelID string, params difficulty.Params) (*Output, error)

	// Model returns the registered model, used for the parameter fallback
	// chain when the curriculum source has no mapping.
	Model(modelID string) (Model, error)
}

// Model describes one registered operation.
type Model interface {
	ID() string

	// DefaultParams returns the model's own parameter defaults for a year,
	// used when no curriculum mapping exists.
	DefaultParams(year int) difficulty.Params

	// Compute generates one computation within the bounds.
	Compute(src rng.Source, params difficulty.Params) *Output
}

// DefaultEngine is the deterministic reference oracle.
type DefaultEngine struct {
	models map[string]Model
	src    rng.Source
}

// New creates a DefaultEngine with all built-in models registered.
func New(src rng.Source) *DefaultEngine {
	if src == nil {
		src = rng.Default()
	}
	e := &DefaultEngine{models: make(map[string]Model), src: src}
	for _, m := range builtinModels() {
		e.models[m.ID()] = m
	}
	return e
}

func (e *DefaultEngine) Generate(ctx context.Context, modelID string, params difficulty.Params) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, ok := e.models[modelID]
	if !ok {
		return nil, fmt.Errorf("unknown math model %q", modelID)
	}
	if params.MaxValue < 2 {
		params = difficulty.GenericDefault(difficulty.DefaultLevel)
	}
	return m.Compute(e.src, params), nil
}

func (e *DefaultEngine) Model(modelID string) (Model, error) {
	m, ok := e.models[modelID]
	if !ok {
		return nil, fmt.Errorf("unknown math model %q", modelID)
	}
	return m, nil
}

// ModelIDs returns the ids of all registered models.
func (e *DefaultEngine) ModelIDs() []string {
	ids := make([]string, 0, len(e.models))
	for id := range e.models {
		ids = append(ids, id)
	}
	return ids
}

// basicModel implements Model with a compute func and a per-year default.
type basicModel struct {
	id       string
	defaults func(year int) difficulty.Params
	compute  func(src rng.Source, p difficulty.Params) *Output
}

func (m *basicModel) ID() string { return m.id }

func (m *basicModel) DefaultParams(year int) difficulty.Params {
	return m.defaults(year)
}

func (m *basicModel) Compute(src rng.Source, p difficulty.Params) *Output {
	return m.compute(src, p)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// drawOperand picks a value in [MinValue, MaxValue], honoring decimal places.
func drawOperand(src rng.Source, p difficulty.Params) float64 {
	v := float64(rng.IntBetween(src, p.MinValue, p.MaxValue))
	if p.DecimalPlaces > 0 && src.Float64() < 0.5 {
		frac := float64(src.IntN(100)) / 100
		v = roundTo(v+frac, p.DecimalPlaces)
	}
	return v
}

func builtinModels() []Model {
	linearDefaults := func(year int) difficulty.Params {
		return difficulty.GenericDefault(difficulty.Level{Year: year, SubLevel: difficulty.DefaultSubLevel})
	}

	return []Model{
		&basicModel{id: "ADDITION", defaults: linearDefaults,
			compute: func(src rng.Source, p difficulty.Params) *Output {
				a := drawOperand(src, p)
				b := drawOperand(src, p)
				return &Output{Operation: "ADDITION", Fields: map[string]float64{
					"operand_1": a, "operand_2": b, "result": roundTo(a+b, 2),
				}}
			}},
		&basicModel{id: "SUBTRACTION", defaults: linearDefaults,
			compute: func(src rng.Source, p difficulty.Params) *Output {
				a := drawOperand(src, p)
				b := drawOperand(src, p)
				// Keep results positive: larger value is the minuend.
				if b > a {
					a, b = b, a
				}
				return &Output{Operation: "SUBTRACTION", Fields: map[string]float64{
					"minuend": a, "subtrahend": b, "result": roundTo(a-b, 2),
				}}
			}},
		&basicModel{id: "MULTIPLICATION",
			defaults: func(year int) difficulty.Params {
				return difficulty.Params{MaxValue: 2 + 2*year, MinValue: 2, OperandCount: 2}
			},
			compute: func(src rng.Source, p difficulty.Params) *Output {
				a := float64(rng.IntBetween(src, p.MinValue, p.MaxValue))
				b := float64(rng.IntBetween(src, 2, 12))
				return &Output{Operation: "MULTIPLICATION", Fields: map[string]float64{
					"multiplicand": a, "multiplier": b, "result": a * b,
				}}
			}},
		&basicModel{id: "DIVISION",
			defaults: func(year int) difficulty.Params {
				return difficulty.Params{MaxValue: 10 * year, MinValue: 2, OperandCount: 2}
			},
			compute: func(src rng.Source, p difficulty.Params) *Output {
				// Build the dividend from divisor x quotient so division is
				// always exact.
				divisor := float64(rng.IntBetween(src, 2, 12))
				maxQuotient := p.MaxValue / int(divisor)
				if maxQuotient < 2 {
					maxQuotient = 2
				}
				quotient := float64(rng.IntBetween(src, 1, maxQuotient))
				return &Output{Operation: "DIVISION", Fields: map[string]float64{
					"dividend": divisor * quotient, "divisor": divisor, "quotient": quotient,
				}}
			}},
		&basicModel{id: "PERCENTAGE",
			defaults: func(year int) difficulty.Params {
				return difficulty.Params{MaxValue: 100 * year / 2, MinValue: 10, OperandCount: 2}
			},
			compute: func(src rng.Source, p difficulty.Params) *Output {
				pct := float64(rng.Pick(src, []int{5, 10, 20, 25, 50, 75}))
				// Base is a multiple of 20 so common percentages stay whole.
				base := float64(rng.IntBetween(src, 1, p.MaxValue/20+1) * 20)
				return &Output{Operation: "PERCENTAGE", Fields: map[string]float64{
					"percentage": pct, "base_value": base, "result": roundTo(pct/100*base, 2),
				}}
			}},
		&basicModel{id: "FRACTION_OF_AMOUNT",
			defaults: func(year int) difficulty.Params {
				return difficulty.Params{MaxValue: 20 * year, MinValue: 4, OperandCount: 2}
			},
			compute: func(src rng.Source, p difficulty.Params) *Output {
				den := float64(rng.Pick(src, []int{2, 3, 4, 5, 10}))
				num := float64(rng.IntBetween(src, 1, int(den)-1))
				// Amount is a multiple of the denominator for a whole answer.
				maxMult := p.MaxValue / int(den)
				if maxMult < 1 {
					maxMult = 1
				}
				amount := den * float64(rng.IntBetween(src, 1, maxMult))
				return &Output{Operation: "FRACTION_OF_AMOUNT", Fields: map[string]float64{
					"numerator": num, "denominator": den, "amount": amount,
					"result": num / den * amount,
				}}
			}},
		&basicModel{id: "UNIT_RATE",
			defaults: func(year int) difficulty.Params {
				return difficulty.Params{MaxValue: 20 * year, MinValue: 2, OperandCount: 2, DecimalPlaces: 2}
			},
			compute: func(src rng.Source, p difficulty.Params) *Output {
				qty := float64(rng.IntBetween(src, 2, 10))
				unit := roundTo(float64(rng.IntBetween(src, 1, p.MaxValue))/10, 2)
				if unit <= 0 {
					unit = 0.1
				}
				return &Output{Operation: "UNIT_RATE", Fields: map[string]float64{
					"total_price": roundTo(unit*qty, 2), "quantity": qty, "unit_price": unit,
				}}
			}},
		&basicModel{id: "AREA_PERIMETER",
			defaults: func(year int) difficulty.Params {
				return difficulty.Params{MaxValue: 5 * year, MinValue: 1, OperandCount: 2}
			},
			compute: func(src rng.Source, p difficulty.Params) *Output {
				l := float64(rng.IntBetween(src, 2, p.MaxValue))
				w := float64(rng.IntBetween(src, 1, p.MaxValue))
				return &Output{Operation: "AREA_PERIMETER", Fields: map[string]float64{
					"length": l, "width": w, "area": l * w, "perimeter": 2 * (l + w),
				}}
			}},
	}
}
