// Package mathengine is the arithmetic oracle behind question generation.
//
// Given a model id and parameter bounds it produces an Output: the operands,
// intermediate values and final result of one concrete computation. The rest
// of the pipeline treats Output as opaque apart from named fields, so every
// reader must tolerate missing fields — the shape varies by operation.
package mathengine

// Output is the raw numeric result of one generated computation.
type Output struct {
	// Operation is the model id that produced this output, e.g. "ADDITION".
	Operation string

	// Fields holds the operation-specific named values, e.g. "operand_1",
	// "minuend", "quotient". Field names differ per operation.
	Fields map[string]float64
}

// Field returns the named field, or fallback if absent.
func (o *Output) Field(name string, fallback float64) float64 {
	if o == nil || o.Fields == nil {
		return fallback
	}
	if v, ok := o.Fields[name]; ok {
		return v
	}
	return fallback
}

// Has reports whether the named field is present.
func (o *Output) Has(name string) bool {
	if o == nil || o.Fields == nil {
		return false
	}
	_, ok := o.Fields[name]
	return ok
}

// Canonical is the normalized view of an Output: every operation reduces to
// an operand list, a result, and leftover named extras.
type Canonical struct {
	Operands []float64
	Result   float64
	Extra    map[string]float64
}

// operandFields lists, per operation, which fields are the operands and
// which is the result. Operations absent from the table fall back to
// "operand_1"/"operand_2"/"result".
var operandFields = map[string]struct {
	operands []string
	result   string
}{
	"ADDITION":           {[]string{"operand_1", "operand_2"}, "result"},
	"SUBTRACTION":        {[]string{"minuend", "subtrahend"}, "result"},
	"MULTIPLICATION":     {[]string{"multiplicand", "multiplier"}, "result"},
	"DIVISION":           {[]string{"dividend", "divisor"}, "quotient"},
	"PERCENTAGE":         {[]string{"percentage", "base_value"}, "result"},
	"FRACTION_OF_AMOUNT": {[]string{"numerator", "denominator", "amount"}, "result"},
	"UNIT_RATE":          {[]string{"total_price", "quantity"}, "unit_price"},
	"AREA_PERIMETER":     {[]string{"length", "width"}, "area"},
}

// Canonicalize reduces the output to the canonical operands/result shape.
// Missing fields default to zero; unnamed fields land in Extra.
func (o *Output) Canonicalize() Canonical {
	spec, ok := operandFields[o.Operation]
	if !ok {
		spec.operands = []string{"operand_1", "operand_2"}
		spec.result = "result"
	}

	c := Canonical{Extra: make(map[string]float64)}
	named := map[string]bool{spec.result: true}
	for _, f := range spec.operands {
		c.Operands = append(c.Operands, o.Field(f, 0))
		named[f] = true
	}
	c.Result = o.Field(spec.result, 0)

	for k, v := range o.Fields {
		if !named[k] {
			c.Extra[k] = v
		}
	}
	return c
}
