package distractor

import "testing"

func additionCtx() Context {
	return Context{
		MathModel: "ADDITION",
		Format:    "DIRECT_CALCULATION",
		Operands:  []float64{7, 5},
		Operation: "addition",
		YearLevel: 3,
	}
}

func TestGenerate_NeverEqualsCorrect(t *testing.T) {
	e := NewEngine(nil)
	correct := 12.0
	ds := e.Generate(correct, additionCtx(), 3)
	if len(ds) == 0 {
		t.Fatal("no distractors generated")
	}
	for _, d := range ds {
		if d.Value == correct {
			t.Errorf("distractor %+v equals correct answer", d)
		}
	}
}

func TestGenerate_NoDuplicateValues(t *testing.T) {
	e := NewEngine(nil)
	ds := e.Generate(12, additionCtx(), 3)
	seen := make(map[float64]bool)
	for _, d := range ds {
		if seen[d.Value] {
			t.Errorf("duplicate value %v", d.Value)
		}
		seen[d.Value] = true
	}
}

func TestGenerate_Capped(t *testing.T) {
	e := NewEngine(nil)
	for _, n := range []int{0, 1, 3, 10} {
		ds := e.Generate(12, additionCtx(), n)
		max := n
		if n <= 0 || n > MaxPerQuestion {
			max = MaxPerQuestion
		}
		if len(ds) > max {
			t.Errorf("count %d: got %d distractors", n, len(ds))
		}
	}
}

// Equal operands make "wrong operation" produce |a-b| = 0 for addition and
// a+b = correct for multiplication-style slips; dedup must cope.
func TestGenerate_EqualOperands(t *testing.T) {
	e := NewEngine(nil)
	ctx := Context{
		MathModel: "SUBTRACTION",
		Format:    "DIRECT_CALCULATION",
		Operands:  []float64{6, 3},
		YearLevel: 2,
	}
	// correct = 3; wrong-operation gives 6+3=9, small-slip 2 and 4.
	ds := e.Generate(3, ctx, 3)
	for _, d := range ds {
		if d.Value == 3 {
			t.Errorf("correct value leaked: %+v", d)
		}
	}
}

func TestGenerate_StrategyDiversity(t *testing.T) {
	e := NewEngine(nil)
	ds := e.Generate(40, Context{
		MathModel: "MULTIPLICATION",
		Format:    "DIRECT_CALCULATION",
		Operands:  []float64{8, 5},
		YearLevel: 4,
	}, 3)
	if len(ds) != 3 {
		t.Fatalf("expected 3 distractors, got %d", len(ds))
	}
	strategies := make(map[string]int)
	for _, d := range ds {
		strategies[d.Strategy]++
	}
	// wrong-operation, place-value and small-slip all apply; diversity
	// trimming should keep at least two distinct strategies.
	if len(strategies) < 2 {
		t.Errorf("expected strategy diversity, got %v", strategies)
	}
}

func TestGenerate_RuleFiltering(t *testing.T) {
	e := NewEngine(nil)
	ds := e.Generate(25, Context{
		MathModel: "PERCENTAGE",
		Format:    "DIRECT_CALCULATION",
		Operands:  []float64{25, 100},
		YearLevel: 5,
	}, 3)
	var hasUnit bool
	for _, d := range ds {
		if d.Strategy == "wrong-operation" {
			t.Errorf("wrong-operation should not apply to PERCENTAGE")
		}
		if d.Strategy == "unit-confusion" {
			hasUnit = true
		}
	}
	if !hasUnit {
		t.Error("expected a unit-confusion distractor for PERCENTAGE")
	}
}

func TestDedup(t *testing.T) {
	pool := []Distractor{
		{Value: 5, Strategy: "a"},
		{Value: 5, Strategy: "b"},
		{Value: 7, Strategy: "c"},
		{Value: 9, Strategy: "d"},
	}
	out := Dedup(pool, 9)
	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %v", len(out), out)
	}
	if out[0].Value != 5 || out[1].Value != 7 {
		t.Errorf("unexpected survivors: %v", out)
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{
		12:    "12",
		0.5:   "0.50",
		1.25:  "1.25",
		-3:    "-3",
		100.1: "100.10",
	}
	for v, want := range cases {
		if got := FormatValue(v); got != want {
			t.Errorf("FormatValue(%v) = %q, want %q", v, got, want)
		}
	}
}
