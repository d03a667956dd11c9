package difficulty

import (
	"errors"
	"fmt"
	"testing"
)

func TestParse_RoundTrip(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		for sub := MinSubLevel; sub <= MaxSubLevel; sub++ {
			s := fmt.Sprintf("%d.%d", year, sub)
			lvl, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse(%q): %v", s, err)
			}
			if lvl.Year != year || lvl.SubLevel != sub {
				t.Errorf("Parse(%q) = %+v", s, lvl)
			}
			if lvl.DisplayName() != s {
				t.Errorf("DisplayName() = %q, want %q", lvl.DisplayName(), s)
			}
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"", "4", "4.3.1", "x.3", "4.y", "0.3", "7.1", "4.0", "4.5", "-1.2", "4.",
	}
	for _, s := range cases {
		_, err := Parse(s)
		if err == nil {
			t.Errorf("Parse(%q): expected error", s)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse(%q): error is not *ParseError: %v", s, err)
		}
	}
}

func TestFromYear(t *testing.T) {
	lvl, err := FromYear(3)
	if err != nil {
		t.Fatalf("FromYear(3): %v", err)
	}
	if lvl.Year != 3 || lvl.SubLevel != DefaultSubLevel {
		t.Errorf("FromYear(3) = %+v", lvl)
	}

	for _, y := range []int{0, 7, -2} {
		if _, err := FromYear(y); err == nil {
			t.Errorf("FromYear(%d): expected error", y)
		}
	}
}

func TestCognitiveLoad_Monotonic(t *testing.T) {
	prev := -1
	for year := MinYear; year <= MaxYear; year++ {
		for sub := MinSubLevel; sub <= MaxSubLevel; sub++ {
			load := (Level{Year: year, SubLevel: sub}).CognitiveLoad()
			if load < prev {
				t.Fatalf("load not monotonic at %d.%d: %d < %d", year, sub, load, prev)
			}
			if load < 0 || load > 100 {
				t.Fatalf("load out of range at %d.%d: %d", year, sub, load)
			}
			prev = load
		}
	}
}

func TestCurriculumSource_KnownModel(t *testing.T) {
	src := CurriculumSource{}
	p, err := src.SubLevelParams("ADDITION", Level{Year: 2, SubLevel: 2})
	if err != nil {
		t.Fatalf("SubLevelParams: %v", err)
	}
	if p.MaxValue <= 0 || p.OperandCount != 2 {
		t.Errorf("unexpected params: %+v", p)
	}

	// Sub-level scaling: higher sub-level never shrinks the range.
	p4, err := src.SubLevelParams("ADDITION", Level{Year: 2, SubLevel: 4})
	if err != nil {
		t.Fatalf("SubLevelParams: %v", err)
	}
	if p4.MaxValue < p.MaxValue {
		t.Errorf("sub-level 4 max %d < sub-level 2 max %d", p4.MaxValue, p.MaxValue)
	}
}

func TestCurriculumSource_Unmapped(t *testing.T) {
	src := CurriculumSource{}
	if _, err := src.SubLevelParams("TRIGONOMETRY", Level{Year: 4, SubLevel: 3}); err == nil {
		t.Error("expected error for unmapped model")
	}
	// Percentage is not taught before year 5.
	if _, err := src.SubLevelParams("PERCENTAGE", Level{Year: 2, SubLevel: 1}); err == nil {
		t.Error("expected error for model not taught in year")
	}
}

func TestGenericDefault(t *testing.T) {
	p1 := GenericDefault(Level{Year: 1, SubLevel: 1})
	p6 := GenericDefault(Level{Year: 6, SubLevel: 4})
	if p6.MaxValue <= p1.MaxValue {
		t.Errorf("year 6 default %d should exceed year 1 default %d", p6.MaxValue, p1.MaxValue)
	}
	if p1.DecimalPlaces != 0 || p6.DecimalPlaces != 2 {
		t.Errorf("decimal places: y1=%d y6=%d", p1.DecimalPlaces, p6.DecimalPlaces)
	}
}
