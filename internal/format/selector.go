package format

import (
	"errors"

	"github.com/primagen/primagen/internal/difficulty"
	"github.com/primagen/primagen/internal/rng"
)

// ErrNoFormats is returned when selection runs against an empty set.
var ErrNoFormats = errors.New("no formats available for selection")

// Selector narrows formats to those compatible with a model and difficulty,
// then picks one. Its tables are read-only after construction.
type Selector struct {
	registered map[Format]bool
	src        rng.Source
}

// NewSelector creates a Selector. registered lists the formats that actually
// have a controller; unregistered formats are silently dropped from
// availability, never an error at this stage. A nil source uses the default.
func NewSelector(registered []Format, src rng.Source) *Selector {
	set := make(map[Format]bool, len(registered))
	for _, f := range registered {
		set[f] = true
	}
	if src == nil {
		src = rng.Default()
	}
	return &Selector{registered: set, src: src}
}

// AvailableFormats returns the formats compatible with the model at the
// level, in table order, filtered to registered controllers.
func (s *Selector) AvailableFormats(modelID string, lvl difficulty.Level) []Format {
	var out []Format
	for _, rule := range rulesFor(modelID) {
		if !rule.Matches(lvl) {
			continue
		}
		if !s.registered[rule.Format] {
			continue
		}
		out = append(out, rule.Format)
	}
	return out
}

// Select picks one format from the available set.
// Priority: explicit preference, then pedagogical focus, then weighted
// random. Fails only when the available set is empty.
func (s *Selector) Select(available []Format, preference Format, focus string) (Format, error) {
	if len(available) == 0 {
		return "", ErrNoFormats
	}

	if preference != "" {
		for _, f := range available {
			if f == preference {
				return f, nil
			}
		}
	}

	if focus != "" {
		if aligned := intersect(focusFormats[focus], available); len(aligned) > 0 {
			return s.weightedDraw(aligned), nil
		}
	}

	return s.weightedDraw(available), nil
}

// weightedDraw picks one format with probability proportional to its weight.
func (s *Selector) weightedDraw(formats []Format) Format {
	var total float64
	for _, f := range formats {
		total += weightOf(f)
	}

	r := s.src.Float64() * total
	for _, f := range formats {
		r -= weightOf(f)
		if r < 0 {
			return f
		}
	}
	return formats[len(formats)-1]
}

func weightOf(f Format) float64 {
	if w, ok := selectionWeights[f]; ok {
		return w
	}
	return 0.05
}

func intersect(a, b []Format) []Format {
	inB := make(map[Format]bool, len(b))
	for _, f := range b {
		inB[f] = true
	}
	var out []Format
	for _, f := range a {
		if inB[f] {
			out = append(out, f)
		}
	}
	return out
}
