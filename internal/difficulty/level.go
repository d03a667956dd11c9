// Package difficulty models curriculum difficulty levels ("Y.S": year 1-6,
// sub-level 1-4) and resolves the numeric parameter sets used to generate
// maths questions at a given level.
package difficulty

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a parsed difficulty level.
type Level struct {
	// Year is the UK school year, 1-6.
	Year int

	// SubLevel is the within-year grade, 1 (introductory) to 4 (advanced).
	SubLevel int
}

const (
	MinYear     = 1
	MaxYear     = 6
	MinSubLevel = 1
	MaxSubLevel = 4

	// DefaultSubLevel is used when only a bare year is supplied.
	DefaultSubLevel = 3
)

// DefaultLevel is used when a request carries no difficulty at all.
var DefaultLevel = Level{Year: 4, SubLevel: 3}

// ParseError describes a rejected difficulty input.
// Out-of-range values are an error, never a silent clamp.
type ParseError struct {
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid difficulty %q: %s", e.Input, e.Message)
}

// Parse parses a "Y.S" difficulty string.
func Parse(s string) (Level, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Level{}, &ParseError{Input: s, Message: "expected format \"Y.S\""}
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Level{}, &ParseError{Input: s, Message: "year is not a number"}
	}
	sub, err := strconv.Atoi(parts[1])
	if err != nil {
		return Level{}, &ParseError{Input: s, Message: "sub-level is not a number"}
	}

	lvl := Level{Year: year, SubLevel: sub}
	if err := lvl.Validate(); err != nil {
		return Level{}, &ParseError{Input: s, Message: err.Error()}
	}
	return lvl, nil
}

// FromYear builds a Level from a legacy bare year value.
// The sub-level defaults to 3.
func FromYear(year int) (Level, error) {
	lvl := Level{Year: year, SubLevel: DefaultSubLevel}
	if err := lvl.Validate(); err != nil {
		return Level{}, &ParseError{Input: strconv.Itoa(year), Message: err.Error()}
	}
	return lvl, nil
}

// Validate checks year and sub-level ranges.
func (l Level) Validate() error {
	if l.Year < MinYear || l.Year > MaxYear {
		return fmt.Errorf("year %d out of range [%d,%d]", l.Year, MinYear, MaxYear)
	}
	if l.SubLevel < MinSubLevel || l.SubLevel > MaxSubLevel {
		return fmt.Errorf("sub-level %d out of range [%d,%d]", l.SubLevel, MinSubLevel, MaxSubLevel)
	}
	return nil
}

// DisplayName returns the canonical "Y.S" form.
func (l Level) DisplayName() string {
	return fmt.Sprintf("%d.%d", l.Year, l.SubLevel)
}

// CognitiveLoad maps the level to a 0-100 load estimate.
// Monotonic in both year and sub-level, capped at 100.
func (l Level) CognitiveLoad() int {
	load := (l.Year-1)*16 + (l.SubLevel-1)*4
	if load > 100 {
		load = 100
	}
	return load
}

// Before reports whether l is a strictly easier level than other.
func (l Level) Before(other Level) bool {
	if l.Year != other.Year {
		return l.Year < other.Year
	}
	return l.SubLevel < other.SubLevel
}
