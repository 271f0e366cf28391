package stats

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// FirstCheckpoint and LastCheckpoint bound the five-yearly evolution checkpoints.
	FirstCheckpoint = 1990
	LastCheckpoint  = 2020
	checkpointStep  = 5
)

// ErrInvalidRange is returned for an evolution range that does not use checkpoint years.
var ErrInvalidRange = errors.New("invalid evolution range")

// YearRange is the span of an evolution computation.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullRange is the default span covering every checkpoint.
var FullRange = YearRange{Start: FirstCheckpoint, End: LastCheckpoint}

func (r YearRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Validate checks that both ends are checkpoints and that the range is not reversed.
func (r YearRange) Validate() error {
	if !IsCheckpoint(r.Start) || !IsCheckpoint(r.End) {
		return fmt.Errorf("%w: %s (years must be in %v)", ErrInvalidRange, r, Checkpoints())
	}
	if r.Start > r.End {
		return fmt.Errorf("%w: %s starts after it ends", ErrInvalidRange, r)
	}
	return nil
}

// Checkpoints returns 1990, 1995, ..., 2020.
func Checkpoints() []int {
	var years []int
	for y := FirstCheckpoint; y <= LastCheckpoint; y += checkpointStep {
		years = append(years, y)
	}
	return years
}

// IsCheckpoint reports whether year is one of the evolution checkpoints.
func IsCheckpoint(year int) bool {
	return slices.Contains(Checkpoints(), year)
}

// StandardRanges lists the consecutive five-year spans followed by the full span.
func StandardRanges() []YearRange {
	cps := Checkpoints()
	ranges := make([]YearRange, 0, len(cps))
	for i := 0; i+1 < len(cps); i++ {
		ranges = append(ranges, YearRange{Start: cps[i], End: cps[i+1]})
	}
	return append(ranges, FullRange)
}

// ParseYearRange parses "1990-1995". An empty string yields FullRange.
func ParseYearRange(s string) (YearRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FullRange, nil
	}
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return YearRange{}, fmt.Errorf("%w: %q (expected START-END)", ErrInvalidRange, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return YearRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return YearRange{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, s, err)
	}
	r := YearRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return YearRange{}, err
	}
	return r, nil
}

// Evolution returns end-start for every code of the end map. A code missing from the
// start map starts at 0. The delta is Invalid when either side is Invalid.
func Evolution(start, end ScalarMap) ScalarMap {
	out := make(ScalarMap, len(end))
	for code, e := range end {
		s := start[code]
		if e.Invalid || s.Invalid {
			out[code] = Value{Invalid: true}
			continue
		}
		out[code] = Value{Amount: e.Amount - s.Amount}
	}
	return out
}

// EvolutionMap computes the change in foreign-born share over r. Both years are
// normalized independently.
func EvolutionMap(src FlowSource, pop PopulationSource, r YearRange) ScalarMap {
	return Evolution(PercentageMap(src, pop, r.Start), PercentageMap(src, pop, r.End))
}
