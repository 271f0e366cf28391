package classify

import (
	"errors"
	"fmt"
	"math"

	"migmap/internal/stats"
)

// ErrNoData is returned when nothing is left to classify after filtering.
var ErrNoData = errors.New("no data to classify")

// Unit selects how category bounds are labelled.
type Unit string

const (
	UnitMigrants     Unit = "migrants"
	UnitShare        Unit = "share"
	UnitShareRounded Unit = "share_rounded"
	UnitDelta        Unit = "delta"
)

// Category is one color bin. A value v belongs to it when Start < v <= End.
type Category struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

// Contains applies the membership rule.
func (c Category) Contains(v float64) bool {
	return v > c.Start && v <= c.End
}

// FormatLabel renders the category bounds for a legend.
func (c Category) FormatLabel(unit Unit) string {
	switch unit {
	case UnitMigrants:
		return fmt.Sprintf("%.1fM - %.1fM Migrants", c.Start/1e6, c.End/1e6)
	case UnitShareRounded:
		return fmt.Sprintf("%.0f%% - %.0f%% Migrants", math.Round(c.Start), math.Round(c.End))
	case UnitDelta:
		return fmt.Sprintf("%.1f%% - %.1f%%", c.Start, c.End)
	default:
		return fmt.Sprintf("%.2f%% - %.2f%%", c.Start, c.End)
	}
}

// BuildCategories bins the kept domain into Classes contiguous categories whose interior
// bounds are the quantile breakpoints of kept. The first category starts at 0, or at -max
// when diverging so the palette centers on zero.
func BuildCategories(kept []float64, diverging bool, palette []string) ([]Category, error) {
	if len(kept) == 0 {
		return nil, ErrNoData
	}
	if len(palette) != Classes {
		return nil, fmt.Errorf("palette has %d colors, need %d", len(palette), Classes)
	}

	hi := stats.Max(kept)
	lo := 0.0
	if diverging {
		lo = -hi
	}

	bounds := make([]float64, 0, Classes+1)
	bounds = append(bounds, lo)
	bounds = append(bounds, stats.Breakpoints(kept, Classes)...)
	bounds = append(bounds, hi)

	cats := make([]Category, Classes)
	for i := range cats {
		cats[i] = Category{
			Index: i,
			Start: bounds[i],
			End:   bounds[i+1],
			Color: palette[i],
		}
	}
	return cats, nil
}

// Find returns the index of the category containing v, or -1.
func Find(cats []Category, v float64) int {
	for i, c := range cats {
		if c.Contains(v) {
			return i
		}
	}
	return -1
}
