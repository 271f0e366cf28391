package stats

import (
	"migmap/internal/flows"
)

// PopulationSource looks up the population of a country in a year (0 when unknown).
type PopulationSource interface {
	Get(code string, year int) int64
}

// FlowSource aggregates migrant flows per country for a year and direction.
type FlowSource interface {
	Aggregate(year int, dir flows.Direction) map[string]int64
}

// Percentage converts a flow into a share of the population. A zero population has no
// basis and yields 0. A share above 100% is flagged Invalid rather than clamped.
func Percentage(flow, population int64) Value {
	if population <= 0 {
		return Value{}
	}
	pct := float64(flow) / float64(population) * 100
	if pct > 100 {
		return Value{Amount: pct, Invalid: true}
	}
	if pct < 0 {
		pct = 0
	}
	return Value{Amount: pct}
}

// Normalize converts a destination-direction flow map into population percentages.
func Normalize(inflows map[string]int64, pop PopulationSource, year int) ScalarMap {
	out := make(ScalarMap, len(inflows))
	for code, flow := range inflows {
		out[code] = Percentage(flow, pop.Get(code, year))
	}
	return out
}

// PercentageMap computes the foreign-born share of every destination in year.
func PercentageMap(src FlowSource, pop PopulationSource, year int) ScalarMap {
	return Normalize(src.Aggregate(year, flows.Inflow), pop, year)
}

// AbsoluteMap returns the raw inflow of every destination in year. A value is Invalid when
// the matching percentage would be, so the absolute view greys out the same countries.
func AbsoluteMap(src FlowSource, pop PopulationSource, year int) ScalarMap {
	inflows := src.Aggregate(year, flows.Inflow)
	out := make(ScalarMap, len(inflows))
	for code, flow := range inflows {
		out[code] = Value{
			Amount:  float64(flow),
			Invalid: Percentage(flow, pop.Get(code, year)).Invalid,
		}
	}
	return out
}
