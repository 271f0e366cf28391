package flows

import (
	"slices"

	"migmap/internal/countries"
)

// Store holds the migration records grouped by year. It is built once at load time and
// is safe for concurrent readers since nothing mutates it afterwards.
type Store struct {
	byYear map[int][]Record
	years  []int
	total  int
}

// NewStore copies records into a year-indexed store. Records touching an aggregate code
// are kept (they still count towards Len) but never contribute to aggregation.
func NewStore(records []Record) *Store {
	s := &Store{
		byYear: make(map[int][]Record),
		total:  len(records),
	}

	for _, r := range records {
		s.byYear[r.Year] = append(s.byYear[r.Year], r)
	}

	for y := range s.byYear {
		s.years = append(s.years, y)
	}
	slices.Sort(s.years)

	return s
}

// Years returns the distinct record years in ascending order.
func (s *Store) Years() []int {
	return slices.Clone(s.years)
}

// YearsFrom returns the distinct record years >= min in ascending order.
func (s *Store) YearsFrom(min int) []int {
	var out []int
	for _, y := range s.years {
		if y >= min {
			out = append(out, y)
		}
	}
	return out
}

// Len returns the total number of records.
func (s *Store) Len() int {
	return s.total
}

// CountForYear returns the number of records for year.
func (s *Store) CountForYear(year int) int {
	return len(s.byYear[year])
}

// Aggregate sums the migrants of year per destination (Inflow) or origin (Outflow).
// Records with an aggregate endpoint are ignored. Only codes with at least one
// contributing record appear in the result.
func (s *Store) Aggregate(year int, dir Direction) map[string]int64 {
	totals := make(map[string]int64)
	for _, r := range s.byYear[year] {
		if countries.IsAggregate(r.Origin) || countries.IsAggregate(r.Destination) {
			continue
		}
		totals[r.endpoint(dir)] += r.Migrants
	}
	return totals
}

// HasInflow reports whether code is the destination of any record in year.
func (s *Store) HasInflow(code string, year int) bool {
	for _, r := range s.byYear[year] {
		if r.Destination == code {
			return true
		}
	}
	return false
}

// Resolve turns DirectionAuto into a concrete direction for code, using the given
// reference years: Inflow if code received migrants in any of them.
func (s *Store) Resolve(dir Direction, code string, years ...int) Direction {
	if dir != DirectionAuto {
		return dir
	}
	for _, y := range years {
		if s.HasInflow(code, y) {
			return Inflow
		}
	}
	return Outflow
}
