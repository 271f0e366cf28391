package population

import (
	"migmap/internal/countries"
)

// Row is one country's annual population series keyed by alternate code.
type Row struct {
	AltCode string
	ByYear  map[int]int64
}

type key struct {
	code string
	year int
}

// Index is an immutable lookup of population by canonical code and year.
type Index struct {
	values  map[key]int64
	dropped int
}

// NewIndex resolves every row's alternate code through the resolver and indexes its
// series. Rows that do not resolve, or that resolve to an aggregate, are dropped.
// Negative populations are stored as 0.
func NewIndex(rows []Row, resolver *countries.Resolver) *Index {
	idx := &Index{values: make(map[key]int64)}

	for _, row := range rows {
		code, ok := resolver.Code(row.AltCode)
		if !ok || countries.IsAggregate(code) {
			idx.dropped++
			continue
		}
		for year, pop := range row.ByYear {
			if pop < 0 {
				pop = 0
			}
			idx.values[key{code: code, year: year}] = pop
		}
	}

	return idx
}

// Get returns the population of code in year, or 0 when there is no entry.
// Zero means "no basis" and is not an error.
func (idx *Index) Get(code string, year int) int64 {
	norm, ok := countries.Normalize(code)
	if !ok {
		return 0
	}
	return idx.values[key{code: norm, year: year}]
}

// Len returns the number of (code, year) entries.
func (idx *Index) Len() int {
	return len(idx.values)
}

// Dropped returns the number of rows that did not resolve to a country.
func (idx *Index) Dropped() int {
	return idx.dropped
}
