package flows

import (
	"cmp"
	"slices"

	"migmap/internal/countries"
)

// DefaultPartnerLimit is the number of partners returned when no limit is given.
const DefaultPartnerLimit = 10

// PartnerFlow is the migrant volume exchanged with one partner country.
type PartnerFlow struct {
	Code     string  `json:"partner_code"`
	Migrants int64   `json:"migrants"`
	Share    float64 `json:"share"` // % of the returned partners' total
}

// TimePoint is the total flow of a country in one year.
type TimePoint struct {
	Year     int     `json:"year"`
	Migrants int64   `json:"migrants"`
	Millions float64 `json:"flow_millions"`
}

// TopPartners ranks the partners of code in year for a concrete direction: origins of its
// immigrants for Inflow, destinations of its emigrants for Outflow. At most limit
// partners are returned, largest first (ties broken by code). Each share is relative to
// the sum of the returned partners.
func (s *Store) TopPartners(code string, year int, dir Direction, limit int) []PartnerFlow {
	if limit <= 0 {
		limit = DefaultPartnerLimit
	}

	byPartner := make(map[string]int64)
	for _, r := range s.byYear[year] {
		if r.endpoint(dir) != code {
			continue
		}
		if countries.IsAggregate(r.Origin) || countries.IsAggregate(r.Destination) {
			continue
		}
		byPartner[r.counterpart(dir)] += r.Migrants
	}

	partners := make([]PartnerFlow, 0, len(byPartner))
	for p, v := range byPartner {
		partners = append(partners, PartnerFlow{Code: p, Migrants: v})
	}
	slices.SortFunc(partners, func(a, b PartnerFlow) int {
		if c := cmp.Compare(b.Migrants, a.Migrants); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	if len(partners) > limit {
		partners = partners[:limit]
	}

	var total int64
	for _, p := range partners {
		total += p.Migrants
	}
	if total > 0 {
		for i := range partners {
			partners[i].Share = float64(partners[i].Migrants) / float64(total) * 100
		}
	}

	return partners
}

// Timeseries returns the total flow of code for each requested year, in the order given.
// Years without flow are omitted.
func (s *Store) Timeseries(code string, dir Direction, years []int) []TimePoint {
	var points []TimePoint
	for _, y := range years {
		var total int64
		for _, r := range s.byYear[y] {
			if r.endpoint(dir) != code {
				continue
			}
			if countries.IsAggregate(r.Origin) || countries.IsAggregate(r.Destination) {
				continue
			}
			total += r.Migrants
		}
		if total > 0 {
			points = append(points, TimePoint{Year: y, Migrants: total, Millions: float64(total) / 1e6})
		}
	}
	return points
}
