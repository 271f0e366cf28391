package atlas

import (
	"fmt"
	"slices"
	"time"

	"migmap/internal/classify"
	"migmap/internal/flows"
	"migmap/internal/stats"
)

// Classification is the result of a map query.
type Classification struct {
	View           View             `json:"view"`
	Mode           Mode             `json:"mode,omitempty"`
	Year           int              `json:"year"`
	EvolutionRange *stats.YearRange `json:"evolution_range,omitempty"`
	classify.Result
	Warnings []string `json:"warnings,omitempty"`
}

func (d *Dataset) observe(query string, start time.Time, err error, empty bool) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case empty:
		outcome = "empty"
	}
	d.metrics.ObserveQuery(query, outcome, time.Since(start))
}

func (d *Dataset) yearWarnings(years ...int) []string {
	var warnings []string
	for _, y := range years {
		if d.flows.CountForYear(y) == 0 {
			warnings = append(warnings, fmt.Sprintf("no migration records for %d; available years: %v", y, d.Years()))
		}
	}
	return warnings
}

func (d *Dataset) classify(values stats.ScalarMap, style classify.Style) classify.Result {
	return classify.Classify(values, d.geometry, style)
}

// ClassifyChoropleth colors every country by its foreign-born share in year.
func (d *Dataset) ClassifyChoropleth(year int) Classification {
	start := time.Now()

	res := Classification{
		View:     ViewChoropleth,
		Year:     year,
		Result:   d.classify(stats.PercentageMap(d.flows, d.population, year), d.theme.Choropleth()),
		Warnings: d.yearWarnings(year),
	}

	d.observe("classify_choropleth", start, nil, res.Empty)
	return res
}

// ClassifyAnamorphic colors and sizes every country for mode. year drives the absolute and
// percentage modes; r drives the evolution mode.
func (d *Dataset) ClassifyAnamorphic(mode Mode, year int, r stats.YearRange) (Classification, error) {
	start := time.Now()

	res := Classification{View: ViewAnamorphic, Mode: mode, Year: year}
	switch mode {
	case ModeAbsolute:
		res.Result = d.classify(stats.AbsoluteMap(d.flows, d.population, year), d.theme.Absolute())
		res.Warnings = d.yearWarnings(year)
	case ModePercentage:
		res.Result = d.classify(stats.PercentageMap(d.flows, d.population, year), d.theme.Percentage())
		res.Warnings = d.yearWarnings(year)
	case ModeEvolution:
		if err := r.Validate(); err != nil {
			d.observe("classify_anamorphic", start, err, false)
			return Classification{}, err
		}
		res.EvolutionRange = &r
		res.Result = d.classify(stats.EvolutionMap(d.flows, d.population, r), d.theme.Evolution())
		res.Warnings = d.yearWarnings(r.Start, r.End)
	default:
		err := fmt.Errorf("%w: %q", ErrInvalidMode, mode)
		d.observe("classify_anamorphic", start, err, false)
		return Classification{}, err
	}

	d.observe("classify_anamorphic", start, nil, res.Empty)
	return res, nil
}

// Partner is a ranked partner with its display name.
type Partner struct {
	flows.PartnerFlow
	Name string `json:"partner_name"`
}

// PartnerReport is the result of a top-partners query.
type PartnerReport struct {
	Country   Country         `json:"country"`
	Year      int             `json:"year"`
	Direction flows.Direction `json:"direction"`
	Partners  []Partner       `json:"partners"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// CountryTopPartners ranks the partners of code in year. DirectionAuto resolves to inflow
// when the country received migrants in year. A limit <= 0 uses the default of 10.
func (d *Dataset) CountryTopPartners(code string, year int, dir flows.Direction, limit int) (PartnerReport, error) {
	start := time.Now()

	c, err := d.Lookup(code)
	if err != nil {
		d.observe("country_top_partners", start, err, false)
		return PartnerReport{}, err
	}
	dir = d.flows.Resolve(dir, c.Code, year)

	rep := PartnerReport{Country: c, Year: year, Direction: dir, Partners: []Partner{}}
	for _, p := range d.flows.TopPartners(c.Code, year, dir, limit) {
		rep.Partners = append(rep.Partners, Partner{PartnerFlow: p, Name: d.resolver.NameOr(p.Code, UnknownName)})
	}
	rep.Warnings = d.yearWarnings(year)
	if len(rep.Partners) == 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("no %s partners for %s in %d", dir, c.Name, year))
	}

	d.observe("country_top_partners", start, nil, len(rep.Partners) == 0)
	return rep, nil
}

// TimeseriesReport is the result of a timeseries query.
type TimeseriesReport struct {
	Country   Country           `json:"country"`
	Direction flows.Direction   `json:"direction"`
	Points    []flows.TimePoint `json:"points"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// CountryTimeseries returns the total flow of code for each of years, in millions, skipping
// years without flow. Empty years default to the evolution checkpoints. DirectionAuto
// resolves to inflow when the country received migrants in any of the years.
func (d *Dataset) CountryTimeseries(code string, dir flows.Direction, years []int) (TimeseriesReport, error) {
	start := time.Now()

	c, err := d.Lookup(code)
	if err != nil {
		d.observe("country_timeseries", start, err, false)
		return TimeseriesReport{}, err
	}
	if len(years) == 0 {
		years = stats.Checkpoints()
	} else {
		years = slices.Clone(years)
		slices.Sort(years)
		years = slices.Compact(years)
	}
	dir = d.flows.Resolve(dir, c.Code, years...)

	rep := TimeseriesReport{Country: c, Direction: dir, Points: d.flows.Timeseries(c.Code, dir, years)}
	if rep.Points == nil {
		rep.Points = []flows.TimePoint{}
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("no %s flow for %s in %v", dir, c.Name, years))
	}

	d.observe("country_timeseries", start, nil, len(rep.Points) == 0)
	return rep, nil
}

// Summary is the per-country detail shown when hovering a country.
type Summary struct {
	Country Country `json:"country"`
	Year    int     `json:"year"`
	// Percentage is the foreign-born share in Year; nil when the country has no inflow.
	Percentage *stats.Value `json:"percentage,omitempty"`
	// MigrantsMillions is the inflow in Year.
	MigrantsMillions float64         `json:"migrants_millions"`
	Population       int64           `json:"population"`
	EvolutionRange   stats.YearRange `json:"evolution_range"`
	Evolution        *stats.Value    `json:"evolution,omitempty"`
	Indeterminate    bool            `json:"indeterminate,omitempty"`
	Direction        flows.Direction `json:"direction"`
}

// CountrySummary gathers the share, volume and evolution of code for year and r.
func (d *Dataset) CountrySummary(code string, year int, r stats.YearRange) (Summary, error) {
	start := time.Now()

	c, err := d.Lookup(code)
	if err != nil {
		d.observe("country_summary", start, err, false)
		return Summary{}, err
	}
	if err := r.Validate(); err != nil {
		d.observe("country_summary", start, err, false)
		return Summary{}, err
	}

	s := Summary{
		Country:        c,
		Year:           year,
		Population:     d.population.Get(c.Code, year),
		EvolutionRange: r,
		Direction:      d.flows.Resolve(flows.DirectionAuto, c.Code, year),
	}

	inflows := d.flows.Aggregate(year, flows.Inflow)
	if flow, ok := inflows[c.Code]; ok {
		v := stats.Percentage(flow, s.Population)
		s.Percentage = &v
		s.MigrantsMillions = float64(flow) / 1e6
		s.Indeterminate = v.Invalid
	}
	if v, ok := stats.EvolutionMap(d.flows, d.population, r)[c.Code]; ok {
		s.Evolution = &v
		s.Indeterminate = s.Indeterminate || v.Invalid
	}

	d.observe("country_summary", start, nil, s.Percentage == nil && s.Evolution == nil)
	return s, nil
}
