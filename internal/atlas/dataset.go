// Package atlas joins the load-time tables and exposes the classification and country
// queries consumed by presentation clients.
package atlas

import (
	"errors"
	"fmt"
	"slices"

	"migmap/internal/classify"
	"migmap/internal/countries"
	"migmap/internal/flows"
	"migmap/internal/ingest"
	"migmap/internal/metrics"
	"migmap/internal/population"
	"migmap/internal/stats"
)

// FirstYear is the earliest record year offered for selection.
const FirstYear = 1990

// UnknownName labels codes without a crosswalk entry.
const UnknownName = "Unknown"

// ErrUnknownCountry is returned for a code that is not a known, non-aggregate country.
var ErrUnknownCountry = errors.New("unknown country")

// Dataset holds the immutable tables of one session. All query methods are safe for
// concurrent use.
type Dataset struct {
	resolver   *countries.Resolver
	population *population.Index
	flows      *flows.Store
	geometry   []string
	reports    []ingest.Report
	theme      classify.Theme
	metrics    *metrics.Metrics
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithTheme overrides the default palettes and size range.
func WithTheme(t classify.Theme) Option {
	return func(d *Dataset) { d.theme = t }
}

// WithMetrics records query metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dataset) { d.metrics = m }
}

// WithReports attaches the ingestion reports of the sources.
func WithReports(reports ...ingest.Report) Option {
	return func(d *Dataset) { d.reports = append(d.reports, reports...) }
}

// New builds a Dataset from parsed rows. geometry lists the feature codes to encode in
// every classification, even when they carry no value.
func New(ids []countries.Identifier, pop []population.Row, records []flows.Record, geometry []string, opts ...Option) *Dataset {
	resolver := countries.NewResolver(ids)
	d := &Dataset{
		resolver:   resolver,
		population: population.NewIndex(pop, resolver),
		flows:      flows.NewStore(records),
		theme:      classify.DefaultTheme(),
	}
	for _, c := range geometry {
		if code, ok := countries.Normalize(c); ok && !countries.IsAggregate(code) {
			d.geometry = append(d.geometry, code)
		}
	}
	slices.Sort(d.geometry)
	d.geometry = slices.Compact(d.geometry)

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Years returns the selectable record years (>= FirstYear), ascending.
func (d *Dataset) Years() []int {
	return d.flows.YearsFrom(FirstYear)
}

// EvolutionRanges returns the selectable evolution spans.
func (d *Dataset) EvolutionRanges() []stats.YearRange {
	return stats.StandardRanges()
}

// Theme returns the active palettes and size range.
func (d *Dataset) Theme() classify.Theme {
	return d.theme
}

// Country is the public identity of a country.
type Country struct {
	Code    string `json:"code"`
	AltCode string `json:"alt_code,omitempty"`
	Name    string `json:"name"`
}

// resolve normalizes code and checks it denotes a country known to the crosswalk or the
// geometry. Codes seen only in flow records are not countries of the map.
func (d *Dataset) resolve(code string) (string, error) {
	norm, ok := countries.Normalize(code)
	if !ok || countries.IsAggregate(norm) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	if _, ok := d.resolver.Lookup(norm); ok {
		return norm, nil
	}
	if _, ok := slices.BinarySearch(d.geometry, norm); ok {
		return norm, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCountry, code)
}

// Lookup returns the identity of code.
func (d *Dataset) Lookup(code string) (Country, error) {
	norm, err := d.resolve(code)
	if err != nil {
		return Country{}, err
	}
	alt, _ := d.resolver.AltCode(norm)
	return Country{Code: norm, AltCode: alt, Name: d.resolver.NameOr(norm, UnknownName)}, nil
}

// FindByAltCode resolves an alternate code such as "FRA".
func (d *Dataset) FindByAltCode(alt string) (Country, error) {
	code, ok := d.resolver.Code(alt)
	if !ok {
		return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, alt)
	}
	return d.Lookup(code)
}

// Find resolves either a numeric code ("250") or an alternate code ("FRA").
func (d *Dataset) Find(code string) (Country, error) {
	c, err := d.Lookup(code)
	if err == nil {
		return c, nil
	}
	if alt, altErr := d.FindByAltCode(code); altErr == nil {
		return alt, nil
	}
	return Country{}, err
}

// Info describes the loaded dataset.
type Info struct {
	Countries         int               `json:"countries"`
	CrosswalkSkipped  int               `json:"crosswalk_skipped"`
	PopulationEntries int               `json:"population_entries"`
	PopulationDropped int               `json:"population_dropped"`
	Records           int               `json:"records"`
	GeometryCodes     int               `json:"geometry_codes"`
	Years             []int             `json:"years"`
	EvolutionRanges   []stats.YearRange `json:"evolution_ranges"`
	Sources           []ingest.Report   `json:"sources,omitempty"`
}

// Info summarizes table sizes and the ingestion reports.
func (d *Dataset) Info() Info {
	return Info{
		Countries:         d.resolver.Len(),
		CrosswalkSkipped:  d.resolver.Skipped(),
		PopulationEntries: d.population.Len(),
		PopulationDropped: d.population.Dropped(),
		Records:           d.flows.Len(),
		GeometryCodes:     len(d.geometry),
		Years:             d.Years(),
		EvolutionRanges:   d.EvolutionRanges(),
		Sources:           slices.Clone(d.reports),
	}
}
