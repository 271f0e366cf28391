package atlas

import (
	"migmap/internal/countries"
	"migmap/internal/flows"
	"migmap/internal/stats"
)

// ViewState is the user's selection. It is a value: every change returns a new state and
// Render derives everything else from it.
type ViewState struct {
	Year           int             `json:"year"`
	View           View            `json:"view"`
	Mode           Mode            `json:"mode"`
	EvolutionRange stats.YearRange `json:"evolution_range"`
	// Country is the selected canonical code, empty when nothing is selected.
	Country string `json:"country,omitempty"`
}

// InitialState selects the first available year, the choropleth view, the default mode
// and the full evolution span.
func (d *Dataset) InitialState() ViewState {
	s := ViewState{
		Year:           FirstYear,
		View:           ViewChoropleth,
		Mode:           DefaultMode,
		EvolutionRange: stats.FullRange,
	}
	if years := d.Years(); len(years) > 0 {
		s.Year = years[0]
	}
	return s
}

func (s ViewState) WithYear(year int) ViewState {
	s.Year = year
	return s
}

func (s ViewState) WithMode(m Mode) ViewState {
	s.Mode = m
	return s
}

func (s ViewState) WithEvolutionRange(r stats.YearRange) ViewState {
	s.EvolutionRange = r
	return s
}

// ToggleView switches between the choropleth and the anamorphic view.
func (s ViewState) ToggleView() ViewState {
	if s.View == ViewAnamorphic {
		s.View = ViewChoropleth
	} else {
		s.View = ViewAnamorphic
	}
	return s
}

// ToggleCountry selects code, or clears the selection when code is already selected.
func (s ViewState) ToggleCountry(code string) ViewState {
	norm, ok := countries.Normalize(code)
	if !ok || norm == s.Country {
		s.Country = ""
		return s
	}
	s.Country = norm
	return s
}

// ClearSelection deselects the country.
func (s ViewState) ClearSelection() ViewState {
	s.Country = ""
	return s
}

// Snapshot is everything a client needs to draw one state.
type Snapshot struct {
	State      ViewState         `json:"state"`
	Map        Classification    `json:"map"`
	Partners   *PartnerReport    `json:"partners,omitempty"`
	Timeseries *TimeseriesReport `json:"timeseries,omitempty"`
	Summary    *Summary          `json:"summary,omitempty"`
}

// Render performs one full recomputation pass for s. The country panels resolve their
// direction against the selected year.
func (d *Dataset) Render(s ViewState) (Snapshot, error) {
	snap := Snapshot{State: s}

	if s.View == ViewAnamorphic {
		m, err := d.ClassifyAnamorphic(s.Mode, s.Year, s.EvolutionRange)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Map = m
	} else {
		snap.Map = d.ClassifyChoropleth(s.Year)
	}

	if s.Country == "" {
		return snap, nil
	}

	code, err := d.resolve(s.Country)
	if err != nil {
		return Snapshot{}, err
	}
	dir := d.flows.Resolve(flows.DirectionAuto, code, s.Year)

	partners, err := d.CountryTopPartners(code, s.Year, dir, flows.DefaultPartnerLimit)
	if err != nil {
		return Snapshot{}, err
	}
	series, err := d.CountryTimeseries(code, dir, nil)
	if err != nil {
		return Snapshot{}, err
	}
	summary, err := d.CountrySummary(code, s.Year, s.EvolutionRange)
	if err != nil {
		return Snapshot{}, err
	}

	snap.Partners = &partners
	snap.Timeseries = &series
	snap.Summary = &summary
	return snap, nil
}
