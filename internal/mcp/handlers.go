package mcp

import (
	"fmt"

	"migmap/internal/atlas"
	"migmap/internal/flows"
	"migmap/internal/stats"
	"migmap/internal/visuals"
)

func (s *Server) handleGetDatasetInfo() (interface{}, error) {
	info := s.ds.Info()

	guidance := []string{
		"Only the years listed under 'years' have migration records. Other years return an empty classification.",
		"Evolution ranges must start and end on a checkpoint year (1990, 1995, ..., 2020).",
	}
	for _, rep := range info.Sources {
		if rep.Rejected > 0 || rep.Malformed > 0 {
			guidance = append(guidance, fmt.Sprintf("DATA QUALITY: %d rows of %s were rejected and %d had malformed values. Mention this when presenting totals.", rep.Rejected, rep.Source, rep.Malformed))
		}
	}

	return map[string]interface{}{
		"dataset":   info,
		"_guidance": guidance,
	}, nil
}

func (s *Server) handleListYears() (interface{}, error) {
	return map[string]interface{}{
		"years":            s.ds.Years(),
		"evolution_ranges": s.ds.EvolutionRanges(),
		"checkpoints":      stats.Checkpoints(),
	}, nil
}

func (s *Server) handleLookupCountry(code string) (interface{}, error) {
	c, err := s.ds.Find(code)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Server) classificationGuidance(c atlas.Classification) []string {
	if c.Empty {
		return []string{
			"EMPTY: no country had a classifiable value, so no categories were built. Check 'warnings' and pick another year or range.",
		}
	}
	guidance := []string{
		"Categories are quantiles of the non-outlier values: each holds roughly the same number of distinct values, NOT equal-width intervals.",
		"Outliers (|z| > 2) are shown with the extreme palette color and are excluded from the category bounds.",
		"'indeterminate' marks a foreign-born share above 100%, which points at a population gap rather than a real share. Do not report it as a value.",
		"'no_data' means the country has no migration record for the period. It is NOT the same as zero.",
	}
	if c.Mode == atlas.ModeEvolution {
		guidance = append(guidance, "Evolution uses a diverging palette centred on 0. Negative values mean the foreign-born share shrank over the range.")
	}
	return guidance
}

func (s *Server) handleClassifyChoropleth(year int) (interface{}, error) {
	c := s.ds.ClassifyChoropleth(year)

	res := map[string]interface{}{
		"classification": c,
		"_guidance":      s.classificationGuidance(c),
	}
	if s.enableMermaidCharts {
		res["visual_category_pie"] = visuals.GenerateCategoryPie(c.Result)
	}
	return res, nil
}

func (s *Server) handleClassifyAnamorphic(mode string, year int, rangeStr string) (interface{}, error) {
	m, err := atlas.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	r, err := stats.ParseYearRange(rangeStr)
	if err != nil {
		return nil, err
	}

	c, err := s.ds.ClassifyAnamorphic(m, year, r)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"classification": c,
		"_guidance":      s.classificationGuidance(c),
	}
	if s.enableMermaidCharts {
		res["visual_category_pie"] = visuals.GenerateCategoryPie(c.Result)
	}
	return res, nil
}

func (s *Server) handleCountryTopPartners(code string, year int, direction string, limit int) (interface{}, error) {
	dir, err := flows.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	c, err := s.ds.Find(code)
	if err != nil {
		return nil, err
	}

	rep, err := s.ds.CountryTopPartners(c.Code, year, dir, limit)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"partners": rep,
		"_guidance": []string{
			"Shares are relative to the sum of the RETURNED partners, not to the country's total flow.",
			fmt.Sprintf("Direction '%s': inflow lists where immigrants came from, outflow lists where emigrants went.", rep.Direction),
		},
	}
	if s.enableMermaidCharts {
		res["visual_partners_bar"] = visuals.GeneratePartnersChart(rep)
	}
	return res, nil
}

func (s *Server) handleCountryTimeseries(code, direction string, years []int) (interface{}, error) {
	dir, err := flows.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	c, err := s.ds.Find(code)
	if err != nil {
		return nil, err
	}

	rep, err := s.ds.CountryTimeseries(c.Code, dir, years)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"timeseries": rep,
		"_guidance": []string{
			"Years without any flow are omitted from 'points' rather than reported as zero.",
		},
	}
	if s.enableMermaidCharts {
		res["visual_timeseries_line"] = visuals.GenerateTimeseriesChart(rep)
	}
	return res, nil
}

func (s *Server) handleCountrySummary(code string, year int, rangeStr string) (interface{}, error) {
	r, err := stats.ParseYearRange(rangeStr)
	if err != nil {
		return nil, err
	}
	c, err := s.ds.Find(code)
	if err != nil {
		return nil, err
	}

	sum, err := s.ds.CountrySummary(c.Code, year, r)
	if err != nil {
		return nil, err
	}

	guidance := []string{
		"'percentage' is the foreign-born share of the population in the selected year.",
	}
	if sum.Indeterminate {
		guidance = append(guidance, "INDETERMINATE: the share exceeds 100% in at least one year, so the population figure is unreliable. Do not present the share or its evolution as fact.")
	}
	return map[string]interface{}{
		"summary":   sum,
		"_guidance": guidance,
	}, nil
}

func (s *Server) handleRenderView(in renderInput) (interface{}, error) {
	state := s.ds.InitialState()

	if in.Year != 0 {
		state = state.WithYear(in.Year)
	}
	if in.View != "" {
		v, err := atlas.ParseView(in.View)
		if err != nil {
			return nil, err
		}
		state.View = v
	}
	m, err := atlas.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	state = state.WithMode(m)
	r, err := stats.ParseYearRange(in.EvolutionRange)
	if err != nil {
		return nil, err
	}
	state = state.WithEvolutionRange(r)
	if in.Country != "" {
		c, err := s.ds.Find(in.Country)
		if err != nil {
			return nil, err
		}
		state = state.ToggleCountry(c.Code)
	}

	snap, err := s.ds.Render(state)
	if err != nil {
		return nil, err
	}

	res := map[string]interface{}{
		"snapshot":  snap,
		"_guidance": s.classificationGuidance(snap.Map),
	}
	if s.enableMermaidCharts {
		res["visual_category_pie"] = visuals.GenerateCategoryPie(snap.Map.Result)
		if snap.Partners != nil {
			res["visual_partners_bar"] = visuals.GeneratePartnersChart(*snap.Partners)
		}
		if snap.Timeseries != nil {
			res["visual_timeseries_line"] = visuals.GenerateTimeseriesChart(*snap.Timeseries)
		}
	}
	return res, nil
}
