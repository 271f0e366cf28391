package visuals

import (
	"strings"
	"testing"

	"migmap/internal/atlas"
	"migmap/internal/classify"
	"migmap/internal/flows"
)

func TestGenerateTimeseriesChart(t *testing.T) {
	rep := atlas.TimeseriesReport{
		Country:   atlas.Country{Code: "250", Name: "France"},
		Direction: flows.Inflow,
		Points: []flows.TimePoint{
			{Year: 1990, Migrants: 100_000, Millions: 0.1},
			{Year: 2020, Migrants: 375_000, Millions: 0.375},
		},
	}

	chart := GenerateTimeseriesChart(rep)
	if !strings.HasPrefix(chart, "```mermaid\nxychart-beta\n") {
		t.Fatalf("unexpected chart header: %q", chart)
	}
	if !strings.Contains(chart, `x-axis ["1990", "2020"]`) {
		t.Errorf("Expected year labels, got %q", chart)
	}
	if !strings.Contains(chart, "line [0.100, 0.375]") {
		t.Errorf("Expected line values in millions, got %q", chart)
	}

	if GenerateTimeseriesChart(atlas.TimeseriesReport{}) != "" {
		t.Errorf("Expected no chart for an empty series")
	}
}

func TestGeneratePartnersChart(t *testing.T) {
	rep := atlas.PartnerReport{
		Country:   atlas.Country{Code: "250", Name: "France"},
		Year:      2020,
		Direction: flows.Inflow,
		Partners: []atlas.Partner{
			{PartnerFlow: flows.PartnerFlow{Code: "276", Migrants: 300_000, Share: 80}, Name: "Germany"},
			{PartnerFlow: flows.PartnerFlow{Code: "724", Migrants: 75_000, Share: 20}, Name: "Korea, Republic of"},
		},
	}

	chart := GeneratePartnersChart(rep)
	if !strings.Contains(chart, `x-axis ["Germany", "Korea Republic of"]`) {
		t.Errorf("Expected sanitized partner labels, got %q", chart)
	}
	if !strings.Contains(chart, "bar [80.0, 20.0]") {
		t.Errorf("Expected share bars, got %q", chart)
	}
}

func TestGenerateCategoryPie(t *testing.T) {
	res := classify.Result{
		Categories: []classify.Category{
			{Index: 0, Label: "0.00% - 1.00%"},
			{Index: 1, Label: "1.00% - 2.00%"},
		},
		PerCountry: map[string]classify.Encoding{
			"001": {Category: 0},
			"002": {Category: 0},
			"003": {Category: -1, Flags: classify.Flags{Zero: true}},
			"004": {Category: -1, Flags: classify.Flags{NoData: true}},
		},
	}

	chart := GenerateCategoryPie(res)
	if !strings.Contains(chart, `"0.00% - 1.00%" : 2`) {
		t.Errorf("Expected first category count, got %q", chart)
	}
	if strings.Contains(chart, "1.00% - 2.00%") {
		t.Errorf("Empty categories are omitted, got %q", chart)
	}
	if !strings.Contains(chart, `"Zero" : 1`) || !strings.Contains(chart, `"No data" : 1`) {
		t.Errorf("Expected special encodings, got %q", chart)
	}
	if GenerateCategoryPie(classify.Result{Empty: true}) != "" {
		t.Errorf("Expected no chart for an empty classification")
	}
}
