package visuals

import (
	"fmt"
	"math"
	"strings"

	"migmap/internal/atlas"
	"migmap/internal/classify"
)

// mermaidLabel quotes a label, dropping characters that break xychart parsing.
func mermaidLabel(s string) string {
	s = strings.NewReplacer("\"", "", "[", "(", "]", ")", ",", "").Replace(s)
	return fmt.Sprintf("\"%s\"", s)
}

// GenerateTimeseriesChart creates a Mermaid line chart of a country's flow over time.
func GenerateTimeseriesChart(rep atlas.TimeseriesReport) string {
	if len(rep.Points) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for _, p := range rep.Points {
		labels = append(labels, fmt.Sprintf("\"%d\"", p.Year))
		values = append(values, fmt.Sprintf("%.3f", p.Millions))
		maxVal = math.Max(maxVal, p.Millions)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", mermaidLabel(fmt.Sprintf("%s: %s over time", rep.Country.Name, rep.Direction))))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Migrants (M)\" 0 --> %.2f\n", math.Max(0.01, maxVal*1.2)))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GeneratePartnersChart creates a Mermaid bar chart of the top partners' shares.
func GeneratePartnersChart(rep atlas.PartnerReport) string {
	if len(rep.Partners) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0.0

	for _, p := range rep.Partners {
		labels = append(labels, mermaidLabel(p.Name))
		values = append(values, fmt.Sprintf("%.1f", p.Share))
		maxVal = math.Max(maxVal, p.Share)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", mermaidLabel(fmt.Sprintf("%s: top %s partners (%d)", rep.Country.Name, rep.Direction, rep.Year))))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Share (%%)\" 0 --> %d\n", int(math.Ceil(math.Min(100, maxVal*1.2)))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCategoryPie creates a Mermaid pie chart of how many countries fall into each
// category and each special encoding.
func GenerateCategoryPie(res classify.Result) string {
	if res.Empty || len(res.Categories) == 0 {
		return ""
	}

	counts := make([]int, len(res.Categories))
	var outliers, zero, indeterminate, noData int
	for _, e := range res.PerCountry {
		switch {
		case e.Flags.NoData:
			noData++
		case e.Flags.Indeterminate:
			indeterminate++
		case e.Flags.Zero:
			zero++
		case e.Flags.Outlier:
			outliers++
		case e.Category >= 0:
			counts[e.Category]++
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Countries per Category\n")
	for i, c := range res.Categories {
		if counts[i] > 0 {
			sb.WriteString(fmt.Sprintf("    %s : %d\n", mermaidLabel(c.Label), counts[i]))
		}
	}
	for _, extra := range []struct {
		label string
		n     int
	}{
		{"Outliers", outliers},
		{"Zero", zero},
		{"Indeterminate", indeterminate},
		{"No data", noData},
	} {
		if extra.n > 0 {
			sb.WriteString(fmt.Sprintf("    \"%s\" : %d\n", extra.label, extra.n))
		}
	}
	sb.WriteString("```")
	return sb.String()
}
