package classify

import (
	"math"
	"slices"

	"migmap/internal/stats"
)

// Result is the output of one classification run.
type Result struct {
	Categories []Category          `json:"categories"`
	PerCountry map[string]Encoding `json:"per_country"`
	Outliers   []string            `json:"outliers,omitempty"`
	KeptMean   float64             `json:"kept_mean"`
	KeptMax    float64             `json:"kept_max"`
	// Empty is set when no value survived filtering; every country then carries the
	// neutral empty color.
	Empty bool `json:"empty,omitempty"`
}

// Candidates returns the valid, non-zero magnitudes of values ordered by code. Diverging
// styles use absolute values.
func Candidates(values stats.ScalarMap, diverging bool) []stats.Candidate {
	codes := make([]string, 0, len(values))
	for code := range values {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]stats.Candidate, 0, len(codes))
	for _, code := range codes {
		v, ok := values.Valid(code)
		if !ok {
			continue
		}
		if diverging {
			v = math.Abs(v)
		}
		if v > 0 {
			out = append(out, stats.Candidate{Code: code, Value: v})
		}
	}
	return out
}

// Classify runs outlier detection, quantile binning and encoding over values. universe
// lists codes that must be encoded even without a value (e.g. every drawn feature); codes
// of values are always encoded.
func Classify(values stats.ScalarMap, universe []string, style Style) Result {
	partition := stats.DetectOutliers(Candidates(values, style.Diverging))

	// Non-positive kept values cannot be binned.
	var kept []float64
	for _, v := range partition.Kept {
		if v > 0 {
			kept = append(kept, v)
		}
	}
	partition.Kept = kept

	res := Result{
		PerCountry: make(map[string]Encoding, len(values)+len(universe)),
		KeptMean:   stats.Mean(kept),
		KeptMax:    stats.Max(kept),
	}

	cats, err := BuildCategories(kept, style.Diverging, style.Palette)
	if err != nil {
		// ErrNoData, or a palette of the wrong length: render the empty state.
		res.Empty = true
		partition.Outliers = nil
	} else {
		for i := range cats {
			cats[i].Label = cats[i].FormatLabel(style.Unit)
		}
		res.Categories = cats
		res.Outliers = partition.OutlierCodes()
		slices.Sort(res.Outliers)
	}

	enc := NewEncoder(style, cats, partition)
	encode := func(code string) {
		if _, done := res.PerCountry[code]; done {
			return
		}
		v, present := values[code]
		e := enc.Encode(code, v, present)
		if res.Empty {
			e.Color = style.Empty
			e.Category = -1
			e.Flags.Outlier = false
			e.Flags.Unclassified = false
			if style.Sized {
				e.Size = style.SizeMin
			}
		}
		res.PerCountry[code] = e
	}
	for code := range values {
		encode(code)
	}
	for _, code := range universe {
		encode(code)
	}
	return res
}
