package stats

import (
	"math"
)

// OutlierZ is the absolute z-score above which a value is an outlier.
const OutlierZ = 2.0

// DetectOutliers splits candidates into outlier codes and kept values using z-scores
// against the candidates' mean and sample standard deviation. With no spread (σ = 0)
// nothing is an outlier. Kept values use set semantics: equal values collapse.
func DetectOutliers(candidates []Candidate) Partition {
	values := make([]float64, len(candidates))
	for i, c := range candidates {
		values[i] = c.Value
	}

	p := Partition{
		Outliers: make(map[string]struct{}),
		Mean:     Mean(values),
		StdDev:   StdDev(values),
	}

	seen := make(map[float64]struct{}, len(candidates))
	for _, c := range candidates {
		if p.StdDev > 0 && math.Abs((c.Value-p.Mean)/p.StdDev) > OutlierZ {
			p.Outliers[c.Code] = struct{}{}
			continue
		}
		if _, dup := seen[c.Value]; dup {
			continue
		}
		seen[c.Value] = struct{}{}
		p.Kept = append(p.Kept, c.Value)
	}

	return p
}
