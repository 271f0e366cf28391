package stats

import (
	"fmt"
	"testing"
)

func TestDetectOutliers_FlagsExtremeValue(t *testing.T) {
	var candidates []Candidate
	for i := 1; i <= 10; i++ {
		candidates = append(candidates, Candidate{Code: fmt.Sprintf("%03d", i), Value: 1})
	}
	candidates = append(candidates, Candidate{Code: "999", Value: 100})

	p := DetectOutliers(candidates)

	if !p.IsOutlier("999") {
		t.Errorf("Expected 999 to be an outlier (mean %.2f, sd %.2f)", p.Mean, p.StdDev)
	}
	if len(p.Outliers) != 1 {
		t.Errorf("Expected exactly 1 outlier, got %v", p.OutlierCodes())
	}
	// Ten equal values collapse into a single kept entry.
	if len(p.Kept) != 1 || p.Kept[0] != 1 {
		t.Errorf("Expected kept values [1], got %v", p.Kept)
	}
}

func TestDetectOutliers_NoSpread(t *testing.T) {
	p := DetectOutliers([]Candidate{{"001", 5}, {"002", 5}, {"003", 5}})

	if len(p.Outliers) != 0 {
		t.Errorf("Expected no outliers when all values are equal, got %v", p.OutlierCodes())
	}
	if len(p.Kept) != 1 {
		t.Errorf("Expected one distinct kept value, got %v", p.Kept)
	}
}

func TestDetectOutliers_Disjoint(t *testing.T) {
	candidates := []Candidate{
		{"001", 1}, {"002", 2}, {"003", 3}, {"004", 2.5}, {"005", 1.5},
		{"006", 2}, {"007", 3}, {"008", 1}, {"009", 2}, {"010", 40},
	}
	p := DetectOutliers(candidates)

	for _, c := range candidates {
		kept := false
		for _, v := range p.Kept {
			if v == c.Value {
				kept = true
			}
		}
		if p.IsOutlier(c.Code) == kept {
			t.Errorf("%s (%v): outlier=%v kept=%v, want exactly one", c.Code, c.Value, p.IsOutlier(c.Code), kept)
		}
	}
}

func TestDetectOutliers_Empty(t *testing.T) {
	p := DetectOutliers(nil)
	if len(p.Kept) != 0 || len(p.Outliers) != 0 {
		t.Errorf("Expected empty partition, got %+v", p)
	}
}
