package population

import (
	"testing"

	"migmap/internal/countries"
)

func TestNewIndex(t *testing.T) {
	resolver := countries.NewResolver([]countries.Identifier{
		{Code: "250", AltCode: "FRA", Name: "France"},
		{Code: "4", AltCode: "AFG", Name: "Afghanistan"},
		{Code: "001", AltCode: "WLD", Name: "World"},
	})

	idx := NewIndex([]Row{
		{AltCode: "FRA", ByYear: map[int]int64{1990: 56_700_000, 2020: 67_500_000}},
		{AltCode: "AFG", ByYear: map[int]int64{1990: 10_700_000, 1995: -5}},
		{AltCode: "WLD", ByYear: map[int]int64{1990: 5_300_000_000}},
		{AltCode: "ZZZ", ByYear: map[int]int64{1990: 1}},
	}, resolver)

	tests := []struct {
		name string
		code string
		year int
		want int64
	}{
		{"Present", "250", 2020, 67_500_000},
		{"Unpadded", "4", 1990, 10_700_000},
		{"NegativeClamped", "004", 1995, 0},
		{"AbsentYear", "250", 2005, 0},
		{"AbsentCode", "076", 1990, 0},
		{"Aggregate", "001", 1990, 0},
		{"Garbage", "abc", 1990, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.Get(tt.code, tt.year); got != tt.want {
				t.Errorf("Get(%q, %d) = %d, want %d", tt.code, tt.year, got, tt.want)
			}
		})
	}

	if idx.Dropped() != 2 {
		t.Errorf("expected 2 dropped rows (aggregate + unknown), got %d", idx.Dropped())
	}
	if idx.Len() != 4 {
		t.Errorf("expected 4 entries, got %d", idx.Len())
	}
}
