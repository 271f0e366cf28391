package classify

import (
	"errors"
	"math"
	"testing"
)

func TestBuildCategories_Sequential(t *testing.T) {
	cats, err := BuildCategories([]float64{5, 1, 4, 2, 3}, false, Blues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != Classes {
		t.Fatalf("Expected %d categories, got %d", Classes, len(cats))
	}
	if cats[0].Start != 0 {
		t.Errorf("Expected first category to start at 0, got %v", cats[0].Start)
	}
	if cats[Classes-1].End != 5 {
		t.Errorf("Expected last category to end at max, got %v", cats[Classes-1].End)
	}
	for i, c := range cats {
		if c.Color != Blues[i] {
			t.Errorf("category %d color = %s, want %s", i, c.Color, Blues[i])
		}
		if c.Start > c.End {
			t.Errorf("category %d is decreasing: %v > %v", i, c.Start, c.End)
		}
		if i > 0 && cats[i-1].End != c.Start {
			t.Errorf("categories %d and %d are not contiguous", i-1, i)
		}
	}
}

func TestBuildCategories_Diverging(t *testing.T) {
	cats, err := BuildCategories([]float64{1, 2, 3, 4, 5.5}, true, RdBu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cats[0].Start != -5.5 {
		t.Errorf("Expected diverging lower bound -5.5, got %v", cats[0].Start)
	}
	want := []float64{-5.5, 1.8, 2.6, 3.4, 4.3, 5.5}
	for i, c := range cats {
		if math.Abs(c.Start-want[i]) > 1e-9 || math.Abs(c.End-want[i+1]) > 1e-9 {
			t.Errorf("category %d = [%v, %v], want [%v, %v]", i, c.Start, c.End, want[i], want[i+1])
		}
	}
}

func TestBuildCategories_Errors(t *testing.T) {
	if _, err := BuildCategories(nil, false, Blues); !errors.Is(err, ErrNoData) {
		t.Errorf("Expected ErrNoData for an empty domain, got %v", err)
	}
	if _, err := BuildCategories([]float64{1}, false, Blues[:3]); err == nil {
		t.Errorf("Expected an error for a short palette")
	}
}

func TestFind_Boundaries(t *testing.T) {
	cats, err := BuildCategories([]float64{1, 2, 3, 4, 5, 6, 7, 8}, false, Blues)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, c := range cats {
		if got := Find(cats, c.End); got != i {
			t.Errorf("value at upper bound of category %d found in %d", i, got)
		}
	}
	if got := Find(cats, 0); got != -1 {
		t.Errorf("value equal to the domain start must not be classified, got %d", got)
	}
	if got := Find(cats, 8.01); got != -1 {
		t.Errorf("value above max must not be classified, got %d", got)
	}

	div, err := BuildCategories([]float64{1, 2, 3}, true, RdBu)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Find(div, -3); got != -1 {
		t.Errorf("-max sits on the open lower bound and must not be classified, got %d", got)
	}
	if got := Find(div, -2.9); got != 0 {
		t.Errorf("Expected a decrease to fall into the first category, got %d", got)
	}
}

func TestCategory_FormatLabel(t *testing.T) {
	tests := []struct {
		name string
		cat  Category
		unit Unit
		want string
	}{
		{"Migrants", Category{Start: 0, End: 1_260_000}, UnitMigrants, "0.0M - 1.3M Migrants"},
		{"Share", Category{Start: 0.5, End: 2.346}, UnitShare, "0.50% - 2.35%"},
		{"ShareRounded", Category{Start: 2.4, End: 7.6}, UnitShareRounded, "2% - 8% Migrants"},
		{"Delta", Category{Start: -5.5, End: 1.84}, UnitDelta, "-5.5% - 1.8%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cat.FormatLabel(tt.unit); got != tt.want {
				t.Errorf("FormatLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSizeScale(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		x     float64
		want  float64
	}{
		{"SqrtQuarter", ShapeSqrt, 25, 35},
		{"LinearHalf", ShapeLinear, 50, 35},
		{"SquareHalf", ShapeSquare, 50, 22.5},
		{"Zero", ShapeLinear, 0, 10},
		{"ClampedAbove", ShapeSqrt, 400, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SizeScale{Shape: tt.shape, DomainMax: 100, Min: 10, Max: 60}
			if got := s.Size(tt.x); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Size(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}
