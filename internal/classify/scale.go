package classify

import "math"

// Shape is the transfer curve of a size scale.
type Shape string

const (
	ShapeSqrt   Shape = "sqrt"
	ShapeLinear Shape = "linear"
	ShapeSquare Shape = "square"
)

// SizeScale maps [0, DomainMax] onto [Min, Max] through Shape. Inputs outside the domain
// are clamped.
type SizeScale struct {
	Shape     Shape
	DomainMax float64
	Min, Max  float64
}

// Size returns the visual size of magnitude x.
func (s SizeScale) Size(x float64) float64 {
	if s.DomainMax <= 0 || x <= 0 {
		return s.Min
	}
	t := math.Min(x/s.DomainMax, 1)
	switch s.Shape {
	case ShapeSqrt:
		t = math.Sqrt(t)
	case ShapeSquare:
		t *= t
	}
	return s.Min + (s.Max-s.Min)*t
}
