package classify

// Classes is the number of categories of every classification.
const Classes = 5

// Blues is the 5-step sequential palette used for absolute and percentage values.
var Blues = []string{"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"}

// RdBu is the 5-step diverging palette used for evolution values.
var RdBu = []string{"#ca0020", "#f4a582", "#f7f7f7", "#92c5de", "#0571b0"}

const (
	ColorIndeterminate = "#d3d3d3"
	ColorZero          = "#ffffff"
	ColorEmpty         = "#f0f0f0"

	DefaultSizeMin = 10.0
	DefaultSizeMax = 60.0
)

// Theme holds the configurable colors and size range shared by every view.
type Theme struct {
	Sequential    []string `yaml:"sequential" json:"sequential" validate:"len=5,dive,hexcolor"`
	Diverging     []string `yaml:"diverging" json:"diverging" validate:"len=5,dive,hexcolor"`
	Indeterminate string   `yaml:"indeterminate" json:"indeterminate" validate:"hexcolor"`
	Zero          string   `yaml:"zero" json:"zero" validate:"hexcolor"`
	Empty         string   `yaml:"empty" json:"empty" validate:"hexcolor"`
	SizeMin       float64  `yaml:"size_min" json:"size_min" validate:"gte=0"`
	SizeMax       float64  `yaml:"size_max" json:"size_max" validate:"gtfield=SizeMin"`
}

// DefaultTheme returns the stock palettes and a 10..60 size range.
func DefaultTheme() Theme {
	return Theme{
		Sequential:    append([]string(nil), Blues...),
		Diverging:     append([]string(nil), RdBu...),
		Indeterminate: ColorIndeterminate,
		Zero:          ColorZero,
		Empty:         ColorEmpty,
		SizeMin:       DefaultSizeMin,
		SizeMax:       DefaultSizeMax,
	}
}

func (t Theme) base(palette []string) Style {
	return Style{
		Palette:       palette,
		Indeterminate: t.Indeterminate,
		Zero:          t.Zero,
		Empty:         t.Empty,
		SizeMin:       t.SizeMin,
		SizeMax:       t.SizeMax,
	}
}

// Choropleth colors population shares without sizing.
func (t Theme) Choropleth() Style {
	s := t.base(t.Sequential)
	s.Unit = UnitShare
	return s
}

// Absolute sizes raw migrant counts on a square-root scale.
func (t Theme) Absolute() Style {
	s := t.base(t.Sequential)
	s.Sized = true
	s.Shape = ShapeSqrt
	s.Unit = UnitMigrants
	return s
}

// Percentage sizes population shares on a linear scale.
func (t Theme) Percentage() Style {
	s := t.base(t.Sequential)
	s.Sized = true
	s.Shape = ShapeLinear
	s.Unit = UnitShareRounded
	return s
}

// Evolution colors signed deltas on the diverging palette and sizes their magnitude on a
// square scale.
func (t Theme) Evolution() Style {
	s := t.base(t.Diverging)
	s.Sized = true
	s.Diverging = true
	s.Shape = ShapeSquare
	s.Unit = UnitDelta
	return s
}
