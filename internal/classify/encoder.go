package classify

import (
	"math"

	"migmap/internal/stats"
)

// Style parameterizes one classification run.
type Style struct {
	Palette       []string
	Diverging     bool
	Sized         bool
	Shape         Shape
	Unit          Unit
	Indeterminate string
	Zero          string
	Empty         string
	SizeMin       float64
	SizeMax       float64
}

// Polarity is the direction of a signed evolution value.
type Polarity string

const (
	PolarityIncrease Polarity = "increase"
	PolarityDecrease Polarity = "decrease"
)

// Flags explains how an encoding was chosen.
type Flags struct {
	Indeterminate bool     `json:"indeterminate,omitempty"`
	Zero          bool     `json:"zero,omitempty"`
	Outlier       bool     `json:"outlier,omitempty"`
	NoData        bool     `json:"no_data,omitempty"`
	Unclassified  bool     `json:"unclassified,omitempty"`
	Polarity      Polarity `json:"polarity,omitempty"`
}

// Encoding is the final visual resolution of one country.
type Encoding struct {
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
	Size     float64 `json:"size,omitempty"`
	Category int     `json:"category"`
	Flags    Flags   `json:"flags"`
}

// Encoder resolves values to encodings against a fixed set of classification artifacts.
type Encoder struct {
	style      Style
	categories []Category
	partition  stats.Partition
	keptMean   float64
	scale      SizeScale
}

// NewEncoder binds the artifacts of one classification run.
func NewEncoder(style Style, categories []Category, partition stats.Partition) *Encoder {
	return &Encoder{
		style:      style,
		categories: categories,
		partition:  partition,
		keptMean:   stats.Mean(partition.Kept),
		scale: SizeScale{
			Shape:     style.Shape,
			DomainMax: stats.Max(partition.Kept),
			Min:       style.SizeMin,
			Max:       style.SizeMax,
		},
	}
}

// Encode resolves the value of code. present is false when the code has no entry in the
// scalar map.
func (e *Encoder) Encode(code string, v stats.Value, present bool) Encoding {
	enc := Encoding{Value: v.Amount, Category: -1}
	if e.style.Diverging && present && !v.Invalid {
		switch {
		case v.Amount > 0:
			enc.Flags.Polarity = PolarityIncrease
		case v.Amount < 0:
			enc.Flags.Polarity = PolarityDecrease
		}
	}

	switch {
	case !present:
		enc.Flags.NoData = true
		enc.Color = e.style.Empty
		e.setSize(&enc, e.style.SizeMin)
	case v.Invalid:
		enc.Flags.Indeterminate = true
		enc.Color = e.style.Indeterminate
		e.setSize(&enc, e.style.SizeMin)
	case v.Amount == 0:
		enc.Flags.Zero = true
		enc.Color = e.style.Zero
		e.setSize(&enc, e.style.SizeMin)
	case e.partition.IsOutlier(code):
		enc.Flags.Outlier = true
		if v.Amount > e.keptMean {
			enc.Color = e.style.Palette[len(e.style.Palette)-1]
			enc.Category = len(e.categories) - 1
		} else {
			enc.Color = e.style.Palette[0]
			enc.Category = 0
		}
		e.setSize(&enc, e.style.SizeMax)
	default:
		enc.Category = Find(e.categories, v.Amount)
		if enc.Category < 0 {
			enc.Flags.Unclassified = true
			enc.Color = e.style.Empty
		} else {
			enc.Color = e.categories[enc.Category].Color
		}
		e.setSize(&enc, e.scale.Size(math.Abs(v.Amount)))
	}
	return enc
}

func (e *Encoder) setSize(enc *Encoding, size float64) {
	if e.style.Sized {
		enc.Size = size
	}
}
