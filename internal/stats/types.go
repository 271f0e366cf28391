package stats

// Value is one per-country statistic. Invalid marks a value that was computed but is not
// trustworthy (e.g. a foreign-born share above 100%); it is distinct from a real zero.
type Value struct {
	Amount  float64 `json:"value"`
	Invalid bool    `json:"invalid,omitempty"`
}

// ScalarMap maps a canonical country code to its statistic for one year and mode.
type ScalarMap map[string]Value

// Valid returns the amount and true when the code is present and not invalid.
func (m ScalarMap) Valid(code string) (float64, bool) {
	v, ok := m[code]
	if !ok || v.Invalid {
		return 0, false
	}
	return v.Amount, true
}

// Candidate is one (code, value) pair submitted to outlier detection.
type Candidate struct {
	Code  string
	Value float64
}

// Partition is the result of outlier detection.
type Partition struct {
	// Kept holds the distinct non-outlier values in first-seen order.
	// Equal values from different countries collapse into one entry.
	Kept     []float64           `json:"kept"`
	Outliers map[string]struct{} `json:"-"`
	Mean     float64             `json:"mean"`
	StdDev   float64             `json:"std_dev"`
}

// IsOutlier reports whether code was flagged.
func (p Partition) IsOutlier(code string) bool {
	_, ok := p.Outliers[code]
	return ok
}

// OutlierCodes returns the flagged codes in no particular order.
func (p Partition) OutlierCodes() []string {
	codes := make([]string, 0, len(p.Outliers))
	for c := range p.Outliers {
		codes = append(codes, c)
	}
	return codes
}
