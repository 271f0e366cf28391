package countries

import (
	"slices"
	"strings"
)

// Identifier is one row of the country crosswalk.
type Identifier struct {
	Code    string `json:"code"`
	AltCode string `json:"alt_code"`
	Name    string `json:"name"`
}

// Resolver translates between canonical numeric codes, alternate codes and display names.
// It is built once and never mutated; every code it returns is a genuine country.
type Resolver struct {
	codeToAlt  map[string]string
	altToCode  map[string]string
	codeToName map[string]string
	skipped    int
}

// NewResolver builds the crosswalk lookups. Rows with an empty field, a non-numeric code
// or an aggregate code are skipped. When a code repeats, the later row wins.
func NewResolver(rows []Identifier) *Resolver {
	r := &Resolver{
		codeToAlt:  make(map[string]string, len(rows)),
		altToCode:  make(map[string]string, len(rows)),
		codeToName: make(map[string]string, len(rows)),
	}

	for _, row := range rows {
		alt := strings.TrimSpace(row.AltCode)
		name := strings.TrimSpace(row.Name)
		code, ok := Normalize(row.Code)
		if !ok || alt == "" || name == "" {
			r.skipped++
			continue
		}
		if _, agg := aggregateCodes[code]; agg {
			r.skipped++
			continue
		}
		r.codeToAlt[code] = alt
		r.altToCode[alt] = code
		r.codeToName[code] = name
	}

	return r
}

// AltCode returns the alternate code for a canonical code.
func (r *Resolver) AltCode(code string) (string, bool) {
	norm, ok := Normalize(code)
	if !ok {
		return "", false
	}
	alt, ok := r.codeToAlt[norm]
	return alt, ok
}

// Code returns the canonical code for an alternate code.
func (r *Resolver) Code(alt string) (string, bool) {
	code, ok := r.altToCode[strings.TrimSpace(alt)]
	return code, ok
}

// Name returns the display name of a canonical code.
func (r *Resolver) Name(code string) (string, bool) {
	norm, ok := Normalize(code)
	if !ok {
		return "", false
	}
	name, ok := r.codeToName[norm]
	return name, ok
}

// NameOr returns the display name of code, or fallback when the code is unknown.
func (r *Resolver) NameOr(code, fallback string) string {
	if name, ok := r.Name(code); ok {
		return name
	}
	return fallback
}

// Lookup returns the full identifier of a canonical code.
func (r *Resolver) Lookup(code string) (Identifier, bool) {
	norm, ok := Normalize(code)
	if !ok {
		return Identifier{}, false
	}
	alt, ok := r.codeToAlt[norm]
	if !ok {
		return Identifier{}, false
	}
	return Identifier{Code: norm, AltCode: alt, Name: r.codeToName[norm]}, true
}

// Codes returns every canonical code in ascending order.
func (r *Resolver) Codes() []string {
	codes := make([]string, 0, len(r.codeToAlt))
	for c := range r.codeToAlt {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Len returns the number of countries in the crosswalk.
func (r *Resolver) Len() int {
	return len(r.codeToAlt)
}

// Skipped returns the number of crosswalk rows that were rejected.
func (r *Resolver) Skipped() int {
	return r.skipped
}
