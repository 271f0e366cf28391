package flows

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Direction selects which endpoint of a record a flow is attributed to.
type Direction string

const (
	// Inflow attributes a record to its destination.
	Inflow Direction = "inflow"
	// Outflow attributes a record to its origin.
	Outflow Direction = "outflow"
	// DirectionAuto picks Inflow when the country received migrants in the
	// reference year, Outflow otherwise.
	DirectionAuto Direction = "auto"
)

// ErrInvalidDirection is returned for a direction outside inflow, outflow and auto.
var ErrInvalidDirection = errors.New("invalid direction")

// ParseDirection validates a direction string. An empty string means auto.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Inflow:
		return Inflow, nil
	case Outflow:
		return Outflow, nil
	case DirectionAuto, "":
		return DirectionAuto, nil
	}
	return "", fmt.Errorf("%w: %q (expected inflow, outflow or auto)", ErrInvalidDirection, s)
}

// Record is one bilateral migrant stock between two countries in a given year.
// Codes are canonical, zero-padded numeric codes.
type Record struct {
	Origin      string `json:"origin_code"`
	Destination string `json:"destination_code"`
	Year        int    `json:"year"`
	Migrants    int64  `json:"migrants"`
}

// endpoint returns the code the record is attributed to for dir.
func (r Record) endpoint(dir Direction) string {
	if dir == Outflow {
		return r.Origin
	}
	return r.Destination
}

// counterpart returns the other endpoint.
func (r Record) counterpart(dir Direction) string {
	if dir == Outflow {
		return r.Destination
	}
	return r.Origin
}

// ParseCount parses a digit-grouped migrant count such as "1 234 567".
// Any whitespace (including non-breaking spaces) is treated as a group separator.
// Malformed or empty input yields (0, false).
func ParseCount(raw string) (int64, bool) {
	var sb strings.Builder
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(r)
	}
	digits := sb.String()
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
