package countries

import (
	"slices"
	"strings"
)

// aggregateCodes lists the M49 codes of regions, income groups and continents.
// They appear in the source datasets next to genuine countries and must never be
// treated as one.
var aggregateCodes = map[string]struct{}{
	"001": {}, "947": {}, "1833": {}, "921": {}, "1832": {}, "1830": {}, "1835": {}, "927": {}, "1829": {},
	"901": {}, "902": {}, "934": {}, "948": {}, "941": {}, "1636": {}, "1637": {}, "1503": {}, "1517": {},
	"1502": {}, "1501": {}, "1500": {}, "903": {}, "910": {}, "911": {}, "912": {}, "913": {}, "914": {},
	"935": {}, "5500": {}, "906": {}, "920": {}, "5501": {}, "922": {}, "908": {}, "923": {}, "924": {},
	"925": {}, "926": {}, "904": {}, "900": {},
}

// IsAggregate reports whether code denotes a region or group aggregate.
// The code is normalized first, so "1" and "001" are equivalent.
func IsAggregate(code string) bool {
	norm, ok := Normalize(code)
	if !ok {
		return false
	}
	_, found := aggregateCodes[norm]
	return found
}

// AggregateCodes returns the aggregate codes in ascending order.
func AggregateCodes() []string {
	codes := make([]string, 0, len(aggregateCodes))
	for c := range aggregateCodes {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Normalize trims a raw numeric code and left-pads it with zeros to three digits.
// It returns false when the input is empty or contains anything but digits.
func Normalize(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", false
		}
	}
	if len(code) < 3 {
		code = strings.Repeat("0", 3-len(code)) + code
	}
	return code, true
}
