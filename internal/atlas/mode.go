package atlas

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the statistic shown by the anamorphic view.
type Mode string

const (
	ModeAbsolute   Mode = "absolute"
	ModePercentage Mode = "percentage"
	ModeEvolution  Mode = "evolution"
)

// DefaultMode is the anamorphic mode of a fresh session.
const DefaultMode = ModeEvolution

// Modes lists the valid anamorphic modes.
func Modes() []Mode {
	return []Mode{ModeAbsolute, ModePercentage, ModeEvolution}
}

// ErrInvalidMode is returned for a mode outside Modes.
var ErrInvalidMode = errors.New("invalid mode")

// ParseMode validates a mode string. An empty string yields DefaultMode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAbsolute, ModePercentage, ModeEvolution:
		return m, nil
	case "":
		return DefaultMode, nil
	}
	return "", fmt.Errorf("%w: %q (expected absolute, percentage or evolution)", ErrInvalidMode, s)
}

// View is the map layout shown to the user.
type View string

const (
	ViewChoropleth View = "choropleth"
	ViewAnamorphic View = "anamorphic"
)

// ErrInvalidView is returned for a view other than choropleth or anamorphic.
var ErrInvalidView = errors.New("invalid view")

// ParseView validates a view string. An empty string yields the choropleth.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewChoropleth, ViewAnamorphic:
		return v, nil
	case "":
		return ViewChoropleth, nil
	}
	return "", fmt.Errorf("%w: %q (expected choropleth or anamorphic)", ErrInvalidView, s)
}
