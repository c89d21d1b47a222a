package visibility

import (
	"strings"

	"github.com/matzehuels/popover/pkg/errors"
)

// Mode selects which interaction drives visibility.
type Mode int

const (
	Hover Mode = iota
	Click
	Focus
)

var modeNames = [...]string{Hover: "hover", Click: "click", Focus: "focus"}

// Modes lists every mode.
func Modes() []Mode { return []Mode{Hover, Click, Focus} }

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode parses "hover", "click" or "focus".
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidTrigger, "unknown trigger %q (want hover, click or focus)", s)
}

// MarshalText encodes the mode name.
func (m Mode) MarshalText() ([]byte, error) {
	if m.String() == "unknown" {
		return nil, errors.New(errors.ErrCodeInvalidTrigger, "unknown trigger mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Source selects who owns the visible state. It is either [Internal] or
// [External].
type Source interface {
	source()
}

// Internal lets the controller own its state, starting at Default.
type Internal struct {
	Default bool
}

// External makes the controller a relay. Visible is the owner's current
// value; OnChange receives every desired transition.
type External struct {
	Visible  bool
	OnChange func(visible bool)
}

func (Internal) source() {}
func (External) source() {}
