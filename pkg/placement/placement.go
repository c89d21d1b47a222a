package placement

import (
	"strings"

	"github.com/matzehuels/popover/pkg/errors"
)

// Side is the edge of the trigger the panel is attached to.
type Side string

const (
	Top    Side = "top"
	Bottom Side = "bottom"
	Left   Side = "left"
	Right  Side = "right"
)

// Vertical reports whether the panel sits above or below the trigger.
func (s Side) Vertical() bool { return s == Top || s == Bottom }

// Opposite returns the side across the trigger.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return s
}

func (s Side) valid() bool {
	switch s {
	case Top, Bottom, Left, Right:
		return true
	}
	return false
}

// Align positions the panel along the cross axis.
type Align string

const (
	// Start aligns the panel's left (or top) edge with the trigger's.
	Start Align = "start"
	// Center centers the panel on the trigger's cross-axis midpoint.
	Center Align = "center"
	// End aligns the panel's right (or bottom) edge with the trigger's.
	End Align = "end"
)

// Placement is a requested side and alignment.
type Placement struct {
	Side  Side
	Align Align
}

// all lists the twelve documented placements in display order.
var all = []Placement{
	{Top, Center}, {Top, Start}, {Top, End},
	{Right, Center}, {Right, Start}, {Right, End},
	{Bottom, Center}, {Bottom, Start}, {Bottom, End},
	{Left, Center}, {Left, Start}, {Left, End},
}

// All returns the twelve documented placements.
func All() []Placement {
	return append([]Placement(nil), all...)
}

// Parse parses a placement token such as "top", "bottom right" or
// "left top". The align word defaults to center.
func Parse(token string) (Placement, error) {
	words := strings.Fields(strings.ToLower(token))
	if len(words) == 0 || len(words) > 2 {
		return Placement{}, errors.New(errors.ErrCodeInvalidPlacement, "invalid placement %q", token)
	}

	side := Side(words[0])
	if !side.valid() {
		return Placement{}, errors.New(errors.ErrCodeInvalidPlacement, "unknown side %q in placement %q", words[0], token)
	}

	p := Placement{Side: side, Align: Center}
	if len(words) == 1 {
		return p, nil
	}

	align, ok := alignFromWord(side, words[1])
	if !ok {
		return Placement{}, errors.New(errors.ErrCodeInvalidPlacement,
			"alignment %q is not on the cross axis of %q", words[1], side)
	}
	p.Align = align
	return p, nil
}

// MustParse is like Parse but panics on error. Use it for constants.
func MustParse(token string) Placement {
	p, err := Parse(token)
	if err != nil {
		panic(err)
	}
	return p
}

func alignFromWord(side Side, w string) (Align, bool) {
	if w == string(Center) {
		return Center, true
	}
	if side.Vertical() {
		switch w {
		case "left":
			return Start, true
		case "right":
			return End, true
		}
		return "", false
	}
	switch w {
	case "top":
		return Start, true
	case "bottom":
		return End, true
	}
	return "", false
}

// Validate checks that p pairs a known side with an alignment.
func (p Placement) Validate() error {
	if !p.Side.valid() {
		return errors.New(errors.ErrCodeInvalidPlacement, "unknown side %q", p.Side)
	}
	switch p.Align {
	case Start, Center, End:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPlacement, "unknown alignment %q", p.Align)
}

// String returns the canonical token, e.g. "top" or "right bottom".
func (p Placement) String() string {
	if p.Align == Center || p.Align == "" {
		return string(p.Side)
	}
	var w string
	switch {
	case p.Side.Vertical() && p.Align == Start:
		w = "left"
	case p.Side.Vertical():
		w = "right"
	case p.Align == Start:
		w = "top"
	default:
		w = "bottom"
	}
	return string(p.Side) + " " + w
}

// MarshalText encodes p as its token.
func (p Placement) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a token.
func (p *Placement) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
