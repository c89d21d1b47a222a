package geom

import (
	"strconv"
	"strings"

	"github.com/matzehuels/popover/pkg/errors"
)

// ParseRect parses "x,y,width,height". Whitespace around fields is ignored.
func ParseRect(s string) (Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return Rect{}, err
	}
	r := Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	return r, r.Validate()
}

// ParseSize parses "width,height".
func ParseSize(s string) (Size, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return Size{}, err
	}
	sz := Size{Width: v[0], Height: v[1]}
	return sz, sz.Validate()
}

// Validate rejects non-finite coordinates and negative extents.
func (r Rect) Validate() error {
	if err := errors.ValidateCoordinate("x", r.X); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("y", r.Y); err != nil {
		return err
	}
	return r.Size().Validate()
}

// Validate rejects non-finite and negative extents.
func (s Size) Validate() error {
	if err := errors.ValidateDimension("width", s.Width); err != nil {
		return err
	}
	return errors.ValidateDimension("height", s.Height)
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != n {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "expected %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGeometry, err, "field %d of %q", i+1, s)
		}
		out[i] = v
	}
	return out, nil
}
