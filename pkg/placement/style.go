package placement

import (
	"encoding/json"
	"fmt"
)

// Style is the computed position of a panel in document coordinates.
// The zero Style is empty: the panel keeps its default position.
type Style struct {
	Top  float64
	Left float64
	set  bool
}

// At returns a non-empty style.
func At(top, left float64) Style {
	return Style{Top: top, Left: left, set: true}
}

// IsEmpty reports whether no position was computed.
func (s Style) IsEmpty() bool { return !s.set }

// CSS renders the style as inline declarations, or "" when empty.
func (s Style) CSS() string {
	if !s.set {
		return ""
	}
	return fmt.Sprintf("top: %gpx; left: %gpx;", s.Top, s.Left)
}

type styleJSON struct {
	Top  *float64 `json:"top,omitempty"`
	Left *float64 `json:"left,omitempty"`
}

// MarshalJSON encodes {} for an empty style and {"top":..,"left":..}
// otherwise.
func (s Style) MarshalJSON() ([]byte, error) {
	if !s.set {
		return []byte("{}"), nil
	}
	top, left := s.Top, s.Left
	return json.Marshal(styleJSON{Top: &top, Left: &left})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (s *Style) UnmarshalJSON(b []byte) error {
	var v styleJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v.Top == nil && v.Left == nil {
		*s = Style{}
		return nil
	}
	*s = Style{set: true}
	if v.Top != nil {
		s.Top = *v.Top
	}
	if v.Left != nil {
		s.Left = *v.Left
	}
	return nil
}
