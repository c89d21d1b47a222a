// Package geom holds the plain geometry snapshots exchanged between the
// rendering environment and the placement logic.
//
// All values are in the same unit as the environment that measured them:
// CSS pixels for a browser bridge, cells for a terminal, user units for SVG.
package geom

// Point is a position in document coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the rendered extent of an element.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is a read-only snapshot of an element's geometry at one point in time.
// X and Y are the top-left corner; Y grows downwards.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// R is shorthand for constructing a Rect.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Size returns the extent of the rectangle.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// IsZero reports whether r has no area.
func (r Rect) IsZero() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so adjacent rectangles never both contain a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// At returns a rectangle of size s with its top-left corner at p.
func (s Size) At(p Point) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// IsZero reports whether both extents are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }
