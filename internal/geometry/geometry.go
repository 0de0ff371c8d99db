// Package geometry provides the screen-space primitives shared by the
// window manager core: points and rectangles.
package geometry

// Point is a position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Sub returns the component-wise difference p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the exclusive right edge of the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge of the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// Translate returns a copy of the rectangle moved by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// CenterIn returns a copy of the rectangle centered within outer,
// keeping its own size.
func (r Rect) CenterIn(outer Rect) Rect {
	r.X = outer.X + (outer.Width-r.Width)/2
	r.Y = outer.Y + (outer.Height-r.Height)/2
	return r
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}
