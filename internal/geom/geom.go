// Package geom is the rectangle, color and timing math behind the view
// transitions. Every function is pure and total over finite inputs.
package geom

import "math"

// Point is a 2D point in window client-area coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle given by its corners. The origin is the
// top-left of the window client area, with Y increasing downward.
// X2 >= X1 and Y2 >= Y1; zero-area rects are legal.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// R builds a Rect from two corners in any order.
func R(x1, y1, x2, y2 float64) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// XYWH builds a Rect from its top-left corner and size.
func XYWH(x, y, w, h float64) Rect {
	return R(x, y, x+w, y+h)
}

// Width returns X2 - X1.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns Y2 - Y1.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Empty reports whether r has zero area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether (x, y) lies inside r. Edges are inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// Inset returns r shrunk by d on every side. The result never inverts; an
// over-inset collapses onto the center.
func (r Rect) Inset(d float64) Rect {
	c := r.Center()
	x1, x2 := r.X1+d, r.X2-d
	if x2 < x1 {
		x1, x2 = c.X, c.X
	}
	y1, y2 := r.Y1+d, r.Y2-d
	if y2 < y1 {
		y1, y2 = c.Y, c.Y
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Scale grows or shrinks r symmetrically about its own center.
// Negative factors are treated as zero.
func (r Rect) Scale(factor float64) Rect {
	if factor < 0 {
		factor = 0
	}
	c := r.Center()
	hw := r.Width() * factor / 2
	hh := r.Height() * factor / 2
	return Rect{X1: c.X - hw, Y1: c.Y - hh, X2: c.X + hw, Y2: c.Y + hh}
}

// Clamp01 restricts t to [0, 1]. NaN maps to 0.
func Clamp01(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Lerp interpolates between a and b. t is clamped to [0, 1] and the
// endpoints are exact.
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a + (b-a)*t
}

// LerpRect interpolates each corner coordinate of r0 toward r1.
func LerpRect(r0, r1 Rect, t float64) Rect {
	return Rect{
		X1: Lerp(r0.X1, r1.X1, t),
		Y1: Lerp(r0.Y1, r1.Y1, t),
		X2: Lerp(r0.X2, r1.X2, t),
		Y2: Lerp(r0.Y2, r1.Y2, t),
	}
}
