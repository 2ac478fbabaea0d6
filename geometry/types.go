// Package geometry contains the axis-aligned primitives shared by all routers.
package geometry

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in canvas space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Eq reports whether two points coincide within Epsilon.
func (p Point) Eq(o Point) bool {
	return Near(p.X, o.X) && Near(p.Y, o.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Rect is an axis-aligned bounding box with Left <= Right and Top <= Bottom.
// Y grows downward.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// RectXYWH builds a rect from its top-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the width of the rect.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rect.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Center returns the centre point of the rect.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Corners returns the four corners, top-left first, clockwise.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
}

// NearestCorner returns the corner of r closest to p.
func (r Rect) NearestCorner(p Point) Point {
	corners := r.Corners()
	best := corners[0]
	bestDist := Distance(p, best)
	for _, c := range corners[1:] {
		if d := Distance(p, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// ContainsX reports whether x lies strictly between the left and right edges.
func (r Rect) ContainsX(x float64) bool {
	return x > r.Left && x < r.Right
}

// ContainsY reports whether y lies strictly between the top and bottom edges.
func (r Rect) ContainsY(y float64) bool {
	return y > r.Top && y < r.Bottom
}

// Inflate grows every edge of r by d.
func (r Rect) Inflate(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// ShrinkHorizontal moves the left and right edges inward by d. Shrinking past
// the centre collapses the rect to its vertical centre line.
func (r Rect) ShrinkHorizontal(d float64) Rect {
	if d <= 0 {
		return r
	}
	if 2*d >= r.Width() {
		mid := (r.Left + r.Right) / 2
		return Rect{Left: mid, Top: r.Top, Right: mid, Bottom: r.Bottom}
	}
	return Rect{Left: r.Left + d, Top: r.Top, Right: r.Right - d, Bottom: r.Bottom}
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Segment is a straight line between two points. The routers only ever
// produce horizontal or vertical segments.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Seg is shorthand for Segment{Start: a, End: b}.
func Seg(a, b Point) Segment {
	return Segment{Start: a, End: b}
}

// IsHorizontal reports whether both endpoints share a Y coordinate.
func (s Segment) IsHorizontal() bool {
	return Near(s.Start.Y, s.End.Y)
}

// IsVertical reports whether both endpoints share an X coordinate.
func (s Segment) IsVertical() bool {
	return Near(s.Start.X, s.End.X)
}

// IsPoint reports whether the segment has zero length.
func (s Segment) IsPoint() bool {
	return s.Start.Eq(s.End)
}

// Length returns the Manhattan length of the segment.
func (s Segment) Length() float64 {
	return ManhattanDistance(s.Start, s.End)
}

// Bounds returns the rect spanned by the segment.
func (s Segment) Bounds() Rect {
	return BoundingRect(s.Start, s.End)
}

func (s Segment) String() string {
	return s.Start.String() + "->" + s.End.String()
}
