package geometry

import "math"

// RectanglesOverlap reports whether a and b share interior area. Touching
// edges do not count. A zero-width or zero-height rect overlaps b when it
// passes through b's interior, which makes the test usable for segments.
func RectanglesOverlap(a, b Rect) bool {
	return a.Left < b.Right && a.Right > b.Left &&
		a.Top < b.Bottom && a.Bottom > b.Top
}

// BoundingRect returns the smallest rect containing both points.
func BoundingRect(a, b Point) Rect {
	return Rect{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Max(a.Y, b.Y),
	}
}

// ExpandRect grows the top and bottom edges of r independently.
func ExpandRect(r Rect, top, bottom float64) Rect {
	return Rect{Left: r.Left, Top: r.Top - top, Right: r.Right, Bottom: r.Bottom + bottom}
}

// SegmentsIntersect tests two axis-aligned segments using closed coordinate
// ranges. Perpendicular segments intersect when each one's fixed coordinate
// falls inside the other's range. Parallel segments intersect only when they
// are collinear and their ranges overlap. Diagonal input never intersects.
func SegmentsIntersect(a, b Segment) bool {
	aH, aV := a.IsHorizontal(), a.IsVertical()
	bH, bV := b.IsHorizontal(), b.IsVertical()
	if (!aH && !aV) || (!bH && !bV) {
		return false
	}

	// Zero-length segments classify as horizontal.
	if aH {
		aV = false
	}
	if bH {
		bV = false
	}

	switch {
	case aH && bH:
		return Near(a.Start.Y, b.Start.Y) && rangesOverlap(a.Start.X, a.End.X, b.Start.X, b.End.X)
	case aV && bV:
		return Near(a.Start.X, b.Start.X) && rangesOverlap(a.Start.Y, a.End.Y, b.Start.Y, b.End.Y)
	case aH && bV:
		return Between(b.Start.X, a.Start.X, a.End.X) && Between(a.Start.Y, b.Start.Y, b.End.Y)
	default:
		return Between(a.Start.X, b.Start.X, b.End.X) && Between(b.Start.Y, a.Start.Y, a.End.Y)
	}
}

// Collinear reports whether two segments run along the same axis: both
// horizontal or both vertical.
func Collinear(a, b Segment) bool {
	return (a.IsHorizontal() && b.IsHorizontal()) || (a.IsVertical() && b.IsVertical())
}

// IsAligned checks if three points lie on one horizontal or vertical line.
func IsAligned(p1, p2, p3 Point) bool {
	if Near(p1.Y, p2.Y) && Near(p2.Y, p3.Y) {
		return true
	}
	return Near(p1.X, p2.X) && Near(p2.X, p3.X)
}

func rangesOverlap(a1, a2, b1, b2 float64) bool {
	aLo, aHi := math.Min(a1, a2), math.Max(a1, a2)
	bLo, bHi := math.Min(b1, b2), math.Max(b1, b2)
	return aLo <= bHi+Epsilon && bLo <= aHi+Epsilon
}
