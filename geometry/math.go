package geometry

import "math"

// Epsilon is the tolerance used when comparing canvas coordinates.
const Epsilon = 1e-9

// Near reports whether two coordinates are equal within Epsilon.
func Near(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Sign returns -1, 0 or 1 depending on the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > Epsilon:
		return 1
	case v < -Epsilon:
		return -1
	default:
		return 0
	}
}

// Between reports whether v lies in the closed range spanned by a and b,
// regardless of their order.
func Between(v, a, b float64) bool {
	lo, hi := math.Min(a, b), math.Max(a, b)
	return v >= lo-Epsilon && v <= hi+Epsilon
}
