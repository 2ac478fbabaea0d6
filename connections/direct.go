package connections

import (
	"fmt"

	"cablemap/geometry"
)

// RoutingStrategy defines how direct paths are routed.
type RoutingStrategy int

const (
	// HorizontalFirst routes horizontally then vertically.
	HorizontalFirst RoutingStrategy = iota
	// VerticalFirst routes vertically then horizontally.
	VerticalFirst
	// MiddleSplit runs horizontally to the middle column, then vertically,
	// then horizontally into the target.
	MiddleSplit
)

// DirectPath creates an elbow path without obstacle avoidance. It is the
// last fallback, used when every router failed.
func DirectPath(start, end geometry.Point, strategy RoutingStrategy) ([]geometry.Point, error) {
	if start.Eq(end) {
		return []geometry.Point{start}, nil
	}
	if geometry.Near(start.X, end.X) || geometry.Near(start.Y, end.Y) {
		return []geometry.Point{start, end}, nil
	}

	switch strategy {
	case HorizontalFirst:
		return []geometry.Point{start, geometry.Pt(end.X, start.Y), end}, nil
	case VerticalFirst:
		return []geometry.Point{start, geometry.Pt(start.X, end.Y), end}, nil
	case MiddleSplit:
		return middleSplit(start, end), nil
	default:
		return nil, fmt.Errorf("unknown routing strategy: %v", strategy)
	}
}

// fallbackOrder is the order directFallback tries the elbow shapes in.
var fallbackOrder = []RoutingStrategy{MiddleSplit, HorizontalFirst, VerticalFirst}

// directFallback returns the first elbow shape whose segments stay out of
// every device, or the middle split when all of them cross one.
func directFallback(start, end geometry.Point, devices []geometry.Rect) []geometry.Point {
	for _, strategy := range fallbackOrder {
		points, err := DirectPath(start, end, strategy)
		if err == nil && polylineClear(points, devices) {
			return points
		}
	}
	return middleSplit(start, end)
}

func polylineClear(points []geometry.Point, devices []geometry.Rect) bool {
	for i := 0; i+1 < len(points); i++ {
		bounds := geometry.BoundingRect(points[i], points[i+1])
		for _, d := range devices {
			if geometry.RectanglesOverlap(bounds, d) {
				return false
			}
		}
	}
	return true
}

func middleSplit(start, end geometry.Point) []geometry.Point {
	if geometry.Near(start.X, end.X) || geometry.Near(start.Y, end.Y) {
		return []geometry.Point{start, end}
	}
	midX := (start.X + end.X) / 2
	return []geometry.Point{start, geometry.Pt(midX, start.Y), geometry.Pt(midX, end.Y), end}
}

// orthogonalize inserts an elbow between consecutive points that differ on
// both axes, keeping the horizontal leg first.
func orthogonalize(points []geometry.Point) []geometry.Point {
	if len(points) < 2 {
		return points
	}
	out := []geometry.Point{points[0]}
	for _, p := range points[1:] {
		last := out[len(out)-1]
		if !geometry.Near(last.X, p.X) && !geometry.Near(last.Y, p.Y) {
			out = append(out, geometry.Pt(p.X, last.Y))
		}
		out = append(out, p)
	}
	return out
}
