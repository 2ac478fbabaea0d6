package core

import (
	"strings"

	"cablemap/geometry"
)

// Path is one routed wire: contiguous segments from the source joint toward
// the target joint. Reached is false when routing stopped early and the last
// segment does not end at the target.
type Path struct {
	Segments []geometry.Segment
	Reached  bool
}

// IsEmpty returns true if the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Start returns the first point of the path.
func (p Path) Start() (geometry.Point, bool) {
	if p.IsEmpty() {
		return geometry.Point{}, false
	}
	return p.Segments[0].Start, true
}

// End returns the last point of the path.
func (p Path) End() (geometry.Point, bool) {
	if p.IsEmpty() {
		return geometry.Point{}, false
	}
	return p.Segments[len(p.Segments)-1].End, true
}

// Points returns the polyline vertices of the path.
func (p Path) Points() []geometry.Point {
	if p.IsEmpty() {
		return nil
	}
	pts := make([]geometry.Point, 0, len(p.Segments)+1)
	pts = append(pts, p.Segments[0].Start)
	for _, s := range p.Segments {
		pts = append(pts, s.End)
	}
	return pts
}

// Length returns the total Manhattan length of the path.
func (p Path) Length() float64 {
	total := 0.0
	for _, s := range p.Segments {
		total += s.Length()
	}
	return total
}

// IsContiguous reports whether each segment starts where the previous ended.
func (p Path) IsContiguous() bool {
	for i := 1; i < len(p.Segments); i++ {
		if !p.Segments[i-1].End.Eq(p.Segments[i].Start) {
			return false
		}
	}
	return true
}

// IsAxisAligned reports whether every segment is horizontal or vertical.
func (p Path) IsAxisAligned() bool {
	for _, s := range p.Segments {
		if !s.IsHorizontal() && !s.IsVertical() {
			return false
		}
	}
	return true
}

// Simplify merges consecutive segments running along the same axis and drops
// zero-length segments. Simplifying a simplified path returns it unchanged.
func (p Path) Simplify() Path {
	out := make([]geometry.Segment, 0, len(p.Segments))
	for _, s := range p.Segments {
		if s.IsPoint() {
			continue
		}
		if n := len(out); n > 0 && geometry.Collinear(out[n-1], s) {
			out[n-1].End = s.End
			if out[n-1].IsPoint() {
				out = out[:n-1]
			}
			continue
		}
		out = append(out, s)
	}
	return Path{Segments: out, Reached: p.Reached}
}

// PathFromPoints builds a path from a polyline.
func PathFromPoints(points []geometry.Point, reached bool) Path {
	p := Path{Reached: reached}
	for i := 1; i < len(points); i++ {
		p.Segments = append(p.Segments, geometry.Seg(points[i-1], points[i]))
	}
	return p
}

func (p Path) String() string {
	if p.IsEmpty() {
		return "empty path"
	}
	var sb strings.Builder
	for i, pt := range p.Points() {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(pt.String())
	}
	if !p.Reached {
		sb.WriteString(" (incomplete)")
	}
	return sb.String()
}
