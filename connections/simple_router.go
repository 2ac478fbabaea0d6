package connections

import (
	"cablemap/geometry"
)

// Candidate scoring weights.
const (
	turnWeight     = 1.0
	crossingWeight = 2.0
	pointWeight    = 0.5
)

// SimpleRouter picks the cheapest of a fixed set of L and U shaped
// candidates. It never searches, so it is only as good as its candidates.
type SimpleRouter struct{}

// NewSimpleRouter creates a new simple router.
func NewSimpleRouter() *SimpleRouter {
	return &SimpleRouter{}
}

// RouteConnection returns the intermediate waypoints between source and
// target, endpoints excluded. A candidate is rejected when any of its
// segments, inflated by clearance, overlaps a device inflated by clearance.
// existing holds the polylines of already routed cables; crossing them is
// penalised but not forbidden. The result is empty when source and target
// are aligned or when every candidate is rejected.
func (r *SimpleRouter) RouteConnection(source, target geometry.Point, devices []geometry.Rect, existing [][]geometry.Point, clearance float64) []geometry.Point {
	waypoints, _ := r.route(source, target, devices, existing, clearance)
	return waypoints
}

// route is RouteConnection that also reports whether any candidate survived.
func (r *SimpleRouter) route(source, target geometry.Point, devices []geometry.Rect, existing [][]geometry.Point, clearance float64) ([]geometry.Point, bool) {
	best, bestScore, found := []geometry.Point(nil), 0.0, false
	for _, cand := range simpleCandidates(source, target, clearance) {
		if !r.clear(cand, devices, clearance) {
			continue
		}
		score := scoreCandidate(cand, existing)
		if !found || score < bestScore {
			best, bestScore, found = cand, score, true
		}
	}
	if !found {
		return nil, false
	}
	if len(best) <= 2 {
		return nil, true
	}
	out := make([]geometry.Point, len(best)-2)
	copy(out, best[1:len(best)-1])
	return out, true
}

// simpleCandidates builds the candidate polylines in preference order.
func simpleCandidates(s, t geometry.Point, clearance float64) [][]geometry.Point {
	midX := (s.X + t.X) / 2
	midY := (s.Y + t.Y) / 2
	offsetX := s.X + 2*clearance*nonZeroSign(t.X-s.X)
	offsetY := s.Y + 2*clearance*nonZeroSign(t.Y-s.Y)

	raw := [][]geometry.Point{
		{s, geometry.Pt(t.X, s.Y), t},
		{s, geometry.Pt(s.X, t.Y), t},
		{s, geometry.Pt(s.X, midY), geometry.Pt(t.X, midY), t},
		{s, geometry.Pt(midX, s.Y), geometry.Pt(midX, t.Y), t},
		{s, geometry.Pt(offsetX, s.Y), geometry.Pt(offsetX, t.Y), t},
		{s, geometry.Pt(s.X, offsetY), geometry.Pt(t.X, offsetY), t},
	}
	out := make([][]geometry.Point, 0, len(raw))
	for _, c := range raw {
		out = append(out, normalize(c))
	}
	return out
}

func nonZeroSign(v float64) float64 {
	if s := geometry.Sign(v); s != 0 {
		return s
	}
	return 1
}

// normalize drops repeated points and interior points that do not turn.
func normalize(points []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, 0, len(points))
	for _, p := range points {
		if n := len(out); n > 0 && out[n-1].Eq(p) {
			continue
		}
		if n := len(out); n >= 2 && geometry.IsAligned(out[n-2], out[n-1], p) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *SimpleRouter) clear(points []geometry.Point, devices []geometry.Rect, clearance float64) bool {
	for i := 0; i+1 < len(points); i++ {
		bounds := geometry.BoundingRect(points[i], points[i+1]).Inflate(clearance)
		for _, d := range devices {
			if geometry.RectanglesOverlap(bounds, d.Inflate(clearance)) {
				return false
			}
		}
	}
	return true
}

func scoreCandidate(points []geometry.Point, existing [][]geometry.Point) float64 {
	turns := len(points) - 2
	if turns < 0 {
		turns = 0
	}
	crossings := 0
	for i := 0; i+1 < len(points); i++ {
		seg := geometry.Seg(points[i], points[i+1])
		for _, other := range existing {
			for j := 0; j+1 < len(other); j++ {
				if geometry.SegmentsIntersect(seg, geometry.Seg(other[j], other[j+1])) {
					crossings++
				}
			}
		}
	}
	return float64(turns)*turnWeight + float64(crossings)*crossingWeight + float64(len(points))*pointWeight
}
