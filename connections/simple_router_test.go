package connections

import (
	"testing"

	"cablemap/geometry"
)

func TestSimpleRouterTieBreak(t *testing.T) {
	router := NewSimpleRouter()

	// Both L candidates cost the same; the horizontal-first one is declared first.
	got := router.RouteConnection(geometry.Pt(0, 0), geometry.Pt(100, 100), nil, nil, 5)

	want := []geometry.Point{geometry.Pt(100, 0)}
	if len(got) != len(want) || !got[0].Eq(want[0]) {
		t.Errorf("RouteConnection() = %v, want %v", got, want)
	}

	for i := 0; i < 5; i++ {
		again := router.RouteConnection(geometry.Pt(0, 0), geometry.Pt(100, 100), nil, nil, 5)
		if len(again) != 1 || !again[0].Eq(got[0]) {
			t.Fatalf("selection not deterministic: %v vs %v", again, got)
		}
	}
}

func TestSimpleRouterCandidates(t *testing.T) {
	tests := []struct {
		name     string
		source   geometry.Point
		target   geometry.Point
		devices  []geometry.Rect
		existing [][]geometry.Point
		want     []geometry.Point
	}{
		{
			name:   "aligned endpoints need no waypoints",
			source: geometry.Pt(0, 0),
			target: geometry.Pt(100, 0),
			want:   nil,
		},
		{
			name:    "device on the first corner selects vertical first",
			source:  geometry.Pt(0, 0),
			target:  geometry.Pt(100, 100),
			devices: []geometry.Rect{{Left: 80, Top: -20, Right: 120, Bottom: 20}},
			want:    []geometry.Point{geometry.Pt(0, 100)},
		},
		{
			name:     "crossing an existing wire is avoided",
			source:   geometry.Pt(0, 0),
			target:   geometry.Pt(100, 100),
			existing: [][]geometry.Point{{geometry.Pt(50, -10), geometry.Pt(50, 10)}},
			want:     []geometry.Point{geometry.Pt(0, 100)},
		},
		{
			name:   "both L paths blocked falls back to a U through the middle",
			source: geometry.Pt(0, 0),
			target: geometry.Pt(100, 100),
			devices: []geometry.Rect{
				{Left: 80, Top: -20, Right: 120, Bottom: 20},
				{Left: -20, Top: 80, Right: 20, Bottom: 120},
			},
			want: []geometry.Point{geometry.Pt(0, 50), geometry.Pt(100, 50)},
		},
		{
			name:    "everything blocked returns nothing",
			source:  geometry.Pt(0, 0),
			target:  geometry.Pt(100, 100),
			devices: []geometry.Rect{{Left: -50, Top: -50, Right: 150, Bottom: 150}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSimpleRouter().RouteConnection(tt.source, tt.target, tt.devices, tt.existing, 5)
			if len(got) != len(tt.want) {
				t.Fatalf("RouteConnection() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if !got[i].Eq(tt.want[i]) {
					t.Errorf("waypoint %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSimpleRouterNeverSelectsBlockedCandidate(t *testing.T) {
	source, target := geometry.Pt(0, 0), geometry.Pt(200, 120)
	layouts := [][]geometry.Rect{
		{{Left: 90, Top: -30, Right: 110, Bottom: 30}},
		{{Left: -30, Top: 50, Right: 30, Bottom: 70}},
		{{Left: 150, Top: -10, Right: 250, Bottom: 10}, {Left: 40, Top: 40, Right: 60, Bottom: 200}},
	}

	for _, clearance := range []float64{0, 5, 15} {
		for _, devices := range layouts {
			got := NewSimpleRouter().RouteConnection(source, target, devices, nil, clearance)
			if len(got) == 0 {
				continue // no candidate survived
			}
			path := append(append([]geometry.Point{source}, got...), target)
			for i := 0; i+1 < len(path); i++ {
				if !geometry.Near(path[i].X, path[i+1].X) && !geometry.Near(path[i].Y, path[i+1].Y) {
					t.Errorf("diagonal segment %v-%v", path[i], path[i+1])
				}
				bounds := geometry.BoundingRect(path[i], path[i+1]).Inflate(clearance)
				for _, d := range devices {
					if geometry.RectanglesOverlap(bounds, d.Inflate(clearance)) {
						t.Errorf("clearance %v: segment %v-%v hits device %v", clearance, path[i], path[i+1], d)
					}
				}
			}
		}
	}
}
