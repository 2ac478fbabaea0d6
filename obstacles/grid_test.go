package obstacles

import (
	"strings"
	"testing"

	"cablemap/core"
	"cablemap/geometry"
	"cablemap/pathfinding"
)

func rightPort(dev core.Device, id string, y float64) core.Connector {
	return core.Connector{
		Endpoint: core.ConnectionEndpoint{DeviceID: dev.ID, ConnectorID: id, Side: core.Right},
		Rect:     geometry.Rect{Left: dev.Rect.Right, Top: y - 5, Right: dev.Rect.Right + 10, Bottom: y + 5},
	}
}

func leftPort(dev core.Device, id string, y float64) core.Connector {
	return core.Connector{
		Endpoint: core.ConnectionEndpoint{DeviceID: dev.ID, ConnectorID: id, Side: core.Left},
		Rect:     geometry.Rect{Left: dev.Rect.Left - 10, Top: y - 5, Right: dev.Rect.Left, Bottom: y + 5},
	}
}

func testGrid() (*Grid, core.Connector, core.Connector) {
	a := core.Device{ID: "a", Rect: geometry.Rect{Left: 0, Top: 0, Right: 40, Bottom: 40}}
	b := core.Device{ID: "b", Rect: geometry.Rect{Left: 120, Top: 0, Right: 160, Bottom: 40}}
	out := rightPort(a, "out", 20)
	in := leftPort(b, "in", 20)
	return NewGrid([]core.Device{a, b}, []core.Connector{out, in}, core.DefaultConfig()), out, in
}

func TestGridRasterisation(t *testing.T) {
	g, out, _ := testGrid()

	if w, h := g.Size(); w != 25 || h != 13 {
		t.Fatalf("Size() = %dx%d, want 25x13", w, h)
	}

	joint := g.Transform.ToGrid(out.Joint())
	if joint != (pathfinding.GridPoint{X: 9, Y: 6}) {
		t.Fatalf("joint cell = %v", joint)
	}

	tests := []struct {
		name    string
		p       pathfinding.GridPoint
		blocked bool
		lane    bool
	}{
		{"device interior", pathfinding.GridPoint{X: 5, Y: 5}, true, false},
		{"device padding", pathfinding.GridPoint{X: 9, Y: 5}, true, false},
		{"connector body", pathfinding.GridPoint{X: 8, Y: 6}, true, false},
		{"joint cell", joint, false, true},
		{"lane end", pathfinding.GridPoint{X: 11, Y: 6}, false, true},
		{"free space", pathfinding.GridPoint{X: 12, Y: 6}, false, false},
		{"outside", pathfinding.GridPoint{X: -1, Y: 0}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsBlocked(tt.p); got != tt.blocked {
				t.Errorf("IsBlocked(%v) = %v, want %v", tt.p, got, tt.blocked)
			}
			if got := g.IsLane(tt.p); got != tt.lane {
				t.Errorf("IsLane(%v) = %v, want %v", tt.p, got, tt.lane)
			}
		})
	}
}

func TestGridCanOccupy(t *testing.T) {
	g, _, _ := testGrid()
	lane := pathfinding.GridPoint{X: 10, Y: 6}

	if g.CanOccupy(lane, "w", pathfinding.North) {
		t.Error("lanes must reject vertical moves")
	}
	if !g.CanOccupy(lane, "w", pathfinding.East) {
		t.Error("lanes must accept horizontal moves")
	}

	g.Occupy("a", []pathfinding.GridPoint{{X: 12, Y: 0}, {X: 12, Y: 5}})
	p := pathfinding.GridPoint{X: 12, Y: 3}

	if g.CanOccupy(p, "b", pathfinding.South) {
		t.Error("parallel run through another owner's cell must be rejected")
	}
	if !g.CanOccupy(p, "b", pathfinding.East) {
		t.Error("crossing must stay allowed")
	}
	if !g.CanOccupy(p, "a", pathfinding.South) {
		t.Error("owner may reuse its own cell")
	}

	g.Reset()
	if !g.CanOccupy(p, "b", pathfinding.South) {
		t.Error("Reset() must clear occupancy")
	}
}

func TestGridSharedEndpoint(t *testing.T) {
	g, _, _ := testGrid()
	g.SetEndpoints("a", "a.out", "b.in")
	g.SetEndpoints("b", "a.out", "c.in")
	g.SetEndpoints("c", "d.out", "b.in")
	g.SetEndpoints("d", "d.out", "e.in")
	g.Occupy("a", []pathfinding.GridPoint{{X: 9, Y: 6}, {X: 15, Y: 6}})

	tests := []struct {
		name  string
		p     pathfinding.GridPoint
		owner string
		want  bool
	}{
		{"same source on lane", pathfinding.GridPoint{X: 10, Y: 6}, "b", true},
		{"same source past lane", pathfinding.GridPoint{X: 13, Y: 6}, "b", true},
		{"same target", pathfinding.GridPoint{X: 13, Y: 6}, "c", true},
		{"unrelated owner", pathfinding.GridPoint{X: 13, Y: 6}, "d", false},
		{"unknown owner", pathfinding.GridPoint{X: 13, Y: 6}, "e", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.CanOccupy(tt.p, tt.owner, pathfinding.East); got != tt.want {
				t.Errorf("CanOccupy(%v, %s) = %v, want %v", tt.p, tt.owner, got, tt.want)
			}
		})
	}

	g.Reset()
	g.Occupy("a", []pathfinding.GridPoint{{X: 9, Y: 6}, {X: 15, Y: 6}})
	if g.CanOccupy(pathfinding.GridPoint{X: 13, Y: 6}, "b", pathfinding.East) {
		t.Error("Reset() must forget recorded endpoints")
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{Origin: geometry.Pt(-40, -40), CellSize: 10}
	for _, p := range []geometry.Point{geometry.Pt(50, 20), geometry.Pt(-40, -40), geometry.Pt(110, 70)} {
		if got := tr.ToCanvas(tr.ToGrid(p)); !got.Eq(p) {
			t.Errorf("round trip of %v = %v", p, got)
		}
	}
	if got := tr.ToGrid(geometry.Pt(54, 16)); got != (pathfinding.GridPoint{X: 9, Y: 6}) {
		t.Errorf("ToGrid rounds to %v", got)
	}
}

func TestGridWithAStar(t *testing.T) {
	g, out, in := testGrid()
	start := g.Transform.ToGrid(out.Joint())
	end := g.Transform.ToGrid(in.Joint())

	res := pathfinding.NewAStarRouter(g, core.DefaultConfig()).FindPath(start, end, "w", nil)

	if !res.Success {
		t.Fatal("expected a path between facing ports")
	}
	want := []pathfinding.GridPoint{start, end}
	if len(res.Waypoints) != 2 || res.Waypoints[0] != want[0] || res.Waypoints[1] != want[1] {
		t.Errorf("waypoints = %v, want %v", res.Waypoints, want)
	}

	viz := (&DebugVisualizer{ShowLanes: true}).Visualize(g, map[string][]pathfinding.GridPoint{"w": res.Waypoints})
	rows := strings.Split(viz, "\n")
	if _, h := g.Size(); len(rows) != h {
		t.Fatalf("visualization has %d rows, want %d", len(rows), h)
	}
	if got := rows[6][9:16]; got != "*******" {
		t.Errorf("path row = %q", got)
	}
	if !strings.Contains(viz, "#") {
		t.Error("visualization should show blocked cells")
	}
}
