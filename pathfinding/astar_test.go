package pathfinding

import (
	"math"
	"strings"
	"testing"

	"cablemap/core"
)

// mapGrid is a bounded test grid built from an ASCII map: 'X' is blocked,
// 'H' only admits horizontal moves.
type mapGrid struct {
	w, h       int
	blocked    map[GridPoint]bool
	horizontal map[GridPoint]bool
}

func parseMap(w, h int, m string) *mapGrid {
	g := &mapGrid{w: w, h: h, blocked: map[GridPoint]bool{}, horizontal: map[GridPoint]bool{}}
	lines := strings.Split(strings.TrimSpace(m), "\n")
	for y, line := range lines {
		for x, ch := range strings.TrimSpace(line) {
			switch ch {
			case 'X':
				g.blocked[GridPoint{x, y}] = true
			case 'H':
				g.horizontal[GridPoint{x, y}] = true
			}
		}
	}
	return g
}

func (g *mapGrid) GetNeighbors(p GridPoint) []Neighbor {
	var out []Neighbor
	for _, d := range []Direction{North, East, South, West} {
		n := Step(p, d)
		if n.X >= 0 && n.Y >= 0 && n.X < g.w && n.Y < g.h {
			out = append(out, Neighbor{Point: n, Direction: d})
		}
	}
	return out
}

func (g *mapGrid) IsBlocked(p GridPoint) bool { return g.blocked[p] }

func (g *mapGrid) CanOccupy(p GridPoint, _ string, dir Direction) bool {
	return !g.horizontal[p] || dir.Horizontal()
}

func freeConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.TurnPenalty = 0
	cfg.CrossingPenalty = 0
	return cfg
}

func TestAStarOptimalOnFreeGrid(t *testing.T) {
	grid := parseMap(8, 8, "")
	router := NewAStarRouter(grid, freeConfig())

	for _, start := range []GridPoint{{0, 0}, {3, 4}, {7, 7}} {
		for _, end := range []GridPoint{{0, 7}, {7, 0}, {5, 5}, {1, 1}} {
			res := router.FindPath(start, end, "w", nil)
			if !res.Success {
				t.Fatalf("%v -> %v: no path", start, end)
			}
			if want := float64(ManhattanDistance(start, end)); res.TotalCost != want {
				t.Errorf("%v -> %v: cost %v, want %v", start, end, res.TotalCost, want)
			}
			assertOrthogonal(t, res.Waypoints, start, end)
		}
	}
}

func TestAStarPaths(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		obstacles string
		start     GridPoint
		end       GridPoint
		success   bool
		cost      float64
	}{
		{
			name:    "start equals end",
			w:       3,
			h:       3,
			start:   GridPoint{1, 1},
			end:     GridPoint{1, 1},
			success: true,
			cost:    0,
		},
		{
			name: "around a wall",
			w:    5,
			h:    5,
			obstacles: `
.....
.....
.XXX.
.....
.....`,
			start:   GridPoint{2, 0},
			end:     GridPoint{2, 4},
			success: true,
			cost:    8,
		},
		{
			name: "fully blocked row",
			w:    5,
			h:    5,
			obstacles: `
.....
.....
XXXXX
.....
.....`,
			start:   GridPoint{0, 0},
			end:     GridPoint{4, 4},
			success: false,
		},
		{
			name: "blocked end",
			w:    3,
			h:    3,
			obstacles: `
...
...
..X`,
			start:   GridPoint{0, 0},
			end:     GridPoint{2, 2},
			success: false,
		},
		{
			name: "horizontal lane forces a horizontal entry",
			w:    3,
			h:    3,
			obstacles: `
...
...
..H`,
			start:   GridPoint{2, 0},
			end:     GridPoint{2, 2},
			success: true,
			cost:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := parseMap(tt.w, tt.h, tt.obstacles)
			res := NewAStarRouter(grid, freeConfig()).FindPath(tt.start, tt.end, "w", nil)
			if res.Success != tt.success {
				t.Fatalf("Success = %v, want %v", res.Success, tt.success)
			}
			if !tt.success {
				if res.Waypoints != nil || !math.IsInf(res.TotalCost, 1) || res.Crossings != 0 {
					t.Errorf("failed result = %+v", res)
				}
				return
			}
			if res.TotalCost != tt.cost {
				t.Errorf("TotalCost = %v, want %v", res.TotalCost, tt.cost)
			}
			assertOrthogonal(t, res.Waypoints, tt.start, tt.end)
			for _, p := range Expand(res.Waypoints) {
				if grid.IsBlocked(p) {
					t.Errorf("path enters blocked cell %v", p)
				}
			}
		})
	}
}

func TestAStarIterationLimit(t *testing.T) {
	grid := parseMap(50, 50, "")
	cfg := freeConfig()
	cfg.MaxPathfindingIterations = 10

	res := NewAStarRouter(grid, cfg).FindPath(GridPoint{0, 0}, GridPoint{49, 49}, "w", nil)

	if res.Success || !math.IsInf(res.TotalCost, 1) {
		t.Errorf("expected failure at the iteration limit, got %+v", res)
	}
}

func TestAStarTurnPenalty(t *testing.T) {
	grid := parseMap(4, 2, `
.XXX
....`)

	tests := []struct {
		name    string
		penalty float64
		cost    float64
	}{
		{"no penalty", 0, 4},
		{"one turn charged", 3, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := freeConfig()
			cfg.TurnPenalty = tt.penalty
			res := NewAStarRouter(grid, cfg).FindPath(GridPoint{0, 0}, GridPoint{3, 1}, "w", nil)
			if !res.Success {
				t.Fatal("no path")
			}
			if res.TotalCost != tt.cost {
				t.Errorf("TotalCost = %v, want %v", res.TotalCost, tt.cost)
			}
			want := []GridPoint{{0, 0}, {0, 1}, {3, 1}}
			if len(res.Waypoints) != len(want) {
				t.Fatalf("waypoints = %v, want %v", res.Waypoints, want)
			}
			for i := range want {
				if res.Waypoints[i] != want[i] {
					t.Errorf("waypoint %d = %v, want %v", i, res.Waypoints[i], want[i])
				}
			}
		})
	}
}

func TestAStarCrossings(t *testing.T) {
	grid := parseMap(7, 5, "")
	existing := map[string][]GridPoint{
		"other": {{3, 0}, {3, 4}},
		"w":     {{0, 2}, {6, 2}}, // own entry is ignored
	}

	t.Run("crossing is reported", func(t *testing.T) {
		res := NewAStarRouter(grid, freeConfig()).FindPath(GridPoint{0, 2}, GridPoint{6, 2}, "w", existing)
		if !res.Success || res.Crossings != 1 {
			t.Errorf("result = %+v, want one crossing", res)
		}
		if res.TotalCost != 6 {
			t.Errorf("TotalCost = %v, want 6", res.TotalCost)
		}
	})

	t.Run("penalty is charged per crossing", func(t *testing.T) {
		cfg := freeConfig()
		cfg.CrossingPenalty = 5
		res := NewAStarRouter(grid, cfg).FindPath(GridPoint{0, 2}, GridPoint{6, 2}, "w", existing)
		if !res.Success || res.Crossings != 1 || res.TotalCost != 11 {
			t.Errorf("result = %+v, want cost 11 with one crossing", res)
		}
	})
}

func TestSimplifyPath(t *testing.T) {
	in := []GridPoint{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {3, 2}}
	got := SimplifyPath(in)
	want := []GridPoint{{0, 0}, {2, 0}, {2, 2}, {3, 2}}
	if len(got) != len(want) {
		t.Fatalf("SimplifyPath() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if again := SimplifyPath(got); len(again) != len(got) {
		t.Errorf("SimplifyPath not idempotent: %v", again)
	}
	if exp := Expand(got); len(exp) != len(in) {
		t.Errorf("Expand() = %v, want %d cells", exp, len(in))
	}
}

func assertOrthogonal(t *testing.T, pts []GridPoint, start, end GridPoint) {
	t.Helper()
	if len(pts) == 0 || pts[0] != start || pts[len(pts)-1] != end {
		t.Fatalf("waypoints %v do not run from %v to %v", pts, start, end)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i-1].X != pts[i].X && pts[i-1].Y != pts[i].Y {
			t.Errorf("diagonal step %v -> %v", pts[i-1], pts[i])
		}
	}
}
