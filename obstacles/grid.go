package obstacles

import (
	"math"

	"cablemap/core"
	"cablemap/geometry"
	"cablemap/pathfinding"
)

// cellUse records which owner runs through a cell on each axis.
type cellUse struct {
	horizontal, vertical string
}

// Grid is a bounded occupancy grid that implements pathfinding.RoutingGrid.
// Devices are blocked with padding; each connector gets a horizontal lane in
// front of its joint so wires always enter and leave ports straight.
type Grid struct {
	Transform Transform

	width, height int
	blocked       []bool
	lane          []bool
	zones         []ObstacleZone
	used          map[pathfinding.GridPoint]cellUse
	endpoints     map[string][]string
}

var _ pathfinding.RoutingGrid = (*Grid)(nil)

// NewGrid rasterises devices and connectors using the cell size and padding
// from cfg. The grid covers every rect plus a margin for detours.
func NewGrid(devices []core.Device, connectors []core.Connector, cfg core.Config) *Grid {
	cell := cfg.GridCellSize
	if cell <= 0 {
		cell = core.DefaultConfig().GridCellSize
	}
	pad := cfg.GridPadding
	if pad < 0 {
		pad = 0
	}

	var bounds geometry.Rect
	first := true
	for _, d := range devices {
		bounds, first = grow(bounds, d.Rect, first), false
	}
	for _, c := range connectors {
		bounds, first = grow(bounds, c.Rect, first), false
	}
	margin := float64(pad+3) * cell
	bounds = bounds.Inflate(margin)

	g := &Grid{
		Transform: Transform{
			Origin:   geometry.Point{X: bounds.Left, Y: bounds.Top},
			CellSize: cell,
		},
		width:     int(math.Ceil(bounds.Width()/cell)) + 1,
		height:    int(math.Ceil(bounds.Height()/cell)) + 1,
		used:      make(map[pathfinding.GridPoint]cellUse),
		endpoints: make(map[string][]string),
	}
	g.blocked = make([]bool, g.width*g.height)
	g.lane = make([]bool, g.width*g.height)

	padding := float64(pad) * cell
	for _, d := range devices {
		g.addZone(g.Transform.RectZone(d.Rect.Inflate(padding), Physical, d.ID))
	}
	for _, c := range connectors {
		g.addZone(g.Transform.RectZone(c.Rect, Physical, c.Endpoint.Key()))
	}
	for _, c := range connectors {
		g.addLane(c, pad+1)
	}
	return g
}

func grow(r, o geometry.Rect, first bool) geometry.Rect {
	if first {
		return o
	}
	return r.Union(o)
}

func (g *Grid) addZone(z ObstacleZone) {
	g.zones = append(g.zones, z)
	for y := z.MinY; y <= z.MaxY; y++ {
		for x := z.MinX; x <= z.MaxX; x++ {
			if i, ok := g.index(pathfinding.GridPoint{X: x, Y: y}); ok {
				if z.Type == Lane {
					g.blocked[i] = false
					g.lane[i] = true
				} else if !g.lane[i] {
					g.blocked[i] = true
				}
			}
		}
	}
}

// addLane carves the joint cell and length cells outward from it.
func (g *Grid) addLane(c core.Connector, length int) {
	joint := g.Transform.ToGrid(c.Joint())
	end := joint.X + length
	if c.Endpoint.Side == core.Left {
		end = joint.X - length
	}
	g.addZone(ObstacleZone{
		MinX:  min(joint.X, end),
		MinY:  joint.Y,
		MaxX:  max(joint.X, end),
		MaxY:  joint.Y,
		Type:  Lane,
		Owner: c.Endpoint.Key(),
	})
}

func (g *Grid) index(p pathfinding.GridPoint) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= g.width || p.Y >= g.height {
		return 0, false
	}
	return p.Y*g.width + p.X, true
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Zones returns every rasterised zone in insertion order.
func (g *Grid) Zones() []ObstacleZone {
	out := make([]ObstacleZone, len(g.zones))
	copy(out, g.zones)
	return out
}

// GetNeighbors returns the in-bounds 4-connected neighbours of p.
func (g *Grid) GetNeighbors(p pathfinding.GridPoint) []pathfinding.Neighbor {
	out := make([]pathfinding.Neighbor, 0, 4)
	for _, d := range []pathfinding.Direction{pathfinding.North, pathfinding.East, pathfinding.South, pathfinding.West} {
		n := pathfinding.Step(p, d)
		if _, ok := g.index(n); ok {
			out = append(out, pathfinding.Neighbor{Point: n, Direction: d})
		}
	}
	return out
}

// IsBlocked reports whether p is outside the grid or inside a physical zone.
func (g *Grid) IsBlocked(p pathfinding.GridPoint) bool {
	i, ok := g.index(p)
	return !ok || g.blocked[i]
}

// IsLane reports whether p is part of a connector lane.
func (g *Grid) IsLane(p pathfinding.GridPoint) bool {
	i, ok := g.index(p)
	return ok && g.lane[i]
}

// SetEndpoints records the connector keys owner's wire runs between. Owners
// that share a key may run through each other's cells, so several cables
// can leave one port along its lane and then fan out.
func (g *Grid) SetEndpoints(owner string, keys ...string) {
	g.endpoints[owner] = keys
}

func (g *Grid) shareEndpoint(a, b string) bool {
	for _, ka := range g.endpoints[a] {
		for _, kb := range g.endpoints[b] {
			if ka != "" && ka == kb {
				return true
			}
		}
	}
	return false
}

func (g *Grid) mayShare(user, owner string) bool {
	return user == "" || user == owner || g.shareEndpoint(user, owner)
}

// CanOccupy rejects vertical moves inside lanes and parallel runs through a
// cell an unrelated owner already uses on the same axis. Crossing is allowed.
func (g *Grid) CanOccupy(p pathfinding.GridPoint, owner string, dir pathfinding.Direction) bool {
	if g.IsLane(p) && dir.Vertical() {
		return false
	}
	use := g.used[p]
	switch {
	case dir.Horizontal():
		return g.mayShare(use.horizontal, owner)
	case dir.Vertical():
		return g.mayShare(use.vertical, owner)
	}
	return true
}

// Occupy records the runs of a routed path for owner. waypoints may be a
// simplified corner list.
func (g *Grid) Occupy(owner string, waypoints []pathfinding.GridPoint) {
	cells := pathfinding.Expand(waypoints)
	for i := 1; i < len(cells); i++ {
		d := pathfinding.GetDirection(cells[i-1], cells[i])
		for _, p := range []pathfinding.GridPoint{cells[i-1], cells[i]} {
			use := g.used[p]
			if d.Horizontal() && use.horizontal == "" {
				use.horizontal = owner
			}
			if d.Vertical() && use.vertical == "" {
				use.vertical = owner
			}
			g.used[p] = use
		}
	}
}

// Reset forgets every occupied run and recorded endpoint.
func (g *Grid) Reset() {
	g.used = make(map[pathfinding.GridPoint]cellUse)
	g.endpoints = make(map[string][]string)
}
