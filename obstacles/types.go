// Package obstacles rasterises device geometry into an occupancy grid for
// the A* router.
package obstacles

import (
	"math"

	"cablemap/geometry"
	"cablemap/pathfinding"
)

// ZoneType classifies a rasterised area.
type ZoneType int

const (
	// Physical zones cover a device body plus padding and connector bodies.
	Physical ZoneType = iota
	// Lane zones are the horizontal-only approach runs in front of a joint.
	Lane
)

func (z ZoneType) String() string {
	if z == Lane {
		return "lane"
	}
	return "physical"
}

// ObstacleZone represents a rectangular area of grid cells, bounds inclusive.
type ObstacleZone struct {
	MinX, MinY, MaxX, MaxY int
	Type                   ZoneType
	Owner                  string // device ID or connector key
}

// Contains reports whether p lies in the zone.
func (z ObstacleZone) Contains(p pathfinding.GridPoint) bool {
	return p.X >= z.MinX && p.X <= z.MaxX && p.Y >= z.MinY && p.Y <= z.MaxY
}

// Transform maps canvas coordinates onto grid cells. Cell (0,0) sits at
// Origin and cells are CellSize apart.
type Transform struct {
	Origin   geometry.Point
	CellSize float64
}

// ToGrid returns the cell nearest to p.
func (t Transform) ToGrid(p geometry.Point) pathfinding.GridPoint {
	return pathfinding.GridPoint{
		X: int(math.Round((p.X - t.Origin.X) / t.CellSize)),
		Y: int(math.Round((p.Y - t.Origin.Y) / t.CellSize)),
	}
}

// ToCanvas returns the canvas position of cell g.
func (t Transform) ToCanvas(g pathfinding.GridPoint) geometry.Point {
	return geometry.Point{
		X: t.Origin.X + float64(g.X)*t.CellSize,
		Y: t.Origin.Y + float64(g.Y)*t.CellSize,
	}
}

// cellRange returns the cells whose canvas position lies within [lo, hi].
func (t Transform) cellRange(lo, hi, origin float64) (int, int) {
	return int(math.Ceil((lo - origin) / t.CellSize)), int(math.Floor((hi - origin) / t.CellSize))
}

// RectZone returns the cells covered by r.
func (t Transform) RectZone(r geometry.Rect, typ ZoneType, owner string) ObstacleZone {
	minX, maxX := t.cellRange(r.Left, r.Right, t.Origin.X)
	minY, maxY := t.cellRange(r.Top, r.Bottom, t.Origin.Y)
	return ObstacleZone{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, Type: typ, Owner: owner}
}
