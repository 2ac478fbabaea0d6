// Package pathfinding provides the grid based A* router.
package pathfinding

import "fmt"

// GridPoint is a cell coordinate on a routing grid.
type GridPoint struct {
	X, Y int
}

func (p GridPoint) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction represents a movement direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	None
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "none"
	}
}

// Horizontal reports whether d moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// Vertical reports whether d moves along the Y axis.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

// GetDirection returns the direction from p1 to p2.
func GetDirection(p1, p2 GridPoint) Direction {
	if p1.X == p2.X {
		if p1.Y < p2.Y {
			return South
		} else if p1.Y > p2.Y {
			return North
		}
	} else if p1.Y == p2.Y {
		if p1.X < p2.X {
			return East
		} else if p1.X > p2.X {
			return West
		}
	}
	return None
}

// Step returns the neighbour of p in direction d.
func Step(p GridPoint, d Direction) GridPoint {
	switch d {
	case North:
		return GridPoint{p.X, p.Y - 1}
	case East:
		return GridPoint{p.X + 1, p.Y}
	case South:
		return GridPoint{p.X, p.Y + 1}
	case West:
		return GridPoint{p.X - 1, p.Y}
	default:
		return p
	}
}

// Neighbor is a reachable cell and the direction used to enter it.
type Neighbor struct {
	Point     GridPoint
	Direction Direction
}

// RoutingGrid is the occupancy model searched by the A* router.
type RoutingGrid interface {
	// GetNeighbors returns the in-bounds 4-connected neighbours of p.
	GetNeighbors(p GridPoint) []Neighbor
	// IsBlocked reports whether p can never be entered.
	IsBlocked(p GridPoint) bool
	// CanOccupy reports whether owner may enter p moving in dir.
	CanOccupy(p GridPoint, owner string, dir Direction) bool
}

// ManhattanDistance calculates the Manhattan distance between two grid points.
func ManhattanDistance(p1, p2 GridPoint) int {
	return abs(p1.X-p2.X) + abs(p1.Y-p2.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SimplifyPath removes interior points that do not change direction.
func SimplifyPath(points []GridPoint) []GridPoint {
	if len(points) <= 2 {
		return points
	}
	out := []GridPoint{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if points[i] == out[len(out)-1] {
			continue
		}
		if !IsAligned(out[len(out)-1], points[i], points[i+1]) {
			out = append(out, points[i])
		}
	}
	if last := points[len(points)-1]; last != out[len(out)-1] {
		out = append(out, last)
	}
	return out
}

// IsAligned checks if three points are on the same horizontal or vertical line.
func IsAligned(p1, p2, p3 GridPoint) bool {
	return (p1.X == p2.X && p2.X == p3.X) || (p1.Y == p2.Y && p2.Y == p3.Y)
}

// Expand turns a corner polyline back into one point per cell.
func Expand(points []GridPoint) []GridPoint {
	if len(points) == 0 {
		return nil
	}
	out := []GridPoint{points[0]}
	for i := 1; i < len(points); i++ {
		cur := out[len(out)-1]
		d := GetDirection(cur, points[i])
		for d != None && cur != points[i] {
			cur = Step(cur, d)
			out = append(out, cur)
		}
	}
	return out
}
