package pathfinding

import (
	"container/heap"
	"math"

	"cablemap/core"
)

// AStarNode represents a state in the A* search.
type AStarNode struct {
	Point     GridPoint
	GCost     float64 // Cost from start
	HCost     float64 // Heuristic cost to goal
	FCost     float64 // GCost + HCost
	Parent    *AStarNode
	Direction Direction // Direction we entered this node from
	Index     int       // Index in the heap
}

// NodeQueue is a priority queue for A* nodes.
type NodeQueue []*AStarNode

func (nq NodeQueue) Len() int { return len(nq) }
func (nq NodeQueue) Less(i, j int) bool {
	if nq[i].FCost != nq[j].FCost {
		return nq[i].FCost < nq[j].FCost
	}
	// Prefer nodes closer to goal
	if nq[i].HCost != nq[j].HCost {
		return nq[i].HCost < nq[j].HCost
	}
	return symmetricOrder(nq[i].Point, nq[j].Point)
}

// symmetricOrder provides a deterministic ordering for equal-cost nodes.
func symmetricOrder(p1, p2 GridPoint) bool {
	if s1, s2 := p1.X+p1.Y, p2.X+p2.Y; s1 != s2 {
		return s1 < s2
	}
	if p1.X != p2.X {
		return p1.X < p2.X
	}
	return p1.Y < p2.Y
}

func (nq NodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].Index = i
	nq[j].Index = j
}

func (nq *NodeQueue) Push(x interface{}) {
	node := x.(*AStarNode)
	node.Index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *NodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil  // avoid memory leak
	node.Index = -1 // for safety
	*nq = old[0 : n-1]
	return node
}

// PathResult is the outcome of one search.
type PathResult struct {
	Waypoints []GridPoint
	Success   bool
	TotalCost float64
	Crossings int
}

func failed() PathResult {
	return PathResult{Success: false, TotalCost: math.Inf(1)}
}

// AStarRouter searches a RoutingGrid for the cheapest orthogonal path,
// penalising turns and crossings of other connections.
type AStarRouter struct {
	grid RoutingGrid
	cfg  core.Config
}

// NewAStarRouter creates a router over grid.
func NewAStarRouter(grid RoutingGrid, cfg core.Config) *AStarRouter {
	if cfg.MaxPathfindingIterations <= 0 {
		cfg.MaxPathfindingIterations = core.DefaultConfig().MaxPathfindingIterations
	}
	if cfg.GridMoveCost <= 0 {
		cfg.GridMoveCost = 1
	}
	return &AStarRouter{grid: grid, cfg: cfg}
}

// FindPath finds a path from start to end for connectionID. existing maps
// other connection IDs to their routed waypoints; the entry for
// connectionID itself is ignored.
func (a *AStarRouter) FindPath(start, end GridPoint, connectionID string, existing map[string][]GridPoint) PathResult {
	if start == end {
		return PathResult{Waypoints: []GridPoint{start}, Success: true}
	}
	if a.grid.IsBlocked(end) {
		core.Logger().Debug("astar: end blocked", "connection", connectionID, "end", end.String())
		return failed()
	}

	crossings := newCrossingIndex(existing, connectionID)

	openSet := &NodeQueue{}
	heap.Init(openSet)
	closedSet := make(map[GridPoint]bool)
	nodeMap := make(map[GridPoint]*AStarNode)

	startNode := &AStarNode{
		Point:     start,
		HCost:     a.heuristic(start, end),
		Direction: None,
	}
	startNode.FCost = startNode.HCost
	heap.Push(openSet, startNode)
	nodeMap[start] = startNode

	iterations := 0
	for openSet.Len() > 0 {
		iterations++
		if iterations > a.cfg.MaxPathfindingIterations {
			core.Logger().Debug("astar: iteration limit", "connection", connectionID,
				"limit", a.cfg.MaxPathfindingIterations)
			return failed()
		}

		current := heap.Pop(openSet).(*AStarNode)
		if current.Point == end {
			core.Logger().Debug("astar: path found", "connection", connectionID,
				"iterations", iterations, "cost", current.GCost)
			return a.result(current, crossings)
		}
		closedSet[current.Point] = true

		for _, n := range a.grid.GetNeighbors(current.Point) {
			if closedSet[n.Point] || a.grid.IsBlocked(n.Point) {
				continue
			}
			if !a.grid.CanOccupy(n.Point, connectionID, n.Direction) {
				continue
			}

			tentative := current.GCost + a.edgeCost(current, n, crossings)

			existingNode, seen := nodeMap[n.Point]
			if !seen {
				node := &AStarNode{
					Point:     n.Point,
					GCost:     tentative,
					HCost:     a.heuristic(n.Point, end),
					Parent:    current,
					Direction: n.Direction,
				}
				node.FCost = node.GCost + node.HCost
				heap.Push(openSet, node)
				nodeMap[n.Point] = node
			} else if tentative < existingNode.GCost {
				existingNode.GCost = tentative
				existingNode.FCost = tentative + existingNode.HCost
				existingNode.Parent = current
				existingNode.Direction = n.Direction
				heap.Fix(openSet, existingNode.Index)
			}
		}
	}

	core.Logger().Debug("astar: open set exhausted", "connection", connectionID, "iterations", iterations)
	return failed()
}

// heuristic is the penalty free Manhattan estimate, so it never overestimates.
func (a *AStarRouter) heuristic(p, goal GridPoint) float64 {
	return float64(ManhattanDistance(p, goal)) * a.cfg.GridMoveCost
}

func (a *AStarRouter) edgeCost(current *AStarNode, next Neighbor, crossings crossingIndex) float64 {
	cost := a.cfg.GridMoveCost
	cost += a.cfg.CrossingPenalty * float64(crossings.at(next.Point, next.Direction))
	if current.Direction != None && current.Direction != next.Direction {
		cost += a.cfg.TurnPenalty
	}
	return cost
}

func (a *AStarRouter) result(goal *AStarNode, crossings crossingIndex) PathResult {
	var points []GridPoint
	for n := goal; n != nil; n = n.Parent {
		points = append(points, n.Point)
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	total := 0
	for i := 1; i < len(points); i++ {
		total += crossings.at(points[i], GetDirection(points[i-1], points[i]))
	}

	if a.cfg.SimplifyPath {
		points = SimplifyPath(points)
	}
	return PathResult{Waypoints: points, Success: true, TotalCost: goal.GCost, Crossings: total}
}

// gridSegment is one axis-aligned run of another connection.
type gridSegment struct {
	fixed, lo, hi int // fixed coordinate and the closed range along the run
}

// crossingIndex holds the segments of other connections, split by axis.
type crossingIndex struct {
	horizontal []gridSegment // fixed is Y
	vertical   []gridSegment // fixed is X
}

func newCrossingIndex(existing map[string][]GridPoint, owner string) crossingIndex {
	var idx crossingIndex
	for id, pts := range existing {
		if id == owner {
			continue
		}
		for i := 1; i < len(pts); i++ {
			a, b := pts[i-1], pts[i]
			switch {
			case a.Y == b.Y && a.X != b.X:
				idx.horizontal = append(idx.horizontal, gridSegment{a.Y, min(a.X, b.X), max(a.X, b.X)})
			case a.X == b.X && a.Y != b.Y:
				idx.vertical = append(idx.vertical, gridSegment{a.X, min(a.Y, b.Y), max(a.Y, b.Y)})
			}
		}
	}
	return idx
}

// at counts the segments perpendicular to dir that contain p.
func (c crossingIndex) at(p GridPoint, dir Direction) int {
	count := 0
	switch {
	case dir.Horizontal():
		for _, s := range c.vertical {
			if s.fixed == p.X && p.Y >= s.lo && p.Y <= s.hi {
				count++
			}
		}
	case dir.Vertical():
		for _, s := range c.horizontal {
			if s.fixed == p.Y && p.X >= s.lo && p.X <= s.hi {
				count++
			}
		}
	}
	return count
}
