package connections

import (
	"fmt"

	"cablemap/core"
	"cablemap/geometry"
	"cablemap/obstacles"
	"cablemap/pathfinding"
)

// StrategyDirect marks a path produced by the elbow fallback.
const StrategyDirect core.Strategy = "direct"

// RoutedConnection is the outcome of routing one line in a pass.
type RoutedConnection struct {
	Line     core.ConnectionLine
	Path     core.Path
	Strategy core.Strategy // router that produced Path
	Degraded bool          // a fallback was used or the target was not reached
}

// ID returns the connection ID, or the source endpoint key for anonymous lines.
func (rc RoutedConnection) ID() string {
	return ownerOf(rc.Line)
}

// Sink receives routed connections in routing order.
type Sink interface {
	Draw(rc RoutedConnection) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(rc RoutedConnection) error

// Draw calls f(rc).
func (f SinkFunc) Draw(rc RoutedConnection) error {
	return f(rc)
}

// Pass routes every line of a scene in declaration order. Each call to Route
// starts from empty shared state, so re-routing after an edit is a new Route.
type Pass struct {
	cfg    core.Config
	greedy *GreedyRouter
	simple *SimpleRouter
	sink   Sink
}

// NewPass validates cfg and creates a pass. sink may be nil.
func NewPass(cfg core.Config, sink Sink) (*Pass, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pass{
		cfg:    cfg,
		greedy: NewGreedyRouter(cfg),
		simple: NewSimpleRouter(),
		sink:   sink,
	}, nil
}

// passState is the shared state of one pass.
type passState struct {
	ledger    *core.VerticalLedger
	existing  [][]geometry.Point
	grid      *obstacles.Grid
	gridPaths map[string][]pathfinding.GridPoint
}

// Route routes scene.Lines in order and delivers each result to the sink.
// Lines whose target cannot be resolved are skipped. The only errors are
// sink failures.
func (p *Pass) Route(scene *Scene) ([]RoutedConnection, error) {
	state := &passState{
		ledger:    core.NewVerticalLedger(),
		gridPaths: make(map[string][]pathfinding.GridPoint),
	}
	if p.cfg.Strategy == core.StrategyAStar {
		state.grid = obstacles.NewGrid(scene.Devices, scene.Connectors, p.cfg)
	}

	out := make([]RoutedConnection, 0, len(scene.Lines))
	for _, line := range scene.Lines {
		target, ok := scene.Target(line)
		if !ok {
			core.Logger().Warn("pass: skipping connection without target", "connection", ownerOf(line))
			continue
		}

		rc := p.routeLine(scene, state, line, target)
		if rc.Degraded {
			core.Logger().Warn("pass: degraded route", "connection", rc.ID(),
				"strategy", string(rc.Strategy), "reached", rc.Path.Reached)
		}
		state.existing = append(state.existing, rc.Path.Points())
		out = append(out, rc)

		if p.sink != nil {
			if err := p.sink.Draw(rc); err != nil {
				return out, fmt.Errorf("draw connection %s: %w", rc.ID(), err)
			}
		}
	}
	return out, nil
}

func (p *Pass) routeLine(scene *Scene, state *passState, line core.ConnectionLine, target core.Connector) RoutedConnection {
	switch p.cfg.Strategy {
	case core.StrategyAStar:
		if path, ok := p.routeAStar(state, line, target); ok {
			return RoutedConnection{Line: line, Path: path, Strategy: core.StrategyAStar}
		}
		core.Logger().Warn("pass: astar failed, falling back to simple router", "connection", ownerOf(line))
		rc := p.routeSimple(scene, state, line, target)
		rc.Degraded = true
		return rc
	case core.StrategySimple:
		return p.routeSimple(scene, state, line, target)
	default:
		path := p.greedy.Route(line, scene, state.ledger)
		return RoutedConnection{Line: line, Path: path, Strategy: core.StrategyGreedy, Degraded: !path.Reached}
	}
}

func (p *Pass) routeAStar(state *passState, line core.ConnectionLine, target core.Connector) (core.Path, bool) {
	owner := ownerOf(line)
	tr := state.grid.Transform
	start, end := line.Joint(), target.Joint()
	state.grid.SetEndpoints(owner, line.Source.Endpoint.Key(), target.Endpoint.Key())

	res := pathfinding.NewAStarRouter(state.grid, p.cfg).
		FindPath(tr.ToGrid(start), tr.ToGrid(end), owner, state.gridPaths)
	if !res.Success {
		return core.Path{}, false
	}
	state.grid.Occupy(owner, res.Waypoints)
	state.gridPaths[owner] = res.Waypoints

	w := res.Waypoints
	pts := make([]geometry.Point, len(w))
	for i, gp := range w {
		pts[i] = tr.ToCanvas(gp)
	}
	// Lanes are horizontal, so the first and last runs sit on the joint rows.
	for i := 0; i < len(w) && w[i].Y == w[0].Y; i++ {
		pts[i].Y = start.Y
	}
	for i := len(w) - 1; i >= 0 && w[i].Y == w[len(w)-1].Y; i-- {
		pts[i].Y = end.Y
	}
	if len(pts) < 2 {
		pts = []geometry.Point{start, end}
	}
	pts[0], pts[len(pts)-1] = start, end

	return core.PathFromPoints(orthogonalize(pts), true).Simplify(), true
}

func (p *Pass) routeSimple(scene *Scene, state *passState, line core.ConnectionLine, target core.Connector) RoutedConnection {
	start, end := line.Joint(), target.Joint()
	devices := simpleObstacles(scene, line.Source, target, p.cfg.SimpleClearance)

	if waypoints, ok := p.simple.route(start, end, devices, state.existing, p.cfg.SimpleClearance); ok {
		pts := append(append([]geometry.Point{start}, waypoints...), end)
		return RoutedConnection{
			Line:     line,
			Path:     core.PathFromPoints(pts, true).Simplify(),
			Strategy: core.StrategySimple,
		}
	}

	core.Logger().Warn("pass: no simple candidate, using direct elbow", "connection", ownerOf(line))
	return RoutedConnection{
		Line:     line,
		Path:     core.PathFromPoints(directFallback(start, end, devices), true).Simplify(),
		Strategy: StrategyDirect,
		Degraded: true,
	}
}

// simpleObstacles returns the device rects the simple router must avoid. An
// endpoint device only drops out when the clearance is wider than half its
// connector, since every candidate leaving that joint would then overlap it.
func simpleObstacles(scene *Scene, source, target core.Connector, clearance float64) []geometry.Rect {
	var except []string
	for _, c := range []core.Connector{source, target} {
		if 2*clearance > c.Rect.Width()+geometry.Epsilon {
			except = append(except, c.Endpoint.DeviceID)
		}
	}
	return scene.DeviceRects(except...)
}
