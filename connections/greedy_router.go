package connections

import (
	"math"
	"sort"

	"cablemap/core"
	"cablemap/geometry"
)

// hopRule names the decision that produced a hop.
type hopRule string

const (
	// First hop, leaving the source connector.
	ruleAlignedColumn   hopRule = "aligned-column"
	ruleSameRowDevice   hopRule = "same-row-device"
	ruleSplitObstructed hopRule = "split-obstructed"
	ruleStraightExit    hopRule = "straight-exit"
	ruleSplitClear      hopRule = "split-clear"
	ruleExitBehind      hopRule = "exit-behind"

	// Every later hop.
	ruleConnectorColumn   hopRule = "connector-column"
	ruleStraightToTarget  hopRule = "straight-to-target"
	ruleSnapTargetY       hopRule = "snap-target-y"
	ruleSnapApproachX     hopRule = "snap-approach-x"
	ruleClearDeviceColumn hopRule = "clear-device-column"
	ruleClearDeviceRow    hopRule = "clear-device-row"
	ruleAdvanceHorizontal hopRule = "advance-horizontal"
	ruleAdvanceVertical   hopRule = "advance-vertical"
)

// Hop is one committed move of the greedy router.
type Hop struct {
	Rule      string
	Segment   geometry.Segment
	Optimized bool // X was snapped to another wire's clearance boundary
}

// GreedyRouter routes one cable at a time, choosing each axis-aligned move
// from an ordered rule list until the target joint is reached. Vertical runs
// are committed to the pass ledger so later cables keep their distance.
type GreedyRouter struct {
	cfg core.Config
}

// NewGreedyRouter creates a greedy router with the given config.
func NewGreedyRouter(cfg core.Config) *GreedyRouter {
	if cfg.MaxHops <= 0 {
		cfg.MaxHops = core.DefaultConfig().MaxHops
	}
	return &GreedyRouter{cfg: cfg}
}

// Route computes the simplified path of line. A line whose target cannot be
// resolved yields an empty path. When no rule applies, or the hop limit is
// hit, the partial path is returned with Reached set to false. Coincident
// source and target joints yield an empty path with Reached set.
func (r *GreedyRouter) Route(line core.ConnectionLine, scene *Scene, ledger *core.VerticalLedger) core.Path {
	path, _ := r.RouteTrace(line, scene, ledger)
	return path
}

// RouteTrace is Route that also returns every committed hop with the rule
// that produced it.
func (r *GreedyRouter) RouteTrace(line core.ConnectionLine, scene *Scene, ledger *core.VerticalLedger) (core.Path, []Hop) {
	target, ok := scene.Target(line)
	if !ok {
		core.Logger().Warn("greedy: unroutable target", "connection", ownerOf(line))
		return core.Path{}, nil
	}
	g := newGreedyRun(r.cfg, line, target, scene, ledger)
	return g.route()
}

// greedyRun holds the state of routing a single line.
type greedyRun struct {
	cfg    core.Config
	scene  *Scene
	ledger *core.VerticalLedger
	owner  string

	source       core.Connector
	target       core.Connector
	targetDevice string
	end          geometry.Point
	approachX    float64 // column where the wire turns into the target joint
	exit         float64 // outward X direction of the source
	inward       float64 // outward X direction of the target

	others    []core.VerticalLineRecord
	cur       geometry.Point
	startRect *geometry.Rect
	segments  []geometry.Segment
	hops      []Hop
}

func newGreedyRun(cfg core.Config, line core.ConnectionLine, target core.Connector, scene *Scene, ledger *core.VerticalLedger) *greedyRun {
	owner := ownerOf(line)
	start := line.Source.Rect
	end := target.Joint()
	inward := target.Endpoint.Side.Outward()
	approach := math.Max(cfg.MinimumStartLineDistance-target.Rect.Width(), 0)

	return &greedyRun{
		cfg:          cfg,
		scene:        scene,
		ledger:       ledger,
		owner:        owner,
		source:       line.Source,
		target:       target,
		targetDevice: target.Endpoint.DeviceID,
		end:          end,
		approachX:    end.X + inward*approach,
		exit:         line.Source.Endpoint.Side.Outward(),
		inward:       inward,
		others:       ledger.Others(owner),
		cur:          line.Joint(),
		startRect:    &start,
	}
}

func (g *greedyRun) route() (core.Path, []Hop) {
	for i := 0; i < g.cfg.MaxHops; i++ {
		if g.cur.Eq(g.end) {
			return g.finish(true)
		}

		next, rule, ok := g.nextHop()
		if !ok {
			core.Logger().Warn("greedy: no rule matched, returning partial path",
				"connection", g.owner, "at", g.cur.String(), "target", g.end.String())
			return g.finish(false)
		}

		optimized := false
		if !geometry.Near(next.X, g.cur.X) && !next.Eq(g.end) && !g.cfg.DisableOptimization {
			if snapped := g.optimizeClearance(next); !snapped.Eq(next) {
				next, optimized = snapped, true
			}
		}
		g.commit(next, rule, optimized)
	}

	if g.cur.Eq(g.end) {
		return g.finish(true)
	}
	core.Logger().Warn("greedy: hop limit reached", "connection", g.owner, "maxHops", g.cfg.MaxHops)
	return g.finish(false)
}

func (g *greedyRun) finish(reached bool) (core.Path, []Hop) {
	segs := make([]geometry.Segment, len(g.segments))
	copy(segs, g.segments)
	return core.Path{Segments: segs, Reached: reached}.Simplify(), g.hops
}

func (g *greedyRun) commit(next geometry.Point, rule hopRule, optimized bool) {
	seg := geometry.Seg(g.cur, next)
	g.segments = append(g.segments, seg)
	g.hops = append(g.hops, Hop{Rule: string(rule), Segment: seg, Optimized: optimized})
	if !geometry.Near(next.Y, g.cur.Y) && g.ledger != nil {
		g.ledger.Record(g.cur, next, g.owner)
	}
	core.Logger().Debug("greedy hop", "connection", g.owner, "rule", string(rule),
		"from", g.cur.String(), "to", next.String(), "optimized", optimized)
	g.cur = next
	g.startRect = nil
}

func (g *greedyRun) nextHop() (geometry.Point, hopRule, bool) {
	if g.startRect != nil {
		if next, rule, ok := g.firstHop(); ok {
			return next, rule, true
		}
		// The first bend sits on the joint itself.
		g.startRect = nil
	}
	return g.laterHop()
}

// firstHop decides how far the wire leaves the source connector before its
// first turn. The move is always outward, along the connector's side.
func (g *greedyRun) firstHop() (geometry.Point, hopRule, bool) {
	offset := g.startOffset()
	c := g.cfg.MinimumDistanceBetweenLine
	dx := g.end.X - g.cur.X
	ahead := g.exit*dx > geometry.Epsilon
	behind := g.exit*dx < -geometry.Epsilon
	devs := g.overlapDevices()

	var x float64
	var rule hopRule

	if edge, ok := g.sameRowDeviceAhead(devs); ok {
		gap := math.Abs(edge - g.cur.X)
		step := math.Min(math.Max(gap/2, offset), gap-c)
		if step <= 0 {
			step = gap / 2
		}
		x, rule = g.cur.X+g.exit*step, ruleSameRowDevice
	} else {
		switch {
		case !ahead && !behind:
			if offset <= 0 {
				return geometry.Point{}, "", false
			}
			x, rule = g.cur.X+g.exit*offset, ruleAlignedColumn
		case ahead && len(devs) > 0:
			x = g.pullOutOfColumns(g.cur.X + g.exit*splitStep(math.Abs(dx), offset))
			rule = ruleSplitObstructed
		case ahead && geometry.Near(g.cur.Y, g.end.Y):
			x, rule = g.end.X, ruleStraightExit
		case ahead:
			x, rule = g.cur.X+g.exit*splitStep(math.Abs(dx), offset), ruleSplitClear
		default:
			d := offset
			if d <= 0 {
				d = c
			}
			if d <= 0 {
				return geometry.Point{}, "", false
			}
			x, rule = g.cur.X+g.exit*d, ruleExitBehind
		}
	}

	x = g.clampHorizontal(x)
	if geometry.Near(x, g.cur.X) || g.exit*(x-g.cur.X) < 0 {
		return geometry.Point{}, "", false
	}
	return geometry.Point{X: x, Y: g.cur.Y}, rule, true
}

// startOffset is how far past the joint the wire must run before turning.
// The minimum start distance is measured from the device edge, the joint is
// already a connector width away from it; a negative remainder clamps to 0.
func (g *greedyRun) startOffset() float64 {
	if g.startRect == nil {
		return 0
	}
	return math.Max(g.cfg.MinimumStartLineDistance-g.startRect.Width(), 0)
}

// splitStep halves the distance to the target but never turns earlier than
// offset nor later than the target column.
func splitStep(dist, offset float64) float64 {
	return math.Min(math.Max(dist/2, offset), dist)
}

// sameRowDeviceAhead returns the near edge of the closest overlapping device
// that lies ahead of the current point on the current row.
func (g *greedyRun) sameRowDeviceAhead(devs []core.Device) (float64, bool) {
	best, bestDist, found := 0.0, math.Inf(1), false
	for _, d := range devs {
		if !d.Rect.ContainsY(g.cur.Y) {
			continue
		}
		edge := d.Rect.Left
		if g.exit < 0 {
			edge = d.Rect.Right
		}
		if g.exit*(edge-g.cur.X) <= geometry.Epsilon {
			continue
		}
		if dist := geometry.Distance(g.cur, d.Rect.NearestCorner(g.cur)); dist < bestDist {
			best, bestDist, found = edge, dist, true
		}
	}
	return best, found
}

// pullOutOfColumns moves a proposed turn column out of any device whose
// clearance zone the vertical run to the target row would cross.
func (g *greedyRun) pullOutOfColumns(x float64) float64 {
	c := g.cfg.MinimumDistanceBetweenLine
	for range g.scene.Devices {
		run := geometry.BoundingRect(geometry.Pt(x, g.cur.Y), geometry.Pt(x, g.end.Y))
		moved := false
		for _, d := range g.scene.Devices {
			zone := d.Rect.Inflate(c)
			if !zone.ContainsX(x) || !overlapsVertically(run, zone) {
				continue
			}
			near, far := zone.Left, zone.Right
			if g.exit < 0 {
				near, far = zone.Right, zone.Left
			}
			switch {
			case g.exit*(near-g.cur.X) > geometry.Epsilon:
				x = near
			case g.exit*(far-g.cur.X) > geometry.Epsilon && g.exit*(g.end.X-far) > geometry.Epsilon:
				x = far
			default:
				continue
			}
			moved = true
			break
		}
		if !moved {
			break
		}
	}
	return x
}

func overlapsVertically(run, zone geometry.Rect) bool {
	if geometry.Near(run.Top, run.Bottom) {
		return zone.ContainsY(run.Top)
	}
	return run.Top < zone.Bottom && run.Bottom > zone.Top
}

// laterHop evaluates the ordered rule cascade used after the first hop. The
// first rule that yields a valid move wins.
func (g *greedyRun) laterHop() (geometry.Point, hopRule, bool) {
	cur, end := g.cur, g.end
	sameY := geometry.Near(cur.Y, end.Y)
	wrongSide := g.inward*(cur.X-end.X) < -geometry.Epsilon

	// A connector sits in the approach column: reach the target row first.
	if !sameY && !wrongSide && g.connectorInColumn(g.approachX, cur.Y, end.Y) {
		next := geometry.Pt(cur.X, end.Y)
		if g.free(cur, next) {
			return next, ruleConnectorColumn, true
		}
	}

	if sameY && !wrongSide && g.free(cur, end) {
		return end, ruleStraightToTarget, true
	}

	if !sameY && !wrongSide {
		corner := geometry.Pt(cur.X, end.Y)
		if g.free(cur, corner) && g.free(corner, end) {
			return corner, ruleSnapTargetY, true
		}
	}

	if !geometry.Near(cur.X, g.approachX) {
		corner := geometry.Pt(g.approachX, cur.Y)
		turn := geometry.Pt(g.approachX, end.Y)
		if g.free(cur, corner) && g.free(corner, turn) && g.free(turn, end) {
			return corner, ruleSnapApproachX, true
		}
	}

	for _, d := range g.blockers(wrongSide) {
		if next, rule, ok := g.around(d); ok {
			return next, rule, true
		}
	}

	if !geometry.Near(cur.X, g.approachX) {
		x := g.clampHorizontal(g.approachX)
		if next := geometry.Pt(x, cur.Y); !geometry.Near(x, cur.X) && g.free(cur, next) {
			return next, ruleAdvanceHorizontal, true
		}
	}

	if !sameY {
		y := g.clampVertical(end.Y)
		if next := geometry.Pt(cur.X, y); !geometry.Near(y, cur.Y) && g.free(cur, next) {
			return next, ruleAdvanceVertical, true
		}
	}

	return geometry.Point{}, "", false
}

// around steps past one obstructing device: out of its column when the
// current point is above or below it, otherwise to the clearance line of the
// top or bottom edge, whichever is closer to the target.
func (g *greedyRun) around(d core.Device) (geometry.Point, hopRule, bool) {
	zone := d.Rect.Inflate(g.cfg.MinimumDistanceBetweenLine)
	cur := g.cur

	if zone.ContainsX(cur.X) {
		for _, x := range preferNear(zone.Left, zone.Right, g.approachX, cur.X) {
			next := geometry.Pt(x, cur.Y)
			if !geometry.Near(x, cur.X) && g.free(cur, next) {
				return next, ruleClearDeviceColumn, true
			}
		}
	}

	if zone.ContainsY(cur.Y) {
		for _, y := range preferNear(zone.Top, zone.Bottom, g.end.Y, cur.Y) {
			next := geometry.Pt(cur.X, y)
			if !geometry.Near(y, cur.Y) && g.free(cur, next) {
				return next, ruleClearDeviceRow, true
			}
		}
	}

	return geometry.Point{}, "", false
}

// preferNear orders two candidates by distance to goal, then by distance to
// from. Full ties keep a before b.
func preferNear(a, b, goal, from float64) [2]float64 {
	da, db := math.Abs(a-goal), math.Abs(b-goal)
	if geometry.Near(da, db) {
		da, db = math.Abs(a-from), math.Abs(b-from)
	}
	if db < da && !geometry.Near(da, db) {
		return [2]float64{b, a}
	}
	return [2]float64{a, b}
}

// overlapDevices returns the devices, target excluded, that intersect the
// span from the current point to the target joint. On the first hop each
// device is shrunk horizontally by the start rect width so the source device
// does not collide with its own connector.
func (g *greedyRun) overlapDevices() []core.Device {
	span := geometry.BoundingRect(g.cur, g.end)
	shrink := 0.0
	if g.startRect != nil {
		shrink = g.startRect.Width()
	}
	var out []core.Device
	for _, d := range g.scene.Devices {
		if d.ID == g.targetDevice {
			continue
		}
		if geometry.RectanglesOverlap(span, d.Rect.ShrinkHorizontal(shrink)) {
			out = append(out, d)
		}
	}
	return out
}

// blockers lists the devices to route around, nearest first. The target
// device only counts while the wire is on its far side.
func (g *greedyRun) blockers(wrongSide bool) []core.Device {
	devs := g.overlapDevices()
	if wrongSide {
		if d, ok := g.scene.Device(g.targetDevice); ok {
			devs = append(devs, d)
		}
	}
	sort.SliceStable(devs, func(i, j int) bool {
		di := geometry.Distance(g.cur, devs[i].Rect.NearestCorner(g.cur))
		dj := geometry.Distance(g.cur, devs[j].Rect.NearestCorner(g.cur))
		return di < dj
	})
	return devs
}

func (g *greedyRun) obstacleConnectors() []core.Connector {
	src, dst := g.source.Endpoint.Key(), g.target.Endpoint.Key()
	out := make([]core.Connector, 0, len(g.scene.Connectors))
	for _, c := range g.scene.Connectors {
		if k := c.Endpoint.Key(); k == src || k == dst {
			continue
		}
		out = append(out, c)
	}
	return out
}

// connectorInColumn reports whether a foreign connector occupies column x
// between y1 and y2. Touching the column counts.
func (g *greedyRun) connectorInColumn(x, y1, y2 float64) bool {
	lo, hi := math.Min(y1, y2), math.Max(y1, y2)
	for _, c := range g.overlapConnectorsAt(x) {
		if c.Rect.Top < hi && c.Rect.Bottom > lo {
			return true
		}
	}
	return false
}

func (g *greedyRun) overlapConnectorsAt(x float64) []core.Connector {
	var out []core.Connector
	for _, c := range g.obstacleConnectors() {
		if x >= c.Rect.Left-geometry.Epsilon && x <= c.Rect.Right+geometry.Epsilon {
			out = append(out, c)
		}
	}
	return out
}

// free reports whether the segment a-b stays out of every device body and
// every foreign connector.
func (g *greedyRun) free(a, b geometry.Point) bool {
	if a.Eq(b) {
		return true
	}
	bounds := geometry.BoundingRect(a, b)
	for _, d := range g.scene.Devices {
		if geometry.RectanglesOverlap(bounds, d.Rect) {
			return false
		}
	}
	for _, c := range g.obstacleConnectors() {
		if geometry.RectanglesOverlap(bounds, c.Rect) {
			return false
		}
	}
	return true
}

// obstacleRects returns device and foreign connector rects.
func (g *greedyRun) obstacleRects() []geometry.Rect {
	rects := make([]geometry.Rect, 0, len(g.scene.Devices)+len(g.scene.Connectors))
	for _, d := range g.scene.Devices {
		rects = append(rects, d.Rect)
	}
	for _, c := range g.obstacleConnectors() {
		rects = append(rects, c.Rect)
	}
	return rects
}

// clampHorizontal shortens a horizontal move from the current point so it
// stops before the first obstacle, at the clearance distance when there is
// room for it and touching the obstacle otherwise.
func (g *greedyRun) clampHorizontal(x float64) float64 {
	c := g.cfg.MinimumDistanceBetweenLine
	dir := geometry.Sign(x - g.cur.X)
	if dir == 0 {
		return x
	}
	bounds := geometry.BoundingRect(g.cur, geometry.Pt(x, g.cur.Y))
	for _, r := range g.obstacleRects() {
		if !geometry.RectanglesOverlap(bounds, r) {
			continue
		}
		edge := r.Left
		if dir < 0 {
			edge = r.Right
		}
		stop := edge - dir*c
		if dir*(stop-g.cur.X) <= geometry.Epsilon {
			stop = edge
		}
		if dir*(stop-x) < 0 {
			x = stop
		}
	}
	return x
}

// clampVertical is clampHorizontal for a vertical move.
func (g *greedyRun) clampVertical(y float64) float64 {
	c := g.cfg.MinimumDistanceBetweenLine
	dir := geometry.Sign(y - g.cur.Y)
	if dir == 0 {
		return y
	}
	bounds := geometry.BoundingRect(g.cur, geometry.Pt(g.cur.X, y))
	for _, r := range g.obstacleRects() {
		if !geometry.RectanglesOverlap(bounds, r) {
			continue
		}
		edge := r.Top
		if dir < 0 {
			edge = r.Bottom
		}
		stop := edge - dir*c
		if dir*(stop-g.cur.Y) <= geometry.Epsilon {
			stop = edge
		}
		if dir*(stop-y) < 0 {
			y = stop
		}
	}
	return y
}

// optimizeClearance keeps the vertical run that will start at next away
// from the runs of other wires. A run within the clearance of a recorded run,
// between the current row and the target row, is snapped to the left or right
// boundary of that run's clearance box. The snapped column never reverses
// the move direction nor crosses to the wrong side of the target.
func (g *greedyRun) optimizeClearance(next geometry.Point) geometry.Point {
	c := g.cfg.MinimumDistanceBetweenLine
	if c <= 0 || len(g.others) == 0 {
		return next
	}

	dir := geometry.Sign(next.X - g.cur.X)
	keepSide := g.inward*(next.X-g.end.X) >= -geometry.Epsilon
	tried := map[float64]bool{next.X: true}
	x := next.X

	for range g.others {
		rec, ok := g.clearanceConflict(x)
		if !ok {
			break
		}
		snapped := false
		for _, cand := range preferNear(rec.X()-c, rec.X()+c, next.X, g.cur.X) {
			switch {
			case tried[cand]:
				continue
			case geometry.Sign(cand-g.cur.X) != dir:
				continue
			case keepSide && g.inward*(cand-g.end.X) < -geometry.Epsilon:
				continue
			case !g.free(g.cur, geometry.Pt(cand, g.cur.Y)):
				continue
			}
			tried[cand] = true
			x, snapped = cand, true
			break
		}
		if !snapped {
			break
		}
	}

	if _, conflict := g.clearanceConflict(x); conflict {
		return next
	}
	return geometry.Point{X: x, Y: next.Y}
}

// clearanceConflict finds the first foreign vertical run inside the
// clearance corridor of a run at column x toward the target row.
func (g *greedyRun) clearanceConflict(x float64) (core.VerticalLineRecord, bool) {
	c := g.cfg.MinimumDistanceBetweenLine
	corridor := geometry.Rect{
		Left:   x - c,
		Top:    math.Min(g.cur.Y, g.end.Y),
		Right:  x + c,
		Bottom: math.Max(g.cur.Y, g.end.Y),
	}
	corridor = geometry.ExpandRect(corridor, c, c)
	for _, rec := range g.others {
		if geometry.RectanglesOverlap(corridor, rec.Bounds()) {
			return rec, true
		}
	}
	return core.VerticalLineRecord{}, false
}
