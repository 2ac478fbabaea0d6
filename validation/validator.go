// Package validation checks routed cables against their scene.
package validation

import (
	"fmt"
	"math"
	"sort"

	"cablemap/connections"
	"cablemap/core"
	"cablemap/geometry"
)

// Severity classifies an issue.
type Severity int

const (
	// Warning marks a legal but poor route.
	Warning Severity = iota
	// Error marks a route that is not a drawable cable.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Kind names the rule an issue breaks.
type Kind string

const (
	KindEmpty      Kind = "empty"
	KindGap        Kind = "gap"
	KindDiagonal   Kind = "diagonal"
	KindStart      Kind = "start"
	KindEnd        Kind = "end"
	KindUnreached  Kind = "unreached"
	KindDevice     Kind = "device-crossing"
	KindClearance  Kind = "clearance"
	KindConnection Kind = "connector-crossing"
)

// Issue is one problem found in a routed connection.
type Issue struct {
	Connection string
	Kind       Kind
	Severity   Severity
	Segment    int // index into the path, -1 for whole-path issues
	Message    string
}

func (i Issue) String() string {
	if i.Segment < 0 {
		return fmt.Sprintf("%s: %s %s: %s", i.Connection, i.Severity, i.Kind, i.Message)
	}
	return fmt.Sprintf("%s[%d]: %s %s: %s", i.Connection, i.Segment, i.Severity, i.Kind, i.Message)
}

// RouteValidator checks routed connections.
type RouteValidator struct {
	clearance float64
}

// NewRouteValidator creates a validator that expects parallel vertical runs
// of different cables to keep at least clearance apart.
func NewRouteValidator(clearance float64) *RouteValidator {
	return &RouteValidator{clearance: clearance}
}

// Validate returns every issue found, ordered by connection then segment.
func (v *RouteValidator) Validate(scene *connections.Scene, routed []connections.RoutedConnection) []Issue {
	var issues []Issue
	for _, rc := range routed {
		issues = append(issues, v.validatePath(scene, rc)...)
	}
	issues = append(issues, v.validateClearance(routed)...)

	order := make(map[string]int, len(routed))
	for i, rc := range routed {
		order[rc.ID()] = i
	}
	sort.SliceStable(issues, func(a, b int) bool {
		ia, ib := issues[a], issues[b]
		if order[ia.Connection] != order[ib.Connection] {
			return order[ia.Connection] < order[ib.Connection]
		}
		return ia.Segment < ib.Segment
	})
	return issues
}

// HasErrors reports whether any issue is an Error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

func (v *RouteValidator) validatePath(scene *connections.Scene, rc connections.RoutedConnection) []Issue {
	id := rc.ID()
	issue := func(kind Kind, sev Severity, seg int, format string, args ...any) Issue {
		return Issue{Connection: id, Kind: kind, Severity: sev, Segment: seg, Message: fmt.Sprintf(format, args...)}
	}

	if rc.Path.IsEmpty() {
		// Coincident joints need no wire.
		if target, ok := scene.Target(rc.Line); ok && rc.Path.Reached && target.Joint().Eq(rc.Line.Joint()) {
			return nil
		}
		return []Issue{issue(KindEmpty, Error, -1, "path has no segments")}
	}

	var out []Issue
	path := rc.Path
	if !path.IsContiguous() {
		out = append(out, issue(KindGap, Error, -1, "segments do not join end to start"))
	}
	for i, s := range path.Segments {
		if !geometry.Near(s.Start.X, s.End.X) && !geometry.Near(s.Start.Y, s.End.Y) {
			out = append(out, issue(KindDiagonal, Error, i, "%v -> %v is not orthogonal", s.Start, s.End))
		}
	}

	if start, _ := path.Start(); !start.Eq(rc.Line.Joint()) {
		out = append(out, issue(KindStart, Error, 0, "starts at %v, source joint is %v", start, rc.Line.Joint()))
	}
	target, hasTarget := scene.Target(rc.Line)
	switch {
	case !path.Reached:
		out = append(out, issue(KindUnreached, Warning, -1, "route stops before the target"))
	case hasTarget:
		if end, _ := path.End(); !end.Eq(target.Joint()) {
			out = append(out, issue(KindEnd, Error, len(path.Segments)-1, "ends at %v, target joint is %v", end, target.Joint()))
		}
	}

	own := map[string]bool{rc.Line.Source.Endpoint.Key(): true}
	if hasTarget {
		own[target.Endpoint.Key()] = true
	}
	for i, s := range path.Segments {
		b := s.Bounds()
		for _, d := range scene.Devices {
			if geometry.RectanglesOverlap(b, d.Rect) {
				out = append(out, issue(KindDevice, Warning, i, "crosses device %s", d.ID))
			}
		}
		for _, c := range scene.Connectors {
			if !own[c.Endpoint.Key()] && geometry.RectanglesOverlap(b, c.Rect) {
				out = append(out, issue(KindConnection, Warning, i, "crosses connector %s", c.Endpoint.Key()))
			}
		}
	}
	return out
}

// verticalRun is a vertical segment of one routed cable.
type verticalRun struct {
	owner  string
	index  int
	x      float64
	y1, y2 float64
}

func (v *RouteValidator) validateClearance(routed []connections.RoutedConnection) []Issue {
	if v.clearance <= 0 {
		return nil
	}
	var runs []verticalRun
	for _, rc := range routed {
		for i, s := range rc.Path.Segments {
			if geometry.Near(s.Start.X, s.End.X) && !geometry.Near(s.Start.Y, s.End.Y) {
				runs = append(runs, verticalRun{
					owner: rc.ID(), index: i, x: s.Start.X,
					y1: math.Min(s.Start.Y, s.End.Y), y2: math.Max(s.Start.Y, s.End.Y),
				})
			}
		}
	}

	var out []Issue
	for i, a := range runs {
		for _, b := range runs[:i] {
			if a.owner == b.owner {
				continue
			}
			dx := math.Abs(a.x - b.x)
			if dx >= v.clearance-geometry.Epsilon || a.y1 >= b.y2 || b.y1 >= a.y2 {
				continue
			}
			out = append(out, Issue{
				Connection: a.owner,
				Kind:       KindClearance,
				Severity:   Warning,
				Segment:    a.index,
				Message:    fmt.Sprintf("runs %g from %s at x=%g, want at least %g", dx, b.owner, b.x, v.clearance),
			})
		}
	}
	return out
}

// Summary counts issues by severity.
func Summary(issues []Issue) (errors, warnings int) {
	for _, i := range issues {
		if i.Severity == Error {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

// ForConfig returns a validator using the greedy clearance of cfg.
func ForConfig(cfg core.Config) *RouteValidator {
	return NewRouteValidator(cfg.MinimumDistanceBetweenLine)
}
