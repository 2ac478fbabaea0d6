// Package core contains the domain records shared by the cablemap routers.
package core

import "cablemap/geometry"

// Side is the device edge a connector protrudes from.
type Side int

const (
	Left Side = iota
	Right
)

// String returns the string representation of a Side.
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Outward returns +1 for Right and -1 for Left: the X direction pointing away
// from the device body.
func (s Side) Outward() float64 {
	if s == Right {
		return 1
	}
	return -1
}

// Flow is the signal direction of a connector.
type Flow int

const (
	Input Flow = iota
	Output
)

// String returns the string representation of a Flow.
func (f Flow) String() string {
	switch f {
	case Input:
		return "in"
	case Output:
		return "out"
	default:
		return "unknown"
	}
}

// ConnectionEndpoint identifies a connector on a device.
type ConnectionEndpoint struct {
	DeviceID    string
	ConnectorID string
	Side        Side
	Flow        Flow
}

// Key returns a stable lookup key for the endpoint.
func (e ConnectionEndpoint) Key() string {
	return e.DeviceID + "." + e.ConnectorID
}

// Device is a device body on the canvas. Kind is a free type tag such as
// "computer" or "hub" and never changes routing behaviour.
type Device struct {
	ID   string
	Kind string
	Rect geometry.Rect
}

// Connector is the rectangle of a port protruding from a device edge.
type Connector struct {
	Endpoint ConnectionEndpoint
	Rect     geometry.Rect
}

// Joint returns the wire attachment point: the midpoint of the connector edge
// facing away from its device.
func (c Connector) Joint() geometry.Point {
	y := (c.Rect.Top + c.Rect.Bottom) / 2
	if c.Endpoint.Side == Right {
		return geometry.Point{X: c.Rect.Right, Y: y}
	}
	return geometry.Point{X: c.Rect.Left, Y: y}
}

// ConnectionLine is one cable: the source connector with known geometry and
// a reference to the target endpoint, which may be unset.
type ConnectionLine struct {
	ID     string
	Source Connector
	Target *ConnectionEndpoint
}

// Joint returns the source joint.
func (l ConnectionLine) Joint() geometry.Point {
	return l.Source.Joint()
}
