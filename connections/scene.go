package connections

import (
	"cablemap/core"
	"cablemap/geometry"
)

// Scene is the read-only geometry snapshot of one routing pass: device
// bodies, connector rectangles and the cables to route, in declaration order.
type Scene struct {
	Devices    []core.Device
	Connectors []core.Connector
	Lines      []core.ConnectionLine

	deviceIndex    map[string]int
	connectorIndex map[string]int
}

// NewScene indexes devices by ID and connectors by endpoint key. Later
// duplicates shadow earlier ones.
func NewScene(devices []core.Device, connectors []core.Connector, lines []core.ConnectionLine) *Scene {
	s := &Scene{
		Devices:        devices,
		Connectors:     connectors,
		Lines:          lines,
		deviceIndex:    make(map[string]int, len(devices)),
		connectorIndex: make(map[string]int, len(connectors)),
	}
	for i, d := range devices {
		s.deviceIndex[d.ID] = i
	}
	for i, c := range connectors {
		s.connectorIndex[c.Endpoint.Key()] = i
	}
	return s
}

// Device looks up a device by ID.
func (s *Scene) Device(id string) (core.Device, bool) {
	i, ok := s.deviceIndex[id]
	if !ok {
		return core.Device{}, false
	}
	return s.Devices[i], true
}

// Connector resolves an endpoint to its connector geometry.
func (s *Scene) Connector(ep core.ConnectionEndpoint) (core.Connector, bool) {
	i, ok := s.connectorIndex[ep.Key()]
	if !ok {
		return core.Connector{}, false
	}
	return s.Connectors[i], true
}

// Target resolves the target connector of a line. It reports false when the
// line has no target or the target is not part of the scene.
func (s *Scene) Target(line core.ConnectionLine) (core.Connector, bool) {
	if line.Target == nil {
		return core.Connector{}, false
	}
	return s.Connector(*line.Target)
}

// Bounds returns the rect covering every device and connector.
func (s *Scene) Bounds() geometry.Rect {
	var r geometry.Rect
	first := true
	add := func(o geometry.Rect) {
		if first {
			r, first = o, false
			return
		}
		r = r.Union(o)
	}
	for _, d := range s.Devices {
		add(d.Rect)
	}
	for _, c := range s.Connectors {
		add(c.Rect)
	}
	return r
}

// DeviceRects returns every device rect except the listed device IDs.
func (s *Scene) DeviceRects(except ...string) []geometry.Rect {
	rects := make([]geometry.Rect, 0, len(s.Devices))
next:
	for _, d := range s.Devices {
		for _, id := range except {
			if d.ID == id {
				continue next
			}
		}
		rects = append(rects, d.Rect)
	}
	return rects
}

func ownerOf(line core.ConnectionLine) string {
	if line.ID != "" {
		return line.ID
	}
	return line.Source.Endpoint.Key()
}
