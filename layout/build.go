package layout

import (
	"fmt"

	uuid "github.com/satori/go.uuid"

	"cablemap/connections"
	"cablemap/core"
	"cablemap/geometry"
)

// Build resolves a snapshot into a routing scene. Ports become connector
// rects protruding from their device edge, connections become lines in
// declaration order and anonymous connections get a random id.
func Build(snap *Snapshot) (*connections.Scene, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	devices := make([]core.Device, 0, len(snap.Devices))
	var connectors []core.Connector
	byKey := make(map[string]core.Connector)
	known := make(map[string]bool, len(snap.Devices))

	for _, d := range snap.Devices {
		dev := core.Device{
			ID:   d.ID,
			Kind: d.Kind,
			Rect: geometry.Rect{Left: d.X, Top: d.Y, Right: d.X + d.Width, Bottom: d.Y + d.Height},
		}
		devices = append(devices, dev)
		known[d.ID] = true

		ports, err := placePorts(dev, d.Ports)
		if err != nil {
			return nil, err
		}
		for _, c := range ports {
			connectors = append(connectors, c)
			byKey[c.Endpoint.Key()] = c
		}
	}

	resolve := func(ref string) (core.Connector, error) {
		dev, port, err := splitEndpoint(ref)
		if err != nil {
			return core.Connector{}, err
		}
		if !known[dev] {
			return core.Connector{}, fmt.Errorf("%w %q", ErrUnknownDevice, dev)
		}
		c, ok := byKey[dev+"."+port]
		if !ok {
			return core.Connector{}, fmt.Errorf("%w %q on device %q", ErrUnknownPort, port, dev)
		}
		return c, nil
	}

	lines := make([]core.ConnectionLine, 0, len(snap.Connections))
	ids := make(map[string]bool, len(snap.Connections))
	for i, cs := range snap.Connections {
		id := cs.ID
		if id == "" {
			id = uuid.NewV4().String()
		}
		if ids[id] {
			return nil, fmt.Errorf("%w: duplicate connection %q", ErrInvalidLayout, id)
		}
		ids[id] = true

		src, err := resolve(cs.From)
		if err != nil {
			return nil, fmt.Errorf("connection %d (%s) from: %w", i, id, err)
		}
		line := core.ConnectionLine{ID: id, Source: src}
		if cs.To != "" {
			dst, err := resolve(cs.To)
			if err != nil {
				return nil, fmt.Errorf("connection %d (%s) to: %w", i, id, err)
			}
			ep := dst.Endpoint
			line.Target = &ep
		}
		lines = append(lines, line)
	}

	return connections.NewScene(devices, connectors, lines), nil
}

// placePorts builds the connector rects of one device. Ports with an offset
// are centred on it; the rest of each side are spread evenly along the edge
// in declaration order.
func placePorts(dev core.Device, specs []PortSpec) ([]core.Connector, error) {
	height := dev.Rect.Height()
	free := map[core.Side]int{}
	for _, p := range specs {
		if p.Offset == nil {
			side, _ := ParseSide(p.Side)
			free[side]++
		}
	}

	placed := map[core.Side]int{}
	out := make([]core.Connector, 0, len(specs))
	for _, p := range specs {
		side, err := ParseSide(p.Side)
		if err != nil {
			return nil, err
		}
		flow, err := ParseFlow(p.Flow)
		if err != nil {
			return nil, err
		}

		var offset float64
		if p.Offset != nil {
			offset = *p.Offset
			if offset < 0 || offset > height {
				return nil, fmt.Errorf("%w: port %s.%s offset %g outside the device edge", ErrInvalidLayout, dev.ID, p.ID, offset)
			}
		} else {
			placed[side]++
			offset = height * float64(placed[side]) / float64(free[side]+1)
		}

		w, h := p.Width, p.Height
		if w == 0 {
			w = DefaultPortSize
		}
		if h == 0 {
			h = DefaultPortSize
		}

		cy := dev.Rect.Top + offset
		rect := geometry.Rect{Left: dev.Rect.Left - w, Top: cy - h/2, Right: dev.Rect.Left, Bottom: cy + h/2}
		if side == core.Right {
			rect = geometry.Rect{Left: dev.Rect.Right, Top: cy - h/2, Right: dev.Rect.Right + w, Bottom: cy + h/2}
		}

		out = append(out, core.Connector{
			Endpoint: core.ConnectionEndpoint{DeviceID: dev.ID, ConnectorID: p.ID, Side: side, Flow: flow},
			Rect:     rect,
		})
	}
	return out, nil
}
