// Package layout loads device diagrams from disk and turns them into routing
// scenes. Positions are given; nothing here places devices.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"cablemap/core"
)

var (
	// ErrUnknownDevice is returned when a connection names a missing device.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrUnknownPort is returned when a connection names a missing port.
	ErrUnknownPort = errors.New("unknown port")
	// ErrInvalidLayout is returned for malformed device or port records.
	ErrInvalidLayout = errors.New("invalid layout")
)

// DefaultPortSize is the width and height of a port without explicit size.
const DefaultPortSize = 10

// Snapshot is a complete diagram: devices with their ports, the cables
// between them and optional routing overrides.
type Snapshot struct {
	Devices     []DeviceSpec     `json:"devices"`
	Connections []ConnectionSpec `json:"connections"`
	Routing     *RoutingSpec     `json:"routing,omitempty"`
}

// DeviceSpec is a device body. X and Y are the top-left corner.
type DeviceSpec struct {
	ID     string     `json:"id"`
	Kind   string     `json:"kind,omitempty"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Ports  []PortSpec `json:"ports,omitempty"`
}

// PortSpec is a connector on a device edge. Offset is the distance of the
// port centre from the device top; ports without one are spread evenly over
// their edge.
type PortSpec struct {
	ID     string   `json:"id"`
	Side   string   `json:"side"`
	Flow   string   `json:"flow,omitempty"`
	Offset *float64 `json:"offset,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
}

// ConnectionSpec is a cable between two "device.port" endpoints. To may be
// empty for a cable that is still being drawn.
type ConnectionSpec struct {
	ID   string `json:"id,omitempty"`
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

// ParseSide converts "left" or "right" into a core.Side.
func ParseSide(s string) (core.Side, error) {
	switch strings.ToLower(s) {
	case "left", "l":
		return core.Left, nil
	case "right", "r":
		return core.Right, nil
	default:
		return 0, fmt.Errorf("%w: unknown side %q", ErrInvalidLayout, s)
	}
}

// ParseFlow converts "in" or "out" into a core.Flow. An empty flow is Output.
func ParseFlow(s string) (core.Flow, error) {
	switch strings.ToLower(s) {
	case "", "out", "output":
		return core.Output, nil
	case "in", "input":
		return core.Input, nil
	default:
		return 0, fmt.Errorf("%w: unknown flow %q", ErrInvalidLayout, s)
	}
}

// splitEndpoint splits "device.port" at the first dot.
func splitEndpoint(ref string) (device, port string, err error) {
	device, port, ok := strings.Cut(ref, ".")
	if !ok || device == "" || port == "" {
		return "", "", fmt.Errorf("%w: endpoint %q is not device.port", ErrInvalidLayout, ref)
	}
	return device, port, nil
}

// Validate checks device and port records without resolving connections.
func (s *Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Devices))
	for _, d := range s.Devices {
		if d.ID == "" {
			return fmt.Errorf("%w: device without id", ErrInvalidLayout)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate device %q", ErrInvalidLayout, d.ID)
		}
		seen[d.ID] = true
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("%w: device %q has size %gx%g", ErrInvalidLayout, d.ID, d.Width, d.Height)
		}

		ports := make(map[string]bool, len(d.Ports))
		for _, p := range d.Ports {
			if p.ID == "" {
				return fmt.Errorf("%w: device %q has a port without id", ErrInvalidLayout, d.ID)
			}
			if ports[p.ID] {
				return fmt.Errorf("%w: duplicate port %s.%s", ErrInvalidLayout, d.ID, p.ID)
			}
			ports[p.ID] = true
			if _, err := ParseSide(p.Side); err != nil {
				return fmt.Errorf("port %s.%s: %w", d.ID, p.ID, err)
			}
			if _, err := ParseFlow(p.Flow); err != nil {
				return fmt.Errorf("port %s.%s: %w", d.ID, p.ID, err)
			}
			if p.Width < 0 || p.Height < 0 {
				return fmt.Errorf("%w: port %s.%s has negative size", ErrInvalidLayout, d.ID, p.ID)
			}
		}
	}
	return nil
}
