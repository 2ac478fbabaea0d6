package export

import (
	"fmt"
	"strings"

	"cablemap/connections"
)

// D2Exporter exports devices and cables to D2 syntax. Device sizes are kept;
// cable geometry is left to the D2 layout engine.
type D2Exporter struct{}

// NewD2Exporter creates a new D2 exporter
func NewD2Exporter() *D2Exporter {
	return &D2Exporter{}
}

func (e *D2Exporter) Export(scene *connections.Scene, routed []connections.RoutedConnection) (string, error) {
	if err := checkScene(scene); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, d := range scene.Devices {
		id := d2Key(d.ID)
		fmt.Fprintf(&sb, "%s: %s\n", id, d2Quote(d.ID))
		fmt.Fprintf(&sb, "%s.width: %g\n", id, d.Rect.Width())
		fmt.Fprintf(&sb, "%s.height: %g\n", id, d.Rect.Height())
		if d.Kind != "" {
			fmt.Fprintf(&sb, "%s.tooltip: %s\n", id, d2Quote(d.Kind))
		}
	}

	if len(routed) > 0 {
		sb.WriteString("\n")
	}

	// D2 addresses repeated edges between one pair as (a -> b)[n].
	seen := make(map[string]int)
	for _, rc := range routed {
		if rc.Line.Target == nil {
			continue
		}
		from := d2Key(rc.Line.Source.Endpoint.DeviceID)
		to := d2Key(rc.Line.Target.DeviceID)
		edge := from + " -> " + to
		label := rc.Line.Source.Endpoint.ConnectorID + " -> " + rc.Line.Target.ConnectorID
		fmt.Fprintf(&sb, "%s: %s\n", edge, d2Quote(label))

		n := seen[edge]
		seen[edge]++
		if rc.Degraded {
			fmt.Fprintf(&sb, "(%s)[%d].style.stroke-dash: 3\n", edge, n)
		}
	}
	return sb.String(), nil
}

func (e *D2Exporter) FileExtension() string {
	return ".d2"
}

// d2Key quotes an identifier unless it is a bare word. Dots would nest.
func d2Key(id string) string {
	for _, r := range id {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return quote(id)
		}
	}
	return id
}

// d2Quote quotes a label if it holds characters the D2 parser would read as syntax.
func d2Quote(label string) string {
	if strings.ContainsAny(label, ":-><|{}[]()\"#;.") {
		return quote(label)
	}
	return label
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
