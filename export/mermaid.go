package export

import (
	"fmt"
	"strings"

	"cablemap/connections"
)

// MermaidExporter exports the scene as a left-to-right Mermaid flowchart.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

func (e *MermaidExporter) Export(scene *connections.Scene, routed []connections.RoutedConnection) (string, error) {
	if err := checkScene(scene); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	nodes := make(map[string]string, len(scene.Devices))
	for i, d := range scene.Devices {
		id := fmt.Sprintf("N%d", i)
		nodes[d.ID] = id
		label := d.ID
		if d.Kind != "" {
			label += " (" + d.Kind + ")"
		}
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, mermaidEscape(label))
	}

	if len(routed) > 0 {
		sb.WriteString("\n")
	}

	for _, rc := range routed {
		if rc.Line.Target == nil {
			continue
		}
		from, ok := nodes[rc.Line.Source.Endpoint.DeviceID]
		if !ok {
			continue
		}
		to, ok := nodes[rc.Line.Target.DeviceID]
		if !ok {
			continue
		}
		arrow := "-->"
		if rc.Degraded {
			arrow = "-.->"
		}
		label := rc.Line.Source.Endpoint.ConnectorID + ":" + rc.Line.Target.ConnectorID
		fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n", from, arrow, mermaidEscape(label), to)
	}
	return sb.String(), nil
}

func (e *MermaidExporter) FileExtension() string {
	return ".mmd"
}

func mermaidEscape(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
