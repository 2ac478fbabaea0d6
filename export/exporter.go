// Package export writes a routed scene to text formats other tools can read.
package export

import (
	"errors"
	"fmt"

	"cablemap/connections"
)

// ErrUnknownFormat is returned for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Format represents an export format
type Format string

const (
	// FormatJSON exports the routed polylines.
	FormatJSON Format = "json"
	// FormatASCII exports the character frame.
	FormatASCII Format = "ascii"
	// FormatD2 exports D2 diagram source with device sizes.
	FormatD2 Format = "d2"
	// FormatMermaid exports a Mermaid flowchart.
	FormatMermaid Format = "mermaid"
)

// Exporter converts a routed scene to one format.
type Exporter interface {
	Export(scene *connections.Scene, routed []connections.RoutedConnection) (string, error)
	// FileExtension returns the recommended file extension, dot included.
	FileExtension() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatD2:
		return NewD2Exporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "d2":
		return FormatD2, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// AvailableFormats lists every format in help order.
func AvailableFormats() []Format {
	return []Format{FormatJSON, FormatASCII, FormatD2, FormatMermaid}
}

func checkScene(scene *connections.Scene) error {
	if scene == nil {
		return errors.New("scene is nil")
	}
	if len(scene.Devices) == 0 {
		return errors.New("scene has no devices")
	}
	return nil
}
