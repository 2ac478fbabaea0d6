package export

import (
	"cablemap/connections"
	"cablemap/render"
)

// ASCIIExporter exports the character frame of the routed scene.
type ASCIIExporter struct {
	opts render.ASCIIOptions
}

// NewASCIIExporter creates an exporter using box-drawing characters.
func NewASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{opts: render.DefaultASCIIOptions()}
}

// NewPlainASCIIExporter creates an exporter restricted to 7-bit characters.
func NewPlainASCIIExporter() *ASCIIExporter {
	return &ASCIIExporter{opts: render.PlainASCIIOptions()}
}

func (e *ASCIIExporter) Export(scene *connections.Scene, routed []connections.RoutedConnection) (string, error) {
	if err := checkScene(scene); err != nil {
		return "", err
	}
	frame, err := render.Frame(scene, routed, e.opts)
	if err != nil {
		return "", err
	}
	return frame.String() + "\n", nil
}

func (e *ASCIIExporter) FileExtension() string {
	return ".txt"
}
