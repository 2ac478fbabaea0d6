// Package render draws routed scenes. Both renderers implement
// connections.Sink, so a routing pass can draw each cable as it is routed.
package render

import (
	"fmt"
	"math"

	"cablemap/canvas"
	"cablemap/connections"
	"cablemap/core"
	"cablemap/geometry"
)

// ASCIIOptions controls character-cell rendering.
type ASCIIOptions struct {
	ScaleX     float64 // canvas units per column
	ScaleY     float64 // canvas units per row
	Margin     int     // blank cells around the scene
	Style      canvas.LineStyle
	PortMarker rune
	Labels     bool
}

// DefaultASCIIOptions returns options for a Unicode terminal. Columns are
// half as wide as rows are tall.
func DefaultASCIIOptions() ASCIIOptions {
	return ASCIIOptions{
		ScaleX:     5,
		ScaleY:     10,
		Margin:     4,
		Style:      canvas.UnicodeStyle,
		PortMarker: '■',
		Labels:     true,
	}
}

// PlainASCIIOptions returns options that only use 7-bit characters.
func PlainASCIIOptions() ASCIIOptions {
	opts := DefaultASCIIOptions()
	opts.Style = canvas.ASCIIStyle
	opts.PortMarker = '#'
	return opts
}

// ASCII renders a scene to a character matrix.
type ASCII struct {
	opts   ASCIIOptions
	origin geometry.Point
	canvas *canvas.MatrixCanvas
}

var _ connections.Sink = (*ASCII)(nil)

// NewASCII sizes a canvas around the scene and draws its devices and
// connectors. Cables are added through Draw.
func NewASCII(scene *connections.Scene, opts ASCIIOptions) (*ASCII, error) {
	if opts.ScaleX <= 0 || opts.ScaleY <= 0 {
		return nil, fmt.Errorf("%w: scale %gx%g", canvas.ErrInvalidSize, opts.ScaleX, opts.ScaleY)
	}
	b := scene.Bounds()
	a := &ASCII{
		opts: opts,
		origin: geometry.Pt(
			b.Left-float64(opts.Margin)*opts.ScaleX,
			b.Top-float64(opts.Margin)*opts.ScaleY,
		),
	}
	br := a.cell(geometry.Pt(b.Right, b.Bottom))
	c, err := canvas.NewMatrixCanvas(br.X+opts.Margin+1, br.Y+opts.Margin+1, opts.Style)
	if err != nil {
		return nil, err
	}
	a.canvas = c

	for _, d := range scene.Devices {
		if err := a.drawDevice(d); err != nil {
			return nil, fmt.Errorf("draw device %s: %w", d.ID, err)
		}
	}
	for _, conn := range scene.Connectors {
		a.drawConnector(conn)
	}
	return a, nil
}

func (a *ASCII) cell(p geometry.Point) canvas.Cell {
	return canvas.Cell{
		X: int(math.Round((p.X - a.origin.X) / a.opts.ScaleX)),
		Y: int(math.Round((p.Y - a.origin.Y) / a.opts.ScaleY)),
	}
}

func (a *ASCII) drawDevice(d core.Device) error {
	tl := a.cell(geometry.Pt(d.Rect.Left, d.Rect.Top))
	br := a.cell(geometry.Pt(d.Rect.Right, d.Rect.Bottom))
	w := max(br.X-tl.X+1, 2)
	h := max(br.Y-tl.Y+1, 2)
	if err := a.canvas.DrawBox(tl.X, tl.Y, w, h); err != nil {
		return err
	}
	if !a.opts.Labels || w <= 2 {
		return nil
	}
	label := []rune(d.ID)
	if len(label) > w-2 {
		label = label[:w-2]
	}
	row := tl.Y + h/2
	if h <= 2 {
		row = tl.Y
	}
	return a.canvas.DrawText(tl.X+1, row, string(label))
}

// drawConnector marks the cells between the device edge and the joint. The
// joint cell itself is left for the cable.
func (a *ASCII) drawConnector(c core.Connector) {
	y := a.cell(c.Joint()).Y
	from := a.cell(geometry.Pt(c.Rect.Left, 0)).X
	to := a.cell(geometry.Pt(c.Rect.Right, 0)).X
	if c.Endpoint.Side == core.Right {
		to--
	} else {
		from++
	}
	for x := from; x <= to; x++ {
		_ = a.canvas.Set(x, y, a.opts.PortMarker)
	}
}

// Draw adds a routed cable to the canvas.
func (a *ASCII) Draw(rc connections.RoutedConnection) error {
	pts := rc.Path.Points()
	cells := make([]canvas.Cell, 0, len(pts))
	for _, p := range pts {
		c := a.cell(p)
		if n := len(cells); n > 0 && cells[n-1] == c {
			continue
		}
		cells = append(cells, c)
	}
	if err := a.canvas.DrawPolyline(cells); err != nil {
		return fmt.Errorf("connection %s: %w", rc.ID(), err)
	}
	return nil
}

// Canvas returns the underlying matrix.
func (a *ASCII) Canvas() *canvas.MatrixCanvas {
	return a.canvas
}

// Lines returns the rendered rows.
func (a *ASCII) Lines() []string {
	return a.canvas.Lines()
}

// String returns the rendered frame.
func (a *ASCII) String() string {
	return a.canvas.String()
}

// Frame draws an already routed scene.
func Frame(scene *connections.Scene, routed []connections.RoutedConnection, opts ASCIIOptions) (*ASCII, error) {
	a, err := NewASCII(scene, opts)
	if err != nil {
		return nil, err
	}
	for _, rc := range routed {
		if err := a.Draw(rc); err != nil {
			return nil, err
		}
	}
	return a, nil
}
