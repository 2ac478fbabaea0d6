package render

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"cablemap/connections"
	"cablemap/geometry"
)

// PNGOptions controls raster rendering. Colours are hex strings.
type PNGOptions struct {
	Scale     float64 // pixels per canvas unit
	Margin    float64 // canvas units around the scene
	LineWidth float64

	Background   string
	DeviceFill   string
	DeviceBorder string
	Connector    string
	Wire         string
	Degraded     string
}

// DefaultPNGOptions returns a light theme at one pixel per unit.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		Scale:        1,
		Margin:       40,
		LineWidth:    2,
		Background:   "#ffffff",
		DeviceFill:   "#e8eef5",
		DeviceBorder: "#34495e",
		Connector:    "#2c3e50",
		Wire:         "#2471a3",
		Degraded:     "#c0392b",
	}
}

// PNG renders a scene with gogpu/gg.
type PNG struct {
	ctx    *gg.Context
	opts   PNGOptions
	origin geometry.Point
}

var _ connections.Sink = (*PNG)(nil)

// NewPNG creates an image sized to the scene and draws its devices and
// connectors.
func NewPNG(scene *connections.Scene, opts PNGOptions) (*PNG, error) {
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("invalid png scale %g", opts.Scale)
	}
	b := scene.Bounds().Inflate(opts.Margin)
	w := int(math.Ceil(b.Width() * opts.Scale))
	h := int(math.Ceil(b.Height() * opts.Scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid png size %dx%d", w, h)
	}

	p := &PNG{ctx: gg.NewContext(w, h), opts: opts, origin: geometry.Pt(b.Left, b.Top)}
	p.ctx.ClearWithColor(gg.Hex(opts.Background))

	for _, d := range scene.Devices {
		if err := p.rect(d.Rect, opts.DeviceFill, opts.DeviceBorder); err != nil {
			return nil, fmt.Errorf("draw device %s: %w", d.ID, err)
		}
	}
	for _, c := range scene.Connectors {
		if err := p.rect(c.Rect, opts.Connector, opts.Connector); err != nil {
			return nil, fmt.Errorf("draw connector %s: %w", c.Endpoint.Key(), err)
		}
	}
	return p, nil
}

func (p *PNG) px(pt geometry.Point) (float64, float64) {
	return (pt.X - p.origin.X) * p.opts.Scale, (pt.Y - p.origin.Y) * p.opts.Scale
}

func (p *PNG) rect(r geometry.Rect, fill, border string) error {
	x, y := p.px(geometry.Pt(r.Left, r.Top))
	w, h := r.Width()*p.opts.Scale, r.Height()*p.opts.Scale

	p.ctx.SetHexColor(fill)
	p.ctx.DrawRectangle(x, y, w, h)
	if err := p.ctx.Fill(); err != nil {
		return err
	}
	p.ctx.SetHexColor(border)
	p.ctx.SetLineWidth(1)
	p.ctx.DrawRectangle(x, y, w, h)
	return p.ctx.Stroke()
}

// Draw strokes a routed cable. Degraded routes are dashed.
func (p *PNG) Draw(rc connections.RoutedConnection) error {
	pts := rc.Path.Points()
	if len(pts) < 2 {
		return nil
	}

	if rc.Degraded {
		p.ctx.SetHexColor(p.opts.Degraded)
		p.ctx.SetDash(6, 4)
		defer p.ctx.ClearDash()
	} else {
		p.ctx.SetHexColor(p.opts.Wire)
	}
	p.ctx.SetLineWidth(p.opts.LineWidth)

	p.ctx.MoveTo(p.px(pts[0]))
	for _, pt := range pts[1:] {
		p.ctx.LineTo(p.px(pt))
	}
	if err := p.ctx.Stroke(); err != nil {
		return fmt.Errorf("stroke connection %s: %w", rc.ID(), err)
	}
	return nil
}

// Size returns the image size in pixels.
func (p *PNG) Size() (width, height int) {
	return p.ctx.Width(), p.ctx.Height()
}

// Encode writes the image as PNG.
func (p *PNG) Encode(w io.Writer) error {
	if err := p.ctx.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Close releases the drawing context.
func (p *PNG) Close() error {
	return p.ctx.Close()
}
