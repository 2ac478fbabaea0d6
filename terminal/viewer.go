// Package terminal previews a routed scene in a tcell screen.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"cablemap/connections"
	"cablemap/core"
	"cablemap/render"
)

// strategyKeys maps digit keys to routers.
var strategyKeys = map[rune]core.Strategy{
	'1': core.StrategyGreedy,
	'2': core.StrategyAStar,
	'3': core.StrategySimple,
}

// Viewer shows an ASCII frame of a scene. Switching strategy re-routes the
// whole scene from scratch.
type Viewer struct {
	screen tcell.Screen
	scene  *connections.Scene
	cfg    core.Config
	opts   render.ASCIIOptions

	lines    []string
	routed   int
	degraded int
	offX     int
	offY     int
	err      error
}

// NewViewer creates a viewer for scene on screen. The screen is initialised
// by Run.
func NewViewer(screen tcell.Screen, scene *connections.Scene, cfg core.Config, opts render.ASCIIOptions) *Viewer {
	return &Viewer{screen: screen, scene: scene, cfg: cfg, opts: opts}
}

// Strategy returns the router currently shown.
func (v *Viewer) Strategy() core.Strategy {
	return v.cfg.Strategy
}

// Offset returns the scroll position in cells.
func (v *Viewer) Offset() (x, y int) {
	return v.offX, v.offY
}

// Reroute routes the scene with strategy and rebuilds the frame.
func (v *Viewer) Reroute(strategy core.Strategy) error {
	cfg := v.cfg
	cfg.Strategy = strategy
	frame, err := render.NewASCII(v.scene, v.opts)
	if err != nil {
		return err
	}
	pass, err := connections.NewPass(cfg, frame)
	if err != nil {
		return err
	}
	routed, err := pass.Route(v.scene)
	if err != nil {
		return err
	}

	v.cfg = cfg
	v.lines = frame.Lines()
	v.routed, v.degraded = len(routed), 0
	for _, rc := range routed {
		if rc.Degraded {
			v.degraded++
		}
	}
	core.Logger().Debug("viewer: rerouted", "strategy", string(strategy), "routed", v.routed, "degraded", v.degraded)
	return nil
}

// Run initialises the screen and shows the scene until the user quits.
func (v *Viewer) Run() error {
	if err := v.screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer v.screen.Fini()
	v.screen.HideCursor()

	if err := v.Reroute(v.cfg.Strategy); err != nil {
		return err
	}
	v.Draw()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if v.HandleEvent(ev) {
			return nil
		}
		v.Draw()
	}
}

// HandleEvent applies one event and reports whether the viewer should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			v.offX = max(v.offX-1, 0)
		case tcell.KeyRight:
			v.offX++
		case tcell.KeyUp:
			v.offY = max(v.offY-1, 0)
		case tcell.KeyDown:
			v.offY++
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' {
				return true
			}
			if s, ok := strategyKeys[r]; ok {
				v.err = v.Reroute(s)
			}
		}
	}
	return false
}

// Draw paints the visible part of the frame and the status line.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	for y := 0; y < h-1 && y+v.offY < len(v.lines); y++ {
		v.putLine(0, y, v.lines[y+v.offY], v.offX, tcell.StyleDefault)
	}
	v.putLine(0, h-1, v.status(), 0, tcell.StyleDefault.Reverse(true))
	for x := runewidth.StringWidth(v.status()); x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}

func (v *Viewer) status() string {
	if v.err != nil {
		return fmt.Sprintf(" %s: %v | q quit", v.cfg.Strategy, v.err)
	}
	return fmt.Sprintf(" %s | %d routed, %d degraded | 1 greedy 2 astar 3 simple | arrows scroll | q quit",
		v.cfg.Strategy, v.routed, v.degraded)
}

// putLine writes s at row y, skipping the first skip columns.
func (v *Viewer) putLine(x, y int, s string, skip int, style tcell.Style) {
	col := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if col >= skip {
			v.screen.SetContent(x+col-skip, y, r, nil, style)
		}
		col += rw
	}
}
