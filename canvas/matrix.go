// Package canvas is a character-cell drawing surface for orthogonal
// diagrams. Lines are stored as arm sets so that crossings, corners and
// T-junctions resolve themselves whatever order they are drawn in.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	ErrOutOfBounds   = errors.New("position out of bounds")
	ErrInvalidSize   = errors.New("invalid canvas size")
	ErrNotOrthogonal = errors.New("segment is not horizontal or vertical")
)

// continuation marks the second cell of a wide character.
const continuation = '\x00'

// Cell is a character position. Origin is top-left, Y grows downward.
type Cell struct {
	X, Y int
}

// MatrixCanvas is a rune matrix with line merging.
//
// A cell holds either pinned text or a set of line arms. Text always wins:
// lines drawn through a label leave it intact.
//
// MatrixCanvas is not safe for concurrent writes.
type MatrixCanvas struct {
	text   [][]rune
	arms   [][]Arms
	width  int
	height int
	style  LineStyle
}

// NewMatrixCanvas creates a blank canvas.
func NewMatrixCanvas(width, height int, style LineStyle) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c := &MatrixCanvas{width: width, height: height, style: style}
	c.text = make([][]rune, height)
	c.arms = make([][]Arms, height)
	for y := range height {
		c.text[y] = make([]rune, width)
		c.arms[y] = make([]Arms, width)
	}
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the character at a position, ' ' outside the canvas.
func (c *MatrixCanvas) Get(x, y int) rune {
	if !c.inBounds(x, y) {
		return ' '
	}
	if r := c.text[y][x]; r != 0 {
		return r
	}
	return c.style.Glyph(c.arms[y][x])
}

// Set places a character. Line glyphs merge with the lines already in the
// cell; anything else pins the cell as text.
func (c *MatrixCanvas) Set(x, y int, r rune) error {
	if !c.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if a, ok := ArmsOf(r); ok {
		return c.AddArms(x, y, a)
	}
	c.text[y][x] = r
	return nil
}

// AddArms merges arms into a cell. Text cells are left alone.
func (c *MatrixCanvas) AddArms(x, y int, a Arms) error {
	if !c.inBounds(x, y) {
		return ErrOutOfBounds
	}
	if c.text[y][x] == 0 {
		c.arms[y][x] |= a
	}
	return nil
}

// addClipped is AddArms that ignores positions off the canvas.
func (c *MatrixCanvas) addClipped(x, y int, a Arms) {
	_ = c.AddArms(x, y, a)
}

// Clear resets the canvas to blanks.
func (c *MatrixCanvas) Clear() {
	for y := range c.height {
		clear(c.text[y])
		clear(c.arms[y])
	}
}

// DrawHorizontalLine draws from x1 to x2 on row y. The end cells only get
// the arm pointing inward so they join whatever meets them there.
func (c *MatrixCanvas) DrawHorizontalLine(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		var a Arms
		if x > x1 {
			a |= ArmWest
		}
		if x < x2 {
			a |= ArmEast
		}
		c.addClipped(x, y, a)
	}
}

// DrawVerticalLine draws from y1 to y2 in column x.
func (c *MatrixCanvas) DrawVerticalLine(x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		var a Arms
		if y > y1 {
			a |= ArmNorth
		}
		if y < y2 {
			a |= ArmSouth
		}
		c.addClipped(x, y, a)
	}
}

// DrawPolyline draws consecutive orthogonal segments. Corners come from the
// arm union at each shared cell.
func (c *MatrixCanvas) DrawPolyline(cells []Cell) error {
	for i := 0; i+1 < len(cells); i++ {
		a, b := cells[i], cells[i+1]
		switch {
		case a.Y == b.Y:
			c.DrawHorizontalLine(a.X, b.X, a.Y)
		case a.X == b.X:
			c.DrawVerticalLine(a.X, a.Y, b.Y)
		default:
			return fmt.Errorf("%w: %v -> %v", ErrNotOrthogonal, a, b)
		}
	}
	return nil
}

// DrawBox draws a rectangle outline. Boxes may extend past the canvas; the
// visible part is drawn.
func (c *MatrixCanvas) DrawBox(x, y, width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: box %dx%d", ErrInvalidSize, width, height)
	}
	right, bottom := x+width-1, y+height-1
	c.DrawHorizontalLine(x, right, y)
	c.DrawHorizontalLine(x, right, bottom)
	c.DrawVerticalLine(x, y, bottom)
	c.DrawVerticalLine(right, y, bottom)
	return nil
}

// DrawText writes text starting at (x, y), clipped to the canvas. Wide
// characters take two cells.
func (c *MatrixCanvas) DrawText(x, y int, text string) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}
	cur := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cur+w > c.width {
			break
		}
		if cur >= 0 {
			c.text[y][cur] = r
			if w == 2 {
				c.text[y][cur+1] = continuation
			}
		}
		cur += w
	}
	return nil
}

// Lines returns the rows of the canvas, trailing blanks trimmed.
func (c *MatrixCanvas) Lines() []string {
	rows := make([]string, c.height)
	var sb strings.Builder
	for y := range c.height {
		sb.Reset()
		for x := range c.width {
			if c.text[y][x] == continuation {
				continue
			}
			sb.WriteRune(c.Get(x, y))
		}
		rows[y] = strings.TrimRight(sb.String(), " ")
	}
	return rows
}

// String returns the canvas as newline-separated rows.
func (c *MatrixCanvas) String() string {
	return strings.Join(c.Lines(), "\n")
}
