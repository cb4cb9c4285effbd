package draw

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// background is the colour translucent fills blend onto when a pixel is empty.
var background = colorful.Color{R: 0, G: 0, B: 0}

// pixel is one terminal sub-pixel.
type pixel struct {
	c   colorful.Color
	set bool
}

// cell is the pair of sub-pixels shown by one terminal character.
type cell struct {
	top, bottom pixel
}

// Canvas is a colour drawing buffer with 2x vertical resolution using half-block characters.
// Logical pixels are scaled by a whole factor so grid cells stay evenly sized.
type Canvas struct {
	termWidth      int     // Terminal columns used by the canvas
	termHeight     int     // Terminal rows used by the canvas
	subPixelHeight int     // termHeight * 2
	pixels         []pixel // Flat slice: [y * termWidth + x]
	prev           []cell  // Last rendered frame, for diffing
	forceRedraw    bool

	logicalWidth  int
	logicalHeight int
	scale         int

	// Offset for centering the render area when the terminal is larger than needed.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	profile   termenv.Profile
	renderBuf strings.Builder
}

// NewCanvas creates a canvas for the given logical size at scale 1 with no offset.
func NewCanvas(logicalWidth, logicalHeight int) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		profile:       termenv.TrueColor,
	}
	c.Resize(logicalWidth, (logicalHeight+1)/2)
	return c
}

// SetProfile selects the colour escapes used by Render.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p != c.profile {
		c.profile = p
		c.forceRedraw = true
	}
}

// Resize fits the canvas into termCols x termRows, choosing the largest whole scale
// that fits and centering the result. A terminal that is too small clips the canvas.
func (c *Canvas) Resize(termCols, termRows int) {
	scale := min(termCols/c.logicalWidth, termRows*2/c.logicalHeight)
	if scale < 1 {
		scale = 1
	}

	width := min(c.logicalWidth*scale, termCols)
	height := min((c.logicalHeight*scale+1)/2, termRows)
	width = max(width, 0)
	height = max(height, 0)

	if width != c.termWidth || height != c.termHeight || scale != c.scale {
		c.termWidth = width
		c.termHeight = height
		c.subPixelHeight = height * 2
		c.scale = scale
		c.pixels = make([]pixel, c.subPixelHeight*width)
		c.prev = make([]cell, height*width)
	}

	c.offsetCol = max((termCols-width)/2, 0)
	c.offsetRow = max((termRows-height)/2, 0)
	c.forceRedraw = true
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Scale returns terminal sub-pixels per logical pixel.
func (c *Canvas) Scale() int {
	return c.scale
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, not just the changed ones.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// setPixel blends col at actual sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	p := &c.pixels[y*c.termWidth+x]
	if alpha >= 1 {
		p.c = col
		p.set = true
		return
	}
	base := background
	if p.set {
		base = p.c
	}
	p.c = base.BlendRgb(col, alpha)
	p.set = true
}

// FillRect fills a rectangle given in logical coordinates. Translucent colours
// blend with what is already drawn.
func (c *Canvas) FillRect(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	cf, alpha, ok := toColorful(col)
	if !ok {
		return
	}

	x0, y0 := x*c.scale, y*c.scale
	x1, y1 := (x+w)*c.scale, (y+h)*c.scale
	for py := max(y0, 0); py < min(y1, c.subPixelHeight); py++ {
		for px := max(x0, 0); px < min(x1, c.termWidth); px++ {
			c.setPixel(px, py, cf, alpha)
		}
	}
}

// Pixel returns the colour at logical (x, y) and whether anything is drawn there.
func (c *Canvas) Pixel(x, y int) (colorful.Color, bool) {
	px, py := x*c.scale, y*c.scale
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return colorful.Color{}, false
	}
	p := c.pixels[py*c.termWidth+px]
	return p.c, p.set
}

// toColorful converts a color.Color into a straight (non-premultiplied) colour and its alpha.
func toColorful(col color.Color) (colorful.Color, float64, bool) {
	_, _, _, a := col.RGBA()
	if a == 0 {
		return colorful.Color{}, 0, false
	}
	cf, ok := colorful.MakeColor(col)
	if !ok {
		return colorful.Color{}, 0, false
	}
	return cf, float64(a) / 0xffff, true
}

// Render writes the cells that changed since the last Render using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cur := cell{top: c.pixels[topOffset+col], bottom: c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if !c.forceRedraw && c.prev[idx] == cur {
				continue // Unchanged
			}
			c.prev[idx] = cur

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%s", row+1+c.offsetRow, col+1+c.offsetCol, c.cellString(cur))
		}
	}
	c.forceRedraw = false

	io.WriteString(w, c.renderBuf.String())
}

// cellString returns the styled character for one terminal cell.
func (c *Canvas) cellString(cl cell) string {
	p := c.profile
	switch {
	case cl.top.set && cl.bottom.set:
		if cl.top.c == cl.bottom.c {
			return p.String(string(BlockFull)).Foreground(p.Color(cl.top.c.Hex())).String()
		}
		return p.String(string(BlockUpperHalf)).
			Foreground(p.Color(cl.top.c.Hex())).
			Background(p.Color(cl.bottom.c.Hex())).
			String()
	case cl.top.set:
		return p.String(string(BlockUpperHalf)).Foreground(p.Color(cl.top.c.Hex())).String()
	case cl.bottom.set:
		return p.String(string(BlockLowerHalf)).Foreground(p.Color(cl.bottom.c.Hex())).String()
	default:
		return string(BlockEmpty)
	}
}

// RenderBorder draws a box border around the canvas area when there is room for it.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() int {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() int {
	return c.logicalHeight
}

// TerminalWidth returns the terminal column count used by the canvas.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count used by the canvas.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row),
// offsets included. Useful for placing text overlays over canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y int) (col, row int) {
	px := x * c.scale
	py := y * c.scale
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}
