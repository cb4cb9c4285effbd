package draw

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// hudRows is the number of terminal rows kept below the canvas for the score line.
const hudRows = 1

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	TermSizeFunc TermSizeFunc
	// Renderer styles the HUD and decides the colour profile. Defaults to lipgloss's stdout renderer.
	Renderer *lipgloss.Renderer
}

type overlayText struct {
	text string
	x, y int
	c    color.Color
}

// Terminal is a game surface and scoreboard on an ANSI terminal.
type Terminal struct {
	canvas   *Canvas
	out      *ChunkWriter
	sizeFunc TermSizeFunc
	renderer *lipgloss.Renderer

	cols, rows  int
	texts       []overlayText
	hadTexts    bool
	borderDirty bool

	score    int
	label    string
	hudDirty bool

	scoreStyle lipgloss.Style
	hintStyle  lipgloss.Style
}

// NewTerminal creates a terminal surface with a logicalSize x logicalSize canvas writing to w.
func NewTerminal(w io.Writer, logicalSize int, opts TerminalOptions) *Terminal {
	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	canvas := NewCanvas(logicalSize, logicalSize)
	canvas.SetProfile(renderer.ColorProfile())

	t := &Terminal{
		canvas:     canvas,
		out:        NewChunkWriter(w),
		sizeFunc:   sizeFunc,
		renderer:   renderer,
		hudDirty:   true,
		scoreStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ecc71")),
		hintStyle:  renderer.NewStyle().Faint(true),
	}
	t.Sync()
	return t
}

// Sync re-reads the terminal size and refits the canvas. It reports whether the size changed.
// A failing size lookup keeps the previous layout.
func (t *Terminal) Sync() bool {
	cols, rows, err := t.sizeFunc()
	if err != nil || (cols == t.cols && rows == t.rows) {
		return false
	}
	t.cols, t.rows = cols, rows
	t.canvas.Resize(cols, max(rows-hudRows, 1))
	t.out.WriteString("\033[H\033[2J")
	t.borderDirty = true
	t.hudDirty = true
	return true
}

// Canvas returns the underlying canvas.
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Size returns the logical canvas size.
func (t *Terminal) Size() (int, int) {
	return t.canvas.LogicalWidth(), t.canvas.LogicalHeight()
}

// Clear empties the canvas and drops text overlays.
func (t *Terminal) Clear() {
	t.canvas.Clear()
	t.texts = t.texts[:0]
}

// FillRect fills a logical rectangle.
func (t *Terminal) FillRect(x, y, w, h int, c color.Color) {
	t.canvas.FillRect(x, y, w, h, c)
}

// FillText queues text centred on logical (x, y), drawn over the canvas on Present.
func (t *Terminal) FillText(text string, x, y int, c color.Color) {
	t.texts = append(t.texts, overlayText{text: text, x: x, y: y, c: c})
}

// SetScore updates the score shown on the HUD line.
func (t *Terminal) SetScore(score int) {
	t.score = score
	t.hudDirty = true
}

// SetStartLabel updates the start hint shown on the HUD line.
func (t *Terminal) SetStartLabel(label string) {
	t.label = label
	t.hudDirty = true
}

// Present renders changed cells, overlays and the HUD, then flushes.
func (t *Terminal) Present() error {
	// Text from the previous frame covered canvas cells the diff thinks are unchanged.
	if t.hadTexts {
		t.canvas.ForceRedraw()
	}
	t.canvas.Render(t.out)

	if t.borderDirty {
		t.canvas.RenderBorder(t.out)
		t.borderDirty = false
	}

	for _, txt := range t.texts {
		t.drawText(txt)
	}
	t.hadTexts = len(t.texts) > 0

	if t.hudDirty {
		t.drawHUD()
		t.hudDirty = false
	}

	return t.out.Flush()
}

func (t *Terminal) drawText(txt overlayText) {
	style := t.renderer.NewStyle().Bold(true)
	if cf, _, ok := toColorful(txt.c); ok {
		style = style.Foreground(lipgloss.Color(cf.Hex()))
	}
	col, row := t.canvas.LogicalToTerminal(txt.x, txt.y)
	col = max(col-lipgloss.Width(txt.text)/2, 1)
	t.out.WriteAt(col, row, style.Render(txt.text))
}

// drawHUD writes "Score: N" on the left and the start hint on the right of the row below the canvas.
func (t *Terminal) drawHUD() {
	row := t.rows
	if row <= 0 {
		row = t.canvas.OffsetRow() + t.canvas.TerminalHeight() + 1
	}
	left := t.canvas.OffsetCol() + 1

	score := t.scoreStyle.Render(fmt.Sprintf("Score: %d", t.score))
	hint := t.hintStyle.Render(fmt.Sprintf("[SPACE] %s  [Q] Quit", t.label))

	t.out.EraseLine(row)
	t.out.WriteAt(left, row, score)
	right := max(left+t.canvas.TerminalWidth()-lipgloss.Width(hint), left+lipgloss.Width(score)+2)
	t.out.WriteAt(right, row, hint)
}
