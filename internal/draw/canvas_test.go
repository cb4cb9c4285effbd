package draw

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	green = color.RGBA{G: 0xff, A: 0xff}
)

func TestCanvasFillRect(t *testing.T) {
	c := NewCanvas(6, 6)
	c.FillRect(1, 1, 2, 2, red)

	tests := []struct {
		x, y    int
		wantSet bool
	}{
		{x: 0, y: 0, wantSet: false},
		{x: 1, y: 1, wantSet: true},
		{x: 2, y: 2, wantSet: true},
		{x: 3, y: 2, wantSet: false},
		{x: 2, y: 3, wantSet: false},
	}
	for _, tc := range tests {
		_, set := c.Pixel(tc.x, tc.y)
		if set != tc.wantSet {
			t.Errorf("Pixel(%d,%d) set = %v, want %v", tc.x, tc.y, set, tc.wantSet)
		}
	}

	got, _ := c.Pixel(1, 1)
	if got.Hex() != "#ff0000" {
		t.Fatalf("Pixel(1,1) = %s, want #ff0000", got.Hex())
	}
}

func TestCanvasFillRectClips(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillRect(-2, -2, 3, 3, red)
	c.FillRect(3, 3, 5, 5, red)
	c.FillRect(10, 10, 2, 2, red)

	if _, set := c.Pixel(0, 0); !set {
		t.Fatal("partially visible rect should cover (0,0)")
	}
	if _, set := c.Pixel(3, 3); !set {
		t.Fatal("partially visible rect should cover (3,3)")
	}
	if _, set := c.Pixel(1, 1); set {
		t.Fatal("(1,1) should stay empty")
	}
}

func TestCanvasBlend(t *testing.T) {
	c := NewCanvas(2, 2)
	c.FillRect(0, 0, 2, 2, red)
	c.FillRect(0, 0, 1, 2, color.NRGBA{A: 0x80})

	shaded, _ := c.Pixel(0, 0)
	if math.Abs(shaded.R-0.5) > 0.01 || shaded.G != 0 || shaded.B != 0 {
		t.Fatalf("shaded pixel = %+v, want half red", shaded)
	}
	plain, _ := c.Pixel(1, 0)
	if plain.Hex() != "#ff0000" {
		t.Fatalf("unshaded pixel = %s, want #ff0000", plain.Hex())
	}
}

func TestCanvasRenderDiff(t *testing.T) {
	c := NewCanvas(2, 2)
	c.FillRect(0, 0, 1, 1, red)

	var buf bytes.Buffer
	c.Render(&buf)
	first := buf.String()
	if !strings.Contains(first, "\033[1;1H") || !strings.ContainsRune(first, BlockUpperHalf) {
		t.Fatalf("first render %q should draw an upper half block at 1;1", first)
	}
	if !strings.Contains(first, "38;2;255;0;0") {
		t.Fatalf("first render %q should carry a truecolor red foreground", first)
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame rendered %q", buf.String())
	}

	c.Clear()
	c.FillRect(0, 0, 1, 2, red)
	c.FillRect(1, 0, 1, 1, red)
	c.FillRect(1, 1, 1, 1, green)
	buf.Reset()
	c.Render(&buf)
	out := buf.String()
	if !strings.ContainsRune(out, BlockFull) {
		t.Fatalf("render %q should use a full block for equal halves", out)
	}
	if !strings.Contains(out, "48;2;0;255;0") {
		t.Fatalf("render %q should carry a green background for the mixed cell", out)
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if strings.Count(buf.String(), "H") < 2 {
		t.Fatalf("forced redraw %q should rewrite every cell", buf.String())
	}
}

func TestCanvasAsciiProfile(t *testing.T) {
	c := NewCanvas(2, 2)
	c.SetProfile(termenv.Ascii)
	c.FillRect(0, 0, 2, 2, red)

	var buf bytes.Buffer
	c.Render(&buf)
	if strings.Contains(buf.String(), "38;") {
		t.Fatalf("ascii render %q should carry no colour", buf.String())
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(20, 20)

	c.Resize(80, 40)
	if c.Scale() != 4 {
		t.Fatalf("Scale() = %d, want 4", c.Scale())
	}
	if c.TerminalWidth() != 80 || c.TerminalHeight() != 40 {
		t.Fatalf("terminal size = %dx%d, want 80x40", c.TerminalWidth(), c.TerminalHeight())
	}

	c.Resize(50, 20)
	if c.Scale() != 2 || c.TerminalWidth() != 40 || c.TerminalHeight() != 20 {
		t.Fatalf("scale=%d size=%dx%d, want 2 40x20", c.Scale(), c.TerminalWidth(), c.TerminalHeight())
	}
	if c.OffsetCol() != 5 || c.OffsetRow() != 0 {
		t.Fatalf("offset = %d,%d, want 5,0", c.OffsetCol(), c.OffsetRow())
	}

	c.Resize(10, 4)
	if c.Scale() != 1 || c.TerminalWidth() != 10 || c.TerminalHeight() != 4 {
		t.Fatalf("tiny terminal: scale=%d size=%dx%d, want 1 10x4", c.Scale(), c.TerminalWidth(), c.TerminalHeight())
	}
	c.FillRect(15, 15, 5, 5, red) // off-screen, must not panic
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Resize(50, 20)
	col, row := c.LogicalToTerminal(10, 10)
	if col != 26 || row != 11 {
		t.Fatalf("LogicalToTerminal(10,10) = %d,%d, want 26,11", col, row)
	}
}

func TestProfileForTerm(t *testing.T) {
	tests := []struct {
		term    string
		environ []string
		want    termenv.Profile
	}{
		{term: "xterm-256color", want: termenv.ANSI256},
		{term: "xterm-direct", want: termenv.TrueColor},
		{term: "xterm", environ: []string{"LANG=C", "COLORTERM=truecolor"}, want: termenv.TrueColor},
		{term: "vt100", want: termenv.ANSI},
		{term: "dumb", want: termenv.Ascii},
		{term: "", want: termenv.Ascii},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			if got := ProfileForTerm(tc.term, tc.environ); got != tc.want {
				t.Fatalf("ProfileForTerm(%q) = %v, want %v", tc.term, got, tc.want)
			}
		})
	}
}

func newTestTerminal(buf *bytes.Buffer, cols, rows int) *Terminal {
	renderer := lipgloss.NewRenderer(buf)
	renderer.SetColorProfile(termenv.TrueColor)
	return NewTerminal(buf, 20, TerminalOptions{
		TermSizeFunc: func() (int, int, error) { return cols, rows, nil },
		Renderer:     renderer,
	})
}

func TestTerminalPresent(t *testing.T) {
	var buf bytes.Buffer
	term := newTestTerminal(&buf, 40, 21)

	if w, h := term.Size(); w != 20 || h != 20 {
		t.Fatalf("Size() = %dx%d, want 20x20", w, h)
	}

	term.SetScore(30)
	term.SetStartLabel("Restart")
	term.Clear()
	term.FillRect(0, 0, 2, 2, red)
	term.FillText("Game Over!", 10, 10, color.White)
	if err := term.Present(); err != nil {
		t.Fatalf("Present() = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Score: 30", "[SPACE] Restart", "Game Over!", "\033[2J"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// The next frame must repaint the cells the text covered.
	buf.Reset()
	term.Clear()
	term.FillRect(0, 0, 2, 2, red)
	if err := term.Present(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Game Over!") {
		t.Fatal("text overlay leaked into the next frame")
	}
	if !strings.ContainsRune(buf.String(), BlockEmpty) {
		t.Fatal("frame after an overlay should repaint empty cells")
	}
	if strings.Contains(buf.String(), "Score:") {
		t.Fatal("unchanged HUD was redrawn")
	}
}

func TestTerminalSync(t *testing.T) {
	var buf bytes.Buffer
	cols, rows := 40, 21
	term := NewTerminal(&buf, 20, TerminalOptions{
		TermSizeFunc: func() (int, int, error) { return cols, rows, nil },
		Renderer:     lipgloss.NewRenderer(&buf),
	})

	if term.Sync() {
		t.Fatal("Sync() reported a change without a resize")
	}
	cols, rows = 80, 41
	if !term.Sync() {
		t.Fatal("Sync() missed a resize")
	}
	if term.Canvas().Scale() != 4 {
		t.Fatalf("Scale() after resize = %d, want 4", term.Canvas().Scale())
	}
}
