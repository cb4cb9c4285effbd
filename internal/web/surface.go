package web

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// frameSurface records draw calls and ships them as one frame message on Present.
// Score and label updates are queued and sent ahead of the frame.
type frameSurface struct {
	size    int
	ops     []DrawOp
	pending []Message
	send    func(Message) error
}

func newFrameSurface(size int, send func(Message) error) *frameSurface {
	return &frameSurface{size: size, send: send}
}

func (f *frameSurface) Size() (int, int) {
	return f.size, f.size
}

func (f *frameSurface) Clear() {
	f.ops = append(f.ops[:0], DrawOp{Op: OpClear, W: f.size, H: f.size})
}

func (f *frameSurface) FillRect(x, y, w, h int, c color.Color) {
	css, ok := cssColor(c)
	if !ok {
		return
	}
	f.ops = append(f.ops, DrawOp{Op: OpRect, X: x, Y: y, W: w, H: h, Color: css})
}

func (f *frameSurface) FillText(text string, x, y int, c color.Color) {
	css, ok := cssColor(c)
	if !ok {
		return
	}
	f.ops = append(f.ops, DrawOp{Op: OpText, X: x, Y: y, Color: css, Text: text})
}

func (f *frameSurface) SetScore(score int) {
	f.pending = append(f.pending, ScoreMessage{Event: EventScore, Score: score})
}

func (f *frameSurface) SetStartLabel(label string) {
	f.pending = append(f.pending, LabelMessage{Event: EventLabel, Label: label})
}

func (f *frameSurface) Present() error {
	for _, m := range f.pending {
		if err := f.send(m); err != nil {
			return err
		}
	}
	f.pending = f.pending[:0]

	ops := make([]DrawOp, len(f.ops))
	copy(ops, f.ops)
	return f.send(FrameMessage{Event: EventFrame, Ops: ops})
}

// cssColor formats c for a canvas fillStyle: #rrggbb when opaque, rgba() otherwise.
// Fully transparent colours report false.
func cssColor(c color.Color) (string, bool) {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return "", false
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "", false
	}
	if a == 0xffff {
		return cf.Hex(), true
	}
	r, g, b := cf.RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%.2f)", r, g, b, float64(a)/0xffff), true
}
