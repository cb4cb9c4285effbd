package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Face metrics of basicfont.Face7x13.
const (
	glyphWidth  = 7
	glyphHeight = 13
)

// imageSurface draws the session into an offscreen image that Game.Draw copies to the window.
type imageSurface struct {
	img  *ebiten.Image
	size int

	score int
	label string
}

func newImageSurface(size int) *imageSurface {
	return &imageSurface{img: ebiten.NewImage(size, size), size: size}
}

func (s *imageSurface) Size() (int, int) {
	return s.size, s.size
}

func (s *imageSurface) Clear() {
	s.img.Clear()
}

func (s *imageSurface) FillRect(x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *imageSurface) FillText(str string, x, y int, c color.Color) {
	// text.Draw positions the baseline; shift so the line is centred on (x, y).
	bx := x - len(str)*glyphWidth/2
	by := y + glyphHeight/2
	text.Draw(s.img, str, basicfont.Face7x13, bx, by, c)
}

// Present is a no-op: the frame reaches the window on the next Game.Draw.
func (s *imageSurface) Present() error {
	return nil
}

func (s *imageSurface) SetScore(score int) {
	s.score = score
}

func (s *imageSurface) SetStartLabel(label string) {
	s.label = label
}
