package game

import "image/color"

// Surface is the pixel canvas a session draws on.
// Coordinates are canvas pixels; the session scales grid cells by Size()/gridSize.
type Surface interface {
	Size() (width, height int)
	Clear()
	FillRect(x, y, w, h int, c color.Color)
	// FillText draws text centred on (x, y).
	FillText(text string, x, y int, c color.Color)
	// Present makes the drawn frame visible.
	Present() error
}

// Scoreboard receives the text shown next to the canvas.
type Scoreboard interface {
	SetScore(score int)
	SetStartLabel(label string)
}

// Palette
var (
	HeadColor  = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	BodyColor  = color.RGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	FoodColor  = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	ShadeColor = color.NRGBA{R: 0, G: 0, B: 0, A: 0x80}
	TextColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Labels shown on the start control.
const (
	LabelStart    = "Start"
	LabelRestart  = "Restart"
	GameOverTitle = "Game Over!"
)

// nopScoreboard is used when a host has nowhere to show the score.
type nopScoreboard struct{}

func (nopScoreboard) SetScore(int)          {}
func (nopScoreboard) SetStartLabel(string) {}
