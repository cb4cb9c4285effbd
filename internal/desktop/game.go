// Package desktop runs the game in a native window through ebiten.
package desktop

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

// hudHeight is the strip below the canvas holding the score and start hint.
const hudHeight = 24

var bgColor = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// keyNames maps window keys onto the shared key identifiers.
var keyNames = map[ebiten.Key]input.Key{
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyEnter:      input.KeyEnter,
	ebiten.KeySpace:      input.KeySpace,
}

// Game is an ebiten.Game hosting one session.
type Game struct {
	settings config.Settings
	logger   *log.Logger

	surface *imageSurface
	session *game.Session
	keys    []ebiten.Key
}

// New creates a window game. The session is built on the first Update.
func New(settings config.Settings, logger *log.Logger) *Game {
	return &Game{settings: settings, logger: logger}
}

// WindowSize returns the window size that shows the canvas and HUD unscaled.
func (g *Game) WindowSize() (int, int) {
	return g.settings.CanvasSize, g.settings.CanvasSize + hudHeight
}

func (g *Game) init() error {
	g.surface = newImageSurface(g.settings.CanvasSize)
	opts := game.OptionsFromSettings(g.settings, g.logger)
	g.session = game.NewSession(g.surface, g.surface, opts)
	return g.session.Draw()
}

// Update forwards key presses and advances the session when its timer has fired.
func (g *Game) Update() error {
	if g.session == nil {
		if err := g.init(); err != nil {
			return err
		}
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if k == ebiten.KeyEscape || k == ebiten.KeyQ {
			g.session.Close()
			return ebiten.Termination
		}
		name, ok := keyNames[k]
		if !ok {
			continue
		}
		if err := g.session.HandleKey(name); err != nil {
			return err
		}
	}

	select {
	case <-g.session.Ticks():
		return g.session.Update()
	default:
		return nil
	}
}

// Draw copies the last session frame and the HUD onto the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	if g.surface == nil {
		return
	}
	screen.DrawImage(g.surface.img, nil)

	y := g.settings.CanvasSize + 4
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", g.surface.score), 8, y)
	hint := fmt.Sprintf("[SPACE] %s  [Q] Quit", g.surface.label)
	ebitenutil.DebugPrintAt(screen, hint, g.settings.CanvasSize-len(hint)*6-8, y)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}
