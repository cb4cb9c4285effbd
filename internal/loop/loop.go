// Package loop hosts a game session on a terminal: keys in, ANSI frames out.
package loop

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/input"
)

// Options configures a terminal game.
type Options struct {
	Settings     config.Settings // Zero value means config.Default()
	TermSizeFunc draw.TermSizeFunc
	Renderer     *lipgloss.Renderer
	Logger       *log.Logger
	Rand         *rand.Rand
}

var (
	_ game.Surface    = (*draw.Terminal)(nil)
	_ game.Scoreboard = (*draw.Terminal)(nil)
)

// Run plays one session on the terminal behind r and w until the player quits,
// the input ends or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	settings := opts.Settings
	if settings == (config.Settings{}) {
		settings = config.Default()
	}

	stream := input.NewStream(r)
	defer stream.Close()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	term := draw.NewTerminal(w, settings.GridSize*settings.TerminalTileSize, draw.TerminalOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Renderer:     opts.Renderer,
	})

	sessionOpts := game.OptionsFromSettings(settings, opts.Logger)
	sessionOpts.Rand = opts.Rand
	session := game.NewSession(term, term, sessionOpts)
	defer session.Close()

	if err := session.Draw(); err != nil {
		return err
	}

	resize := time.NewTicker(config.ResizePollInterval)
	defer resize.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop

		case <-session.Ticks():
			if err := session.Update(); err != nil {
				return fmt.Errorf("update: %w", err)
			}

		case k, ok := <-stream.Keys():
			if !ok {
				if err := stream.Err(); err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				break loop
			}
			if isQuitKey(k) {
				break loop
			}
			if err := session.HandleKey(k); err != nil {
				return err
			}

		case <-resize.C:
			if term.Sync() {
				if err := session.Draw(); err != nil {
					return err
				}
			}
		}
	}

	draw.ClearScreen(w)
	return nil
}

// isQuitKey reports whether k ends the terminal game.
func isQuitKey(k input.Key) bool {
	switch k {
	case "q", "Q", input.KeyCtrlC:
		return true
	}
	return false
}
