// Package game runs a snake session: food, score, the tick timer and the
// Idle -> Running -> GameOver state machine, drawing through a Surface.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/snake"
)

// Phase is the session's position in its state machine.
type Phase int

const (
	PhaseIdle     Phase = iota // Timer stopped, fresh snake
	PhaseRunning               // Timer running
	PhaseGameOver              // Timer stopped after a collision
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Options configures a session. Zero fields take the defaults from package config.
type Options struct {
	GridSize       int
	TickInterval   time.Duration
	ScoreIncrement int
	Rand           *rand.Rand
	Logger         *log.Logger
}

// OptionsFromSettings builds session options from loaded settings.
func OptionsFromSettings(s config.Settings, logger *log.Logger) Options {
	return Options{
		GridSize:       s.GridSize,
		TickInterval:   s.TickInterval,
		ScoreIncrement: s.ScoreIncrement,
		Logger:         logger,
	}
}

func (o *Options) setDefaults() {
	if o.GridSize <= 0 {
		o.GridSize = config.GridSize
	}
	if o.TickInterval <= 0 {
		o.TickInterval = config.TickInterval
	}
	if o.ScoreIncrement == 0 {
		o.ScoreIncrement = config.ScoreIncrement
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Session is one game: a snake, its food, the score and the tick timer.
// A session is not safe for concurrent use; the host loop owns it and
// calls Update, HandleKey and Draw from a single goroutine.
type Session struct {
	opts    Options
	surface Surface
	board   Scoreboard
	log     *log.Logger

	snake    *snake.Snake
	food     grid.Position
	score    int
	phase    Phase
	gameOver bool
	ticker   *time.Ticker
	placer   *foodPlacer
}

// NewSession creates an idle session drawing on surface. board may be nil.
func NewSession(surface Surface, board Scoreboard, opts Options) *Session {
	opts.setDefaults()
	if board == nil {
		board = nopScoreboard{}
	}
	s := &Session{
		opts:    opts,
		surface: surface,
		board:   board,
		log:     opts.Logger,
		snake:   snake.New(),
		placer:  newFoodPlacer(opts.GridSize, opts.Rand),
	}
	s.food, _ = s.placer.place(s.snake)
	s.board.SetScore(0)
	s.board.SetStartLabel(LabelStart)
	return s
}

// Update runs one tick: move, eat, collide, render. It does nothing unless the session is running.
// The returned error comes from presenting the frame.
func (s *Session) Update() error {
	if s.phase != PhaseRunning {
		return nil
	}

	s.snake.Move()

	if s.snake.Head() == s.food {
		s.snake.Grow()
		s.score += s.opts.ScoreIncrement
		s.board.SetScore(s.score)

		food, ok := s.placer.place(s.snake)
		if !ok {
			s.log.Debug("board full", "score", s.score, "length", s.snake.Len())
			return s.endGame()
		}
		s.food = food
	}

	if s.snake.CheckCollision(s.opts.GridSize) {
		return s.endGame()
	}

	return s.Draw()
}

// endGame stops the timer and renders the game-over frame.
func (s *Session) endGame() error {
	s.stopTimer()
	s.gameOver = true
	s.phase = PhaseGameOver
	s.log.Debug("game over", "score", s.score, "head", s.snake.Head())
	return s.Draw()
}

// Start begins ticking if the timer is not already running, clearing any game-over state.
func (s *Session) Start() {
	if s.ticker != nil {
		return
	}
	s.gameOver = false
	s.ticker = time.NewTicker(s.opts.TickInterval)
	s.phase = PhaseRunning
	s.board.SetStartLabel(LabelRestart)
	s.log.Debug("session started", "interval", s.opts.TickInterval)
}

// Reset stops the timer and restores the starting snake, food and score.
func (s *Session) Reset() {
	s.stopTimer()
	s.snake = snake.New()
	s.food, _ = s.placer.place(s.snake)
	s.score = 0
	s.board.SetScore(0)
	s.gameOver = false
	s.phase = PhaseIdle
	s.log.Debug("session reset")
}

// PressStart is the start control: a running or finished game is reset first, then started.
func (s *Session) PressStart() error {
	if s.ticker != nil || s.gameOver {
		s.Reset()
	}
	s.Start()
	return s.Draw()
}

// HandleKey steers the snake or presses start. Unrecognised keys are ignored.
func (s *Session) HandleKey(k input.Key) error {
	if d, ok := DirectionForKey(k); ok {
		s.snake.SetDirection(d)
		return nil
	}
	if IsStartKey(k) {
		return s.PressStart()
	}
	return nil
}

// Ticks returns the timer channel, or nil while the timer is stopped.
func (s *Session) Ticks() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C
}

// Run drives the session from ticks and keys until ctx is cancelled or keys is closed.
func (s *Session) Run(ctx context.Context, keys <-chan input.Key) error {
	defer s.Close()

	if err := s.Draw(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.Ticks():
			if err := s.Update(); err != nil {
				return err
			}
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			if err := s.HandleKey(k); err != nil {
				return err
			}
		}
	}
}

// Close releases the timer.
func (s *Session) Close() {
	s.stopTimer()
}

func (s *Session) stopTimer() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Food returns the food cell.
func (s *Session) Food() grid.Position {
	return s.food
}

// Snake returns the session's snake.
func (s *Session) Snake() *snake.Snake {
	return s.snake
}

// GameOver reports whether the last game ended in a collision.
func (s *Session) GameOver() bool {
	return s.gameOver
}
