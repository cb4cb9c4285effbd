package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("SNAKE_TEST_VALUE", "set")
	if got := GetEnv("SNAKE_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("GetEnv() = %q, want set", got)
	}
	if got := GetEnv("SNAKE_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv() = %q, want fallback", got)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if s != Default() {
		t.Fatalf("FromEnv() = %+v, want %+v", s, Default())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SNAKE_GRID_SIZE", "30")
	t.Setenv("SNAKE_TICK_MS", "90")
	t.Setenv("SNAKE_SCORE_INCREMENT", "5")
	t.Setenv("SNAKE_CANVAS_SIZE", "600")
	t.Setenv("SNAKE_TILE_SIZE", "2")
	t.Setenv("SNAKE_LOG_LEVEL", "debug")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	want := Settings{
		GridSize:         30,
		TickInterval:     90 * time.Millisecond,
		ScoreIncrement:   5,
		CanvasSize:       600,
		TerminalTileSize: 2,
		LogLevel:         "debug",
	}
	if s != want {
		t.Fatalf("FromEnv() = %+v, want %+v", s, want)
	}
}

func TestFromEnvParseError(t *testing.T) {
	t.Setenv("SNAKE_TICK_MS", "fast")
	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() should fail on a non-numeric tick")
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatalf("error %v should wrap *strconv.NumError", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
	}{
		{name: "grid too small", modify: func(s *Settings) { s.GridSize = 11 }},
		{name: "zero tick", modify: func(s *Settings) { s.TickInterval = 0 }},
		{name: "negative score", modify: func(s *Settings) { s.ScoreIncrement = -1 }},
		{name: "canvas smaller than grid", modify: func(s *Settings) { s.CanvasSize = 10 }},
		{name: "zero tile", modify: func(s *Settings) { s.TerminalTileSize = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.modify(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("Validate() = %v, want ErrInvalidSettings", err)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SNAKE_DOTENV_PROBE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SNAKE_DOTENV_PROBE") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("SNAKE_DOTENV_PROBE"); got != "from-file" {
		t.Fatalf("SNAKE_DOTENV_PROBE = %q, want from-file", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "snake", "warn")
	if err != nil {
		t.Fatalf("NewLogger() error: %v", err)
	}
	if logger.GetLevel() != log.WarnLevel {
		t.Fatalf("level = %v, want warn", logger.GetLevel())
	}

	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("output = %q, want only the warning", out)
	}

	if _, err := NewLogger(&buf, "snake", "loud"); err == nil {
		t.Fatal("NewLogger() accepted an unknown level")
	}
}
