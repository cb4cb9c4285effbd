package loop

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/snake/internal/config"
)

func testOptions(out *bytes.Buffer) Options {
	settings := config.Default()
	settings.TickInterval = 5 * time.Millisecond
	return Options{
		Settings:     settings,
		TermSizeFunc: func() (int, int, error) { return 80, 40, nil },
		Renderer:     lipgloss.NewRenderer(out),
		Logger:       log.New(io.Discard),
		Rand:         rand.New(rand.NewSource(1)),
	}
}

func runAsync(ctx context.Context, r io.Reader, out *bytes.Buffer) <-chan error {
	done := make(chan error, 1)
	go func() { done <- Run(ctx, r, out, testOptions(out)) }()
	return done
}

func wait(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunQuit(t *testing.T) {
	var out bytes.Buffer
	wait(t, runAsync(context.Background(), strings.NewReader("q"), &out))

	s := out.String()
	for _, want := range []string{"\033[?25l", "Score: 0", "[SPACE] Start", "\033[?25h"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	wait(t, runAsync(context.Background(), strings.NewReader(""), &out))
}

func TestRunPlays(t *testing.T) {
	var out bytes.Buffer
	pr, pw := io.Pipe()
	done := runAsync(context.Background(), pr, &out)

	if _, err := pw.Write([]byte(" ")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond) // ten ticks reach the right wall
	if _, err := pw.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}
	wait(t, done)
	pw.Close()

	s := out.String()
	if !strings.Contains(s, "[SPACE] Restart") {
		t.Error("start label never switched to Restart")
	}
	if !strings.Contains(s, "Game Over!") {
		t.Error("snake never hit the wall")
	}
}

func TestRunContextCancel(t *testing.T) {
	var out bytes.Buffer
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, pr, &out)
	cancel()
	wait(t, done)
}

// keyReaders counts live key stream goroutines.
func keyReaders() int {
	buf := make([]byte, 1<<20)
	buf = buf[:runtime.Stack(buf, true)]
	return strings.Count(string(buf), "input.NewStream.func1")
}

func TestRunReleasesKeyReaderOnQuit(t *testing.T) {
	before := keyReaders()

	// More keys after quit than the stream buffers.
	var out bytes.Buffer
	wait(t, runAsync(context.Background(), strings.NewReader("q"+strings.Repeat("x", 200)), &out))

	deadline := time.Now().Add(time.Second)
	for keyReaders() > before {
		if time.Now().After(deadline) {
			t.Fatalf("key reader still running after Run returned: %d > %d", keyReaders(), before)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
