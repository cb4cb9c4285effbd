package config

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger returns a timestamped logger writing to w at the given level name
// ("debug", "info", "warn", "error", "fatal").
func NewLogger(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}
