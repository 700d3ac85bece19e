// Package logging builds the structured loggers used across the game.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
)

// Environment keys read by FromEnv.
const (
	EnvLevel = "INVADERS_LOG_LEVEL"
	EnvFile  = "INVADERS_LOG_FILE"
)

// New returns a logger writing to w at the named level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// FromEnv builds a logger from INVADERS_LOG_LEVEL and INVADERS_LOG_FILE.
// When no file is configured, output goes to fallback. A nil fallback discards
// output, which keeps log lines off a terminal that is drawing the game.
// The returned closer releases the log file, if one was opened.
func FromEnv(fallback io.Writer) (*log.Logger, io.Closer, error) {
	level := config.GetEnv(EnvLevel, "info")
	path := config.GetEnv(EnvFile, "")

	if path == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		return New(fallback, level), nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
