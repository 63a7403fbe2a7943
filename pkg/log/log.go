// Package log creates [slog.Handler]s for command line output.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// CreateHandler creates a [slog.Handler] writing to w by strings. Colors are
// only used when w is a terminal.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	formatter, err := GetFormatter(logFormat)
	if err != nil {
		return nil, err
	}

	l := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	if !IsTerminal(w) {
		l.SetColorProfile(termenv.Ascii)
	}

	return l, nil
}

// SetDefault creates a handler with [CreateHandler] and installs it as the
// [slog] default.
func SetDefault(w io.Writer, logLevel, logFormat string) error {
	h, err := CreateHandler(w, logLevel, logFormat)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(h))

	return nil
}

// GetLevel parses a log level. Aliases used by other tools ("warning",
// "trace", "fatal", "panic") are mapped to the closest supported level.
func GetLevel(level string) (charmlog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return charmlog.ErrorLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "info":
		return charmlog.InfoLevel, nil
	case "debug", "trace":
		return charmlog.DebugLevel, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}

// GetFormatter parses a log format.
func GetFormatter(format string) (charmlog.Formatter, error) {
	switch strings.ToLower(format) {
	case JSONFormat:
		return charmlog.JSONFormatter, nil
	case LogfmtFormat:
		return charmlog.LogfmtFormatter, nil
	case TextFormat, "":
		return charmlog.TextFormatter, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}

// IsTerminal reports whether w is backed by a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
