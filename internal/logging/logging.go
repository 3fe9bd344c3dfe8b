// Package logging builds the zerolog logger. The TUI owns the terminal, so
// session logs go to a rotating file; CLI subcommands may add a console writer
// on stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"tipdesk/internal/config"
)

type Options struct {
	Level      string
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	// Console adds a human-readable writer on Stderr.
	Console bool
	Stderr  io.Writer
}

func FromConfig(c config.LogConfig) Options {
	return Options{
		Level:      c.Level,
		FilePath:   c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
	}
}

// New returns a logger and a closer for its file. With no file and no console
// the logger discards everything.
func New(o Options) (zerolog.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if o.Console {
		out := o.Stderr
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	if path := strings.TrimSpace(o.FilePath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			lj := &lumberjack.Logger{
				Filename:   path,
				MaxSize:    o.MaxSize,
				MaxBackups: o.MaxBackups,
				MaxAge:     o.MaxAge,
				Compress:   true,
			}
			writers = append(writers, lj)
			closer = lj
		}
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		return zerolog.Nop(), closer
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}
	logger := zerolog.New(w).Level(ParseLevel(o.Level)).With().Timestamp().Logger()
	return logger, closer
}

// ParseLevel maps a config level to zerolog; unknown values mean info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
