// Package logging builds the hclog loggers shared by the CLI and HTTP server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "huepick"

// Options selects the level and destination of a logger.
type Options struct {
	// Level is an hclog level name (trace, debug, info, warn, error, off).
	// Empty means info.
	Level string

	// Verbose forces debug and wins over Quiet.
	Verbose bool

	// Quiet limits output to errors.
	Quiet bool

	// JSON switches to hclog's JSON format.
	JSON bool

	// Output defaults to stderr.
	Output io.Writer
}

// New returns the root logger described by opts.
func New(opts Options) (hclog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.Verbose:
		level = hclog.Debug
	case opts.Quiet && level < hclog.Error:
		level = hclog.Error
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       Name,
		Output:     out,
		Level:      level,
		JSONFormat: opts.JSON,
	}), nil
}

// ParseLevel converts a level name to an hclog.Level. An empty name is info.
func ParseLevel(name string) (hclog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return hclog.Info, nil
	}
	level := hclog.LevelFromString(name)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("invalid log level %q (trace, debug, info, warn, error, off)", name)
	}
	return level, nil
}

// Discard returns a logger that drops everything, for tests and library use.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
