package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 5
	defaultMaxBackups = 3
	defaultMaxAgeDays = 14
)

type Options struct {
	Name  string
	Level string
	// File, when set, receives a rotated copy of every log line.
	File   string
	JSON   bool
	Output io.Writer
}

// New builds the process logger. The add-on binary must log JSON to stderr so
// the go-plugin host can re-level and forward the lines.
func New(opts Options) hclog.Logger {
	var out io.Writer = os.Stderr
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
		})
	}
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// Discard is used by tests and by components constructed without a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
