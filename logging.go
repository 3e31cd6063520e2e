package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// openLogOutput picks where logs go. The TUI owns stdout and stderr, so
// unless a log file is configured its logs are discarded.
func openLogOutput(cfg *Config) (io.Writer, func() error, error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", cfg.LogFile)
		}
		return f, f.Close, nil
	}
	if cfg.Headless {
		return os.Stderr, func() error { return nil }, nil
	}
	return io.Discard, func() error { return nil }, nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "qfield",
		ReportTimestamp: true,
	}), nil
}
