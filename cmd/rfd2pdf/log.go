package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rfd2pdf/internal/config"
)

// newLogger creates the diagnostic logger from the log config section.
// --verbose forces debug level and --quiet only lets errors through.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, cfg config.LogConfig, quiet, verbose bool) *log.Logger {
	level := log.InfoLevel
	if cfg.Level != "" {
		if l, err := log.ParseLevel(cfg.Level); err == nil {
			level = l
		}
	}
	switch {
	case quiet:
		level = log.ErrorLevel
	case verbose:
		level = log.DebugLevel
	}

	formatter := log.TextFormatter
	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Formatter:       formatter,
	})
}
