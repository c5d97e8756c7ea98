// Package cli implements the lumen command-line interface.
//
// This package provides commands for rendering scene descriptions to images,
// generating procedural scenes, inspecting scene geometry, and serving a
// gallery of finished renders. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Render a scene description to a PNG image
//   - generate: Write a procedurally generated scene description
//   - inspect: Print scene statistics and export the BVH tree
//   - history: List past runs
//   - gallery: Serve finished renders over HTTP
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Progress
// output (stage lines, the sampling bar) is part of the command's normal
// output and goes to stdout; diagnostics go to stderr.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
