package pipeline

import "github.com/lumentrace/lumen/pkg/engine"

// StageReporter observes pipeline progress. The CLI installs a terminal
// reporter; everything else runs with the no-op one. Reporters are a
// presentation concern only: results never depend on them.
type StageReporter interface {
	// Stage announces that stage index of total is starting.
	Stage(index, total int, message string)

	// StartSampling returns the sink for the sampling loop's per-pixel
	// progress, bounded by totalPixels.
	StartSampling(totalPixels int) engine.ProgressSink

	// FinishSampling marks the sampling loop as complete.
	FinishSampling()
}

// NopReporter discards all progress events.
type NopReporter struct{}

// Stage does nothing.
func (NopReporter) Stage(int, int, string) {}

// StartSampling returns a sink that discards progress.
func (NopReporter) StartSampling(int) engine.ProgressSink { return engine.NopProgress{} }

// FinishSampling does nothing.
func (NopReporter) FinishSampling() {}
