package engine

import (
	"math/rand"
	"sync/atomic"

	"github.com/lumentrace/lumen/pkg/geom"
)

// ProgressSink observes pixel completion. Implementations must be safe for
// concurrent use and must not block beyond an atomic update; rendering
// correctness never depends on a sink.
type ProgressSink interface {
	Add(pixels int)
}

// NopProgress discards progress notifications.
type NopProgress struct{}

// Add does nothing.
func (NopProgress) Add(int) {}

// Output is the result of a render: the completed framebuffer and the
// count of per-sample numerical failures that were recovered. Failed
// samples degrade to a zero contribution; they never leave a cell
// unwritten.
type Output struct {
	Image         *Framebuffer
	FailedSamples uint64
}

// Render executes the parallel sampling loop: rows are partitioned across
// the executor, every pixel accumulates SamplesPerPixel outcomes from the
// integrator, and invalid outcomes are folded into black while the shared
// failure counter is incremented. The config is read-only for the whole
// render; the failure and progress counters are the only shared mutable
// state.
func Render(cfg *Config, exec *Executor, progress ProgressSink) *Output {
	return RenderWith(cfg, exec, NewPathTracer(cfg), progress)
}

// RenderWith runs the sampling loop with a caller-supplied integrator.
// The integrator must be safe for concurrent use.
func RenderWith(cfg *Config, exec *Executor, integrator Integrator, progress ProgressSink) *Output {
	if progress == nil {
		progress = NopProgress{}
	}

	fb := NewFramebuffer(cfg.Width, cfg.Height)
	var failed atomic.Uint64

	invSamples := 1.0 / float64(cfg.SamplesPerPixel)
	exec.Run(cfg.Height, func(row int) {
		// Each row owns a sampling stream seeded by its index, so the
		// image is identical regardless of worker count.
		rng := rand.New(rand.NewSource(cfg.Seed + int64(row)))

		for x := 0; x < cfg.Width; x++ {
			var accum geom.Vec3
			for s := 0; s < cfg.SamplesPerPixel; s++ {
				u := (float64(x) + rng.Float64()) / float64(cfg.Width)
				v := (float64(cfg.Height-1-row) + rng.Float64()) / float64(cfg.Height)

				outcome := integrator.SampleRadiance(cfg.Camera.Ray(u, v, rng), rng)
				if !outcome.Valid {
					failed.Add(1)
					continue // zero contribution, denominator unchanged
				}
				accum = accum.Add(outcome.Color)
			}
			fb.Set(x, row, accum.Scale(invSamples))
			progress.Add(1)
		}
	})

	return &Output{Image: fb, FailedSamples: failed.Load()}
}
