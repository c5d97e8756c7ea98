// Package pipeline provides the staged render and generate pipelines.
//
// This package implements the load → validate → compile → sample → encode
// pipeline that can be used by the CLI and the gallery server. By
// centralizing this logic, we ensure consistent behavior across entry points
// and avoid code duplication.
//
// # Architecture
//
// The render pipeline consists of seven stages:
//
//  1. Load the scene description
//  2. Load referenced assets
//  3. Validate asset references
//  4. Compile the scene (camera, materials, BVH)
//  5. Render (the parallel sampling loop)
//  6. Check for recovered sample failures
//  7. Encode and write the image
//
// The generate pipeline has two stages: build a procedural scene, write it.
//
// Stage transitions are reported through a StageReporter so terminal output
// stays out of stage logic; removing the reporter never changes results.
//
// # Usage
//
// Create a Runner and execute a pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.RenderOptions{
//	    ScenePath:  "scene.yaml",
//	    OutputPath: "out.png",
//	    Width:      800,
//	}
//	result, err := runner.Render(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lumentrace/lumen/pkg/cache"
	"github.com/lumentrace/lumen/pkg/errors"
	"github.com/lumentrace/lumen/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Gallery
// =============================================================================

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 800

	// DefaultSamples is the default number of samples per pixel. Low enough
	// for quick feedback; final renders typically pass several hundred.
	DefaultSamples = 100

	// DefaultSeed is the generator seed used when none is given.
	DefaultSeed = 42
)

// DefaultThreads returns the default worker count, one per CPU.
func DefaultThreads() uint {
	return uint(runtime.NumCPU())
}

// =============================================================================
// Options
// =============================================================================

// RenderOptions contains all configuration for a render run.
// Options are immutable after ValidateAndSetDefaults.
type RenderOptions struct {
	// ScenePath is the scene description to render. Must end in .yaml.
	ScenePath string

	// OutputPath is where the image is written. Must end in .png.
	OutputPath string

	// Width is the image width in pixels; height follows from the scene
	// camera's aspect ratio.
	Width uint

	// SamplesPerPixel is the number of light-transport paths per pixel.
	SamplesPerPixel uint

	// Threads is the worker count for the sampling loop. Must be >= 1.
	Threads uint

	// AssetPaths are extra texture files to load alongside the scene's own
	// asset references.
	AssetPaths []string

	// NoCache disables the artifact cache for this run.
	NoCache bool

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateScenePath(o.ScenePath); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(o.OutputPath); err != nil {
		return err
	}

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.SamplesPerPixel == 0 {
		o.SamplesPerPixel = DefaultSamples
	}
	if o.Threads == 0 {
		o.Threads = DefaultThreads()
	}
	if err := errors.ValidatePositive("threads", o.Threads); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for this render.
func (o *RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Width:           o.Width,
		SamplesPerPixel: o.SamplesPerPixel,
	}
}

// GenerateOptions contains all configuration for a generate run.
type GenerateOptions struct {
	// ScenePath is where the generated scene is written. Must end in .yaml.
	ScenePath string

	// Kind selects the procedural scene.
	Kind scene.Kind

	// Seed drives the procedural randomness. Zero selects DefaultSeed.
	Seed int64

	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *GenerateOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateScenePath(o.ScenePath); err != nil {
		return err
	}
	if o.Kind == "" {
		o.Kind = scene.KindCover
	}
	if _, err := scene.ParseKind(string(o.Kind)); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// RenderResult contains the outputs of a render run.
type RenderResult struct {
	// RunID identifies this run in the history store.
	RunID string

	// OutputPath is the written image file.
	OutputPath string

	// Width and Height are the final image dimensions.
	Width  uint
	Height uint

	// FailedSamples counts per-sample numerical failures that were folded
	// into a zero contribution instead of aborting the render.
	FailedSamples uint64

	// CacheHit is true when the image came from the artifact cache and the
	// sampling stages were skipped.
	CacheHit bool

	// Duration is the wall time of the whole pipeline.
	Duration time.Duration
}

// GenerateResult contains the outputs of a generate run.
type GenerateResult struct {
	RunID     string
	ScenePath string
	Kind      scene.Kind
	Duration  time.Duration
}

// discardLogger returns a logger that drops everything.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
