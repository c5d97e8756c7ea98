package pipeline

import (
	"context"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lumentrace/lumen/pkg/asset"
	"github.com/lumentrace/lumen/pkg/cache"
	"github.com/lumentrace/lumen/pkg/engine"
	"github.com/lumentrace/lumen/pkg/errors"
	"github.com/lumentrace/lumen/pkg/history"
	"github.com/lumentrace/lumen/pkg/observability"
	"github.com/lumentrace/lumen/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and gallery can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, history store, and logger;
// it doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// History receives a record per successful run. Nil disables recording.
	History history.Store

	// Reporter receives stage and sampling progress. Nil means silent.
	Reporter StageReporter
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

const renderStages = 7

// Render executes the complete load → validate → compile → sample → encode
// pipeline. A cache hit on the artifact key writes the cached image and
// skips everything after the scene load.
func (r *Runner) Render(ctx context.Context, opts RenderOptions) (*RenderResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	// The worker pool is constructed before any stage runs so an invalid
	// thread count fails up front, not mid-pipeline.
	exec, err := engine.NewExecutor(opts.Threads)
	if err != nil {
		return nil, err
	}

	// Stage 1: Load scene
	done := r.stage(ctx, "render", 1, renderStages, "Loading scene yaml...")
	sc, err := scene.Load(opts.ScenePath)
	done(err)
	if err != nil {
		return nil, err
	}

	height := imageHeight(opts.Width, sc.Camera.AspectRatio)

	// Artifact cache short-circuit. The key covers the scene file bytes and
	// the parameters that shape the output.
	var artifactKey string
	if !opts.NoCache {
		if raw, err := os.ReadFile(opts.ScenePath); err == nil {
			artifactKey = r.Keyer.ArtifactKey(cache.Hash(raw), opts.ArtifactKeyOpts())
			if data, hit, err := r.Cache.Get(ctx, artifactKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				if err := os.WriteFile(opts.OutputPath, data, 0644); err != nil {
					return nil, errors.Wrap(errors.ErrCodeEncode, err, "writing %s", opts.OutputPath)
				}
				r.Logger.Info("artifact cache hit", "output", opts.OutputPath)
				result := &RenderResult{
					OutputPath: opts.OutputPath,
					Width:      opts.Width,
					Height:     height,
					CacheHit:   true,
					Duration:   time.Since(start),
				}
				r.recordRender(ctx, opts, result)
				return result, nil
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
	}

	// Stage 2: Load assets. Only explicitly supplied paths are loaded here;
	// scene references that never made it into the bundle are the validation
	// stage's finding, not a load failure.
	done = r.stage(ctx, "render", 2, renderStages, "Loading assets...")
	assets, err := asset.LoadBundle(opts.AssetPaths)
	done(err)
	if err != nil {
		return nil, err
	}

	// Stage 3: Validate assets
	done = r.stage(ctx, "render", 3, renderStages, "Validating assets...")
	err = scene.Validate(sc, assets)
	done(err)
	if err != nil {
		return nil, err
	}

	// Stage 4: Compile
	done = r.stage(ctx, "render", 4, renderStages, "Compiling scene (building BVH)...")
	cfg := engine.Compile(sc, assets, opts.Width, opts.SamplesPerPixel)
	done(nil)

	// An interrupt between stages aborts before the expensive sampling loop.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: Render
	r.reporter().Stage(5, renderStages, "Rendering...")
	observability.Pipeline().OnSamplingStart(ctx, cfg.Width, cfg.Height, opts.SamplesPerPixel)
	samplingStart := time.Now()

	sink := r.reporter().StartSampling(cfg.Width * cfg.Height)
	out := engine.Render(cfg, exec, sink)
	r.reporter().FinishSampling()

	observability.Pipeline().OnSamplingComplete(ctx, out.FailedSamples, time.Since(samplingStart))
	r.Logger.Info("sampling complete",
		"width", cfg.Width,
		"height", cfg.Height,
		"samples", opts.SamplesPerPixel,
		"duration", time.Since(samplingStart))

	// Stage 6: Check for errors
	done = r.stage(ctx, "render", 6, renderStages, "Checking for errors...")
	if out.FailedSamples > 0 {
		// Recovered failures are reported, never fatal.
		r.Logger.Warn("some samples failed and were dropped", "failed_rays", out.FailedSamples)
	}
	done(nil)

	// Stage 7: Write image
	done = r.stage(ctx, "render", 7, renderStages, "Writing image...")
	data, err := engine.EncodePNG(out.Image)
	if err == nil {
		if werr := os.WriteFile(opts.OutputPath, data, 0644); werr != nil {
			err = errors.Wrap(errors.ErrCodeEncode, werr, "writing %s", opts.OutputPath)
		}
	}
	done(err)
	if err != nil {
		return nil, err
	}

	if artifactKey != "" {
		if err := r.Cache.Set(ctx, artifactKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	result := &RenderResult{
		OutputPath:    opts.OutputPath,
		Width:         uint(cfg.Width),
		Height:        uint(cfg.Height),
		FailedSamples: out.FailedSamples,
		Duration:      time.Since(start),
	}
	r.recordRender(ctx, opts, result)
	return result, nil
}

const generateStages = 2

// Generate builds a procedural scene and writes it to the scene path.
func (r *Runner) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	// Stage 1: Generate
	done := r.stage(ctx, "generate", 1, generateStages, "Generating scene...")
	sc, err := scene.Generate(opts.Kind, opts.Seed)
	done(err)
	if err != nil {
		return nil, err
	}

	// Stage 2: Write
	done = r.stage(ctx, "generate", 2, generateStages, "Writing scene yaml...")
	err = scene.Save(opts.ScenePath, sc)
	done(err)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		ScenePath: opts.ScenePath,
		Kind:      opts.Kind,
		Duration:  time.Since(start),
	}
	if r.History != nil {
		rec := history.New("generate")
		rec.ScenePath = opts.ScenePath
		rec.Duration = result.Duration.Seconds()
		if err := r.History.Append(ctx, rec); err != nil {
			r.Logger.Debug("history append failed", "err", err)
		}
		result.RunID = rec.ID
	}
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// stage fires the reporter and observability hooks for one stage and
// returns the completion callback.
func (r *Runner) stage(ctx context.Context, pipeline string, index, total int, message string) func(error) {
	r.reporter().Stage(index, total, message)
	observability.Pipeline().OnStageStart(ctx, pipeline, message, total)
	start := time.Now()
	return func(err error) {
		observability.Pipeline().OnStageComplete(ctx, pipeline, message, time.Since(start), err)
	}
}

func (r *Runner) reporter() StageReporter {
	if r.Reporter == nil {
		return NopReporter{}
	}
	return r.Reporter
}

func (r *Runner) recordRender(ctx context.Context, opts RenderOptions, result *RenderResult) {
	if r.History == nil {
		return
	}
	rec := history.New("render")
	rec.ScenePath = opts.ScenePath
	rec.OutputPath = result.OutputPath
	rec.Width = result.Width
	rec.Height = result.Height
	rec.Samples = opts.SamplesPerPixel
	rec.Threads = opts.Threads
	rec.FailedRays = result.FailedSamples
	rec.CacheHit = result.CacheHit
	rec.Duration = result.Duration.Seconds()
	if err := r.History.Append(ctx, rec); err != nil {
		r.Logger.Debug("history append failed", "err", err)
		return
	}
	result.RunID = rec.ID
}

// imageHeight derives the output height from the width and the camera
// aspect ratio, matching engine.Compile.
func imageHeight(width uint, aspect float64) uint {
	h := int(math.Round(float64(width) / aspect))
	if h < 1 {
		h = 1
	}
	return uint(h)
}
