package engine

import (
	"bytes"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/lumentrace/lumen/pkg/asset"
	"github.com/lumentrace/lumen/pkg/geom"
	"github.com/lumentrace/lumen/pkg/scene"
)

// testConfig builds a minimal config; the fake integrators below never
// touch the world, so it stays nil.
func testConfig(width, height, samples int) *Config {
	return &Config{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samples,
		Camera: NewCamera(
			geom.NewVec3(0, 0, 1), geom.NewVec3(0, 0, 0), geom.NewVec3(0, 1, 0),
			90, float64(width)/float64(height), 0, 1),
		Seed: 7,
	}
}

// constantIntegrator returns the same radiance for every sample.
type constantIntegrator struct {
	color geom.Vec3
}

func (c constantIntegrator) SampleRadiance(geom.Ray, geom.Sampler) SampleOutcome {
	return OkSample(c.color)
}

// flakyIntegrator fails every other sample.
type flakyIntegrator struct {
	color geom.Vec3
	calls atomic.Int64
}

func (f *flakyIntegrator) SampleRadiance(geom.Ray, geom.Sampler) SampleOutcome {
	if f.calls.Add(1)%2 == 0 {
		return InvalidSample()
	}
	return OkSample(f.color)
}

// rngIntegrator derives radiance from the sampling stream, exposing any
// scheduling-dependent nondeterminism.
type rngIntegrator struct{}

func (rngIntegrator) SampleRadiance(_ geom.Ray, rng geom.Sampler) SampleOutcome {
	return OkSample(geom.NewVec3(rng.Float64(), rng.Float64(), rng.Float64()))
}

// countingSink counts progress increments.
type countingSink struct {
	total atomic.Int64
}

func (s *countingSink) Add(n int) { s.total.Add(int64(n)) }

func TestRenderConstantScene(t *testing.T) {
	cfg := testConfig(8, 6, 16)
	exec, _ := NewExecutor(2)
	want := geom.NewVec3(0.25, 0.5, 0.75)

	out := RenderWith(cfg, exec, constantIntegrator{color: want}, nil)

	if out.FailedSamples != 0 {
		t.Errorf("FailedSamples = %d, want 0", out.FailedSamples)
	}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			got := out.Image.At(x, y)
			if !nearVec(got, want, 1e-12) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderCountsFailedSamples(t *testing.T) {
	cfg := testConfig(4, 4, 10)
	// A single worker keeps the call sequence aligned with pixels, so each
	// pixel loses exactly half its samples.
	exec, _ := NewExecutor(1)
	integrator := &flakyIntegrator{color: geom.NewVec3(1, 1, 1)}

	out := RenderWith(cfg, exec, integrator, nil)

	totalSamples := uint64(cfg.Width * cfg.Height * cfg.SamplesPerPixel)
	if out.FailedSamples != totalSamples/2 {
		t.Errorf("FailedSamples = %d, want %d", out.FailedSamples, totalSamples/2)
	}

	// Failed samples contribute zero while the denominator stays the full
	// sample count, so every pixel averages to half the radiance.
	want := geom.NewVec3(0.5, 0.5, 0.5)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if got := out.Image.At(x, y); !nearVec(got, want, 1e-12) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderDeterministicAcrossWorkerCounts(t *testing.T) {
	cfg := testConfig(16, 12, 8)

	render := func(workers uint) *Framebuffer {
		exec, err := NewExecutor(workers)
		if err != nil {
			t.Fatalf("NewExecutor error: %v", err)
		}
		return RenderWith(cfg, exec, rngIntegrator{}, nil).Image
	}

	single := render(1)
	for _, workers := range []uint{2, 8} {
		multi := render(workers)
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				if single.At(x, y) != multi.At(x, y) {
					t.Fatalf("pixel (%d,%d) differs between 1 and %d workers", x, y, workers)
				}
			}
		}
	}
}

func TestRenderProgressCount(t *testing.T) {
	cfg := testConfig(10, 7, 2)
	exec, _ := NewExecutor(4)
	sink := &countingSink{}

	RenderWith(cfg, exec, constantIntegrator{}, sink)

	want := int64(cfg.Width * cfg.Height)
	if got := sink.total.Load(); got != want {
		t.Errorf("progress total = %d, want %d", got, want)
	}
}

func TestRenderProgressSinkDoesNotChangeOutput(t *testing.T) {
	cfg := testConfig(6, 6, 4)
	exec, _ := NewExecutor(2)

	withSink := RenderWith(cfg, exec, rngIntegrator{}, &countingSink{})
	without := RenderWith(cfg, exec, rngIntegrator{}, nil)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if withSink.Image.At(x, y) != without.Image.At(x, y) {
				t.Fatal("progress sink must not affect the rendered image")
			}
		}
	}
}

func TestPathTracerRejectsDegenerateRays(t *testing.T) {
	p := NewPathTracer(testConfig(2, 2, 1))

	outcome := p.SampleRadiance(geom.NewRay(geom.Vec3{}, geom.Vec3{}), fixedSampler{})
	if outcome.Valid {
		t.Error("zero-direction ray should yield an invalid sample")
	}
}

// fixedSampler returns a constant, keeping degenerate-input tests
// deterministic.
type fixedSampler struct{}

func (fixedSampler) Float64() float64 { return 0.5 }

func TestCompile(t *testing.T) {
	sc := &scene.Scene{
		Camera: scene.Camera{
			LookFrom:      scene.Vec{Z: 3},
			Up:            scene.Vec{Y: 1},
			VFov:          60,
			AspectRatio:   2,
			FocusDistance: 3,
		},
		Background: scene.Background{
			Top:    scene.Color{R: 0.5, G: 0.7, B: 1},
			Bottom: scene.Color{R: 1, G: 1, B: 1},
		},
		Materials: []scene.Material{
			{Name: "matte", Type: scene.MaterialLambertian, Albedo: scene.Color{R: 0.6, G: 0.3, B: 0.3}},
			{Name: "lamp", Type: scene.MaterialEmissive, Emit: scene.Color{R: 4, G: 4, B: 4}},
		},
		Objects: []scene.Object{
			{Type: scene.ObjectSphere, Material: "matte", Radius: 1},
			{Type: scene.ObjectSphere, Material: "lamp", Center: scene.Vec{Y: 3}, Radius: 1},
		},
	}
	assets, err := asset.LoadBundle(nil)
	if err != nil {
		t.Fatal(err)
	}

	cfg := Compile(sc, assets, 100, 8)

	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("size = %dx%d, want 100x50", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel != 8 {
		t.Errorf("SamplesPerPixel = %d, want 8", cfg.SamplesPerPixel)
	}
	if cfg.BackgroundTop != geom.NewVec3(0.5, 0.7, 1) {
		t.Errorf("BackgroundTop = %v", cfg.BackgroundTop)
	}
	if cfg.BackgroundBot != geom.NewVec3(1, 1, 1) {
		t.Errorf("BackgroundBot = %v", cfg.BackgroundBot)
	}
	if stats := cfg.World.Stats(); stats.Shapes != 2 {
		t.Errorf("world holds %d shapes, want 2", stats.Shapes)
	}
}

func TestEncodePNG(t *testing.T) {
	fb := NewFramebuffer(5, 3)
	fb.Set(2, 1, geom.NewVec3(1, 0, 0))

	data, err := EncodePNG(fb)
	if err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding produced PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 5 || bounds.Dy() != 3 {
		t.Errorf("decoded size = %dx%d, want 5x3", bounds.Dx(), bounds.Dy())
	}
}

func nearVec(a, b geom.Vec3, eps float64) bool {
	d := a.Sub(b)
	return d.Length() < eps
}
