package engine

import "github.com/lumentrace/lumen/pkg/geom"

// SampleOutcome is the result of evaluating one light-transport path.
// Invalid outcomes mark samples whose radiance came out non-finite; the
// caller folds them into a zero contribution instead of aborting.
type SampleOutcome struct {
	Color geom.Vec3
	Valid bool
}

// OkSample wraps a finite radiance value.
func OkSample(c geom.Vec3) SampleOutcome {
	return SampleOutcome{Color: c, Valid: true}
}

// InvalidSample marks a numerically failed sample.
func InvalidSample() SampleOutcome {
	return SampleOutcome{}
}

// Integrator evaluates the radiance carried by one sampled path.
type Integrator interface {
	SampleRadiance(ray geom.Ray, rng geom.Sampler) SampleOutcome
}

// PathTracer is the default integrator: recursive path tracing against the
// config's BVH with a background gradient for escaped rays.
type PathTracer struct {
	cfg *Config
}

// NewPathTracer creates an integrator over the given configuration.
func NewPathTracer(cfg *Config) *PathTracer {
	return &PathTracer{cfg: cfg}
}

// SampleRadiance traces one path. Degenerate ray directions and non-finite
// radiance values yield an invalid outcome rather than an error; a single
// bad sample must never take down a long render.
func (p *PathTracer) SampleRadiance(ray geom.Ray, rng geom.Sampler) SampleOutcome {
	if ray.Direction.NearZero() || !ray.Direction.IsFinite() {
		return InvalidSample()
	}

	radiance := p.trace(ray, rng, maxDepth)
	if !radiance.IsFinite() {
		return InvalidSample()
	}
	return OkSample(radiance)
}

func (p *PathTracer) trace(ray geom.Ray, rng geom.Sampler, depth int) geom.Vec3 {
	if depth <= 0 {
		return geom.Vec3{}
	}

	// tMin avoids self-intersection at the scatter origin.
	hit, ok := p.cfg.World.Hit(ray, 1e-3, 1e9)
	if !ok {
		return p.background(ray)
	}

	emitted := hit.Material.Emitted()
	scatter, scattered := hit.Material.Scatter(ray, hit, rng)
	if !scattered {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.Mul(p.trace(scatter.Scattered, rng, depth-1)))
}

// background interpolates the scene's gradient by ray elevation.
func (p *PathTracer) background(ray geom.Ray) geom.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	return p.cfg.BackgroundBot.Scale(1.0 - t).Add(p.cfg.BackgroundTop.Scale(t))
}
