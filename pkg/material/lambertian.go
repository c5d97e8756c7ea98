package material

import (
	"math"

	"github.com/lumentrace/lumen/pkg/geom"
)

// Lambertian is a perfectly diffuse surface.
type Lambertian struct {
	Albedo ColorSource
}

// NewLambertian creates a diffuse material with a solid color.
func NewLambertian(albedo geom.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a diffuse material sampling a texture.
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter bounces the ray in a cosine-weighted random direction around the
// surface normal.
func (l *Lambertian) Scatter(rayIn geom.Ray, hit *geom.HitRecord, rng geom.Sampler) (geom.ScatterResult, bool) {
	direction := hit.Normal.Add(randomUnitVector(rng))
	if direction.NearZero() {
		// Degenerate scatter direction, fall back to the normal.
		direction = hit.Normal
	}

	return geom.ScatterResult{
		Scattered:   geom.NewRay(hit.Point, direction),
		Attenuation: l.Albedo.Evaluate(hit.U, hit.V),
	}, true
}

// Emitted returns black; diffuse surfaces do not emit.
func (l *Lambertian) Emitted() geom.Vec3 {
	return geom.Vec3{}
}

// randomUnitVector returns a uniformly distributed point on the unit sphere.
func randomUnitVector(rng geom.Sampler) geom.Vec3 {
	for {
		p := geom.NewVec3(
			2*rng.Float64()-1,
			2*rng.Float64()-1,
			2*rng.Float64()-1,
		)
		lenSq := p.LengthSquared()
		if lenSq > 1e-18 && lenSq <= 1.0 {
			return p.Scale(1.0 / math.Sqrt(lenSq))
		}
	}
}
