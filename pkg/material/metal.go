package material

import "github.com/lumentrace/lumen/pkg/geom"

// Metal is a reflective surface with optional fuzz.
type Metal struct {
	Albedo geom.Vec3
	Fuzz   float64 // 0 = perfect mirror, 1 = very fuzzy
}

// NewMetal creates a metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo geom.Vec3, fuzz float64) *Metal {
	if fuzz < 0 {
		fuzz = 0
	}
	if fuzz > 1 {
		fuzz = 1
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter mirrors the ray about the surface normal, perturbed by fuzz.
// Rays perturbed below the surface are absorbed.
func (m *Metal) Scatter(rayIn geom.Ray, hit *geom.HitRecord, rng geom.Sampler) (geom.ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(randomUnitVector(rng).Scale(m.Fuzz))
	}

	scattered := geom.NewRay(hit.Point, reflected)
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return geom.ScatterResult{}, false
	}

	return geom.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}

// Emitted returns black.
func (m *Metal) Emitted() geom.Vec3 {
	return geom.Vec3{}
}
