package material

import "github.com/lumentrace/lumen/pkg/geom"

// Emissive is a light-emitting surface. It absorbs incoming rays and
// contributes its emission to the path.
type Emissive struct {
	Emit geom.Vec3
}

// NewEmissive creates an emissive material with the given radiance.
func NewEmissive(emit geom.Vec3) *Emissive {
	return &Emissive{Emit: emit}
}

// Scatter absorbs the ray; emissive surfaces terminate paths.
func (e *Emissive) Scatter(rayIn geom.Ray, hit *geom.HitRecord, rng geom.Sampler) (geom.ScatterResult, bool) {
	return geom.ScatterResult{}, false
}

// Emitted returns the surface radiance.
func (e *Emissive) Emitted() geom.Vec3 {
	return e.Emit
}
