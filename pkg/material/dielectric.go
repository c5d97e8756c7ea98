package material

import (
	"math"

	"github.com/lumentrace/lumen/pkg/geom"
)

// Dielectric is a clear refractive surface such as glass.
type Dielectric struct {
	RefractionIndex float64
}

// NewDielectric creates a dielectric material.
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// Scatter refracts or reflects the ray depending on the angle of incidence
// and Schlick's reflectance approximation.
func (d *Dielectric) Scatter(rayIn geom.Ray, hit *geom.HitRecord, rng geom.Sampler) (geom.ScatterResult, bool) {
	ratio := d.RefractionIndex
	if hit.FrontFace {
		ratio = 1.0 / d.RefractionIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Scale(-1).Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction geom.Vec3
	cannotRefract := ratio*sinTheta > 1.0
	if cannotRefract || reflectance(cosTheta, ratio) > rng.Float64() {
		direction = unitDirection.Reflect(hit.Normal)
	} else {
		direction = unitDirection.Refract(hit.Normal, ratio)
	}

	return geom.ScatterResult{
		Scattered:   geom.NewRay(hit.Point, direction),
		Attenuation: geom.NewVec3(1, 1, 1),
	}, true
}

// Emitted returns black.
func (d *Dielectric) Emitted() geom.Vec3 {
	return geom.Vec3{}
}

// reflectance is Schlick's approximation for the Fresnel factor.
func reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
