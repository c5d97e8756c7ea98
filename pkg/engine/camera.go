package engine

import (
	"math"

	"github.com/lumentrace/lumen/pkg/geom"
)

// Camera generates primary rays with a thin-lens model: a vertical field
// of view, an orientation frame, and an aperture for depth of field.
type Camera struct {
	origin          geom.Vec3
	lowerLeftCorner geom.Vec3
	horizontal      geom.Vec3
	vertical        geom.Vec3
	u, v            geom.Vec3
	lensRadius      float64
}

// NewCamera builds a camera from the scene's viewpoint parameters.
func NewCamera(lookFrom, lookAt, up geom.Vec3, vfovDegrees, aspectRatio, aperture, focusDistance float64) *Camera {
	theta := vfovDegrees * math.Pi / 180
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := aspectRatio * viewportHeight

	w := lookFrom.Sub(lookAt).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := lookFrom
	horizontal := u.Scale(viewportWidth * focusDistance)
	vertical := v.Scale(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Sub(horizontal.Scale(0.5)).
		Sub(vertical.Scale(0.5)).
		Sub(w.Scale(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      aperture / 2,
	}
}

// Ray returns the camera ray through screen coordinates (s, t) in [0,1],
// jittered across the lens when the aperture is non-zero.
func (c *Camera) Ray(s, t float64, rng geom.Sampler) geom.Ray {
	offset := geom.Vec3{}
	if c.lensRadius > 0 {
		rd := randomInUnitDisk(rng).Scale(c.lensRadius)
		offset = c.u.Scale(rd.X).Add(c.v.Scale(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Scale(s)).
		Add(c.vertical.Scale(t)).
		Sub(c.origin).
		Sub(offset)

	return geom.NewRay(c.origin.Add(offset), direction)
}

func randomInUnitDisk(rng geom.Sampler) geom.Vec3 {
	for {
		p := geom.NewVec3(2*rng.Float64()-1, 2*rng.Float64()-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
