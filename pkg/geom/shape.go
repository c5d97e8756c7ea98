package geom

// Shape is anything a ray can intersect.
type Shape interface {
	// Hit tests the ray against the shape within (tMin, tMax).
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)

	// BoundingBox returns the shape's axis-aligned bounds for BVH construction.
	BoundingBox() AABB
}

// Scatterer is the material contract seen by geometry. The concrete
// material types live in pkg/material; geometry only carries the reference
// from the hit point to the shading code.
type Scatterer interface {
	Scatter(rayIn Ray, hit *HitRecord, rng Sampler) (ScatterResult, bool)
	Emitted() Vec3
}

// Sampler supplies the random values consumed by scattering.
type Sampler interface {
	Float64() float64
}

// ScatterResult describes how a material redirected an incoming ray.
type ScatterResult struct {
	Scattered   Ray  // the outgoing ray
	Attenuation Vec3 // color attenuation applied to the bounce
}

// HitRecord describes a ray-shape intersection.
type HitRecord struct {
	Point     Vec3      // point of intersection
	Normal    Vec3      // surface normal, facing against the ray
	T         float64   // ray parameter at the intersection
	U, V      float64   // surface coordinates for texture lookup
	FrontFace bool      // whether the ray hit the front face
	Material  Scatterer // material at the hit point
}

// SetFaceNormal orients the normal against the incoming ray and records
// which face was hit.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Scale(-1)
	}
}
