package geom

import "math"

// Sphere is a sphere primitive.
type Sphere struct {
	Center   Vec3
	Radius   float64
	Material Scatterer
}

// NewSphere creates a new sphere.
func NewSphere(center Vec3, radius float64, material Scatterer) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Hit tests if a ray intersects the sphere.
func (s *Sphere) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	oc := ray.Origin.Sub(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearest root within the valid range, trying the closer one first.
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hit := &HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := hit.Point.Sub(s.Center).Scale(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.U, hit.V = sphereUV(outwardNormal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounds of the sphere.
func (s *Sphere) BoundingBox() AABB {
	r := NewVec3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Sub(r), s.Center.Add(r))
}

// sphereUV maps a point on the unit sphere to latitude/longitude texture
// coordinates in [0,1].
func sphereUV(p Vec3) (u, v float64) {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}
