package geom

import "math"

// Plane is an infinite plane defined by a point and a normal.
type Plane struct {
	Point    Vec3
	Normal   Vec3 // unit length
	Material Scatterer
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(point, normal Vec3, material Scatterer) *Plane {
	return &Plane{Point: point, Normal: normal.Normalize(), Material: material}
}

// Hit tests if a ray intersects the plane.
func (p *Plane) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false // parallel to the plane
	}

	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)
	hit.U, hit.V = planeUV(hit.Point, p.Normal)

	return hit, true
}

// BoundingBox returns a large but finite box around the plane. The box is
// tight along the plane normal when the plane is axis-aligned, which keeps
// BVH splits useful for ground planes and walls.
func (p *Plane) BoundingBox() AABB {
	const large = 1e6
	const eps = 1e-3

	switch {
	case isAxisAligned(p.Normal, NewVec3(1, 0, 0)):
		x := p.Point.X
		return NewAABB(NewVec3(x-eps, -large, -large), NewVec3(x+eps, large, large))
	case isAxisAligned(p.Normal, NewVec3(0, 1, 0)):
		y := p.Point.Y
		return NewAABB(NewVec3(-large, y-eps, -large), NewVec3(large, y+eps, large))
	case isAxisAligned(p.Normal, NewVec3(0, 0, 1)):
		z := p.Point.Z
		return NewAABB(NewVec3(-large, -large, z-eps), NewVec3(large, large, z+eps))
	default:
		return NewAABB(NewVec3(-large, -large, -large), NewVec3(large, large, large))
	}
}

// isAxisAligned reports whether n is parallel to the given axis.
func isAxisAligned(n, axis Vec3) bool {
	return math.Abs(math.Abs(n.Dot(axis))-1.0) < 1e-8
}

// planeUV projects the hit point onto two tangent axes of the plane.
func planeUV(point, normal Vec3) (u, v float64) {
	// Pick a tangent that is not parallel to the normal.
	tangent := NewVec3(1, 0, 0)
	if math.Abs(normal.X) > 0.9 {
		tangent = NewVec3(0, 1, 0)
	}
	uAxis := normal.Cross(tangent).Normalize()
	vAxis := normal.Cross(uAxis)

	u = point.Dot(uAxis)
	v = point.Dot(vAxis)
	// Wrap into [0,1) so image textures tile.
	return u - math.Floor(u), v - math.Floor(v)
}
