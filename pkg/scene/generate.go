package scene

import (
	"fmt"
	"math"
	"math/rand"
)

// Kind selects which procedural scene the generator produces.
type Kind string

const (
	// KindCover is a random field of small spheres around three large ones
	// on a matte ground plane.
	KindCover Kind = "cover"

	// KindCornell is an enclosed box with colored walls and a ceiling light.
	KindCornell Kind = "cornell"
)

// Kinds lists the supported scene kinds in display order.
func Kinds() []Kind {
	return []Kind{KindCover, KindCornell}
}

// ParseKind converts a CLI value into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCover:
		return KindCover, nil
	case KindCornell:
		return KindCornell, nil
	default:
		return "", fmt.Errorf("unknown scene kind %q (must be one of: cover, cornell)", s)
	}
}

// Generate produces a procedural scene of the requested kind. The same
// seed always yields the same scene.
func Generate(kind Kind, seed int64) (*Scene, error) {
	switch kind {
	case KindCover:
		return generateCover(rand.New(rand.NewSource(seed))), nil
	case KindCornell:
		return generateCornell(), nil
	default:
		return nil, fmt.Errorf("unknown scene kind %q", kind)
	}
}

func generateCover(rng *rand.Rand) *Scene {
	sc := &Scene{
		Camera: Camera{
			LookFrom:      Vec{X: 13, Y: 2, Z: 3},
			LookAt:        Vec{},
			Up:            Vec{Y: 1},
			VFov:          20,
			AspectRatio:   16.0 / 9.0,
			Aperture:      0.1,
			FocusDistance: 10,
		},
		Background: Background{
			Top:    Color{R: 0.5, G: 0.7, B: 1.0},
			Bottom: Color{R: 1.0, G: 1.0, B: 1.0},
		},
	}

	sc.Materials = append(sc.Materials,
		Material{Name: "ground", Type: MaterialLambertian, Albedo: Color{R: 0.5, G: 0.5, B: 0.5}},
		Material{Name: "glass", Type: MaterialDielectric, RefractionIndex: 1.5},
		Material{Name: "matte", Type: MaterialLambertian, Albedo: Color{R: 0.4, G: 0.2, B: 0.1}},
		Material{Name: "steel", Type: MaterialMetal, Albedo: Color{R: 0.7, G: 0.6, B: 0.5}},
	)
	sc.Objects = append(sc.Objects,
		Object{Type: ObjectPlane, Material: "ground", Point: Vec{}, Normal: Vec{Y: 1}},
		Object{Type: ObjectSphere, Material: "glass", Center: Vec{Y: 1}, Radius: 1},
		Object{Type: ObjectSphere, Material: "matte", Center: Vec{X: -4, Y: 1}, Radius: 1},
		Object{Type: ObjectSphere, Material: "steel", Center: Vec{X: 4, Y: 1}, Radius: 1},
	)

	// Small spheres scattered on a grid, jittered and kept away from the
	// three large ones.
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := Vec{
				X: float64(a) + 0.9*rng.Float64(),
				Y: 0.2,
				Z: float64(b) + 0.9*rng.Float64(),
			}
			if dist(center, Vec{X: 4, Y: 0.2}) < 0.9 ||
				dist(center, Vec{X: -4, Y: 0.2}) < 0.9 ||
				dist(center, Vec{Y: 0.2}) < 0.9 {
				continue
			}

			name := fmt.Sprintf("sphere_%d_%d", a+11, b+11)
			choose := rng.Float64()
			switch {
			case choose < 0.8:
				albedo := Color{
					R: rng.Float64() * rng.Float64(),
					G: rng.Float64() * rng.Float64(),
					B: rng.Float64() * rng.Float64(),
				}
				sc.Materials = append(sc.Materials, Material{
					Name: name, Type: MaterialLambertian, Albedo: albedo,
				})
			case choose < 0.95:
				albedo := Color{
					R: 0.5 + 0.5*rng.Float64(),
					G: 0.5 + 0.5*rng.Float64(),
					B: 0.5 + 0.5*rng.Float64(),
				}
				sc.Materials = append(sc.Materials, Material{
					Name: name, Type: MaterialMetal, Albedo: albedo, Fuzz: 0.5 * rng.Float64(),
				})
			default:
				sc.Materials = append(sc.Materials, Material{
					Name: name, Type: MaterialDielectric, RefractionIndex: 1.5,
				})
			}
			sc.Objects = append(sc.Objects, Object{
				Type: ObjectSphere, Material: name, Center: center, Radius: 0.2,
			})
		}
	}

	return sc
}

func generateCornell() *Scene {
	sc := &Scene{
		Camera: Camera{
			LookFrom:      Vec{X: 278, Y: 278, Z: -800},
			LookAt:        Vec{X: 278, Y: 278, Z: 0},
			Up:            Vec{Y: 1},
			VFov:          40,
			AspectRatio:   1,
			Aperture:      0,
			FocusDistance: 800,
		},
		// The box is lit only by the ceiling light.
		Background: Background{},
	}

	sc.Materials = append(sc.Materials,
		Material{Name: "white", Type: MaterialLambertian, Albedo: Color{R: 0.73, G: 0.73, B: 0.73}},
		Material{Name: "red", Type: MaterialLambertian, Albedo: Color{R: 0.65, G: 0.05, B: 0.05}},
		Material{Name: "green", Type: MaterialLambertian, Albedo: Color{R: 0.12, G: 0.45, B: 0.15}},
		Material{Name: "light", Type: MaterialEmissive, Emit: Color{R: 15, G: 15, B: 15}},
		Material{Name: "mirror", Type: MaterialMetal, Albedo: Color{R: 0.8, G: 0.85, B: 0.88}},
	)
	sc.Objects = append(sc.Objects,
		Object{Type: ObjectPlane, Material: "white", Point: Vec{}, Normal: Vec{Y: 1}},                     // floor
		Object{Type: ObjectPlane, Material: "white", Point: Vec{Y: 555}, Normal: Vec{Y: -1}},              // ceiling
		Object{Type: ObjectPlane, Material: "white", Point: Vec{Z: 555}, Normal: Vec{Z: -1}},              // back
		Object{Type: ObjectPlane, Material: "green", Point: Vec{X: 555}, Normal: Vec{X: -1}},              // right
		Object{Type: ObjectPlane, Material: "red", Point: Vec{}, Normal: Vec{X: 1}},                       // left
		Object{Type: ObjectSphere, Material: "light", Center: Vec{X: 278, Y: 554, Z: 279}, Radius: 65},    // lamp
		Object{Type: ObjectSphere, Material: "mirror", Center: Vec{X: 190, Y: 90, Z: 190}, Radius: 90},    // left ball
		Object{Type: ObjectSphere, Material: "white", Center: Vec{X: 400, Y: 100, Z: 360}, Radius: 100},   // right ball
	)

	return sc
}

func dist(a, b Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
