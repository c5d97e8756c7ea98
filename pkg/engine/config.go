// Package engine materializes a validated scene into an immutable render
// configuration and executes the parallel sampling loop over a fixed
// worker pool.
package engine

import (
	"math"

	"github.com/lumentrace/lumen/pkg/asset"
	"github.com/lumentrace/lumen/pkg/geom"
	"github.com/lumentrace/lumen/pkg/material"
	"github.com/lumentrace/lumen/pkg/scene"
)

// Maximum path depth for the integrator.
const maxDepth = 50

// Config is the materialized render configuration: resolved geometry under
// a BVH, materials with decoded textures, the camera, and the output
// dimensions. It is constructed exactly once per render and shared
// read-only across all workers.
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int

	Camera        *Camera
	World         *geom.BVH
	BackgroundTop geom.Vec3
	BackgroundBot geom.Vec3

	// Seed for the deterministic per-row sampling streams.
	Seed int64
}

// Compile converts a persisted scene plus its asset bundle and the runtime
// parameters into a Config. This builds the BVH, so its cost is superlinear
// in geometry count; it must complete before rendering starts. Compile is
// infallible given a scene that passed Load and Validate.
func Compile(sc *scene.Scene, assets *asset.Bundle, width, samplesPerPixel uint) *Config {
	height := int(math.Round(float64(width) / sc.Camera.AspectRatio))
	if height < 1 {
		height = 1
	}

	materials := make(map[string]geom.Scatterer, len(sc.Materials))
	for _, m := range sc.Materials {
		materials[m.Name] = compileMaterial(m, assets)
	}

	shapes := make([]geom.Shape, 0, len(sc.Objects))
	for _, o := range sc.Objects {
		mat := materials[o.Material]
		switch o.Type {
		case scene.ObjectSphere:
			shapes = append(shapes, geom.NewSphere(vec(o.Center), o.Radius, mat))
		case scene.ObjectPlane:
			shapes = append(shapes, geom.NewPlane(vec(o.Point), vec(o.Normal), mat))
		}
	}

	camera := NewCamera(
		vec(sc.Camera.LookFrom),
		vec(sc.Camera.LookAt),
		vec(sc.Camera.Up),
		sc.Camera.VFov,
		sc.Camera.AspectRatio,
		sc.Camera.Aperture,
		sc.Camera.FocusDistance,
	)

	return &Config{
		Width:           int(width),
		Height:          height,
		SamplesPerPixel: int(samplesPerPixel),
		Camera:          camera,
		World:           geom.NewBVH(shapes),
		BackgroundTop:   toColor(sc.Background.Top),
		BackgroundBot:   toColor(sc.Background.Bottom),
		Seed:            42,
	}
}

func compileMaterial(m scene.Material, assets *asset.Bundle) geom.Scatterer {
	switch m.Type {
	case scene.MaterialMetal:
		return material.NewMetal(toColor(m.Albedo), m.Fuzz)
	case scene.MaterialDielectric:
		return material.NewDielectric(m.RefractionIndex)
	case scene.MaterialEmissive:
		return material.NewEmissive(toColor(m.Emit))
	default: // lambertian
		if m.Texture != "" {
			if img, ok := assets.Image(m.Texture); ok {
				return material.NewTexturedLambertian(material.NewImageTexture(img))
			}
		}
		return material.NewLambertian(toColor(m.Albedo))
	}
}

func vec(v scene.Vec) geom.Vec3 {
	return geom.NewVec3(v.X, v.Y, v.Z)
}

func toColor(c scene.Color) geom.Vec3 {
	return geom.NewVec3(c.R, c.G, c.B)
}
