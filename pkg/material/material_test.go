package material

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/lumentrace/lumen/pkg/geom"
)

func testHit(normal geom.Vec3) *geom.HitRecord {
	return &geom.HitRecord{
		Point:     geom.NewVec3(0, 0, 0),
		Normal:    normal,
		FrontFace: true,
	}
}

func TestLambertianScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	albedo := geom.NewVec3(0.8, 0.4, 0.2)
	m := NewLambertian(albedo)
	hit := testHit(geom.NewVec3(0, 1, 0))

	for i := 0; i < 100; i++ {
		result, ok := m.Scatter(geom.NewRay(geom.NewVec3(0, 1, 0), geom.NewVec3(0, -1, 0)), hit, rng)
		if !ok {
			t.Fatal("lambertian always scatters")
		}
		if result.Attenuation != albedo {
			t.Fatalf("attenuation = %v, want %v", result.Attenuation, albedo)
		}
		// Scatter direction stays in the hemisphere of the normal.
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatal("scatter direction should not enter the surface")
		}
	}

	if m.Emitted() != (geom.Vec3{}) {
		t.Error("lambertian emits nothing")
	}
}

func TestMetalScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := NewMetal(geom.NewVec3(0.9, 0.9, 0.9), 0)
	hit := testHit(geom.NewVec3(0, 1, 0))

	in := geom.NewRay(geom.NewVec3(-1, 1, 0), geom.NewVec3(1, -1, 0).Normalize())
	result, ok := m.Scatter(in, hit, rng)
	if !ok {
		t.Fatal("grazing reflection should scatter")
	}

	// Perfect mirror with zero fuzz.
	want := geom.NewVec3(1, 1, 0).Normalize()
	if result.Scattered.Direction.Normalize().Sub(want).Length() > 1e-9 {
		t.Errorf("reflected direction = %v, want %v", result.Scattered.Direction.Normalize(), want)
	}
}

func TestMetalAbsorbsBelowSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Full fuzz can push the reflection below the surface; such samples
	// are absorbed rather than scattered.
	m := NewMetal(geom.NewVec3(1, 1, 1), 1)
	hit := testHit(geom.NewVec3(0, 1, 0))
	in := geom.NewRay(geom.NewVec3(-1, 0.01, 0), geom.NewVec3(1, -0.01, 0).Normalize())

	absorbed := false
	for i := 0; i < 200; i++ {
		if _, ok := m.Scatter(in, hit, rng); !ok {
			absorbed = true
			break
		}
	}
	if !absorbed {
		t.Error("expected at least one absorbed sample at full fuzz")
	}
}

func TestDielectricRefractionIsEnergyConserving(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := NewDielectric(1.5)
	hit := testHit(geom.NewVec3(0, 1, 0))

	result, ok := d.Scatter(geom.NewRay(geom.NewVec3(0, 1, 0), geom.NewVec3(0.2, -1, 0).Normalize()), hit, rng)
	if !ok {
		t.Fatal("dielectric always scatters")
	}
	if result.Attenuation != geom.NewVec3(1, 1, 1) {
		t.Errorf("attenuation = %v, want white", result.Attenuation)
	}
	if math.Abs(result.Scattered.Direction.Length()-1) > 1e-6 {
		t.Errorf("scattered direction should stay unit length, got %v", result.Scattered.Direction.Length())
	}
}

func TestEmissive(t *testing.T) {
	emit := geom.NewVec3(4, 3, 2)
	e := NewEmissive(emit)

	if _, ok := e.Scatter(geom.Ray{}, testHit(geom.NewVec3(0, 1, 0)), rand.New(rand.NewSource(1))); ok {
		t.Error("emissive surfaces terminate paths")
	}
	if e.Emitted() != emit {
		t.Errorf("Emitted = %v, want %v", e.Emitted(), emit)
	}
}

func TestSolidColor(t *testing.T) {
	c := NewSolidColor(geom.NewVec3(0.1, 0.2, 0.3))
	if c.Evaluate(0, 0) != c.Evaluate(0.7, 0.3) {
		t.Error("solid color must ignore coordinates")
	}
}

func TestImageTexture(t *testing.T) {
	// 2x2 image: red on the bottom row, blue on the top row.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{B: 255, A: 255}) // top-left in image space
	img.SetRGBA(1, 0, color.RGBA{B: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})

	tex := NewImageTexture(img)

	// v=0 samples the bottom of the texture (image row 1, red).
	bottom := tex.Evaluate(0.25, 0.0)
	if bottom.X < 0.9 || bottom.Z > 0.1 {
		t.Errorf("Evaluate(_, 0) = %v, want red", bottom)
	}

	// v=1 samples the top (image row 0, blue).
	top := tex.Evaluate(0.25, 1.0)
	if top.Z < 0.9 || top.X > 0.1 {
		t.Errorf("Evaluate(_, 1) = %v, want blue", top)
	}
}

func TestTexturedLambertianUsesTexture(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tex := NewSolidColor(geom.NewVec3(0, 1, 0))
	m := NewTexturedLambertian(tex)

	hit := testHit(geom.NewVec3(0, 1, 0))
	result, ok := m.Scatter(geom.NewRay(geom.NewVec3(0, 1, 0), geom.NewVec3(0, -1, 0)), hit, rng)
	if !ok {
		t.Fatal("lambertian always scatters")
	}
	if result.Attenuation != geom.NewVec3(0, 1, 0) {
		t.Errorf("attenuation = %v, want texture color", result.Attenuation)
	}
}
