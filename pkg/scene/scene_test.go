package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumentrace/lumen/pkg/errors"
)

func minimalScene() *Scene {
	return &Scene{
		Camera: Camera{
			LookFrom:      Vec{X: 3, Y: 1, Z: 3},
			LookAt:        Vec{},
			Up:            Vec{Y: 1},
			VFov:          35,
			AspectRatio:   16.0 / 9.0,
			FocusDistance: 4,
		},
		Background: Background{
			Top:    Color{R: 0.5, G: 0.7, B: 1},
			Bottom: Color{R: 1, G: 1, B: 1},
		},
		Materials: []Material{
			{Name: "ground", Type: MaterialLambertian, Albedo: Color{R: 0.5, G: 0.5, B: 0.5}},
			{Name: "glass", Type: MaterialDielectric, RefractionIndex: 1.5},
		},
		Objects: []Object{
			{Type: ObjectPlane, Material: "ground", Normal: Vec{Y: 1}},
			{Type: ObjectSphere, Material: "glass", Center: Vec{Y: 1}, Radius: 1},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	want := minimalScene()

	if err := Save(path, want); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !Equal(got, want) {
		t.Error("loaded scene differs from saved scene")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.GetCode(err) != errors.ErrCodeLoad {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeLoad)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("camera: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadRejectsBrokenScenes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
		want   string
	}{
		{
			"unknown material type",
			func(sc *Scene) { sc.Materials[0].Type = "velvet" },
			"unknown type",
		},
		{
			"unnamed material",
			func(sc *Scene) { sc.Materials[0].Name = "" },
			"no name",
		},
		{
			"unknown object type",
			func(sc *Scene) { sc.Objects[0].Type = "torus" },
			"unknown type",
		},
		{
			"dangling material reference",
			func(sc *Scene) { sc.Objects[1].Material = "chrome" },
			"unknown material",
		},
		{
			"non-positive aspect ratio",
			func(sc *Scene) { sc.Camera.AspectRatio = 0 },
			"aspect_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := minimalScene()
			tt.mutate(sc)

			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := Save(path, sc); err != nil {
				t.Fatalf("Save error: %v", err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected structural error")
			}
			if errors.GetCode(err) != errors.ErrCodeLoad {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeLoad)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

type fakeAssets map[string]bool

func (f fakeAssets) Has(path string) bool { return f[path] }

func TestValidate(t *testing.T) {
	sc := minimalScene()
	sc.Materials = append(sc.Materials, Material{
		Name: "checker", Type: MaterialLambertian, Texture: "textures/checker.png",
	})

	if err := Validate(sc, fakeAssets{"textures/checker.png": true}); err != nil {
		t.Errorf("Validate with resolved texture: %v", err)
	}

	err := Validate(sc, fakeAssets{})
	if err == nil {
		t.Fatal("expected validation error for unresolved texture")
	}
	if errors.GetCode(err) != errors.ErrCodeValidation {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeValidation)
	}
}

func TestAssetRefsDedup(t *testing.T) {
	sc := minimalScene()
	sc.Materials = append(sc.Materials,
		Material{Name: "a", Type: MaterialLambertian, Texture: "tex/wood.png"},
		Material{Name: "b", Type: MaterialLambertian, Texture: "tex/marble.png"},
		Material{Name: "c", Type: MaterialLambertian, Texture: "tex/wood.png"},
	)

	refs := sc.AssetRefs()
	want := []string{"tex/wood.png", "tex/marble.png"}
	if len(refs) != len(want) {
		t.Fatalf("AssetRefs = %v, want %v", refs, want)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Errorf("AssetRefs[%d] = %q, want %q", i, refs[i], want[i])
		}
	}
}

func TestMaterialByName(t *testing.T) {
	sc := minimalScene()
	if m, ok := sc.MaterialByName("glass"); !ok || m.Type != MaterialDielectric {
		t.Errorf("MaterialByName(glass) = %v, %v", m, ok)
	}
	if _, ok := sc.MaterialByName("missing"); ok {
		t.Error("MaterialByName should miss for undeclared names")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"cover", KindCover, false},
		{"cornell", KindCornell, false},
		{"Cover", "", true},
		{"", "", true},
		{"teapot", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			sc, err := Generate(kind, 42)
			if err != nil {
				t.Fatalf("Generate error: %v", err)
			}

			// Generated scenes must pass the same checks Load applies.
			if err := checkStructure(sc); err != nil {
				t.Errorf("generated scene fails structural checks: %v", err)
			}
			if len(sc.Objects) == 0 {
				t.Error("generated scene has no objects")
			}

			// Generated scenes survive a store round trip.
			path := filepath.Join(t.TempDir(), "gen.yaml")
			if err := Save(path, sc); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if !Equal(loaded, sc) {
				t.Error("round trip changed the generated scene")
			}
		})
	}

	if _, err := Generate(Kind("teapot"), 1); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestGenerateCoverDeterministicBySeed(t *testing.T) {
	a, err := Generate(KindCover, 7)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(KindCover, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Error("same seed should yield identical scenes")
	}

	c, err := Generate(KindCover, 8)
	if err != nil {
		t.Fatal(err)
	}
	if Equal(a, c) {
		t.Error("different seeds should yield different scenes")
	}
}
