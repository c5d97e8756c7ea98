package scene

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumentrace/lumen/pkg/errors"
)

// Load reads a scene description from a YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "reading scene %s", path)
	}

	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "decoding scene %s", path)
	}
	if err := checkStructure(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Save writes a scene description to a YAML file.
func Save(path string, sc *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSave, err, "creating scene %s", path)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return errors.Wrap(errors.ErrCodeSave, err, "encoding scene %s", path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeSave, err, "encoding scene %s", path)
	}
	return nil
}

// checkStructure rejects scenes that decode but cannot be compiled: unknown
// kinds and dangling material references.
func checkStructure(sc *Scene) error {
	validMaterial := map[MaterialType]bool{
		MaterialLambertian: true,
		MaterialMetal:      true,
		MaterialDielectric: true,
		MaterialEmissive:   true,
	}
	for _, m := range sc.Materials {
		if !validMaterial[m.Type] {
			return errors.New(errors.ErrCodeLoad, "material %q has unknown type %q", m.Name, m.Type)
		}
		if m.Name == "" {
			return errors.New(errors.ErrCodeLoad, "material with type %q has no name", m.Type)
		}
	}

	for i, o := range sc.Objects {
		switch o.Type {
		case ObjectSphere, ObjectPlane:
		default:
			return errors.New(errors.ErrCodeLoad, "object %d has unknown type %q", i, o.Type)
		}
		if _, ok := sc.MaterialByName(o.Material); !ok {
			return errors.New(errors.ErrCodeLoad, "object %d references unknown material %q", i, o.Material)
		}
	}

	if sc.Camera.AspectRatio <= 0 {
		return errors.New(errors.ErrCodeLoad, "camera aspect_ratio must be positive, got %v", sc.Camera.AspectRatio)
	}
	return nil
}

// Validate checks that every asset reference inside the scene resolves to
// an entry in the bundle. It reports the first unresolved reference.
func Validate(sc *Scene, assets AssetSet) error {
	for _, m := range sc.Materials {
		if m.Texture == "" {
			continue
		}
		if !assets.Has(m.Texture) {
			return errors.New(errors.ErrCodeValidation,
				"material %q references asset %q which was not loaded", m.Name, m.Texture)
		}
	}
	return nil
}

// AssetSet is the view of the asset bundle needed for validation.
type AssetSet interface {
	Has(path string) bool
}

// Equal reports whether two scenes are identical under the store's
// equality notion (field-for-field equality of the persisted form).
func Equal(a, b *Scene) bool {
	return a.Camera == b.Camera &&
		a.Background == b.Background &&
		equalMaterials(a.Materials, b.Materials) &&
		equalObjects(a.Objects, b.Objects)
}

func equalMaterials(a, b []Material) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalObjects(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
