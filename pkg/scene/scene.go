// Package scene defines the persisted scene description and its YAML
// store. A scene lists camera parameters, named materials, geometric
// objects, and the asset paths its textured materials reference. Scenes are
// read-only once loaded; only the procedural generator creates new ones.
package scene

// Vec is a persisted 3D vector or point.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Color is a persisted linear RGB color.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// Camera describes the viewpoint. Output height is derived from the
// requested width and AspectRatio at compile time.
type Camera struct {
	LookFrom      Vec     `yaml:"look_from"`
	LookAt        Vec     `yaml:"look_at"`
	Up            Vec     `yaml:"up"`
	VFov          float64 `yaml:"vfov"` // vertical field of view, degrees
	AspectRatio   float64 `yaml:"aspect_ratio"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"`
}

// Background is the vertical gradient returned for rays that escape the
// scene.
type Background struct {
	Top    Color `yaml:"top"`
	Bottom Color `yaml:"bottom"`
}

// MaterialType enumerates the supported material kinds.
type MaterialType string

const (
	MaterialLambertian MaterialType = "lambertian"
	MaterialMetal      MaterialType = "metal"
	MaterialDielectric MaterialType = "dielectric"
	MaterialEmissive   MaterialType = "emissive"
)

// Material describes a named surface. Fields beyond Type are interpreted
// per kind: Albedo/Texture for lambertian, Albedo/Fuzz for metal,
// RefractionIndex for dielectric, Emit for emissive.
type Material struct {
	Name            string       `yaml:"name"`
	Type            MaterialType `yaml:"type"`
	Albedo          Color        `yaml:"albedo,omitempty"`
	Texture         string       `yaml:"texture,omitempty"` // asset path for textured albedo
	Fuzz            float64      `yaml:"fuzz,omitempty"`
	RefractionIndex float64      `yaml:"refraction_index,omitempty"`
	Emit            Color        `yaml:"emit,omitempty"`
}

// ObjectType enumerates the supported primitives.
type ObjectType string

const (
	ObjectSphere ObjectType = "sphere"
	ObjectPlane  ObjectType = "plane"
)

// Object is a single piece of scene geometry referencing a material by name.
type Object struct {
	Type     ObjectType `yaml:"type"`
	Material string     `yaml:"material"`

	// Sphere fields.
	Center Vec     `yaml:"center,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`

	// Plane fields.
	Point  Vec `yaml:"point,omitempty"`
	Normal Vec `yaml:"normal,omitempty"`
}

// Scene is the persisted scene description.
type Scene struct {
	Camera     Camera     `yaml:"camera"`
	Background Background `yaml:"background"`
	Materials  []Material `yaml:"materials"`
	Objects    []Object   `yaml:"objects"`
}

// AssetRefs returns the asset paths referenced by the scene's materials,
// in declaration order, without duplicates.
func (s *Scene) AssetRefs() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, m := range s.Materials {
		if m.Texture == "" || seen[m.Texture] {
			continue
		}
		seen[m.Texture] = true
		refs = append(refs, m.Texture)
	}
	return refs
}

// MaterialByName returns the named material, if declared.
func (s *Scene) MaterialByName(name string) (*Material, bool) {
	for i := range s.Materials {
		if s.Materials[i].Name == name {
			return &s.Materials[i], true
		}
	}
	return nil, false
}
