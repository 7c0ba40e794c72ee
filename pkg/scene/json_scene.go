package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/loaders"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// Vec3Cfg is a vector written as a JSON array of three numbers
type Vec3Cfg [3]float32

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type MaterialCfg struct {
	Type string  `json:"type"` // "diffuse" (default) or "metal"
	Fuzz float32 `json:"fuzz,omitempty"`
}

type CameraCfg struct {
	Zoom     float32  `json:"zoom,omitempty"`
	LookFrom *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt   *Vec3Cfg `json:"lookAt,omitempty"`
	Up       *Vec3Cfg `json:"up,omitempty"`
	VFov     float32  `json:"vfov,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg     `json:"center"`
	Radius   float32     `json:"radius"`
	Colour   Vec3Cfg     `json:"colour"`
	Material MaterialCfg `json:"material"`
}

type CubeCfg struct {
	Center     Vec3Cfg     `json:"center"`
	HalfExtent float32     `json:"halfExtent"`
	Colour     Vec3Cfg     `json:"colour"`
	Material   MaterialCfg `json:"material"`
}

type TriangleCfg struct {
	Vertices [3]Vec3Cfg  `json:"vertices"`
	Normal   Vec3Cfg     `json:"normal,omitempty"`
	Colour   Vec3Cfg     `json:"colour"`
	Material MaterialCfg `json:"material"`
}

type MeshCfg struct {
	Path     string      `json:"path"` // relative to the scene file
	Scale    float32     `json:"scale,omitempty"`
	Offset   Vec3Cfg     `json:"offset"`
	Colour   Vec3Cfg     `json:"colour"`
	Material MaterialCfg `json:"material"`
}

// FileConfig is the on-disk JSON form of a scene
type FileConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Width    int  `json:"width,omitempty"`
	Height   int  `json:"height,omitempty"`
	Spp      int  `json:"spp,omitempty"`
	MaxDepth int  `json:"maxDepth,omitempty"`
	BVH      bool `json:"bvh,omitempty"`

	Camera    CameraCfg     `json:"camera"`
	Spheres   []SphereCfg   `json:"spheres,omitempty"`
	Cubes     []CubeCfg     `json:"cubes,omitempty"`
	Triangles []TriangleCfg `json:"triangles,omitempty"`
	Meshes    []MeshCfg     `json:"meshes,omitempty"`
}

func readFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFile reads a JSON scene file. Missing sampling values fall back to
// DefaultSamplingConfig.
func LoadFile(path string) (*Scene, error) {
	cfg, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}

	s, err := cfg.build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	logger.Infof("loaded scene %q from %s: %d primitives", s.Name, path, len(s.Primitives))
	return s, nil
}

func (cfg *FileConfig) build(baseDir string) (*Scene, error) {
	// Defaults / validation
	sampling := DefaultSamplingConfig()
	if cfg.Width > 0 {
		sampling.Width = cfg.Width
	}
	if cfg.Height > 0 {
		sampling.Height = cfg.Height
	}
	if cfg.Spp > 0 {
		sampling.SamplesPerPixel = cfg.Spp
	}
	if cfg.MaxDepth > 0 {
		sampling.MaxDepth = cfg.MaxDepth
	}

	s := &Scene{
		Name:           cfg.Name,
		CameraConfig:   cfg.Camera.config(),
		SamplingConfig: sampling,
		UseBVH:         cfg.BVH,
	}

	for i, sp := range cfg.Spheres {
		mat, err := sp.Material.material()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if sp.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive", i)
		}
		s.AddSphere(sp.Center.vec(), sp.Radius, sp.Colour.vec(), mat)
	}

	for i, c := range cfg.Cubes {
		mat, err := c.Material.material()
		if err != nil {
			return nil, fmt.Errorf("cube %d: %w", i, err)
		}
		if c.HalfExtent <= 0 {
			return nil, fmt.Errorf("cube %d: halfExtent must be positive", i)
		}
		s.AddCube(c.Center.vec(), c.HalfExtent, c.Colour.vec(), mat)
	}

	for i, tri := range cfg.Triangles {
		mat, err := tri.Material.material()
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		s.AddTriangle(tri.Vertices[0].vec(), tri.Vertices[1].vec(), tri.Vertices[2].vec(), tri.Normal.vec(), tri.Colour.vec(), mat)
	}

	for i, m := range cfg.Meshes {
		mat, err := m.Material.material()
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		path := m.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		mesh, err := LoadMesh(path)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		scale := m.Scale
		if scale == 0 {
			scale = 1
		}
		s.AddMesh(mesh, loaders.Transform{Scale: scale, Offset: m.Offset.vec()}, m.Colour.vec(), mat)
	}

	return s, nil
}

func (c CameraCfg) config() CameraConfig {
	config := CameraConfig{Zoom: c.Zoom, VFov: c.VFov, Up: core.NewVec3(0, 1, 0)}
	if c.LookFrom != nil {
		config.LookFrom = c.LookFrom.vec()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.vec()
	} else {
		config.LookAt = core.NewVec3(0, 0, -1)
	}
	if c.Up != nil {
		config.Up = c.Up.vec()
	}
	return config
}

func (m MaterialCfg) material() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "", "diffuse":
		return material.NewDiffuse(), nil
	case "metal":
		if m.Fuzz < 0 {
			return material.Material{}, fmt.Errorf("metal fuzz must not be negative, got %g", m.Fuzz)
		}
		return material.NewMetal(m.Fuzz), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", m.Type)
	}
}
