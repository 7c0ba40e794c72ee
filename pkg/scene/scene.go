package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/loaders"
	"github.com/df07/go-sah-raytracer/pkg/log"
	"github.com/df07/go-sah-raytracer/pkg/material"
	"github.com/df07/go-sah-raytracer/pkg/renderer"
)

var logger = log.New("scene")

// ErrEmptyScene is returned when a world is requested for a scene without primitives
var ErrEmptyScene = errors.New("scene: no primitives")

// Time interval used for bounding boxes when building the world
const (
	TimeMin float32 = 0.0
	TimeMax float32 = 999.9
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Primitives     []geometry.Primitive
	CameraConfig   CameraConfig
	SamplingConfig SamplingConfig
	UseBVH         bool
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig matches the reference renders at a smaller resolution
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           480,
		Height:          270,
		SamplesPerPixel: 64,
		MaxDepth:        100,
	}
}

// CameraConfig selects between the fixed framed viewport (VFov == 0) and a
// look-at camera
type CameraConfig struct {
	Zoom float32

	LookFrom core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float32
}

// NewCamera builds a camera for an image of the given size
func (c CameraConfig) NewCamera(width, height int) *renderer.Camera {
	if c.VFov <= 0 {
		zoom := c.Zoom
		if zoom <= 0 {
			zoom = 0.5
		}
		return renderer.NewFramedCamera(width, height, zoom)
	}

	return renderer.NewCamera(renderer.CameraConfig{
		LookFrom:    c.LookFrom,
		LookAt:      c.LookAt,
		Up:          c.Up,
		VFov:        c.VFov,
		AspectRatio: float32(width) / float32(height),
	})
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, colour core.Vec3, mat material.Material) {
	s.Primitives = append(s.Primitives, geometry.NewSphere(center, radius, colour, mat))
}

// AddCube appends an axis-aligned cube to the scene
func (s *Scene) AddCube(center core.Vec3, halfExtent float32, colour core.Vec3, mat material.Material) {
	s.Primitives = append(s.Primitives, geometry.NewCube(center, halfExtent, colour, mat))
}

// AddTriangle appends a triangle; a zero normal selects the face normal
func (s *Scene) AddTriangle(v0, v1, v2, normal, colour core.Vec3, mat material.Material) {
	s.Primitives = append(s.Primitives, geometry.NewTriangle(v0, v1, v2, normal, colour, mat))
}

// AddMesh appends every triangle of mesh after applying transform
func (s *Scene) AddMesh(mesh *loaders.Mesh, transform loaders.Transform, colour core.Vec3, mat material.Material) {
	s.Primitives = append(s.Primitives, mesh.Primitives(transform, colour, mat)...)
}

// World builds the aggregate that rays are traced against: either the
// linear scene or a BVH over the same primitives. BVH statistics are
// returned when a BVH was built.
func (s *Scene) World(useBVH bool) (geometry.Hittable, *geometry.BVHStats, error) {
	if len(s.Primitives) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", s.Name, ErrEmptyScene)
	}

	if !useBVH {
		return geometry.NewScene(s.Primitives), nil, nil
	}

	bvh, err := geometry.NewBVH(s.Primitives, TimeMin, TimeMax)
	if err != nil {
		return nil, nil, fmt.Errorf("building BVH for %s: %w", s.Name, err)
	}
	stats := bvh.Stats()
	return bvh, &stats, nil
}
