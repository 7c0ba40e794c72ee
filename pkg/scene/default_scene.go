package scene

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// addGround adds the large mirrored sphere every built-in scene stands on
func (s *Scene) addGround() {
	s.AddSphere(core.NewVec3(0, -19.2, -10), 20.0, core.NewVec3(1, 1, 1), material.NewMetal(0.1))
}

// NewDefaultScene creates five spheres of mixed materials resting above a
// large metal ground sphere
func NewDefaultScene() *Scene {
	s := &Scene{
		Name:           "default",
		CameraConfig:   CameraConfig{Zoom: 0.5},
		SamplingConfig: DefaultSamplingConfig(),
	}

	s.AddSphere(core.NewVec3(0, 0, -5), 0.5, core.NewVec3(1, 0.2, 0.2), material.NewDiffuse())
	s.AddSphere(core.NewVec3(1, 0, -7), 2.2, core.NewVec3(1, 1, 0), material.NewDiffuse())
	s.AddSphere(core.NewVec3(1, 0.5, -5), 0.75, core.NewVec3(1, 1, 1), material.NewMetal(0.0))
	s.AddSphere(core.NewVec3(-1, 0, -4), 0.3, core.NewVec3(0, 1, 0), material.NewDiffuse())
	s.AddSphere(core.NewVec3(-0.5, 0, -4), 0.3, core.NewVec3(0, 0.3, 0.8), material.NewDiffuse())
	s.addGround()

	return s
}

// NewCubeScene creates a cluster of small diffuse and mirror cubes close to
// the camera
func NewCubeScene() *Scene {
	s := &Scene{
		Name:           "cubes",
		CameraConfig:   CameraConfig{Zoom: 0.5},
		SamplingConfig: DefaultSamplingConfig(),
	}

	white := core.NewVec3(1, 1, 1)
	s.AddCube(core.NewVec3(-0.75, 0, -2), 0.25, white, material.NewMetal(0.0))
	s.AddCube(core.NewVec3(-1.05, 0, -2), 0.25, core.NewVec3(0.3, 0.3, 1), material.NewDiffuse())
	s.AddCube(core.NewVec3(0.55, 0, -2), 0.25, white, material.NewMetal(0.0))
	s.AddCube(core.NewVec3(0.75, 0.4, -2), 0.25, core.NewVec3(1, 0.3, 0.3), material.NewDiffuse())
	s.AddCube(core.NewVec3(0.95, -0.25, -1.9), 0.25, white, material.NewDiffuse())
	s.AddCube(core.NewVec3(-0.95, -0.25, -1.9), 0.25, white, material.NewDiffuse())
	s.addGround()

	return s
}

// NewGridScene creates a row of cubes in front of a row of small spheres,
// with a single triangle floating above them
func NewGridScene() *Scene {
	s := &Scene{
		Name:           "grid",
		CameraConfig:   CameraConfig{Zoom: 0.5},
		SamplingConfig: DefaultSamplingConfig(),
		UseBVH:         true,
	}

	for i := 0; i < 7; i++ {
		x := -1.5 + float32(i)/2
		s.AddCube(core.NewVec3(x, 0.5, -3), 0.25, core.NewVec3(0.3, 0.3, 1), material.NewDiffuse())
		s.AddSphere(core.NewVec3(x, 0.6, -6), 0.1, core.NewVec3(0.3, 1, 0.3), material.NewDiffuse())
	}
	s.addGround()

	s.AddTriangle(
		core.NewVec3(0.5, 1, -3),
		core.NewVec3(0, 1.5, -4),
		core.NewVec3(-0.5, 1, -7),
		core.Vec3{},
		core.NewVec3(1, 0.2, 0.2),
		material.NewDiffuse(),
	)

	return s
}
