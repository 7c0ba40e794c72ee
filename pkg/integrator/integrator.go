package integrator

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColour computes the linear colour carried back along a camera ray
	RayColour(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3
}

// Config controls recursion limits, intersection intervals and shading mode
type Config struct {
	MaxDepth int // Bounces before the sentinel colour is returned

	// Interval used for camera rays and the interval used for bounced rays.
	// The bounce interval starts further out to avoid self-intersection.
	TMin       float32
	BounceTMin float32
	TMax       float32

	Sky      core.Vec3 // Background colour at the +X end of the gradient
	Sentinel core.Vec3 // Returned when the recursion budget runs out

	NormalShading bool // Shade hits by their normal instead of tracing
}

// DefaultConfig returns the settings of the reference renderer
func DefaultConfig() Config {
	return Config{
		MaxDepth:   100,
		TMin:       1e-5,
		BounceTMin: 1e-4,
		TMax:       999.9,
		Sky:        core.NewVec3(1, 0, 0),
		Sentinel:   core.NewVec3(1, 0, 1),
	}
}
