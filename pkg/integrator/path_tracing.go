package integrator

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
)

// PathTracer implements recursive unidirectional path tracing
type PathTracer struct {
	config Config
}

// NewPathTracer creates a new path tracer
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// Config returns the settings the tracer was built with
func (pt *PathTracer) Config() Config {
	return pt.config
}

// RayColour traces a camera ray starting at depth 0
func (pt *PathTracer) RayColour(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.Colour(ray, world, 0, sampler)
}

// Colour returns the colour seen along ray. Recursion stops after MaxDepth
// bounces with the sentinel colour, which makes runaway paths visible.
func (pt *PathTracer) Colour(ray core.Ray, world geometry.Hittable, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, pt.config.TMin, pt.config.TMax)
	if !isHit {
		return pt.background(ray)
	}

	if pt.config.NormalShading {
		return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
	}

	if depth >= pt.config.MaxDepth {
		return pt.config.Sentinel
	}

	bounce, ok := hit.Material.Bounce(ray, pt.config.BounceTMin, pt.config.TMax, hit, sampler)
	if !ok {
		return core.Vec3{}
	}

	incoming := pt.Colour(bounce.Ray, world, depth+1, sampler)
	return bounce.Attenuation.MultiplyVec(incoming).Multiply(bounce.Absorption)
}

// background blends white into the sky colour along the horizontal
// component of the ray direction
func (pt *PathTracer) background(ray core.Ray) core.Vec3 {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.X + 1.0)
	return core.NewVec3(1, 1, 1).Lerp(pt.config.Sky, t)
}
