package renderer

import (
	"github.com/charmbracelet/harmonica"
	"github.com/df07/go-sah-raytracer/pkg/core"
)

// CameraPath moves a camera origin towards a target with a critically damped
// spring, producing one position per frame.
type CameraPath struct {
	spring   harmonica.Spring
	position core.Vec3
	velocity core.Vec3
	target   core.Vec3
}

// DefaultStep is the per-frame origin offset of the reference animation
var DefaultStep = core.NewVec3(0.1, 0, 0.1)

// NewCameraPath creates a path from start to target sampled at fps frames per second
func NewCameraPath(start, target core.Vec3, fps int) *CameraPath {
	return &CameraPath{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
		position: start,
		target:   target,
	}
}

// NewSteppedCameraPath creates a path whose target lies frames steps away from start
func NewSteppedCameraPath(start, step core.Vec3, frames, fps int) *CameraPath {
	return NewCameraPath(start, start.Add(step.Multiply(float32(frames))), fps)
}

// Position returns the current origin
func (p *CameraPath) Position() core.Vec3 {
	return p.position
}

// Advance moves one frame along the path and returns the new origin
func (p *CameraPath) Advance() core.Vec3 {
	x, vx := p.spring.Update(float64(p.position.X), float64(p.velocity.X), float64(p.target.X))
	y, vy := p.spring.Update(float64(p.position.Y), float64(p.velocity.Y), float64(p.target.Y))
	z, vz := p.spring.Update(float64(p.position.Z), float64(p.velocity.Z), float64(p.target.Z))

	p.position = core.NewVec3(float32(x), float32(y), float32(z))
	p.velocity = core.NewVec3(float32(vx), float32(vy), float32(vz))
	return p.position
}

// Origins returns the origin for each of frames frames. The first frame sits
// at the start position.
func (p *CameraPath) Origins(frames int) []core.Vec3 {
	origins := make([]core.Vec3, 0, frames)
	for i := 0; i < frames; i++ {
		if i == 0 {
			origins = append(origins, p.position)
			continue
		}
		origins = append(origins, p.Advance())
	}
	return origins
}
