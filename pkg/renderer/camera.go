package renderer

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera generates rays through a rectangular viewport. The viewport corner
// and spans are offsets from the origin, so moving the origin translates the
// whole view.
type Camera struct {
	origin     core.Vec3
	lowerLeft  core.Vec3
	horizontal core.Vec3
	vertical   core.Vec3
}

// CameraConfig describes a look-at camera
type CameraConfig struct {
	LookFrom    core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	VFov        float32 // Vertical field of view in degrees
	AspectRatio float32
}

// NewViewportCamera creates a camera from an explicit viewport
func NewViewportCamera(origin, lowerLeft, horizontal, vertical core.Vec3) *Camera {
	return &Camera{
		origin:     origin,
		lowerLeft:  lowerLeft,
		horizontal: horizontal,
		vertical:   vertical,
	}
}

// NewFramedCamera reproduces the fixed framing of the reference renders: a
// viewport ten units down -Z, scaled by zoom and stretched to the aspect ratio.
func NewFramedCamera(width, height int, zoom float32) *Camera {
	aspect := float32(width) / float32(height)
	fov := 1.5 * zoom

	return NewViewportCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(-5*zoom, -2*zoom, -10),
		core.NewVec3(4*aspect*fov, 0, 0),
		core.NewVec3(0, 4*fov, 0),
	)
}

// NewCamera creates a look-at camera with a unit focal distance
func NewCamera(config CameraConfig) *Camera {
	from := toMgl(config.LookFrom)
	up := toMgl(config.Up)
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}

	// Camera basis: w points backwards, u right, v up
	w := from.Sub(toMgl(config.LookAt)).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	halfHeight := math32.Tan(mgl32.DegToRad(config.VFov) / 2)
	halfWidth := config.AspectRatio * halfHeight

	lowerLeft := u.Mul(-halfWidth).Sub(v.Mul(halfHeight)).Sub(w)

	return NewViewportCamera(
		config.LookFrom,
		fromMgl(lowerLeft),
		fromMgl(u.Mul(2*halfWidth)),
		fromMgl(v.Mul(2*halfHeight)),
	)
}

// GetRay generates a ray for viewport coordinates (s, t) in [0, 1]. The
// direction is left unnormalized.
func (c *Camera) GetRay(s, t float32) core.Ray {
	direction := c.lowerLeft.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(c.origin, direction)
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// WithOrigin returns a copy of the camera moved to origin, keeping its viewport
func (c *Camera) WithOrigin(origin core.Vec3) *Camera {
	moved := *c
	moved.origin = origin
	return &moved
}

func toMgl(v core.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) core.Vec3 {
	return core.NewVec3(v.X(), v.Y(), v.Z())
}
