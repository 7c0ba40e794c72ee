package geometry

import (
	"fmt"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// Kind selects the shape of a Primitive
type Kind uint8

const (
	KindSphere Kind = iota
	KindCube
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindCube:
		return "cube"
	case KindTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Primitive is a closed set of renderable shapes. Only the fields relevant to
// Kind are populated; every primitive owns its material.
type Primitive struct {
	Kind     Kind
	Center   core.Vec3    // Sphere and Cube
	Size     float32      // Sphere radius or Cube half-extent
	Vertices [3]core.Vec3 // Triangle
	Normal   core.Vec3    // Triangle: stored normal, zero means "use the face normal"
	Colour   core.Vec3
	Material material.Material
}

// NewSphere creates a sphere primitive
func NewSphere(center core.Vec3, radius float32, colour core.Vec3, mat material.Material) Primitive {
	return Primitive{
		Kind:     KindSphere,
		Center:   center,
		Size:     radius,
		Colour:   colour,
		Material: mat,
	}
}

// NewCube creates an axis-aligned cube primitive from its center and half-extent
func NewCube(center core.Vec3, halfExtent float32, colour core.Vec3, mat material.Material) Primitive {
	return Primitive{
		Kind:     KindCube,
		Center:   center,
		Size:     halfExtent,
		Colour:   colour,
		Material: mat,
	}
}

// NewTriangle creates a triangle primitive. A zero normal makes Hit report
// the geometric face normal; any other value is reported verbatim.
func NewTriangle(v0, v1, v2, normal, colour core.Vec3, mat material.Material) Primitive {
	return Primitive{
		Kind:     KindTriangle,
		Vertices: [3]core.Vec3{v0, v1, v2},
		Normal:   normal,
		Colour:   colour,
		Material: mat,
	}
}

// Hit dispatches to the intersection routine for the primitive's kind.
// The returned record points at the primitive's own material, so the
// primitive must not be copied while the record is in use.
func (p *Primitive) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	switch p.Kind {
	case KindSphere:
		return p.hitSphere(ray, tMin, tMax)
	case KindCube:
		return p.hitCube(ray, tMin, tMax)
	case KindTriangle:
		return p.hitTriangle(ray, tMin, tMax)
	default:
		return nil, false
	}
}

// BoundingBox returns the axis-aligned box enclosing the primitive.
// Primitives are static, so the time interval is ignored.
func (p *Primitive) BoundingBox(tMin, tMax float32) core.AABB {
	switch p.Kind {
	case KindSphere, KindCube:
		extent := core.NewVec3(p.Size, p.Size, p.Size)
		return core.NewAABB(p.Center.Subtract(extent), p.Center.Add(extent))
	case KindTriangle:
		return core.NewAABBFromPoints(p.Vertices[0], p.Vertices[1], p.Vertices[2])
	default:
		return core.AABB{}
	}
}

func (p *Primitive) record(ray core.Ray, t float32, normal core.Vec3) *material.HitRecord {
	return &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   normal,
		Colour:   p.Colour,
		Material: &p.Material,
	}
}
