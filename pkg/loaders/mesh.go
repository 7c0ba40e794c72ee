package loaders

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/geometry"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// MeshTriangle is one imported face. Normal is the normal of the face's first
// vertex, or zero when the source file has no normals.
type MeshTriangle struct {
	Vertices [3]core.Vec3
	Normal   core.Vec3
}

// Mesh is a flat triangle soup produced by the loaders
type Mesh struct {
	Name      string
	Triangles []MeshTriangle
}

// Transform scales then offsets mesh vertices
type Transform struct {
	Scale  float32
	Offset core.Vec3
}

// IdentityTransform leaves vertices unchanged
var IdentityTransform = Transform{Scale: 1}

// Apply transforms a single point
func (t Transform) Apply(p core.Vec3) core.Vec3 {
	return p.Multiply(t.Scale).Add(t.Offset)
}

// Bounds returns the box enclosing every vertex of the mesh
func (m *Mesh) Bounds() core.AABB {
	if len(m.Triangles) == 0 {
		return core.AABB{}
	}
	box := core.NewAABBFromPoints(m.Triangles[0].Vertices[:]...)
	for _, tri := range m.Triangles[1:] {
		box = box.Union(core.NewAABBFromPoints(tri.Vertices[:]...))
	}
	return box
}

// Primitives converts the mesh into triangle primitives sharing one colour
// and material. Normals are passed through untouched so that a zero normal
// still selects the geometric face normal.
func (m *Mesh) Primitives(transform Transform, colour core.Vec3, mat material.Material) []geometry.Primitive {
	prims := make([]geometry.Primitive, 0, len(m.Triangles))
	for _, tri := range m.Triangles {
		prims = append(prims, geometry.NewTriangle(
			transform.Apply(tri.Vertices[0]),
			transform.Apply(tri.Vertices[1]),
			transform.Apply(tri.Vertices[2]),
			tri.Normal,
			colour,
			mat,
		))
	}
	return prims
}
