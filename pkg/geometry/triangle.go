package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

const (
	// Rays this close to parallel with the triangle plane are treated as misses
	triangleParallelEpsilon = 0.1

	// Tolerance of the half-plane edge tests
	triangleEdgeEpsilon = 1e-6
)

// hitTriangle intersects the supporting plane and then checks the hit point
// against the three edges. The face normal shares the vertex winding, so the
// inside test accepts either winding.
func (p *Primitive) hitTriangle(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	v0, v1, v2 := p.Vertices[0], p.Vertices[1], p.Vertices[2]

	faceNormal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()

	denominator := faceNormal.Dot(ray.Direction)
	if math32.Abs(denominator) < triangleParallelEpsilon {
		return nil, false
	}

	distance := -faceNormal.Dot(v0)
	t := -(faceNormal.Dot(ray.Origin) + distance) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	point := ray.At(t)
	if !insideEdge(v0, v1, faceNormal, point) ||
		!insideEdge(v1, v2, faceNormal, point) ||
		!insideEdge(v2, v0, faceNormal, point) {
		return nil, false
	}

	normal := p.Normal
	if normal.IsZero() {
		normal = faceNormal
	}

	return p.record(ray, t, normal), true
}

// insideEdge reports whether point lies on the inner side of the edge from a to b
func insideEdge(a, b, normal, point core.Vec3) bool {
	edge := b.Subtract(a)
	return edge.Cross(normal).Dot(point.Subtract(a)) <= triangleEdgeEpsilon
}
