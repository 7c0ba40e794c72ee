package geometry

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// Scene is an ordered list of primitives tested one after another.
// It is the reference aggregate that the BVH must agree with.
type Scene struct {
	Primitives []Primitive
}

// NewScene creates a scene over the given primitives. The slice is copied.
func NewScene(prims []Primitive) *Scene {
	owned := make([]Primitive, len(prims))
	copy(owned, prims)
	return &Scene{Primitives: owned}
}

// Hit returns the nearest intersection over all primitives
func (s *Scene) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for i := range s.Primitives {
		if hit, ok := s.Primitives[i].Hit(ray, tMin, closestSoFar); ok && hit.T < closestSoFar {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of all primitive boxes, or an empty box for
// an empty scene
func (s *Scene) BoundingBox(tMin, tMax float32) core.AABB {
	if len(s.Primitives) == 0 {
		return core.AABB{}
	}

	box := s.Primitives[0].BoundingBox(tMin, tMax)
	for i := 1; i < len(s.Primitives); i++ {
		box = box.Union(s.Primitives[i].BoundingBox(tMin, tMax))
	}
	return box
}

// Len returns the number of primitives in the scene
func (s *Scene) Len() int {
	return len(s.Primitives)
}
