package geometry

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// Hittable is anything a ray can be intersected with: a single primitive,
// the linear Scene or a BVH.
type Hittable interface {
	// Hit returns the nearest intersection with t strictly inside (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool)
	// BoundingBox returns a box enclosing the object over the time interval
	BoundingBox(tMin, tMax float32) core.AABB
}
