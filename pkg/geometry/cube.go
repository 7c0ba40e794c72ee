package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// hitCube intersects the axis-aligned cube with the slab method, remembering
// which axis produced the entry and exit distances so the face normal can be
// recovered without another pass.
func (p *Primitive) hitCube(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	extent := core.NewVec3(p.Size, p.Size, p.Size)
	lo := p.Center.Subtract(extent)
	hi := p.Center.Add(extent)

	minT := -math32.Inf(1)
	maxT := math32.Inf(1)
	nearAxis := core.AxisX
	farAxis := core.AxisX

	for axis := core.AxisX; axis <= core.AxisZ; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		t0 := (lo.Axis(axis) - origin) / direction
		t1 := (hi.Axis(axis) - origin) / direction
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > minT {
			minT = t0
			nearAxis = axis
		}
		if t1 < maxT {
			maxT = t1
			farAxis = axis
		}
	}

	// Cube entirely behind the ray, or slabs do not overlap
	if maxT < 0 || maxT < minT {
		return nil, false
	}

	// Origin inside the cube: report the exit point
	t := minT
	axis := nearAxis
	if minT < 0 {
		t = maxT
		axis = farAxis
	}

	if t <= tMin || t >= tMax {
		return nil, false
	}

	normal := unitAxis(axis)
	oc := ray.Origin.Subtract(p.Center)
	if normal.Dot(oc) < 0 {
		normal = normal.Negate()
	}

	return p.record(ray, t, normal.Normalize()), true
}

func unitAxis(axis core.Axis) core.Vec3 {
	switch axis {
	case core.AxisX:
		return core.NewVec3(1, 0, 0)
	case core.AxisY:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}
