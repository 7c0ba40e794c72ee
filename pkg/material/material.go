package material

import (
	"fmt"

	"github.com/df07/go-sah-raytracer/pkg/core"
)

// Kind selects the scattering behaviour of a Material
type Kind uint8

const (
	KindDiffuse Kind = iota
	KindMetal
)

func (k Kind) String() string {
	switch k {
	case KindDiffuse:
		return "diffuse"
	case KindMetal:
		return "metal"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Material is a closed set of surface behaviours. Only the fields relevant to
// Kind are used; materials are immutable once attached to a primitive.
type Material struct {
	Kind   Kind
	Albedo core.Vec3 // Diffuse: placeholder, the surface colour comes from the primitive
	Fuzz   float32   // Metal: 0 = perfect mirror, 1 = very fuzzy
}

// BounceInfo is the outcome of a material scattering an incoming ray
type BounceInfo struct {
	Ray         core.Ray  // Outgoing ray
	Attenuation core.Vec3 // Per-channel colour multiplier
	Absorption  float32   // Energy multiplier
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float32   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal at intersection
	Colour   core.Vec3 // Surface colour of the hit primitive
	Material *Material // Material owned by the hit primitive
}

// Bounce scatters rayIn off the surface described by hit. The boolean result
// is false when the ray is absorbed; neither current kind ever absorbs.
func (m *Material) Bounce(rayIn core.Ray, tMin, tMax float32, hit *HitRecord, sampler core.Sampler) (BounceInfo, bool) {
	switch m.Kind {
	case KindDiffuse:
		return m.bounceDiffuse(rayIn, hit, sampler)
	case KindMetal:
		return m.bounceMetal(rayIn, hit, sampler)
	default:
		return BounceInfo{}, false
	}
}
