package material

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
)

const metalAbsorption = 0.8

// NewMetal creates a metal material. Fuzz is kept as given: 0 is a perfect
// mirror and values around 1 are very rough.
func NewMetal(fuzz float32) Material {
	return Material{Kind: KindMetal, Fuzz: fuzz}
}

// bounceMetal reflects about a fuzz-perturbed normal. The outgoing ray starts
// exactly at the hit point.
func (m *Material) bounceMetal(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (BounceInfo, bool) {
	normal := hit.Normal.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	reflected := core.Reflect(rayIn.Direction.Normalize(), normal).Normalize()

	return BounceInfo{
		Ray:         core.NewRay(hit.Point, reflected),
		Attenuation: hit.Colour,
		Absorption:  metalAbsorption,
	}, true
}
