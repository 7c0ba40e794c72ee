package material

import (
	"github.com/df07/go-sah-raytracer/pkg/core"
)

const (
	diffuseAbsorption = 0.9

	// Offset applied along the scatter direction so the bounced ray does not
	// immediately re-hit the surface it left.
	diffuseBias = 1e-4
)

// NewDiffuse creates a diffuse material
func NewDiffuse() Material {
	return Material{Kind: KindDiffuse}
}

func (m *Material) bounceDiffuse(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (BounceInfo, bool) {
	scatter := hit.Normal.Add(core.RandomInUnitSphere(sampler)).Normalize()
	target := hit.Point.Add(scatter)

	bias := scatter.Multiply(diffuseBias)
	direction := target.Subtract(hit.Point).Subtract(bias).Normalize()

	return BounceInfo{
		Ray:         core.NewRay(hit.Point.Add(bias), direction),
		Attenuation: hit.Colour,
		Absorption:  diffuseAbsorption,
	}, true
}
