package node

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

const defaultIOR = 1.45

type bsdfKind uint8

const (
	bsdfDiffuse bsdfKind = iota
	bsdfMetal
	bsdfGlass
	bsdfPlastic
	bsdfTransparent
	bsdfIsotropic
	bsdfMix
	bsdfEmissive
)

type bsdfDescriptor struct {
	kind bsdfKind

	color     ColorID // diffuse/metal/glass/plastic/transparent/isotropic/emissive albedo or emission color
	roughness ValueID // metal/glass/plastic
	ior       ValueID // glass/plastic

	a, b   BsdfID  // mix operands
	factor ValueID // mix blend

	strength ValueID // emissive
}

func hashBsdfDescriptor(d bsdfDescriptor) uint64 {
	return fnv1a(
		uint64(d.kind), uint64(d.color), uint64(d.roughness), uint64(d.ior),
		uint64(d.a), uint64(d.b), uint64(d.factor), uint64(d.strength),
	)
}

func equalBsdfDescriptor(x, y bsdfDescriptor) bool { return x == y }

// NewDiffuse interns a Lambertian BSDF with the given albedo texture.
func (a *Arena) NewDiffuse(c ColorID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfDiffuse, color: c})
}

// NewMetal interns a roughness-fuzzed mirror BSDF.
func (a *Arena) NewMetal(c ColorID, roughness ValueID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfMetal, color: c, roughness: roughness})
}

// NewGlass interns a Fresnel-Schlick reflect/refract dielectric BSDF.
func (a *Arena) NewGlass(c ColorID, roughness, ior ValueID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfGlass, color: c, roughness: roughness, ior: ior})
}

// NewPlastic interns a diffuse-plus-Fresnel-mirror BSDF.
func (a *Arena) NewPlastic(c ColorID, roughness, ior ValueID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfPlastic, color: c, roughness: roughness, ior: ior})
}

// NewTransparent interns a pure pass-through BSDF (no refraction bend).
func (a *Arena) NewTransparent(c ColorID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfTransparent, color: c})
}

// NewIsotropic interns the volumetric scattering BSDF used by
// SphereVolume/MeshVolume instances (spec.md §4.3).
func (a *Arena) NewIsotropic(c ColorID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfIsotropic, color: c})
}

// NewMix interns a stochastic blend of two BSDFs, choosing a with
// probability factor.eval(hit) (spec.md §4.4.1).
func (a *Arena) NewMix(x, y BsdfID, factor ValueID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfMix, a: x, b: y, factor: factor})
}

// NewEmissive interns an emissive material: zero BSDF throughput, with
// color*strength read by the integrator as the emission side channel
// (spec.md §4.4.1, §4.5).
func (a *Arena) NewEmissive(c ColorID, strength ValueID) BsdfID {
	return a.internBsdf(bsdfDescriptor{kind: bsdfEmissive, color: c, strength: strength})
}

// Sample is the {out_dir, color_weight} pair every BSDF variant
// produces (spec.md §4.4.1). There is no explicit pdf field: the
// sampling distribution is implicitly the throughput weight.
type Sample struct {
	Out   vecmath.Vector3
	Color color.Color
}

// SampleBsdf draws one scattering event from the BSDF id at hit.
func (a *Arena) SampleBsdf(id BsdfID, s *sampler.Sampler, hit geom.Hit) Sample {
	d := a.bsdf(id)
	switch d.kind {
	case bsdfDiffuse:
		out := hit.Normal.Add(s.RandomOnUnitSphere()).Normalize()
		return Sample{Out: out, Color: a.EvalColor(d.color, hit)}

	case bsdfMetal:
		rough := a.EvalValue(d.roughness, hit)
		reflected := hit.IncidentRay.Direction.Normalize().Reflect(hit.Normal)
		out := reflected.Add(s.RandomOnUnitSphere().Scale(rough)).Normalize()
		return Sample{Out: out, Color: a.EvalColor(d.color, hit)}

	case bsdfGlass:
		return a.sampleGlass(d, s, hit)

	case bsdfPlastic:
		return a.samplePlastic(d, s, hit)

	case bsdfTransparent:
		return Sample{Out: hit.IncidentRay.Direction.Normalize(), Color: a.EvalColor(d.color, hit)}

	case bsdfIsotropic:
		return Sample{Out: s.RandomOnUnitSphere(), Color: a.EvalColor(d.color, hit)}

	case bsdfMix:
		if s.NextDim() < a.EvalValue(d.factor, hit) {
			return a.SampleBsdf(d.a, s, hit)
		}
		return a.SampleBsdf(d.b, s, hit)

	case bsdfEmissive:
		return Sample{Color: color.Black}
	}
	return Sample{}
}

// EvalEmission returns the emission side-channel radiance of a BSDF at
// hit; zero for every non-emissive variant (spec.md §4.4.1/§4.5).
func (a *Arena) EvalEmission(id BsdfID, hit geom.Hit) color.Color {
	d := a.bsdf(id)
	if d.kind != bsdfEmissive {
		return color.Black
	}
	return a.EvalColor(d.color, hit).Scale(a.EvalValue(d.strength, hit))
}

// schlickR0 computes Schlick's approximation base reflectance
// R0 = ((1-ior)/(1+ior))^2.
func schlickR0(ior float64) float64 {
	r := (1 - ior) / (1 + ior)
	return r * r
}

func schlickReflectance(cosTheta, ior float64) float64 {
	r0 := schlickR0(ior)
	return r0 + (1-r0)*math.Pow(1-cosTheta, 5)
}

func (a *Arena) sampleGlass(d bsdfDescriptor, s *sampler.Sampler, hit geom.Hit) Sample {
	rough := a.EvalValue(d.roughness, hit)
	ior := a.EvalValue(d.ior, hit)
	if ior == 0 {
		ior = defaultIOR
	}
	unitDir := hit.IncidentRay.Direction.Normalize()
	normal := hit.Normal
	cosTheta := -unitDir.Dot(normal)
	niOverNt := 1 / ior
	if cosTheta < 0 {
		// Ray is inside the medium: flip normal, invert the index ratio.
		normal = normal.Negate()
		cosTheta = -cosTheta
		niOverNt = ior
	}

	refracted, canRefract := refract(unitDir, normal, niOverNt)
	reflectProb := 1.0
	if canRefract {
		reflectProb = schlickReflectance(cosTheta, ior)
	}

	var out vecmath.Vector3
	if s.NextDim() < reflectProb {
		out = unitDir.Reflect(normal)
	} else {
		out = refracted
	}
	out = out.Add(s.RandomOnUnitSphere().Scale(rough)).Normalize()
	return Sample{Out: out, Color: a.EvalColor(d.color, hit)}
}

// refract applies Snell's law; returns ok=false on total internal
// reflection.
func refract(incident, normal vecmath.Vector3, niOverNt float64) (vecmath.Vector3, bool) {
	cosTheta := -incident.Dot(normal)
	sin2ThetaT := niOverNt * niOverNt * (1 - cosTheta*cosTheta)
	if sin2ThetaT > 1 {
		return vecmath.Vector3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	out := incident.Scale(niOverNt).Add(normal.Scale(niOverNt*cosTheta - cosThetaT))
	return out.Normalize(), true
}

func (a *Arena) samplePlastic(d bsdfDescriptor, s *sampler.Sampler, hit geom.Hit) Sample {
	ior := a.EvalValue(d.ior, hit)
	if ior == 0 {
		ior = defaultIOR
	}
	unitDir := hit.IncidentRay.Direction.Normalize()
	cosTheta := math.Abs(unitDir.Dot(hit.Normal))
	reflectProb := schlickReflectance(cosTheta, ior)

	if s.NextDim() < reflectProb {
		rough := a.EvalValue(d.roughness, hit)
		reflected := unitDir.Reflect(hit.Normal)
		out := reflected.Add(s.RandomOnUnitSphere().Scale(rough)).Normalize()
		return Sample{Out: out, Color: color.White}
	}
	out := hit.Normal.Add(s.RandomOnUnitSphere()).Normalize()
	return Sample{Out: out, Color: a.EvalColor(d.color, hit)}
}
