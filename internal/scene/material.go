package scene

import (
	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/node"
)

// toColor converts a ColorDoc to a linear color.Color, ignoring alpha
// (the node graph's ColorNode has no alpha channel; alpha belongs to
// texture.Image per spec.md §3).
func (c ColorDoc) toColor() color.Color {
	return color.Color{R: c.R, G: c.G, B: c.B}
}

// bsdfKindFor resolves a material's requested BSDF kind string to one
// of the node package's eight constructors. Unrecognized or empty
// names fall back to "diffuse" (spec.md §6 leaves the exact
// materialType/diffuseBSDF/specularBSDF vocabulary unspecified; see
// DESIGN.md for the chosen mapping).
func bsdfKindFor(name string) string {
	switch name {
	case "metal", "glass", "plastic", "transparent", "isotropic", "emissive", "diffuse":
		return name
	default:
		return "diffuse"
	}
}

// buildBSDF constructs (and hash-conses) the BSDF node tree for one
// MaterialDoc. When both diffuseBSDF and specularBSDF are given, it
// mixes them by specularity (spec.md §6's "materialType"/"diffuseBSDF"/
// "specularBSDF" triad, resolved per DESIGN.md since the source
// document never pins down their exact interaction).
func buildBSDF(arena *node.Arena, m MaterialDoc, materialType, diffuseBSDF, specularBSDF string) node.BsdfID {
	albedo := arena.NewConstantColor(m.Albedo.toColor())
	roughness := arena.NewConstantValue(m.Roughness)
	ior := arena.NewConstantValue(iorOrDefault(m.IOR))

	single := func(kind string) node.BsdfID {
		switch bsdfKindFor(kind) {
		case "metal":
			return arena.NewMetal(albedo, roughness)
		case "glass":
			return arena.NewGlass(albedo, roughness, ior)
		case "plastic":
			return arena.NewPlastic(albedo, roughness, ior)
		case "transparent":
			return arena.NewTransparent(albedo)
		case "isotropic":
			return arena.NewIsotropic(albedo)
		case "emissive":
			return arena.NewEmissive(albedo, arena.NewConstantValue(1))
		default:
			return arena.NewDiffuse(albedo)
		}
	}

	if diffuseBSDF == "" && specularBSDF == "" {
		if materialType != "" {
			return single(materialType)
		}
		return single("diffuse")
	}
	if diffuseBSDF == "" {
		return single(specularBSDF)
	}
	if specularBSDF == "" {
		return single(diffuseBSDF)
	}

	diffuse := single(diffuseBSDF)
	specular := single(specularBSDF)
	factor := arena.NewConstantValue(m.Specularity)
	return arena.NewMix(diffuse, specular, factor)
}

func iorOrDefault(ior float64) float64 {
	if ior <= 0 {
		return 1.45
	}
	return ior
}

// mtlToBSDF maps one parsed .mtl material (original mtlloader.c's `Ka
// Kd Ks Ke Ns d r sharpness Ni` fields) onto a node BSDF, since the
// Wavefront format has no direct "BSDF kind" field of its own:
//   - Ke (emission) non-zero selects an emissive BSDF scaled by Ke.
//   - 0 < d < 1 (partial dissolve) selects glass, using Ni as the IOR.
//   - A specular exponent Ns above 200 selects metal colored by Ks.
//   - Otherwise, diffuse from Kd.
func mtlToBSDF(arena *node.Arena, m *MTLMaterial) node.BsdfID {
	if m.Ke[0] > 0 || m.Ke[1] > 0 || m.Ke[2] > 0 {
		emit := arena.NewConstantColor(color.Color{R: m.Ke[0], G: m.Ke[1], B: m.Ke[2]})
		return arena.NewEmissive(emit, arena.NewConstantValue(1))
	}
	kd := arena.NewConstantColor(color.Color{R: m.Kd[0], G: m.Kd[1], B: m.Kd[2]})
	if m.D > 0 && m.D < 1 {
		roughness := arena.NewConstantValue(0)
		ior := arena.NewConstantValue(iorOrDefault(m.Ni))
		return arena.NewGlass(kd, roughness, ior)
	}
	if m.Ns > 200 {
		ks := arena.NewConstantColor(color.Color{R: m.Ks[0], G: m.Ks[1], B: m.Ks[2]})
		roughness := arena.NewConstantValue(1 - clamp01(m.Ns/1000))
		return arena.NewMetal(ks, roughness)
	}
	return arena.NewDiffuse(kd)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
