package node

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/texture"
)

var defaultColor = color.Black

type colorKind uint8

const (
	colorConstant colorKind = iota
	colorCheckerboard
	colorGradient
	colorGrayscale
	colorCombineRGB
	colorImageTexture
)

// colorDescriptor is the candidate/interned record for a ColorNode
// (spec.md §3/§4.4). Only the fields relevant to kind are meaningful;
// the rest are zero and still participate in the hash/equal so that
// two descriptors of different kinds never collide.
type colorDescriptor struct {
	kind colorKind

	constant color.Color // colorConstant

	a, b       ColorID // colorCheckerboard (a,b), colorGradient (down=a, up=b)
	scale      float64 // colorCheckerboard
	worldSpace bool    // colorCheckerboard

	value ValueID // colorGrayscale

	r, g, b2 ValueID // colorCombineRGB

	textureIndex int  // colorImageTexture, index into Arena.textures
	filtered     bool // colorImageTexture
}

func hashColorDescriptor(d colorDescriptor) uint64 {
	return fnv1a(
		uint64(d.kind),
		hashFloat(d.constant.R), hashFloat(d.constant.G), hashFloat(d.constant.B),
		uint64(d.a), uint64(d.b), hashFloat(d.scale), hashBool(d.worldSpace),
		uint64(d.value),
		uint64(d.r), uint64(d.g), uint64(d.b2),
		uint64(d.textureIndex), hashBool(d.filtered),
	)
}

func equalColorDescriptor(x, y colorDescriptor) bool { return x == y }

// NewConstantColor interns a flat color leaf.
func (a *Arena) NewConstantColor(c color.Color) ColorID {
	return a.internColor(colorDescriptor{kind: colorConstant, constant: c})
}

// NewCheckerboard interns a two-tone checker pattern; worldSpace selects
// between UV-mapped and world-position-mapped tiling.
func (a *Arena) NewCheckerboard(tileA, tileB ColorID, scale float64, worldSpace bool) ColorID {
	return a.internColor(colorDescriptor{kind: colorCheckerboard, a: tileA, b: tileB, scale: scale, worldSpace: worldSpace})
}

// NewGradient interns a hemispheric up/down blend keyed by ray.y.
func (a *Arena) NewGradient(down, up ColorID) ColorID {
	return a.internColor(colorDescriptor{kind: colorGradient, a: down, b: up})
}

// NewGrayscale interns a scalar-to-gray wrapper around a ValueNode.
func (a *Arena) NewGrayscale(v ValueID) ColorID {
	return a.internColor(colorDescriptor{kind: colorGrayscale, value: v})
}

// NewCombineRGB interns a color assembled from three independent
// ValueNode channels.
func (a *Arena) NewCombineRGB(r, g, b ValueID) ColorID {
	return a.internColor(colorDescriptor{kind: colorCombineRGB, r: r, g: g, b2: b})
}

// RegisterTexture adds img to the arena's texture table and returns an
// image-texture ColorNode sampling it. filtered selects bilinear vs.
// nearest lookup (spec.md §3's get_pixel contract).
func (a *Arena) RegisterTexture(img *texture.Image, filtered bool) ColorID {
	a.textures = append(a.textures, img)
	idx := len(a.textures) - 1
	return a.internColor(colorDescriptor{kind: colorImageTexture, textureIndex: idx, filtered: filtered})
}

// EvalColor evaluates a ColorNode at hit.
func (a *Arena) EvalColor(id ColorID, hit geom.Hit) color.Color {
	d := a.color(id)
	switch d.kind {
	case colorConstant:
		return d.constant
	case colorCheckerboard:
		var u, v float64
		if d.worldSpace {
			u, v = hit.Point.X, hit.Point.Z
		} else {
			u, v = hit.UV.U, hit.UV.V
		}
		scale := d.scale
		if scale == 0 {
			scale = 1
		}
		cell := int(math.Floor(u*scale)) + int(math.Floor(v*scale))
		if cell%2 == 0 {
			return a.EvalColor(d.a, hit)
		}
		return a.EvalColor(d.b, hit)
	case colorGradient:
		t := 0.5 * (hit.IncidentRay.Direction.Normalize().Y + 1)
		return a.EvalColor(d.a, hit).Lerp(a.EvalColor(d.b, hit), t)
	case colorGrayscale:
		g := a.EvalValue(d.value, hit)
		return color.Color{R: g, G: g, B: g}
	case colorCombineRGB:
		return color.Color{R: a.EvalValue(d.r, hit), G: a.EvalValue(d.g, hit), B: a.EvalValue(d.b2, hit)}
	case colorImageTexture:
		img := a.textures[d.textureIndex]
		if d.filtered {
			return img.GetPixel(hit.UV.U, hit.UV.V, true)
		}
		return img.GetPixel(hit.UV.U*float64(img.Width), hit.UV.V*float64(img.Height), false)
	}
	return color.Black
}
