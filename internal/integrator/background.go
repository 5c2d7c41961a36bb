package integrator

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/texture"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// Background is the radiance a ray that escapes the scene contributes
// (spec.md §4.5). Exactly one of HDREnv or the ambient gradient applies.
type Background struct {
	HDREnv           *texture.Image
	HDROffsetRadians float64
	AmbientDown      color.Color
	AmbientUp        color.Color
}

func wrap01(x float64) float64 {
	x = math.Mod(x, 1)
	if x < 0 {
		x += 1
	}
	return x
}

// Sample evaluates the background color seen along ray.Direction.
func (bg Background) Sample(ray vecmath.Ray) color.Color {
	if bg.HDREnv != nil {
		return bg.sampleHDR(ray)
	}
	return bg.sampleGradient(ray)
}

// sampleHDR follows the original engine's equirectangular mapping,
// including its quirk of offsetting phi by offset/4 rather than a
// literal quarter of the full rotation (preserved here rather than
// "corrected", to match observed output of the reference renderer).
func (bg Background) sampleHDR(ray vecmath.Ray) color.Color {
	ud := ray.Direction.Normalize()
	phi := math.Atan2(ud.Z, ud.X)/4 + bg.HDROffsetRadians
	theta := math.Acos(-ud.Y)

	u := theta / math.Pi
	v := phi / (math.Pi / 2)
	u = wrap01(u)
	v = wrap01(v)

	return bg.HDREnv.GetPixel(v, u, true)
}

// sampleGradient linearly interpolates between down and up by the
// ray's vertical component (spec.md §4.5).
func (bg Background) sampleGradient(ray vecmath.Ray) color.Color {
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1)
	return bg.AmbientDown.Lerp(bg.AmbientUp, t)
}
