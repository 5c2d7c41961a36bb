package scene

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/rayerr"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// BuildTransform composes a "transforms" array (spec.md §6) into a
// single Matrix4, applying entries in array order: entries[0] is
// applied first, entries[len-1] last.
func BuildTransform(entries []TransformDoc) (vecmath.Matrix4, error) {
	m := vecmath.Identity()
	for _, e := range entries {
		var step vecmath.Matrix4
		switch e.Type {
		case "rotateX":
			step = vecmath.RotateX(e.Degrees * math.Pi / 180)
		case "rotateY":
			step = vecmath.RotateY(e.Degrees * math.Pi / 180)
		case "rotateZ":
			step = vecmath.RotateZ(e.Degrees * math.Pi / 180)
		case "translate":
			step = vecmath.Translate(e.X, e.Y, e.Z)
		case "scale":
			step = vecmath.Scale(e.X, e.Y, e.Z)
		case "scaleUniform":
			step = vecmath.ScaleUniform(e.Scale)
		default:
			return vecmath.Matrix4{}, rayerr.New(rayerr.InputMalformed, "unknown transform type %q", e.Type)
		}
		m = step.Compose(m)
	}
	return m, nil
}
