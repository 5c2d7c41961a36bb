// Package vecmath provides the vector, coordinate, and affine-transform
// math used throughout the rendering core. Operations are value-semantic:
// every method returns a new value rather than mutating a receiver, which
// keeps the hot path (ray/bvh/node evaluation) free of aliasing bugs when
// the same scratch vector is reused across goroutines.
package vecmath

import "math"

// Vector3 is a 3-element vector, also used as a point.
type Vector3 struct {
	X, Y, Z float64
}

// Coord is a 2D texture coordinate.
type Coord struct {
	U, V float64
}

func NewVector3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Mul(o Vector3) Vector3 { return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vector3) Negate() Vector3 { return Vector3{-v.X, -v.Y, -v.Z} }

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) LengthSquared() float64 { return v.Dot(v) }
func (v Vector3) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Normalize returns the unit-length vector in the same direction as v.
// A zero-length vector is returned unchanged (avoids NaN propagation on
// degenerate geometry, matching the integrator's clamp-to-zero policy).
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1.0 / l)
}

// Reflect reflects v (assumed incident, pointing toward the surface)
// about the unit normal n.
func (v Vector3) Reflect(n Vector3) Vector3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Min/Max componentwise, used for bbox accumulation.
func MinVec(a, b Vector3) Vector3 {
	return Vector3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}
func MaxVec(a, b Vector3) Vector3 {
	return Vector3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// Component returns the value of v along the given axis (0=X, 1=Y, 2=Z).
func (v Vector3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IsFinite reports whether every component of v is finite, used by the
// integrator to end a path whose sampled direction is NaN or Inf.
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
