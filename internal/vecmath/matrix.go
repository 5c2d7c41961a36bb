package vecmath

import "math"

// TransformKind classifies a Matrix4 so NormalTransform can use the
// forward matrix instead of the inverse transpose when the transform is
// a pure translation or rotation.
type TransformKind int

const (
	KindGeneral TransformKind = iota
	KindTranslate
	KindRotate
)

// Matrix4 is an affine transform stored together with its inverse, as
// produced by scene-graph composition (rotateX/Y/Z, translate, scale,
// scaleUniform chains). Keeping forward and inverse paired avoids
// re-deriving the inverse in the hot instance-intersection path.
type Matrix4 struct {
	A    [16]float64 // row-major 4x4, forward transform.
	Inv  [16]float64 // row-major 4x4, inverse transform.
	Kind TransformKind
}

// Identity returns the identity affine transform.
func Identity() Matrix4 {
	return Matrix4{A: identity16(), Inv: identity16(), Kind: KindTranslate}
}

func identity16() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func mul16(a, b [16]float64) [16]float64 {
	var r [16]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Compose returns m*other, i.e. other is applied first.
func (m Matrix4) Compose(other Matrix4) Matrix4 {
	kind := KindGeneral
	if m.Kind == KindTranslate && other.Kind == KindTranslate {
		kind = KindTranslate
	}
	return Matrix4{
		A:    mul16(m.A, other.A),
		Inv:  mul16(other.Inv, m.Inv), // (AB)^-1 = B^-1 A^-1
		Kind: kind,
	}
}

func translate16(x, y, z float64) [16]float64 {
	m := identity16()
	m[3], m[7], m[11] = x, y, z
	return m
}

// Translate returns a pure-translation transform.
func Translate(x, y, z float64) Matrix4 {
	return Matrix4{A: translate16(x, y, z), Inv: translate16(-x, -y, -z), Kind: KindTranslate}
}

// Scale returns a non-uniform scale transform.
func Scale(x, y, z float64) Matrix4 {
	a := identity16()
	a[0], a[5], a[10] = x, y, z
	inv := identity16()
	inv[0], inv[5], inv[10] = 1/x, 1/y, 1/z
	return Matrix4{A: a, Inv: inv, Kind: KindGeneral}
}

// ScaleUniform returns a uniform scale transform.
func ScaleUniform(s float64) Matrix4 { return Scale(s, s, s) }

func rotate16(axis int, radians float64) [16]float64 {
	c, s := math.Cos(radians), math.Sin(radians)
	m := identity16()
	switch axis {
	case 0: // X
		m[5], m[6] = c, -s
		m[9], m[10] = s, c
	case 1: // Y
		m[0], m[2] = c, s
		m[8], m[10] = -s, c
	case 2: // Z
		m[0], m[1] = c, -s
		m[4], m[5] = s, c
	}
	return m
}

func transpose3x3Of(m [16]float64) [16]float64 {
	// The inverse of a pure rotation matrix is its transpose.
	r := identity16()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*4+col] = m[col*4+row]
		}
	}
	return r
}

// RotateX/Y/Z return a rotation transform about the given axis, in radians.
func RotateX(radians float64) Matrix4 {
	a := rotate16(0, radians)
	return Matrix4{A: a, Inv: transpose3x3Of(a), Kind: KindRotate}
}
func RotateY(radians float64) Matrix4 {
	a := rotate16(1, radians)
	return Matrix4{A: a, Inv: transpose3x3Of(a), Kind: KindRotate}
}
func RotateZ(radians float64) Matrix4 {
	a := rotate16(2, radians)
	return Matrix4{A: a, Inv: transpose3x3Of(a), Kind: KindRotate}
}

// MulPoint transforms a point (w=1) by m.
func (m Matrix4) MulPoint(p Vector3) Vector3 {
	return Vector3{
		X: m.A[0]*p.X + m.A[1]*p.Y + m.A[2]*p.Z + m.A[3],
		Y: m.A[4]*p.X + m.A[5]*p.Y + m.A[6]*p.Z + m.A[7],
		Z: m.A[8]*p.X + m.A[9]*p.Y + m.A[10]*p.Z + m.A[11],
	}
}

// MulDir transforms a direction (w=0) by m, ignoring translation.
func (m Matrix4) MulDir(d Vector3) Vector3 {
	return Vector3{
		X: m.A[0]*d.X + m.A[1]*d.Y + m.A[2]*d.Z,
		Y: m.A[4]*d.X + m.A[5]*d.Y + m.A[6]*d.Z,
		Z: m.A[8]*d.X + m.A[9]*d.Y + m.A[10]*d.Z,
	}
}

// InvMulPoint transforms a point by the inverse of m.
func (m Matrix4) InvMulPoint(p Vector3) Vector3 {
	return Vector3{
		X: m.Inv[0]*p.X + m.Inv[1]*p.Y + m.Inv[2]*p.Z + m.Inv[3],
		Y: m.Inv[4]*p.X + m.Inv[5]*p.Y + m.Inv[6]*p.Z + m.Inv[7],
		Z: m.Inv[8]*p.X + m.Inv[9]*p.Y + m.Inv[10]*p.Z + m.Inv[11],
	}
}

// InvMulDir transforms a direction by the inverse of m.
func (m Matrix4) InvMulDir(d Vector3) Vector3 {
	return Vector3{
		X: m.Inv[0]*d.X + m.Inv[1]*d.Y + m.Inv[2]*d.Z,
		Y: m.Inv[4]*d.X + m.Inv[5]*d.Y + m.Inv[6]*d.Z,
		Z: m.Inv[8]*d.X + m.Inv[9]*d.Y + m.Inv[10]*d.Z,
	}
}

// NormalTransform applies the inverse-transpose of m to a surface normal,
// which keeps normals correct under non-uniform scale. For pure
// rotate/translate transforms (the common case) this equals MulDir of
// the forward matrix, so the cheap path is taken when Kind says so.
func (m Matrix4) NormalTransform(n Vector3) Vector3 {
	if m.Kind != KindGeneral {
		return m.MulDir(n).Normalize()
	}
	// inverse-transpose: transpose of m.Inv's 3x3 block applied to n.
	inv := m.Inv
	return Vector3{
		X: inv[0]*n.X + inv[4]*n.Y + inv[8]*n.Z,
		Y: inv[1]*n.X + inv[5]*n.Y + inv[9]*n.Z,
		Z: inv[2]*n.X + inv[6]*n.Y + inv[10]*n.Z,
	}.Normalize()
}
