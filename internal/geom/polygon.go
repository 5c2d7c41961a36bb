package geom

import (
	"github.com/VKoskiv/c-ray/internal/vecmath"
	"github.com/VKoskiv/c-ray/internal/vertex"
)

// Polygon is a triangle: three absolute indices into a shared vertex
// buffer per attribute, plus a local material index into the owning
// mesh's material list (spec.md §3). Triangles only.
type Polygon struct {
	VertexIndex [3]int
	NormalIndex [3]int
	UVIndex     [3]int
	MaterialIndex int
	HasNormals  bool
}

// IntersectTriangle performs a Möller-Trumbore ray/triangle test against
// polygon p's vertices in buf. On hit it returns the barycentric
// (u,v) weights for vertex 1 and 2 (vertex 0 weight is 1-u-v) and the
// ray parameter t.
func IntersectTriangle(ray vecmath.Ray, p Polygon, buf *vertex.Buffer) (hit bool, t, u, v float64) {
	const epsilon = 1e-8
	v0 := buf.Positions[p.VertexIndex[0]]
	v1 := buf.Positions[p.VertexIndex[1]]
	v2 := buf.Positions[p.VertexIndex[2]]

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -epsilon && a < epsilon {
		return false, 0, 0, 0 // ray parallel to triangle plane.
	}
	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return false, 0, 0, 0
	}
	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return false, 0, 0, 0
	}
	t = f * edge2.Dot(q)
	if t <= epsilon {
		return false, 0, 0, 0
	}
	return true, t, u, v
}

// ShadingNormal blends the three vertex normals of p by barycentric
// weights (u,v), falling back to the geometric face normal when the
// polygon carries no per-vertex normals.
func ShadingNormal(p Polygon, buf *vertex.Buffer, u, v float64) vecmath.Vector3 {
	if !p.HasNormals {
		v0 := buf.Positions[p.VertexIndex[0]]
		v1 := buf.Positions[p.VertexIndex[1]]
		v2 := buf.Positions[p.VertexIndex[2]]
		return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	}
	n0 := buf.Normals[p.NormalIndex[0]]
	n1 := buf.Normals[p.NormalIndex[1]]
	n2 := buf.Normals[p.NormalIndex[2]]
	w0 := 1 - u - v
	return n0.Scale(w0).Add(n1.Scale(u)).Add(n2.Scale(v)).Normalize()
}

// TexturedUV blends the three vertex UVs of p by barycentric weights.
func TexturedUV(p Polygon, buf *vertex.Buffer, u, v float64) vecmath.Coord {
	if len(buf.UVs) == 0 || p.UVIndex[0] < 0 {
		return vecmath.Coord{}
	}
	t0 := buf.UVs[p.UVIndex[0]]
	t1 := buf.UVs[p.UVIndex[1]]
	t2 := buf.UVs[p.UVIndex[2]]
	w0 := 1 - u - v
	return vecmath.Coord{
		U: w0*t0.U + u*t1.U + v*t2.U,
		V: w0*t0.V + u*t1.V + v*t2.V,
	}
}

// Bbox returns the axis-aligned bounding box of p's three vertices.
func (p Polygon) bboxOf(buf *vertex.Buffer) (min, max vecmath.Vector3) {
	min = buf.Positions[p.VertexIndex[0]]
	max = min
	for i := 1; i < 3; i++ {
		pt := buf.Positions[p.VertexIndex[i]]
		min = vecmath.MinVec(min, pt)
		max = vecmath.MaxVec(max, pt)
	}
	return min, max
}
