package geom

import (
	"math"
	"testing"

	"github.com/VKoskiv/c-ray/internal/vecmath"
	"github.com/VKoskiv/c-ray/internal/vertex"
)

func triangleBuffer() (*vertex.Buffer, Polygon) {
	buf := &vertex.Buffer{}
	a := buf.AddPosition(vecmath.Vector3{X: -1, Y: -1})
	b := buf.AddPosition(vecmath.Vector3{X: 1, Y: -1})
	c := buf.AddPosition(vecmath.Vector3{X: 0, Y: 1})
	p := Polygon{VertexIndex: [3]int{a, b, c}, MaterialIndex: 0}
	return buf, p
}

func TestIntersectTriangleHitsCenter(t *testing.T) {
	buf, p := triangleBuffer()
	ray := vecmath.Ray{Origin: vecmath.Vector3{X: 0, Y: -0.2, Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	hit, dist, u, v := IntersectTriangle(ray, p, buf)
	if !hit {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-5) > 1e-9 {
		t.Errorf("got dist=%f, want 5", dist)
	}
	if u < 0 || v < 0 || u+v > 1 {
		t.Errorf("barycentric weights out of range: u=%f v=%f", u, v)
	}
}

func TestIntersectTriangleMissesOutside(t *testing.T) {
	buf, p := triangleBuffer()
	ray := vecmath.Ray{Origin: vecmath.Vector3{X: 10, Y: 10, Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	hit, _, _, _ := IntersectTriangle(ray, p, buf)
	if hit {
		t.Error("expected miss outside triangle")
	}
}

func TestShadingNormalFallsBackToFaceNormal(t *testing.T) {
	buf, p := triangleBuffer()
	n := ShadingNormal(p, buf, 0.3, 0.3)
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("face normal not unit length: %f", n.Length())
	}
	if n.Z <= 0 {
		t.Errorf("expected face normal pointing toward +Z, got %+v", n)
	}
}
