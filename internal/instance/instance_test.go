package instance

import (
	"math"
	"testing"

	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
	"github.com/VKoskiv/c-ray/internal/vertex"
)

func TestSphereSolidIntersectAtOrigin(t *testing.T) {
	inst := NewSphereSolid(vecmath.Identity(), 7)
	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	found, hit := inst.Intersect(0, ray, nil)
	if !found {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.Distance-4) > 1e-6 {
		t.Errorf("got distance=%f, want 4", hit.Distance)
	}
	if hit.MaterialID != 7 {
		t.Errorf("got material %d, want 7", hit.MaterialID)
	}
}

func TestSphereSolidTranslated(t *testing.T) {
	xform := vecmath.Translate(0, 0, 10)
	inst := NewSphereSolid(xform, 1)
	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	found, hit := inst.Intersect(0, ray, nil)
	if !found {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.Distance-14) > 1e-6 {
		t.Errorf("got distance=%f, want 14 (sphere moved to z=10, radius 1)", hit.Distance)
	}
	if math.Abs(hit.Point.Z-9) > 1e-6 {
		t.Errorf("got hit point z=%f, want 9", hit.Point.Z)
	}
}

func TestSphereSolidScaledNormalStaysUnit(t *testing.T) {
	xform := vecmath.Scale(2, 1, 1)
	inst := NewSphereSolid(xform, 1)
	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	found, hit := inst.Intersect(0, ray, nil)
	if !found {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.Normal.Length()-1) > 1e-6 {
		t.Errorf("normal not unit length under non-uniform scale: %f", hit.Normal.Length())
	}
}

func quadMesh() *geom.Mesh {
	buf := &vertex.Buffer{}
	a := buf.AddPosition(vecmath.Vector3{X: -1, Y: -1})
	b := buf.AddPosition(vecmath.Vector3{X: 1, Y: -1})
	c := buf.AddPosition(vecmath.Vector3{X: 1, Y: 1})
	d := buf.AddPosition(vecmath.Vector3{X: -1, Y: 1})
	polys := []geom.Polygon{
		{VertexIndex: [3]int{a, b, c}, MaterialIndex: 0},
		{VertexIndex: [3]int{a, c, d}, MaterialIndex: 0},
	}
	return geom.BuildMesh("quad", polys, []uint32{9}, buf)
}

func TestMeshSolidIntersect(t *testing.T) {
	inst := NewMeshSolid(quadMesh(), vecmath.Identity())
	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	found, hit := inst.Intersect(0, ray, nil)
	if !found {
		t.Fatal("expected hit")
	}
	if hit.MaterialID != 9 {
		t.Errorf("got material %d, want 9", hit.MaterialID)
	}
}

func TestSphereVolumeSamplesInsideOrMisses(t *testing.T) {
	inst := NewSphereVolume(vecmath.Identity(), 3, 2.0)
	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	s := sampler.New(0, 0)
	found, hit := inst.Intersect(0, ray, s)
	if found {
		if hit.Distance < 4 || hit.Distance > 6 {
			t.Errorf("volume hit distance %f outside plausible [4,6] span through unit sphere", hit.Distance)
		}
	}
}

func TestSphereVolumeMissesOutsideSphere(t *testing.T) {
	inst := NewSphereVolume(vecmath.Identity(), 3, 2.0)
	ray := vecmath.Ray{Origin: vecmath.Vector3{Y: 5, Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	s := sampler.New(0, 0)
	found, _ := inst.Intersect(0, ray, s)
	if found {
		t.Error("expected miss: ray never enters the sphere")
	}
}
