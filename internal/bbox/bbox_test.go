package bbox

import (
	"math"
	"testing"

	"github.com/VKoskiv/c-ray/internal/vecmath"
)

func box111() Box {
	return Box{Min: vecmath.Vector3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vector3{X: 1, Y: 1, Z: 1}}
}

func TestRayIntersectThroughCenter(t *testing.T) {
	b := box111()
	ray := vecmath.Ray{Origin: vecmath.Vector3{X: -5, Y: 0, Z: 0}, Direction: vecmath.Vector3{X: 1, Y: 0, Z: 0}}
	hit, tmin := b.RayIntersect(ray)
	if !hit {
		t.Fatal("expected hit")
	}
	if math.Abs(tmin-4) > 1e-9 {
		t.Errorf("got tmin=%f, want 4", tmin)
	}
}

func TestRayMissesBox(t *testing.T) {
	b := box111()
	ray := vecmath.Ray{Origin: vecmath.Vector3{X: -5, Y: 5, Z: 0}, Direction: vecmath.Vector3{X: 1, Y: 0, Z: 0}}
	hit, _ := b.RayIntersect(ray)
	if hit {
		t.Fatal("expected miss")
	}
}

func TestRayGrazingFaceReportsHitAtEntry(t *testing.T) {
	b := box111()
	// Ray grazing the top face y=1 exactly.
	ray := vecmath.Ray{Origin: vecmath.Vector3{X: -5, Y: 1, Z: 0}, Direction: vecmath.Vector3{X: 1, Y: 0, Z: 0}}
	hit, tmin := b.RayIntersect(ray)
	if !hit {
		t.Fatal("expected tangent ray to report a hit")
	}
	if math.Abs(tmin-4) > 1e-9 {
		t.Errorf("got tmin=%f, want 4", tmin)
	}
}

func TestUnionIdentity(t *testing.T) {
	b := box111()
	u := Union(b, Empty())
	if u != b {
		t.Errorf("union with empty changed box: %+v", u)
	}
}

func TestLongestAxis(t *testing.T) {
	b := Box{Min: vecmath.Vector3{}, Max: vecmath.Vector3{X: 1, Y: 5, Z: 2}}
	if axis := b.LongestAxis(); axis != 1 {
		t.Errorf("got axis %d, want 1 (Y)", axis)
	}
}
