package integrator

import (
	"math"
	"testing"

	"github.com/VKoskiv/c-ray/internal/bvh"
	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/instance"
	"github.com/VKoskiv/c-ray/internal/node"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

func emptyScene(bg Background) *Scene {
	return &Scene{
		Instances:   nil,
		TopLevelBVH: bvh.Build(nil, 4),
		Materials:   node.NewArena(),
		Background:  bg,
	}
}

func TestTraceWithNoGeometryReturnsBackground(t *testing.T) {
	bg := Background{AmbientDown: color.Color{R: 0.1}, AmbientUp: color.Color{B: 0.4}}
	scene := emptyScene(bg)
	ray := vecmath.Ray{Direction: vecmath.Vector3{Y: 1}}
	s := sampler.New(0, 0)
	got := Trace(ray, scene, 8, s)
	want := bg.AmbientUp // straight up: t=1, fully "up" color.
	if math.Abs(got.R-want.R) > 1e-9 || math.Abs(got.G-want.G) > 1e-9 || math.Abs(got.B-want.B) > 1e-9 {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestTraceHitsEmissiveSphereDirectly(t *testing.T) {
	arena := node.NewArena()
	emissiveColor := arena.NewConstantColor(color.Color{R: 2, G: 2, B: 2})
	strength := arena.NewConstantValue(1)
	bsdf := arena.NewEmissive(emissiveColor, strength)

	sphere := instance.NewSphereSolid(vecmath.Identity(), uint32(bsdf))
	prims := []bvh.Primitive{{Bbox: sphere.Bounds, Center: sphere.Bounds.Center()}}

	scene := &Scene{
		Instances:   []*instance.Instance{sphere},
		TopLevelBVH: bvh.Build(prims, 4),
		Materials:   arena,
		Background:  Background{},
	}

	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	s := sampler.New(0, 0)
	got := Trace(ray, scene, 8, s)
	if got.R < 1.9 || got.G < 1.9 || got.B < 1.9 {
		t.Errorf("expected to see near-full emission on first bounce, got %+v", got)
	}
}

func TestTraceZeroBouncesReturnsBackgroundOnly(t *testing.T) {
	arena := node.NewArena()
	emissiveColor := arena.NewConstantColor(color.Color{R: 2, G: 2, B: 2})
	strength := arena.NewConstantValue(1)
	bsdf := arena.NewEmissive(emissiveColor, strength)
	sphere := instance.NewSphereSolid(vecmath.Identity(), uint32(bsdf))
	prims := []bvh.Primitive{{Bbox: sphere.Bounds, Center: sphere.Bounds.Center()}}

	bg := Background{AmbientDown: color.Color{R: 0.1}, AmbientUp: color.Color{B: 0.4}}
	scene := &Scene{
		Instances:   []*instance.Instance{sphere},
		TopLevelBVH: bvh.Build(prims, 4),
		Materials:   arena,
		Background:  bg,
	}

	// Aimed straight at the sphere: with bounces=0 the sphere directly
	// ahead must not be tested at all.
	ray := vecmath.Ray{Origin: vecmath.Vector3{Z: -5}, Direction: vecmath.Vector3{Z: 1}}
	s := sampler.New(0, 0)
	got := Trace(ray, scene, 0, s)
	want := bg.sampleGradient(ray)
	if math.Abs(got.R-want.R) > 1e-9 || math.Abs(got.B-want.B) > 1e-9 {
		t.Errorf("got %+v, want background-only %+v", got, want)
	}
}

func TestTraceClampsNonFiniteToZero(t *testing.T) {
	// A ray straight up samples AmbientUp alone, so its NaN and +Inf
	// components reach the radiance and must come out as zero.
	bg := Background{AmbientDown: color.Black, AmbientUp: color.Color{R: math.NaN(), G: math.Inf(1)}}
	scene := emptyScene(bg)
	ray := vecmath.Ray{Direction: vecmath.Vector3{Y: 1}}
	s := sampler.New(0, 0)
	got := Trace(ray, scene, 8, s)
	if got != (color.Color{}) {
		t.Errorf("non-finite radiance must be clamped to zero, got %+v", got)
	}
}
