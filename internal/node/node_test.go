package node

import (
	"math"
	"testing"

	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

func TestHashConsingDeduplicatesIdenticalSubgraphs(t *testing.T) {
	a := NewArena()
	c1 := a.NewConstantColor(color.Color{R: 0.8, G: 0.1, B: 0.1})
	r1 := a.NewConstantValue(0.2)
	bsdf1 := a.NewMetal(c1, r1)

	c2 := a.NewConstantColor(color.Color{R: 0.8, G: 0.1, B: 0.1})
	r2 := a.NewConstantValue(0.2)
	bsdf2 := a.NewMetal(c2, r2)

	if c1 != c2 {
		t.Errorf("constant color not hash-consed: %d != %d", c1, c2)
	}
	if bsdf1 != bsdf2 {
		t.Errorf("identical metal BSDF subtrees produced different ids: %d != %d", bsdf1, bsdf2)
	}
	colors, values, _, bsdfs := a.Stats()
	if colors != 1 || values != 1 || bsdfs != 1 {
		t.Errorf("expected one of each node, got colors=%d values=%d bsdfs=%d", colors, values, bsdfs)
	}
}

func TestDistinctDescriptorsGetDistinctIDs(t *testing.T) {
	a := NewArena()
	red := a.NewConstantColor(color.Color{R: 1})
	blue := a.NewConstantColor(color.Color{B: 1})
	if red == blue {
		t.Error("distinct colors must not share an id")
	}
}

func hitFacingCamera() geom.Hit {
	return geom.Hit{
		IncidentRay: vecmath.Ray{Origin: vecmath.Vector3{Z: -1}, Direction: vecmath.Vector3{Z: 1}},
		Point:       vecmath.Vector3{},
		Normal:      vecmath.Vector3{Z: -1},
		UV:          vecmath.Coord{},
	}
}

func TestDiffuseSampleStaysInHemisphere(t *testing.T) {
	a := NewArena()
	white := a.NewConstantColor(color.White)
	diffuse := a.NewDiffuse(white)
	s := sampler.New(0, 0)
	hit := hitFacingCamera()
	result := a.SampleBsdf(diffuse, s, hit)
	if math.Abs(result.Out.Length()-1) > 1e-6 {
		t.Errorf("diffuse sample not unit length: %f", result.Out.Length())
	}
	if result.Out.Dot(hit.Normal) < 0 {
		t.Errorf("diffuse sample %+v points below the surface normal %+v", result.Out, hit.Normal)
	}
	if result.Color != color.White {
		t.Errorf("got color %+v, want white", result.Color)
	}
}

func TestEmissiveHasZeroThroughputAndNonzeroEmission(t *testing.T) {
	a := NewArena()
	warmWhite := a.NewConstantColor(color.Color{R: 1, G: 0.9, B: 0.8})
	strength := a.NewConstantValue(5)
	emissive := a.NewEmissive(warmWhite, strength)
	hit := hitFacingCamera()

	s := sampler.New(0, 0)
	sample := a.SampleBsdf(emissive, s, hit)
	if sample.Color != color.Black {
		t.Errorf("emissive BSDF sample should have zero throughput, got %+v", sample.Color)
	}
	emission := a.EvalEmission(emissive, hit)
	want := color.Color{R: 5, G: 4.5, B: 4}
	if math.Abs(emission.R-want.R) > 1e-9 || math.Abs(emission.G-want.G) > 1e-9 || math.Abs(emission.B-want.B) > 1e-9 {
		t.Errorf("got emission %+v, want %+v", emission, want)
	}
}

func TestMixPicksBetweenOperands(t *testing.T) {
	a := NewArena()
	redColor := a.NewConstantColor(color.Color{R: 1})
	blueColor := a.NewConstantColor(color.Color{B: 1})
	red := a.NewDiffuse(redColor)
	blue := a.NewDiffuse(blueColor)
	alwaysA := a.NewConstantValue(1) // xi < 1 always true in [0,1).
	mixed := a.NewMix(red, blue, alwaysA)

	s := sampler.New(0, 0)
	hit := hitFacingCamera()
	result := a.SampleBsdf(mixed, s, hit)
	if result.Color != (color.Color{R: 1}) {
		t.Errorf("expected mix to pick operand A, got %+v", result.Color)
	}
}

func TestGlassTotalInternalReflectionStaysUnit(t *testing.T) {
	a := NewArena()
	clear := a.NewConstantColor(color.White)
	rough := a.NewConstantValue(0)
	ior := a.NewConstantValue(1.5)
	glass := a.NewGlass(clear, rough, ior)

	// Shallow grazing angle from inside the medium, likely to hit TIR.
	hit := geom.Hit{
		IncidentRay: vecmath.Ray{Direction: vecmath.Vector3{X: 0.99, Y: 0.01411}.Normalize()},
		Normal:      vecmath.Vector3{Y: 1},
	}
	s := sampler.New(1, 1)
	result := a.SampleBsdf(glass, s, hit)
	if math.Abs(result.Out.Length()-1) > 1e-6 {
		t.Errorf("glass sample not unit length: %f", result.Out.Length())
	}
}
