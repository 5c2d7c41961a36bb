// Package integrator implements the unidirectional Monte-Carlo
// path-tracing bounce loop of spec.md §4.5: iterative (not recursive,
// to bound stack depth), Russian-roulette termination, and NaN/Inf
// clamping before accumulation. Grounded on the teacher's eg/rt.go
// sample/trace shape and the original renderer/pathtrace.c.
package integrator

import (
	"github.com/VKoskiv/c-ray/internal/color"
	"github.com/VKoskiv/c-ray/internal/node"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// spawnEpsilon is the world-space ray-spawn push (spec.md §4.5's
// "epsilon for ray spawn is 1e-4 in world-space").
const spawnEpsilon = 1e-4

// russianRouletteStartDepth is the first bounce depth at which survival
// is tested probabilistically rather than guaranteed (spec.md §4.5).
const russianRouletteStartDepth = 2

// Trace walks ray through scene for at most maxBounces, returning the
// accumulated radiance. It never recurses: the loop body is the entire
// algorithm, bounded by maxBounces regardless of how many times the
// path happens to scatter.
func Trace(ray vecmath.Ray, scene *Scene, maxBounces int, s *sampler.Sampler) color.Color {
	if maxBounces <= 0 {
		// spec.md §8 boundary: bounces=0 means every ray returns only
		// the background; no intersection is attempted at all.
		return scene.Background.Sample(ray).Clamped()
	}

	throughput := color.White
	radiance := color.Black

	for depth := 0; depth < maxBounces; depth++ {
		hit, rec := scene.Intersect(ray, s)
		if !hit {
			radiance = radiance.Add(throughput.Mul(scene.Background.Sample(ray)))
			break
		}

		emission := scene.Materials.EvalEmission(node.BsdfID(rec.MaterialID), rec)
		radiance = radiance.Add(throughput.Mul(emission)).Clamped()

		sampled := scene.Materials.SampleBsdf(node.BsdfID(rec.MaterialID), s, rec)
		throughput = throughput.Mul(sampled.Color)

		if depth >= russianRouletteStartDepth {
			survival := throughput.MaxComponent()
			if s.NextDim() > survival || survival <= 0 {
				break
			}
			throughput = throughput.Scale(1 / survival)
		}

		if !sampled.Out.IsFinite() {
			break
		}
		ray = vecmath.Ray{
			Origin:    rec.Point.Add(sampled.Out.Scale(spawnEpsilon)),
			Direction: sampled.Out,
		}
	}

	return radiance.Clamped()
}
