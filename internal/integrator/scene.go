package integrator

import (
	"github.com/VKoskiv/c-ray/internal/bvh"
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/instance"
	"github.com/VKoskiv/c-ray/internal/node"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// Scene is the minimal read-only view of a built world the integrator
// needs to trace paths: the top-level instance BVH, the instances
// themselves, the shading node arena, and the background (spec.md §3's
// World, restricted to what tracing touches — scene.World embeds this).
type Scene struct {
	Instances   []*instance.Instance
	TopLevelBVH *bvh.Tree
	Materials   *node.Arena
	Background  Background
}

// Intersect finds the closest instance hit along ray. Because
// SphereVolume/MeshVolume instances draw from s while being tested,
// each candidate's hit is cached the first (and only) time the BVH
// callback visits it, so the winning hit is never recomputed with a
// second, desynchronized draw from s.
func (w *Scene) Intersect(ray vecmath.Ray, s *sampler.Sampler) (bool, geom.Hit) {
	cached := make([]geom.Hit, len(w.Instances))
	didHit, _, closest := w.TopLevelBVH.Intersect(ray, func(i int) (bool, float64) {
		found, hit := w.Instances[i].Intersect(i, ray, s)
		if !found {
			return false, 0
		}
		cached[i] = hit
		return true, hit.Distance
	})
	if !didHit {
		return false, geom.Hit{}
	}
	return true, cached[closest]
}
