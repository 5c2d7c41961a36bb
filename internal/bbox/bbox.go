// Package bbox implements axis-aligned bounding box operations and the
// slab-method ray/box test used by the BVH (spec.md §4.2), grounded on
// the original C-ray acceleration/bbox.c.
package bbox

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// Box is an axis-aligned bounding box. An empty box has Min at +Inf and
// Max at -Inf componentwise, so that Union with any real box yields that
// box unchanged.
type Box struct {
	Min, Max vecmath.Vector3
}

// Empty returns the box identity element for Union.
func Empty() Box {
	inf := math.Inf(1)
	return Box{
		Min: vecmath.Vector3{X: inf, Y: inf, Z: inf},
		Max: vecmath.Vector3{X: -inf, Y: -inf, Z: -inf},
	}
}

// FromPoint returns the degenerate box containing exactly one point.
func FromPoint(p vecmath.Vector3) Box { return Box{Min: p, Max: p} }

// Union returns the smallest box containing both a and b.
func Union(a, b Box) Box {
	return Box{Min: vecmath.MinVec(a.Min, b.Min), Max: vecmath.MaxVec(a.Max, b.Max)}
}

// ExpandPoint grows b to also contain p.
func (b Box) ExpandPoint(p vecmath.Vector3) Box {
	return Box{Min: vecmath.MinVec(b.Min, p), Max: vecmath.MaxVec(b.Max, p)}
}

// Center returns the midpoint of the box.
func (b Box) Center() vecmath.Vector3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Diagonal returns Max-Min.
func (b Box) Diagonal() vecmath.Vector3 { return b.Max.Sub(b.Min) }

// LongestAxis returns the axis (0=X,1=Y,2=Z) of greatest extent.
func (b Box) LongestAxis() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// AxesByExtentDescending returns the three axes ordered from largest to
// smallest extent, used by the BVH builder's split tie-break (spec.md
// §4.2: "try the remaining axes in decreasing extent order").
func (b Box) AxesByExtentDescending() [3]int {
	d := b.Diagonal()
	extents := [3]float64{d.X, d.Y, d.Z}
	axes := [3]int{0, 1, 2}
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && extents[axes[j-1]] < extents[axes[j]]; j-- {
			axes[j], axes[j-1] = axes[j-1], axes[j]
		}
	}
	return axes
}

// SurfaceArea returns the surface area of the box, used by the SAH
// split-cost evaluation. An empty/degenerate box has zero area.
func (b Box) SurfaceArea() float64 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// RayIntersect implements the slab method (spec.md §4.2): six axis-
// aligned plane t values, tmin = max(min(t1,t2), min(t3,t4), min(t5,t6)),
// tmax = min(max(...)). Division by zero in 1/direction is allowed to
// propagate ±Inf, which the min/max comparisons resolve correctly for
// axis-aligned rays. Reports a hit (including the tangent case tmin==tmax)
// when tmax>=0 and tmin<=tmax.
func (b Box) RayIntersect(ray vecmath.Ray) (hit bool, tmin float64) {
	invX := 1 / ray.Direction.X
	invY := 1 / ray.Direction.Y
	invZ := 1 / ray.Direction.Z

	t1 := (b.Min.X - ray.Origin.X) * invX
	t2 := (b.Max.X - ray.Origin.X) * invX
	t3 := (b.Min.Y - ray.Origin.Y) * invY
	t4 := (b.Max.Y - ray.Origin.Y) * invY
	t5 := (b.Min.Z - ray.Origin.Z) * invZ
	t6 := (b.Max.Z - ray.Origin.Z) * invZ

	// A zero direction component with the origin exactly on one of that
	// axis's planes gives 0*Inf = NaN; the ray then lies inside that slab
	// for every t, so the slab is widened to (-Inf, +Inf).
	slab := func(a, b float64) (float64, float64) {
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.Inf(-1), math.Inf(1)
		}
		return a, b
	}
	t1, t2 = slab(t1, t2)
	t3, t4 = slab(t3, t4)
	t5, t6 = slab(t5, t6)

	tMinVal := math.Max(math.Max(math.Min(t1, t2), math.Min(t3, t4)), math.Min(t5, t6))
	tMaxVal := math.Min(math.Min(math.Max(t1, t2), math.Max(t3, t4)), math.Max(t5, t6))

	if tMaxVal < 0 || tMinVal > tMaxVal {
		return false, tMaxVal
	}
	return true, tMinVal
}

// Transform returns the bounding box of b after applying the given
// point-transform function to all eight corners, used when an instance's
// local-space bbox needs to be expressed in world space.
func (b Box) Transform(apply func(vecmath.Vector3) vecmath.Vector3) Box {
	corners := [8]vecmath.Vector3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
	out := Empty()
	for _, c := range corners {
		out = out.ExpandPoint(apply(c))
	}
	return out
}
