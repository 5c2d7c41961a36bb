// Package instance implements the four primitive-placement variants of
// spec.md §4.3 (SphereSolid, SphereVolume, MeshSolid, MeshVolume) as a
// tagged union dispatched by a type switch rather than a vtable/
// function-pointer table, per spec.md §9's redesign note preferring an
// exhaustiveness-checked sum type. An Instance places a canonical
// object-space primitive (sphere at the origin, radius 1; or a mesh in
// its own coordinates) into world space via a composite transform.
package instance

import (
	"math"

	"github.com/VKoskiv/c-ray/internal/bbox"
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/sampler"
	"github.com/VKoskiv/c-ray/internal/vecmath"
)

// Kind tags which of the four placement variants an Instance is.
type Kind uint8

const (
	SphereSolid Kind = iota
	SphereVolume
	MeshSolid
	MeshVolume
)

// unitSphere is the canonical object-space sphere every SphereSolid/
// SphereVolume instance shares; only the composite transform differs.
var unitSphere = geom.Sphere{Radius: 1}

// Instance places one object in world space. Mesh is nil for sphere
// kinds. Material is consulted for sphere and volume kinds; MeshSolid
// instead resolves materials per polygon from Mesh.Materials.
type Instance struct {
	Kind      Kind
	Composite vecmath.Matrix4
	Mesh      *geom.Mesh
	Material  uint32 // node.BsdfID, opaque here.
	Density   float64
	RayOffset float64
	Bounds    bbox.Box // world-space.
}

// rayOffsetFromBounds derives a self-intersection epsilon from a
// world-space bbox diagonal (spec.md §4.3: "ray_offset is a function of
// the world-space bbox diagonal").
func rayOffsetFromBounds(b bbox.Box) float64 {
	d := b.Diagonal().Length()
	if d == 0 {
		return 1e-4
	}
	return d * 1e-4
}

// NewSphereSolid places the canonical unit sphere at world space via
// transform, with a diffuse/metal/etc. material.
func NewSphereSolid(transform vecmath.Matrix4, material uint32) *Instance {
	bounds := bbox.Box{Min: vecmath.Vector3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vector3{X: 1, Y: 1, Z: 1}}.Transform(transform.MulPoint)
	return &Instance{Kind: SphereSolid, Composite: transform, Material: material, RayOffset: rayOffsetFromBounds(bounds), Bounds: bounds}
}

// NewSphereVolume places a unit sphere as a homogeneous participating
// medium of the given density (spec.md §4.3).
func NewSphereVolume(transform vecmath.Matrix4, material uint32, density float64) *Instance {
	bounds := bbox.Box{Min: vecmath.Vector3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vector3{X: 1, Y: 1, Z: 1}}.Transform(transform.MulPoint)
	return &Instance{Kind: SphereVolume, Composite: transform, Material: material, Density: density, RayOffset: rayOffsetFromBounds(bounds), Bounds: bounds}
}

// NewMeshSolid places mesh at world space via transform.
func NewMeshSolid(mesh *geom.Mesh, transform vecmath.Matrix4) *Instance {
	bounds := mesh.Bounds().Transform(transform.MulPoint)
	return &Instance{Kind: MeshSolid, Composite: transform, Mesh: mesh, RayOffset: rayOffsetFromBounds(bounds), Bounds: bounds}
}

// NewMeshVolume places mesh as a homogeneous participating medium.
func NewMeshVolume(mesh *geom.Mesh, transform vecmath.Matrix4, material uint32, density float64) *Instance {
	bounds := mesh.Bounds().Transform(transform.MulPoint)
	return &Instance{Kind: MeshVolume, Composite: transform, Mesh: mesh, Material: material, Density: density, RayOffset: rayOffsetFromBounds(bounds), Bounds: bounds}
}

// toObjectSpace transforms a world-space ray into this instance's
// object space. The direction is left un-normalized: since the
// transform is affine, Composite.MulPoint(objOrigin + t*objDir) equals
// ray.Origin + t*ray.Direction exactly, so a ray parameter t computed
// in object space is numerically identical to the world-space t
// (spec.md §4.3 "transforms the ray by the instance's inverse
// transform ... transforms the resulting point and normal back").
func (inst *Instance) toObjectSpace(ray vecmath.Ray) vecmath.Ray {
	return vecmath.Ray{
		Origin:    inst.Composite.InvMulPoint(ray.Origin),
		Direction: inst.Composite.InvMulDir(ray.Direction),
	}
}

// Intersect traces a world-space ray against this instance, producing a
// world-space Hit. instanceIndex is stamped into the result for the
// integrator/scene to resolve per-instance-independent bookkeeping.
// Assumes ray.Direction is unit length, as every ray the renderer
// constructs (camera primary rays, BSDF-sampled bounces) is.
func (inst *Instance) Intersect(instanceIndex int, ray vecmath.Ray, s *sampler.Sampler) (found bool, hit geom.Hit) {
	switch inst.Kind {
	case SphereSolid:
		return inst.intersectSphereSolid(instanceIndex, ray)
	case MeshSolid:
		return inst.intersectMeshSolid(instanceIndex, ray)
	case SphereVolume, MeshVolume:
		return inst.intersectVolume(instanceIndex, ray, s)
	}
	return false, geom.Hit{}
}

func (inst *Instance) intersectSphereSolid(instanceIndex int, ray vecmath.Ray) (bool, geom.Hit) {
	objRay := inst.toObjectSpace(ray)
	pushed, dt := pushOrigin(objRay, inst.RayOffset)
	didHit, localT := geom.IntersectSphere(pushed, unitSphere)
	if !didHit {
		return false, geom.Hit{}
	}
	t := localT + dt
	objPoint := objRay.At(t)
	normal := inst.Composite.NormalTransform(geom.SphereNormal(objPoint)).Normalize()
	return true, geom.Hit{
		IncidentRay:  ray,
		Point:        inst.Composite.MulPoint(objPoint),
		Normal:       normal,
		UV:           geom.SphereUV(objPoint),
		Distance:     t,
		PolygonIndex: -1,
		InstanceIndex: instanceIndex,
		MaterialID:   inst.Material,
	}
}

func (inst *Instance) intersectMeshSolid(instanceIndex int, ray vecmath.Ray) (bool, geom.Hit) {
	objRay := inst.toObjectSpace(ray)
	pushed, dt := pushOrigin(objRay, inst.RayOffset)
	didHit, meshHit := inst.Mesh.Intersect(pushed)
	if !didHit {
		return false, geom.Hit{}
	}
	normal := inst.Composite.NormalTransform(meshHit.Normal).Normalize()
	return true, geom.Hit{
		IncidentRay:   ray,
		Point:         inst.Composite.MulPoint(meshHit.Point),
		Normal:        normal,
		UV:            meshHit.UV,
		BarycentricUV: meshHit.BarycentricUV,
		Distance:      meshHit.Distance + dt,
		PolygonIndex:  meshHit.PolygonIndex,
		InstanceIndex: instanceIndex,
		MaterialID:    meshHit.MaterialID,
	}
}

// intersectVolume implements the two-intersection entry/exit sampling
// of spec.md §4.3: find entry tEntry, find exit tExit via a second
// intersection just past the entry surface, sample a free-flight
// distance h=-ln(xi)/density, and report a hit at tEntry+h (with an
// arbitrary normal, ignored by the isotropic BSDF) iff h<d.
func (inst *Instance) intersectVolume(instanceIndex int, ray vecmath.Ray, s *sampler.Sampler) (bool, geom.Hit) {
	var entryFound bool
	var entryHit geom.Hit
	switch inst.Kind {
	case SphereVolume:
		entryFound, entryHit = inst.intersectSphereSolid(instanceIndex, ray)
	case MeshVolume:
		entryFound, entryHit = inst.intersectMeshSolid(instanceIndex, ray)
	}
	if !entryFound {
		return false, geom.Hit{}
	}

	continuation := vecmath.Ray{Origin: entryHit.Point.Add(ray.Direction.Scale(inst.RayOffset)), Direction: ray.Direction}
	var exitFound bool
	var exitHit geom.Hit
	switch inst.Kind {
	case SphereVolume:
		exitFound, exitHit = inst.intersectSphereSolid(instanceIndex, continuation)
	case MeshVolume:
		exitFound, exitHit = inst.intersectMeshSolid(instanceIndex, continuation)
	}
	if !exitFound {
		return false, geom.Hit{}
	}

	tEntry := entryHit.Distance
	tExit := entryHit.Distance + inst.RayOffset + exitHit.Distance
	d := tExit - tEntry
	if d <= 0 {
		return false, geom.Hit{}
	}

	xi := s.NextDim()
	if xi <= 0 {
		xi = 1e-12
	}
	h := -math.Log(xi) / inst.Density
	if h >= d {
		return false, geom.Hit{}
	}

	point := ray.At(tEntry + h)
	return true, geom.Hit{
		IncidentRay:   ray,
		Point:         point,
		Normal:        ray.Direction.Negate(), // arbitrary; isotropic BSDF ignores it.
		Distance:      tEntry + h,
		PolygonIndex:  -1,
		InstanceIndex: instanceIndex,
		MaterialID:    inst.Material,
	}
}

// pushOrigin advances ray by dt along its own (un-normalized) direction
// and returns the pushed ray plus dt, so callers can add dt back onto
// whatever local t they find to recover the true distance from the
// original origin.
func pushOrigin(ray vecmath.Ray, worldOffset float64) (pushed vecmath.Ray, dt float64) {
	dt = worldOffset
	return vecmath.Ray{Origin: ray.At(dt), Direction: ray.Direction}, dt
}
