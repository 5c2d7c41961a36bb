package geom

import (
	"github.com/VKoskiv/c-ray/internal/bbox"
	"github.com/VKoskiv/c-ray/internal/bvh"
	"github.com/VKoskiv/c-ray/internal/vecmath"
	"github.com/VKoskiv/c-ray/internal/vertex"
)

// Mesh is an object-space triangle mesh: a flat polygon list, a bottom
// level BVH over those polygons, and the per-polygon-local material
// index resolved against the owning instance's material table
// (spec.md §4.3). RayOffset is the self-intersection epsilon used when
// spawning secondary rays from a hit on this mesh.
type Mesh struct {
	Name      string
	Polygons  []Polygon
	Materials []uint32 // node.ID values, opaque here; index == Polygon.MaterialIndex.
	BVH       *bvh.Tree
	RayOffset float64
	Vertices  *vertex.Buffer
}

const defaultRayOffset = 1e-4

// BuildMesh constructs a Mesh's bottom-level BVH from its polygon list.
// vertices must outlive the returned Mesh; it is shared, not copied,
// matching vertex.Buffer's contract (spec.md §9).
func BuildMesh(name string, polygons []Polygon, materials []uint32, vertices *vertex.Buffer) *Mesh {
	prims := make([]bvh.Primitive, len(polygons))
	for i, p := range polygons {
		min, max := p.bboxOf(vertices)
		box := bbox.Box{Min: min, Max: max}
		prims[i] = bvh.Primitive{Bbox: box, Center: box.Center()}
	}
	return &Mesh{
		Name:      name,
		Polygons:  polygons,
		Materials: materials,
		BVH:       bvh.Build(prims, 0),
		RayOffset: defaultRayOffset,
		Vertices:  vertices,
	}
}

// Bounds returns the mesh's object-space bounding box, empty for a mesh
// with no polygons.
func (m *Mesh) Bounds() bbox.Box {
	box := bbox.Empty()
	for _, p := range m.Polygons {
		min, max := p.bboxOf(m.Vertices)
		box = bbox.Union(box, bbox.Box{Min: min, Max: max})
	}
	return box
}

// Intersect traces ray (already in the mesh's object space) against the
// bottom-level BVH, filling hit with the nearest polygon intersection.
func (m *Mesh) Intersect(ray vecmath.Ray) (found bool, hit Hit) {
	didHit, closestT, polyIndex := m.BVH.Intersect(ray, func(i int) (bool, float64) {
		h, t, _, _ := IntersectTriangle(ray, m.Polygons[i], m.Vertices)
		return h, t
	})
	if !didHit {
		return false, Hit{}
	}
	p := m.Polygons[polyIndex]
	_, _, u, v := IntersectTriangle(ray, p, m.Vertices)
	point := ray.At(closestT)
	hit = Hit{
		IncidentRay:   ray,
		Point:         point,
		Normal:        ShadingNormal(p, m.Vertices, u, v),
		UV:            TexturedUV(p, m.Vertices, u, v),
		BarycentricUV: vecmath.Coord{U: u, V: v},
		Distance:      closestT,
		PolygonIndex:  polyIndex,
		MaterialID:    m.Materials[p.MaterialIndex],
	}
	return true, hit
}
