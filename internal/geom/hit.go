// Package geom implements the ray-intersectable primitives of spec.md
// §3/§4.3: triangles (polygons), spheres, and the meshes built from
// them. Grounded on the original C-ray mesh.c/instance.c and the
// teacher's mesh.go for field naming conventions.
package geom

import "github.com/VKoskiv/c-ray/internal/vecmath"

// Hit is the mutable record intersection routines fill in. Barycentric
// UV is stored raw; mesh hits additionally carry the polygon reference
// so a second pass can blend the three vertex UVs (spec.md §3).
type Hit struct {
	IncidentRay    vecmath.Ray
	Point          vecmath.Vector3
	Normal         vecmath.Vector3
	UV             vecmath.Coord
	BarycentricUV  vecmath.Coord
	Distance       float64
	PolygonIndex   int // index into the owning mesh's Polygons, or -1.
	InstanceIndex  int
	MaterialID     uint32 // node.ID of the shading BSDF, opaque to geom.
}
