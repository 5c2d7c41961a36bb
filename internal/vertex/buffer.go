// Package vertex replaces the source's process-wide g_vertices/g_normals/
// g_textureCoords globals (spec.md §9 design note) with a renderer-scoped
// buffer built once during scene load and shared read-only with meshes,
// whose polygons index into it by absolute offset. The buffer is only
// appended to, so once a mesh is parsed its indices never shift.
package vertex

import "github.com/VKoskiv/c-ray/internal/vecmath"

// Buffer holds the three parallel, process-wide-in-spirit-but-now-
// World-scoped sequences meshes index into.
type Buffer struct {
	Positions []vecmath.Vector3
	Normals   []vecmath.Vector3
	UVs       []vecmath.Coord
}

// Range identifies a contiguous slice of a Buffer's arrays owned by one
// mesh. Polygon vertex/normal/uv indices are absolute offsets into the
// Buffer, not relative to Range.Start.
type Range struct {
	Start, Count int
}

// AddPosition appends a vertex position, returning its absolute index.
func (b *Buffer) AddPosition(v vecmath.Vector3) int {
	b.Positions = append(b.Positions, v)
	return len(b.Positions) - 1
}

// AddNormal appends a shading normal, returning its absolute index.
func (b *Buffer) AddNormal(v vecmath.Vector3) int {
	b.Normals = append(b.Normals, v)
	return len(b.Normals) - 1
}

// AddUV appends a texture coordinate, returning its absolute index.
func (b *Buffer) AddUV(c vecmath.Coord) int {
	b.UVs = append(b.UVs, c)
	return len(b.UVs) - 1
}
