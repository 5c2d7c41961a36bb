package scene

import (
	"strings"
	"testing"

	"github.com/VKoskiv/c-ray/internal/vertex"
)

const quadOBJ = `
o quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
usemtl red
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func TestLoadOBJTriangulatesQuad(t *testing.T) {
	buf := &vertex.Buffer{}
	objects, libs, err := LoadOBJ(strings.NewReader(quadOBJ), buf)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(libs) != 0 {
		t.Errorf("expected no mtllib references, got %v", libs)
	}
	if len(objects) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objects))
	}
	o := objects[0]
	if o.Name != "quad" {
		t.Errorf("got name %q, want %q", o.Name, "quad")
	}
	if len(o.Polygons) != 2 {
		t.Fatalf("expected 2 triangles from fan triangulation, got %d", len(o.Polygons))
	}
	for _, p := range o.Polygons {
		if p.MaterialName != "red" {
			t.Errorf("got material %q, want %q", p.MaterialName, "red")
		}
		if !p.HasNormals {
			t.Errorf("expected polygon to carry normals")
		}
	}
	if len(buf.Positions) != 4 || len(buf.Normals) != 1 || len(buf.UVs) != 4 {
		t.Errorf("unexpected buffer sizes: pos=%d norm=%d uv=%d", len(buf.Positions), len(buf.Normals), len(buf.UVs))
	}
}

const noNormalsOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestLoadOBJWithoutNormalsOrUVs(t *testing.T) {
	buf := &vertex.Buffer{}
	objects, _, err := LoadOBJ(strings.NewReader(noNormalsOBJ), buf)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	p := objects[0].Polygons[0]
	if p.HasNormals {
		t.Errorf("expected no normals for bare v-only face")
	}
	if p.UVIndex[0] != -1 {
		t.Errorf("expected sentinel -1 uv index, got %d", p.UVIndex[0])
	}
}

func TestLoadOBJNegativeRelativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	buf := &vertex.Buffer{}
	objects, _, err := LoadOBJ(strings.NewReader(src), buf)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	p := objects[0].Polygons[0]
	if p.VertexIndex != [3]int{0, 1, 2} {
		t.Errorf("got %v, want [0 1 2]", p.VertexIndex)
	}
}

func TestLoadOBJRejectsEmptyMesh(t *testing.T) {
	buf := &vertex.Buffer{}
	if _, _, err := LoadOBJ(strings.NewReader("# just a comment\n"), buf); err == nil {
		t.Errorf("expected an error for a mesh with zero polygons")
	}
}

func TestLoadOBJCollectsMtlLibs(t *testing.T) {
	src := "mtllib materials.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	buf := &vertex.Buffer{}
	_, libs, err := LoadOBJ(strings.NewReader(src), buf)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(libs) != 1 || libs[0] != "materials.mtl" {
		t.Errorf("got %v, want [materials.mtl]", libs)
	}
}
