package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/VKoskiv/c-ray/internal/rayerr"
	"github.com/VKoskiv/c-ray/internal/vecmath"
	"github.com/VKoskiv/c-ray/internal/vertex"
)

// polygonDraft is a triangle whose attribute indices are already
// absolute offsets into the shared vertex.Buffer, plus the raw
// material name (resolved to a node ID later, once the .mtl file has
// been parsed and every referenced BSDF has been interned).
type polygonDraft struct {
	VertexIndex  [3]int
	NormalIndex  [3]int
	UVIndex      [3]int
	HasNormals   bool
	MaterialName string
}

// ObjectDraft is one `o`-delimited (or ungrouped) object parsed out of
// a Wavefront file, still referencing the shared buffer by absolute
// index.
type ObjectDraft struct {
	Name     string
	Polygons []polygonDraft
}

// LoadOBJ parses a Wavefront .obj stream, grounded on the teacher's
// load/obj.go tokenizer but generalized from "one GL-fused object" to
// "every `o`/`g`-delimited object in the file, attributes indexed
// independently" to match c-ray's Polygon layout (spec.md §6). Unlike
// the teacher's loader, it supports the `v`, `v/vt`, `v/vt/vn`, and
// `v//vn` face-index variants, negative (relative-to-current-end)
// indices, and n-gon faces via fan triangulation. Returns the parsed
// objects and the list of `mtllib`-referenced filenames (relative to
// the .obj's own directory), leaving materials unresolved.
func LoadOBJ(r io.Reader, buf *vertex.Buffer) (objects []*ObjectDraft, mtlLibs []string, err error) {
	var current *ObjectDraft
	currentMaterial := ""
	ensureObject := func(name string) *ObjectDraft {
		if current != nil && current.Name == name {
			return current
		}
		o := &ObjectDraft{Name: name}
		objects = append(objects, o)
		current = o
		return current
	}
	ensureObject("default")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, perr := parseVec3(fields[1:])
			if perr != nil {
				return nil, nil, rayerr.Wrap(rayerr.InputMalformed, fmt.Sprintf("line %d", lineNo), perr)
			}
			buf.AddPosition(v)
		case "vn":
			n, perr := parseVec3(fields[1:])
			if perr != nil {
				return nil, nil, rayerr.Wrap(rayerr.InputMalformed, fmt.Sprintf("line %d", lineNo), perr)
			}
			buf.AddNormal(n)
		case "vt":
			u, perr := strconv.ParseFloat(fields[1], 64)
			if perr != nil {
				return nil, nil, rayerr.Wrap(rayerr.InputMalformed, fmt.Sprintf("line %d", lineNo), perr)
			}
			v := 0.0
			if len(fields) > 2 {
				if v, perr = strconv.ParseFloat(fields[2], 64); perr != nil {
					return nil, nil, rayerr.Wrap(rayerr.InputMalformed, fmt.Sprintf("line %d", lineNo), perr)
				}
			}
			buf.AddUV(vecmath.Coord{U: u, V: v})
		case "f":
			polys, perr := parseFace(fields[1:], buf, currentMaterial)
			if perr != nil {
				return nil, nil, rayerr.Wrap(rayerr.InputMalformed, fmt.Sprintf("line %d", lineNo), perr)
			}
			current.Polygons = append(current.Polygons, polys...)
		case "o":
			ensureObject(strings.TrimSpace(strings.TrimPrefix(line, "o")))
		case "g":
			if current == nil || len(current.Polygons) > 0 {
				ensureObject(strings.TrimSpace(strings.TrimPrefix(line, "g")))
			} else {
				current.Name = strings.TrimSpace(strings.TrimPrefix(line, "g"))
			}
		case "usemtl":
			currentMaterial = strings.TrimSpace(strings.TrimPrefix(line, "usemtl"))
		case "mtllib":
			mtlLibs = append(mtlLibs, strings.Fields(strings.TrimPrefix(line, "mtllib"))...)
		case "s": // smoothing group, unmodeled.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, rayerr.Wrap(rayerr.InputMalformed, "", err)
	}

	var nonEmpty []*ObjectDraft
	for _, o := range objects {
		if len(o.Polygons) > 0 {
			nonEmpty = append(nonEmpty, o)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil, rayerr.New(rayerr.SceneInconsistent, "obj file has zero polygons")
	}
	return nonEmpty, mtlLibs, nil
}

func parseVec3(fields []string) (vecmath.Vector3, error) {
	if len(fields) < 3 {
		return vecmath.Vector3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return vecmath.Vector3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return vecmath.Vector3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return vecmath.Vector3{}, err
	}
	return vecmath.Vector3{X: x, Y: y, Z: z}, nil
}

// faceVertex is one "v/vt/vn" token resolved to absolute 0-based
// buffer indices; vt/vn are -1 when absent.
type faceVertex struct {
	v, t, n int
}

func parseFace(tokens []string, buf *vertex.Buffer, material string) ([]polygonDraft, error) {
	if len(tokens) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(tokens))
	}
	verts := make([]faceVertex, len(tokens))
	for i, tok := range tokens {
		fv, err := parseFaceVertex(tok, len(buf.Positions), len(buf.UVs), len(buf.Normals))
		if err != nil {
			return nil, err
		}
		verts[i] = fv
	}

	// Fan triangulation for n-gons: (v0, vi, vi+1).
	polys := make([]polygonDraft, 0, len(verts)-2)
	for i := 1; i < len(verts)-1; i++ {
		a, b, c := verts[0], verts[i], verts[i+1]
		hasNormals := a.n >= 0 && b.n >= 0 && c.n >= 0
		pd := polygonDraft{
			VertexIndex:  [3]int{a.v, b.v, c.v},
			UVIndex:      [3]int{a.t, b.t, c.t},
			HasNormals:   hasNormals,
			MaterialName: material,
		}
		if hasNormals {
			pd.NormalIndex = [3]int{a.n, b.n, c.n}
		}
		polys = append(polys, pd)
	}
	return polys, nil
}

// parseFaceVertex resolves one "v", "v/vt", "v/vt/vn", or "v//vn"
// token to absolute 0-based indices. Indices are 1-based in the file;
// a negative index counts back from the current end of the buffer
// (the OBJ spec's "relative" form).
func parseFaceVertex(tok string, vCount, tCount, nCount int) (faceVertex, error) {
	parts := strings.Split(tok, "/")
	fv := faceVertex{t: -1, n: -1}

	resolve := func(s string, count int) (int, error) {
		if s == "" {
			return -1, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return -1, err
		}
		if i < 0 {
			return count + i, nil
		}
		return i - 1, nil
	}

	var err error
	if fv.v, err = resolve(parts[0], vCount); err != nil {
		return fv, fmt.Errorf("bad face vertex index in %q: %w", tok, err)
	}
	switch len(parts) {
	case 1:
	case 2:
		if fv.t, err = resolve(parts[1], tCount); err != nil {
			return fv, fmt.Errorf("bad face uv index in %q: %w", tok, err)
		}
	case 3:
		if parts[1] != "" {
			if fv.t, err = resolve(parts[1], tCount); err != nil {
				return fv, fmt.Errorf("bad face uv index in %q: %w", tok, err)
			}
		}
		if fv.n, err = resolve(parts[2], nCount); err != nil {
			return fv, fmt.Errorf("bad face normal index in %q: %w", tok, err)
		}
	default:
		return fv, fmt.Errorf("malformed face token %q", tok)
	}
	return fv, nil
}
