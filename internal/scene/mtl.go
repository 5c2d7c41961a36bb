package scene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/VKoskiv/c-ray/internal/rayerr"
)

// MTLMaterial holds one `newmtl` block's fields, covering every key
// spec.md §6 lists: "Ka Kd Ks Ke Ns d r sharpness Ni map_Kd norm
// map_Ns". Grounded on the teacher's load/mtl.go token-switch style,
// generalized to multiple materials per file (the teacher's loader
// only ever populated one MtlData) and to the wider original
// mtlloader.c key set.
type MTLMaterial struct {
	Ka, Kd, Ks, Ke [3]float64
	Ns             float64 // specular exponent.
	D              float64 // dissolve (opacity); 1 - transparency.
	R              float64 // reflectivity (non-standard `r` extension).
	Sharpness      float64
	Ni             float64 // optical density / IOR.
	MapKd          string  // diffuse color texture path.
	Norm           string  // normal/bump map path.
	MapNs          string  // specular highlight map path.
}

// ParseMTL parses a Wavefront .mtl stream into a map keyed by each
// material's `newmtl` name.
func ParseMTL(r io.Reader) (map[string]*MTLMaterial, error) {
	materials := map[string]*MTLMaterial{}
	var current *MTLMaterial

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key := fields[0]

		if key == "newmtl" {
			name := strings.TrimSpace(strings.TrimPrefix(line, "newmtl"))
			current = &MTLMaterial{Ni: 1}
			materials[name] = current
			continue
		}
		if current == nil {
			continue // stray directives before the first newmtl are ignored.
		}

		var err error
		switch key {
		case "Ka":
			current.Ka, err = parseTriple(fields[1:])
		case "Kd":
			current.Kd, err = parseTriple(fields[1:])
		case "Ks":
			current.Ks, err = parseTriple(fields[1:])
		case "Ke":
			current.Ke, err = parseTriple(fields[1:])
		case "Ns":
			current.Ns, err = parseScalar(fields[1:])
		case "d":
			current.D, err = parseScalar(fields[1:])
		case "r":
			current.R, err = parseScalar(fields[1:])
		case "sharpness":
			current.Sharpness, err = parseScalar(fields[1:])
		case "Ni":
			current.Ni, err = parseScalar(fields[1:])
		case "map_Kd":
			current.MapKd = lastField(fields)
		case "norm":
			current.Norm = lastField(fields)
		case "map_Ns":
			current.MapNs = lastField(fields)
		case "illum": // illumination model, unmodeled.
		}
		if err != nil {
			return nil, rayerr.Wrap(rayerr.InputMalformed, fmt.Sprintf("line %d", lineNo), err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rayerr.Wrap(rayerr.InputMalformed, "", err)
	}
	return materials, nil
}

func parseTriple(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func parseScalar(fields []string) (float64, error) {
	if len(fields) < 1 {
		return 0, fmt.Errorf("expected a value")
	}
	return strconv.ParseFloat(fields[0], 64)
}

// lastField returns a map/texture path token, tolerating the options
// flags (-o, -s, -bm, ...) the format allows before the filename by
// taking the final whitespace-separated field.
func lastField(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}
