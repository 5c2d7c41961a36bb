package scene

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/VKoskiv/c-ray/internal/bvh"
	"github.com/VKoskiv/c-ray/internal/camera"
	"github.com/VKoskiv/c-ray/internal/geom"
	"github.com/VKoskiv/c-ray/internal/instance"
	"github.com/VKoskiv/c-ray/internal/integrator"
	"github.com/VKoskiv/c-ray/internal/node"
	"github.com/VKoskiv/c-ray/internal/rayerr"
	"github.com/VKoskiv/c-ray/internal/render"
	"github.com/VKoskiv/c-ray/internal/texture"
	"github.com/VKoskiv/c-ray/internal/tile"
	"github.com/VKoskiv/c-ray/internal/vecmath"
	"github.com/VKoskiv/c-ray/internal/vertex"
)

// World is the single owner of every scene-build-time resource (spec.md
// §3/§5: "the scene graph ... is read-only after scene build; freely
// shared across workers without locking"). It embeds integrator.Scene
// (the slice the integrator needs) plus the pieces only the loader and
// imageio host care about.
type World struct {
	*integrator.Scene
	Buffer *vertex.Buffer
	Camera *camera.Camera
	Config render.Config

	OutputDir      string
	OutputName     string
	OutputCount    int
	OutputFileType string
}

// LoadDocument reads path as a scene JSON document (spec.md §6),
// resolves every referenced .obj/.mtl file relative to path's
// directory, and assembles a World ready to hand to render.NewRenderer.
func LoadDocument(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rayerr.Wrap(rayerr.InputNotFound, path, err)
	}
	defer f.Close()

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, rayerr.Wrap(rayerr.InputMalformed, path, err)
	}
	return BuildWorld(&doc, filepath.Dir(path))
}

// BuildWorld assembles a World from an already-parsed Document. baseDir
// is the directory .obj/.mtl/"hdr" paths are resolved relative to.
func BuildWorld(doc *Document, baseDir string) (*World, error) {
	if doc.Scene.Width <= 0 || doc.Scene.Height <= 0 {
		return nil, rayerr.New(rayerr.SceneInconsistent, "scene width/height must be positive")
	}

	arena := node.NewArena()
	buf := &vertex.Buffer{}

	var instances []*instance.Instance

	for i, sp := range doc.Scene.Primitives {
		if sp.Type != "" && sp.Type != "sphere" {
			return nil, rayerr.New(rayerr.InputMalformed, "primitives[%d].type %q unsupported", i, sp.Type)
		}
		if sp.Radius <= 0 || math.IsNaN(sp.Radius) || math.IsInf(sp.Radius, 0) {
			return nil, rayerr.New(rayerr.SceneInconsistent, "primitives[%d].radius must be finite and positive", i)
		}
		bsdf := buildBSDF(arena, sp.Material, sp.MaterialType, sp.DiffuseBSDF, sp.SpecularBSDF)
		transform := vecmath.Scale(sp.Radius, sp.Radius, sp.Radius)
		transform = vecmath.Translate(sp.Pos.X, sp.Pos.Y, sp.Pos.Z).Compose(transform)
		instances = append(instances, instance.NewSphereSolid(transform, uint32(bsdf)))
	}

	for i, md := range doc.Scene.Meshes {
		meshPath := filepath.Join(baseDir, md.FileName)
		meshInstances, err := loadMeshInstances(arena, buf, meshPath, md)
		if err != nil {
			return nil, rayerr.Wrap(rayerr.InputMalformed, meshPath, err)
		}
		if len(meshInstances) == 0 {
			return nil, rayerr.New(rayerr.SceneInconsistent, "meshes[%d] (%s) contributed zero instances", i, md.FileName)
		}
		instances = append(instances, meshInstances...)
	}

	if len(instances) == 0 {
		return nil, rayerr.New(rayerr.SceneInconsistent, "scene has zero instances")
	}

	prims := make([]bvh.Primitive, len(instances))
	for i, inst := range instances {
		prims[i] = bvh.Primitive{Bbox: inst.Bounds, Center: inst.Bounds.Center()}
	}
	topLevel := bvh.Build(prims, 1)

	background, err := buildBackground(doc.Scene.AmbientColor, baseDir)
	if err != nil {
		return nil, err
	}

	camTransform, err := BuildTransform(doc.Camera.Transforms)
	if err != nil {
		return nil, err
	}
	fovDeg := doc.Camera.FOV
	if fovDeg <= 0 || fovDeg > 180 {
		fovDeg = 90
	}
	cam := &camera.Camera{
		ImageWidth:    doc.Scene.Width,
		ImageHeight:   doc.Scene.Height,
		FOV:           fovDeg * math.Pi / 180,
		Aperture:      doc.Camera.Aperture,
		FocalDistance: doc.Camera.FocalDistance,
		Composite:     camTransform,
	}

	cfg := render.Config{
		ThreadCount: doc.Renderer.ThreadCount,
		SampleCount: doc.Renderer.SampleCount,
		Bounces:     doc.Renderer.Bounces,
		TileWidth:   doc.Renderer.TileWidth,
		TileHeight:  doc.Renderer.TileHeight,
		TileOrder:   parseTileOrder(doc.Renderer.TileOrder),
	}
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = 1
	}
	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = 1
	}

	fileType := doc.Scene.FileType
	if fileType == "" {
		fileType = "png"
	}

	return &World{
		Scene: &integrator.Scene{
			Instances:   instances,
			TopLevelBVH: topLevel,
			Materials:   arena,
			Background:  background,
		},
		Buffer:         buf,
		Camera:         cam,
		Config:         cfg,
		OutputDir:      doc.Scene.OutputFilePath,
		OutputName:     doc.Scene.OutputFileName,
		OutputCount:    doc.Scene.Count,
		OutputFileType: fileType,
	}, nil
}

// parseTileOrder maps spec.md §6's "tileOrder" enum to tile.Order,
// defaulting to row-major traversal for an empty or unrecognized value.
func parseTileOrder(s string) tile.Order {
	switch s {
	case "random":
		return tile.Random
	case "topToBottom":
		return tile.TopToBottom
	case "fromMiddle":
		return tile.FromMiddle
	case "toMiddle":
		return tile.ToMiddle
	default:
		return tile.Normal
	}
}

func loadMeshInstances(arena *node.Arena, buf *vertex.Buffer, meshPath string, md MeshDoc) ([]*instance.Instance, error) {
	objFile, err := os.Open(meshPath)
	if err != nil {
		return nil, rayerr.Wrap(rayerr.InputNotFound, meshPath, err)
	}
	defer objFile.Close()

	drafts, mtlLibs, err := LoadOBJ(objFile, buf)
	if err != nil {
		return nil, err
	}

	materialIDs, err := resolveMeshMaterials(arena, md, filepath.Dir(meshPath), mtlLibs)
	if err != nil {
		return nil, err
	}
	defaultMaterial := buildBSDF(arena, md.Material, "", md.DiffuseBSDF, md.SpecularBSDF)

	transform, err := BuildTransform(md.Transforms)
	if err != nil {
		return nil, err
	}

	instances := make([]*instance.Instance, 0, len(drafts))
	for _, d := range drafts {
		mesh := buildMesh(d, buf, materialIDs, uint32(defaultMaterial))
		instances = append(instances, instance.NewMeshSolid(mesh, transform))
	}
	return instances, nil
}

// resolveMeshMaterials loads every mtllib referenced by the .obj and
// interns a BSDF per named material, honoring the scene document's own
// "material"/diffuseBSDF/specularBSDF as the fallback for names with no
// .mtl entry.
func resolveMeshMaterials(arena *node.Arena, md MeshDoc, objDir string, mtlLibs []string) (map[string]uint32, error) {
	ids := map[string]uint32{}
	for _, lib := range mtlLibs {
		path := filepath.Join(objDir, lib)
		f, err := os.Open(path)
		if err != nil {
			return nil, rayerr.Wrap(rayerr.InputNotFound, path, err)
		}
		mats, err := ParseMTL(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		for name, m := range mats {
			ids[name] = uint32(mtlToBSDF(arena, m))
		}
	}
	return ids, nil
}

func buildMesh(draft *ObjectDraft, buf *vertex.Buffer, materialIDs map[string]uint32, defaultMaterial uint32) *geom.Mesh {
	names := []string{}
	nameIndex := map[string]int{}
	polygons := make([]geom.Polygon, len(draft.Polygons))
	for i, pd := range draft.Polygons {
		idx, ok := nameIndex[pd.MaterialName]
		if !ok {
			idx = len(names)
			names = append(names, pd.MaterialName)
			nameIndex[pd.MaterialName] = idx
		}
		polygons[i] = geom.Polygon{
			VertexIndex:   pd.VertexIndex,
			NormalIndex:   pd.NormalIndex,
			UVIndex:       pd.UVIndex,
			HasNormals:    pd.HasNormals,
			MaterialIndex: idx,
		}
	}
	materials := make([]uint32, len(names))
	for i, n := range names {
		if id, ok := materialIDs[n]; ok {
			materials[i] = id
		} else {
			materials[i] = defaultMaterial
		}
	}
	return geom.BuildMesh(draft.Name, polygons, materials, buf)
}

func buildBackground(ad AmbientDoc, baseDir string) (integrator.Background, error) {
	bg := integrator.Background{
		AmbientDown: ad.Down.toColor(),
		AmbientUp:   ad.Up.toColor(),
	}
	if ad.HDR == "" {
		return bg, nil
	}
	path := filepath.Join(baseDir, ad.HDR)
	f, err := os.Open(path)
	if err != nil {
		return bg, rayerr.Wrap(rayerr.InputNotFound, path, err)
	}
	defer f.Close()
	img, err := texture.DecodeHDR(f)
	if err != nil {
		return bg, rayerr.Wrap(rayerr.InputMalformed, path, err)
	}
	bg.HDREnv = img
	// spec.md §6: "offset_radians = degrees · π / (180·4)" (the /4
	// scaling is preserved for compatibility with the source).
	bg.HDROffsetRadians = ad.OffsetDegrees * math.Pi / (180 * 4)
	return bg, nil
}
