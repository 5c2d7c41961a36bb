package scene

import (
	"os"
	"path/filepath"
	"testing"
)

const triangleOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl floor
f 1 2 3
`

const triangleMTL = `
newmtl floor
Kd 0.6 0.6 0.6
`

const sceneJSON = `
{
  "renderer": {"threadCount": 2, "sampleCount": 4, "bounces": 3, "tileWidth": 16, "tileOrder": "normal"},
  "camera": {"FOV": 80, "transforms": [{"type": "translate", "X": 0, "Y": 0, "Z": -5}]},
  "scene": {
    "width": 32,
    "height": 32,
    "outputFilePath": "out",
    "outputFileName": "frame",
    "fileType": "png",
    "ambientColor": {"down": {"r": 0.05, "g": 0.05, "b": 0.1}, "up": {"r": 0.4, "g": 0.5, "b": 0.9}},
    "primitives": [
      {"pos": {"X": 0, "Y": 0, "Z": 0}, "radius": 1.0, "materialType": "diffuse", "material": {"albedo": {"r": 0.8, "g": 0.2, "b": 0.2}}}
    ],
    "meshes": [
      {"fileName": "floor.obj", "material": {"albedo": {"r": 1, "g": 1, "b": 1}}}
    ]
  }
}
`

func writeFixtureScene(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "floor.obj"), []byte(triangleOBJ), 0o644); err != nil {
		t.Fatalf("write obj fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "floor.mtl"), []byte(triangleMTL), 0o644); err != nil {
		t.Fatalf("write mtl fixture: %v", err)
	}
	scenePath := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(scenePath, []byte(sceneJSON), 0o644); err != nil {
		t.Fatalf("write scene fixture: %v", err)
	}
	return scenePath
}

func TestLoadDocumentBuildsCompleteWorld(t *testing.T) {
	path := writeFixtureScene(t)
	w, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	if len(w.Instances) != 2 {
		t.Fatalf("expected 1 sphere + 1 mesh instance, got %d", len(w.Instances))
	}
	if w.Camera.ImageWidth != 32 || w.Camera.ImageHeight != 32 {
		t.Errorf("got %dx%d, want 32x32", w.Camera.ImageWidth, w.Camera.ImageHeight)
	}
	if w.Config.ThreadCount != 2 || w.Config.SampleCount != 4 || w.Config.Bounces != 3 {
		t.Errorf("unexpected render config: %+v", w.Config)
	}
	if w.OutputFileType != "png" {
		t.Errorf("got file type %q, want png", w.OutputFileType)
	}
	if w.TopLevelBVH == nil {
		t.Errorf("expected a non-nil top-level BVH")
	}
}

func TestBuildWorldRejectsEmptyScene(t *testing.T) {
	doc := &Document{}
	doc.Scene.Width, doc.Scene.Height = 16, 16
	if _, err := BuildWorld(doc, "."); err == nil {
		t.Errorf("expected an error for a scene with zero instances")
	}
}

func TestBuildWorldRejectsNonPositiveDimensions(t *testing.T) {
	doc := &Document{}
	if _, err := BuildWorld(doc, "."); err == nil {
		t.Errorf("expected an error for width=height=0")
	}
}

func TestBuildWorldDefaultsSampleAndThreadCounts(t *testing.T) {
	doc := &Document{}
	doc.Scene.Width, doc.Scene.Height = 4, 4
	doc.Scene.Primitives = []SphereDoc{{Pos: Vec3Doc{}, Radius: 1}}
	w, err := BuildWorld(doc, ".")
	if err != nil {
		t.Fatalf("BuildWorld: %v", err)
	}
	if w.Config.SampleCount != 1 || w.Config.ThreadCount != 1 {
		t.Errorf("got %+v, want SampleCount=1 ThreadCount=1", w.Config)
	}
}

func TestBuildWorldRejectsNonPositiveRadius(t *testing.T) {
	doc := &Document{}
	doc.Scene.Width, doc.Scene.Height = 4, 4
	doc.Scene.Primitives = []SphereDoc{{Radius: 0}}
	if _, err := BuildWorld(doc, "."); err == nil {
		t.Errorf("expected an error for a zero-radius sphere")
	}
}
