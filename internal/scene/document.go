// Package scene assembles a renderable World from the JSON scene
// document of spec.md §6, plus the Wavefront .obj/.mtl files it
// references. Grounded on the teacher's load/obj.go and load/mtl.go
// parsing style, generalized from "one object, GL-friendly fused
// vertices" to "many objects, c-ray's separately-indexed attributes".
package scene

// Document is the top-level JSON scene document of spec.md §6.
type Document struct {
	Renderer RendererDoc `json:"renderer"`
	Display  DisplayDoc  `json:"display"`
	Camera   CameraDoc   `json:"camera"`
	Scene    SceneDoc    `json:"scene"`
}

// RendererDoc configures the tile scheduler and worker pool.
type RendererDoc struct {
	ThreadCount  int    `json:"threadCount"`
	SampleCount  int    `json:"sampleCount"`
	Bounces      int    `json:"bounces"`
	TileWidth    int    `json:"tileWidth"`
	TileHeight   int    `json:"tileHeight"`
	TileOrder    string `json:"tileOrder"`
	Antialiasing bool   `json:"antialiasing"`
}

// DisplayDoc configures the (not implemented here) live preview window;
// carried through so a host embedding this package can read it.
type DisplayDoc struct {
	Enabled      bool    `json:"enabled"`
	IsFullscreen bool    `json:"isFullscreen"`
	IsBorderless bool    `json:"isBorderless"`
	WindowScale  float64 `json:"windowScale"`
}

// Vec3Doc is a plain {X,Y,Z} object used by positions and translate/
// scale transform entries.
type Vec3Doc struct {
	X, Y, Z float64
}

// TransformDoc is one entry of a "transforms" array (spec.md §6).
type TransformDoc struct {
	Type    string  `json:"type"`
	Degrees float64 `json:"degrees"`
	Radians float64 `json:"radians"`
	Scale   float64 `json:"scale"`
	X       float64 `json:"X"`
	Y       float64 `json:"Y"`
	Z       float64 `json:"Z"`
}

// CameraDoc is the "camera" top-level object.
type CameraDoc struct {
	FOV           float64        `json:"FOV"`
	Aperture      float64        `json:"aperture"`
	FocalDistance float64        `json:"focalDistance"`
	Transforms    []TransformDoc `json:"transforms"`
}

// ColorDoc is spec.md §6's `Color = { "r","g","b","a"? }`.
type ColorDoc struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a,omitempty"`
}

// AmbientDoc is the scene's background description.
type AmbientDoc struct {
	Down          ColorDoc `json:"down"`
	Up            ColorDoc `json:"up"`
	HDR           string   `json:"hdr,omitempty"`
	OffsetDegrees float64  `json:"offset,omitempty"`
}

// MaterialDoc is the `material` object shared by spheres and meshes.
type MaterialDoc struct {
	Albedo      ColorDoc `json:"albedo"`
	Roughness   float64  `json:"roughness"`
	Specularity float64  `json:"specularity"`
	Metalness   float64  `json:"metalness"`
	Anisotropy  float64  `json:"anisotropy"`
	IOR         float64  `json:"ior"`
}

// SphereDoc is one entry of "scene.primitives".
type SphereDoc struct {
	Type         string      `json:"type"`
	Pos          Vec3Doc     `json:"pos"`
	Radius       float64     `json:"radius"`
	Material     MaterialDoc `json:"material"`
	DiffuseBSDF  string      `json:"diffuseBSDF"`
	SpecularBSDF string      `json:"specularBSDF"`
	MaterialType string      `json:"materialType"`
}

// MeshDoc is one entry of "scene.meshes".
type MeshDoc struct {
	FileName     string         `json:"fileName"`
	Transforms   []TransformDoc `json:"transforms"`
	Material     MaterialDoc    `json:"material"`
	DiffuseBSDF  string         `json:"diffuseBSDF"`
	SpecularBSDF string         `json:"specularBSDF"`
}

// SceneDoc is the "scene" top-level object.
type SceneDoc struct {
	OutputFilePath string      `json:"outputFilePath"`
	OutputFileName string      `json:"outputFileName"`
	Count          int         `json:"count"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	FileType       string      `json:"fileType"`
	AmbientColor   AmbientDoc  `json:"ambientColor"`
	Primitives     []SphereDoc `json:"primitives"`
	Meshes         []MeshDoc   `json:"meshes"`
}
