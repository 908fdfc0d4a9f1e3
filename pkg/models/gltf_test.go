package models

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// writeTriangleGLB saves a one-triangle GLB in the XY plane, wound CCW when
// seen from +Z, and returns its path.
func writeTriangleGLB(t *testing.T, node *gltf.Node, mat *gltf.Material) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	prim := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: pos},
		Indices:    gltf.Index(idx),
	}
	if mat != nil {
		doc.Materials = []*gltf.Material{mat}
		prim.Material = gltf.Index(0)
	}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: []*gltf.Primitive{prim}}}

	node.Mesh = gltf.Index(0)
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "tri.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
	if loader.FitSize != 2 {
		t.Errorf("FitSize = %v, want 2", loader.FitSize)
	}
}

func TestLoadTriangleFitsAndGeneratesNormals(t *testing.T) {
	path := writeTriangleGLB(t, &gltf.Node{}, nil)

	model, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if len(model.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(model.Parts))
	}
	if model.TriangleCount() != 1 || model.VertexCount() != 3 {
		t.Errorf("got %d triangles / %d vertices, want 1 / 3", model.TriangleCount(), model.VertexCount())
	}

	// Source winding is reversed on load.
	if got := model.Parts[0].Mesh.Faces[0].V; got != [3]int{0, 2, 1} {
		t.Errorf("face = %v, want [0 2 1]", got)
	}

	for i, v := range model.Parts[0].Mesh.Vertices {
		if math.Abs(v.Normal.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}

	if got := model.Size().MaxComponent(); math.Abs(got-2) > 1e-9 {
		t.Errorf("fitted extent = %v, want 2", got)
	}
	if c := model.Center(); c.Len() > 1e-9 {
		t.Errorf("fitted center = %v, want origin", c)
	}
}

func TestLoadAppliesNodeTransform(t *testing.T) {
	path := writeTriangleGLB(t, &gltf.Node{Translation: [3]float64{5, 0, 0}}, nil)

	loader := NewGLTFLoader()
	loader.FitSize = 0
	model, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if model.BoundsMin.X != 5 || model.BoundsMax.X != 6 {
		t.Errorf("bounds x = [%v, %v], want [5, 6]", model.BoundsMin.X, model.BoundsMax.X)
	}
}

func TestLoadReadsBaseColor(t *testing.T) {
	mat := &gltf.Material{
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0.5, 0, 1},
		},
	}
	path := writeTriangleGLB(t, &gltf.Node{}, mat)

	model, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	part := model.Parts[0]
	if part.Material.BaseColor != math3d.V3(1, 0.5, 0) {
		t.Errorf("base color = %v, want (1, 0.5, 0)", part.Material.BaseColor)
	}
	if !part.DoubleSided {
		t.Error("DoubleSided not carried over")
	}
}

func TestLoadHonorsCancelledContext(t *testing.T) {
	path := writeTriangleGLB(t, &gltf.Node{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGLTFLoader().Load(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDecodeSkipsImageWithMissingBufferView(t *testing.T) {
	src := `{
		"asset": {"version": "2.0"},
		"images": [{"bufferView": 5, "mimeType": "image/png"}],
		"textures": [{"source": 0}]
	}`

	model, err := NewGLTFLoader().Decode(context.Background(), strings.NewReader(src), nil, "broken.gltf")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(model.Parts) != 0 {
		t.Errorf("parts = %d, want 0", len(model.Parts))
	}
}

func TestDecodeRejectsOutOfRangeAccessor(t *testing.T) {
	tests := []struct {
		name string
		prim string
	}{
		{"position", `{"attributes": {"POSITION": 7}}`},
		{"indices", `{"attributes": {"POSITION": 0}, "indices": 9}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := `{
				"asset": {"version": "2.0"},
				"accessors": [{"componentType": 5126, "count": 0, "type": "VEC3"}],
				"meshes": [{"primitives": [` + tc.prim + `]}],
				"nodes": [{"mesh": 0}],
				"scenes": [{"nodes": [0]}],
				"scene": 0
			}`
			_, err := NewGLTFLoader().Decode(context.Background(), strings.NewReader(src), nil, "broken.gltf")
			if err == nil || !strings.Contains(err.Error(), "out of range") {
				t.Errorf("err = %v, want out of range error", err)
			}
		})
	}
}
