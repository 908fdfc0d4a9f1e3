package models

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

// GLTFLoader decodes GLTF/GLB documents into a Model.
type GLTFLoader struct {
	CalculateNormals bool    // Generate normals for primitives that lack them
	SmoothNormals    bool    // Average generated normals across shared vertices
	FitSize          float64 // Recenter and rescale to this extent; 0 keeps source units
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
		FitSize:          2,
	}
}

// LoadGLB loads a .glb or .gltf file with the default loader.
func LoadGLB(path string) (*Model, error) {
	return NewGLTFLoader().Load(context.Background(), path)
}

// Load opens path and decodes it. External buffers and images resolve
// relative to the file's directory.
func (l *GLTFLoader) Load(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return l.Decode(ctx, f, os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Decode reads a GLB or GLTF document from r. fsys resolves external
// resources and may be nil for self-contained files. Decoding stops early
// once ctx is done.
func (l *GLTFLoader) Decode(ctx context.Context, r io.Reader, fsys fs.FS, name string) (*Model, error) {
	var dec *gltf.Decoder
	if fsys != nil {
		dec = gltf.NewDecoderFS(r, fsys)
	} else {
		dec = gltf.NewDecoder(r)
	}

	doc := new(gltf.Document)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model := &Model{Name: name}
	textures := l.decodeTextures(doc, fsys)
	materials := decodeMaterials(doc, textures)

	for _, root := range sceneRoots(doc) {
		if err := l.walkNode(ctx, doc, root, math3d.Identity(), materials, model); err != nil {
			return nil, err
		}
	}

	model.CalculateBounds()
	if l.FitSize > 0 {
		model.Fit(l.FitSize)
	}
	return model, nil
}

type decodedMaterial struct {
	render.Material
	doubleSided bool
}

func (l *GLTFLoader) decodeTextures(doc *gltf.Document, fsys fs.FS) []*render.Texture {
	textures := make([]*render.Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil || *gt.Source >= len(doc.Images) {
			continue
		}
		data, err := imageBytes(doc, doc.Images[*gt.Source], fsys)
		if err != nil || len(data) == 0 {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		textures[i] = render.TextureFromImage(img)
	}
	return textures
}

func imageBytes(doc *gltf.Document, img *gltf.Image, fsys fs.FS) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		if *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("image buffer view %d out of range", *img.BufferView)
		}
		return modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "" && fsys != nil:
		return fs.ReadFile(fsys, img.URI)
	}
	return nil, nil
}

func decodeMaterials(doc *gltf.Document, textures []*render.Texture) []decodedMaterial {
	materials := make([]decodedMaterial, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := decodedMaterial{Material: render.DefaultMaterial(), doubleSided: gm.DoubleSided}
		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.BaseColor = math3d.V3(cf[0], cf[1], cf[2])
			if pbr.BaseColorTexture != nil {
				if idx := pbr.BaseColorTexture.Index; idx < len(textures) {
					mat.Texture = textures[idx]
				}
			}
		}
		materials[i] = mat
	}
	return materials
}

func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}

	// No scene: every parentless node is a root.
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func nodeMatrix(n *gltf.Node) math3d.Mat4 {
	if m := math3d.Mat4(n.Matrix); m != (math3d.Mat4{}) && m != math3d.Identity() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math3d.Translate(math3d.V3(t[0], t[1], t[2])).
		Mul(math3d.Quaternion(r[0], r[1], r[2], r[3])).
		Mul(math3d.Scale(math3d.V3(s[0], s[1], s[2])))
}

func (l *GLTFLoader) walkNode(ctx context.Context, doc *gltf.Document, idx int, parent math3d.Mat4, materials []decodedMaterial, model *Model) error {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	node := doc.Nodes[idx]
	world := parent.Mul(nodeMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		gm := doc.Meshes[*node.Mesh]
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			mesh, err := l.decodePrimitive(doc, prim)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", gm.Name, pi, err)
			}
			if mesh == nil {
				continue
			}
			mesh.Name = fmt.Sprintf("%s_p%d", gm.Name, pi)
			mesh.Transform(world)

			part := Part{Mesh: mesh, Material: render.DefaultMaterial()}
			if prim.Material != nil && *prim.Material < len(materials) {
				part.Material = materials[*prim.Material].Material
				part.DoubleSided = materials[*prim.Material].doubleSided
			}
			model.Parts = append(model.Parts, part)
		}
	}

	for _, child := range node.Children {
		if err := l.walkNode(ctx, doc, child, world, materials, model); err != nil {
			return err
		}
	}
	return nil
}

func checkAccessors(doc *gltf.Document, prim *gltf.Primitive) error {
	for name, idx := range prim.Attributes {
		if idx >= len(doc.Accessors) {
			return fmt.Errorf("attribute %s accessor %d out of range", name, idx)
		}
	}
	if prim.Indices != nil && *prim.Indices >= len(doc.Accessors) {
		return fmt.Errorf("indices accessor %d out of range", *prim.Indices)
	}
	return nil
}

// decodePrimitive extracts geometry from one triangle primitive. It returns
// nil when the primitive has no positions.
func (l *GLTFLoader) decodePrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	if err := checkAccessors(doc, prim); err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
	}

	mesh := NewMesh("")
	mesh.Vertices = make([]MeshVertex, len(positions))
	for i, p := range positions {
		v := MeshVertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
		if i < len(uvs) {
			// GLTF uses top-left origin (V=0 at top), flip V for bottom-left origin
			v.UV = math3d.V2(float64(uvs[i][0]), 1.0-float64(uvs[i][1]))
		}
		mesh.Vertices[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	// GLTF winds front faces CCW; swap the last two corners to store them CW.
	mesh.Faces = make([]Face, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
		if a >= len(positions) || b >= len(positions) || c >= len(positions) {
			return nil, fmt.Errorf("index out of range at triangle %d", i/3)
		}
		mesh.Faces = append(mesh.Faces, Face{V: [3]int{a, c, b}})
	}

	if l.CalculateNormals && len(normals) == 0 {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}
	mesh.CalculateBounds()
	return mesh, nil
}
