package models

import (
	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

// Part is one drawable primitive of a model with its surface.
type Part struct {
	Mesh        *Mesh
	Material    render.Material
	DoubleSided bool
}

// Model is a decoded asset: every primitive of the default glTF scene with
// node transforms baked into the vertices.
type Model struct {
	Name  string
	Parts []Part

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// CalculateBounds computes the union of the part bounds.
func (m *Model) CalculateBounds() {
	first := true
	for _, p := range m.Parts {
		if p.Mesh.VertexCount() == 0 {
			continue
		}
		if first {
			m.BoundsMin, m.BoundsMax = p.Mesh.BoundsMin, p.Mesh.BoundsMax
			first = false
			continue
		}
		m.BoundsMin = m.BoundsMin.Min(p.Mesh.BoundsMin)
		m.BoundsMax = m.BoundsMax.Max(p.Mesh.BoundsMax)
	}
	if first {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
	}
}

// Size returns the dimensions of the bounding box.
func (m *Model) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Center returns the center of the bounding box.
func (m *Model) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Fit centers the model on the origin and scales it uniformly so its
// largest dimension equals size. Empty or degenerate models are left as is.
func (m *Model) Fit(size float64) {
	extent := m.Size().MaxComponent()
	if extent <= 0 {
		return
	}
	s := size / extent
	mat := math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate()))
	for _, p := range m.Parts {
		p.Mesh.Transform(mat)
	}
	m.CalculateBounds()
}

// TriangleCount returns the total number of triangles.
func (m *Model) TriangleCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.Mesh.TriangleCount()
	}
	return n
}

// VertexCount returns the total number of vertices.
func (m *Model) VertexCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.Mesh.VertexCount()
	}
	return n
}

// TextureCount returns the number of distinct textures referenced by parts.
func (m *Model) TextureCount() int {
	seen := make(map[*render.Texture]struct{})
	for _, p := range m.Parts {
		if p.Material.Texture != nil {
			seen[p.Material.Texture] = struct{}{}
		}
	}
	return len(seen)
}
