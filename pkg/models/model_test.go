package models

import (
	"math"
	"testing"

	"github.com/taigrr/vitrine/pkg/math3d"
)

func boxMesh(lo, hi math3d.Vec3) *Mesh {
	m := NewMesh("box")
	m.Vertices = []MeshVertex{{Position: lo}, {Position: hi}}
	m.CalculateBounds()
	return m
}

func TestModelBoundsUnion(t *testing.T) {
	m := &Model{Parts: []Part{
		{Mesh: boxMesh(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1))},
		{Mesh: boxMesh(math3d.V3(-2, 0.5, 0), math3d.V3(0, 3, 0.5))},
		{Mesh: NewMesh("empty")},
	}}
	m.CalculateBounds()

	if m.BoundsMin != math3d.V3(-2, 0, 0) {
		t.Errorf("min = %v", m.BoundsMin)
	}
	if m.BoundsMax != math3d.V3(1, 3, 1) {
		t.Errorf("max = %v", m.BoundsMax)
	}
}

func TestModelFit(t *testing.T) {
	tests := []struct {
		name string
		lo   math3d.Vec3
		hi   math3d.Vec3
	}{
		{"unit cube", math3d.V3(0, 0, 0), math3d.V3(1, 1, 1)},
		{"offset slab", math3d.V3(10, 10, 10), math3d.V3(14, 11, 12)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &Model{Parts: []Part{{Mesh: boxMesh(tc.lo, tc.hi)}}}
			m.CalculateBounds()
			m.Fit(2)

			if got := m.Size().MaxComponent(); math.Abs(got-2) > 1e-9 {
				t.Errorf("extent = %v, want 2", got)
			}
			if c := m.Center(); c.Len() > 1e-9 {
				t.Errorf("center = %v, want origin", c)
			}
		})
	}
}

func TestModelFitDegenerate(t *testing.T) {
	m := &Model{Parts: []Part{{Mesh: boxMesh(math3d.V3(3, 3, 3), math3d.V3(3, 3, 3))}}}
	m.CalculateBounds()
	m.Fit(2)
	if m.BoundsMin != math3d.V3(3, 3, 3) {
		t.Errorf("degenerate model moved to %v", m.BoundsMin)
	}
}

func TestSmoothNormalsAverage(t *testing.T) {
	// Two clockwise faces meeting at a right angle along the X axis.
	m := NewMesh("fold")
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
		{Position: math3d.V3(0, 0, 1)},
	}
	m.Faces = []Face{
		{V: [3]int{0, 2, 1}}, // XY plane, normal +Z
		{V: [3]int{0, 1, 3}}, // XZ plane, normal +Y
	}
	m.CalculateSmoothNormals()

	want := math3d.V3(0, 1, 1).Normalize()
	got := m.Vertices[0].Normal
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("shared normal = %v, want %v", got, want)
	}
}
