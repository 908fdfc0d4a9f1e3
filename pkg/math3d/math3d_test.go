package math3d

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestSphericalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"camera start", V3(0, -1, 0.5)},
		{"on +Z", V3(0, 0, 5)},
		{"diagonal", V3(1, 2, 3)},
		{"negative", V3(-2, 0.5, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SphericalFromVec3(tc.v).Vec3()
			if !vecNear(got, tc.v, 1e-9) {
				t.Errorf("round trip of %v = %v", tc.v, got)
			}
		})
	}
}

func TestSphericalMakeSafe(t *testing.T) {
	s := Spherical{Radius: 1, Phi: 0}.MakeSafe()
	if s.Phi <= 0 {
		t.Errorf("Phi = %v, want > 0", s.Phi)
	}
	s = Spherical{Radius: 1, Phi: math.Pi}.MakeSafe()
	if s.Phi >= math.Pi {
		t.Errorf("Phi = %v, want < Pi", s.Phi)
	}
}

func TestLookAtMapsTargetOntoAxis(t *testing.T) {
	eye := V3(0, 0, 5)
	view := LookAt(eye, Zero3(), Up())

	got := view.MulVec3(Zero3())
	want := V3(0, 0, -5)
	if !vecNear(got, want, 1e-9) {
		t.Errorf("origin in view space = %v, want %v", got, want)
	}
}

func TestOrthographicCorners(t *testing.T) {
	proj := Orthographic(-2, 2, -1, 1, 0.1, 100)

	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"right edge", V3(2, 0, -1), V3(1, 0, 0)},
		{"top edge", V3(0, 1, -1), V3(0, 1, 0)},
		{"bottom left", V3(-2, -1, -1), V3(-1, -1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := proj.MulVec4(V4FromV3(tc.in, 1)).PerspectiveDivide()
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("project(%v) = %v, want x,y of %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMulVec3DirIgnoresTranslation(t *testing.T) {
	m := Translate(V3(10, 20, 30))
	got := m.MulVec3Dir(V3(1, 0, 0))
	if !vecNear(got, V3(1, 0, 0), 1e-12) {
		t.Errorf("direction moved by translation: %v", got)
	}
}

func TestQuaternionQuarterTurnAboutY(t *testing.T) {
	s := math.Sqrt2 / 2
	m := Quaternion(0, s, 0, s)

	if got := m.MulVec3(V3(1, 0, 0)); !vecNear(got, V3(0, 0, -1), 1e-9) {
		t.Errorf("rotate +X = %v, want -Z", got)
	}
	if got := m.MulVec3(V3(0, 1, 0)); !vecNear(got, V3(0, 1, 0), 1e-9) {
		t.Errorf("rotate +Y = %v, want +Y unchanged", got)
	}
}
