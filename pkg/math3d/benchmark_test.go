package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := Scale(V3(2, 2, 2))

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := LookAt(V3(0, -1, 0.5), Zero3(), Up()).Mul(Translate(V3(1, 2, 3)))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkSphericalRoundTrip(b *testing.B) {
	v := V3(0, -1, 0.5)

	for b.Loop() {
		_ = SphericalFromVec3(v).Vec3()
	}
}
