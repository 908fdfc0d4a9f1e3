package render

import (
	"testing"

	"github.com/taigrr/vitrine/pkg/math3d"
)

func TestParseToneMapping(t *testing.T) {
	tests := []struct {
		name string
		want ToneMapping
	}{
		{"none", ToneMappingNone},
		{"linear", ToneMappingLinear},
		{"aces", ToneMappingACESFilmic},
		{"", ToneMappingACESFilmic},
	}
	for _, tc := range tests {
		if got := ParseToneMapping(tc.name); got != tc.want {
			t.Errorf("ParseToneMapping(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestACESFilmicBoundedAndMonotonic(t *testing.T) {
	prev := -1.0
	for _, v := range []float64{0, 0.01, 0.1, 0.5, 1, 2, 8, 100, 1e4} {
		c := ToneMappingACESFilmic.Apply(math3d.V3(v, v, v), 0.8)
		if c.X < 0 || c.X > 1 {
			t.Errorf("Apply(%v) = %v, outside [0,1]", v, c.X)
		}
		if c.X < prev {
			t.Errorf("Apply(%v) = %v decreased from %v", v, c.X, prev)
		}
		prev = c.X
	}
	if black := ToneMappingACESFilmic.Apply(math3d.Zero3(), 0.8); black.Len() > 1e-3 {
		t.Errorf("black maps to %v", black)
	}
}

func TestExposureBrightens(t *testing.T) {
	in := math3d.V3(0.3, 0.3, 0.3)
	dim := ToneMappingACESFilmic.Apply(in, 0.5)
	bright := ToneMappingACESFilmic.Apply(in, 2)
	if bright.X <= dim.X {
		t.Errorf("exposure 2 gave %v, not brighter than exposure 0.5 %v", bright.X, dim.X)
	}
}

func TestLinearToSRGBEndpoints(t *testing.T) {
	if linearToSRGB(0) != 0 || linearToSRGB(1) != 255 || linearToSRGB(-1) != 0 || linearToSRGB(5) != 255 {
		t.Error("sRGB encoding endpoints wrong")
	}
	if got := linearToSRGB(srgbToLinear[128]); got != 128 {
		t.Errorf("round trip of 128 = %d", got)
	}
}
