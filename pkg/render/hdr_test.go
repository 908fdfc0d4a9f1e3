package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func radianceHeader(w, h int) string {
	return fmt.Sprintf("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\nEXPOSURE=1.0\n\n-Y %d +X %d\n", h, w)
}

func TestDecodeRadianceFlat(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(radianceHeader(2, 1))
	// Exponent 129 scales mantissas by 2/255.
	buf.Write([]byte{128, 64, 0, 129})
	buf.Write([]byte{0, 0, 0, 0})

	img, err := DecodeRadiance(&buf)
	if err != nil {
		t.Fatalf("DecodeRadiance: %v", err)
	}
	if img.Width != 2 || img.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", img.Width, img.Height)
	}

	got := img.At(0, 0)
	if math.Abs(got.X-256.0/255) > 1e-9 || math.Abs(got.Y-128.0/255) > 1e-9 || got.Z != 0 {
		t.Errorf("pixel 0 = %v", got)
	}
	if img.At(1, 0).Len() != 0 {
		t.Errorf("zero exponent should decode to black, got %v", img.At(1, 0))
	}
}

func TestDecodeRadianceRLE(t *testing.T) {
	const width = 8
	var buf bytes.Buffer
	buf.WriteString(radianceHeader(width, 1))
	buf.Write([]byte{2, 2, 0, width})
	// R: run of 8 × 10
	buf.Write([]byte{128 + 8, 10})
	// G: literal 8 values
	buf.Write([]byte{8, 1, 2, 3, 4, 5, 6, 7, 8})
	// B: two runs
	buf.Write([]byte{128 + 4, 0, 128 + 4, 255})
	// E: run of 8 × 128
	buf.Write([]byte{128 + 8, 128})

	img, err := DecodeRadiance(&buf)
	if err != nil {
		t.Fatalf("DecodeRadiance: %v", err)
	}

	for x := range width {
		p := img.At(x, 0)
		wantB := 0.0
		if x >= 4 {
			wantB = 1
		}
		if math.Abs(p.X-10.0/255) > 1e-9 {
			t.Errorf("x=%d red = %v", x, p.X)
		}
		if math.Abs(p.Y-float64(x+1)/255) > 1e-9 {
			t.Errorf("x=%d green = %v", x, p.Y)
		}
		if math.Abs(p.Z-wantB) > 1e-9 {
			t.Errorf("x=%d blue = %v, want %v", x, p.Z, wantB)
		}
	}
}

func TestDecodeRadianceErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		isErr error
	}{
		{"not radiance", "P6\n2 2\n255\n", ErrNotRadiance},
		{"bad format", "#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n", nil},
		{"flipped orientation", "#?RADIANCE\n\n+Y 1 +X 1\n", nil},
		{"truncated pixels", radianceHeader(4, 4) + "\x01\x02", nil},
		{"oversized", radianceHeader(2000000000, 2000000000), nil},
		{"over pixel budget", radianceHeader(MaxRadiancePixels/2+1, 2), nil},
		{"zero width", radianceHeader(0, 4), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRadiance(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.isErr != nil && !errors.Is(err, tc.isErr) {
				t.Errorf("err = %v, want %v", err, tc.isErr)
			}
		})
	}
}

func TestEquirectDirectionPoles(t *testing.T) {
	top := EquirectDirection(0, 0, 64, 32)
	bottom := EquirectDirection(0, 31, 64, 32)
	if top.Y < 0.99 {
		t.Errorf("top row direction %v should point up", top)
	}
	if bottom.Y > -0.99 {
		t.Errorf("bottom row direction %v should point down", bottom)
	}
	if l := EquirectDirection(17, 9, 64, 32).Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("direction length = %v, want 1", l)
	}
}
