package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// ErrNotRadiance is returned when a stream does not start with a Radiance header.
var ErrNotRadiance = errors.New("not a radiance hdr file")

// MaxRadiancePixels bounds the pixel count accepted from a header.
const MaxRadiancePixels = 1 << 26

// HDRImage is a decoded high dynamic range image in linear radiance.
type HDRImage struct {
	Width  int
	Height int
	Pix    []math3d.Vec3 // Row-major, top row first
}

// At returns the radiance at (x, y).
func (m *HDRImage) At(x, y int) math3d.Vec3 {
	return m.Pix[y*m.Width+x]
}

// DecodeRadiance decodes a Radiance RGBE (.hdr) image with a standard
// "-Y height +X width" orientation. Both flat and adaptive run-length
// encoded scanlines are supported.
func DecodeRadiance(r io.Reader) (*HDRImage, error) {
	br := bufio.NewReader(r)

	width, height, err := readRadianceHeader(br)
	if err != nil {
		return nil, err
	}

	img := &HDRImage{
		Width:  width,
		Height: height,
		Pix:    make([]math3d.Vec3, width*height),
	}

	scan := make([]byte, width*4)
	for y := range height {
		if err := readScanline(br, scan, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		row := img.Pix[y*width : (y+1)*width]
		for x := range width {
			row[x] = rgbeToVec3(scan[x*4], scan[x*4+1], scan[x*4+2], scan[x*4+3])
		}
	}
	return img, nil
}

func readRadianceHeader(br *bufio.Reader) (width, height int, err error) {
	magic, err := br.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return 0, 0, ErrNotRadiance
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return 0, 0, fmt.Errorf("read header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return 0, 0, fmt.Errorf("unsupported hdr format %q", format)
		}
	}

	res, err := br.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("read resolution: %w", err)
	}
	if _, err := fmt.Sscanf(res, "-Y %d +X %d", &height, &width); err != nil {
		return 0, 0, fmt.Errorf("unsupported resolution line %q: %w", strings.TrimSpace(res), err)
	}
	if width <= 0 || height <= 0 || width > MaxRadiancePixels/height {
		return 0, 0, fmt.Errorf("invalid hdr size %dx%d", width, height)
	}
	return width, height, nil
}

func readScanline(br *bufio.Reader, scan []byte, width int) error {
	// Run-length encoding is only defined for widths in [8, 0x7fff].
	if width < 8 || width > 0x7fff {
		_, err := io.ReadFull(br, scan)
		return err
	}

	head, err := br.Peek(4)
	if err != nil {
		return err
	}
	if head[0] != 2 || head[1] != 2 || head[2]&0x80 != 0 {
		_, err := io.ReadFull(br, scan)
		return err
	}
	if int(head[2])<<8|int(head[3]) != width {
		return errors.New("scanline width mismatch")
	}
	if _, err := br.Discard(4); err != nil {
		return err
	}

	// Channels are stored as four separate runs.
	for ch := range 4 {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				n := int(count) - 128
				if x+n > width {
					return errors.New("run overflows scanline")
				}
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				for range n {
					scan[x*4+ch] = v
					x++
				}
				continue
			}
			n := int(count)
			if n == 0 || x+n > width {
				return errors.New("bad literal run")
			}
			for range n {
				v, err := br.ReadByte()
				if err != nil {
					return err
				}
				scan[x*4+ch] = v
				x++
			}
		}
	}
	return nil
}

func rgbeToVec3(r, g, b, e byte) math3d.Vec3 {
	if e == 0 {
		return math3d.Vec3{}
	}
	scale := math.Ldexp(1, int(e)-128) / 255
	return math3d.V3(float64(r)*scale, float64(g)*scale, float64(b)*scale)
}

// EquirectDirection returns the world direction sampled by texel (x, y) of
// an equirectangular map of the given size.
func EquirectDirection(x, y, width, height int) math3d.Vec3 {
	u := (float64(x) + 0.5) / float64(width)
	v := 1 - (float64(y)+0.5)/float64(height)
	phi := (u - 0.5) * 2 * math.Pi
	lat := (v - 0.5) * math.Pi
	return math3d.V3(math.Cos(lat)*math.Cos(phi), math.Sin(lat), math.Cos(lat)*math.Sin(phi))
}
