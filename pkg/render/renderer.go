package render

import (
	"image/color"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// SupersampleFactor is the per-axis sample count used when antialiasing.
const SupersampleFactor = 2

// Renderer owns the drawing buffer of the canvas. Geometry is rasterized in
// linear light at SupersampleFactor² samples per pixel, then tone mapped,
// sRGB encoded and box filtered into a Width×Height framebuffer.
type Renderer struct {
	Camera      *Camera
	ToneMapping ToneMapping
	Exposure    float64
	ClearColor  color.RGBA

	antialias bool
	width     int
	height    int
	raster    *Rasterizer
	output    *Framebuffer
}

// NewRenderer creates a renderer with ACES filmic tone mapping, exposure
// 0.8, a white clear color and antialiasing enabled.
func NewRenderer(camera *Camera) *Renderer {
	r := &Renderer{
		Camera:      camera,
		ToneMapping: ToneMappingACESFilmic,
		Exposure:    0.8,
		ClearColor:  ColorWhite,
		antialias:   true,
		raster:      NewRasterizer(camera, 0, 0),
		output:      NewFramebuffer(0, 0),
	}
	return r
}

// SetSize sets the drawing buffer to width×height pixels.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	r.output.Resize(r.width, r.height)
	s := r.samples()
	r.raster.Resize(r.width*s, r.height*s)
}

// Size returns the drawing buffer dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// SetAntialias toggles supersampling.
func (r *Renderer) SetAntialias(on bool) {
	if r.antialias == on {
		return
	}
	r.antialias = on
	r.SetSize(r.width, r.height)
}

// Antialias reports whether supersampling is enabled.
func (r *Renderer) Antialias() bool { return r.antialias }

func (r *Renderer) samples() int {
	if r.antialias {
		return SupersampleFactor
	}
	return 1
}

// SetEnvironment sets the image-based lighting used by subsequent draws.
func (r *Renderer) SetEnvironment(env *Environment) {
	r.raster.SetEnvironment(env)
}

// Clear starts a new frame.
func (r *Renderer) Clear() {
	r.raster.Clear()
}

// DrawMesh rasterizes a mesh with the given world transform and material.
func (r *Renderer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, mat Material) {
	r.raster.DrawMesh(mesh, transform, mat)
}

// SetDoubleSided disables backface culling for subsequent draws.
func (r *Renderer) SetDoubleSided(on bool) {
	r.raster.DisableBackfaceCulling = on
}

// Stats returns frustum culling counters for the current frame.
func (r *Renderer) Stats() CullingStats {
	return r.raster.CullingStats
}

// Resolve tone maps the frame into the output framebuffer and returns it.
// Samples no triangle covered take the clear color.
func (r *Renderer) Resolve() *Framebuffer {
	s := r.samples()
	inv := 1 / float64(s*s)
	clearR, clearG, clearB := float64(r.ClearColor.R), float64(r.ClearColor.G), float64(r.ClearColor.B)

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			var sr, sg, sb float64
			for sy := range s {
				for sx := range s {
					rx, ry := x*s+sx, y*s+sy
					if !r.raster.Covered(rx, ry) {
						sr += clearR
						sg += clearG
						sb += clearB
						continue
					}
					c := r.ToneMapping.Apply(r.raster.ColorAt(rx, ry), r.Exposure)
					sr += float64(linearToSRGB(c.X))
					sg += float64(linearToSRGB(c.Y))
					sb += float64(linearToSRGB(c.Z))
				}
			}
			r.output.Pixels[y*r.width+x] = color.RGBA{
				R: uint8(sr*inv + 0.5),
				G: uint8(sg*inv + 0.5),
				B: uint8(sb*inv + 0.5),
				A: 255,
			}
		}
	}
	return r.output
}

// Framebuffer returns the output framebuffer from the last Resolve.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.output
}
