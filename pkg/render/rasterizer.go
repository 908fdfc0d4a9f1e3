// Package render provides vitrine's software renderer: an HDR rasterizer lit
// by image-based environments, tone mapping, and terminal presentation.
package render

import (
	"math"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // World position
	Normal   math3d.Vec3 // World normal (for lighting)
	UV       math3d.Vec2 // Texture coordinates
}

// Triangle represents a triangle to be rasterized.
type Triangle struct {
	V [3]Vertex
}

// Material describes the surface drawn for a mesh.
type Material struct {
	BaseColor math3d.Vec3 // Linear albedo
	Texture   *Texture    // Optional base color map, modulates BaseColor
}

// DefaultMaterial is a light grey, untextured surface.
func DefaultMaterial() Material {
	return Material{BaseColor: math3d.V3(0.8, 0.8, 0.8)}
}

// MeshRenderer is the geometry the rasterizer can draw. It is satisfied by
// models.Mesh without importing it.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// CullingStats tracks frustum culling per frame.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// Rasterizer draws triangles into a linear HDR color buffer with a Z-buffer.
type Rasterizer struct {
	camera                 *Camera
	env                    *Environment
	width, height          int
	color                  []math3d.Vec3
	zbuffer                []float64
	CullingStats           CullingStats
	DisableBackfaceCulling bool
}

// NewRasterizer creates a rasterizer with a width×height target.
func NewRasterizer(camera *Camera, width, height int) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		env:    UniformEnvironment(math3d.V3(1, 1, 1)),
	}
	r.Resize(width, height)
	return r
}

// Resize reallocates the color and depth buffers.
func (r *Rasterizer) Resize(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	r.color = make([]math3d.Vec3, r.width*r.height)
	r.zbuffer = make([]float64, r.width*r.height)
	r.Clear()
}

// Width returns the target width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the target height.
func (r *Rasterizer) Height() int { return r.height }

// SetEnvironment sets the ambient lighting. A nil environment restores the
// neutral white default.
func (r *Rasterizer) SetEnvironment(env *Environment) {
	if env == nil {
		env = UniformEnvironment(math3d.V3(1, 1, 1))
	}
	r.env = env
}

// Clear resets the depth buffer and zeroes the color buffer.
func (r *Rasterizer) Clear() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
	clear(r.color)
	r.CullingStats = CullingStats{}
}

// Covered reports whether any triangle wrote to pixel (x, y) since Clear.
func (r *Rasterizer) Covered(x, y int) bool {
	return r.depth(x, y) < math.MaxFloat64
}

// ColorAt returns the linear color at (x, y).
func (r *Rasterizer) ColorAt(x, y int) math3d.Vec3 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return math3d.Vec3{}
	}
	return r.color[y*r.width+x]
}

func (r *Rasterizer) depth(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.width+x]
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y     float64
	Z        float64
	InvW     float64
	Radiance math3d.Vec3 // Incoming light, before albedo
	UV       math3d.Vec2
}

// DrawMesh draws mesh with transform applied, skipping it when its bounds
// fall outside the view frustum.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, transform math3d.Mat4, mat Material) {
	if bounded, ok := mesh.(BoundedMeshRenderer); ok {
		r.CullingStats.MeshesTested++
		lo, hi := bounded.GetBounds()
		world := AABB{Min: lo, Max: hi}.Transform(transform)
		if !r.camera.Frustum().IntersectAABB(world) {
			r.CullingStats.MeshesCulled++
			return
		}
		r.CullingStats.MeshesDrawn++
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		var tri Triangle
		for k := range 3 {
			p, n, uv := mesh.GetVertex(face[k])
			tri.V[k] = Vertex{
				Position: transform.MulVec3(p),
				Normal:   transform.MulVec3Dir(n).Normalize(),
				UV:       uv,
			}
		}
		r.DrawTriangle(tri, mat)
	}
}

// DrawTriangle rasterizes one triangle. Lighting is evaluated per vertex
// from the environment and interpolated perspective-correctly (Gouraud);
// the albedo is sampled per pixel.
func (r *Rasterizer) DrawTriangle(tri Triangle, mat Material) {
	var sv [3]screenVertex
	allBehind := true

	viewProj := r.camera.ViewProjectionMatrix()
	white := math3d.V3(1, 1, 1)

	for i := range 3 {
		clipPos := viewProj.MulVec4(math3d.V4FromV3(tri.V[i].Position, 1))
		if clipPos.W > 0 {
			allBehind = false
		}

		ndc := clipPos.PerspectiveDivide()
		sv[i].X = (ndc.X + 1) * 0.5 * float64(r.width)
		sv[i].Y = (1 - ndc.Y) * 0.5 * float64(r.height) // Y flipped
		sv[i].Z = ndc.Z
		if clipPos.W != 0 {
			sv[i].InvW = 1 / clipPos.W
		}
		sv[i].Radiance = r.env.Diffuse(tri.V[i].Normal, white)
		sv[i].UV = tri.V[i].UV
	}

	if allBehind {
		return
	}

	// Screen-space winding; Y is flipped so front faces have positive area.
	edge1 := math3d.V2(sv[1].X-sv[0].X, sv[1].Y-sv[0].Y)
	edge2 := math3d.V2(sv[2].X-sv[0].X, sv[2].Y-sv[0].Y)
	area := edge1.Cross(edge2)
	if area == 0 || (area < 0 && !r.DisableBackfaceCulling) {
		return
	}

	minX := int(math.Max(0, math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.width-1), math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.height-1), math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y, sv[2].X, sv[2].Y, px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z < -1 || z > 1 || z >= r.depth(x, y) {
				continue
			}

			w0, w1, w2 := bc.X*sv[0].InvW, bc.Y*sv[1].InvW, bc.Z*sv[2].InvW
			sum := w0 + w1 + w2
			if sum == 0 {
				continue
			}
			w0, w1, w2 = w0/sum, w1/sum, w2/sum

			radiance := sv[0].Radiance.Scale(w0).Add(sv[1].Radiance.Scale(w1)).Add(sv[2].Radiance.Scale(w2))
			albedo := mat.BaseColor
			if mat.Texture != nil {
				u := w0*sv[0].UV.X + w1*sv[1].UV.X + w2*sv[2].UV.X
				v := w0*sv[0].UV.Y + w1*sv[1].UV.Y + w2*sv[2].UV.Y
				albedo = albedo.Mul(mat.Texture.Sample(u, v))
			}

			idx := y*r.width + x
			r.zbuffer[idx] = z
			r.color[idx] = albedo.Mul(radiance)
		}
	}
}

// barycentric returns the barycentric coordinates of (px, py) in the
// triangle (x0,y0), (x1,y1), (x2,y2).
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x1-x0, y1-y0
	v1x, v1y := x2-x0, y2-y0
	v2x, v2y := px-x0, py-y0

	d00 := v0x*v0x + v0y*v0y
	d01 := v0x*v1x + v0y*v1y
	d11 := v1x*v1x + v1y*v1y
	d20 := v2x*v0x + v2y*v0y
	d21 := v2x*v1x + v2y*v1y

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < 1e-10 {
		return math3d.V3(-1, -1, -1)
	}

	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	return math3d.V3(1-v-w, v, w)
}
