package render

import (
	"math"

	"github.com/taigrr/vitrine/pkg/math3d"
)

// Projection selects how a Camera maps view space to clip space.
type Projection int

const (
	ProjectionOrthographic Projection = iota // Parallel projection scaled by Zoom
	ProjectionPerspective                    // Pinhole projection with FOV
)

// Camera is a look-at camera with either an orthographic or a perspective
// projection.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	UpDir    math3d.Vec3

	Projection Projection

	// Orthographic: the view spans ±FrustumSize/Zoom vertically and
	// ±AspectRatio*FrustumSize/Zoom horizontally.
	FrustumSize float64
	Zoom        float64

	FOV float64 // Vertical field of view in radians (perspective only)

	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64

	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	vpDirty        bool
}

// NewOrthographicCamera creates an orthographic camera with a unit frustum,
// looking down -Z from the origin.
func NewOrthographicCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, 1),
		Target:      math3d.Zero3(),
		UpDir:       math3d.Up(),
		Projection:  ProjectionOrthographic,
		FrustumSize: 1,
		Zoom:        1,
		FOV:         math.Pi / 3,
		AspectRatio: 1,
		Near:        -100,
		Far:         100,
		viewDirty:   true,
		projDirty:   true,
	}
}

// NewPerspectiveCamera creates a perspective camera.
func NewPerspectiveCamera(fov, aspect, near, far float64) *Camera {
	c := NewOrthographicCamera()
	c.Projection = ProjectionPerspective
	c.FOV = fov
	c.AspectRatio = aspect
	c.Near = near
	c.Far = far
	return c
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetZoom sets the orthographic zoom factor.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = zoom
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Forward returns the unit vector from the camera toward its target.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Right returns the camera's right vector.
func (c *Camera) Right() math3d.Vec3 {
	return c.Forward().Cross(c.UpDir).Normalize()
}

// Up returns the camera's orthonormal up vector.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// ViewHalfExtents returns half the width and height of the visible area
// on the plane through the target, in world units.
func (c *Camera) ViewHalfExtents() (halfW, halfH float64) {
	switch c.Projection {
	case ProjectionPerspective:
		halfH = c.Position.Sub(c.Target).Len() * math.Tan(c.FOV/2)
	default:
		halfH = c.FrustumSize / c.Zoom
	}
	return halfH * c.AspectRatio, halfH
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = math3d.LookAt(c.Position, c.Target, c.UpDir)
		c.viewDirty = false
		c.vpDirty = true
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		switch c.Projection {
		case ProjectionPerspective:
			c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		default:
			halfW, halfH := c.ViewHalfExtents()
			c.projMatrix = math3d.Orthographic(-halfW, halfW, -halfH, halfH, c.Near, c.Far)
		}
		c.projDirty = false
		c.vpDirty = true
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.vpDirty {
		c.viewProjMatrix = proj.Mul(view)
		c.vpDirty = false
	}
	return c.viewProjMatrix
}

// Frustum returns the current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}
