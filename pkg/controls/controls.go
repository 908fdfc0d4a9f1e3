// Package controls implements orbit-style camera manipulation with eased
// motion: drag to orbit, secondary drag to pan, wheel to zoom toward the
// pointer.
package controls

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

// DragMode selects what a pointer drag does.
type DragMode int

const (
	DragNone DragMode = iota
	DragOrbit
	DragPan
)

// axis eases one scalar toward its goal with a spring.
type axis struct {
	pos  float64
	vel  float64
	goal float64
}

func newAxis(v float64) axis {
	return axis{pos: v, goal: v}
}

func (a *axis) step(s harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.goal)
}

func (a *axis) snap() {
	a.pos, a.vel = a.goal, 0
}

func (a *axis) settled() bool {
	return math.Abs(a.pos-a.goal) < 1e-4 && math.Abs(a.vel) < 1e-4
}

// CameraControls orbits a camera around a target point. Input methods only
// move goals; Update eases the camera toward them.
type CameraControls struct {
	Camera *render.Camera

	EnableDamping bool    // Ease toward goals instead of jumping
	ZoomToCursor  bool    // Keep the point under the pointer fixed while zooming
	RotateSpeed   float64 // Multiplier on drag-to-angle conversion
	PanSpeed      float64
	ZoomSpeed     float64 // Wheel step is 0.95^ZoomSpeed
	MinZoom       float64
	MaxZoom       float64
	Frequency     float64 // Spring angular frequency
	Damping       float64 // Spring damping ratio; 1 is critical

	radius     float64
	phi, theta axis
	zoom       axis
	target     [3]axis

	home struct {
		offset math3d.Vec3
		target math3d.Vec3
		zoom   float64
	}

	viewW, viewH int
	mode         DragMode
	lastX, lastY int
}

// New creates controls for camera, orbiting its current target from its
// current position.
func New(camera *render.Camera) *CameraControls {
	c := &CameraControls{
		Camera:        camera,
		EnableDamping: true,
		ZoomToCursor:  true,
		RotateSpeed:   1,
		PanSpeed:      1,
		ZoomSpeed:     1,
		MinZoom:       0.05,
		MaxZoom:       50,
		Frequency:     8,
		Damping:       1,
		viewW:         1,
		viewH:         1,
	}
	c.home.offset = camera.Position.Sub(camera.Target)
	c.home.target = camera.Target
	c.home.zoom = camera.Zoom
	c.Reset()
	return c
}

// Reset returns to the pose the controls were created with.
func (c *CameraControls) Reset() {
	s := math3d.SphericalFromVec3(c.home.offset).MakeSafe()
	c.radius = s.Radius
	c.phi = newAxis(s.Phi)
	c.theta = newAxis(s.Theta)
	c.zoom = newAxis(c.home.zoom)
	c.target = [3]axis{newAxis(c.home.target.X), newAxis(c.home.target.Y), newAxis(c.home.target.Z)}
	c.mode = DragNone
	c.apply()
}

// SetViewport sets the size in pixels that pointer coordinates refer to.
func (c *CameraControls) SetViewport(width, height int) {
	c.viewW, c.viewH = max(width, 1), max(height, 1)
}

// Dragging returns the active drag mode.
func (c *CameraControls) Dragging() DragMode { return c.mode }

// Begin starts a drag at pixel (x, y).
func (c *CameraControls) Begin(mode DragMode, x, y int) {
	c.mode = mode
	c.lastX, c.lastY = x, y
}

// Move continues the active drag to pixel (x, y).
func (c *CameraControls) Move(x, y int) {
	if c.mode == DragNone {
		return
	}
	dx, dy := float64(x-c.lastX), float64(y-c.lastY)
	c.lastX, c.lastY = x, y

	switch c.mode {
	case DragOrbit:
		c.Rotate(dx, dy)
	case DragPan:
		c.Pan(dx, dy)
	}
}

// End finishes the active drag.
func (c *CameraControls) End() {
	c.mode = DragNone
}

// Rotate orbits by a pointer delta in pixels. A drag across the full
// viewport height turns a full circle.
func (c *CameraControls) Rotate(dx, dy float64) {
	h := float64(c.viewH)
	c.theta.goal -= 2 * math.Pi * dx / h * c.RotateSpeed
	c.phi.goal -= 2 * math.Pi * dy / h * c.RotateSpeed
	c.phi.goal = math3d.Clamp(c.phi.goal, 1e-6, math.Pi-1e-6)
}

// Pan slides the target by a pointer delta in pixels so that the scene
// follows the pointer.
func (c *CameraControls) Pan(dx, dy float64) {
	right, up := c.basis()
	halfW, halfH := c.halfExtents(c.zoom.goal)
	move := right.Scale(-dx * 2 * halfW / float64(c.viewW) * c.PanSpeed).
		Add(up.Scale(dy * 2 * halfH / float64(c.viewH) * c.PanSpeed))
	c.setTargetGoal(c.targetGoal().Add(move))
}

// Wheel zooms by steps notches (positive zooms in) around pixel (x, y).
func (c *CameraControls) Wheel(steps int, x, y int) {
	if steps == 0 {
		return
	}
	scale := math.Pow(0.95, c.ZoomSpeed*float64(steps))
	z0 := c.zoom.goal
	z1 := math3d.Clamp(z0/scale, c.MinZoom, c.MaxZoom)
	if z1 == z0 {
		return
	}
	c.zoom.goal = z1

	if !c.ZoomToCursor {
		return
	}
	// The world point under the cursor sits at offset from the target;
	// after zooming the same pixel shows offset*z0/z1.
	nx := 2*(float64(x)+0.5)/float64(c.viewW) - 1
	ny := 1 - 2*(float64(y)+0.5)/float64(c.viewH)
	right, up := c.basis()
	halfW, halfH := c.halfExtents(z0)
	offset := right.Scale(nx * halfW).Add(up.Scale(ny * halfH))
	c.setTargetGoal(c.targetGoal().Add(offset.Scale(1 - z0/z1)))
}

// Update advances easing by dt seconds and writes the pose to the camera.
// It reports whether the camera is still moving.
func (c *CameraControls) Update(dt float64) bool {
	if c.EnableDamping && dt > 0 {
		s := harmonica.NewSpring(dt, c.Frequency, c.Damping)
		for _, a := range c.axes() {
			a.step(s)
		}
	} else {
		for _, a := range c.axes() {
			a.snap()
		}
	}
	c.apply()

	for _, a := range c.axes() {
		if !a.settled() {
			return true
		}
	}
	return false
}

// Target returns the point the camera currently looks at.
func (c *CameraControls) Target() math3d.Vec3 {
	return math3d.V3(c.target[0].pos, c.target[1].pos, c.target[2].pos)
}

// Zoom returns the current (eased) zoom.
func (c *CameraControls) Zoom() float64 { return c.zoom.pos }

func (c *CameraControls) axes() []*axis {
	return []*axis{&c.phi, &c.theta, &c.zoom, &c.target[0], &c.target[1], &c.target[2]}
}

func (c *CameraControls) targetGoal() math3d.Vec3 {
	return math3d.V3(c.target[0].goal, c.target[1].goal, c.target[2].goal)
}

func (c *CameraControls) setTargetGoal(v math3d.Vec3) {
	c.target[0].goal, c.target[1].goal, c.target[2].goal = v.X, v.Y, v.Z
}

// basis returns the camera right and up vectors for the goal orientation.
func (c *CameraControls) basis() (right, up math3d.Vec3) {
	offset := math3d.Spherical{Radius: 1, Phi: c.phi.goal, Theta: c.theta.goal}.MakeSafe().Vec3()
	forward := offset.Negate()
	right = forward.Cross(c.Camera.UpDir).Normalize()
	up = right.Cross(forward)
	return right, up
}

func (c *CameraControls) halfExtents(zoom float64) (halfW, halfH float64) {
	halfH = c.Camera.FrustumSize / zoom
	return halfH * c.Camera.AspectRatio, halfH
}

func (c *CameraControls) apply() {
	target := c.Target()
	offset := math3d.Spherical{Radius: c.radius, Phi: c.phi.pos, Theta: c.theta.pos}.MakeSafe().Vec3()
	c.Camera.SetPosition(target.Add(offset))
	c.Camera.LookAt(target)
	c.Camera.SetZoom(c.zoom.pos)
}
