package controls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
)

const viewW, viewH = 80, 40

func newControls(t *testing.T) (*CameraControls, *render.Camera) {
	t.Helper()
	cam := render.NewOrthographicCamera()
	cam.SetPosition(math3d.V3(0, -1, 0.5))
	cam.LookAt(math3d.Zero3())
	cam.SetAspectRatio(float64(viewW) / viewH)

	c := New(cam)
	c.SetViewport(viewW, viewH)
	return c, cam
}

func settle(c *CameraControls) {
	for range 600 {
		if !c.Update(1.0 / 60) {
			return
		}
	}
}

func TestNewKeepsPose(t *testing.T) {
	c, cam := newControls(t)
	c.Update(1.0 / 60)

	assert.InDelta(t, 0, cam.Position.Sub(math3d.V3(0, -1, 0.5)).Len(), 1e-5)
	assert.Equal(t, math3d.Zero3(), cam.Target)
	assert.InDelta(t, 1, cam.Zoom, 1e-9)
}

func TestWheelZoomsTowardCursor(t *testing.T) {
	c, cam := newControls(t)
	c.EnableDamping = false

	px, py := 60, 10
	// World point currently under the pixel center, on the target plane.
	before := worldUnder(cam, px, py)

	c.Wheel(5, px, py)
	c.Update(0)
	require.Greater(t, cam.Zoom, 1.0)

	x, y, _, ok := cam.WorldToScreen(before, viewW, viewH)
	require.True(t, ok)
	assert.InDelta(t, float64(px)+0.5, x, 1e-6)
	assert.InDelta(t, float64(py)+0.5, y, 1e-6)
}

func TestWheelWithoutZoomToCursorKeepsTarget(t *testing.T) {
	c, cam := newControls(t)
	c.EnableDamping = false
	c.ZoomToCursor = false

	c.Wheel(3, 5, 5)
	c.Update(0)
	assert.Equal(t, math3d.Zero3(), cam.Target)
	assert.Greater(t, cam.Zoom, 1.0)
}

func TestWheelClampsZoom(t *testing.T) {
	c, cam := newControls(t)
	c.EnableDamping = false

	c.Wheel(10000, 40, 20)
	c.Update(0)
	assert.InDelta(t, c.MaxZoom, cam.Zoom, 1e-9)

	c.Wheel(-100000, 40, 20)
	c.Update(0)
	assert.InDelta(t, c.MinZoom, cam.Zoom, 1e-9)
}

func TestOrbitKeepsDistance(t *testing.T) {
	c, cam := newControls(t)
	radius := cam.Position.Sub(cam.Target).Len()

	c.Begin(DragOrbit, 10, 10)
	c.Move(30, 25)
	c.End()
	settle(c)

	assert.InDelta(t, radius, cam.Position.Sub(cam.Target).Len(), 1e-6)
	assert.Greater(t, cam.Position.Sub(math3d.V3(0, -1, 0.5)).Len(), 0.1, "camera did not move")
	assert.Equal(t, DragNone, c.Dragging())
}

func TestOrbitClampsAtPole(t *testing.T) {
	c, cam := newControls(t)
	c.EnableDamping = false
	c.Rotate(0, -10*viewH)
	c.Update(0)

	forward := cam.Forward()
	assert.False(t, math.IsNaN(forward.X))
	assert.Less(t, math.Abs(forward.Dot(cam.UpDir)), 1.0)
}

func TestPanFollowsPointer(t *testing.T) {
	c, cam := newControls(t)
	c.EnableDamping = false

	x0, y0, _, ok := cam.WorldToScreen(math3d.Zero3(), viewW, viewH)
	require.True(t, ok)

	c.Begin(DragPan, 40, 20)
	c.Move(50, 24)
	c.End()
	c.Update(0)

	x1, y1, _, ok := cam.WorldToScreen(math3d.Zero3(), viewW, viewH)
	require.True(t, ok)
	assert.InDelta(t, 10, x1-x0, 1e-6)
	assert.InDelta(t, 4, y1-y0, 1e-6)
}

func TestDampingEasesMotion(t *testing.T) {
	c, cam := newControls(t)
	c.Rotate(20, 0)

	require.True(t, c.Update(1.0/60), "should still be moving after one frame")
	mid := cam.Position

	settle(c)
	assert.False(t, c.Update(1.0/60))
	assert.Greater(t, cam.Position.Sub(mid).Len(), 1e-3, "first frame should not reach the goal")
}

func TestReset(t *testing.T) {
	c, cam := newControls(t)
	c.EnableDamping = false
	c.Rotate(15, 7)
	c.Wheel(4, 3, 3)
	c.Update(0)

	c.Reset()
	assert.InDelta(t, 0, cam.Position.Sub(math3d.V3(0, -1, 0.5)).Len(), 1e-5)
	assert.InDelta(t, 1, cam.Zoom, 1e-9)
}

// worldUnder returns the point on the plane through the target, facing the
// camera, that projects to the center of pixel (px, py).
func worldUnder(cam *render.Camera, px, py int) math3d.Vec3 {
	halfW, halfH := cam.ViewHalfExtents()
	nx := 2*(float64(px)+0.5)/viewW - 1
	ny := 1 - 2*(float64(py)+0.5)/viewH
	return cam.Target.Add(cam.Right().Scale(nx * halfW)).Add(cam.Up().Scale(ny * halfH))
}
