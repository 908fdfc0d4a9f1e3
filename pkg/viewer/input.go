package viewer

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vitrine/pkg/controls"
)

// ScrollStep is the number of panel rows one wheel notch scrolls.
const ScrollStep = 2

// HandleEvent applies one terminal event and reports whether the user
// asked to quit.
func (v *Viewer) HandleEvent(ev uv.Event) (quit bool) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.Resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		return v.handleKey(ev)

	case uv.MouseClickEvent:
		v.handleClick(ev.X, ev.Y, ev.Button, ev.Mod&uv.ModShift != 0)

	case uv.MouseMotionEvent:
		if v.Controls.Dragging() != controls.DragNone {
			x, y := v.canvasPixel(ev.X, ev.Y)
			v.Controls.Move(x, y)
		}

	case uv.MouseReleaseEvent:
		v.Controls.End()

	case uv.MouseWheelEvent:
		v.handleWheel(ev.X, ev.Y, ev.Button)
	}
	return false
}

// Shortcuts are the single-key bindings a catalog name of the same text
// takes precedence over. Escape, ctrl+c, arrows, paging and home always
// keep their meaning.
var Shortcuts = []string{"q", "j", "k", "g", "r", "space"}

func (v *Viewer) handleKey(ev uv.KeyPressEvent) bool {
	page := max(v.layout.Panel.Max.Y-v.layout.Panel.Min.Y-1, 1)
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return true
	case ev.MatchString("down"):
		v.HandleScroll(1)
	case ev.MatchString("up"):
		v.HandleScroll(-1)
	case ev.MatchString("pgdown"):
		v.HandleScroll(page)
	case ev.MatchString("pgup"):
		v.HandleScroll(-page)
	case ev.MatchString("home"):
		v.HandleScroll(-v.Panel.Rows())
	default:
		for _, b := range v.List.Buttons() {
			if ev.MatchString(b.Desc.Name) {
				b.Activate()
				return false
			}
		}
		return v.handleShortcut(ev, page)
	}
	return false
}

func (v *Viewer) handleShortcut(ev uv.KeyPressEvent, page int) bool {
	switch {
	case ev.MatchString("q"):
		return true
	case ev.MatchString("j"):
		v.HandleScroll(1)
	case ev.MatchString("k"):
		v.HandleScroll(-1)
	case ev.MatchString("space"):
		v.HandleScroll(page)
	case ev.MatchString("g"):
		v.HandleScroll(-v.Panel.Rows())
	case ev.MatchString("r"):
		v.Controls.Reset()
	}
	return false
}

func (v *Viewer) handleClick(x, y int, button uv.MouseButton, shift bool) {
	switch {
	case contains(v.layout.Canvas, x, y):
		px, py := v.canvasPixel(x, y)
		switch {
		case button == uv.MouseRight, button == uv.MouseLeft && shift:
			v.Controls.Begin(controls.DragPan, px, py)
		case button == uv.MouseLeft:
			v.Controls.Begin(controls.DragOrbit, px, py)
		}

	case contains(v.layout.List, x, y) && button == uv.MouseLeft:
		if i := y - v.layout.List.Min.Y; i < v.List.Len() {
			v.List.Buttons()[i].Activate()
		}
	}
}

func (v *Viewer) handleWheel(x, y int, button uv.MouseButton) {
	steps := 0
	switch button {
	case uv.MouseWheelUp:
		steps = 1
	case uv.MouseWheelDown:
		steps = -1
	default:
		return
	}

	switch {
	case contains(v.layout.Panel, x, y):
		v.HandleScroll(-steps * ScrollStep)
	case contains(v.layout.Canvas, x, y):
		px, py := v.canvasPixel(x, y)
		v.Controls.Wheel(steps, px, py)
	}
}

// canvasPixel maps a terminal cell to the framebuffer pixel at its center.
func (v *Viewer) canvasPixel(x, y int) (int, int) {
	return x - v.layout.Canvas.Min.X, (y-v.layout.Canvas.Min.Y)*2 + 1
}
