package viewer

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/vitrine/pkg/render"
)

var (
	buttonStyle       = uv.Style{Fg: render.ColorBlack, Bg: render.RGB(230, 230, 230)}
	activeButtonStyle = uv.Style{Fg: render.ColorWhite, Bg: render.RGB(0, 0, 255)}
	sideStyle         = uv.Style{Fg: render.ColorBlack, Bg: render.ColorWhite}
)

// Draw paints the last rendered frame and the side column.
func (v *Viewer) Draw(scr uv.Screen) {
	l := v.layout
	v.Renderer.Framebuffer().Draw(scr, l.Canvas)

	buttons := v.List.Buttons()
	for y := l.List.Min.Y; y < l.List.Max.Y; y++ {
		i := y - l.List.Min.Y
		if i >= len(buttons) {
			render.DrawText(scr, l.List.Min.X, y, l.List.Max.X, "", sideStyle)
			continue
		}
		style := buttonStyle
		if buttons[i].Active() {
			style = activeButtonStyle
		}
		render.DrawText(scr, l.List.Min.X, y, l.List.Max.X, " "+buttons[i].Desc.Label(), style)
	}

	text, shown := v.LoaderStatus()
	if !shown {
		text = ""
	}
	for y := l.Loader.Min.Y; y < l.Loader.Max.Y; y++ {
		render.DrawText(scr, l.Loader.Min.X, y, l.Loader.Max.X, " "+text, sideStyle)
	}

	v.Panel.Draw(scr, l.Panel, v.Tracker.Current())
}
