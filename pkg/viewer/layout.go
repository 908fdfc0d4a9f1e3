package viewer

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// DefaultCanvasRatio is the share of the terminal width given to the canvas.
const DefaultCanvasRatio = 0.6

// Layout splits the terminal into the canvas on the left and a side column
// holding the model list, the loading indicator and the story panel.
type Layout struct {
	Canvas uv.Rectangle
	List   uv.Rectangle
	Loader uv.Rectangle
	Panel  uv.Rectangle
}

// ComputeLayout lays out a cols×rows terminal. The list gets one row per
// model plus a blank separator, the loader one row, and the panel the rest.
func ComputeLayout(cols, rows int, ratio float64, models int) Layout {
	cols, rows = max(cols, 0), max(rows, 0)
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultCanvasRatio
	}

	canvasW := int(float64(cols) * ratio)
	if cols > 1 {
		canvasW = min(max(canvasW, 1), cols-1)
	}
	sideX, sideW := canvasW, cols-canvasW

	listH := min(models+1, rows)
	loaderH := min(1, rows-listH)
	panelH := rows - listH - loaderH

	return Layout{
		Canvas: uv.Rect(0, 0, canvasW, rows),
		List:   uv.Rect(sideX, 0, sideW, listH),
		Loader: uv.Rect(sideX, listH, sideW, loaderH),
		Panel:  uv.Rect(sideX, listH+loaderH, sideW, panelH),
	}
}

// CanvasPixels returns the framebuffer size for the canvas: one pixel per
// column and two per row.
func (l Layout) CanvasPixels() (width, height int) {
	return l.Canvas.Max.X - l.Canvas.Min.X, (l.Canvas.Max.Y - l.Canvas.Min.Y) * 2
}

func contains(r uv.Rectangle, x, y int) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}
