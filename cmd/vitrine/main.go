// vitrine - Terminal 3D Model Showcase
// Shows a catalog of GLTF models next to a scrolling story; scrolling the
// story switches the model on the canvas.
//
// Controls:
//
//	Mouse drag        - Orbit the camera
//	Right/Shift drag  - Pan
//	Wheel on canvas   - Zoom toward the pointer
//	Wheel on story    - Scroll the story
//	J/K, Up/Down      - Scroll the story by one row
//	PgUp/PgDn, Space  - Scroll the story by one page
//	Home, G           - Back to the top of the story
//	1-9               - Show a model directly
//	R                 - Reset the camera
//	Esc, Q            - Quit
//
// A model whose name matches one of the letter keys (Q, J, K, G, R, Space)
// takes that key; Esc, arrows, paging and Home keep working.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
