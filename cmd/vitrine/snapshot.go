package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/vitrine/internal/logger"
	"github.com/taigrr/vitrine/pkg/switcher"
	"github.com/taigrr/vitrine/pkg/viewer"
)

func newSnapshotCmd(a *app) *cobra.Command {
	var (
		out     string
		width   int
		height  int
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "snapshot <model>",
		Short: "Render one catalog model to a PNG without a terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("invalid size %dx%d", width, height)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return a.snapshot(ctx, args[0], out, width, height)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "snapshot.png", "output PNG path")
	cmd.Flags().IntVar(&width, "width", 480, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 360, "image height in pixels")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "give up if loading takes longer")
	return cmd
}

// snapshot drives the same switcher and viewer the terminal UI uses, then
// writes the first frame after the model arrives.
func (a *app) snapshot(ctx context.Context, name, out string, width, height int) error {
	sw := a.newSwitcher()
	defer sw.Close()

	v, err := a.newViewer(sw)
	if err != nil {
		return err
	}
	b := v.List.Button(name)
	if b == nil {
		return fmt.Errorf("no model named %q in the catalog", name)
	}
	v.SetCanvasSize(width, height)
	b.Activate()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", name, ctx.Err())
		case ev := <-sw.Events():
			if !v.Apply(ev) {
				continue
			}
			switch ev := ev.(type) {
			case switcher.Failed:
				return fmt.Errorf("load %s (%s): %w", name, ev.Stage, ev.Err)
			case switcher.ModelLoaded:
				fb := v.Frame(viewer.MaxFrameDelta)
				if err := fb.SavePNG(out); err != nil {
					return err
				}
				logger.Info("snapshot written", zap.String("model", name), zap.String("path", out))
				return nil
			}
		}
	}
}
