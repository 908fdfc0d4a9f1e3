package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/vitrine/internal/logger"
	"github.com/taigrr/vitrine/pkg/render"
	"github.com/taigrr/vitrine/pkg/sections"
	"github.com/taigrr/vitrine/pkg/switcher"
	"github.com/taigrr/vitrine/pkg/viewer"
)

func (a *app) newViewer(loader viewer.Loader) (*viewer.Viewer, error) {
	cat, err := a.catalog()
	if err != nil {
		return nil, err
	}
	story, err := a.story()
	if err != nil {
		return nil, err
	}
	clearColor, err := render.ParseHexColor(a.cfg.Viewer.ClearColor)
	if err != nil {
		return nil, err
	}

	opts := viewer.DefaultOptions(cat, story, loader)
	opts.Threshold = a.cfg.Sections.ThresholdRows
	opts.CanvasRatio = a.cfg.Viewer.CanvasRatio
	opts.Antialias = a.cfg.Viewer.Antialias
	opts.ToneMapping = render.ParseToneMapping(a.cfg.Viewer.ToneMapping)
	opts.Exposure = a.cfg.Viewer.Exposure
	opts.ClearColor = clearColor
	opts.Logger = logger.Named("viewer")
	return viewer.New(opts)
}

func (a *app) newSwitcher() *switcher.Switcher {
	return switcher.New(switcher.Options{
		ModelsDir:       a.cfg.Assets.ModelsDir,
		EnvironmentPath: a.cfg.Assets.Environment,
		LoadModel:       switcher.GLTFModelLoader(a.gltfLoader()),
	}, logger.Named("switcher"))
}

func (a *app) run(ctx context.Context) error {
	sw := a.newSwitcher()
	defer sw.Close()

	v, err := a.newViewer(sw)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v.Resize(width, height)
	v.Start()
	logger.Info("viewer started",
		zap.Int("cols", width),
		zap.Int("rows", height),
		zap.Int("models", v.List.Len()),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	input := make(chan uv.Event, 64)
	g.Go(func() error {
		return pumpInput(ctx, term.Events(), input)
	})

	stories := make(chan *sections.Story, 1)
	if a.cfg.Sections.Watch && a.cfg.Assets.Story != "" {
		g.Go(func() error {
			return viewer.WatchStory(ctx, a.cfg.Assets.Story, stories, logger.Named("watch"))
		})
	}

	g.Go(func() error {
		defer cancel()
		return loop(ctx, term, v, sw.Events(), input, stories, a.cfg.Viewer.FPS)
	})

	return g.Wait()
}

// pumpInput forwards terminal events until ctx is done so that the UI loop
// can drain them without blocking.
func pumpInput(ctx context.Context, events <-chan uv.Event, out chan<- uv.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// loop is the UI goroutine: it alone touches the viewer.
func loop(
	ctx context.Context,
	term *uv.Terminal,
	v *viewer.Viewer,
	loads <-chan switcher.Event,
	input <-chan uv.Event,
	stories <-chan *sections.Story,
	fps int,
) error {
	frame := time.Second / time.Duration(fps)
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := viewer.FrameDelta(last, now)
		last = now

	drain:
		for {
			select {
			case ev := <-input:
				if ws, ok := ev.(uv.WindowSizeEvent); ok {
					term.Erase()
					term.Resize(ws.Width, ws.Height)
				}
				if v.HandleEvent(ev) {
					return nil
				}
			case ev := <-loads:
				v.Apply(ev)
			case story := <-stories:
				v.SetStory(story)
			default:
				break drain
			}
		}

		v.Frame(dt)
		v.Draw(term)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < frame {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(frame - elapsed):
			}
		}
	}
}
