// Package switcher loads catalog models in the background. Every Switch
// starts a new generation and cancels the previous one; results are posted
// as events tagged with their generation so the consumer can drop stale
// ones.
package switcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/taigrr/vitrine/pkg/catalog"
)

// Options configures a Switcher.
type Options struct {
	ModelsDir       string
	EnvironmentPath string
	LoadEnvironment EnvironmentLoader // Defaults to LoadEnvironmentFile
	LoadModel       ModelLoader       // Required
	Buffer          int               // Event channel capacity; defaults to 64
}

// Switcher runs at most one live load at a time.
type Switcher struct {
	opts   Options
	log    *zap.Logger
	events chan Event

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// New creates a switcher. A nil logger discards output.
func New(opts Options, log *zap.Logger) *Switcher {
	if opts.LoadEnvironment == nil {
		opts.LoadEnvironment = LoadEnvironmentFile
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 64
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Switcher{
		opts:   opts,
		log:    log,
		events: make(chan Event, opts.Buffer),
	}
}

// Events returns the channel results are delivered on.
func (s *Switcher) Events() <-chan Event {
	return s.events
}

// Latest returns the generation of the most recent Switch call.
func (s *Switcher) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// IsCurrent reports whether gen belongs to the most recent Switch call.
func (s *Switcher) IsCurrent(gen uint64) bool {
	return gen == s.Latest()
}

// Switch starts loading desc: first the environment, then the model. It
// cancels any load in flight and returns the new generation. After Close
// it returns 0 and does nothing.
func (s *Switcher) Switch(desc catalog.Descriptor) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(ctx, gen, desc)
	}()

	s.log.Debug("switch started", zap.Uint64("gen", gen), zap.String("model", desc.Name), zap.String("file", desc.File))
	return gen
}

func (s *Switcher) run(ctx context.Context, gen uint64, desc catalog.Descriptor) {
	stage := StageEnvironment
	// Loader panics surface as Failed events.
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, gen, desc, stage, fmt.Errorf("%s loader panicked: %v", stage, r))
		}
	}()

	env, err := s.opts.LoadEnvironment(ctx, s.opts.EnvironmentPath)
	if err != nil {
		s.fail(ctx, gen, desc, StageEnvironment, err)
		return
	}
	if !s.send(ctx, EnvironmentLoaded{Gen: gen, Model: desc, Environment: env}) {
		return
	}

	stage = StageModel
	path := catalog.Path(s.opts.ModelsDir, desc)
	progress := func(loaded, total int64) {
		s.trySend(ctx, Progress{Gen: gen, Model: desc, Loaded: loaded, Total: total})
	}
	asset, err := s.opts.LoadModel(ctx, path, progress)
	if err != nil {
		s.fail(ctx, gen, desc, StageModel, err)
		return
	}
	if asset.Name == "" {
		asset.Name = desc.Name
	}

	if s.send(ctx, ModelLoaded{Gen: gen, Model: desc, Asset: asset}) {
		s.log.Info("model loaded",
			zap.Uint64("gen", gen),
			zap.String("model", desc.Name),
			zap.Int("triangles", asset.TriangleCount()),
		)
	}
}

func (s *Switcher) fail(ctx context.Context, gen uint64, desc catalog.Descriptor, stage Stage, err error) {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		s.log.Debug("switch superseded", zap.Uint64("gen", gen), zap.String("model", desc.Name))
		return
	}
	s.log.Error("switch failed",
		zap.Uint64("gen", gen),
		zap.String("model", desc.Name),
		zap.String("stage", string(stage)),
		zap.Error(err),
	)
	s.send(ctx, Failed{Gen: gen, Model: desc, Stage: stage, Err: err})
}

// send delivers ev unless the generation is cancelled first.
func (s *Switcher) send(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// trySend delivers ev only if there is room; progress is advisory.
func (s *Switcher) trySend(ctx context.Context, ev Event) {
	if ctx.Err() != nil {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

// Close cancels any load in flight and waits for it to stop.
func (s *Switcher) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
