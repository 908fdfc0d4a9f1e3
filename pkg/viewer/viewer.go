// Package viewer wires the canvas, the model list, the loading indicator and
// the story panel into one screen. All of its state belongs to the UI
// goroutine; loaders and input readers talk to it through events.
package viewer

import (
	"errors"
	"image/color"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/vitrine/pkg/catalog"
	"github.com/taigrr/vitrine/pkg/controls"
	"github.com/taigrr/vitrine/pkg/math3d"
	"github.com/taigrr/vitrine/pkg/render"
	"github.com/taigrr/vitrine/pkg/scene"
	"github.com/taigrr/vitrine/pkg/sections"
	"github.com/taigrr/vitrine/pkg/switcher"
)

// FirstModel is the catalog entry shown on start-up.
const FirstModel = "1"

// CameraOffset is where the camera sits relative to the origin it looks at.
var CameraOffset = math3d.V3(0, -1, 0.5)

// Loader starts background loads and tells which generation is current.
// *switcher.Switcher implements it.
type Loader interface {
	Switch(desc catalog.Descriptor) uint64
	IsCurrent(gen uint64) bool
}

// Options configures a Viewer.
type Options struct {
	Catalog     *catalog.Catalog
	Story       *sections.Story
	Loader      Loader
	Threshold   int     // Section threshold in panel rows
	CanvasRatio float64 // Share of the width given to the canvas

	Antialias   bool
	ToneMapping render.ToneMapping
	Exposure    float64
	ClearColor  color.RGBA

	Logger *zap.Logger
}

// DefaultOptions returns the showcase defaults around cat and story.
func DefaultOptions(cat *catalog.Catalog, story *sections.Story, loader Loader) Options {
	return Options{
		Catalog:     cat,
		Story:       story,
		Loader:      loader,
		Threshold:   6,
		CanvasRatio: DefaultCanvasRatio,
		Antialias:   true,
		ToneMapping: render.ToneMappingACESFilmic,
		Exposure:    0.8,
		ClearColor:  render.ColorWhite,
	}
}

// Viewer is the showcase screen.
type Viewer struct {
	Scene    *scene.Scene
	Camera   *render.Camera
	Controls *controls.CameraControls
	Renderer *render.Renderer
	List     *ModelList
	Panel    *sections.Panel
	Tracker  *sections.Tracker

	loader      Loader
	ratio       float64
	layout      Layout
	loaderText  string
	loaderShown bool
	log         *zap.Logger
}

// New builds the scene, camera, controls and renderer, and one button per
// catalog entry. Nothing is loaded until Start.
func New(opts Options) (*Viewer, error) {
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	if opts.Loader == nil {
		return nil, errors.New("viewer: no loader")
	}
	if opts.Story == nil {
		opts.Story = DefaultStory(opts.Catalog)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cam := render.NewOrthographicCamera()
	cam.SetPosition(CameraOffset)
	cam.LookAt(math3d.Zero3())

	r := render.NewRenderer(cam)
	r.SetAntialias(opts.Antialias)
	r.ToneMapping = opts.ToneMapping
	r.Exposure = opts.Exposure
	r.ClearColor = opts.ClearColor

	ctl := controls.New(cam)
	ctl.ZoomToCursor = true

	v := &Viewer{
		Scene:       scene.NewScene(),
		Camera:      cam,
		Controls:    ctl,
		Renderer:    r,
		Panel:       sections.NewPanel(opts.Story),
		Tracker:     sections.NewTracker(opts.Threshold),
		loader:      opts.Loader,
		ratio:       opts.CanvasRatio,
		loaderText:  switcher.FormatProgress(0, 0),
		loaderShown: true,
		log:         log,
	}
	v.List = NewModelList(opts.Catalog, v.switchTo)
	for _, d := range opts.Catalog.Entries() {
		if slices.Contains(Shortcuts, d.Name) {
			log.Warn("model name shadows a key binding", zap.String("model", d.Name))
		}
	}
	return v, nil
}

// DefaultStory returns one untitled section per catalog entry, for when no
// story file is configured.
func DefaultStory(cat *catalog.Catalog) *sections.Story {
	story := &sections.Story{}
	for i, d := range cat.Entries() {
		story.Sections = append(story.Sections, sections.Section{
			Number: i + 1,
			Title:  d.Label(),
		})
	}
	return story
}

// Start activates the first model.
func (v *Viewer) Start() {
	b := v.List.Button(FirstModel)
	if b == nil {
		b = v.List.Buttons()[0]
	}
	b.Activate()
}

func (v *Viewer) switchTo(desc catalog.Descriptor) {
	gen := v.loader.Switch(desc)
	v.log.Debug("model requested", zap.String("model", desc.Name), zap.Uint64("gen", gen))
}

// Resize lays the screen out for a cols×rows terminal and sizes the canvas
// to match.
func (v *Viewer) Resize(cols, rows int) {
	v.layout = ComputeLayout(cols, rows, v.ratio, v.List.Len())
	w, h := v.layout.CanvasPixels()
	v.SetCanvasSize(w, h)

	p := v.layout.Panel
	v.Panel.Resize(p.Max.X-p.Min.X, p.Max.Y-p.Min.Y)
}

// SetCanvasSize sets the camera aspect to width/height and the drawing
// buffer to width×height pixels.
func (v *Viewer) SetCanvasSize(width, height int) {
	if width > 0 && height > 0 {
		v.Camera.SetAspectRatio(float64(width) / float64(height))
	}
	v.Renderer.SetSize(width, height)
	v.Controls.SetViewport(width, height)
}

// Layout returns the current screen layout.
func (v *Viewer) Layout() Layout { return v.layout }

// SetStory replaces the panel content and re-evaluates the current section.
func (v *Viewer) SetStory(story *sections.Story) {
	v.Panel.SetStory(story)
	v.syncSection()
}

// HandleScroll scrolls the story panel by rows and switches models when
// the current section changes.
func (v *Viewer) HandleScroll(rows int) {
	v.Panel.Scroll(rows)
	v.syncSection()
}

func (v *Viewer) syncSection() {
	current, changed := v.Tracker.Evaluate(v.Panel.Tops())
	if !changed {
		return
	}
	name := strconv.Itoa(current)
	b := v.List.Button(name)
	if b == nil {
		v.log.Warn("section has no model", zap.Int("section", current))
		return
	}
	b.Activate()
}

// Apply folds a loader event into the screen. Events from superseded
// switches are dropped; it reports whether ev was applied.
func (v *Viewer) Apply(ev switcher.Event) bool {
	if !v.loader.IsCurrent(ev.Generation()) {
		return false
	}
	switch ev := ev.(type) {
	case switcher.Progress:
		v.loaderShown = true
		v.loaderText = ev.Text()
	case switcher.EnvironmentLoaded:
		v.Scene.SetEnvironment(ev.Environment)
	case switcher.ModelLoaded:
		v.loaderShown = false
		v.Scene.Replace(scene.NewModelNode(ev.Asset))
	case switcher.Failed:
		// The previous model stays on screen and the indicator stays up.
		v.log.Warn("keeping previous model", zap.String("model", ev.Model.Name), zap.Error(ev.Err))
	}
	return true
}

// LoaderStatus returns the indicator text and whether it is shown.
func (v *Viewer) LoaderStatus() (text string, visible bool) {
	return v.loaderText, v.loaderShown
}

// Frame advances camera easing by dt seconds and renders the scene into
// the canvas framebuffer.
func (v *Viewer) Frame(dt float64) *render.Framebuffer {
	v.Controls.Update(dt)
	if w, h := v.Renderer.Size(); w == 0 || h == 0 {
		return v.Renderer.Framebuffer()
	}
	v.Renderer.Clear()
	v.Scene.Draw(v.Renderer)
	return v.Renderer.Resolve()
}

// MaxFrameDelta caps the step fed to easing after a stall, in seconds.
const MaxFrameDelta = 0.1

// FrameDelta returns the seconds between prev and now, clamped to
// [0, MaxFrameDelta].
func FrameDelta(prev, now time.Time) float64 {
	return min(max(now.Sub(prev).Seconds(), 0), MaxFrameDelta)
}
