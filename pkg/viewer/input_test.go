package viewer

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/taigrr/vitrine/pkg/catalog"
	"github.com/taigrr/vitrine/pkg/sections"
)

// tallStory has three sections of ten panel rows each.
func tallStory() *sections.Story {
	body := []string{"a", "b", "c", "d"}
	return &sections.Story{Sections: []sections.Section{
		{Number: 1, Title: "One", Paragraphs: body},
		{Number: 2, Title: "Two", Paragraphs: body},
		{Number: 3, Title: "Three", Paragraphs: body},
	}}
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(100, 40, 0.6, 6)
	assert.Equal(t, uv.Rect(0, 0, 60, 40), l.Canvas)
	assert.Equal(t, uv.Rect(60, 0, 40, 7), l.List)
	assert.Equal(t, uv.Rect(60, 7, 40, 1), l.Loader)
	assert.Equal(t, uv.Rect(60, 8, 40, 32), l.Panel)

	w, h := l.CanvasPixels()
	assert.Equal(t, 60, w)
	assert.Equal(t, 80, h)

	tiny := ComputeLayout(10, 3, 0, 6)
	assert.Equal(t, uv.Rect(6, 0, 4, 3), tiny.List)
	assert.Equal(t, 0, tiny.Panel.Max.Y-tiny.Panel.Min.Y)
}

func TestScrollSwitchesModel(t *testing.T) {
	v, loader := newTestViewer(t, tallStory())
	v.Resize(100, 40)
	v.Start()

	v.HandleScroll(2)
	assert.Equal(t, []string{"1"}, loader.calls, "section 2 is still below the threshold")

	v.HandleScroll(2)
	assert.Equal(t, []string{"1", "2"}, loader.calls)
	assert.Equal(t, []string{"2"}, activeNames(v.List))

	v.HandleScroll(0)
	v.HandleScroll(0)
	assert.Equal(t, []string{"1", "2"}, loader.calls, "re-evaluating the same position must not switch")

	v.HandleScroll(100)
	v.HandleScroll(-100)
	assert.Equal(t, []string{"1", "2", "3", "1"}, loader.calls)
	assert.Equal(t, []string{"1"}, activeNames(v.List))
}

func TestScrollToSectionWithoutModel(t *testing.T) {
	story := tallStory()
	story.Sections[2].Number = 42
	v, loader := newTestViewer(t, story)
	v.Resize(100, 40)
	v.Start()

	v.HandleScroll(100)
	assert.Equal(t, []string{"1"}, loader.calls)
	assert.Equal(t, 42, v.Tracker.Current())
	assert.Equal(t, []string{"1"}, activeNames(v.List))
}

func TestWheelOverPanelScrolls(t *testing.T) {
	v, _ := newTestViewer(t, tallStory())
	v.Resize(100, 40)

	quit := v.HandleEvent(uv.MouseWheelEvent{X: 70, Y: 20, Button: uv.MouseWheelDown})
	assert.False(t, quit)
	assert.Equal(t, ScrollStep, v.Panel.Offset())

	v.HandleEvent(uv.MouseWheelEvent{X: 70, Y: 20, Button: uv.MouseWheelUp})
	assert.Equal(t, 0, v.Panel.Offset())
}

func TestWheelOverCanvasZooms(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	v.Resize(100, 40)
	v.Controls.EnableDamping = false

	v.HandleEvent(uv.MouseWheelEvent{X: 30, Y: 20, Button: uv.MouseWheelUp})
	v.Controls.Update(0.016)
	assert.Greater(t, v.Controls.Zoom(), 1.0)
	assert.Equal(t, 0, v.Panel.Offset())
}

func TestClickOnListActivates(t *testing.T) {
	v, loader := newTestViewer(t, nil)
	v.Resize(100, 40)
	v.Start()

	v.HandleEvent(uv.MouseClickEvent{X: 70, Y: 2, Button: uv.MouseLeft})
	require.Equal(t, []string{"1", "3"}, loader.calls)
	assert.Equal(t, []string{"3"}, activeNames(v.List))

	v.HandleEvent(uv.MouseClickEvent{X: 70, Y: 6, Button: uv.MouseLeft})
	assert.Len(t, loader.calls, 2, "separator row is not a button")
}

func TestWindowSizeEventResizes(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	v.HandleEvent(uv.WindowSizeEvent{Width: 50, Height: 20})

	w, h := v.Renderer.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 40, h)
}

func key(r rune) uv.KeyPressEvent {
	return uv.KeyPressEvent{Code: r, Text: string(r)}
}

func TestKeysSelectModelsAndScroll(t *testing.T) {
	v, loader := newTestViewer(t, tallStory())
	v.Resize(100, 40)
	v.Start()

	assert.False(t, v.HandleEvent(key('3')))
	assert.Equal(t, []string{"3"}, activeNames(v.List))

	assert.False(t, v.HandleEvent(key('j')))
	assert.False(t, v.HandleEvent(uv.KeyPressEvent{Code: uv.KeyDown}))
	assert.Equal(t, 2, v.Panel.Offset())

	assert.False(t, v.HandleEvent(key('g')))
	assert.Equal(t, 0, v.Panel.Offset())
	assert.Equal(t, []string{"1", "3"}, loader.calls)

	assert.True(t, v.HandleEvent(key('q')))
	assert.True(t, v.HandleEvent(uv.KeyPressEvent{Code: uv.KeyEscape}))
}

func TestModelNameTakesPrecedenceOverShortcut(t *testing.T) {
	cat, err := catalog.New([]catalog.Descriptor{
		{Name: "1", File: "one.glb"},
		{Name: "q", File: "quit.glb"},
		{Name: "j", File: "jump.glb"},
	})
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	loader := &fakeLoader{}
	opts := DefaultOptions(cat, tallStory(), loader)
	opts.Logger = zap.New(core)
	v, err := New(opts)
	require.NoError(t, err)
	v.Resize(100, 40)
	v.Start()

	assert.Equal(t, 2, logs.FilterMessage("model name shadows a key binding").Len())

	assert.False(t, v.HandleEvent(key('q')), "q selects the model instead of quitting")
	assert.Equal(t, []string{"q"}, activeNames(v.List))

	assert.False(t, v.HandleEvent(key('j')))
	assert.Equal(t, []string{"j"}, activeNames(v.List))
	assert.Equal(t, 0, v.Panel.Offset(), "j no longer scrolls")

	assert.False(t, v.HandleEvent(uv.KeyPressEvent{Code: uv.KeyDown}))
	assert.Equal(t, 1, v.Panel.Offset())
	assert.True(t, v.HandleEvent(uv.KeyPressEvent{Code: uv.KeyEscape}))
	assert.Equal(t, []string{"1", "q", "j"}, loader.calls)
}
