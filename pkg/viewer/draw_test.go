package viewer

import (
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/vitrine/pkg/switcher"
)

func areaText(scr uv.Screen, area uv.Rectangle, y int) string {
	var b strings.Builder
	for x := area.Min.X; x < area.Max.X; x++ {
		if c := scr.CellAt(x, y); c != nil {
			b.WriteString(c.Content)
		}
	}
	return strings.TrimSpace(b.String())
}

func TestDrawHighlightsScrolledSection(t *testing.T) {
	v, _ := newTestViewer(t, tallStory())
	v.Resize(100, 40)
	v.Start()
	v.HandleScroll(4)
	require.Equal(t, 2, v.Tracker.Current())

	scr := uv.NewScreenBuffer(100, 40)
	v.Draw(scr)

	panel := v.Layout().Panel
	theme := v.Panel.Theme
	// Offset 4: panel rows 0-5 are section 1, 6-15 section 2, 16-25 section 3.
	for y := panel.Min.Y; y < panel.Max.Y; y++ {
		row := y - panel.Min.Y
		want := theme.Inactive
		if row >= 6 && row < 16 {
			want = theme.Active
		}
		for x := panel.Min.X; x < panel.Max.X; x++ {
			assert.Equal(t, want, scr.CellAt(x, y).Style.Fg, "panel row %d col %d", row, x-panel.Min.X)
		}
	}
	assert.Equal(t, "TWO", areaText(scr, panel, panel.Min.Y+6))

	v.HandleScroll(10)
	require.Equal(t, 3, v.Tracker.Current())
	v.Draw(scr)
	assert.Equal(t, theme.Inactive, scr.CellAt(panel.Min.X, panel.Min.Y).Style.Fg, "section 2 is no longer current")
	assert.Equal(t, theme.Active, scr.CellAt(panel.Min.X, panel.Min.Y+6).Style.Fg)
}

func TestDrawLoaderRow(t *testing.T) {
	v, loader := newTestViewer(t, nil)
	v.Resize(100, 40)
	v.Start()

	scr := uv.NewScreenBuffer(100, 40)
	loaderArea := v.Layout().Loader

	v.Draw(scr)
	assert.Equal(t, "Chargement: 0%", areaText(scr, loaderArea, loaderArea.Min.Y))

	v.Apply(switcher.Progress{Gen: loader.gen, Loaded: 523000, Total: 1000000})
	v.Draw(scr)
	assert.Equal(t, "Chargement: 52.3%", areaText(scr, loaderArea, loaderArea.Min.Y))

	require.True(t, v.Apply(switcher.ModelLoaded{Gen: loader.gen, Asset: square()}))
	v.Draw(scr)
	assert.Empty(t, areaText(scr, loaderArea, loaderArea.Min.Y), "indicator hidden once the model is in")
}

func TestDrawMarksActiveButton(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	v.Resize(100, 40)
	v.Start()
	v.List.Button("3").Activate()

	scr := uv.NewScreenBuffer(100, 40)
	v.Draw(scr)

	list := v.Layout().List
	for i, b := range v.List.Buttons() {
		want := buttonStyle.Bg
		if b.Desc.Name == "3" {
			want = activeButtonStyle.Bg
		}
		assert.Equal(t, want, scr.CellAt(list.Min.X, list.Min.Y+i).Style.Bg, "button %s", b.Desc.Name)
	}
}
