package sections

import (
	"image/color"
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/taigrr/vitrine/pkg/render"
)

// Theme colors the panel text. The current section uses Active, every other
// section Inactive.
type Theme struct {
	Active     color.Color
	Inactive   color.Color
	Background color.Color
}

// DefaultTheme is blue on white for the current section and black for the
// rest.
func DefaultTheme() Theme {
	return Theme{
		Active:     color.RGBA{0, 0, 255, 255},
		Inactive:   color.RGBA{0, 0, 0, 255},
		Background: color.RGBA{255, 255, 255, 255},
	}
}

type line struct {
	section int
	text    string
}

// Panel lays a story out in a fixed-width column and scrolls it by rows.
type Panel struct {
	Theme Theme

	story  *Story
	width  int
	height int
	offset int
	lines  []line
	starts []int
}

// NewPanel returns a panel showing story.
func NewPanel(story *Story) *Panel {
	p := &Panel{Theme: DefaultTheme(), story: story}
	p.layout()
	return p
}

// SetStory swaps the content, keeping the scroll position where possible.
func (p *Panel) SetStory(story *Story) {
	p.story = story
	p.layout()
}

// Story returns the content being shown.
func (p *Panel) Story() *Story { return p.story }

// Resize re-wraps the story for a new panel size.
func (p *Panel) Resize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width, p.height = width, height
	p.layout()
}

// Scroll moves the viewport down by rows (up when negative) and reports
// whether the offset changed.
func (p *Panel) Scroll(rows int) bool {
	prev := p.offset
	p.offset = min(max(p.offset+rows, 0), p.maxOffset())
	return p.offset != prev
}

// Offset returns the index of the first visible row.
func (p *Panel) Offset() int { return p.offset }

// Rows returns the total number of laid out rows.
func (p *Panel) Rows() int { return len(p.lines) }

// Tops returns the viewport-relative row of every section heading in
// document order.
func (p *Panel) Tops() []Top {
	if p.story == nil {
		return nil
	}
	tops := make([]Top, len(p.starts))
	for i, start := range p.starts {
		tops[i] = Top{Section: p.story.Sections[i].Number, Offset: start - p.offset}
	}
	return tops
}

// Visible returns the text of the rows currently in view.
func (p *Panel) Visible() []string {
	end := min(p.offset+p.height, len(p.lines))
	out := make([]string, 0, max(end-p.offset, 0))
	for _, l := range p.lines[p.offset:end] {
		out = append(out, l.text)
	}
	return out
}

// Draw paints the visible rows into area, highlighting section current.
func (p *Panel) Draw(scr uv.Screen, area uv.Rectangle, current int) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		i := p.offset + row - area.Min.Y
		var l line
		if i < len(p.lines) {
			l = p.lines[i]
		}
		style := uv.Style{Fg: p.Theme.Inactive, Bg: p.Theme.Background}
		if l.section == current {
			style.Fg = p.Theme.Active
		}
		render.DrawText(scr, area.Min.X, row, area.Max.X, l.text, style)
	}
}

func (p *Panel) maxOffset() int {
	if len(p.starts) == 0 {
		return 0
	}
	// The last heading may always be scrolled to the top.
	return max(len(p.lines)-p.height, p.starts[len(p.starts)-1], 0)
}

func (p *Panel) layout() {
	p.lines = p.lines[:0]
	p.starts = p.starts[:0]
	if p.story == nil {
		p.offset = 0
		return
	}

	width := max(p.width, 1)
	for _, sec := range p.story.Sections {
		p.starts = append(p.starts, len(p.lines))
		p.appendWrapped(sec.Number, strings.ToUpper(sec.Title), width)
		for _, para := range sec.Paragraphs {
			p.lines = append(p.lines, line{section: sec.Number})
			p.appendWrapped(sec.Number, para, width)
		}
		p.lines = append(p.lines, line{section: sec.Number})
	}
	p.offset = min(p.offset, p.maxOffset())
}

func (p *Panel) appendWrapped(section int, text string, width int) {
	wrapped := ansi.Wordwrap(text, width, "")
	wrapped = ansi.Hardwrap(wrapped, width, true)
	for _, s := range strings.Split(wrapped, "\n") {
		p.lines = append(p.lines, line{section: section, text: s})
	}
}
