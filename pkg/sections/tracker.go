// Package sections maps the scroll position of the story panel to the
// model the canvas should show.
package sections

import "slices"

// DefaultThreshold is the offset at or above which a section heading counts
// as reached.
const DefaultThreshold = 200

// Top is the offset of a section's first line relative to the top of the
// viewport. Negative offsets are above it.
type Top struct {
	Section int
	Offset  int
}

// Tracker remembers which section is current and which one the canvas was
// last synchronized to. Both start at 1.
type Tracker struct {
	Threshold int

	current int
	model   int
	up      []int
}

// NewTracker returns a tracker with current and model set to section 1.
func NewTracker(threshold int) *Tracker {
	return &Tracker{
		Threshold: threshold,
		current:   1,
		model:     1,
	}
}

// Evaluate recomputes the current section from tops, given in document
// order. The last section whose top is at or above the threshold wins; if
// none qualifies the previous section is kept. changed is true when the
// current section differs from the one last synchronized, in which case the
// tracker records it as synchronized.
func (t *Tracker) Evaluate(tops []Top) (current int, changed bool) {
	t.up = t.up[:0]
	for _, top := range tops {
		if top.Offset > t.Threshold {
			continue
		}
		if slices.Contains(t.up, top.Section) {
			continue
		}
		t.up = append(t.up, top.Section)
	}
	if n := len(t.up); n > 0 {
		t.current = t.up[n-1]
	}

	if t.current != t.model {
		t.model = t.current
		return t.current, true
	}
	return t.current, false
}

// Current returns the section currently highlighted.
func (t *Tracker) Current() int { return t.current }

// Model returns the section the canvas was last synchronized to.
func (t *Tracker) Model() int { return t.model }
