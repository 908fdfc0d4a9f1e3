package viewer

import "github.com/taigrr/vitrine/pkg/catalog"

// ModelButton is the catalog entry for one model. Activating it makes it
// the only active button and asks the list to load its model.
type ModelButton struct {
	Desc catalog.Descriptor

	list   *ModelList
	active bool
}

// Activate marks b active, clears every other button and starts loading.
func (b *ModelButton) Activate() {
	b.list.activate(b)
}

// Active reports whether b is the selected button.
func (b *ModelButton) Active() bool { return b.active }

// ModelList holds one button per catalog entry, in catalog order.
type ModelList struct {
	buttons  []*ModelButton
	byName   map[string]*ModelButton
	onSelect func(catalog.Descriptor)
}

// NewModelList builds the buttons for cat. onSelect runs each time a
// button is activated.
func NewModelList(cat *catalog.Catalog, onSelect func(catalog.Descriptor)) *ModelList {
	entries := cat.Entries()
	l := &ModelList{
		buttons:  make([]*ModelButton, len(entries)),
		byName:   make(map[string]*ModelButton, len(entries)),
		onSelect: onSelect,
	}
	for i, d := range entries {
		b := &ModelButton{Desc: d, list: l}
		l.buttons[i] = b
		l.byName[d.Name] = b
	}
	return l
}

// Buttons returns the buttons in catalog order.
func (l *ModelList) Buttons() []*ModelButton { return l.buttons }

// Button returns the button for the named model, or nil.
func (l *ModelList) Button(name string) *ModelButton { return l.byName[name] }

// Active returns the active button, or nil before the first activation.
func (l *ModelList) Active() *ModelButton {
	for _, b := range l.buttons {
		if b.active {
			return b
		}
	}
	return nil
}

// Len returns the number of buttons.
func (l *ModelList) Len() int { return len(l.buttons) }

func (l *ModelList) activate(target *ModelButton) {
	for _, b := range l.buttons {
		b.active = b == target
	}
	if l.onSelect != nil {
		l.onSelect(target.Desc)
	}
}
