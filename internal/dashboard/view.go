package dashboard

import (
	"net/url"
	"slices"
)

// Query parameters carrying view state.
const (
	paramSection = "section"
	paramModal   = "modal"
	paramClick   = "click"
)

// View is the presentational state of a page: exactly one active section and
// any number of open modals. Opening a modal never closes another one.
type View struct {
	path     string
	sections []string
	modals   []string
	active   string
	open     map[string]bool
}

// NewView creates a view over the known sections and modals. The first
// section starts active and every modal starts closed. Links it produces
// are relative to the current URL.
func NewView(sections, modals []string) *View {
	return NewPageView("", sections, modals)
}

// NewPageView creates a view whose links point at the page served at path,
// so they stay valid on responses rendered under another URL.
func NewPageView(path string, sections, modals []string) *View {
	v := &View{
		path:     path,
		sections: sections,
		modals:   modals,
		open:     make(map[string]bool),
	}
	if len(sections) > 0 {
		v.active = sections[0]
	}
	return v
}

// ShowSection makes id the only visible section. Unknown ids are ignored.
func (v *View) ShowSection(id string) {
	if !slices.Contains(v.sections, id) {
		return
	}
	v.active = id
}

// ToggleModal flips the visibility of modal id.
func (v *View) ToggleModal(id string) {
	if !slices.Contains(v.modals, id) {
		return
	}
	v.open[id] = !v.open[id]
}

// OpenModal shows modal id.
func (v *View) OpenModal(id string) {
	if slices.Contains(v.modals, id) {
		v.open[id] = true
	}
}

// CloseModal hides modal id.
func (v *View) CloseModal(id string) {
	delete(v.open, id)
}

// Click handles a click whose target is the element id. A click that lands on
// an open modal's backdrop closes that modal; any other click is ignored.
func (v *View) Click(target string) {
	if v.open[target] {
		v.CloseModal(target)
	}
}

// Active returns the visible section.
func (v *View) Active() string {
	return v.active
}

// SectionActive reports whether id is the visible section.
func (v *View) SectionActive(id string) bool {
	return v.active == id
}

// ModalOpen reports whether modal id is shown.
func (v *View) ModalOpen(id string) bool {
	return v.open[id]
}

// Apply replays view state from a query string: the section to show, the
// modals that are open, and backdrop clicks to dispatch.
func (v *View) Apply(q url.Values) {
	if s := q.Get(paramSection); s != "" {
		v.ShowSection(s)
	}
	for _, m := range q[paramModal] {
		if slices.Contains(v.modals, m) {
			v.open[m] = true
		}
	}
	for _, target := range q[paramClick] {
		v.Click(target)
	}
}

// Query encodes the view state.
func (v *View) Query() url.Values {
	q := url.Values{}
	if v.active != "" {
		q.Set(paramSection, v.active)
	}
	for _, m := range v.modals {
		if v.open[m] {
			q.Add(paramModal, m)
		}
	}
	return q
}

// SectionLink is the href that shows section id, keeping open modals.
func (v *View) SectionLink(id string) string {
	next := v.clone()
	next.ShowSection(id)
	return v.link(next.Query())
}

// ToggleLink is the href that toggles modal id.
func (v *View) ToggleLink(id string) string {
	next := v.clone()
	next.ToggleModal(id)
	return v.link(next.Query())
}

// BackdropLink is the href of modal id's backdrop. Following it dispatches a
// click on the backdrop element.
func (v *View) BackdropLink(id string) string {
	q := v.Query()
	q.Add(paramClick, id)
	return v.link(q)
}

// Path is the page the view's links point at.
func (v *View) Path() string {
	return v.path
}

func (v *View) link(q url.Values) string {
	return v.path + "?" + q.Encode()
}

func (v *View) clone() *View {
	c := &View{
		path:     v.path,
		sections: v.sections,
		modals:   v.modals,
		active:   v.active,
		open:     make(map[string]bool, len(v.open)),
	}
	for k, val := range v.open {
		c.open[k] = val
	}
	return c
}
