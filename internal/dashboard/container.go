package dashboard

import (
	"html/template"
	"sync"
)

// Container is a region of a page owned by a single loader.
type Container struct {
	id string

	mu      sync.RWMutex
	content template.HTML
	hidden  bool
	renders int
}

// NewContainer creates a visible container with initial content.
func NewContainer(id string, initial template.HTML) *Container {
	return &Container{id: id, content: initial}
}

// NewHiddenContainer creates a container that starts hidden.
func NewHiddenContainer(id string, initial template.HTML) *Container {
	return &Container{id: id, content: initial, hidden: true}
}

// ID returns the container's identity on the page.
func (c *Container) ID() string {
	return c.id
}

// Content returns the current rendered content.
func (c *Container) Content() template.HTML {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content
}

// Replace swaps the whole content of the container.
func (c *Container) Replace(content template.HTML) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
	c.renders++
}

// Renders returns how many times the content was replaced.
func (c *Container) Renders() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renders
}

// Visible reports whether the container is shown.
func (c *Container) Visible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.hidden
}

// Show makes the container visible.
func (c *Container) Show() {
	c.setHidden(false)
}

// Hide hides the container.
func (c *Container) Hide() {
	c.setHidden(true)
}

func (c *Container) setHidden(hidden bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hidden = hidden
}

// Page is the set of containers present on one rendered page. Pages may
// carry any subset of the dashboard's containers.
type Page struct {
	containers map[string]*Container
}

// NewPage creates a page from containers. Later duplicates win.
func NewPage(containers ...*Container) *Page {
	p := &Page{containers: make(map[string]*Container, len(containers))}
	for _, c := range containers {
		p.containers[c.ID()] = c
	}
	return p
}

// Container returns the container with id, or nil when the page has none.
func (p *Page) Container(id string) *Container {
	if p == nil {
		return nil
	}
	return p.containers[id]
}

// Has reports whether the page carries the container id.
func (p *Page) Has(id string) bool {
	return p.Container(id) != nil
}
