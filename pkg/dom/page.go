package dom

import (
	"slices"
	"sync"

	"github.com/matzehuels/popover/pkg/geom"
)

// Page is an in-memory [Document] with a body box.
type Page struct {
	body *Box

	mu        sync.Mutex
	listeners map[int]func(Node)
	nextID    int
}

// NewPage creates a page whose body occupies r. A scrolled document is
// modelled by a negative body origin.
func NewPage(r geom.Rect) *Page {
	return &Page{
		body:      NewBox("body", r),
		listeners: make(map[int]func(Node)),
	}
}

// Body returns the root box.
func (p *Page) Body() *Box { return p.body }

// OnPointerDown registers fn for every PointerDown call.
func (p *Page) OnPointerDown(fn func(target Node)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Listeners returns the number of registered pointer-down listeners.
func (p *Page) Listeners() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.listeners)
}

// PointerDown notifies every listener that target was pressed. The listener
// set is copied first so listeners may release themselves.
func (p *Page) PointerDown(target Node) {
	p.mu.Lock()
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Node), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, p.listeners[id])
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(target)
	}
}

// PointerDownAt presses whatever box is under pt.
func (p *Page) PointerDownAt(pt geom.Point) {
	var target Node
	if hit := p.body.HitTest(pt); hit != nil {
		target = hit
	}
	p.PointerDown(target)
}

var _ Document = (*Page)(nil)
