package dom

import (
	"slices"
	"sync"

	"github.com/matzehuels/popover/pkg/geom"
)

// Box is an in-memory element with a fixed rectangle, a parent link and a
// listener set. It implements [Element].
type Box struct {
	mu        sync.Mutex
	name      string
	rect      geom.Rect
	mounted   bool
	parent    *Box
	children  []*Box
	listeners map[int]func(Event)
	nextID    int
}

// NewBox creates a mounted box.
func NewBox(name string, r geom.Rect) *Box {
	return &Box{name: name, rect: r, mounted: true, listeners: make(map[int]func(Event))}
}

// Name returns the label given at construction.
func (b *Box) Name() string { return b.name }

// Append makes child a descendant of b and returns child.
func (b *Box) Append(child *Box) *Box {
	b.mu.Lock()
	b.children = append(b.children, child)
	b.mu.Unlock()

	child.mu.Lock()
	child.parent = b
	child.mu.Unlock()
	return child
}

// Remove detaches child from b. Unknown children are ignored.
func (b *Box) Remove(child *Box) {
	b.mu.Lock()
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	child.mu.Lock()
	if child.parent == b {
		child.parent = nil
	}
	child.mu.Unlock()
}

// Parent returns the containing box, or nil for a root.
func (b *Box) Parent() *Box {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parent
}

// Children returns a snapshot of the direct children.
func (b *Box) Children() []*Box {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Box(nil), b.children...)
}

// SetRect replaces the box geometry.
func (b *Box) SetRect(r geom.Rect) {
	b.mu.Lock()
	b.rect = r
	b.mu.Unlock()
}

// SetMounted toggles whether Measure reports geometry.
func (b *Box) SetMounted(mounted bool) {
	b.mu.Lock()
	b.mounted = mounted
	b.mu.Unlock()
}

// Measure returns the box rectangle, or false while unmounted.
func (b *Box) Measure() (geom.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mounted {
		return geom.Rect{}, false
	}
	return b.rect, true
}

// Contains reports whether target is b or sits below b in the tree.
// Targets that are not boxes are never contained.
func (b *Box) Contains(target Node) bool {
	t, ok := target.(*Box)
	if !ok || t == nil {
		return false
	}
	for n := t; n != nil; n = n.Parent() {
		if n == b {
			return true
		}
	}
	return false
}

// Listen registers fn for events dispatched on b.
func (b *Box) Listen(fn func(Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Listeners returns the number of registered listeners.
func (b *Box) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Dispatch delivers ev to every listener registered on b, in registration
// order. Listeners may register or release during dispatch.
func (b *Box) Dispatch(ev Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, b.listeners[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// HitTest returns the deepest mounted box under p, starting at b, or nil.
// Later children win over earlier ones, matching paint order.
func (b *Box) HitTest(p geom.Point) *Box {
	r, ok := b.Measure()
	if !ok || !r.Contains(p) {
		return nil
	}
	children := b.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := children[i].HitTest(p); hit != nil {
			return hit
		}
	}
	return b
}

var _ Element = (*Box)(nil)
