// Package portal mounts panel content into a fixed root container outside
// the trigger's own subtree.
//
// A [Root] is supplied by the rendering environment. [MemoryRoot] keeps the
// mounted layers in memory and backs them with [dom.Box] containers, which
// is enough for the SVG gallery, the terminal demo and tests.
package portal

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/placement"
)

// Layer is one piece of mounted content.
type Layer struct {
	ID      string
	Class   string
	Content any
	Style   placement.Style
	Mask    bool
}

// Container is the mounted element wrapping a layer's content. Popups
// measure it to learn their own size and use it for click-outside checks.
type Container interface {
	dom.Measurable
	dom.Node
}

// Root is the detached render target.
type Root interface {
	// Append mounts l and returns its container.
	Append(l Layer) Container
	// SetStyle repositions the layer with the given id.
	SetStyle(id string, s placement.Style)
	// Remove unmounts the layer with the given id. Unknown ids are ignored.
	Remove(id string)
}

// Portal mounts content into a Root.
type Portal struct {
	root Root
}

// New creates a portal for root.
func New(root Root) *Portal {
	return &Portal{root: root}
}

// Mount appends a new layer holding content.
func (p *Portal) Mount(content any, class string, mask bool) *Mounted {
	l := Layer{ID: uuid.NewString(), Class: class, Content: content, Mask: mask}
	return &Mounted{root: p.root, id: l.ID, container: p.root.Append(l)}
}

// Mounted is a handle to a mounted layer.
type Mounted struct {
	root      Root
	id        string
	container Container
	once      sync.Once
}

// ID returns the layer id.
func (m *Mounted) ID() string { return m.id }

// Container returns the layer's container element.
func (m *Mounted) Container() Container { return m.container }

// SetStyle repositions the layer.
func (m *Mounted) SetStyle(s placement.Style) {
	m.root.SetStyle(m.id, s)
}

// Unmount removes the layer. Calling it more than once is safe.
func (m *Mounted) Unmount() {
	m.once.Do(func() { m.root.Remove(m.id) })
}
