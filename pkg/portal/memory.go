package portal

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
)

// Sizer reports the rendered size of layer content.
type Sizer func(content any) geom.Size

// FixedSizer sizes every layer as s.
func FixedSizer(s geom.Size) Sizer {
	return func(any) geom.Size { return s }
}

// TextSizer sizes content by its printed text: charWidth per rune of the
// longest line and lineHeight per line, plus padding on every side.
func TextSizer(charWidth, lineHeight, padding float64) Sizer {
	return func(content any) geom.Size {
		lines := strings.Split(fmt.Sprint(content), "\n")
		widest := 0
		for _, l := range lines {
			if n := utf8.RuneCountInString(l); n > widest {
				widest = n
			}
		}
		return geom.Size{
			Width:  float64(widest)*charWidth + 2*padding,
			Height: float64(len(lines))*lineHeight + 2*padding,
		}
	}
}

// MemoryRoot is an in-memory Root. Each layer is backed by a [dom.Box]
// appended to the parent box, so hit testing and containment work on
// mounted panels.
type MemoryRoot struct {
	parent *dom.Box
	sizer  Sizer

	mu     sync.Mutex
	layers []*memLayer
}

type memLayer struct {
	layer Layer
	box   *dom.Box
}

// NewMemoryRoot creates a root whose containers hang off parent (usually
// the page body). A nil parent gets a detached root box at the origin.
func NewMemoryRoot(parent *dom.Box, sizer Sizer) *MemoryRoot {
	if parent == nil {
		parent = dom.NewBox("portal-root", geom.Rect{})
	}
	if sizer == nil {
		sizer = TextSizer(7, 16, 6)
	}
	return &MemoryRoot{parent: parent, sizer: sizer}
}

// Append mounts l. A mask covers the whole parent. Other containers start
// unpositioned at the parent origin with the size reported by the sizer.
func (r *MemoryRoot) Append(l Layer) Container {
	rect := r.sizer(l.Content).At(r.origin())
	if l.Mask {
		rect, _ = r.parent.Measure()
	}
	box := dom.NewBox("layer:"+l.ID, rect)
	r.parent.Append(box)

	r.mu.Lock()
	r.layers = append(r.layers, &memLayer{layer: l, box: box})
	r.mu.Unlock()
	return box
}

// SetStyle stores s and moves the container. Styles are in document
// coordinates; containers are kept in the parent's coordinate space.
func (r *MemoryRoot) SetStyle(id string, s placement.Style) {
	r.mu.Lock()
	ml := r.find(id)
	if ml != nil {
		ml.layer.Style = s
	}
	r.mu.Unlock()
	if ml == nil {
		return
	}

	cur, _ := ml.box.Measure()
	origin := r.origin()
	if !s.IsEmpty() {
		origin = geom.Point{X: origin.X + s.Left, Y: origin.Y + s.Top}
	}
	ml.box.SetRect(cur.Size().At(origin))
}

// Remove unmounts the layer with id.
func (r *MemoryRoot) Remove(id string) {
	r.mu.Lock()
	var box *dom.Box
	for i, ml := range r.layers {
		if ml.layer.ID == id {
			box = ml.box
			r.layers = append(r.layers[:i], r.layers[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if box != nil {
		box.SetMounted(false)
		r.parent.Remove(box)
	}
}

// Layers returns a snapshot of mounted layers in mount order.
func (r *MemoryRoot) Layers() []Layer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Layer, len(r.layers))
	for i, ml := range r.layers {
		out[i] = ml.layer
	}
	return out
}

// Container returns the container of the layer with id, if mounted.
func (r *MemoryRoot) Container(id string) (*dom.Box, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ml := r.find(id); ml != nil {
		return ml.box, true
	}
	return nil, false
}

func (r *MemoryRoot) find(id string) *memLayer {
	for _, ml := range r.layers {
		if ml.layer.ID == id {
			return ml
		}
	}
	return nil
}

func (r *MemoryRoot) origin() geom.Point {
	if pr, ok := r.parent.Measure(); ok {
		return pr.Origin()
	}
	return geom.Point{}
}

var _ Root = (*MemoryRoot)(nil)
