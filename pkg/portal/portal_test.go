package portal

import (
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
)

func TestMountAndUnmount(t *testing.T) {
	page := dom.NewPage(geom.R(0, 0, 800, 600))
	root := NewMemoryRoot(page.Body(), FixedSizer(geom.Size{Width: 120, Height: 30}))
	p := New(root)

	m := p.Mount("hello", "tooltip", false)
	if _, err := uuid.Parse(m.ID()); err != nil {
		t.Errorf("layer id %q is not a uuid: %v", m.ID(), err)
	}

	layers := root.Layers()
	if len(layers) != 1 || layers[0].Content != "hello" || layers[0].Class != "tooltip" {
		t.Fatalf("Layers() = %+v", layers)
	}

	r, ok := m.Container().Measure()
	if !ok || r.Size() != (geom.Size{Width: 120, Height: 30}) {
		t.Errorf("container measure = %+v, %v", r, ok)
	}
	if !page.Body().Contains(m.Container()) {
		t.Error("container should be mounted under the body")
	}

	m.Unmount()
	m.Unmount()
	if len(root.Layers()) != 0 {
		t.Error("layer should be removed")
	}
	if _, ok := m.Container().Measure(); ok {
		t.Error("unmounted container should not measure")
	}
	if page.Body().Contains(m.Container()) {
		t.Error("unmounted container should be detached")
	}
}

func TestSetStyleMovesContainer(t *testing.T) {
	page := dom.NewPage(geom.R(0, -100, 800, 2000))
	root := NewMemoryRoot(page.Body(), FixedSizer(geom.Size{Width: 50, Height: 10}))
	m := New(root).Mount("x", "", false)

	m.SetStyle(placement.At(130, 20))

	layers := root.Layers()
	if layers[0].Style.IsEmpty() || layers[0].Style.Top != 130 {
		t.Errorf("stored style = %+v", layers[0].Style)
	}
	r, _ := m.Container().Measure()
	if r != geom.R(20, 30, 50, 10) {
		t.Errorf("container rect = %+v, want document position shifted by the body origin", r)
	}

	box, ok := root.Container(m.ID())
	if !ok || page.Body().HitTest(geom.Point{X: 25, Y: 35}) != box {
		t.Error("hit test should find the positioned layer")
	}

	root.SetStyle("missing", placement.At(1, 1))
}

func TestTextSizer(t *testing.T) {
	s := TextSizer(7, 16, 6)("héllo\nab")
	if s != (geom.Size{Width: 5*7 + 12, Height: 2*16 + 12}) {
		t.Errorf("TextSizer = %+v", s)
	}
}

func TestDetachedRoot(t *testing.T) {
	root := NewMemoryRoot(nil, nil)
	m := New(root).Mount("abc", "", true)
	if !root.Layers()[0].Mask {
		t.Error("mask flag should be kept")
	}
	if _, ok := m.Container().Measure(); !ok {
		t.Error("container should measure")
	}
}
