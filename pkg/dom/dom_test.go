package dom

import (
	"testing"

	"github.com/matzehuels/popover/pkg/geom"
)

func TestBoxContains(t *testing.T) {
	body := NewBox("body", geom.R(0, 0, 800, 600))
	form := body.Append(NewBox("form", geom.R(10, 10, 200, 100)))
	button := form.Append(NewBox("button", geom.R(20, 20, 40, 20)))
	other := body.Append(NewBox("other", geom.R(300, 300, 10, 10)))

	tests := []struct {
		name   string
		node   *Box
		target Node
		want   bool
	}{
		{"self", button, button, true},
		{"child", form, button, true},
		{"grandchild", body, button, true},
		{"sibling", other, button, false},
		{"parent is not inside child", button, form, false},
		{"nil target", body, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Contains(tt.target); got != tt.want {
				t.Errorf("Contains() = %v, want %v", got, tt.want)
			}
		})
	}

	form.Remove(button)
	if body.Contains(button) {
		t.Error("removed box should no longer be contained")
	}
}

func TestBoxMeasure(t *testing.T) {
	b := NewBox("b", geom.R(1, 2, 3, 4))
	r, ok := b.Measure()
	if !ok || r != geom.R(1, 2, 3, 4) {
		t.Errorf("Measure() = %+v, %v", r, ok)
	}

	b.SetMounted(false)
	if _, ok := b.Measure(); ok {
		t.Error("unmounted box should not measure")
	}
}

func TestBoxListen(t *testing.T) {
	b := NewBox("b", geom.R(0, 0, 1, 1))

	var got []Event
	release := b.Listen(func(ev Event) { got = append(got, ev) })
	b.Dispatch(PointerEnter)
	b.Dispatch(Click)

	release()
	release()
	b.Dispatch(Blur)

	if len(got) != 2 || got[0] != PointerEnter || got[1] != Click {
		t.Errorf("events = %v", got)
	}
	if b.Listeners() != 0 {
		t.Errorf("Listeners() = %d after release", b.Listeners())
	}
}

func TestBoxListenReleaseDuringDispatch(t *testing.T) {
	b := NewBox("b", geom.R(0, 0, 1, 1))

	calls := 0
	var release func()
	release = b.Listen(func(Event) {
		calls++
		release()
	})
	b.Dispatch(Click)
	b.Dispatch(Click)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestHitTest(t *testing.T) {
	page := NewPage(geom.R(0, 0, 100, 100))
	a := page.Body().Append(NewBox("a", geom.R(10, 10, 50, 50)))
	b := page.Body().Append(NewBox("b", geom.R(40, 40, 50, 50)))

	if hit := page.Body().HitTest(geom.Point{X: 15, Y: 15}); hit != a {
		t.Errorf("HitTest(15,15) = %v, want a", hit)
	}
	if hit := page.Body().HitTest(geom.Point{X: 45, Y: 45}); hit != b {
		t.Errorf("overlap should resolve to the later box, got %v", hit)
	}
	if hit := page.Body().HitTest(geom.Point{X: 5, Y: 5}); hit != page.Body() {
		t.Errorf("HitTest(5,5) = %v, want body", hit)
	}
	if hit := page.Body().HitTest(geom.Point{X: 500, Y: 5}); hit != nil {
		t.Errorf("HitTest outside page = %v, want nil", hit)
	}
}

func TestPagePointerDown(t *testing.T) {
	page := NewPage(geom.R(0, 0, 100, 100))
	btn := page.Body().Append(NewBox("btn", geom.R(0, 0, 10, 10)))

	var targets []Node
	release := page.OnPointerDown(func(n Node) { targets = append(targets, n) })
	if page.Listeners() != 1 {
		t.Fatalf("Listeners() = %d, want 1", page.Listeners())
	}

	page.PointerDownAt(geom.Point{X: 5, Y: 5})
	page.PointerDownAt(geom.Point{X: 500, Y: 500})
	release()
	release()
	page.PointerDown(btn)

	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0] != Node(btn) {
		t.Errorf("first target = %v, want btn", targets[0])
	}
	if targets[1] != nil {
		t.Errorf("press outside the page should report a nil target, got %v", targets[1])
	}
	if page.Listeners() != 0 {
		t.Errorf("Listeners() = %d after release", page.Listeners())
	}
}

func TestEventString(t *testing.T) {
	if PointerEnter.String() != "pointerenter" || Blur.String() != "blur" {
		t.Error("unexpected event names")
	}
	if Event(99).String() != "unknown" {
		t.Error("unknown events should stringify as unknown")
	}
}
