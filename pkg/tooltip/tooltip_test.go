package tooltip

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/portal"
	"github.com/matzehuels/popover/pkg/visibility"
)

type harness struct {
	page   *dom.Page
	button *dom.Box
	root   *portal.MemoryRoot
	loop   *visibility.Loop
}

func newHarness(button geom.Rect) *harness {
	e := &harness{
		page: dom.NewPage(geom.R(0, 0, 800, 600)),
		loop: visibility.NewLoop(),
	}
	e.button = e.page.Body().Append(dom.NewBox("button", button))
	e.root = portal.NewMemoryRoot(e.page.Body(), portal.FixedSizer(geom.Size{Width: 120, Height: 30}))
	return e
}

func (e *harness) tooltip(t *testing.T, opts Options, extra ...Option) *Tooltip {
	t.Helper()
	base := []Option{WithRoot(e.root), WithDocument(e.page), WithScheduler(e.loop)}
	tip, err := New(e.button, e.page.Body(), opts, append(base, extra...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(tip.Close)
	return tip
}

func TestHoverPositionsAboveTrigger(t *testing.T) {
	e := newHarness(geom.R(100, 50, 40, 20))
	tip := e.tooltip(t, Options{Content: "hello"})

	e.button.Dispatch(dom.PointerEnter)
	e.loop.Flush()

	if !tip.Visible() {
		t.Fatal("tooltip should be visible after hover")
	}
	want := placement.Result{
		Requested: placement.MustParse("top"),
		Placement: placement.MustParse("top"),
		Style:     placement.At(20, 60),
	}
	if diff := cmp.Diff(want, tip.Result(), cmp.AllowUnexported(placement.Style{})); diff != "" {
		t.Errorf("Result() mismatch (-want +got):\n%s", diff)
	}

	layers := e.root.Layers()
	if len(layers) != 1 {
		t.Fatalf("layers = %d, want 1", len(layers))
	}
	box, _ := e.root.Container(layers[0].ID)
	if r, _ := box.Measure(); r != geom.R(60, 20, 120, 30) {
		t.Errorf("container rect = %+v", r)
	}
	panel, ok := layers[0].Content.(Panel)
	if !ok || panel.ClassName != "tooltip-content" || panel.String() != "hello" {
		t.Errorf("layer content = %#v", layers[0].Content)
	}
	if layers[0].Class != "tooltip-container" {
		t.Errorf("layer class = %q", layers[0].Class)
	}
}

func TestFlipsWhenNoRoomOnTheLeft(t *testing.T) {
	e := newHarness(geom.R(10, 50, 40, 20))
	tip := e.tooltip(t, Options{Position: "left", Mode: "click"})

	e.button.Dispatch(dom.Click)

	got := tip.Result()
	if !got.Flipped || got.Placement.Side != placement.Right {
		t.Fatalf("Result() = %+v, want flipped to right", got)
	}
	if got.Style != placement.At(45, 50) {
		t.Errorf("Style = %+v, want top 45 left 50", got.Style)
	}
}

func TestUnmeasuredTriggerRendersUnstyled(t *testing.T) {
	e := newHarness(geom.R(100, 50, 40, 20))
	e.button.SetMounted(false)
	tip := e.tooltip(t, Options{Mode: "focus"})

	e.button.Dispatch(dom.Focus)
	if !tip.Visible() {
		t.Fatal("focus should show")
	}
	if !tip.Result().Style.IsEmpty() || !e.root.Layers()[0].Style.IsEmpty() {
		t.Error("unmeasured trigger should leave the panel unstyled")
	}
}

func TestInvalidOptions(t *testing.T) {
	e := newHarness(geom.R(0, 0, 10, 10))
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknown side", Options{Position: "middle"}, errors.ErrCodeInvalidPlacement},
		{"parallel align", Options{Position: "top bottom"}, errors.ErrCodeInvalidPlacement},
		{"unknown mode", Options{Mode: "drag"}, errors.ErrCodeInvalidTrigger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip, err := New(e.button, e.page.Body(), tt.opts)
			if err == nil {
				tip.Close()
				t.Fatal("New() should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestControlledTooltipIsFrozen(t *testing.T) {
	e := newHarness(geom.R(100, 50, 40, 20))
	var requested []bool
	tip := e.tooltip(t, Options{
		Mode:     "click",
		Source:   visibility.External{Visible: true},
		OnChange: func(v bool) { requested = append(requested, v) },
	})

	e.button.Dispatch(dom.Click)
	e.page.PointerDownAt(geom.Point{X: 700, Y: 500})
	e.button.Dispatch(dom.Click)

	if !tip.Visible() || len(e.root.Layers()) != 1 {
		t.Fatal("controlled tooltip must stay visible until SetVisible")
	}
	if len(requested) == 0 || requested[0] {
		t.Errorf("requested = %v, want hide requests", requested)
	}

	tip.SetVisible(false)
	if tip.Visible() || len(e.root.Layers()) != 0 {
		t.Error("SetVisible(false) should hide")
	}
}

func TestControlledWithoutOnChangeWarns(t *testing.T) {
	e := newHarness(geom.R(100, 50, 40, 20))
	var buf bytes.Buffer
	tip := e.tooltip(t, Options{Mode: "click", Source: visibility.External{}}, WithLogger(log.New(&buf)))

	e.button.Dispatch(dom.Click)
	if tip.Visible() {
		t.Error("controlled tooltip must not show itself")
	}
	if !strings.Contains(buf.String(), "OnChange") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestInternalOnChangeAndMask(t *testing.T) {
	e := newHarness(geom.R(100, 50, 40, 20))
	var changes []bool
	tip := e.tooltip(t, Options{
		Mode:      "click",
		ClassName: "dark",
		Style:     map[string]string{"color": "red", "border": "none"},
		OnChange:  func(v bool) { changes = append(changes, v) },
	}, WithMask("dim"))

	e.button.Dispatch(dom.Click)
	e.button.Dispatch(dom.Click)
	if diff := cmp.Diff([]bool{true, false}, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	e.button.Dispatch(dom.Click)
	layers := e.root.Layers()
	if len(layers) != 2 || !layers[0].Mask {
		t.Fatalf("layers = %+v, want mask then panel", layers)
	}
	if got := tip.Panel().StyleAttr(); got != "border: none; color: red;" {
		t.Errorf("StyleAttr() = %q", got)
	}
	if tip.Panel().ClassName != "tooltip-content dark" {
		t.Errorf("ClassName = %q", tip.Panel().ClassName)
	}
}

func TestMaskBackdropDismisses(t *testing.T) {
	e := newHarness(geom.R(100, 50, 40, 20))
	tip := e.tooltip(t, Options{Mode: "click"}, WithMaskStyle(map[string]string{"opacity": "0.4"}))

	e.button.Dispatch(dom.Click)
	layers := e.root.Layers()
	if len(layers) != 2 || !layers[0].Mask {
		t.Fatalf("layers = %+v, want mask then panel", layers)
	}
	if layers[0].Class != "popup-mask" {
		t.Errorf("mask class = %q", layers[0].Class)
	}
	mask, _ := e.root.Container(layers[0].ID)
	if r, _ := mask.Measure(); r != geom.R(0, 0, 800, 600) {
		t.Errorf("mask = %+v, want the whole page", r)
	}

	// Pressing anywhere away from the panel lands on the backdrop.
	e.page.PointerDownAt(geom.Point{X: 700, Y: 500})
	if tip.Visible() {
		t.Error("pressing the backdrop should close the tooltip")
	}
}
