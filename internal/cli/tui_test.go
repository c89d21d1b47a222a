package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/popover/pkg/config"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/visibility"
)

func newTestDemo(t *testing.T, mode string) *demoModel {
	t.Helper()
	cfg := config.Default()
	cfg.Tooltip.Trigger = mode
	m, err := newDemoModel(cfg, 60, 20)
	if err != nil {
		t.Fatalf("newDemoModel() error: %v", err)
	}
	t.Cleanup(func() { m.tip.Close() })
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDemoLayout(t *testing.T) {
	m := newTestDemo(t, "hover")

	got, _ := m.button.Measure()
	if want := geom.R(24, 7, 11, 3); got != want {
		t.Errorf("button = %+v, want %+v", got, want)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	got, _ = m.button.Measure()
	if want := geom.R(44, 12, 11, 3); got != want {
		t.Errorf("button after resize = %+v, want %+v", got, want)
	}
}

func TestDemoHover(t *testing.T) {
	m := newTestDemo(t, "hover")

	m.moveTo(geom.Point{X: 29, Y: 8})
	if !m.tip.Visible() {
		t.Fatal("hovering the trigger should show the tooltip")
	}
	layers := m.root.Layers()
	if len(layers) != 1 {
		t.Fatalf("mounted layers = %d, want 1", len(layers))
	}
	c, _ := m.root.Container(layers[0].ID)
	if r, _ := c.Measure(); r != geom.R(27, 4, 5, 3) {
		t.Errorf("panel = %+v, want above the trigger", r)
	}

	// Moving onto the panel keeps it open.
	m.moveTo(geom.Point{X: 29, Y: 5})
	if !m.tip.Visible() {
		t.Error("moving onto the panel should keep the tooltip open")
	}

	m.moveTo(geom.Point{X: 2, Y: 2})
	if m.tip.Visible() {
		t.Error("leaving should hide the tooltip")
	}
	if got := strings.Join(m.events, ","); got != "shown,hidden" {
		t.Errorf("events = %q, want shown,hidden", got)
	}
}

func TestDemoHoverDelay(t *testing.T) {
	cfg := config.Default()
	cfg.Tooltip.HoverDelay = 50 * time.Millisecond
	m, err := newDemoModel(cfg, 60, 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { m.tip.Close() })

	if cmd := m.moveTo(geom.Point{X: 29, Y: 8}); cmd == nil {
		t.Fatal("a pending hover should schedule a flush")
	}
	if m.tip.Visible() {
		t.Fatal("tooltip shown before the delay")
	}
	m.Update(flushMsg{})
	if !m.tip.Visible() {
		t.Error("flush should show the tooltip")
	}
}

func TestDemoClick(t *testing.T) {
	m := newTestDemo(t, "click")

	m.moveTo(geom.Point{X: 29, Y: 8})
	if m.tip.Visible() {
		t.Fatal("hover should not open a click tooltip")
	}
	m.Update(key("enter"))
	if !m.tip.Visible() {
		t.Fatal("clicking the trigger should open the tooltip")
	}

	m.moveTo(geom.Point{X: 2, Y: 2})
	m.Update(key("enter"))
	if m.tip.Visible() {
		t.Error("clicking outside should close the tooltip")
	}
}

func TestDemoFocus(t *testing.T) {
	m := newTestDemo(t, "focus")

	m.Update(key("tab"))
	if !m.tip.Visible() {
		t.Fatal("focus should show the tooltip")
	}
	m.Update(key("tab"))
	if m.tip.Visible() {
		t.Error("blur should hide the tooltip")
	}
}

func TestDemoCycle(t *testing.T) {
	m := newTestDemo(t, "hover")

	m.Update(key("m"))
	if m.mode != visibility.Click || m.tip.Mode() != visibility.Click {
		t.Errorf("mode = %v, tooltip mode = %v; want click", m.mode, m.tip.Mode())
	}
	m.Update(key("p"))
	if got := m.tip.Placement().String(); got != "top left" {
		t.Errorf("placement = %q, want top left", got)
	}
	m.Update(key("P"))
	m.Update(key("P"))
	if got := m.tip.Placement().String(); got != "left bottom" {
		t.Errorf("placement = %q, want left bottom", got)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestDemoView(t *testing.T) {
	m := newTestDemo(t, "hover")
	// The top-left border cell is inside the trigger and clear of the label.
	m.moveTo(geom.Point{X: 24, Y: 7})
	if !m.tip.Visible() {
		t.Fatal("hovering the trigger border should show the tooltip")
	}

	view := m.View()
	for _, want := range []string{"[ trigger ]", "top", "mode hover", "visible true"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestGridBox(t *testing.T) {
	g := newGrid(6, 4)
	g.box(geom.R(1, 0, 4, 3), lipgloss.NewStyle(), '╭', '╮', '╰', '╯')
	g.text(2, 1, "ab", lipgloss.NewStyle())
	g.set(10, 10, 'x', lipgloss.NewStyle())

	want := "·╭──╮·\n·│ab│·\n·╰──╯·\n······\n"
	if got := g.plain(); got != want {
		t.Errorf("grid =\n%s\nwant\n%s", got, want)
	}
}
