// Package trigger binds a visibility controller to a trigger element and a
// popup.
//
// Events from the element's [dom.EventSink] drive the controller. Whenever
// the effective state changes the popup is mounted or unmounted to match.
// In hover mode, pointer events on the mounted panel are forwarded as well,
// so moving from the trigger onto the panel keeps it open.
package trigger

import (
	"sync"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/popup"
	"github.com/matzehuels/popover/pkg/visibility"
)

// Option configures a Trigger.
type Option func(*config)

type config struct {
	doc      dom.Document
	observer func(bool)
	vopts    []visibility.Option
}

// WithDocument enables click-outside dismissal against doc.
func WithDocument(doc dom.Document) Option {
	return func(c *config) { c.doc = doc }
}

// WithObserver registers fn for every effective state change. It runs after
// the popup has been mounted or unmounted.
func WithObserver(fn func(visible bool)) Option {
	return func(c *config) { c.observer = fn }
}

// WithControllerOptions passes opts to the underlying controller.
func WithControllerOptions(opts ...visibility.Option) Option {
	return func(c *config) { c.vopts = append(c.vopts, opts...) }
}

// Trigger owns one controller and one popup.
type Trigger struct {
	element  dom.Element
	popup    *popup.Popup
	ctrl     *visibility.Controller
	observer func(bool)

	mu           sync.Mutex
	release      func()
	releasePanel func()
	closed       bool
}

// New wires element to a new controller for mode and src.
func New(element dom.Element, p *popup.Popup, mode visibility.Mode, src visibility.Source, opts ...Option) *Trigger {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Trigger{element: element, popup: p, observer: cfg.observer}

	vopts := append([]visibility.Option{}, cfg.vopts...)
	vopts = append(vopts, visibility.WithObserver(t.changed))
	if cfg.doc != nil {
		vopts = append(vopts, visibility.WithClickOutside(cfg.doc, t.inside))
	}
	t.ctrl = visibility.New(mode, src, vopts...)

	t.mu.Lock()
	t.release = element.Listen(t.ctrl.Handle)
	t.mu.Unlock()

	t.sync()
	return t
}

// Controller returns the underlying controller.
func (t *Trigger) Controller() *visibility.Controller { return t.ctrl }

// Popup returns the managed popup.
func (t *Trigger) Popup() *popup.Popup { return t.popup }

// Visible returns the effective state.
func (t *Trigger) Visible() bool { return t.ctrl.Visible() }

// SetVisible supplies a new controlled value.
func (t *Trigger) SetVisible(v bool) { t.ctrl.SetVisible(v) }

// Close detaches every listener and unmounts the popup. It is idempotent.
func (t *Trigger) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	release, releasePanel := t.release, t.releasePanel
	t.release, t.releasePanel = nil, nil
	t.mu.Unlock()

	if release != nil {
		release()
	}
	t.ctrl.Close()
	if releasePanel != nil {
		releasePanel()
	}
	t.popup.Unmount()
}

func (t *Trigger) changed(v bool) {
	t.sync()
	if t.observer != nil {
		t.observer(v)
	}
}

// sync mounts or unmounts the popup to match the controller. It reads the
// current state rather than trusting the notified value, so notifications
// delivered out of order still converge.
func (t *Trigger) sync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	if !t.ctrl.Visible() {
		if t.releasePanel != nil {
			t.releasePanel()
			t.releasePanel = nil
		}
		t.popup.Unmount()
		return
	}

	t.popup.Mount()
	if t.ctrl.Mode() != visibility.Hover || t.releasePanel != nil {
		return
	}
	if sink, ok := t.popup.Container().(dom.EventSink); ok {
		t.releasePanel = sink.Listen(t.panelEvent)
	}
}

func (t *Trigger) panelEvent(ev dom.Event) {
	if ev == dom.PointerEnter || ev == dom.PointerLeave {
		t.ctrl.Handle(ev)
	}
}

func (t *Trigger) inside() []dom.Node {
	nodes := []dom.Node{t.element}
	if c := t.popup.Container(); c != nil {
		nodes = append(nodes, c)
	}
	return nodes
}
