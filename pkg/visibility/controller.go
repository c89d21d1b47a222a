package visibility

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/observability"
)

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler used to defer hover transitions.
// Defaults to a zero-delay [TimerScheduler].
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithLogger sets the logger used for misuse warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOnChange registers a notification for every applied transition of an
// [Internal] controller. [External] controllers notify External.OnChange
// instead and ignore this option.
func WithOnChange(fn func(visible bool)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithObserver registers fn for every change of the effective state, whether
// it came from an interaction or from SetVisible. Relayed requests of an
// External controller do not change the effective state and are not
// observed.
func WithObserver(fn func(visible bool)) Option {
	return func(c *Controller) { c.observer = fn }
}

// WithClickOutside enables click-outside dismissal for [Click] mode. inside
// returns the nodes (trigger, panel) whose descendants do not count as
// outside; it is called on every pointer-down.
func WithClickOutside(doc dom.Document, inside func() []dom.Node) Option {
	return func(c *Controller) {
		c.doc = doc
		c.inside = inside
	}
}

// Controller owns the visibility of one panel instance.
// It is safe for concurrent use; notifications are delivered without any
// lock held, so callbacks may call back into the controller.
type Controller struct {
	mode     Mode
	sched    Scheduler
	logger   *log.Logger
	onChange func(bool)
	observer func(bool)
	doc      dom.Document
	inside   func() []dom.Node

	mu         sync.Mutex
	controlled bool
	visible    bool
	gen        uint64
	cancel     func()
	release    func()
	closed     bool
}

// New creates a controller for mode. A nil src behaves like Internal{}.
func New(mode Mode, src Source, opts ...Option) *Controller {
	c := &Controller{
		mode:   mode,
		sched:  TimerScheduler{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	switch s := src.(type) {
	case External:
		c.controlled = true
		c.visible = s.Visible
		c.onChange = s.OnChange
	case Internal:
		c.visible = s.Default
	}

	c.mu.Lock()
	after := c.syncOutsideLocked()
	c.mu.Unlock()
	run(after)
	return c
}

// Mode returns the interaction mode.
func (c *Controller) Mode() Mode { return c.mode }

// Controlled reports whether the controller relays to an external owner.
func (c *Controller) Controlled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controlled
}

// Visible returns the effective state.
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Pending reports whether a deferred transition is waiting to run.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Listening reports whether the click-outside listener is registered.
func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.release != nil
}

// Handle feeds an interaction event from the trigger element. Events that
// do not belong to the controller's mode are ignored.
func (c *Controller) Handle(ev dom.Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	var after []func()
	switch c.mode {
	case Hover:
		switch ev {
		case dom.PointerEnter:
			c.deferLocked(true)
		case dom.PointerLeave:
			c.deferLocked(false)
		}
	case Click:
		if ev == dom.Click {
			c.cancelPendingLocked()
			after = c.applyLocked(!c.visible)
		}
	case Focus:
		switch ev {
		case dom.Focus:
			c.cancelPendingLocked()
			after = c.applyLocked(true)
		case dom.Blur:
			c.cancelPendingLocked()
			after = c.applyLocked(false)
		}
	}
	c.mu.Unlock()
	run(after)
}

// SetVisible supplies a new controlled value. It overrides the state
// without notifying OnChange; the observer still sees the change.
func (c *Controller) SetVisible(v bool) {
	c.mu.Lock()
	if c.closed || c.visible == v {
		c.mu.Unlock()
		return
	}
	c.visible = v
	after := c.syncOutsideLocked()
	if c.observer != nil {
		obs := c.observer
		after = append(after, func() { obs(v) })
	}
	c.mu.Unlock()
	run(after)
}

// Close cancels any deferred transition and releases the click-outside
// listener. Later events are ignored. Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancelPendingLocked()
	after := c.syncOutsideLocked()
	c.mu.Unlock()
	run(after)
}

// deferLocked replaces any pending transition with one towards v.
func (c *Controller) deferLocked(v bool) {
	c.cancelPendingLocked()
	gen := c.gen
	c.cancel = c.sched.Schedule(func() { c.fire(gen, v) })
}

// cancelPendingLocked cancels the pending transition and invalidates any
// callback that is already past the point of cancellation.
func (c *Controller) cancelPendingLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

func (c *Controller) fire(gen uint64, v bool) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	after := c.applyLocked(v)
	c.mu.Unlock()
	run(after)
}

// applyLocked performs a transition towards v and returns the
// notifications to deliver once the lock is released.
func (c *Controller) applyLocked(v bool) []func() {
	if v == c.visible {
		return nil
	}

	mode, controlled := c.mode.String(), c.controlled
	after := []func(){func() { observability.Visibility().OnTransition(mode, v, controlled) }}

	if c.controlled {
		if c.onChange == nil {
			logger := c.logger
			return append(after, func() {
				logger.Warn("visible is controlled but no OnChange handler was given; transition dropped",
					"mode", mode, "visible", v)
			})
		}
		fn := c.onChange
		return append(after, func() { fn(v) })
	}

	c.visible = v
	after = append(after, c.syncOutsideLocked()...)
	if c.observer != nil {
		obs := c.observer
		after = append(after, func() { obs(v) })
	}
	if c.onChange != nil {
		fn := c.onChange
		after = append(after, func() { fn(v) })
	}
	return after
}

// syncOutsideLocked registers the click-outside listener while a click
// controller is visible and removes it otherwise.
func (c *Controller) syncOutsideLocked() []func() {
	want := c.mode == Click && c.doc != nil && c.visible && !c.closed
	mode := c.mode.String()

	switch {
	case want && c.release == nil:
		c.release = c.doc.OnPointerDown(c.pointerDown)
		return []func(){func() { observability.Visibility().OnListenerAttach(mode) }}
	case !want && c.release != nil:
		c.release()
		c.release = nil
		return []func(){func() { observability.Visibility().OnListenerRelease(mode) }}
	}
	return nil
}

func (c *Controller) pointerDown(target dom.Node) {
	var inside []dom.Node
	if c.inside != nil {
		inside = c.inside()
	}
	for _, n := range inside {
		if n != nil && target != nil && n.Contains(target) {
			return
		}
	}

	c.mu.Lock()
	if c.closed || !c.visible {
		c.mu.Unlock()
		return
	}
	c.cancelPendingLocked()
	after := c.applyLocked(false)
	c.mu.Unlock()
	run(after)
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
