// Package tooltip is the public floating-panel component.
//
// A Tooltip attaches to any [dom.Element]. It shows a [Panel] next to the
// element on hover, click or focus, positioned by a [placement.Resolver]
// relative to a viewport, and mounted through a [portal.Root].
//
//	tip, err := tooltip.New(button, page.Body(), tooltip.Options{
//		Position: "bottom left",
//		Mode:     "click",
//		Content:  "Saved",
//	}, tooltip.WithDocument(page), tooltip.WithRoot(root))
//	if err != nil {
//		return err
//	}
//	defer tip.Close()
package tooltip

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/popup"
	"github.com/matzehuels/popover/pkg/portal"
	"github.com/matzehuels/popover/pkg/trigger"
	"github.com/matzehuels/popover/pkg/visibility"
)

const (
	// DefaultPosition is used when Options.Position is empty.
	DefaultPosition = "top"

	prefix = "tooltip"
)

// Options is the component contract.
type Options struct {
	// Position is one of the twelve placement tokens, e.g. "top" or
	// "left bottom". Empty means DefaultPosition.
	Position string
	// Mode is "hover", "click" or "focus". Empty means hover.
	Mode string
	// Content is the opaque panel payload.
	Content any
	// Source selects internal or external ownership of the visible state.
	// Nil means visibility.Internal{}.
	Source visibility.Source
	// OnChange receives every transition. For an External source without
	// its own OnChange this one is used.
	OnChange func(visible bool)
	// ClassName and Style are passed through to the Panel.
	ClassName string
	Style     map[string]string
}

// Panel is the content mounted into the portal.
type Panel struct {
	ClassName string
	Style     map[string]string
	Content   any
}

// String renders the panel content as text.
func (p Panel) String() string {
	return fmt.Sprint(p.Content)
}

// StyleAttr renders Style as a CSS declaration list with sorted keys.
func (p Panel) StyleAttr() string {
	if len(p.Style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p.Style))
	for k := range p.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s; ", k, p.Style[k])
	}
	return strings.TrimSuffix(b.String(), " ")
}

// Option configures the environment a Tooltip runs in.
type Option func(*env)

type env struct {
	root      portal.Root
	doc       dom.Document
	sched     visibility.Scheduler
	resolver  *placement.Resolver
	logger    *log.Logger
	mask      string
	maskStyle map[string]string
	masked    bool
}

// WithRoot sets the portal root. Defaults to a detached [portal.MemoryRoot].
func WithRoot(r portal.Root) Option {
	return func(e *env) { e.root = r }
}

// WithDocument enables click-outside dismissal in click mode.
func WithDocument(d dom.Document) Option {
	return func(e *env) { e.doc = d }
}

// WithScheduler sets the scheduler for deferred hover transitions.
func WithScheduler(s visibility.Scheduler) Option {
	return func(e *env) { e.sched = s }
}

// WithResolver sets the position resolver.
func WithResolver(r *placement.Resolver) Option {
	return func(e *env) { e.resolver = r }
}

// WithLogger sets the logger for misuse warnings.
func WithLogger(l *log.Logger) Option {
	return func(e *env) { e.logger = l }
}

// WithMask mounts a backdrop beneath the panel.
func WithMask(class string) Option {
	return func(e *env) {
		e.masked = true
		e.mask = class
	}
}

// WithMaskStyle mounts a backdrop with inline style declarations.
func WithMaskStyle(style map[string]string) Option {
	return func(e *env) {
		e.masked = true
		e.maskStyle = style
	}
}

// Tooltip is one mounted-on-demand panel bound to a trigger element.
type Tooltip struct {
	element   dom.Element
	viewport  dom.Measurable
	placement placement.Placement
	mode      visibility.Mode
	resolver  *placement.Resolver
	panel     Panel
	trigger   *trigger.Trigger

	mu     sync.Mutex
	result placement.Result
}

// New attaches a tooltip to element. viewport is usually the document
// body. Unknown positions and modes are rejected.
func New(element dom.Element, viewport dom.Measurable, opts Options, options ...Option) (*Tooltip, error) {
	pos := opts.Position
	if pos == "" {
		pos = DefaultPosition
	}
	p, err := placement.Parse(pos)
	if err != nil {
		return nil, err
	}

	mode := visibility.Hover
	if opts.Mode != "" {
		if mode, err = visibility.ParseMode(opts.Mode); err != nil {
			return nil, err
		}
	}

	var e env
	for _, opt := range options {
		opt(&e)
	}
	if e.root == nil {
		e.root = portal.NewMemoryRoot(nil, nil)
	}
	if e.resolver == nil {
		e.resolver = placement.NewResolver(placement.DefaultConfig())
	}

	class := prefix + "-content"
	if opts.ClassName != "" {
		class += " " + opts.ClassName
	}

	t := &Tooltip{
		element:   element,
		viewport:  viewport,
		placement: p,
		mode:      mode,
		resolver:  e.resolver,
		panel:     Panel{ClassName: class, Style: opts.Style, Content: opts.Content},
		result:    placement.Result{Requested: p, Placement: p},
	}

	popOpts := []popup.Option{
		popup.WithClass(prefix + "-container"),
		popup.WithPosition(t.position),
	}
	if e.masked {
		popOpts = append(popOpts, popup.WithMask(e.mask), popup.WithMaskStyle(e.maskStyle))
	}
	pop := popup.New(portal.New(e.root), t.panel, popOpts...)

	var vopts []visibility.Option
	if e.sched != nil {
		vopts = append(vopts, visibility.WithScheduler(e.sched))
	}
	if e.logger != nil {
		vopts = append(vopts, visibility.WithLogger(e.logger))
	}

	src := opts.Source
	switch s := src.(type) {
	case nil:
		src = visibility.Internal{}
	case visibility.External:
		if s.OnChange == nil {
			s.OnChange = opts.OnChange
			src = s
		}
	}
	if _, internal := src.(visibility.Internal); internal && opts.OnChange != nil {
		vopts = append(vopts, visibility.WithOnChange(opts.OnChange))
	}

	topts := []trigger.Option{trigger.WithControllerOptions(vopts...)}
	if e.doc != nil {
		topts = append(topts, trigger.WithDocument(e.doc))
	}
	t.trigger = trigger.New(element, pop, mode, src, topts...)
	return t, nil
}

// position measures the trigger, viewport and mounted container and
// resolves the panel style.
func (t *Tooltip) position(container dom.Measurable) placement.Style {
	res := t.resolver.ResolveMeasured(t.element, t.viewport, container, t.placement)
	t.mu.Lock()
	t.result = res
	t.mu.Unlock()
	return res.Style
}

// Placement returns the requested placement.
func (t *Tooltip) Placement() placement.Placement { return t.placement }

// Mode returns the interaction mode.
func (t *Tooltip) Mode() visibility.Mode { return t.mode }

// Panel returns the panel handed to the portal.
func (t *Tooltip) Panel() Panel { return t.panel }

// Visible returns the effective visible state.
func (t *Tooltip) Visible() bool { return t.trigger.Visible() }

// SetVisible supplies a new controlled value.
func (t *Tooltip) SetVisible(v bool) { t.trigger.SetVisible(v) }

// Result returns the most recent resolution. Before the first mount it
// carries the requested placement and an empty style.
func (t *Tooltip) Result() placement.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Close detaches the tooltip and unmounts its panel.
func (t *Tooltip) Close() { t.trigger.Close() }
