// Package popup renders a floating layer through a portal and positions it
// once, right after it is mounted.
package popup

import (
	"sync"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/portal"
)

const prefix = "popup"

// PositionFunc computes the style of a freshly mounted container. It
// receives nil when the container could not be mounted.
type PositionFunc func(container dom.Measurable) placement.Style

// Option configures a Popup.
type Option func(*Popup)

// WithPosition sets the position callback. Without one the popup stays
// unstyled.
func WithPosition(fn PositionFunc) Option {
	return func(p *Popup) { p.position = fn }
}

// WithMask renders a backdrop layer beneath the popup.
func WithMask(class string) Option {
	return func(p *Popup) {
		p.mask = true
		p.maskClass = class
	}
}

// WithMaskStyle sets inline style declarations for the backdrop. It is
// mounted as the mask layer's content.
func WithMaskStyle(style map[string]string) Option {
	return func(p *Popup) { p.maskStyle = style }
}

// WithClass sets the container class. Defaults to "popup-container".
func WithClass(class string) Option {
	return func(p *Popup) { p.class = class }
}

// Popup is one floating layer.
type Popup struct {
	portal    *portal.Portal
	content   any
	position  PositionFunc
	class     string
	mask      bool
	maskClass string
	maskStyle map[string]string

	mu      sync.Mutex
	mounted *portal.Mounted
	backing *portal.Mounted
	style   placement.Style
}

// New creates an unmounted popup for content.
func New(p *portal.Portal, content any, opts ...Option) *Popup {
	pp := &Popup{portal: p, content: content, class: prefix + "-container"}
	for _, opt := range opts {
		opt(pp)
	}
	return pp
}

// Mount mounts the popup and applies the computed style. Mounting an
// already mounted popup does nothing.
func (p *Popup) Mount() {
	p.mu.Lock()
	if p.mounted != nil {
		p.mu.Unlock()
		return
	}
	if p.mask {
		class := prefix + "-mask"
		if p.maskClass != "" {
			class += " " + p.maskClass
		}
		p.backing = p.portal.Mount(p.maskStyle, class, true)
	}
	m := p.portal.Mount(p.content, p.class, false)
	p.mounted = m
	p.mu.Unlock()

	var style placement.Style
	if p.position != nil {
		style = p.position(m.Container())
	}
	m.SetStyle(style)

	p.mu.Lock()
	p.style = style
	p.mu.Unlock()
}

// Unmount removes the popup and its mask. It is safe to call on an
// unmounted popup.
func (p *Popup) Unmount() {
	p.mu.Lock()
	m, b := p.mounted, p.backing
	p.mounted, p.backing = nil, nil
	p.style = placement.Style{}
	p.mu.Unlock()

	if m != nil {
		m.Unmount()
	}
	if b != nil {
		b.Unmount()
	}
}

// Mounted reports whether the popup is on screen.
func (p *Popup) Mounted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted != nil
}

// Container returns the mounted container, or nil.
func (p *Popup) Container() portal.Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted == nil {
		return nil
	}
	return p.mounted.Container()
}

// Style returns the style computed at mount time.
func (p *Popup) Style() placement.Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.style
}
