// Package dom defines the capabilities a rendering environment must provide
// for floating panels to be positioned and shown.
//
// The placement and visibility packages never talk to a concrete widget
// tree. A browser bridge, a terminal UI or a test implements these small
// interfaces instead:
//
//   - [Measurable]: report the current geometry of an element, if any
//   - [Node]: answer "is target inside me" for click-outside detection
//   - [EventSink]: deliver interaction events to interested listeners
//   - [Document]: register global pointer-down listeners
//
// [Box] and [Page] are in-memory implementations used by the gallery
// renderer, the terminal demo and tests.
package dom

import "github.com/matzehuels/popover/pkg/geom"

// Event is an interaction event emitted by a trigger element.
type Event int

const (
	PointerEnter Event = iota + 1
	PointerLeave
	Click
	Focus
	Blur
)

var eventNames = map[Event]string{
	PointerEnter: "pointerenter",
	PointerLeave: "pointerleave",
	Click:        "click",
	Focus:        "focus",
	Blur:         "blur",
}

func (e Event) String() string {
	if s, ok := eventNames[e]; ok {
		return s
	}
	return "unknown"
}

// Measurable reports an element's geometry. ok is false when the element is
// not mounted or has not been laid out yet.
type Measurable interface {
	Measure() (r geom.Rect, ok bool)
}

// MeasureFunc adapts a function to [Measurable].
type MeasureFunc func() (geom.Rect, bool)

// Measure calls f.
func (f MeasureFunc) Measure() (geom.Rect, bool) { return f() }

// Fixed returns a Measurable that always reports r.
func Fixed(r geom.Rect) Measurable {
	return MeasureFunc(func() (geom.Rect, bool) { return r, true })
}

// Node is an element in the rendering tree.
type Node interface {
	// Contains reports whether target is the node itself or one of its
	// descendants.
	Contains(target Node) bool
}

// EventSink delivers interaction events. Listeners are additive: attaching
// one never replaces handlers the element already has.
type EventSink interface {
	// Listen registers fn and returns a function that removes it. Calling
	// release more than once is safe.
	Listen(fn func(Event)) (release func())
}

// Element is everything a trigger needs from the element it decorates.
type Element interface {
	Measurable
	Node
	EventSink
}

// Document is the global event surface used for click-outside dismissal.
type Document interface {
	// OnPointerDown registers fn for every pointer-down anywhere in the
	// document. Calling release more than once is safe.
	OnPointerDown(fn func(target Node)) (release func())
}
