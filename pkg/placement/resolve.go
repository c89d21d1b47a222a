package placement

import (
	"math"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/observability"
)

// DefaultMinPanelWidth is the room a panel needs to the right of its trigger
// before a "right" placement is flipped to "left".
const DefaultMinPanelWidth = 35

// Config tunes the flip heuristics.
type Config struct {
	// MinPanelWidth is the right-flip threshold. The right side compares
	// against this constant rather than the measured panel width.
	MinPanelWidth float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{MinPanelWidth: DefaultMinPanelWidth}
}

// Result is the outcome of a resolution.
type Result struct {
	// Requested is the placement asked for.
	Requested Placement `json:"requested"`
	// Placement is the placement used, after flipping.
	Placement Placement `json:"placement"`
	// Flipped is true when Placement.Side differs from Requested.Side.
	Flipped bool `json:"flipped"`
	// Style is the panel's top-left corner in document coordinates.
	Style Style `json:"style"`
}

// Resolver computes panel positions. It is stateless apart from its
// configuration and safe for concurrent use.
type Resolver struct {
	cfg Config
}

// NewResolver creates a resolver with cfg.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Config returns the resolver configuration.
func (r *Resolver) Config() Config { return r.cfg }

// Resolve places a panel of the given size next to trigger.
//
// viewport is the body rectangle: its width and height are the document
// extent and its origin is the body's own offset from the document origin
// (negative when the document is scrolled). The returned style is relative
// to the document root.
//
// A placement that fails Validate resolves to an empty style and is
// reported unchanged. Use Parse to reject bad tokens up front.
func (r *Resolver) Resolve(trigger, viewport geom.Rect, panel geom.Size, p Placement) Result {
	if p.Align == "" {
		p.Align = Center
	}
	if p.Validate() != nil {
		return Result{Requested: p, Placement: p}
	}
	side := r.flip(trigger, viewport, panel, p.Side)

	var top, left float64
	if side.Vertical() {
		if side == Top {
			top = trigger.Y - panel.Height
		} else {
			top = trigger.Bottom()
		}
		left = crossOffset(trigger.X, trigger.Width, panel.Width, p.Align)
	} else {
		if side == Left {
			left = trigger.X - panel.Width
		} else {
			left = trigger.Right()
		}
		top = crossOffset(trigger.Y, trigger.Height, panel.Height, p.Align)
	}

	res := Result{
		Requested: p,
		Placement: Placement{Side: side, Align: p.Align},
		Flipped:   side != p.Side,
		Style:     At(top-viewport.Y, left-viewport.X),
	}
	observability.Placement().OnResolve(res.Requested.String(), res.Placement.String(), res.Flipped)
	return res
}

// flip swaps side for its opposite when the requested side lacks room. Only
// the opposite side is considered and the result is not re-checked.
func (r *Resolver) flip(trigger, viewport geom.Rect, panel geom.Size, side Side) Side {
	scroll := math.Abs(viewport.Y)
	switch side {
	case Left:
		if trigger.X < panel.Width {
			return Right
		}
	case Right:
		if viewport.Width-trigger.Right() < r.cfg.MinPanelWidth {
			return Left
		}
	case Top:
		if panel.Height > trigger.Y+scroll {
			return Bottom
		}
	case Bottom:
		if viewport.Height-trigger.Y-scroll-trigger.Height < panel.Height {
			return Top
		}
	}
	return side
}

// crossOffset aligns a panel of extent size against a trigger spanning
// [start, start+extent) on the cross axis.
func crossOffset(start, extent, size float64, a Align) float64 {
	switch a {
	case Start:
		return start
	case End:
		return start + extent - size
	default:
		return start - (size-extent)/2
	}
}

// ResolveMeasured measures trigger, viewport and panel and resolves p.
// If any of them cannot be measured (nil, unmounted, or not yet laid out)
// the result carries an empty Style and the requested placement.
func (r *Resolver) ResolveMeasured(trigger, viewport, panel dom.Measurable, p Placement) Result {
	empty := Result{Requested: p, Placement: p}

	tr, ok := measure(trigger)
	if !ok {
		observability.Placement().OnUnmeasured("trigger")
		return empty
	}
	vr, ok := measure(viewport)
	if !ok {
		observability.Placement().OnUnmeasured("viewport")
		return empty
	}
	pr, ok := measure(panel)
	if !ok {
		observability.Placement().OnUnmeasured("panel")
		return empty
	}
	return r.Resolve(tr, vr, pr.Size(), p)
}

func measure(m dom.Measurable) (geom.Rect, bool) {
	if m == nil {
		return geom.Rect{}, false
	}
	return m.Measure()
}
