// Package pkg provides the core libraries for popover, a positioning and
// visibility engine for tooltips and other floating panels.
//
// # Overview
//
// A floating panel is shown next to a trigger element. Popover decides where
// the panel goes, flipping it to the opposite side when the viewport has no
// room, and when it is visible, following the hover, click or focus
// interaction of the trigger. The pkg directory is organized bottom-up:
//
//  1. [geom] and [dom] - Rectangles, measurable elements and events
//  2. [placement] - Placement tokens and the position resolver
//  3. [visibility] - The show/hide state machine of each trigger mode
//  4. [portal] and [popup] - Mounting panel content outside the trigger
//  5. [trigger] and [tooltip] - Wiring an element to a controller and popup
//  6. [render] - Placement galleries and state charts (SVG/PNG/PDF)
//
// # Architecture
//
// A tooltip combines the layers like this:
//
//	trigger element events
//	         ↓
//	    [visibility] controller (hover / click / focus)
//	         ↓ visible
//	    [popup] mounts content through a [portal]
//	         ↓ container measured
//	    [placement] resolver computes top/left
//	         ↓
//	    container style applied
//
// # Quick Start
//
// Attach a tooltip to a button on an in-memory page:
//
//	page := dom.NewPage(geom.R(0, 0, 800, 600))
//	button := page.Body().Append(dom.NewBox("button", geom.R(100, 50, 40, 20)))
//
//	tip, err := tooltip.New(button, page.Body(), tooltip.Options{
//	    Position: "left top",
//	    Mode:     "click",
//	    Content:  "Saved",
//	}, tooltip.WithDocument(page))
//	if err != nil {
//	    return err
//	}
//	defer tip.Close()
//
//	button.Dispatch(dom.Click)
//	fmt.Println(tip.Result().Style.CSS()) // top: 50px; left: 140px;
//
// Resolve a position without any components:
//
//	r := placement.NewResolver(placement.DefaultConfig())
//	res := r.Resolve(trigger, viewport, geom.Size{Width: 120, Height: 30}, placement.MustParse("top"))
//
// # Supporting Packages
//
// [config] - TOML configuration for resolver tuning and CLI defaults.
//
// [cache] - File, memory and null caches for rendered state charts.
//
// [errors] - Coded errors shared by parsers, the CLI and the HTTP API.
//
// [observability] - Hooks for resolver and controller activity.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/placement/...    # Specific package
package pkg
