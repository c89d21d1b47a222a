// Package placement computes where a floating panel should be drawn relative
// to the element that triggered it.
//
// # Placements
//
// A [Placement] combines a [Side] (where the panel sits relative to the
// trigger) with an [Align] along the cross axis. Twelve tokens are
// recognised:
//
//	top      top left      top right
//	bottom   bottom left   bottom right
//	left     left top      left bottom
//	right    right top     right bottom
//
// The second word must lie on the cross axis of the first, so "top bottom"
// or "left right" are rejected by [Parse] with an INVALID_PLACEMENT error.
//
// # Resolution
//
// [Resolver.Resolve] takes the trigger rectangle, the viewport (body)
// rectangle and the panel size and returns the panel's top-left corner in
// document coordinates. When the requested side has too little room the
// panel is flipped once to the opposite side; no other sides are tried.
//
//	r := placement.NewResolver(placement.DefaultConfig())
//	res := r.Resolve(
//	    geom.R(100, 50, 40, 20),   // trigger
//	    geom.R(0, 0, 800, 600),    // viewport
//	    geom.Size{Width: 120, Height: 30},
//	    placement.MustParse("top"),
//	)
//	// res.Style == placement.At(20, 60)
//
// When measurements are not yet available, [Resolver.ResolveMeasured]
// returns an empty [Style] and the panel keeps its default position until
// a later measurement succeeds.
package placement
