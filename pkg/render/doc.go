// Package render holds the artifact renderers for popover and the shared
// format conversion they use.
//
// Two renderers live in subpackages:
//
//   - [statechart] draws the visibility state machine of each trigger mode
//     with Graphviz.
//   - [gallery] lays out all twelve placements around sample triggers, using
//     real tooltips, and writes a self-contained interactive SVG.
//
// Both produce SVG. [Export] converts SVG to PNG or PDF through the
// external rsvg-convert tool (from librsvg).
//
//	svg, err := statechart.RenderSVG(ctx, statechart.ToDOT(visibility.Click))
//	png, err := render.Export(svg, render.FormatPNG, 2)
//
// [statechart]: github.com/matzehuels/popover/pkg/render/statechart
// [gallery]: github.com/matzehuels/popover/pkg/render/gallery
package render
