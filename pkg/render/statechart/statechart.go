// Package statechart draws the visibility state machine of a trigger mode.
//
// [ToDOT] turns the transition table of a [visibility.Mode] into Graphviz
// DOT. Deferred transitions (hover) are dashed. [RenderSVG] lays the graph
// out with Graphviz, and [Renderer] adds a cache keyed by the DOT hash.
package statechart

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/visibility"
)

// Options configures DOT generation.
type Options struct {
	// DefaultVisible marks visible rather than hidden as the initial state.
	DefaultVisible bool
	// Controlled draws transitions as requests to the external owner.
	Controlled bool
}

// ToDOT converts the transition table of m to DOT.
func ToDOT(m visibility.Mode, opts Options) string {
	initial := visibility.Hidden
	if opts.DefaultVisible {
		initial = visibility.Visible
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", m.String())
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", "trigger: "+m.String())
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	buf.WriteString("  \"start\" [shape=point, width=0.15, label=\"\"];\n")
	for _, s := range []visibility.State{visibility.Hidden, visibility.Visible} {
		fill := "white"
		if s == visibility.Visible {
			fill = "lightyellow"
		}
		fmt.Fprintf(&buf, "  %q [fillcolor=%s];\n", string(s), fill)
	}

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  \"start\" -> %q;\n", string(initial))
	for _, tr := range visibility.Transitions(m) {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", string(tr.From), string(tr.To), edgeAttrs(tr, opts.Controlled))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(tr visibility.Transition, controlled bool) string {
	label := tr.Event
	if tr.Deferred {
		label += "\\n(next tick)"
	}
	if controlled {
		label += "\\n→ onChange"
	}
	attrs := fmt.Sprintf("label=\"%s\"", label)
	if tr.Deferred {
		attrs += ", style=dashed"
	}
	if controlled {
		attrs += ", color=grey40"
	}
	return attrs
}

// RenderSVG lays out dot with Graphviz and returns the SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render state chart")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// Renderer renders state charts through a cache.
type Renderer struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
	render func(context.Context, string) ([]byte, error)
}

// NewRenderer returns a Renderer backed by c. A nil cache disables caching;
// a nil logger uses log.Default.
func NewRenderer(c cache.Cache, ttl time.Duration, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{cache: c, ttl: ttl, logger: logger, render: RenderSVG}
}

// Render returns the SVG state chart for m and whether it came from the
// cache.
func (r *Renderer) Render(ctx context.Context, m visibility.Mode, opts Options) ([]byte, bool, error) {
	dot := ToDOT(m, opts)
	key := cache.Key("statechart", cache.Hash([]byte(dot)))

	if data, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("state chart cache read failed", "mode", m, "err", err)
	} else if ok {
		r.logger.Debug("state chart cache hit", "mode", m)
		return data, true, nil
	}

	svg, err := r.render(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	if err := r.cache.Set(ctx, key, svg, r.ttl); err != nil {
		r.logger.Warn("state chart cache write failed", "mode", m, "err", err)
	}
	return svg, false, nil
}
