// Package gallery renders a sheet with one sample trigger per placement and
// its tooltip, positioned by the real resolver.
//
// Every panel is produced by mounting a [tooltip.Tooltip] into a shared
// [portal.MemoryRoot] on an in-memory page, so what the sheet shows is
// exactly what the component computes, flips included.
package gallery

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/errors"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/portal"
	"github.com/matzehuels/popover/pkg/tooltip"
	"github.com/matzehuels/popover/pkg/visibility"
)

// Options configures the sheet.
type Options struct {
	// Placements to draw. Defaults to placement.All().
	Placements []placement.Placement
	// Columns per row. Defaults to 4.
	Columns int
	// Cell is the area reserved per placement. Defaults to 240x160.
	Cell geom.Size
	// Trigger is the sample trigger size. Defaults to 72x28.
	Trigger geom.Size
	// Resolver positions the panels. Defaults to the standard resolver.
	Resolver *placement.Resolver
	// Sizer measures panel content. Defaults to portal.TextSizer(7, 16, 6).
	Sizer portal.Sizer
	// Title is drawn above the sheet when set.
	Title string
}

func (o *Options) defaults() {
	if len(o.Placements) == 0 {
		o.Placements = placement.All()
	}
	if o.Columns <= 0 {
		o.Columns = 4
	}
	if o.Cell.IsZero() {
		o.Cell = geom.Size{Width: 240, Height: 160}
	}
	if o.Trigger.IsZero() {
		o.Trigger = geom.Size{Width: 72, Height: 28}
	}
	if o.Resolver == nil {
		o.Resolver = placement.NewResolver(placement.DefaultConfig())
	}
	if o.Sizer == nil {
		o.Sizer = portal.TextSizer(7, 16, 6)
	}
}

// Entry is one laid-out sample.
type Entry struct {
	Result  placement.Result `json:"result"`
	Trigger geom.Rect        `json:"trigger"`
	Panel   geom.Rect        `json:"panel"`
}

// Sheet is a laid-out gallery.
type Sheet struct {
	Size    geom.Size `json:"size"`
	Title   string    `json:"title,omitempty"`
	Entries []Entry   `json:"entries"`
}

const titleHeight = 36

// Layout mounts one tooltip per placement and records where each panel
// ended up.
func Layout(opts Options) (Sheet, error) {
	opts.defaults()
	if err := opts.Cell.Validate(); err != nil {
		return Sheet{}, err
	}
	if err := opts.Trigger.Validate(); err != nil {
		return Sheet{}, err
	}
	if opts.Trigger.Width > opts.Cell.Width || opts.Trigger.Height > opts.Cell.Height {
		return Sheet{}, errors.New(errors.ErrCodeInvalidGeometry, "trigger %gx%g does not fit cell %gx%g",
			opts.Trigger.Width, opts.Trigger.Height, opts.Cell.Width, opts.Cell.Height)
	}

	top := 0.0
	if opts.Title != "" {
		top = titleHeight
	}
	rows := (len(opts.Placements) + opts.Columns - 1) / opts.Columns
	size := geom.Size{
		Width:  float64(opts.Columns) * opts.Cell.Width,
		Height: top + float64(rows)*opts.Cell.Height,
	}

	page := dom.NewPage(size.At(geom.Point{}))
	root := portal.NewMemoryRoot(page.Body(), opts.Sizer)

	tips := make([]*tooltip.Tooltip, 0, len(opts.Placements))
	defer func() {
		for _, tip := range tips {
			tip.Close()
		}
	}()

	sheet := Sheet{Size: size, Title: opts.Title}
	for i, p := range opts.Placements {
		col, row := i%opts.Columns, i/opts.Columns
		cell := geom.R(float64(col)*opts.Cell.Width, top+float64(row)*opts.Cell.Height, opts.Cell.Width, opts.Cell.Height)
		trig := geom.R(
			cell.CenterX()-opts.Trigger.Width/2,
			cell.CenterY()-opts.Trigger.Height/2,
			opts.Trigger.Width, opts.Trigger.Height,
		)
		box := page.Body().Append(dom.NewBox("trigger:"+p.String(), trig))

		tip, err := tooltip.New(box, page.Body(), tooltip.Options{
			Position: p.String(),
			Mode:     visibility.Focus.String(),
			Content:  p.String(),
			Source:   visibility.Internal{Default: true},
		}, tooltip.WithRoot(root), tooltip.WithResolver(opts.Resolver))
		if err != nil {
			return Sheet{}, err
		}
		tips = append(tips, tip)

		layers := root.Layers()
		c, ok := root.Container(layers[len(layers)-1].ID)
		if !ok {
			return Sheet{}, errors.New(errors.ErrCodeInternal, "panel for %s was not mounted", p)
		}
		panel, _ := c.Measure()
		sheet.Entries = append(sheet.Entries, Entry{Result: tip.Result(), Trigger: trig, Panel: panel})
	}
	return sheet, nil
}

const sheetCSS = `
    .sheet { fill: #fafafa; }
    .cell { fill: none; stroke: #e5e5e5; }
    .trigger { fill: #4f46e5; rx: 4; cursor: pointer; }
    .trigger-text { fill: white; font: 11px sans-serif; pointer-events: none; }
    .panel rect { fill: #1f2937; rx: 4; }
    .panel text { fill: white; font: 12px monospace; }
    .panel.flipped rect { fill: #b45309; }
    .panel { transition: opacity 0.15s ease; }
    .sheet-root.focus .panel { opacity: 0.15; }
    .sheet-root.focus .panel.active { opacity: 1; }
    .title { font: bold 16px sans-serif; fill: #111827; }`

const sheetJS = `
    const root = document.querySelector('.sheet-root');
    document.querySelectorAll('.trigger').forEach(el => {
      const panel = document.querySelector('.panel[data-for="' + el.dataset.entry + '"]');
      if (!panel) return;
      el.addEventListener('mouseenter', () => { root.classList.add('focus'); panel.classList.add('active'); });
      el.addEventListener('mouseleave', () => { root.classList.remove('focus'); panel.classList.remove('active'); });
    });`

// RenderSVG draws a laid-out sheet. With interactive set, hovering a
// trigger highlights its panel.
func RenderSVG(s Sheet, interactive bool) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Size.Width, s.Size.Height, s.Size.Width, s.Size.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", sheetCSS)
	buf.WriteString(`  <g class="sheet-root">` + "\n")
	fmt.Fprintf(&buf, `    <rect class="sheet" x="0" y="0" width="%.1f" height="%.1f"/>`+"\n", s.Size.Width, s.Size.Height)
	if s.Title != "" {
		fmt.Fprintf(&buf, `    <text class="title" x="12" y="24">%s</text>`+"\n", escape(s.Title))
	}

	for i, e := range s.Entries {
		renderEntry(&buf, i, e)
	}
	buf.WriteString("  </g>\n")

	if interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", sheetJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEntry(buf *bytes.Buffer, i int, e Entry) {
	token := e.Result.Requested.String()
	t := e.Trigger
	fmt.Fprintf(buf, `    <g class="entry" data-placement="%s">`+"\n", escape(token))
	fmt.Fprintf(buf, `      <rect class="trigger" data-entry="%d" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		i, t.X, t.Y, t.Width, t.Height)
	fmt.Fprintf(buf, `      <text class="trigger-text" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle">trigger</text>`+"\n",
		t.CenterX(), t.CenterY())

	class := "panel"
	label := token
	if e.Result.Flipped {
		class += " flipped"
		label += " → " + e.Result.Placement.String()
	}
	p := e.Panel
	fmt.Fprintf(buf, `      <g class="%s" data-for="%d">`+"\n", class, i)
	fmt.Fprintf(buf, `        <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n", p.X, p.Y, p.Width, p.Height)
	fmt.Fprintf(buf, `        <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		p.CenterX(), p.CenterY(), escape(label))
	buf.WriteString("      </g>\n")
	buf.WriteString("    </g>\n")
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Render lays out and draws the sheet in one step.
func Render(opts Options, interactive bool) ([]byte, error) {
	s, err := Layout(opts)
	if err != nil {
		return nil, err
	}
	return RenderSVG(s, interactive), nil
}
