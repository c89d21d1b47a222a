package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/popover/pkg/config"
	"github.com/matzehuels/popover/pkg/dom"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/portal"
	"github.com/matzehuels/popover/pkg/tooltip"
	"github.com/matzehuels/popover/pkg/visibility"
)

const (
	demoStatusLines = 3
	demoLabel       = "[ trigger ]"
	demoMaxEvents   = 4
)

var (
	demoButtonStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	demoPanelStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	demoCursorStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	demoGridStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// demoModel drives a real tooltip on an in-memory page where one terminal
// cell is one unit of geometry. The pointer is moved with the keyboard.
// Deferred hover transitions run on a Loop. It is flushed after every key,
// or after the configured hover delay when one is set.
type demoModel struct {
	cfg      config.Config
	resolver *placement.Resolver
	width    int
	height   int

	page   *dom.Page
	button *dom.Box
	root   *portal.MemoryRoot
	loop   *visibility.Loop
	tip    *tooltip.Tooltip

	mode    visibility.Mode
	pos     int
	cursor  geom.Point
	hover   *dom.Box
	focused bool
	events  []string
}

func newDemoModel(cfg config.Config, width, height int) (*demoModel, error) {
	p, err := placement.Parse(cfg.Tooltip.Position)
	if err != nil {
		return nil, err
	}
	m := &demoModel{
		cfg:      cfg,
		resolver: placement.NewResolver(cfg.Resolver()),
		loop:     visibility.NewLoop(),
		mode:     cfg.Mode(),
		cursor:   geom.Point{X: 2, Y: 2},
	}
	for i, q := range placement.All() {
		if q == p {
			m.pos = i
		}
	}
	m.layout(width, height)
	m.root = portal.NewMemoryRoot(m.page.Body(), portal.TextSizer(1, 1, 1))
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *demoModel) placement() placement.Placement { return placement.All()[m.pos] }

// layout sizes the page to the terminal and centers the trigger.
func (m *demoModel) layout(width, height int) {
	m.width = max(width, len(demoLabel)+4)
	m.height = max(height, demoStatusLines+5)
	body := geom.R(0, 0, float64(m.width), float64(m.height-demoStatusLines))
	if m.page == nil {
		m.page = dom.NewPage(body)
	} else {
		m.page.Body().SetRect(body)
	}

	w := float64(len(demoLabel))
	rect := geom.R(math.Floor((body.Width-w)/2), math.Floor((body.Height-3)/2), w, 3)
	if m.button == nil {
		m.button = m.page.Body().Append(dom.NewBox("trigger", rect))
	} else {
		m.button.SetRect(rect)
	}
	m.cursor = clampPoint(m.cursor, body)
}

// rebuild replaces the tooltip after a mode, placement or size change.
func (m *demoModel) rebuild() error {
	if m.tip != nil {
		m.tip.Close()
	}
	m.hover = nil
	m.focused = false

	tip, err := tooltip.New(m.button, m.page.Body(), tooltip.Options{
		Position: m.placement().String(),
		Mode:     m.mode.String(),
		Content:  m.placement().String(),
		Source:   visibility.Internal{Default: m.cfg.Tooltip.DefaultVisible},
		OnChange: m.record,
	},
		tooltip.WithRoot(m.root),
		tooltip.WithDocument(m.page),
		tooltip.WithScheduler(m.loop),
		tooltip.WithResolver(m.resolver),
		tooltip.WithLogger(log.New(io.Discard)),
	)
	if err != nil {
		return err
	}
	m.tip = tip
	return nil
}

func (m *demoModel) record(visible bool) {
	ev := "hidden"
	if visible {
		ev = "shown"
	}
	m.events = append(m.events, ev)
	if len(m.events) > demoMaxEvents {
		m.events = m.events[len(m.events)-demoMaxEvents:]
	}
}

// flushMsg runs deferred transitions once the hover delay has passed.
type flushMsg struct{}

// settle runs deferred transitions now, or schedules them after the hover
// delay.
func (m *demoModel) settle() tea.Cmd {
	if m.cfg.Tooltip.HoverDelay <= 0 {
		m.loop.Flush()
		return nil
	}
	if m.loop.Pending() == 0 {
		return nil
	}
	return tea.Tick(m.cfg.Tooltip.HoverDelay, func(time.Time) tea.Msg { return flushMsg{} })
}

// moveTo places the pointer at p and sends enter/leave to the boxes it
// crossed.
func (m *demoModel) moveTo(p geom.Point) tea.Cmd {
	body, _ := m.page.Body().Measure()
	m.cursor = clampPoint(p, body)
	hit := m.page.Body().HitTest(m.cursor)
	if hit != m.hover {
		if m.hover != nil {
			m.hover.Dispatch(dom.PointerLeave)
		}
		if hit != nil {
			hit.Dispatch(dom.PointerEnter)
		}
		m.hover = hit
	}
	return m.settle()
}

// press is a pointer-down followed by a click on whatever is under the
// pointer. In focus mode pressing the trigger focuses it and pressing
// anything else blurs it.
func (m *demoModel) press() tea.Cmd {
	hit := m.page.Body().HitTest(m.cursor)
	m.page.PointerDownAt(m.cursor)
	switch {
	case m.mode == visibility.Focus && hit == m.button && !m.focused:
		m.setFocus(true)
	case m.mode == visibility.Focus && hit != m.button && m.focused:
		m.setFocus(false)
	case hit != nil:
		hit.Dispatch(dom.Click)
	}
	return m.settle()
}

func (m *demoModel) setFocus(focused bool) {
	m.focused = focused
	if focused {
		m.button.Dispatch(dom.Focus)
	} else {
		m.button.Dispatch(dom.Blur)
	}
}

func (m *demoModel) Init() tea.Cmd { return nil }

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flushMsg:
		m.loop.Flush()
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		if err := m.rebuild(); err != nil {
			return m, tea.Quit
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.tip.Close()
			return m, tea.Quit
		case "up", "k":
			return m, m.moveTo(geom.Point{X: m.cursor.X, Y: m.cursor.Y - 1})
		case "down", "j":
			return m, m.moveTo(geom.Point{X: m.cursor.X, Y: m.cursor.Y + 1})
		case "left", "h":
			return m, m.moveTo(geom.Point{X: m.cursor.X - 1, Y: m.cursor.Y})
		case "right", "l":
			return m, m.moveTo(geom.Point{X: m.cursor.X + 1, Y: m.cursor.Y})
		case "enter", " ":
			return m, m.press()
		case "tab":
			m.setFocus(!m.focused)
			return m, m.settle()
		case "m":
			m.mode = visibility.Modes()[(int(m.mode)+1)%len(visibility.Modes())]
			_ = m.rebuild()
		case "p":
			m.pos = (m.pos + 1) % len(placement.All())
			_ = m.rebuild()
		case "P":
			m.pos = (m.pos + len(placement.All()) - 1) % len(placement.All())
			_ = m.rebuild()
		}
	}
	return m, nil
}

func (m *demoModel) View() string {
	body, _ := m.page.Body().Measure()
	g := newGrid(int(body.Width), int(body.Height))

	br, _ := m.button.Measure()
	g.box(br, demoButtonStyle, '┌', '┐', '└', '┘')
	g.text(int(br.X), int(br.Y)+1, demoLabel, demoButtonStyle)

	for _, l := range m.root.Layers() {
		if l.Mask {
			continue
		}
		c, ok := m.root.Container(l.ID)
		if !ok {
			continue
		}
		r, _ := c.Measure()
		g.box(r, demoPanelStyle, '╭', '╮', '╰', '╯')
		g.text(int(math.Round(r.X))+1, int(math.Round(r.Y))+1, fmt.Sprint(l.Content), demoPanelStyle)
	}
	g.set(int(m.cursor.X), int(m.cursor.Y), '✚', demoCursorStyle)

	var b strings.Builder
	b.WriteString(g.String())

	res := m.tip.Result()
	status := fmt.Sprintf(" mode %s · position %s · visible %t", m.mode, m.placement(), m.tip.Visible())
	if res.Flipped {
		status += " · " + StyleWarning.Render("flipped to "+res.Placement.String())
	}
	b.WriteString(StyleTitle.Render("popover") + status + "\n")
	b.WriteString(StyleDim.Render(" ←↑↓→ move  ⏎ press  tab focus  m mode  p/P placement  q quit") + "\n")
	b.WriteString(StyleDim.Render(" " + strings.Join(m.events, " · ")))
	return b.String()
}

// grid is a fixed-size character canvas with per-cell styles.
type grid struct {
	w, h   int
	cells  []rune
	styles []*lipgloss.Style
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([]rune, w*h), styles: make([]*lipgloss.Style, w*h)}
	for i := range g.cells {
		g.cells[i] = '·'
		g.styles[i] = &demoGridStyle
	}
	return g
}

func (g *grid) set(x, y int, r rune, s lipgloss.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = r
	g.styles[y*g.w+x] = &s
}

func (g *grid) text(x, y int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r, style)
	}
}

// box draws the outline of r, rounded to whole cells.
func (g *grid) box(r geom.Rect, s lipgloss.Style, tl, tr, bl, br rune) {
	x0, y0 := int(math.Round(r.X)), int(math.Round(r.Y))
	x1, y1 := x0+int(math.Round(r.Width))-1, y0+int(math.Round(r.Height))-1
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			g.set(x, y, ' ', s)
		}
		g.set(x, y0, '─', s)
		g.set(x, y1, '─', s)
	}
	for y := y0; y <= y1; y++ {
		g.set(x0, y, '│', s)
		g.set(x1, y, '│', s)
	}
	g.set(x0, y0, tl, s)
	g.set(x1, y0, tr, s)
	g.set(x0, y1, bl, s)
	g.set(x1, y1, br, s)
}

func (g *grid) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := y*g.w + x
			b.WriteString(g.styles[i].Render(string(g.cells[i])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// plain returns the canvas without styling.
func (g *grid) plain() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		b.WriteString(string(g.cells[y*g.w : (y+1)*g.w]))
		b.WriteByte('\n')
	}
	return b.String()
}

func clampPoint(p geom.Point, r geom.Rect) geom.Point {
	p.X = math.Max(r.X, math.Min(p.X, r.Right()-1))
	p.Y = math.Max(r.Y, math.Min(p.Y, r.Bottom()-1))
	return p
}
