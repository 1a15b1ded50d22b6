package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/chart"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/scroll"
	"github.com/matzehuels/cartesian/pkg/state"
)

const (
	// frameInterval paces animation frames.
	frameInterval = time.Second / 60

	// footerRows are the terminal rows below the chart.
	footerRows = 3

	zoomStep = 1.25
)

// =============================================================================
// Messages
// =============================================================================

type frameMsg time.Time

// reloadedMsg reports a model reload. The model itself travels through the
// chart handoff.
type reloadedMsg struct{ err error }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// =============================================================================
// ExploreModel - Interactive chart view
// =============================================================================

// ExploreModel is the bubbletea model of the explore command. It drives one
// chart: keys scroll, zoom and move the marker; frames advance animations.
type ExploreModel struct {
	ctx    context.Context
	logger *log.Logger
	chart  *chart.Chart
	load   func() (*model.Model, error)

	store state.Store
	id    string

	cols, rows int
	markerX    float64 // canvas X of the marker, negative when hidden
	ticking    bool
	status     string
}

// NewExploreModel wraps ch. load re-reads the model for the reload key;
// store and id persist scroll and zoom on quit. store may be nil.
func NewExploreModel(ctx context.Context, ch *chart.Chart, load func() (*model.Model, error), store state.Store, id string) *ExploreModel {
	return &ExploreModel{
		ctx:     ctx,
		logger:  loggerFromContext(ctx),
		chart:   ch,
		load:    load,
		store:   store,
		id:      id,
		markerX: -1,
	}
}

func (m *ExploreModel) Init() tea.Cmd {
	m.ticking = true
	return nextFrame()
}

func (m *ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, max(msg.Height-footerRows, 0)
		m.chart.Measure(m.ctx, newCellCanvas(m.cols, m.rows).bounds())
		return m, nil

	case frameMsg:
		if m.chart.Tick(m.ctx, time.Time(msg)) {
			return m, nextFrame()
		}
		m.ticking = false
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "reloaded"
		return m, m.animate()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *ExploreModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	content := m.chart.Result().Content
	page := content.Width() / 4
	now := time.Now()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.save()
		return m, tea.Quit
	case "left", "h":
		m.chart.AnimateScroll(m.ctx, scroll.ByPixels(-page), now)
		return m, m.animate()
	case "right", "l":
		m.chart.AnimateScroll(m.ctx, scroll.ByPixels(page), now)
		return m, m.animate()
	case "home", "g":
		m.chart.AnimateScroll(m.ctx, scroll.Start(), now)
		return m, m.animate()
	case "end", "G":
		m.chart.AnimateScroll(m.ctx, scroll.End(), now)
		return m, m.animate()
	case "+", "=":
		m.chart.Zoom(m.ctx, zoomStep, m.focalX())
	case "-":
		m.chart.Zoom(m.ctx, 1/zoomStep, m.focalX())
	case "m":
		if m.markerX < 0 {
			m.markerX = content.CenterX()
		} else {
			m.markerX = -1
		}
	case "[":
		if m.markerX >= 0 {
			m.markerX = max(content.Left, m.markerX-cellWidth)
		}
	case "]":
		if m.markerX >= 0 {
			m.markerX = min(content.Right, m.markerX+cellWidth)
		}
	case "r":
		return m, m.reload()
	case "s":
		m.save()
	}
	return m, nil
}

// animate starts the frame loop unless it is running.
func (m *ExploreModel) animate() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return nextFrame()
}

// reload reads the model off the UI goroutine and hands it to the chart.
func (m *ExploreModel) reload() tea.Cmd {
	ch := m.chart
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return reloadedMsg{err: errors.New("no model source")}
		}
		next, err := load()
		if err != nil {
			return reloadedMsg{err: err}
		}
		ch.Handoff().Publish(next)
		return reloadedMsg{}
	}
}

func (m *ExploreModel) focalX() float64 {
	if m.markerX >= 0 {
		return m.markerX
	}
	return m.chart.Result().Content.CenterX()
}

func (m *ExploreModel) save() {
	if m.store == nil || m.id == "" {
		return
	}
	if err := m.store.Save(m.ctx, m.id, m.chart.Snapshot()); err != nil {
		m.status = "save failed: " + err.Error()
		m.logger.Debug("save state", "id", m.id, "err", err)
		return
	}
	m.status = "saved " + m.id
}

func (m *ExploreModel) View() string {
	canvas := newCellCanvas(m.cols, m.rows)
	m.chart.Draw(m.ctx, canvas)

	var label string
	if m.markerX >= 0 {
		targets := m.chart.MarkerTargets(m.markerX)
		m.chart.DrawMarker(canvas, targets)
		label = marker.New().Label(targets)
	}

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString("\n")
	info := fmt.Sprintf("zoom %.2f  scroll %.0f/%.0f", m.chart.Zoomer().Value(),
		m.chart.Scroller().Value(), m.chart.Scroller().MaxValue())
	if label != "" {
		info += "  marker " + label
	}
	b.WriteString(StyleValue.Render(info))
	if m.status != "" {
		b.WriteString("  " + StyleWarning.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ scroll  g/G start/end  +/- zoom  m marker  [/] move  r reload  s save  q quit"))
	return b.String()
}
