package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/outbreak/pkg/api"
	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/status"
	"tableflip.dev/outbreak/pkg/timeutil"
	"tableflip.dev/outbreak/pkg/tui/components/panel"
	"tableflip.dev/outbreak/pkg/tui/theme"
)

const defaultWidth = 100

// View implements tea.Model.
func (m *Model) View() string {
	if m.overlay != nil {
		return m.overlay.View()
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	sections := []string{
		m.theme.Title.Render("Disease Outbreak Dashboard"),
		m.bannerView(),
		m.cardsView(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), " ", m.panelView(width-24)),
		m.chartsView(width),
		m.footerView(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) bannerView() string {
	b := m.view.Banner
	if b.Err != nil {
		return m.theme.Error.Render(status.ErrorMessage)
	}
	if b.Message == "" {
		return m.theme.Muted.Render("Loading current status...")
	}
	return theme.Banner(b.Tier).Render(b.Message)
}

func (m *Model) cardsView() string {
	if len(m.view.Cards) == 0 {
		return ""
	}
	cards := make([]string, 0, len(m.view.Cards))
	for _, c := range m.view.Cards {
		trend := m.theme.Card.Down
		if c.Trend == api.Increasing {
			trend = m.theme.Card.Up
		}
		body := strings.Join([]string{
			m.theme.Card.Name.Render(c.Disease),
			m.theme.Card.Cases.Render(strconv.Itoa(c.Cases)),
			m.theme.Card.Caption.Render("cases reported"),
			m.theme.Card.Caption.Render(c.Date.String()),
			trend.Render(c.Arrow() + " " + string(c.Trend)),
		}, "\n")
		frame := m.theme.Card.Frame
		if c.Disease == m.ctrl.Disease() {
			frame = m.theme.Card.Selected
		}
		cards = append(cards, frame.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) listView() string {
	lines := []string{m.theme.Panel.Title.Render("Diseases")}
	for i, d := range m.diseases {
		style := m.theme.List.Item
		label := d
		if d == m.ctrl.Disease() {
			label = m.theme.List.Selected.Render(d)
		}
		if i == m.cursor {
			lines = append(lines, m.theme.List.Cursor.Render("> ")+label)
			continue
		}
		lines = append(lines, style.Render(label))
	}
	return m.theme.Panel.Frame.Width(20).Render(strings.Join(lines, "\n"))
}

func (m *Model) panelView(width int) string {
	if width < 40 {
		width = 40
	}
	p := m.view.Panels
	var lines []string

	switch m.ctrl.Phase() {
	case dashboard.Idle:
		lines = append(lines, m.theme.Muted.Render("Select a disease and press enter to load its forecast."))
	case dashboard.Loading:
		lines = append(lines, fmt.Sprintf("%s Loading %s forecast...", m.spinner.View(), p.Disease))
	case dashboard.Error:
		lines = append(lines,
			m.theme.Panel.Title.Render(p.Disease),
			m.theme.Error.Render(wordwrap.String("Error loading forecast: "+errString(m.view.Err), width-4)),
		)
	case dashboard.Rendered:
		lines = append(lines, m.theme.Panel.Title.Render(p.Disease+" Forecast"))
		if p.Alert != nil {
			frame, label := theme.AlertBox(*p.Alert)
			box := label.Render(p.Alert.Label) + "\n" + wordwrap.String(p.AlertMessage, width-8)
			lines = append(lines, frame.Render(box))
		}
		lines = append(lines,
			m.stat("Forecast Period", p.Stats.Period()),
			m.stat("Peak Cases", peak(p)),
			m.stat("Last Updated", p.Stats.LastUpdated.String()),
			m.table.View(),
		)
	}
	return m.theme.Panel.Frame.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) stat(label, value string) string {
	if value == "" {
		value = "-"
	}
	return m.theme.Panel.Label.Render(label+": ") + m.theme.Panel.Body.Render(value)
}

const chartPlaceholder = "Waiting for data..."

// chartsView draws the drawn charts. While a selection is loading every
// chart area shows the placeholder instead.
func (m *Model) chartsView(width int) string {
	var blocks []string
	for _, s := range []dashboard.Surface{dashboard.ForecastChart, dashboard.ClimateChart} {
		f, ok := m.view.Figure(s)
		if !ok && m.ctrl.Phase() != dashboard.Loading {
			continue
		}
		p := panel.New(m.theme.Panel)
		p.SetWidth(width)
		p.SetPlaceholder(chartPlaceholder)
		if ok {
			p.SetContent(surfaceTitle(s), figureLines(f))
		} else {
			p.SetContent(surfaceTitle(s), nil)
		}
		view, _ := p.View()
		blocks = append(blocks, view)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m *Model) footerView() string {
	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Refresh}
	if m.ctrl.CanExport() {
		bindings = append(bindings, m.keys.Export)
	}
	bindings = append(bindings, m.keys.Reset, m.keys.Help, m.keys.Quit)

	footer := m.theme.Footer.Help.Render(m.help.ShortHelpView(bindings))
	if snap := m.ctrl.Feed().Snapshot(); snap.Loaded {
		footer += "  " + m.theme.Muted.Render("status updated "+timeutil.Ago(time.Now(), snap.Updated))
	}
	if m.notice != "" {
		footer += "\n" + m.theme.Footer.Status.Render(m.notice)
	}
	return footer
}

func peak(p dashboard.Panels) string {
	if !p.Stats.HasPeak {
		return ""
	}
	return formatCases(p.Stats.Peak)
}

func formatCases(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
