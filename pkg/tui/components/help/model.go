// Package help renders the dashboard key reference as a scrollable overlay.
package help

import (
	bhelp "github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

const intro = `Cards show the latest case count per disease. The banner follows the
disease with the most cases: above 100 is a high alert, above 50 moderate.
Status refreshes on its own every few minutes.

Select a disease to load its forecast, alert level and climate history.
Exports are written to the downloads directory as <disease>_forecast.csv.`

// Model shows intro text and the full key map inside a rounded frame.
type Model struct {
	viewport viewport.Model
	help     bhelp.Model
	groups   [][]key.Binding
	width    int
	height   int

	frame lipgloss.Style
}

// New constructs a help overlay sized to the provided bounds.
func New(groups [][]key.Binding, width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	model := &Model{
		viewport: vp,
		help:     bhelp.New(),
		groups:   groups,
		frame:    frame,
	}
	model.SetSize(width, height)
	return model
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// SetSize configures the overlay dimensions and re-lays out the content.
func (m *Model) SetSize(width, height int) {
	minWidth, minHeight := 32, 8
	if width < minWidth {
		width = minWidth
	}
	if height < minHeight {
		height = minHeight
	}
	if m.width == width && m.height == height {
		return
	}

	m.width = width
	m.height = height

	innerWidth := max(width-m.frame.GetHorizontalFrameSize(), 1)
	innerHeight := max(height-m.frame.GetVerticalFrameSize(), 1)
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)

	m.viewport.SetContent(intro + "\n\n" + m.help.FullHelpView(m.groups))
	m.viewport.SetYOffset(0)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
