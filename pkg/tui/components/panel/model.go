// Package panel renders the framed chart panels of the dashboard.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/outbreak/pkg/tui/theme"
)

// Model is a titled block of pre-rendered lines.
type Model struct {
	title string
	lines []string
	empty string
	width int

	frame lipgloss.Style
	head  lipgloss.Style
	body  lipgloss.Style
}

func New(th theme.PanelTheme) Model {
	return Model{
		frame: th.Frame,
		head:  th.Title,
		body:  th.Body,
	}
}

// SetContent replaces the title and lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetPlaceholder is shown in place of empty content.
func (m *Model) SetPlaceholder(s string) {
	m.empty = s
}

// SetWidth fixes the outer width. Zero sizes the panel to its content.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// View returns the rendered panel and its height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.head.Render(m.title))
	}
	if len(m.lines) == 0 && m.empty != "" {
		content = append(content, m.body.Faint(true).Render(m.empty))
	}
	for _, line := range m.lines {
		content = append(content, m.body.Render(line))
	}
	frame := m.frame
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}
