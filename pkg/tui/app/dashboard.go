// Package app hosts the dashboard controller in a Bubble Tea program.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	bhelp "github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/table"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/outbreak/pkg/dashboard"
	"tableflip.dev/outbreak/pkg/export"
	"tableflip.dev/outbreak/pkg/tui/components/help"
	"tableflip.dev/outbreak/pkg/tui/theme"
)

type resultMsg struct {
	result dashboard.Result
}

type pollMsg struct{}

// DiseasesMsg replaces the disease list, for example after a config reload.
type DiseasesMsg []string

type exportedMsg struct {
	path string
	err  error
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Export  key.Binding
	Reset   key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "forecast")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh status")),
		Export:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export csv")),
		Reset:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// FullHelp lists every binding for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Refresh, k.Export, k.Reset},
		{k.Dismiss, k.Help, k.Quit},
	}
}

// Options configures the dashboard model.
type Options struct {
	Controller   *dashboard.Controller
	View         *dashboard.View
	Diseases     []string
	Sink         export.Sink
	Theme        theme.Theme
	PollInterval time.Duration
}

// Model is the Bubble Tea model for the dashboard. Every controller call
// happens inside Update; fetches run as commands.
type Model struct {
	ctrl     *dashboard.Controller
	view     *dashboard.View
	sink     export.Sink
	theme    theme.Theme
	keys     keyMap
	poll     time.Duration
	diseases []string
	cursor   int

	spinner spinner.Model
	table   table.Model
	help    bhelp.Model
	overlay *help.Model

	width  int
	height int
	notice string
}

// New constructs the model. opts.View must be the renderer the controller
// was built with.
func New(opts Options) *Model {
	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Predicted Cases", Width: 16},
			{Title: "Trend", Width: 6},
		}),
		table.WithHeight(8),
		table.WithFocused(false),
	)
	return &Model{
		ctrl:     opts.Controller,
		view:     opts.View,
		sink:     opts.Sink,
		theme:    opts.Theme,
		keys:     defaultKeys(),
		poll:     opts.PollInterval,
		diseases: append([]string(nil), opts.Diseases...),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		table:    tbl,
		help:     bhelp.New(),
	}
}

// Run launches the Bubble Tea program. onStart receives the program so
// callers can send messages from other goroutines.
func Run(m *Model, onStart func(*tea.Program)) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if onStart != nil {
		onStart(p)
	}
	_, err := p.Run()
	return err
}

// Init implements tea.Model. The first status fetch is issued immediately
// and the poll timer armed.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.run(m.ctrl.RefreshStatus()), m.schedulePoll())
}

func (m *Model) run(t dashboard.Task) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		return resultMsg{result: t(context.Background())}
	}
}

func (m *Model) schedulePoll() tea.Cmd {
	if m.poll <= 0 {
		return nil
	}
	return tea.Tick(m.poll, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		if m.overlay != nil {
			m.overlay.SetSize(m.overlaySize())
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case resultMsg:
		next := m.ctrl.Handle(v.result)
		m.syncTable()
		return m, m.run(next)

	case pollMsg:
		return m, tea.Batch(m.run(m.ctrl.RefreshStatus()), m.schedulePoll())

	case DiseasesMsg:
		m.diseases = append([]string(nil), v...)
		if m.cursor >= len(m.diseases) {
			m.cursor = len(m.diseases) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case exportedMsg:
		if v.err != nil {
			m.notice = fmt.Sprintf("export failed: %v", v.err)
		} else {
			m.notice = "saved " + v.path
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.Phase() != dashboard.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.overlay != nil {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Dismiss):
			m.overlay = nil
			return m, nil
		}
		var cmd tea.Cmd
		m.overlay, cmd = m.overlay.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		w, h := m.overlaySize()
		m.overlay = help.New(m.keys.FullHelp(), w, h)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.diseases)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.diseases) == 0 {
			return m, nil
		}
		m.notice = ""
		task := m.ctrl.Select(m.diseases[m.cursor])
		m.syncTable()
		return m, tea.Batch(m.run(task), m.spinner.Tick)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run(m.ctrl.RefreshStatus())
	case key.Matches(msg, m.keys.Export):
		return m, m.export()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.notice = ""
		m.syncTable()
	case key.Matches(msg, m.keys.Dismiss):
		m.notice = ""
	}
	return m, nil
}

// export is inert until a forecast is on screen. The file is encoded now so
// it names the disease selected at the time of the key press.
func (m *Model) export() tea.Cmd {
	if !m.ctrl.CanExport() || m.sink == nil {
		return nil
	}
	f, err := m.ctrl.Export()
	if err != nil {
		if errors.Is(err, export.ErrNoActiveDataset) {
			return nil
		}
		return func() tea.Msg { return exportedMsg{err: err} }
	}
	sink := m.sink
	return func() tea.Msg {
		path, err := sink.Save(f)
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) overlaySize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = 24
	}
	return w - 4, h - 2
}

func (m *Model) syncTable() {
	rows := make([]table.Row, 0, len(m.view.Panels.Rows))
	for _, r := range m.view.Panels.Rows {
		rows = append(rows, table.Row{r.Date.String(), formatCases(r.Predicted), r.Trend.Arrow()})
	}
	m.table.SetRows(rows)
}
