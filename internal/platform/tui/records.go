package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beltworks/beltrunner/internal/storage"
)

// Records layout constants
const (
	maxRecords       = 100 // Max run records to load
	minWidthForSeeds = 90  // Below this the seed column is dropped
)

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for the run records screen.
type RecordsModel struct {
	store     *storage.Store
	runs      []storage.RunRecord
	stats     storage.RunStats
	table     table.Model
	help      help.Model
	keys      RecordsKeyMap
	width     int
	height    int
	showSeeds bool
	quitting  bool
	goingBack bool
}

// NewRecordsModel creates a new records model.
func NewRecordsModel(store *storage.Store, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		store:     store,
		keys:      DefaultRecordsKeyMap(),
		help:      h,
		width:     width,
		height:    height,
		showSeeds: width >= minWidthForSeeds,
	}

	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates the run table with columns sized for the terminal.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 13},
		{Title: "Danger", Width: 7},
		{Title: "Outcome", Width: 18},
		{Title: "Value", Width: 7},
		{Title: "Units", Width: 6},
		{Title: "Relics", Width: 6},
		{Title: "Time", Width: 6},
	}
	if m.showSeeds {
		columns = append(columns, table.Column{Title: "Seed", Width: 11})
	}

	height := m.height - 9 // Room for the title, stats line, help, margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads recent runs and lifetime stats from the store.
func (m *RecordsModel) loadRuns() {
	if m.store == nil {
		m.runs = nil
		m.stats = storage.RunStats{}
		m.updateTableRows()
		return
	}

	runs, err := m.store.RecentRuns(maxRecords)
	if err != nil {
		runs = nil
	}
	m.runs = runs

	stats, err := m.store.Stats()
	if err != nil {
		stats = storage.RunStats{}
	}
	m.stats = stats

	m.updateTableRows()
}

// updateTableRows rebuilds the table rows from the loaded runs.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		outcome := "complete"
		if r.Status != "won" {
			outcome = r.Reason
		}

		row := table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Danger,
			outcome,
			fmt.Sprintf("%d", r.DeliveredValue),
			fmt.Sprintf("%d", r.DeliveredUnits),
			fmt.Sprintf("%d", r.RareDelivered),
			fmtClock(float64(r.Duration)),
		}
		if m.showSeeds {
			row = append(row, fmt.Sprintf("%d", r.Seed))
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSeeds = m.width >= minWidthForSeeds
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("RUN RECORDS", m.width)))
	b.WriteString("\n\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statsLine := fmt.Sprintf("runs %d   wins %d   lifetime %d cr   best %d cr   relics %d",
		m.stats.Runs, m.stats.Wins, m.stats.TotalValue, m.stats.BestValue, m.stats.RareDelivered)
	b.WriteString(statsStyle.Render(centerText(statsLine, m.width)))
	b.WriteString("\n\n")

	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		b.WriteString(emptyStyle.Render(centerText("No runs recorded yet. Fly one.", m.width)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// GoingBack returns true if the player pressed back rather than quit.
func (m RecordsModel) GoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the player requested to quit.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// RunRecords shows the records screen standalone. It returns true if the
// player backed out rather than quitting.
func RunRecords(store *storage.Store, width, height int) (bool, error) {
	model := NewRecordsModel(store, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.GoingBack(), nil
}
