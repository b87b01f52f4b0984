package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beltworks/beltrunner/internal/storage"
	"github.com/beltworks/beltrunner/internal/upgrades"
)

// sellFraction is how much of a level's purchase price the hangar pays
// back when stripping it.
const sellFraction = 2 // divisor, refund = cost / sellFraction

// HangarKeyMap defines the key bindings for the hangar screen.
type HangarKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Sell key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HangarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Sell, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HangarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Buy, k.Sell},
		{k.Back, k.Quit},
	}
}

// DefaultHangarKeyMap returns default key bindings.
func DefaultHangarKeyMap() HangarKeyMap {
	return HangarKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buy level"),
		),
		Sell: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sell level"),
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

// HangarModel is the Bubble Tea model for the upgrade shop. It reads and
// writes the wallet and loadout through the store.
type HangarModel struct {
	store     *storage.Store
	loadout   upgrades.Loadout
	credits   int
	table     table.Model
	help      help.Model
	keys      HangarKeyMap
	width     int
	height    int
	status    string
	statusErr bool
	quitting  bool
	goingBack bool
}

// NewHangarModel creates a new hangar model.
func NewHangarModel(store *storage.Store, width, height int) HangarModel {
	h := help.New()
	h.ShowAll = false

	m := HangarModel{
		store:  store,
		keys:   DefaultHangarKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	m.table = m.createTable()
	m.reload()
	m.table.GotoTop()
	return m
}

// createTable creates the catalog table.
func (m *HangarModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Fit", Width: 18},
		{Title: "Lvl", Width: 5},
		{Title: "Cost", Width: 7},
		{Title: "Sell", Width: 6},
		{Title: "Effect", Width: 32},
	}

	height := len(upgrades.Catalog) + 1
	if max := m.height - 10; height > max && max >= 3 {
		height = max
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

// reload pulls the wallet and loadout back from the store and rebuilds
// the table rows, keeping the cursor where it was.
func (m *HangarModel) reload() {
	m.loadout = upgrades.Loadout{}
	m.credits = 0

	if m.store != nil {
		if credits, err := m.store.Credits(); err == nil {
			m.credits = credits
		}
		if saved, err := m.store.Loadout(); err == nil {
			m.loadout = upgrades.ParseLoadout(saved)
		}
	}

	cursor := m.table.Cursor()
	rows := make([]table.Row, len(upgrades.Catalog))
	for i, u := range upgrades.Catalog {
		level := m.loadout.Level(u.ID)

		cost := "-"
		if level < u.MaxLevel {
			cost = fmt.Sprintf("%d", u.CostAt(level+1))
		}
		sell := "-"
		if level > 0 {
			sell = fmt.Sprintf("%d", u.CostAt(level)/sellFraction)
		}

		rows[i] = table.Row{
			u.Name,
			fmt.Sprintf("%d/%d", level, u.MaxLevel),
			cost,
			sell,
			u.Desc,
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(cursor)
}

// Init initializes the hangar model.
func (m HangarModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the hangar.
func (m HangarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Buy):
			m.buySelected()
			return m, nil

		case key.Matches(msg, m.keys.Sell):
			m.sellSelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// buySelected purchases the next level of the highlighted upgrade.
func (m *HangarModel) buySelected() {
	if m.store == nil {
		m.setStatus("no wallet available", true)
		return
	}

	u := upgrades.Catalog[m.table.Cursor()]
	level := m.loadout.Level(u.ID)
	if level >= u.MaxLevel {
		m.setStatus(u.Name+" is already at max level", true)
		return
	}

	cost := u.CostAt(level + 1)
	if err := m.store.SpendCredits(cost); err != nil {
		if errors.Is(err, storage.ErrInsufficientCredits) {
			m.setStatus(fmt.Sprintf("not enough credits, need %d", cost), true)
		} else {
			m.setStatus("purchase failed: "+err.Error(), true)
		}
		return
	}

	if err := m.store.SetUpgradeLevel(u.Slug, level+1); err != nil {
		// The wallet already paid; hand the credits back.
		//nolint:errcheck // Best-effort refund on a failed install
		m.store.AddCredits(cost)
		m.setStatus("install failed: "+err.Error(), true)
		return
	}

	m.setStatus(fmt.Sprintf("%s installed at level %d", u.Name, level+1), false)
	m.reload()
}

// sellSelected strips one level off the highlighted upgrade for a partial
// refund.
func (m *HangarModel) sellSelected() {
	if m.store == nil {
		m.setStatus("no wallet available", true)
		return
	}

	u := upgrades.Catalog[m.table.Cursor()]
	level := m.loadout.Level(u.ID)
	if level == 0 {
		m.setStatus("nothing installed to sell", true)
		return
	}

	refund := u.CostAt(level) / sellFraction
	if err := m.store.SetUpgradeLevel(u.Slug, level-1); err != nil {
		m.setStatus("removal failed: "+err.Error(), true)
		return
	}
	//nolint:errcheck // Best-effort refund, the level is already gone
	m.store.AddCredits(refund)

	m.setStatus(fmt.Sprintf("%s stripped to level %d, +%d cr", u.Name, level-1, refund), false)
	m.reload()
}

func (m *HangarModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// View renders the hangar.
func (m HangarModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("HANGAR", m.width)))
	b.WriteString("\n\n")

	walletStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	b.WriteString(walletStyle.Render(centerText(fmt.Sprintf("wallet: %d cr", m.credits), m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	if m.status != "" {
		color := lipgloss.Color("114")
		if m.statusErr {
			color = lipgloss.Color("203")
		}
		statusStyle := lipgloss.NewStyle().Foreground(color)
		b.WriteString(statusStyle.Render(centerText(m.status, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// GoingBack returns true if the player pressed back rather than quit.
func (m HangarModel) GoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the player requested to quit.
func (m HangarModel) IsQuitting() bool {
	return m.quitting
}

// RunHangar shows the hangar standalone. It returns true if the player
// backed out rather than quitting.
func RunHangar(store *storage.Store, width, height int) (bool, error) {
	model := NewHangarModel(store, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HangarModel)
	if !ok {
		return false, nil
	}
	return m.GoingBack(), nil
}
