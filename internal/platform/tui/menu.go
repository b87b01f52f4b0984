package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beltworks/beltrunner/internal/config"
	"github.com/beltworks/beltrunner/internal/storage"
)

// MenuChoice identifies what the player picked in the main menu.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuFly
	MenuRecords
	MenuHangar
)

// menuDangers is the cycle order for the danger picker on the Fly row.
var menuDangers = []config.DangerPreset{
	config.DangerEasy,
	config.DangerNormal,
	config.DangerHard,
}

var menuLabels = []string{"Fly", "Records", "Hangar", "Quit"}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor    int
	dangerIdx int
	width     int
	height    int
	store     *storage.Store
	keyMapper *KeyMapper
	quitting  bool
	choice    MenuChoice
	credits   int
	hasWallet bool
}

// NewMenuModel creates a new menu model. The store may be nil; the wallet
// line is skipped when it is.
func NewMenuModel(store *storage.Store, danger config.DangerPreset, width, height int) MenuModel {
	m := MenuModel{
		store:     store,
		keyMapper: NewKeyMapper(),
		width:     width,
		height:    height,
	}
	for i, d := range menuDangers {
		if d == danger {
			m.dangerIdx = i
		}
	}
	if store != nil {
		if credits, err := store.Credits(); err == nil {
			m.credits = credits
			m.hasWallet = true
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuLabels)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == 0 {
			m.dangerIdx = (m.dangerIdx + len(menuDangers) - 1) % len(menuDangers)
		}

	case MenuActionRight:
		if m.cursor == 0 {
			m.dangerIdx = (m.dangerIdx + 1) % len(menuDangers)
		}

	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.choice = MenuFly
		case 1:
			m.choice = MenuRecords
		case 2:
			m.choice = MenuHangar
		case 3:
			m.quitting = true
		}
		return m, tea.Quit // Exit menu to act on the choice
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "  B E L T   R U N N E R  "
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	subtitle := "Haul ore off the belt before the pirates find you"
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, label := range menuLabels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + label
		if i == 0 {
			danger := string(menuDangers[m.dangerIdx])
			if i == m.cursor {
				line = fmt.Sprintf("%s%s   < %s >", cursor, label, danger)
			} else {
				line = fmt.Sprintf("%s%s     %s", cursor, label, danger)
			}
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.hasWallet {
		b.WriteString("\n")
		b.WriteString(centerText(fmt.Sprintf("wallet: %d cr", m.credits), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Danger  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, or MenuNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Danger returns the currently selected danger preset.
func (m MenuModel) Danger() config.DangerPreset {
	return menuDangers[m.dangerIdx]
}

// IsQuitting returns true if the player requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Size returns the menu's last-known terminal size, which resizes may
// have updated while it was on screen.
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu standalone.
type MenuResult struct {
	Choice MenuChoice
	Danger config.DangerPreset
	Width  int
	Height int
	Quit   bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, danger config.DangerPreset, width, height int) (MenuResult, error) {
	model := NewMenuModel(store, danger, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Danger: danger, Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Danger: danger, Width: width, Height: height, Quit: true}, nil
	}

	w, h := m.Size()
	return MenuResult{
		Choice: m.Choice(),
		Danger: m.Danger(),
		Width:  w,
		Height: h,
		Quit:   m.IsQuitting(),
	}, nil
}
