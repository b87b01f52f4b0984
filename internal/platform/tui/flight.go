package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beltworks/beltrunner/internal/core"
	"github.com/beltworks/beltrunner/internal/sim"
	"github.com/beltworks/beltrunner/internal/storage"
)

// hudEvery is the tick interval between HUD snapshots. Entity positions
// are drawn fresh every frame; the readout numbers lag at most this many
// ticks behind.
const hudEvery = 3

// RunParams carries everything needed to start a run.
type RunParams struct {
	Seed     uint32 // 0 picks a time-derived seed
	Danger   string // preset label recorded with the outcome
	Mods     sim.RunModifiers
	Tun      sim.Tuning
	TickRate int
	ScreenW  int
	ScreenH  int
}

// FlightModel is the Bubble Tea model for one mining run. It owns the
// run, folds key presses into input frames, and banks the outcome once
// the run ends.
type FlightModel struct {
	params     RunParams
	run        *sim.Run
	screen     *core.Screen
	store      *storage.Store
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	hud        sim.HudSnapshot
	lastTick   time.Time
	ticks      int
	paused     bool
	recorded   bool
	quitting   bool
	backToMenu bool
	standalone bool
}

// NewFlightModel creates the model and seeds the run. The store may be
// nil, in which case outcomes are not persisted.
func NewFlightModel(store *storage.Store, params RunParams) FlightModel {
	if params.Seed == 0 {
		params.Seed = uint32(time.Now().UnixNano())
	}
	if params.TickRate <= 0 {
		params.TickRate = 30
	}
	if params.ScreenW <= 0 || params.ScreenH <= 0 {
		params.ScreenW, params.ScreenH = 100, 30
	}

	run := sim.NewRunTuned(params.Seed, params.Mods, params.Tun)
	return FlightModel{
		params:     params,
		run:        run,
		screen:     core.NewScreen(params.ScreenW, params.ScreenH),
		store:      store,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		hud:        run.HudSnapshot(),
	}
}

// Init starts the tick loop.
func (m FlightModel) Init() tea.Cmd {
	return tickCmd(m.params.TickRate)
}

// Update handles messages.
func (m FlightModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m FlightModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionPause:
		if m.run.Status == sim.StatusActive {
			m.paused = !m.paused
		}
		return m, nil
	case core.ActionBack:
		// Leaving mid-run needs the pause screen first; a finished run
		// leaves directly.
		if m.paused || m.run.Status != sim.StatusActive {
			m.backToMenu = true
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

func (m FlightModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.run.Status != sim.StatusActive {
		return m.restart()
	}

	// Wall-clock delta. The sim clamps oversized steps itself, so a
	// stalled terminal never fast-forwards the field.
	now := time.Now()
	dt := 1.0 / float64(m.params.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now
	m.ticks++

	if !m.paused {
		m.run.Step(dt, m.inputFrame)
		if m.ticks%hudEvery == 0 || m.run.Status != sim.StatusActive {
			m.hud = m.run.HudSnapshot()
		}
	}

	if m.run.Status != sim.StatusActive && !m.recorded {
		m.recordOutcome()
		m.recorded = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.params.TickRate)
}

func (m FlightModel) restart() (tea.Model, tea.Cmd) {
	m.params.Seed = uint32(time.Now().UnixNano())
	m.run = sim.NewRunTuned(m.params.Seed, m.params.Mods, m.params.Tun)
	m.hud = m.run.HudSnapshot()
	m.inputFrame.Clear()
	m.lastTick = time.Time{}
	m.ticks = 0
	m.paused = false
	m.recorded = false
	return m, tickCmd(m.params.TickRate)
}

// recordOutcome banks the run record and deposits the delivered value as
// credits. Ore banked before a loss still pays out.
func (m *FlightModel) recordOutcome() {
	if m.store == nil {
		return
	}
	rec := storage.RunRecord{
		Seed:           m.params.Seed,
		Danger:         m.params.Danger,
		Status:         m.run.Status.String(),
		Reason:         m.run.Reason,
		DeliveredValue: m.run.DeliveredValue,
		DeliveredUnits: m.run.DeliveredUnits,
		RareDelivered:  m.run.RareDelivered,
		Duration:       int(m.run.Elapsed),
	}
	//nolint:errcheck // Best-effort save, the outcome stays on screen regardless
	m.store.RecordRun(rec)
	if m.run.DeliveredValue > 0 {
		//nolint:errcheck // Best-effort deposit
		m.store.AddCredits(m.run.DeliveredValue)
	}
}

// View renders the flight screen.
func (m FlightModel) View() string {
	if m.quitting {
		return ""
	}
	drawFlight(m.screen, m.run, m.hud, m.paused)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the player asked to leave the program.
func (m FlightModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to return to the menu.
func (m FlightModel) BackToMenu() bool {
	return m.backToMenu
}

// RunFlight starts a standalone program for one run and blocks until the
// player leaves. It returns true if they backed out to a menu rather than
// quitting outright.
func RunFlight(store *storage.Store, params RunParams) (bool, error) {
	model := NewFlightModel(store, params)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(FlightModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
