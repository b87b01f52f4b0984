package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/beltworks/beltrunner/internal/config"
	"github.com/beltworks/beltrunner/internal/storage"
	"github.com/beltworks/beltrunner/internal/upgrades"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.beltrunner/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Tuning is the base tuning every session starts from. Danger presets
	// picked in the menu are applied on top per run.
	Tuning config.TuningConfig

	// TickRate is the simulation frame rate for remote sessions.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.beltrunner/beltrunner.db",
		IdleTimeout: 30 * time.Minute,
		Tuning:      config.DefaultTuningConfig(),
		TickRate:    30,
	}
}

// SSHServer wraps a Wish SSH server so the belt can be flown remotely.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "beltrunner-ssh",
	})

	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage; outcomes just won't persist
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".beltrunner", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.config.Tuning, s.config.TickRate,
		pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionState names the screen a session is currently on.
type sessionState int

const (
	stateMenu sessionState = iota
	stateFlight
	stateRecords
	stateHangar
)

// SessionModel manages the full session flow: menu to flight, records, or
// hangar, and back. This is the top-level model used for SSH sessions.
type SessionModel struct {
	store     *storage.Store
	tuningCfg config.TuningConfig
	tickRate  int
	danger    config.DangerPreset
	width     int
	height    int

	state   sessionState
	menu    MenuModel
	flight  *FlightModel
	records *RecordsModel
	hangar  *HangarModel

	quitting bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(store *storage.Store, tuning config.TuningConfig, tickRate, width, height int) SessionModel {
	return SessionModel{
		store:     store,
		tuningCfg: tuning,
		tickRate:  tickRate,
		danger:    config.DangerNormal,
		width:     width,
		height:    height,
		state:     stateMenu,
		menu:      NewMenuModel(store, config.DangerNormal, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track terminal size globally so screen switches start correct.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateFlight:
		return m.updateFlight(msg)
	case stateRecords:
		return m.updateRecords(msg)
	case stateHangar:
		return m.updateHangar(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates while on the menu.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	m.danger = m.menu.Danger()

	switch m.menu.Choice() {
	case MenuFly:
		flight := NewFlightModel(m.store, m.runParams())
		m.flight = &flight
		m.state = stateFlight
		return m, flight.Init()

	case MenuRecords:
		records := NewRecordsModel(m.store, m.width, m.height)
		m.records = &records
		m.state = stateRecords
		return m, records.Init()

	case MenuHangar:
		hangar := NewHangarModel(m.store, m.width, m.height)
		m.hangar = &hangar
		m.state = stateHangar
		return m, hangar.Init()
	}

	return m, cmd
}

// runParams assembles the parameters for a fresh run: the session's base
// tuning with the menu's danger preset on top, and whatever loadout the
// wallet has bought so far.
func (m SessionModel) runParams() RunParams {
	cfg := m.tuningCfg
	config.ApplyDanger(&cfg, m.danger)

	var mods upgrades.Loadout
	if m.store != nil {
		if saved, err := m.store.Loadout(); err == nil {
			mods = upgrades.ParseLoadout(saved)
		}
	}

	return RunParams{
		Danger:   string(m.danger),
		Mods:     upgrades.ModifiersFor(mods),
		Tun:      cfg.Tuning(),
		TickRate: m.tickRate,
		ScreenW:  m.width,
		ScreenH:  m.height,
	}
}

// updateFlight handles updates while flying.
func (m SessionModel) updateFlight(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.flight.Update(msg)
	if flightModel, ok := newModel.(FlightModel); ok {
		m.flight = &flightModel
	}

	if m.flight.BackToMenu() {
		return m.backToMenu()
	}
	if m.flight.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateRecords handles updates while the records table is up.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if recordsModel, ok := newModel.(RecordsModel); ok {
		m.records = &recordsModel
	}

	if m.records.GoingBack() {
		return m.backToMenu()
	}
	if m.records.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateHangar handles updates while the hangar is up.
func (m SessionModel) updateHangar(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.hangar.Update(msg)
	if hangarModel, ok := newModel.(HangarModel); ok {
		m.hangar = &hangarModel
	}

	if m.hangar.GoingBack() {
		return m.backToMenu()
	}
	if m.hangar.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// backToMenu drops the active screen and rebuilds the menu so the wallet
// line and danger picker are fresh.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.flight = nil
	m.records = nil
	m.hangar = nil
	m.state = stateMenu
	m.menu = NewMenuModel(m.store, m.danger, m.width, m.height)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateFlight:
		return m.flight.View()
	case stateRecords:
		return m.records.View()
	case stateHangar:
		return m.hangar.View()
	default:
		return m.menu.View()
	}
}
