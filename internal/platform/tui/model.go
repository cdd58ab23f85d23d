package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun"
	"github.com/vovakirdan/towerrun/internal/storage"
)

// Model is the Bubble Tea model that runs one Tower Run game.
type Model struct {
	game     *towerrun.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	keys     *KeyMapper
	held     *HeldKeys
	input    core.InputFrame
	board    *ScoreboardModel
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game. store may be
// nil, in which case the scoreboard is unavailable.
func NewModel(game *towerrun.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if store != nil {
		game.MenuHint = "tab scores"
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(DefaultKeyMap()),
		held:   NewHeldKeys(holdWindow),
		input:  core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Scores) && m.store != nil && m.game.OnMainMenu():
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		board.embedded = true
		m.board = &board
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}
	if IsMovement(action) && m.game.Moving() {
		m.held.Press(action, time.Now())
		return m, nil
	}
	m.input.Set(action)
	return m, nil
}

// updateBoard forwards a message to the open scoreboard.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board, ok := next.(ScoreboardModel)
	if !ok {
		return m, cmd
	}
	switch {
	case board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case board.IsGoingBack():
		m.board = nil
		return m, nil
	}
	m.board = &board
	return m, cmd
}

// handleTick advances the game to the tick's wall-clock time.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.game.Moving() {
		m.held.Apply(&m.input, now)
	} else {
		m.held.Release()
	}

	m.game.Step(now, m.input)
	m.input.Clear()

	if m.game.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".towerrun", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Game returns the running game.
func (m Model) Game() *towerrun.Game {
	return m.game
}

// Run starts the Bubble Tea program with the given game.
func Run(game *towerrun.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
