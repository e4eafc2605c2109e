package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cam-crush/internal/core"
	"github.com/vovakirdan/cam-crush/internal/games/crush"
	"github.com/vovakirdan/cam-crush/internal/leaderboard"
)

// Terminals report key presses but not releases. A held key repeats, so
// forward counts as held until this long after the last press.
const forwardHold = 250 * time.Millisecond

// Layout constants
const (
	bannerHeight = 10 // Home screen field preview
	helpHeight   = 1
	minWidth     = 40
	minHeight    = 12
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	formStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2)
)

// Model is the Bubble Tea model for a Cam Crush session.
type Model struct {
	session *crush.Session
	board   *leaderboard.Manager
	logger  *log.Logger
	sprites map[string][]string
	config  core.RuntimeConfig
	now     func() time.Time

	field  *core.Screen
	banner *core.Screen

	keys  KeyMap
	help  help.Model
	table table.Model
	name  textinput.Model

	input        core.InputFrame
	lastTick     time.Time
	forwardUntil time.Time
	scene        crush.Scene
	width        int
	height       int
	quitting     bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSprites supplies sprite art for the field. Missing sprites fall back to
// vector drawing.
func WithSprites(sprites map[string][]string) ModelOption {
	return func(m *Model) { m.sprites = sprites }
}

// WithLogger sets the logger for session events.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithClock overrides the clock used for key hold timing.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// NewModel creates a new Bubble Tea model for session.
func NewModel(session *crush.Session, board *leaderboard.Manager, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	cfg.ScreenW = max(cfg.ScreenW, minWidth)
	cfg.ScreenH = max(cfg.ScreenH, minHeight)

	name := textinput.New()
	name.Placeholder = leaderboard.DefaultName
	name.CharLimit = leaderboard.MaxNameLen
	name.Width = leaderboard.MaxNameLen + 2

	h := help.New()
	h.ShowAll = false

	m := Model{
		session: session,
		board:   board,
		logger:  log.New(io.Discard),
		config:  cfg,
		now:     time.Now,
		keys:    DefaultKeyMap(),
		help:    h,
		name:    name,
		input:   core.NewInputFrame(),
		scene:   session.Scene(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.field = core.NewScreen(m.width, m.height-helpHeight)
	m.banner = core.NewScreen(m.width, bannerHeight)
	m.table = newBoardTable(m.width)
	m.refreshBoard()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	if m.session.Scene() == crush.SceneNameEntry {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Exit) {
		m.quitting = true
		return m, tea.Quit
	}

	scene := m.session.Scene()
	if scene == crush.SceneNameEntry {
		return m.handleNameKey(msg)
	}
	if scene == crush.SceneHome && key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	for _, a := range m.keys.MapKey(msg) {
		if a == core.ActionForward {
			m.forwardUntil = m.now().Add(forwardHold)
			continue
		}
		m.input.Set(a)
	}
	return m, nil
}

// handleNameKey routes keys to the name field. Enter submits, Esc skips.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.session.SubmitName(m.name.Value()); err != nil {
			m.logger.Debug("name rejected", "error", err)
			return m, nil
		}
		return m, m.syncScene()
	case tea.KeyEsc:
		m.session.SkipName()
		return m, m.syncScene()
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = max(msg.Width, minWidth)
	m.height = max(msg.Height, minHeight)
	m.config.ScreenW = m.width
	m.config.ScreenH = m.height
	m.field.Resize(m.width, m.height-helpHeight)
	m.banner.Resize(m.width, bannerHeight)
	m.help.Width = m.width
	m.table = newBoardTable(m.width)
	m.refreshBoard()
	return m, nil
}

// handleTick feeds the elapsed wall-clock time to the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := time.Second / time.Duration(m.config.TickRate)
	if !m.lastTick.IsZero() {
		frame = now.Sub(m.lastTick)
	}
	m.lastTick = now

	if now.Before(m.forwardUntil) {
		m.input.Set(core.ActionForward)
	}
	for _, ev := range m.session.Update(frame, m.input) {
		m.logger.Debug("event", "type", ev.Type, "kind", ev.Kind, "points", ev.Points)
	}
	m.input.Clear()

	return m, tea.Batch(m.syncScene(), tickCmd(m.config.TickRate))
}

// syncScene reacts to scene changes made by the session.
func (m *Model) syncScene() tea.Cmd {
	scene := m.session.Scene()
	if scene == m.scene {
		return nil
	}
	m.scene = scene
	m.forwardUntil = time.Time{}

	switch scene {
	case crush.SceneNameEntry:
		m.name.Reset()
		return m.name.Focus()
	case crush.SceneHome:
		m.name.Blur()
		m.refreshBoard()
	}
	return nil
}

func (m *Model) refreshBoard() {
	m.table.SetRows(boardRows(m.board.Entries()))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.session.Scene() {
	case crush.SceneHome:
		return m.viewHome()
	case crush.SceneNameEntry:
		return m.viewNameEntry()
	default:
		return m.viewField()
	}
}

func (m Model) viewField() string {
	m.field.Clear()
	m.session.Render(m.canvas(m.field))

	var b strings.Builder
	b.WriteString(RenderScreen(m.field))
	b.WriteString("\n")
	if m.session.Scene() == crush.SceneGraveyard {
		b.WriteString(helpStyle.Render(fmt.Sprintf("enter continue • %ds", int(m.session.GraveyardRemaining().Seconds()+0.999))))
	} else {
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}
	return b.String()
}

func (m Model) viewHome() string {
	m.banner.Clear()
	m.session.Render(m.canvas(m.banner))

	var b strings.Builder
	b.WriteString(RenderScreen(m.banner))
	b.WriteString("\n\n")
	b.WriteString(centerText(titleStyle.Render("TOP 5"), m.width))
	b.WriteString("\n")
	if len(m.board.Entries()) == 0 {
		b.WriteString(centerText(helpStyle.Render("No scores yet. Finish a season to get on the board."), m.width))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.table.View()))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(homeHelp{m.keys})))
	return b.String()
}

func (m Model) viewNameEntry() string {
	st := m.session.State()

	var form strings.Builder
	form.WriteString(titleStyle.Render(fmt.Sprintf("Top 5! Season %d: %d points", st.Year, st.FinalScore)))
	form.WriteString("\n\n")
	form.WriteString(m.name.View())
	form.WriteString("\n")
	if st.NameError != "" {
		form.WriteString(errorStyle.Render(st.NameError))
	}
	form.WriteString("\n")
	secs := int(m.session.NameEntryRemaining().Seconds() + 0.999)
	form.WriteString(helpStyle.Render(fmt.Sprintf("enter save • esc skip • saving as %s in %ds", leaderboard.DefaultName, secs)))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, formStyle.Render(form.String()))
}

// canvas maps the session's world onto dst.
func (m Model) canvas(dst *core.Screen) *core.Canvas {
	w := m.session.Config().World
	return core.NewCanvas(dst, w.Width, w.Height, m.sprites)
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textLen := lipgloss.Width(text)
	if textLen >= width {
		return text
	}
	padding := (width - textLen) / 2
	return strings.Repeat(" ", padding) + text
}

// Run starts the Bubble Tea program for session.
func Run(session *crush.Session, board *leaderboard.Manager, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(session, board, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
