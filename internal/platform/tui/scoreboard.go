package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cam-crush/internal/leaderboard"
	"github.com/vovakirdan/cam-crush/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 40
	maxSeasons    = 100 // Max archived seasons to load
)

// Scoreboard tabs
const (
	tabBoard = iota
	tabSeasons
	tabCount
)

var tabTitles = [tabCount]string{"Top 5", "Seasons"}

// SeasonSource lists archived seasons, best first.
type SeasonSource interface {
	TopSeasons(limit int) ([]storage.SeasonEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the score browser.
type ScoreboardModel struct {
	board    *leaderboard.Manager
	seasons  SeasonSource
	tab      int
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	rows     int
	loadErr  error
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model. seasons may be nil.
func NewScoreboardModel(board *leaderboard.Manager, seasons SeasonSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		board:   board,
		seasons: seasons,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   max(width, tableMinWidth),
		height:  max(height, minHeight),
	}
	m.load()
	return m
}

// newBoardTable creates the leaderboard table.
func newBoardTable(width int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: leaderboard.MaxNameLen},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 12},
	}
	// Shrink the name column on narrow terminals
	if spare := width - 4 - 6 - 8 - 12 - 8; spare < leaderboard.MaxNameLen {
		columns[1].Width = max(spare, 6)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(leaderboard.MaxEntries+1),
	)
	t.SetStyles(tableStyles())
	return t
}

// boardRows formats leaderboard records as table rows.
func boardRows(records []leaderboard.Record) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Name,
			fmt.Sprintf("%d", r.Score),
			recordDate(r),
		}
	}
	return rows
}

// recordDate formats a record's date; records stored without a readable one
// show a dash.
func recordDate(r leaderboard.Record) string {
	if r.Date.IsZero() {
		return "-"
	}
	return r.Date.Format("Jan 02 2006")
}

func newSeasonTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Season", Width: 8},
			{Title: "Score", Width: 8},
			{Title: "Played", Width: 18},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)), // Leave room for header, tabs and help
	)
	t.SetStyles(tableStyles())
	return t
}

func seasonRows(entries []storage.SeasonEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Year),
			fmt.Sprintf("%d", e.Score),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func tableStyles() table.Styles {
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
	return s
}

// load fills the table for the current tab.
func (m *ScoreboardModel) load() {
	m.loadErr = nil
	switch m.tab {
	case tabBoard:
		m.table = newBoardTable(m.width)
		records := m.board.Entries()
		m.table.SetRows(boardRows(records))
		m.rows = len(records)
	case tabSeasons:
		m.table = newSeasonTable(m.height)
		m.rows = 0
		if m.seasons == nil {
			return
		}
		entries, err := m.seasons.TopSeasons(maxSeasons)
		if err != nil {
			m.loadErr = err
			return
		}
		m.table.SetRows(seasonRows(entries))
		m.rows = len(entries)
	}
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, tableMinWidth)
		m.height = max(msg.Height, minHeight)
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("CAM CRUSH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, tabCount)
	for i, title := range tabTitles {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = tabStyle.Render(title)
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return errorStyle.Render(fmt.Sprintf("Could not load seasons: %v", m.loadErr))
	}
	if m.rows == 0 {
		if m.tab == tabSeasons {
			return emptyStyle.Render("No seasons archived yet.\nFinish a season to start the record book!")
		}
		return emptyStyle.Render("No scores recorded yet.\nFinish a season to set a high score!")
	}
	return m.table.View()
}

// RunScoreboard runs the score browser.
func RunScoreboard(board *leaderboard.Manager, seasons SeasonSource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(board, seasons, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
