// Package crush implements Cam Crush: a steamroller runs through a 17-week
// fantasy football season crushing opponents for points while hazards slow
// it down or lock its jump.
//
// A Session owns all game state. The platform drives it with Update (wall
// clock frames) or Tick (time-units), and draws it through Render or
// Drawables. Nothing in this package knows about terminals.
package crush

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cam-crush/internal/config"
	"github.com/vovakirdan/cam-crush/internal/core"
	"github.com/vovakirdan/cam-crush/internal/leaderboard"
)

var (
	// ErrYearOutOfRange is returned when a season year is outside the configured range.
	ErrYearOutOfRange = errors.New("crush: season year out of range")
	// ErrNoPendingScore is returned by SubmitName outside the name-entry scene.
	ErrNoPendingScore = errors.New("crush: no score awaiting a name")
)

// Board is the leaderboard the session reports finished seasons to.
type Board interface {
	Qualifies(score int) bool
	ValidateName(name string) (string, error)
	Persist(name string, score int) (leaderboard.Record, error)
	Best() int
	RecordBest(score int) bool
}

// Archive keeps a history of completed seasons.
type Archive interface {
	SaveSeason(year, score int) (int64, error)
}

// Session is one player's game: season progression, scenes, the engine and
// the timers that drive automatic transitions.
type Session struct {
	cfg     config.CrushConfig
	engine  *Engine
	board   Board
	archive Archive
	logger  *log.Logger
	seed    int64

	state     State
	graveyard deadline
	nameEntry deadline
	toast     toast
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithArchive records every completed season in a.
func WithArchive(a Archive) Option {
	return func(s *Session) { s.archive = a }
}

// WithSeed seeds the spawn and quip RNG.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// NewSession creates a session on the home scene.
func NewSession(cfg config.CrushConfig, board Board, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		board:  board,
		logger: log.New(io.Discard),
		seed:   time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = NewEngine(&s.cfg, s.seed)
	s.state.Scene = SceneHome
	s.state.Year = cfg.Season.StartYear
	s.state.SelectedYear = cfg.Season.StartYear
	s.state.Best = board.Best()
	return s
}

// Config returns the session's tuning.
func (s *Session) Config() config.CrushConfig {
	return s.cfg
}

// Scene returns the current scene.
func (s *Session) Scene() Scene {
	return s.state.Scene
}

// State returns a copy of the session state.
func (s *Session) State() State {
	st := s.state
	st.Entities = append([]Entity(nil), s.state.Entities...)
	st.Pending = append([]Kind(nil), s.state.Pending...)
	return st
}

// Week returns the descriptor of the current week.
func (s *Session) Week() config.WeekConfig {
	return s.cfg.Season.Weeks[s.state.WeekIndex]
}

// Toast returns the notification currently on screen, if any.
func (s *Session) Toast() (string, bool) {
	return s.toast.current()
}

// NameEntryRemaining returns how long the name-entry scene stays open.
func (s *Session) NameEntryRemaining() time.Duration {
	return s.nameEntry.left()
}

// GraveyardRemaining returns how long the graveyard is shown.
func (s *Session) GraveyardRemaining() time.Duration {
	return s.graveyard.left()
}

// TimeUnits converts a wall-clock frame to simulation time-units, clamping
// long frames so a stall never becomes a jump.
func (s *Session) TimeUnits(frame time.Duration) float64 {
	t := s.cfg.Timing
	frame = min(max(frame, 0), t.MaxFrameDelta)
	return float64(frame) / float64(t.ReferenceInterval)
}

// Update is the scheduler step: it advances the scene timers and the toast
// by the real frame time, then ticks the scene with the clamped delta.
func (s *Session) Update(frame time.Duration, in core.InputFrame) []Event {
	if frame < 0 {
		frame = 0
	}
	s.toast.advance(frame)

	// Name-entry first: a timeout armed by the graveyard this frame starts
	// counting on the next one.
	scene := s.state.Scene
	var events []Event
	if s.nameEntry.advance(frame) {
		events = append(events, s.expireNameEntry()...)
	}
	if s.graveyard.advance(frame) {
		events = append(events, s.leaveGraveyard()...)
	}
	// Input for this frame was aimed at the scene a timer just left.
	if s.state.Scene != scene {
		return events
	}
	return append(events, s.Tick(in, s.TimeUnits(frame))...)
}

// Tick handles input for the current scene and, in a running week,
// advances the simulation by dt time-units.
func (s *Session) Tick(in core.InputFrame, dt float64) []Event {
	switch s.state.Scene {
	case SceneHome:
		s.tickHome(in)
	case SceneRun:
		return s.tickRun(in, dt)
	case ScenePause:
		s.tickPause(in)
	case SceneGraveyard:
		return s.tickGraveyard(in)
	}
	return nil
}

func (s *Session) notify(events []Event) {
	for _, ev := range events {
		if ev.Text == "" {
			continue
		}
		d := s.cfg.Timing.ToastDuration
		if ev.Type == EventSpecialHit {
			d = s.cfg.Timing.SpecialToast
		}
		s.toast.show(ev.Text, d)
	}
}

// toast is a single on-screen notification; a new one replaces the old.
type toast struct {
	text      string
	remaining time.Duration
}

func (t *toast) show(text string, d time.Duration) {
	t.text = text
	t.remaining = d
}

func (t *toast) advance(d time.Duration) {
	t.remaining = max(0, t.remaining-d)
}

func (t *toast) current() (string, bool) {
	if t.remaining <= 0 {
		return "", false
	}
	return t.text, true
}
