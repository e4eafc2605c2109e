package crush

import (
	"errors"
	"time"

	"github.com/vovakirdan/cam-crush/internal/core"
	"github.com/vovakirdan/cam-crush/internal/leaderboard"
)

// Name-entry error messages.
const (
	MsgEmptyName  = "Please enter a name."
	MsgBannedName = "That name is not allowed. Try another."
)

func (s *Session) tickHome(in core.InputFrame) {
	season := s.cfg.Season
	switch {
	case in.Has(core.ActionUp):
		s.state.SelectedYear = min(s.state.SelectedYear+1, season.LastYear())
	case in.Has(core.ActionDown):
		s.state.SelectedYear = max(s.state.SelectedYear-1, season.StartYear)
	case in.Has(core.ActionConfirm):
		//nolint:errcheck // The selector never leaves the configured range.
		s.StartSeason(s.state.SelectedYear)
	}
}

func (s *Session) tickRun(in core.InputFrame, dt float64) []Event {
	switch {
	case in.Has(core.ActionQuit):
		s.quitRun()
		return nil
	case in.Has(core.ActionPause), in.Has(core.ActionBack):
		s.state.Scene = ScenePause
		return nil
	}

	if in.Has(core.ActionBackward) {
		s.toast.show(QuipBackward, s.cfg.Timing.ToastDuration)
	}
	if in.Has(core.ActionJump) {
		s.engine.Jump(&s.state)
	}

	events, done := s.engine.Step(&s.state, in.Has(core.ActionForward), dt)
	s.notify(events)
	if done {
		events = append(events, s.endWeek()...)
	}
	return events
}

func (s *Session) tickPause(in core.InputFrame) {
	switch {
	case in.Has(core.ActionQuit):
		s.quitRun()
	case in.Has(core.ActionPause), in.Has(core.ActionConfirm), in.Has(core.ActionBack):
		s.state.Scene = SceneRun
	}
}

func (s *Session) tickGraveyard(in core.InputFrame) []Event {
	if in.Has(core.ActionConfirm) {
		s.graveyard.cancel()
		return s.leaveGraveyard()
	}
	return nil
}

// quitRun abandons the season. The score is discarded; only the best score
// survives.
func (s *Session) quitRun() {
	s.recordBest()
	s.logger.Info("run abandoned", "year", s.state.Year, "week", s.Week().Name, "score", s.state.Points())
	s.goHome()
}

// leaveGraveyard opens name-entry when the season score makes the board.
func (s *Session) leaveGraveyard() []Event {
	if !s.board.Qualifies(s.state.FinalScore) {
		s.goHome()
		return nil
	}
	s.state.Scene = SceneNameEntry
	s.state.NameError = ""
	s.nameEntry.arm(s.cfg.Timing.NameEntryTimeout)
	return nil
}

// SubmitName validates name and records the pending score under it.
// On a validation error the scene stays open and State.NameError is set.
func (s *Session) SubmitName(name string) error {
	if s.state.Scene != SceneNameEntry {
		return ErrNoPendingScore
	}
	clean, err := s.board.ValidateName(name)
	if err != nil {
		switch {
		case errors.Is(err, leaderboard.ErrEmptyName):
			s.state.NameError = MsgEmptyName
		case errors.Is(err, leaderboard.ErrBannedName):
			s.state.NameError = MsgBannedName
		default:
			s.state.NameError = err.Error()
		}
		return err
	}
	if _, err := s.board.Persist(clean, s.state.FinalScore); err != nil {
		s.state.NameError = err.Error()
		return err
	}
	s.logger.Info("score saved", "name", clean, "score", s.state.FinalScore)
	s.goHome()
	return nil
}

// SkipName discards the pending score.
func (s *Session) SkipName() {
	if s.state.Scene != SceneNameEntry {
		return
	}
	s.logger.Info("score skipped", "score", s.state.FinalScore)
	s.goHome()
}

func (s *Session) expireNameEntry() []Event {
	if s.state.Scene != SceneNameEntry {
		return nil
	}
	rec, err := s.board.Persist(leaderboard.DefaultName, s.state.FinalScore)
	s.goHome()
	if err != nil {
		s.logger.Warn("cannot save timed-out score", "error", err)
		return nil
	}
	s.logger.Info("name entry timed out", "name", rec.Name, "score", rec.Score)
	return []Event{{Type: EventScoreSaved, Points: rec.Score, Text: rec.Name}}
}

func (s *Session) goHome() {
	s.cancelTimers()
	s.state.Scene = SceneHome
	s.state.NameError = ""
	s.state.Entities = s.state.Entities[:0]
	s.state.Pending = s.state.Pending[:0]
	s.state.Effects.Reset()
}

func (s *Session) cancelTimers() {
	s.graveyard.cancel()
	s.nameEntry.cancel()
}

// deadline is a single-shot timer advanced by the scheduler.
type deadline struct {
	remaining time.Duration
	armed     bool
}

func (d *deadline) arm(after time.Duration) {
	d.remaining = after
	d.armed = true
}

func (d *deadline) cancel() {
	*d = deadline{}
}

// advance counts down by elapsed and reports whether the deadline fired.
// A deadline fires once.
func (d *deadline) advance(elapsed time.Duration) bool {
	if !d.armed {
		return false
	}
	d.remaining -= elapsed
	if d.remaining > 0 {
		return false
	}
	d.cancel()
	return true
}

func (d *deadline) left() time.Duration {
	if !d.armed {
		return 0
	}
	return d.remaining
}
