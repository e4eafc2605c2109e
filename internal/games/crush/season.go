package crush

import "fmt"

// StartSeason resets progression for year and starts the first week.
func (s *Session) StartSeason(year int) error {
	season := s.cfg.Season
	if year < season.StartYear || year > season.LastYear() {
		return fmt.Errorf("%w: %d not in %d..%d", ErrYearOutOfRange, year, season.StartYear, season.LastYear())
	}
	s.cancelTimers()
	s.state.Year = year
	s.state.SelectedYear = year
	s.state.WeekIndex = 0
	s.state.Score = 0
	s.state.FinalScore = 0
	s.state.UsedSetback = false
	s.state.UsedSurge = false
	s.logger.Info("season started", "year", year)
	s.startWeek()
	return nil
}

// startWeek resets the field for the current week and seeds its special,
// if the week carries one that has not been used this season.
func (s *Session) startWeek() {
	week := s.Week()
	st := &s.state

	s.engine.ResetCharacter(&st.Character)
	st.Effects.Reset()
	st.Entities = st.Entities[:0]
	st.Pending = st.Pending[:0]
	if !st.UsedSetback && week.ID == s.cfg.Season.SetbackWeek {
		st.Pending = append(st.Pending, KindSetback)
	}
	if !st.UsedSurge && week.ID == s.cfg.Season.SurgeWeek {
		st.Pending = append(st.Pending, KindSurge)
	}

	st.Run = RunState{
		Duration:  week.Duration,
		BaseSpeed: s.cfg.Physics.BaseSpeed * week.SpeedScale,
	}
	if week.Finals {
		st.Run.FinalsBonus = week.FinalsBonus
		if st.Run.FinalsBonus <= 0 {
			st.Run.FinalsBonus = s.cfg.Scoring.DefaultFinalsBonus
		}
	}
	st.Scene = SceneRun
	s.logger.Debug("week started", "year", st.Year, "week", week.Name, "specials", len(st.Pending))
}

// endWeek moves to the next week, or to the graveyard after the last one.
func (s *Session) endWeek() []Event {
	week := s.Week()
	s.recordBest()
	events := []Event{{Type: EventWeekEnded, Points: s.state.Points()}}
	s.logger.Debug("week ended", "week", week.Name, "score", s.state.Points(), "streak", s.state.Run.Streak)

	if s.state.WeekIndex+1 >= len(s.cfg.Season.Weeks) {
		return append(events, s.endSeason())
	}
	s.state.WeekIndex++
	s.startWeek()
	return events
}

// endSeason shows the graveyard and archives the season. The home year
// selector moves on to the next season when there is one.
func (s *Session) endSeason() Event {
	st := &s.state
	st.Scene = SceneGraveyard
	st.FinalScore = st.Points()
	st.Entities = st.Entities[:0]
	st.Pending = st.Pending[:0]
	st.Effects.Reset()
	if st.Year < s.cfg.Season.LastYear() {
		st.SelectedYear = st.Year + 1
	}

	if s.archive != nil {
		if _, err := s.archive.SaveSeason(st.Year, st.FinalScore); err != nil {
			s.logger.Warn("cannot archive season", "year", st.Year, "error", err)
		}
	}
	s.graveyard.arm(s.cfg.Timing.GraveyardDelay)
	s.logger.Info("season over", "year", st.Year, "score", st.FinalScore)
	return Event{Type: EventSeasonOver, Points: st.FinalScore}
}

func (s *Session) recordBest() {
	if s.board.RecordBest(s.state.Points()) {
		s.logger.Debug("new best", "score", s.state.Points())
	}
	s.state.Best = max(s.state.Best, s.board.Best())
}
