package crush

// Scene is the top-level mode of a session.
type Scene int

const (
	SceneHome Scene = iota
	SceneRun
	ScenePause
	SceneGraveyard
	SceneNameEntry
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "home"
	case SceneRun:
		return "run"
	case ScenePause:
		return "pause"
	case SceneGraveyard:
		return "graveyard"
	case SceneNameEntry:
		return "name-entry"
	default:
		return "unknown"
	}
}

// RunState is the per-week simulation clock and scoring context.
type RunState struct {
	Elapsed     float64 // Time-units since the week started
	Duration    float64
	BaseSpeed   float64
	FinalsBonus float64 // 0 outside finals weeks
	Streak      int     // Opponents crushed this week
}

// State is the whole mutable session state. The session owns it and lends
// it to the engine for each step; the renderer only reads it.
type State struct {
	Scene        Scene
	Year         int
	SelectedYear int // Home screen year selector
	WeekIndex    int
	Score        float64
	Best         int
	FinalScore   int // Season score awaiting the leaderboard
	NameError    string

	UsedSetback bool
	UsedSurge   bool

	Run       RunState
	Character Character
	Effects   Effects
	Entities  []Entity
	Pending   []Kind // Specials seeded for this week, not yet on the field
}

// Points returns the score as shown and stored.
func (st *State) Points() int {
	return int(st.Score)
}

func (st *State) markUsed(k Kind) {
	switch k {
	case KindSetback:
		st.UsedSetback = true
	case KindSurge:
		st.UsedSurge = true
	}
}

// EventType identifies what happened during a tick.
type EventType int

const (
	EventOpponentCrushed EventType = iota
	EventHazardHit
	EventSpecialHit
	EventWeekEnded
	EventSeasonOver
	EventScoreSaved
)

func (t EventType) String() string {
	switch t {
	case EventOpponentCrushed:
		return "opponent-crushed"
	case EventHazardHit:
		return "hazard-hit"
	case EventSpecialHit:
		return "special-hit"
	case EventWeekEnded:
		return "week-ended"
	case EventSeasonOver:
		return "season-over"
	case EventScoreSaved:
		return "score-saved"
	default:
		return "unknown"
	}
}

// Event reports a notable change. Text, when set, is shown as a toast.
type Event struct {
	Type   EventType
	Kind   Kind
	Points int
	Text   string
}
