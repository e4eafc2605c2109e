package crush

import (
	"testing"

	"github.com/vovakirdan/cam-crush/internal/core"
)

// overlapping returns a box of size w x h resting on the ground inside the
// character's footprint.
func overlapping(s *Session, w, h float64) core.Box {
	c := s.state.Character.Bounds
	return core.NewBox(c.X+20, c.Bottom()-h, w, h)
}

func TestJumpRules(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	if !s.engine.Jump(&s.state) {
		t.Fatal("jump on the ground should be granted")
	}
	if s.state.Character.VY != -15 || s.state.Character.OnGround {
		t.Errorf("after jump VY = %v, OnGround = %v", s.state.Character.VY, s.state.Character.OnGround)
	}
	if s.engine.Jump(&s.state) {
		t.Error("jump while airborne should be refused")
	}

	for i := 0; i < 100 && !s.state.Character.OnGround; i++ {
		s.Tick(none(), 1)
	}
	if !s.state.Character.OnGround {
		t.Fatal("character should land")
	}
	floor := s.cfg.World.GroundY() - s.cfg.Player.Height
	if s.state.Character.Bounds.Y != floor {
		t.Errorf("landed at y = %v, expected %v", s.state.Character.Bounds.Y, floor)
	}

	s.state.Effects.LockJump(1.2)
	if s.engine.Jump(&s.state) {
		t.Error("jump while locked should be refused")
	}
	s.Tick(none(), 1)
	s.Tick(none(), 1)
	if !s.engine.Jump(&s.state) {
		t.Error("jump should be granted once the lock decays")
	}
}

func TestJumpRefusedWhilePaused(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.Tick(input(core.ActionPause), 0)

	if s.engine.Jump(&s.state) {
		t.Error("jump while paused should be refused")
	}
	s.Tick(input(core.ActionJump), 1)
	if !s.state.Character.OnGround {
		t.Error("jump input while paused should be ignored")
	}
}

func TestJumpInput(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	s.Tick(input(core.ActionJump), 1)

	if s.state.Character.OnGround {
		t.Error("jump input should launch the character")
	}
	if want := -15 + 0.85; !approx(s.state.Character.VY, want) {
		t.Errorf("VY after one tick = %v, expected %v", s.state.Character.VY, want)
	}
}

func TestSpeed(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	tests := []struct {
		name     string
		forward  bool
		fx       Effects
		expected float64
	}{
		{"base", false, Effects{}, 5.0},
		{"forward", true, Effects{}, 7.2},
		{"slowed", false, Effects{SlowFactor: 0.25, SlowRemaining: 1}, 3.75},
		{"boosted", false, Effects{BoostFactor: 0.4, BoostRemaining: 1}, 7.0},
		{"expired slow", false, Effects{SlowFactor: 0.25}, 5.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.state.Effects = tc.fx
			if got := s.engine.Speed(&s.state, tc.forward); !approx(got, tc.expected) {
				t.Errorf("Speed() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestStreakBonus(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.Run.Streak = 4

	s.state.Entities = append(s.state.Entities, Entity{Category: CategoryOpponent, Kind: KindSign, Bounds: overlapping(s, 30, 30)})
	before := s.state.Score
	s.Tick(none(), 0)

	if got := s.state.Score - before; got != 15 {
		t.Errorf("fifth hit awarded %v, expected 15", got)
	}

	// Streak adds to passive scoring too.
	before = s.state.Score
	s.Tick(none(), 2)
	if got := s.state.Score - before; got != 3 {
		t.Errorf("passive with streak = %v, expected 3", got)
	}
}

func TestHazardHoldsWhileOverlapping(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	spike := Entity{Category: CategoryHazard, Kind: KindSpike, Bounds: overlapping(s, 90, 16)}
	s.state.Entities = append(s.state.Entities, spike)

	events := s.Tick(none(), 0)
	if !hasEvent(events, EventHazardHit) {
		t.Fatal("spike contact should register")
	}
	if s.state.Effects.SlowFactor != 0.25 || s.state.Effects.SlowRemaining != 3.0 {
		t.Fatalf("spike effect = %+v", s.state.Effects)
	}

	// Still overlapping: the slow is re-applied every tick, the hit reported once.
	for i := range 4 {
		events = s.Tick(none(), 1)
		if hasEvent(events, EventHazardHit) {
			t.Errorf("tick %d: continuous contact reported a new hit", i)
		}
		if !s.state.Effects.Slowed() || s.state.Effects.SlowRemaining != 3.0 {
			t.Fatalf("tick %d: slow = %+v, expected held at 3", i, s.state.Effects)
		}
	}

	// Clear of the spike, the timer runs down.
	s.state.Entities[0].Bounds.X = 600
	s.Tick(none(), 1)
	if s.state.Effects.SlowRemaining != 2.0 {
		t.Errorf("slow remaining = %v, expected 2", s.state.Effects.SlowRemaining)
	}

	s.state.Entities[0].Bounds = overlapping(s, 90, 16)
	events = s.Tick(none(), 0)
	if !hasEvent(events, EventHazardHit) {
		t.Error("new contact should report a hit")
	}
	if s.state.Effects.SlowRemaining != 3.0 {
		t.Errorf("slow remaining = %v, expected 3", s.state.Effects.SlowRemaining)
	}
}

func TestSpikeDuringSetbackRestartsSlow(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.Effects.Slow(0.25, 5.0)

	s.state.Entities = append(s.state.Entities, Entity{Category: CategoryHazard, Kind: KindSpike, Bounds: overlapping(s, 90, 16)})
	s.Tick(none(), 0)

	if s.state.Effects.SlowRemaining != 3.0 {
		t.Errorf("slow remaining = %v, expected the spike to set 3", s.state.Effects.SlowRemaining)
	}
}

func TestHoleLocksJump(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	s.state.Entities = append(s.state.Entities, Entity{Category: CategoryHazard, Kind: KindHole, Bounds: overlapping(s, 80, 12)})
	s.Tick(none(), 0)

	if s.state.Effects.JumpLockRemaining != 1.2 {
		t.Errorf("jump lock = %v, expected 1.2", s.state.Effects.JumpLockRemaining)
	}
	if s.engine.Jump(&s.state) {
		t.Error("jump should be refused over a hole")
	}
	if len(s.state.Entities) != 1 {
		t.Error("hazards stay on the field after contact")
	}

	// The lock holds for as long as the character is over the hole.
	s.Tick(none(), 2)
	if s.state.Effects.JumpLockRemaining != 1.2 || s.engine.Jump(&s.state) {
		t.Errorf("jump lock = %v, expected held at 1.2 over the hole", s.state.Effects.JumpLockRemaining)
	}
}

func TestEntitiesLeaveField(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)

	s.state.Entities = append(s.state.Entities,
		Entity{Category: CategoryOpponent, Kind: KindPapers, Bounds: core.NewBox(5, 10, 30, 30), VX: 10},
		Entity{Category: CategoryOpponent, Kind: KindCone, Bounds: core.NewBox(900, 10, 30, 30), VX: 10},
	)
	s.Tick(none(), 4)

	if len(s.state.Entities) != 1 {
		t.Fatalf("expected 1 entity left, got %d", len(s.state.Entities))
	}
	if got := s.state.Entities[0].Bounds.X; got != 860 {
		t.Errorf("entity x = %v, expected 860", got)
	}
}

func TestSpecialSpawnsOncePerSeason(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.WeekIndex = 4 // id 5
	s.startWeek()

	if len(s.state.Pending) != 1 || s.state.Pending[0] != KindSetback {
		t.Fatalf("pending = %v, expected [setback]", s.state.Pending)
	}

	// Not before 35% of the week.
	s.Tick(none(), 20)
	if len(s.state.Entities) != 0 {
		t.Fatal("special should not spawn before the threshold")
	}
	s.Tick(none(), 2)
	if len(s.state.Entities) != 1 || s.state.Entities[0].Kind != KindSetback {
		t.Fatalf("entities = %+v, expected the setback", s.state.Entities)
	}
	sp := s.state.Entities[0]
	if sp.Bounds.W != 44 || sp.Bounds.Bottom() != s.cfg.World.GroundY() {
		t.Errorf("special bounds = %+v", sp.Bounds)
	}
	if !approx(sp.VX, 0.9*5.0*s.Week().SpeedScale) {
		t.Errorf("special vx = %v", sp.VX)
	}

	s.state.Entities[0].Bounds = overlapping(s, 44, 44)
	events := s.Tick(none(), 0)
	if !hasEvent(events, EventSpecialHit) || !s.state.UsedSetback {
		t.Fatalf("setback not consumed: %+v", events)
	}
	if s.state.Effects.SlowFactor != 0.25 || s.state.Effects.SlowRemaining != 5.0 {
		t.Errorf("setback effect = %+v", s.state.Effects)
	}
	if text, ok := s.Toast(); !ok || text != QuipSetback {
		t.Errorf("toast = %q, %v", text, ok)
	}

	// Touching a consumed special does nothing.
	events = s.Tick(none(), 0)
	if hasEvent(events, EventSpecialHit) {
		t.Error("consumed special applied twice")
	}

	// Replaying the week never seeds it again.
	s.startWeek()
	if len(s.state.Pending) != 0 {
		t.Errorf("pending after restart = %v", s.state.Pending)
	}
	s.Tick(none(), 30)
	for _, e := range s.state.Entities {
		if e.Category == CategorySpecial {
			t.Error("special respawned after consumption")
		}
	}
}

func TestSurgeBoost(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.WeekIndex = 8 // id 9
	s.startWeek()

	if len(s.state.Pending) != 1 || s.state.Pending[0] != KindSurge {
		t.Fatalf("pending = %v, expected [surge]", s.state.Pending)
	}
	s.Tick(none(), 22)
	s.state.Entities[0].Bounds = overlapping(s, 44, 44)
	s.Tick(none(), 0)

	if !s.state.UsedSurge {
		t.Error("surge should be marked used")
	}
	if s.state.Effects.BoostFactor != 0.4 || s.state.Effects.BoostRemaining != 6.0 {
		t.Errorf("surge effect = %+v", s.state.Effects)
	}
}

func TestUnusedSpecialSeededAgainNextSeason(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.state.UsedSetback = true

	s.StartSeason(2026)
	s.state.WeekIndex = 4
	s.startWeek()

	if len(s.state.Pending) != 1 {
		t.Errorf("a new season should seed the setback again, pending = %v", s.state.Pending)
	}
}

func TestWeekStartResetsField(t *testing.T) {
	s, _ := newTestSession(t, quietConfig())
	s.StartSeason(2025)
	s.engine.Jump(&s.state)
	s.Tick(none(), 3)
	s.state.Effects.Slow(0.25, 3)
	s.state.Run.Streak = 7
	s.state.Entities = append(s.state.Entities, Entity{Category: CategoryOpponent, Bounds: core.NewBox(800, 0, 10, 10)})

	s.state.WeekIndex = 1
	s.startWeek()

	st := s.State()
	if !st.Character.OnGround || st.Character.VY != 0 {
		t.Errorf("character not reset: %+v", st.Character)
	}
	if st.Effects != (Effects{}) {
		t.Errorf("effects not reset: %+v", st.Effects)
	}
	if st.Run.Streak != 0 || st.Run.Elapsed != 0 || len(st.Entities) != 0 {
		t.Errorf("run not reset: %+v, %d entities", st.Run, len(st.Entities))
	}
	if !approx(st.Run.BaseSpeed, 5.0*1.02) {
		t.Errorf("base speed = %v, expected 5.1", st.Run.BaseSpeed)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
