package crush

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/cam-crush/internal/config"
	"github.com/vovakirdan/cam-crush/internal/core"
)

// Toast texts.
const (
	QuipBackward = "Cam stops for nobody. All we know is victory."
	QuipSetback  = "Uh oh, you drafted BenJarvus Green-Ellis. That's quite the setback."
	QuipSurge    = "You picked up Odell Beckham Jr.!!! No one can beat you now!"
)

var crushQuips = [...]string{"GG", "Experts predict: It's Joever", "Dynasty loading..."}

// Engine advances one week of play. It holds no session state of its own:
// every step reads and writes the State it is handed.
type Engine struct {
	cfg     *config.CrushConfig
	rng     *rand.Rand
	spawner *Spawner
}

// NewEngine creates an engine with a seeded RNG.
func NewEngine(cfg *config.CrushConfig, seed int64) *Engine {
	rng := rand.New(rand.NewSource(seed))
	return &Engine{
		cfg:     cfg,
		rng:     rng,
		spawner: NewSpawner(cfg, rng),
	}
}

// ResetCharacter puts the character back on the ground at its start position.
func (e *Engine) ResetCharacter(c *Character) {
	p := e.cfg.Player
	*c = Character{
		Bounds:   core.NewBox(p.X, e.cfg.World.GroundY()-p.Height, p.Width, p.Height),
		OnGround: true,
	}
}

// Speed returns the effective scroll speed for this tick.
func (e *Engine) Speed(st *State, forward bool) float64 {
	speed := st.Run.BaseSpeed
	if forward {
		speed += e.cfg.Physics.ForwardBonus
	}
	return st.Effects.Apply(speed)
}

// Jump launches the character. It is refused outside a running week, while
// the jump is locked, or while airborne.
func (e *Engine) Jump(st *State) bool {
	if st.Scene != SceneRun || st.Effects.JumpLocked() || !st.Character.OnGround {
		return false
	}
	st.Character.VY = e.cfg.Physics.JumpImpulse
	st.Character.OnGround = false
	return true
}

// Step advances the week by dt time-units. It returns the events of the
// tick and whether the week's duration has been reached.
func (e *Engine) Step(st *State, forward bool, dt float64) ([]Event, bool) {
	if dt < 0 {
		dt = 0
	}

	st.Run.Elapsed += dt
	st.Effects.Decay(dt)
	speed := e.Speed(st, forward)

	e.applyPhysics(&st.Character, dt)
	e.spawner.Spawn(st, speed, dt)
	moveEntities(st, dt)
	events := e.collide(st)

	passive := e.cfg.Scoring.PassiveRate * dt
	if st.Run.Streak >= e.cfg.Scoring.StreakThreshold {
		passive += e.cfg.Scoring.StreakPassive * dt
	}
	if st.Run.FinalsBonus > 0 {
		passive *= 1 + st.Run.FinalsBonus
	}
	st.Score += passive
	st.Best = max(st.Best, st.Points())

	return events, st.Run.Elapsed >= st.Run.Duration
}

func (e *Engine) applyPhysics(c *Character, dt float64) {
	c.VY += e.cfg.Physics.Gravity * dt
	c.Bounds.Y += c.VY * dt
	floor := e.cfg.World.GroundY() - c.Bounds.H
	if c.Bounds.Y >= floor {
		c.Bounds.Y = floor
		c.VY = 0
		c.OnGround = true
	}
	c.Phase += dt * e.cfg.Physics.BobRate
}

func moveEntities(st *State, dt float64) {
	kept := st.Entities[:0]
	for i := range st.Entities {
		ent := st.Entities[i]
		ent.move(dt)
		if ent.offField() {
			continue
		}
		kept = append(kept, ent)
	}
	st.Entities = kept
}

// collide resolves overlaps between the character and every entity.
// A hazard re-applies its effect on every tick of overlap, so its timer only
// starts running down once the character is clear. The hit event is reported
// once per contact.
func (e *Engine) collide(st *State) []Event {
	var events []Event
	body := st.Character.Bounds
	kept := st.Entities[:0]
	for i := range st.Entities {
		ent := st.Entities[i]
		overlap := body.Intersects(ent.Bounds)

		switch ent.Category {
		case CategoryOpponent:
			if overlap {
				events = append(events, e.crush(st, ent))
				continue
			}
		case CategoryHazard:
			if overlap {
				e.applyHazard(st, ent.Kind)
				if !ent.touching {
					events = append(events, Event{Type: EventHazardHit, Kind: ent.Kind})
				}
			}
			ent.touching = overlap
		case CategorySpecial:
			if overlap && !ent.Consumed {
				ent.Consumed = true
				events = append(events, e.applySpecial(st, ent.Kind))
			}
		}
		kept = append(kept, ent)
	}
	st.Entities = kept
	return events
}

func (e *Engine) crush(st *State, ent Entity) Event {
	sc := e.cfg.Scoring
	st.Run.Streak++
	add := sc.OpponentPoints
	if st.Run.Streak >= sc.StreakThreshold {
		add += sc.StreakBonus
	}
	if st.Run.FinalsBonus > 0 {
		add = int(math.Floor(float64(add) * (1 + st.Run.FinalsBonus)))
	}
	st.Score += float64(add)

	ev := Event{Type: EventOpponentCrushed, Kind: ent.Kind, Points: add}
	if e.rng.Float64() < sc.QuipChance {
		ev.Text = crushQuips[e.rng.Intn(len(crushQuips))]
	}
	return ev
}

func (e *Engine) applyHazard(st *State, k Kind) {
	fx := e.cfg.Effects
	switch k {
	case KindSpike:
		st.Effects.Slow(fx.SpikeSlow, fx.SpikeDuration)
	case KindHole:
		st.Effects.LockJump(fx.HoleLock)
	}
}

func (e *Engine) applySpecial(st *State, k Kind) Event {
	fx := e.cfg.Effects
	st.markUsed(k)
	ev := Event{Type: EventSpecialHit, Kind: k}
	switch k {
	case KindSetback:
		st.Effects.Slow(fx.SetbackSlow, fx.SetbackDuration)
		ev.Text = QuipSetback
	case KindSurge:
		st.Effects.Boost(fx.SurgeBoost, fx.SurgeDuration)
		ev.Text = QuipSurge
	}
	return ev
}
