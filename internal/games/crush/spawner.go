package crush

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/cam-crush/internal/config"
	"github.com/vovakirdan/cam-crush/internal/core"
)

// Spawner places new opponents, hazards and seeded specials at the right
// edge of the field. All rates are probabilities per time-unit.
type Spawner struct {
	cfg *config.CrushConfig
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg *config.CrushConfig, rng *rand.Rand) *Spawner {
	return &Spawner{cfg: cfg, rng: rng}
}

// OpponentRate returns the per-time-unit opponent probability after
// elapsed time-units of the week.
func (sp *Spawner) OpponentRate(elapsed float64) float64 {
	s := sp.cfg.Spawn
	return s.OpponentBaseRate + math.Min(s.OpponentRateCap, elapsed*s.OpponentRateGrowth)
}

// Spawn rolls for new entities this tick and releases pending specials once
// the week passes the special threshold.
func (sp *Spawner) Spawn(st *State, speed, dt float64) {
	if sp.rng.Float64() < sp.OpponentRate(st.Run.Elapsed)*dt {
		st.Entities = append(st.Entities, sp.newOpponent(speed))
	}
	if sp.rng.Float64() < sp.cfg.Spawn.HazardRate*dt {
		st.Entities = append(st.Entities, sp.newHazard(speed))
	}
	if len(st.Pending) > 0 && st.Run.Elapsed > st.Run.Duration*sp.cfg.Spawn.SpecialAt {
		for _, k := range st.Pending {
			st.Entities = append(st.Entities, sp.newSpecial(k, speed))
		}
		st.Pending = st.Pending[:0]
	}
}

func (sp *Spawner) newOpponent(speed float64) Entity {
	s := sp.cfg.Spawn
	kind := opponentKinds[sp.rng.Intn(len(opponentKinds))]
	size := s.OpponentMinSize + math.Round(sp.rng.Float64()*s.OpponentSizeRange)
	ground := sp.cfg.World.GroundY()
	return Entity{
		Category: CategoryOpponent,
		Kind:     kind,
		Bounds:   core.NewBox(sp.cfg.World.Width+size, ground-size, size, size),
		VX:       speed,
	}
}

func (sp *Spawner) newHazard(speed float64) Entity {
	s := sp.cfg.Spawn
	ground := sp.cfg.World.GroundY()
	e := Entity{Category: CategoryHazard, VX: speed}
	if sp.rng.Float64() < 0.5 {
		e.Kind = KindSpike
		e.Bounds = core.NewBox(sp.cfg.World.Width+s.SpikeWidth, ground-s.SpikeHeight, s.SpikeWidth, s.SpikeHeight)
	} else {
		// Holes sit partly below the ground line.
		e.Kind = KindHole
		e.Bounds = core.NewBox(sp.cfg.World.Width+s.HoleWidth, ground-s.HoleHeight+s.HoleSink, s.HoleWidth, s.HoleHeight)
	}
	return e
}

func (sp *Spawner) newSpecial(k Kind, speed float64) Entity {
	s := sp.cfg.Spawn
	return Entity{
		Category: CategorySpecial,
		Kind:     k,
		Bounds:   core.NewBox(sp.cfg.World.Width+s.SpecialLead, sp.cfg.World.GroundY()-s.SpecialSize, s.SpecialSize, s.SpecialSize),
		VX:       speed * s.SpecialSpeed,
	}
}
