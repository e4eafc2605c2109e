package crush

import "github.com/vovakirdan/cam-crush/internal/core"

// Category tags what an entity does on contact.
type Category int

const (
	CategoryOpponent  Category = iota // Crushed for points
	CategoryHazard                    // Slows or locks the jump, never ends the run
	CategorySpecial                   // Once-per-season event
	CategoryCharacter                 // The steamroller (drawables only)
)

func (c Category) String() string {
	switch c {
	case CategoryOpponent:
		return "opponent"
	case CategoryHazard:
		return "hazard"
	case CategorySpecial:
		return "special"
	case CategoryCharacter:
		return "character"
	default:
		return "unknown"
	}
}

// Kind is the variant within a category. Kinds double as sprite names.
type Kind string

const (
	KindCone   Kind = "cone"
	KindSign   Kind = "sign"
	KindPapers Kind = "papers"

	KindSpike Kind = "spike"
	KindHole  Kind = "hole"

	KindSetback Kind = "setback"
	KindSurge   Kind = "surge"

	KindCam Kind = "cam"
)

var opponentKinds = [...]Kind{KindCone, KindSign, KindPapers}

// Entity is anything scrolling across the field toward the character.
type Entity struct {
	Category Category
	Kind     Kind
	Bounds   core.Box
	VX       float64 // Leftward speed in units per time-unit
	Consumed bool

	touching bool // Overlapping the character on the previous tick
}

func (e *Entity) move(dt float64) {
	e.Bounds.X -= e.VX * dt
}

// offField reports whether the entity has fully left the field on the left.
func (e *Entity) offField() bool {
	return e.Bounds.Right() < 0
}

// Character is the player's steamroller. X never changes; the world moves.
type Character struct {
	Bounds   core.Box
	VY       float64 // Negative = upward
	OnGround bool
	Phase    float64 // Animation phase, advances with time
}
