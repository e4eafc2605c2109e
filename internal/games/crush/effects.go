package crush

import "math"

// Effects is the ledger of time-decaying movement modifiers.
// Remaining times are in time-units; a modifier is active while its
// remaining time is positive.
type Effects struct {
	SlowFactor        float64 // Fraction of speed removed, 0..1
	SlowRemaining     float64
	BoostFactor       float64 // Fraction of speed added
	BoostRemaining    float64
	JumpLockRemaining float64
}

// Reset clears every modifier.
func (e *Effects) Reset() {
	*e = Effects{}
}

// Decay counts every timer down by dt, flooring at zero.
func (e *Effects) Decay(dt float64) {
	e.SlowRemaining = math.Max(0, e.SlowRemaining-dt)
	e.BoostRemaining = math.Max(0, e.BoostRemaining-dt)
	e.JumpLockRemaining = math.Max(0, e.JumpLockRemaining-dt)
}

// Slow sets the slow modifier, restarting its timer at duration.
func (e *Effects) Slow(factor, duration float64) {
	e.SlowFactor = factor
	e.SlowRemaining = duration
}

// Boost sets the speed boost, restarting its timer at duration.
func (e *Effects) Boost(factor, duration float64) {
	e.BoostFactor = factor
	e.BoostRemaining = duration
}

// LockJump disables jumping for duration.
func (e *Effects) LockJump(duration float64) {
	e.JumpLockRemaining = duration
}

func (e Effects) Slowed() bool     { return e.SlowRemaining > 0 }
func (e Effects) Boosted() bool    { return e.BoostRemaining > 0 }
func (e Effects) JumpLocked() bool { return e.JumpLockRemaining > 0 }

// Apply scales speed by the active modifiers.
func (e Effects) Apply(speed float64) float64 {
	if e.Slowed() {
		speed *= 1 - e.SlowFactor
	}
	if e.Boosted() {
		speed *= 1 + e.BoostFactor
	}
	return speed
}
