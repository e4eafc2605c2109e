package crush

import "testing"

func TestEffectsDecayFloorsAtZero(t *testing.T) {
	fx := Effects{SlowFactor: 0.25, SlowRemaining: 1, BoostFactor: 0.4, BoostRemaining: 3, JumpLockRemaining: 0.5}

	fx.Decay(2)

	if fx.SlowRemaining != 0 || fx.BoostRemaining != 1 || fx.JumpLockRemaining != 0 {
		t.Errorf("after decay: %+v", fx)
	}
	if fx.Slowed() || !fx.Boosted() || fx.JumpLocked() {
		t.Errorf("active flags wrong: slowed %v boosted %v locked %v", fx.Slowed(), fx.Boosted(), fx.JumpLocked())
	}
}

func TestEffectsRestartTimer(t *testing.T) {
	var fx Effects

	fx.Slow(0.25, 5) // setback
	fx.Slow(0.25, 3) // spike during the setback
	if fx.SlowRemaining != 3 {
		t.Errorf("slow remaining = %v, expected the latest slow to set 3", fx.SlowRemaining)
	}

	fx.Boost(0.4, 6)
	fx.Decay(4)
	fx.Boost(0.4, 6)
	if fx.BoostRemaining != 6 {
		t.Errorf("boost remaining = %v, expected 6", fx.BoostRemaining)
	}

	fx.LockJump(1.2)
	fx.LockJump(0.5)
	if fx.JumpLockRemaining != 0.5 {
		t.Errorf("jump lock = %v, expected 0.5", fx.JumpLockRemaining)
	}
}

func TestEffectsApply(t *testing.T) {
	tests := []struct {
		name     string
		fx       Effects
		expected float64
	}{
		{"none", Effects{}, 10},
		{"slow", Effects{SlowFactor: 0.25, SlowRemaining: 1}, 7.5},
		{"boost", Effects{BoostFactor: 0.4, BoostRemaining: 1}, 14},
		{"both", Effects{SlowFactor: 0.25, SlowRemaining: 1, BoostFactor: 0.4, BoostRemaining: 1}, 10.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fx.Apply(10); !approx(got, tc.expected) {
				t.Errorf("Apply(10) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEffectsReset(t *testing.T) {
	fx := Effects{SlowFactor: 0.25, SlowRemaining: 1, JumpLockRemaining: 2}
	fx.Reset()
	if fx != (Effects{}) {
		t.Errorf("after reset: %+v", fx)
	}
}
