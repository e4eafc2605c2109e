package config

import (
	_ "embed"
	"fmt"
	"time"
)

//go:embed defaults/crush.yaml
var defaultCrushYAML []byte

// DefaultCrushConfig returns the built-in Cam Crush configuration.
// It mirrors defaults/crush.yaml and backs it up if the embed fails to parse.
func DefaultCrushConfig() CrushConfig {
	return CrushConfig{
		World: WorldConfig{
			Width:        960,
			Height:       540,
			GroundOffset: 78,
		},
		Timing: TimingConfig{
			ReferenceInterval: 16667 * time.Microsecond,
			MaxFrameDelta:     32 * time.Millisecond,
			GraveyardDelay:    6 * time.Second,
			NameEntryTimeout:  30 * time.Second,
			ToastDuration:     1100 * time.Millisecond,
			SpecialToast:      1800 * time.Millisecond,
		},
		Physics: PhysicsConfig{
			Gravity:      0.85,
			JumpImpulse:  -15,
			BaseSpeed:    5.0,
			ForwardBonus: 2.2,
			BobRate:      2.5,
		},
		Player: PlayerConfig{
			X:      120,
			Width:  128,
			Height: 72,
		},
		Spawn: SpawnConfig{
			OpponentBaseRate:   0.055,
			OpponentRateGrowth: 0.0015,
			OpponentRateCap:    0.045,
			OpponentMinSize:    26,
			OpponentSizeRange:  26,
			HazardRate:         0.015,
			SpikeWidth:         90,
			SpikeHeight:        16,
			HoleWidth:          80,
			HoleHeight:         12,
			HoleSink:           8,
			SpecialAt:          0.35,
			SpecialSize:        44,
			SpecialLead:        120,
			SpecialSpeed:       0.9,
		},
		Scoring: ScoringConfig{
			OpponentPoints:     10,
			StreakThreshold:    5,
			StreakBonus:        5,
			PassiveRate:        1.0,
			StreakPassive:      0.5,
			QuipChance:         0.18,
			DefaultFinalsBonus: 0.2,
		},
		Effects: EffectsConfig{
			SpikeSlow:       0.25,
			SpikeDuration:   3.0,
			HoleLock:        1.2,
			SetbackSlow:     0.25,
			SetbackDuration: 5.0,
			SurgeBoost:      0.40,
			SurgeDuration:   6.0,
		},
		Season: SeasonConfig{
			StartYear:   2025,
			Years:       11,
			SetbackWeek: 5,
			SurgeWeek:   9,
			Weeks:       DefaultWeeks(),
		},
	}
}

// DefaultWeeks returns the 17-week season template.
func DefaultWeeks() []WeekConfig {
	weeks := make([]WeekConfig, 0, 17)
	for i := 0; i < 14; i++ {
		weeks = append(weeks, WeekConfig{
			ID:         i + 1,
			Name:       fmt.Sprintf("Week %d", i+1),
			Duration:   60,
			SpeedScale: 1.00 + float64(i)*0.02,
		})
	}
	weeks = append(weeks,
		WeekConfig{ID: 15, Name: "Week 15 - Bye", Duration: 20, SpeedScale: 0.7, Bye: true},
		WeekConfig{ID: 16, Name: "Week 16 - Semi-Finals", Duration: 70, SpeedScale: 1.25, Finals: true, FinalsBonus: 0.2},
		WeekConfig{ID: 17, Name: "Week 17 - Championship", Duration: 75, SpeedScale: 1.30, Finals: true, FinalsBonus: 0.2},
	)
	return weeks
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultCrushYAML
}
