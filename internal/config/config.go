// Package config provides YAML-based tuning for the game: world geometry,
// physics, spawn rates, effects, scoring and the season template.
package config

import "time"

// CrushConfig contains all configuration for Cam Crush.
type CrushConfig struct {
	World   WorldConfig   `yaml:"world"`
	Timing  TimingConfig  `yaml:"timing"`
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Scoring ScoringConfig `yaml:"scoring"`
	Effects EffectsConfig `yaml:"effects"`
	Season  SeasonConfig  `yaml:"season"`
}

// WorldConfig defines the logical field the simulation runs in.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Ground line distance from the bottom edge
}

// GroundY returns the y-coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundOffset
}

// TimingConfig defines how wall-clock frames map to simulation time-units
// and how long the scene auto-transitions wait.
type TimingConfig struct {
	ReferenceInterval time.Duration `yaml:"reference_interval"` // One time-unit
	MaxFrameDelta     time.Duration `yaml:"max_frame_delta"`    // Frame hitch clamp
	GraveyardDelay    time.Duration `yaml:"graveyard_delay"`
	NameEntryTimeout  time.Duration `yaml:"name_entry_timeout"`
	ToastDuration     time.Duration `yaml:"toast_duration"`
	SpecialToast      time.Duration `yaml:"special_toast"`
}

// PhysicsConfig defines character physics in time-units.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"` // Negative = upward
	BaseSpeed    float64 `yaml:"base_speed"`
	ForwardBonus float64 `yaml:"forward_bonus"` // Added while forward is held
	BobRate      float64 `yaml:"bob_rate"`
}

// PlayerConfig defines the character's fixed horizontal position and size.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig defines spawn probabilities (per time-unit) and entity sizes.
type SpawnConfig struct {
	OpponentBaseRate   float64 `yaml:"opponent_base_rate"`
	OpponentRateGrowth float64 `yaml:"opponent_rate_growth"` // Added per elapsed time-unit
	OpponentRateCap    float64 `yaml:"opponent_rate_cap"`    // Cap on the growth term
	OpponentMinSize    float64 `yaml:"opponent_min_size"`
	OpponentSizeRange  float64 `yaml:"opponent_size_range"`
	HazardRate         float64 `yaml:"hazard_rate"`
	SpikeWidth         float64 `yaml:"spike_width"`
	SpikeHeight        float64 `yaml:"spike_height"`
	HoleWidth          float64 `yaml:"hole_width"`
	HoleHeight         float64 `yaml:"hole_height"`
	HoleSink           float64 `yaml:"hole_sink"`
	SpecialAt          float64 `yaml:"special_at"` // Fraction of week duration
	SpecialSize        float64 `yaml:"special_size"`
	SpecialLead        float64 `yaml:"special_lead"` // Extra distance past the trailing edge
	SpecialSpeed       float64 `yaml:"special_speed"`
}

// ScoringConfig defines opponent and passive scoring.
type ScoringConfig struct {
	OpponentPoints     int     `yaml:"opponent_points"`
	StreakThreshold    int     `yaml:"streak_threshold"`
	StreakBonus        int     `yaml:"streak_bonus"`
	PassiveRate        float64 `yaml:"passive_rate"`
	StreakPassive      float64 `yaml:"streak_passive"`
	QuipChance         float64 `yaml:"quip_chance"`
	DefaultFinalsBonus float64 `yaml:"default_finals_bonus"` // Used by finals weeks without a bonus
}

// EffectsConfig defines magnitude and duration (time-units) of every effect.
type EffectsConfig struct {
	SpikeSlow       float64 `yaml:"spike_slow"`
	SpikeDuration   float64 `yaml:"spike_duration"`
	HoleLock        float64 `yaml:"hole_lock"`
	SetbackSlow     float64 `yaml:"setback_slow"`
	SetbackDuration float64 `yaml:"setback_duration"`
	SurgeBoost      float64 `yaml:"surge_boost"`
	SurgeDuration   float64 `yaml:"surge_duration"`
}

// SeasonConfig defines the year range, event weeks and the week template.
type SeasonConfig struct {
	StartYear   int          `yaml:"start_year"`
	Years       int          `yaml:"years"`
	SetbackWeek int          `yaml:"setback_week"` // Week id, not index
	SurgeWeek   int          `yaml:"surge_week"`
	Weeks       []WeekConfig `yaml:"weeks"`
}

// WeekConfig is one entry of the season template.
type WeekConfig struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Duration    float64 `yaml:"duration"`
	SpeedScale  float64 `yaml:"speed_scale"`
	Bye         bool    `yaml:"bye"`
	Finals      bool    `yaml:"finals"`
	FinalsBonus float64 `yaml:"finals_bonus"`
}

// LastYear returns the final selectable season year.
func (s SeasonConfig) LastYear() int {
	return s.StartYear + s.Years - 1
}
