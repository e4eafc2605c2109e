package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a config file parses but cannot drive a season.
var ErrInvalidConfig = errors.New("invalid config")

// LoadCrush loads Cam Crush configuration.
// Search order: customPath -> ~/.camcrush/configs/crush.yaml -> ./configs/crush.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides what it names.
func LoadCrush(customPath string) (CrushConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCrushConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCrush(data)
		if err != nil {
			return DefaultCrushConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("crush.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCrush(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/crush.yaml"); err == nil {
		if cfg, err := parseCrush(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCrush(defaultCrushYAML)
	if err != nil {
		return DefaultCrushConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCrush decodes data over the defaults and validates the result.
func parseCrush(data []byte) (CrushConfig, error) {
	cfg := DefaultCrushConfig()
	// A file that lists weeks replaces the whole template.
	cfg.Season.Weeks = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if len(cfg.Season.Weeks) == 0 {
		cfg.Season.Weeks = DefaultWeeks()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the values the simulation divides by or loops over.
func (c CrushConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	}
	if c.Timing.ReferenceInterval <= 0 || c.Timing.MaxFrameDelta <= 0 {
		return fmt.Errorf("%w: timing intervals must be positive", ErrInvalidConfig)
	}
	if c.Season.Years <= 0 {
		return fmt.Errorf("%w: season years must be positive", ErrInvalidConfig)
	}
	if len(c.Season.Weeks) == 0 {
		return fmt.Errorf("%w: season needs at least one week", ErrInvalidConfig)
	}
	for i, w := range c.Season.Weeks {
		if w.Duration <= 0 {
			return fmt.Errorf("%w: week %d duration must be positive", ErrInvalidConfig, i+1)
		}
		if w.SpeedScale <= 0 {
			return fmt.Errorf("%w: week %d speed scale must be positive", ErrInvalidConfig, i+1)
		}
	}
	return nil
}

// LoadSprites reads optional sprite art from dir. Each "<name>.txt" file
// becomes a sprite keyed by name. A missing directory yields no sprites,
// in which case the renderer draws its vector fallback.
func LoadSprites(dir string) map[string][]string {
	sprites := make(map[string][]string)
	if dir == "" {
		return sprites
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return sprites
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		sprites[strings.TrimSuffix(e.Name(), ".txt")] = lines
	}
	return sprites
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".camcrush", "configs", filename)
}
