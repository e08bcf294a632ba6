package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a config by name.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml
// -> embedded default -> hard-coded fallback.
// Files are decoded over the hard-coded defaults, so partial files work.
func load[T any](name, customPath string, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := name + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if decodeOver(data, &cfg, fallback) {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if decodeOver(data, &cfg, fallback) {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(name); data != nil && decodeOver(data, &cfg, fallback) {
		return cfg, nil
	}
	return fallback(), nil
}

// decodeOver unmarshals data into cfg, restoring the fallback on failure.
func decodeOver[T any](data []byte, cfg *T, fallback func() T) bool {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		*cfg = fallback()
		return false
	}
	return true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadEngine loads the shared engine settings.
func LoadEngine(customPath string) (EngineConfig, error) {
	return load("engine", customPath, DefaultEngineConfig)
}

// LoadAsteroids loads Asteroids configuration.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	return load("asteroids", customPath, DefaultAsteroidsConfig)
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig)
}

// LoadGhosts loads the maze chase configuration. A missing maze falls back
// to the built-in layout.
func LoadGhosts(customPath string) (GhostsConfig, error) {
	cfg, err := load("ghosts", customPath, DefaultGhostsConfig)
	if len(cfg.Maze.Layout) == 0 {
		cfg.Maze.Layout = DefaultMaze()
	}
	return cfg, err
}

// LoadBreakout loads Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return load("breakout", customPath, DefaultBreakoutConfig)
}

// Set bundles every configuration the arcade needs.
type Set struct {
	Engine    EngineConfig
	Asteroids AsteroidsConfig
	Pong      PongConfig
	Ghosts    GhostsConfig
	Breakout  BreakoutConfig
}

// LoadSet loads every config. A non-empty dir is searched first for
// <name>.yaml files; missing files fall through to the normal search order.
func LoadSet(dir string, preset DifficultyPreset) (Set, error) {
	path := func(name string) string {
		if dir == "" {
			return ""
		}
		p := filepath.Join(dir, name+".yaml")
		if _, err := os.Stat(p); err != nil {
			return ""
		}
		return p
	}

	var s Set
	var err error
	if s.Engine, err = LoadEngine(path("engine")); err != nil {
		return s, err
	}
	if s.Asteroids, err = LoadAsteroids(path("asteroids")); err != nil {
		return s, err
	}
	if s.Pong, err = LoadPong(path("pong")); err != nil {
		return s, err
	}
	if s.Ghosts, err = LoadGhosts(path("ghosts")); err != nil {
		return s, err
	}
	if s.Breakout, err = LoadBreakout(path("breakout")); err != nil {
		return s, err
	}

	ApplyPreset(&s.Asteroids.Difficulty, preset)
	ApplyPreset(&s.Pong.Difficulty, preset)
	ApplyPreset(&s.Ghosts.Difficulty, preset)
	ApplyPreset(&s.Breakout.Difficulty, preset)
	ApplyBreakoutPreset(&s.Breakout, preset)
	return s, nil
}

// ApplyBreakoutPreset adjusts Breakout gameplay beyond the difficulty level.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.BallSpeed = cfg.Physics.BallSpeed * 0.8
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Physics.BallSpeed = cfg.Physics.BallSpeed * 1.3
	}
}
