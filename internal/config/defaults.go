package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultEngineConfig returns the default engine settings.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickIntervalMs:   8,
		DTCeilingMs:      50,
		GameOverDelayMs:  2000,
		SizeRefreshMs:    500,
		CameraLerp:       0.12,
		AvatarWidth:      8,
		AvatarHeight:     3,
		RestMarginFactor: 0.5,
	}
}

// DefaultAsteroidsConfig returns the default Asteroids configuration.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		World: AsteroidsWorld{ScaleX: 2, ScaleY: 2},
		Ship: AsteroidsShip{
			Thrust:        40,
			MaxSpeed:      25,
			Drag:          0.6,
			Radius:        1,
			BulletSpeed:   45,
			BulletLife:    1.1,
			FireCooldown:  0.25,
			MaxBullets:    6,
			Invulnerable:  2,
			RespawnDelay:  1,
			ParticleBurst: 8,
		},
		Rocks: AsteroidsRocks{
			Radii:    [3]float64{0.8, 1.5, 2.5},
			Points:   [3]int{100, 50, 20},
			MinSpeed: 3,
			MaxSpeed: 8,
			Split:    2,
		},
		Gameplay: AsteroidsPlay{
			Lives:         3,
			BaseWave:      4,
			MaxWave:       12,
			WaveDelay:     2,
			SafeSpawnDist: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 10000},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.8},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Physics: PongPhysics{
			BallSpeed:    30,
			MaxBallSpeed: 70,
			SpeedUp:      1.05,
			SpinFactor:   0.5,
			BallSize:     1,
		},
		Paddles: PongPaddles{
			CPUHeight: 5,
			Width:     1,
			Offset:    2,
		},
		Gameplay: PongGameplay{
			Lives:        3,
			ServeDelay:   1,
			BlindTime:    0.6,
			JitterSpeed:  0.8,
			JitterAmount: 0.5,
		},
		CPU: PongCPU{
			ReactionMax: 0.35,
			ReactionMin: 0.10,
			NoiseMax:    0.15,
			NoiseMin:    0.015,
			Speed:       1.2,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 40},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultGhostsConfig returns the default maze chase configuration.
func DefaultGhostsConfig() GhostsConfig {
	return GhostsConfig{
		Maze: GhostsMaze{Layout: DefaultMaze()},
		Speeds: GhostsSpeeds{
			Avatar:      6,
			Ghost:       5,
			Frightened:  3,
			LevelBonus:  0.5,
			GhostMaxCap: 8,
		},
		Gameplay: GhostsGameplay{
			Lives:          3,
			DotPoints:      10,
			PelletPoints:   50,
			GhostPoints:    200,
			FrightenedTime: 6,
			ScatterTime:    7,
			ChaseTime:      20,
			ReleaseGap:     3,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 5000},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultMaze returns the built-in maze layout.
func DefaultMaze() []string {
	return []string{
		"###################",
		"#o.......#.......o#",
		"#.##.###.#.###.##.#",
		"#.................#",
		"#.##.#.#####.#.##.#",
		".....#...G...#.....",
		"#.##.#.#####.#.##.#",
		"#........P........#",
		"#.##.###.#.###.##.#",
		"#o.......#.......o#",
		"###################",
	}
}

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BallSpeed:    20,
			MaxBallSpeed: 45,
			BallSize:     1,
		},
		Paddle: BreakoutPaddle{
			Offset: 2,
		},
		Gameplay: BreakoutGameplay{
			Lives:         3,
			BrickPoints:   10,
			Columns:       10,
			BrickHeight:   1,
			SpeedUpEveryN: 10,
			SpeedUpAmount: 0.1,
			ServeDelay:    1,
		},
		Pickups: BreakoutPickups{
			Chance:      0.18,
			FallSpeed:   8,
			Duration:    8,
			SpeedFactor: 1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultSet returns every hard-coded default.
func DefaultSet() Set {
	return Set{
		Engine:    DefaultEngineConfig(),
		Asteroids: DefaultAsteroidsConfig(),
		Pong:      DefaultPongConfig(),
		Ghosts:    DefaultGhostsConfig(),
		Breakout:  DefaultBreakoutConfig(),
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name
// ("engine" or a game ID), or nil.
func GetDefaultYAML(name string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + name + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
