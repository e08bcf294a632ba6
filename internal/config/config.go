// Package config provides YAML-based engine and game configuration loading
// and difficulty management for the arcade platform.
package config

// EngineConfig holds the settings shared by every game.
type EngineConfig struct {
	TickIntervalMs   int     `yaml:"tick_interval_ms"`   // Default scheduler cadence
	DTCeilingMs      int     `yaml:"dt_ceiling_ms"`      // Largest dt ever handed to a game
	GameOverDelayMs  int     `yaml:"game_over_delay_ms"` // Result message time before stop
	SizeRefreshMs    int     `yaml:"size_refresh_ms"`    // Minimum gap between avatar size reads
	CameraLerp       float64 `yaml:"camera_lerp"`        // Camera follow factor per tick
	AvatarWidth      float64 `yaml:"avatar_width"`       // Fallback avatar size before first read
	AvatarHeight     float64 `yaml:"avatar_height"`
	RestMarginFactor float64 `yaml:"rest_margin_factor"` // Rest position offset from bottom-right
}

// AsteroidsConfig contains all configuration for the Asteroids game.
type AsteroidsConfig struct {
	World      AsteroidsWorld   `yaml:"world"`
	Ship       AsteroidsShip    `yaml:"ship"`
	Rocks      AsteroidsRocks   `yaml:"rocks"`
	Gameplay   AsteroidsPlay    `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// AsteroidsWorld defines the wrapping world relative to the viewport.
type AsteroidsWorld struct {
	ScaleX float64 `yaml:"scale_x"` // World width as a multiple of viewport width
	ScaleY float64 `yaml:"scale_y"`
}

// AsteroidsShip defines the avatar ship.
type AsteroidsShip struct {
	Thrust        float64 `yaml:"thrust"`         // Acceleration toward pointer while held
	MaxSpeed      float64 `yaml:"max_speed"`      // Units per second
	Drag          float64 `yaml:"drag"`           // Velocity fraction lost per second
	Radius        float64 `yaml:"radius"`         // Collision radius
	BulletSpeed   float64 `yaml:"bullet_speed"`   // Units per second
	BulletLife    float64 `yaml:"bullet_life"`    // Seconds
	FireCooldown  float64 `yaml:"fire_cooldown"`  // Seconds between auto-fire shots
	MaxBullets    int     `yaml:"max_bullets"`    // Simultaneous live bullets
	Invulnerable  float64 `yaml:"invulnerable"`   // Seconds after respawn
	RespawnDelay  float64 `yaml:"respawn_delay"`  // Seconds between death and respawn
	ParticleBurst int     `yaml:"particle_burst"` // Particles per explosion
}

// AsteroidsRocks defines the rock size classes.
type AsteroidsRocks struct {
	Radii    [3]float64 `yaml:"radii"`     // Small, medium, large
	Points   [3]int     `yaml:"points"`    // Score per size class
	MinSpeed float64    `yaml:"min_speed"` // Units per second
	MaxSpeed float64    `yaml:"max_speed"`
	Split    int        `yaml:"split"` // Children per destroyed rock
}

// AsteroidsPlay defines lives and wave progression.
type AsteroidsPlay struct {
	Lives         int     `yaml:"lives"`
	BaseWave      int     `yaml:"base_wave"`       // Rocks in the first wave
	MaxWave       int     `yaml:"max_wave"`        // Cap on rocks per wave
	WaveDelay     float64 `yaml:"wave_delay"`      // Seconds between waves
	SafeSpawnDist float64 `yaml:"safe_spawn_dist"` // Minimum rock spawn distance from ship
}

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Physics    PongPhysics      `yaml:"physics"`
	Paddles    PongPaddles      `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        PongCPU          `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongPhysics defines physics parameters for Pong.
type PongPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`     // Units per second
	MaxBallSpeed float64 `yaml:"max_ball_speed"` // Units per second
	SpeedUp      float64 `yaml:"speed_up"`       // Multiplier per paddle hit
	SpinFactor   float64 `yaml:"spin_factor"`
	BallSize     float64 `yaml:"ball_size"`
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	CPUHeight float64 `yaml:"cpu_height"`
	Width     float64 `yaml:"width"`
	Offset    float64 `yaml:"offset"` // Distance from edge
}

// PongGameplay defines scoring and pacing.
type PongGameplay struct {
	Lives        int     `yaml:"lives"`
	ServeDelay   float64 `yaml:"serve_delay"`   // Seconds
	BlindTime    float64 `yaml:"blind_time"`    // Seconds the CPU is blinded after a smash
	JitterSpeed  float64 `yaml:"jitter_speed"`  // Ball speed fraction above which the CPU jitters
	JitterAmount float64 `yaml:"jitter_amount"` // Units
}

// PongCPU defines the reaction-delayed pursuit tuning.
type PongCPU struct {
	ReactionMax float64 `yaml:"reaction_max"` // Seconds at difficulty 0
	ReactionMin float64 `yaml:"reaction_min"` // Floor at difficulty 1
	NoiseMax    float64 `yaml:"noise_max"`    // Normalized noise at difficulty 0
	NoiseMin    float64 `yaml:"noise_min"`
	Speed       float64 `yaml:"speed"` // Field heights per second
}

// GhostsConfig contains all configuration for the maze chase game.
type GhostsConfig struct {
	Maze       GhostsMaze       `yaml:"maze"`
	Speeds     GhostsSpeeds     `yaml:"speeds"`
	Gameplay   GhostsGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GhostsMaze defines the maze layout. Empty layout uses the embedded default.
type GhostsMaze struct {
	Layout []string `yaml:"layout"`
}

// GhostsSpeeds are in cells per second.
type GhostsSpeeds struct {
	Avatar      float64 `yaml:"avatar"`
	Ghost       float64 `yaml:"ghost"`
	Frightened  float64 `yaml:"frightened"`
	LevelBonus  float64 `yaml:"level_bonus"` // Added to ghost speed per level
	GhostMaxCap float64 `yaml:"ghost_max"`
}

// GhostsGameplay defines scoring and mode timings.
type GhostsGameplay struct {
	Lives          int     `yaml:"lives"`
	DotPoints      int     `yaml:"dot_points"`
	PelletPoints   int     `yaml:"pellet_points"`
	GhostPoints    int     `yaml:"ghost_points"`    // Doubles for each ghost per pellet
	FrightenedTime float64 `yaml:"frightened_time"` // Seconds
	ScatterTime    float64 `yaml:"scatter_time"`
	ChaseTime      float64 `yaml:"chase_time"`
	ReleaseGap     float64 `yaml:"release_gap"` // Seconds between ghost releases
}

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Pickups    BreakoutPickups  `yaml:"pickups"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics defines physics parameters for Breakout.
type BreakoutPhysics struct {
	BallSpeed    float64 `yaml:"ball_speed"`     // Units per second
	MaxBallSpeed float64 `yaml:"max_ball_speed"` // Units per second
	BallSize     float64 `yaml:"ball_size"`
}

// BreakoutPaddle defines paddle parameters for Breakout.
type BreakoutPaddle struct {
	Offset float64 `yaml:"offset"` // Distance of the paddle from the bottom edge
}

// BreakoutGameplay defines gameplay parameters for Breakout.
type BreakoutGameplay struct {
	Lives         int     `yaml:"lives"`
	BrickPoints   int     `yaml:"brick_points"`
	Columns       int     `yaml:"columns"`
	BrickHeight   float64 `yaml:"brick_height"`
	SpeedUpEveryN int     `yaml:"speed_up_every_n"` // Speed up every N bricks
	SpeedUpAmount float64 `yaml:"speed_up_amount"`  // Fractional speed increase
	ServeDelay    float64 `yaml:"serve_delay"`      // Seconds
}

// BreakoutPickups defines the power-ups dropped by broken bricks.
type BreakoutPickups struct {
	Chance      float64 `yaml:"chance"`       // 0.0-1.0 per broken brick
	FallSpeed   float64 `yaml:"fall_speed"`   // Units per second
	Duration    float64 `yaml:"duration"`     // Seconds a speed effect lasts
	SpeedFactor float64 `yaml:"speed_factor"` // Ball speed multiplier of the fast pickup
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies a difficulty config based on a preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}
