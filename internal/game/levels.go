package game

import "fmt"

// Tier is the coarse difficulty selection made before a session starts.
type Tier int

const (
	TierEasy Tier = iota
	TierNormal
	TierHard
)

func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "easy"
	case TierNormal:
		return "normal"
	case TierHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseTier converts a tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	switch s {
	case "easy":
		return TierEasy, nil
	case "normal":
		return TierNormal, nil
	case "hard":
		return TierHard, nil
	default:
		return TierNormal, fmt.Errorf("game: unknown difficulty tier %q", s)
	}
}

// LevelConfig carries every tunable the simulation core needs for one
// level. Values are plain data: the core never reads configuration from
// the environment or files, that is the caller's concern.
type LevelConfig struct {
	Cols       int
	Rows       int
	Complexity int
	Density    float64

	GuardianCount   int
	GuardianRadius  float64
	PatrolSpeed     float64 // world units per tick
	ChaseMultiplier float64
	ViewDistance    float64 // world units
	FOVDegrees      float64

	PlayerRadius float64

	OrbCount     int
	PowerUpCount int
	TimerTicks   int
}

// baseConfig is the tier-independent starting point.
var baseConfig = LevelConfig{
	Cols:            21,
	Rows:            15,
	Complexity:      40,
	Density:         0.5,
	GuardianCount:   2,
	GuardianRadius:  20,
	PatrolSpeed:     2.0,
	ChaseMultiplier: 1.5,
	ViewDistance:    6 * TileSize,
	FOVDegrees:      120,
	PlayerRadius:    15,
	OrbCount:        5,
	PowerUpCount:    2,
	TimerTicks:      5400, // 90 seconds at 60 ticks/sec
}

// ConfigFor returns the level parameters for a tier and 1-based level
// number. Each level grows the maze, adds guardians and orbs, speeds the
// guardians up, and shortens the timer; the tier shifts the whole curve.
func ConfigFor(tier Tier, level int) LevelConfig {
	if level < 1 {
		level = 1
	}
	cfg := baseConfig
	n := level - 1

	cfg.Cols += 2 * (n / 2)
	cfg.Rows += 2 * (n / 3)
	cfg.Complexity += 10 * n
	cfg.GuardianCount += n / 2
	cfg.PatrolSpeed += 0.15 * float64(n)
	cfg.OrbCount += n
	cfg.TimerTicks -= 180 * n

	switch tier {
	case TierEasy:
		cfg.GuardianCount--
		cfg.PatrolSpeed *= 0.85
		cfg.ViewDistance = 5 * TileSize
		cfg.TimerTicks += 1800
		cfg.PowerUpCount++
	case TierNormal:
		// the base curve
	case TierHard:
		cfg.GuardianCount++
		cfg.PatrolSpeed *= 1.15
		cfg.ChaseMultiplier = 1.7
		cfg.ViewDistance = 8 * TileSize
		cfg.TimerTicks -= 900
	}

	if cfg.GuardianCount < 1 {
		cfg.GuardianCount = 1
	}
	if cfg.TimerTicks < 1800 {
		cfg.TimerTicks = 1800
	}
	// Grid growth is capped so late levels stay tractable per tick.
	if cfg.Cols > 41 {
		cfg.Cols = 41
	}
	if cfg.Rows > 31 {
		cfg.Rows = 31
	}
	return cfg
}
