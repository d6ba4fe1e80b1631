package game

import "fmt"

// Effect is the tagged power-up effect variant. Exactly one handler —
// World.applyEffect — switches over the concrete types, so adding a
// variant without handling it fails loudly there instead of silently at
// scattered call sites.
type Effect interface {
	isEffect()
	String() string
}

// SpeedBoost multiplies the player's movement speed for a duration.
type SpeedBoost struct {
	Multiplier float64
	Duration   int // ticks
}

// Immunity suppresses guardian detection and capture for a duration.
type Immunity struct {
	Duration int // ticks
}

// ThunderCharge removes one guardian, by index, when applied.
type ThunderCharge struct{}

// TimerBonus adds ticks to the level countdown.
type TimerBonus struct {
	Ticks int
}

func (SpeedBoost) isEffect()    {}
func (Immunity) isEffect()      {}
func (ThunderCharge) isEffect() {}
func (TimerBonus) isEffect()    {}

func (e SpeedBoost) String() string    { return fmt.Sprintf("speed x%.1f for %dt", e.Multiplier, e.Duration) }
func (e Immunity) String() string      { return fmt.Sprintf("immunity for %dt", e.Duration) }
func (ThunderCharge) String() string   { return "thunder charge" }
func (e TimerBonus) String() string    { return fmt.Sprintf("timer +%dt", e.Ticks) }

// PowerUp is a collectible effect placed on the maze floor.
type PowerUp struct {
	X, Y   float64
	Effect Effect
	Taken  bool
}
