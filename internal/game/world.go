package game

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// orbPickupRadius / powerUpPickupRadius are the collection radii for
	// floor items, in world units.
	orbPickupRadius     = 15.0
	powerUpPickupRadius = 15.0
)

// Pose is a continuous world-unit position.
type Pose struct {
	X, Y float64
}

// Orb is one collectible the player must gather to finish the level.
type Orb struct {
	X, Y      float64
	Collected bool
}

// EventKind identifies a simulation event emitted by a tick.
type EventKind int

const (
	EventCaught           EventKind = iota // a guardian touched the player
	EventGuardianRemoved                   // a guardian was deleted (index = which)
	EventOrbCollected                      // the player picked up an orb (index = which)
	EventPowerUpCollected                  // the player picked up a power-up (index = which)
	EventTimeExpired                       // the countdown reached zero
	EventLevelComplete                     // every orb is collected
)

func (k EventKind) String() string {
	switch k {
	case EventCaught:
		return "caught"
	case EventGuardianRemoved:
		return "guardianRemoved"
	case EventOrbCollected:
		return "orbCollected"
	case EventPowerUpCollected:
		return "powerUpCollected"
	case EventTimeExpired:
		return "timeExpired"
	case EventLevelComplete:
		return "levelComplete"
	default:
		return "unknown"
	}
}

// Event is one simulation event. Index identifies the guardian, orb, or
// power-up involved, where that applies.
type Event struct {
	Kind  EventKind
	Index int
}

// GuardianSnapshot is a render-facing copy of one guardian's pose and
// state at the end of a tick. Snapshots never alias simulation state.
type GuardianSnapshot struct {
	Index   int
	Label   string
	X, Y    float64
	Heading float64
	State   GuardianState
}

// TickResult is what one Tick call hands back to the presentation layer.
type TickResult struct {
	Tick      int
	Guardians []GuardianSnapshot
	Events    []Event
}

// World holds all mutable simulation state for one level. It is owned by
// a single tick loop; the published Grid is the only piece shared with
// other readers. The presentation layer consumes TickResult snapshots,
// never World internals.
type World struct {
	grid *Grid
	cfg  LevelConfig

	Player    Pose
	Guardians []*Guardian
	Orbs      []Orb
	PowerUps  []PowerUp

	TicksRemaining int

	tick           int
	rng            *rand.Rand
	simLog         *SimLog
	tickStartPoses []Pose // guardian poses captured at tick start

	speedMult     float64
	speedTicks    int
	immunityTicks int

	caught        bool
	timeExpired   bool
	levelComplete bool
}

// NewWorld creates an empty world on the given grid: no entities, timer
// from cfg. Tests and the harness place entities explicitly; NewLevel is
// the populated variant.
func NewWorld(grid *Grid, cfg LevelConfig, rng *rand.Rand, simLog *SimLog) *World {
	if grid == nil {
		panic("game: NewWorld called with nil grid")
	}
	if simLog == nil {
		simLog = NewSimLog(false)
	}
	return &World{
		grid:           grid,
		cfg:            cfg,
		rng:            rng,
		simLog:         simLog,
		TicksRemaining: cfg.TimerTicks,
		speedMult:      1,
	}
}

// NewLevel creates a fully populated world: the player, cfg.OrbCount orbs,
// cfg.GuardianCount guardians, and cfg.PowerUpCount power-ups, all placed
// by the spawn sampler with minimum pairwise separation. The working
// position list exists only for the duration of setup.
func NewLevel(grid *Grid, cfg LevelConfig, seed int64) *World {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation, not crypto
	w := NewWorld(grid, cfg, rng, NewSimLog(false))

	var taken []Pose
	place := func(radius float64) Pose {
		p := SampleSpawn(grid, rng, radius, defaultSpawnSeparation, taken)
		taken = append(taken, p)
		return p
	}

	w.Player = place(cfg.PlayerRadius)
	w.simLog.Add(0, "P", "spawn", "player", fmt.Sprintf("(%.0f,%.0f)", w.Player.X, w.Player.Y), 0)

	for i := 0; i < cfg.OrbCount; i++ {
		p := place(orbPickupRadius)
		w.Orbs = append(w.Orbs, Orb{X: p.X, Y: p.Y})
	}
	for i := 0; i < cfg.GuardianCount; i++ {
		p := place(cfg.GuardianRadius)
		g := NewGuardian(i, p.X, p.Y, cfg.GuardianRadius,
			cfg.PatrolSpeed, cfg.ChaseMultiplier, cfg.ViewDistance, cfg.FOVDegrees*math.Pi/180)
		g.Heading = rng.Float64()*2*math.Pi - math.Pi
		g.dirX, g.dirY = math.Cos(g.Heading), math.Sin(g.Heading)
		w.Guardians = append(w.Guardians, g)
		w.simLog.Add(0, g.label, "spawn", "guardian", fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y), 0)
	}
	for i := 0; i < cfg.PowerUpCount; i++ {
		p := place(powerUpPickupRadius)
		w.PowerUps = append(w.PowerUps, PowerUp{X: p.X, Y: p.Y, Effect: randomEffect(rng)})
	}

	return w
}

// randomEffect picks a power-up effect for level placement.
func randomEffect(rng *rand.Rand) Effect {
	switch rng.Intn(4) {
	case 0:
		return SpeedBoost{Multiplier: 1.6, Duration: 600}
	case 1:
		return Immunity{Duration: 450}
	case 2:
		return ThunderCharge{}
	default:
		return TimerBonus{Ticks: 300}
	}
}

// Grid returns the published (read-only) maze grid.
func (w *World) Grid() *Grid {
	return w.grid
}

// SimLog returns the world's structured event log.
func (w *World) SimLog() *SimLog {
	return w.simLog
}

// CurrentTick returns the number of ticks simulated so far.
func (w *World) CurrentTick() int {
	return w.tick
}

// PlayerImmune reports whether an immunity effect is active. While true,
// guardians neither detect nor capture the player.
func (w *World) PlayerImmune() bool {
	return w.immunityTicks > 0
}

// PlayerSpeedMultiplier returns the current movement-speed multiplier.
func (w *World) PlayerSpeedMultiplier() float64 {
	if w.speedTicks > 0 {
		return w.speedMult
	}
	return 1
}

// MovePlayer attempts to move the player by (dx, dy) scaled by the active
// speed multiplier, validating the destination against the collision
// model. Returns false and leaves the player in place when blocked.
func (w *World) MovePlayer(dx, dy float64) bool {
	mult := w.PlayerSpeedMultiplier()
	nx := w.Player.X + dx*mult
	ny := w.Player.Y + dy*mult
	if Blocked(w.grid, nx, ny, w.cfg.PlayerRadius) {
		return false
	}
	w.Player.X, w.Player.Y = nx, ny
	return true
}

// Tick advances the simulation dtTicks logical ticks and returns the
// resulting guardian snapshots and events. dtTicks < 1 is a caller bug.
func (w *World) Tick(dtTicks int) TickResult {
	if dtTicks < 1 {
		panic(fmt.Sprintf("game: Tick called with dtTicks %d", dtTicks))
	}
	var events []Event
	for i := 0; i < dtTicks; i++ {
		events = append(events, w.stepOnce()...)
	}
	return TickResult{Tick: w.tick, Guardians: w.guardianSnapshots(), Events: events}
}

// stepOnce advances exactly one logical tick.
func (w *World) stepOnce() []Event {
	w.tick++
	var events []Event

	// Effect durations decay first so an effect granted last tick covers
	// this tick's perception and capture checks.
	if w.speedTicks > 0 {
		w.speedTicks--
	}
	if w.immunityTicks > 0 {
		w.immunityTicks--
	}

	// Guardians read a consistent snapshot of tick-start poses; no update
	// sees another guardian's already-updated position.
	w.tickStartPoses = w.guardianPoses()
	for _, g := range w.Guardians {
		g.update(w)
		w.simLog.AddVerbose(w.tick, g.label, "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", g.X, g.Y), 0)
	}

	events = append(events, w.checkCapture()...)
	events = append(events, w.checkOrbs()...)
	events = append(events, w.checkPowerUps()...)
	events = append(events, w.tickTimer()...)

	return events
}

// checkCapture emits a caught event for any guardian overlapping the
// player. Immunity suppresses the check entirely.
func (w *World) checkCapture() []Event {
	if w.PlayerImmune() || w.caught {
		return nil
	}
	var events []Event
	for i, g := range w.Guardians {
		d := math.Hypot(g.X-w.Player.X, g.Y-w.Player.Y)
		if d < w.cfg.PlayerRadius+g.Radius {
			w.caught = true
			w.simLog.Add(w.tick, g.label, "event", "caught",
				fmt.Sprintf("distance %.1f", d), d)
			events = append(events, Event{Kind: EventCaught, Index: i})
			break
		}
	}
	return events
}

// checkOrbs collects orbs within pickup range and emits levelComplete
// once the last one is gathered.
func (w *World) checkOrbs() []Event {
	var events []Event
	remaining := 0
	for i := range w.Orbs {
		o := &w.Orbs[i]
		if o.Collected {
			continue
		}
		if math.Hypot(o.X-w.Player.X, o.Y-w.Player.Y) < w.cfg.PlayerRadius+orbPickupRadius {
			o.Collected = true
			w.simLog.Add(w.tick, "P", "event", "orb_collected", fmt.Sprintf("orb %d", i), 0)
			events = append(events, Event{Kind: EventOrbCollected, Index: i})
			continue
		}
		remaining++
	}
	if remaining == 0 && len(w.Orbs) > 0 && !w.levelComplete {
		w.levelComplete = true
		w.simLog.Add(w.tick, "--", "level", "complete", "all orbs collected", 0)
		events = append(events, Event{Kind: EventLevelComplete})
	}
	return events
}

// checkPowerUps picks up power-ups in range and applies each through the
// single exhaustive effect handler.
func (w *World) checkPowerUps() []Event {
	var events []Event
	for i := range w.PowerUps {
		p := &w.PowerUps[i]
		if p.Taken {
			continue
		}
		if math.Hypot(p.X-w.Player.X, p.Y-w.Player.Y) >= w.cfg.PlayerRadius+powerUpPickupRadius {
			continue
		}
		p.Taken = true
		w.simLog.Add(w.tick, "P", "event", "powerup", p.Effect.String(), 0)
		events = append(events, Event{Kind: EventPowerUpCollected, Index: i})
		events = append(events, w.applyEffect(p.Effect)...)
	}
	return events
}

// applyEffect is the one place effect variants are interpreted.
func (w *World) applyEffect(e Effect) []Event {
	switch eff := e.(type) {
	case SpeedBoost:
		w.speedMult = eff.Multiplier
		w.speedTicks = eff.Duration
		return nil
	case Immunity:
		w.immunityTicks = eff.Duration
		return nil
	case ThunderCharge:
		idx := w.nearestGuardian()
		if idx < 0 {
			return nil
		}
		ev, err := w.RemoveGuardian(idx)
		if err != nil {
			return nil
		}
		return []Event{ev}
	case TimerBonus:
		w.TicksRemaining += eff.Ticks
		if w.timeExpired && w.TicksRemaining > 0 {
			w.timeExpired = false
		}
		return nil
	default:
		panic(fmt.Sprintf("game: unhandled effect type %T", e))
	}
}

// nearestGuardian returns the index of the guardian closest to the player,
// or -1 if none remain.
func (w *World) nearestGuardian() int {
	best := -1
	bestDist := math.Inf(1)
	for i, g := range w.Guardians {
		d := math.Hypot(g.X-w.Player.X, g.Y-w.Player.Y)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// RemoveGuardian deletes the guardian at index and emits the removal
// event. An out-of-range index is a caller bug.
func (w *World) RemoveGuardian(index int) (Event, error) {
	if index < 0 || index >= len(w.Guardians) {
		return Event{}, fmt.Errorf("game: guardian index %d out of range [0,%d)", index, len(w.Guardians))
	}
	label := w.Guardians[index].label
	w.Guardians = append(w.Guardians[:index], w.Guardians[index+1:]...)
	w.simLog.Add(w.tick, label, "event", "guardian_removed", fmt.Sprintf("index %d", index), 0)
	return Event{Kind: EventGuardianRemoved, Index: index}, nil
}

// tickTimer decrements the countdown and emits timeExpired exactly once.
func (w *World) tickTimer() []Event {
	if w.TicksRemaining <= 0 {
		return nil
	}
	w.TicksRemaining--
	if w.TicksRemaining == 0 && !w.timeExpired {
		w.timeExpired = true
		w.simLog.Add(w.tick, "--", "level", "time_expired", "countdown reached zero", 0)
		return []Event{{Kind: EventTimeExpired}}
	}
	return nil
}

// guardianPoses copies all guardian positions.
func (w *World) guardianPoses() []Pose {
	poses := make([]Pose, len(w.Guardians))
	for i, g := range w.Guardians {
		poses[i] = Pose{X: g.X, Y: g.Y}
	}
	return poses
}

// guardianPosesExcept returns the tick-start poses of every guardian but
// g. Used for teleport separation so relocation never depends on another
// guardian's already-updated position.
func (w *World) guardianPosesExcept(g *Guardian) []Pose {
	var out []Pose
	for i, other := range w.Guardians {
		if other == g {
			continue
		}
		if i < len(w.tickStartPoses) {
			out = append(out, w.tickStartPoses[i])
		} else {
			out = append(out, Pose{X: other.X, Y: other.Y})
		}
	}
	return out
}

// guardianSnapshots copies guardian poses/states for the TickResult.
func (w *World) guardianSnapshots() []GuardianSnapshot {
	out := make([]GuardianSnapshot, len(w.Guardians))
	for i, g := range w.Guardians {
		out[i] = GuardianSnapshot{
			Index:   i,
			Label:   g.label,
			X:       g.X,
			Y:       g.Y,
			Heading: g.Heading,
			State:   g.State,
		}
	}
	return out
}
