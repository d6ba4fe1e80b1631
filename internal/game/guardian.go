package game

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	chaseTurnRate = 0.12 // radians per tick while turning onto the chase bearing

	// lostSightTicks is how long a chasing guardian keeps pursuing after
	// line of sight is lost before dropping back to patrol.
	lostSightTicks = 45

	// stuckThreshold is the consecutive-ticks-without-progress count that
	// triggers the teleport escape hatch. Maze repair guarantees
	// reachability, but the greedy heading search can still stall in a
	// local minimum; teleporting is the deliberate way out.
	stuckThreshold = 30

	// dirChangeMinTicks / dirChangeJitterTicks bound the randomized
	// patrol direction timer.
	dirChangeMinTicks    = 60
	dirChangeJitterTicks = 90

	// patrolLookahead is how many patrol steps ahead a candidate heading
	// is probed before being accepted.
	patrolLookahead = 4

	// deflectSpeedMul slows a chasing guardian that has to sidestep.
	deflectSpeedMul = 0.5
)

// GuardianState is a guardian's behaviour state.
type GuardianState int

const (
	GuardianPatrol GuardianState = iota // ambient wandering
	GuardianChase                       // active pursuit of the player
)

func (gs GuardianState) String() string {
	switch gs {
	case GuardianPatrol:
		return "patrol"
	case GuardianChase:
		return "chase"
	default:
		return "unknown"
	}
}

// compassDirs are the 8 candidate patrol headings: 4 cardinal, 4 diagonal
// (diagonals normalized to unit length).
var compassDirs = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{0.7071, 0.7071}, {0.7071, -0.7071}, {-0.7071, 0.7071}, {-0.7071, -0.7071},
}

// Guardian is one autonomous pursuer. Guardians are mutually independent:
// nothing in a guardian's per-tick update reads another guardian's
// already-updated state.
type Guardian struct {
	X, Y    float64
	Heading float64 // radians
	State   GuardianState

	// Patrol heading (unit-ish vector) and the randomized change timer.
	dirX, dirY    float64
	lastDirChange int // tick of the last direction change
	dirInterval   int // ticks until the next scheduled change

	stuckCounter int // consecutive ticks without forward progress
	lostSight    int // consecutive chase ticks without line of sight

	label       string
	Radius      float64
	patrolSpeed float64
	chaseSpeed  float64
	viewDist    float64
	halfFOV     float64
}

// NewGuardian creates a guardian at (x, y) with the given movement and
// perception parameters. chaseMult scales patrolSpeed for pursuit.
func NewGuardian(index int, x, y, radius, patrolSpeed, chaseMult, viewDist, fovRadians float64) *Guardian {
	g := &Guardian{
		X:           x,
		Y:           y,
		State:       GuardianPatrol,
		label:       fmt.Sprintf("G%d", index),
		Radius:      radius,
		patrolSpeed: patrolSpeed,
		chaseSpeed:  patrolSpeed * chaseMult,
		viewDist:    viewDist,
		halfFOV:     fovRadians / 2,
	}
	g.dirX, g.dirY = 1, 0
	g.Heading = 0
	return g
}

// Label returns the guardian's log label ("G0", "G1", ...).
func (g *Guardian) Label() string {
	return g.label
}

// update runs one simulation tick for the guardian: perception, state
// transition, movement, stuck recovery. It reads the world's grid and the
// player pose (both stable for the tick) and mutates only the guardian.
func (g *Guardian) update(w *World) {
	seen := false
	// Immunity suppresses detection outright, and the first tick is a
	// grace period while level poses settle.
	if !w.PlayerImmune() && w.tick > 1 {
		seen = CanSee(w.grid, g.X, g.Y, g.Heading, w.Player.X, w.Player.Y, g.viewDist, g.halfFOV)
	}

	switch g.State {
	case GuardianPatrol:
		if seen {
			g.setState(w, GuardianChase)
			g.lostSight = 0
		}
	case GuardianChase:
		if seen {
			g.lostSight = 0
		} else {
			g.lostSight++
			if g.lostSight >= lostSightTicks {
				g.setState(w, GuardianPatrol)
				g.chooseDirection(w)
			}
		}
	}

	switch g.State {
	case GuardianPatrol:
		g.updatePatrol(w)
	case GuardianChase:
		g.updateChase(w)
	}

	if g.stuckCounter >= stuckThreshold {
		g.teleport(w)
	}
}

// setState transitions the guardian and logs the change.
func (g *Guardian) setState(w *World, s GuardianState) {
	if g.State == s {
		return
	}
	w.simLog.Add(w.tick, g.label, "state", "change",
		fmt.Sprintf("%s → %s", g.State, s), 0)
	g.State = s
}

// updatePatrol moves along the current heading at patrol speed, changing
// direction when the next step is blocked or the randomized timer elapses.
func (g *Guardian) updatePatrol(w *World) {
	if w.tick-g.lastDirChange >= g.dirInterval {
		g.chooseDirection(w)
	}

	nx := g.X + g.dirX*g.patrolSpeed
	ny := g.Y + g.dirY*g.patrolSpeed
	if Blocked(w.grid, nx, ny, g.Radius) {
		g.chooseDirection(w)
		nx = g.X + g.dirX*g.patrolSpeed
		ny = g.Y + g.dirY*g.patrolSpeed
		if Blocked(w.grid, nx, ny, g.Radius) {
			// Even the fresh heading is blocked: reverse and count it.
			g.dirX, g.dirY = -g.dirX, -g.dirY
			g.stuckCounter++
			return
		}
	}

	g.X, g.Y = nx, ny
	g.stuckCounter = 0
	g.Heading = math.Atan2(g.dirY, g.dirX)
}

// chooseDirection picks a new patrol heading uniformly among the compass
// candidates whose projected position several steps ahead is unblocked.
// With no valid candidate the heading reverses and the stuck counter grows.
func (g *Guardian) chooseDirection(w *World) {
	g.lastDirChange = w.tick
	g.dirInterval = dirChangeMinTicks + w.rng.Intn(dirChangeJitterTicks)

	var valid [][2]float64
	for _, d := range compassDirs {
		px := g.X + d[0]*g.patrolSpeed*patrolLookahead
		py := g.Y + d[1]*g.patrolSpeed*patrolLookahead
		if !Blocked(w.grid, px, py, g.Radius) {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		g.dirX, g.dirY = -g.dirX, -g.dirY
		g.stuckCounter++
		return
	}
	d := valid[w.rng.Intn(len(valid))]
	g.dirX, g.dirY = d[0], d[1]
}

// chaseDeflections are tried in order when the direct chase step is
// blocked: shallow sidesteps first, then perpendicular.
var chaseDeflections = [4]float64{
	math.Pi / 4, -math.Pi / 4, math.Pi / 2, -math.Pi / 2,
}

// updateChase turns toward the player at a bounded rate and moves at chase
// speed, deflecting around obstacles at reduced speed.
func (g *Guardian) updateChase(w *World) {
	bearing := HeadingTo(g.X, g.Y, w.Player.X, w.Player.Y)
	g.Heading = turnToward(g.Heading, bearing, chaseTurnRate)

	nx := g.X + math.Cos(g.Heading)*g.chaseSpeed
	ny := g.Y + math.Sin(g.Heading)*g.chaseSpeed
	if !Blocked(w.grid, nx, ny, g.Radius) {
		g.X, g.Y = nx, ny
		g.stuckCounter = 0
		return
	}

	speed := g.chaseSpeed * deflectSpeedMul
	for _, off := range chaseDeflections {
		a := bearing + off
		nx = g.X + math.Cos(a)*speed
		ny = g.Y + math.Sin(a)*speed
		if !Blocked(w.grid, nx, ny, g.Radius) {
			g.X, g.Y = nx, ny
			g.stuckCounter = 0
			return
		}
	}

	// Boxed in from every chase angle.
	g.stuckCounter++
}

// teleport relocates the guardian to a freshly sampled safe position and
// resets the stuck counter. Logged at warning level: frequent teleports
// point at a generation or tuning problem.
func (g *Guardian) teleport(w *World) {
	taken := append([]Pose{w.Player}, w.guardianPosesExcept(g)...)
	p := SampleSpawn(w.grid, w.rng, g.Radius, defaultSpawnSeparation, taken)

	simLogger().WithFields(logrus.Fields{
		"guardian": g.label,
		"tick":     w.tick,
		"from":     fmt.Sprintf("(%.0f,%.0f)", g.X, g.Y),
		"to":       fmt.Sprintf("(%.0f,%.0f)", p.X, p.Y),
	}).Warn("stuck guardian teleported")
	w.simLog.Add(w.tick, g.label, "spawn", "teleport",
		fmt.Sprintf("(%.0f,%.0f) → (%.0f,%.0f)", g.X, g.Y, p.X, p.Y), 0)

	g.X, g.Y = p.X, p.Y
	g.stuckCounter = 0
	g.lostSight = 0
	g.setState(w, GuardianPatrol)
	g.chooseDirection(w)
}
