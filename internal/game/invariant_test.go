package game

import (
	"math"
	"math/rand"
	"testing"
)

// --- Invariant helpers ---

// checkGuardiansOnFloor verifies that no guardian's collision circle overlaps
// a wall at the current tick.
func checkGuardiansOnFloor(t *testing.T, w *World) {
	t.Helper()
	for _, g := range w.Guardians {
		if Blocked(w.Grid(), g.X, g.Y, g.Radius) {
			t.Errorf("guardian %s overlaps a wall at (%.1f, %.1f) on tick %d",
				g.label, g.X, g.Y, w.CurrentTick())
		}
	}
}

// checkHeadingsNormalized verifies every guardian heading is in (-pi, pi].
func checkHeadingsNormalized(t *testing.T, w *World) {
	t.Helper()
	for _, g := range w.Guardians {
		if g.Heading <= -math.Pi-1e-9 || g.Heading > math.Pi+1e-9 {
			t.Errorf("guardian %s heading %.4f outside (-pi, pi] on tick %d",
				g.label, g.Heading, w.CurrentTick())
		}
	}
}

// checkCountersBounded verifies internal guardian counters never run away.
func checkCountersBounded(t *testing.T, w *World) {
	t.Helper()
	for _, g := range w.Guardians {
		if g.stuckCounter < 0 || g.stuckCounter > stuckThreshold {
			t.Errorf("guardian %s stuckCounter %d outside [0, %d]",
				g.label, g.stuckCounter, stuckThreshold)
		}
		if g.lostSight < 0 || g.lostSight > lostSightTicks {
			t.Errorf("guardian %s lostSight %d outside [0, %d]",
				g.label, g.lostSight, lostSightTicks)
		}
	}
}

// --- Invariant sweeps ---

// TestInvariants_GeneratedLevels runs full levels across tiers and seeds,
// checking the structural invariants every tick.
func TestInvariants_GeneratedLevels(t *testing.T) {
	if testing.Short() {
		t.Skip("long sweep")
	}
	for _, tier := range []Tier{TierEasy, TierNormal, TierHard} {
		for _, seed := range []int64{2, 13, 77} {
			cfg := ConfigFor(tier, 2)
			grid := GenerateMaze(cfg.Cols, cfg.Rows, cfg.Complexity, cfg.Density, rand.New(rand.NewSource(seed)))
			w := NewLevel(grid, cfg, seed)

			checkGuardiansOnFloor(t, w)
			for i := 0; i < 800; i++ {
				w.Tick(1)
				checkGuardiansOnFloor(t, w)
				checkHeadingsNormalized(t, w)
				checkCountersBounded(t, w)
				if w.Outcome() != OutcomeOngoing {
					break
				}
			}
			if t.Failed() {
				t.Logf("tier=%s seed=%d:\n%s", tier, seed, w.SimLog().Format())
				return
			}
		}
	}
}

// TestInvariants_SpawnsNeverOverlap verifies NewLevel never stacks two
// entities on the same spot across many seeds.
func TestInvariants_SpawnsNeverOverlap(t *testing.T) {
	cfg := ConfigFor(TierNormal, 1)
	for seed := int64(0); seed < 25; seed++ {
		grid := GenerateMaze(cfg.Cols, cfg.Rows, cfg.Complexity, cfg.Density, rand.New(rand.NewSource(seed)))
		w := NewLevel(grid, cfg, seed)

		var poses []Pose
		poses = append(poses, w.Player)
		for _, g := range w.Guardians {
			poses = append(poses, Pose{X: g.X, Y: g.Y})
		}
		for i, a := range poses {
			for j, b := range poses {
				if i >= j {
					continue
				}
				dx, dy := a.X-b.X, a.Y-b.Y
				if math.Sqrt(dx*dx+dy*dy) < 1.0 {
					t.Errorf("seed %d: entities %d and %d stacked at (%.1f, %.1f)", seed, i, j, a.X, a.Y)
				}
			}
		}
	}
}

// TestInvariants_TickMonotonic verifies the clock advances by exactly the
// requested dt and events carry the emitting tick.
func TestInvariants_TickMonotonic(t *testing.T) {
	ts := NewTestSim(WithGridSize(11, 9), WithSeed(5), WithTimer(10))
	last := ts.World.CurrentTick()
	for i := 0; i < 15; i++ {
		res := ts.World.Tick(1)
		if res.Tick != last+1 {
			t.Fatalf("tick jumped from %d to %d", last, res.Tick)
		}
		last = res.Tick
	}
	if !ts.World.SimLog().HasEntry("level", "time_expired", "") {
		t.Error("timer of 10 ticks never expired over 15 ticks")
	}
	if ts.World.Outcome() != OutcomeTimeout {
		t.Errorf("outcome = %v, want %v", ts.World.Outcome(), OutcomeTimeout)
	}
}
