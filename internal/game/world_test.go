package game

import (
	"math"
	"testing"
)

// chaseCaptureConfig matches the canonical pursuit scenario: big guardian,
// small player, capture threshold 60.
func chaseCaptureConfig() LevelConfig {
	cfg := baseConfig
	cfg.GuardianRadius = 40
	cfg.PlayerRadius = 20
	return cfg
}

func TestWorld_ChaseClosesAndCatches(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(20, 15),
		WithSeed(42),
		WithLevelConfig(chaseCaptureConfig()),
		WithPlayer(300, 375),
		WithGuardian(500, 375, math.Pi), // 200 units away, facing the player
	)
	g := ts.World.Guardians[0]

	dist := func() float64 {
		return math.Hypot(g.X-ts.World.Player.X, g.Y-ts.World.Player.Y)
	}

	prev := dist()
	for i := 0; i < 200; i++ {
		ts.RunTicks(1)
		if ts.HasEvent(EventCaught) {
			if d := dist(); d >= 60 {
				t.Errorf("caught at distance %.1f, want < 60", d)
			}
			if ts.World.Outcome() != OutcomeCaught {
				t.Errorf("outcome = %s, want caught", ts.World.Outcome())
			}
			return
		}
		d := dist()
		if d >= prev {
			t.Fatalf("tick %d: distance %.2f did not decrease from %.2f", i+1, d, prev)
		}
		prev = d
	}
	t.Fatal("guardian never caught the stationary player")
}

func TestWorld_ImmunitySuppressesDetectionAndCapture(t *testing.T) {
	px, py := TileCenter(5, 7)
	gx, gy := TileCenter(10, 7)

	ts := NewTestSim(
		WithGridSize(21, 15),
		WithSeed(42),
		WithPlayer(px, py),
		WithGuardian(gx, gy, math.Pi),
		WithPowerUp(px, py, Immunity{Duration: 100000}),
	)

	ts.RunTicks(600)
	if ts.HasEvent(EventCaught) {
		t.Error("immune player was caught")
	}
	if ts.SimLog.HasEntry("state", "change", "chase") {
		t.Error("immune player was detected")
	}
	if !ts.HasEvent(EventPowerUpCollected) {
		t.Error("power-up was never collected")
	}
}

func TestWorld_OrbCollectionCompletesLevel(t *testing.T) {
	px, py := TileCenter(1, 1)
	ox, oy := TileCenter(3, 1)

	ts := NewTestSim(
		WithGridSize(9, 7),
		WithSeed(1),
		WithPlayer(px, py),
		WithOrb(px, py), // under the player: collected immediately
		WithOrb(ox, oy),
	)

	ts.RunTicks(1)
	if !ts.HasEvent(EventOrbCollected) {
		t.Fatal("orb under the player was not collected")
	}
	if ts.HasEvent(EventLevelComplete) {
		t.Fatal("level completed with an orb outstanding")
	}

	// Walk to the second orb.
	for i := 0; i < 200 && !ts.HasEvent(EventLevelComplete); i++ {
		ts.World.MovePlayer(2, 0)
		ts.RunTicks(1)
	}
	if !ts.HasEvent(EventLevelComplete) {
		t.Fatal("collecting the last orb did not complete the level")
	}
	if ts.World.Outcome() != OutcomeComplete {
		t.Errorf("outcome = %s, want complete", ts.World.Outcome())
	}
}

func TestWorld_ThunderChargeRemovesNearestGuardian(t *testing.T) {
	px, py := TileCenter(1, 1)
	nearX, nearY := TileCenter(5, 1)
	farX, farY := TileCenter(18, 13)

	ts := NewTestSim(
		WithGridSize(21, 15),
		WithSeed(1),
		WithPlayer(px, py),
		WithGuardian(nearX, nearY, 0),
		WithGuardian(farX, farY, 0),
		WithPowerUp(px, py, ThunderCharge{}),
	)

	ts.RunTicks(1)
	if !ts.HasEvent(EventGuardianRemoved) {
		t.Fatal("thunder charge did not remove a guardian")
	}
	if n := len(ts.World.Guardians); n != 1 {
		t.Fatalf("guardian count = %d, want 1", n)
	}
	// The far guardian survives.
	g := ts.World.Guardians[0]
	if math.Hypot(g.X-farX, g.Y-farY) > 4*TileSize {
		t.Error("thunder removed the wrong guardian")
	}
}

func TestWorld_RemoveGuardianBadIndex(t *testing.T) {
	ts := NewTestSim(WithGridSize(9, 7), WithSeed(1))
	if _, err := ts.World.RemoveGuardian(0); err == nil {
		t.Error("expected error for empty guardian list")
	}
	if _, err := ts.World.RemoveGuardian(-1); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestWorld_TimerExpiresOnce(t *testing.T) {
	ts := NewTestSim(WithGridSize(9, 7), WithSeed(1), WithTimer(5))
	ts.RunTicks(20)

	n := 0
	for _, e := range ts.Events() {
		if e.Kind == EventTimeExpired {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("timeExpired emitted %d times, want exactly once", n)
	}
	if ts.World.Outcome() != OutcomeTimeout {
		t.Errorf("outcome = %s, want timeout", ts.World.Outcome())
	}
}

func TestWorld_TimerBonusExtendsCountdown(t *testing.T) {
	px, py := TileCenter(1, 1)
	ts := NewTestSim(
		WithGridSize(9, 7),
		WithSeed(1),
		WithTimer(50),
		WithPlayer(px, py),
		WithPowerUp(px, py, TimerBonus{Ticks: 300}),
	)
	ts.RunTicks(1)
	if got := ts.World.TicksRemaining; got != 349 {
		t.Errorf("ticks remaining = %d, want 349", got)
	}
}

func TestWorld_SpeedBoostAppliesAndExpires(t *testing.T) {
	px, py := TileCenter(1, 1)
	ts := NewTestSim(
		WithGridSize(9, 7),
		WithSeed(1),
		WithPlayer(px, py),
		WithPowerUp(px, py, SpeedBoost{Multiplier: 2, Duration: 10}),
	)

	ts.RunTicks(1)
	if m := ts.World.PlayerSpeedMultiplier(); m != 2 {
		t.Fatalf("speed multiplier = %.1f, want 2", m)
	}
	ts.RunTicks(10)
	if m := ts.World.PlayerSpeedMultiplier(); m != 1 {
		t.Errorf("speed multiplier = %.1f after expiry, want 1", m)
	}
}

func TestWorld_MovePlayerValidatesCollision(t *testing.T) {
	px, py := TileCenter(1, 1)
	ts := NewTestSim(WithGridSize(9, 7), WithSeed(1), WithPlayer(px, py))

	if ts.World.MovePlayer(-60, 0) {
		t.Error("move into the border wall should be rejected")
	}
	if ts.World.Player.X != px {
		t.Error("rejected move should leave the player in place")
	}
	if !ts.World.MovePlayer(10, 0) {
		t.Error("move across open floor should succeed")
	}
}

func TestWorld_TickRequiresPositiveDt(t *testing.T) {
	ts := NewTestSim(WithGridSize(9, 7))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for dtTicks 0")
		}
	}()
	ts.World.Tick(0)
}

func TestNewLevel_PopulatesPerConfig(t *testing.T) {
	cfg := ConfigFor(TierNormal, 1)
	grid := FallbackLayout(cfg.Cols, cfg.Rows)
	w := NewLevel(grid, cfg, 42)

	if len(w.Guardians) != cfg.GuardianCount {
		t.Errorf("guardians = %d, want %d", len(w.Guardians), cfg.GuardianCount)
	}
	if len(w.Orbs) != cfg.OrbCount {
		t.Errorf("orbs = %d, want %d", len(w.Orbs), cfg.OrbCount)
	}
	if len(w.PowerUps) != cfg.PowerUpCount {
		t.Errorf("power-ups = %d, want %d", len(w.PowerUps), cfg.PowerUpCount)
	}
	if w.TicksRemaining != cfg.TimerTicks {
		t.Errorf("timer = %d, want %d", w.TicksRemaining, cfg.TimerTicks)
	}
	if Blocked(grid, w.Player.X, w.Player.Y, cfg.PlayerRadius) {
		t.Error("player spawned on a blocked position")
	}
	for _, g := range w.Guardians {
		if Blocked(grid, g.X, g.Y, g.Radius) {
			t.Errorf("guardian %s spawned on a blocked position", g.Label())
		}
	}
}

func TestNewLevel_Deterministic(t *testing.T) {
	cfg := ConfigFor(TierNormal, 2)
	grid := FallbackLayout(cfg.Cols, cfg.Rows)
	a := NewLevel(grid, cfg, 99)
	b := NewLevel(grid, cfg, 99)

	if a.Player != b.Player {
		t.Error("player spawn differs between identical seeds")
	}
	for i := range a.Guardians {
		if a.Guardians[i].X != b.Guardians[i].X || a.Guardians[i].Y != b.Guardians[i].Y {
			t.Errorf("guardian %d spawn differs between identical seeds", i)
		}
	}
}
