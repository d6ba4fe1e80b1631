package game

import "testing"

func TestBlocked_SingleWallSoundness(t *testing.T) {
	g := FallbackLayout(7, 7)
	g.setWall(3, 3)

	wx, wy := TileCenter(3, 3)
	if !Blocked(g, wx, wy, 10) {
		t.Error("probe centered on the wall tile should be blocked")
	}

	fx, fy := TileCenter(3, 5) // one full tile of clearance below the wall
	if Blocked(g, fx, fy, 10) {
		t.Error("probe one tile away on open floor should not be blocked")
	}
}

func TestBlocked_InteriorAndBorderQueries(t *testing.T) {
	// 5x5 grid: wall border around an all-floor 3x3 interior.
	g := FallbackLayout(5, 5)

	if Blocked(g, TileSize*1.5, TileSize*1.5, 15) {
		t.Error("radius-15 probe at the center of interior tile (1,1) should be clear")
	}
	if !Blocked(g, TileSize*0.5, TileSize*0.5, 15) {
		t.Error("probe at the border wall tile coordinate should be blocked")
	}
}

func TestBlocked_OutOfBoundsAlwaysBlocked(t *testing.T) {
	g := FallbackLayout(5, 5)
	cases := [][2]float64{{-100, -100}, {1e6, 10}, {10, 1e6}, {-0.1, 75}}
	for _, c := range cases {
		if !Blocked(g, c[0], c[1], 5) {
			t.Errorf("out-of-bounds probe at (%.1f,%.1f) should be blocked", c[0], c[1])
		}
	}
}

func TestBlocked_ProbeStraddlesWall(t *testing.T) {
	g := FallbackLayout(9, 9)
	g.setWall(4, 5)
	x, y := TileCenter(4, 4)

	if Blocked(g, x, y, 10) {
		t.Error("small probe inside an open tile should be clear")
	}
	// A radius larger than the remaining clearance reaches the wall tile below.
	if !Blocked(g, x, y, 30) {
		t.Error("large probe should straddle into the wall tile")
	}
}

func TestBlocked_LargeProbeDiagonalWall(t *testing.T) {
	g := FallbackLayout(11, 11)
	g.setWall(6, 6)
	x, y := TileCenter(5, 5)
	if !Blocked(g, x, y, 60) {
		t.Error("a probe wider than a tile should catch the diagonally adjacent wall")
	}
}

func TestBlocked_NegativeRadiusPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative radius")
		}
	}()
	Blocked(FallbackLayout(5, 5), 75, 75, -1)
}

func TestBlocked_NilGridPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil grid")
		}
	}()
	Blocked(nil, 0, 0, 5)
}
