package game

import "testing"

func TestPlayer_FacingUpdatesEvenWhenBlocked(t *testing.T) {
	ts := NewTestScene()
	e := ts.Engine
	col, row := e.PlayerPos()
	e.World().SetTile(col, row-1, TileRock)

	e.MovePlayer(DirUp)
	if c, r := e.PlayerPos(); c != col || r != row {
		t.Fatalf("player walked into a rock: (%d,%d)", c, r)
	}
	if got := e.Facing(); got != DirUp {
		t.Fatalf("expected facing up after blocked move, got %s", got)
	}
}

func TestPlayer_MoveOntoWalkableTile(t *testing.T) {
	ts := NewTestScene()
	e := ts.Engine
	col, row := e.PlayerPos()
	e.World().SetTile(col+1, row, TilePath)

	e.MovePlayer(DirRight)
	if c, r := e.PlayerPos(); c != col+1 || r != row {
		t.Fatalf("expected move to (%d,%d), got (%d,%d)", col+1, row, c, r)
	}
}

func TestPlayer_VisualNeverOvershoots(t *testing.T) {
	ts := NewTestScene()
	e := ts.Engine
	col, row := e.PlayerPos()
	e.World().SetTile(col+1, row, TilePath)

	startX := e.player.VisX
	e.MovePlayer(DirRight)
	target := float64((col + 1) * tileSize)

	prev := startX
	for i := 0; i < 180; i++ {
		e.Advance(1.0 / 60.0)
		x := e.player.VisX
		if x < prev-1e-9 {
			t.Fatalf("frame %d: visual X moved backwards (%.4f -> %.4f)", i, prev, x)
		}
		if x > target+1e-9 {
			t.Fatalf("frame %d: visual X overshot target %.1f at %.4f", i, target, x)
		}
		prev = x
	}
	if e.player.VisX != target {
		t.Fatalf("visual X never settled: %.4f vs %.1f", e.player.VisX, target)
	}
}

func TestPlayer_LargeFrameDeltaSettlesWithoutOscillation(t *testing.T) {
	ts := NewTestScene()
	e := ts.Engine
	col, row := e.PlayerPos()
	e.World().SetTile(col+1, row, TilePath)

	e.MovePlayer(DirRight)
	e.Advance(1.0) // one huge frame
	target := float64((col + 1) * tileSize)
	if e.player.VisX != target {
		t.Fatalf("expected instant settle on large dt, got %.4f vs %.1f", e.player.VisX, target)
	}
}

func TestPlayer_EligibilityCallbackFiresOnEdges(t *testing.T) {
	ts := NewTestScene(WithPlayerAt(dockTiles[0].Col, dockTiles[0].Row, DirRight))
	e := ts.Engine

	var flips []bool
	e.OnEligibilityChange(func(b bool) { flips = append(flips, b) })

	// Walk the dock: eligibility turns on at the far end, off when
	// turning back toward the planks.
	e.MovePlayer(DirRight)
	e.MovePlayer(DirRight)
	e.MovePlayer(DirLeft)

	if len(flips) != 2 || flips[0] != true || flips[1] != false {
		t.Fatalf("expected [true false] eligibility flips, got %v", flips)
	}
}

func TestPlayer_FacingWaterBlocksMoveButAllowsCast(t *testing.T) {
	ts := NewTestScene()
	ts.MoveToFishingSpot()
	e := ts.Engine
	col, row := e.PlayerPos()

	e.MovePlayer(DirRight)
	if c, r := e.PlayerPos(); c != col || r != row {
		t.Fatalf("player walked onto water: (%d,%d)", c, r)
	}
	if !e.CanFish() {
		t.Fatal("expected fishing eligibility while facing open water")
	}
}
