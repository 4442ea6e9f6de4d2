package game

import "testing"

func TestNewWorld_DefaultGrass(t *testing.T) {
	w := NewWorld(10, 8, 32)
	if w.Cols != 10 || w.Rows != 8 {
		t.Fatalf("expected 10x8, got %dx%d", w.Cols, w.Rows)
	}
	for row := 0; row < w.Rows; row++ {
		for col := 0; col < w.Cols; col++ {
			if k := w.At(col, row); k != TileGrass {
				t.Fatalf("tile (%d,%d) = %s, want grass", col, row, k)
			}
			if !w.IsWalkable(col, row) {
				t.Fatalf("tile (%d,%d) should be walkable", col, row)
			}
		}
	}
}

func TestWorld_WalkablePartition(t *testing.T) {
	walkable := map[TileKind]bool{
		TileGrass: true, TileSand: true, TilePath: true,
		TileDock: true, TileTallGrass: true,
	}
	w := NewWorld(3, 3, 32)
	for k := TileKind(0); k < tileKindCount; k++ {
		w.SetTile(1, 1, k)
		got := w.IsWalkable(1, 1)
		if got != walkable[k] {
			t.Fatalf("kind %s: IsWalkable=%v, want %v", k, got, walkable[k])
		}
	}
}

func TestWorld_OutOfBounds(t *testing.T) {
	w := NewWorld(3, 3, 32)
	if w.IsWalkable(-1, 0) {
		t.Fatal("out of bounds should not be walkable")
	}
	if w.IsWalkable(0, 3) {
		t.Fatal("out of bounds should not be walkable")
	}
	if w.At(-5, -5) != TileGrass {
		t.Fatal("out of bounds At should fall back to grass")
	}
	// Should not panic.
	w.SetTile(99, 99, TileWater)
	if w.IsFishableEdge(-1, 0, DirRight) {
		t.Fatal("fishable edge from out-of-bounds cell should be false")
	}
}

func TestWorld_CorruptTileFallsBackToGrass(t *testing.T) {
	w := NewWorld(3, 3, 32)
	w.Tiles[4] = TileKind(250)
	if k := w.At(1, 1); k != TileGrass {
		t.Fatalf("corrupt tile should read as grass, got %s", k)
	}
	if !w.IsWalkable(1, 1) {
		t.Fatal("corrupt tile should stay walkable")
	}
}

func TestWorld_FishableEdgeMatchesAdjacentWater(t *testing.T) {
	w := NewWorld(5, 5, 32)
	w.SetTile(3, 2, TileWater)
	w.SetTile(2, 3, TileLily)

	if !w.IsFishableEdge(2, 2, DirRight) {
		t.Fatal("water to the right should be fishable")
	}
	if !w.IsFishableEdge(2, 2, DirDown) {
		t.Fatal("lily pad below should be fishable")
	}
	if w.IsFishableEdge(2, 2, DirUp) {
		t.Fatal("grass above should not be fishable")
	}
	if w.IsFishableEdge(2, 2, DirLeft) {
		t.Fatal("grass to the left should not be fishable")
	}

	// Exhaustive cross-check: the edge test must agree with the adjacent
	// tile being water-typed, for every cell and facing.
	for row := 0; row < w.Rows; row++ {
		for col := 0; col < w.Cols; col++ {
			for d := DirUp; d < directionCount; d++ {
				dx, dy := d.Delta()
				want := tileIsWater(w.At(col+dx, row+dy))
				if got := w.IsFishableEdge(col, row, d); got != want {
					t.Fatalf("(%d,%d) facing %s: got %v, want %v", col, row, d, got, want)
				}
			}
		}
	}
}

func TestWorld_DockTileIsFishableOverWater(t *testing.T) {
	w := NewWorld(5, 3, 32)
	w.SetTile(2, 1, TileDock)
	w.SetTile(3, 1, TileWater)
	if !w.IsWalkable(2, 1) {
		t.Fatal("dock plank should be walkable")
	}
	if !w.IsFishableEdge(2, 1, DirRight) {
		t.Fatal("casting off the end of the dock should be fishable")
	}
	if w.IsFishableEdge(2, 1, DirLeft) {
		t.Fatal("facing back toward shore should not be fishable")
	}
}

func TestDirection_Delta(t *testing.T) {
	cases := []struct {
		d      Direction
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
	}
	for _, c := range cases {
		dx, dy := c.d.Delta()
		if dx != c.dx || dy != c.dy {
			t.Fatalf("%s delta = (%d,%d), want (%d,%d)", c.d, dx, dy, c.dx, c.dy)
		}
	}
}
