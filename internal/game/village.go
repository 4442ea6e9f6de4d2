package game

import "math/rand"

// Village grid dimensions. One tile is 32 world pixels.
const (
	villageCols = 30
	villageRows = 20
	tileSize    = 32
)

// Pond ellipse in tile-centre coordinates. Tiles whose centre falls inside
// the ellipse are water; a thin outer ring becomes sand shore.
const (
	pondCX = 21.5
	pondCY = 8.5
	pondRX = 5.7
	pondRY = 4.3
)

// Cabin footprint, in tiles. The cabin is a hand-placed multi-tile structure;
// its door, windows, and chimney are drawn at absolute offsets from this
// anchor, so these constants are load-bearing for rendering and lighting.
const (
	cabinCol  = 4
	cabinRow  = 3
	cabinCols = 4
	cabinRows = 3
)

// Fixed feature positions.
var (
	campfireTile = TilePos{10, 10}
	lanternTiles = []TilePos{{13, 6}, {9, 14}, {17, 12}}
	lilyTiles    = []TilePos{{19, 6}, {23, 7}, {20, 10}, {24, 9}}
	dockTiles    = []TilePos{{16, 8}, {17, 8}, {18, 8}}
	logTiles     = []TilePos{{12, 15}, {13, 15}, {25, 15}}
	spawnTile    = TilePos{12, 11}
)

// Scatter counts for seeded cosmetic placement.
const (
	villageTreeCount      = 26
	villageRockCount      = 8
	villageBushCount      = 10
	villageTallGrassCount = 14
)

// TilePos is a tile-grid coordinate.
type TilePos struct {
	Col int
	Row int
}

// DockEnd returns the outermost dock plank, the tile anglers fish from.
func (v *Village) DockEnd() TilePos {
	return dockTiles[len(dockTiles)-1]
}

// LightKind identifies a glow source category for night lighting.
type LightKind uint8

const (
	LightCampfire LightKind = iota
	LightLantern
	LightWindow
)

// LightSource is a fixed world-space glow emitter, active at dusk and night.
type LightSource struct {
	Kind    LightKind
	X, Y    float64 // world pixels, centre of the glow
	Radius  float32 // base glow radius in pixels
	PulseHz float64 // pulse speed multiplier for the radius wobble
}

// EmitterAnchor ties a fixed pool of tethered particles to a world position.
type EmitterAnchor struct {
	Kind  ParticleKind
	X, Y  float64 // world pixels
	Count int     // fixed particle count for this anchor
}

// Village bundles the built world with the derived feature lists the engine
// needs: light sources, particle anchors, pond tiles, and the spawn point.
type Village struct {
	World *World

	SpawnCol, SpawnRow int

	// Chimney top in world pixels, used as a smoke anchor and by the
	// cabin renderer.
	ChimneyX, ChimneyY float64

	Lights     []LightSource
	Anchors    []EmitterAnchor
	WaterTiles []TilePos
}

// tileCenter returns the world-pixel centre of a tile.
func tileCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * tileSize, (float64(row) + 0.5) * tileSize
}

// pondDist returns the squared normalised ellipse distance for a tile centre.
// Values <= 1 are inside the pond.
func pondDist(col, row int) float64 {
	nx := (float64(col) + 0.5 - pondCX) / pondRX
	ny := (float64(row) + 0.5 - pondCY) / pondRY
	return nx*nx + ny*ny
}

// BuildVillage constructs the authored village map. Structural features
// (pond, dock, cabin, campfire, lanterns, paths) sit at fixed coordinates;
// only the tree/rock/bush/tall-grass scatter varies with the seed.
func BuildVillage(seed int64) *Village {
	w := NewWorld(villageCols, villageRows, tileSize)
	v := &Village{World: w, SpawnCol: spawnTile.Col, SpawnRow: spawnTile.Row}

	// Pond and shore.
	for row := 0; row < w.Rows; row++ {
		for col := 0; col < w.Cols; col++ {
			d := pondDist(col, row)
			switch {
			case d <= 1.0:
				w.SetTile(col, row, TileWater)
			case d <= 1.5:
				w.SetTile(col, row, TileSand)
			}
		}
	}
	for _, p := range lilyTiles {
		w.SetTile(p.Col, p.Row, TileLily)
	}
	for _, p := range dockTiles {
		w.SetTile(p.Col, p.Row, TileDock)
	}

	// Paths: cabin door down to the lakeside lane, along to the dock,
	// with a spur up to the campfire clearing.
	carvePath(w, 5, 6, 5, 12)
	carvePath(w, 5, 12, 15, 12)
	carvePath(w, 15, 9, 15, 12)
	carvePath(w, 10, 11, 10, 12)

	// Cabin block.
	for row := cabinRow; row < cabinRow+cabinRows; row++ {
		for col := cabinCol; col < cabinCol+cabinCols; col++ {
			w.SetTile(col, row, TileCabin)
		}
	}

	// Fence around the cabin garden: a top run with short side returns.
	for col := cabinCol - 1; col <= cabinCol+cabinCols; col++ {
		w.SetTile(col, cabinRow-1, TileFence)
	}
	w.SetTile(cabinCol-1, cabinRow, TileFence)
	w.SetTile(cabinCol-1, cabinRow+1, TileFence)
	w.SetTile(cabinCol+cabinCols, cabinRow, TileFence)
	w.SetTile(cabinCol+cabinCols, cabinRow+1, TileFence)

	w.SetTile(campfireTile.Col, campfireTile.Row, TileCampfire)
	for _, p := range lanternTiles {
		w.SetTile(p.Col, p.Row, TileLantern)
	}
	for _, p := range logTiles {
		w.SetTile(p.Col, p.Row, TileLog)
	}

	scatterVegetation(w, seed)

	// Keep the spawn cell and its immediate ring clear.
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c, r := spawnTile.Col+dx, spawnTile.Row+dy
			if k := w.At(c, r); k == TileTree || k == TileRock || k == TileBush {
				w.SetTile(c, r, TileGrass)
			}
		}
	}

	v.collectFeatures()
	return v
}

// carvePath writes a straight path segment between two tiles. Only axis
// aligned segments are used by the village layout.
func carvePath(w *World, c0, r0, c1, r1 int) {
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if w.At(col, row) != TileWater {
				w.SetTile(col, row, TilePath)
			}
		}
	}
}

// scatterVegetation places trees, rocks, bushes, and tall grass on open
// grass using a seeded rng so the layout is reproducible per seed.
func scatterVegetation(w *World, seed int64) {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only

	place := func(kind TileKind, count int) {
		placed := 0
		for tries := 0; tries < count*12 && placed < count; tries++ {
			col := rng.Intn(w.Cols)
			row := rng.Intn(w.Rows)
			if w.At(col, row) != TileGrass {
				continue
			}
			// Leave the cabin approach open.
			if col >= cabinCol-1 && col <= cabinCol+cabinCols && row >= cabinRow-1 && row <= cabinRow+cabinRows+1 {
				continue
			}
			w.SetTile(col, row, kind)
			placed++
		}
	}

	place(TileTree, villageTreeCount)
	place(TileRock, villageRockCount)
	place(TileBush, villageBushCount)
	place(TileTallGrass, villageTallGrassCount)
}

// collectFeatures derives light sources, particle anchors, and the pond tile
// list from the built map. Window and chimney positions come from the cabin
// anchor constants.
func (v *Village) collectFeatures() {
	w := v.World

	// Cabin chimney: top-right of the roof, slightly inset.
	v.ChimneyX = float64(cabinCol+cabinCols)*tileSize - 14
	v.ChimneyY = float64(cabinRow)*tileSize + 2

	// Cabin windows flank the door on the front wall.
	winY := (float64(cabinRow) + 1.55) * tileSize
	winXs := []float64{
		(float64(cabinCol) + 0.75) * tileSize,
		(float64(cabinCol) + 3.25) * tileSize,
	}
	for _, wx := range winXs {
		v.Lights = append(v.Lights, LightSource{Kind: LightWindow, X: wx, Y: winY, Radius: 22, PulseHz: 1.1})
	}

	cx, cy := tileCenter(campfireTile.Col, campfireTile.Row)
	v.Lights = append(v.Lights, LightSource{Kind: LightCampfire, X: cx, Y: cy, Radius: 58, PulseHz: 2.3})
	v.Anchors = append(v.Anchors,
		EmitterAnchor{Kind: ParticleSmoke, X: cx, Y: cy - 6, Count: 7},
		EmitterAnchor{Kind: ParticleEmber, X: cx, Y: cy - 2, Count: 10},
		EmitterAnchor{Kind: ParticleSmoke, X: v.ChimneyX, Y: v.ChimneyY, Count: 6},
	)

	for _, p := range lanternTiles {
		lx, ly := tileCenter(p.Col, p.Row)
		ly -= 10 // glow sits at the lamp head, not the post base
		v.Lights = append(v.Lights, LightSource{Kind: LightLantern, X: lx, Y: ly, Radius: 36, PulseHz: 1.6})
		v.Anchors = append(v.Anchors, EmitterAnchor{Kind: ParticleEmber, X: lx, Y: ly, Count: 3})
	}

	for row := 0; row < w.Rows; row++ {
		for col := 0; col < w.Cols; col++ {
			if w.At(col, row) == TileWater {
				v.WaterTiles = append(v.WaterTiles, TilePos{col, row})
			}
		}
	}
}
