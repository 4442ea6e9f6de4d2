package game

// TileKind identifies what occupies a grid cell.
type TileKind uint8

const (
	TileGrass     TileKind = iota // Default open ground
	TileWater                     // Pond water
	TileSand                      // Shoreline
	TilePath                      // Packed dirt path
	TileTree                      // Tree trunk + canopy
	TileRock                      // Boulder
	TileBush                      // Dense shrub
	TileDock                      // Wooden dock plank, walkable over water
	TileTallGrass                 // Tall grass, walkable
	TileLily                      // Lily pad floating on the pond
	TileCabin                     // Part of the cabin footprint
	TileCampfire                  // Fire pit
	TileLantern                   // Lantern post
	TileFence                     // Fence segment
	TileLog                       // Fallen log
	tileKindCount                 // sentinel
)

// String returns a short lowercase name for logs and reports.
func (k TileKind) String() string {
	switch k {
	case TileGrass:
		return "grass"
	case TileWater:
		return "water"
	case TileSand:
		return "sand"
	case TilePath:
		return "path"
	case TileTree:
		return "tree"
	case TileRock:
		return "rock"
	case TileBush:
		return "bush"
	case TileDock:
		return "dock"
	case TileTallGrass:
		return "tallgrass"
	case TileLily:
		return "lily"
	case TileCabin:
		return "cabin"
	case TileCampfire:
		return "campfire"
	case TileLantern:
		return "lantern"
	case TileFence:
		return "fence"
	case TileLog:
		return "log"
	default:
		return "unknown"
	}
}

// tileWalkable returns true if the player can stand on this tile kind.
func tileWalkable(k TileKind) bool {
	switch k {
	case TileGrass, TileSand, TilePath, TileDock, TileTallGrass:
		return true
	default:
		return false
	}
}

// tileIsWater returns true for tile kinds the pond surface is made of.
// Lily pads float on water, so a cast can land on them too.
func tileIsWater(k TileKind) bool {
	return k == TileWater || k == TileLily
}

// Direction is a four-way facing on the tile grid.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	directionCount // sentinel
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the column/row step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// World is the authoritative per-cell village terrain. It is built once at
// startup and never mutated afterwards; all queries are pure lookups.
type World struct {
	Cols     int
	Rows     int
	TileSize int
	Tiles    []TileKind // row-major: index = row*Cols + col
}

// NewWorld creates a world grid with every tile defaulting to grass.
func NewWorld(cols, rows, tileSize int) *World {
	return &World{
		Cols:     cols,
		Rows:     rows,
		TileSize: tileSize,
		Tiles:    make([]TileKind, cols*rows),
	}
}

// InBounds returns true if (col, row) is inside the grid.
func (w *World) InBounds(col, row int) bool {
	return col >= 0 && col < w.Cols && row >= 0 && row < w.Rows
}

// At returns the tile kind at (col, row). Out-of-bounds reads and corrupted
// tile values both come back as grass, so render and walkability code never
// has to handle a missing tile.
func (w *World) At(col, row int) TileKind {
	if !w.InBounds(col, row) {
		return TileGrass
	}
	k := w.Tiles[row*w.Cols+col]
	if k >= tileKindCount {
		return TileGrass
	}
	return k
}

// SetTile writes a tile kind. Out-of-bounds writes are ignored.
// Only the village builder calls this; the world is fixed afterwards.
func (w *World) SetTile(col, row int, k TileKind) {
	if !w.InBounds(col, row) {
		return
	}
	w.Tiles[row*w.Cols+col] = k
}

// IsWalkable returns true if the player can occupy (col, row).
// Anything outside the grid is not walkable.
func (w *World) IsWalkable(col, row int) bool {
	if !w.InBounds(col, row) {
		return false
	}
	return tileWalkable(w.At(col, row))
}

// IsFishableEdge returns true if a player standing at (col, row) facing dir
// has pond water directly ahead. Docks sit flush against the pond, so this
// one adjacency rule covers casting from shore, sand, and dock planks alike.
func (w *World) IsFishableEdge(col, row int, dir Direction) bool {
	if !w.InBounds(col, row) {
		return false
	}
	dx, dy := dir.Delta()
	return tileIsWater(w.At(col+dx, row+dy))
}
