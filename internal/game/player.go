package game

import "fmt"

// playerSmoothing is the per-frame easing factor (at 60fps) pulling the
// visual position toward the logical tile. The applied fraction is clamped
// to 1 so the sprite can never overshoot its target.
const playerSmoothing = 0.18

// visualSnapPx snaps the eased position once it is this close, keeping
// long-settled positions exact.
const visualSnapPx = 0.05

// Player holds the angler's logical grid position and the eased position
// the renderer draws. The logical tile moves in whole steps; the visual
// position follows it smoothly.
type Player struct {
	Col    int
	Row    int
	Facing Direction

	// Visual top-left corner in world pixels.
	VisX float64
	VisY float64
}

// NewPlayer places a player on a tile with the visual position already
// settled there.
func NewPlayer(col, row int) *Player {
	return &Player{
		Col:    col,
		Row:    row,
		Facing: DirDown,
		VisX:   float64(col * tileSize),
		VisY:   float64(row * tileSize),
	}
}

// MovePlayer handles one grid-move intent. Movement is ignored entirely
// while a fishing session is in progress. Otherwise the facing always
// updates, and the logical tile moves only onto walkable ground.
func (e *Engine) MovePlayer(d Direction) {
	if d >= directionCount {
		return
	}
	if e.fishState != FishIdle {
		return
	}
	p := e.player
	p.Facing = d
	dx, dy := d.Delta()
	nc, nr := p.Col+dx, p.Row+dy
	if !e.world.IsWalkable(nc, nr) {
		e.log.AddVerbose(e.tick, "player", "blocked",
			fmt.Sprintf("(%d,%d) %s", p.Col, p.Row, d), 0)
		e.refreshEligibility()
		return
	}
	p.Col, p.Row = nc, nr
	e.log.AddVerbose(e.tick, "player", "move",
		fmt.Sprintf("(%d,%d) %s", nc, nr, d), 0)
	e.refreshEligibility()
}

// updatePlayerVisual eases the drawn position toward the logical tile.
// The step fraction scales with dt and is capped at 1, so large frame
// deltas settle instantly instead of oscillating.
func (e *Engine) updatePlayerVisual(dt float64) {
	p := e.player
	alpha := playerSmoothing * dt * 60
	if alpha > 1 {
		alpha = 1
	}
	tx := float64(p.Col * tileSize)
	ty := float64(p.Row * tileSize)
	p.VisX += (tx - p.VisX) * alpha
	p.VisY += (ty - p.VisY) * alpha
	if dx := tx - p.VisX; dx > -visualSnapPx && dx < visualSnapPx {
		p.VisX = tx
	}
	if dy := ty - p.VisY; dy > -visualSnapPx && dy < visualSnapPx {
		p.VisY = ty
	}
}

// playerCanFish reports whether the player's tile and facing allow a cast.
func (e *Engine) playerCanFish() bool {
	p := e.player
	return e.world.IsFishableEdge(p.Col, p.Row, p.Facing)
}
