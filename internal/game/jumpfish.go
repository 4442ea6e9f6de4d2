package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// jumpFish is the ambient fish that breaches the pond every so often. At
// most one is airborne at a time; the next breach is queued on the engine
// timer wheel with a randomized delay.
type jumpFish struct {
	active bool
	x, y   float64 // water surface point it breached from
	drift  float64 // horizontal px travelled over the whole arc
	t      float64
	dur    float64
}

const (
	jumpMinDelay  = 4.0
	jumpDelaySpan = 8.0
	jumpHeight    = 18.0
)

// scheduleNextJump queues the next pond breach. Uses the empty session tag
// so fishing-session cancellation never touches it.
func (e *Engine) scheduleNextJump() {
	delay := jumpMinDelay + e.rng.Float64()*jumpDelaySpan
	e.afterSeconds(delay, "", e.startJump)
}

// startJump picks a random water tile and launches the arc, then queues
// the following breach so the chain never stops.
func (e *Engine) startJump() {
	defer e.scheduleNextJump()
	if len(e.village.WaterTiles) == 0 || e.jumper.active {
		return
	}
	tp := e.village.WaterTiles[e.rng.Intn(len(e.village.WaterTiles))]
	x, y := tileCenter(tp.Col, tp.Row)
	e.jumper = jumpFish{
		active: true,
		x:      x,
		y:      y,
		drift:  -10 + e.rng.Float64()*20,
		dur:    0.8 + e.rng.Float64()*0.3,
	}
	e.particles.SpawnSplash(x, y, 3)
	e.log.AddVerbose(e.tick, "ambient", "fish_jump",
		fmt.Sprintf("(%d,%d)", tp.Col, tp.Row), 0)
}

// updateJumpFish advances the arc and lands the fish with a splash.
func (e *Engine) updateJumpFish(dt float64) {
	if !e.jumper.active {
		return
	}
	e.jumper.t += dt
	if e.jumper.t >= e.jumper.dur {
		e.jumper.active = false
		e.particles.SpawnSplash(e.jumper.x+e.jumper.drift, e.jumper.y, 5)
	}
}

// drawJumpFish renders the airborne fish as a small silver body and tail
// following a parabolic arc above the breach point.
func (e *Engine) drawJumpFish(dst *ebiten.Image) {
	if !e.jumper.active {
		return
	}
	prog := e.jumper.t / e.jumper.dur
	arc := math.Sin(math.Pi * prog)
	x := float32(e.jumper.x + e.jumper.drift*prog)
	y := float32(e.jumper.y - arc*jumpHeight)

	body := color.RGBA{R: 166, G: 186, B: 200, A: 235}
	belly := color.RGBA{R: 214, G: 226, B: 232, A: 200}
	vector.FillCircle(dst, x, y, 3, body, false)
	vector.FillCircle(dst, x, y+1, 1.6, belly, false)
	// Tail trails opposite the drift direction.
	tailDx := float32(2.8)
	if e.jumper.drift > 0 {
		tailDx = -2.8
	}
	vector.FillRect(dst, x+tailDx-1.2, y-1.2, 2.4, 2.4, body, false)
}
