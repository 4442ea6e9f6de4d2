package game

import (
	"fmt"
	"image/color"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// borderWidth is the pixel gap between the window edge and the village.
const borderWidth = 24

// hudScale is the integer upscale factor applied to all HUD text.
const hudScale = 2

// moveRepeatFrames is how many frames a held direction key waits between
// repeated grid steps.
const moveRepeatFrames = 9

// Game is the windowed Ebiten wrapper around the engine. All simulation
// state lives in Engine; Game owns only presentation and input.
type Game struct {
	width  int
	height int
	worldW int
	worldH int
	offX   int
	offY   int

	engine *Engine

	// Offscreen buffer for static decorations, built once.
	decor *ebiten.Image
	// Offscreen buffer for the animated world, blitted at the border offset.
	worldBuf *ebiten.Image
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	showHUD    bool
	castHint   bool
	prevKeys   map[ebiten.Key]bool
	holdFrames int

	simSpeed float64 // multiplier: 0=paused, 0.5, 1, 2, 4
}

// New builds the windowed game around a reward service.
func New(svc RewardService, seed int64) *Game {
	e := NewEngine(svc, seed)
	worldW := villageCols * tileSize
	worldH := villageRows * tileSize

	g := &Game{
		width:    borderWidth + worldW + borderWidth,
		height:   borderWidth + worldH + borderWidth,
		worldW:   worldW,
		worldH:   worldH,
		offX:     borderWidth,
		offY:     borderWidth,
		engine:   e,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		simSpeed: 1,
	}
	g.decor = buildDecorImage(e.village, seed+303)
	g.worldBuf = ebiten.NewImage(worldW, worldH)
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)

	g.castHint = e.CanFish()
	e.OnEligibilityChange(func(ok bool) { g.castHint = ok })
	return g
}

// Engine exposes the simulation for command-line wiring.
func (g *Game) Engine() *Engine {
	return g.engine
}

func (g *Game) Update() error {
	g.handleInput()
	if g.simSpeed <= 0 {
		return nil
	}
	g.engine.Advance(g.simSpeed / 60.0)
	return nil
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// Movement: a fresh press steps immediately, holding repeats.
	dirKeys := []struct {
		k ebiten.Key
		d Direction
	}{
		{ebiten.KeyArrowUp, DirUp}, {ebiten.KeyW, DirUp},
		{ebiten.KeyArrowDown, DirDown}, {ebiten.KeyS, DirDown},
		{ebiten.KeyArrowLeft, DirLeft}, {ebiten.KeyA, DirLeft},
		{ebiten.KeyArrowRight, DirRight}, {ebiten.KeyD, DirRight},
	}
	stepped := false
	for _, dk := range dirKeys {
		currentKeys[dk.k] = ebiten.IsKeyPressed(dk.k)
		if currentKeys[dk.k] && !g.prevKeys[dk.k] {
			g.engine.MovePlayer(dk.d)
			g.holdFrames = 0
			stepped = true
		}
	}
	if !stepped {
		if d, held := heldDirection(); held {
			g.holdFrames++
			if g.holdFrames >= moveRepeatFrames {
				g.holdFrames = 0
				g.engine.MovePlayer(d)
			}
		} else {
			g.holdFrames = 0
		}
	}

	// Space: cast when idle, set the hook during a bite.
	currentKeys[ebiten.KeySpace] = ebiten.IsKeyPressed(ebiten.KeySpace)
	if currentKeys[ebiten.KeySpace] && !g.prevKeys[ebiten.KeySpace] {
		switch g.engine.FishState() {
		case FishIdle:
			g.engine.StartCast()
		case FishBite:
			g.engine.ReactCatch()
		}
	}

	// Escape: reel in / abort the session.
	currentKeys[ebiten.KeyEscape] = ebiten.IsKeyPressed(ebiten.KeyEscape)
	if currentKeys[ebiten.KeyEscape] && !g.prevKeys[ebiten.KeyEscape] {
		g.engine.CancelFishing()
	}

	// F: toggle autofish.
	currentKeys[ebiten.KeyF] = ebiten.IsKeyPressed(ebiten.KeyF)
	if currentKeys[ebiten.KeyF] && !g.prevKeys[ebiten.KeyF] {
		g.engine.ToggleAutofish()
	}

	// H: toggle the HUD key legend.
	currentKeys[ebiten.KeyH] = ebiten.IsKeyPressed(ebiten.KeyH)
	if currentKeys[ebiten.KeyH] && !g.prevKeys[ebiten.KeyH] {
		g.showHUD = !g.showHUD
	}

	// N: jump the clock to the next phase.
	currentKeys[ebiten.KeyN] = ebiten.IsKeyPressed(ebiten.KeyN)
	if currentKeys[ebiten.KeyN] && !g.prevKeys[ebiten.KeyN] {
		next := (g.engine.TimeOfDay() + 1) % timeOfDayCount
		g.engine.SetTimeOfDay(next)
	}

	// R: copy the debug report to the clipboard.
	currentKeys[ebiten.KeyR] = ebiten.IsKeyPressed(ebiten.KeyR)
	if currentKeys[ebiten.KeyR] && !g.prevKeys[ebiten.KeyR] {
		rep := g.engine.BuildReport(20)
		if err := clipboard.WriteAll(rep); err != nil {
			log.Printf("clipboard copy failed: %v", err)
		} else {
			g.engine.Log().Add(g.engine.Tick(), "report", "copy",
				fmt.Sprintf("%d bytes", len(rep)), float64(len(rep)))
		}
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.5, 1, 2, 4}
	currentKeys[ebiten.KeyP] = ebiten.IsKeyPressed(ebiten.KeyP)
	if currentKeys[ebiten.KeyP] && !g.prevKeys[ebiten.KeyP] {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	currentKeys[ebiten.KeyComma] = ebiten.IsKeyPressed(ebiten.KeyComma)
	if currentKeys[ebiten.KeyComma] && !g.prevKeys[ebiten.KeyComma] {
		for i := len(speeds) - 1; i > 0; i-- {
			if speeds[i] <= g.simSpeed && speeds[i] > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	currentKeys[ebiten.KeyPeriod] = ebiten.IsKeyPressed(ebiten.KeyPeriod)
	if currentKeys[ebiten.KeyPeriod] && !g.prevKeys[ebiten.KeyPeriod] {
		for i := 0; i < len(speeds)-1; i++ {
			if speeds[i] >= g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	g.prevKeys = currentKeys
}

// heldDirection returns the currently held movement direction, preferring
// vertical when several keys are down.
func heldDirection() (Direction, bool) {
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW):
		return DirUp, true
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS):
		return DirDown, true
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA):
		return DirLeft, true
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD):
		return DirRight, true
	}
	return DirUp, false
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background outside the village frame.
	screen.Fill(color.RGBA{R: 14, G: 18, B: 16, A: 255})

	e := g.engine
	phase := e.cycle.Phase()
	prog := e.cycle.PhaseProgress()

	// World pipeline, back to front, into worldBuf at (0,0) origin.
	g.worldBuf.Clear()
	drawTerrain(g.worldBuf, e.world, e.elapsed)
	g.worldBuf.DrawImage(g.decor, nil)
	drawFlames(g.worldBuf, e.village, e.elapsed)
	e.drawJumpFish(g.worldBuf)
	drawPlayer(g.worldBuf, e.player, e.fishState)
	e.drawFishingGear(g.worldBuf)
	e.particles.Draw(g.worldBuf, phase, e.elapsed)
	drawAmbientOverlay(g.worldBuf, g.worldW, g.worldH, phase, prog)
	drawLightGlows(g.worldBuf, e.village.Lights, phase, prog, e.elapsed)
	drawVignette(g.worldBuf, g.worldW, g.worldH, nightIntensity(phase, prog))

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.worldBuf, &blit)

	// Village border frame.
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.worldW), float32(g.worldH)
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0,
		color.RGBA{R: 74, G: 94, B: 70, A: 255}, false)
	vector.StrokeRect(screen, ox-3, oy-3, gw+6, gh+6, 1.0,
		color.RGBA{R: 44, G: 60, B: 44, A: 100}, false)

	g.drawOverlayUI(screen)

	if g.simSpeed != 1.0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("speed: %.1fx", g.simSpeed),
			g.offX+6, g.offY+6)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
