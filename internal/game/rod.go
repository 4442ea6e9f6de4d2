package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawPlayer renders the angler at the eased visual position: shadow,
// tunic, head, straw hat, and a facing tick when no rod is out.
func drawPlayer(dst *ebiten.Image, p *Player, state FishingState) {
	cx := float32(p.VisX) + tileSize/2
	cy := float32(p.VisY) + tileSize/2

	vector.FillCircle(dst, cx, cy+9, 8, color.RGBA{R: 18, G: 26, B: 16, A: 80}, false)
	vector.FillCircle(dst, cx, cy+2, 8, color.RGBA{R: 72, G: 102, B: 152, A: 255}, false)
	vector.FillCircle(dst, cx, cy-7, 5.5, color.RGBA{R: 232, G: 192, B: 152, A: 255}, false)
	vector.FillCircle(dst, cx, cy-10, 7, color.RGBA{R: 206, G: 176, B: 92, A: 255}, false)
	vector.FillCircle(dst, cx, cy-12, 4, color.RGBA{R: 224, G: 196, B: 110, A: 255}, false)

	if state == FishIdle {
		dx, dy := p.Facing.Delta()
		vector.FillCircle(dst, cx+float32(dx)*9, cy+2+float32(dy)*9, 2,
			color.RGBA{R: 240, G: 240, B: 220, A: 200}, false)
	}
}

// fishColor maps a rarity tier to its display colour.
func fishColor(rarity string) color.RGBA {
	switch rarity {
	case "uncommon":
		return color.RGBA{R: 110, G: 190, B: 110, A: 255}
	case "rare":
		return color.RGBA{R: 100, G: 150, B: 240, A: 255}
	case "epic":
		return color.RGBA{R: 180, G: 110, B: 230, A: 255}
	case "legendary":
		return color.RGBA{R: 240, G: 190, B: 70, A: 255}
	default:
		return color.RGBA{R: 176, G: 186, B: 196, A: 255}
	}
}

// drawFishingGear renders the rod, the sagging line, the bobber with its
// state-specific motion, the bite indicator, and the caught-fish pose.
func (e *Engine) drawFishingGear(dst *ebiten.Image) {
	if e.fishState == FishIdle {
		return
	}
	p := e.player
	cx := float32(p.VisX) + tileSize/2
	cy := float32(p.VisY) + tileSize/2

	if e.fishState == FishCaught {
		e.drawCaughtFish(dst, cx, cy)
		return
	}
	if e.fishState == FishMissed {
		return
	}

	dx, dy := p.Facing.Delta()
	handX := cx + float32(dx)*7
	handY := cy + float32(dy)*4
	tipX := handX + float32(dx)*13
	tipY := handY + float32(dy)*6 - 12

	rod := color.RGBA{R: 124, G: 92, B: 58, A: 255}
	vector.StrokeLine(dst, handX, handY, tipX, tipY, 2, rod, false)

	bx, by := e.bobberScreenPos()

	// Line from rod tip to bobber, sagging through a midpoint.
	line := color.RGBA{R: 226, G: 230, B: 234, A: 130}
	midX := (tipX + bx) / 2
	midY := (tipY+by)/2 + 5
	if e.fishState == FishResolving {
		midY -= 7 // taut while the catch resolves
	}
	vector.StrokeLine(dst, tipX, tipY, midX, midY, 1, line, false)
	vector.StrokeLine(dst, midX, midY, bx, by, 1, line, false)

	e.drawBobber(dst, bx, by)
	if e.fishState == FishBite {
		e.drawBiteIndicator(dst, bx, by)
	}
}

// bobberScreenPos returns where the bobber is drawn this frame. During the
// cast it flies an arc from the player's hand to the target tile; once in
// the water it bobs gently, and it jerks hard during the bite window.
func (e *Engine) bobberScreenPos() (float32, float32) {
	bx := float32(e.bobberX)
	by := float32(e.bobberY)
	switch e.fishState {
	case FishCasting:
		t := (e.elapsed - e.stateEntered) / castAnimSeconds
		if t > 1 {
			t = 1
		}
		p := e.player
		hx := float32(p.VisX) + tileSize/2
		hy := float32(p.VisY) + tileSize/2
		bx = hx + (bx-hx)*float32(t)
		by = hy + (by-hy)*float32(t) - float32(math.Sin(math.Pi*t))*14
	case FishWaiting:
		by += float32(math.Sin(e.bobberPhase*2.2)) * 1.5
	case FishBite:
		by += 2 + float32(math.Sin(e.bobberPhase*16))*2.8
	}
	return bx, by
}

func (e *Engine) drawBobber(dst *ebiten.Image, bx, by float32) {
	if e.fishState == FishWaiting {
		ripple := 5 + float32(math.Sin(e.bobberPhase*2.2))*2
		vector.StrokeCircle(dst, bx, by, ripple, 1,
			color.RGBA{R: 170, G: 205, B: 230, A: 70}, false)
	}
	vector.FillCircle(dst, bx, by-1, 3.5, color.RGBA{R: 214, G: 64, B: 56, A: 255}, false)
	vector.FillCircle(dst, bx, by+1.5, 2, color.RGBA{R: 238, G: 238, B: 234, A: 255}, false)
}

// drawBiteIndicator pulses a "!" above the bobber for the reaction window.
func (e *Engine) drawBiteIndicator(dst *ebiten.Image, bx, by float32) {
	pulse := float32(1 + 0.18*math.Sin(e.elapsed*11))
	c := color.RGBA{R: 255, G: 220, B: 80, A: 230}
	topY := by - 16*pulse
	vector.StrokeLine(dst, bx, topY, bx, topY+6*pulse, 2.5, c, false)
	vector.FillCircle(dst, bx, topY+9*pulse, 1.6, c, false)
}

// drawCaughtFish holds the catch above the angler's head with a sparkle.
func (e *Engine) drawCaughtFish(dst *ebiten.Image, cx, cy float32) {
	fx := cx
	fy := cy - 22
	c := color.RGBA{R: 176, G: 186, B: 196, A: 255}
	if e.resultFish != nil {
		c = fishColor(e.resultFish.Rarity)
	}
	vector.FillCircle(dst, fx, fy, 5, c, false)
	vector.FillRect(dst, fx+4, fy-3, 4, 6, c, false)
	vector.FillCircle(dst, fx-2, fy-1, 0.9, color.RGBA{R: 20, G: 20, B: 24, A: 255}, false)

	sparkle := float32(math.Sin(e.elapsed * 9))
	if sparkle > 0 {
		s := color.RGBA{R: 255, G: 250, B: 200, A: uint8(160 * sparkle)}
		vector.StrokeLine(dst, fx-9, fy-7, fx-5, fy-7, 1, s, false)
		vector.StrokeLine(dst, fx-7, fy-9, fx-7, fy-5, 1, s, false)
	}
}
