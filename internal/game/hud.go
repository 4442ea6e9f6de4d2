package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// drawOverlayUI renders all HUD text into hudBuf at 1x, then blits it at
// hudScale: status strip, transient notices, catch banner, cast hint, and
// the key legend.
func (g *Game) drawOverlayUI(screen *ebiten.Image) {
	e := g.engine
	face := basicfont.Face7x13
	g.hudBuf.Clear()
	bufW := g.width / hudScale

	// Status strip across the top.
	quota := "-"
	if q := e.QuotaRemaining(); q >= 0 {
		quota = fmt.Sprintf("%d", q)
	}
	auto := ""
	if e.AutofishEnabled() {
		auto = "  AUTO"
	}
	status := fmt.Sprintf("POINTS %d   QUOTA %s   %s%s",
		e.Points(), quota, e.TimeOfDay(), auto)
	text.Draw(g.hudBuf, status, face, 14, 14, color.RGBA{R: 235, G: 235, B: 220, A: 255})

	// Transient notice, centred near the top.
	if n := e.Notice(); n != "" {
		b := text.BoundString(face, n)
		nx := (bufW - b.Dx()) / 2
		text.Draw(g.hudBuf, n, face, nx, 30, color.RGBA{R: 255, G: 218, B: 110, A: 255})
	}

	// Catch banner while the result is displayed.
	if e.FishState() == FishCaught {
		if fish, reward := e.LastCatch(); fish != nil {
			banner := fmt.Sprintf("caught %s! +%d", fish.Name, reward)
			b := text.BoundString(face, banner)
			nx := (bufW - b.Dx()) / 2
			text.Draw(g.hudBuf, banner, face, nx, 46, fishColor(fish.Rarity))
		}
	} else if e.FishState() == FishMissed {
		banner := "it got away..."
		b := text.BoundString(face, banner)
		nx := (bufW - b.Dx()) / 2
		text.Draw(g.hudBuf, banner, face, nx, 46, color.RGBA{R: 200, G: 200, B: 205, A: 255})
	}

	// Cast hint when the player faces open water with the rod stowed.
	if g.castHint && e.FishState() == FishIdle {
		hint := "[space] cast"
		b := text.BoundString(face, hint)
		nx := (bufW - b.Dx()) / 2
		text.Draw(g.hudBuf, hint, face, nx, g.height/hudScale-18,
			color.RGBA{R: 180, G: 220, B: 240, A: 255})
	}

	if g.showHUD {
		g.drawLegend()
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

// drawLegend draws the key legend panel into hudBuf, bottom-left.
func (g *Game) drawLegend() {
	speedStr := "1x"
	switch {
	case g.simSpeed == 0:
		speedStr = "PAUSED"
	case g.simSpeed != 1:
		speedStr = fmt.Sprintf("%.1fx", g.simSpeed)
	}
	auto := " "
	if g.engine.AutofishEnabled() {
		auto = "*"
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
		"[space] cast / set hook",
		"[esc] reel in",
		fmt.Sprintf("[F]%s autofish", auto),
		"[N] skip time  [R] copy report",
		"[H] toggle this panel",
	}

	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bufH := float32(g.height / hudScale)
	bx := float32(4)
	by := bufH - boxH - 4

	vector.FillRect(g.hudBuf, bx, by, boxW, boxH,
		color.RGBA{R: 8, G: 12, B: 8, A: 210}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH,
		1.0, color.RGBA{R: 70, G: 100, B: 70, A: 180}, false)
	vector.StrokeLine(g.hudBuf, bx+1, by+1, bx+boxW-1, by+1,
		1.0, color.RGBA{R: 90, G: 140, B: 90, A: 80}, false)

	for i, line := range lines {
		tx := int(bx) + padX
		ty := int(by) + padY + i*lineH
		ebitenutil.DebugPrintAt(g.hudBuf, line, tx, ty)
	}
}
