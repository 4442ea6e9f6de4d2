package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// buildDecorImage renders every static decoration once into an offscreen
// world-sized image: trees, rocks, bushes, fences, dock planks, seating
// logs, lantern posts, the campfire ring, and the cabin. Animated detail
// (flames, water, swaying grass) stays out of this buffer.
func buildDecorImage(v *Village, seed int64) *ebiten.Image {
	w := v.World
	img := ebiten.NewImage(w.Cols*tileSize, w.Rows*tileSize)
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- cosmetic only

	for row := 0; row < w.Rows; row++ {
		for col := 0; col < w.Cols; col++ {
			px := float32(col * tileSize)
			py := float32(row * tileSize)
			switch w.At(col, row) {
			case TileTree:
				drawTree(img, px, py, rng)
			case TileRock:
				drawRock(img, px, py, rng)
			case TileBush:
				drawBush(img, px, py, rng)
			case TileFence:
				drawFenceTile(img, w, col, row)
			case TileDock:
				drawDockPlanks(img, w, col, row)
			case TileLog:
				drawSeatingLog(img, px, py)
			case TileLantern:
				drawLanternPost(img, px, py)
			case TileCampfire:
				drawCampfireRing(img, px, py)
			}
		}
	}

	drawCabin(img, v)
	return img
}

func drawTree(dst *ebiten.Image, px, py float32, rng *rand.Rand) {
	cx := px + tileSize/2
	cy := py + tileSize/2
	r := float32(11 + rng.Float64()*3)

	vector.FillCircle(dst, cx+2, cy+6, r*0.9,
		color.RGBA{R: 20, G: 32, B: 18, A: 70}, false)
	vector.FillRect(dst, cx-2.5, cy+2, 5, 10,
		color.RGBA{R: 92, G: 64, B: 40, A: 255}, false)
	vector.FillCircle(dst, cx, cy-2, r,
		color.RGBA{R: 46, G: 88, B: 40, A: 255}, false)
	vector.FillCircle(dst, cx-3, cy-5, r*0.65,
		color.RGBA{R: 58, G: 104, B: 48, A: 255}, false)
}

func drawRock(dst *ebiten.Image, px, py float32, rng *rand.Rand) {
	cx := px + tileSize/2 + float32(rng.Float64()*4-2)
	cy := py + tileSize/2 + float32(rng.Float64()*4-2)
	vector.FillCircle(dst, cx+1, cy+2, 8, color.RGBA{R: 24, G: 30, B: 22, A: 60}, false)
	vector.FillCircle(dst, cx, cy, 7.5, color.RGBA{R: 128, G: 126, B: 120, A: 255}, false)
	vector.FillCircle(dst, cx-2, cy-2, 3, color.RGBA{R: 156, G: 154, B: 148, A: 255}, false)
	vector.FillCircle(dst, cx+5, cy+4, 3.5, color.RGBA{R: 112, G: 110, B: 104, A: 255}, false)
}

func drawBush(dst *ebiten.Image, px, py float32, rng *rand.Rand) {
	cx := px + tileSize/2
	cy := py + tileSize/2 + 3
	vector.FillCircle(dst, cx-4, cy, 7, color.RGBA{R: 44, G: 92, B: 46, A: 255}, false)
	vector.FillCircle(dst, cx+4, cy-1, 7, color.RGBA{R: 50, G: 100, B: 50, A: 255}, false)
	vector.FillCircle(dst, cx, cy-4, 6, color.RGBA{R: 56, G: 108, B: 54, A: 255}, false)
	if rng.Intn(2) == 0 {
		berry := color.RGBA{R: 196, G: 60, B: 70, A: 255}
		vector.FillCircle(dst, cx-3, cy-2, 1.3, berry, false)
		vector.FillCircle(dst, cx+2, cy-5, 1.3, berry, false)
		vector.FillCircle(dst, cx+5, cy+1, 1.3, berry, false)
	}
}

// drawFenceTile picks rail orientation from the neighbouring fence tiles,
// drawing both directions on corner pieces.
func drawFenceTile(dst *ebiten.Image, w *World, col, row int) {
	px := float32(col * tileSize)
	py := float32(row * tileSize)
	post := color.RGBA{R: 104, G: 78, B: 50, A: 255}
	rail := color.RGBA{R: 122, G: 92, B: 60, A: 255}

	horiz := w.At(col-1, row) == TileFence || w.At(col+1, row) == TileFence
	vert := w.At(col, row-1) == TileFence || w.At(col, row+1) == TileFence
	if !horiz && !vert {
		horiz = true
	}
	if horiz {
		vector.StrokeLine(dst, px, py+12, px+tileSize, py+12, 3, rail, false)
		vector.StrokeLine(dst, px, py+20, px+tileSize, py+20, 3, rail, false)
	}
	if vert {
		vector.StrokeLine(dst, px+14, py, px+14, py+tileSize, 3, rail, false)
		vector.StrokeLine(dst, px+20, py, px+20, py+tileSize, 3, rail, false)
	}
	vector.FillRect(dst, px+13, py+9, 7, 14, post, false)
}

// drawDockPlanks lays boards across the water with mooring posts on the
// outer corners of the final tile.
func drawDockPlanks(dst *ebiten.Image, w *World, col, row int) {
	px := float32(col * tileSize)
	py := float32(row * tileSize)
	board := color.RGBA{R: 134, G: 100, B: 62, A: 255}
	seam := color.RGBA{R: 104, G: 76, B: 46, A: 255}

	vector.FillRect(dst, px, py+3, tileSize, tileSize-6, board, false)
	for i := 1; i < 4; i++ {
		bx := px + float32(i*tileSize/4)
		vector.StrokeLine(dst, bx, py+3, bx, py+tileSize-3, 1, seam, false)
	}
	vector.StrokeLine(dst, px, py+3, px+tileSize, py+3, 1.5, seam, false)
	vector.StrokeLine(dst, px, py+tileSize-3, px+tileSize, py+tileSize-3, 1.5, seam, false)

	// End posts where the dock stops over open water.
	if w.At(col+1, row) != TileDock {
		postCol := color.RGBA{R: 88, G: 64, B: 40, A: 255}
		vector.FillCircle(dst, px+tileSize-3, py+5, 3, postCol, false)
		vector.FillCircle(dst, px+tileSize-3, py+tileSize-5, 3, postCol, false)
	}
}

func drawSeatingLog(dst *ebiten.Image, px, py float32) {
	cy := py + tileSize/2
	bark := color.RGBA{R: 110, G: 80, B: 50, A: 255}
	endGrain := color.RGBA{R: 160, G: 128, B: 86, A: 255}
	vector.FillRect(dst, px+3, cy-5, tileSize-6, 10, bark, false)
	vector.FillCircle(dst, px+3, cy, 5, endGrain, false)
	vector.FillCircle(dst, px+tileSize-3, cy, 5, bark, false)
	vector.StrokeLine(dst, px+6, cy, px+tileSize-6, cy, 1, color.RGBA{R: 92, G: 66, B: 40, A: 255}, false)
}

func drawLanternPost(dst *ebiten.Image, px, py float32) {
	cx := px + tileSize/2
	base := py + tileSize/2 + 10
	head := py + tileSize/2 - 10
	pole := color.RGBA{R: 58, G: 50, B: 44, A: 255}

	vector.FillCircle(dst, cx+1, base+1, 4, color.RGBA{R: 22, G: 28, B: 20, A: 70}, false)
	vector.StrokeLine(dst, cx, base, cx, head, 3, pole, false)
	// Lamp housing with a dim glass pane; the flame and glow are animated.
	vector.FillRect(dst, cx-4, head-4, 8, 9, color.RGBA{R: 44, G: 40, B: 36, A: 255}, false)
	vector.FillRect(dst, cx-2.5, head-2.5, 5, 6, color.RGBA{R: 188, G: 158, B: 96, A: 120}, false)
	vector.StrokeLine(dst, cx-4, head-4, cx+4, head-4, 1.5, pole, false)
}

func drawCampfireRing(dst *ebiten.Image, px, py float32) {
	cx := px + tileSize/2
	cy := py + tileSize/2

	vector.FillCircle(dst, cx, cy, 9, color.RGBA{R: 34, G: 28, B: 24, A: 255}, false)
	stone := color.RGBA{R: 120, G: 116, B: 110, A: 255}
	for i := 0; i < 7; i++ {
		ang := float64(i) / 7 * 2 * math.Pi
		sx := cx + float32(math.Cos(ang))*11
		sy := cy + float32(math.Sin(ang))*11
		vector.FillCircle(dst, sx, sy, 3.2, stone, false)
	}
	wood := color.RGBA{R: 96, G: 66, B: 40, A: 255}
	vector.StrokeLine(dst, cx-6, cy-4, cx+6, cy+4, 3, wood, false)
	vector.StrokeLine(dst, cx-6, cy+4, cx+6, cy-4, 3, wood, false)
}

// drawCabin renders the multi-tile cabin: drop shadow, shingled roof with
// overhang, log facade, door, two framed windows, and the chimney stack
// the smoke anchor sits on.
func drawCabin(dst *ebiten.Image, v *Village) {
	x0 := float32(cabinCol * tileSize)
	y0 := float32(cabinRow * tileSize)
	cw := float32(cabinCols * tileSize)
	ch := float32(cabinRows * tileSize)

	vector.FillRect(dst, x0+4, y0+4, cw, ch, color.RGBA{R: 16, G: 22, B: 14, A: 80}, false)

	// Facade: horizontal log courses.
	wallTop := y0 + ch - 52
	wall := color.RGBA{R: 112, G: 84, B: 56, A: 255}
	vector.FillRect(dst, x0, wallTop, cw, y0+ch-wallTop, wall, false)
	seam := color.RGBA{R: 92, G: 68, B: 44, A: 255}
	for sy := wallTop + 8; sy < y0+ch; sy += 8 {
		vector.StrokeLine(dst, x0, sy, x0+cw, sy, 1, seam, false)
	}

	// Roof with a 4px overhang and shingle courses.
	roof := color.RGBA{R: 96, G: 58, B: 46, A: 255}
	vector.FillRect(dst, x0-4, y0-2, cw+8, wallTop-y0+2, roof, false)
	shingle := color.RGBA{R: 80, G: 48, B: 38, A: 255}
	for sy := y0 + 6; sy < wallTop; sy += 7 {
		vector.StrokeLine(dst, x0-4, sy, x0+cw+4, sy, 1, shingle, false)
	}
	vector.StrokeLine(dst, x0-4, y0-2, x0+cw+4, y0-2, 2,
		color.RGBA{R: 118, G: 74, B: 58, A: 255}, false)
	vector.StrokeLine(dst, x0-4, wallTop, x0+cw+4, wallTop, 2, shingle, false)

	// Door, centred on the facade.
	doorW := float32(16)
	doorX := x0 + cw/2 - doorW/2
	doorTop := y0 + ch - 26
	vector.FillRect(dst, doorX, doorTop, doorW, 26, color.RGBA{R: 70, G: 48, B: 30, A: 255}, false)
	vector.StrokeRect(dst, doorX, doorTop, doorW, 26, 1.5, seam, false)
	vector.FillCircle(dst, doorX+doorW-4, doorTop+14, 1.5,
		color.RGBA{R: 190, G: 160, B: 90, A: 255}, false)

	// Windows flank the door; their centres match the window light sources.
	frame := color.RGBA{R: 66, G: 46, B: 30, A: 255}
	glass := color.RGBA{R: 96, G: 110, B: 124, A: 255}
	for _, l := range v.Lights {
		if l.Kind != LightWindow {
			continue
		}
		wx := float32(l.X)
		wy := float32(l.Y)
		vector.FillRect(dst, wx-7, wy-7, 14, 14, glass, false)
		vector.StrokeRect(dst, wx-7, wy-7, 14, 14, 2, frame, false)
		vector.StrokeLine(dst, wx, wy-7, wx, wy+7, 1.5, frame, false)
		vector.StrokeLine(dst, wx-7, wy, wx+7, wy, 1.5, frame, false)
	}

	// Chimney stack. The smoke anchor sits at its mouth.
	chX := float32(v.ChimneyX)
	chY := float32(v.ChimneyY)
	vector.FillRect(dst, chX-5, chY-2, 10, 14, color.RGBA{R: 118, G: 112, B: 106, A: 255}, false)
	vector.StrokeRect(dst, chX-5, chY-2, 10, 14, 1, color.RGBA{R: 86, G: 82, B: 78, A: 255}, false)
	vector.FillRect(dst, chX-3, chY-1, 6, 3, color.RGBA{R: 30, G: 28, B: 26, A: 255}, false)
}
