package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Ground palettes. Each walkable surface has a small set of shade variants
// picked per tile from its grid position, so the ground reads as textured
// without any stored state.
var (
	grassShades = [3]color.RGBA{
		{R: 74, G: 110, B: 58, A: 255},
		{R: 68, G: 104, B: 54, A: 255},
		{R: 80, G: 116, B: 62, A: 255},
	}
	sandShades = [3]color.RGBA{
		{R: 186, G: 168, B: 116, A: 255},
		{R: 178, G: 160, B: 110, A: 255},
		{R: 192, G: 174, B: 122, A: 255},
	}
	pathShades = [3]color.RGBA{
		{R: 136, G: 114, B: 82, A: 255},
		{R: 128, G: 108, B: 78, A: 255},
		{R: 142, G: 120, B: 86, A: 255},
	}
	waterBase = color.RGBA{R: 40, G: 78, B: 122, A: 255}
)

// tileVariant picks a stable shade index for a tile.
func tileVariant(col, row int) int {
	return (col + row) % 3
}

// groundKind maps a tile to the surface drawn under it. Objects (trees,
// fences, the cabin) sit on grass; the dock and lilies sit on water.
func groundKind(k TileKind) TileKind {
	switch k {
	case TileWater, TileDock, TileLily:
		return TileWater
	case TileSand:
		return TileSand
	case TilePath:
		return TilePath
	default:
		return TileGrass
	}
}

// drawTerrain renders the full ground layer: flat shaded tiles for land,
// animated shimmer for water, bobbing lily pads and swaying tall grass.
func drawTerrain(dst *ebiten.Image, w *World, elapsed float64) {
	for row := 0; row < w.Rows; row++ {
		for col := 0; col < w.Cols; col++ {
			k := w.At(col, row)
			px := float32(col * tileSize)
			py := float32(row * tileSize)
			v := tileVariant(col, row)

			switch groundKind(k) {
			case TileWater:
				drawWaterTile(dst, px, py, col, row, elapsed)
			case TileSand:
				vector.FillRect(dst, px, py, tileSize, tileSize, sandShades[v], false)
			case TilePath:
				vector.FillRect(dst, px, py, tileSize, tileSize, pathShades[v], false)
				// Occasional pebble.
				if (col*3+row*7)%5 == 0 {
					vector.FillCircle(dst, px+float32((col*11)%24)+4, py+float32((row*17)%24)+4,
						1.5, color.RGBA{R: 112, G: 96, B: 70, A: 255}, false)
				}
			default:
				vector.FillRect(dst, px, py, tileSize, tileSize, grassShades[v], false)
			}

			switch k {
			case TileLily:
				drawLilyPad(dst, px, py, col, elapsed)
			case TileTallGrass:
				drawTallGrass(dst, px, py, col, row, elapsed)
			}
		}
	}
}

// drawWaterTile shades one water tile with a slow coordinate-hashed
// shimmer, plus a sparkle streak at the crest of the wave.
func drawWaterTile(dst *ebiten.Image, px, py float32, col, row int, elapsed float64) {
	phase := elapsed*1.8 + float64((col*7+row*13)%16)*0.39
	s := math.Sin(phase)
	c := waterBase
	c.G = uint8(int(c.G) + int(s*8))
	c.B = uint8(int(c.B) + int(s*12))
	vector.FillRect(dst, px, py, tileSize, tileSize, c, false)
	if s > 0.93 {
		vector.StrokeLine(dst, px+6, py+float32(tileSize)/2,
			px+tileSize-6, py+float32(tileSize)/2,
			1.0, color.RGBA{R: 150, G: 190, B: 225, A: 90}, false)
	}
}

// drawLilyPad draws a gently bobbing pad with a blossom on every other pad.
func drawLilyPad(dst *ebiten.Image, px, py float32, col int, elapsed float64) {
	cx := px + tileSize/2
	cy := py + tileSize/2 + float32(math.Sin(elapsed*1.3+float64(col)*0.7))*1.2
	vector.FillCircle(dst, cx, cy, 9, color.RGBA{R: 52, G: 118, B: 60, A: 255}, false)
	vector.FillCircle(dst, cx-3, cy-2, 3, color.RGBA{R: 64, G: 134, B: 70, A: 255}, false)
	// Notch toward the nearest shore reads as the pad's split.
	vector.StrokeLine(dst, cx, cy, cx+8, cy+3, 1.5, waterBase, false)
	if col%2 == 0 {
		vector.FillCircle(dst, cx+2, cy-3, 2.2, color.RGBA{R: 232, G: 180, B: 200, A: 255}, false)
	}
}

// drawTallGrass draws three swaying blades per tile.
func drawTallGrass(dst *ebiten.Image, px, py float32, col, row int, elapsed float64) {
	sway := float32(math.Sin(elapsed*2.0+float64(col+row)*0.9)) * 2.5
	blade := color.RGBA{R: 88, G: 132, B: 64, A: 255}
	for i := 0; i < 3; i++ {
		bx := px + 7 + float32(i)*9
		by := py + tileSize - 3
		vector.StrokeLine(dst, bx, by, bx+sway, by-11, 1.5, blade, false)
	}
}

// drawFlames renders the animated fire on the campfire and in the lantern
// heads. Flame height and lean flicker on stacked sines, so the motion is
// deterministic for a given elapsed time.
func drawFlames(dst *ebiten.Image, v *Village, elapsed float64) {
	// Campfire: layered flame above the stone ring.
	fx, fy := tileCenter(campfireTile.Col, campfireTile.Row)
	flick := math.Sin(elapsed*7.3) + 0.5*math.Sin(elapsed*13.1)
	h := float32(8 + flick*1.8)
	lean := float32(math.Sin(elapsed*3.7)) * 1.5
	cx, cy := float32(fx), float32(fy)
	vector.FillCircle(dst, cx+lean, cy-h*0.45, h*0.75,
		color.RGBA{R: 232, G: 120, B: 36, A: 200}, false)
	vector.FillCircle(dst, cx+lean*0.6, cy-h*0.7, h*0.45,
		color.RGBA{R: 248, G: 186, B: 70, A: 220}, false)
	vector.FillCircle(dst, cx+lean*0.3, cy-h*0.9, h*0.22,
		color.RGBA{R: 255, G: 234, B: 160, A: 235}, false)

	// Lantern flames: a small warm dot that breathes.
	for i, lt := range lanternTiles {
		lx, ly := tileCenter(lt.Col, lt.Row)
		pulse := float32(0.8 + 0.2*math.Sin(elapsed*5.1+float64(i)*2.0))
		vector.FillCircle(dst, float32(lx), float32(ly)-12, 2.4*pulse,
			color.RGBA{R: 255, G: 214, B: 120, A: 230}, false)
	}
}
