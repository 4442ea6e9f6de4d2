package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// nightIntensity maps the clock to how dark the scene is: 0 in full
// daylight, 1 in full night, ramping through dawn and dusk.
func nightIntensity(phase TimeOfDay, prog float64) float64 {
	switch phase {
	case TimeDawn:
		return 1 - prog
	case TimeDay:
		return 0
	case TimeDusk:
		return prog
	default:
		return 1
	}
}

// lerpRGBA blends two colours component-wise.
func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

// Key sky tints. The overlay is a full-screen fill whose alpha carries the
// darkening; dawn and dusk pass through a warm amber before the blue night.
var (
	skyNight     = color.RGBA{R: 26, G: 30, B: 74, A: 135}
	skyDawnWarm  = color.RGBA{R: 238, G: 160, B: 90, A: 40}
	skyDawnClear = color.RGBA{R: 255, G: 220, B: 160, A: 0}
	skyDuskClear = color.RGBA{R: 255, G: 200, B: 120, A: 0}
	skyDuskWarm  = color.RGBA{R: 236, G: 130, B: 80, A: 64}
)

// ambientOverlay returns the sky tint for the current clock position. The
// blend is continuous across phase edges: dawn starts at the night colour
// and dusk ends on it.
func ambientOverlay(phase TimeOfDay, prog float64) color.RGBA {
	switch phase {
	case TimeDawn:
		if prog < 0.6 {
			return lerpRGBA(skyNight, skyDawnWarm, prog/0.6)
		}
		return lerpRGBA(skyDawnWarm, skyDawnClear, (prog-0.6)/0.4)
	case TimeDay:
		return color.RGBA{}
	case TimeDusk:
		if prog < 0.5 {
			return lerpRGBA(skyDuskClear, skyDuskWarm, prog/0.5)
		}
		return lerpRGBA(skyDuskWarm, skyNight, (prog-0.5)/0.5)
	default:
		return skyNight
	}
}

// drawAmbientOverlay fills the world with the current sky tint.
func drawAmbientOverlay(dst *ebiten.Image, w, h int, phase TimeOfDay, prog float64) {
	c := ambientOverlay(phase, prog)
	if c.A == 0 {
		return
	}
	vector.FillRect(dst, 0, 0, float32(w), float32(h), c, false)
}

// drawLightGlows renders the warm glow circles over every light source.
// Glows fade in with the night intensity, so they surface through dusk and
// vanish over dawn; each light pulses its radius at its own rate.
func drawLightGlows(dst *ebiten.Image, lights []LightSource, phase TimeOfDay, prog, elapsed float64) {
	inten := nightIntensity(phase, prog)
	if inten <= 0.02 {
		return
	}
	for _, l := range lights {
		pulse := 1 + 0.06*math.Sin(elapsed*l.PulseHz*2*math.Pi)
		r := l.Radius * float32(pulse)
		x, y := float32(l.X), float32(l.Y)

		var lR, lG, lB uint8
		switch l.Kind {
		case LightCampfire:
			lR, lG, lB = 255, 170, 70
		case LightLantern:
			lR, lG, lB = 255, 200, 110
		default:
			lR, lG, lB = 255, 214, 130
		}

		// Three concentric rings of decreasing opacity and increasing radius.
		vector.FillCircle(dst, x, y, r,
			color.RGBA{R: lR, G: lG, B: lB, A: uint8(22 * inten)}, false)
		vector.FillCircle(dst, x, y, r*0.55,
			color.RGBA{R: lR, G: lG, B: lB, A: uint8(40 * inten)}, false)
		vector.FillCircle(dst, x, y, r*0.25,
			color.RGBA{R: lR, G: lG, B: lB, A: uint8(68 * inten)}, false)
	}
}

// drawVignette darkens the world edges with a hard outer strip and a soft
// inner band, both deepening as night falls.
func drawVignette(dst *ebiten.Image, w, h int, inten float64) {
	gw, gh := float32(w), float32(h)

	outer := float32(26)
	outerDark := color.RGBA{A: uint8(55 + 45*inten)}
	vector.FillRect(dst, 0, 0, gw, outer, outerDark, false)
	vector.FillRect(dst, 0, gh-outer, gw, outer, outerDark, false)
	vector.FillRect(dst, 0, 0, outer, gh, outerDark, false)
	vector.FillRect(dst, gw-outer, 0, outer, gh, outerDark, false)

	inner := float32(72)
	innerDark := color.RGBA{A: uint8(22 + 18*inten)}
	vector.FillRect(dst, 0, 0, gw, inner, innerDark, false)
	vector.FillRect(dst, 0, gh-inner, gw, inner, innerDark, false)
	vector.FillRect(dst, 0, 0, inner, gh, innerDark, false)
	vector.FillRect(dst, gw-inner, 0, inner, gh, innerDark, false)
}
