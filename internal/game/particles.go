package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ParticleKind identifies the behaviour and look of a particle.
type ParticleKind uint8

const (
	ParticleFirefly ParticleKind = iota
	ParticleButterfly
	ParticleLeaf
	ParticleStar
	ParticleSmoke
	ParticleEmber
	ParticleSplash
	particleKindCount // sentinel
)

// String returns the lowercase kind name.
func (k ParticleKind) String() string {
	switch k {
	case ParticleFirefly:
		return "firefly"
	case ParticleButterfly:
		return "butterfly"
	case ParticleLeaf:
		return "leaf"
	case ParticleStar:
		return "star"
	case ParticleSmoke:
		return "smoke"
	case ParticleEmber:
		return "ember"
	case ParticleSplash:
		return "splash"
	default:
		return "unknown"
	}
}

// Ambient pool sizes. These never change at runtime: expired ambient
// particles are reset in place, never freed.
const (
	fireflyCount   = 24
	butterflyCount = 10
	leafCount      = 16
	starCount      = 40
	splashCap      = 96
)

// splashGravity pulls splash droplets back down, in px/s^2.
const splashGravity = 170

// Particle is one pooled particle. Anchored kinds (smoke, ember) respawn at
// their emitter; free kinds respawn somewhere in the world.
type Particle struct {
	kind   ParticleKind
	x, y   float64
	vx, vy float64
	age    float64
	maxAge float64
	phase  float64 // per-particle sine offset for wobble and twinkle
	size   float32
	anchor int // index into anchors, -1 for free particles
}

// ParticleSystem owns the fixed ambient pool and the short-lived splash
// pool. Update integrates motion; Draw applies time-of-day gating without
// touching particle state.
type ParticleSystem struct {
	ambient  []Particle
	splashes []Particle
	anchors  []EmitterAnchor

	worldW, worldH float64
	rng            *rand.Rand
}

// NewParticleSystem builds the ambient pool: the fixed free-roaming counts
// plus one particle per anchor slot. Ages are staggered so pools do not
// pulse in sync on the first cycle.
func NewParticleSystem(worldW, worldH float64, anchors []EmitterAnchor, seed int64) *ParticleSystem {
	ps := &ParticleSystem{
		anchors: anchors,
		worldW:  worldW,
		worldH:  worldH,
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic only
	}

	free := []struct {
		kind  ParticleKind
		count int
	}{
		{ParticleFirefly, fireflyCount},
		{ParticleButterfly, butterflyCount},
		{ParticleLeaf, leafCount},
		{ParticleStar, starCount},
	}
	for _, f := range free {
		for i := 0; i < f.count; i++ {
			p := Particle{kind: f.kind, anchor: -1}
			ps.resetParticle(&p)
			p.age = ps.rng.Float64() * p.maxAge
			ps.ambient = append(ps.ambient, p)
		}
	}
	for ai, a := range anchors {
		for i := 0; i < a.Count; i++ {
			p := Particle{kind: a.Kind, anchor: ai}
			ps.resetParticle(&p)
			p.age = ps.rng.Float64() * p.maxAge
			ps.ambient = append(ps.ambient, p)
		}
	}
	return ps
}

// resetParticle rewinds a particle to the start of a fresh lifetime with
// new velocity and phase. Position depends on kind: anchored particles
// return to their emitter, leaves re-enter from the top, the rest scatter.
func (ps *ParticleSystem) resetParticle(p *Particle) {
	rng := ps.rng
	p.age = 0
	p.phase = rng.Float64() * 2 * math.Pi

	switch p.kind {
	case ParticleFirefly:
		p.x = rng.Float64() * ps.worldW
		p.y = rng.Float64() * ps.worldH
		ang := rng.Float64() * 2 * math.Pi
		speed := 5 + rng.Float64()*6
		p.vx = math.Cos(ang) * speed
		p.vy = math.Sin(ang) * speed
		p.maxAge = 6 + rng.Float64()*5
		p.size = float32(1.2 + rng.Float64()*0.8)
	case ParticleButterfly:
		p.x = rng.Float64() * ps.worldW
		p.y = rng.Float64() * ps.worldH
		p.vx = 8 + rng.Float64()*9
		if rng.Intn(2) == 0 {
			p.vx = -p.vx
		}
		p.vy = 0
		p.maxAge = 8 + rng.Float64()*6
		p.size = float32(1.4 + rng.Float64()*0.8)
	case ParticleLeaf:
		p.x = rng.Float64() * ps.worldW
		p.y = -8
		p.vx = -6 + rng.Float64()*12
		p.vy = 12 + rng.Float64()*9
		p.maxAge = 14 + rng.Float64()*8
		p.size = float32(1.5 + rng.Float64()*1.0)
	case ParticleStar:
		p.x = rng.Float64() * ps.worldW
		p.y = rng.Float64() * ps.worldH
		p.vx, p.vy = 0, 0
		p.maxAge = 5 + rng.Float64()*5
		p.size = float32(0.7 + rng.Float64()*0.6)
	case ParticleSmoke:
		a := ps.anchors[p.anchor]
		p.x = a.X + (rng.Float64()-0.5)*6
		p.y = a.Y + (rng.Float64()-0.5)*3
		p.vx = -3 + rng.Float64()*6
		p.vy = -(14 + rng.Float64()*8)
		p.maxAge = 2.2 + rng.Float64()*1.2
		p.size = float32(2.0 + rng.Float64()*1.5)
	case ParticleEmber:
		a := ps.anchors[p.anchor]
		p.x = a.X + (rng.Float64()-0.5)*4
		p.y = a.Y + (rng.Float64()-0.5)*2
		p.vx = -8 + rng.Float64()*16
		p.vy = -(26 + rng.Float64()*18)
		p.maxAge = 0.9 + rng.Float64()*0.7
		p.size = float32(1.0 + rng.Float64()*0.8)
	}
}

// SpawnSplash emits a burst of n droplets at a world position. Splash
// particles are finite: they are pruned when their lifetime ends.
func (ps *ParticleSystem) SpawnSplash(x, y float64, n int) {
	for i := 0; i < n && len(ps.splashes) < splashCap; i++ {
		ps.splashes = append(ps.splashes, Particle{
			kind:   ParticleSplash,
			x:      x + (ps.rng.Float64()-0.5)*6,
			y:      y,
			vx:     -40 + ps.rng.Float64()*80,
			vy:     -(50 + ps.rng.Float64()*60),
			maxAge: 0.5 + ps.rng.Float64()*0.3,
			size:   float32(1.0 + ps.rng.Float64()*1.0),
			phase:  ps.rng.Float64() * 2 * math.Pi,
		})
	}
}

// Update integrates one frame of motion. Ambient particles recycle in
// place when their lifetime ends or they drift outside the margin; splash
// particles are dropped.
func (ps *ParticleSystem) Update(dt, elapsed float64) {
	const margin = 32
	for i := range ps.ambient {
		p := &ps.ambient[i]
		p.age += dt
		switch p.kind {
		case ParticleFirefly:
			p.x += p.vx*dt + math.Sin(elapsed*2.0+p.phase)*8*dt
			p.y += p.vy*dt + math.Cos(elapsed*1.7+p.phase)*8*dt
		case ParticleButterfly:
			p.x += p.vx * dt
			p.y += math.Sin(elapsed*6+p.phase) * 26 * dt
		case ParticleLeaf:
			p.x += (p.vx + math.Sin(elapsed*1.5+p.phase)*10) * dt
			p.y += p.vy * dt
		case ParticleStar:
			// Stars hold position; only the twinkle phase matters.
		case ParticleSmoke:
			p.x += (p.vx + math.Sin(elapsed*1.1+p.phase)*4) * dt
			p.y += p.vy * dt
		case ParticleEmber:
			p.x += p.vx * dt
			p.y += p.vy * dt
		}
		if p.age >= p.maxAge ||
			p.x < -margin || p.x > ps.worldW+margin ||
			p.y < -margin || p.y > ps.worldH+margin {
			ps.resetParticle(p)
		}
	}

	kept := ps.splashes[:0]
	for i := range ps.splashes {
		p := &ps.splashes[i]
		p.age += dt
		if p.age >= p.maxAge {
			continue
		}
		p.vy += splashGravity * dt
		p.x += p.vx * dt
		p.y += p.vy * dt
		kept = append(kept, *p)
	}
	ps.splashes = kept
}

// fadeInOut is the shared lifetime envelope: ramp in over the first 20%,
// hold, ramp out over the last 20%.
func fadeInOut(prog float64) float64 {
	switch {
	case prog < 0:
		return 0
	case prog < 0.2:
		return prog / 0.2
	case prog > 1:
		return 0
	case prog > 0.8:
		return (1 - prog) / 0.2
	default:
		return 1
	}
}

// particleAlpha computes the draw alpha for a particle. Smoke and ember
// fade monotonically from birth; stars twinkle on a sine and never fade
// with age; everything else uses the in/out envelope.
func particleAlpha(p *Particle, elapsed float64) float64 {
	prog := p.age / p.maxAge
	switch p.kind {
	case ParticleFirefly:
		return fadeInOut(prog) * (0.55 + 0.45*math.Sin(elapsed*5+p.phase))
	case ParticleStar:
		return 0.25 + 0.6*(0.5+0.5*math.Sin(elapsed*2.2+p.phase))
	case ParticleSmoke:
		return (1 - prog) * 0.45
	case ParticleEmber:
		return (1 - prog) * 0.9
	case ParticleSplash:
		return 1 - prog
	default:
		return fadeInOut(prog)
	}
}

// particleVisible applies the time-of-day draw gate. Gated particles keep
// simulating; they just are not drawn.
func particleVisible(k ParticleKind, tod TimeOfDay) bool {
	switch k {
	case ParticleFirefly, ParticleStar:
		return tod == TimeDusk || tod == TimeNight
	case ParticleButterfly:
		return tod == TimeDawn || tod == TimeDay
	default:
		return true
	}
}

// Draw renders all visible particles in world space.
func (ps *ParticleSystem) Draw(dst *ebiten.Image, tod TimeOfDay, elapsed float64) {
	for i := range ps.ambient {
		p := &ps.ambient[i]
		if !particleVisible(p.kind, tod) {
			continue
		}
		a := particleAlpha(p, elapsed)
		if a <= 0.01 {
			continue
		}
		x, y := float32(p.x), float32(p.y)
		switch p.kind {
		case ParticleFirefly:
			vector.FillCircle(dst, x, y, p.size*2.6,
				color.RGBA{R: 190, G: 215, B: 90, A: uint8(30 * a)}, false)
			vector.FillCircle(dst, x, y, p.size,
				color.RGBA{R: 225, G: 240, B: 130, A: uint8(220 * a)}, false)
		case ParticleButterfly:
			flap := float32(math.Abs(math.Sin(elapsed*9 + p.phase)))
			span := p.size * (0.8 + flap*1.2)
			wing := color.RGBA{R: 236, G: 158, B: 60, A: uint8(210 * a)}
			if p.phase > math.Pi {
				wing = color.RGBA{R: 228, G: 228, B: 238, A: uint8(210 * a)}
			}
			vector.FillCircle(dst, x-span, y, p.size*0.9, wing, false)
			vector.FillCircle(dst, x+span, y, p.size*0.9, wing, false)
			vector.FillRect(dst, x-0.5, y-1.5, 1, 3,
				color.RGBA{R: 60, G: 45, B: 35, A: uint8(220 * a)}, false)
		case ParticleLeaf:
			vector.FillRect(dst, x-p.size, y-p.size/2, p.size*2, p.size,
				color.RGBA{R: 152, G: 98, B: 44, A: uint8(200 * a)}, false)
		case ParticleStar:
			vector.FillCircle(dst, x, y, p.size,
				color.RGBA{R: 235, G: 238, B: 250, A: uint8(190 * a)}, false)
		case ParticleSmoke:
			grow := p.size * float32(1+p.age/p.maxAge*1.6)
			vector.FillCircle(dst, x, y, grow,
				color.RGBA{R: 118, G: 120, B: 126, A: uint8(255 * a)}, false)
		case ParticleEmber:
			vector.FillCircle(dst, x, y, p.size,
				color.RGBA{R: 255, G: 138, B: 48, A: uint8(255 * a)}, false)
		}
	}

	for i := range ps.splashes {
		p := &ps.splashes[i]
		a := particleAlpha(p, elapsed)
		if a <= 0.01 {
			continue
		}
		vector.FillCircle(dst, float32(p.x), float32(p.y), p.size,
			color.RGBA{R: 205, G: 226, B: 238, A: uint8(230 * a)}, false)
	}
}

// Census returns live particle counts per kind, splashes included.
func (ps *ParticleSystem) Census() map[ParticleKind]int {
	out := make(map[ParticleKind]int, particleKindCount)
	for i := range ps.ambient {
		out[ps.ambient[i].kind]++
	}
	out[ParticleSplash] = len(ps.splashes)
	return out
}

// AmbientCount returns the pool size for one ambient kind.
func (ps *ParticleSystem) AmbientCount(k ParticleKind) int {
	n := 0
	for i := range ps.ambient {
		if ps.ambient[i].kind == k {
			n++
		}
	}
	return n
}

// SplashCount returns the number of live splash droplets.
func (ps *ParticleSystem) SplashCount() int {
	return len(ps.splashes)
}
