package game

import (
	"context"
	"math/rand"
)

// noticeSeconds is how long a transient on-screen notice stays visible.
const noticeSeconds = 3.5

// callKind tags an async reward-service completion.
type callKind uint8

const (
	callCast callKind = iota
	callCatch
	callAutofish
)

// asyncResult carries a completed reward-service call back to the engine.
// Results are applied at the top of Advance and validated against the
// current session before they touch any state.
type asyncResult struct {
	kind    callKind
	seq     int    // cast sequence number, guards against cancelled casts
	session string // session the call belonged to (catch only)
	cast    CastResult
	catch   CatchResult
	err     error
}

// Engine owns all minigame state and advances it from injected frame
// deltas. It has no Ebiten dependency; the windowed Game wrapper and the
// headless harness both drive it through Advance.
type Engine struct {
	world   *World
	village *Village
	player  *Player
	cycle   DayCycle

	particles *ParticleSystem
	jumper    jumpFish

	svc RewardService
	log *EventLog

	tick    int
	elapsed float64

	// Simulated timers, fired by Advance.
	timers      []*simTimer
	nextTimerID int

	// Async reward-service plumbing.
	results     chan asyncResult
	callSeq     int
	syncCalls   bool // harness/headless mode: service calls complete inline
	callCtx     context.Context
	cancelCalls context.CancelFunc

	// Fishing session state (fishing.go).
	fishState      FishingState
	sessionID      string
	waitTimeMs     int
	stateEntered   float64
	castAnimDone   bool
	gotSession     bool
	biteOpenedAt   float64
	bobberX        float64
	bobberY        float64
	bobberPhase    float64
	lastReactionMs int // -1 when the last resolution was a timeout
	resultFish     *Fish
	resultReward   int

	points         int
	quotaRemaining int // -1 until the server reports a quota

	// Autofish loop (autofish.go).
	autofishOn    bool
	autofishTimer *simTimer

	canFish       bool
	onEligibility func(bool)

	notice     string
	noticeLeft float64

	rng *rand.Rand
}

// NewEngine builds the village for the given seed and wires the engine to
// the supplied reward service. Reward calls run on goroutines; use
// NewHeadless for deterministic inline calls.
func NewEngine(svc RewardService, seed int64) *Engine {
	v := BuildVillage(seed)
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		world:          v.World,
		village:        v,
		player:         NewPlayer(v.SpawnCol, v.SpawnRow),
		svc:            svc,
		log:            NewEventLog(false),
		results:        make(chan asyncResult, 64),
		callCtx:        ctx,
		cancelCalls:    cancel,
		lastReactionMs: -1,
		quotaRemaining: -1,
		rng:            rand.New(rand.NewSource(seed + 101)), // #nosec G404 -- cosmetic only
	}
	worldW := float64(v.World.Cols * tileSize)
	worldH := float64(v.World.Rows * tileSize)
	e.particles = NewParticleSystem(worldW, worldH, v.Anchors, seed+202)
	e.scheduleNextJump()
	e.canFish = e.playerCanFish()
	return e
}

// NewHeadless builds an engine whose reward-service calls complete inline,
// so a frame that issues a call sees its result applied on the next frame.
// The headless report and the test harness use this mode.
func NewHeadless(svc RewardService, seed int64) *Engine {
	e := NewEngine(svc, seed)
	e.syncCalls = true
	return e
}

// Advance moves the whole simulation forward by dt seconds. Subsystems run
// in a fixed order; each step is idempotent for a given dt.
func (e *Engine) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	e.tick++
	e.elapsed += dt

	// 1. SERVICE: apply completed reward-service calls.
	e.drainResults()

	// 2. TIMERS: fire due session and background timers.
	e.fireDueTimers()

	// 3. CLOCK: advance the day/night cycle.
	e.cycle.Advance(dt)

	// 4. AMBIENT: integrate particle motion and fades.
	e.particles.Update(dt, e.elapsed)

	// 5. POND LIFE: jumping fish arc.
	e.updateJumpFish(dt)

	// 6. PLAYER: ease the visual position toward the logical tile.
	e.updatePlayerVisual(dt)

	// 7. FISHING: bobber wobble and cast visuals.
	e.bobberPhase += dt

	// 8. NOTICES: expire transient messages.
	if e.noticeLeft > 0 {
		e.noticeLeft -= dt
		if e.noticeLeft <= 0 {
			e.notice = ""
		}
	}

	// 9. ELIGIBILITY: recompute the can-fish flag.
	e.refreshEligibility()
}

// dispatch runs a reward-service call either inline (headless) or on a
// goroutine, delivering the result through the results channel.
func (e *Engine) dispatch(fn func() asyncResult) {
	if e.syncCalls {
		e.results <- fn()
		return
	}
	go func() {
		e.results <- fn()
	}()
}

// drainResults applies every completed service call without blocking.
func (e *Engine) drainResults() {
	for {
		select {
		case r := <-e.results:
			e.applyResult(r)
		default:
			return
		}
	}
}

func (e *Engine) applyResult(r asyncResult) {
	switch r.kind {
	case callCast:
		e.applyCastResult(r)
	case callCatch:
		e.applyCatchResult(r)
	case callAutofish:
		e.applyAutofishResult(r)
	}
}

// Close cancels the active session, stops autofish, and aborts in-flight
// service calls.
func (e *Engine) Close() {
	e.CancelFishing()
	if e.autofishOn {
		e.setAutofish(false, "engine closed")
	}
	e.cancelCalls()
}

// pushNotice shows a transient HUD message and records it in the log.
func (e *Engine) pushNotice(msg string) {
	e.notice = msg
	e.noticeLeft = noticeSeconds
	e.log.Add(e.tick, "notice", "show", msg, 0)
}

// refreshEligibility recomputes whether the player can fish from the
// current tile and facing, firing the registered callback on change.
func (e *Engine) refreshEligibility() {
	now := e.playerCanFish()
	if now == e.canFish {
		return
	}
	e.canFish = now
	e.log.Add(e.tick, "player", "eligibility", boolWord(now), 0)
	if e.onEligibility != nil {
		e.onEligibility(now)
	}
}

func boolWord(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// OnEligibilityChange registers a callback fired whenever the can-fish
// eligibility flips. Only one callback is held.
func (e *Engine) OnEligibilityChange(fn func(bool)) {
	e.onEligibility = fn
}

// Accessors used by the windowed wrapper, the headless report, and tests.

// Tick returns the number of Advance calls so far.
func (e *Engine) Tick() int { return e.tick }

// Elapsed returns total simulated seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Points returns the last points total reported by the reward service.
func (e *Engine) Points() int { return e.points }

// QuotaRemaining returns the last autofish quota the server reported,
// or -1 if none has been seen yet.
func (e *Engine) QuotaRemaining() int { return e.quotaRemaining }

// SeedProfile preloads standing fetched from the server at startup, so a
// returning angler sees their persisted points before the first catch.
func (e *Engine) SeedProfile(points, quotaRemaining int) {
	e.points = points
	e.quotaRemaining = quotaRemaining
}

// FishState returns the current fishing machine state.
func (e *Engine) FishState() FishingState { return e.fishState }

// SessionID returns the active fishing session id, or "".
func (e *Engine) SessionID() string { return e.sessionID }

// CanFish reports whether the player currently faces fishable water.
func (e *Engine) CanFish() bool { return e.canFish }

// Notice returns the current transient message, or "".
func (e *Engine) Notice() string { return e.notice }

// TimeOfDay returns the current light phase.
func (e *Engine) TimeOfDay() TimeOfDay { return e.cycle.Phase() }

// SetTimeOfDay jumps the cycle to the start of the given phase.
func (e *Engine) SetTimeOfDay(p TimeOfDay) { e.cycle.SetPhase(p) }

// PlayerPos returns the player's logical tile.
func (e *Engine) PlayerPos() (int, int) { return e.player.Col, e.player.Row }

// Facing returns the player's facing direction.
func (e *Engine) Facing() Direction { return e.player.Facing }

// Log returns the engine event log.
func (e *Engine) Log() *EventLog { return e.log }

// World returns the tile world.
func (e *Engine) World() *World { return e.world }

// Village returns the generated village layout.
func (e *Engine) Village() *Village { return e.village }

// PlacePlayer teleports the player to a walkable tile while no fishing
// session is active. Headless tooling uses it to skip the walk to the
// dock.
func (e *Engine) PlacePlayer(col, row int, facing Direction) bool {
	if e.fishState != FishIdle || !e.world.IsWalkable(col, row) {
		return false
	}
	e.player.Col, e.player.Row = col, row
	e.player.Facing = facing
	e.player.VisX = float64(col * tileSize)
	e.player.VisY = float64(row * tileSize)
	e.refreshEligibility()
	return true
}

// ActiveTimers returns the number of live simulated timers.
func (e *Engine) ActiveTimers() int { return e.activeTimerCount() }

// ParticleCensus returns live particle counts per kind.
func (e *Engine) ParticleCensus() map[ParticleKind]int { return e.particles.Census() }

// AutofishEnabled reports whether the autofish loop is running.
func (e *Engine) AutofishEnabled() bool { return e.autofishOn }
