package game

import (
	"context"
	"fmt"
	"sync"
)

// TestScene is a headless harness used exclusively by tests. It wraps a
// headless Engine around a scripted reward service and advances it in
// fixed frame steps, so every run is deterministic.
type TestScene struct {
	Engine  *Engine
	Service *ScriptedService
	Step    float64 // seconds per Advance call

	seed    int64
	verbose bool
}

// sceneOptionKind controls the pass in which an option is applied.
type sceneOptionKind int

const (
	sceneOptInfra   sceneOptionKind = iota // seed, frame step, verbose; applied first
	sceneOptService                        // scripted reward responses; applied before the engine exists
	sceneOptWorld                          // player placement, clock phase; applied last
)

// SceneOption is a builder function applied to a TestScene during
// construction.
type SceneOption struct {
	kind sceneOptionKind
	fn   func(*TestScene)
}

// WithSceneSeed sets the village and cosmetics seed.
func WithSceneSeed(seed int64) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.seed = seed
	}}
}

// WithFrameStep overrides the per-frame delta in seconds.
func WithFrameStep(step float64) SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.Step = step
	}}
}

// WithVerboseLog enables per-frame verbose event logging.
func WithVerboseLog() SceneOption {
	return SceneOption{sceneOptInfra, func(ts *TestScene) {
		ts.verbose = true
	}}
}

// WithQueuedCast queues one cast response.
func WithQueuedCast(sessionID string, waitMs int) SceneOption {
	return SceneOption{sceneOptService, func(ts *TestScene) {
		ts.Service.QueueCast(CastResult{SessionID: sessionID, WaitTimeMs: waitMs}, nil)
	}}
}

// WithCastError queues one failing cast response.
func WithCastError(err error) SceneOption {
	return SceneOption{sceneOptService, func(ts *TestScene) {
		ts.Service.QueueCast(CastResult{}, err)
	}}
}

// WithQueuedCatch queues one catch resolution.
func WithQueuedCatch(res CatchResult) SceneOption {
	return SceneOption{sceneOptService, func(ts *TestScene) {
		ts.Service.QueueCatch(res, nil)
	}}
}

// WithCatchError queues one failing catch resolution.
func WithCatchError(err error) SceneOption {
	return SceneOption{sceneOptService, func(ts *TestScene) {
		ts.Service.QueueCatch(CatchResult{}, err)
	}}
}

// WithQueuedAutofish queues one autofish tick result.
func WithQueuedAutofish(res CatchResult) SceneOption {
	return SceneOption{sceneOptService, func(ts *TestScene) {
		ts.Service.QueueAutofish(res, nil)
	}}
}

// WithAutofishError queues one failing autofish tick.
func WithAutofishError(err error) SceneOption {
	return SceneOption{sceneOptService, func(ts *TestScene) {
		ts.Service.QueueAutofish(CatchResult{}, err)
	}}
}

// WithPlayerAt places the player on a tile with the given facing, visual
// position already settled.
func WithPlayerAt(col, row int, facing Direction) SceneOption {
	return SceneOption{sceneOptWorld, func(ts *TestScene) {
		p := ts.Engine.player
		p.Col, p.Row = col, row
		p.Facing = facing
		p.VisX = float64(col * tileSize)
		p.VisY = float64(row * tileSize)
		ts.Engine.canFish = ts.Engine.playerCanFish()
	}}
}

// WithPhase jumps the day/night cycle to the start of a phase.
func WithPhase(p TimeOfDay) SceneOption {
	return SceneOption{sceneOptWorld, func(ts *TestScene) {
		ts.Engine.SetTimeOfDay(p)
	}}
}

// NewTestScene constructs a scene from the given options in three ordered
// passes:
//  1. Infrastructure (seed, frame step, verbose)
//  2. Scripted service responses
//  3. Build the headless engine
//  4. World state (player placement, clock phase)
func NewTestScene(opts ...SceneOption) *TestScene {
	ts := &TestScene{
		Service: NewScriptedService(),
		Step:    1.0 / 60.0,
		seed:    7,
	}
	for _, o := range opts {
		if o.kind == sceneOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == sceneOptService {
			o.fn(ts)
		}
	}
	ts.Engine = NewHeadless(ts.Service, ts.seed)
	if ts.verbose {
		ts.Engine.Log().SetVerbose(true)
	}
	for _, o := range opts {
		if o.kind == sceneOptWorld {
			o.fn(ts)
		}
	}
	return ts
}

// RunFrames advances the engine n frames at the scene's frame step.
func (ts *TestScene) RunFrames(n int) {
	for i := 0; i < n; i++ {
		ts.Engine.Advance(ts.Step)
	}
}

// RunSeconds advances the engine by (roughly) the given simulated time.
func (ts *TestScene) RunSeconds(s float64) {
	n := int(s/ts.Step + 0.5)
	ts.RunFrames(n)
}

// RunUntil advances up to maxFrames, stopping early once predicate returns
// true. Returns the engine tick at which it was satisfied, or -1.
func (ts *TestScene) RunUntil(predicate func(*TestScene) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		ts.Engine.Advance(ts.Step)
		if predicate(ts) {
			return ts.Engine.Tick()
		}
	}
	return -1
}

// MoveToFishingSpot teleports the player to the dock end facing open
// water, the standard starting point for fishing tests.
func (ts *TestScene) MoveToFishingSpot() {
	end := dockTiles[len(dockTiles)-1]
	p := ts.Engine.player
	p.Col, p.Row = end.Col, end.Row
	p.Facing = DirRight
	p.VisX = float64(p.Col * tileSize)
	p.VisY = float64(p.Row * tileSize)
	ts.Engine.canFish = ts.Engine.playerCanFish()
	if !ts.Engine.canFish {
		panic(fmt.Sprintf("dock end (%d,%d) is not a fishing spot", end.Col, end.Row))
	}
}

// scripted holds one queued service response.
type scripted struct {
	cast  CastResult
	catch CatchResult
	err   error
}

// ScriptedService is a RewardService fake driven by queued responses.
// When a queue is empty it falls back to simple defaults: casts get a
// generated session with a short wait, catches succeed with a stock fish,
// autofish ticks come up empty. All calls and their arguments are
// recorded for assertions.
type ScriptedService struct {
	mu sync.Mutex

	casts    []scripted
	catches  []scripted
	autos    []scripted
	nextSess int
	total    int

	CastCalls     int
	CatchCalls    int
	AutofishCalls int

	LastSessionID  string
	LastReactionMs *int // nil when the catch omitted the reaction time
}

// DefaultWaitMs is the wait the fake hands out when no cast is queued.
const DefaultWaitMs = 800

// NewScriptedService returns an empty fake.
func NewScriptedService() *ScriptedService {
	return &ScriptedService{}
}

// QueueCast appends a cast response.
func (s *ScriptedService) QueueCast(res CastResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.casts = append(s.casts, scripted{cast: res, err: err})
}

// QueueCatch appends a catch resolution.
func (s *ScriptedService) QueueCatch(res CatchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catches = append(s.catches, scripted{catch: res, err: err})
}

// QueueAutofish appends an autofish tick result.
func (s *ScriptedService) QueueAutofish(res CatchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autos = append(s.autos, scripted{catch: res, err: err})
}

// Cast implements RewardService.
func (s *ScriptedService) Cast(_ context.Context) (CastResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CastCalls++
	if len(s.casts) > 0 {
		next := s.casts[0]
		s.casts = s.casts[1:]
		return next.cast, next.err
	}
	s.nextSess++
	return CastResult{
		SessionID:  fmt.Sprintf("session-%d", s.nextSess),
		WaitTimeMs: DefaultWaitMs,
	}, nil
}

// Catch implements RewardService.
func (s *ScriptedService) Catch(_ context.Context, sessionID string, reactionMs *int) (CatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CatchCalls++
	s.LastSessionID = sessionID
	if reactionMs != nil {
		ms := *reactionMs
		s.LastReactionMs = &ms
	} else {
		s.LastReactionMs = nil
	}
	if len(s.catches) > 0 {
		next := s.catches[0]
		s.catches = s.catches[1:]
		if next.err == nil && next.catch.Success {
			s.total = next.catch.NewPointsTotal
		}
		return next.catch, next.err
	}
	s.total += 5
	return CatchResult{
		Success:        true,
		Fish:           &Fish{Name: "minnow", Rarity: "common", Points: 5},
		Reward:         5,
		NewPointsTotal: s.total,
		QuotaRemaining: -1,
	}, nil
}

// AutofishTick implements RewardService.
func (s *ScriptedService) AutofishTick(_ context.Context) (CatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AutofishCalls++
	if len(s.autos) > 0 {
		next := s.autos[0]
		s.autos = s.autos[1:]
		if next.err == nil && next.catch.Success {
			s.total = next.catch.NewPointsTotal
		}
		return next.catch, next.err
	}
	return CatchResult{
		Success:        false,
		NewPointsTotal: s.total,
		QuotaRemaining: -1,
	}, nil
}
