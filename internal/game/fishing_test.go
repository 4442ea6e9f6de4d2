package game

import (
	"testing"
)

func atBite(ts *TestScene) bool     { return ts.Engine.FishState() == FishBite }
func atWaiting(ts *TestScene) bool  { return ts.Engine.FishState() == FishWaiting }
func backToIdle(ts *TestScene) bool { return ts.Engine.FishState() == FishIdle }

func TestFishing_FullSessionHappyPath(t *testing.T) {
	ts := NewTestScene(
		WithQueuedCast("s1", 1000),
		WithQueuedCatch(CatchResult{
			Success:        true,
			Fish:           &Fish{Name: "river trout", Rarity: "uncommon", Points: 12},
			Reward:         12,
			NewPointsTotal: 12,
			QuotaRemaining: -1,
		}),
	)
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if got := ts.Engine.FishState(); got != FishCasting {
		t.Fatalf("expected casting after StartCast, got %s", got)
	}

	if tick := ts.RunUntil(atWaiting, 120); tick < 0 {
		t.Fatalf("never reached waiting:\n%s", ts.Engine.Log().Format())
	}
	if got := ts.Engine.SessionID(); got != "s1" {
		t.Fatalf("expected session s1, got %q", got)
	}

	if tick := ts.RunUntil(atBite, 300); tick < 0 {
		t.Fatalf("never reached bite:\n%s", ts.Engine.Log().Format())
	}

	// Let about half a second pass before reacting.
	ts.RunFrames(30)
	ts.Engine.ReactCatch()
	if got := ts.Engine.FishState(); got != FishResolving {
		t.Fatalf("expected resolving after react, got %s", got)
	}

	ts.RunFrames(1)
	if got := ts.Engine.FishState(); got != FishCaught {
		t.Fatalf("expected caught, got %s:\n%s", got, ts.Engine.Log().Format())
	}
	fish, reward := ts.Engine.LastCatch()
	if fish == nil || fish.Name != "river trout" || reward != 12 {
		t.Fatalf("expected river trout +12, got %+v +%d", fish, reward)
	}
	if got := ts.Engine.Points(); got != 12 {
		t.Fatalf("expected 12 points, got %d", got)
	}

	if ts.Service.LastSessionID != "s1" {
		t.Fatalf("catch went to session %q, expected s1", ts.Service.LastSessionID)
	}
	if ts.Service.LastReactionMs == nil {
		t.Fatal("expected reaction time to be sent")
	}
	if ms := *ts.Service.LastReactionMs; ms < 400 || ms > 650 {
		t.Fatalf("expected reaction near 500ms, got %d", ms)
	}

	if tick := ts.RunUntil(backToIdle, 300); tick < 0 {
		t.Fatal("result display never returned to idle")
	}
	// Only the pond-jump timer should survive the session.
	if got := ts.Engine.ActiveTimers(); got != 1 {
		t.Fatalf("expected 1 live timer after session, got %d", got)
	}

	want := []string{"cast", "session_start", "bite", "react", "catch_result"}
	for _, key := range want {
		if !ts.Engine.Log().HasEntry("fishing", key, "") {
			t.Errorf("missing fishing/%s entry:\n%s", key, ts.Engine.Log().Format())
		}
	}
	if got := ts.Engine.Log().CountOf("fishing", "state_change"); got != 6 {
		t.Errorf("expected 6 state edges, got %d:\n%s", got, ts.Engine.Log().Format())
	}
}

func TestFishing_BiteTimeoutStillResolvesWithoutReaction(t *testing.T) {
	ts := NewTestScene(
		WithQueuedCast("s1", 600),
		WithQueuedCatch(CatchResult{Success: false, NewPointsTotal: 0, QuotaRemaining: -1}),
	)
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atBite, 300); tick < 0 {
		t.Fatal("never reached bite")
	}

	// Sit through the whole window without reacting.
	ts.RunSeconds(biteWindowSeconds + 0.2)
	if !ts.Engine.Log().HasEntry("fishing", "timeout", "") {
		t.Fatalf("expected a timeout entry:\n%s", ts.Engine.Log().Format())
	}
	if ts.Service.CatchCalls != 1 {
		t.Fatalf("expected the catch to still be sent, got %d calls", ts.Service.CatchCalls)
	}
	if ts.Service.LastReactionMs != nil {
		t.Fatalf("expected omitted reaction time, got %d", *ts.Service.LastReactionMs)
	}
	if got := ts.Engine.LastReactionMs(); got != -1 {
		t.Fatalf("expected -1 recorded reaction, got %d", got)
	}

	if got := ts.Engine.FishState(); got != FishMissed {
		t.Fatalf("expected missed display, got %s", got)
	}
	if tick := ts.RunUntil(backToIdle, 300); tick < 0 {
		t.Fatal("missed display never returned to idle")
	}
}

func TestFishing_CancelDiscardsLateCatchResult(t *testing.T) {
	ts := NewTestScene(
		WithQueuedCast("s1", 600),
		WithQueuedCatch(CatchResult{
			Success:        true,
			Fish:           &Fish{Name: "golden koi", Rarity: "legendary", Points: 50},
			Reward:         50,
			NewPointsTotal: 50,
		}),
	)
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atBite, 300); tick < 0 {
		t.Fatal("never reached bite")
	}
	ts.Engine.ReactCatch()

	// The catch response is already queued for delivery; cancelling first
	// must make the engine drop it on arrival.
	ts.Engine.CancelFishing()
	if got := ts.Engine.FishState(); got != FishIdle {
		t.Fatalf("expected idle after cancel, got %s", got)
	}

	ts.RunFrames(2)
	if got := ts.Engine.Points(); got != 0 {
		t.Fatalf("stale catch leaked points: got %d", got)
	}
	if fish, _ := ts.Engine.LastCatch(); fish != nil {
		t.Fatalf("stale catch leaked fish %q", fish.Name)
	}
	if !ts.Engine.Log().HasEntry("fishing", "stale_drop", "") {
		t.Fatalf("expected a stale_drop entry:\n%s", ts.Engine.Log().Format())
	}
}

func TestFishing_CancelDuringCastDropsSession(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 600))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	ts.Engine.CancelFishing()

	ts.RunSeconds(3)
	if got := ts.Engine.FishState(); got != FishIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if got := ts.Engine.SessionID(); got != "" {
		t.Fatalf("expected no session, got %q", got)
	}
	if ts.Engine.Log().HasEntry("fishing", "bite", "") {
		t.Fatalf("bite fired for a cancelled cast:\n%s", ts.Engine.Log().Format())
	}
}

func TestFishing_CancelDuringWaitingKillsBiteTimer(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 800))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atWaiting, 120); tick < 0 {
		t.Fatal("never reached waiting")
	}
	ts.Engine.CancelFishing()

	ts.RunSeconds(4)
	if ts.Engine.Log().HasEntry("fishing", "bite", "") {
		t.Fatal("bite window opened after cancel")
	}
	if got := ts.Engine.ActiveTimers(); got != 1 {
		t.Fatalf("expected only the pond-jump timer, got %d", got)
	}
}

func TestFishing_CastErrorReturnsToIdleWithNotice(t *testing.T) {
	ts := NewTestScene(WithCastError(ErrCastRejected))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	ts.RunFrames(2)

	if got := ts.Engine.FishState(); got != FishIdle {
		t.Fatalf("expected idle after cast error, got %s", got)
	}
	if got := ts.Engine.Notice(); got != "cast failed" {
		t.Fatalf("expected cast failed notice, got %q", got)
	}
	if !ts.Engine.Log().HasEntry("reward", "error", "cast") {
		t.Fatalf("expected reward error entry:\n%s", ts.Engine.Log().Format())
	}
}

func TestFishing_CatchErrorReturnsToIdleWithNotice(t *testing.T) {
	ts := NewTestScene(
		WithQueuedCast("s1", 600),
		WithCatchError(ErrSessionExpired),
	)
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atBite, 300); tick < 0 {
		t.Fatal("never reached bite")
	}
	ts.Engine.ReactCatch()
	ts.RunFrames(2)

	if got := ts.Engine.FishState(); got != FishIdle {
		t.Fatalf("expected idle after catch error, got %s", got)
	}
	if got := ts.Engine.Notice(); got != "catch failed" {
		t.Fatalf("expected catch failed notice, got %q", got)
	}
}

func TestFishing_OnlyOneSessionAtATime(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 800))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	ts.RunFrames(5)
	ts.Engine.StartCast()
	ts.RunFrames(5)
	ts.Engine.StartCast()

	if got := ts.Service.CastCalls; got != 1 {
		t.Fatalf("expected exactly 1 cast call, got %d", got)
	}
}

func TestFishing_CastRequiresWaterAhead(t *testing.T) {
	ts := NewTestScene()
	// Default spawn faces down onto the village path.

	ts.Engine.StartCast()
	if got := ts.Engine.FishState(); got != FishIdle {
		t.Fatalf("expected cast to be refused, got %s", got)
	}
	if got := ts.Service.CastCalls; got != 0 {
		t.Fatalf("refused cast still reached the service, %d calls", got)
	}
	if got := ts.Engine.Notice(); got != "face open water to cast" {
		t.Fatalf("expected guidance notice, got %q", got)
	}
	if !ts.Engine.Log().HasEntry("fishing", "cast_rejected", "") {
		t.Fatal("expected a cast_rejected entry")
	}
}

func TestFishing_BiteHonorsServerWaitTime(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 1500))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atWaiting, 120); tick < 0 {
		t.Fatal("never reached waiting")
	}

	ts.RunSeconds(1.0)
	if got := ts.Engine.FishState(); got != FishWaiting {
		t.Fatalf("bite opened %s early", got)
	}
	ts.RunSeconds(0.7)
	if got := ts.Engine.FishState(); got != FishBite {
		t.Fatalf("expected bite after server wait, got %s", got)
	}
}

func TestFishing_MovementLockedDuringSession(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 800))
	ts.MoveToFishingSpot()
	col, row := ts.Engine.PlayerPos()

	ts.Engine.StartCast()
	ts.RunFrames(5)

	ts.Engine.MovePlayer(DirLeft)
	ts.RunFrames(5)
	if c, r := ts.Engine.PlayerPos(); c != col || r != row {
		t.Fatalf("player moved during session: (%d,%d) -> (%d,%d)", col, row, c, r)
	}
	if got := ts.Engine.Facing(); got != DirRight {
		t.Fatalf("facing changed during session: %s", got)
	}

	ts.Engine.CancelFishing()
	ts.Engine.MovePlayer(DirLeft)
	if c, _ := ts.Engine.PlayerPos(); c != col-1 {
		t.Fatalf("expected movement to resume after cancel, still at col %d", c)
	}
}

func TestFishing_SecondSessionAfterResultDisplay(t *testing.T) {
	ts := NewTestScene(
		WithQueuedCast("s1", 600),
		WithQueuedCast("s2", 600),
	)
	ts.MoveToFishingSpot()

	for i := 0; i < 2; i++ {
		ts.Engine.StartCast()
		if tick := ts.RunUntil(atBite, 300); tick < 0 {
			t.Fatalf("round %d: never reached bite", i+1)
		}
		ts.Engine.ReactCatch()
		ts.RunFrames(1)
		if tick := ts.RunUntil(backToIdle, 300); tick < 0 {
			t.Fatalf("round %d: never returned to idle", i+1)
		}
	}

	if got := ts.Service.CastCalls; got != 2 {
		t.Fatalf("expected 2 cast calls, got %d", got)
	}
	if ts.Service.LastSessionID != "s2" {
		t.Fatalf("second round used session %q", ts.Service.LastSessionID)
	}
}

func TestFishing_ReactionOutsideBiteWindowIgnored(t *testing.T) {
	ts := NewTestScene(WithQueuedCast("s1", 1200))
	ts.MoveToFishingSpot()

	ts.Engine.StartCast()
	if tick := ts.RunUntil(atWaiting, 120); tick < 0 {
		t.Fatal("never reached waiting")
	}

	// Mashing the catch button while still waiting must do nothing.
	ts.Engine.ReactCatch()
	ts.Engine.ReactCatch()
	if got := ts.Service.CatchCalls; got != 0 {
		t.Fatalf("premature react reached the service, %d calls", got)
	}
	if got := ts.Engine.FishState(); got != FishWaiting {
		t.Fatalf("premature react changed state to %s", got)
	}
}
