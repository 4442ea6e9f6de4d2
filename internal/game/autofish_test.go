package game

import "testing"

func TestAutofish_AccumulatesUntilQuotaExhausted(t *testing.T) {
	ts := NewTestScene(
		WithQueuedAutofish(CatchResult{
			Success:        true,
			Fish:           &Fish{Name: "minnow", Rarity: "common", Points: 5},
			Reward:         5,
			NewPointsTotal: 5,
			QuotaRemaining: 2,
		}),
		WithQueuedAutofish(CatchResult{
			Success:        true,
			Fish:           &Fish{Name: "perch", Rarity: "common", Points: 8},
			Reward:         8,
			NewPointsTotal: 13,
			QuotaRemaining: 1,
		}),
		WithAutofishError(ErrQuotaExhausted),
	)
	e := ts.Engine

	e.ToggleAutofish()
	if !e.AutofishEnabled() {
		t.Fatal("toggle did not enable autofish")
	}

	stopped := ts.RunUntil(func(ts *TestScene) bool {
		return !ts.Engine.AutofishEnabled()
	}, int(autofishPeriodSeconds*4*60))
	if stopped < 0 {
		t.Fatalf("autofish never hit the quota:\n%s", e.Log().Format())
	}

	if got := e.Points(); got != 13 {
		t.Fatalf("expected 13 points from two auto catches, got %d", got)
	}
	if got := e.QuotaRemaining(); got != 0 {
		t.Fatalf("expected quota 0 after exhaustion, got %d", got)
	}
	if got := e.Notice(); got != "daily autofish quota reached" {
		t.Fatalf("expected quota notice, got %q", got)
	}
	if got := ts.Service.AutofishCalls; got != 3 {
		t.Fatalf("expected 3 autofish calls, got %d", got)
	}

	// The loop must stay off afterwards.
	ts.RunSeconds(autofishPeriodSeconds * 2)
	if got := ts.Service.AutofishCalls; got != 3 {
		t.Fatalf("disabled loop kept calling: %d", got)
	}
}

func TestAutofish_SkipsTicksWhileSessionActive(t *testing.T) {
	ts := NewTestScene(
		WithVerboseLog(),
		WithQueuedCast("s1", 3000),
	)
	ts.MoveToFishingSpot()
	e := ts.Engine

	e.ToggleAutofish()
	e.StartCast()

	// The first autofish tick lands mid-session and must be skipped.
	ts.RunSeconds(autofishPeriodSeconds + 1)
	if got := ts.Service.AutofishCalls; got != 0 {
		t.Fatalf("autofish fired during a session, %d calls", got)
	}
	if !e.Log().HasEntry("autofish", "skip", "session active") {
		t.Fatalf("expected a skip entry:\n%s", e.Log().Format())
	}

	// After the session resolves, the loop resumes.
	if tick := ts.RunUntil(backToIdle, 60*20); tick < 0 {
		t.Fatal("session never resolved")
	}
	called := ts.RunUntil(func(ts *TestScene) bool {
		return ts.Service.AutofishCalls > 0
	}, int(autofishPeriodSeconds*2*60))
	if called < 0 {
		t.Fatal("autofish never resumed after the session")
	}
}

func TestAutofish_TransientErrorKeepsLoopAlive(t *testing.T) {
	ts := NewTestScene(WithAutofishError(ErrCastRejected))
	e := ts.Engine

	e.ToggleAutofish()
	ts.RunSeconds(autofishPeriodSeconds*2 + 1)

	if !e.AutofishEnabled() {
		t.Fatal("transient error disabled the loop")
	}
	if got := ts.Service.AutofishCalls; got < 2 {
		t.Fatalf("expected the loop to keep ticking, got %d calls", got)
	}
	if !e.Log().HasEntry("reward", "error", "autofish") {
		t.Fatal("expected the error to be logged")
	}
}

func TestAutofish_ToggleOffCancelsTimer(t *testing.T) {
	ts := NewTestScene()
	e := ts.Engine

	e.ToggleAutofish()
	ts.RunFrames(10)
	e.ToggleAutofish()
	if e.AutofishEnabled() {
		t.Fatal("second toggle did not disable")
	}

	ts.RunSeconds(autofishPeriodSeconds * 2)
	if got := ts.Service.AutofishCalls; got != 0 {
		t.Fatalf("cancelled timer still fired %d times", got)
	}
	if got := e.ActiveTimers(); got != 1 {
		t.Fatalf("expected only the pond-jump timer, got %d", got)
	}
}
