package game

import "fmt"

// FishingState is the interaction state of the fishing machine.
type FishingState uint8

const (
	FishIdle      FishingState = iota
	FishCasting                // cast animation playing, session requested
	FishWaiting                // line in the water, waiting out the server delay
	FishBite                   // bite window open, player must react
	FishResolving              // catch request in flight
	FishCaught                 // showing the catch result
	FishMissed                 // showing the got-away result
	fishingStateCount          // sentinel
)

// String returns the lowercase state name.
func (s FishingState) String() string {
	switch s {
	case FishIdle:
		return "idle"
	case FishCasting:
		return "casting"
	case FishWaiting:
		return "waiting"
	case FishBite:
		return "bite"
	case FishResolving:
		return "resolving"
	case FishCaught:
		return "caught"
	case FishMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Fishing machine timings, in seconds.
const (
	castAnimSeconds   = 0.55
	biteWindowSeconds = 2.5
	caughtShowSeconds = 2.2
	missShowSeconds   = 1.4
)

// setFishState transitions the machine, logging the edge.
func (e *Engine) setFishState(s FishingState) {
	if s == e.fishState {
		return
	}
	e.log.Add(e.tick, "fishing", "state_change",
		fmt.Sprintf("%s -> %s", e.fishState, s), 0)
	e.fishState = s
	e.stateEntered = e.elapsed
}

// StartCast begins a fishing session. Only one session can exist at a time;
// the request is refused while any session is active or the player is not
// facing open water.
func (e *Engine) StartCast() {
	if e.fishState != FishIdle {
		return
	}
	if !e.playerCanFish() {
		e.log.Add(e.tick, "fishing", "cast_rejected", "no water ahead", 0)
		e.pushNotice("face open water to cast")
		return
	}

	e.resultFish = nil
	e.resultReward = 0
	dx, dy := e.player.Facing.Delta()
	e.bobberX, e.bobberY = tileCenter(e.player.Col+dx, e.player.Row+dy)

	e.setFishState(FishCasting)
	e.castAnimDone = false
	e.gotSession = false
	e.afterSeconds(castAnimSeconds, "", func() {
		if e.fishState == FishCasting {
			e.castAnimDone = true
			e.maybeBeginWaiting()
		}
	})

	e.callSeq++
	seq := e.callSeq
	ctx := e.callCtx
	e.log.Add(e.tick, "fishing", "cast", "requested", 0)
	e.dispatch(func() asyncResult {
		res, err := e.svc.Cast(ctx)
		return asyncResult{kind: callCast, seq: seq, cast: res, err: err}
	})
}

// applyCastResult handles the server's answer to a cast request. Results
// from cancelled or superseded casts are discarded.
func (e *Engine) applyCastResult(r asyncResult) {
	if r.seq != e.callSeq || e.fishState != FishCasting {
		e.log.Add(e.tick, "fishing", "stale_drop",
			fmt.Sprintf("cast seq %d", r.seq), 0)
		return
	}
	if r.err != nil {
		e.log.Add(e.tick, "reward", "error", "cast: "+r.err.Error(), 0)
		e.pushNotice("cast failed")
		e.clearSession()
		e.setFishState(FishIdle)
		return
	}
	e.sessionID = r.cast.SessionID
	e.waitTimeMs = r.cast.WaitTimeMs
	e.gotSession = true
	e.log.Add(e.tick, "fishing", "session_start",
		fmt.Sprintf("%s wait=%dms", r.cast.SessionID, r.cast.WaitTimeMs), float64(r.cast.WaitTimeMs))
	e.maybeBeginWaiting()
}

// maybeBeginWaiting enters the waiting state once both the cast animation
// has finished and the server session has arrived, in either order.
func (e *Engine) maybeBeginWaiting() {
	if e.fishState != FishCasting || !e.castAnimDone || !e.gotSession {
		return
	}
	e.setFishState(FishWaiting)
	sid := e.sessionID
	e.afterSeconds(float64(e.waitTimeMs)/1000.0, sid, func() {
		e.openBiteWindow(sid)
	})
}

// openBiteWindow starts the reaction window and arms its timeout.
func (e *Engine) openBiteWindow(sid string) {
	if e.fishState != FishWaiting || e.sessionID != sid {
		return
	}
	e.setFishState(FishBite)
	e.biteOpenedAt = e.elapsed
	e.particles.SpawnSplash(e.bobberX, e.bobberY, 6)
	e.log.Add(e.tick, "fishing", "bite", "window open", 0)
	e.afterSeconds(biteWindowSeconds, sid, func() {
		e.biteTimedOut(sid)
	})
}

// ReactCatch is the player's reaction during the bite window. The elapsed
// reaction time is captured in milliseconds and sent with the catch.
func (e *Engine) ReactCatch() {
	if e.fishState != FishBite {
		return
	}
	ms := int((e.elapsed - e.biteOpenedAt) * 1000.0)
	if ms < 0 {
		ms = 0
	}
	e.lastReactionMs = ms
	e.log.Add(e.tick, "fishing", "react", fmt.Sprintf("%dms", ms), float64(ms))
	e.cancelSessionTimers(e.sessionID)
	re := ms
	e.sendCatch(&re)
}

// biteTimedOut fires when the reaction window closes with no input. The
// catch request still goes out, with the reaction time omitted; the server
// resolves it as a missed fish.
func (e *Engine) biteTimedOut(sid string) {
	if e.fishState != FishBite || e.sessionID != sid {
		return
	}
	e.lastReactionMs = -1
	e.log.Add(e.tick, "fishing", "timeout", "bite window expired", 0)
	e.sendCatch(nil)
}

func (e *Engine) sendCatch(reactionMs *int) {
	e.setFishState(FishResolving)
	sid := e.sessionID
	ctx := e.callCtx
	e.dispatch(func() asyncResult {
		res, err := e.svc.Catch(ctx, sid, reactionMs)
		return asyncResult{kind: callCatch, session: sid, catch: res, err: err}
	})
}

// applyCatchResult handles the catch resolution. Responses for a session
// that is no longer current are dropped without touching state.
func (e *Engine) applyCatchResult(r asyncResult) {
	if e.fishState != FishResolving || e.sessionID == "" || r.session != e.sessionID {
		e.log.Add(e.tick, "fishing", "stale_drop", "catch "+r.session, 0)
		return
	}
	if r.err != nil {
		e.log.Add(e.tick, "reward", "error", "catch: "+r.err.Error(), 0)
		e.pushNotice("catch failed")
		e.finishSession()
		return
	}

	sid := e.sessionID
	res := r.catch
	if res.QuotaRemaining >= 0 {
		e.quotaRemaining = res.QuotaRemaining
	}
	if res.Success {
		e.resultFish = res.Fish
		e.resultReward = res.Reward
		e.points = res.NewPointsTotal
		name := "fish"
		if res.Fish != nil {
			name = res.Fish.Name
		}
		e.log.Add(e.tick, "fishing", "catch_result",
			fmt.Sprintf("caught %s +%d", name, res.Reward), float64(res.Reward))
		e.setFishState(FishCaught)
		e.particles.SpawnSplash(e.bobberX, e.bobberY, 14)
		e.afterSeconds(caughtShowSeconds, sid, func() {
			e.finishResultDisplay(sid)
		})
		return
	}

	e.resultFish = nil
	e.resultReward = 0
	e.log.Add(e.tick, "fishing", "catch_result", "got away", 0)
	e.setFishState(FishMissed)
	e.particles.SpawnSplash(e.bobberX, e.bobberY, 4)
	e.afterSeconds(missShowSeconds, sid, func() {
		e.finishResultDisplay(sid)
	})
}

func (e *Engine) finishResultDisplay(sid string) {
	if e.sessionID != sid {
		return
	}
	if e.fishState != FishCaught && e.fishState != FishMissed {
		return
	}
	e.finishSession()
}

// finishSession tears the session down and returns to idle.
func (e *Engine) finishSession() {
	e.cancelSessionTimers(e.sessionID)
	e.clearSession()
	e.setFishState(FishIdle)
}

// CancelFishing aborts the active session from any state. Session timers
// are cancelled immediately; any in-flight response is discarded when it
// arrives because the session id no longer matches.
func (e *Engine) CancelFishing() {
	if e.fishState == FishIdle {
		return
	}
	e.log.Add(e.tick, "fishing", "cancel", "from "+e.fishState.String(), 0)
	e.cancelSessionTimers(e.sessionID)
	e.clearSession()
	e.setFishState(FishIdle)
}

func (e *Engine) clearSession() {
	e.sessionID = ""
	e.waitTimeMs = 0
	e.gotSession = false
	e.castAnimDone = false
}

// LastCatch returns the fish and reward from the most recent successful
// catch display, or nil and 0.
func (e *Engine) LastCatch() (*Fish, int) {
	return e.resultFish, e.resultReward
}

// LastReactionMs returns the captured reaction time of the most recent
// resolution, or -1 if it was a timeout.
func (e *Engine) LastReactionMs() int {
	return e.lastReactionMs
}
