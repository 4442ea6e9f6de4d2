package game

import (
	"errors"
	"fmt"
)

// autofishPeriodSeconds is the delay between automatic catch attempts.
const autofishPeriodSeconds = 6.0

// ToggleAutofish flips the background fishing loop on or off.
func (e *Engine) ToggleAutofish() {
	e.setAutofish(!e.autofishOn, "toggled")
}

// setAutofish starts or stops the autofish timer. The loop is purely
// client-side scheduling; whether a tick actually pays out is decided by
// the reward service, which also enforces the daily quota.
func (e *Engine) setAutofish(on bool, reason string) {
	if on == e.autofishOn {
		return
	}
	e.autofishOn = on
	e.log.Add(e.tick, "autofish", boolWord(on), reason, 0)
	if on {
		e.autofishTimer = e.everySeconds(autofishPeriodSeconds, e.autofishTick)
		e.pushNotice("autofish on")
		return
	}
	e.cancelTimer(e.autofishTimer)
	e.autofishTimer = nil
	e.pushNotice("autofish off")
}

// autofishTick fires on the repeating timer. Ticks that land while a
// manual fishing session is active are skipped rather than queued.
func (e *Engine) autofishTick() {
	if !e.autofishOn {
		return
	}
	if e.fishState != FishIdle {
		e.log.AddVerbose(e.tick, "autofish", "skip", "session active", 0)
		return
	}
	ctx := e.callCtx
	e.log.AddVerbose(e.tick, "autofish", "tick", "requested", 0)
	e.dispatch(func() asyncResult {
		res, err := e.svc.AutofishTick(ctx)
		return asyncResult{kind: callAutofish, catch: res, err: err}
	})
}

// applyAutofishResult handles a completed autofish attempt. Quota
// exhaustion turns the loop off; other errors are logged and the loop
// keeps trying on the next tick.
func (e *Engine) applyAutofishResult(r asyncResult) {
	if r.err != nil {
		if errors.Is(r.err, ErrQuotaExhausted) {
			e.quotaRemaining = 0
			e.setAutofish(false, "quota exhausted")
			e.pushNotice("daily autofish quota reached")
			return
		}
		e.log.Add(e.tick, "reward", "error", "autofish: "+r.err.Error(), 0)
		return
	}

	res := r.catch
	e.points = res.NewPointsTotal
	if res.QuotaRemaining >= 0 {
		e.quotaRemaining = res.QuotaRemaining
	}
	if res.Success && res.Fish != nil {
		e.log.Add(e.tick, "autofish", "catch",
			fmt.Sprintf("caught %s +%d", res.Fish.Name, res.Reward), float64(res.Reward))
		e.pushNotice(fmt.Sprintf("autofish: %s +%d", res.Fish.Name, res.Reward))
		return
	}
	e.log.AddVerbose(e.tick, "autofish", "catch", "nothing this time", 0)
}
