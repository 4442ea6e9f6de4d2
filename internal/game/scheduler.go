package game

import "sort"

// simTimer is a timer driven by Engine.Advance rather than the wall clock,
// so headless runs and tests stay deterministic. Timers tagged with a
// session id are cancelled together when that fishing session ends.
type simTimer struct {
	id       int
	session  string  // non-empty ties the timer to a fishing session
	at       float64 // engine elapsed seconds at which it fires
	period   float64 // >0 reschedules after firing
	fn       func()
	canceled bool
}

// afterSeconds schedules fn to run once, d seconds from now.
func (e *Engine) afterSeconds(d float64, session string, fn func()) *simTimer {
	e.nextTimerID++
	t := &simTimer{id: e.nextTimerID, session: session, at: e.elapsed + d, fn: fn}
	e.timers = append(e.timers, t)
	return t
}

// everySeconds schedules fn to run repeatedly with the given period.
func (e *Engine) everySeconds(period float64, fn func()) *simTimer {
	e.nextTimerID++
	t := &simTimer{id: e.nextTimerID, at: e.elapsed + period, period: period, fn: fn}
	e.timers = append(e.timers, t)
	return t
}

// cancelTimer marks a timer dead. It is dropped on the next Advance.
func (e *Engine) cancelTimer(t *simTimer) {
	if t != nil {
		t.canceled = true
	}
}

// cancelSessionTimers cancels every timer tagged with the given session id.
func (e *Engine) cancelSessionTimers(session string) {
	if session == "" {
		return
	}
	for _, t := range e.timers {
		if t.session == session {
			t.canceled = true
		}
	}
}

// activeTimerCount returns how many live timers are queued. The headless
// report uses it to detect timer leaks after sessions finish.
func (e *Engine) activeTimerCount() int {
	n := 0
	for _, t := range e.timers {
		if !t.canceled {
			n++
		}
	}
	return n
}

// fireDueTimers runs all timers whose deadline has passed, in deadline
// order. Repeating timers are rescheduled before their callback runs, so a
// callback cancelling its own timer works as expected. Timers scheduled by
// a callback never fire in the same pass.
func (e *Engine) fireDueTimers() {
	var due []*simTimer
	kept := e.timers[:0]
	for _, t := range e.timers {
		if t.canceled {
			continue
		}
		if t.at <= e.elapsed {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	e.timers = kept
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		if t.canceled {
			continue
		}
		if t.period > 0 {
			t.at += t.period
			// Catch up if Advance jumped far past several periods.
			for t.at <= e.elapsed {
				t.at += t.period
			}
			e.timers = append(e.timers, t)
		}
		t.fn()
	}
}
