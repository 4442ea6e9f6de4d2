package game

// TimeOfDay is the current phase of the ambient light cycle.
type TimeOfDay uint8

const (
	TimeDawn TimeOfDay = iota
	TimeDay
	TimeDusk
	TimeNight
	timeOfDayCount // sentinel
)

// String returns the lowercase phase name.
func (t TimeOfDay) String() string {
	switch t {
	case TimeDawn:
		return "dawn"
	case TimeDay:
		return "day"
	case TimeDusk:
		return "dusk"
	case TimeNight:
		return "night"
	default:
		return "unknown"
	}
}

// Phase durations in real seconds. A full cycle runs just under three minutes
// so a short play session sees every lighting state.
var phaseDurations = [timeOfDayCount]float64{
	TimeDawn:  18,
	TimeDay:   75,
	TimeDusk:  18,
	TimeNight: 49,
}

// cycleSeconds is the total length of one dawn-to-dawn cycle.
func cycleSeconds() float64 {
	total := 0.0
	for _, d := range phaseDurations {
		total += d
	}
	return total
}

// DayCycle tracks elapsed time through the repeating dawn/day/dusk/night
// cycle. It owns no rendering state; draw code derives colours from the
// phase and its progress each frame.
type DayCycle struct {
	t float64 // seconds into the cycle, wraps at cycleSeconds
}

// Advance moves the cycle forward by dt seconds, wrapping at the cycle end.
func (c *DayCycle) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	total := cycleSeconds()
	c.t += dt
	for c.t >= total {
		c.t -= total
	}
}

// Phase returns the current time-of-day phase.
func (c *DayCycle) Phase() TimeOfDay {
	p, _ := c.phaseAt()
	return p
}

// PhaseProgress returns how far through the current phase the cycle is,
// in [0, 1).
func (c *DayCycle) PhaseProgress() float64 {
	_, prog := c.phaseAt()
	return prog
}

// SetPhase jumps to the start of the given phase. Used by the debug time
// key and the test harness.
func (c *DayCycle) SetPhase(p TimeOfDay) {
	if p >= timeOfDayCount {
		return
	}
	t := 0.0
	for ph := TimeOfDay(0); ph < p; ph++ {
		t += phaseDurations[ph]
	}
	c.t = t
}

func (c *DayCycle) phaseAt() (TimeOfDay, float64) {
	t := c.t
	for p := TimeOfDay(0); p < timeOfDayCount; p++ {
		d := phaseDurations[p]
		if t < d {
			return p, t / d
		}
		t -= d
	}
	return TimeNight, 1
}
