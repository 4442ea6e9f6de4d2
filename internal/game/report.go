package game

import (
	"fmt"
	"strings"
)

// BuildReport formats a diagnostic snapshot of the whole engine: clock,
// player, fishing session, reward totals, particle census, live timers,
// session tallies, and the tail of the event log. The windowed game copies
// it to the clipboard; the headless runner prints it.
func (e *Engine) BuildReport(lastEvents int) string {
	if lastEvents <= 0 {
		lastEvents = 14
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Creekside debug report ---\n")
	fmt.Fprintf(&b, "tick=%d elapsed=%.1fs clock=%s(%.2f)\n",
		e.tick, e.elapsed, e.cycle.Phase(), e.cycle.PhaseProgress())

	p := e.player
	fmt.Fprintf(&b, "player: tile=(%d,%d) facing=%s can_fish=%t vis=(%.1f,%.1f)\n",
		p.Col, p.Row, p.Facing, e.canFish, p.VisX, p.VisY)

	session := e.sessionID
	if session == "" {
		session = "<none>"
	}
	reaction := "-"
	if e.lastReactionMs >= 0 {
		reaction = fmt.Sprintf("%dms", e.lastReactionMs)
	}
	fmt.Fprintf(&b, "fishing: state=%s session=%s wait=%dms last_reaction=%s\n",
		e.fishState, session, e.waitTimeMs, reaction)

	quota := "-"
	if e.quotaRemaining >= 0 {
		quota = fmt.Sprintf("%d", e.quotaRemaining)
	}
	fmt.Fprintf(&b, "reward: points=%d quota_remaining=%s autofish=%s\n",
		e.points, quota, boolWord(e.autofishOn))

	census := e.particles.Census()
	b.WriteString("particles:")
	for k := ParticleKind(0); k < particleKindCount; k++ {
		fmt.Fprintf(&b, " %s=%d", k, census[k])
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "timers: live=%d\n", e.activeTimerCount())

	casts := e.log.CountOf("fishing", "cast")
	timeouts := e.log.CountOf("fishing", "timeout")
	cancels := e.log.CountOf("fishing", "cancel")
	caught, missed := 0, 0
	for _, ev := range e.log.Filter("fishing", "catch_result") {
		if strings.HasPrefix(ev.Value, "caught") {
			caught++
		} else {
			missed++
		}
	}
	fmt.Fprintf(&b, "totals: casts=%d caught=%d missed=%d timeouts=%d cancels=%d auto_catches=%d\n",
		casts, caught, missed, timeouts, cancels, e.log.CountOf("autofish", "catch"))

	entries := e.log.Entries()
	start := len(entries) - lastEvents
	if start < 0 {
		start = 0
	}
	fmt.Fprintf(&b, "events (last %d):\n", len(entries)-start)
	for _, ev := range entries[start:] {
		b.WriteString("  ")
		b.WriteString(ev.String())
		b.WriteByte('\n')
	}
	return b.String()
}
