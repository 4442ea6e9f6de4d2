package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/hazelbrook/creekside/internal/game"
	"github.com/hazelbrook/creekside/internal/rewardclient"
	"github.com/hazelbrook/creekside/internal/rewardd"
)

type runStats struct {
	runIndex int
	seed     int64

	casts       int
	caught      int
	missed      int
	timeouts    int
	cancels     int
	autoCatches int
	points      int

	firstCastTick  int
	firstCatchTick int

	byRarity    map[string]int
	reactions   []float64 // hook reaction times, ms
	census      map[string]int
	timersAtEnd int
}

func main() {
	var runs int
	var seconds int
	var seedBase int64
	var seedStep int64
	var reactionMs int
	var autofish bool

	flag.IntVar(&runs, "runs", 5, "number of headless angling runs")
	flag.IntVar(&seconds, "seconds", 300, "simulated seconds per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&reactionMs, "reaction-ms", 450, "bot's mean hook reaction time")
	flag.BoolVar(&autofish, "autofish", false, "run with the autofish rig enabled")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if seconds <= 0 {
		fmt.Println("error: -seconds must be > 0")
		return
	}
	if reactionMs <= 0 {
		fmt.Println("error: -reaction-ms must be > 0")
		return
	}

	fmt.Printf("=== Headless Angling Report ===\n")
	fmt.Printf("runs=%d seconds=%d seed_base=%d seed_step=%d reaction_ms=%d autofish=%v\n\n",
		runs, seconds, seedBase, seedStep, reactionMs, autofish)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAnglingSession(i+1, seed, seconds, reactionMs, autofish)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runAnglingSession drives one headless engine with a scripted angler:
// cast when idle, react to bites with a jittered human-ish delay, and
// occasionally fumble the hook entirely to exercise the timeout path.
func runAnglingSession(runIndex int, seed int64, seconds, reactionMs int, autofish bool) runStats {
	local := rewardd.NewService(rewardd.DefaultConfig(), rewardd.NewMemoryStore(), seed)
	e := game.NewHeadless(rewardclient.NewEmbedded(local, "bot"), seed)
	defer e.Close()

	spot := e.Village().DockEnd()
	if !e.PlacePlayer(spot.Col, spot.Row, game.DirRight) {
		fmt.Printf("error: dock end (%d,%d) not placeable\n", spot.Col, spot.Row)
		return runStats{runIndex: runIndex, seed: seed, byRarity: map[string]int{}}
	}
	if autofish {
		e.ToggleAutofish()
	}

	rng := rand.New(rand.NewSource(seed + 9000)) // #nosec G404 -- bot behaviour, not crypto
	const dt = 1.0 / 60
	const fumbleRate = 0.1
	frames := seconds * 60

	byRarity := map[string]int{}
	prevState := e.FishState()
	reactAtFrame := -1
	cooldownUntil := 0

	for f := 0; f < frames; f++ {
		e.Advance(dt)
		st := e.FishState()
		if st != prevState {
			switch st {
			case game.FishBite:
				if rng.Float64() < fumbleRate {
					reactAtFrame = -1 // let the window expire
				} else {
					jitter := rng.Intn(reactionMs/2+1) - reactionMs/4
					delay := (reactionMs + jitter) * 60 / 1000
					if delay < 1 {
						delay = 1
					}
					reactAtFrame = f + delay
				}
			case game.FishCaught:
				if fish, _ := e.LastCatch(); fish != nil {
					byRarity[fish.Rarity]++
				}
			case game.FishIdle:
				cooldownUntil = f + 45
			}
			prevState = st
		}
		if st == game.FishBite && reactAtFrame >= 0 && f >= reactAtFrame {
			e.ReactCatch()
			reactAtFrame = -1
		}
		if st == game.FishIdle && e.CanFish() && f >= cooldownUntil {
			e.StartCast()
		}
	}

	lg := e.Log()
	reactions := make([]float64, 0, 64)
	for _, entry := range lg.Filter("fishing", "react") {
		reactions = append(reactions, entry.NumVal)
	}
	census := map[string]int{}
	for kind, n := range e.ParticleCensus() {
		census[kind.String()] = n
	}
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		casts:          lg.CountOf("fishing", "cast"),
		caught:         countValuePrefix(lg, "fishing", "catch_result", "caught"),
		missed:         countValuePrefix(lg, "fishing", "catch_result", "got away"),
		timeouts:       lg.CountOf("fishing", "timeout"),
		cancels:        lg.CountOf("fishing", "cancel"),
		autoCatches:    lg.CountOf("autofish", "catch"),
		points:         e.Points(),
		firstCastTick:  firstTick(lg, "fishing", "cast"),
		firstCatchTick: firstTickPrefix(lg, "fishing", "catch_result", "caught"),
		byRarity:       byRarity,
		reactions:      reactions,
		census:         census,
		timersAtEnd:    e.ActiveTimers(),
	}
}

func countValuePrefix(lg *game.EventLog, category, key, prefix string) int {
	n := 0
	for _, e := range lg.Filter(category, key) {
		if strings.HasPrefix(e.Value, prefix) {
			n++
		}
	}
	return n
}

func firstTick(lg *game.EventLog, category, key string) int {
	for _, e := range lg.Filter(category, key) {
		return e.Tick
	}
	return -1
}

func firstTickPrefix(lg *game.EventLog, category, key, prefix string) int {
	for _, e := range lg.Filter(category, key) {
		if strings.HasPrefix(e.Value, prefix) {
			return e.Tick
		}
	}
	return -1
}

// catchRate is caught over all resolved bites, in percent.
func catchRate(rs runStats) float64 {
	resolved := rs.caught + rs.missed + rs.timeouts
	if resolved == 0 {
		return 0
	}
	return float64(rs.caught) / float64(resolved) * 100
}

// classifySession labels a run for the report summary.
func classifySession(rs runStats) (label, reason string) {
	rate := catchRate(rs)
	switch {
	case rs.casts == 0:
		return "idle", "no casts issued"
	case rs.timeouts > rs.caught:
		return "butterfingers", fmt.Sprintf("timeouts=%d exceed caught=%d", rs.timeouts, rs.caught)
	case rate >= 60:
		return "hot_bite", fmt.Sprintf("catch_rate=%.1f%%", rate)
	case rate < 25:
		return "quiet_water", fmt.Sprintf("catch_rate=%.1f%%", rate)
	default:
		return "steady", fmt.Sprintf("catch_rate=%.1f%%", rate)
	}
}

func printRun(rs runStats) {
	label, reason := classifySession(rs)
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("session_totals: casts=%d caught=%d missed=%d timeouts=%d cancels=%d\n",
		rs.casts, rs.caught, rs.missed, rs.timeouts, rs.cancels)
	fmt.Printf("reward: points=%d auto_catches=%d catch_rate=%.1f%%\n",
		rs.points, rs.autoCatches, catchRate(rs))
	fmt.Printf("reaction_ms: %s\n", reactionSummary(rs.reactions))
	fmt.Printf("rarity_breakdown: %s\n", formatCounts(rs.byRarity))
	fmt.Printf("particle_census: %s\n", formatCounts(rs.census))
	fmt.Printf("phase_markers: first_cast_tick=%d first_catch_tick=%d\n",
		rs.firstCastTick, rs.firstCatchTick)
	fmt.Printf("timers_at_end: %d\n", rs.timersAtEnd)
	fmt.Printf("classification: %s (%s)\n\n", label, reason)
}

func printAggregate(all []runStats) {
	totalCasts := 0
	totalCaught := 0
	totalMissed := 0
	totalTimeouts := 0
	totalAuto := 0
	totalPoints := 0
	maxTimers := 0
	rarityTotals := map[string]int{}
	labels := map[string]int{}

	firstCatchTicks := make([]int, 0, len(all))
	allReactions := make([]float64, 0, 256)
	for _, rs := range all {
		totalCasts += rs.casts
		totalCaught += rs.caught
		totalMissed += rs.missed
		totalTimeouts += rs.timeouts
		totalAuto += rs.autoCatches
		totalPoints += rs.points
		for r, n := range rs.byRarity {
			rarityTotals[r] += n
		}
		label, _ := classifySession(rs)
		labels[label]++
		if rs.firstCatchTick >= 0 {
			firstCatchTicks = append(firstCatchTicks, rs.firstCatchTick)
		}
		allReactions = append(allReactions, rs.reactions...)
		if rs.timersAtEnd > maxTimers {
			maxTimers = rs.timersAtEnd
		}
	}

	fmt.Println("=== Aggregate Angling Report ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: casts=%.1f caught=%.1f missed=%.1f timeouts=%.1f auto_catches=%.1f\n",
		avg(totalCasts, len(all)), avg(totalCaught, len(all)), avg(totalMissed, len(all)),
		avg(totalTimeouts, len(all)), avg(totalAuto, len(all)))
	resolved := totalCaught + totalMissed + totalTimeouts
	rate := 0.0
	if resolved > 0 {
		rate = float64(totalCaught) / float64(resolved) * 100
	}
	fmt.Printf("catch_rate_overall: %.1f%% (%d of %d resolved bites)\n", rate, totalCaught, resolved)
	fmt.Printf("points: total=%d avg_per_run=%.1f\n", totalPoints, avg(totalPoints, len(all)))
	fmt.Printf("reaction_ms_overall: %s\n", reactionSummary(allReactions))
	fmt.Printf("first_catch_avg_tick: %s\n", avgTickString(firstCatchTicks))
	fmt.Printf("rarity_totals: %s\n", formatCounts(rarityTotals))
	fmt.Printf("run_classifications: %s\n", formatCounts(labels))
	fmt.Printf("timers_at_end_max: %d\n", maxTimers)
}

// formatCounts renders a count map as sorted "key=n" pairs.
func formatCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}

// reactionSummary formats min/avg/max over the captured hook reactions.
func reactionSummary(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	mn, mx := vals[0], vals[0]
	sum := 0.0
	for _, v := range vals {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
		sum += v
	}
	return fmt.Sprintf("min=%.0f avg=%.1f max=%.0f (n=%d)",
		mn, sum/float64(len(vals)), mx, len(vals))
}

func avg(sum, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
