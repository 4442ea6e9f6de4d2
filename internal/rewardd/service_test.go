package rewardd

import (
	"errors"
	"testing"
	"time"
)

func intp(v int) *int { return &v }

func testService(t *testing.T, quota int) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.AutofishQuota = quota
	return NewService(cfg, NewMemoryStore(), 42)
}

func TestService_CastIssuesDistinctSessions(t *testing.T) {
	svc := testService(t, 10)
	cfg := DefaultConfig()

	a, err := svc.Cast("ada")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	b, err := svc.Cast("bo")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if a.SessionID == b.SessionID {
		t.Fatalf("expected distinct session ids, both were %q", a.SessionID)
	}
	for _, rep := range []CastReply{a, b} {
		if rep.WaitTimeMs < cfg.MinWaitMs || rep.WaitTimeMs >= cfg.MaxWaitMs {
			t.Errorf("wait %dms outside [%d,%d)", rep.WaitTimeMs, cfg.MinWaitMs, cfg.MaxWaitMs)
		}
	}
}

func TestService_CatchUnknownSession(t *testing.T) {
	svc := testService(t, 10)
	_, err := svc.Catch("ada", "s-999-beef", intp(300))
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestService_SessionIsSingleUse(t *testing.T) {
	svc := testService(t, 10)
	rep, err := svc.Cast("ada")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := svc.Catch("ada", rep.SessionID, intp(300)); err != nil {
		t.Fatalf("first catch: %v", err)
	}
	_, err = svc.Catch("ada", rep.SessionID, intp(300))
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession on replay, got %v", err)
	}
}

func TestService_SessionBelongsToItsAngler(t *testing.T) {
	svc := testService(t, 10)
	rep, err := svc.Cast("ada")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	_, err = svc.Catch("bo", rep.SessionID, intp(300))
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession for wrong angler, got %v", err)
	}
}

func TestService_NewCastReplacesOldSession(t *testing.T) {
	svc := testService(t, 10)
	first, err := svc.Cast("ada")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	second, err := svc.Cast("ada")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if _, err := svc.Catch("ada", first.SessionID, intp(300)); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected stale session to be unknown, got %v", err)
	}
	if _, err := svc.Catch("ada", second.SessionID, intp(300)); err != nil {
		t.Fatalf("fresh session should resolve, got %v", err)
	}
}

func TestService_SessionExpires(t *testing.T) {
	svc := testService(t, 10)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	rep, err := svc.Cast("ada")
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	now = now.Add(DefaultConfig().SessionTTL + time.Second)
	_, err = svc.Catch("ada", rep.SessionID, intp(300))
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestService_TimeoutNeverLands(t *testing.T) {
	svc := testService(t, 10)
	for i := 0; i < 50; i++ {
		rep, err := svc.Cast("ada")
		if err != nil {
			t.Fatalf("cast %d: %v", i, err)
		}
		out, err := svc.Catch("ada", rep.SessionID, nil)
		if err != nil {
			t.Fatalf("catch %d: %v", i, err)
		}
		if out.Success {
			t.Fatalf("timed-out catch %d succeeded", i)
		}
		if out.QuotaRemaining != -1 {
			t.Fatalf("manual catch reported quota %d, want -1", out.QuotaRemaining)
		}
	}
	pts, err := svc.store.Points("ada")
	if err != nil {
		t.Fatalf("points: %v", err)
	}
	if pts != 0 {
		t.Fatalf("expected 0 points after pure timeouts, got %d", pts)
	}
}

func TestService_ReactionTimeDrivesOdds(t *testing.T) {
	const trials = 200
	land := func(reactionMs int) int {
		svc := testService(t, 10)
		n := 0
		for i := 0; i < trials; i++ {
			rep, err := svc.Cast("ada")
			if err != nil {
				t.Fatalf("cast: %v", err)
			}
			out, err := svc.Catch("ada", rep.SessionID, intp(reactionMs))
			if err != nil {
				t.Fatalf("catch: %v", err)
			}
			if out.Success {
				n++
			}
		}
		return n
	}

	fast := land(200)
	slow := land(3000)
	if fast < 160 {
		t.Errorf("fast reactions landed %d/%d, expected most", fast, trials)
	}
	if slow > 40 {
		t.Errorf("slow reactions landed %d/%d, expected few", slow, trials)
	}
	if fast <= slow {
		t.Errorf("fast (%d) should land more than slow (%d)", fast, slow)
	}
}

func TestService_PointsAccumulate(t *testing.T) {
	svc := testService(t, 10)
	total := 0
	caught := 0
	for i := 0; i < 100 && caught < 3; i++ {
		rep, err := svc.Cast("ada")
		if err != nil {
			t.Fatalf("cast: %v", err)
		}
		out, err := svc.Catch("ada", rep.SessionID, intp(250))
		if err != nil {
			t.Fatalf("catch: %v", err)
		}
		if !out.Success {
			continue
		}
		caught++
		total += out.Reward
		if out.NewPointsTotal != total {
			t.Fatalf("running total %d, want %d", out.NewPointsTotal, total)
		}
	}
	if caught < 3 {
		t.Fatalf("only %d catches in 100 fast-reaction casts", caught)
	}

	p, err := svc.ProfileFor("ada")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Points != total {
		t.Fatalf("profile points %d, want %d", p.Points, total)
	}
}

func TestService_AutofishQuotaExhausts(t *testing.T) {
	svc := testService(t, 3)
	successes := 0
	var quotaErr error
	for i := 0; i < 200; i++ {
		out, err := svc.Autofish("ada")
		if err != nil {
			quotaErr = err
			break
		}
		if out.Success {
			successes++
			if out.QuotaRemaining != 3-successes {
				t.Fatalf("after success %d quota %d, want %d", successes, out.QuotaRemaining, 3-successes)
			}
		}
	}
	if !errors.Is(quotaErr, ErrQuotaExhausted) {
		t.Fatalf("expected ErrQuotaExhausted, got %v", quotaErr)
	}
	if successes != 3 {
		t.Fatalf("quota of 3 allowed %d catches", successes)
	}
	if _, err := svc.Autofish("ada"); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("quota should stay exhausted, got %v", err)
	}
}

func TestService_AutofishQuotaResetsNextDay(t *testing.T) {
	svc := testService(t, 1)
	now := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	for i := 0; i < 50; i++ {
		if _, err := svc.Autofish("ada"); err != nil {
			break
		}
	}
	if _, err := svc.Autofish("ada"); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("expected exhausted quota before midnight, got %v", err)
	}

	now = now.Add(20 * time.Minute) // crosses the UTC day boundary
	if _, err := svc.Autofish("ada"); err != nil {
		t.Fatalf("quota should reset after midnight, got %v", err)
	}
}

func TestService_AutofishStaysInCommonBands(t *testing.T) {
	svc := testService(t, 500)
	for i := 0; i < 150; i++ {
		out, err := svc.Autofish("ada")
		if err != nil {
			t.Fatalf("autofish %d: %v", i, err)
		}
		if !out.Success {
			continue
		}
		if out.Fish.Rarity != "common" && out.Fish.Rarity != "uncommon" {
			t.Fatalf("autofish landed a %s %q", out.Fish.Rarity, out.Fish.Name)
		}
	}
}

func TestService_QuotaIsPerAngler(t *testing.T) {
	svc := testService(t, 1)
	exhaust := func(angler string) {
		for i := 0; i < 100; i++ {
			if _, err := svc.Autofish(angler); err != nil {
				return
			}
		}
		t.Fatalf("%s never exhausted a quota of 1", angler)
	}
	exhaust("ada")
	if _, err := svc.Autofish("bo"); errors.Is(err, ErrQuotaExhausted) {
		t.Fatal("ada's quota leaked onto bo")
	}
}

func TestMemoryStore_RecentCatchesNewestFirst(t *testing.T) {
	st := NewMemoryStore()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, name := range []string{"minnow", "perch", "bluegill"} {
		rec := CatchRecord{Angler: "ada", Fish: name, CaughtAt: base.Add(time.Duration(i) * time.Minute)}
		if err := st.RecordCatch(rec); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	out, err := st.RecentCatches("ada", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Fish != "bluegill" || out[1].Fish != "perch" {
		t.Fatalf("expected newest first, got %s then %s", out[0].Fish, out[1].Fish)
	}
}

func TestMemoryStore_PointsAndQuotaAreIndependentPerKey(t *testing.T) {
	st := NewMemoryStore()
	if _, err := st.AddPoints("ada", 10); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := st.AddPoints("ada", 5); err != nil {
		t.Fatalf("add: %v", err)
	}
	pts, err := st.Points("ada")
	if err != nil || pts != 15 {
		t.Fatalf("expected 15 points, got %d (err %v)", pts, err)
	}
	if pts, _ := st.Points("bo"); pts != 0 {
		t.Fatalf("expected bo to start at 0, got %d", pts)
	}

	if _, err := st.BumpAutofish("ada", "2025-06-01"); err != nil {
		t.Fatalf("bump: %v", err)
	}
	used, err := st.AutofishUsed("ada", "2025-06-01")
	if err != nil || used != 1 {
		t.Fatalf("expected 1 used, got %d (err %v)", used, err)
	}
	if used, _ := st.AutofishUsed("ada", "2025-06-02"); used != 0 {
		t.Fatalf("quota bled across days: %d", used)
	}
}
