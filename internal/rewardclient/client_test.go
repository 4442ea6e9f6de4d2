package rewardclient

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/hazelbrook/creekside/internal/game"
	"github.com/hazelbrook/creekside/internal/rewardd"
)

func testClient(t *testing.T, quota int) *Client {
	t.Helper()
	cfg := rewardd.DefaultConfig()
	cfg.AutofishQuota = quota
	svc := rewardd.NewService(cfg, rewardd.NewMemoryStore(), 42)
	ts := httptest.NewServer(rewardd.SetupRoutes(svc))
	t.Cleanup(ts.Close)
	return New(ts.URL, WithAngler("ada"), WithHTTPClient(ts.Client()))
}

func TestClient_CastRoundTrip(t *testing.T) {
	c := testClient(t, 10)
	res, err := c.Cast(context.Background())
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if res.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if res.WaitTimeMs < rewardd.DefaultConfig().MinWaitMs {
		t.Fatalf("wait %dms below server minimum", res.WaitTimeMs)
	}
}

func TestClient_UnknownSessionMapsToSentinel(t *testing.T) {
	c := testClient(t, 10)
	ms := 300
	_, err := c.Catch(context.Background(), "s-999-beef", &ms)
	if !errors.Is(err, game.ErrSessionUnknown) {
		t.Fatalf("expected game.ErrSessionUnknown, got %v", err)
	}
}

func TestClient_QuotaMapsToSentinel(t *testing.T) {
	c := testClient(t, 0)
	_, err := c.AutofishTick(context.Background())
	if !errors.Is(err, game.ErrQuotaExhausted) {
		t.Fatalf("expected game.ErrQuotaExhausted, got %v", err)
	}
}

func TestClient_CatchCarriesFishAndTotals(t *testing.T) {
	c := testClient(t, 10)
	ctx := context.Background()

	var caught *game.CatchResult
	for i := 0; i < 60 && caught == nil; i++ {
		cast, err := c.Cast(ctx)
		if err != nil {
			t.Fatalf("cast: %v", err)
		}
		ms := 200
		res, err := c.Catch(ctx, cast.SessionID, &ms)
		if err != nil {
			t.Fatalf("catch: %v", err)
		}
		if res.Success {
			caught = &res
		}
	}
	if caught == nil {
		t.Fatal("no catch in 60 fast-reaction casts")
	}
	if caught.Fish == nil || caught.Fish.Name == "" {
		t.Fatalf("successful catch missing fish: %+v", caught)
	}
	if caught.Reward <= 0 || caught.NewPointsTotal < caught.Reward {
		t.Fatalf("bad totals: reward %d, total %d", caught.Reward, caught.NewPointsTotal)
	}
	if caught.QuotaRemaining != -1 {
		t.Fatalf("manual catch quota %d, want -1", caught.QuotaRemaining)
	}

	points, _, err := c.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if points != caught.NewPointsTotal {
		t.Fatalf("profile points %d, want %d", points, caught.NewPointsTotal)
	}
}

func TestClient_TimeoutCatchSendsNoReaction(t *testing.T) {
	c := testClient(t, 10)
	ctx := context.Background()

	cast, err := c.Cast(ctx)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	res, err := c.Catch(ctx, cast.SessionID, nil)
	if err != nil {
		t.Fatalf("catch: %v", err)
	}
	if res.Success {
		t.Fatal("timed-out catch should come up empty")
	}
}
