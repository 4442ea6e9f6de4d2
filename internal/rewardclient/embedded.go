package rewardclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazelbrook/creekside/internal/game"
	"github.com/hazelbrook/creekside/internal/rewardd"
)

// Embedded adapts an in-process rewardd.Service to game.RewardService,
// for single-player runs and headless tooling that want real reward
// rules without a server.
type Embedded struct {
	svc    *rewardd.Service
	angler string
}

func NewEmbedded(svc *rewardd.Service, angler string) Embedded {
	if angler == "" {
		angler = "local"
	}
	return Embedded{svc: svc, angler: angler}
}

func (e Embedded) Cast(_ context.Context) (game.CastResult, error) {
	rep, err := e.svc.Cast(e.angler)
	if err != nil {
		return game.CastResult{}, mapRewardErr(err)
	}
	return game.CastResult{SessionID: rep.SessionID, WaitTimeMs: rep.WaitTimeMs}, nil
}

func (e Embedded) Catch(_ context.Context, sessionID string, reactionMs *int) (game.CatchResult, error) {
	rep, err := e.svc.Catch(e.angler, sessionID, reactionMs)
	if err != nil {
		return game.CatchResult{}, mapRewardErr(err)
	}
	return toGameCatch(rep), nil
}

func (e Embedded) AutofishTick(_ context.Context) (game.CatchResult, error) {
	rep, err := e.svc.Autofish(e.angler)
	if err != nil {
		return game.CatchResult{}, mapRewardErr(err)
	}
	return toGameCatch(rep), nil
}

// Profile mirrors Client.Profile for startup seeding.
func (e Embedded) Profile(_ context.Context) (points, quotaRemaining int, err error) {
	p, err := e.svc.ProfileFor(e.angler)
	if err != nil {
		return 0, 0, err
	}
	return p.Points, p.QuotaRemaining, nil
}

func toGameCatch(rep rewardd.CatchReply) game.CatchResult {
	out := game.CatchResult{
		Success:        rep.Success,
		Reward:         rep.Reward,
		NewPointsTotal: rep.NewPointsTotal,
		QuotaRemaining: rep.QuotaRemaining,
	}
	if rep.Fish != nil {
		out.Fish = &game.Fish{Name: rep.Fish.Name, Rarity: rep.Fish.Rarity, Points: rep.Fish.Points}
	}
	return out
}

func mapRewardErr(err error) error {
	switch {
	case errors.Is(err, rewardd.ErrUnknownSession):
		return fmt.Errorf("%w: %v", game.ErrSessionUnknown, err)
	case errors.Is(err, rewardd.ErrSessionExpired):
		return fmt.Errorf("%w: %v", game.ErrSessionExpired, err)
	case errors.Is(err, rewardd.ErrQuotaExhausted):
		return fmt.Errorf("%w: %v", game.ErrQuotaExhausted, err)
	default:
		return err
	}
}
