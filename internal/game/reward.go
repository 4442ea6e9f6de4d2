package game

import (
	"context"
	"errors"
)

// Sentinel errors a RewardService implementation can return. The engine
// treats any error as a transient failure and reverts to idle; autofish
// additionally recognises quota exhaustion and disables itself.
var (
	ErrCastRejected   = errors.New("cast rejected")
	ErrSessionUnknown = errors.New("session unknown")
	ErrSessionExpired = errors.New("session expired")
	ErrQuotaExhausted = errors.New("daily quota exhausted")
)

// Fish describes one caught fish.
type Fish struct {
	Name   string
	Rarity string
	Points int
}

// CastResult is the server's answer to a cast: an opaque session id and how
// long to wait before the fish bites.
type CastResult struct {
	SessionID  string
	WaitTimeMs int
}

// CatchResult is the resolution of a catch or autofish attempt.
// QuotaRemaining is -1 when no quota applies (manual catches).
type CatchResult struct {
	Success        bool
	Fish           *Fish
	Reward         int
	NewPointsTotal int
	QuotaRemaining int
}

// RewardService is the engine's outward interface to the reward backend.
// Catch's reactionMs is nil when the bite window timed out; the server
// tells a deliberate attempt from a timeout by that field alone.
//
// Implementations: the HTTP client and embedded in-process adapter in
// internal/rewardclient, and the scripted service in the test harness.
type RewardService interface {
	Cast(ctx context.Context) (CastResult, error)
	Catch(ctx context.Context, sessionID string, reactionMs *int) (CatchResult, error)
	AutofishTick(ctx context.Context) (CatchResult, error)
}
