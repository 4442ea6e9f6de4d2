// Package rewardd is the server side of the fishing minigame: it issues
// cast sessions, resolves catches from reaction times, pays out points,
// and enforces the daily autofish quota. The client never decides any of
// this; it only renders what this package returns.
package rewardd

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrUnknownSession = errors.New("unknown session")
	ErrSessionExpired = errors.New("session expired")
	ErrQuotaExhausted = errors.New("autofish quota exhausted")
)

// Config holds the tunable knobs of the reward service.
type Config struct {
	AutofishQuota int           // successful autofish catches per angler per UTC day
	SessionTTL    time.Duration // how long a cast stays redeemable
	MinWaitMs     int           // shortest bite delay the server will issue
	MaxWaitMs     int           // longest bite delay the server will issue
}

// DefaultConfig returns the tuning used by the shipped binaries.
func DefaultConfig() Config {
	return Config{
		AutofishQuota: 40,
		SessionTTL:    30 * time.Second,
		MinWaitMs:     1200,
		MaxWaitMs:     5000,
	}
}

// Fish is one row of the catch table.
type Fish struct {
	Name   string
	Rarity string
	Points int
	Weight int  // selection weight within its rarity band
	Auto   bool // catchable by the autofish rig
}

// fishTable is every fish the creek can produce. Weights are relative
// within the whole table; reaction speed scales the rare bands up.
var fishTable = []Fish{
	{Name: "minnow", Rarity: "common", Points: 3, Weight: 30, Auto: true},
	{Name: "bluegill", Rarity: "common", Points: 5, Weight: 26, Auto: true},
	{Name: "perch", Rarity: "common", Points: 6, Weight: 22, Auto: true},
	{Name: "river trout", Rarity: "uncommon", Points: 12, Weight: 14, Auto: true},
	{Name: "smallmouth bass", Rarity: "uncommon", Points: 15, Weight: 10, Auto: true},
	{Name: "channel catfish", Rarity: "rare", Points: 28, Weight: 6, Auto: false},
	{Name: "moon carp", Rarity: "epic", Points: 60, Weight: 3, Auto: false},
	{Name: "golden koi", Rarity: "legendary", Points: 140, Weight: 1, Auto: false},
}

// fastReactionMs is the threshold under which the rare bands get a
// weight boost.
const fastReactionMs = 450

// session is one outstanding cast.
type session struct {
	id        string
	angler    string
	createdAt time.Time
	waitMs    int
}

// CastReply is the server's answer to a cast.
type CastReply struct {
	SessionID  string
	WaitTimeMs int
}

// CatchReply is the resolution of a catch or autofish attempt.
// QuotaRemaining is -1 for manual catches, which have no quota.
type CatchReply struct {
	Success        bool
	Fish           *Fish
	Reward         int
	NewPointsTotal int
	QuotaRemaining int
}

// Profile is an angler's standing: lifetime points and autofish quota
// left today.
type Profile struct {
	Angler         string
	Points         int
	QuotaRemaining int
}

// Service implements the reward rules on top of a Store. All methods are
// safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	cfg      Config
	store    Store
	sessions map[string]*session // keyed by session id
	byAngler map[string]string   // angler -> their live session id
	nextID   int
	rng      *rand.Rand
	now      func() time.Time
}

// NewService wires the rule engine to a store. The seed drives wait times
// and catch rolls; tests pin it for reproducible outcomes.
func NewService(cfg Config, store Store, seed int64) *Service {
	if cfg.MinWaitMs <= 0 {
		cfg.MinWaitMs = DefaultConfig().MinWaitMs
	}
	if cfg.MaxWaitMs <= cfg.MinWaitMs {
		cfg.MaxWaitMs = cfg.MinWaitMs + 1
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &Service{
		cfg:      cfg,
		store:    store,
		sessions: make(map[string]*session),
		byAngler: make(map[string]string),
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- game odds, not crypto
		now:      time.Now,
	}
}

// SetClock overrides the time source. Tests use it to cross day
// boundaries without sleeping.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Cast opens a fishing session for the angler and tells the client how
// long the fish will take to bite. A fresh cast replaces any session the
// angler still had open.
func (s *Service) Cast(angler string) (CastReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byAngler[angler]; ok {
		delete(s.sessions, old)
	}
	s.nextID++
	id := fmt.Sprintf("s-%d-%04x", s.nextID, s.rng.Intn(0x10000))
	waitMs := s.cfg.MinWaitMs + s.rng.Intn(s.cfg.MaxWaitMs-s.cfg.MinWaitMs)
	s.sessions[id] = &session{
		id:        id,
		angler:    angler,
		createdAt: s.now(),
		waitMs:    waitMs,
	}
	s.byAngler[angler] = id
	return CastReply{SessionID: id, WaitTimeMs: waitMs}, nil
}

// Catch resolves a session. reactionMs is nil when the client's bite
// window timed out; that always comes up empty. A session can be
// redeemed exactly once.
func (s *Service) Catch(angler, sessionID string, reactionMs *int) (CatchReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.angler != angler {
		return CatchReply{}, ErrUnknownSession
	}
	delete(s.sessions, sessionID)
	if s.byAngler[angler] == sessionID {
		delete(s.byAngler, angler)
	}
	if s.now().Sub(sess.createdAt) > s.cfg.SessionTTL {
		return CatchReply{}, ErrSessionExpired
	}

	if reactionMs == nil || !s.rollSuccess(*reactionMs) {
		total, err := s.store.Points(angler)
		if err != nil {
			return CatchReply{}, err
		}
		return CatchReply{Success: false, NewPointsTotal: total, QuotaRemaining: -1}, nil
	}

	fish := s.pickFish(*reactionMs, false)
	total, err := s.payout(angler, fish, *reactionMs, false)
	if err != nil {
		return CatchReply{}, err
	}
	return CatchReply{
		Success:        true,
		Fish:           &fish,
		Reward:         fish.Points,
		NewPointsTotal: total,
		QuotaRemaining: -1,
	}, nil
}

// Autofish resolves one tick of the automatic rig. The rig is slower and
// coarser than a live angler: fixed odds, common bands only, and every
// successful catch burns one unit of the daily quota.
func (s *Service) Autofish(angler string) (CatchReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.dayKey()
	used, err := s.store.AutofishUsed(angler, day)
	if err != nil {
		return CatchReply{}, err
	}
	remaining := s.cfg.AutofishQuota - used
	if remaining <= 0 {
		return CatchReply{}, ErrQuotaExhausted
	}

	if s.rng.Float64() >= 0.55 {
		total, err := s.store.Points(angler)
		if err != nil {
			return CatchReply{}, err
		}
		return CatchReply{Success: false, NewPointsTotal: total, QuotaRemaining: remaining}, nil
	}

	fish := s.pickFish(0, true)
	total, err := s.payout(angler, fish, 0, true)
	if err != nil {
		return CatchReply{}, err
	}
	used, err = s.store.BumpAutofish(angler, day)
	if err != nil {
		return CatchReply{}, err
	}
	return CatchReply{
		Success:        true,
		Fish:           &fish,
		Reward:         fish.Points,
		NewPointsTotal: total,
		QuotaRemaining: s.cfg.AutofishQuota - used,
	}, nil
}

// ProfileFor reports an angler's points and remaining autofish quota.
func (s *Service) ProfileFor(angler string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pts, err := s.store.Points(angler)
	if err != nil {
		return Profile{}, err
	}
	used, err := s.store.AutofishUsed(angler, s.dayKey())
	if err != nil {
		return Profile{}, err
	}
	remaining := s.cfg.AutofishQuota - used
	if remaining < 0 {
		remaining = 0
	}
	return Profile{Angler: angler, Points: pts, QuotaRemaining: remaining}, nil
}

// RecentFor returns the angler's latest catches, newest first.
func (s *Service) RecentFor(angler string, n int) ([]CatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.RecentCatches(angler, n)
}

// payout credits the fish and records the catch. Caller holds s.mu.
func (s *Service) payout(angler string, fish Fish, reactionMs int, auto bool) (int, error) {
	total, err := s.store.AddPoints(angler, fish.Points)
	if err != nil {
		return 0, err
	}
	rec := CatchRecord{
		Angler:     angler,
		Fish:       fish.Name,
		Rarity:     fish.Rarity,
		Points:     fish.Points,
		ReactionMs: reactionMs,
		Auto:       auto,
		CaughtAt:   s.now(),
	}
	if err := s.store.RecordCatch(rec); err != nil {
		return 0, err
	}
	return total, nil
}

// rollSuccess maps a reaction time to catch odds. Caller holds s.mu.
func (s *Service) rollSuccess(reactionMs int) bool {
	var p float64
	switch {
	case reactionMs <= fastReactionMs:
		p = 0.92
	case reactionMs <= 900:
		p = 0.72
	case reactionMs <= 1600:
		p = 0.45
	case reactionMs <= 2400:
		p = 0.22
	default:
		p = 0.08
	}
	return s.rng.Float64() < p
}

// pickFish rolls the weighted table. Fast reactions triple the weight of
// the rare bands; the autofish rig only sees Auto entries. Caller holds
// s.mu.
func (s *Service) pickFish(reactionMs int, auto bool) Fish {
	total := 0
	weights := make([]int, len(fishTable))
	for i, f := range fishTable {
		if auto && !f.Auto {
			continue
		}
		w := f.Weight
		if !auto && reactionMs <= fastReactionMs && f.Rarity != "common" && f.Rarity != "uncommon" {
			w *= 3
		}
		weights[i] = w
		total += w
	}
	roll := s.rng.Intn(total)
	for i, w := range weights {
		if w == 0 {
			continue
		}
		roll -= w
		if roll < 0 {
			return fishTable[i]
		}
	}
	return fishTable[0]
}

// dayKey is the UTC calendar date the quota counts against. Caller holds
// s.mu.
func (s *Service) dayKey() string {
	return s.now().UTC().Format("2006-01-02")
}
