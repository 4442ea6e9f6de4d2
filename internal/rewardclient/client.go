// Package rewardclient talks to the rewardd HTTP API and adapts it to the
// engine's RewardService interface. Server-side rejections come back as
// the game package's sentinel errors so the engine can react without
// knowing HTTP exists.
package rewardclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hazelbrook/creekside/internal/game"
)

const anglerHeader = "X-Angler-ID"

// Client is an HTTP implementation of game.RewardService.
type Client struct {
	base   string
	angler string
	httpc  *http.Client
}

type Option func(*Client)

// WithAngler sets the player identity sent with every request.
func WithAngler(name string) Option {
	return func(c *Client) { c.angler = name }
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// New builds a client for a rewardd base URL such as
// "http://localhost:8474".
func New(base string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		angler: "local",
		httpc:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type fishPayload struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Points int    `json:"points"`
}

type catchPayload struct {
	Success        bool         `json:"success"`
	Fish           *fishPayload `json:"fish"`
	Reward         int          `json:"reward"`
	NewPointsTotal int          `json:"newPointsTotal"`
	QuotaRemaining int          `json:"quotaRemaining"`
}

func (p catchPayload) toResult() game.CatchResult {
	out := game.CatchResult{
		Success:        p.Success,
		Reward:         p.Reward,
		NewPointsTotal: p.NewPointsTotal,
		QuotaRemaining: p.QuotaRemaining,
	}
	if p.Fish != nil {
		out.Fish = &game.Fish{Name: p.Fish.Name, Rarity: p.Fish.Rarity, Points: p.Fish.Points}
	}
	return out
}

func (c *Client) Cast(ctx context.Context) (game.CastResult, error) {
	var out struct {
		SessionID  string `json:"sessionId"`
		WaitTimeMs int    `json:"waitTimeMs"`
	}
	if err := c.post(ctx, "/api/fishing/cast", nil, &out); err != nil {
		return game.CastResult{}, err
	}
	return game.CastResult{SessionID: out.SessionID, WaitTimeMs: out.WaitTimeMs}, nil
}

func (c *Client) Catch(ctx context.Context, sessionID string, reactionMs *int) (game.CatchResult, error) {
	req := struct {
		SessionID  string `json:"sessionId"`
		ReactionMs *int   `json:"reactionMs,omitempty"`
	}{SessionID: sessionID, ReactionMs: reactionMs}
	var out catchPayload
	if err := c.post(ctx, "/api/fishing/catch", req, &out); err != nil {
		return game.CatchResult{}, err
	}
	return out.toResult(), nil
}

func (c *Client) AutofishTick(ctx context.Context) (game.CatchResult, error) {
	var out catchPayload
	if err := c.post(ctx, "/api/fishing/autofish", nil, &out); err != nil {
		return game.CatchResult{}, err
	}
	return out.toResult(), nil
}

// Profile fetches the angler's persisted standing, used to seed the
// engine at startup.
func (c *Client) Profile(ctx context.Context) (points, quotaRemaining int, err error) {
	var out struct {
		Points         int `json:"points"`
		QuotaRemaining int `json:"quotaRemaining"`
	}
	if err := c.get(ctx, "/api/fishing/profile", &out); err != nil {
		return 0, 0, err
	}
	return out.Points, out.QuotaRemaining, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set(anglerHeader, c.angler)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("reward server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var ep struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&ep)
		return mapStatus(resp.StatusCode, ep.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus turns an HTTP rejection into the engine's sentinel errors.
// The mapping mirrors errStatus on the server side.
func mapStatus(status int, msg string) error {
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", game.ErrSessionUnknown, msg)
	case http.StatusGone:
		return fmt.Errorf("%w: %s", game.ErrSessionExpired, msg)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", game.ErrQuotaExhausted, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", game.ErrCastRejected, msg)
	default:
		return fmt.Errorf("reward server: %s (status %d)", msg, status)
	}
}
