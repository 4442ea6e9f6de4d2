package rewardd

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// anglerHeader identifies the player. Absent means the default
// single-player profile.
const anglerHeader = "X-Angler-ID"

// Wire types. Field names match what the game client decodes.

type fishJSON struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Points int    `json:"points"`
}

type castResponse struct {
	SessionID  string `json:"sessionId"`
	WaitTimeMs int    `json:"waitTimeMs"`
}

type catchRequest struct {
	SessionID  string `json:"sessionId"`
	ReactionMs *int   `json:"reactionMs,omitempty"`
}

type catchResponse struct {
	Success        bool      `json:"success"`
	Fish           *fishJSON `json:"fish,omitempty"`
	Reward         int       `json:"reward"`
	NewPointsTotal int       `json:"newPointsTotal"`
	QuotaRemaining int       `json:"quotaRemaining"`
}

type profileResponse struct {
	Angler         string `json:"angler"`
	Points         int    `json:"points"`
	QuotaRemaining int    `json:"quotaRemaining"`
}

type catchRecordJSON struct {
	Fish       string `json:"fish"`
	Rarity     string `json:"rarity"`
	Points     int    `json:"points"`
	ReactionMs int    `json:"reactionMs"`
	Auto       bool   `json:"auto"`
	CaughtAt   string `json:"caughtAt"`
}

// SetupRoutes configures all routes and returns the router.
func SetupRoutes(svc *Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &FishingHandler{svc: svc}

	r.Route("/api", func(r chi.Router) {
		r.Post("/fishing/cast", h.Cast)
		r.Post("/fishing/catch", h.Catch)
		r.Post("/fishing/autofish", h.Autofish)
		r.Get("/fishing/profile", h.Profile)
		r.Get("/fishing/recent", h.Recent)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// FishingHandler handles the fishing endpoints.
type FishingHandler struct {
	svc *Service
}

// Cast handles POST /api/fishing/cast
func (h *FishingHandler) Cast(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Cast(anglerFrom(r))
	if err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, castResponse{
		SessionID:  rep.SessionID,
		WaitTimeMs: rep.WaitTimeMs,
	})
}

// Catch handles POST /api/fishing/catch
func (h *FishingHandler) Catch(w http.ResponseWriter, r *http.Request) {
	var req catchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	rep, err := h.svc.Catch(anglerFrom(r), req.SessionID, req.ReactionMs)
	if err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toCatchResponse(rep))
}

// Autofish handles POST /api/fishing/autofish
func (h *FishingHandler) Autofish(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Autofish(anglerFrom(r))
	if err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toCatchResponse(rep))
}

// Profile handles GET /api/fishing/profile
func (h *FishingHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ProfileFor(anglerFrom(r))
	if err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{
		Angler:         p.Angler,
		Points:         p.Points,
		QuotaRemaining: p.QuotaRemaining,
	})
}

// Recent handles GET /api/fishing/recent?n=10
func (h *FishingHandler) Recent(w http.ResponseWriter, r *http.Request) {
	n := parseIntParam(r, "n", 10)
	n = clamp(n, 1, 100)
	recs, err := h.svc.RecentFor(anglerFrom(r), n)
	if err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	out := make([]catchRecordJSON, 0, len(recs))
	for _, rec := range recs {
		out = append(out, catchRecordJSON{
			Fish:       rec.Fish,
			Rarity:     rec.Rarity,
			Points:     rec.Points,
			ReactionMs: rec.ReactionMs,
			Auto:       rec.Auto,
			CaughtAt:   rec.CaughtAt.UTC().Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func toCatchResponse(rep CatchReply) catchResponse {
	out := catchResponse{
		Success:        rep.Success,
		Reward:         rep.Reward,
		NewPointsTotal: rep.NewPointsTotal,
		QuotaRemaining: rep.QuotaRemaining,
	}
	if rep.Fish != nil {
		out.Fish = &fishJSON{Name: rep.Fish.Name, Rarity: rep.Fish.Rarity, Points: rep.Fish.Points}
	}
	return out
}

func anglerFrom(r *http.Request) string {
	if a := r.Header.Get(anglerHeader); a != "" {
		return a
	}
	return "local"
}

// errStatus maps service sentinels to HTTP statuses. The client maps
// them back the same way.
func errStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, ErrSessionExpired):
		return http.StatusGone
	case errors.Is(err, ErrQuotaExhausted):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
