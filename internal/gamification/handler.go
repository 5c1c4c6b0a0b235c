package gamification

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yogaflow/backend/internal/models"
)

// Handler exposes the progress engine over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetProgress handles GET /gamification/progress/{user_id}
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.GetProgress(mux.Vars(r)["user_id"])
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SubmitSession handles POST /gamification/session
func (h *Handler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitSession(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetRecentSessions handles GET /gamification/sessions/{user_id}?limit=N
func (h *Handler) GetRecentSessions(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r.URL.Query(), "limit", 0)
	sessions, err := h.service.GetRecentSessions(mux.Vars(r)["user_id"], limit)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// GetAchievementsCatalog handles GET /gamification/achievements
func (h *Handler) GetAchievementsCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.GetAchievementsCatalog())
}

// GetUserAchievements handles GET /gamification/achievements/{user_id}
func (h *Handler) GetUserAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.service.GetUserAchievements(mux.Vars(r)["user_id"])
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

// GetLeaderboard handles GET /gamification/leaderboard?limit=N
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r.URL.Query(), "limit", 0)
	resp, err := h.service.GetLeaderboard(limit)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDailyChallenge handles GET /gamification/daily-challenge?date=YYYY-MM-DD
func (h *Handler) GetDailyChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.service.GetDailyChallenge(r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// CompleteDailyChallenge handles POST /gamification/daily-challenge/complete
func (h *Handler) CompleteDailyChallenge(w http.ResponseWriter, r *http.Request) {
	var req models.CompleteChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.CompleteDailyChallenge(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetUserStats handles GET /gamification/stats/{user_id}
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetUserStats(mux.Vars(r)["user_id"])
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetGlobalStats handles GET /gamification/stats/global
func (h *Handler) GetGlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetGlobalStats()
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// CreateUser handles POST /gamification/user/create
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	progress, err := h.service.CreateUser(&req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, progress)
}

// ── Helpers ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, fallback int) int {
	raw := query.Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[gamification] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}
