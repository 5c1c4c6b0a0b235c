package gamification

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/yogaflow/backend/internal/models"
)

// Validation runs before any storage access, so requests that fail it can be
// exercised against a handler with no database behind it.
func newTestHandler() *Handler {
	return NewHandler(NewService(nil))
}

func TestSubmitSessionRejectsBadBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.SubmitSession(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSubmitSessionRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name string
		body models.SubmitSessionRequest
	}{
		{"missing user_id", models.SubmitSessionRequest{PoseName: "Vrksasana", DurationSeconds: 60}},
		{"missing pose_name", models.SubmitSessionRequest{UserID: "u1", DurationSeconds: 60}},
		{"zero duration", models.SubmitSessionRequest{UserID: "u1", PoseName: "Vrksasana"}},
		{"negative duration", models.SubmitSessionRequest{UserID: "u1", PoseName: "Vrksasana", DurationSeconds: -5}},
		{"negative feedback", models.SubmitSessionRequest{
			UserID: "u1", PoseName: "Vrksasana", DurationSeconds: 60,
			Feedback: models.FeedbackCounts{Positive: -1},
		}},
	}

	h := newTestHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(string(body)))
			w := httptest.NewRecorder()
			h.SubmitSession(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Error == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestGetDailyChallengeRejectsBadDate(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/daily-challenge?date=03-10-2026", nil)
	w := httptest.NewRecorder()
	h.GetDailyChallenge(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCompleteChallengeRejectsMissingUser(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/daily-challenge/complete", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.CompleteDailyChallenge(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetAchievementsCatalog(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/achievements", nil)
	w := httptest.NewRecorder()
	h.GetAchievementsCatalog(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var list []models.AchievementInfo
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(list) != len(Achievements) {
		t.Errorf("catalog has %d entries, want %d", len(list), len(Achievements))
	}
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: user_id is required", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: no such thing", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: user u1", ErrAlreadyExists), http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		respondError(w, tt.err)
		if w.Code != tt.want {
			t.Errorf("respondError(%v) status = %d, want %d", tt.err, w.Code, tt.want)
		}
	}

	// Internal failures never leak details to the client.
	w := httptest.NewRecorder()
	respondError(w, errors.New("pq: password authentication failed"))
	var resp models.ErrorResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if strings.Contains(resp.Error, "pq:") {
		t.Errorf("internal error detail leaked: %q", resp.Error)
	}
}

func TestIntQueryParam(t *testing.T) {
	tests := []struct {
		query    string
		fallback int
		want     int
	}{
		{"limit=5", 10, 5},
		{"limit=0", 10, 0},
		{"", 10, 10},
		{"limit=abc", 10, 10},
		{"limit=-3", 10, 10},
	}
	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		if got := intQueryParam(q, "limit", tt.fallback); got != tt.want {
			t.Errorf("intQueryParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
