package models

import "time"

// ── Core Progress Structs ─────────────────────────────────

// UserProgress is the per-user progress snapshot. Level and xp_total only
// ever grow; poses_practiced is append-only.
type UserProgress struct {
	UserID               string     `json:"user_id"`
	Level                int        `json:"level"`
	XPTotal              int64      `json:"xp_total"`
	CurrentStreakDays    int        `json:"current_streak_days"`
	LongestStreakDays    int        `json:"longest_streak_days"`
	LastPracticeDate     *time.Time `json:"last_practice_date,omitempty"`
	SessionsCompleted    int        `json:"sessions_completed"`
	TotalPracticeSeconds int64      `json:"total_practice_seconds"`
	PosesPracticed       []string   `json:"poses_practiced"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// HasPracticed reports whether the pose already appears in the user's
// practiced set.
func (p *UserProgress) HasPracticed(pose string) bool {
	for _, name := range p.PosesPracticed {
		if name == pose {
			return true
		}
	}
	return false
}

// PoseSession is an immutable record of one completed practice session.
type PoseSession struct {
	SessionID       string         `json:"session_id"`
	UserID          string         `json:"user_id"`
	PoseName        string         `json:"pose_name"`
	DurationSeconds int            `json:"duration_seconds"`
	Accuracy        float64        `json:"accuracy"`
	Feedback        FeedbackCounts `json:"feedback"`
	CreatedAt       time.Time      `json:"created_at"`
}

type FeedbackCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

type UserAchievement struct {
	UserID        string    `json:"user_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// AchievementInfo is a catalog entry as exposed over the API.
type AchievementInfo struct {
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
}

// DailyChallenge is shared by all users for a calendar date. Exactly one of
// TargetPose / TargetMinutes is meaningful depending on the challenge kind.
type DailyChallenge struct {
	ChallengeDate string `json:"challenge_date"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	TargetPose    string `json:"target_pose,omitempty"`
	TargetMinutes int    `json:"target_minutes,omitempty"`
	RewardXP      int    `json:"reward_xp"`
}

// ── Request Types ─────────────────────────────────────────

type SubmitSessionRequest struct {
	UserID          string         `json:"user_id"`
	PoseName        string         `json:"pose_name"`
	DurationSeconds int            `json:"duration_seconds"`
	Accuracy        float64        `json:"accuracy"`
	Feedback        FeedbackCounts `json:"feedback"`
}

type CompleteChallengeRequest struct {
	UserID string `json:"user_id"`
	Date   string `json:"date,omitempty"`
}

type CreateUserRequest struct {
	UserID string `json:"user_id"`
}

// ── Response Types ────────────────────────────────────────

type SubmitSessionResponse struct {
	SessionID            string       `json:"session_id"`
	Progress             UserProgress `json:"progress"`
	XPBreakdown          XPBreakdown  `json:"xp_breakdown"`
	XPGained             int          `json:"xp_gained"`
	LeveledUp            bool         `json:"leveled_up"`
	NewLevel             int          `json:"new_level,omitempty"`
	AchievementsUnlocked []string     `json:"achievements_unlocked"`
}

type XPBreakdown struct {
	Base          int `json:"base"`
	DurationBonus int `json:"duration_bonus"`
	AccuracyBonus int `json:"accuracy_bonus"`
	StreakBonus   int `json:"streak_bonus"`
	NewPoseBonus  int `json:"new_pose_bonus"`
	Total         int `json:"total"`
}

type CompleteChallengeResponse struct {
	AlreadyCompleted bool `json:"already_completed"`
	RewardXPGranted  int  `json:"reward_xp_granted"`
}

type LeaderboardEntry struct {
	Rank             int        `json:"rank"`
	UserID           string     `json:"user_id"`
	Level            int        `json:"level"`
	XPTotal          int64      `json:"xp_total"`
	LastPracticeDate *time.Time `json:"last_practice_date,omitempty"`
}

type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type UserStatsResponse struct {
	Progress              UserProgress `json:"progress"`
	AverageAccuracy       float64      `json:"average_accuracy"`
	FavoritePose          string       `json:"favorite_pose,omitempty"`
	WeeklyStats           WeeklyStats  `json:"weekly_stats"`
	LevelName             string       `json:"level_name"`
	LevelDescription      string       `json:"level_description"`
	NextLevelXP           *int64       `json:"next_level_xp,omitempty"`
	AchievementsUnlocked  int          `json:"achievements_unlocked"`
	AchievementsAvailable int          `json:"achievements_available"`
}

type WeeklyStats struct {
	SessionsThisWeek int `json:"sessions_this_week"`
	MinutesThisWeek  int `json:"minutes_this_week"`
	PosesThisWeek    int `json:"poses_this_week"`
}

type GlobalStatsResponse struct {
	TotalUsers       int    `json:"total_users"`
	TotalSessions    int    `json:"total_sessions"`
	ActiveUsersToday int    `json:"active_users_today"`
	MostPopularPose  string `json:"most_popular_pose,omitempty"`
}
