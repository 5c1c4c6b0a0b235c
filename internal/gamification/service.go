package gamification

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/yogaflow/backend/internal/models"
)

const (
	defaultSessionLimit     = 50
	defaultLeaderboardLimit = 10
	statsSessionSample      = 100
)

// Service owns the progress rules. All writes for a user go through that
// user's lock, so concurrent submissions serialize instead of clobbering
// each other.
type Service struct {
	store *Store
	locks *userLocks
}

func NewService(store *Store) *Service {
	return &Service{
		store: store,
		locks: newUserLocks(),
	}
}

// ── Session Submission ──────────────────────────────────

func validateSubmission(req *models.SubmitSessionRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if req.PoseName == "" {
		return fmt.Errorf("%w: pose_name is required", ErrValidation)
	}
	if req.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration_seconds must be positive", ErrValidation)
	}
	if req.Feedback.Positive < 0 || req.Feedback.Negative < 0 || req.Feedback.Neutral < 0 {
		return fmt.Errorf("%w: feedback counts must be non-negative", ErrValidation)
	}
	return nil
}

// SubmitSession records a completed practice session and applies every
// progress effect in one pass: XP award, level transition, streak update,
// pose set growth and achievement unlocks. The session row and the progress
// mutation share one transaction.
func (s *Service) SubmitSession(req *models.SubmitSessionRequest) (*models.SubmitSessionResponse, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}
	accuracy := ClampAccuracy(req.Accuracy)

	lock := s.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.store.GetOrCreateProgress(req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	oldLevel := progress.Level

	progress.CurrentStreakDays, progress.LongestStreakDays = UpdateStreak(
		progress.CurrentStreakDays, progress.LongestStreakDays,
		progress.LastPracticeDate, now,
	)
	day := TruncateToDay(now)
	progress.LastPracticeDate = &day

	newPose := !progress.HasPracticed(req.PoseName)
	breakdown := CalculateSessionXP(req.DurationSeconds, accuracy, progress.CurrentStreakDays, newPose)

	progress.XPTotal += int64(breakdown.Total)
	progress.SessionsCompleted++
	progress.TotalPracticeSeconds += int64(req.DurationSeconds)
	if newPose {
		progress.PosesPracticed = append(progress.PosesPracticed, req.PoseName)
	}

	// Level never goes down, even if thresholds shift between releases.
	if lvl := LevelForXP(progress.XPTotal); lvl > progress.Level {
		progress.Level = lvl
	}

	session := &models.PoseSession{
		SessionID:       uuid.NewString(),
		UserID:          req.UserID,
		PoseName:        req.PoseName,
		DurationSeconds: req.DurationSeconds,
		Accuracy:        accuracy,
		Feedback:        req.Feedback,
		CreatedAt:       now,
	}

	tx, err := s.store.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.store.UpdateProgressTx(tx, progress); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	if err := s.store.SaveSessionTx(tx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	unlocked := []string{}
	for _, key := range CheckAchievements(progress) {
		fresh, err := s.store.UnlockAchievementTx(tx, req.UserID, key)
		if err != nil {
			return nil, fmt.Errorf("unlock achievement: %w", err)
		}
		if fresh {
			unlocked = append(unlocked, key)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	log.Printf("[gamification] user=%s pose=%q xp=+%d level=%d streak=%d achievements=%d",
		req.UserID, req.PoseName, breakdown.Total, progress.Level, progress.CurrentStreakDays, len(unlocked))

	resp := &models.SubmitSessionResponse{
		SessionID:            session.SessionID,
		Progress:             *progress,
		XPBreakdown:          breakdown,
		XPGained:             breakdown.Total,
		LeveledUp:            progress.Level > oldLevel,
		AchievementsUnlocked: unlocked,
	}
	if resp.LeveledUp {
		resp.NewLevel = progress.Level
	}
	return resp, nil
}

// ── Reads ───────────────────────────────────────────────

func (s *Service) GetProgress(userID string) (*models.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	return s.store.GetOrCreateProgress(userID)
}

func (s *Service) GetRecentSessions(userID string, limit int) ([]models.PoseSession, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	return s.store.GetRecentSessions(userID, limit)
}

func (s *Service) GetAchievementsCatalog() []models.AchievementInfo {
	return CatalogList()
}

func (s *Service) GetUserAchievements(userID string) ([]models.UserAchievement, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	return s.store.GetUserAchievements(userID)
}

func (s *Service) GetLeaderboard(topN int) (*models.LeaderboardResponse, error) {
	if topN <= 0 {
		topN = defaultLeaderboardLimit
	}
	entries, err := s.store.ListProgress()
	if err != nil {
		return nil, err
	}
	ranked := RankLeaderboard(entries, topN)
	if ranked == nil {
		ranked = []models.LeaderboardEntry{}
	}
	return &models.LeaderboardResponse{Entries: ranked}, nil
}

// ── Daily Challenges ────────────────────────────────────

// GetDailyChallenge returns the shared challenge for a date, defaulting to
// today (UTC) when date is empty.
func (s *Service) GetDailyChallenge(date string) (*models.DailyChallenge, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return s.store.GetOrCreateChallenge(GenerateDailyChallenge(date))
}

// CompleteDailyChallenge grants the challenge reward at most once per user
// per date. A repeat completion is not an error; it reports
// already_completed with no XP granted.
func (s *Service) CompleteDailyChallenge(req *models.CompleteChallengeRequest) (*models.CompleteChallengeResponse, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	challenge, err := s.GetDailyChallenge(req.Date)
	if err != nil {
		return nil, err
	}

	lock := s.locks.get(req.UserID)
	lock.Lock()
	defer lock.Unlock()

	progress, err := s.store.GetOrCreateProgress(req.UserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	fresh, err := s.store.CompleteChallengeTx(tx, req.UserID, challenge.ChallengeDate)
	if err != nil {
		return nil, fmt.Errorf("complete challenge: %w", err)
	}
	if !fresh {
		return &models.CompleteChallengeResponse{AlreadyCompleted: true}, nil
	}

	progress.XPTotal += int64(challenge.RewardXP)
	if lvl := LevelForXP(progress.XPTotal); lvl > progress.Level {
		progress.Level = lvl
	}
	if err := s.store.UpdateProgressTx(tx, progress); err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	log.Printf("[gamification] user=%s challenge=%s reward=+%d", req.UserID, challenge.ChallengeDate, challenge.RewardXP)

	return &models.CompleteChallengeResponse{RewardXPGranted: challenge.RewardXP}, nil
}

// ── Stats ───────────────────────────────────────────────

// GetUserStats aggregates progress with derived figures from the user's
// recent session history.
func (s *Service) GetUserStats(userID string) (*models.UserStatsResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	progress, err := s.store.GetOrCreateProgress(userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.store.GetRecentSessions(userID, statsSessionSample)
	if err != nil {
		return nil, err
	}
	achievements, err := s.store.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	var accuracySum float64
	poseCounts := map[string]int{}
	weekCutoff := time.Now().UTC().AddDate(0, 0, -7)
	var weekly models.WeeklyStats
	weekPoses := map[string]bool{}

	for _, sess := range sessions {
		accuracySum += sess.Accuracy
		poseCounts[sess.PoseName]++
		if sess.CreatedAt.After(weekCutoff) {
			weekly.SessionsThisWeek++
			weekly.MinutesThisWeek += sess.DurationSeconds / 60
			weekPoses[sess.PoseName] = true
		}
	}
	weekly.PosesThisWeek = len(weekPoses)

	var avgAccuracy float64
	if len(sessions) > 0 {
		avgAccuracy = accuracySum / float64(len(sessions))
	}

	var favorite string
	best := 0
	for pose, count := range poseCounts {
		if count > best || (count == best && pose < favorite) {
			favorite = pose
			best = count
		}
	}

	name, desc := LevelName(progress.Level)
	return &models.UserStatsResponse{
		Progress:              *progress,
		AverageAccuracy:       avgAccuracy,
		FavoritePose:          favorite,
		WeeklyStats:           weekly,
		LevelName:             name,
		LevelDescription:      desc,
		NextLevelXP:           NextLevelXP(progress.XPTotal),
		AchievementsUnlocked:  len(achievements),
		AchievementsAvailable: len(Achievements),
	}, nil
}

func (s *Service) GetGlobalStats() (*models.GlobalStatsResponse, error) {
	return s.store.GlobalStats()
}

// ── User Provisioning ───────────────────────────────────

// CreateUser provisions a zero-state progress record. Re-creating an
// existing user is rejected.
func (s *Service) CreateUser(req *models.CreateUserRequest) (*models.UserProgress, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	created, err := s.store.CreateProgress(req.UserID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: user %s", ErrAlreadyExists, req.UserID)
	}
	return s.store.GetOrCreateProgress(req.UserID)
}
