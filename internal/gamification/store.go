package gamification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/yogaflow/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// BeginTx starts a transaction for a submission's failure unit: the session
// record and the progress mutation commit or roll back together.
func (s *Store) BeginTx() (*sql.Tx, error) {
	return s.db.Begin()
}

// ── User Progress ───────────────────────────────────────

const progressColumns = `user_id, level, xp_total, current_streak, longest_streak,
	last_practice_date, sessions_completed, total_practice_seconds,
	poses_practiced, created_at, updated_at`

func scanProgress(row *sql.Row) (*models.UserProgress, error) {
	var p models.UserProgress
	var lastPractice sql.NullTime
	var poses pq.StringArray

	err := row.Scan(&p.UserID, &p.Level, &p.XPTotal, &p.CurrentStreakDays, &p.LongestStreakDays,
		&lastPractice, &p.SessionsCompleted, &p.TotalPracticeSeconds,
		&poses, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if lastPractice.Valid {
		d := lastPractice.Time
		p.LastPracticeDate = &d
	}
	p.PosesPracticed = []string(poses)
	if p.PosesPracticed == nil {
		p.PosesPracticed = []string{}
	}
	return &p, nil
}

// GetOrCreateProgress returns the user's progress row, creating the
// zero-state record on first access.
func (s *Store) GetOrCreateProgress(userID string) (*models.UserProgress, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	row := s.db.QueryRow(
		`SELECT `+progressColumns+` FROM user_progress WHERE user_id = $1`,
		userID,
	)
	p, err := scanProgress(row)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

// CreateProgress inserts a zero-state row and reports whether it was new.
func (s *Store) CreateProgress(userID string) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO user_progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return false, fmt.Errorf("create progress: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) UpdateProgressTx(tx *sql.Tx, p *models.UserProgress) error {
	var lastPractice interface{}
	if p.LastPracticeDate != nil {
		lastPractice = *p.LastPracticeDate
	}
	_, err := tx.Exec(
		`UPDATE user_progress SET
		    level = $2, xp_total = $3,
		    current_streak = $4, longest_streak = $5, last_practice_date = $6,
		    sessions_completed = $7, total_practice_seconds = $8,
		    poses_practiced = $9, updated_at = NOW()
		 WHERE user_id = $1`,
		p.UserID, p.Level, p.XPTotal,
		p.CurrentStreakDays, p.LongestStreakDays, lastPractice,
		p.SessionsCompleted, p.TotalPracticeSeconds,
		pq.Array(p.PosesPracticed),
	)
	return err
}

// ListProgress returns a snapshot of every user's ranking fields.
func (s *Store) ListProgress() ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT user_id, level, xp_total, last_practice_date FROM user_progress`,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var lastPractice sql.NullTime
		if err := rows.Scan(&e.UserID, &e.Level, &e.XPTotal, &lastPractice); err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		if lastPractice.Valid {
			d := lastPractice.Time
			e.LastPracticeDate = &d
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ── Pose Sessions ───────────────────────────────────────

func (s *Store) SaveSessionTx(tx *sql.Tx, sess *models.PoseSession) error {
	_, err := tx.Exec(
		`INSERT INTO pose_sessions
		    (session_id, user_id, pose_name, duration_seconds, accuracy,
		     feedback_positive, feedback_negative, feedback_neutral, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sess.SessionID, sess.UserID, sess.PoseName, sess.DurationSeconds, sess.Accuracy,
		sess.Feedback.Positive, sess.Feedback.Negative, sess.Feedback.Neutral, sess.CreatedAt,
	)
	return err
}

func (s *Store) GetRecentSessions(userID string, limit int) ([]models.PoseSession, error) {
	rows, err := s.db.Query(
		`SELECT session_id, user_id, pose_name, duration_seconds, accuracy,
		        feedback_positive, feedback_negative, feedback_neutral, created_at
		 FROM pose_sessions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.PoseSession{}
	for rows.Next() {
		var sess models.PoseSession
		if err := rows.Scan(&sess.SessionID, &sess.UserID, &sess.PoseName,
			&sess.DurationSeconds, &sess.Accuracy,
			&sess.Feedback.Positive, &sess.Feedback.Negative, &sess.Feedback.Neutral,
			&sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// ── Achievements ────────────────────────────────────────

// UnlockAchievementTx records the unlock and reports whether it was fresh.
// The unique (user_id, achievement) key makes double-grant impossible.
func (s *Store) UnlockAchievementTx(tx *sql.Tx, userID, achievement string) (bool, error) {
	result, err := tx.Exec(
		`INSERT INTO user_achievements (user_id, achievement) VALUES ($1, $2)
		 ON CONFLICT (user_id, achievement) DO NOTHING`,
		userID, achievement,
	)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) GetUserAchievements(userID string) ([]models.UserAchievement, error) {
	rows, err := s.db.Query(
		`SELECT user_id, achievement, unlocked_at
		 FROM user_achievements WHERE user_id = $1 ORDER BY unlocked_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get achievements: %w", err)
	}
	defer rows.Close()

	achievements := []models.UserAchievement{}
	for rows.Next() {
		var a models.UserAchievement
		if err := rows.Scan(&a.UserID, &a.AchievementID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// ── Daily Challenges ────────────────────────────────────

// GetOrCreateChallenge materializes the challenge row for its date. Only one
// writer wins the insert; because generation is deterministic, every caller
// reads back the same challenge.
func (s *Store) GetOrCreateChallenge(ch models.DailyChallenge) (*models.DailyChallenge, error) {
	var targetPose interface{}
	if ch.TargetPose != "" {
		targetPose = ch.TargetPose
	}
	_, err := s.db.Exec(
		`INSERT INTO daily_challenges (challenge_date, name, description, target_pose, target_minutes, reward_xp)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (challenge_date) DO NOTHING`,
		ch.ChallengeDate, ch.Name, ch.Description, targetPose, ch.TargetMinutes, ch.RewardXP,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert challenge: %w", err)
	}

	var out models.DailyChallenge
	var date time.Time
	var pose sql.NullString
	err = s.db.QueryRow(
		`SELECT challenge_date, name, description, target_pose, target_minutes, reward_xp
		 FROM daily_challenges WHERE challenge_date = $1`,
		ch.ChallengeDate,
	).Scan(&date, &out.Name, &out.Description, &pose, &out.TargetMinutes, &out.RewardXP)
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	out.ChallengeDate = date.Format("2006-01-02")
	if pose.Valid {
		out.TargetPose = pose.String
	}
	return &out, nil
}

// CompleteChallengeTx records the completion and reports whether it was the
// first for this (user, date) pair.
func (s *Store) CompleteChallengeTx(tx *sql.Tx, userID, date string) (bool, error) {
	result, err := tx.Exec(
		`INSERT INTO challenge_completions (user_id, challenge_date) VALUES ($1, $2)
		 ON CONFLICT (user_id, challenge_date) DO NOTHING`,
		userID, date,
	)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// ── Global Stats ────────────────────────────────────────

func (s *Store) GlobalStats() (*models.GlobalStatsResponse, error) {
	var stats models.GlobalStatsResponse

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM user_progress`).Scan(&stats.TotalUsers); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM pose_sessions`).Scan(&stats.TotalSessions); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM user_progress WHERE last_practice_date = CURRENT_DATE`,
	).Scan(&stats.ActiveUsersToday); err != nil {
		return nil, fmt.Errorf("count active users: %w", err)
	}

	err := s.db.QueryRow(
		`SELECT pose_name FROM pose_sessions
		 GROUP BY pose_name ORDER BY COUNT(*) DESC, pose_name LIMIT 1`,
	).Scan(&stats.MostPopularPose)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("most popular pose: %w", err)
	}

	return &stats, nil
}
