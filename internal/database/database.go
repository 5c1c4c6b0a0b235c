package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "yoga_user")
	password := getEnv("DB_PASSWORD", "yoga_password")
	dbname := getEnv("DB_NAME", "yoga_app")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS user_progress (
		user_id                VARCHAR(100) PRIMARY KEY,
		level                  INT NOT NULL DEFAULT 1,
		xp_total               BIGINT NOT NULL DEFAULT 0,
		current_streak         INT NOT NULL DEFAULT 0,
		longest_streak         INT NOT NULL DEFAULT 0,
		last_practice_date     DATE,
		sessions_completed     INT NOT NULL DEFAULT 0,
		total_practice_seconds BIGINT NOT NULL DEFAULT 0,
		poses_practiced        TEXT[] NOT NULL DEFAULT '{}',
		created_at             TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at             TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS pose_sessions (
		session_id        UUID PRIMARY KEY,
		user_id           VARCHAR(100) NOT NULL,
		pose_name         VARCHAR(100) NOT NULL,
		duration_seconds  INT NOT NULL CHECK (duration_seconds > 0),
		accuracy          DOUBLE PRECISION NOT NULL CHECK (accuracy >= 0 AND accuracy <= 1),
		feedback_positive INT NOT NULL DEFAULT 0,
		feedback_negative INT NOT NULL DEFAULT 0,
		feedback_neutral  INT NOT NULL DEFAULT 0,
		created_at        TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON pose_sessions(user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_pose ON pose_sessions(pose_name);

	CREATE TABLE IF NOT EXISTS user_achievements (
		id          BIGSERIAL PRIMARY KEY,
		user_id     VARCHAR(100) NOT NULL,
		achievement VARCHAR(100) NOT NULL,
		unlocked_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, achievement)
	);

	CREATE INDEX IF NOT EXISTS idx_achievements_user ON user_achievements(user_id);

	CREATE TABLE IF NOT EXISTS daily_challenges (
		challenge_date DATE PRIMARY KEY,
		name           VARCHAR(100) NOT NULL,
		description    TEXT NOT NULL,
		target_pose    VARCHAR(100),
		target_minutes INT NOT NULL DEFAULT 0,
		reward_xp      INT NOT NULL,
		created_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS challenge_completions (
		id             BIGSERIAL PRIMARY KEY,
		user_id        VARCHAR(100) NOT NULL,
		challenge_date DATE NOT NULL,
		completed_at   TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, challenge_date)
	);

	CREATE INDEX IF NOT EXISTS idx_completions_user ON challenge_completions(user_id);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
