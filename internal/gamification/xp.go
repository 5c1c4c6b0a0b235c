package gamification

import (
	"math"
	"time"

	"github.com/yogaflow/backend/internal/models"
)

const (
	baseSessionXP = 10
	accuracyXPCap = 20
	streakXPCap   = 20
	newPoseXP     = 25
)

// ClampAccuracy normalizes an accuracy score into [0, 1]. Out-of-range input
// is clamped rather than rejected.
func ClampAccuracy(accuracy float64) float64 {
	if accuracy < 0 {
		return 0
	}
	if accuracy > 1 {
		return 1
	}
	return accuracy
}

// DurationBonus awards 1 XP per full minute of practice, uncapped.
func DurationBonus(durationSeconds int) int {
	if durationSeconds < 0 {
		return 0
	}
	return durationSeconds / 60
}

// AccuracyBonus awards up to 20 XP proportional to pose accuracy.
func AccuracyBonus(accuracy float64) int {
	bonus := int(math.Round(ClampAccuracy(accuracy) * 20))
	if bonus > accuracyXPCap {
		return accuracyXPCap
	}
	return bonus
}

// StreakBonus awards 2 XP per consecutive practice day, capped at 20.
// streakDays must already reflect the session being scored.
func StreakBonus(streakDays int) int {
	bonus := 2 * streakDays
	if bonus > streakXPCap {
		return streakXPCap
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}

// UpdateStreak applies the calendar-day streak policy: a session exactly one
// day after the last practice extends the streak, a second session the same
// day leaves it unchanged, and anything else starts over at 1.
func UpdateStreak(current, longest int, lastPractice *time.Time, sessionTime time.Time) (int, int) {
	day := TruncateToDay(sessionTime)

	if lastPractice == nil {
		current = 1
	} else {
		switch daysBetween(TruncateToDay(*lastPractice), day) {
		case 0:
			// Same day — no change
		case 1:
			current++
		default:
			current = 1
		}
	}

	if current > longest {
		longest = current
	}
	return current, longest
}

// CalculateSessionXP computes the full XP award for one session. streakDays
// must be the post-update streak value so sustained practice is rewarded.
func CalculateSessionXP(durationSeconds int, accuracy float64, streakDays int, newPose bool) models.XPBreakdown {
	b := models.XPBreakdown{
		Base:          baseSessionXP,
		DurationBonus: DurationBonus(durationSeconds),
		AccuracyBonus: AccuracyBonus(accuracy),
		StreakBonus:   StreakBonus(streakDays),
	}
	if newPose {
		b.NewPoseBonus = newPoseXP
	}
	b.Total = b.Base + b.DurationBonus + b.AccuracyBonus + b.StreakBonus + b.NewPoseBonus
	return b
}

// TruncateToDay normalizes a timestamp to midnight UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
