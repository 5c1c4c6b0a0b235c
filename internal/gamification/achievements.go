package gamification

import (
	"sort"

	"github.com/yogaflow/backend/internal/models"
)

// Achievement categories.
const (
	CategoryPractice = "practice"
	CategoryPose     = "pose"
	CategoryTime     = "time"
	CategoryStreak   = "streak"
)

// AchievementDef defines a single achievement.
type AchievementDef struct {
	Name        string
	Description string
	Category    string
}

// Achievements maps achievement keys to their definitions.
var Achievements = map[string]AchievementDef{
	"first_session": {Name: "First Steps", Description: "Complete your first yoga session", Category: CategoryPractice},
	"sessions_10":   {Name: "Regular", Description: "Complete 10 sessions", Category: CategoryPractice},
	"sessions_50":   {Name: "Devoted", Description: "Complete 50 sessions", Category: CategoryPractice},
	"sessions_100":  {Name: "Centurion", Description: "Complete 100 sessions", Category: CategoryPractice},
	"streak_3":      {Name: "Getting Started", Description: "Practice 3 days in a row", Category: CategoryStreak},
	"week_streak":   {Name: "Consistent Practice", Description: "Practice for 7 days in a row", Category: CategoryStreak},
	"streak_14":     {Name: "Two Week Flow", Description: "Practice 14 days in a row", Category: CategoryStreak},
	"streak_30":     {Name: "Monthly Devotion", Description: "Practice 30 days in a row", Category: CategoryStreak},
	"pose_5":        {Name: "Explorer", Description: "Practice 5 different poses", Category: CategoryPose},
	"pose_master":   {Name: "Pose Master", Description: "Master 10 different poses", Category: CategoryPose},
	"pose_20":       {Name: "Asana Collector", Description: "Practice 20 different poses", Category: CategoryPose},
	"hour_practice": {Name: "Hour of Power", Description: "Practice for a total of 60 minutes", Category: CategoryTime},
	"ten_hours":     {Name: "Deep Practice", Description: "Practice for a total of 10 hours", Category: CategoryTime},
}

// CheckAchievements returns every achievement key the user currently
// qualifies for, based on cumulative progress. It is re-run in full on each
// submission; the caller filters out keys that are already unlocked.
func CheckAchievements(p *models.UserProgress) []string {
	var earned []string

	// Session milestones
	if p.SessionsCompleted >= 1 {
		earned = append(earned, "first_session")
	}
	if p.SessionsCompleted >= 10 {
		earned = append(earned, "sessions_10")
	}
	if p.SessionsCompleted >= 50 {
		earned = append(earned, "sessions_50")
	}
	if p.SessionsCompleted >= 100 {
		earned = append(earned, "sessions_100")
	}

	// Streak milestones
	if p.CurrentStreakDays >= 3 {
		earned = append(earned, "streak_3")
	}
	if p.CurrentStreakDays >= 7 {
		earned = append(earned, "week_streak")
	}
	if p.CurrentStreakDays >= 14 {
		earned = append(earned, "streak_14")
	}
	if p.CurrentStreakDays >= 30 {
		earned = append(earned, "streak_30")
	}

	// Pose milestones
	if len(p.PosesPracticed) >= 5 {
		earned = append(earned, "pose_5")
	}
	if len(p.PosesPracticed) >= 10 {
		earned = append(earned, "pose_master")
	}
	if len(p.PosesPracticed) >= 20 {
		earned = append(earned, "pose_20")
	}

	// Practice time milestones
	if p.TotalPracticeSeconds >= 60*60 {
		earned = append(earned, "hour_practice")
	}
	if p.TotalPracticeSeconds >= 10*60*60 {
		earned = append(earned, "ten_hours")
	}

	return earned
}

// CatalogList returns the full catalog in stable (id-sorted) order.
func CatalogList() []models.AchievementInfo {
	ids := make([]string, 0, len(Achievements))
	for id := range Achievements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	list := make([]models.AchievementInfo, 0, len(ids))
	for _, id := range ids {
		def := Achievements[id]
		list = append(list, models.AchievementInfo{
			AchievementID: id,
			Name:          def.Name,
			Description:   def.Description,
			Category:      def.Category,
		})
	}
	return list
}
