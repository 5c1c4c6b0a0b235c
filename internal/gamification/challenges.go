package gamification

import (
	"fmt"
	"hash/fnv"

	"github.com/yogaflow/backend/internal/models"
)

// challengePoses is the pool for pose-of-the-day challenges. Names follow the
// classifier's label set.
var challengePoses = []string{
	"Adho Mukha Svanasana",
	"Vrksasana",
	"Virabhadrasana Two",
	"Trikonasana",
	"Balasana",
	"Bakasana",
	"Ardha Chandrasana",
	"Setu Bandha Sarvangasana",
	"Utkatasana",
	"Navasana",
	"Bhujangasana",
	"Garudasana",
}

const (
	poseChallengeRewardXP    = 50
	minutesChallengeRewardXP = 40
)

// GenerateDailyChallenge derives the challenge for a calendar date
// ("2006-01-02"). The same date always yields the same challenge, so
// concurrent first accessors converge on identical rows.
func GenerateDailyChallenge(date string) models.DailyChallenge {
	h := fnv.New32a()
	h.Write([]byte(date))
	sum := h.Sum32()

	if sum%2 == 0 {
		pose := challengePoses[int(sum/2)%len(challengePoses)]
		return models.DailyChallenge{
			ChallengeDate: date,
			Name:          "Pose of the Day",
			Description:   fmt.Sprintf("Hold %s with your best form today", pose),
			TargetPose:    pose,
			RewardXP:      poseChallengeRewardXP,
		}
	}

	minutes := 10 + int(sum/2)%3*5 // 10, 15 or 20 minutes
	return models.DailyChallenge{
		ChallengeDate: date,
		Name:          "Practice Goal",
		Description:   fmt.Sprintf("Practice for %d minutes today", minutes),
		TargetMinutes: minutes,
		RewardXP:      minutesChallengeRewardXP,
	}
}
