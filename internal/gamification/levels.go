package gamification

// MaxLevel is the progression ceiling; XP keeps accruing past it with no
// further level transitions.
const MaxLevel = 10

// levelThresholds holds the minimum cumulative XP for each level; index i is
// level i+1.
var levelThresholds = [MaxLevel]int64{0, 100, 300, 600, 1000, 1500, 2200, 3000, 4000, 5000}

type levelInfo struct {
	Name        string
	Description string
}

var levelInfos = [MaxLevel]levelInfo{
	{"Beginner", "Starting your yoga journey"},
	{"Novice", "Getting the hang of it"},
	{"Apprentice", "Building your practice"},
	{"Practitioner", "Regular practice"},
	{"Dedicated", "Committed to yoga"},
	{"Advanced", "Advanced practitioner"},
	{"Expert", "Yoga expert"},
	{"Master", "Yoga master"},
	{"Guru", "Yoga guru"},
	{"Enlightened", "Enlightened being"},
}

// LevelForXP returns the highest level whose threshold is at or below the
// given cumulative XP.
func LevelForXP(xpTotal int64) int {
	level := 1
	for i, min := range levelThresholds {
		if xpTotal >= min {
			level = i + 1
		}
	}
	return level
}

// LevelName returns the display name and description for a level. Levels
// outside [1, MaxLevel] fall back to the nearest bound.
func LevelName(level int) (string, string) {
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	info := levelInfos[level-1]
	return info.Name, info.Description
}

// NextLevelXP returns how much more XP is needed to reach the next level, or
// nil at the ceiling.
func NextLevelXP(xpTotal int64) *int64 {
	level := LevelForXP(xpTotal)
	if level >= MaxLevel {
		return nil
	}
	remaining := levelThresholds[level] - xpTotal
	return &remaining
}
