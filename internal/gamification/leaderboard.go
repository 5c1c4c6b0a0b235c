package gamification

import (
	"sort"

	"github.com/yogaflow/backend/internal/models"
)

// RankLeaderboard orders progress snapshots by xp_total descending, breaking
// ties in favor of the earlier last practice date (earlier-active users rank
// above later joiners at equal XP). Ranks are assigned 1-based after sorting;
// topN > 0 truncates the result.
func RankLeaderboard(entries []models.LeaderboardEntry, topN int) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.XPTotal != b.XPTotal {
			return a.XPTotal > b.XPTotal
		}
		// Users who never practiced sort last within a tie.
		switch {
		case a.LastPracticeDate == nil:
			return false
		case b.LastPracticeDate == nil:
			return true
		default:
			return a.LastPracticeDate.Before(*b.LastPracticeDate)
		}
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
