package gamification

import (
	"testing"
	"time"

	"github.com/yogaflow/backend/internal/models"
)

func datePtr(s string) *time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return &d
}

func TestRankLeaderboardOrdering(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "carol", XPTotal: 50, LastPracticeDate: datePtr("2026-03-01")},
		{UserID: "alice", XPTotal: 200, LastPracticeDate: datePtr("2026-03-05")},
		{UserID: "bob", XPTotal: 120, LastPracticeDate: datePtr("2026-03-04")},
	}

	ranked := RankLeaderboard(entries, 0)
	wantOrder := []string{"alice", "bob", "carol"}
	for i, want := range wantOrder {
		if ranked[i].UserID != want {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].UserID, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d: rank = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRankLeaderboardTieBreak(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "later", XPTotal: 100, LastPracticeDate: datePtr("2026-03-08")},
		{UserID: "never", XPTotal: 100},
		{UserID: "earlier", XPTotal: 100, LastPracticeDate: datePtr("2026-03-02")},
	}

	ranked := RankLeaderboard(entries, 0)
	wantOrder := []string{"earlier", "later", "never"}
	for i, want := range wantOrder {
		if ranked[i].UserID != want {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].UserID, want)
		}
	}
}

func TestRankLeaderboardTopN(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "a", XPTotal: 30},
		{UserID: "b", XPTotal: 20},
		{UserID: "c", XPTotal: 10},
	}

	ranked := RankLeaderboard(entries, 2)
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].UserID != "a" || ranked[1].UserID != "b" {
		t.Errorf("unexpected top 2: %v", ranked)
	}

	if got := RankLeaderboard(entries, 10); len(got) != 3 {
		t.Errorf("topN beyond length: len = %d, want 3", len(got))
	}
	if got := RankLeaderboard(nil, 5); len(got) != 0 {
		t.Errorf("empty input: len = %d, want 0", len(got))
	}
}

func TestRankLeaderboardDoesNotMutateInput(t *testing.T) {
	entries := []models.LeaderboardEntry{
		{UserID: "b", XPTotal: 20},
		{UserID: "a", XPTotal: 30},
	}

	RankLeaderboard(entries, 0)
	if entries[0].UserID != "b" || entries[0].Rank != 0 {
		t.Errorf("input slice mutated: %v", entries)
	}
}
