package gamification

import (
	"testing"
	"time"
)

func TestClampAccuracy(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.85, 0.85},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := ClampAccuracy(tt.in); got != tt.want {
			t.Errorf("ClampAccuracy(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDurationBonus(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{-10, 0},
		{0, 0},
		{59, 0},
		{60, 1},
		{300, 5},
		{3600, 60}, // uncapped
	}
	for _, tt := range tests {
		if got := DurationBonus(tt.seconds); got != tt.want {
			t.Errorf("DurationBonus(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestAccuracyBonus(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     int
	}{
		{0, 0},
		{0.5, 10},
		{0.85, 17},
		{0.874, 17}, // rounds, not truncates
		{0.875, 18},
		{1, 20},
		{2.5, 20},
	}
	for _, tt := range tests {
		if got := AccuracyBonus(tt.accuracy); got != tt.want {
			t.Errorf("AccuracyBonus(%v) = %d, want %d", tt.accuracy, got, tt.want)
		}
	}
}

func TestStreakBonus(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0},
		{1, 2},
		{5, 10},
		{10, 20},
		{11, 20},
		{100, 20},
	}
	for _, tt := range tests {
		if got := StreakBonus(tt.days); got != tt.want {
			t.Errorf("StreakBonus(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestUpdateStreak(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}
	dayPtr := func(s string) *time.Time {
		d := day(s)
		return &d
	}

	tests := []struct {
		name         string
		current      int
		longest      int
		lastPractice *time.Time
		session      time.Time
		wantCurrent  int
		wantLongest  int
	}{
		{"first ever session", 0, 0, nil, day("2026-03-10"), 1, 1},
		{"next day extends", 4, 4, dayPtr("2026-03-09"), day("2026-03-10"), 5, 5},
		{"same day no change", 4, 6, dayPtr("2026-03-10"), day("2026-03-10"), 4, 6},
		{"two day gap resets", 9, 9, dayPtr("2026-03-07"), day("2026-03-10"), 1, 9},
		{"longest preserved on reset", 2, 14, dayPtr("2026-03-01"), day("2026-03-10"), 1, 14},
		{"late evening still next day", 3, 3, dayPtr("2026-03-09"), day("2026-03-10").Add(23 * time.Hour), 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := UpdateStreak(tt.current, tt.longest, tt.lastPractice, tt.session)
			if current != tt.wantCurrent || longest != tt.wantLongest {
				t.Errorf("UpdateStreak() = (%d, %d), want (%d, %d)",
					current, longest, tt.wantCurrent, tt.wantLongest)
			}
		})
	}
}

func TestCalculateSessionXP(t *testing.T) {
	// 5 minutes at 0.85 accuracy on a first-ever session:
	// 10 base + 5 duration + 17 accuracy + 2 streak + 25 new pose = 59.
	b := CalculateSessionXP(300, 0.85, 1, true)
	if b.Base != 10 || b.DurationBonus != 5 || b.AccuracyBonus != 17 ||
		b.StreakBonus != 2 || b.NewPoseBonus != 25 {
		t.Errorf("unexpected breakdown: %+v", b)
	}
	if b.Total != 59 {
		t.Errorf("Total = %d, want 59", b.Total)
	}

	// Repeat pose on a long streak: no new-pose bonus, streak capped.
	b = CalculateSessionXP(600, 1.0, 30, false)
	want := 10 + 10 + 20 + 20
	if b.NewPoseBonus != 0 {
		t.Errorf("NewPoseBonus = %d, want 0", b.NewPoseBonus)
	}
	if b.Total != want {
		t.Errorf("Total = %d, want %d", b.Total, want)
	}
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2026, 3, 10, 18, 45, 12, 999, time.FixedZone("JST", 9*3600))
	got := TruncateToDay(in)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("TruncateToDay(%v) = %v, want %v", in, got, want)
	}
}
