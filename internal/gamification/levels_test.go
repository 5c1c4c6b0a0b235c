package gamification

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{600, 4},
		{1000, 5},
		{1500, 6},
		{2200, 7},
		{3000, 8},
		{4000, 9},
		{4999, 9},
		{5000, 10},
		{1000000, 10},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Beginner"},
		{5, "Dedicated"},
		{10, "Enlightened"},
		{0, "Beginner"},     // clamped low
		{99, "Enlightened"}, // clamped high
	}
	for _, tt := range tests {
		name, desc := LevelName(tt.level)
		if name != tt.want {
			t.Errorf("LevelName(%d) = %q, want %q", tt.level, name, tt.want)
		}
		if desc == "" {
			t.Errorf("LevelName(%d) returned empty description", tt.level)
		}
	}
}

func TestNextLevelXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int64
	}{
		{0, 100},
		{40, 60},
		{100, 200},
		{4500, 500},
	}
	for _, tt := range tests {
		got := NextLevelXP(tt.xp)
		if got == nil {
			t.Fatalf("NextLevelXP(%d) = nil, want %d", tt.xp, tt.want)
		}
		if *got != tt.want {
			t.Errorf("NextLevelXP(%d) = %d, want %d", tt.xp, *got, tt.want)
		}
	}

	if got := NextLevelXP(5000); got != nil {
		t.Errorf("NextLevelXP(5000) = %d, want nil at max level", *got)
	}
	if got := NextLevelXP(123456); got != nil {
		t.Errorf("NextLevelXP(123456) = %d, want nil at max level", *got)
	}
}
