package mastery

import "testing"

func TestTargetForDirection(t *testing.T) {
	tests := []struct {
		intent Intent
		want   Direction
	}{
		{IntentRemediate, DirectionEasier},
		{IntentTeach, DirectionSame},
		{IntentPractice, DirectionSame},
		{IntentAssess, DirectionHarder},
	}
	for _, tc := range tests {
		got := TargetFor(tc.intent, 2, DefaultDifficultyCeiling)
		if got.Direction != tc.want {
			t.Errorf("%s: direction = %q, want %q", tc.intent, got.Direction, tc.want)
		}
	}
}

func TestTargetBandClamps(t *testing.T) {
	tests := []struct {
		current, ceiling   int
		wantMin, wantMax   int
	}{
		{1, 4, 1, 2},
		{2, 4, 1, 3},
		{4, 4, 3, 4},
		{3, 3, 2, 3},
	}
	for _, tc := range tests {
		got := TargetFor(IntentPractice, tc.current, tc.ceiling)
		if got.MinDifficulty != tc.wantMin || got.MaxDifficulty != tc.wantMax {
			t.Errorf("current %d ceiling %d: band [%d, %d], want [%d, %d]",
				tc.current, tc.ceiling, got.MinDifficulty, got.MaxDifficulty, tc.wantMin, tc.wantMax)
		}
	}
}

func TestTargetContains(t *testing.T) {
	target := TargetFor(IntentPractice, 2, 4)
	for d, want := range map[int]bool{1: true, 2: true, 3: true, 4: false, 0: false} {
		if got := target.Contains(d); got != want {
			t.Errorf("Contains(%d) = %v, want %v", d, got, want)
		}
	}
}
