package strategy

import (
	"reflect"
	"testing"
)

func TestNewMomentumStreakRejectsBadParams(t *testing.T) {
	if _, err := NewMomentumStreak(0, 2, 1); err == nil {
		t.Error("NewMomentumStreak(0, 2, 1) = nil error, want error")
	}
	if _, err := NewMomentumStreak(50, 0, 1); err == nil {
		t.Error("NewMomentumStreak(50, 0, 1) = nil error, want error")
	}
}

func TestMomentumStreakOverrideKeepsLong(t *testing.T) {
	s, err := NewMomentumStreak(3, 2, 1)
	if err != nil {
		t.Fatalf("NewMomentumStreak: %v", err)
	}

	// The streak entry fires at index 2, then from index 4 the 3-day
	// return turns positive and the override holds the position long
	// straight through the up days that would otherwise exit it.
	close := []float64{100, 99, 98, 97, 100, 103, 106, 107}
	want := []float64{0, 0, 0, 1, 1, 1, 1, 1}

	got, err := s.Positions(close)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions = %v, want %v", got, want)
	}
}

// With a lookback longer than the series the momentum filter never fires and
// the engine degenerates to the plain streak rules.
func TestMomentumStreakDegeneratesToStreak(t *testing.T) {
	momStreak, err := NewMomentumStreak(1000, 2, 1)
	if err != nil {
		t.Fatalf("NewMomentumStreak: %v", err)
	}
	streak, err := NewStreak(2, 1)
	if err != nil {
		t.Fatalf("NewStreak: %v", err)
	}

	close := []float64{100, 98, 96, 94, 99, 101, 103, 101, 99, 104}

	got, err := momStreak.Positions(close)
	if err != nil {
		t.Fatalf("MomentumStreak.Positions: %v", err)
	}
	want, err := streak.Positions(close)
	if err != nil {
		t.Fatalf("Streak.Positions: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions = %v, want %v", got, want)
	}
}
