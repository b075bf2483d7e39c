package gamesession

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw, maxRaw int
		bonus       float64
		want        int
	}{
		{3, 5, 0.4, 680},
		{0, 5, 0, 0},
		{5, 5, 1, 1200},
		{5, 5, 0, 1000},
		{1, 2, 0.5, 600},
		{2, 3, 0.14, 695},
	}
	for _, c := range cases {
		got := Normalize(c.raw, c.maxRaw, c.bonus)
		if got != c.want {
			t.Errorf("Normalize(%d, %d, %v) = %d, want %d", c.raw, c.maxRaw, c.bonus, got, c.want)
		}
	}
}

func TestNormalizeIsPure(t *testing.T) {
	for i := 0; i < 100; i++ {
		if Normalize(3, 5, 0.4) != 680 {
			t.Fatal("Normalize returned a different value for the same inputs")
		}
	}
}

func TestNormalizeDegenerateInputs(t *testing.T) {
	if Normalize(3, 0, 0.4) != 0 {
		t.Error("Expected 0 for zero max score")
	}
	if Normalize(3, -1, 0.4) != 0 {
		t.Error("Expected 0 for negative max score")
	}
	if got := Normalize(5, 5, 2.5); got != 1200 {
		t.Errorf("Expected bonus clamped to 1, got score %d", got)
	}
	if got := Normalize(5, 5, -3); got != 1000 {
		t.Errorf("Expected negative bonus clamped to 0, got score %d", got)
	}
}

func TestRoundBonus(t *testing.T) {
	// 7s left on a 10s limit across 5 rounds
	got := RoundBonus(7000, 10000, 5)
	if math.Abs(got-0.14) > 1e-9 {
		t.Errorf("RoundBonus(7000, 10000, 5) = %v, want 0.14", got)
	}

	if RoundBonus(-500, 10000, 5) != 0 {
		t.Error("Expected 0 bonus for negative remaining time")
	}
	if got := RoundBonus(20000, 10000, 5); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Expected per-round fraction clamped to 1, got %v", got)
	}
	if RoundBonus(7000, 0, 5) != 0 {
		t.Error("Expected 0 bonus for zero time limit")
	}
	if RoundBonus(7000, 10000, 0) != 0 {
		t.Error("Expected 0 bonus for zero round count")
	}
}

func TestClampBonus(t *testing.T) {
	if clampBonus(0.8, 0.5) != 0.5 {
		t.Error("Expected bonus capped at maxBonus")
	}
	if clampBonus(0.3, 0.5) != 0.3 {
		t.Error("Expected bonus below cap unchanged")
	}
	if clampBonus(0.8, 0) != 0.8 {
		t.Error("Expected default cap of 1 when maxBonus unset")
	}
	if clampBonus(-0.1, 0.5) != 0 {
		t.Error("Expected negative bonus clamped to 0")
	}
}
