package gamesession

import (
	"testing"
	"time"

	"adventcal/internal/model"
)

func TestRulesForKnownTypes(t *testing.T) {
	r := RulesFor(model.GameInterview)
	if !r.Elimination {
		t.Error("Expected interview rules to use elimination")
	}
	if r.TickInterval != time.Second {
		t.Errorf("Unexpected interview tick interval %v", r.TickInterval)
	}

	r = RulesFor(model.GameWordScramble)
	if r.Elimination {
		t.Error("Expected word scramble not to use elimination")
	}
	if r.TickInterval != 100*time.Millisecond {
		t.Errorf("Unexpected word scramble tick interval %v", r.TickInterval)
	}
}

func TestRulesForUnknownTypeFallsBack(t *testing.T) {
	r := RulesFor(model.GameType("tetris"))
	if r.Type != model.GameQuiz {
		t.Errorf("Expected quiz fallback, got %s", r.Type)
	}
	if r.Elimination {
		t.Error("Fallback rules must not eliminate")
	}
}

func TestMatchExact(t *testing.T) {
	round := model.Round{Answer: "Paris"}
	if !matchExact(round, "Paris") {
		t.Error("Exact match rejected")
	}
	if matchExact(round, "paris") {
		t.Error("Exact match must be case sensitive")
	}
	if matchExact(model.Round{}, "") {
		t.Error("Empty answer must never match")
	}
}

func TestMatchFolded(t *testing.T) {
	round := model.Round{Answer: "Tinsel"}
	cases := []struct {
		answer string
		want   bool
	}{
		{"tinsel", true},
		{"  TINSEL  ", true},
		{"tinsell", false},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := matchFolded(round, c.answer); got != c.want {
			t.Errorf("matchFolded(%q) = %v, want %v", c.answer, got, c.want)
		}
	}
}

func TestMatchPairOrderInsensitive(t *testing.T) {
	round := model.Round{PairLeft: "Rudolph", PairRight: "Red Nose"}
	if !matchPair(round, "Rudolph|Red Nose") {
		t.Error("Forward pair rejected")
	}
	if !matchPair(round, "Red Nose|Rudolph") {
		t.Error("Reversed pair rejected")
	}
	if matchPair(round, "Rudolph|Blitzen") {
		t.Error("Wrong pairing accepted")
	}
	if matchPair(round, "Rudolph") {
		t.Error("Single-sided answer accepted")
	}
	if matchPair(round, "|Red Nose") {
		t.Error("Empty side accepted")
	}
}
