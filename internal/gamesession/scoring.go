package gamesession

import "math"

// Normalize maps a raw score onto the shared 0-1200 scale used by every
// game type: a fraction of 1000 for correctness plus up to 200 for unused
// round time. Pure function of its inputs so replays always reproduce the
// stored value.
func Normalize(raw, maxRaw int, bonus float64) int {
	if maxRaw <= 0 {
		return 0
	}
	if bonus < 0 {
		bonus = 0
	}
	if bonus > 1 {
		bonus = 1
	}
	return int(math.Round(float64(raw)/float64(maxRaw)*1000 + bonus*200))
}

// RoundBonus is the time-bonus fraction contributed by a single round:
// the unused share of the round's time limit divided by the round count,
// clamped to [0,1] before division.
func RoundBonus(remainingMS, limitMS, roundCount int) float64 {
	if limitMS <= 0 || roundCount <= 0 {
		return 0
	}
	frac := float64(remainingMS) / float64(limitMS)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac / float64(roundCount)
}

// clampBonus bounds an accumulated bonus fraction to [0, maxBonus].
// maxBonus <= 0 means the default cap of 1.
func clampBonus(bonus, maxBonus float64) float64 {
	if maxBonus <= 0 || maxBonus > 1 {
		maxBonus = 1
	}
	if bonus < 0 {
		return 0
	}
	if bonus > maxBonus {
		return maxBonus
	}
	return bonus
}
