package gamesession

import (
	"strings"
	"time"

	"adventcal/internal/model"
)

// Rules parameterize the shared state machine per game type: how answers
// are compared, how fine the timer ticks, how long a round result stays on
// screen and whether a single wrong answer ends the whole session.
type Rules struct {
	Type         model.GameType
	TickInterval time.Duration
	ResultDelay  time.Duration
	Elimination  bool
	Match        func(r model.Round, answer string) bool
}

// RulesFor returns the rules for a game type. Unknown types fall back to
// quiz behavior so a stale config still runs instead of crashing.
func RulesFor(t model.GameType) Rules {
	switch t {
	case model.GameInterview:
		// single-failure: one wrong answer eliminates with score 0
		return Rules{
			Type:         t,
			TickInterval: time.Second,
			ResultDelay:  1500 * time.Millisecond,
			Elimination:  true,
			Match:        matchExact,
		}
	case model.GameWordScramble:
		return Rules{
			Type:         t,
			TickInterval: 100 * time.Millisecond,
			ResultDelay:  1500 * time.Millisecond,
			Match:        matchFolded,
		}
	case model.GameEmojiQuiz:
		return Rules{
			Type:         t,
			TickInterval: time.Second,
			ResultDelay:  2 * time.Second,
			Match:        matchFolded,
		}
	case model.GameSongGuess:
		return Rules{
			Type:         t,
			TickInterval: time.Second,
			ResultDelay:  2 * time.Second,
			Match:        matchExact,
		}
	case model.GameMatchPair:
		return Rules{
			Type:         t,
			TickInterval: 100 * time.Millisecond,
			ResultDelay:  1500 * time.Millisecond,
			Match:        matchPair,
		}
	default:
		return Rules{
			Type:         model.GameQuiz,
			TickInterval: time.Second,
			ResultDelay:  1500 * time.Millisecond,
			Match:        matchExact,
		}
	}
}

func matchExact(r model.Round, answer string) bool {
	return answer != "" && answer == r.Answer
}

func matchFolded(r model.Round, answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a != "" && a == strings.ToLower(strings.TrimSpace(r.Answer))
}

// matchPair accepts "left|right" in either order against the round's pair
func matchPair(r model.Round, answer string) bool {
	parts := strings.SplitN(answer, "|", 2)
	if len(parts) != 2 {
		return false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return false
	}
	return (a == r.PairLeft && b == r.PairRight) || (a == r.PairRight && b == r.PairLeft)
}
