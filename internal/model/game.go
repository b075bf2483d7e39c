package model

// GameType tags the kind of mini-game behind a calendar day
type GameType string

const (
	GameQuiz         GameType = "quiz"
	GameInterview    GameType = "interview"
	GameWordScramble GameType = "wordscramble"
	GameEmojiQuiz    GameType = "emojiquiz"
	GameSongGuess    GameType = "songguess"
	GameMatchPair    GameType = "matchpair"
)

// Valid reports whether t is a known game type
func (t GameType) Valid() bool {
	switch t {
	case GameQuiz, GameInterview, GameWordScramble, GameEmojiQuiz, GameSongGuess, GameMatchPair:
		return true
	}
	return false
}

// Round is one unit of play: a question, an image, a word or a pair set
type Round struct {
	Prompt   string   `json:"prompt" bson:"prompt"`
	ImageURL string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Options  []string `json:"options,omitempty" bson:"options,omitempty"`
	Answer   string   `json:"answer" bson:"answer"`
	// PairLeft/PairRight hold the two halves for matchpair rounds
	PairLeft  string `json:"pairLeft,omitempty" bson:"pairLeft,omitempty"`
	PairRight string `json:"pairRight,omitempty" bson:"pairRight,omitempty"`
}

// ScoringParams tune the per-game-type score formula
type ScoringParams struct {
	BasePoints    int     `json:"basePoints" bson:"basePoints"`
	TimeBonusRate float64 `json:"timeBonusRate" bson:"timeBonusRate"`
	MaxBonus      float64 `json:"maxBonus" bson:"maxBonus"`
}

// GameConfig is the immutable configuration a game session runs against.
// It is created once when a day is selected and discarded on navigation.
type GameConfig struct {
	Type             GameType      `json:"type" bson:"type"`
	Rounds           []Round       `json:"rounds" bson:"rounds"`
	RoundTimeLimitMS int           `json:"roundTimeLimitMs" bson:"roundTimeLimitMs"`
	Scoring          ScoringParams `json:"scoring" bson:"scoring"`
}

// DayInfo identifies a calendar day (1-24) and its display title
type DayInfo struct {
	Day   int    `json:"day" bson:"day"`
	Title string `json:"title" bson:"title"`
}

// DayConfig is the stored per-day game configuration (seeded into Mongo)
type DayConfig struct {
	ID     string     `json:"id" bson:"_id,omitempty"`
	Day    int        `json:"day" bson:"day"`
	Title  string     `json:"title" bson:"title"`
	Config GameConfig `json:"config" bson:"config"`
}

// SessionStart is the typed hand-off bundle written when a day is selected
// and read exactly once when the game mounts
type SessionStart struct {
	Day    int        `json:"day"`
	Title  string     `json:"title"`
	Config GameConfig `json:"config"`
}

// CalendarDay is one cell of the calendar view
type CalendarDay struct {
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Unlocked bool   `json:"unlocked"`
	GameType string `json:"gameType,omitempty"`
	Played   bool   `json:"played"`
}
