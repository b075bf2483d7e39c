package gamesession

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"adventcal/internal/model"
)

// State is the lifecycle phase of a game session
type State string

const (
	StateNotStarted  State = "not_started"
	StateInRound     State = "in_round"
	StateRoundResult State = "round_result"
	StateEnded       State = "ended"
)

// RoundOutcome records how a single round finished
type RoundOutcome struct {
	Answered    bool   `json:"answered"`
	Answer      string `json:"answer,omitempty"`
	Correct     bool   `json:"correct"`
	TimedOut    bool   `json:"timedOut"`
	RemainingMS int    `json:"remainingMs"`
}

// Reporter receives the final score exactly once per non-practice session.
// The score keeper implements it.
type Reporter interface {
	ReportScore(ctx context.Context, day int, gameType model.GameType, score int) (*model.ScoreRecord, error)
}

// Session drives one mini-game from configuration to a terminal, reported
// score. All mutation goes through the mutex; a round's timeout and a user
// submission race is settled by whichever acquires it first, the loser sees
// the transitioned state and no-ops.
type Session struct {
	mu       sync.Mutex
	cfg      *model.GameConfig
	day      model.DayInfo
	rules    Rules
	reporter Reporter
	practice bool
	now      func() time.Time

	state       State
	round       int
	outcomes    []RoundOutcome
	remainingMS int
	resultMS    int
	raw         int
	bonus       float64
	finalScore  int
	startedAt   time.Time
	noData      bool
	closed      bool

	done      chan struct{}
	closeOnce sync.Once
	saveDone  chan struct{}
	saved     *model.ScoreRecord
	saveErr   string

	reportTimeout time.Duration
}

// Option configures a Session
type Option func(*Session)

// Practice marks the session as a replay after an authoritative score
// exists; the final score is never reported.
func Practice() Option {
	return func(s *Session) { s.practice = true }
}

// WithClock overrides the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRules overrides the game type's default rules
func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// New creates a session for the given config and day. A nil or empty
// config is accepted; Start then no-ops and NoData reports true.
func New(cfg *model.GameConfig, day model.DayInfo, reporter Reporter, opts ...Option) *Session {
	s := &Session{
		cfg:           cfg,
		day:           day,
		reporter:      reporter,
		now:           time.Now,
		state:         StateNotStarted,
		done:          make(chan struct{}),
		saveDone:      make(chan struct{}),
		reportTimeout: 10 * time.Second,
	}
	if cfg != nil {
		s.rules = RulesFor(cfg.Type)
	} else {
		s.rules = RulesFor(model.GameQuiz)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes round 0 and enters InRound. It returns false without
// starting when the config is absent or has no rounds; callers render the
// no-data terminal screen instead of crashing.
func (s *Session) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return false
	}
	if s.cfg == nil || len(s.cfg.Rounds) == 0 {
		s.noData = true
		s.state = StateEnded
		close(s.saveDone)
		return false
	}
	s.round = 0
	s.raw = 0
	s.bonus = 0
	s.outcomes = make([]RoundOutcome, len(s.cfg.Rounds))
	s.remainingMS = s.cfg.RoundTimeLimitMS
	s.startedAt = s.now()
	s.state = StateInRound
	return true
}

// Submit records the player's answer for the given round. It is ignored
// unless the session is in that round and no answer was recorded yet, which
// guards against double submits and stale handlers firing after a timeout.
func (s *Session) Submit(roundIdx int, answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state != StateInRound || roundIdx != s.round {
		return false
	}
	if s.outcomes[s.round].Answered || s.outcomes[s.round].TimedOut {
		return false
	}

	r := s.cfg.Rounds[s.round]
	correct := s.rules.Match(r, answer)
	s.outcomes[s.round] = RoundOutcome{
		Answered:    true,
		Answer:      answer,
		Correct:     correct,
		RemainingMS: s.remainingMS,
	}
	if correct {
		s.raw += s.basePoints()
		s.bonus += s.bonusRate() * RoundBonus(s.remainingMS, s.cfg.RoundTimeLimitMS, len(s.cfg.Rounds))
	} else if s.rules.Elimination {
		s.endLocked(true)
		return true
	}
	s.toResultLocked()
	return true
}

// Tick advances the session by one tick interval. The run loop calls it on
// a ticker; at zero remaining time it synthesizes a timeout result for the
// current round.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state == StateEnded {
		return
	}
	step := int(s.rules.TickInterval / time.Millisecond)

	switch s.state {
	case StateInRound:
		s.remainingMS -= step
		if s.remainingMS > 0 {
			return
		}
		s.remainingMS = 0
		s.outcomes[s.round] = RoundOutcome{TimedOut: true}
		if s.rules.Elimination {
			s.endLocked(true)
			return
		}
		s.toResultLocked()
	case StateRoundResult:
		s.resultMS -= step
		if s.resultMS > 0 {
			return
		}
		s.round++
		if s.round >= len(s.cfg.Rounds) {
			s.endLocked(false)
			return
		}
		s.remainingMS = s.cfg.RoundTimeLimitMS
		s.state = StateInRound
	}
}

// End finalizes the session early (all remaining rounds count as unplayed)
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == StateNotStarted || s.state == StateEnded {
		return
	}
	s.endLocked(false)
}

// Run drives the tick loop until the session ends, the context is
// cancelled or the session is closed.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(s.rules.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.Tick()
			if s.State() == StateEnded {
				return
			}
		}
	}
}

// Close tears the session down: the run loop stops and any in-flight score
// report is discarded instead of mutating state after unmount.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Session) toResultLocked() {
	s.state = StateRoundResult
	s.resultMS = int(s.rules.ResultDelay / time.Millisecond)
}

func (s *Session) basePoints() int {
	if s.cfg.Scoring.BasePoints > 0 {
		return s.cfg.Scoring.BasePoints
	}
	return 1
}

// bonusRate scales each round's time-bonus contribution; unset means 1
func (s *Session) bonusRate() float64 {
	if s.cfg.Scoring.TimeBonusRate > 0 {
		return s.cfg.Scoring.TimeBonusRate
	}
	return 1
}

func (s *Session) maxRaw() int {
	return s.basePoints() * len(s.cfg.Rounds)
}

// endLocked finalizes the score and fires the single report attempt.
// zero forces the elimination outcome: the stored score is 0 but the save
// attempt still happens so the day is marked played.
func (s *Session) endLocked(zero bool) {
	if s.state == StateEnded {
		return
	}
	s.state = StateEnded
	if zero {
		s.finalScore = 0
	} else {
		s.finalScore = Normalize(s.raw, s.maxRaw(), clampBonus(s.bonus, s.cfg.Scoring.MaxBonus))
	}

	if s.practice || s.reporter == nil {
		close(s.saveDone)
		return
	}
	score := s.finalScore
	go s.report(score)
}

func (s *Session) report(score int) {
	defer close(s.saveDone)

	ctx, cancel := context.WithTimeout(context.Background(), s.reportTimeout)
	defer cancel()
	rec, err := s.reporter.ReportScore(ctx, s.day.Day, s.cfg.Type, score)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err != nil {
		s.saveErr = err.Error()
		return
	}
	s.saved = rec
}

// State returns the current lifecycle phase
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Round returns the current round index
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Remaining returns the current round's remaining time in milliseconds
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingMS
}

// NoData reports whether Start found no usable configuration
func (s *Session) NoData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noData
}

// IsPractice reports whether this is a practice replay
func (s *Session) IsPractice() bool {
	return s.practice
}

// Score returns the final normalized score; valid once Ended
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalScore
}

// BonusFraction returns the accumulated time-bonus fraction so far
func (s *Session) BonusFraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bonus
}

// CorrectCount returns how many rounds were answered correctly
func (s *Session) CorrectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.CountBy(s.outcomes, func(o RoundOutcome) bool { return o.Correct })
}

// Outcomes returns a copy of the per-round outcomes
func (s *Session) Outcomes() []RoundOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RoundOutcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Elapsed returns wall-clock time since Start, clamped at zero so clock
// adjustments can never produce a negative duration.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startedAt.IsZero() {
		return 0
	}
	d := s.now().Sub(s.startedAt)
	if d < 0 {
		d = 0
	}
	return d
}

// SaveDone is closed once the score report finished (or was skipped)
func (s *Session) SaveDone() <-chan struct{} {
	return s.saveDone
}

// SavedRecord returns the canonical stored record and any save error
func (s *Session) SavedRecord() (*model.ScoreRecord, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved, s.saveErr
}
