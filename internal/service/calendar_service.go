package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adventcal/internal/cache"
	"adventcal/internal/model"
	"adventcal/internal/repository"
)

var (
	ErrDayLocked   = errors.New("day is not unlocked yet")
	ErrDayNotFound = errors.New("no game configured for that day")
	ErrNoSession   = errors.New("no game session prepared")
)

// CalendarService unlocks days and hands a selected day's game
// configuration to the game session as a typed bundle. The bundle lives in
// Redis under the user's key and is consumed exactly once at game mount.
type CalendarService struct {
	configs  repository.DayConfigRepo
	scores   repository.ScoreRepo
	sessions cache.SessionCache

	unlockAll bool
	now       func() time.Time
}

// NewCalendarService creates a new calendar service. unlockAll opens every
// door regardless of date, for local development.
func NewCalendarService(configs repository.DayConfigRepo, scores repository.ScoreRepo, sessions cache.SessionCache, unlockAll bool) *CalendarService {
	return &CalendarService{
		configs:   configs,
		scores:    scores,
		sessions:  sessions,
		unlockAll: unlockAll,
		now:       time.Now,
	}
}

// unlockedThrough returns the highest unlocked day: during December the
// current date, zero outside it.
func (s *CalendarService) unlockedThrough() int {
	if s.unlockAll {
		return 24
	}
	t := s.now()
	if t.Month() != time.December {
		return 0
	}
	if t.Day() > 24 {
		return 24
	}
	return t.Day()
}

// Days returns the calendar view for a user: every configured day with its
// unlock status and whether the user already has a stored score.
func (s *CalendarService) Days(ctx context.Context, user *model.User) ([]model.CalendarDay, error) {
	configs, err := s.configs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load day configs: %w", err)
	}
	records, err := s.scores.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user scores: %w", err)
	}
	played := make(map[string]bool, len(records))
	for _, r := range records {
		played[r.Key()] = true
	}

	limit := s.unlockedThrough()
	days := make([]model.CalendarDay, len(configs))
	for i, cfg := range configs {
		day := model.CalendarDay{
			Day:      cfg.Day,
			Title:    cfg.Title,
			Unlocked: cfg.Day <= limit,
		}
		if day.Unlocked {
			// locked doors keep their game type secret
			day.GameType = string(cfg.Config.Type)
			day.Played = played[model.ScoreKey(cfg.Day, cfg.Config.Type)]
		}
		days[i] = day
	}
	return days, nil
}

// SelectDay prepares the session bundle for an unlocked day
func (s *CalendarService) SelectDay(ctx context.Context, user *model.User, day int) (*model.SessionStart, error) {
	if day < 1 || day > 24 {
		return nil, ErrDayNotFound
	}
	if day > s.unlockedThrough() {
		return nil, ErrDayLocked
	}
	cfg, err := s.configs.GetByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load day config: %w", err)
	}
	if cfg == nil {
		return nil, ErrDayNotFound
	}

	start := &model.SessionStart{
		Day:    cfg.Day,
		Title:  cfg.Title,
		Config: cfg.Config,
	}
	if err := s.sessions.Put(ctx, user.ID, start); err != nil {
		return nil, fmt.Errorf("failed to store session bundle: %w", err)
	}
	return start, nil
}

// TakeSession consumes the prepared bundle. A second call (or a call with
// none prepared) returns ErrNoSession, which renders as the no-data screen.
func (s *CalendarService) TakeSession(ctx context.Context, user *model.User) (*model.SessionStart, error) {
	start, err := s.sessions.Take(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session bundle: %w", err)
	}
	if start == nil {
		return nil, ErrNoSession
	}
	return start, nil
}
