package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"adventcal/internal/model"
)

type fakeDayConfigRepo struct {
	configs map[int]*model.DayConfig
}

func (r *fakeDayConfigRepo) Upsert(ctx context.Context, cfg *model.DayConfig) error {
	r.configs[cfg.Day] = cfg
	return nil
}

func (r *fakeDayConfigRepo) GetByDay(ctx context.Context, day int) (*model.DayConfig, error) {
	return r.configs[day], nil
}

func (r *fakeDayConfigRepo) List(ctx context.Context) ([]*model.DayConfig, error) {
	var out []*model.DayConfig
	for day := 1; day <= 24; day++ {
		if cfg, ok := r.configs[day]; ok {
			out = append(out, cfg)
		}
	}
	return out, nil
}

type fakeSessionCache struct {
	bundles map[string]*model.SessionStart
}

func (c *fakeSessionCache) Put(ctx context.Context, userID string, start *model.SessionStart) error {
	c.bundles[userID] = start
	return nil
}

func (c *fakeSessionCache) Take(ctx context.Context, userID string) (*model.SessionStart, error) {
	start := c.bundles[userID]
	delete(c.bundles, userID)
	return start, nil
}

func dayConfig(day int, gameType model.GameType) *model.DayConfig {
	return &model.DayConfig{
		ID:    "d_test",
		Day:   day,
		Title: "Day game",
		Config: model.GameConfig{
			Type:             gameType,
			RoundTimeLimitMS: 10000,
			Rounds:           []model.Round{{Prompt: "q", Answer: "a"}},
		},
	}
}

func calendarFixture(t *testing.T, unlockAll bool) (*CalendarService, *fakeDayConfigRepo, *fakeScoreRepo, *fakeSessionCache) {
	t.Helper()
	configs := &fakeDayConfigRepo{configs: make(map[int]*model.DayConfig)}
	scores := newFakeScoreRepo()
	sessions := &fakeSessionCache{bundles: make(map[string]*model.SessionStart)}
	return NewCalendarService(configs, scores, sessions, unlockAll), configs, scores, sessions
}

func TestUnlockedThroughDecember(t *testing.T) {
	svc, _, _, _ := calendarFixture(t, false)

	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, time.December, 12, 9, 0, 0, 0, time.UTC), 12},
		{time.Date(2025, time.December, 24, 9, 0, 0, 0, time.UTC), 24},
		{time.Date(2025, time.December, 28, 9, 0, 0, 0, time.UTC), 24},
		{time.Date(2025, time.November, 30, 9, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, time.January, 2, 9, 0, 0, 0, time.UTC), 0},
	}
	for _, c := range cases {
		svc.now = func() time.Time { return c.date }
		if got := svc.unlockedThrough(); got != c.want {
			t.Errorf("unlockedThrough at %s = %d, want %d", c.date.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestUnlockAllOverride(t *testing.T) {
	svc, _, _, _ := calendarFixture(t, true)
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	}
	if got := svc.unlockedThrough(); got != 24 {
		t.Errorf("Expected 24 with unlock override, got %d", got)
	}
}

func TestDaysHideLockedGameTypes(t *testing.T) {
	svc, configs, scores, _ := calendarFixture(t, false)
	svc.now = func() time.Time {
		return time.Date(2025, time.December, 5, 9, 0, 0, 0, time.UTC)
	}
	configs.Upsert(context.Background(), dayConfig(3, model.GameQuiz))
	configs.Upsert(context.Background(), dayConfig(5, model.GameWordScramble))
	configs.Upsert(context.Background(), dayConfig(10, model.GameInterview))

	scores.SaveFirst(context.Background(), &model.ScoreRecord{
		ID: "s_1", UserID: "u_1", Day: 3, GameType: model.GameQuiz, Score: 680,
	})

	user := &model.User{ID: "u_1", Name: "Alice"}
	days, err := svc.Days(context.Background(), user)
	if err != nil {
		t.Fatalf("Days failed: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("Expected 3 configured days, got %d", len(days))
	}

	if !days[0].Unlocked || !days[0].Played || days[0].GameType != "quiz" {
		t.Errorf("Unexpected day 3 view %+v", days[0])
	}
	if !days[1].Unlocked || days[1].Played {
		t.Errorf("Unexpected day 5 view %+v", days[1])
	}
	if days[2].Unlocked {
		t.Error("Day 10 must be locked on December 5th")
	}
	if days[2].GameType != "" {
		t.Error("Locked day leaked its game type")
	}
}

func TestSelectDayLocked(t *testing.T) {
	svc, configs, _, _ := calendarFixture(t, false)
	svc.now = func() time.Time {
		return time.Date(2025, time.December, 5, 9, 0, 0, 0, time.UTC)
	}
	configs.Upsert(context.Background(), dayConfig(10, model.GameQuiz))

	user := &model.User{ID: "u_1"}
	_, err := svc.SelectDay(context.Background(), user, 10)
	if !errors.Is(err, ErrDayLocked) {
		t.Fatalf("Expected ErrDayLocked, got %v", err)
	}
}

func TestSelectDayUnknown(t *testing.T) {
	svc, _, _, _ := calendarFixture(t, true)
	user := &model.User{ID: "u_1"}

	_, err := svc.SelectDay(context.Background(), user, 7)
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("Expected ErrDayNotFound for unconfigured day, got %v", err)
	}
	_, err = svc.SelectDay(context.Background(), user, 0)
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("Expected ErrDayNotFound for day 0, got %v", err)
	}
	_, err = svc.SelectDay(context.Background(), user, 25)
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("Expected ErrDayNotFound for day 25, got %v", err)
	}
}

func TestSelectDayStoresBundle(t *testing.T) {
	svc, configs, _, sessions := calendarFixture(t, true)
	configs.Upsert(context.Background(), dayConfig(7, model.GameEmojiQuiz))

	user := &model.User{ID: "u_1"}
	start, err := svc.SelectDay(context.Background(), user, 7)
	if err != nil {
		t.Fatalf("SelectDay failed: %v", err)
	}
	if start.Day != 7 || start.Config.Type != model.GameEmojiQuiz {
		t.Errorf("Unexpected bundle %+v", start)
	}
	if sessions.bundles["u_1"] == nil {
		t.Error("Bundle not stored for hand-off")
	}
}

func TestTakeSessionConsumesOnce(t *testing.T) {
	svc, configs, _, _ := calendarFixture(t, true)
	configs.Upsert(context.Background(), dayConfig(7, model.GameEmojiQuiz))

	user := &model.User{ID: "u_1"}
	if _, err := svc.SelectDay(context.Background(), user, 7); err != nil {
		t.Fatalf("SelectDay failed: %v", err)
	}

	start, err := svc.TakeSession(context.Background(), user)
	if err != nil {
		t.Fatalf("TakeSession failed: %v", err)
	}
	if start.Day != 7 {
		t.Errorf("Unexpected bundle day %d", start.Day)
	}

	// reload: the hand-off is gone
	_, err = svc.TakeSession(context.Background(), user)
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Expected ErrNoSession on second take, got %v", err)
	}
}
