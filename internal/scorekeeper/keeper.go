package scorekeeper

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"adventcal/internal/gamesession"
	"adventcal/internal/model"
)

// ErrNoUser is returned when the current user could not be resolved
var ErrNoUser = errors.New("current user not resolved")

// API is the slice of the score client the keeper needs; kept as an
// interface so tests can fake the network.
type API interface {
	Me(ctx context.Context) (*model.User, error)
	SaveScore(ctx context.Context, req model.SaveScoreRequest) (*model.SaveScoreResponse, error)
	UserScores(ctx context.Context, userID string) ([]*model.ScoreRecord, error)
	Leaderboard(ctx context.Context, day int, gameType model.GameType) ([]model.LeaderboardEntry, error)
	TotalLeaderboard(ctx context.Context) ([]model.TotalEntry, error)
}

// Keeper mediates between game sessions and the score API. It memoizes the
// current user, caches the played-games lookup behind a single coalesced
// fetch and turns network failures into a recorded error string so the
// caller's screen stays interactive.
type Keeper struct {
	api API

	mu      sync.Mutex
	user    *model.User
	lastErr string
	records map[string]*model.ScoreRecord // nil until first fetch
	gen     int                           // bumped on invalidation

	group singleflight.Group
}

// New creates a keeper around the given API client
func New(api API) *Keeper {
	return &Keeper{api: api}
}

// CurrentUser resolves and memoizes the server-side identity for the
// lifetime of the keeper. On failure it returns ErrNoUser and records the
// underlying error string; it never panics past this boundary.
func (k *Keeper) CurrentUser(ctx context.Context) (*model.User, error) {
	k.mu.Lock()
	if k.user != nil {
		u := k.user
		k.mu.Unlock()
		return u, nil
	}
	k.mu.Unlock()

	v, err, _ := k.group.Do("me", func() (interface{}, error) {
		return k.api.Me(ctx)
	})
	if err != nil {
		k.setError(err)
		return nil, ErrNoUser
	}
	user := v.(*model.User)
	k.mu.Lock()
	k.user = user
	k.mu.Unlock()
	return user, nil
}

// LastError returns the most recent network error as a display string
func (k *Keeper) LastError() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lastErr
}

func (k *Keeper) setError(err error) {
	k.mu.Lock()
	k.lastErr = err.Error()
	k.mu.Unlock()
}

// loadRecords populates the played-games cache with one bulk fetch of all
// the user's records. Concurrent callers share the in-flight request, so a
// calendar full of cells probing play status costs a single round trip.
func (k *Keeper) loadRecords(ctx context.Context) (map[string]*model.ScoreRecord, error) {
	k.mu.Lock()
	if k.records != nil {
		m := k.records
		k.mu.Unlock()
		return m, nil
	}
	gen := k.gen
	k.mu.Unlock()

	v, err, _ := k.group.Do("played-games", func() (interface{}, error) {
		user, err := k.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		recs, err := k.api.UserScores(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		byKey := make(map[string]*model.ScoreRecord, len(recs))
		for _, r := range recs {
			byKey[r.Key()] = r
		}
		return byKey, nil
	})
	if err != nil {
		k.setError(err)
		return nil, err
	}

	// a fetch that predates an invalidation must not become the cache
	m := v.(map[string]*model.ScoreRecord)
	k.mu.Lock()
	if k.records == nil && k.gen == gen {
		k.records = m
	}
	if k.records != nil {
		m = k.records
	}
	k.mu.Unlock()
	return m, nil
}

// HasPlayed reports whether an authoritative score exists for the pair
func (k *Keeper) HasPlayed(ctx context.Context, day int, gameType model.GameType) (bool, error) {
	records, err := k.loadRecords(ctx)
	if err != nil {
		return false, err
	}
	_, ok := records[model.ScoreKey(day, gameType)]
	return ok, nil
}

// ScoreFor returns the stored record for the pair, nil when none exists
func (k *Keeper) ScoreFor(ctx context.Context, day int, gameType model.GameType) (*model.ScoreRecord, error) {
	records, err := k.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return records[model.ScoreKey(day, gameType)], nil
}

// Invalidate drops the played-games cache; the next lookup re-fetches.
// An in-flight bulk fetch is forgotten so callers arriving after the
// invalidation get fresh data instead of joining the stale request.
func (k *Keeper) Invalidate() {
	k.mu.Lock()
	k.records = nil
	k.gen++
	k.mu.Unlock()
	k.group.Forget("played-games")
}

// ReportScore posts a final score and returns the canonical stored record,
// which may differ from the submitted score when an earlier attempt won.
// A successful save invalidates the played-games cache. Implements
// gamesession.Reporter.
func (k *Keeper) ReportScore(ctx context.Context, day int, gameType model.GameType, score int) (*model.ScoreRecord, error) {
	resp, err := k.api.SaveScore(ctx, model.SaveScoreRequest{
		Day:      day,
		GameType: gameType,
		Score:    score,
	})
	if err != nil {
		k.setError(err)
		return nil, err
	}
	k.Invalidate()
	return resp.Record, nil
}

// RankedEntry decorates a leaderboard row with its display attributes
type RankedEntry struct {
	model.LeaderboardEntry
	Medal         string `json:"medal,omitempty"`
	IsCurrentUser bool   `json:"isCurrentUser"`
}

// Leaderboard fetches the server-sorted board and derives rank display
// only: medals for the podium and current-user highlighting. No client-side
// re-sorting.
func (k *Keeper) Leaderboard(ctx context.Context, day int, gameType model.GameType) ([]RankedEntry, error) {
	entries, err := k.api.Leaderboard(ctx, day, gameType)
	if err != nil {
		k.setError(err)
		return nil, err
	}

	var currentID string
	if user, err := k.CurrentUser(ctx); err == nil {
		currentID = user.ID
	}
	return lo.Map(entries, func(e model.LeaderboardEntry, _ int) RankedEntry {
		return RankedEntry{
			LeaderboardEntry: e,
			Medal:            medalFor(e.Rank),
			IsCurrentUser:    currentID != "" && e.UserID == currentID,
		}
	}), nil
}

// StartSession builds a session for the hand-off payload. When the day was
// already played the session runs in practice mode and never reports.
func (k *Keeper) StartSession(ctx context.Context, start *model.SessionStart) (*gamesession.Session, error) {
	if start == nil {
		return gamesession.New(nil, model.DayInfo{}, k), nil
	}
	day := model.DayInfo{Day: start.Day, Title: start.Title}

	played, err := k.HasPlayed(ctx, start.Day, start.Config.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to check play status: %w", err)
	}
	var opts []gamesession.Option
	if played {
		opts = append(opts, gamesession.Practice())
	}
	return gamesession.New(&start.Config, day, k, opts...), nil
}

func medalFor(rank int) string {
	switch rank {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	default:
		return ""
	}
}
