package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"

	"adventcal/internal/cache"
	"adventcal/internal/model"
	"adventcal/internal/repository"
)

var (
	ErrInvalidDay      = errors.New("day must be between 1 and 24")
	ErrInvalidGameType = errors.New("unknown game type")
	ErrInvalidScore    = errors.New("score out of range")
)

// maxNormalizedScore bounds submitted scores: 1000 correctness + 200 bonus
const maxNormalizedScore = 1200

const leaderboardLimit = 100

// Broadcaster pushes leaderboard updates to connected viewers.
// The WebSocket hub implements it.
type Broadcaster interface {
	BroadcastLeaderboard(day int, gameType model.GameType, entries []model.LeaderboardEntry)
}

// ScoreService owns the first-attempt-counts policy: the first saved score
// per (user, day, gameType) is authoritative, every later save returns it
// unchanged and leaves the leaderboard alone.
type ScoreService struct {
	scoreRepo   repository.ScoreRepo
	userRepo    repository.UserRepo
	leaderboard cache.LeaderboardCache
	broadcaster Broadcaster
}

// NewScoreService creates a new score service
func NewScoreService(scoreRepo repository.ScoreRepo, userRepo repository.UserRepo, leaderboard cache.LeaderboardCache) *ScoreService {
	return &ScoreService{
		scoreRepo:   scoreRepo,
		userRepo:    userRepo,
		leaderboard: leaderboard,
	}
}

// SetBroadcaster sets the broadcaster for leaderboard push
func (s *ScoreService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Save stores a score idempotently. Only a first save mutates the
// leaderboard ZSETs and triggers a push; repeats get the original record
// back with AlreadyPlayed set.
func (s *ScoreService) Save(ctx context.Context, user *model.User, req *model.SaveScoreRequest) (*model.SaveScoreResponse, error) {
	if req.Day < 1 || req.Day > 24 {
		return nil, ErrInvalidDay
	}
	if !req.GameType.Valid() {
		return nil, ErrInvalidGameType
	}
	if req.Score < 0 || req.Score > maxNormalizedScore {
		return nil, ErrInvalidScore
	}

	record := &model.ScoreRecord{
		UserID:   user.ID,
		UserName: user.Name,
		Day:      req.Day,
		GameType: req.GameType,
		Score:    req.Score,
		PlayedAt: time.Now(),
	}
	stored, inserted, err := s.scoreRepo.SaveFirst(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save score: %w", err)
	}

	if inserted {
		if err := s.leaderboard.AddScore(ctx, stored.Day, stored.GameType, stored.UserID, stored.Score); err != nil {
			log.Printf("[score service] failed to update leaderboard cache: %v", err)
		}
		if err := s.leaderboard.AddToTotal(ctx, stored.UserID, stored.Score); err != nil {
			log.Printf("[score service] failed to update total leaderboard: %v", err)
		}
		s.pushLeaderboard(stored.Day, stored.GameType)
	}

	return &model.SaveScoreResponse{
		Record:        stored,
		AlreadyPlayed: !inserted,
	}, nil
}

func (s *ScoreService) pushLeaderboard(day int, gameType model.GameType) {
	if s.broadcaster == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := s.Leaderboard(ctx, day, gameType)
		if err != nil {
			log.Printf("[score service] failed to build leaderboard push: %v", err)
			return
		}
		s.broadcaster.BroadcastLeaderboard(day, gameType, entries)
	}()
}

// UserScores returns all stored records for a user (the bulk fetch behind
// the client's played-games cache)
func (s *ScoreService) UserScores(ctx context.Context, userID string) ([]*model.ScoreRecord, error) {
	return s.scoreRepo.GetByUser(ctx, userID)
}

// UserScoreForDay returns the stored record or nil when none exists
func (s *ScoreService) UserScoreForDay(ctx context.Context, userID string, day int, gameType model.GameType) (*model.ScoreRecord, error) {
	return s.scoreRepo.GetByUserDayGame(ctx, userID, day, gameType)
}

// Leaderboard returns the ranked board for one (day, gameType), score
// descending. The Redis ZSET serves reads; a cold ZSET is rebuilt from
// Mongo on the way through.
func (s *ScoreService) Leaderboard(ctx context.Context, day int, gameType model.GameType) ([]model.LeaderboardEntry, error) {
	cached, err := s.leaderboard.Top(ctx, day, gameType, leaderboardLimit)
	if err != nil {
		log.Printf("[score service] leaderboard cache read failed: %v", err)
	}
	if len(cached) == 0 {
		return s.rebuildLeaderboard(ctx, day, gameType)
	}

	ids := lo.Map(cached, func(e cache.Entry, _ int) string { return e.UserID })
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve leaderboard users: %w", err)
	}
	return lo.Map(cached, func(e cache.Entry, _ int) model.LeaderboardEntry {
		entry := model.LeaderboardEntry{
			UserID: e.UserID,
			Score:  e.Score,
			Rank:   e.Rank,
		}
		if u, ok := users[e.UserID]; ok {
			entry.UserName = u.Name
		}
		return entry
	}), nil
}

func (s *ScoreService) rebuildLeaderboard(ctx context.Context, day int, gameType model.GameType) ([]model.LeaderboardEntry, error) {
	records, err := s.scoreRepo.GetByDayGame(ctx, day, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	entries := make([]model.LeaderboardEntry, len(records))
	for i, r := range records {
		entries[i] = model.LeaderboardEntry{
			UserID:   r.UserID,
			UserName: r.UserName,
			Score:    r.Score,
			Rank:     i + 1,
		}
		if err := s.leaderboard.AddScore(ctx, day, gameType, r.UserID, r.Score); err != nil {
			log.Printf("[score service] failed to warm leaderboard cache: %v", err)
		}
	}
	return entries, nil
}

// Totals returns the aggregated per-user leaderboard across all days. The
// total ZSET serves reads; when cold the Mongo aggregation answers
// directly (no warm-up, ZIncrBy would double-count later saves).
func (s *ScoreService) Totals(ctx context.Context) ([]model.TotalEntry, error) {
	cached, err := s.leaderboard.TotalTop(ctx, leaderboardLimit)
	if err != nil {
		log.Printf("[score service] total cache read failed: %v", err)
	}
	if len(cached) == 0 {
		return s.scoreRepo.Totals(ctx)
	}

	ids := lo.Map(cached, func(e cache.Entry, _ int) string { return e.UserID })
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve total leaderboard users: %w", err)
	}
	return lo.Map(cached, func(e cache.Entry, _ int) model.TotalEntry {
		entry := model.TotalEntry{
			UserID: e.UserID,
			Total:  e.Score,
			Rank:   e.Rank,
		}
		if u, ok := users[e.UserID]; ok {
			entry.UserName = u.Name
		}
		return entry
	}), nil
}
