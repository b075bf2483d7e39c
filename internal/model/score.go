package model

import (
	"fmt"
	"time"
)

// ScoreRecord is the authoritative stored result for one (user, day, gameType).
// The server keeps at most one: only the first completed attempt counts.
type ScoreRecord struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	UserID   string    `json:"userId" bson:"userId"`
	UserName string    `json:"userName" bson:"userName"`
	Day      int       `json:"day" bson:"day"`
	GameType GameType  `json:"gameType" bson:"gameType"`
	Score    int       `json:"score" bson:"score"`
	PlayedAt time.Time `json:"playedAt" bson:"playedAt"`
}

// Key returns the composite cache key for a (day, gameType) pair
func (r *ScoreRecord) Key() string {
	return ScoreKey(r.Day, r.GameType)
}

// ScoreKey builds the composite "{day}-{gameType}" lookup key
func ScoreKey(day int, gameType GameType) string {
	return fmt.Sprintf("%d-%s", day, gameType)
}

// SaveScoreRequest is the body of POST /api/gamescore/save
type SaveScoreRequest struct {
	Day      int      `json:"day"`
	GameType GameType `json:"gameType"`
	Score    int      `json:"score"`
}

// SaveScoreResponse carries the canonical stored record. AlreadyPlayed is
// true when an earlier record won and the submitted score was discarded.
type SaveScoreResponse struct {
	Record        *ScoreRecord `json:"record"`
	AlreadyPlayed bool         `json:"alreadyPlayed"`
}

// LeaderboardEntry is one ranked row for a (day, gameType) board
type LeaderboardEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

// TotalEntry is one row of the aggregated all-days leaderboard
type TotalEntry struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Total    int    `json:"total"`
	Rank     int    `json:"rank"`
}
