package scoreclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"adventcal/internal/model"
)

// ErrNotFound is returned when the API answers 404 (no record stored)
var ErrNotFound = errors.New("score record not found")

// Client wraps the game-score REST API. Every call carries the bearer
// token; failures are returned to the caller, never retried automatically.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a score API client for the given base URL and bearer token
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs one authenticated request and returns the body
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[score client] ERROR: %s %s failed: %v", method, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		log.Printf("[score client] ERROR: %s %s returned %d: %s", method, path, resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("score API error %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// Me resolves the bearer token to the server-side user identity
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/users/me", nil)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}
	return &user, nil
}

// SaveScore posts a final score. The server enforces first-attempt-wins:
// the returned record is authoritative and may carry an earlier score.
func (c *Client) SaveScore(ctx context.Context, req model.SaveScoreRequest) (*model.SaveScoreResponse, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, "/api/gamescore/save", req)
	if err != nil {
		return nil, err
	}
	var saved model.SaveScoreResponse
	if err := json.Unmarshal(respBody, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse save response: %w", err)
	}
	return &saved, nil
}

// UserScores fetches all of a user's score records in one request; the
// played-games cache is sliced out of this bulk result client-side.
func (c *Client) UserScores(ctx context.Context, userID string) ([]*model.ScoreRecord, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/gamescore/user/"+userID, nil)
	if err != nil {
		return nil, err
	}
	var records []*model.ScoreRecord
	if err := json.Unmarshal(respBody, &records); err != nil {
		return nil, fmt.Errorf("failed to parse score records: %w", err)
	}
	return records, nil
}

// UserScoreForDay fetches one record, ErrNotFound when none is stored
func (c *Client) UserScoreForDay(ctx context.Context, userID string, day int, gameType model.GameType) (*model.ScoreRecord, error) {
	path := fmt.Sprintf("/api/gamescore/user/%s/day/%d/game/%s", userID, day, gameType)
	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var record model.ScoreRecord
	if err := json.Unmarshal(respBody, &record); err != nil {
		return nil, fmt.Errorf("failed to parse score record: %w", err)
	}
	return &record, nil
}

// Leaderboard fetches the server-sorted board for one (day, gameType)
func (c *Client) Leaderboard(ctx context.Context, day int, gameType model.GameType) ([]model.LeaderboardEntry, error) {
	path := fmt.Sprintf("/api/gamescore/leaderboard/day/%d/game/%s", day, gameType)
	respBody, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(respBody, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}
	return entries, nil
}

// TotalLeaderboard fetches the aggregated per-user totals
func (c *Client) TotalLeaderboard(ctx context.Context) ([]model.TotalEntry, error) {
	respBody, err := c.doRequest(ctx, http.MethodGet, "/api/gamescore/leaderboard/total", nil)
	if err != nil {
		return nil, err
	}
	var entries []model.TotalEntry
	if err := json.Unmarshal(respBody, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse total leaderboard: %w", err)
	}
	return entries, nil
}
