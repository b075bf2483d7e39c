package scoreclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"adventcal/internal/model"
)

func TestMeSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Unexpected Authorization header %q", got)
		}
		json.NewEncoder(w).Encode(model.User{ID: "u_1", Name: "Alice"})
	}))
	defer srv.Close()

	c := New(srv.URL, "token-123")
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.ID != "u_1" || user.Name != "Alice" {
		t.Errorf("Unexpected user %+v", user)
	}
}

func TestSaveScoreRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/gamescore/save" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req model.SaveScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Day != 3 || req.GameType != model.GameQuiz || req.Score != 680 {
			t.Errorf("Unexpected payload %+v", req)
		}
		json.NewEncoder(w).Encode(model.SaveScoreResponse{
			Record:        &model.ScoreRecord{ID: "s_1", Day: 3, GameType: model.GameQuiz, Score: 680},
			AlreadyPlayed: false,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	resp, err := c.SaveScore(context.Background(), model.SaveScoreRequest{
		Day: 3, GameType: model.GameQuiz, Score: 680,
	})
	if err != nil {
		t.Fatalf("SaveScore failed: %v", err)
	}
	if resp.Record.ID != "s_1" || resp.AlreadyPlayed {
		t.Errorf("Unexpected response %+v", resp)
	}
}

func TestUserScoreForDayNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no score found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	_, err := c.UserScoreForDay(context.Background(), "u_1", 9, model.GameSongGuess)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	_, err := c.Me(context.Background())
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("500 must not map to ErrNotFound")
	}
}

func TestLeaderboardPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/gamescore/leaderboard/day/5/game/wordscramble" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]model.LeaderboardEntry{
			{Rank: 1, UserID: "u_2", UserName: "Bea", Score: 1000},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	entries, err := c.Leaderboard(context.Background(), 5, model.GameWordScramble)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].UserName != "Bea" {
		t.Errorf("Unexpected entries %+v", entries)
	}
}
