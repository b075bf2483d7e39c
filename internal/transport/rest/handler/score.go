package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"adventcal/internal/model"
	"adventcal/internal/service"
	"adventcal/internal/transport/rest/middleware"
)

// ScoreHandler handles game-score endpoints
type ScoreHandler struct {
	scoreSvc *service.ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreSvc *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreSvc: scoreSvc}
}

// Save handles POST /api/gamescore/save
func (h *ScoreHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var req model.SaveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.scoreSvc.Save(r.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDay),
			errors.Is(err, service.ErrInvalidGameType),
			errors.Is(err, service.ErrInvalidScore):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// UserScores handles GET /api/gamescore/user/{userId}
func (h *ScoreHandler) UserScores(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	records, err := h.scoreSvc.UserScores(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []*model.ScoreRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// UserScoreForDay handles GET /api/gamescore/user/{userId}/day/{day}/game/{gameType}
func (h *ScoreHandler) UserScoreForDay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	day, gameType, ok := parseBoard(w, vars)
	if !ok {
		return
	}

	record, err := h.scoreSvc.UserScoreForDay(r.Context(), userID, day, gameType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no score recorded")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Leaderboard handles GET /api/gamescore/leaderboard/day/{day}/game/{gameType}
func (h *ScoreHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	day, gameType, ok := parseBoard(w, mux.Vars(r))
	if !ok {
		return
	}

	entries, err := h.scoreSvc.Leaderboard(r.Context(), day, gameType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// TotalLeaderboard handles GET /api/gamescore/leaderboard/total
func (h *ScoreHandler) TotalLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scoreSvc.Totals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.TotalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func parseBoard(w http.ResponseWriter, vars map[string]string) (int, model.GameType, bool) {
	day, err := strconv.Atoi(vars["day"])
	if err != nil || day < 1 || day > 24 {
		writeError(w, http.StatusBadRequest, "invalid day")
		return 0, "", false
	}
	gameType := model.GameType(vars["gameType"])
	if !gameType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid game type")
		return 0, "", false
	}
	return day, gameType, true
}
