package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"adventcal/internal/service"
	"adventcal/internal/transport/rest/middleware"
)

// CalendarHandler handles calendar endpoints
type CalendarHandler struct {
	calendarSvc *service.CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarSvc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Days handles GET /api/calendar/days
func (h *CalendarHandler) Days(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	days, err := h.calendarSvc.Days(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// SelectDay handles POST /api/calendar/days/{day}/select
func (h *CalendarHandler) SelectDay(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}

	start, err := h.calendarSvc.SelectDay(r.Context(), user, day)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDayNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDayLocked):
			writeError(w, http.StatusForbidden, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, start)
}

// TakeSession handles GET /api/calendar/session. The bundle is consumed by
// the read: a second request answers 404 and the game renders its no-data
// screen.
func (h *CalendarHandler) TakeSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	start, err := h.calendarSvc.TakeSession(r.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, start)
}
