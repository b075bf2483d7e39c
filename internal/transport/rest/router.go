package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"adventcal/internal/service"
	"adventcal/internal/transport/rest/handler"
	"adventcal/internal/transport/rest/middleware"
	"adventcal/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	ScoreService    *service.ScoreService
	CalendarService *service.CalendarService
	WSHub           *ws.Hub
	SaveLimiter     *middleware.RateLimiter
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	scoreHandler := handler.NewScoreHandler(c.ScoreService)
	calendarHandler := handler.NewCalendarHandler(c.CalendarService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	api.HandleFunc("/ws/leaderboard/{day}/{gameType}", wsHandler.LeaderboardWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := api.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/users/me", authHandler.Me).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/gamescore/user/{userId}", scoreHandler.UserScores).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/gamescore/user/{userId}/day/{day}/game/{gameType}", scoreHandler.UserScoreForDay).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/gamescore/leaderboard/day/{day}/game/{gameType}", scoreHandler.Leaderboard).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/gamescore/leaderboard/total", scoreHandler.TotalLeaderboard).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/calendar/days", calendarHandler.Days).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/calendar/days/{day}/select", calendarHandler.SelectDay).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/calendar/session", calendarHandler.TakeSession).Methods("GET", "OPTIONS")

	// Save gets its own subrouter so the rate limiter only guards writes
	saveRoutes := api.NewRoute().Subrouter()
	saveRoutes.Use(authMW.RequireUser)
	if c.SaveLimiter != nil {
		saveRoutes.Use(c.SaveLimiter.Limit)
	}
	saveRoutes.HandleFunc("/gamescore/save", scoreHandler.Save).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
