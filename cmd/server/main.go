package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"adventcal/internal/cache"
	"adventcal/internal/config"
	"adventcal/internal/repository"
	"adventcal/internal/service"
	"adventcal/internal/transport/rest"
	"adventcal/internal/transport/rest/middleware"
	"adventcal/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	scoreRepo := repository.NewScoreRepo(db)
	userRepo := repository.NewUserRepo(db)
	dayConfigRepo := repository.NewDayConfigRepo(db)

	if err := scoreRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create score indexes:", err)
	}

	// Initialize caches
	leaderboard := cache.NewLeaderboardCache(rdb)
	sessions := cache.NewSessionCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo)
	scoreSvc := service.NewScoreService(scoreRepo, userRepo, leaderboard)
	calendarSvc := service.NewCalendarService(dayConfigRepo, scoreRepo, sessions, cfg.UnlockAll)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	scoreSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		ScoreService:    scoreSvc,
		CalendarService: calendarSvc,
		WSHub:           wsHub,
		SaveLimiter:     middleware.NewRateLimiter(cfg.SaveRPS, cfg.SaveBurst),
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST /api/auth/login")
		log.Println("  GET  /api/users/me")
		log.Println("  POST /api/gamescore/save")
		log.Println("  GET  /api/gamescore/user/{userId}")
		log.Println("  GET  /api/gamescore/leaderboard/day/{day}/game/{gameType}")
		log.Println("  GET  /api/gamescore/leaderboard/total")
		log.Println("  GET  /api/calendar/days")
		log.Println("  POST /api/calendar/days/{day}/select")
		log.Println("  GET  /api/calendar/session")
		log.Println("  WS   /api/ws/leaderboard/{day}/{gameType}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
