package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/roomdesk/palace-occupancy/internal/config"
	"github.com/roomdesk/palace-occupancy/internal/database"
	"github.com/roomdesk/palace-occupancy/internal/engine"
	"github.com/roomdesk/palace-occupancy/internal/handler"
	"github.com/roomdesk/palace-occupancy/internal/queue"
	"github.com/roomdesk/palace-occupancy/internal/repository"
	"github.com/roomdesk/palace-occupancy/internal/router"
	"github.com/roomdesk/palace-occupancy/internal/store"
)

func main() {
	_ = godotenv.Load() // load .env when present; real env vars win

	cfg := config.Load()

	// The snapshot archive is optional: without MySQL the occupancy core
	// still runs fully in memory, it just cannot archive datasets.
	var snapshots *repository.SnapshotRepo
	if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
		log.Printf("snapshot archive disabled: no database configured")
	} else if db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.Printf("snapshot archive disabled: %v", err)
	} else {
		snapshots = repository.NewSnapshotRepo(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			log.Printf("snapshot archive disabled: schema: %v", err)
			snapshots = nil
		}
		cancel()
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and response cache disabled")
	}

	tenants := store.New()
	eng := engine.New(engine.Config{OutOfServiceCascade: cfg.OutOfServiceCascade})

	occupancy := handler.NewOccupancyHandler(tenants, eng, snapshots)
	auth := handler.NewAuthHandler(cfg.JWTSecret, cfg.AccessTTLMin, cfg.PortalUsers)

	e := echo.New()
	e.Validator = handler.NewValidator()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterOccupancy(e, occupancy, cfg.JWTSecret, rdb, config.LoadRateLimitConfig(), config.LoadCacheConfig())

	// Movement events are consumed in the background and appended to
	// logs/movements.log; the consumer reconnects on broker failures.
	go func() {
		if err := queue.StartMovementConsumer(); err != nil {
			log.Printf("movement consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
