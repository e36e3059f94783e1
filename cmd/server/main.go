package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // loads a local .env file when present
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/nkoretz/bandboard/internal/config"
	"github.com/nkoretz/bandboard/internal/database"
	"github.com/nkoretz/bandboard/internal/handler"
	"github.com/nkoretz/bandboard/internal/middleware"
	"github.com/nkoretz/bandboard/internal/queue"
	"github.com/nkoretz/bandboard/internal/repository"
	"github.com/nkoretz/bandboard/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap failed: %v", err)
	}
	cancel()

	venueRepo := repository.NewVenueRepo(db)
	artistRepo := repository.NewArtistRepo(db)
	showRepo := repository.NewShowRepo(db)

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Distributed rate limiting; disabled automatically when Redis is absent.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e,
		handler.NewHomeHandler(venueRepo, artistRepo),
		handler.NewVenueHandler(venueRepo, showRepo),
		handler.NewArtistHandler(artistRepo, showRepo),
		handler.NewShowHandler(showRepo, artistRepo, venueRepo),
	)

	// Background consumer appending booking confirmations to logs/booking.log.
	go func() {
		if err := queue.StartShowBookedConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
