package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mktops/hid-generator/internal/config"
	"github.com/mktops/hid-generator/internal/database"
	"github.com/mktops/hid-generator/internal/handler"
	"github.com/mktops/hid-generator/internal/middleware"
	"github.com/mktops/hid-generator/internal/queue"
	"github.com/mktops/hid-generator/internal/repository"
	"github.com/mktops/hid-generator/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Seed(ctx, db, cfg.SeedAdminPass); err != nil {
		log.Fatalf("seed: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	categories := repository.NewCategoryRepo(db)
	types := repository.NewTypeRepo(db)
	history := repository.NewHistoryRepo(db)

	// Redis is optional: without it the cache and limiter middlewares
	// degrade to pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	invalidate := middleware.NewCacheInvalidator(cacheCfg, rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret, limiter)
	router.RegisterGenerator(e,
		handler.NewGeneratorHandler(cfg, categories, types, history),
		handler.NewHistoryHandler(history),
		cfg.JWTSecret, cache, invalidate)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(cfg, users, tokens, categories, types),
		handler.NewHistoryHandler(history),
		cfg.JWTSecret, invalidate)

	// Audit consumer runs for the lifetime of the process and reconnects
	// on broker failures.
	go func() {
		if err := queue.StartHidConsumer(); err != nil {
			log.Printf("hid consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
