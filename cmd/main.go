package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/superadriano/hana-backend/config"
	"github.com/superadriano/hana-backend/db"
	authhandler "github.com/superadriano/hana-backend/internal/auth/handler"
	authrepo "github.com/superadriano/hana-backend/internal/auth/repository/postgres"
	authservice "github.com/superadriano/hana-backend/internal/auth/service"
	cardhandler "github.com/superadriano/hana-backend/internal/card/handler"
	cardrepo "github.com/superadriano/hana-backend/internal/card/repository/postgres"
	cardservice "github.com/superadriano/hana-backend/internal/card/service"
	"github.com/superadriano/hana-backend/internal/ratelimit"
	"github.com/superadriano/hana-backend/internal/sms"
	"github.com/superadriano/hana-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialise logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		zlog.Fatal("database migration failed", zap.Error(err))
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	repo := authrepo.NewPostgresRepository(pool)
	cardRepository := cardrepo.NewPostgresRepository(pool)

	window := time.Duration(cfg.RateLimitWindowMin) * time.Minute
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimitMax, window)
		zlog.Info("using redis rate limiter", zap.String("addr", cfg.RedisAddr))
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitMax, window)
	}

	var sender sms.Sender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		sender = sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	} else {
		sender = sms.NewLogSender(zlog)
	}

	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	authService := authservice.NewAuthService(repo, tokenService, limiter, sender, cfg, zlog)
	cardService := cardservice.NewCardService(cardRepository)

	sweeper := authservice.NewSweeper(repo, time.Duration(cfg.SweepIntervalMin)*time.Minute, zlog)
	go sweeper.Run(ctx)

	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": cfg.Env,
		})
	})

	authHandler := authhandler.NewAuthHandler(authService, zlog)
	authhandler.RegisterRoutes(app, authHandler)

	cardHandler := cardhandler.NewCardHandler(cardService, zlog)
	cardhandler.RegisterRoutes(app, cardHandler, authHandler.RequireAuth())

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("hana backend listening",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Env),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
