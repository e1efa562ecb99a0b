package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/secretsanta/internal/common/clock"
	"github.com/KirkDiggler/secretsanta/internal/common/shortid"
	"github.com/KirkDiggler/secretsanta/internal/common/uuid"
	"github.com/KirkDiggler/secretsanta/internal/config"
	"github.com/KirkDiggler/secretsanta/internal/database"
	"github.com/KirkDiggler/secretsanta/internal/handlers/api"
	"github.com/KirkDiggler/secretsanta/internal/handlers/discord"
	assignmentRepo "github.com/KirkDiggler/secretsanta/internal/repositories/assignment"
	eventRepo "github.com/KirkDiggler/secretsanta/internal/repositories/event"
	"github.com/KirkDiggler/secretsanta/internal/services/exchange"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events, assignments, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	exchangeSvc, err := exchange.New(&exchange.Config{
		EventRepo:        events,
		AssignmentRepo:   assignments,
		MaxDrawAttempts:  cfg.DrawMaxAttempts,
		Clock:            clock.New(),
		UUIDGenerator:    uuid.New(),
		ShortIDGenerator: shortid.New(shortid.DefaultLength),
		Logger:           logger,
	})
	if err != nil {
		logger.Fatal("failed to create exchange service", zap.Error(err))
	}

	// Initialize HTTP handler
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler, err := api.New(&api.Config{
		Service: exchangeSvc,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to create HTTP handler", zap.Error(err))
	}
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	go sweepPastEvents(ctx, exchangeSvc, cfg.CompletionSweepInterval, logger)

	// The Discord surface is optional
	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		bot, err = discord.New(&discord.Config{
			Token:           cfg.DiscordToken,
			ApplicationID:   cfg.ApplicationID,
			GuildID:         cfg.GuildID,
			ExchangeService: exchangeSvc,
			Logger:          logger.Named("discord"),
		})
		if err != nil {
			logger.Fatal("failed to create Discord bot", zap.Error(err))
		}
		if err := bot.Start(); err != nil {
			logger.Fatal("failed to start Discord bot", zap.Error(err))
		}
	}

	<-ctx.Done()
	logger.Info("shutting down")

	if bot != nil {
		if err := bot.Stop(); err != nil {
			logger.Error("error stopping bot", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down http server", zap.Error(err))
	}

	logger.Info("server has been shut down")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// openStore builds both repositories on the configured driver
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (eventRepo.Repository, assignmentRepo.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}

		events, err := eventRepo.NewSQLite(ctx, &eventRepo.SQLiteConfig{DB: db})
		if err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("failed to create event repository: %w", err)
		}
		assignments, err := assignmentRepo.NewSQLite(ctx, &assignmentRepo.SQLiteConfig{DB: db})
		if err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("failed to create assignment repository: %w", err)
		}
		return events, assignments, closer(db, logger), nil

	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		events, err := eventRepo.NewRedis(&eventRepo.Config{RedisClient: redisClient})
		if err != nil {
			redisClient.Close()
			return nil, nil, nil, fmt.Errorf("failed to create event repository: %w", err)
		}
		assignments, err := assignmentRepo.NewRedis(&assignmentRepo.Config{RedisClient: redisClient})
		if err != nil {
			redisClient.Close()
			return nil, nil, nil, fmt.Errorf("failed to create assignment repository: %w", err)
		}
		return events, assignments, closer(redisClient, logger), nil
	}
}

func closer(c io.Closer, logger *zap.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Error("error closing store", zap.Error(err))
		}
	}
}

// sweepPastEvents completes drawn events whose date has passed
func sweepPastEvents(ctx context.Context, svc exchange.Service, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.CompletePastEvents(ctx, &exchange.CompletePastEventsInput{}); err != nil {
				logger.Error("completion sweep failed", zap.Error(err))
			}
		}
	}
}
