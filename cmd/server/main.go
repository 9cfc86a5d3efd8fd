package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/grocermatch/backend/config"
	httpDelivery "github.com/grocermatch/backend/internal/delivery/http"
	"github.com/grocermatch/backend/internal/domain"
	"github.com/grocermatch/backend/internal/infrastructure/cache"
	"github.com/grocermatch/backend/internal/infrastructure/grocer"
	"github.com/grocermatch/backend/internal/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting grocermatch backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type))

	var cacheRepo domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		cacheRepo = redisCache
	default:
		cacheRepo = cache.NewMemoryCache()
	}

	catalogClient := grocer.NewClient(
		cfg.Grocer.APIKey,
		cfg.Grocer.BaseURL,
		cacheRepo,
		cfg.Cache.TTL,
		logger,
	)

	pricingService := usecase.NewPricingService(catalogClient, usecase.PricingConfig{
		Concurrency:    cfg.Matching.Concurrency,
		CandidateLimit: cfg.Matching.CandidateLimit,
		Weights: usecase.ScoringWeights{
			NameSimilarity: cfg.Matching.NameSimilarity,
			SizeProximity:  cfg.Matching.SizeProximity,
			CategoryMatch:  cfg.Matching.CategoryMatch,
			Availability:   cfg.Matching.Availability,
			Promo:          cfg.Matching.Promo,
			FormPenalty:    cfg.Matching.FormPenalty,
		},
	}, logger)

	handler := httpDelivery.NewHandler(pricingService, cfg.Grocer.DefaultLocationID)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// buildLogger returns a production JSON logger, or a human-readable
// development logger outside production, honoring the configured level.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Server.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
