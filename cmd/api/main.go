package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/cache"
	"github.com/bicosteve/job-board-api/internal/config"
	"github.com/bicosteve/job-board-api/internal/db"
	apihttp "github.com/bicosteve/job-board-api/internal/http"
	"github.com/bicosteve/job-board-api/internal/repository"
	"github.com/bicosteve/job-board-api/internal/security"
	"github.com/bicosteve/job-board-api/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrations", zap.Error(err))
	}

	redisClient := cache.NewClient(cfg)
	defer redisClient.Close()

	if err := cache.Ping(ctx, redisClient); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}

	accountRepo := repository.NewPgAccountRepository(pool)
	jobRepo := repository.NewPgJobRepository(pool)
	applicationRepo := repository.NewPgApplicationRepository(pool)

	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	codec := security.NewTokenCodec(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	authCache := cache.NewAuthCache(redisClient)

	authSvc := service.NewAuthService(logger, accountRepo, authCache, hasher, codec,
		time.Duration(cfg.ResetMaxAgeSecs)*time.Second)
	jobSvc := service.NewJobService(logger, jobRepo)
	appSvc := service.NewApplicationService(logger, applicationRepo, jobRepo)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	jobHandler := apihttp.NewJobHandler(logger, jobSvc)
	appHandler := apihttp.NewApplicationHandler(logger, appSvc)
	router := apihttp.NewRouter(logger, codec, authHandler, jobHandler, appHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
