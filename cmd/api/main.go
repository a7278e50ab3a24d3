package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pulsebot/internal/config"
	"pulsebot/internal/db"
	apihttp "pulsebot/internal/http"
	"pulsebot/internal/metrics"
	"pulsebot/internal/repository"
	"pulsebot/internal/service"
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

	questionRepo := repository.NewPgQuestionRepository(pool)
	responseRepo := repository.NewPgResponseRepository(pool)
	scoreRepo := repository.NewPgScoreRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)

	classifier := service.NewSentimentClassifier()
	selector := service.NewQuestionSelector(logger, questionRepo, responseRepo, scoreRepo, cfg.QuestionTopN)
	responseSvc := service.NewResponseService(logger, questionRepo, responseRepo, classifier)

	var promptLimiter service.PromptRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			promptLimiter = service.NewRedisPromptRateLimiter(redisClient, time.Duration(cfg.FeedbackInterval)*time.Second, 1)
		}
		cancel()
	}

	registry := metrics.NewRegistry()
	feedbackMetrics := metrics.NewFeedbackMetrics(registry)

	questionHandler := apihttp.NewQuestionHandler(logger, selector, questionRepo, promptLimiter, feedbackMetrics)
	responseHandler := apihttp.NewResponseHandler(logger, responseSvc, feedbackMetrics)
	userHandler := apihttp.NewUserHandler(logger, userRepo)
	router := apihttp.NewRouter(logger, questionHandler, responseHandler, userHandler, registry)

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
