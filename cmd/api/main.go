package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"evolve-coach/internal/config"
	"evolve-coach/internal/db"
	"evolve-coach/internal/email"
	apihttp "evolve-coach/internal/http"
	"evolve-coach/internal/llm"
	"evolve-coach/internal/repository"
	"evolve-coach/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	emotionRepo := repository.NewPgEmotionRepository(pool)
	goalRepo := repository.NewPgGoalRepository(pool)
	actionRepo := repository.NewPgActionRepository(pool)
	progressRepo := repository.NewPgProgressRepository(pool)
	achievementRepo := repository.NewPgAchievementRepository(pool)
	insightRepo := repository.NewPgInsightRepository(pool)

	var llmClient llm.Client
	if cfg.LLMAPIKey != "" && cfg.LLMModel != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger)
	} else {
		logger.Warn("llm not configured, using rule-based replies only")
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		turnLimiter service.TurnRateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			turnLimiter = service.NewRedisTurnRateLimiter(redisClient, cfg.TurnRateWindow, cfg.TurnRateMax)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}
	if turnLimiter == nil {
		turnLimiter = service.NewTurnRateLimiter(cfg.TurnRateWindow, cfg.TurnRateMax)
	}

	jwtSvc := service.NewJWTServiceWithStore(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, tokenStore)

	var responder service.AIResponder
	var insightSvc *service.InsightService
	if llmClient != nil {
		responder = service.NewLLMResponder(llmClient, logger)
		insightSvc = service.NewInsightService(logger, insightRepo, llmClient)
	}

	userSvc := service.NewUserService(logger, userRepo)
	coachingSvc := service.NewCoachingService(logger, sessionRepo, messageRepo, emotionRepo, responder, insightSvc, turnLimiter)
	goalSvc := service.NewGoalService(logger, goalRepo, actionRepo, progressRepo, achievementRepo, llmClient, nil)
	dashboardSvc := service.NewDashboardService(logger, goalRepo, actionRepo, progressRepo, achievementRepo, sessionRepo, nil)
	reminderSvc := service.NewReminderService(logger, userRepo, actionRepo, emailSender)

	go reminderSvc.RunDaily(ctx)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	coachingHandler := apihttp.NewCoachingHandler(logger, coachingSvc, insightSvc)
	goalHandler := apihttp.NewGoalHandler(logger, goalSvc)
	dashboardHandler := apihttp.NewDashboardHandler(logger, dashboardSvc)
	wsHandler := apihttp.NewWSHandler(logger, jwtSvc, coachingSvc)

	router := apihttp.NewRouter(logger, userHandler, coachingHandler, goalHandler, dashboardHandler, wsHandler, apihttp.JWTAuthMiddleware(jwtSvc))

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
