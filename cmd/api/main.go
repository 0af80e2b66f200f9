package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"induk-agents/internal/agents"
	"induk-agents/internal/config"
	"induk-agents/internal/conversation"
	"induk-agents/internal/db"
	apihttp "induk-agents/internal/http"
	"induk-agents/internal/llm"
	"induk-agents/internal/metrics"
	"induk-agents/internal/repository"
	"induk-agents/internal/service"
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

	overrides, err := config.LoadAgentOverrides(cfg.AgentsFile)
	if err != nil {
		logger.Fatal("agents file", zap.Error(err))
	}
	registry, err := agents.NewRegistry(overrides)
	if err != nil {
		logger.Fatal("agent registry", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	llmClient, err := llm.NewClient(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}
	routerSvc := service.NewRouterService(llmClient, registry, logger, m)
	responderSvc := service.NewResponderService(llmClient, registry, &cfg.ResponderTemperature, logger, m)

	var transcripts repository.TranscriptRepository
	var recorder conversation.Recorder
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()

		repo := repository.NewPgTranscriptRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal("transcript schema", zap.Error(err))
		}
		transcripts = repo
		recorder = repo
		logger.Info("transcript archive enabled")
	}

	var limiter service.SubmitRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisSubmitRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)
		}
		cancel()
	}
	if limiter == nil {
		limiter = service.NewMemorySubmitRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax, cfg.ConversationCacheSize)
	}

	store, err := conversation.NewStore(cfg.ConversationCacheSize, func(id string) *conversation.Conversation {
		opts := []conversation.Option{
			conversation.WithRoutingDelay(cfg.RoutingDelay),
			conversation.WithLogger(logger),
			conversation.WithMetrics(m),
		}
		if recorder != nil {
			opts = append(opts, conversation.WithRecorder(recorder))
		}
		return conversation.New(id, routerSvc, responderSvc, opts...)
	}, m)
	if err != nil {
		logger.Fatal("conversation store", zap.Error(err))
	}

	var (
		jwtSvc *service.JWTService
		authH  *apihttp.AuthHandler
	)
	if cfg.AuthEnabled() {
		jwtSvc = service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
		authH = apihttp.NewAuthHandler(logger, service.NewOperatorAuth(cfg.OperatorKeyHash, jwtSvc))
		if cfg.OperatorKeyHash == "" {
			logger.Warn("jwt enabled without OPERATOR_KEY_HASH; tokens cannot be issued")
		}
	} else {
		logger.Warn("jwt secret not configured, conversation routes are open")
	}

	convH := apihttp.NewConversationHandler(logger, store, registry, limiter, transcripts)
	router := apihttp.NewRouter(logger, convH, authH, jwtSvc, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.HTTPPort),
			zap.String("llm_provider", cfg.LLMProvider),
			zap.String("llm_model", cfg.LLMModel),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
