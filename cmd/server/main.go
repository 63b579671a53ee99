package main

import (
	"context"
	"log"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskforge/backend/api/handler"
	"github.com/taskforge/backend/internal/config"
	"github.com/taskforge/backend/internal/generator"
	"github.com/taskforge/backend/internal/identity"
	"github.com/taskforge/backend/internal/infrastructure/auditlog"
	"github.com/taskforge/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskforge/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskforge/backend/internal/infrastructure/redis"
	"github.com/taskforge/backend/internal/metrics"
	"github.com/taskforge/backend/internal/middleware"
	"github.com/taskforge/backend/internal/router"
	"github.com/taskforge/backend/internal/services"
	"github.com/taskforge/backend/internal/services/lifecycle"
	"github.com/taskforge/backend/pkg/httpcontext"
	"github.com/taskforge/backend/pkg/logger"
	"github.com/taskforge/backend/repository"
	pgRepo "github.com/taskforge/backend/repository/postgres"
	redisRepo "github.com/taskforge/backend/repository/redis"
	authUC "github.com/taskforge/backend/usecase/auth"
	taskUC "github.com/taskforge/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	var genCache repository.GenerationCache
	var redisClient *goRedis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		genCache = redisRepo.NewGenerationCache(redisClient, cfg.Redis.CacheTTL)
	}

	var auditStore *auditlog.Store
	if cfg.Audit.Enabled {
		auditStore, err = auditlog.Open(cfg.Audit.Path, "audit")
		if err != nil {
			zapLogger.Fatal("failed to open audit log", zap.Error(err))
		}
		manager.Register("audit_log", func(ctx context.Context) error {
			return auditStore.Close()
		})
	}

	mon := monitor.New(pool, redisClient, auditStore, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	m := metrics.New()

	verifier := newVerifier(cfg, zapLogger)

	geminiClient := generator.NewClient(cfg.Generator.APIKey, zapLogger,
		generator.WithBaseURL(cfg.Generator.BaseURL),
		generator.WithModel(cfg.Generator.Model),
		generator.WithTimeout(cfg.Generator.Timeout),
	)
	titleGen := services.NewInstrumentedGenerator(geminiClient, m)

	userRepo := pgRepo.NewUserRepository(pool)
	taskRepo := pgRepo.NewTaskRepository(pool)

	var audit *services.AuditBridge
	if auditStore != nil {
		audit = services.NewAuditBridge(auditStore)
	}

	authUseCase := authUC.New(userRepo, audit, zapLogger)
	taskUseCase := taskUC.New(taskRepo, titleGen, genCache, audit, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:   apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.BearerAuth(verifier, ctxAdapter, zapLogger)
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigin)
	r := router.New(handlers, authMiddleware, corsMiddleware, m)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

func newVerifier(cfg *config.Config, zapLogger *zap.Logger) identity.Verifier {
	if cfg.Identity.Mode == config.IdentityModeLocal {
		zapLogger.Warn("using local identity verification; not for production")
		return identity.NewJWTVerifier(cfg.Identity.Secret, zapLogger)
	}
	return identity.NewRemoteVerifier(cfg.Identity.VerifyURL, cfg.Identity.Timeout, zapLogger)
}
