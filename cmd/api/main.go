package main

import (
	"context"
	"fmt"

	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"taskboard/internal/adapter/auth"
	"taskboard/internal/adapter/cache"
	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/memory"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ordering"
	"taskboard/internal/core/ports"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()

	var (
		uow           ports.UnitOfWork
		storagePinger handlers.Pinger
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		store.Seed(memory.DefaultConfig()...)
		uow = store
		logger.Warn("using in-memory storage, data is lost on restart")
	default:
		db, err := dbadapter.ConnectDB(cfg)
		if err != nil {
			logger.Fatal("failed to connect to mysql", zap.Error(err))
		}
		defer closeDB(db, logger)
		uow = dbadapter.NewStore(db)
		storagePinger = handlers.PingFunc(db.PingContext)
	}

	configCache, cachePinger, closeCache := buildConfigCache(cfg, logger)
	defer closeCache()

	identity, err := buildIdentity(cfg)
	if err != nil {
		logger.Fatal("failed to configure authentication", zap.Error(err))
	}
	defer identity.Close()

	engine := ordering.NewEngine(ordering.Config{
		Gap:     cfg.OrderingGap,
		Spacing: cfg.OrderingSpacing,
		MinGap:  cfg.OrderingMinGap,
	})
	configService := appservice.NewConfigService(uow, configCache, cfg.DependencyTimeout, logger)
	watcherService := appservice.NewWatcherService(uow)
	notificationService := appservice.NewNotificationService(uow, watcherService, cfg.FanOutConcurrency, logger)
	taskService := appservice.NewTaskService(uow, configService, engine, notificationService, cfg.DependencyTimeout, logger)
	orderingService := appservice.NewOrderingService(uow, engine, logger)
	sectionService := appservice.NewSectionService(uow, engine, logger)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.TimeoutMiddleware(cfg.RequestTimeout),
	)
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health:        handlers.NewHealthHandler(storagePinger, cachePinger),
		Tasks:         handlers.NewTaskHandler(taskService, orderingService),
		Sections:      handlers.NewSectionHandler(sectionService, orderingService),
		Statuses:      handlers.NewConfigHandler(configService, domain.ConfigKindStatus),
		Priorities:    handlers.NewConfigHandler(configService, domain.ConfigKindPriority),
		Comments:      handlers.NewCommentHandler(taskService),
		Watch:         handlers.NewWatchHandler(watcherService),
		Notifications: handlers.NewNotificationHandler(notificationService, cfg.PollInterval),
	}, identity)

	addr := ":" + cfg.AppPort
	logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("storage", cfg.StorageDriver),
		zap.String("auth_mode", cfg.AuthMode),
	)
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}

// buildConfigCache returns the Redis cache when REDIS_URL is set and the
// process-local one otherwise. The pinger is nil without Redis.
func buildConfigCache(cfg *config.Config, logger *zap.Logger) (ports.ConfigCache, handlers.Pinger, func()) {
	if cfg.RedisURL == "" {
		return cache.NewMemoryConfigCache(cfg.ConfigCacheTTL), nil, func() {}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis not reachable at startup, config reads fall through to storage", zap.Error(err))
	}

	pinger := handlers.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return cache.NewRedisConfigCache(client, cfg.ConfigCacheTTL, logger), pinger, closeFn
}

func buildIdentity(cfg *config.Config) (*auth.JWTAuthenticator, error) {
	switch cfg.AuthMode {
	case config.AuthModeHS256:
		return auth.NewHS256([]byte(cfg.AuthSharedSecret), cfg.AuthAudience, cfg.AuthIssuer)
	case config.AuthModeJWKS:
		return auth.NewJWKS(cfg.AuthJWKSURL, cfg.AuthAudience, cfg.AuthIssuer)
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}
}

func closeDB(db *sqlx.DB, logger *zap.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close mysql connection", zap.Error(err))
	}
}
