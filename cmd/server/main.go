// Package main — точка входа HTTP API сервера Vocal Studio Hub.
//
// Сервер поднимает REST API для календаря занятий, учеников,
// абонементов и финансового учёта. Архитектура следует принципам
// Clean Architecture: domain → application → infrastructure → interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vocal-hub/vocal-studio-hub/config"
	"github.com/vocal-hub/vocal-studio-hub/internal/application/command"
	"github.com/vocal-hub/vocal-studio-hub/internal/application/query"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/messaging"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/persistence/postgres"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/persistence/redis"
	httpapi "github.com/vocal-hub/vocal-studio-hub/internal/interface/http"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Level:     logger.ParseLevel(cfg.App.LogLevel),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting Vocal Studio Hub API",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := connectPostgres(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("checking database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var redisCache *redis.Cache
	var summaryCache finance.SummaryCache

	if !cfg.Redis.Disabled && cfg.Features.IsEnabled(config.FeatureSummaryCache) {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, summary caching disabled", logger.Err(err))
		} else {
			defer redisCache.Close()
			summaryCache = redis.NewSummaryCache(redisCache)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	userRepo := postgres.NewUserRepository(dbConn)
	studentRepo := postgres.NewStudentRepository(dbConn)
	lessonRepo := postgres.NewLessonRepository(dbConn)
	subscriptionRepo := postgres.NewSubscriptionRepository(dbConn)
	expenseRepo := postgres.NewExpenseRepository(dbConn)
	incomeRepo := postgres.NewIncomeRepository(dbConn)
	rentRepo := postgres.NewRentRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	eventBus := messaging.NewEventBus(log)

	// Все доменные события попадают в журнал аудита.
	auditLog := log.With(logger.Component("audit"))
	eventBus.SubscribeAll(shared.EventHandlerFunc(
		func(ctx context.Context, e shared.Event) error {
			auditLog.Info("domain event",
				logger.String("event_type", string(e.EventType())),
				logger.Int64("aggregate_id", e.AggregateID()),
			)
			return nil
		}))

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ИНИЦИАЛИЗАЦИЯ ОБРАБОТЧИКОВ КОМАНД И ЗАПРОСОВ (CQRS)
	// ─────────────────────────────────────────────────────────────────────────
	scheduleLesson := command.NewScheduleLessonHandler(lessonRepo, studentRepo, eventBus, log)
	finishLesson := command.NewFinishLessonHandler(lessonRepo, studentRepo, lessonRepo, eventBus, log)
	purchaseSubscription := command.NewPurchaseSubscriptionHandler(
		subscriptionRepo, studentRepo, summaryCache, eventBus, log)
	financeSummary := query.NewFinanceSummaryHandler(expenseRepo, incomeRepo, summaryCache, log)
	upcomingLessons := query.NewUpcomingLessonsHandler(lessonRepo, studentRepo)

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ИНИЦИАЛИЗАЦИЯ HTTP СЕРВЕРА
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpapi.DefaultConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	serverCfg.ReadTimeout = cfg.Server.ReadTimeout
	serverCfg.WriteTimeout = cfg.Server.WriteTimeout
	serverCfg.IdleTimeout = cfg.Server.IdleTimeout
	serverCfg.EnableCORS = cfg.Server.EnableCORS
	serverCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	serverCfg.RateLimitPerMinute = cfg.Server.RateLimitPerMinute
	serverCfg.AllowRegistration = cfg.Server.AllowRegistration

	healthChecks := map[string]httpapi.HealthChecker{
		"postgres": dbConn.Ping,
	}
	if redisCache != nil {
		healthChecks["redis"] = redisCache.Ping
	}

	server := httpapi.NewServer(serverCfg, httpapi.Dependencies{
		UserRepo:             userRepo,
		LessonRepo:           lessonRepo,
		StudentRepo:          studentRepo,
		SubscriptionRepo:     subscriptionRepo,
		ExpenseRepo:          expenseRepo,
		IncomeRepo:           incomeRepo,
		RentRepo:             rentRepo,
		ScheduleLesson:       scheduleLesson,
		FinishLesson:         finishLesson,
		PurchaseSubscription: purchaseSubscription,
		FinanceSummary:       financeSummary,
		UpcomingLessons:      upcomingLessons,
		Tokens:               httpapi.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		HealthChecks:         healthChecks,
		Logger:               log,
	})

	errCh := server.StartAsync()
	log.Info("Vocal Studio Hub API is running")

	// ─────────────────────────────────────────────────────────────────────────
	// 10. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown...",
		logger.String("timeout", cfg.App.ShutdownTimeout.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	log.Info("shutdown completed successfully")
	return nil
}

// connectPostgres подключается по DATABASE_URL, либо собирает DSN из
// отдельных полей конфигурации.
func connectPostgres(ctx context.Context, cfg *config.Config) (*postgres.Connection, error) {
	if cfg.Database.URL != "" {
		return postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	}

	pgCfg := postgres.DefaultConfig()
	pgCfg.Host = cfg.Database.Host
	pgCfg.Port = cfg.Database.Port
	pgCfg.User = cfg.Database.User
	pgCfg.Password = cfg.Database.Password
	pgCfg.Database = cfg.Database.Database
	pgCfg.SSLMode = cfg.Database.SSLMode
	pgCfg.MaxConns = int32(cfg.Database.MaxConns)
	pgCfg.MinConns = int32(cfg.Database.MinConns)
	pgCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	pgCfg.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	return postgres.NewConnection(ctx, pgCfg)
}
