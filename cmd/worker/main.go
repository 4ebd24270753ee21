// Package main — точка входа фоновых процессов Vocal Studio Hub.
//
// Worker выполняет периодические задачи студии:
//   - ежемесячное проведение аренды зала в книге расходов
//   - Telegram-напоминания о ближайших занятиях
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vocal-hub/vocal-studio-hub/config"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/external/telegram"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/messaging"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/persistence/postgres"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/persistence/redis"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/scheduler"
	"github.com/vocal-hub/vocal-studio-hub/internal/infrastructure/scheduler/jobs"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
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
	log := setupLogger(cfg)
	log.Info("starting Vocal Studio Hub Worker",
		"env", string(cfg.App.Environment),
		"debug", cfg.App.Debug,
	)

	if !cfg.Scheduler.Enabled {
		log.Warn("scheduler is disabled, nothing to do")
		return nil
	}

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

	// Worker также должен иметь актуальную схему.
	log.Info("checking database migrations...")
	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database schema is up to date")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var summaryCache finance.SummaryCache

	if !cfg.Redis.Disabled && cfg.Features.IsEnabled(config.FeatureSummaryCache) {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB

		redisCache, err := redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, cache invalidation disabled", "error", err)
		} else {
			defer redisCache.Close()
			summaryCache = redis.NewSummaryCache(redisCache)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ И EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	lessonRepo := postgres.NewLessonRepository(dbConn)
	studentRepo := postgres.NewStudentRepository(dbConn)
	expenseRepo := postgres.NewExpenseRepository(dbConn)
	rentRepo := postgres.NewRentRepository(dbConn)

	eventBus := messaging.NewEventBus(logger.New(logger.Options{
		Level: logger.ParseLevel(cfg.App.LogLevel),
	}))

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ TELEGRAM КЛИЕНТА
	// ─────────────────────────────────────────────────────────────────────────
	tgConfig := telegram.DefaultConfig(cfg.Telegram.Token, cfg.Telegram.ChatID)
	tgConfig.Logger = log
	tgClient := telegram.NewClient(tgConfig)
	if tgClient.Enabled() {
		log.Info("Telegram notifications enabled", "chat_id", cfg.Telegram.ChatID)

		// Проведение аренды подтверждается сообщением в Telegram.
		eventBus.Subscribe(shared.EventRentPosted, shared.EventHandlerFunc(
			func(ctx context.Context, e shared.Event) error {
				rent, ok := e.(shared.RentPostedEvent)
				if !ok {
					return nil
				}
				text := fmt.Sprintf("Аренда зала за %s проведена: %d руб.",
					timeutil.MonthNameRu(rent.Month.Month()), rent.Amount)
				return tgClient.SendMessage(ctx, text)
			}))
	} else {
		log.Info("Telegram notifications disabled: no bot token")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. РЕГИСТРАЦИЯ ЗАДАЧ
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.New(scheduler.Config{Logger: log})

	if cfg.Features.IsEnabled(config.FeatureRentPosting) {
		rentJob := jobs.NewPostRentJob(rentRepo, expenseRepo, summaryCache, eventBus, log)
		if err := sched.Register(rentJob, scheduler.DailyAt(cfg.Scheduler.RentCheckHour, 0)); err != nil {
			return fmt.Errorf("register rent job: %w", err)
		}
	}

	if cfg.Features.IsEnabled(config.FeatureLessonReminders) {
		remindersJob := jobs.NewLessonRemindersJob(
			lessonRepo,
			studentRepo,
			tgClient,
			log,
			jobs.DefaultLessonRemindersConfig(cfg.Scheduler.RemindersUserID),
		)
		if err := sched.Register(remindersJob, scheduler.Every(cfg.Scheduler.RemindersInterval)); err != nil {
			return fmt.Errorf("register reminders job: %w", err)
		}
	}

	if len(sched.ListJobs()) == 0 {
		log.Warn("no jobs enabled, nothing to do")
		return nil
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	log.Info("Vocal Studio Hub Worker is running", "jobs", len(sched.ListJobs()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown...")
	if err := sched.Stop(); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
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

	return postgres.NewConnection(ctx, pgCfg)
}
