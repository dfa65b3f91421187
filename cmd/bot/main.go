package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/timetable_bot/internal/app"
	"github.com/Freeeeeet/timetable_bot/internal/cache"
	"github.com/Freeeeeet/timetable_bot/internal/config"
	"github.com/Freeeeeet/timetable_bot/internal/controller"
	"github.com/Freeeeeet/timetable_bot/internal/repository"
	"github.com/Freeeeeet/timetable_bot/internal/secret"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/Freeeeeet/timetable_bot/internal/untis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting timetable bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Bool("cache_enabled", cfg.CacheEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// Postgres
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("✅ Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		_ = migrator.Close()
		return err
	}
	_ = migrator.Close()

	box, err := secret.NewBox(cfg.SecretKey)
	if err != nil {
		return err
	}

	// Кэш недель: redis, если настроен
	checks := map[string]app.Pinger{"postgres": pool}
	var weekCache cache.WeekCache = cache.Nop{}
	if cfg.CacheEnabled() {
		rdb, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return err
		}
		defer rdb.Close()

		weekCache = rdb
		checks["redis"] = rdb
		logger.Info("✅ Connected to redis", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Warn("REDIS_ADDR is not set, week cache disabled")
	}

	loc := cfg.Location()
	untisClient := untis.NewClient(cfg.UntisTimeout, cfg.UntisClientName, logger)

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)
	markedRepo := repository.NewMarkedCourseRepository(pool)

	// Сервисы
	services := controller.Services{
		User:      service.NewUserService(userRepo, logger),
		Account:   service.NewAccountService(accountRepo, untisClient, box, weekCache, logger),
		Timetable: service.NewTimetableService(accountRepo, markedRepo, untisClient, box, weekCache, cfg.CacheTTL, loc, logger),
		Course:    service.NewCourseService(accountRepo, markedRepo, untisClient, box, weekCache, cfg.CacheTTL, loc, logger),
		Export:    service.NewExportService(loc, logger),
	}

	b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		logger.Error("Telegram error", zap.Error(err))
	}))
	if err != nil {
		return err
	}

	botController := controller.NewBotController(b, services, loc, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы
		logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	// Прогрев кэша имеет смысл только с redis
	interval := cfg.PrefetchInterval
	if !cfg.CacheEnabled() {
		interval = 0
	}
	scheduler := app.NewScheduler(services.Timetable, interval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if cfg.HTTPAddr != "" {
		ops := app.NewOpsServer(cfg.HTTPAddr, checks, logger)
		ops.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := ops.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Ops server shutdown failed", zap.Error(err))
			}
		}()
	}

	// Блокируется до отмены ctx
	return botController.Start(ctx)
}
