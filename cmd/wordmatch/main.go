package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordmatch/internal/config"
	"wordmatch/internal/domain"
	"wordmatch/internal/handler"
	"wordmatch/internal/httpserver"
	"wordmatch/internal/repository"
	"wordmatch/internal/repository/memory"
	"wordmatch/internal/repository/postgres"
	"wordmatch/internal/service"
	"wordmatch/internal/wordsource"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Load configuration first so LOG_LEVEL applies from the start
	cfg, cfgErr := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfgErr != nil {
		logger.Fatal("Failed to load config", zap.Error(cfgErr))
	}

	logger.Info("Starting wordmatch",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("bot", cfg.BotEnabled()),
		zap.Bool("database", cfg.DatabaseEnabled()),
	)

	// Load the word list; without words there is nothing to serve
	entries, err := loadWords(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load word list", zap.Error(err))
	}

	// Initialize repositories
	var (
		playerRepo repository.PlayerRepository
		resultRepo repository.ResultRepository
	)
	if cfg.DatabaseEnabled() {
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		playerRepo = postgres.NewPlayerRepo(db)
		resultRepo = postgres.NewResultRepo(db)
	} else {
		logger.Warn("DB_PASSWORD not set, results are kept in memory only")
		playerRepo = memory.NewPlayerRepo()
		resultRepo = memory.NewResultRepo()
	}

	// Initialize services
	statsService := service.NewStatsService(resultRepo, logger)
	gameService := service.NewGameService(entries, statsService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// HTTP API
	srv := httpserver.New(gameService, statsService, cfg.ClientOrigin, logger)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Telegram bot
	var bot *tele.Bot
	if cfg.BotEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.Bot.Token,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		authService := service.NewAuthService(playerRepo, cfg.Bot.Password)
		h := handler.NewHandler(bot, authService, gameService, statsService, logger)
		h.RegisterHandlers()

		go func() {
			logger.Info("Bot started successfully")
			bot.Start()
		}()
	}

	// Start cleanup job in background
	go runCleanupJob(ctx, statsService, gameService, cfg.SessionIdleTTL, logger)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	cancel()
	if bot != nil {
		bot.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown", zap.Error(err))
	}

	logger.Info("Stopped gracefully")
}

// newLogger builds the production logger at LOG_LEVEL
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg != nil {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}

// loadWords fetches the remote list and falls back to the local file
func loadWords(cfg *config.Config, logger *zap.Logger) ([]domain.Entry, error) {
	var sources []wordsource.Source
	if cfg.Words.URL != "" {
		sources = append(sources, wordsource.NewHTTPSource(cfg.Words.URL, cfg.Words.FetchTimeout))
	}
	if cfg.Words.LocalFile != "" {
		sources = append(sources, &wordsource.FileSource{Path: cfg.Words.LocalFile})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Words.FetchTimeout+5*time.Second)
	defer cancel()
	return wordsource.NewChain(logger, sources...).Load(ctx)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}
	return nil
}

// runCleanupJob removes old results daily and evicts idle sessions
func runCleanupJob(ctx context.Context, statsService *service.StatsService, gameService *service.GameService, idleTTL time.Duration, logger *zap.Logger) {
	// Run cleanup once at startup
	if err := statsService.CleanupOldData(ctx); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	cleanup := time.NewTicker(24 * time.Hour)
	defer cleanup.Stop()
	evict := time.NewTicker(idleTTL / 4)
	defer evict.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-cleanup.C:
			logger.Info("Running scheduled cleanup")
			if err := statsService.CleanupOldData(ctx); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
		case <-evict.C:
			gameService.EvictIdle(idleTTL)
		}
	}
}
