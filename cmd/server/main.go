package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/quietfeed/quietfeed/internal/adapters/config"
	"github.com/quietfeed/quietfeed/internal/adapters/database"
	redisAdapter "github.com/quietfeed/quietfeed/internal/adapters/redis"
	"github.com/quietfeed/quietfeed/internal/adapters/upstream"
	"github.com/quietfeed/quietfeed/internal/cache"
	"github.com/quietfeed/quietfeed/internal/headlines"
	"github.com/quietfeed/quietfeed/internal/reflection"
	"github.com/quietfeed/quietfeed/internal/server"
	"github.com/quietfeed/quietfeed/internal/themes"
	"github.com/quietfeed/quietfeed/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("quietfeed starting...",
		zap.String("port", cfg.Server.Port),
	)

	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(db.Conn(), cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := redisAdapter.New(&cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	headlineRepo := headlines.NewRepository(db.DB())
	themeRepo := themes.NewRepository(db.DB())

	pipeline := headlines.NewPipeline(
		headlineRepo,
		themeRepo,
		themes.NewClassifier(themes.DefaultKeywordIndex()),
		reflection.NewGenerator(reflection.DefaultPools(), nil),
	)

	daily := cache.NewDaily(
		redisClient,
		redisAdapter.NewKeyLock(redisClient),
		upstream.NewClient(&cfg.Upstream),
		pipeline,
		cfg.Cache.TTL,
	)

	srv := server.New(cfg.Server.Port, daily, themeRepo, map[string]server.HealthChecker{
		"database": db,
		"redis":    redisClient,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	}
}
