package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	txcmd "github.com/eaglebank/ledger/internal/command"
	"github.com/eaglebank/ledger/internal/config"
	"github.com/eaglebank/ledger/internal/handler"
	txqry "github.com/eaglebank/ledger/internal/query"
	"github.com/eaglebank/ledger/internal/repository"
	"github.com/eaglebank/ledger/shared/events"
	"github.com/eaglebank/ledger/shared/logging"
	"github.com/eaglebank/ledger/shared/metrics"
	"github.com/eaglebank/ledger/shared/middleware"
	redisClient "github.com/eaglebank/ledger/shared/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Ledger service failed", "error", err)
		os.Exit(1)
	}
}

// run owns every resource so that its deferred closes execute before main
// decides the exit code.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database connection
	db, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", cfg.DatabaseDriver, err)
	}
	defer db.Close()

	// Redis is optional: without it reads go straight to the database and no
	// events are published.
	var (
		rdb       *goredis.Client
		publisher *events.Publisher
	)
	if cfg.RedisAddr != "" {
		redis, err := redisClient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		defer redis.Close()
		rdb = redis.Client
		publisher = events.NewPublisher(rdb)
	}

	m := metrics.New()

	// CQRS: write repo, read repo with optional view cache
	writeRepo := repository.NewTransactionWriteRepository(db)
	readRepo := repository.NewTransactionReadRepository(db, rdb)

	commandSvc := txcmd.NewTransactionCommandService(writeRepo, publisher, m)
	querySvc := txqry.NewTransactionQueryService(readRepo)

	transactionHandler := handler.NewTransactionHandler(commandSvc, querySvc)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(), m.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	transactionHandler.RegisterRoutes(router.Group(cfg.BasePath))

	// The subscriber must be gone before the deferred redis.Close runs.
	var wg sync.WaitGroup
	defer wg.Wait()
	if rdb != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			subscriber := events.NewSubscriber(rdb, events.SubscriberConfig{
				Group:    "ledger-projection",
				Consumer: "ledger-consumer-1",
				Stream:   events.TransactionEventsStream,
				Handler:  querySvc.HandleTransactionEvent,
			})
			if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("Subscriber stopped", "error", err)
			}
		}()
	}
	// Registered after wg.Wait so it runs first on every return path.
	defer cancel()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Ledger service starting", "env", cfg.Env, "port", cfg.Port, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		slog.Info("Shutting down...")
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server exited")
	return nil
}
