package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-list/internal/config"
	"github.com/BuzzLyutic/todo-list/internal/database"
	"github.com/BuzzLyutic/todo-list/internal/handler"
	"github.com/BuzzLyutic/todo-list/internal/repo"
	"github.com/BuzzLyutic/todo-list/internal/service"
	"github.com/BuzzLyutic/todo-list/internal/view"
)

func runServe(ctx context.Context) error {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	todoRepo, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
		return err
	}
	defer closeStore()

	views, err := view.New()
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	todoService := service.NewTodoService(todoRepo)
	todoHandler := handler.NewTodoHandler(todoService, views, logger)

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      handler.NewRouter(todoHandler, middleware.Logger),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	serveErr := make(chan error, 1)
	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed", zap.Error(err))
			return err
		}
		return nil
	case <-quit:
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped successfully")
	return nil
}

// openStore picks the repository for the configured driver. The returned func
// releases its resources.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.TodoRepository, func(), error) {
	if cfg.Storage.Driver == config.DriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return repo.NewMemoryRepo(nil), func() {}, nil
	}

	pool, err := database.Connect(ctx, poolConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Successfully connected to the Database!")

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(ctx, pool, logger, database.MigrateUp); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return repo.NewTodoRepo(pool), pool.Close, nil
}

func poolConfig(cfg config.Config) database.PoolConfig {
	return database.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}
}
