package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-todo-nosql/internal/config"
	"github.com/go-todo-nosql/internal/infrastructure/awscfg"
	"github.com/go-todo-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-todo-nosql/internal/infrastructure/jwt"
	s3infra "github.com/go-todo-nosql/internal/infrastructure/s3"
	transporthttp "github.com/go-todo-nosql/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awscfg.Load(ctx, cfg)
	if err != nil {
		return err
	}

	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	if cfg.DynamoBootstrap {
		if err := dynamo.Bootstrap(ctx, dynamoClient, cfg.TodosTable, cfg.TodosIndex); err != nil {
			return err
		}
	}
	if err := dynamo.VerifyTodosTable(ctx, dynamoClient, cfg.TodosTable, cfg.TodosIndex); err != nil {
		return err
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		return fmt.Errorf("jwt provider: %w", err)
	}

	s3Client := s3infra.NewClient(awsCfg, cfg.AWSEndpointURL)

	deps := &transporthttp.Deps{
		TodoRepo:    dynamo.NewTodoRepo(dynamoClient, cfg.TodosTable, cfg.TodosIndex),
		Attachments: s3infra.NewStore(s3Client, cfg.AttachmentBucket),
		Verifier:    jwtProvider,
		Logger:      logger,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(ctx, cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv,
			"table", cfg.TodosTable, "bucket", cfg.AttachmentBucket, "bindOnIssue", cfg.BindOnIssue)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newLogger emits text in development and JSON everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.AppLogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
