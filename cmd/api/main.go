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

	"github.com/go-otp-nosql/internal/config"
	"github.com/go-otp-nosql/internal/domain"
	"github.com/go-otp-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-otp-nosql/internal/infrastructure/jwt"
	"github.com/go-otp-nosql/internal/infrastructure/smtp"
	"github.com/go-otp-nosql/internal/infrastructure/sns"
	transporthttp "github.com/go-otp-nosql/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	ctx := context.Background()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		slog.Error("dynamodb client", "err", err)
		os.Exit(1)
	}
	dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTables)

	// JWT provider is optional; without it the issue route is not mounted.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		slog.Warn("JWT provider not available", "err", err)
	}

	// Providers fall back to console delivery when unconfigured.
	var mailer smtp.Mailer
	if m, err := smtp.NewMailer(cfg); err == nil {
		mailer = m
	} else {
		slog.Warn("email provider not available, using console delivery", "err", err)
	}
	var smsSender sns.SMSSender
	if s, err := sns.NewSender(ctx, cfg); err == nil {
		smsSender = s
	} else {
		slog.Warn("SMS provider not available, using console delivery", "err", err)
	}

	deps := &transporthttp.Deps{
		Customers:   dynamo.NewRecordRepo(dynamoClient, cfg.DynamoTables.Customers, domain.RoleCustomer),
		Vendors:     dynamo.NewRecordRepo(dynamoClient, cfg.DynamoTables.Vendors, domain.RoleVendor),
		Admins:      dynamo.NewRecordRepo(dynamoClient, cfg.DynamoTables.Admins, domain.RoleAdmin),
		Mailer:      mailer,
		SMSSender:   smsSender,
		JWTProvider: jwtProvider,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      transporthttp.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
