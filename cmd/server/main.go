package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	authhandler "email-auth-service/internal/auth/handler"
	authservice "email-auth-service/internal/auth/service"
	"email-auth-service/internal/config"
	"email-auth-service/internal/db"
	"email-auth-service/internal/mail"
	"email-auth-service/internal/security"
	"email-auth-service/internal/server"
	userhandler "email-auth-service/internal/user/handler"
	userrepo "email-auth-service/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	mailer, err := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SenderEmail)
	if err != nil {
		logger.Fatal("mailer", zap.Error(err))
	}

	users := userrepo.NewPostgresRepository(pool)
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL())

	authSvc := authservice.NewAuthService(users, hasher, tokens, mailer, cfg.VerifyTTL(), cfg.ResetTTL(), logger)
	cookies := authhandler.NewCookieWriter(cfg.TokenTTL(), cfg.IsProduction())

	router := server.NewRouter(
		authhandler.NewAuthHandler(authSvc, cookies, logger),
		userhandler.NewUserHandler(users, logger),
		tokens,
		cfg.CORSOrigin,
		logger,
	)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}
