package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weddingrsvp/internal/config"
	"weddingrsvp/internal/database"
	"weddingrsvp/internal/handlers"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/repository"
	"weddingrsvp/internal/security"
	"weddingrsvp/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.UsesDefaultSecret() {
		log.Warn("ADMIN_JWT_SECRET not set, using the development secret")
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	// os.Exit skips deferred calls, so close before bailing out
	fatal := func(msg string, args ...any) {
		db.Close()
		log.Fatal(msg, args...)
	}

	log.Info("Database connection established", "type", cfg.DatabaseType, "path", db.SnapshotPath())

	ctx := context.Background()
	applied, err := db.RunMigrations(ctx)
	if err != nil {
		fatal("Failed to run migrations", "error", err)
	}
	log.Info("Migrations completed successfully", "applied", applied)

	familyRepo := repository.NewFamilyRepository(db)
	confirmationRepo := repository.NewConfirmationRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	emailService, err := service.NewEmailService(ctx, service.EmailSettings{
		AWSRegion: cfg.AWSRegion,
		FromEmail: cfg.SESFromEmail,
		FromName:  cfg.SESFromName,
		NotifyTo:  cfg.RSVPNotifyEmail,
	}, familyRepo, log)
	if err != nil {
		fatal("Failed to initialize email service", "error", err)
	}

	var notifier service.Notifier
	if emailService.IsEnabled() {
		notifier = emailService
	}

	clientIP, err := security.NewClientIPResolver(cfg.TrustedProxies)
	if err != nil {
		fatal("Invalid TRUSTED_PROXIES", "error", err)
	}

	tokens := security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(db, adminRepo, tokens, log)
	familyService := service.NewFamilyService(db, familyRepo, confirmationRepo, log)
	accessService := service.NewAccessService(familyRepo)
	confirmationService := service.NewConfirmationService(db, confirmationRepo, notifier, log)

	handler := handlers.NewRouter(handlers.RouterConfig{
		AuthService:         authService,
		FamilyService:       familyService,
		AccessService:       accessService,
		ConfirmationService: confirmationService,
		LoginLimiter:        security.NewRateLimiter(cfg.LoginRateLimit, time.Minute),
		AccessLimiter:       security.NewRateLimiter(cfg.AccessRateLimit, time.Minute),
		ClientIP:            clientIP,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		MaxBodyBytes:        cfg.MaxBodyBytes,
		Logger:              log,
	})

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("API running", "url", "http://localhost"+addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}
