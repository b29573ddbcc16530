package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"weddingrsvp/internal/config"
	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/repository"
	"weddingrsvp/internal/security"
	"weddingrsvp/internal/service"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "Admin email (default: $ADMIN_EMAIL)")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "Admin password (default: $ADMIN_PASSWORD)")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// .env may have provided the variables after flag defaults were read
	if *email == "" {
		*email = os.Getenv("ADMIN_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *email == "" || *password == "" {
		fmt.Println("Usage: seed-admin -email <email> -password <password>")
		fmt.Println("   or: ADMIN_EMAIL=... ADMIN_PASSWORD=... seed-admin")
		os.Exit(1)
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

	ctx := context.Background()
	if _, err := db.RunMigrations(ctx); err != nil {
		fatal("Failed to run migrations", "error", err)
	}

	authService := service.NewAuthService(db, repository.NewAdminRepository(db), security.NewTokenService(cfg.JWTSecret, cfg.TokenTTL), log)

	created, err := authService.ProvisionAdmin(ctx, *email, *password)
	if err != nil {
		fatal("Failed to provision admin", "error", err)
	}

	if created {
		fmt.Printf("Admin %s created\n", *email)
	} else {
		fmt.Printf("Admin %s password updated\n", *email)
	}
}
