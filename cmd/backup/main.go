package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"weddingrsvp/internal/config"
	"weddingrsvp/internal/database"
	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/repository"
	"weddingrsvp/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing guest data before import (WARNING: destructive)")
	importYes := importCmd.Bool("yes", false, "Skip the confirmation prompt for -clear")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

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

	backupService := service.NewBackupService(db, repository.NewFamilyRepository(db), repository.NewConfirmationRepository(db), log)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, log, fatal, backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, log, fatal, backupService, *importInput, *importClear, *importYes)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, log *logger.Logger, fatal func(string, ...any), backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatal("Failed to create output directory", "error", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		fatal("Failed to create output file", "error", err)
	}

	log.Info("Exporting database", "output", outputPath)
	if _, err := backupService.Export(ctx, file); err != nil {
		file.Close()
		fatal("Export failed", "error", err)
	}
	if err := file.Close(); err != nil {
		fatal("Failed to write output file", "error", err)
	}

	fileInfo, err := os.Stat(outputPath)
	if err == nil {
		log.Info("Export complete", "bytes", fileInfo.Size())
	}
}

func handleImport(ctx context.Context, log *logger.Logger, fatal func(string, ...any), backupService *service.BackupService, inputPath string, clearData, skipPrompt bool) {
	file, err := os.Open(inputPath)
	if err != nil {
		fatal("Failed to open input file", "error", err)
	}
	defer file.Close()

	if clearData && !skipPrompt {
		fmt.Print("WARNING: This will delete all families, members and confirmations. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Info("Import cancelled")
			return
		}
	}

	log.Info("Importing database", "input", inputPath)
	if _, err := backupService.Import(ctx, file, clearData); err != nil {
		fatal("Import failed", "error", err)
	}

	log.Info("Import complete")
}

func printUsage() {
	fmt.Println("Wedding RSVP Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export guest list to JSON file")
	fmt.Println("  backup import [options]    Import guest list from JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing guest data before import (WARNING: destructive)")
	fmt.Println("  -yes              Do not ask for confirmation when clearing")
	fmt.Println()
	fmt.Println("Admin users are not part of the backup; run seed-admin after restoring.")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./data/app.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
