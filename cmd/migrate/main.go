package main

import (
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"storefront-orders/internal/config"
	"storefront-orders/internal/db"
	"storefront-orders/internal/logger"
)

func main() {
	log := logger.New(logger.Config{Level: logger.LevelInfo, Format: "text", Component: "migrate", EnableCaller: true})

	// Загружаем .env
	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using environment")
	}

	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	driver := fs.String("driver", "", "backup store driver (sqlite or postgres), overrides BACKUP_DRIVER")
	dsn := fs.String("dsn", "", "backup store DSN, overrides BACKUP_DSN")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal("invalid flags", "error", err)
	}

	cfg := config.FromEnv(os.Getenv)
	if *driver != "" {
		cfg.BackupDriver = *driver
	}
	if *dsn != "" {
		cfg.BackupDSN = *dsn
	}

	conn, err := db.Open(cfg.BackupDriver, cfg.BackupDSN)
	if err != nil {
		log.Fatal("failed to open backup store", "driver", cfg.BackupDriver, "error", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Error("failed to close connection", "error", err)
		}
	}()

	if err := db.Migrate(conn, cfg.BackupDriver); err != nil {
		log.Fatal("migration failed", "error", err)
	}

	log.Info("migrations applied", "driver", cfg.BackupDriver)
}
