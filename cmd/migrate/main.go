package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/pitchsim/internal/store"
	"github.com/jstittsworth/pitchsim/pkg/config"
	"github.com/jstittsworth/pitchsim/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	databaseURL := cfg.DatabaseURL
	if cfg.IsDevelopment() && cfg.SQLitePath != "" {
		databaseURL = cfg.SQLitePath
	}
	db, err := database.NewConnection(databaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		logrus.Warnf("skipping uuid-ossp extension (likely sqlite): %v", err)
	}

	if err := db.AutoMigrate(
		&store.SeasonRun{},
		&store.SearchRun{},
		&store.SearchStep{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_season_status ON season_runs(status)",
		"CREATE INDEX IF NOT EXISTS idx_search_status ON search_runs(status)",
		"CREATE INDEX IF NOT EXISTS idx_step_run ON search_steps(search_run_id)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	tables := []string{
		"search_steps",
		"search_runs",
		"season_runs",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
