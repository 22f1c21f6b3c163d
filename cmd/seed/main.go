// seed loads starter content into the Cult of Drive database.
//
// Usage:
//
//	seed migrate
//	seed cars -f data/cars.json
//	seed social-posts -f data/social_posts.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cultofdrive/internal/config"
	"cultofdrive/internal/db"
	"cultofdrive/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load starter content into the database",
		Long: `seed prepares a Cult of Drive database.

It reads the same environment as the API server (DATABASE_URL, LOG_LEVEL)
and imports gallery cars and social posts from JSON files.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(carsCmd())
	rootCmd.AddCommand(socialPostsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect opens the database and brings the schema up to date.
func connect() (*gorm.DB, *zap.Logger, error) {
	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	log.Info("connected to database")
	if err := db.Migrate(gormDB); err != nil {
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("database migrations completed")
	return gormDB, log, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := connect()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			return nil
		},
	}
}
