package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/repository"
	"cultofdrive/internal/service"
)

// seedCar is one entry of a cars seed file.
type seedCar struct {
	UserID string `json:"user_id"`
	service.CarInput
}

func carsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Import gallery cars from a JSON file",
		Long: `Import gallery cars from a JSON array.

Each entry takes the same fields as POST /api/cars plus an optional user_id.
Featured flags are honoured. Invalid entries are skipped and logged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()

			gormDB, log, err := connect()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			carService := service.NewCarService(
				repository.NewCarRepository(gormDB),
				repository.NewProfileRepository(gormDB),
				media.NewResolver(nil),
				service.NewCarValidator(),
				nil,
			)
			created, skipped, err := seedCars(cmd.Context(), carService, f, log)
			if err != nil {
				return err
			}
			log.Info("seed completed", zap.Int("created", created), zap.Int("skipped", skipped))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/cars.json", "Path to the cars JSON file")
	return cmd
}

// seedCars imports every entry in r. Entries that fail validation are skipped; any
// other error stops the import.
func seedCars(ctx context.Context, cars service.CarService, r io.Reader, log *zap.Logger) (created, skipped int, err error) {
	var entries []seedCar
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, 0, fmt.Errorf("parse cars: %w", err)
	}

	for i, entry := range entries {
		var owner *uuid.UUID
		if entry.UserID != "" {
			id, err := uuid.Parse(entry.UserID)
			if err != nil {
				log.Warn("skipping car with invalid user_id", zap.Int("index", i), zap.String("user_id", entry.UserID))
				skipped++
				continue
			}
			owner = &id
		}

		if _, err := cars.ImportCar(ctx, owner, entry.CarInput); err != nil {
			if errors.IsValidation(err) {
				log.Warn("skipping invalid car", zap.Int("index", i), zap.Error(err))
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("import car %d: %w", i, err)
		}
		created++
	}
	return created, skipped, nil
}
