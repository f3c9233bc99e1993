package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/models"
)

type seedFile struct {
	Cars []seedCar `yaml:"cars"`
}

type seedCar struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Slug            string   `yaml:"slug"`
	Type            string   `yaml:"type"`
	Brand           string   `yaml:"brand"`
	PricePerDay     float64  `yaml:"pricePerDay"`
	OriginalPrice   float64  `yaml:"originalPrice"`
	FuelCapacity    string   `yaml:"fuelCapacity"`
	Transmission    string   `yaml:"transmission"`
	SeatingCapacity string   `yaml:"seatingCapacity"`
	Tags            []string `yaml:"tags"`
	Image           string   `yaml:"image"`
	Availability    *bool    `yaml:"availability"`
}

func (s seedCar) car() models.Car {
	available := true
	if s.Availability != nil {
		available = *s.Availability
	}
	c := models.Car{
		ID:              s.ID,
		Name:            s.Name,
		Type:            s.Type,
		PricePerDay:     s.PricePerDay,
		OriginalPrice:   s.OriginalPrice,
		FuelCapacity:    s.FuelCapacity,
		Transmission:    s.Transmission,
		SeatingCapacity: s.SeatingCapacity,
		Brand:           s.Brand,
		Tags:            s.Tags,
		Availability:    available,
		Slug:            models.Slug{Current: s.Slug},
	}
	if s.Image != "" {
		c.Image = models.Image{Asset: models.NewReference(s.Image)}
	}
	return c
}

// parseSeed reads the catalog from YAML. Every car needs an id and a slug, and
// neither may repeat.
func parseSeed(r io.Reader) ([]models.Car, error) {
	var f seedFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	ids := map[string]bool{}
	slugs := map[string]bool{}
	cars := make([]models.Car, 0, len(f.Cars))
	for i, s := range f.Cars {
		if s.ID == "" || s.Slug == "" {
			return nil, fmt.Errorf("car %d: id and slug are required", i+1)
		}
		if ids[s.ID] {
			return nil, fmt.Errorf("car %d: duplicate id %q", i+1, s.ID)
		}
		if slugs[s.Slug] {
			return nil, fmt.Errorf("car %d: duplicate slug %q", i+1, s.Slug)
		}
		ids[s.ID] = true
		slugs[s.Slug] = true
		cars = append(cars, s.car())
	}
	return cars, nil
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [file]",
		Short: "Load the car catalog from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cars, err := parseSeed(f)
			if err != nil {
				return err
			}

			_, db, closeFn, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			carDB := databases.NewCarDatabase(db)
			if err := carDB.EnsureIndexes(cmd.Context()); err != nil {
				return fmt.Errorf("failed to create car indexes: %w", err)
			}
			inserted, err := seedCars(cmd, carDB, cars)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d cars (%d new)\n", len(cars), inserted)
			return nil
		},
	}
	return cmd
}

// seedCars upserts every car by id and returns how many were new
func seedCars(cmd *cobra.Command, carDB databases.CarDatabase, cars []models.Car) (int64, error) {
	var inserted int64
	for _, c := range cars {
		res, err := carDB.Upsert(cmd.Context(), c)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed car %s: %w", c.Slug.Current, err)
		}
		inserted += res.UpsertedCount
		zap.S().Debugw("seeded car", "id", c.ID, "slug", c.Slug.Current)
	}
	return inserted, nil
}
