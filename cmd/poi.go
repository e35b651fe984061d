package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/poi-reserve/internal/config"
	"github.com/example/poi-reserve/internal/db"
	"github.com/example/poi-reserve/internal/migrate"
	"github.com/example/poi-reserve/internal/poi"
)

func newPoiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poi",
		Short: "Manage the POI catalog",
	}
	cmd.AddCommand(newPoiSeedCmd())
	cmd.AddCommand(newPoiAddCmd())
	cmd.AddCommand(newPoiListCmd())
	return cmd
}

func openRepo(ctx context.Context) (*poi.PostgresRepo, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	d, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := migrate.Up(ctx, d); err != nil {
		d.Close()
		return nil, nil, err
	}
	return poi.NewPostgresRepo(d), d.Close, nil
}

func newPoiSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, closeDB, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			for _, p := range poi.SeedPois() {
				if err := repo.Upsert(ctx, p); err != nil {
					return fmt.Errorf("seed %s: %w", p.ID, err)
				}
			}
			fmt.Fprintf(os.Stdout, "seeded %d pois\n", len(poi.SeedPois()))
			return nil
		},
	}
}

func newPoiAddCmd() *cobra.Command {
	var (
		id, name, category, area string
		lat, lng                 float64
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add or update one catalog entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := poi.Category(category)
			if cat != poi.CategoryRestaurant && cat != poi.CategoryCulture {
				return fmt.Errorf("category must be restaurant or culture")
			}

			ctx := context.Background()
			repo, closeDB, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			p := poi.Poi{ID: id, Name: name, Category: cat, Area: area, Lat: lat, Lng: lng}
			if err := repo.Upsert(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "upserted poi %q\n", id)
			return nil
		},
	}

	c.Flags().StringVar(&id, "id", "", "poi id")
	c.Flags().StringVar(&name, "name", "", "display name")
	c.Flags().StringVar(&category, "category", "restaurant", "restaurant or culture")
	c.Flags().StringVar(&area, "area", "", "area label")
	c.Flags().Float64Var(&lat, "lat", 0, "latitude")
	c.Flags().Float64Var(&lng, "lng", 0, "longitude")
	_ = c.MarkFlagRequired("id")
	_ = c.MarkFlagRequired("name")
	return c
}

func newPoiListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, closeDB, err := openRepo(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			pois, err := repo.ListAll(ctx)
			if err != nil {
				return err
			}
			for _, p := range pois {
				fmt.Fprintf(os.Stdout, "%-10s %-12s %s (%s)\n", p.ID, p.Category, p.Name, p.Area)
			}
			return nil
		},
	}
}
