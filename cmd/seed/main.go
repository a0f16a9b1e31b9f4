// Command seed populates the flat tables with demo data and optionally
// imports the restaurant catalog CSV.
package main

import (
	"context"
	"flag"
	"log"

	"mesa/internal/bootstrap"
	"mesa/internal/config"
	"mesa/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "number of users to create")
	numPosts := flag.Int("posts", 80, "number of posts to create")
	numGroups := flag.Int("groups", 8, "number of groups to create")
	randomSeed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	restaurantCSV := flag.String("restaurants", "", "path to a restaurant catalog CSV to import")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	ctx := context.Background()
	if err := seed.Seed(ctx, rt, seed.Options{
		NumUsers:  *numUsers,
		NumPosts:  *numPosts,
		NumGroups: *numGroups,
		Seed:      *randomSeed,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if *restaurantCSV != "" {
		imported, skipped, err := seed.ImportRestaurants(rt.FS, rt.CatalogDB, *restaurantCSV)
		if err != nil {
			log.Fatalf("Restaurant import failed: %v", err)
		}
		log.Printf("Imported %d restaurants (%d skipped)", imported, skipped)
	}
}
