// Command evaluate scores the deterministic weighted recommender against
// the unweighted ground truth over the live group table and prints the
// resulting metrics.
package main

import (
	"context"
	"fmt"
	"log"

	"mesa/internal/config"
	"mesa/internal/recommend"
	"mesa/internal/repository"

	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fs := afero.NewOsFs()
	users := repository.NewUsers(fs, cfg.DataDir)
	groups := repository.NewGroups(fs, cfg.DataDir)

	ctx := context.Background()
	allUsers, err := users.All(ctx)
	if err != nil {
		log.Fatalf("Failed to read users: %v", err)
	}
	allGroups, err := groups.All(ctx)
	if err != nil {
		log.Fatalf("Failed to read groups: %v", err)
	}

	report := recommend.Evaluate(allUsers, allGroups)
	fmt.Println("Recommendation quality over live groups:")
	fmt.Printf("Groups:    %d\n", report.Groups)
	fmt.Printf("Accuracy:  %.4f\n", report.Accuracy)
	fmt.Printf("Precision: %.4f\n", report.Precision)
	fmt.Printf("Recall:    %.4f\n", report.Recall)
	fmt.Printf("F1 Score:  %.4f\n", report.F1)
	fmt.Printf("NDCG:      %.4f\n", report.NDCG)
}
