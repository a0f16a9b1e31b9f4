package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"mesa/internal/cache"
	"mesa/internal/models"
	"mesa/internal/observability"
	"mesa/internal/repository"
)

// EngineConfig controls engine construction.
type EngineConfig struct {
	TrainingGroups int
	ForestTrees    int
	Seed           int64
}

// Engine recommends a cuisine for a group. The classifier is trained once
// at construction and is immutable afterwards, so a single engine serves
// concurrent requests without locking.
type Engine struct {
	users  *repository.Users
	groups *repository.Groups
	forest *Forest
}

// Recommendation is the engine's answer for a group.
type Recommendation struct {
	GroupID int    `json:"group_id"`
	Cuisine string `json:"recommended_cuisine"`
}

// NewEngine builds an engine, generating synthetic groups and training the
// classifier. This is the expensive one-time step of process startup.
func NewEngine(users *repository.Users, groups *repository.Groups, cfg EngineConfig) *Engine {
	if cfg.TrainingGroups <= 0 {
		cfg.TrainingGroups = 1000
	}
	forestCfg := DefaultForestConfig()
	if cfg.ForestTrees > 0 {
		forestCfg.Trees = cfg.ForestTrees
	}
	if cfg.Seed != 0 {
		forestCfg.Seed = cfg.Seed
	}

	start := time.Now()
	rng := rand.New(rand.NewSource(forestCfg.Seed))
	features, labels := TrainingData(SyntheticGroups(cfg.TrainingGroups, rng))
	forest := TrainForest(forestCfg, features, labels)
	observability.GlobalLogger.Info("trained recommendation classifier",
		"training_groups", cfg.TrainingGroups,
		"trees", forestCfg.Trees,
		"duration", time.Since(start).String(),
	)
	return &Engine{users: users, groups: groups, forest: forest}
}

// Classifier exposes the trained forest for the evaluation path.
func (e *Engine) Classifier() *Forest {
	return e.forest
}

// Recommend picks a cuisine for the group: aggregate the members' favorite
// ranks, compute the serving-weighted feature vector, and let the classifier
// choose. Results are cached per group until its member set changes.
func (e *Engine) Recommend(ctx context.Context, groupID int) (*Recommendation, error) {
	span, ctx := observability.NewSpan(ctx, "recommend.Recommend")
	defer span.End()
	span.AddAttributes(attribute.Int("group_id", groupID))

	key := fmt.Sprintf("recommend:group:%d", groupID)
	var cached Recommendation
	if ok, _ := cache.GetJSON(ctx, key, &cached); ok {
		return &cached, nil
	}

	group, err := e.groups.Get(ctx, groupID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if len(group.Members) == 0 {
		return nil, models.NewValidationError("group has no members")
	}

	users, err := e.users.All(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	stats := Aggregate(users, group.Members)
	label := e.forest.Predict(ServingScores(stats))
	rec := &Recommendation{GroupID: groupID, Cuisine: Catalog[label]}

	_ = cache.SetJSON(ctx, key, rec, 10*time.Minute)
	observability.RecommendationsServed.WithLabelValues(rec.Cuisine).Inc()
	return rec, nil
}

// AggregatePreferences returns the per-cuisine statistics for an arbitrary
// member set, read fresh from the user table.
func (e *Engine) AggregatePreferences(ctx context.Context, members []string) (map[string]CuisineStats, error) {
	users, err := e.users.All(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(users, members), nil
}
