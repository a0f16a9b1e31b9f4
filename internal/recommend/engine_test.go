package recommend

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa/internal/models"
	"mesa/internal/repository"
)

func newTestEngine(t *testing.T) (*Engine, *repository.Users, *repository.Groups) {
	t.Helper()
	fs := afero.NewMemMapFs()
	users := repository.NewUsers(fs, "data")
	groups := repository.NewGroups(fs, "data")

	// Small but real training run so tests stay fast.
	engine := NewEngine(users, groups, EngineConfig{
		TrainingGroups: 200,
		ForestTrees:    15,
		Seed:           42,
	})
	return engine, users, groups
}

func TestRecommendReturnsCatalogCuisine(t *testing.T) {
	engine, users, groups := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, users.Replace(ctx, []models.User{
		{Username: "alice", PasswordHash: "h", AccountType: models.AccountTypeUser,
			FavoriteCuisines: []string{"japanese", "thai"}},
		{Username: "bob", PasswordHash: "h", AccountType: models.AccountTypeUser,
			FavoriteCuisines: []string{"japanese"}},
	}))
	require.NoError(t, groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "pair", CreatedBy: "alice", Members: []string{"alice", "bob"}},
	}))

	rec, err := engine.Recommend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.GroupID)
	assert.NotEqual(t, -1, CatalogIndex(rec.Cuisine), "recommendation must be a catalog cuisine")
}

func TestRecommendIsStableForAGroup(t *testing.T) {
	engine, users, groups := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, users.Replace(ctx, []models.User{
		{Username: "a", PasswordHash: "h", AccountType: models.AccountTypeUser,
			FavoriteCuisines: []string{"french"}},
		{Username: "b", PasswordHash: "h", AccountType: models.AccountTypeUser,
			FavoriteCuisines: []string{"french", "italian"}},
	}))
	require.NoError(t, groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "g", CreatedBy: "a", Members: []string{"a", "b"}},
	}))

	first, err := engine.Recommend(ctx, 1)
	require.NoError(t, err)
	second, err := engine.Recommend(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Cuisine, second.Cuisine)
}

func TestRecommendErrors(t *testing.T) {
	engine, _, groups := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Recommend(ctx, 42)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	require.NoError(t, groups.Replace(ctx, []models.Group{
		{ID: 1, Name: "empty", CreatedBy: "x"},
	}))
	_, err = engine.Recommend(ctx, 1)
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestAggregatePreferences(t *testing.T) {
	engine, users, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, users.Replace(ctx, []models.User{
		{Username: "alice", PasswordHash: "h", AccountType: models.AccountTypeUser,
			FavoriteCuisines: []string{"italian", "chinese"}},
		{Username: "bob", PasswordHash: "h", AccountType: models.AccountTypeUser,
			FavoriteCuisines: []string{"chinese", "mexican"}},
	}))

	stats, err := engine.AggregatePreferences(ctx, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, CuisineStats{AvgRank: 1.5, Frequency: 2}, stats["chinese"])
}
