package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mesa/internal/models"
)

func pairUsers() []models.User {
	return []models.User{
		{Username: "alice", FavoriteCuisines: []string{"italian", "chinese"}},
		{Username: "bob", FavoriteCuisines: []string{"chinese", "mexican"}},
		{Username: "outsider", FavoriteCuisines: []string{"thai"}},
	}
}

func TestAggregatePairOfMembers(t *testing.T) {
	stats := Aggregate(pairUsers(), []string{"alice", "bob"})

	assert.Equal(t, CuisineStats{AvgRank: 1, Frequency: 1}, stats["italian"])
	assert.Equal(t, CuisineStats{AvgRank: 1.5, Frequency: 2}, stats["chinese"])
	assert.Equal(t, CuisineStats{AvgRank: 2, Frequency: 1}, stats["mexican"])

	for _, c := range []string{"indian", "japanese", "french", "mediterranean", "thai"} {
		assert.Equal(t, CuisineStats{AvgRank: DefaultRank, Frequency: 0}, stats[c], c)
	}
}

func TestAggregateIgnoresUnknownCuisinesAndCase(t *testing.T) {
	users := []models.User{
		{Username: "a", FavoriteCuisines: []string{" Italian ", "klingon", "THAI"}},
	}
	stats := Aggregate(users, []string{"a"})

	assert.Equal(t, CuisineStats{AvgRank: 1, Frequency: 1}, stats["italian"])
	// klingon is skipped but still occupies a list position.
	assert.Equal(t, CuisineStats{AvgRank: 3, Frequency: 1}, stats["thai"])
}

func TestAggregateNoMembers(t *testing.T) {
	stats := Aggregate(pairUsers(), nil)
	for _, c := range Catalog {
		assert.Equal(t, CuisineStats{AvgRank: DefaultRank, Frequency: 0}, stats[c])
	}
}
