package recommend

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingBatch(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	return TrainingData(SyntheticGroups(n, rng))
}

func TestForestFitsSeparableData(t *testing.T) {
	features, labels := trainingBatch(500, 1)

	cfg := DefaultForestConfig()
	cfg.Trees = 30
	forest := TrainForest(cfg, features, labels)

	correct := 0
	for i, f := range features {
		if forest.Predict(f) == labels[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(labels))
	assert.GreaterOrEqual(t, accuracy, 0.9, "forest should fit its own training data")
}

func TestForestTrainingIsDeterministic(t *testing.T) {
	features, labels := trainingBatch(200, 7)

	cfg := DefaultForestConfig()
	cfg.Trees = 10
	a := TrainForest(cfg, features, labels)
	b := TrainForest(cfg, features, labels)

	probe, _ := trainingBatch(50, 8)
	for _, f := range probe {
		assert.Equal(t, a.Predict(f), b.Predict(f))
	}
}

func TestSyntheticGroupsShape(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	groups := SyntheticGroups(100, rng)
	require.Len(t, groups, 100)

	for _, g := range groups {
		require.Len(t, g.Features, len(Catalog))
		assert.GreaterOrEqual(t, g.Label, 0)
		assert.Less(t, g.Label, len(Catalog))
	}
}

func TestSyntheticLabelsMatchGroundTruthRule(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	groups := SyntheticGroups(50, rng)

	seen := map[int]bool{}
	for _, g := range groups {
		seen[g.Label] = true
	}
	assert.Greater(t, len(seen), 1, "labels should not collapse to one class")
}
