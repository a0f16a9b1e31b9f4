package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mesa/internal/models"
)

func TestEvaluateEmptyTables(t *testing.T) {
	report := Evaluate(nil, nil)
	assert.Equal(t, EvalReport{}, report)
}

func TestEvaluateSkipsMemberlessGroups(t *testing.T) {
	report := Evaluate(pairUsers(), []models.Group{
		{ID: 1, Name: "empty", CreatedBy: "x"},
	})
	assert.Equal(t, 0, report.Groups)
}

func TestEvaluateDivergentGroup(t *testing.T) {
	// Ground truth picks italian, the weighted mode picks chinese, so the
	// single group is a guaranteed miss.
	groups := []models.Group{
		{ID: 1, Name: "pair", CreatedBy: "alice", Members: []string{"alice", "bob"}},
	}
	report := Evaluate(pairUsers(), groups)

	assert.Equal(t, 1, report.Groups)
	assert.Equal(t, 0.0, report.Accuracy)
	// Weighted scores: chinese 1.5, italian 4, mexican 8, rest 6. The true
	// label italian ranks second, so NDCG = 1/log2(3).
	assert.InDelta(t, 0.6309, report.NDCG, 1e-3)
}

func TestEvaluateAgreeingGroup(t *testing.T) {
	// A single shared favorite makes both modes pick the same cuisine.
	users := []models.User{
		{Username: "a", FavoriteCuisines: []string{"thai"}},
		{Username: "b", FavoriteCuisines: []string{"thai"}},
	}
	groups := []models.Group{
		{ID: 1, Name: "pair", CreatedBy: "a", Members: []string{"a", "b"}},
	}
	report := Evaluate(users, groups)

	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, 1.0, report.NDCG)
	assert.InDelta(t, 1.0/8, report.Precision, 1e-9)
	assert.InDelta(t, 1.0/8, report.Recall, 1e-9)
}

func TestMacroPRF(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	yPred := []int{0, 1, 1, 1}

	p, r, f1 := macroPRF(yTrue, yPred, 2)
	// class 0: precision 1, recall 0.5; class 1: precision 2/3, recall 1.
	assert.InDelta(t, (1+2.0/3)/2, p, 1e-9)
	assert.InDelta(t, (0.5+1)/2, r, 1e-9)
	assert.Greater(t, f1, 0.0)
}

func TestNDCGOneHot(t *testing.T) {
	scores := []float64{3, 1, 2, 6, 6, 6, 6, 6}

	// True label at the best score ranks first.
	assert.InDelta(t, 1.0, ndcgOneHot(scores, 1), 1e-9)
	// True label at the third-best score: 1/log2(4).
	assert.InDelta(t, 0.5, ndcgOneHot(scores, 0), 1e-9)
}
