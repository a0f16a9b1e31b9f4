package recommend

import (
	"math"
	"math/rand"
)

// Forest is a random-forest classifier over dense float feature vectors.
// Training happens once; a trained forest is immutable and safe for
// concurrent Predict calls.
type Forest struct {
	trees      []*treeNode
	numClasses int
}

type treeNode struct {
	// leaf
	class int
	// split
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

func (n *treeNode) isLeaf() bool { return n.left == nil }

// ForestConfig controls training.
type ForestConfig struct {
	Trees      int
	MaxDepth   int
	MinSamples int
	NumClasses int
	Seed       int64
}

// DefaultForestConfig returns the forest settings used for the cuisine
// classifier.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:      100,
		MaxDepth:   12,
		MinSamples: 2,
		NumClasses: len(Catalog),
		Seed:       42,
	}
}

// TrainForest fits a forest on the samples. Each tree sees a bootstrap
// resample of the data and considers sqrt(features) random features per
// split. Training is deterministic for a fixed seed.
func TrainForest(cfg ForestConfig, features [][]float64, labels []int) *Forest {
	rng := rand.New(rand.NewSource(cfg.Seed))
	f := &Forest{numClasses: cfg.NumClasses}
	n := len(features)
	for t := 0; t < cfg.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		f.trees = append(f.trees, growTree(cfg, rng, features, labels, idx, 0))
	}
	return f
}

// Predict returns the majority-vote class for one feature vector, lower
// class index winning ties.
func (f *Forest) Predict(features []float64) int {
	votes := make([]int, f.numClasses)
	for _, t := range f.trees {
		votes[t.classify(features)]++
	}
	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return best
}

func (n *treeNode) classify(features []float64) int {
	for !n.isLeaf() {
		if features[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.class
}

func growTree(cfg ForestConfig, rng *rand.Rand, features [][]float64, labels []int, idx []int, depth int) *treeNode {
	counts := make([]int, cfg.NumClasses)
	for _, i := range idx {
		counts[labels[i]]++
	}
	majority := 0
	for c := range counts {
		if counts[c] > counts[majority] {
			majority = c
		}
	}
	if depth >= cfg.MaxDepth || len(idx) < cfg.MinSamples || pure(counts, len(idx)) {
		return &treeNode{class: majority}
	}

	numFeatures := len(features[idx[0]])
	tryFeatures := int(math.Ceil(math.Sqrt(float64(numFeatures))))

	bestGini := math.Inf(1)
	bestFeature, bestThreshold := -1, 0.0
	for _, feat := range rng.Perm(numFeatures)[:tryFeatures] {
		for _, i := range idx {
			threshold := features[i][feat]
			g := splitGini(cfg.NumClasses, features, labels, idx, feat, threshold)
			if g < bestGini {
				bestGini, bestFeature, bestThreshold = g, feat, threshold
			}
		}
	}
	if bestFeature < 0 {
		return &treeNode{class: majority}
	}

	var left, right []int
	for _, i := range idx {
		if features[i][bestFeature] <= bestThreshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{class: majority}
	}
	return &treeNode{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      growTree(cfg, rng, features, labels, left, depth+1),
		right:     growTree(cfg, rng, features, labels, right, depth+1),
	}
}

func pure(counts []int, total int) bool {
	for _, c := range counts {
		if c == total {
			return true
		}
	}
	return false
}

// splitGini is the size-weighted Gini impurity of splitting idx on
// feature <= threshold. Degenerate splits score +Inf so they never win.
func splitGini(numClasses int, features [][]float64, labels []int, idx []int, feature int, threshold float64) float64 {
	leftCounts := make([]int, numClasses)
	rightCounts := make([]int, numClasses)
	leftN, rightN := 0, 0
	for _, i := range idx {
		if features[i][feature] <= threshold {
			leftCounts[labels[i]]++
			leftN++
		} else {
			rightCounts[labels[i]]++
			rightN++
		}
	}
	if leftN == 0 || rightN == 0 {
		return math.Inf(1)
	}
	total := float64(leftN + rightN)
	return float64(leftN)/total*gini(leftCounts, leftN) + float64(rightN)/total*gini(rightCounts, rightN)
}

func gini(counts []int, n int) float64 {
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}
