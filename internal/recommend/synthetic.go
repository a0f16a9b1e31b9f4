package recommend

import "math/rand"

// SyntheticGroup is one generated training sample: the training-weighted
// feature vector and the ground-truth label (catalog index).
type SyntheticGroup struct {
	Features []float64
	Label    int
}

// SyntheticGroups generates n training samples. Each simulated group has 2-5
// members; each member ranks a random permutation subset of the catalog of
// length 1 to MaxSeqLength. Features come from the training-weighted score,
// labels from the argmin of the unweighted average ranks.
func SyntheticGroups(n int, rng *rand.Rand) []SyntheticGroup {
	groups := make([]SyntheticGroup, 0, n)
	for g := 0; g < n; g++ {
		numMembers := 2 + rng.Intn(4)
		favorites := make([][]string, numMembers)
		for m := range favorites {
			seqLen := 1 + rng.Intn(MaxSeqLength)
			perm := rng.Perm(len(Catalog))
			favs := make([]string, seqLen)
			for i := 0; i < seqLen; i++ {
				favs[i] = Catalog[perm[i]]
			}
			favorites[m] = favs
		}
		stats := statsFromRanks(aggregateRanks(favorites))
		groups = append(groups, SyntheticGroup{
			Features: TrainingScores(stats, numMembers),
			Label:    ArgMin(GroundTruthScores(stats)),
		})
	}
	return groups
}

// TrainingData splits a batch of synthetic groups into the parallel slices
// the forest trainer consumes.
func TrainingData(groups []SyntheticGroup) ([][]float64, []int) {
	features := make([][]float64, len(groups))
	labels := make([]int, len(groups))
	for i, g := range groups {
		features[i] = g.Features
		labels[i] = g.Label
	}
	return features, labels
}
