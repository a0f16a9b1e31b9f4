package recommend

import "math"

// The three scoring functions below deliberately stay separate. The
// classifier is trained on TrainingScores but served ServingScores, and the
// evaluation path compares the weighted argmin against the unweighted
// GroundTruthScores; unifying the formulas would change observable output.

// GroundTruthScores returns the unweighted average-rank vector in catalog
// order. Lower is better.
func GroundTruthScores(stats map[string]CuisineStats) []float64 {
	scores := make([]float64, len(Catalog))
	for i, c := range Catalog {
		scores[i] = stats[c].AvgRank
	}
	return scores
}

// TrainingScores returns the frequency-weighted vector used to build
// synthetic training features:
//
//	score = avg_rank * (total_members/frequency)^p
//
// with DefaultRank for a cuisine of frequency zero.
func TrainingScores(stats map[string]CuisineStats, totalMembers int) []float64 {
	scores := make([]float64, len(Catalog))
	for i, c := range Catalog {
		s := stats[c]
		if s.Frequency == 0 {
			scores[i] = DefaultRank
			continue
		}
		scores[i] = s.AvgRank * math.Pow(float64(totalMembers)/float64(s.Frequency), FrequencyExponent)
	}
	return scores
}

// ServingScores returns the weighted vector fed to the classifier at serving
// time:
//
//	score = avg_rank / frequency^p
//
// with DefaultRank for a cuisine of frequency zero. Note it divides by the
// raw frequency where TrainingScores multiplies by the inverse share.
func ServingScores(stats map[string]CuisineStats) []float64 {
	scores := make([]float64, len(Catalog))
	for i, c := range Catalog {
		s := stats[c]
		if s.Frequency == 0 {
			scores[i] = DefaultRank
			continue
		}
		scores[i] = s.AvgRank / math.Pow(float64(s.Frequency), FrequencyExponent)
	}
	return scores
}

// ArgMin returns the index of the smallest score, first occurrence winning,
// so ties resolve in catalog order.
func ArgMin(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[best] {
			best = i
		}
	}
	return best
}

// PickGroundTruth returns the cuisine with the best unweighted average rank.
func PickGroundTruth(stats map[string]CuisineStats) string {
	return Catalog[ArgMin(GroundTruthScores(stats))]
}

// PickWeighted returns the cuisine with the best training-weighted score.
func PickWeighted(stats map[string]CuisineStats, totalMembers int) string {
	return Catalog[ArgMin(TrainingScores(stats, totalMembers))]
}
