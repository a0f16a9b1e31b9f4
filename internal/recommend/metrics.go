package recommend

import (
	"math"

	"mesa/internal/models"
)

// EvalReport summarizes recommendation quality over the real group table.
// Predictions come from the training-weighted argmin, ground truth from the
// unweighted argmin; the gap between the two formulas is exactly what the
// report measures.
type EvalReport struct {
	Groups    int     `json:"groups"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	NDCG      float64 `json:"ndcg"`
}

// Evaluate scores the deterministic weighted recommender against the
// unweighted ground truth for every group with members. Groups without
// members are skipped.
func Evaluate(users []models.User, groups []models.Group) EvalReport {
	var yTrue, yPred []int
	var ndcgSum float64

	for _, g := range groups {
		if len(g.Members) == 0 {
			continue
		}
		stats := Aggregate(users, g.Members)
		truth := ArgMin(GroundTruthScores(stats))
		weighted := TrainingScores(stats, len(g.Members))
		pred := ArgMin(weighted)

		yTrue = append(yTrue, truth)
		yPred = append(yPred, pred)
		ndcgSum += ndcgOneHot(weighted, truth)
	}

	report := EvalReport{Groups: len(yTrue)}
	if len(yTrue) == 0 {
		return report
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	report.Accuracy = float64(correct) / float64(len(yTrue))
	report.Precision, report.Recall, report.F1 = macroPRF(yTrue, yPred, len(Catalog))
	report.NDCG = ndcgSum / float64(len(yTrue))
	return report
}

// ndcgOneHot computes NDCG for a single group: relevance is one-hot at the
// true label, the ranking orders cuisines by ascending weighted score with
// catalog-order tie breaks. The ideal DCG is 1, so the result is
// 1/log2(rank+1) where rank is the true label's 1-based position.
func ndcgOneHot(scores []float64, trueLabel int) float64 {
	rank := 1
	for i, s := range scores {
		if s < scores[trueLabel] || (s == scores[trueLabel] && i < trueLabel) {
			rank++
		}
	}
	return 1.0 / math.Log2(float64(rank)+1)
}

// macroPRF computes macro-averaged precision, recall, and F1 over all
// classes. Classes with no predictions or no true samples contribute zero.
func macroPRF(yTrue, yPred []int, numClasses int) (precision, recall, f1 float64) {
	for c := 0; c < numClasses; c++ {
		var tp, fp, fn int
		for i := range yTrue {
			switch {
			case yPred[i] == c && yTrue[i] == c:
				tp++
			case yPred[i] == c:
				fp++
			case yTrue[i] == c:
				fn++
			}
		}
		var p, r float64
		if tp+fp > 0 {
			p = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			r = float64(tp) / float64(tp+fn)
		}
		precision += p
		recall += r
		if p+r > 0 {
			f1 += 2 * p * r / (p + r)
		}
	}
	n := float64(numClasses)
	return precision / n, recall / n, f1 / n
}
