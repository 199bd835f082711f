package classify

import (
	"context"
	"math"
	"strings"

	"github.com/jonathan/resume-scanner/internal/taxonomy"
)

// Heuristic confidence band. The band is deliberately compressed because
// keyword scores are not calibrated probabilities: the classifier never
// reports below the floor or above the ceiling.
const (
	confidenceFloor   = 0.5
	confidenceCeiling = 0.95
	scoreDivisorFloor = 10.0
	scoreDivisorRatio = 0.3
)

// HeuristicClassifier scores text against every taxonomy category by
// summed keyword weights. It is a pure function of (text, taxonomy):
// stateless, deterministic, and safe for concurrent use.
type HeuristicClassifier struct{}

// NewHeuristic returns the keyword-weight fallback classifier.
func NewHeuristic() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Classify picks the category with the strictly highest keyword-weight
// score. Ties keep the earliest-declared category. If nothing scores,
// the fallback category is returned with the default skill pair.
// The returned error is always nil; the heuristic tier cannot fail.
func (h *HeuristicClassifier) Classify(_ context.Context, text string) (Prediction, error) {
	lower := strings.ToLower(text)

	bestCategory := taxonomy.Fallback
	bestScore := 0.0
	var bestMatched []string

	for _, cat := range taxonomy.Categories() {
		score := 0.0
		var matched []string
		for _, k := range cat.Keywords {
			if k.Matches(lower) {
				score += k.Weight
				matched = append(matched, k.Term)
			}
		}
		if score > bestScore {
			bestScore = score
			bestCategory = cat.Name
			bestMatched = matched
		}
	}

	return Prediction{
		Category:   bestCategory,
		Confidence: heuristicConfidence(bestScore),
		Skills:     displaySkills(bestMatched),
	}, nil
}

// heuristicConfidence maps a raw keyword score into the compressed
// [0.5, 0.95] band, rounded to two decimals.
func heuristicConfidence(score float64) float64 {
	divisor := math.Max(scoreDivisorFloor, taxonomy.MaxPossibleScore()*scoreDivisorRatio)
	c := confidenceFloor + score/divisor
	c = math.Min(confidenceCeiling, math.Max(confidenceFloor, c))
	return Round2(c)
}

// Round2 rounds a confidence value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
