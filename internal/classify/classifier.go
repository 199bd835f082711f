// Package classify provides resume category classification and skill
// keyword extraction on top of the shared taxonomy.
package classify

import "context"

// Prediction is the result of classifying resume text.
type Prediction struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Skills     []string `json:"skills"`
}

// Classifier assigns a job category to resume text. Implementations must
// be safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}
