// Package predict orchestrates the two classification tiers: the trained
// statistical model when one was published at startup, and the keyword
// heuristic otherwise.
package predict

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/jonathan/resume-scanner/internal/classify"
	"github.com/jonathan/resume-scanner/internal/ml"
)

// lowConfidenceThreshold triggers diagnostic logging of the top-3
// statistical predictions. It never changes the returned result.
const lowConfidenceThreshold = 0.6

// Predictor holds the process-wide model reference. The pointer is written
// at most once, at startup before traffic, and read lock-free by every
// prediction request afterwards.
type Predictor struct {
	model     atomic.Pointer[ml.Model]
	heuristic *classify.HeuristicClassifier
}

// New returns a Predictor with no statistical model; until one is
// published, every prediction uses the heuristic tier.
func New() *Predictor {
	return &Predictor{heuristic: classify.NewHeuristic()}
}

// PublishModel installs the trained model. Readers that snapshotted the
// pointer beforehand keep using the heuristic for that request only.
func (p *Predictor) PublishModel(m *ml.Model) {
	p.model.Store(m)
}

// ModelLoaded reports whether a statistical model has been published.
func (p *Predictor) ModelLoaded() bool {
	return p.model.Load() != nil
}

// Predict classifies resume text. The statistical tier is preferred;
// any inference failure is logged and degrades to the heuristic tier
// within the same call, so the caller never sees an error. Skills are
// always extracted from the full text, independent of the predicted
// category.
func (p *Predictor) Predict(ctx context.Context, text string) classify.Prediction {
	skills := classify.ExtractSkills(text)

	if model := p.model.Load(); model != nil {
		pred, err := statisticalPredict(model, text)
		if err == nil {
			pred.Skills = skills
			return pred
		}
		log.Printf("statistical prediction failed, using heuristic fallback: %v", err)
	}

	pred, _ := p.heuristic.Classify(ctx, text) // heuristic tier cannot fail
	pred.Skills = skills
	return pred
}

// statisticalPredict runs model inference and maps the probability
// distribution to a Prediction without skills.
func statisticalPredict(model *ml.Model, text string) (classify.Prediction, error) {
	probs, err := model.PredictProba(text)
	if err != nil {
		return classify.Prediction{}, err
	}
	labels := model.Labels()
	if len(probs) == 0 {
		return classify.Prediction{}, fmt.Errorf("empty probability distribution")
	}

	best := 0
	for c := range probs {
		if probs[c] > probs[best] {
			best = c
		}
	}
	confidence := probs[best]

	if confidence < lowConfidenceThreshold {
		log.Printf("low statistical confidence (%.2f), top 3: %s", confidence, topPredictions(labels, probs, 3))
	}

	return classify.Prediction{
		Category:   labels[best],
		Confidence: classify.Round2(confidence),
	}, nil
}

// topPredictions formats the n most probable (label, probability) pairs
// for diagnostic log lines.
func topPredictions(labels []string, probs []float64, n int) string {
	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return probs[order[i]] > probs[order[j]] })
	if n > len(order) {
		n = len(order)
	}

	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%s=%.2f", labels[order[i]], probs[order[i]])
	}
	return strings.Join(parts, " ")
}
