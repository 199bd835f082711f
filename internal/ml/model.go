package ml

import (
	"fmt"

	"github.com/jonathan/resume-scanner/internal/dataset"
)

// Model is an immutable trained snapshot: the fitted vectorizer, the
// fitted classifier, and the sorted canonical labels it was trained on.
// It is never mutated after Train returns, so concurrent reads from
// prediction requests need no locking.
type Model struct {
	vectorizer *Vectorizer
	clf        *softmaxRegression
	labels     []string
}

// Train fits the TF-IDF + multinomial logistic regression pipeline on
// the labeled corpus. Any failure returns an error and no model.
func Train(examples []dataset.Example) (*Model, error) {
	if len(examples) < dataset.MinExamples {
		return nil, fmt.Errorf("train: %d examples, need at least %d", len(examples), dataset.MinExamples)
	}

	labels := dataset.Labels(examples)
	if len(labels) < 2 {
		return nil, fmt.Errorf("train: need at least 2 distinct labels, got %d", len(labels))
	}
	classIdx := make(map[string]int, len(labels))
	for i, label := range labels {
		classIdx[label] = i
	}

	docs := make([]string, len(examples))
	y := make([]int, len(examples))
	for i, ex := range examples {
		docs[i] = ex.Text
		y[i] = classIdx[ex.Label]
	}

	vectorizer, vectors, err := FitVectorizer(docs)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	clf, err := trainSoftmax(vectors, y, len(labels), vectorizer.NumFeatures())
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	return &Model{vectorizer: vectorizer, clf: clf, labels: labels}, nil
}

// Labels returns the sorted class labels the model predicts over.
// Callers must not modify the returned slice.
func (m *Model) Labels() []string {
	return m.labels
}

// PredictProba returns the per-class probability distribution for the
// given text, aligned with Labels().
func (m *Model) PredictProba(text string) ([]float64, error) {
	if m.vectorizer == nil || m.clf == nil || len(m.labels) == 0 {
		return nil, fmt.Errorf("predict: model not fitted")
	}
	probs := m.clf.proba(m.vectorizer.Transform(text))
	if len(probs) != len(m.labels) {
		return nil, fmt.Errorf("predict: %d probabilities for %d labels", len(probs), len(m.labels))
	}
	return probs, nil
}
