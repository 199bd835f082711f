package ml

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/jonathan/resume-scanner/internal/dataset"
)

// CrossValidate estimates pipeline accuracy with k-fold cross-validation.
// Folds are assigned round-robin (deterministic) and trained in parallel.
// The result is diagnostic only; callers log it and move on.
func CrossValidate(examples []dataset.Example, k int) (mean, stddev float64, err error) {
	if k < 2 {
		return 0, 0, fmt.Errorf("crossval: need at least 2 folds, got %d", k)
	}
	if len(examples) < k {
		return 0, 0, fmt.Errorf("crossval: %d examples for %d folds", len(examples), k)
	}

	accuracies := make([]float64, k)
	var g errgroup.Group
	for fold := 0; fold < k; fold++ {
		fold := fold
		g.Go(func() error {
			var train, held []dataset.Example
			for i, ex := range examples {
				if i%k == fold {
					held = append(held, ex)
				} else {
					train = append(train, ex)
				}
			}

			model, err := Train(train)
			if err != nil {
				return fmt.Errorf("fold %d: %w", fold, err)
			}

			correct := 0
			for _, ex := range held {
				probs, err := model.PredictProba(ex.Text)
				if err != nil {
					return fmt.Errorf("fold %d: %w", fold, err)
				}
				best := 0
				for c := range probs {
					if probs[c] > probs[best] {
						best = c
					}
				}
				if model.Labels()[best] == ex.Label {
					correct++
				}
			}
			accuracies[fold] = float64(correct) / float64(len(held))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	return stat.Mean(accuracies, nil), stat.StdDev(accuracies, nil), nil
}
