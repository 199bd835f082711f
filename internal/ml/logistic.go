package ml

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Solver parameters, matching the service's original calibration:
// L2 regularization strength C=1.0, iterative solver capped at 2000
// iterations, softmax objective over all classes.
const (
	regStrength   = 1.0
	maxIterations = 2000
)

// softmaxRegression is a fitted multinomial logistic regression model.
// The weight matrix has one row per class; the intercept is kept
// separately and is never regularized.
type softmaxRegression struct {
	weights *mat.Dense // numClasses x numFeatures
	bias    []float64  // length numClasses
}

// trainSoftmax fits a multinomial logistic regression on sparse TF-IDF
// vectors by minimizing L2-penalized cross-entropy with LBFGS.
func trainSoftmax(x []DocVector, y []int, numClasses, numFeatures int) (*softmaxRegression, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("softmax: %d samples with %d labels", len(x), len(y))
	}
	if numClasses < 2 {
		return nil, fmt.Errorf("softmax: need at least 2 classes, got %d", numClasses)
	}

	// Parameter layout: row-major weights followed by per-class bias.
	dim := numClasses*numFeatures + numClasses
	weightAt := func(theta []float64, class, feature int) float64 {
		return theta[class*numFeatures+feature]
	}
	biasAt := func(theta []float64, class int) float64 {
		return theta[numClasses*numFeatures+class]
	}

	logitsFor := func(theta []float64, doc DocVector) []float64 {
		logits := make([]float64, numClasses)
		for c := 0; c < numClasses; c++ {
			z := biasAt(theta, c)
			for j, f := range doc.Idx {
				z += weightAt(theta, c, f) * doc.Val[j]
			}
			logits[c] = z
		}
		return logits
	}

	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			loss := 0.0
			for i, doc := range x {
				logits := logitsFor(theta, doc)
				loss += floats.LogSumExp(logits) - logits[y[i]]
			}
			// L2 penalty on weights only, scaled by 1/C.
			var sq float64
			for k := 0; k < numClasses*numFeatures; k++ {
				sq += theta[k] * theta[k]
			}
			return loss + 0.5*sq/regStrength
		},
		Grad: func(grad, theta []float64) {
			for k := range grad {
				grad[k] = 0
			}
			for i, doc := range x {
				logits := logitsFor(theta, doc)
				lse := floats.LogSumExp(logits)
				for c := 0; c < numClasses; c++ {
					g := math.Exp(logits[c] - lse)
					if c == y[i] {
						g -= 1
					}
					for j, f := range doc.Idx {
						grad[c*numFeatures+f] += g * doc.Val[j]
					}
					grad[numClasses*numFeatures+c] += g
				}
			}
			for k := 0; k < numClasses*numFeatures; k++ {
				grad[k] += theta[k] / regStrength
			}
		},
	}

	settings := &optimize.Settings{MajorIterations: maxIterations}
	result, err := optimize.Minimize(problem, make([]float64, dim), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, fmt.Errorf("softmax: lbfgs failed: %w", err)
	}
	// Two non-fatal terminations still yield usable weights: hitting the
	// iteration cap, and the linesearcher stalling because it cannot
	// improve on an already-converged point, which LBFGS reports as a
	// failure on small well-separated problems. The NaN check below
	// catches genuine divergence.
	if err != nil && result.Status != optimize.IterationLimit && !errors.Is(err, optimize.ErrLinesearcherFailure) {
		return nil, fmt.Errorf("softmax: lbfgs failed: %w", err)
	}
	if floats.HasNaN(result.X) {
		return nil, fmt.Errorf("softmax: solver produced NaN weights")
	}

	theta := result.X
	weights := mat.NewDense(numClasses, numFeatures, nil)
	for c := 0; c < numClasses; c++ {
		for f := 0; f < numFeatures; f++ {
			weights.Set(c, f, weightAt(theta, c, f))
		}
	}
	bias := make([]float64, numClasses)
	for c := 0; c < numClasses; c++ {
		bias[c] = biasAt(theta, c)
	}
	return &softmaxRegression{weights: weights, bias: bias}, nil
}

// proba returns the softmax class distribution for a document vector.
func (s *softmaxRegression) proba(doc DocVector) []float64 {
	numClasses, _ := s.weights.Dims()
	logits := make([]float64, numClasses)
	for c := 0; c < numClasses; c++ {
		row := s.weights.RawRowView(c)
		z := s.bias[c]
		for j, f := range doc.Idx {
			z += row[f] * doc.Val[j]
		}
		logits[c] = z
	}
	lse := floats.LogSumExp(logits)
	probs := make([]float64, numClasses)
	for c := range logits {
		probs[c] = math.Exp(logits[c] - lse)
	}
	return probs
}
