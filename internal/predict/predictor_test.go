package predict

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scanner/internal/dataset"
	"github.com/jonathan/resume-scanner/internal/ml"
)

func trainedModel(t *testing.T) *ml.Model {
	t.Helper()
	var examples []dataset.Example
	for i := 0; i < 8; i++ {
		examples = append(examples, dataset.Example{
			Label: "Data Science",
			Text:  fmt.Sprintf("python pandas numpy machine learning statistics sample%d", i),
		})
		examples = append(examples, dataset.Example{
			Label: "Cybersecurity",
			Text:  fmt.Sprintf("siem splunk incident response penetration testing sample%d", i),
		})
	}
	model, err := ml.Train(examples)
	require.NoError(t, err)
	return model
}

func TestPredict_HeuristicWhenModelAbsent(t *testing.T) {
	p := New()
	require.False(t, p.ModelLoaded())

	pred := p.Predict(context.Background(), "Python, pandas, numpy, machine learning, TensorFlow")

	assert.Equal(t, "Data Science", pred.Category)
	assert.GreaterOrEqual(t, pred.Confidence, 0.5)
	assert.LessOrEqual(t, pred.Confidence, 0.95)
	assert.NotEmpty(t, pred.Skills)
}

func TestPredict_GeneralFallback(t *testing.T) {
	p := New()

	pred := p.Predict(context.Background(), "lorem ipsum dolor sit amet")

	assert.Equal(t, "General", pred.Category)
	assert.Equal(t, 0.5, pred.Confidence)
	assert.Equal(t, []string{"Communication", "Teamwork"}, pred.Skills)
}

func TestPredict_StatisticalTierPreferred(t *testing.T) {
	p := New()
	p.PublishModel(trainedModel(t))
	require.True(t, p.ModelLoaded())

	pred := p.Predict(context.Background(), "python pandas machine learning statistics")

	assert.Equal(t, "Data Science", pred.Category)
	assert.GreaterOrEqual(t, pred.Confidence, 0.0)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
	assert.NotEmpty(t, pred.Skills)
}

func TestPredict_SkillsComeFromFullTextNotWinningCategory(t *testing.T) {
	p := New()

	// Product Management wins on score, but "figma" (UI/UX Design) must
	// still show up: skills are always extracted over the whole text.
	pred := p.Predict(context.Background(), "roadmap stakeholder kpi backlog and some figma work")

	assert.Equal(t, "Product Management", pred.Category)
	assert.Contains(t, pred.Skills, "Figma")
}

func TestPredict_SkillsNeverEmpty(t *testing.T) {
	p := New()
	p.PublishModel(trainedModel(t))

	for _, text := range []string{"", "no recognizable content here", "python"} {
		pred := p.Predict(context.Background(), text)
		assert.NotEmpty(t, pred.Skills, "input %q", text)
	}
}

func TestTopPredictions(t *testing.T) {
	labels := []string{"A", "B", "C"}
	probs := []float64{0.2, 0.5, 0.3}

	assert.Equal(t, "B=0.50 C=0.30", topPredictions(labels, probs, 2))
	assert.Equal(t, "B=0.50 C=0.30 A=0.20", topPredictions(labels, probs, 5))
}
