package predict

import (
	"log"

	"github.com/jonathan/resume-scanner/internal/dataset"
	"github.com/jonathan/resume-scanner/internal/ml"
)

// crossValFolds matches the diagnostic evaluation the pipeline was
// calibrated with.
const crossValFolds = 5

// TrainStartup fits the statistical model from the resume dataset and
// publishes it. Every failure is logged and leaves the heuristic tier
// authoritative for the process lifetime; this never aborts the process
// and is never retried.
func (p *Predictor) TrainStartup(datasetPath string, crossValidate bool) {
	path, ok := dataset.Locate(datasetPath)
	if !ok {
		log.Printf("WARNING: resume dataset not found, using heuristic fallback")
		return
	}

	log.Printf("loading dataset from %s", path)
	examples, err := dataset.Load(path)
	if err != nil {
		log.Printf("WARNING: dataset unusable, using heuristic fallback: %v", err)
		return
	}

	labels := dataset.Labels(examples)
	log.Printf("training model on %d resumes across %d categories: %v", len(examples), len(labels), labels)

	model, err := ml.Train(examples)
	if err != nil {
		log.Printf("ERROR: model training failed, using heuristic fallback: %v", err)
		return
	}
	p.PublishModel(model)
	log.Printf("statistical model trained and published")

	// Diagnostic only: the model above stays published whatever happens here.
	if crossValidate {
		mean, stddev, err := ml.CrossValidate(examples, crossValFolds)
		if err != nil {
			log.Printf("cross-validation failed: %v", err)
			return
		}
		log.Printf("cross-validation accuracy: %.2f%% (+/- %.2f%%)", mean*100, stddev*2*100)
	}
}
