package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scanner/internal/config"
	"github.com/jonathan/resume-scanner/internal/dataset"
	"github.com/jonathan/resume-scanner/internal/ml"
)

var trainFolds int

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the classifier once and report cross-validated accuracy",
	Long:  `Load the resume dataset, fit the TF-IDF + logistic regression pipeline, and print k-fold cross-validation accuracy. Useful for checking a dataset before deploying it.`,
	RunE:  runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&trainFolds, "folds", 5, "Number of cross-validation folds")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	path, ok := dataset.Locate(cfg.DatasetPath)
	if !ok {
		return fmt.Errorf("resume dataset not found (set DATASET_PATH or place data/resume-dataset.csv)")
	}
	examples, err := dataset.Load(path)
	if err != nil {
		return err
	}

	labels := dataset.Labels(examples)
	cmd.Printf("dataset: %s (%d resumes, %d categories)\n", path, len(examples), len(labels))

	if _, err := ml.Train(examples); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	cmd.Println("full-corpus fit: ok")

	mean, stddev, err := ml.CrossValidate(examples, trainFolds)
	if err != nil {
		return fmt.Errorf("cross-validation failed: %w", err)
	}
	cmd.Printf("%d-fold accuracy: %.2f%% (+/- %.2f%%)\n", trainFolds, mean*100, stddev*2*100)
	return nil
}
