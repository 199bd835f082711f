package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scanner/internal/config"
	"github.com/jonathan/resume-scanner/internal/predict"
	"github.com/jonathan/resume-scanner/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Train the statistical classifier from the resume dataset, then start an HTTP server exposing the prediction and coaching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}

	// Training completes (or degrades to the heuristic tier) before the
	// server accepts any traffic; the model reference is read-only after.
	predictor := predict.New()
	predictor.TrainStartup(cfg.DatasetPath, cfg.CrossValidate)

	srv := server.New(server.Config{
		Port:         cfg.Port,
		GeminiAPIKey: cfg.GeminiAPIKey,
	}, predictor)

	return srv.Start()
}
