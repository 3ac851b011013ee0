package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/config"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/datasetio"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/engine"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/eventbus"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/httpapi"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/obslog"
)

func newServeCmd() *cobra.Command {
	var (
		configPath   string
		datasetPath  string
		metadataPath string
		resultsDir   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the run/report API (POST /run, GET /run/{id}/events, GET /files, GET /results/{filename})",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), serveArgs{
				configPath:   configPath,
				datasetPath:  datasetPath,
				metadataPath: metadataPath,
				resultsDir:   resultsDir,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "configs/dagcritic.yaml", "path to the engine config file")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to the active dataset bundle JSON file (required)")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "path to the active metadata JSON document (optional)")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "results", "directory completed runs write eval_results_<timestamp>.json into")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

type serveArgs struct {
	configPath   string
	datasetPath  string
	metadataPath string
	resultsDir   string
}

func runServe(ctx context.Context, a serveArgs) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	logger := obslog.New("info")

	dataset, err := datasetio.LoadDataset(a.datasetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if dataset.IsEmpty() {
		return fmt.Errorf("%w: dataset is empty", domain.ErrValidation)
	}
	metadata, err := datasetio.LoadMetadata(a.metadataPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := os.MkdirAll(a.resultsDir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	eng, err := engine.Build(cfg, prometheus.DefaultRegisterer, logger)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	registry := eventbus.NewRegistry()
	datasetName := datasetDisplayName(a.datasetPath)
	runs := engine.NewRunService(eng, datasetName, dataset, metadata, registry, a.resultsDir)
	results := engine.NewFileResultStore(a.resultsDir)

	server := httpapi.NewServer(runs, results, registry)
	logger.Info("serving dagcritic run/report API", "address", cfg.Server.Address, "dataset", datasetName)
	return server.Listen(cfg.Server.Address)
}
