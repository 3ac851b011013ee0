package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/config"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/datasetio"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/engine"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/obslog"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/orchestrator"
)

func newRunCmd() *cobra.Command {
	var (
		configPath   string
		datasetPath  string
		metadataPath string
		outputPath   string
		verbose      bool
		numQuestions int
		difficulty   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full question-gen -> build -> critique -> execute pipeline over a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), runArgs{
				configPath:   configPath,
				datasetPath:  datasetPath,
				metadataPath: metadataPath,
				outputPath:   outputPath,
				verbose:      verbose,
				numQuestions: numQuestions,
				difficulty:   difficulty,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "configs/dagcritic.yaml", "path to the engine config file")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to the dataset bundle JSON file (required)")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "path to the metadata JSON document (optional)")
	cmd.Flags().StringVar(&outputPath, "output", "eval_results.json", "path to write the resulting RunReport JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	cmd.Flags().IntVar(&numQuestions, "questions", 0, "override the configured question count (0 = use config default)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "all", "restrict evaluation to one difficulty band: all|easy|medium|hard")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

type runArgs struct {
	configPath   string
	datasetPath  string
	metadataPath string
	outputPath   string
	verbose      bool
	numQuestions int
	difficulty   string
}

func runRun(ctx context.Context, a runArgs) error {
	switch a.difficulty {
	case "all", "easy", "medium", "hard":
	default:
		return fmt.Errorf("%w: --difficulty must be one of all|easy|medium|hard", domain.ErrValidation)
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	level := "info"
	if a.verbose {
		level = "debug"
	}
	logger := obslog.New(level)

	dataset, err := datasetio.LoadDataset(a.datasetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	metadata, err := datasetio.LoadMetadata(a.metadataPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	eng, err := engine.Build(cfg, prometheus.NewRegistry(), logger)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var opts []orchestrator.RunOption
	if a.numQuestions > 0 {
		opts = append(opts, orchestrator.WithQuestionCount(a.numQuestions))
	}
	if a.difficulty != "all" {
		opts = append(opts, orchestrator.WithDifficultyFilter(domain.DifficultyLevel(a.difficulty)))
	}

	datasetName := datasetDisplayName(a.datasetPath)
	report, err := eng.Run(ctx, datasetName, runTimestampCLI(), dataset, metadata, loggingObserver{logger: logger}, opts...)
	if err != nil {
		return err
	}

	if err := datasetio.SaveReport(a.outputPath, report); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	logger.Info("run complete",
		"dataset", datasetName,
		"total", report.Summary.Total,
		"passed", report.Summary.Passed,
		"pass_rate", report.Summary.PassRate,
		"output", a.outputPath,
	)
	return nil
}
