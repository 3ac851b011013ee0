package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/datasetio"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/reportrender"
)

func newReportCmd() *cobra.Command {
	var resultsPath, outputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a stored RunReport JSON file as a standalone HTML report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(resultsPath, outputPath)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "path to a RunReport JSON file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "report.html", "path to write the rendered HTML report")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func runReport(resultsPath, outputPath string) error {
	report, err := datasetio.LoadReport(resultsPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	html, err := reportrender.Render(report)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	if err := os.WriteFile(outputPath, html, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	return nil
}
