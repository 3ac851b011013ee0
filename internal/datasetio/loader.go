// Package datasetio reads the pre-aggregated dataset bundle and its
// metadata document from JSON files on disk. Turning raw tabular files
// into that bundle is a separate, out-of-process ingestion step; this
// package only loads the bundle's own JSON representation, the contract
// the orchestrator's ingest gate needs.
package datasetio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// LoadDataset reads path as a JSON object and returns it as a
// domain.Dataset.
func LoadDataset(path string) (domain.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("datasetio: read dataset %s: %w", path, err)
	}
	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("datasetio: parse dataset %s: %w", path, err)
	}
	return ds, nil
}

// LoadMetadata reads path as a JSON object and returns it as a
// domain.Metadata. A missing file is non-fatal: the orchestrator's
// ingest gate treats an empty Metadata as a warning, not an error, so
// LoadMetadata returns a zero Metadata rather than an error when path is
// empty or the file does not exist.
func LoadMetadata(path string) (domain.Metadata, error) {
	if path == "" {
		return domain.Metadata{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Metadata{}, nil
		}
		return domain.Metadata{}, fmt.Errorf("datasetio: read metadata %s: %w", path, err)
	}
	var md domain.Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return domain.Metadata{}, fmt.Errorf("datasetio: parse metadata %s: %w", path, err)
	}
	return md, nil
}

// LoadReport reads path as a JSON-encoded domain.RunReport.
func LoadReport(path string) (domain.RunReport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("datasetio: read report %s: %w", path, err)
	}
	var report domain.RunReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.RunReport{}, fmt.Errorf("datasetio: parse report %s: %w", path, err)
	}
	return report, nil
}

// SaveReport writes report to path as indented JSON, matching the
// eval_results_<timestamp>.json artifact a run produces.
func SaveReport(path string, report domain.RunReport) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("datasetio: marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("datasetio: write report %s: %w", path, err)
	}
	return nil
}
