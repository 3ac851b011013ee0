package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// loggingObserver mirrors a run's lifecycle onto structured log lines,
// the CLI's stand-in for the HTTP server's SSE stream — grounded on the
// same events the engine.EventObserver publishes, just rendered as
// log/slog fields instead of domain.Event frames.
type loggingObserver struct {
	logger *slog.Logger
}

func (o loggingObserver) OnDAGBuilt(questionID string, iteration int, dag domain.GeneratedDAG) {
	o.logger.Debug("dag built", "question_id", questionID, "iteration", iteration, "nodes", len(dag.Nodes))
}

func (o loggingObserver) OnCriticResult(questionID string, iteration int, feedback domain.CriticFeedback) {
	o.logger.Debug("critic result", "question_id", questionID, "iteration", iteration, "approved", feedback.IsApproved)
}

func (o loggingObserver) OnExecutionDone(questionID string, result domain.ExecutionResult) {
	o.logger.Debug("execution done", "question_id", questionID, "success", result.Success)
}

func (o loggingObserver) OnRunStarted(datasetName string, numQuestions int) {
	o.logger.Info("run started", "dataset", datasetName, "num_questions", numQuestions)
}

func (o loggingObserver) OnQuestionsGenerated(questions []domain.Question) {
	o.logger.Info("questions generated", "count", len(questions))
}

func (o loggingObserver) OnMetadataMissing() {
	o.logger.Warn("metadata document missing or empty; proceeding with empty schema")
}

func (o loggingObserver) OnQuestionComplete(questionID string, succeeded, gaveUp bool) {
	o.logger.Info("question complete", "question_id", questionID, "succeeded", succeeded, "gave_up", gaveUp)
}

func (o loggingObserver) OnRunComplete(report domain.RunReport) {
	o.logger.Info("run complete", "total", report.Summary.Total, "passed", report.Summary.Passed)
}

// datasetDisplayName derives a human-readable dataset name from its file
// path for the RunReport's dataset_name field.
func datasetDisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// runTimestampCLI stamps the RunReport with the time the run started.
func runTimestampCLI() string {
	return time.Now().UTC().Format(time.RFC3339)
}
