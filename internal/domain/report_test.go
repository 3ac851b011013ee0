package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func traceWithRank(id string, rank int, level DifficultyLevel, succeeded bool) QuestionTrace {
	tr := QuestionTrace{
		Question:        Question{ID: id, DifficultyRank: rank, DifficultyLevel: level},
		TotalIterations: 1,
	}
	if succeeded {
		tr.ExecutionResult = &ExecutionResult{Success: true, ExecutionTimeMs: 10}
	}
	return tr
}

func TestBuildRunReportSortsByDifficultyRankStably(t *testing.T) {
	// q2 and q3 share a rank; their relative order must survive the sort.
	traces := []QuestionTrace{
		traceWithRank("q1", 3, DifficultyHard, true),
		traceWithRank("q2", 1, DifficultyEasy, true),
		traceWithRank("q3", 1, DifficultyEasy, true),
	}

	report := BuildRunReport("sales", "2026-01-01", traces)

	ids := make([]string, len(report.QuestionTraces))
	for i, tr := range report.QuestionTraces {
		ids[i] = tr.Question.ID
	}
	assert.Equal(t, []string{"q2", "q3", "q1"}, ids)
}

func TestBuildRunReportDoesNotMutateInputSlice(t *testing.T) {
	traces := []QuestionTrace{
		traceWithRank("q1", 2, DifficultyMedium, true),
		traceWithRank("q2", 1, DifficultyEasy, true),
	}

	BuildRunReport("sales", "2026-01-01", traces)

	assert.Equal(t, "q1", traces[0].Question.ID, "BuildRunReport must not reorder the caller's slice in place")
}

func TestBuildRunReportEmptyTracesAvoidsDivisionByZero(t *testing.T) {
	report := BuildRunReport("sales", "2026-01-01", nil)

	assert.Zero(t, report.Summary.Total)
	assert.Zero(t, report.Summary.PassRate)
	assert.Zero(t, report.Summary.AvgExecutionTimeMs)
	for level, stats := range report.DifficultyBreakdown {
		assert.Zero(t, stats.Total, "level %s", level)
		assert.Zero(t, stats.PassRate, "level %s", level)
	}
}

func TestBuildRunReportAllFailedLeavesAvgExecTimeZero(t *testing.T) {
	traces := []QuestionTrace{
		traceWithRank("q1", 1, DifficultyEasy, false),
		traceWithRank("q2", 2, DifficultyMedium, false),
	}

	report := BuildRunReport("sales", "2026-01-01", traces)

	assert.Equal(t, 2, report.Summary.Total)
	assert.Zero(t, report.Summary.Passed)
	assert.Zero(t, report.Summary.PassRate)
	assert.Zero(t, report.Summary.AvgExecutionTimeMs, "no succeeded trace contributed an execution time")
}

func TestBuildRunReportAggregatesPassRatePerDifficulty(t *testing.T) {
	traces := []QuestionTrace{
		traceWithRank("q1", 1, DifficultyEasy, true),
		traceWithRank("q2", 2, DifficultyEasy, false),
		traceWithRank("q3", 3, DifficultyHard, true),
	}

	report := BuildRunReport("sales", "2026-01-01", traces)

	easy := report.DifficultyBreakdown[DifficultyEasy]
	assert.Equal(t, 2, easy.Total)
	assert.Equal(t, 1, easy.Passed)
	assert.Equal(t, 1, easy.Failed)
	assert.Equal(t, 0.5, easy.PassRate)

	hard := report.DifficultyBreakdown[DifficultyHard]
	assert.Equal(t, 1, hard.Total)
	assert.Equal(t, 1.0, hard.PassRate)

	medium := report.DifficultyBreakdown[DifficultyMedium]
	assert.Zero(t, medium.Total)
	assert.Zero(t, medium.PassRate)
}
