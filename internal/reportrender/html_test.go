package reportrender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

func TestRenderProducesValidHTMLWithSummaryFigures(t *testing.T) {
	report := domain.RunReport{
		Summary: domain.RunSummary{
			Total: 2, Passed: 1, Failed: 1, PassRate: 0.5,
			DatasetName: "sales", Timestamp: "2026-01-01T00:00:00Z",
		},
		DifficultyBreakdown: map[domain.DifficultyLevel]domain.DifficultyStats{
			domain.DifficultyEasy: {Total: 2, Passed: 1, Failed: 1, PassRate: 0.5},
		},
		QuestionTraces: []domain.QuestionTrace{
			{
				Question:        domain.Question{ID: "q1", Text: "What is total?", DifficultyRank: 1, DifficultyLevel: domain.DifficultyEasy},
				TotalIterations: 1,
				ExecutionResult: &domain.ExecutionResult{Success: true, FinalAnswer: 42.0},
			},
			{
				Question:        domain.Question{ID: "q2", Text: "What is the breakdown?", DifficultyRank: 2, DifficultyLevel: domain.DifficultyEasy},
				TotalIterations: 3,
			},
		},
	}

	out, err := Render(report)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "sales")
	assert.Contains(t, html, "What is total?")
	assert.Contains(t, html, "50.0%")
	assert.Contains(t, html, "gave up")
}

func TestRenderDistinguishesExecutionFailureFromGiveUp(t *testing.T) {
	report := domain.RunReport{
		Summary:             domain.RunSummary{Total: 1, Failed: 1},
		DifficultyBreakdown: map[domain.DifficultyLevel]domain.DifficultyStats{},
		QuestionTraces: []domain.QuestionTrace{
			{
				Question:        domain.Question{ID: "q1", Text: "Divide by zero?"},
				ExecutionResult: &domain.ExecutionResult{Success: false, Error: "ZeroDivisionError: division by zero"},
			},
		},
	}

	out, err := Render(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "execution failed")
	assert.Contains(t, string(out), "division by zero")
}
