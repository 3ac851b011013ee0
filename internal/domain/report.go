package domain

import "sort"

// DifficultyStats aggregates pass/fail counts for one difficulty band.
type DifficultyStats struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
}

// RunSummary is the top-level scalar summary of one RunReport.
type RunSummary struct {
	Total              int     `json:"total"`
	Passed             int     `json:"passed"`
	Failed             int     `json:"failed"`
	PassRate           float64 `json:"pass_rate"`
	AvgExecutionTimeMs float64 `json:"avg_execution_time_ms"`
	TotalIterations    int     `json:"total_iterations"`
	Timestamp          string  `json:"timestamp"`
	DatasetName        string  `json:"dataset_name"`
}

// RunReport is the final artifact a run produces: a scalar summary, a
// per-difficulty breakdown, and every question's full audit trail.
type RunReport struct {
	Summary             RunSummary                           `json:"summary"`
	DifficultyBreakdown map[DifficultyLevel]DifficultyStats  `json:"difficulty_breakdown"`
	QuestionTraces      []QuestionTrace                      `json:"question_traces"`
}

// BuildRunReport computes a RunReport from the collected QuestionTraces.
// The result is independent of the order traces were produced in: traces
// are sorted by difficulty rank before anything else happens.
func BuildRunReport(datasetName, timestamp string, traces []QuestionTrace) RunReport {
	sorted := make([]QuestionTrace, len(traces))
	copy(sorted, traces)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Question.DifficultyRank < sorted[j].Question.DifficultyRank
	})

	breakdown := map[DifficultyLevel]DifficultyStats{
		DifficultyEasy:   {},
		DifficultyMedium: {},
		DifficultyHard:   {},
	}

	var totalPassed, totalFailed, totalIterations int
	var execTimeSum float64
	var execTimeCount int

	for _, tr := range sorted {
		level := tr.Question.DifficultyLevel
		stats := breakdown[level]
		stats.Total++
		totalIterations += tr.TotalIterations

		if tr.Succeeded() {
			stats.Passed++
			totalPassed++
			execTimeSum += tr.ExecutionResult.ExecutionTimeMs
			execTimeCount++
		} else {
			stats.Failed++
			totalFailed++
		}
		breakdown[level] = stats
	}

	for level, stats := range breakdown {
		if stats.Total > 0 {
			stats.PassRate = float64(stats.Passed) / float64(stats.Total)
			breakdown[level] = stats
		}
	}

	total := totalPassed + totalFailed
	var passRate, avgExecTime float64
	if total > 0 {
		passRate = float64(totalPassed) / float64(total)
	}
	if execTimeCount > 0 {
		avgExecTime = execTimeSum / float64(execTimeCount)
	}

	return RunReport{
		Summary: RunSummary{
			Total:              total,
			Passed:             totalPassed,
			Failed:             totalFailed,
			PassRate:           passRate,
			AvgExecutionTimeMs: avgExecTime,
			TotalIterations:    totalIterations,
			Timestamp:          timestamp,
			DatasetName:        datasetName,
		},
		DifficultyBreakdown: breakdown,
		QuestionTraces:      sorted,
	}
}
