// Package reportrender renders a domain.RunReport as a standalone HTML
// document via html/template: a questions-by-difficulty evaluation
// report, specified only by the contract the CLI's `report` command
// needs.
package reportrender

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// Render executes the report template against report and returns the
// rendered HTML document.
func Render(report domain.RunReport) ([]byte, error) {
	tmpl, err := template.New("report").Funcs(templateFuncs).Parse(htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("reportrender: parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("reportrender: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

var templateFuncs = template.FuncMap{
	"pct": func(rate float64) string {
		return fmt.Sprintf("%.1f%%", rate*100)
	},
	"outcomeClass": func(succeeded bool) string {
		if succeeded {
			return "outcome-pass"
		}
		return "outcome-fail"
	},
	"outcomeLabel": func(t domain.QuestionTrace) string {
		switch {
		case t.Succeeded():
			return "passed"
		case t.ExecutionResult == nil:
			return "gave up"
		default:
			return "execution failed"
		}
	},
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>DAG Critic Evaluation Report — {{.Summary.DatasetName}}</title>
<style>
  body { font-family: -apple-system, Helvetica, Arial, sans-serif; margin: 2rem auto; max-width: 960px; color: #1b1b1f; }
  h1 { font-size: 1.5rem; }
  .summary-grid { display: flex; gap: 1.5rem; margin: 1.5rem 0; flex-wrap: wrap; }
  .stat-tile { border: 1px solid #d8d8de; border-radius: 8px; padding: 0.75rem 1rem; min-width: 8rem; }
  .stat-tile .value { font-size: 1.4rem; font-weight: 600; }
  .stat-tile .label { font-size: 0.8rem; color: #5b5b63; }
  table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
  th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #e4e4e9; }
  .outcome-pass { color: #1a7f37; font-weight: 600; }
  .outcome-fail { color: #c53030; font-weight: 600; }
  details { margin: 0.5rem 0; }
  summary { cursor: pointer; }
  pre { background: #f6f6f8; padding: 0.75rem; border-radius: 6px; overflow-x: auto; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>DAG Critic Evaluation Report</h1>
<p>Dataset: <strong>{{.Summary.DatasetName}}</strong> &middot; Generated: {{.Summary.Timestamp}}</p>

<div class="summary-grid">
  <div class="stat-tile"><div class="value">{{.Summary.Total}}</div><div class="label">questions</div></div>
  <div class="stat-tile"><div class="value">{{.Summary.Passed}}</div><div class="label">passed</div></div>
  <div class="stat-tile"><div class="value">{{.Summary.Failed}}</div><div class="label">failed</div></div>
  <div class="stat-tile"><div class="value">{{pct .Summary.PassRate}}</div><div class="label">pass rate</div></div>
  <div class="stat-tile"><div class="value">{{printf "%.0f" .Summary.AvgExecutionTimeMs}}ms</div><div class="label">avg exec time</div></div>
  <div class="stat-tile"><div class="value">{{.Summary.TotalIterations}}</div><div class="label">total iterations</div></div>
</div>

<h2>By difficulty</h2>
<table>
<tr><th>Difficulty</th><th>Total</th><th>Passed</th><th>Failed</th><th>Pass rate</th></tr>
{{range $level, $stats := .DifficultyBreakdown}}
<tr><td>{{$level}}</td><td>{{$stats.Total}}</td><td>{{$stats.Passed}}</td><td>{{$stats.Failed}}</td><td>{{pct $stats.PassRate}}</td></tr>
{{end}}
</table>

<h2>Questions</h2>
{{range .QuestionTraces}}
<details>
<summary>
  <span class="{{outcomeClass .Succeeded}}">[{{outcomeLabel .}}]</span>
  (rank {{.Question.DifficultyRank}}, {{.Question.DifficultyLevel}}) {{.Question.Text}}
</summary>
<p><em>{{.Question.Reasoning}}</em></p>
<p>Iterations: {{.TotalIterations}}</p>
{{if .ExecutionResult}}
<pre>{{if .ExecutionResult.Success}}final answer: {{.ExecutionResult.FinalAnswer}}{{else}}error: {{.ExecutionResult.Error}}{{end}}</pre>
{{end}}
</details>
{{end}}

</body>
</html>
`
