// Package obsmetrics exposes the run/question/node/LLM-call Prometheus
// metrics for the critic loop engine: a fixed set of named, typed
// counters and histograms for this domain's own event taxonomy.
package obsmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector this engine registers.
type Metrics struct {
	runsTotal         *prometheus.CounterVec
	questionsTotal    *prometheus.CounterVec
	criticIterations  prometheus.Histogram
	nodeExecutions    *prometheus.CounterVec
	nodeExecutionTime prometheus.Histogram
	llmCallsTotal     *prometheus.CounterVec
	llmCallLatency    *prometheus.HistogramVec
}

// New registers and returns a Metrics backed by reg. Pass
// prometheus.DefaultRegisterer for the process-wide default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagcritic_runs_total",
				Help: "Total number of evaluation runs, by outcome.",
			},
			[]string{"outcome"},
		),
		questionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagcritic_questions_total",
				Help: "Total number of questions evaluated, by outcome.",
			},
			[]string{"outcome", "difficulty"},
		),
		criticIterations: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dagcritic_critic_iterations",
				Help:    "Number of build/critique iterations a question took.",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
		nodeExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagcritic_node_executions_total",
				Help: "Total number of sandboxed node executions, by outcome.",
			},
			[]string{"outcome"},
		),
		nodeExecutionTime: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dagcritic_node_execution_seconds",
				Help:    "Wall time of a single sandboxed node execution.",
				Buckets: prometheus.DefBuckets,
			},
		),
		llmCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dagcritic_llm_calls_total",
				Help: "Total number of LLM completion calls, by caller and outcome.",
			},
			[]string{"caller", "outcome"},
		),
		llmCallLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dagcritic_llm_call_seconds",
				Help:    "Latency of LLM completion calls, by caller.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"caller"},
		),
	}
}

// RecordRun increments the run counter for the given outcome
// ("success", "error").
func (m *Metrics) RecordRun(outcome string) {
	m.runsTotal.WithLabelValues(outcome).Inc()
}

// RecordQuestion increments the question counter for the given outcome
// ("success", "gave_up") and difficulty band, and observes iterations.
func (m *Metrics) RecordQuestion(outcome, difficulty string, iterations int) {
	m.questionsTotal.WithLabelValues(outcome, difficulty).Inc()
	m.criticIterations.Observe(float64(iterations))
}

// RecordNodeExecution increments the node execution counter for outcome
// ("success", "failure") and observes duration.
func (m *Metrics) RecordNodeExecution(outcome string, duration time.Duration) {
	m.nodeExecutions.WithLabelValues(outcome).Inc()
	m.nodeExecutionTime.Observe(duration.Seconds())
}

// RecordLLMCall increments the LLM call counter for caller
// ("questiongen", "dagbuilder", "critic") and outcome, and observes
// latency.
func (m *Metrics) RecordLLMCall(caller, outcome string, duration time.Duration) {
	m.llmCallsTotal.WithLabelValues(caller, outcome).Inc()
	m.llmCallLatency.WithLabelValues(caller).Observe(duration.Seconds())
}
