// Package engine assembles the full critic-loop pipeline — LLM client
// stack, question generator, DAG builder, critic, executor, and
// orchestrator — from a loaded config.Config.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/config"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/critic"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/dagbuilder"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/dagexec"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/obsmetrics"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/obstrace"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/orchestrator"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/questiongen"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/sandbox"
)

// DefaultLLMRatePerSecond and DefaultLLMBurst bound outbound LLM call
// rate regardless of what the config sets for orchestrator concurrency,
// so a high question-fan-out cannot hammer the provider.
const (
	DefaultLLMRatePerSecond = 5.0
	DefaultLLMBurst         = 10
)

// Engine is a fully wired pipeline ready to run evaluations.
type Engine struct {
	Orchestrator *orchestrator.Orchestrator
	Metrics      *obsmetrics.Metrics
	Logger       *slog.Logger
}

// Build wires an Engine from cfg. reg receives the Prometheus collectors
// (pass prometheus.DefaultRegisterer in production, a fresh
// prometheus.NewRegistry() in tests).
func Build(cfg config.Config, reg prometheus.Registerer, logger *slog.Logger) (*Engine, error) {
	provider, err := llmclient.NewOpenAIClient(cfg.LLMConfig())
	if err != nil {
		return nil, err
	}

	metrics := obsmetrics.New(reg)

	wrap := func(caller string) llmclient.Client {
		var c llmclient.Client = provider
		c = llmclient.NewRateLimitedClient(c, DefaultLLMRatePerSecond, DefaultLLMBurst)
		c = llmclient.NewRetryingClient(c, nil)
		c = llmclient.NewMetricsClient(c, metrics, caller)
		c = obstrace.NewTracedClient(c, caller)
		return c
	}

	qgen := questiongen.New(wrap("questiongen"))
	builder := dagbuilder.New(wrap("dagbuilder"))
	semanticCritic := critic.NewSemanticCritic(wrap("critic"))
	reviewer := critic.NewCritic(semanticCritic)
	sb := sandbox.New(time.Duration(cfg.NodeTimeoutSeconds) * time.Second)
	executor := dagexec.New(sb)

	orch := orchestrator.New(qgen, builder, reviewer, executor, cfg.OrchestratorOptions())

	return &Engine{Orchestrator: orch, Metrics: metrics, Logger: logger}, nil
}

// Run drives one full evaluation run and returns the resulting
// domain.RunReport. obs may be nil for orchestrator.NoopRunObserver.
func (e *Engine) Run(ctx context.Context, datasetName, timestamp string, dataset domain.Dataset, metadata domain.Metadata, obs orchestrator.RunObserver, opts ...orchestrator.RunOption) (domain.RunReport, error) {
	return e.Orchestrator.Run(ctx, datasetName, timestamp, dataset, metadata, obs, opts...)
}
