// Package orchestrator drives one run end to end: the ingest gate,
// question generation, per-question fan-out through the critic loop, and
// final report assembly, using golang.org/x/sync/errgroup to bound
// concurrency across the fan-out.
package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/criticloop"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// QuestionGenerator produces the ranked question set for a run.
// Satisfied by *questiongen.Generator.
type QuestionGenerator interface {
	Generate(ctx context.Context, dataset domain.Dataset, metadata domain.Metadata, count int) ([]domain.Question, error)
}

// Options configures one Orchestrator.
type Options struct {
	// MaxConcurrentQuestions caps how many questions run through the
	// critic loop at once.
	MaxConcurrentQuestions int
	// MaxIterations is MAX, passed straight through to every
	// criticloop.Loop this orchestrator creates.
	MaxIterations int
	// QuestionCount is how many questions to request from the
	// generator when a run doesn't specify its own.
	QuestionCount int
}

// RunObserver receives lifecycle notifications for a single run, letting
// the HTTP layer mirror them onto the run's event stream without the
// orchestrator depending on eventbus directly.
type RunObserver interface {
	criticloop.Observer
	OnRunStarted(datasetName string, numQuestions int)
	OnQuestionsGenerated(questions []domain.Question)
	OnMetadataMissing()
	OnQuestionComplete(questionID string, succeeded, gaveUp bool)
	OnRunComplete(report domain.RunReport)
}

// NoopRunObserver implements RunObserver with no-ops.
type NoopRunObserver struct{ criticloop.NoopObserver }

func (NoopRunObserver) OnRunStarted(string, int)               {}
func (NoopRunObserver) OnQuestionsGenerated([]domain.Question) {}
func (NoopRunObserver) OnMetadataMissing()                     {}
func (NoopRunObserver) OnQuestionComplete(string, bool, bool)  {}
func (NoopRunObserver) OnRunComplete(domain.RunReport)         {}

// Orchestrator drives one run: ingest gate, question generation,
// per-question critic loop fan-out, and report assembly.
type Orchestrator struct {
	generator QuestionGenerator
	builder   criticloop.Builder
	critic    criticloop.CriticReviewer
	executor  criticloop.Executor
	opts      Options
}

// New returns an Orchestrator wired to the given components.
func New(generator QuestionGenerator, builder criticloop.Builder, critic criticloop.CriticReviewer, executor criticloop.Executor, opts Options) *Orchestrator {
	if opts.MaxConcurrentQuestions <= 0 {
		opts.MaxConcurrentQuestions = 5
	}
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = 10
	}
	return &Orchestrator{generator: generator, builder: builder, critic: critic, executor: executor, opts: opts}
}

// Run executes the full pipeline for one dataset and returns the
// completed domain.RunReport. datasetName and timestamp are carried
// straight into the report for identification; Run never mutates
// dataset or metadata.
//
// The ingest gate rejects an empty dataset outright (returns an error
// wrapping domain.ErrValidation); a missing or empty metadata document
// is non-fatal — Run proceeds with an empty domain.Metadata and notifies
// obs.OnMetadataMissing.
//
// RunOptions may be supplied to override the per-run question count or
// restrict evaluation to one difficulty band — the CLI/API's optional
// question count and optional difficulty filter — without reconstructing
// the Orchestrator.
func (o *Orchestrator) Run(ctx context.Context, datasetName, timestamp string, dataset domain.Dataset, metadata domain.Metadata, obs RunObserver, opts ...RunOption) (domain.RunReport, error) {
	if obs == nil {
		obs = NoopRunObserver{}
	}

	cfg := runConfig{questionCount: o.opts.QuestionCount}
	for _, opt := range opts {
		opt(&cfg)
	}

	if dataset.IsEmpty() {
		return domain.RunReport{}, fmt.Errorf("%w: dataset is empty", domain.ErrValidation)
	}
	if metadata.IsEmpty() {
		obs.OnMetadataMissing()
	}

	questions, err := o.generator.Generate(ctx, dataset, metadata, cfg.questionCount)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("orchestrator: question generation: %w", err)
	}
	obs.OnRunStarted(datasetName, len(questions))
	obs.OnQuestionsGenerated(questions)

	evaluated := questions
	if cfg.difficulty != "" {
		evaluated = filterByDifficulty(questions, cfg.difficulty)
	}

	traces, err := o.runQuestions(ctx, evaluated, dataset, metadata, obs)
	if err != nil {
		return domain.RunReport{}, err
	}

	report := domain.BuildRunReport(datasetName, timestamp, traces)
	obs.OnRunComplete(report)
	return report, nil
}

// runConfig holds the per-call overrides RunOption values apply.
type runConfig struct {
	questionCount int
	difficulty    domain.DifficultyLevel
}

// RunOption customizes a single Orchestrator.Run call.
type RunOption func(*runConfig)

// WithQuestionCount overrides the Orchestrator's configured question
// count for this run only.
func WithQuestionCount(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.questionCount = n
		}
	}
}

// WithDifficultyFilter restricts this run to evaluating only questions
// of the given band. An empty level (the zero value) evaluates every
// question, matching the API's "all" difficulty.
func WithDifficultyFilter(level domain.DifficultyLevel) RunOption {
	return func(c *runConfig) { c.difficulty = level }
}

// filterByDifficulty returns the subset of questions matching level,
// preserving order. The difficulty bucketing itself is computed over the
// full generated set before filtering, so a filtered run's
// difficulty_rank values still reflect the unfiltered question set.
func filterByDifficulty(questions []domain.Question, level domain.DifficultyLevel) []domain.Question {
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.DifficultyLevel == level {
			out = append(out, q)
		}
	}
	return out
}

// runQuestions fans out over questions with a concurrency cap and
// returns every resulting QuestionTrace. Each goroutine writes only its
// own index of a pre-sized slice, so no element is ever written by two
// goroutines — the aggregation is commutative in the order loops
// complete.
func (o *Orchestrator) runQuestions(ctx context.Context, questions []domain.Question, dataset domain.Dataset, metadata domain.Metadata, obs RunObserver) ([]domain.QuestionTrace, error) {
	traces := make([]domain.QuestionTrace, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.opts.MaxConcurrentQuestions)

	loop := criticloop.New(o.builder, o.critic, o.executor, o.opts.MaxIterations)

	for i, q := range questions {
		i, q := i, q
		g.Go(func() error {
			trace := loop.Run(gctx, q, dataset, metadata, obs)
			traces[i] = trace
			obs.OnQuestionComplete(q.ID, trace.Succeeded(), trace.ExecutionResult == nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	// criticloop.Loop.Run never returns an error (every outcome is
	// carried in its QuestionTrace), so g.Wait() above reports success
	// even when ctx was cancelled mid-run. Cancellation must still
	// surface as a run failure rather than a normal completion.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCancelled, err)
	}
	return traces, nil
}
