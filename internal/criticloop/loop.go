// Package criticloop implements the per-question build/critique/execute
// state machine: BUILD, VALIDATE, and either another BUILD round,
// EXECUTE, or GIVE_UP.
package criticloop

import (
	"context"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/obstrace"
)

// Builder builds one DAG per iteration for a question, given the prior
// DAG and feedback on retries. Satisfied by *dagbuilder.Builder.
type Builder interface {
	Build(ctx context.Context, question domain.Question, dataset domain.Dataset, metadata domain.Metadata, prior *domain.GeneratedDAG, feedback *domain.CriticFeedback) domain.GeneratedDAG
}

// CriticReviewer reviews one DAG and returns its CriticFeedback.
// Satisfied by *critic.Critic.
type CriticReviewer interface {
	Review(ctx context.Context, question domain.Question, dataset domain.Dataset, metadata domain.Metadata, dag domain.GeneratedDAG) domain.CriticFeedback
}

// Executor runs one approved DAG against a dataset. Satisfied by
// *dagexec.Executor.
type Executor interface {
	Execute(ctx context.Context, dag domain.GeneratedDAG, dataset domain.Dataset) domain.ExecutionResult
}

// DefaultMaxIterations bounds how many build/critique rounds a question
// gets before the loop gives up.
const DefaultMaxIterations = 3

// Observer receives a notification for every state-machine transition a
// Loop makes, letting the orchestrator mirror the loop's lifecycle onto
// the run's event stream without the loop itself depending on the event
// bus.
type Observer interface {
	OnDAGBuilt(questionID string, iteration int, dag domain.GeneratedDAG)
	OnCriticResult(questionID string, iteration int, feedback domain.CriticFeedback)
	OnExecutionDone(questionID string, result domain.ExecutionResult)
}

// NoopObserver implements Observer with no-ops, for callers that don't
// need lifecycle notifications (most tests).
type NoopObserver struct{}

func (NoopObserver) OnDAGBuilt(string, int, domain.GeneratedDAG)       {}
func (NoopObserver) OnCriticResult(string, int, domain.CriticFeedback) {}
func (NoopObserver) OnExecutionDone(string, domain.ExecutionResult)    {}

// Loop drives one question through build -> validate -> (loop | execute
// | give up) until approved or MAX iterations are exhausted.
type Loop struct {
	builder  Builder
	critic   CriticReviewer
	executor Executor
	maxIter  int
}

// New returns a Loop with MAX = maxIter. maxIter == 0 is a deliberate
// boundary value — every question immediately gives up with a nil
// execution result — and is not coerced to the default; only a negative
// maxIter falls back to DefaultMaxIterations.
func New(builder Builder, c CriticReviewer, executor Executor, maxIter int) *Loop {
	if maxIter < 0 {
		maxIter = DefaultMaxIterations
	}
	return &Loop{builder: builder, critic: c, executor: executor, maxIter: maxIter}
}

// Run drives question through the full state machine and returns its
// complete QuestionTrace. Run never returns an error: every outcome —
// success, execution failure, or exhaustion — is carried in the trace
// itself, so a single question's failure never aborts the run.
func (l *Loop) Run(ctx context.Context, question domain.Question, dataset domain.Dataset, metadata domain.Metadata, obs Observer) domain.QuestionTrace {
	if obs == nil {
		obs = NoopObserver{}
	}

	trace := domain.QuestionTrace{Question: question}

	if l.maxIter == 0 {
		// MAX=0: give up before ever building a DAG.
		return trace
	}

	var prior *domain.GeneratedDAG
	var priorFeedback *domain.CriticFeedback

	for {
		if ctx.Err() != nil {
			return trace
		}

		iterCtx, span := obstrace.StartLoopIteration(ctx, question.ID, trace.TotalIterations+1)

		// BUILD
		dag := l.builder.Build(iterCtx, question, dataset, metadata, prior, priorFeedback)
		trace.DAGHistory = append(trace.DAGHistory, dag)
		trace.TotalIterations++
		obs.OnDAGBuilt(question.ID, trace.TotalIterations, dag)

		// VALIDATE
		feedback := l.critic.Review(iterCtx, question, dataset, metadata, dag)
		trace.FeedbackHistory = append(trace.FeedbackHistory, feedback)
		obs.OnCriticResult(question.ID, trace.TotalIterations, feedback)
		span.End()

		if feedback.IsApproved {
			result := l.executor.Execute(ctx, dag, dataset)
			trace.ExecutionResult = &result
			obs.OnExecutionDone(question.ID, result)
			return trace
		}

		if trace.TotalIterations >= l.maxIter {
			// GIVE_UP: execution_result stays nil.
			return trace
		}

		prior = &dag
		priorFeedback = &feedback
	}
}
