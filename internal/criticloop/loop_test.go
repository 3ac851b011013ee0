package criticloop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

type fakeBuilder struct {
	dags []domain.GeneratedDAG
	call int
}

func (f *fakeBuilder) Build(ctx context.Context, q domain.Question, d domain.Dataset, m domain.Metadata, prior *domain.GeneratedDAG, fb *domain.CriticFeedback) domain.GeneratedDAG {
	dag := f.dags[f.call]
	if f.call < len(f.dags)-1 {
		f.call++
	}
	return dag
}

type fakeCritic struct {
	verdicts []domain.CriticFeedback
	call     int
}

func (f *fakeCritic) Review(ctx context.Context, q domain.Question, d domain.Dataset, m domain.Metadata, dag domain.GeneratedDAG) domain.CriticFeedback {
	v := f.verdicts[f.call]
	if f.call < len(f.verdicts)-1 {
		f.call++
	}
	return v
}

type fakeExecutor struct{ result domain.ExecutionResult }

func (f *fakeExecutor) Execute(ctx context.Context, dag domain.GeneratedDAG, dataset domain.Dataset) domain.ExecutionResult {
	return f.result
}

func approvedDAG(id string) domain.GeneratedDAG {
	return domain.GeneratedDAG{QuestionID: id, Nodes: []domain.DAGNode{{NodeID: "a", FunctionName: "ret", Code: "func ret(x int) int { return x }"}}, FinalAnswerNode: "a"}
}

func TestLoopApprovesFirstIteration(t *testing.T) {
	builder := &fakeBuilder{dags: []domain.GeneratedDAG{approvedDAG("q1")}}
	c := &fakeCritic{verdicts: []domain.CriticFeedback{{IsApproved: true}}}
	exec := &fakeExecutor{result: domain.ExecutionResult{Success: true, FinalAnswer: 42}}

	loop := New(builder, c, exec, 3)
	trace := loop.Run(context.Background(), domain.Question{ID: "q1"}, domain.Dataset{}, domain.Metadata{}, nil)

	require.NotNil(t, trace.ExecutionResult)
	assert.True(t, trace.Succeeded())
	assert.Equal(t, 1, trace.TotalIterations)
	assert.Len(t, trace.DAGHistory, 1)
	assert.Len(t, trace.FeedbackHistory, 1)
}

func TestLoopExhaustsAfterMaxIterations(t *testing.T) {
	rejected := domain.CriticFeedback{IsApproved: false, SpecificErrors: []string{"bad"}}
	builder := &fakeBuilder{dags: []domain.GeneratedDAG{approvedDAG("q1")}}
	c := &fakeCritic{verdicts: []domain.CriticFeedback{rejected}}
	exec := &fakeExecutor{}

	loop := New(builder, c, exec, 3)
	trace := loop.Run(context.Background(), domain.Question{ID: "q1"}, domain.Dataset{}, domain.Metadata{}, nil)

	assert.Nil(t, trace.ExecutionResult)
	assert.Equal(t, 3, trace.TotalIterations)
	assert.Len(t, trace.DAGHistory, 3)
	assert.Len(t, trace.FeedbackHistory, 3)
	assert.False(t, trace.Succeeded())
}

func TestLoopMaxZeroAlwaysGivesUp(t *testing.T) {
	builder := &fakeBuilder{dags: []domain.GeneratedDAG{approvedDAG("q1")}}
	c := &fakeCritic{verdicts: []domain.CriticFeedback{{IsApproved: true}}}
	exec := &fakeExecutor{}

	loop := New(builder, c, exec, 0)
	trace := loop.Run(context.Background(), domain.Question{ID: "q1"}, domain.Dataset{}, domain.Metadata{}, nil)

	assert.Nil(t, trace.ExecutionResult)
	assert.Equal(t, 0, trace.TotalIterations)
	assert.Empty(t, trace.DAGHistory)
}

func TestLoopRetriesAfterRejectionThenApproves(t *testing.T) {
	rejected := domain.CriticFeedback{IsApproved: false, SpecificErrors: []string{"dangling reference"}}
	approved := domain.CriticFeedback{IsApproved: true}
	builder := &fakeBuilder{dags: []domain.GeneratedDAG{approvedDAG("q1"), approvedDAG("q1")}}
	c := &fakeCritic{verdicts: []domain.CriticFeedback{rejected, approved}}
	exec := &fakeExecutor{result: domain.ExecutionResult{Success: true, FinalAnswer: 7}}

	loop := New(builder, c, exec, 3)
	trace := loop.Run(context.Background(), domain.Question{ID: "q1"}, domain.Dataset{}, domain.Metadata{}, nil)

	require.NotNil(t, trace.ExecutionResult)
	assert.Equal(t, 2, trace.TotalIterations)
	assert.Len(t, trace.DAGHistory, 2)
	assert.Len(t, trace.FeedbackHistory, 2)
}
