package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

type fakeGenerator struct{ questions []domain.Question }

func (f *fakeGenerator) Generate(ctx context.Context, dataset domain.Dataset, metadata domain.Metadata, count int) ([]domain.Question, error) {
	return f.questions, nil
}

type fakeBuilder struct{}

func (fakeBuilder) Build(ctx context.Context, q domain.Question, d domain.Dataset, m domain.Metadata, prior *domain.GeneratedDAG, fb *domain.CriticFeedback) domain.GeneratedDAG {
	return domain.GeneratedDAG{
		QuestionID:      q.ID,
		Nodes:           []domain.DAGNode{{NodeID: "a", FunctionName: "ret", Code: "func ret(x int) int { return x }"}},
		FinalAnswerNode: "a",
	}
}

type fakeCritic struct{}

func (fakeCritic) Review(ctx context.Context, q domain.Question, d domain.Dataset, m domain.Metadata, dag domain.GeneratedDAG) domain.CriticFeedback {
	return domain.CriticFeedback{IsApproved: true}
}

type fakeExecutor struct{}

func (fakeExecutor) Execute(ctx context.Context, dag domain.GeneratedDAG, dataset domain.Dataset) domain.ExecutionResult {
	return domain.ExecutionResult{QuestionID: dag.QuestionID, Success: true, FinalAnswer: 1}
}

func threeQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", DifficultyRank: 1, DifficultyLevel: domain.DifficultyEasy},
		{ID: "q2", DifficultyRank: 2, DifficultyLevel: domain.DifficultyMedium},
		{ID: "q3", DifficultyRank: 3, DifficultyLevel: domain.DifficultyHard},
	}
}

func TestRunRejectsEmptyDataset(t *testing.T) {
	o := New(&fakeGenerator{}, fakeBuilder{}, fakeCritic{}, fakeExecutor{}, Options{})
	_, err := o.Run(context.Background(), "ds", "2026-01-01", domain.Dataset{}, domain.Metadata{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRunProducesOneTracePerQuestion(t *testing.T) {
	gen := &fakeGenerator{questions: threeQuestions()}
	o := New(gen, fakeBuilder{}, fakeCritic{}, fakeExecutor{}, Options{MaxConcurrentQuestions: 2})

	report, err := o.Run(context.Background(), "sales", "2026-01-01", domain.Dataset{"total": 1.0}, domain.Metadata{Description: "sales data"}, nil)
	require.NoError(t, err)
	assert.Len(t, report.QuestionTraces, 3)
	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 3, report.Summary.Passed)
}

func TestRunNotifiesMissingMetadata(t *testing.T) {
	gen := &fakeGenerator{questions: []domain.Question{{ID: "q1", DifficultyLevel: domain.DifficultyEasy}}}
	o := New(gen, fakeBuilder{}, fakeCritic{}, fakeExecutor{}, Options{})

	obs := &trackingObserver{}
	_, err := o.Run(context.Background(), "ds", "2026-01-01", domain.Dataset{"total": 1.0}, domain.Metadata{}, obs)
	require.NoError(t, err)
	assert.True(t, obs.missingCalled)
}

type trackingObserver struct {
	NoopRunObserver
	missingCalled bool
}

func (t *trackingObserver) OnMetadataMissing() { t.missingCalled = true }

func TestRunWithDifficultyFilterRestrictsEvaluatedQuestions(t *testing.T) {
	gen := &fakeGenerator{questions: threeQuestions()}
	o := New(gen, fakeBuilder{}, fakeCritic{}, fakeExecutor{}, Options{})

	report, err := o.Run(context.Background(), "sales", "2026-01-01", domain.Dataset{"total": 1.0}, domain.Metadata{}, nil, WithDifficultyFilter(domain.DifficultyHard))
	require.NoError(t, err)
	require.Len(t, report.QuestionTraces, 1)
	assert.Equal(t, "q3", report.QuestionTraces[0].Question.ID)
}

func TestRunWithQuestionCountOverridesGeneratorCount(t *testing.T) {
	var sawCount int
	gen := &countingGenerator{fakeGenerator: fakeGenerator{questions: threeQuestions()}, sawCount: &sawCount}
	o := New(gen, fakeBuilder{}, fakeCritic{}, fakeExecutor{}, Options{QuestionCount: 10})

	_, err := o.Run(context.Background(), "sales", "2026-01-01", domain.Dataset{"total": 1.0}, domain.Metadata{}, nil, WithQuestionCount(3))
	require.NoError(t, err)
	assert.Equal(t, 3, sawCount)
}

type countingGenerator struct {
	fakeGenerator
	sawCount *int
}

func (g *countingGenerator) Generate(ctx context.Context, dataset domain.Dataset, metadata domain.Metadata, count int) ([]domain.Question, error) {
	*g.sawCount = count
	return g.fakeGenerator.questions, nil
}
