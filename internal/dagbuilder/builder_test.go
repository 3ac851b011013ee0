package dagbuilder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
)

type fakeClient struct {
	raw json.RawMessage
	err error
}

func (f *fakeClient) Complete(ctx context.Context, req llmclient.Request) (json.RawMessage, error) {
	return f.raw, f.err
}

func TestBuildParsesDAG(t *testing.T) {
	raw := json.RawMessage(`{
		"description": "trivial",
		"nodes": [{"node_id":"a","function_name":"ret","layer":0,"code":"func ret(x float64) float64 { return x }","inputs":{"x":"dataset.total"}}],
		"final_answer_node": "a"
	}`)
	b := New(&fakeClient{raw: raw})
	dag := b.Build(context.Background(), domain.Question{ID: "q1"}, domain.Dataset{"total": 42.0}, domain.Metadata{}, nil, nil)
	require.Len(t, dag.Nodes, 1)
	assert.Equal(t, "q1", dag.QuestionID)
	assert.Equal(t, "a", dag.FinalAnswerNode)
}

func TestBuildFallsBackToEmptyDAGOnTransportFailure(t *testing.T) {
	b := New(&fakeClient{err: errors.New("boom")})
	dag := b.Build(context.Background(), domain.Question{ID: "q1"}, domain.Dataset{}, domain.Metadata{}, nil, nil)
	assert.True(t, dag.IsEmpty())
}
