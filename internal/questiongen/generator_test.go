package questiongen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
)

type fakeClient struct{ raw json.RawMessage }

func (f *fakeClient) Complete(ctx context.Context, req llmclient.Request) (json.RawMessage, error) {
	return f.raw, nil
}

func TestGenerateAssignsContiguousRanks(t *testing.T) {
	raw := json.RawMessage(`{"questions":[
		{"text":"q1","reasoning":"r1","relevant_data_keys":["total"]},
		{"text":"q2","reasoning":"r2","relevant_data_keys":["total"]},
		{"text":"q3","reasoning":"r3","relevant_data_keys":["total"]}
	]}`)
	gen := New(&fakeClient{raw: raw})

	questions, err := gen.Generate(context.Background(), domain.Dataset{"total": 42}, domain.Metadata{}, 3)
	require.NoError(t, err)
	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, i+1, q.DifficultyRank)
		assert.NotEmpty(t, q.ID)
	}
	assert.Equal(t, domain.DifficultyEasy, questions[0].DifficultyLevel)
	assert.Equal(t, domain.DifficultyHard, questions[2].DifficultyLevel)
}
