// Package questiongen produces the ranked set of analytical questions a
// run will evaluate, via one LLM call per run.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
)

// DefaultTemperature is the low temperature used for question generation.
const DefaultTemperature = 0.3

// DefaultCount is the default number of questions generated per run.
const DefaultCount = 10

// Generator produces questions for a dataset via an llmclient.Client.
type Generator struct {
	client llmclient.Client
}

// New returns a Generator backed by client.
func New(client llmclient.Client) *Generator {
	return &Generator{client: client}
}

// rawQuestion is the shape the LLM is asked to return for one question,
// before difficulty_rank/difficulty_level are normalized and an ID is
// assigned.
type rawQuestion struct {
	Text             string   `json:"text"`
	Reasoning        string   `json:"reasoning"`
	RelevantDataKeys []string `json:"relevant_data_keys"`
}

type rawResponse struct {
	Questions []rawQuestion `json:"questions"`
}

// Generate asks the LLM for count ranked questions about dataset/metadata
// and returns them with difficulty_rank contiguous 1..count and
// difficulty_level bucketed per domain.BucketDifficulty.
func (g *Generator) Generate(ctx context.Context, dataset domain.Dataset, metadata domain.Metadata, count int) ([]domain.Question, error) {
	if count <= 0 {
		count = DefaultCount
	}

	raw, err := g.client.Complete(ctx, llmclient.Request{
		SystemPrompt: systemPrompt(),
		Prompt:       buildPrompt(dataset, metadata, count),
		Temperature:  DefaultTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("question generator: %w", err)
	}

	var resp rawResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("question generator: %w", &llmclient.ParseError{Provider: "llm", Body: string(raw), Err: err})
	}

	return normalize(resp.Questions, count), nil
}

// normalize assigns stable IDs, contiguous ranks 1..n, and bucketed
// difficulty levels to the raw LLM output, truncating or accepting
// whatever the model returned up to the requested count.
func normalize(raw []rawQuestion, count int) []domain.Question {
	n := len(raw)
	if n > count {
		n = count
		raw = raw[:n]
	}
	questions := make([]domain.Question, 0, n)
	for i, rq := range raw {
		rank := i + 1
		questions = append(questions, domain.Question{
			ID:               uuid.NewString(),
			Text:             rq.Text,
			DifficultyRank:   rank,
			DifficultyLevel:  domain.BucketDifficulty(rank, n),
			Reasoning:        rq.Reasoning,
			RelevantDataKeys: rq.RelevantDataKeys,
		})
	}
	return questions
}

func systemPrompt() string {
	return "You design analytical questions about a pre-aggregated dataset. " +
		"Prefer aggregate and statistical questions over row-level lookups. " +
		"Never ask a question that would require extracting personally identifiable " +
		"information. Reference existing pre-aggregated dataset keys where applicable. " +
		"Respond with a JSON object with a single \"questions\" array, ordered from " +
		"easiest to hardest."
}

func buildPrompt(dataset domain.Dataset, metadata domain.Metadata, count int) string {
	summary := summarizeDataset(dataset)
	metaJSON, _ := json.Marshal(metadata)
	return fmt.Sprintf(
		"Generate exactly %d ranked analytical questions about this dataset.\n\n"+
			"Dataset structural summary (keys, value types, example sub-fields; no raw rows):\n%s\n\n"+
			"Metadata:\n%s\n",
		count, summary, string(metaJSON))
}

// summarizeDataset builds the "structural summary" the spec requires:
// top-level keys, their value types, and example sub-field names, never
// raw row dumps.
func summarizeDataset(dataset domain.Dataset) string {
	summary := make(map[string]any, len(dataset))
	for key, value := range dataset {
		summary[key] = describeValue(value)
	}
	out, _ := json.MarshalIndent(summary, "", "  ")
	return string(out)
}

func describeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		fields := make([]string, 0, len(t))
		for k := range t {
			fields = append(fields, k)
		}
		return map[string]any{"type": "object", "example_fields": fields}
	case []any:
		if len(t) == 0 {
			return map[string]any{"type": "array", "length": 0}
		}
		return map[string]any{"type": "array", "length": len(t), "element": describeValue(t[0])}
	case string:
		return map[string]any{"type": "string"}
	case float64, int, int64:
		return map[string]any{"type": "number"}
	case bool:
		return map[string]any{"type": "boolean"}
	default:
		return map[string]any{"type": "unknown"}
	}
}
