// Package dagbuilder produces one domain.GeneratedDAG per question via
// an LLM call. On retry it includes the prior DAG and the critic's
// feedback, instructing the model to return a complete replacement
// rather than a patch.
package dagbuilder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
)

// DefaultTemperature is the low temperature used for DAG generation.
const DefaultTemperature = 0.2

// Builder produces GeneratedDAGs for a question.
type Builder struct {
	client llmclient.Client
}

// New returns a Builder backed by client.
func New(client llmclient.Client) *Builder {
	return &Builder{client: client}
}

// Build asks the LLM for a DAG answering question. prior and feedback
// are nil on the first iteration; when non-nil, the prompt includes the
// complete prior DAG and its CriticFeedback and instructs the model to
// return a complete replacement DAG.
//
// On transport or parse failure after the llmclient.Client's own retry
// policy is exhausted, Build returns the empty domain.GeneratedDAG{}
// (not an error) so the critic loop can reject it cleanly rather than
// crash.
func (b *Builder) Build(
	ctx context.Context,
	question domain.Question,
	dataset domain.Dataset,
	metadata domain.Metadata,
	prior *domain.GeneratedDAG,
	feedback *domain.CriticFeedback,
) domain.GeneratedDAG {
	raw, err := b.client.Complete(ctx, llmclient.Request{
		SystemPrompt: systemPrompt(),
		Prompt:       buildPrompt(question, dataset, metadata, prior, feedback),
		Temperature:  DefaultTemperature,
	})
	if err != nil {
		return domain.GeneratedDAG{}
	}

	var dag domain.GeneratedDAG
	if err := json.Unmarshal(raw, &dag); err != nil {
		return domain.GeneratedDAG{}
	}
	dag.QuestionID = question.ID
	return dag
}

func systemPrompt() string {
	return "You design a directed acyclic graph of small Go functions that jointly " +
		"compute the answer to an analytical question about a dataset. Each node " +
		"is exactly one function definition. Node inputs reference either " +
		"\"dataset.<key>\" or \"prev_node.<node_id>.output\". Respond with a single " +
		"JSON object matching the GeneratedDAG schema: question_id, description, " +
		"nodes (node_id, operation, function_name, inputs, expected_output_type, " +
		"layer, code), edges (source, target), final_answer_node."
}

func buildPrompt(
	question domain.Question,
	dataset domain.Dataset,
	metadata domain.Metadata,
	prior *domain.GeneratedDAG,
	feedback *domain.CriticFeedback,
) string {
	keys := make([]string, 0, len(dataset))
	for k := range dataset {
		keys = append(keys, k)
	}
	metaJSON, _ := json.Marshal(metadata)

	prompt := fmt.Sprintf(
		"Question: %s\nRelevant data keys hint: %v\nAvailable dataset keys: %v\nDataset schema:\n%s\n",
		question.Text, question.RelevantDataKeys, keys, string(metaJSON))

	if prior == nil || feedback == nil {
		return prompt
	}

	priorJSON, _ := json.Marshal(prior)
	feedbackJSON, _ := json.Marshal(feedback)
	return prompt + fmt.Sprintf(
		"\nThe previous DAG you produced was rejected. Previous DAG:\n%s\n"+
			"Critic feedback on that DAG:\n%s\n"+
			"Produce a COMPLETE REPLACEMENT DAG that addresses every issue raised — "+
			"do not describe a patch, return the full graph again.\n",
		string(priorJSON), string(feedbackJSON))
}
