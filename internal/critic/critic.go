package critic

import (
	"context"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// Critic runs both phases of DAG critique and computes the final
// approval verdict.
type Critic struct {
	semantic *SemanticCritic
}

// NewCritic returns a Critic backed by semantic.
func NewCritic(semantic *SemanticCritic) *Critic {
	return &Critic{semantic: semantic}
}

// Review runs Phase 1 (structural) and, if the DAG is not critically
// broken, Phase 2 (semantic), then computes the final approval verdict:
// approved iff every layer validation is valid and Phase 1 produced no
// specific errors.
func (c *Critic) Review(ctx context.Context, question domain.Question, dataset domain.Dataset, metadata domain.Metadata, dag domain.GeneratedDAG) domain.CriticFeedback {
	feedback, criticallyBroken := RunStructural(dag, dataset)
	if criticallyBroken {
		return feedback
	}

	feedback.LayerValidations = c.semantic.ReviewLayers(ctx, question, dataset, metadata, dag)
	feedback.ComputeApproval()
	switch {
	case feedback.IsApproved:
		feedback.OverallReasoning = "DAG approved: structural and semantic validation passed"
	case len(feedback.SpecificErrors) == 0:
		feedback.OverallReasoning = "semantic validation rejected one or more layers"
	}
	return feedback
}
