// Package critic implements the two-phase DAG critique: a deterministic
// structural validator suite, then a per-layer semantic LLM critique.
package critic

import (
	"fmt"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/dagutil"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// RunStructural runs Phase 1 of the critic: the full deterministic
// validator suite, plus dataset-key existence for every dataset.X
// reference. If dag is critically broken, it returns immediately with
// is_approved=false, skipping any further structural detail beyond the
// short-circuit reason — Phase 2 is never reached for a critically
// broken DAG.
func RunStructural(dag domain.GeneratedDAG, dataset domain.Dataset) (domain.CriticFeedback, bool) {
	if dagutil.IsCriticallyBroken(dag) {
		reason := criticallyBrokenReason(dag)
		return domain.NewStructuralRejection(
			fmt.Sprintf("the proposed DAG is critically broken: %s", reason),
			[]string{reason},
		), true
	}

	issues := dagutil.RunValidators(dag, dagutil.StandardValidators)
	issues = append(issues, dagutil.ValidateInputReferencesAgainstDataset(dag, dataset)...)

	if len(issues) == 0 {
		return domain.CriticFeedback{IsApproved: true, OverallReasoning: "structural validation passed"}, false
	}
	return domain.NewStructuralRejection(
		"the proposed DAG failed structural validation", issues,
	), false
}

func criticallyBrokenReason(dag domain.GeneratedDAG) string {
	switch {
	case dag.IsEmpty():
		return "the DAG has no nodes"
	case dagutil.HasCycle(dag):
		return "the graph induced by edges contains a cycle"
	case dag.FinalAnswerNode == "":
		return "final_answer_node is not set"
	default:
		if _, ok := dag.NodeByID(dag.FinalAnswerNode); !ok {
			return fmt.Sprintf("final_answer_node %q does not name an existing node", dag.FinalAnswerNode)
		}
		return "one or more nodes failed to parse as a function definition"
	}
}
