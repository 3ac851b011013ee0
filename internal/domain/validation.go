package domain

// LayerValidation is the semantic critic's verdict for every node in one
// layer of a DAG.
type LayerValidation struct {
	LayerIndex   int      `json:"layer_index"`
	NodesInLayer []string `json:"nodes_in_layer"`
	IsValid      bool     `json:"is_valid"`
	Issues       []string `json:"issues"`
}

// CriticFeedback is the critic's complete verdict for one build/critique
// round: whether the DAG is approved, why, and — when rejected — the
// actionable detail the builder needs to produce a replacement.
type CriticFeedback struct {
	IsApproved       bool              `json:"is_approved"`
	OverallReasoning string            `json:"overall_reasoning"`
	LayerValidations []LayerValidation `json:"layer_validations"`
	SpecificErrors   []string          `json:"specific_errors"`
	Suggestions      []string          `json:"suggestions"`
}

// ComputeApproval derives IsApproved from the current LayerValidations and
// SpecificErrors: approved iff every layer validation is valid and no
// specific errors were recorded.
func (f *CriticFeedback) ComputeApproval() {
	approved := len(f.SpecificErrors) == 0
	for _, lv := range f.LayerValidations {
		if !lv.IsValid {
			approved = false
			break
		}
	}
	f.IsApproved = approved
}

// NewStructuralRejection builds the CriticFeedback for a DAG that failed
// Phase 1 (structural) validation and therefore never reached Phase 2.
func NewStructuralRejection(reasoning string, errs []string) CriticFeedback {
	fb := CriticFeedback{
		OverallReasoning: reasoning,
		SpecificErrors:   errs,
	}
	fb.ComputeApproval()
	return fb
}
