package domain

// NodeExecutionResult is the sandbox's report for one executed node: its
// output on success, or a structured error on failure, plus the wall
// time of the call itself (excluding input resolution and bookkeeping).
type NodeExecutionResult struct {
	NodeID          string  `json:"node_id"`
	Success         bool    `json:"success"`
	Output          any     `json:"output,omitempty"`
	Error           string  `json:"error,omitempty"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
}

// ExecutionResult is the outcome of running one approved GeneratedDAG
// against a dataset: either a final answer with the full per-node trace,
// or the point of failure with whatever node outputs were produced
// before it.
type ExecutionResult struct {
	QuestionID      string                `json:"question_id"`
	Success         bool                  `json:"success"`
	FinalAnswer     any                   `json:"final_answer,omitempty"`
	NodeResults     []NodeExecutionResult `json:"node_results"`
	Error           string                `json:"error,omitempty"`
	ExecutionTimeMs float64               `json:"execution_time_ms"`
}

// SucceededNodeIDs returns the IDs of nodes in NodeResults that reported
// success, in the order they were executed. A node's prev_node reference
// is only valid if the referenced node appears earlier in this slice and
// also succeeded.
func (r ExecutionResult) SucceededNodeIDs() []string {
	ids := make([]string, 0, len(r.NodeResults))
	for _, nr := range r.NodeResults {
		if nr.Success {
			ids = append(ids, nr.NodeID)
		}
	}
	return ids
}
