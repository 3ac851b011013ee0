package dagutil

import (
	"fmt"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/sandbox"
)

// Validator is one deterministic structural check over a GeneratedDAG.
// Each returns the (possibly empty) list of issues it found; the critic
// concatenates every validator's output.
type Validator func(dag domain.GeneratedDAG) []string

// StandardValidators is the full structural validator suite, run in a
// fixed order so CriticFeedback.SpecificErrors reads deterministically.
var StandardValidators = []Validator{
	ValidateUniqueNodeIDs,
	ValidateEdgeEndpoints,
	ValidateLayerMonotonicity,
	ValidateAcyclic,
	ValidateConnectivity,
	ValidateInputReferences,
	ValidateCodeParses,
	ValidateCodeSafety,
}

// RunValidators runs every Validator in vs against dag and concatenates
// their issues.
func RunValidators(dag domain.GeneratedDAG, vs []Validator) []string {
	var issues []string
	for _, v := range vs {
		issues = append(issues, v(dag)...)
	}
	return issues
}

// ValidateUniqueNodeIDs enforces invariant 1: node IDs unique within the
// DAG.
func ValidateUniqueNodeIDs(dag domain.GeneratedDAG) []string {
	seen := make(map[string]bool)
	var issues []string
	for _, n := range dag.Nodes {
		if seen[n.NodeID] {
			issues = append(issues, fmt.Sprintf("duplicate node id %q", n.NodeID))
		}
		seen[n.NodeID] = true
	}
	return issues
}

// ValidateEdgeEndpoints enforces invariant 2: every edge names existing
// nodes at both ends.
func ValidateEdgeEndpoints(dag domain.GeneratedDAG) []string {
	var issues []string
	for _, e := range dag.Edges {
		if _, ok := dag.NodeByID(e.Source); !ok {
			issues = append(issues, fmt.Sprintf("edge references unknown source node %q", e.Source))
		}
		if _, ok := dag.NodeByID(e.Target); !ok {
			issues = append(issues, fmt.Sprintf("edge references unknown target node %q", e.Target))
		}
	}
	return issues
}

// ValidateLayerMonotonicity enforces invariant 3: for every edge u -> v,
// u.layer < v.layer.
func ValidateLayerMonotonicity(dag domain.GeneratedDAG) []string {
	var issues []string
	for _, e := range dag.Edges {
		src, okSrc := dag.NodeByID(e.Source)
		tgt, okTgt := dag.NodeByID(e.Target)
		if !okSrc || !okTgt {
			continue // reported by ValidateEdgeEndpoints
		}
		if src.Layer >= tgt.Layer {
			issues = append(issues, fmt.Sprintf(
				"edge %s -> %s violates layer monotonicity (%d >= %d)",
				e.Source, e.Target, src.Layer, tgt.Layer))
		}
	}
	return issues
}

// ValidateAcyclic enforces invariant 4 via a topological-sort attempt
// (Kahn's algorithm): any remaining node after all zero-indegree nodes
// are consumed indicates a cycle.
func ValidateAcyclic(dag domain.GeneratedDAG) []string {
	if HasCycle(dag) {
		return []string{"the graph induced by edges contains a cycle"}
	}
	return nil
}

// HasCycle reports whether dag's edges induce a cycle, independent of
// the declared Layer field (which ValidateLayerMonotonicity checks
// separately).
func HasCycle(dag domain.GeneratedDAG) bool {
	indegree := make(map[string]int, len(dag.Nodes))
	adj := make(map[string][]string, len(dag.Nodes))
	for _, n := range dag.Nodes {
		indegree[n.NodeID] = 0
	}
	for _, e := range dag.Edges {
		if _, ok := indegree[e.Source]; !ok {
			continue
		}
		if _, ok := indegree[e.Target]; !ok {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		indegree[e.Target]++
	}

	queue := make([]string, 0)
	for id, d := range indegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range adj[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return visited != len(dag.Nodes)
}

// ValidateConnectivity enforces invariant 5: FinalAnswerNode is a real
// node ID, reachable from at least one layer-0 node, and every node is
// an ancestor of FinalAnswerNode (no dead nodes).
func ValidateConnectivity(dag domain.GeneratedDAG) []string {
	var issues []string
	if dag.FinalAnswerNode == "" {
		return []string{"final_answer_node is not set"}
	}
	if _, ok := dag.NodeByID(dag.FinalAnswerNode); !ok {
		return []string{fmt.Sprintf("final_answer_node %q does not name an existing node", dag.FinalAnswerNode)}
	}

	// Reverse adjacency: predecessors of each node, to find ancestors of
	// FinalAnswerNode by walking edges backward from it.
	preds := make(map[string][]string, len(dag.Nodes))
	for _, e := range dag.Edges {
		preds[e.Target] = append(preds[e.Target], e.Source)
	}

	ancestors := map[string]bool{dag.FinalAnswerNode: true}
	stack := []string{dag.FinalAnswerNode}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range preds[id] {
			if !ancestors[p] {
				ancestors[p] = true
				stack = append(stack, p)
			}
		}
	}

	reachableFromLayer0 := false
	for _, n := range dag.Nodes {
		if n.Layer == 0 && ancestors[n.NodeID] {
			reachableFromLayer0 = true
		}
		if !ancestors[n.NodeID] {
			issues = append(issues, fmt.Sprintf("node %q is not an ancestor of final_answer_node (dead node)", n.NodeID))
		}
	}
	if !reachableFromLayer0 {
		issues = append(issues, "final_answer_node is not reachable from any layer-0 node")
	}
	return issues
}

// ValidateInputReferences enforces the dataset-free half of invariant 6:
// every node input reference has a recognized shape, and every
// prev_node reference names an existing node in an earlier layer.
// Dataset-key existence is left to ValidateInputReferencesAgainstDataset.
func ValidateInputReferences(dag domain.GeneratedDAG) []string {
	var issues []string
	for _, n := range dag.Nodes {
		for param, expr := range n.Inputs {
			ref := domain.ParseReference(expr)
			switch ref.Kind {
			case domain.ReferenceDataset:
				// Dataset key existence is checked by ValidateInputReferencesAgainstDataset,
				// which needs the dataset; this validator only checks shape.
			case domain.ReferencePrevNode:
				src, ok := dag.NodeByID(ref.Name)
				if !ok {
					issues = append(issues, fmt.Sprintf(
						"node %q input %q references unknown node %q", n.NodeID, param, ref.Name))
					continue
				}
				if src.Layer >= n.Layer {
					issues = append(issues, fmt.Sprintf(
						"node %q input %q references node %q which is not in an earlier layer",
						n.NodeID, param, ref.Name))
				}
			default:
				issues = append(issues, fmt.Sprintf(
					"node %q input %q has malformed reference expression %q", n.NodeID, param, expr))
			}
		}
	}
	return issues
}

// ValidateInputReferencesAgainstDataset extends ValidateInputReferences
// with dataset-key existence, invariant 6's "dataset.X requires key X in
// the dataset" half. It is kept as a separate validator (rather than
// folded into ValidateInputReferences) because the structural suite must
// run without a dataset in contexts like unit tests over bare DAGs.
func ValidateInputReferencesAgainstDataset(dag domain.GeneratedDAG, dataset domain.Dataset) []string {
	var issues []string
	for _, n := range dag.Nodes {
		for param, expr := range n.Inputs {
			ref := domain.ParseReference(expr)
			if ref.Kind == domain.ReferenceDataset && !dataset.HasKey(ref.Name) {
				issues = append(issues, fmt.Sprintf(
					"node %q input %q references dataset key %q which is not present", n.NodeID, param, ref.Name))
			}
		}
	}
	return issues
}

// ValidateCodeParses enforces invariant 7: each node's code parses as a
// single function definition whose name equals function_name.
func ValidateCodeParses(dag domain.GeneratedDAG) []string {
	var issues []string
	for _, n := range dag.Nodes {
		name, ok := sandbox.FunctionName(n.Code)
		if !ok {
			issues = append(issues, fmt.Sprintf("node %q code does not parse as a single function definition", n.NodeID))
			continue
		}
		if name != n.FunctionName {
			issues = append(issues, fmt.Sprintf(
				"node %q code defines function %q but function_name is %q", n.NodeID, name, n.FunctionName))
		}
	}
	return issues
}

// ValidateCodeSafety enforces invariant 8: each node's code passes the
// sandbox's safety scan.
func ValidateCodeSafety(dag domain.GeneratedDAG) []string {
	var issues []string
	scanner := sandbox.NewScanner()
	for _, n := range dag.Nodes {
		for _, issue := range scanner.Scan(n.Code) {
			issues = append(issues, fmt.Sprintf("node %q: %s", n.NodeID, issue))
		}
	}
	return issues
}

// IsCriticallyBroken reports whether dag is critically broken: an empty
// node list, a cycle, a missing final_answer_node, or any node failing
// to parse. A critically broken DAG skips semantic validation entirely.
func IsCriticallyBroken(dag domain.GeneratedDAG) bool {
	if dag.IsEmpty() {
		return true
	}
	if HasCycle(dag) {
		return true
	}
	if dag.FinalAnswerNode == "" {
		return true
	}
	if _, ok := dag.NodeByID(dag.FinalAnswerNode); !ok {
		return true
	}
	for _, n := range dag.Nodes {
		if _, ok := sandbox.FunctionName(n.Code); !ok {
			return true
		}
	}
	return false
}
