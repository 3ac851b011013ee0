package domain

import "strings"

// ReferenceKind distinguishes the two shapes a DAGNode input reference may
// take.
type ReferenceKind int

const (
	// ReferenceInvalid marks a reference expression that matched neither
	// recognized shape.
	ReferenceInvalid ReferenceKind = iota
	// ReferenceDataset marks a "dataset.<key>" reference.
	ReferenceDataset
	// ReferencePrevNode marks a "prev_node.<node_id>.output" reference.
	ReferencePrevNode
)

// ParsedReference is a DAGNode input reference expression decomposed into
// its kind and the name it points at (a dataset key or a node ID).
type ParsedReference struct {
	Kind ReferenceKind
	Name string
}

// ParseReference decomposes a reference expression of the form
// "dataset.<key>" or "prev_node.<node_id>.output" into a ParsedReference.
// Any other shape yields ReferenceInvalid.
func ParseReference(expr string) ParsedReference {
	if name, ok := strings.CutPrefix(expr, "dataset."); ok && name != "" {
		return ParsedReference{Kind: ReferenceDataset, Name: name}
	}
	if rest, ok := strings.CutPrefix(expr, "prev_node."); ok {
		name, ok := strings.CutSuffix(rest, ".output")
		if ok && name != "" && !strings.Contains(name, ".") {
			return ParsedReference{Kind: ReferencePrevNode, Name: name}
		}
	}
	return ParsedReference{Kind: ReferenceInvalid}
}

// DAGNode is a single computation step within a GeneratedDAG: a small,
// named function together with the wiring that tells the executor where
// each of its parameters comes from.
type DAGNode struct {
	// NodeID uniquely identifies this node within its DAG.
	NodeID string `json:"node_id"`
	// Operation is a short human-readable label for what this node does,
	// e.g. "filter" or "aggregate". It has no effect on execution.
	Operation string `json:"operation"`
	// FunctionName is the identifier the node's Code must define.
	FunctionName string `json:"function_name"`
	// Inputs maps each parameter name of FunctionName to a reference
	// expression resolved against the dataset or prior node outputs.
	Inputs map[string]string `json:"inputs"`
	// ExpectedOutputType is a free-form hint about the node's return
	// type, used only during semantic critique.
	ExpectedOutputType string `json:"expected_output_type"`
	// Layer is this node's depth in the DAG. Nodes in layer L may only
	// reference nodes in layers < L.
	Layer int `json:"layer"`
	// Code is the node's source: exactly one function definition named
	// FunctionName.
	Code string `json:"code"`
}

// DAGEdge is a directed dependency: Target may not execute until Source
// has produced output.
type DAGEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GeneratedDAG is the computation graph an LLM proposes to answer one
// Question. It is a plain value: node and edge identity is carried by
// string IDs only, never by pointer, so a GeneratedDAG can be appended to
// a history and compared for equality after a JSON round trip.
type GeneratedDAG struct {
	QuestionID      string    `json:"question_id"`
	Description     string    `json:"description"`
	Nodes           []DAGNode `json:"nodes"`
	Edges           []DAGEdge `json:"edges"`
	FinalAnswerNode string    `json:"final_answer_node"`
}

// NodeByID returns the node with the given ID, if any.
func (d GeneratedDAG) NodeByID(id string) (DAGNode, bool) {
	for _, n := range d.Nodes {
		if n.NodeID == id {
			return n, true
		}
	}
	return DAGNode{}, false
}

// IsEmpty reports whether the DAG has no nodes at all. An empty DAG is
// always critically broken.
func (d GeneratedDAG) IsEmpty() bool { return len(d.Nodes) == 0 }
