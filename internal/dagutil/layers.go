// Package dagutil provides deterministic, LLM-free operations over a
// domain.GeneratedDAG: layering, input-reference resolution, and the
// structural validator suite.
package dagutil

import (
	"sort"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// ExtractLayers groups dag's nodes by their declared Layer field and
// returns them in ascending layer-index order. Both the executor (for
// evaluation order) and the critic (for per-layer semantic scoping)
// depend on this grouping rather than on any derived depth.
func ExtractLayers(dag domain.GeneratedDAG) [][]domain.DAGNode {
	byLayer := make(map[int][]domain.DAGNode)
	for _, n := range dag.Nodes {
		byLayer[n.Layer] = append(byLayer[n.Layer], n)
	}

	indices := make([]int, 0, len(byLayer))
	for idx := range byLayer {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	layers := make([][]domain.DAGNode, len(indices))
	for i, idx := range indices {
		nodes := byLayer[idx]
		sort.Slice(nodes, func(a, b int) bool { return nodes[a].NodeID < nodes[b].NodeID })
		layers[i] = nodes
	}
	return layers
}

// LayerIndices returns the distinct layer indices present in dag, sorted
// ascending.
func LayerIndices(dag domain.GeneratedDAG) []int {
	seen := make(map[int]bool)
	for _, n := range dag.Nodes {
		seen[n.Layer] = true
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
