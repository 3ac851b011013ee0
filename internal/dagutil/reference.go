package dagutil

import (
	"fmt"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// ResolutionContext is the read-only state a reference expression
// resolves against: the run's dataset and the outputs already produced
// by prior nodes.
type ResolutionContext struct {
	Dataset     domain.Dataset
	NodeOutputs map[string]any
}

// Resolve resolves a single reference expression against ctx. Two shapes
// are recognized: a dataset column reference and a node-output
// reference. Any other shape, or a reference to a missing dataset key or
// node, is a structural error.
func Resolve(expr string, ctx ResolutionContext) (any, error) {
	ref := domain.ParseReference(expr)
	switch ref.Kind {
	case domain.ReferenceDataset:
		v, ok := ctx.Dataset[ref.Name]
		if !ok {
			return nil, fmt.Errorf("dataset key %q not found", ref.Name)
		}
		return v, nil
	case domain.ReferencePrevNode:
		v, ok := ctx.NodeOutputs[ref.Name]
		if !ok {
			return nil, fmt.Errorf("output of node %q not available", ref.Name)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("reference expression %q is not a recognized shape", expr)
	}
}

// ResolveInputs resolves every entry of inputs against ctx, returning a
// map ready to bind against a node's parameters. It fails fast on the
// first unresolvable reference.
func ResolveInputs(inputs map[string]string, ctx ResolutionContext) (map[string]any, error) {
	resolved := make(map[string]any, len(inputs))
	for param, expr := range inputs {
		v, err := Resolve(expr, ctx)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", param, err)
		}
		resolved[param] = v
	}
	return resolved, nil
}
