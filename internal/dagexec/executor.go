// Package dagexec runs a validated domain.GeneratedDAG layer by layer
// over a domain.Dataset, producing the per-node trace and final answer.
package dagexec

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/dagutil"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/sandbox"
)

// Executor evaluates a domain.GeneratedDAG's nodes against a
// domain.Dataset using a Sandbox for each node's call.
type Executor struct {
	sandbox *sandbox.Sandbox
}

// New returns an Executor backed by sb.
func New(sb *sandbox.Sandbox) *Executor {
	return &Executor{sandbox: sb}
}

// Execute iterates ExtractLayers in order; within a layer, resolve every
// node's inputs
// and run it, in parallel via an errgroup; on any node failure within a
// layer, stop after the layer completes and return success=false,
// retaining every node output produced so far for the trace.
func (e *Executor) Execute(ctx context.Context, dag domain.GeneratedDAG, dataset domain.Dataset) domain.ExecutionResult {
	result := domain.ExecutionResult{QuestionID: dag.QuestionID}
	start := time.Now()
	defer func() {
		result.ExecutionTimeMs = float64(time.Since(start)) / float64(time.Millisecond)
	}()

	nodeOutputs := make(map[string]any)

	for _, layer := range dagutil.ExtractLayers(dag) {
		layerResults := make([]domain.NodeExecutionResult, len(layer))

		g, gctx := errgroup.WithContext(ctx)
		for idx, node := range layer {
			idx, node := idx, node
			g.Go(func() error {
				ctxView := dagutil.ResolutionContext{Dataset: dataset, NodeOutputs: snapshot(nodeOutputs)}
				inputs, err := dagutil.ResolveInputs(node.Inputs, ctxView)
				if err != nil {
					layerResults[idx] = domain.NodeExecutionResult{
						NodeID: node.NodeID,
						Error:  fmt.Sprintf("input resolution failed: %v", err),
					}
					return nil
				}
				layerResults[idx] = e.sandbox.Execute(gctx, node, inputs)
				return nil
			})
		}
		// Node-level work is brief and errgroup.Go here never returns a
		// non-nil error (failures are captured as NodeExecutionResult
		// values, not propagated as Go errors), so Wait always returns
		// nil; cancellation is read from ctx once the layer has finished.
		_ = g.Wait()
		if err := ctx.Err(); err != nil {
			result.Error = fmt.Sprintf("execution cancelled: %v", err)
			result.NodeResults = append(result.NodeResults, layerResults...)
			return result
		}

		layerFailed := false
		for _, nr := range layerResults {
			result.NodeResults = append(result.NodeResults, nr)
			if nr.Success {
				nodeOutputs[nr.NodeID] = nr.Output
			} else {
				layerFailed = true
			}
		}
		if layerFailed {
			result.Error = firstError(layerResults)
			return result
		}
	}

	result.Success = true
	result.FinalAnswer = nodeOutputs[dag.FinalAnswerNode]
	return result
}

// snapshot copies m so concurrent node goroutines within a layer never
// share a map with each other's writes; all reads within a layer see
// only outputs from strictly earlier layers, which is all the structural
// validator suite permits a reference to name.
func snapshot(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func firstError(results []domain.NodeExecutionResult) string {
	for _, r := range results {
		if !r.Success {
			return r.Error
		}
	}
	return "unknown execution failure"
}
