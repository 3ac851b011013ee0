package sandbox

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/sandbox/pycoll"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/sandbox/pystats"
)

// DefaultNodeTimeout bounds the wall-clock time of a single node call,
// preventing a pathological node body from hanging a critic-loop
// iteration indefinitely.
const DefaultNodeTimeout = 10 * time.Second

// safeImports is synthesized ahead of every node's own source, realizing
// "pre-imported safe modules, available as names in scope, not via
// import": the node's own text never contains an import statement (the
// Scanner rejects it if it tries), but the combined source handed to the
// interpreter already has these bound.
const safeImports = `package sandboxnode

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	pystats "dagcritic/sandbox/pystats"
	pycoll "dagcritic/sandbox/pycoll"
)

`

// customSymbols registers the two small helper packages that stand in
// for Python's "statistics" and "collections" modules, under import
// paths that exist only inside the interpreter's symbol table — they
// are never resolved against the real module graph.
func customSymbols() interp.Exports {
	return interp.Exports{
		"dagcritic/sandbox/pystats/pystats": map[string]reflect.Value{
			"Mean":   reflect.ValueOf(pystats.Mean),
			"Median": reflect.ValueOf(pystats.Median),
			"Stdev":  reflect.ValueOf(pystats.Stdev),
			"Mode":   reflect.ValueOf(pystats.Mode),
		},
		"dagcritic/sandbox/pycoll/pycoll": map[string]reflect.Value{
			"NewCounter": reflect.ValueOf(pycoll.NewCounter),
			"NewSet":     reflect.ValueOf(pycoll.NewSet),
		},
	}
}

// Sandbox executes one DAGNode's function body under a restricted
// interpreter environment. A Sandbox value is stateless and safe for
// concurrent use: every Execute call builds a fresh interpreter, since
// yaegi interpreters are not designed to be reused across independently
// untrusted sources.
type Sandbox struct {
	scanner     *Scanner
	nodeTimeout time.Duration
}

// New returns a Sandbox with the given per-node timeout. A zero timeout
// uses DefaultNodeTimeout.
func New(nodeTimeout time.Duration) *Sandbox {
	if nodeTimeout <= 0 {
		nodeTimeout = DefaultNodeTimeout
	}
	return &Sandbox{scanner: NewScanner(), nodeTimeout: nodeTimeout}
}

// Execute runs node.Code's function against resolvedInputs: re-scan,
// build an isolated namespace, evaluate, call by name-matched
// parameters, time the call only, and recover any panic into a
// structured failure.
func (s *Sandbox) Execute(ctx context.Context, node domain.DAGNode, resolvedInputs map[string]any) domain.NodeExecutionResult {
	result := domain.NodeExecutionResult{NodeID: node.NodeID}

	if issues := s.scanner.Scan(node.Code); len(issues) > 0 {
		result.Error = fmt.Sprintf("safety scan rejected node: %s", issues[0])
		return result
	}

	fnName, ok := FunctionName(node.Code)
	if !ok || fnName != node.FunctionName {
		result.Error = fmt.Sprintf("node code does not define function %q", node.FunctionName)
		return result
	}
	paramNames, ok := ParamNames(node.Code)
	if !ok {
		result.Error = "node code does not parse as a function definition"
		return result
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		result.Error = fmt.Sprintf("sandbox initialization failed: %v", err)
		return result
	}
	if err := i.Use(customSymbols()); err != nil {
		result.Error = fmt.Sprintf("sandbox initialization failed: %v", err)
		return result
	}

	if _, err := i.Eval(safeImports + node.Code); err != nil {
		result.Error = fmt.Sprintf("node code failed to evaluate: %v", err)
		return result
	}

	fnVal, err := i.Eval(fnName)
	if err != nil {
		result.Error = fmt.Sprintf("function %q not found after evaluation: %v", fnName, err)
		return result
	}

	args, err := bindArgs(fnVal, paramNames, resolvedInputs)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	callCtx, cancel := context.WithTimeout(ctx, s.nodeTimeout)
	defer cancel()

	type callOutcome struct {
		out []reflect.Value
		err error
	}
	done := make(chan callOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callOutcome{err: fmt.Errorf("%v", r)}
			}
		}()
		start := time.Now()
		out := fnVal.Call(args)
		done <- callOutcome{out: out, err: nil}
		_ = start
	}()

	start := time.Now()
	select {
	case <-callCtx.Done():
		result.Error = fmt.Sprintf("TimeoutError: node exceeded %s", s.nodeTimeout)
		return result
	case outcome := <-done:
		result.ExecutionTimeMs = float64(time.Since(start)) / float64(time.Millisecond)
		if outcome.err != nil {
			result.Error = fmt.Sprintf("PanicError: %v", outcome.err)
			return result
		}
		result.Success = true
		result.Output = unwrapResult(outcome.out)
		return result
	}
}

// bindArgs matches resolvedInputs against fn's declared parameter names
// in declaration order, converting each value to the parameter's static
// type. Go has no native keyword-argument call syntax, so this is the
// realization of the source contract's "positional/keyword match of
// resolved_inputs against declared parameters."
func bindArgs(fn reflect.Value, paramNames []string, resolvedInputs map[string]any) ([]reflect.Value, error) {
	fnType := fn.Type()
	if fnType.NumIn() != len(paramNames) {
		return nil, fmt.Errorf("node function expects %d parameters, signature has %d", len(paramNames), fnType.NumIn())
	}
	args := make([]reflect.Value, fnType.NumIn())
	for idx, name := range paramNames {
		v, ok := resolvedInputs[name]
		if !ok {
			return nil, fmt.Errorf("missing input for parameter %q", name)
		}
		paramType := fnType.In(idx)
		rv := reflect.ValueOf(v)
		if !rv.IsValid() {
			args[idx] = reflect.Zero(paramType)
			continue
		}
		if rv.Type().ConvertibleTo(paramType) {
			args[idx] = rv.Convert(paramType)
			continue
		}
		args[idx] = rv
	}
	return args, nil
}

// unwrapResult collapses a single-value return to that value, and a
// multi-value return to a slice, so NodeExecutionResult.Output carries
// whatever shape the node actually produced.
func unwrapResult(out []reflect.Value) any {
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0].Interface()
	default:
		vals := make([]any, len(out))
		for i, v := range out {
			vals[i] = v.Interface()
		}
		return vals
	}
}
