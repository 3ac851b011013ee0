package sandbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

func TestExecuteSimpleReturn(t *testing.T) {
	sb := New(0)
	node := domain.DAGNode{
		NodeID:       "n1",
		FunctionName: "ret",
		Code:         `func ret(x float64) float64 { return x }`,
	}
	result := sb.Execute(context.Background(), node, map[string]any{"x": 42.0})
	require.True(t, result.Success, result.Error)
	assert.Equal(t, 42.0, result.Output)
}

func TestExecuteRejectsUnsafeNode(t *testing.T) {
	sb := New(0)
	node := domain.DAGNode{
		NodeID:       "n1",
		FunctionName: "f",
		Code: `func f(x int) int {
	os.Exit(1)
	return x
}`,
	}
	result := sb.Execute(context.Background(), node, map[string]any{"x": 1})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestExecuteCapturesPanicAsFailure(t *testing.T) {
	sb := New(0)
	node := domain.DAGNode{
		NodeID:       "n1",
		FunctionName: "divide",
		Code: `func divide(a float64, b float64) float64 {
	if b == 0 {
		panic("ZeroDivisionError: division by zero")
	}
	return a / b
}`,
	}
	result := sb.Execute(context.Background(), node, map[string]any{"a": 1.0, "b": 0.0})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "ZeroDivisionError")
}

func TestExecuteMissingInputFails(t *testing.T) {
	sb := New(0)
	node := domain.DAGNode{
		NodeID:       "n1",
		FunctionName: "ret",
		Code:         `func ret(x float64) float64 { return x }`,
	}
	result := sb.Execute(context.Background(), node, map[string]any{})
	assert.False(t, result.Success)
}
