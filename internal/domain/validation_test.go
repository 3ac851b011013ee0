package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeApprovalAllLayersValidNoErrors(t *testing.T) {
	fb := CriticFeedback{
		LayerValidations: []LayerValidation{
			{LayerIndex: 0, IsValid: true},
			{LayerIndex: 1, IsValid: true},
		},
	}
	fb.ComputeApproval()
	assert.True(t, fb.IsApproved)
}

func TestComputeApprovalOneInvalidLayerRejects(t *testing.T) {
	fb := CriticFeedback{
		LayerValidations: []LayerValidation{
			{LayerIndex: 0, IsValid: true},
			{LayerIndex: 1, IsValid: false},
		},
	}
	fb.ComputeApproval()
	assert.False(t, fb.IsApproved)
}

func TestComputeApprovalSpecificErrorsRejectEvenWithValidLayers(t *testing.T) {
	fb := CriticFeedback{
		LayerValidations: []LayerValidation{{LayerIndex: 0, IsValid: true}},
		SpecificErrors:   []string{"dangling prev_node reference"},
	}
	fb.ComputeApproval()
	assert.False(t, fb.IsApproved)
}

func TestComputeApprovalNoLayersNoErrorsApproves(t *testing.T) {
	fb := CriticFeedback{}
	fb.ComputeApproval()
	assert.True(t, fb.IsApproved, "an empty verdict has nothing to reject")
}

func TestNewStructuralRejectionIsNeverApproved(t *testing.T) {
	fb := NewStructuralRejection("cycle detected", []string{"a -> b -> a"})
	assert.False(t, fb.IsApproved)
	assert.Equal(t, "cycle detected", fb.OverallReasoning)
	assert.Equal(t, []string{"a -> b -> a"}, fb.SpecificErrors)
}
