package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeStatus(t *testing.T) {
	tests := []struct {
		name         string
		isPublic     bool
		isRestricted bool
		expected     string
	}{
		{"public and unrestricted", true, false, StatusHealthy},
		{"public but restricted", true, true, StatusDegraded},
		{"not public and unrestricted", false, false, StatusDegraded},
		{"not public and restricted", false, true, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompositeStatus(tt.isPublic, tt.isRestricted))
		})
	}
}

func TestValidationError_ListsAllFields(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "source_type", Reason: "must be one of youtube, embed, upload"},
		{Field: "youtube_url", Reason: "required for YouTube source"},
	}}
	assert.Contains(t, err.Error(), "source_type")
	assert.Contains(t, err.Error(), "youtube_url")
}
