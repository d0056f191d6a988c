package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across layers.
var (
	// ErrConflict signals a uniqueness violation on insert; the ingestion
	// orchestrator converts it into a dedup lookup-and-return.
	ErrConflict = errors.New("store conflict")
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("record not found")
)

// FieldError describes one missing/invalid field for a declared source type
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field error at once, not just the first.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConfigurationError reports missing/invalid configuration at constructor time
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Reason)
}
