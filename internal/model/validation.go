package model

import (
	"sort"
	"strings"
)

// ValidationError carries field-level messages. No record is written while
// one is outstanding.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation accumulates field errors.
type Validation struct {
	fields map[string]string
}

func NewValidation() *Validation {
	return &Validation{fields: make(map[string]string)}
}

// Add records msg for field unless the field already has a message.
func (v *Validation) Add(field, msg string) {
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

// Err returns nil when no field failed.
func (v *Validation) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
