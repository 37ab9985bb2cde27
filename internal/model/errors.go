package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedInput indicates a required key is missing, null, or of the wrong shape.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownVariant indicates a type tag outside the closed dispatch table.
	ErrUnknownVariant = errors.New("unknown variant")
)

// maxValueLen bounds the raw value echoed back in diagnostics.
const maxValueLen = 160

// MalformedInputError reports a structurally invalid node.
type MalformedInputError struct {
	Field   string // Key that was missing or ill-shaped
	Variant string // Enclosing term/chunk tag, or "sort"
	Value   any    // Offending raw value (the enclosing object when the key is missing)
	Message string // What was wrong with it
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s.%s: %s (value: %s)", e.Variant, e.Field, e.Message, formatValue(e.Value))
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// UnknownVariantError reports a type tag that no variant handles.
type UnknownVariantError struct {
	Family string   // "term" or "heap chunk"
	Tag    string   // Offending tag
	Known  []string // Tags the family understands, for diagnostics only
}

// Error implements the error interface.
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s type %q (known: %s)", e.Family, e.Tag, strings.Join(e.Known, ", "))
}

// Is reports whether target is ErrUnknownVariant.
func (e *UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

func missing(variant, field string, obj any) error {
	return &MalformedInputError{Field: field, Variant: variant, Value: obj, Message: "required key is missing"}
}

func wrongShape(variant, field string, value any, want string) error {
	return &MalformedInputError{Field: field, Variant: variant, Value: value, Message: "must be " + want}
}

func formatValue(v any) string {
	data, err := json.Marshal(v)
	s := string(data)
	if err != nil {
		s = fmt.Sprintf("%v", v)
	}
	if len(s) > maxValueLen {
		s = s[:maxValueLen] + "..."
	}
	return s
}
