package model

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Parsed values never distinguish a nil list from an empty one.
var compareOptions = []cmp.Option{cmpopts.EquateEmpty()}

// Equal reports whether two parsed values (sorts, terms, heap chunks or
// anything built from them) are structurally equal.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, compareOptions...)
}

// Diff returns a human-readable report of the structural differences
// between a and b, or "" when they are equal.
func Diff(a, b any) string {
	return cmp.Diff(a, b, compareOptions...)
}
