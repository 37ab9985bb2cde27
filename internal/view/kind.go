// Package view decodes verifier messages of a given kind and renders them
// for people: as indented text, or as a JSON/YAML projection. The
// projection is a display format; it does not round-trip to the wire form.
package view

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viperproject/viper-ide-sub004/internal/model"
	"github.com/viperproject/viper-ide-sub004/internal/symbex"
)

// Kind names the top-level shape of a message.
type Kind string

const (
	KindLog   Kind = "log"
	KindState Kind = "state"
	KindChunk Kind = "chunk"
	KindTerm  Kind = "term"
	KindSort  Kind = "sort"
)

var kinds = []Kind{KindLog, KindState, KindChunk, KindTerm, KindSort}

// Kinds returns every kind Decode accepts.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unknown kind %q (valid: %s)", s, strings.Join(names, ", "))
}

// Decode parses raw JSON as a message of the given kind. The result is one of
// []*symbex.Record, *symbex.State, model.HeapChunk, model.Term or model.Sort.
func Decode(kind Kind, raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return DecodeValue(kind, v)
}

// DecodeValue is Decode for an already unmarshaled JSON value.
func DecodeValue(kind Kind, v any) (any, error) {
	switch kind {
	case KindLog:
		return symbex.ParseLog(v)
	case KindState:
		return symbex.ParseState(v)
	case KindChunk:
		return model.ParseHeapChunk(v)
	case KindTerm:
		return model.ParseTerm(v)
	case KindSort:
		return model.ParseSort(v)
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
}
