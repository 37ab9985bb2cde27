// Package symbex reads the symbolic-execution log emitted by the verification
// backend: the tree of execution records and the symbolic states attached to
// them. Terms, sorts and heap chunks inside a state are delegated to package
// model.
package symbex

import (
	"fmt"
	"strings"

	"github.com/viperproject/viper-ide-sub004/internal/model"
)

// StoreVariable binds a program variable to its symbolic value.
type StoreVariable struct {
	Name  string
	Value model.Term
	Sort  model.Sort
}

// State is a symbolic state: store, current heap, old heap and path conditions.
type State struct {
	Store          []StoreVariable
	Heap           []model.HeapChunk
	OldHeap        []model.HeapChunk
	PathConditions []model.Term
}

// ParseState parses a state object of the form {store, heap, oldHeap, pcs}.
// Absent or null lists are treated as empty.
func ParseState(v any) (*State, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &model.MalformedInputError{Field: "(self)", Variant: "state", Value: v, Message: "must be an object"}
	}

	store, err := listAt(obj, "state", "store")
	if err != nil {
		return nil, err
	}
	heap, err := listAt(obj, "state", "heap")
	if err != nil {
		return nil, err
	}
	oldHeap, err := listAt(obj, "state", "oldHeap")
	if err != nil {
		return nil, err
	}
	pcs, err := listAt(obj, "state", "pcs")
	if err != nil {
		return nil, err
	}

	s := &State{
		Store:          make([]StoreVariable, 0, len(store)),
		PathConditions: make([]model.Term, 0, len(pcs)),
	}
	for i, raw := range store {
		sv, err := parseStoreVariable(raw)
		if err != nil {
			return nil, fmt.Errorf("store[%d]: %w", i, err)
		}
		s.Store = append(s.Store, sv)
	}
	if s.Heap, err = parseChunks("heap", heap); err != nil {
		return nil, err
	}
	if s.OldHeap, err = parseChunks("oldHeap", oldHeap); err != nil {
		return nil, err
	}
	for i, raw := range pcs {
		pc, err := model.ParseTerm(raw)
		if err != nil {
			return nil, fmt.Errorf("pcs[%d]: %w", i, err)
		}
		s.PathConditions = append(s.PathConditions, pc)
	}
	return s, nil
}

func parseStoreVariable(v any) (StoreVariable, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return StoreVariable{}, &model.MalformedInputError{Field: "(self)", Variant: "store variable", Value: v, Message: "must be an object"}
	}
	name, ok := obj["name"].(string)
	if !ok {
		return StoreVariable{}, &model.MalformedInputError{Field: "name", Variant: "store variable", Value: obj, Message: "must be a string"}
	}
	for _, key := range []string{"value", "sort"} {
		if obj[key] == nil {
			return StoreVariable{}, &model.MalformedInputError{Field: key, Variant: "store variable", Value: obj, Message: "required key is missing"}
		}
	}
	value, err := model.ParseTerm(obj["value"])
	if err != nil {
		return StoreVariable{}, err
	}
	sort, err := model.ParseSort(obj["sort"])
	if err != nil {
		return StoreVariable{}, err
	}
	return StoreVariable{Name: name, Value: value, Sort: sort}, nil
}

func parseChunks(key string, items []any) ([]model.HeapChunk, error) {
	chunks := make([]model.HeapChunk, 0, len(items))
	for i, raw := range items {
		c, err := model.ParseHeapChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

// listAt returns obj[key] as a list; absent and null keys yield an empty list.
func listAt(obj map[string]any, variant, key string) ([]any, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, &model.MalformedInputError{Field: key, Variant: variant, Value: v, Message: "must be an array or null"}
	}
	return items, nil
}

// Lookup returns the store variable called name.
func (s *State) Lookup(name string) (StoreVariable, bool) {
	for _, sv := range s.Store {
		if sv.Name == name {
			return sv, true
		}
	}
	return StoreVariable{}, false
}

func (sv StoreVariable) String() string {
	return fmt.Sprintf("%s: %s = %s", sv.Name, sv.Sort, sv.Value)
}

// String renders the state one entry per line, in input order.
func (s *State) String() string {
	var b strings.Builder
	b.WriteString("store:\n")
	for _, sv := range s.Store {
		b.WriteString("  " + sv.String() + "\n")
	}
	b.WriteString("heap:\n")
	for _, c := range s.Heap {
		b.WriteString("  " + c.String() + "\n")
	}
	b.WriteString("old heap:\n")
	for _, c := range s.OldHeap {
		b.WriteString("  " + c.String() + "\n")
	}
	b.WriteString("pcs:\n")
	for _, pc := range s.PathConditions {
		b.WriteString("  " + pc.String() + "\n")
	}
	return b.String()
}
