package symbex

import (
	"errors"
	"fmt"

	"github.com/viperproject/viper-ide-sub004/internal/model"
)

// Record is one node of the symbolic-execution log tree: a verification
// step together with the state it started from.
type Record struct {
	Type         string // e.g. "method", "execute", "evaluate"
	Kind         string
	Value        string
	Open         bool
	Prestate     *State     // nil when the record carries no state
	LastSMTQuery model.Term // nil when absent
	Children     []*Record
}

var (
	// SkipChildren may be returned by a WalkFunc to skip the children of the current record.
	SkipChildren = errors.New("skip children")
	// ErrStopWalk may be returned by a WalkFunc to end the walk early. Walk then returns nil.
	ErrStopWalk = errors.New("stop walk")
)

// WalkFunc is called for each record visited by Walk.
type WalkFunc func(r *Record, depth int) error

// ParseRecord parses one log record and, recursively, its children.
func ParseRecord(v any) (*Record, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &model.MalformedInputError{Field: "(self)", Variant: "record", Value: v, Message: "must be an object"}
	}

	r := &Record{}
	var err error
	if r.Value, err = stringAt(obj, "value", true); err != nil {
		return nil, err
	}
	if r.Type, err = stringAt(obj, "type", false); err != nil {
		return nil, err
	}
	if r.Kind, err = stringAt(obj, "kind", false); err != nil {
		return nil, err
	}
	if open, ok := obj["open"]; ok && open != nil {
		b, ok := open.(bool)
		if !ok {
			return nil, &model.MalformedInputError{Field: "open", Variant: "record", Value: open, Message: "must be a boolean"}
		}
		r.Open = b
	}

	if raw, ok := obj["prestate"]; ok && raw != nil {
		if r.Prestate, err = ParseState(raw); err != nil {
			return nil, fmt.Errorf("prestate of %q: %w", r.Value, err)
		}
	}
	if raw, ok := obj["lastSMTQuery"]; ok && raw != nil {
		if r.LastSMTQuery, err = model.ParseTerm(raw); err != nil {
			return nil, fmt.Errorf("lastSMTQuery of %q: %w", r.Value, err)
		}
	}

	children, err := listAt(obj, "record", "children")
	if err != nil {
		return nil, err
	}
	r.Children = make([]*Record, 0, len(children))
	for i, raw := range children {
		child, err := ParseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		r.Children = append(r.Children, child)
	}
	return r, nil
}

// ParseLog parses a whole log: either an array of top-level records or a single record.
func ParseLog(v any) ([]*Record, error) {
	items, ok := v.([]any)
	if !ok {
		r, err := ParseRecord(v)
		if err != nil {
			return nil, err
		}
		return []*Record{r}, nil
	}

	records := make([]*Record, 0, len(items))
	for i, raw := range items {
		r, err := ParseRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("records[%d]: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Walk visits records depth-first in pre-order. Returning SkipChildren from
// fn skips the current record's children, ErrStopWalk ends the walk, and
// any other error stops the walk and is returned.
func Walk(records []*Record, fn WalkFunc) error {
	for _, r := range records {
		if err := walk(r, 0, fn); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
	}
	return nil
}

func walk(r *Record, depth int, fn WalkFunc) error {
	if err := fn(r, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range r.Children {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// States returns the prestates of all records in walk order.
func States(records []*Record) []*State {
	var states []*State
	_ = Walk(records, func(r *Record, _ int) error {
		if r.Prestate != nil {
			states = append(states, r.Prestate)
		}
		return nil
	})
	return states
}

// Count returns the number of records in the forest.
func Count(records []*Record) int {
	n := 0
	_ = Walk(records, func(*Record, int) error {
		n++
		return nil
	})
	return n
}

func stringAt(obj map[string]any, key string, required bool) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		if required {
			return "", &model.MalformedInputError{Field: key, Variant: "record", Value: obj, Message: "required key is missing"}
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &model.MalformedInputError{Field: key, Variant: "record", Value: v, Message: "must be a string"}
	}
	return s, nil
}
