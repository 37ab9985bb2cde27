package symbex

import (
	"fmt"
	"strings"

	"github.com/viperproject/viper-ide-sub004/internal/model"
)

// VariableChange describes a store variable whose binding differs between two states.
// Before or After is nil when the variable only exists on one side.
type VariableChange struct {
	Name   string
	Before *StoreVariable
	After  *StoreVariable
}

// StateDiff is the structural difference between two symbolic states.
type StateDiff struct {
	AddedChunks       []model.HeapChunk
	RemovedChunks     []model.HeapChunk
	ChangedVariables  []VariableChange
	AddedConditions   []model.Term
	RemovedConditions []model.Term
}

// CompareStates computes what changed from before to after. Heaps and path
// conditions are compared as multisets under structural equality.
func CompareStates(before, after *State) StateDiff {
	var d StateDiff
	d.RemovedChunks, d.AddedChunks = multisetDiff(before.Heap, after.Heap)
	d.RemovedConditions, d.AddedConditions = multisetDiff(before.PathConditions, after.PathConditions)

	for _, b := range before.Store {
		a, ok := after.Lookup(b.Name)
		switch {
		case !ok:
			d.ChangedVariables = append(d.ChangedVariables, VariableChange{Name: b.Name, Before: &b})
		case !model.Equal(a, b):
			d.ChangedVariables = append(d.ChangedVariables, VariableChange{Name: b.Name, Before: &b, After: &a})
		}
	}
	for _, a := range after.Store {
		if _, ok := before.Lookup(a.Name); !ok {
			d.ChangedVariables = append(d.ChangedVariables, VariableChange{Name: a.Name, After: &a})
		}
	}
	return d
}

// multisetDiff returns the elements of xs without a structurally equal
// partner in ys, and vice versa. Each element is matched at most once.
func multisetDiff[T any](xs, ys []T) (onlyX, onlyY []T) {
	matched := make([]bool, len(ys))
	for _, x := range xs {
		found := false
		for j, y := range ys {
			if !matched[j] && model.Equal(x, y) {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			onlyX = append(onlyX, x)
		}
	}
	for j, y := range ys {
		if !matched[j] {
			onlyY = append(onlyY, y)
		}
	}
	return onlyX, onlyY
}

// Empty reports whether the two compared states were structurally equal.
func (d StateDiff) Empty() bool {
	return len(d.AddedChunks) == 0 && len(d.RemovedChunks) == 0 &&
		len(d.ChangedVariables) == 0 &&
		len(d.AddedConditions) == 0 && len(d.RemovedConditions) == 0
}

// String renders the diff in a unified-diff like form.
func (d StateDiff) String() string {
	if d.Empty() {
		return "no changes\n"
	}
	var b strings.Builder
	for _, vc := range d.ChangedVariables {
		if vc.Before != nil {
			fmt.Fprintf(&b, "- store %s\n", vc.Before)
		}
		if vc.After != nil {
			fmt.Fprintf(&b, "+ store %s\n", vc.After)
		}
	}
	for _, c := range d.RemovedChunks {
		fmt.Fprintf(&b, "- heap  %s\n", c)
	}
	for _, c := range d.AddedChunks {
		fmt.Fprintf(&b, "+ heap  %s\n", c)
	}
	for _, pc := range d.RemovedConditions {
		fmt.Fprintf(&b, "- pc    %s\n", pc)
	}
	for _, pc := range d.AddedConditions {
		fmt.Fprintf(&b, "+ pc    %s\n", pc)
	}
	return b.String()
}
