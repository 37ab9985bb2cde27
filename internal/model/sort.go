// Package model reconstructs the symbolic-execution backend's terms, sorts and
// heap chunks from decoded JSON messages into immutable typed values.
//
// The three entry points ParseSort, ParseTerm and ParseHeapChunk accept the
// generic value produced by encoding/json (map[string]any, []any, string, ...)
// and either return a fully-formed value or the first error encountered.
// Parsing is pure and holds no state, so it is safe to call concurrently.
package model

// Sort is a type descriptor, optionally parameterized by one element sort
// (e.g. Set[Int]).
type Sort struct {
	ID           string
	ElementsSort *Sort // nil for atomic sorts
}

// NewSort returns an atomic sort.
func NewSort(id string) Sort {
	return Sort{ID: id}
}

// NewCollectionSort returns a sort parameterized by elems.
func NewCollectionSort(id string, elems Sort) Sort {
	return Sort{ID: id, ElementsSort: &elems}
}

// ParseSort parses a sort object of the form {id, elementsSort?}.
func ParseSort(v any) (Sort, error) {
	n, err := asNode("sort", v)
	if err != nil {
		return Sort{}, err
	}

	id, err := n.str("id")
	if err != nil {
		return Sort{}, err
	}

	s := Sort{ID: id}
	if raw, ok := n.optional("elementsSort"); ok {
		elems, err := ParseSort(raw)
		if err != nil {
			return Sort{}, err
		}
		s.ElementsSort = &elems
	}
	return s, nil
}

// Elements returns the element sort of a parameterized sort.
func (s Sort) Elements() (Sort, bool) {
	if s.ElementsSort == nil {
		return Sort{}, false
	}
	return *s.ElementsSort, true
}

// Equal reports whether s and o have the same id and structurally equal element sorts.
func (s Sort) Equal(o Sort) bool {
	if s.ID != o.ID {
		return false
	}
	if s.ElementsSort == nil || o.ElementsSort == nil {
		return s.ElementsSort == nil && o.ElementsSort == nil
	}
	return s.ElementsSort.Equal(*o.ElementsSort)
}

// String renders the sort as Id or Id[Elements].
func (s Sort) String() string {
	if s.ElementsSort == nil {
		return s.ID
	}
	return s.ID + "[" + s.ElementsSort.String() + "]"
}
