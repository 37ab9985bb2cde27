package model

import (
	"fmt"
	"strings"
)

// ChunkKind is the wire tag of a heap chunk variant.
type ChunkKind string

const (
	ChunkField               ChunkKind = "basic_field_chunk"
	ChunkPredicate           ChunkKind = "basic_predicate_chunk"
	ChunkMagicWand           ChunkKind = "basic_magic_wand_chunk"
	ChunkQuantifiedField     ChunkKind = "quantified_field_chunk"
	ChunkQuantifiedPredicate ChunkKind = "quantified_predicate_chunk"
	ChunkQuantifiedMagicWand ChunkKind = "quantified_magic_wand_chunk"
)

var chunkKinds = []ChunkKind{
	ChunkField, ChunkPredicate, ChunkMagicWand,
	ChunkQuantifiedField, ChunkQuantifiedPredicate, ChunkQuantifiedMagicWand,
}

// ChunkKinds returns every heap chunk tag ParseHeapChunk understands.
func ChunkKinds() []ChunkKind {
	return append([]ChunkKind(nil), chunkKinds...)
}

// WandResource is the resource name reported for magic wand chunks.
const WandResource = "wand"

// HeapChunk is a permission fact held in a symbolic heap.
// The set of implementations is closed; switch on the concrete type.
type HeapChunk interface {
	Kind() ChunkKind
	// Resource names the field or predicate the chunk grants access to,
	// or WandResource for magic wands.
	Resource() string
	String() string
	isHeapChunk()
}

// FieldChunk grants Permission to Field of Receiver. Sort is the sort of Snapshot.
type FieldChunk struct {
	Field      string
	Sort       Sort
	Receiver   Term
	Snapshot   Term
	Permission Term
}

type PredicateChunk struct {
	Predicate  string
	Args       []Term
	Snapshot   Term
	Permission Term
}

type MagicWandChunk struct {
	Args       []Term
	Snapshot   Term
	Permission Term
}

// QuantifiedFieldChunk grants permission to Field for every receiver
// satisfying Condition. Sort is the element sort of FieldValueFunction.
type QuantifiedFieldChunk struct {
	Field              string
	Sort               Sort
	FieldValueFunction Term
	Permission         Term
	Invariants         *string
	Condition          Term // nil when absent
	Receiver           Term // nil when absent
	Hints              []Term
}

// QuantifiedPredicateChunk is the quantified counterpart of PredicateChunk.
// Sort is the element sort of PredicateSnapFunction.
type QuantifiedPredicateChunk struct {
	Predicate             string
	Vars                  []Term
	Sort                  Sort
	PredicateSnapFunction Term
	Permission            Term
	Invariants            *string
	Condition             Term // nil when absent
	SingletonArgs         []Term
	Hints                 []Term
}

// QuantifiedMagicWandChunk is the quantified counterpart of MagicWandChunk.
// Unlike the other quantified chunks it derives no sort.
type QuantifiedMagicWandChunk struct {
	Predicate        string
	Vars             []Term
	WandSnapFunction Term
	Permission       Term
	Invariants       *string
	Condition        Term // nil when absent
	SingletonArgs    []Term
	Hints            []Term
}

func (FieldChunk) Kind() ChunkKind               { return ChunkField }
func (PredicateChunk) Kind() ChunkKind           { return ChunkPredicate }
func (MagicWandChunk) Kind() ChunkKind           { return ChunkMagicWand }
func (QuantifiedFieldChunk) Kind() ChunkKind     { return ChunkQuantifiedField }
func (QuantifiedPredicateChunk) Kind() ChunkKind { return ChunkQuantifiedPredicate }
func (QuantifiedMagicWandChunk) Kind() ChunkKind { return ChunkQuantifiedMagicWand }

func (c FieldChunk) Resource() string               { return c.Field }
func (c PredicateChunk) Resource() string           { return c.Predicate }
func (MagicWandChunk) Resource() string             { return WandResource }
func (c QuantifiedFieldChunk) Resource() string     { return c.Field }
func (c QuantifiedPredicateChunk) Resource() string { return c.Predicate }
func (QuantifiedMagicWandChunk) Resource() string   { return WandResource }

func (FieldChunk) isHeapChunk()               {}
func (PredicateChunk) isHeapChunk()           {}
func (MagicWandChunk) isHeapChunk()           {}
func (QuantifiedFieldChunk) isHeapChunk()     {}
func (QuantifiedPredicateChunk) isHeapChunk() {}
func (QuantifiedMagicWandChunk) isHeapChunk() {}

// ParseHeapChunk parses a heap chunk object, dispatching on its "type" tag.
func ParseHeapChunk(v any) (HeapChunk, error) {
	n, err := asNode("heap chunk", v)
	if err != nil {
		return nil, err
	}
	tag, err := n.str("type")
	if err != nil {
		return nil, err
	}
	n.variant = tag

	switch ChunkKind(tag) {
	case ChunkField:
		return parseFieldChunk(n)
	case ChunkPredicate:
		return parsePredicateChunk(n)
	case ChunkMagicWand:
		return parseMagicWandChunk(n)
	case ChunkQuantifiedField:
		return parseQuantifiedFieldChunk(n)
	case ChunkQuantifiedPredicate:
		return parseQuantifiedPredicateChunk(n)
	case ChunkQuantifiedMagicWand:
		return parseQuantifiedMagicWandChunk(n)
	default:
		known := make([]string, len(chunkKinds))
		for i, k := range chunkKinds {
			known[i] = string(k)
		}
		return nil, &UnknownVariantError{Family: "heap chunk", Tag: tag, Known: known}
	}
}

func parseFieldChunk(n node) (HeapChunk, error) {
	field, err := n.str("field")
	if err != nil {
		return nil, err
	}
	receiver, err := n.term("receiver")
	if err != nil {
		return nil, err
	}
	snap, err := n.term("snap")
	if err != nil {
		return nil, err
	}
	sort, ok := SortOf(snap)
	if !ok {
		return nil, wrongShape(n.variant, "snap", n.raw["snap"], "a term carrying a sort")
	}
	perm, err := n.term("perm")
	if err != nil {
		return nil, err
	}
	return FieldChunk{Field: field, Sort: sort, Receiver: receiver, Snapshot: snap, Permission: perm}, nil
}

func parsePredicateChunk(n node) (HeapChunk, error) {
	predicate, err := n.str("predicate")
	if err != nil {
		return nil, err
	}
	args, err := n.terms("args")
	if err != nil {
		return nil, err
	}
	snap, err := n.term("snap")
	if err != nil {
		return nil, err
	}
	perm, err := n.term("perm")
	if err != nil {
		return nil, err
	}
	return PredicateChunk{Predicate: predicate, Args: args, Snapshot: snap, Permission: perm}, nil
}

func parseMagicWandChunk(n node) (HeapChunk, error) {
	args, err := n.terms("args")
	if err != nil {
		return nil, err
	}
	snap, err := n.term("snap")
	if err != nil {
		return nil, err
	}
	perm, err := n.term("perm")
	if err != nil {
		return nil, err
	}
	return MagicWandChunk{Args: args, Snapshot: snap, Permission: perm}, nil
}

func parseQuantifiedFieldChunk(n node) (HeapChunk, error) {
	field, err := n.str("field")
	if err != nil {
		return nil, err
	}
	fvf, err := n.term("field_value_function")
	if err != nil {
		return nil, err
	}
	sort, err := elementSortOf(n, "field_value_function", fvf)
	if err != nil {
		return nil, err
	}
	perm, err := n.term("perm")
	if err != nil {
		return nil, err
	}
	invs, err := n.optionalStr("invs")
	if err != nil {
		return nil, err
	}
	cond, err := n.optionalTerm("cond")
	if err != nil {
		return nil, err
	}
	receiver, err := n.optionalTerm("receiver")
	if err != nil {
		return nil, err
	}
	hints, err := n.optionalTerms("hints")
	if err != nil {
		return nil, err
	}
	return QuantifiedFieldChunk{
		Field:              field,
		Sort:               sort,
		FieldValueFunction: fvf,
		Permission:         perm,
		Invariants:         invs,
		Condition:          cond,
		Receiver:           receiver,
		Hints:              hints,
	}, nil
}

func parseQuantifiedPredicateChunk(n node) (HeapChunk, error) {
	vars, err := n.terms("vars")
	if err != nil {
		return nil, err
	}
	predicate, err := n.str("predicate")
	if err != nil {
		return nil, err
	}
	psf, err := n.term("predicate_snap_function")
	if err != nil {
		return nil, err
	}
	sort, err := elementSortOf(n, "predicate_snap_function", psf)
	if err != nil {
		return nil, err
	}
	q, err := parseQuantifiedTail(n)
	if err != nil {
		return nil, err
	}
	return QuantifiedPredicateChunk{
		Predicate:             predicate,
		Vars:                  vars,
		Sort:                  sort,
		PredicateSnapFunction: psf,
		Permission:            q.perm,
		Invariants:            q.invs,
		Condition:             q.cond,
		SingletonArgs:         q.singletonArgs,
		Hints:                 q.hints,
	}, nil
}

func parseQuantifiedMagicWandChunk(n node) (HeapChunk, error) {
	vars, err := n.terms("vars")
	if err != nil {
		return nil, err
	}
	predicate, err := n.str("predicate")
	if err != nil {
		return nil, err
	}
	wsf, err := n.term("wand_snap_function")
	if err != nil {
		return nil, err
	}
	q, err := parseQuantifiedTail(n)
	if err != nil {
		return nil, err
	}
	return QuantifiedMagicWandChunk{
		Predicate:        predicate,
		Vars:             vars,
		WandSnapFunction: wsf,
		Permission:       q.perm,
		Invariants:       q.invs,
		Condition:        q.cond,
		SingletonArgs:    q.singletonArgs,
		Hints:            q.hints,
	}, nil
}

// quantifiedTail holds the keys the quantified predicate and wand chunks share.
type quantifiedTail struct {
	perm          Term
	invs          *string
	cond          Term
	singletonArgs []Term
	hints         []Term
}

func parseQuantifiedTail(n node) (quantifiedTail, error) {
	var q quantifiedTail
	var err error
	if q.perm, err = n.term("perm"); err != nil {
		return q, err
	}
	if q.invs, err = n.optionalStr("invs"); err != nil {
		return q, err
	}
	if q.cond, err = n.optionalTerm("cond"); err != nil {
		return q, err
	}
	if q.singletonArgs, err = n.optionalTerms("singleton_args"); err != nil {
		return q, err
	}
	if q.hints, err = n.optionalTerms("hints"); err != nil {
		return q, err
	}
	return q, nil
}

// elementSortOf derives a quantified chunk's sort from the element sort of
// its snapshot function's sort.
func elementSortOf(n node, key string, fn Term) (Sort, error) {
	sort, ok := SortOf(fn)
	if !ok {
		return Sort{}, wrongShape(n.variant, key, n.raw[key], "a term carrying a sort")
	}
	elems, ok := sort.Elements()
	if !ok {
		return Sort{}, wrongShape(n.variant, key, n.raw[key], "a term whose sort has an element sort")
	}
	return elems, nil
}

func (c FieldChunk) String() string {
	return fmt.Sprintf("%s.%s -> %s # %s", c.Receiver, c.Field, c.Snapshot, c.Permission)
}

func (c PredicateChunk) String() string {
	return fmt.Sprintf("%s(%s) -> %s # %s", c.Predicate, joinTerms(c.Args, ", "), c.Snapshot, c.Permission)
}

func (c MagicWandChunk) String() string {
	return fmt.Sprintf("wand(%s) -> %s # %s", joinTerms(c.Args, ", "), c.Snapshot, c.Permission)
}

func (c QuantifiedFieldChunk) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "QA r :: r.%s -> %s # %s", c.Field, c.FieldValueFunction, c.Permission)
	writeQuantifiedExtras(&b, c.Condition, c.Invariants)
	return b.String()
}

func (c QuantifiedPredicateChunk) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "QA %s :: %s(%s) -> %s # %s", joinTerms(c.Vars, ", "), c.Predicate, joinTerms(c.Vars, ", "), c.PredicateSnapFunction, c.Permission)
	writeQuantifiedExtras(&b, c.Condition, c.Invariants)
	return b.String()
}

func (c QuantifiedMagicWandChunk) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "QA %s :: wand %s(%s) -> %s # %s", joinTerms(c.Vars, ", "), c.Predicate, joinTerms(c.Vars, ", "), c.WandSnapFunction, c.Permission)
	writeQuantifiedExtras(&b, c.Condition, c.Invariants)
	return b.String()
}

func writeQuantifiedExtras(b *strings.Builder, cond Term, invs *string) {
	if cond != nil {
		fmt.Fprintf(b, " if %s", cond)
	}
	if invs != nil {
		fmt.Fprintf(b, " [invs: %s]", *invs)
	}
}
