package model

import (
	"fmt"
	"strings"
)

// TermKind is the wire tag of a term variant.
type TermKind string

const (
	TermLiteral           TermKind = "literal"
	TermUnary             TermKind = "unary"
	TermBinary            TermKind = "binary"
	TermVariable          TermKind = "variable"
	TermQuantification    TermKind = "quantification"
	TermApplication       TermKind = "application"
	TermLookup            TermKind = "lookup"
	TermPredicateLookup   TermKind = "predicateLookup"
	TermAnd               TermKind = "and"
	TermOr                TermKind = "or"
	TermDistinct          TermKind = "distinct"
	TermIte               TermKind = "ite"
	TermLet               TermKind = "let"
	TermSortWrapper       TermKind = "sortWrapper"
	TermSeqSingleton      TermKind = "seqSingleton"
	TermSeqRanged         TermKind = "seqRanged"
	TermSeqUpdate         TermKind = "seqUpdate"
	TermSetSingleton      TermKind = "singletonSet"
	TermMultisetSingleton TermKind = "singletonMultiset"
)

var termKinds = []TermKind{
	TermLiteral, TermUnary, TermBinary, TermVariable, TermQuantification,
	TermApplication, TermLookup, TermPredicateLookup, TermAnd, TermOr,
	TermDistinct, TermIte, TermLet, TermSortWrapper, TermSeqSingleton,
	TermSeqRanged, TermSeqUpdate, TermSetSingleton, TermMultisetSingleton,
}

// TermKinds returns every term tag ParseTerm understands.
func TermKinds() []TermKind {
	return append([]TermKind(nil), termKinds...)
}

// Term is a node of the backend's symbolic-expression algebra.
// The set of implementations is closed; switch on the concrete type.
type Term interface {
	Kind() TermKind
	String() string
	isTerm()
}

type Literal struct {
	Sort  Sort
	Value string
}

type Unary struct {
	Op      string
	Operand Term
}

type Binary struct {
	Op    string
	Left  Term
	Right Term
}

// Variable is a symbolic variable; it also appears as the bound variable
// of quantifications and let bindings.
type Variable struct {
	ID   string
	Sort Sort
}

type Quantification struct {
	Quantifier string
	Vars       []Variable
	Body       Term
	Name       string
}

// Application applies a named function or macro to arguments.
type Application struct {
	Applicable string
	Args       []Term
	Sort       Sort
}

// Lookup reads Field of Receiver through a field-value function.
type Lookup struct {
	Field              string
	FieldValueFunction Term
	Receiver           Term
}

// PredicateLookup reads a predicate snapshot through a predicate-snap function.
type PredicateLookup struct {
	Predicate             string
	PredicateSnapFunction Term
	Args                  []Term
}

type And struct {
	Terms []Term
}

type Or struct {
	Terms []Term
}

type Distinct struct {
	Symbols []string
}

type Ite struct {
	Condition Term
	Then      Term
	Else      Term
}

// Binding is one var == value pair of a Let.
type Binding struct {
	Var   Variable
	Value Term
}

type Let struct {
	Bindings []Binding
	Body     Term
}

// SortWrapper coerces Term to Sort.
type SortWrapper struct {
	Term Term
	Sort Sort
}

type SeqSingleton struct {
	Value Term
}

// SeqRanged is the integer sequence [Low..High).
type SeqRanged struct {
	Low  Term
	High Term
}

type SeqUpdate struct {
	Seq   Term
	Index Term
	Value Term
}

type SetSingleton struct {
	Value Term
}

type MultisetSingleton struct {
	Value Term
}

func (Literal) Kind() TermKind           { return TermLiteral }
func (Unary) Kind() TermKind             { return TermUnary }
func (Binary) Kind() TermKind            { return TermBinary }
func (Variable) Kind() TermKind          { return TermVariable }
func (Quantification) Kind() TermKind    { return TermQuantification }
func (Application) Kind() TermKind       { return TermApplication }
func (Lookup) Kind() TermKind            { return TermLookup }
func (PredicateLookup) Kind() TermKind   { return TermPredicateLookup }
func (And) Kind() TermKind               { return TermAnd }
func (Or) Kind() TermKind                { return TermOr }
func (Distinct) Kind() TermKind          { return TermDistinct }
func (Ite) Kind() TermKind               { return TermIte }
func (Let) Kind() TermKind               { return TermLet }
func (SortWrapper) Kind() TermKind       { return TermSortWrapper }
func (SeqSingleton) Kind() TermKind      { return TermSeqSingleton }
func (SeqRanged) Kind() TermKind         { return TermSeqRanged }
func (SeqUpdate) Kind() TermKind         { return TermSeqUpdate }
func (SetSingleton) Kind() TermKind      { return TermSetSingleton }
func (MultisetSingleton) Kind() TermKind { return TermMultisetSingleton }

func (Literal) isTerm()           {}
func (Unary) isTerm()             {}
func (Binary) isTerm()            {}
func (Variable) isTerm()          {}
func (Quantification) isTerm()    {}
func (Application) isTerm()       {}
func (Lookup) isTerm()            {}
func (PredicateLookup) isTerm()   {}
func (And) isTerm()               {}
func (Or) isTerm()                {}
func (Distinct) isTerm()          {}
func (Ite) isTerm()               {}
func (Let) isTerm()               {}
func (SortWrapper) isTerm()       {}
func (SeqSingleton) isTerm()      {}
func (SeqRanged) isTerm()         {}
func (SeqUpdate) isTerm()         {}
func (SetSingleton) isTerm()      {}
func (MultisetSingleton) isTerm() {}

// SortOf returns the sort a term carries explicitly. Only literals,
// variables, applications and sort wrappers carry one.
func SortOf(t Term) (Sort, bool) {
	switch t := t.(type) {
	case Literal:
		return t.Sort, true
	case Variable:
		return t.Sort, true
	case Application:
		return t.Sort, true
	case SortWrapper:
		return t.Sort, true
	default:
		return Sort{}, false
	}
}

func (t Literal) String() string { return t.Value }

func (t Unary) String() string { return t.Op + t.Operand.String() }

func (t Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", t.Left, t.Op, t.Right)
}

func (t Variable) String() string { return t.ID }

func (t Quantification) String() string {
	vars := make([]string, len(t.Vars))
	for i, v := range t.Vars {
		vars[i] = v.ID + ": " + v.Sort.String()
	}
	return fmt.Sprintf("%s %s :: %s", t.Quantifier, strings.Join(vars, ", "), t.Body)
}

func (t Application) String() string {
	return t.Applicable + "(" + joinTerms(t.Args, ", ") + ")"
}

func (t Lookup) String() string {
	return fmt.Sprintf("Lookup(%s, %s, %s)", t.Field, t.FieldValueFunction, t.Receiver)
}

func (t PredicateLookup) String() string {
	return fmt.Sprintf("PredicateLookup(%s, %s, [%s])", t.Predicate, t.PredicateSnapFunction, joinTerms(t.Args, ", "))
}

func (t And) String() string { return junction(t.Terms, " && ", "true") }

func (t Or) String() string { return junction(t.Terms, " || ", "false") }

func (t Distinct) String() string {
	return "Distinct(" + strings.Join(t.Symbols, ", ") + ")"
}

func (t Ite) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", t.Condition, t.Then, t.Else)
}

func (t Let) String() string {
	bindings := make([]string, len(t.Bindings))
	for i, b := range t.Bindings {
		bindings[i] = b.Var.ID + " == (" + b.Value.String() + ")"
	}
	return fmt.Sprintf("(let %s in %s)", strings.Join(bindings, ", "), t.Body)
}

func (t SortWrapper) String() string {
	return fmt.Sprintf("SortWrapper(%s, %s)", t.Term, t.Sort)
}

func (t SeqSingleton) String() string { return "Seq(" + t.Value.String() + ")" }

func (t SeqRanged) String() string {
	return fmt.Sprintf("[%s..%s)", t.Low, t.High)
}

func (t SeqUpdate) String() string {
	return fmt.Sprintf("%s[%s := %s]", t.Seq, t.Index, t.Value)
}

func (t SetSingleton) String() string { return "Set(" + t.Value.String() + ")" }

func (t MultisetSingleton) String() string { return "Multiset(" + t.Value.String() + ")" }

func joinTerms(terms []Term, sep string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

func junction(terms []Term, sep, empty string) string {
	switch len(terms) {
	case 0:
		return empty
	case 1:
		return terms[0].String()
	default:
		return "(" + joinTerms(terms, sep) + ")"
	}
}
