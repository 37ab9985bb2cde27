package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wire fixtures shared by the term and chunk tests.
const (
	litZero  = `{"type":"literal","sort":{"id":"Int"},"value":"0"}`
	litThree = `{"type":"literal","sort":{"id":"Int"},"value":"3"}`
	litTrue  = `{"type":"literal","sort":{"id":"Bool"},"value":"True"}`
	litFalse = `{"type":"literal","sort":{"id":"Bool"},"value":"False"}`
	litWrite = `{"type":"literal","sort":{"id":"Perm"},"value":"W"}`
	varX     = `{"type":"variable","id":"x@1","sort":{"id":"Ref"}}`
	varY     = `{"type":"variable","id":"y@2","sort":{"id":"Int"}}`
	varS     = `{"type":"variable","id":"s@3","sort":{"id":"Seq","elementsSort":{"id":"Int"}}}`
	varFVF   = `{"type":"variable","id":"sm@4","sort":{"id":"FVF","elementsSort":{"id":"Int"}}}`
	varPSF   = `{"type":"variable","id":"psf@5","sort":{"id":"PSF","elementsSort":{"id":"Snap"}}}`
)

var (
	intSort  = NewSort("Int")
	boolSort = NewSort("Bool")
	refSort  = NewSort("Ref")
	seqInt   = NewCollectionSort("Seq", intSort)

	zeroT  = Literal{Sort: intSort, Value: "0"}
	threeT = Literal{Sort: intSort, Value: "3"}
	trueT  = Literal{Sort: boolSort, Value: "True"}
	falseT = Literal{Sort: boolSort, Value: "False"}
	writeT = Literal{Sort: NewSort("Perm"), Value: "W"}
	xT     = Variable{ID: "x@1", Sort: refSort}
	yT     = Variable{ID: "y@2", Sort: intSort}
	sT     = Variable{ID: "s@3", Sort: seqInt}
	fvfT   = Variable{ID: "sm@4", Sort: NewCollectionSort("FVF", intSort)}
	psfT   = Variable{ID: "psf@5", Sort: NewCollectionSort("PSF", NewSort("Snap"))}
)

type termCase struct {
	name  string
	input string
	want  Term
}

// termCases holds one fully-populated input per term tag.
func termCases() []termCase {
	return []termCase{
		{"literal", litThree, threeT},
		{
			"unary",
			`{"type":"unary","op":"!","p":` + litTrue + `}`,
			Unary{Op: "!", Operand: trueT},
		},
		{
			"binary",
			`{"type":"binary","op":"+","lhs":` + litThree + `,"rhs":` + varY + `}`,
			Binary{Op: "+", Left: threeT, Right: yT},
		},
		{"variable", varX, xT},
		{
			"quantification",
			`{"type":"quantification","quantifier":"QA","vars":[` + varY + `],"body":{"type":"binary","op":">=","lhs":` + varY + `,"rhs":` + litZero + `},"name":"prog.l7"}`,
			Quantification{
				Quantifier: "QA",
				Vars:       []Variable{yT},
				Body:       Binary{Op: ">=", Left: yT, Right: zeroT},
				Name:       "prog.l7",
			},
		},
		{
			"application",
			`{"type":"application","applicable":"Seq_length","args":[` + varS + `],"sort":{"id":"Int"}}`,
			Application{Applicable: "Seq_length", Args: []Term{sT}, Sort: intSort},
		},
		{
			"lookup",
			`{"type":"lookup","field":"val","fieldValueFunction":` + varFVF + `,"receiver":` + varX + `}`,
			Lookup{Field: "val", FieldValueFunction: fvfT, Receiver: xT},
		},
		{
			"predicateLookup",
			`{"type":"predicateLookup","predicate":"list","predicateSnapFunction":` + varPSF + `,"args":[` + varX + `]}`,
			PredicateLookup{Predicate: "list", PredicateSnapFunction: psfT, Args: []Term{xT}},
		},
		{
			"and",
			`{"type":"and","terms":[` + litTrue + `,` + litFalse + `]}`,
			And{Terms: []Term{trueT, falseT}},
		},
		{
			"or",
			`{"type":"or","terms":[` + litTrue + `,` + litFalse + `]}`,
			Or{Terms: []Term{trueT, falseT}},
		},
		{
			"distinct",
			`{"type":"distinct","symbols":["a","b","c"]}`,
			Distinct{Symbols: []string{"a", "b", "c"}},
		},
		{
			"ite",
			`{"type":"ite","cond":` + litTrue + `,"thenBranch":` + litThree + `,"elseBranch":` + litZero + `}`,
			Ite{Condition: trueT, Then: threeT, Else: zeroT},
		},
		{
			"let",
			`{"type":"let","bindings":[{"var":` + varY + `,"value":` + litThree + `}],"body":` + varY + `}`,
			Let{Bindings: []Binding{{Var: yT, Value: threeT}}, Body: yT},
		},
		{
			"sortWrapper",
			`{"type":"sortWrapper","term":` + varX + `,"sort":{"id":"Snap"}}`,
			SortWrapper{Term: xT, Sort: NewSort("Snap")},
		},
		{
			"seqSingleton",
			`{"type":"seqSingleton","value":` + litThree + `}`,
			SeqSingleton{Value: threeT},
		},
		{
			"seqRanged",
			`{"type":"seqRanged","lhs":` + litZero + `,"rhs":` + litThree + `}`,
			SeqRanged{Low: zeroT, High: threeT},
		},
		{
			"seqUpdate",
			`{"type":"seqUpdate","seq":` + varS + `,"index":` + litZero + `,"value":` + litThree + `}`,
			SeqUpdate{Seq: sT, Index: zeroT, Value: threeT},
		},
		{
			"singletonSet",
			`{"type":"singletonSet","value":` + litThree + `}`,
			SetSingleton{Value: threeT},
		},
		{
			"singletonMultiset",
			`{"type":"singletonMultiset","value":` + litThree + `}`,
			MultisetSingleton{Value: threeT},
		},
	}
}

func TestParseTerm_Literal(t *testing.T) {
	t.Parallel()

	got, err := ParseTerm(decodeJSON(t, `{"type":"literal","sort":{"id":"Int"},"value":"3"}`))
	require.NoError(t, err)
	assert.Equal(t, Literal{Sort: Sort{ID: "Int"}, Value: "3"}, got)
	assert.Equal(t, TermLiteral, got.Kind())
}

func TestParseTerm_AllVariants(t *testing.T) {
	t.Parallel()

	for _, tt := range termCases() {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTerm(decodeJSON(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, TermKind(tt.name), got.Kind())
			assert.True(t, Equal(tt.want, got), Diff(tt.want, got))
		})
	}
}

func TestParseTerm_CoversEveryKind(t *testing.T) {
	t.Parallel()

	covered := make(map[TermKind]bool)
	for _, tt := range termCases() {
		covered[TermKind(tt.name)] = true
	}
	for _, kind := range TermKinds() {
		assert.True(t, covered[kind], "no fixture for term kind %s", kind)

		// A bare tag must reach its variant and fail on a missing field,
		// never fall through to the unknown-variant branch.
		_, err := ParseTerm(map[string]any{"type": string(kind)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedInput), "kind %s: %v", kind, err)
		assert.False(t, errors.Is(err, ErrUnknownVariant), "kind %s not dispatched", kind)
	}
}

func TestParseTerm_MissingRequiredField(t *testing.T) {
	t.Parallel()

	for _, tt := range termCases() {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			full := decodeJSON(t, tt.input).(map[string]any)
			for key := range full {
				if key == "type" {
					continue
				}
				input := make(map[string]any, len(full))
				for k, v := range full {
					if k != key {
						input[k] = v
					}
				}
				_, err := ParseTerm(input)
				mie := requireMalformed(t, err, key)
				assert.Equal(t, tt.name, mie.Variant)

				input[key] = nil
				_, err = ParseTerm(input)
				requireMalformed(t, err, key)
			}
		})
	}
}

func TestParseTerm_Compositional(t *testing.T) {
	t.Parallel()

	raw := decodeJSON(t, `{"type":"ite","cond":{"type":"binary","op":"<","lhs":`+varY+`,"rhs":`+litThree+`},"thenBranch":{"type":"seqSingleton","value":`+varY+`},"elseBranch":{"type":"application","applicable":"Seq_empty","args":[],"sort":{"id":"Seq","elementsSort":{"id":"Int"}}}}`).(map[string]any)

	whole, err := ParseTerm(raw)
	require.NoError(t, err)
	ite, ok := whole.(Ite)
	require.True(t, ok)

	cond, err := ParseTerm(raw["cond"])
	require.NoError(t, err)
	then, err := ParseTerm(raw["thenBranch"])
	require.NoError(t, err)
	els, err := ParseTerm(raw["elseBranch"])
	require.NoError(t, err)

	assert.True(t, Equal(cond, ite.Condition))
	assert.True(t, Equal(then, ite.Then))
	assert.True(t, Equal(els, ite.Else))
	assert.Equal(t, []Term{}, els.(Application).Args)
}

func TestParseTerm_Deterministic(t *testing.T) {
	t.Parallel()

	for _, tt := range termCases() {
		input := decodeJSON(t, tt.input)
		first, err := ParseTerm(input)
		require.NoError(t, err)
		second, err := ParseTerm(input)
		require.NoError(t, err)
		assert.True(t, Equal(first, second), tt.name)
	}
}

func TestParseTerm_UnknownVariant(t *testing.T) {
	t.Parallel()

	_, err := ParseTerm(decodeJSON(t, `{"type":"bogus","value":"1"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownVariant))
	assert.False(t, errors.Is(err, ErrMalformedInput))

	var uve *UnknownVariantError
	require.True(t, errors.As(err, &uve))
	assert.Equal(t, "bogus", uve.Tag)
	assert.Equal(t, "term", uve.Family)
	assert.Len(t, uve.Known, len(TermKinds()))
	assert.Contains(t, uve.Known, "seqUpdate")
	assert.Contains(t, err.Error(), `"bogus"`)
}

func TestParseTerm_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		field string
	}{
		{"missing tag", `{"sort":{"id":"Int"},"value":"3"}`, "type"},
		{"numeric tag", `{"type":7}`, "type"},
		{"not an object", `[1,2]`, "(self)"},
		{"literal value not string", `{"type":"literal","sort":{"id":"Int"},"value":3}`, "value"},
		{"literal sort without id", `{"type":"literal","sort":{},"value":"3"}`, "id"},
		{"args not a list", `{"type":"application","applicable":"f","args":{},"sort":{"id":"Int"}}`, "args"},
		{"null list element", `{"type":"and","terms":[` + litTrue + `,null]}`, "terms"},
		{"symbols not strings", `{"type":"distinct","symbols":["a",1]}`, "symbols"},
		{"quantified var not a variable", `{"type":"quantification","quantifier":"QA","vars":[` + litThree + `],"body":` + litTrue + `,"name":"q"}`, "vars"},
		{"let var not a variable", `{"type":"let","bindings":[{"var":` + litThree + `,"value":` + litThree + `}],"body":` + litTrue + `}`, "var"},
		{"let binding missing value", `{"type":"let","bindings":[{"var":` + varY + `}],"body":` + litTrue + `}`, "value"},
		{"let binding not an object", `{"type":"let","bindings":["y"],"body":` + litTrue + `}`, "(self)"},
		{"nested failure", `{"type":"unary","op":"-","p":{"type":"binary","op":"+","lhs":` + litThree + `}}`, "rhs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTerm(decodeJSON(t, tt.input))
			requireMalformed(t, err, tt.field)
		})
	}
}

func TestParseTerm_ListElementFailureAborts(t *testing.T) {
	t.Parallel()

	_, err := ParseTerm(decodeJSON(t, `{"type":"or","terms":[`+litTrue+`,{"type":"nope"},`+litFalse+`]}`))
	require.Error(t, err)

	var uve *UnknownVariantError
	require.True(t, errors.As(err, &uve))
	assert.Equal(t, "nope", uve.Tag)
}

func TestSortOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		term   Term
		want   Sort
		wantOK bool
	}{
		{"literal", threeT, intSort, true},
		{"variable", xT, refSort, true},
		{"application", Application{Applicable: "f", Args: []Term{}, Sort: boolSort}, boolSort, true},
		{"sort wrapper", SortWrapper{Term: xT, Sort: NewSort("Snap")}, NewSort("Snap"), true},
		{"binary", Binary{Op: "+", Left: threeT, Right: zeroT}, Sort{}, false},
		{"and", And{Terms: []Term{trueT}}, Sort{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := SortOf(tt.term)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTerm_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		term Term
		want string
	}{
		{"literal", threeT, "3"},
		{"unary", Unary{Op: "!", Operand: trueT}, "!True"},
		{"binary", Binary{Op: "+", Left: threeT, Right: yT}, "(3 + y@2)"},
		{"quantification", Quantification{Quantifier: "QA", Vars: []Variable{yT}, Body: trueT, Name: "q"}, "QA y@2: Int :: True"},
		{"application", Application{Applicable: "f", Args: []Term{xT, yT}, Sort: intSort}, "f(x@1, y@2)"},
		{"lookup", Lookup{Field: "val", FieldValueFunction: fvfT, Receiver: xT}, "Lookup(val, sm@4, x@1)"},
		{"predicate lookup", PredicateLookup{Predicate: "P", PredicateSnapFunction: psfT, Args: []Term{xT}}, "PredicateLookup(P, psf@5, [x@1])"},
		{"empty and", And{Terms: []Term{}}, "true"},
		{"single or", Or{Terms: []Term{trueT}}, "True"},
		{"and", And{Terms: []Term{trueT, falseT}}, "(True && False)"},
		{"distinct", Distinct{Symbols: []string{"a", "b"}}, "Distinct(a, b)"},
		{"ite", Ite{Condition: trueT, Then: threeT, Else: zeroT}, "(True ? 3 : 0)"},
		{"let", Let{Bindings: []Binding{{Var: yT, Value: threeT}}, Body: yT}, "(let y@2 == (3) in y@2)"},
		{"sort wrapper", SortWrapper{Term: xT, Sort: NewSort("Snap")}, "SortWrapper(x@1, Snap)"},
		{"seq ranged", SeqRanged{Low: zeroT, High: threeT}, "[0..3)"},
		{"seq update", SeqUpdate{Seq: sT, Index: zeroT, Value: threeT}, "s@3[0 := 3]"},
		{"set singleton", SetSingleton{Value: threeT}, "Set(3)"},
		{"multiset singleton", MultisetSingleton{Value: threeT}, "Multiset(3)"},
		{"seq singleton", SeqSingleton{Value: threeT}, "Seq(3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}
