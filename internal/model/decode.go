package model

// node is one JSON object of the backend message together with the
// variant name used when reporting problems with its keys.
type node struct {
	variant string
	raw     map[string]any
}

func asNode(variant string, v any) (node, error) {
	raw, ok := v.(map[string]any)
	if !ok {
		return node{}, &MalformedInputError{Variant: variant, Field: "(self)", Value: v, Message: "must be an object"}
	}
	return node{variant: variant, raw: raw}, nil
}

// required returns the value under key, failing when it is absent or null.
func (n node) required(key string) (any, error) {
	v, ok := n.raw[key]
	if !ok {
		return nil, missing(n.variant, key, n.raw)
	}
	if v == nil {
		return nil, &MalformedInputError{Field: key, Variant: n.variant, Value: n.raw, Message: "must not be null"}
	}
	return v, nil
}

// optional returns the value under key; absent and null are both reported as not present.
func (n node) optional(key string) (any, bool) {
	v, ok := n.raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (n node) str(key string) (string, error) {
	v, err := n.required(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongShape(n.variant, key, v, "a string")
	}
	return s, nil
}

func (n node) optionalStr(key string) (*string, error) {
	v, ok := n.optional(key)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, wrongShape(n.variant, key, v, "a string or null")
	}
	return &s, nil
}

func (n node) list(key string) ([]any, error) {
	v, err := n.required(key)
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, wrongShape(n.variant, key, v, "an array")
	}
	return items, nil
}

func (n node) strs(key string) ([]string, error) {
	items, err := n.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, wrongShape(n.variant, key, item, "an array of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func (n node) sortValue(key string) (Sort, error) {
	v, err := n.required(key)
	if err != nil {
		return Sort{}, err
	}
	return ParseSort(v)
}

func (n node) term(key string) (Term, error) {
	v, err := n.required(key)
	if err != nil {
		return nil, err
	}
	return ParseTerm(v)
}

// optionalTerm maps an absent or null key to a nil Term.
func (n node) optionalTerm(key string) (Term, error) {
	v, ok := n.optional(key)
	if !ok {
		return nil, nil
	}
	return ParseTerm(v)
}

func (n node) terms(key string) ([]Term, error) {
	items, err := n.list(key)
	if err != nil {
		return nil, err
	}
	return parseTerms(n.variant, key, items)
}

// optionalTerms maps an absent or null key to an empty sequence.
func (n node) optionalTerms(key string) ([]Term, error) {
	v, ok := n.optional(key)
	if !ok {
		return []Term{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, wrongShape(n.variant, key, v, "an array or null")
	}
	return parseTerms(n.variant, key, items)
}

func (n node) variables(key string) ([]Variable, error) {
	items, err := n.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]Variable, 0, len(items))
	for _, item := range items {
		v, err := parseVariable(n.variant, key, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseTerms(variant, key string, items []any) ([]Term, error) {
	out := make([]Term, 0, len(items))
	for _, item := range items {
		if item == nil {
			return nil, wrongShape(variant, key, items, "an array of terms")
		}
		t, err := ParseTerm(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// parseVariable parses item as a term and requires it to be a variable.
func parseVariable(variant, key string, item any) (Variable, error) {
	if item == nil {
		return Variable{}, wrongShape(variant, key, item, "a variable term")
	}
	t, err := ParseTerm(item)
	if err != nil {
		return Variable{}, err
	}
	v, ok := t.(Variable)
	if !ok {
		return Variable{}, wrongShape(variant, key, item, "a variable term")
	}
	return v, nil
}
