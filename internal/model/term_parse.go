package model

// ParseTerm parses a term object, dispatching on its "type" tag. Every field
// of a recognized variant is mandatory; the first malformed sub-term aborts
// the whole parse.
func ParseTerm(v any) (Term, error) {
	n, err := asNode("term", v)
	if err != nil {
		return nil, err
	}
	tag, err := n.str("type")
	if err != nil {
		return nil, err
	}
	n.variant = tag

	switch TermKind(tag) {
	case TermLiteral:
		return parseLiteral(n)
	case TermUnary:
		return parseUnary(n)
	case TermBinary:
		return parseBinary(n)
	case TermVariable:
		return parseVariableTerm(n)
	case TermQuantification:
		return parseQuantification(n)
	case TermApplication:
		return parseApplication(n)
	case TermLookup:
		return parseLookup(n)
	case TermPredicateLookup:
		return parsePredicateLookup(n)
	case TermAnd:
		terms, err := n.terms("terms")
		if err != nil {
			return nil, err
		}
		return And{Terms: terms}, nil
	case TermOr:
		terms, err := n.terms("terms")
		if err != nil {
			return nil, err
		}
		return Or{Terms: terms}, nil
	case TermDistinct:
		symbols, err := n.strs("symbols")
		if err != nil {
			return nil, err
		}
		return Distinct{Symbols: symbols}, nil
	case TermIte:
		return parseIte(n)
	case TermLet:
		return parseLet(n)
	case TermSortWrapper:
		return parseSortWrapper(n)
	case TermSeqSingleton:
		value, err := n.term("value")
		if err != nil {
			return nil, err
		}
		return SeqSingleton{Value: value}, nil
	case TermSeqRanged:
		return parseSeqRanged(n)
	case TermSeqUpdate:
		return parseSeqUpdate(n)
	case TermSetSingleton:
		value, err := n.term("value")
		if err != nil {
			return nil, err
		}
		return SetSingleton{Value: value}, nil
	case TermMultisetSingleton:
		value, err := n.term("value")
		if err != nil {
			return nil, err
		}
		return MultisetSingleton{Value: value}, nil
	default:
		known := make([]string, len(termKinds))
		for i, k := range termKinds {
			known[i] = string(k)
		}
		return nil, &UnknownVariantError{Family: "term", Tag: tag, Known: known}
	}
}

func parseLiteral(n node) (Term, error) {
	sort, err := n.sortValue("sort")
	if err != nil {
		return nil, err
	}
	value, err := n.str("value")
	if err != nil {
		return nil, err
	}
	return Literal{Sort: sort, Value: value}, nil
}

func parseUnary(n node) (Term, error) {
	op, err := n.str("op")
	if err != nil {
		return nil, err
	}
	operand, err := n.term("p")
	if err != nil {
		return nil, err
	}
	return Unary{Op: op, Operand: operand}, nil
}

func parseBinary(n node) (Term, error) {
	op, err := n.str("op")
	if err != nil {
		return nil, err
	}
	lhs, err := n.term("lhs")
	if err != nil {
		return nil, err
	}
	rhs, err := n.term("rhs")
	if err != nil {
		return nil, err
	}
	return Binary{Op: op, Left: lhs, Right: rhs}, nil
}

func parseVariableTerm(n node) (Term, error) {
	id, err := n.str("id")
	if err != nil {
		return nil, err
	}
	sort, err := n.sortValue("sort")
	if err != nil {
		return nil, err
	}
	return Variable{ID: id, Sort: sort}, nil
}

func parseQuantification(n node) (Term, error) {
	quantifier, err := n.str("quantifier")
	if err != nil {
		return nil, err
	}
	vars, err := n.variables("vars")
	if err != nil {
		return nil, err
	}
	body, err := n.term("body")
	if err != nil {
		return nil, err
	}
	name, err := n.str("name")
	if err != nil {
		return nil, err
	}
	return Quantification{Quantifier: quantifier, Vars: vars, Body: body, Name: name}, nil
}

func parseApplication(n node) (Term, error) {
	applicable, err := n.str("applicable")
	if err != nil {
		return nil, err
	}
	args, err := n.terms("args")
	if err != nil {
		return nil, err
	}
	sort, err := n.sortValue("sort")
	if err != nil {
		return nil, err
	}
	return Application{Applicable: applicable, Args: args, Sort: sort}, nil
}

func parseLookup(n node) (Term, error) {
	field, err := n.str("field")
	if err != nil {
		return nil, err
	}
	fvf, err := n.term("fieldValueFunction")
	if err != nil {
		return nil, err
	}
	receiver, err := n.term("receiver")
	if err != nil {
		return nil, err
	}
	return Lookup{Field: field, FieldValueFunction: fvf, Receiver: receiver}, nil
}

func parsePredicateLookup(n node) (Term, error) {
	predicate, err := n.str("predicate")
	if err != nil {
		return nil, err
	}
	psf, err := n.term("predicateSnapFunction")
	if err != nil {
		return nil, err
	}
	args, err := n.terms("args")
	if err != nil {
		return nil, err
	}
	return PredicateLookup{Predicate: predicate, PredicateSnapFunction: psf, Args: args}, nil
}

func parseIte(n node) (Term, error) {
	cond, err := n.term("cond")
	if err != nil {
		return nil, err
	}
	then, err := n.term("thenBranch")
	if err != nil {
		return nil, err
	}
	els, err := n.term("elseBranch")
	if err != nil {
		return nil, err
	}
	return Ite{Condition: cond, Then: then, Else: els}, nil
}

func parseLet(n node) (Term, error) {
	items, err := n.list("bindings")
	if err != nil {
		return nil, err
	}
	bindings := make([]Binding, 0, len(items))
	for _, item := range items {
		b, err := asNode(n.variant, item)
		if err != nil {
			return nil, err
		}
		rawVar, err := b.required("var")
		if err != nil {
			return nil, err
		}
		variable, err := parseVariable(n.variant, "var", rawVar)
		if err != nil {
			return nil, err
		}
		value, err := b.term("value")
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Var: variable, Value: value})
	}
	body, err := n.term("body")
	if err != nil {
		return nil, err
	}
	return Let{Bindings: bindings, Body: body}, nil
}

func parseSortWrapper(n node) (Term, error) {
	term, err := n.term("term")
	if err != nil {
		return nil, err
	}
	sort, err := n.sortValue("sort")
	if err != nil {
		return nil, err
	}
	return SortWrapper{Term: term, Sort: sort}, nil
}

func parseSeqRanged(n node) (Term, error) {
	low, err := n.term("lhs")
	if err != nil {
		return nil, err
	}
	high, err := n.term("rhs")
	if err != nil {
		return nil, err
	}
	return SeqRanged{Low: low, High: high}, nil
}

func parseSeqUpdate(n node) (Term, error) {
	seq, err := n.term("seq")
	if err != nil {
		return nil, err
	}
	index, err := n.term("index")
	if err != nil {
		return nil, err
	}
	value, err := n.term("value")
	if err != nil {
		return nil, err
	}
	return SeqUpdate{Seq: seq, Index: index, Value: value}, nil
}
