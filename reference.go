package jsonschema

import "github.com/kaptinlin/jsonschema/uri"

// collectReferences asks every referencer-capable keyword in dialect what
// references v declares at this location.
func collectReferences(dialect *Dialect, v Value) ([]RefDecl, error) {
	if dialect == nil {
		return nil, nil
	}
	var out []RefDecl
	for _, kw := range dialect.Keywords {
		rf, ok := kw.(referencer)
		if !ok {
			continue
		}
		decls, err := rf.References(v)
		if err != nil {
			return nil, err
		}
		out = append(out, decls...)
	}
	return out, nil
}

// resolveReference implements T3 for a single reference: resolving
// ref.Target against fromBase yields one absolute URI regardless of whether
// it is a bare JSON-Pointer fragment, a `#name` anchor fragment, or a
// relative/absolute external URI - tx.Compile already knows how to compile
// the owning document (if needed) and look that exact URI up, so all three
// cases in spec.md §4.6's T3 collapse into the same call.
func resolveReference(tx *Transaction, ref RefDecl, fromKey SchemaKey, fromBase uri.Absolute) (*Reference, error) {
	target, err := uri.Resolve(fromBase, ref.Target)
	if err != nil {
		return nil, &CompileError{Kind: ErrKindReference, Pointer: ref.Pointer, Detail: err.Error(), Wrapped: err}
	}
	key, err := tx.Compile(target)
	if err != nil {
		return nil, err
	}
	return &Reference{
		Keyword:   ref.Keyword,
		From:      fromKey,
		FromPtr:   ref.Pointer,
		RawTarget: ref.Target,
		Target:    key,
		Dynamic:   ref.Dynamic,
	}, nil
}
