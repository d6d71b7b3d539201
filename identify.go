package jsonschema

import "github.com/kaptinlin/jsonschema/uri"

// resolveIdentifier asks every identifier-capable keyword in dialect whether
// v defines a primary identifier ($id, or a legacy plain-name id) and
// resolves it against base. It is an error ErrDuplicateID for more than one
// keyword to claim a primary identifier at the same location. When none do,
// base is returned unchanged.
func resolveIdentifier(dialect *Dialect, base uri.Absolute, v Value, pointer string) (uri.Absolute, error) {
	if dialect == nil {
		return base, nil
	}
	found := false
	result := base
	for _, kw := range dialect.Keywords {
		idf, ok := kw.(identifier)
		if !ok {
			continue
		}
		id, ok, err := idf.Identify(v)
		if err != nil {
			return base, &CompileError{Kind: ErrKindReference, Pointer: pointer, Detail: err.Error(), Wrapped: err}
		}
		if !ok {
			continue
		}
		if found {
			return base, &CompileError{Kind: ErrKindReference, Pointer: pointer, Detail: "duplicate primary identifier", Wrapped: ErrDuplicateID}
		}
		found = true
		resolved, err := uri.Resolve(base, id)
		if err != nil {
			return base, &CompileError{Kind: ErrKindReference, Pointer: pointer, Detail: err.Error(), Wrapped: err}
		}
		if frag, has := resolved.Fragment(); has && frag != "" {
			fragErr := &uri.Error{Kind: uri.FragmentedID, Detail: "$id must not carry a non-empty fragment: " + resolved.String()}
			return base, &CompileError{Kind: ErrKindReference, Pointer: pointer, Detail: fragErr.Error(), Wrapped: fragErr}
		}
		result = resolved.RootURI()
	}
	return result, nil
}
