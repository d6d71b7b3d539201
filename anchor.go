package jsonschema

// collectAnchors asks every anchorer-capable keyword in dialect what
// anchors v declares at this location.
func collectAnchors(dialect *Dialect, v Value) ([]AnchorDecl, error) {
	if dialect == nil {
		return nil, nil
	}
	var out []AnchorDecl
	for _, kw := range dialect.Keywords {
		an, ok := kw.(anchorer)
		if !ok {
			continue
		}
		decls, err := an.Anchors(v)
		if err != nil {
			return nil, err
		}
		out = append(out, decls...)
	}
	return out, nil
}
