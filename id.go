package jsonschema

import "regexp"

// anchorNameRe is the plain-name grammar $anchor and $dynamicAnchor values
// must match: a letter or underscore followed by letters, digits, or
// "._:-".
var anchorNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._:-]*$`)

// idKeyword implements `$id`: the primary identifier capability consulted
// by identify.go during T1. It never contributes to evaluation - Compile
// always reports applied=false so Evaluate is never called.
type idKeyword struct{}

func (idKeyword) Name() string { return "$id" }

func (idKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (idKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (idKeyword) Identify(v Value) (string, bool, error) {
	obj, ok := v.AsObject()
	if !ok {
		return "", false, nil
	}
	member, present := obj.Get("$id")
	if !present {
		return "", false, nil
	}
	s, ok := member.AsString()
	if !ok {
		return "", false, &CompileError{Kind: ErrKindInvalidType, Detail: "$id must be a string"}
	}
	return s, true, nil
}

// legacyIDKeyword implements Draft-4 style `id` (no dollar sign), kept for
// documents written against older dialects that still use it as the
// primary identifier.
type legacyIDKeyword struct{}

func (legacyIDKeyword) Name() string { return "id" }

func (legacyIDKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (legacyIDKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (legacyIDKeyword) Identify(v Value) (string, bool, error) {
	obj, ok := v.AsObject()
	if !ok {
		return "", false, nil
	}
	member, present := obj.Get("id")
	if !present {
		return "", false, nil
	}
	s, ok := member.AsString()
	if !ok {
		return "", false, &CompileError{Kind: ErrKindInvalidType, Detail: "id must be a string"}
	}
	return s, true, nil
}

// anchorKeyword implements `$anchor`: a plain-name handle onto this
// location that does not participate in dynamic scoping.
type anchorKeyword struct{}

func (anchorKeyword) Name() string { return "$anchor" }

func (anchorKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (anchorKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (anchorKeyword) Anchors(v Value) ([]AnchorDecl, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	member, present := obj.Get("$anchor")
	if !present {
		return nil, nil
	}
	s, ok := member.AsString()
	if !ok {
		return nil, &CompileError{Kind: ErrKindInvalidType, Detail: "$anchor must be a string"}
	}
	if !anchorNameRe.MatchString(s) {
		return nil, &CompileError{Kind: ErrKindInvalidAnchor, Detail: "$anchor " + s + " does not match ^[A-Za-z_][A-Za-z0-9._:-]*$"}
	}
	return []AnchorDecl{{Name: s}}, nil
}

// dynamicAnchorKeyword implements `$dynamicAnchor`: a plain-name handle
// that additionally joins the evaluator's dynamic-anchor stack on descent
// (spec.md §4.7), consulted by $dynamicRef.
type dynamicAnchorKeyword struct{}

func (dynamicAnchorKeyword) Name() string { return "$dynamicAnchor" }

func (dynamicAnchorKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (dynamicAnchorKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (dynamicAnchorKeyword) Anchors(v Value) ([]AnchorDecl, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	member, present := obj.Get("$dynamicAnchor")
	if !present {
		return nil, nil
	}
	s, ok := member.AsString()
	if !ok {
		return nil, &CompileError{Kind: ErrKindInvalidType, Detail: "$dynamicAnchor must be a string"}
	}
	if !anchorNameRe.MatchString(s) {
		return nil, &CompileError{Kind: ErrKindInvalidAnchor, Detail: "$dynamicAnchor " + s + " does not match ^[A-Za-z_][A-Za-z0-9._:-]*$"}
	}
	return []AnchorDecl{{Name: s, Dynamic: true}}, nil
}

// defsKeyword implements `$defs`: a bag of schemas with no applicator
// semantics of its own. Its only job is to make every definition reachable
// during T1's identify/anchor walk, so a `$ref`/`$dynamicAnchor` pointing
// into `$defs/name` resolves even when nothing else in the document embeds
// that definition through an applicator keyword.
type defsKeyword struct{}

func (defsKeyword) Name() string { return "$defs" }

func (defsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (defsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (defsKeyword) Subschemas(v Value) ([]string, error) { return objectPointers(v, "$defs") }

// legacyDefsKeyword implements Draft-4 through Draft-7's `definitions`,
// `$defs`'s predecessor name, for the same reason.
type legacyDefsKeyword struct{}

func (legacyDefsKeyword) Name() string { return "definitions" }

func (legacyDefsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (legacyDefsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	return nil, nil
}

func (legacyDefsKeyword) Subschemas(v Value) ([]string, error) { return objectPointers(v, "definitions") }

// schemaKeyword implements `$schema`: the document-level dialect override
// consulted by DialectRegistry.Detect/DetectOverride during T1.
type schemaKeyword struct{}

func (schemaKeyword) Name() string { return "$schema" }

func (schemaKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (schemaKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (schemaKeyword) DetectDialect(v Value) (string, bool, error) {
	obj, ok := v.AsObject()
	if !ok {
		return "", false, nil
	}
	member, present := obj.Get("$schema")
	if !present {
		return "", false, nil
	}
	s, ok := member.AsString()
	if !ok {
		return "", false, &CompileError{Kind: ErrKindInvalidType, Detail: "$schema must be a string"}
	}
	return s, true, nil
}
