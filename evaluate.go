package jsonschema

import (
	"fmt"
	"strings"
)

// Evaluate runs the compiled schema key against instance and renders the
// result in format, per spec.md §4.7/§6 (Engine's second public operation,
// alongside Compile).
func (e *Engine) Evaluate(key SchemaKey, instance Value, format OutputFormat) (*Output, error) {
	return e.evaluateWithArena(e.committed.arena, key, instance, format)
}

func (e *Engine) evaluateWithArena(arena *schemaArena, key SchemaKey, instance Value, format OutputFormat) (*Output, error) {
	ctx := newContext(e, arena, format, e.maxDepth)
	node, err := EvaluateSchema(ctx, key, instance)
	if err != nil {
		return nil, err
	}
	return buildOutput(node, format), nil
}

// EvaluateSchema is the recursive dispatcher every reference-following or
// subschema-descending keyword calls to evaluate a child schema key against
// instance at ctx's current location: it resolves the boolean-schema
// short-circuit, then walks the compiled schema's applied keywords in
// dialect order (spec.md §5 "keywords of a schema run in dialect-
// registration order"), aggregating their nodes by simple conjunction -
// composite keywords (allOf/anyOf/oneOf/not/...) apply their own
// aggregation rule on top by calling this once per branch and combining the
// results themselves.
func EvaluateSchema(ctx *Context, key SchemaKey, instance Value) (*Node, error) {
	cs := ctx.arena.get(key)
	if cs == nil {
		return nil, fmt.Errorf("%w: key %v", ErrUnresolvedReference, key)
	}
	if cs.IsBoolean {
		n := leaf(ctx, "", cs.BoolValue)
		if !cs.BoolValue {
			n.Error = NewEvaluationError("", "false_schema", "schema is `false`, no instance is valid")
		}
		return n, nil
	}

	for _, name := range cs.DynamicAnchors {
		ctx = ctx.pushDynamicAnchor(name, key)
	}

	root := &Node{
		KeywordLocation:         ctx.KeywordLocation(),
		AbsoluteKeywordLocation: ctx.AbsoluteKeywordLocation().String(),
		InstanceLocation:        ctx.InstanceLocation(),
		Valid:                   true,
	}
	if root.AbsoluteKeywordLocation == "" {
		root.AbsoluteKeywordLocation = cs.BaseURI.String()
	}

	for _, name := range cs.appliedKeywords() {
		kw, ok := cs.Dialect.Keyword(name)
		if !ok {
			continue
		}
		state, _ := cs.keywordState(name)
		kctx, err := ctx.descend("", name, cs.BaseURI)
		if err != nil {
			return nil, &EvaluateError{Pointer: ctx.KeywordLocation(), Location: cs.BaseURI.String(), Wrapped: err}
		}
		kctx.siblingRoot = root
		node, err := kw.Evaluate(kctx, state, instance)
		if err != nil {
			return nil, &EvaluateError{Pointer: kctx.KeywordLocation(), Location: cs.BaseURI.String(), Wrapped: err}
		}
		if node == nil {
			continue
		}
		root.Children = append(root.Children, node)
		if !node.Valid {
			root.Valid = false
			if ctx.ShortCircuit() {
				break
			}
		}
	}
	return root, nil
}

// evaluateSubschema resolves key's schema within the same instance document
// but does NOT advance the instance location - used by keywords that apply
// a subschema to the very same instance value (allOf, if/then/else, not,
// $ref, dependentSchemas, ...). keywordToken names the JSON Pointer segment
// the calling keyword occupies (e.g. "allOf/0", "$ref"), relative to the
// schema object that holds the keyword, so it replaces the keyword's own
// last segment of ctx's keyword location rather than nesting under it.
func evaluateSubschema(ctx *Context, keywordToken string, key SchemaKey, instance Value) (*Node, error) {
	cs := ctx.arena.get(key)
	base := ctx.AbsoluteKeywordLocation()
	if cs != nil {
		base = cs.BaseURI
	}
	parent := *ctx
	if i := strings.LastIndexByte(parent.keywordPointer, '/'); i >= 0 {
		parent.keywordPointer = parent.keywordPointer[:i]
	}
	kctx, err := parent.descend("", keywordToken, base)
	if err != nil {
		return nil, err
	}
	return EvaluateSchema(kctx, key, instance)
}

// evaluateAtInstanceChild resolves key's schema against instance, advancing
// both the keyword and instance location by token - used for properties,
// items, and any other keyword applying a subschema to a child instance
// value. keywordToken is relative to the schema object, as in
// evaluateSubschema.
func evaluateAtInstanceChild(ctx *Context, keywordToken, instanceToken string, key SchemaKey, child Value) (*Node, error) {
	cs := ctx.arena.get(key)
	base := ctx.AbsoluteKeywordLocation()
	if cs != nil {
		base = cs.BaseURI
	}
	parent := *ctx
	if i := strings.LastIndexByte(parent.keywordPointer, '/'); i >= 0 {
		parent.keywordPointer = parent.keywordPointer[:i]
	}
	kctx, err := parent.descend(instanceToken, keywordToken, base)
	if err != nil {
		return nil, err
	}
	return EvaluateSchema(kctx, key, child)
}
