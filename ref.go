package jsonschema

// refState is $ref's compiled state: the statically resolved target key.
type refState struct {
	target SchemaKey
}

// refKeyword implements `$ref`. Resolution to a target SchemaKey already
// happened in T3 (reference.go); Compile only retrieves it.
type refKeyword struct{}

func (refKeyword) Name() string { return "$ref" }

func (refKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	ref, ok := cc.Reference("$ref")
	if !ok {
		return false, nil, nil
	}
	return true, &refState{target: ref.Target}, nil
}

func (refKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*refState)
	node, err := evaluateSubschema(ec, "$ref", st.target, instance)
	if err != nil {
		return nil, err
	}
	node.Keyword = "$ref"
	return node, nil
}

func (refKeyword) References(v Value) ([]RefDecl, error) {
	return refDeclFor(v, "$ref", false)
}

// dynamicRefState is `$dynamicRef`'s compiled state: the statically
// resolved fallback target plus the plain anchor name to try first against
// the evaluator's dynamic-anchor stack (spec.md §4.7).
type dynamicRefState struct {
	anchorName string
	fallback   SchemaKey
}

// dynamicRefKeyword implements `$dynamicRef`: resolves against the
// dynamic-anchor stack first, falling back to the static reference
// resolved at compile time.
type dynamicRefKeyword struct{}

func (dynamicRefKeyword) Name() string { return "$dynamicRef" }

func (dynamicRefKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	ref, ok := cc.Reference("$dynamicRef")
	if !ok {
		return false, nil, nil
	}
	_, fragment := splitRef(ref.RawTarget)
	st := &dynamicRefState{fallback: ref.Target}
	if fragment != "" && !isJSONPointer(fragment) {
		st.anchorName = fragment
	}
	return true, st, nil
}

func (dynamicRefKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*dynamicRefState)
	target := st.fallback
	if st.anchorName != "" {
		if key, ok := ec.resolveDynamicAnchor(st.anchorName); ok {
			target = key
		}
	}
	node, err := evaluateSubschema(ec, "$dynamicRef", target, instance)
	if err != nil {
		return nil, err
	}
	node.Keyword = "$dynamicRef"
	return node, nil
}

func (dynamicRefKeyword) References(v Value) ([]RefDecl, error) {
	return refDeclFor(v, "$dynamicRef", true)
}

// recursiveAnchorName is the fixed dynamic-anchor-stack key Draft 2019-09's
// unnamed `$recursiveAnchor`/`$recursiveRef` pair share, since that dialect
// predates named dynamic anchors.
const recursiveAnchorName = "\x00recursiveAnchor"

// recursiveAnchorKeyword implements Draft 2019-09's `$recursiveAnchor: true`
// as a dynamic anchor under a fixed internal name.
type recursiveAnchorKeyword struct{}

func (recursiveAnchorKeyword) Name() string { return "$recursiveAnchor" }

func (recursiveAnchorKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) { return false, nil, nil }

func (recursiveAnchorKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) { return nil, nil }

func (recursiveAnchorKeyword) Anchors(v Value) ([]AnchorDecl, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	member, present := obj.Get("$recursiveAnchor")
	if !present {
		return nil, nil
	}
	b, _ := member.AsBool()
	if !b {
		return nil, nil
	}
	return []AnchorDecl{{Name: recursiveAnchorName, Dynamic: true}}, nil
}

// recursiveRefKeyword implements Draft 2019-09's `$recursiveRef`, the
// predecessor of `$dynamicRef` restricted to a single, unnamed anchor.
type recursiveRefKeyword struct{}

func (recursiveRefKeyword) Name() string { return "$recursiveRef" }

func (recursiveRefKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	ref, ok := cc.Reference("$recursiveRef")
	if !ok {
		return false, nil, nil
	}
	return true, &dynamicRefState{anchorName: recursiveAnchorName, fallback: ref.Target}, nil
}

func (recursiveRefKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*dynamicRefState)
	target := st.fallback
	if key, ok := ec.resolveDynamicAnchor(st.anchorName); ok {
		target = key
	}
	node, err := evaluateSubschema(ec, "$recursiveRef", target, instance)
	if err != nil {
		return nil, err
	}
	node.Keyword = "$recursiveRef"
	return node, nil
}

func (recursiveRefKeyword) References(v Value) ([]RefDecl, error) {
	return refDeclFor(v, "$recursiveRef", true)
}

func refDeclFor(v Value, keyword string, dynamic bool) ([]RefDecl, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	member, present := obj.Get(keyword)
	if !present {
		return nil, nil
	}
	s, ok := member.AsString()
	if !ok {
		return nil, &CompileError{Kind: ErrKindInvalidType, Detail: keyword + " must be a string"}
	}
	return []RefDecl{{Keyword: keyword, Target: s, Dynamic: dynamic}}, nil
}
