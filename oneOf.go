package jsonschema

// oneOfState is `oneOf`'s compiled state: the subschema keys in declared
// order.
type oneOfState struct {
	keys []SchemaKey
}

// oneOfKeyword implements `oneOf`: the instance must validate against
// exactly one listed subschema. Never short-circuits - every branch must
// run to detect a multiple-match failure.
type oneOfKeyword struct{}

func (oneOfKeyword) Name() string { return "oneOf" }

func (oneOfKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	arr, ok := v.AsArray()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "oneOf must be an array"}
	}
	st := &oneOfState{keys: make([]SchemaKey, len(arr))}
	for i := range arr {
		key, ok := cc.Subschema(indexPointer("oneOf", i))
		if !ok {
			return false, nil, &CompileError{Kind: ErrKindReference, Detail: "oneOf subschema not reserved"}
		}
		st.keys[i] = key
	}
	return true, st, nil
}

func (oneOfKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*oneOfState)
	node := leaf(ec, "oneOf", false)
	for i, key := range st.keys {
		child, err := evaluateSubschema(ec, indexPointer("oneOf", i), key, instance)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	matches := countValid(node.Children)
	node.Valid = matches == 1
	if !node.Valid {
		node.Error = NewEvaluationError("oneOf", "oneOf", "value must satisfy exactly one schema, satisfied {count}", map[string]any{"count": matches})
	}
	return node, nil
}

func (oneOfKeyword) Subschemas(v Value) ([]string, error) { return arrayPointers(v, "oneOf") }
