package jsonschema

type notState struct {
	key SchemaKey
}

// notKeyword implements `not`: the instance must fail to validate against
// the subschema.
type notKeyword struct{}

func (notKeyword) Name() string { return "not" }

func (notKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("not")
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindReference, Detail: "not subschema not reserved"}
	}
	return true, &notState{key: key}, nil
}

func (notKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*notState)
	child, err := evaluateSubschema(ec, "not", st.key, instance)
	if err != nil {
		return nil, err
	}
	node := leaf(ec, "not", !child.Valid)
	node.Children = []*Node{child}
	if !node.Valid {
		node.Error = NewEvaluationError("not", "not", "value must not validate against the schema")
	}
	return node, nil
}

func (notKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("not"); present {
		return []string{"not"}, nil
	}
	return nil, nil
}
