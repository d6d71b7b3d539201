package jsonschema

type minItemsState struct {
	limit int
}

// minItemsKeyword implements `minItems`.
type minItemsKeyword struct{}

func (minItemsKeyword) Name() string { return "minItems" }

func (minItemsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	limit, err := nonNegativeInt(cc, v, "minItems")
	if err != nil {
		return false, nil, err
	}
	return true, &minItemsState{limit: limit}, nil
}

func (minItemsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*minItemsState)
	arr, ok := instance.AsArray()
	if !ok {
		return leaf(ec, "minItems", true), nil
	}
	if len(arr) >= st.limit {
		return leaf(ec, "minItems", true), nil
	}
	n := leaf(ec, "minItems", false)
	n.Error = NewEvaluationError("minItems", "minItems", "array has {count} items, fewer than {limit}", map[string]any{"count": len(arr), "limit": st.limit})
	return n, nil
}
