package jsonschema

type maxItemsState struct {
	limit int
}

// maxItemsKeyword implements `maxItems`.
type maxItemsKeyword struct{}

func (maxItemsKeyword) Name() string { return "maxItems" }

func (maxItemsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	limit, err := nonNegativeInt(cc, v, "maxItems")
	if err != nil {
		return false, nil, err
	}
	return true, &maxItemsState{limit: limit}, nil
}

func (maxItemsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*maxItemsState)
	arr, ok := instance.AsArray()
	if !ok {
		return leaf(ec, "maxItems", true), nil
	}
	if len(arr) <= st.limit {
		return leaf(ec, "maxItems", true), nil
	}
	n := leaf(ec, "maxItems", false)
	n.Error = NewEvaluationError("maxItems", "maxItems", "array has {count} items, more than {limit}", map[string]any{"count": len(arr), "limit": st.limit})
	return n, nil
}
