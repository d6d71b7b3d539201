package jsonschema

type minPropertiesState struct {
	limit int
}

// minPropertiesKeyword implements `minProperties`.
type minPropertiesKeyword struct{}

func (minPropertiesKeyword) Name() string { return "minProperties" }

func (minPropertiesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	limit, err := nonNegativeInt(cc, v, "minProperties")
	if err != nil {
		return false, nil, err
	}
	return true, &minPropertiesState{limit: limit}, nil
}

func (minPropertiesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*minPropertiesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "minProperties", true), nil
	}
	if obj.Len() >= st.limit {
		return leaf(ec, "minProperties", true), nil
	}
	n := leaf(ec, "minProperties", false)
	n.Error = NewEvaluationError("minProperties", "minProperties", "object has {count} properties, fewer than {limit}", map[string]any{"count": obj.Len(), "limit": st.limit})
	return n, nil
}
