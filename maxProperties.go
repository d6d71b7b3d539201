package jsonschema

type maxPropertiesState struct {
	limit int
}

// maxPropertiesKeyword implements `maxProperties`.
type maxPropertiesKeyword struct{}

func (maxPropertiesKeyword) Name() string { return "maxProperties" }

func (maxPropertiesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	limit, err := nonNegativeInt(cc, v, "maxProperties")
	if err != nil {
		return false, nil, err
	}
	return true, &maxPropertiesState{limit: limit}, nil
}

func (maxPropertiesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*maxPropertiesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "maxProperties", true), nil
	}
	if obj.Len() <= st.limit {
		return leaf(ec, "maxProperties", true), nil
	}
	n := leaf(ec, "maxProperties", false)
	n.Error = NewEvaluationError("maxProperties", "maxProperties", "object has {count} properties, more than {limit}", map[string]any{"count": obj.Len(), "limit": st.limit})
	return n, nil
}
