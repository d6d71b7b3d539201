package jsonschema

// exclusiveMaximumKeyword implements `exclusiveMaximum`: strict upper bound.
type exclusiveMaximumKeyword struct{}

func (exclusiveMaximumKeyword) Name() string { return "exclusiveMaximum" }

func (exclusiveMaximumKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	return compileBound(cc, v, "exclusiveMaximum")
}

func (exclusiveMaximumKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*boundState)
	key, _, ok := instance.AsNumber()
	if !ok {
		return leaf(ec, "exclusiveMaximum", true), nil
	}
	value := ec.Numbers().Rat(key)
	if value.Cmp(st.limit) < 0 {
		return leaf(ec, "exclusiveMaximum", true), nil
	}
	n := leaf(ec, "exclusiveMaximum", false)
	n.Error = NewEvaluationError("exclusiveMaximum", "exclusiveMaximum", "value {value} must be < {limit}", map[string]any{"value": FormatRat(value), "limit": st.text})
	return n, nil
}
