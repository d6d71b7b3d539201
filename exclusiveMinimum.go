package jsonschema

// exclusiveMinimumKeyword implements `exclusiveMinimum`: strict lower bound.
type exclusiveMinimumKeyword struct{}

func (exclusiveMinimumKeyword) Name() string { return "exclusiveMinimum" }

func (exclusiveMinimumKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	return compileBound(cc, v, "exclusiveMinimum")
}

func (exclusiveMinimumKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*boundState)
	key, _, ok := instance.AsNumber()
	if !ok {
		return leaf(ec, "exclusiveMinimum", true), nil
	}
	value := ec.Numbers().Rat(key)
	if value.Cmp(st.limit) > 0 {
		return leaf(ec, "exclusiveMinimum", true), nil
	}
	n := leaf(ec, "exclusiveMinimum", false)
	n.Error = NewEvaluationError("exclusiveMinimum", "exclusiveMinimum", "value {value} must be > {limit}", map[string]any{"value": FormatRat(value), "limit": st.text})
	return n, nil
}
