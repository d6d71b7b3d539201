package jsonschema

// minimumKeyword implements `minimum`: inclusive lower bound.
type minimumKeyword struct{}

func (minimumKeyword) Name() string { return "minimum" }

func (minimumKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	return compileBound(cc, v, "minimum")
}

func (minimumKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*boundState)
	key, _, ok := instance.AsNumber()
	if !ok {
		return leaf(ec, "minimum", true), nil
	}
	value := ec.Numbers().Rat(key)
	if value.Cmp(st.limit) >= 0 {
		return leaf(ec, "minimum", true), nil
	}
	n := leaf(ec, "minimum", false)
	n.Error = NewEvaluationError("minimum", "minimum", "value {value} must be >= {limit}", map[string]any{"value": FormatRat(value), "limit": st.text})
	return n, nil
}
