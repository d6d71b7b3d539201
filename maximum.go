package jsonschema

// maximumKeyword implements `maximum`: inclusive upper bound.
type maximumKeyword struct{}

func (maximumKeyword) Name() string { return "maximum" }

func (maximumKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	return compileBound(cc, v, "maximum")
}

func (maximumKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*boundState)
	key, _, ok := instance.AsNumber()
	if !ok {
		return leaf(ec, "maximum", true), nil
	}
	value := ec.Numbers().Rat(key)
	if value.Cmp(st.limit) <= 0 {
		return leaf(ec, "maximum", true), nil
	}
	n := leaf(ec, "maximum", false)
	n.Error = NewEvaluationError("maximum", "maximum", "value {value} must be <= {limit}", map[string]any{"value": FormatRat(value), "limit": st.text})
	return n, nil
}
