package jsonschema

// enumState is `enum`'s compiled state: the allowed values, interned so
// compiled schemas own a single handle rather than copying the Value tree.
type enumState struct {
	handles []ValueHandle
}

// enumKeyword implements `enum`: the instance must structurally equal one
// of the listed values (Value.Equal - numbers compare by value).
type enumKeyword struct{}

func (enumKeyword) Name() string { return "enum" }

func (enumKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	arr, ok := v.AsArray()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "enum must be an array"}
	}
	st := &enumState{handles: make([]ValueHandle, len(arr))}
	for i, e := range arr {
		st.handles[i] = cc.Interner().Intern(e)
	}
	return true, st, nil
}

func (enumKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*enumState)
	for _, h := range st.handles {
		if instance.Equal(h.Value(), ec.Numbers()) {
			return leaf(ec, "enum", true), nil
		}
	}
	n := leaf(ec, "enum", false)
	n.Error = NewEvaluationError("enum", "enum", "value {value} is not one of the allowed values", map[string]any{"value": instance.Native(ec.Numbers())})
	return n, nil
}
