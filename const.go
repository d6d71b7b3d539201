package jsonschema

type constState struct {
	handle ValueHandle
}

// constKeyword implements `const`: the instance must structurally equal the
// single required value.
type constKeyword struct{}

func (constKeyword) Name() string { return "const" }

func (constKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	return true, &constState{handle: cc.Interner().Intern(v)}, nil
}

func (constKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*constState)
	if instance.Equal(st.handle.Value(), ec.Numbers()) {
		return leaf(ec, "const", true), nil
	}
	n := leaf(ec, "const", false)
	n.Error = NewEvaluationError("const", "const", "value {value} does not equal the required constant", map[string]any{"value": instance.Native(ec.Numbers())})
	return n, nil
}
