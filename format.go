package jsonschema

type formatState struct {
	name string
}

// formatKeyword implements `format`: looks up the named validator in the
// global Formats table (formats.go, credited port), annotating the instance
// with the format name and optionally asserting per
// Context.AssertFormat/Builder.WithAssertFormat.
type formatKeyword struct{}

func (formatKeyword) Name() string { return "format" }

func (formatKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	s, ok := v.AsString()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "format must be a string"}
	}
	return true, &formatState{name: s}, nil
}

func (formatKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*formatState)
	validate, known := Formats[st.name]
	if !known {
		return annotated(ec, "format", st.name), nil
	}
	native := instance.Native(ec.Numbers())
	if validate(native) {
		return annotated(ec, "format", st.name), nil
	}
	if !ec.AssertFormat() {
		return annotated(ec, "format", st.name), nil
	}
	n := leaf(ec, "format", false)
	n.Error = NewEvaluationError("format", "format", "value does not match format {format}", map[string]any{"format": st.name})
	return n, nil
}
