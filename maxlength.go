package jsonschema

import "unicode/utf8"

type maxLengthState struct {
	limit int
}

// maxLengthKeyword implements `maxLength`.
type maxLengthKeyword struct{}

func (maxLengthKeyword) Name() string { return "maxLength" }

func (maxLengthKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	limit, err := nonNegativeInt(cc, v, "maxLength")
	if err != nil {
		return false, nil, err
	}
	return true, &maxLengthState{limit: limit}, nil
}

func (maxLengthKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*maxLengthState)
	s, ok := instance.AsString()
	if !ok {
		return leaf(ec, "maxLength", true), nil
	}
	length := utf8.RuneCountInString(s)
	if length <= st.limit {
		return leaf(ec, "maxLength", true), nil
	}
	n := leaf(ec, "maxLength", false)
	n.Error = NewEvaluationError("maxLength", "maxLength", "length {length} is greater than {limit}", map[string]any{"length": length, "limit": st.limit})
	return n, nil
}
