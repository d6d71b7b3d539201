package jsonschema

import "unicode/utf8"

type minLengthState struct {
	limit int
}

// minLengthKeyword implements `minLength`: counts Unicode scalar values
// (runes), not UTF-16 code units or bytes, per spec.md §4.7.
type minLengthKeyword struct{}

func (minLengthKeyword) Name() string { return "minLength" }

func (minLengthKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	limit, err := nonNegativeInt(cc, v, "minLength")
	if err != nil {
		return false, nil, err
	}
	return true, &minLengthState{limit: limit}, nil
}

func (minLengthKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*minLengthState)
	s, ok := instance.AsString()
	if !ok {
		return leaf(ec, "minLength", true), nil
	}
	length := utf8.RuneCountInString(s)
	if length >= st.limit {
		return leaf(ec, "minLength", true), nil
	}
	n := leaf(ec, "minLength", false)
	n.Error = NewEvaluationError("minLength", "minLength", "length {length} is less than {limit}", map[string]any{"length": length, "limit": st.limit})
	return n, nil
}
