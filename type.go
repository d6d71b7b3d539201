package jsonschema

import "strings"

// typeState is `type`'s compiled state: the allowed type names, accepting
// "number" for any "integer" instance per spec.md's vocabulary.
type typeState struct {
	allowed []string
}

// typeKeyword implements `type`, single string or array form.
type typeKeyword struct{}

func (typeKeyword) Name() string { return "type" }

func (typeKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		return true, &typeState{allowed: []string{s}}, nil
	case KindArray:
		arr, _ := v.AsArray()
		names := make([]string, len(arr))
		for i, e := range arr {
			s, ok := e.AsString()
			if !ok {
				return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "type array must contain only strings"}
			}
			names[i] = s
		}
		return true, &typeState{allowed: names}, nil
	default:
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "type must be a string or array of strings"}
	}
}

func (typeKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*typeState)
	actual := instance.TypeName(ec.Numbers())
	for _, want := range st.allowed {
		if want == actual || (want == "number" && actual == "integer") {
			return leaf(ec, "type", true), nil
		}
	}
	n := leaf(ec, "type", false)
	n.Error = NewEvaluationError("type", "type", "value must be of type {expected}, got {actual}", map[string]any{
		"expected": strings.Join(st.allowed, ", "),
		"actual":   actual,
	})
	return n, nil
}
