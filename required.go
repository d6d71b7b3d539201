package jsonschema

import "strings"

type requiredState struct {
	names []string
}

// requiredKeyword implements `required`: every listed name must be an
// instance object member.
type requiredKeyword struct{}

func (requiredKeyword) Name() string { return "required" }

func (requiredKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	arr, ok := v.AsArray()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "required must be an array"}
	}
	names := make([]string, len(arr))
	for i, e := range arr {
		s, ok := e.AsString()
		if !ok {
			return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "required must contain only strings"}
		}
		names[i] = s
	}
	return true, &requiredState{names: names}, nil
}

func (requiredKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*requiredState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "required", true), nil
	}
	var missing []string
	for _, name := range st.names {
		if _, present := obj.Get(name); !present {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return leaf(ec, "required", true), nil
	}
	n := leaf(ec, "required", false)
	if len(missing) == 1 {
		n.Error = NewEvaluationError("required", "required", "required property {property} is missing", map[string]any{"property": missing[0]})
	} else {
		n.Error = NewEvaluationError("required", "required_multi", "required properties {properties} are missing", map[string]any{"properties": strings.Join(missing, ", ")})
	}
	return n, nil
}
