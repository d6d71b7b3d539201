package jsonschema

type dependentRequiredState struct {
	deps map[string][]string
}

// dependentRequiredKeyword implements `dependentRequired`: if key is present
// in the instance, every name in its list must also be present.
type dependentRequiredKeyword struct{}

func (dependentRequiredKeyword) Name() string { return "dependentRequired" }

func (dependentRequiredKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	obj, ok := v.AsObject()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "dependentRequired must be an object"}
	}
	st := &dependentRequiredState{deps: make(map[string][]string, obj.Len())}
	for _, key := range obj.Keys() {
		member, _ := obj.Get(key)
		arr, ok := member.AsArray()
		if !ok {
			return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "dependentRequired entries must be arrays of strings"}
		}
		names := make([]string, len(arr))
		for i, e := range arr {
			s, ok := e.AsString()
			if !ok {
				return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "dependentRequired entries must be arrays of strings"}
			}
			names[i] = s
		}
		st.deps[key] = names
	}
	return true, st, nil
}

func (dependentRequiredKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*dependentRequiredState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "dependentRequired", true), nil
	}

	missing := make(map[string][]string)
	for key, deps := range st.deps {
		if _, present := obj.Get(key); !present {
			continue
		}
		for _, name := range deps {
			if _, present := obj.Get(name); !present {
				missing[key] = append(missing[key], name)
			}
		}
	}
	if len(missing) == 0 {
		return leaf(ec, "dependentRequired", true), nil
	}
	n := leaf(ec, "dependentRequired", false)
	n.Error = NewEvaluationError("dependentRequired", "dependentRequired", "dependent required properties missing: {missing}", map[string]any{"missing": missing})
	return n, nil
}
