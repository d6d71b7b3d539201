package jsonschema

// allOfState is `allOf`'s compiled state: the subschema keys in declared
// order.
type allOfState struct {
	keys []SchemaKey
}

// allOfKeyword implements `allOf`: the instance must validate against every
// listed subschema.
type allOfKeyword struct{}

func (allOfKeyword) Name() string { return "allOf" }

func (allOfKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	arr, ok := v.AsArray()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "allOf must be an array"}
	}
	st := &allOfState{keys: make([]SchemaKey, len(arr))}
	for i := range arr {
		key, ok := cc.Subschema(indexPointer("allOf", i))
		if !ok {
			return false, nil, &CompileError{Kind: ErrKindReference, Detail: "allOf subschema not reserved"}
		}
		st.keys[i] = key
	}
	return true, st, nil
}

func (allOfKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*allOfState)
	node := leaf(ec, "allOf", true)
	for i, key := range st.keys {
		child, err := evaluateSubschema(ec, indexPointer("allOf", i), key, instance)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
		if !child.Valid {
			node.Valid = false
			if ec.ShortCircuit() {
				break
			}
		}
	}
	if !node.Valid {
		node.Error = NewEvaluationError("allOf", "allOf", "value does not satisfy all of the required schemas")
	}
	return node, nil
}

func (allOfKeyword) Subschemas(v Value) ([]string, error) { return arrayPointers(v, "allOf") }
