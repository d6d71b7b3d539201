package jsonschema

// anyOfState is `anyOf`'s compiled state: the subschema keys in declared
// order.
type anyOfState struct {
	keys []SchemaKey
}

// anyOfKeyword implements `anyOf`: the instance must validate against at
// least one listed subschema.
type anyOfKeyword struct{}

func (anyOfKeyword) Name() string { return "anyOf" }

func (anyOfKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	arr, ok := v.AsArray()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "anyOf must be an array"}
	}
	st := &anyOfState{keys: make([]SchemaKey, len(arr))}
	for i := range arr {
		key, ok := cc.Subschema(indexPointer("anyOf", i))
		if !ok {
			return false, nil, &CompileError{Kind: ErrKindReference, Detail: "anyOf subschema not reserved"}
		}
		st.keys[i] = key
	}
	return true, st, nil
}

func (anyOfKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*anyOfState)
	node := leaf(ec, "anyOf", false)
	for i, key := range st.keys {
		child, err := evaluateSubschema(ec, indexPointer("anyOf", i), key, instance)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
		if child.Valid {
			node.Valid = true
			if ec.ShortCircuit() {
				break
			}
		}
	}
	if !node.Valid {
		node.Error = NewEvaluationError("anyOf", "anyOf", "value does not satisfy any of the allowed schemas")
	}
	return node, nil
}

func (anyOfKeyword) Subschemas(v Value) ([]string, error) { return arrayPointers(v, "anyOf") }
