package jsonschema

type dependentSchemasState struct {
	schemas map[string]SchemaKey
	order   []string
}

// dependentSchemasKeyword implements `dependentSchemas`: if key is present
// in the instance, the whole instance validates against the matching
// subschema.
type dependentSchemasKeyword struct{}

func (dependentSchemasKeyword) Name() string { return "dependentSchemas" }

func (dependentSchemasKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	obj, ok := v.AsObject()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "dependentSchemas must be an object"}
	}
	st := &dependentSchemasState{schemas: make(map[string]SchemaKey, obj.Len()), order: obj.Keys()}
	for _, name := range st.order {
		key, ok := cc.Subschema(memberPointer("dependentSchemas", name))
		if !ok {
			continue
		}
		st.schemas[name] = key
	}
	return true, st, nil
}

func (dependentSchemasKeyword) Subschemas(v Value) ([]string, error) {
	return objectPointers(v, "dependentSchemas")
}

func (dependentSchemasKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*dependentSchemasState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "dependentSchemas", true), nil
	}

	root := leaf(ec, "dependentSchemas", true)
	var invalid []string
	for _, name := range st.order {
		key, has := st.schemas[name]
		if !has {
			continue
		}
		if _, present := obj.Get(name); !present {
			continue
		}
		child, err := evaluateSubschema(ec, memberPointer("dependentSchemas", name), key, instance)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
		if !child.Valid {
			invalid = append(invalid, name)
			root.Valid = false
		}
	}
	if len(invalid) > 0 {
		root.Error = NewEvaluationError("dependentSchemas", "dependentSchemas", "dependent schemas for {properties} do not match", map[string]any{"properties": invalid})
	}
	return root, nil
}
