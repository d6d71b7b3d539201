package jsonschema

type propertyNamesState struct {
	key SchemaKey
}

// propertyNamesKeyword implements `propertyNames`: every instance property
// name, wrapped as a string Value, validates against the subschema.
type propertyNamesKeyword struct{}

func (propertyNamesKeyword) Name() string { return "propertyNames" }

func (propertyNamesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("propertyNames")
	if !ok {
		return false, nil, nil
	}
	return true, &propertyNamesState{key: key}, nil
}

func (propertyNamesKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("propertyNames"); !present {
		return nil, nil
	}
	return []string{"propertyNames"}, nil
}

func (propertyNamesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*propertyNamesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "propertyNames", true), nil
	}

	root := leaf(ec, "propertyNames", true)
	var invalid []string
	for _, name := range obj.Keys() {
		child, err := evaluateAtInstanceChild(ec, "propertyNames", name, st.key, String(name))
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
		root.Error = NewEvaluationError("propertyNames", "propertyNames", "property names {properties} do not match the schema", map[string]any{"properties": invalid})
	}
	return root, nil
}
