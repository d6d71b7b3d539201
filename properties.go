package jsonschema

type propertiesState struct {
	schemas map[string]SchemaKey
	order   []string
}

// propertiesKeyword implements `properties`: each instance property whose
// name also appears here validates against the matching subschema.
// Properties absent from the instance are not evaluated (2020-12 semantics;
// the resulting gap is what `required` exists to police).
type propertiesKeyword struct{}

func (propertiesKeyword) Name() string { return "properties" }

func (propertiesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	obj, ok := v.AsObject()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "properties must be an object"}
	}
	st := &propertiesState{schemas: make(map[string]SchemaKey, obj.Len()), order: obj.Keys()}
	for _, name := range st.order {
		key, ok := cc.Subschema(memberPointer("properties", name))
		if !ok {
			continue
		}
		st.schemas[name] = key
	}
	return true, st, nil
}

func (propertiesKeyword) Subschemas(v Value) ([]string, error) { return objectPointers(v, "properties") }

func (propertiesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*propertiesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "properties", true), nil
	}

	root := leaf(ec, "properties", true)
	evaluated := make(map[string]bool)
	var invalid []string
	for _, name := range st.order {
		key, has := st.schemas[name]
		if !has {
			continue
		}
		member, present := obj.Get(name)
		if !present {
			continue
		}
		evaluated[name] = true
		child, err := evaluateAtInstanceChild(ec, memberPointer("properties", name), name, key, member)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
		if !child.Valid {
			invalid = append(invalid, name)
			root.Valid = false
		}
	}
	root.Annotation = propAnnotation{names: evaluated}
	if len(invalid) > 0 {
		root.Error = NewEvaluationError("properties", "properties", "properties {properties} do not match their schemas", map[string]any{"properties": invalid})
	}
	return root, nil
}
