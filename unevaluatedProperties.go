package jsonschema

type unevaluatedPropertiesState struct {
	key SchemaKey
}

// unevaluatedPropertiesKeyword implements `unevaluatedProperties`: applies
// its subschema to every instance property not already counted as evaluated
// by any sibling keyword of this schema object, including nested
// applicators (allOf, if/then/else, $ref, dependentSchemas, ...) - their
// propAnnotation nodes are reachable by walking ec.Siblings() because this
// keyword is registered last in dialect order.
type unevaluatedPropertiesKeyword struct{}

func (unevaluatedPropertiesKeyword) Name() string { return "unevaluatedProperties" }

func (unevaluatedPropertiesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("unevaluatedProperties")
	if !ok {
		return false, nil, nil
	}
	return true, &unevaluatedPropertiesState{key: key}, nil
}

func (unevaluatedPropertiesKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("unevaluatedProperties"); !present {
		return nil, nil
	}
	return []string{"unevaluatedProperties"}, nil
}

func (unevaluatedPropertiesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*unevaluatedPropertiesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "unevaluatedProperties", true), nil
	}

	already := collectEvaluatedProperties(ec.Siblings())
	root := leaf(ec, "unevaluatedProperties", true)
	evaluated := make(map[string]bool)
	var invalid []string
	for _, name := range obj.Keys() {
		if already[name] {
			continue
		}
		member, _ := obj.Get(name)
		evaluated[name] = true
		child, err := evaluateAtInstanceChild(ec, "unevaluatedProperties", name, st.key, member)
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
		root.Error = NewEvaluationError("unevaluatedProperties", "unevaluatedProperties", "unevaluated properties {properties} do not match the schema", map[string]any{"properties": invalid})
	}
	return root, nil
}
