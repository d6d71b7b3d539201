package jsonschema

type additionalPropertiesState struct {
	key SchemaKey
}

// additionalPropertiesKeyword implements `additionalProperties`: applies its
// subschema to every instance property not already named by `properties` or
// matched by `patternProperties` in the same schema object. Relies on
// dialect registration ordering those two keywords before this one so their
// propAnnotation is already present on ec.Siblings() (spec.md §4.7).
type additionalPropertiesKeyword struct{}

func (additionalPropertiesKeyword) Name() string { return "additionalProperties" }

func (additionalPropertiesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("additionalProperties")
	if !ok {
		return false, nil, nil
	}
	return true, &additionalPropertiesState{key: key}, nil
}

func (additionalPropertiesKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("additionalProperties"); !present {
		return nil, nil
	}
	return []string{"additionalProperties"}, nil
}

func (additionalPropertiesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*additionalPropertiesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "additionalProperties", true), nil
	}

	already := make(map[string]bool)
	for _, sib := range ec.Siblings() {
		if sib == nil || (sib.Keyword != "properties" && sib.Keyword != "patternProperties") {
			continue
		}
		if pa, ok := sib.Annotation.(propAnnotation); ok {
			for k := range pa.names {
				already[k] = true
			}
		}
	}
	root := leaf(ec, "additionalProperties", true)
	evaluated := make(map[string]bool)
	var invalid []string
	for _, name := range obj.Keys() {
		if already[name] {
			continue
		}
		member, _ := obj.Get(name)
		evaluated[name] = true
		child, err := evaluateAtInstanceChild(ec, "additionalProperties", name, st.key, member)
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
		root.Error = NewEvaluationError("additionalProperties", "additionalProperties", "additional properties {properties} do not match the schema", map[string]any{"properties": invalid})
	}
	return root, nil
}
