package jsonschema

type itemsState struct {
	key  SchemaKey
	skip int
}

// itemsKeyword implements `items`: every array element beyond the ones
// already covered by a sibling `prefixItems` validates against this single
// subschema.
type itemsKeyword struct{}

func (itemsKeyword) Name() string { return "items" }

func (itemsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("items")
	if !ok {
		return false, nil, nil
	}
	skip := 0
	if obj, ok := cc.Value().AsObject(); ok {
		if pi, present := obj.Get("prefixItems"); present {
			if arr, ok := pi.AsArray(); ok {
				skip = len(arr)
			}
		}
	}
	return true, &itemsState{key: key, skip: skip}, nil
}

func (itemsKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("items"); !present {
		return nil, nil
	}
	return []string{"items"}, nil
}

func (itemsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*itemsState)
	arr, ok := instance.AsArray()
	if !ok {
		return leaf(ec, "items", true), nil
	}

	root := leaf(ec, "items", true)
	var invalid []int
	for i := st.skip; i < len(arr); i++ {
		child, err := evaluateAtInstanceChild(ec, "items", indexToken(i), st.key, arr[i])
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
		if !child.Valid {
			invalid = append(invalid, i)
			root.Valid = false
		}
	}
	if len(arr) > st.skip {
		root.Annotation = itemsAnnotation{all: true}
	}
	if len(invalid) > 0 {
		root.Error = NewEvaluationError("items", "items", "items at index {indices} do not match the schema", map[string]any{"indices": invalid})
	}
	return root, nil
}
