package jsonschema

type unevaluatedItemsState struct {
	key SchemaKey
}

// unevaluatedItemsKeyword implements `unevaluatedItems`: applies its
// subschema to every array index not already counted as evaluated by
// prefixItems/items/contains or any nested applicator visible via
// ec.Siblings() (registered last in dialect order, mirroring
// unevaluatedProperties).
type unevaluatedItemsKeyword struct{}

func (unevaluatedItemsKeyword) Name() string { return "unevaluatedItems" }

func (unevaluatedItemsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("unevaluatedItems")
	if !ok {
		return false, nil, nil
	}
	return true, &unevaluatedItemsState{key: key}, nil
}

func (unevaluatedItemsKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("unevaluatedItems"); !present {
		return nil, nil
	}
	return []string{"unevaluatedItems"}, nil
}

func (unevaluatedItemsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*unevaluatedItemsState)
	arr, ok := instance.AsArray()
	if !ok {
		return leaf(ec, "unevaluatedItems", true), nil
	}

	maxCount, all, indices := collectEvaluatedItems(ec.Siblings())
	root := leaf(ec, "unevaluatedItems", true)
	touched := make(map[int]bool)
	var invalid []int
	for i, item := range arr {
		if isEvaluatedIndex(i, maxCount, all, indices) {
			continue
		}
		touched[i] = true
		child, err := evaluateAtInstanceChild(ec, "unevaluatedItems", indexToken(i), st.key, item)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
		if !child.Valid {
			invalid = append(invalid, i)
			root.Valid = false
		}
	}
	root.Annotation = itemsAnnotation{indices: touched}
	if len(invalid) > 0 {
		root.Error = NewEvaluationError("unevaluatedItems", "unevaluatedItems", "unevaluated items at index {indices} do not match the schema", map[string]any{"indices": invalid})
	}
	return root, nil
}
