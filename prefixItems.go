package jsonschema

type prefixItemsState struct {
	keys []SchemaKey
}

// prefixItemsKeyword implements `prefixItems`: each array element up to
// len(prefixItems) validates against the subschema at the same index.
type prefixItemsKeyword struct{}

func (prefixItemsKeyword) Name() string { return "prefixItems" }

func (prefixItemsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	arr, ok := v.AsArray()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "prefixItems must be an array"}
	}
	st := &prefixItemsState{keys: make([]SchemaKey, len(arr))}
	for i := range arr {
		key, ok := cc.Subschema(indexPointer("prefixItems", i))
		if !ok {
			return false, nil, &CompileError{Kind: ErrKindReference, Detail: "prefixItems subschema not reserved"}
		}
		st.keys[i] = key
	}
	return true, st, nil
}

func (prefixItemsKeyword) Subschemas(v Value) ([]string, error) { return arrayPointers(v, "prefixItems") }

func (prefixItemsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*prefixItemsState)
	arr, ok := instance.AsArray()
	if !ok {
		return leaf(ec, "prefixItems", true), nil
	}

	root := leaf(ec, "prefixItems", true)
	n := len(st.keys)
	if n > len(arr) {
		n = len(arr)
	}
	var invalid []int
	for i := 0; i < n; i++ {
		child, err := evaluateAtInstanceChild(ec, indexPointer("prefixItems", i), indexToken(i), st.keys[i], arr[i])
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
		if !child.Valid {
			invalid = append(invalid, i)
			root.Valid = false
		}
	}
	root.Annotation = itemsAnnotation{count: n, all: n == len(arr)}
	if len(invalid) > 0 {
		root.Error = NewEvaluationError("prefixItems", "prefixItems", "items at index {indices} do not match prefixItems", map[string]any{"indices": invalid})
	}
	return root, nil
}
