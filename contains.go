package jsonschema

type containsState struct {
	key         SchemaKey
	minContains int
	maxContains int
	hasMax      bool
}

// containsKeyword implements `contains`/`minContains`/`maxContains` as one
// unit: minContains defaults to 1 (spec.md §4.7), since a bare `contains`
// with no minContains sibling still requires at least one match.
type containsKeyword struct{}

func (containsKeyword) Name() string { return "contains" }

func (containsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, ok := cc.Subschema("contains")
	if !ok {
		return false, nil, nil
	}
	st := &containsState{key: key, minContains: 1}
	if obj, ok := cc.Value().AsObject(); ok {
		if mc, present := obj.Get("minContains"); present {
			n, err := nonNegativeInt(cc, mc, "minContains")
			if err != nil {
				return false, nil, err
			}
			st.minContains = n
		}
		if mc, present := obj.Get("maxContains"); present {
			n, err := nonNegativeInt(cc, mc, "maxContains")
			if err != nil {
				return false, nil, err
			}
			st.maxContains = n
			st.hasMax = true
		}
	}
	return true, st, nil
}

func (containsKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("contains"); !present {
		return nil, nil
	}
	return []string{"contains"}, nil
}

func (containsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*containsState)
	arr, ok := instance.AsArray()
	if !ok {
		return leaf(ec, "contains", true), nil
	}

	root := leaf(ec, "contains", true)
	matched := make(map[int]bool)
	for i, item := range arr {
		child, err := evaluateAtInstanceChild(ec, "contains", indexToken(i), st.key, item)
		if err != nil {
			return nil, err
		}
		if child.Valid {
			matched[i] = true
			root.Children = append(root.Children, child)
		}
	}
	root.Annotation = itemsAnnotation{indices: matched}

	count := len(matched)
	if count < st.minContains {
		root.Valid = false
		root.Error = NewEvaluationError("contains", "contains", "array contains {count} matching items, fewer than {min}", map[string]any{"count": count, "min": st.minContains})
		return root, nil
	}
	if st.hasMax && count > st.maxContains {
		root.Valid = false
		root.Error = NewEvaluationError("contains", "contains", "array contains {count} matching items, more than {max}", map[string]any{"count": count, "max": st.maxContains})
		return root, nil
	}
	return root, nil
}
