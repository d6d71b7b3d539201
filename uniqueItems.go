package jsonschema

import (
	"fmt"
	"strings"
)

type uniqueItemsState struct {
	enabled bool
}

// uniqueItemsKeyword implements `uniqueItems` via pairwise Value.Equal,
// which already defines structural equality across property order and
// numeric representation (spec.md §4.3).
type uniqueItemsKeyword struct{}

func (uniqueItemsKeyword) Name() string { return "uniqueItems" }

func (uniqueItemsKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "uniqueItems must be a boolean"}
	}
	if !b {
		return false, nil, nil
	}
	return true, &uniqueItemsState{enabled: true}, nil
}

func (uniqueItemsKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	arr, ok := instance.AsArray()
	if !ok || len(arr) < 2 {
		return leaf(ec, "uniqueItems", true), nil
	}
	var duplicates []string
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if arr[i].Equal(arr[j], ec.Numbers()) {
				duplicates = append(duplicates, fmt.Sprintf("(%d, %d)", i, j))
			}
		}
	}
	if len(duplicates) == 0 {
		return leaf(ec, "uniqueItems", true), nil
	}
	n := leaf(ec, "uniqueItems", false)
	n.Error = NewEvaluationError("uniqueItems", "uniqueItems", "duplicate items at {duplicates}", map[string]any{"duplicates": strings.Join(duplicates, ", ")})
	return n, nil
}
