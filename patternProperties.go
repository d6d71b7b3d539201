package jsonschema

import "github.com/dlclark/regexp2"

type patternPropertyEntry struct {
	pattern string
	re      *regexp2.Regexp
	key     SchemaKey
}

type patternPropertiesState struct {
	entries []patternPropertyEntry
}

// patternPropertiesKeyword implements `patternProperties`: every instance
// property whose name matches one or more of the listed ECMA-262 patterns
// validates against each matching subschema.
type patternPropertiesKeyword struct{}

func (patternPropertiesKeyword) Name() string { return "patternProperties" }

func (patternPropertiesKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	obj, ok := v.AsObject()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "patternProperties must be an object"}
	}
	st := &patternPropertiesState{}
	for _, pattern := range obj.Keys() {
		key, ok := cc.Subschema(memberPointer("patternProperties", pattern))
		if !ok {
			continue
		}
		re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
		if err != nil {
			return false, nil, &CompileError{Kind: ErrKindRegex, Detail: err.Error(), Wrapped: err}
		}
		st.entries = append(st.entries, patternPropertyEntry{pattern: pattern, re: re, key: key})
	}
	return true, st, nil
}

func (patternPropertiesKeyword) Subschemas(v Value) ([]string, error) {
	return objectPointers(v, "patternProperties")
}

func (patternPropertiesKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*patternPropertiesState)
	obj, ok := instance.AsObject()
	if !ok {
		return leaf(ec, "patternProperties", true), nil
	}

	root := leaf(ec, "patternProperties", true)
	evaluated := make(map[string]bool)
	var invalid []string
	for _, name := range obj.Keys() {
		member, _ := obj.Get(name)
		for _, entry := range st.entries {
			matched, err := entry.re.MatchString(name)
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
			evaluated[name] = true
			child, err := evaluateAtInstanceChild(ec, memberPointer("patternProperties", entry.pattern), name, entry.key, member)
			if err != nil {
				return nil, err
			}
			root.Children = append(root.Children, child)
			if !child.Valid {
				invalid = append(invalid, name)
				root.Valid = false
			}
		}
	}
	root.Annotation = propAnnotation{names: evaluated}
	if len(invalid) > 0 {
		root.Error = NewEvaluationError("patternProperties", "patternProperties", "properties {properties} do not match their pattern schemas", map[string]any{"properties": invalid})
	}
	return root, nil
}
