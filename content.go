package jsonschema

import "encoding/base64"

type contentState struct {
	encoding   string
	hasSchema  bool
	schemaKey  SchemaKey
	mediaType  string
}

// contentKeyword implements `contentEncoding`/`contentMediaType`/
// `contentSchema` as one unit, the way `if`/`then`/`else` are modeled: all
// three describe one logical operation (decode, then optionally parse and
// validate structured content embedded in a string), so one Keyword owns
// the whole sibling group rather than three independent ones.
type contentKeyword struct{}

func (contentKeyword) Name() string { return "contentEncoding" }

func (contentKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	encoding, ok := v.AsString()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "contentEncoding must be a string"}
	}
	st := &contentState{encoding: encoding}
	if obj, ok := cc.Value().AsObject(); ok {
		if mt, present := obj.Get("contentMediaType"); present {
			s, ok := mt.AsString()
			if !ok {
				return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "contentMediaType must be a string"}
			}
			st.mediaType = s
		}
		if _, present := obj.Get("contentSchema"); present {
			key, ok := cc.Subschema("contentSchema")
			if ok {
				st.schemaKey = key
				st.hasSchema = true
			}
		}
	}
	return true, st, nil
}

func (contentKeyword) Subschemas(v Value) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	if _, present := obj.Get("contentSchema"); !present {
		return nil, nil
	}
	return []string{"contentSchema"}, nil
}

func (contentKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*contentState)
	s, ok := instance.AsString()
	if !ok {
		return leaf(ec, "contentEncoding", true), nil
	}

	var decoded []byte
	switch st.encoding {
	case "base64":
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			n := leaf(ec, "contentEncoding", false)
			n.Error = NewEvaluationError("contentEncoding", "contentEncoding", "value is not valid base64", nil)
			return n, nil
		}
		decoded = b
	default:
		decoded = []byte(s)
	}

	if st.mediaType != "application/json" && !st.hasSchema {
		return leaf(ec, "contentEncoding", true), nil
	}

	parsed, err := DecodeJSON(decoded, ec.Numbers())
	if err != nil {
		n := leaf(ec, "contentMediaType", false)
		n.Error = NewEvaluationError("contentMediaType", "contentMediaType", "decoded content is not valid {mediaType}", map[string]any{"mediaType": st.mediaType})
		return n, nil
	}
	if !st.hasSchema {
		return annotated(ec, "contentEncoding", parsed), nil
	}

	child, err := evaluateSubschema(ec, "contentSchema", st.schemaKey, parsed)
	if err != nil {
		return nil, err
	}
	root := leaf(ec, "contentEncoding", child.Valid)
	root.Children = []*Node{child}
	if !child.Valid {
		root.Error = NewEvaluationError("contentSchema", "contentSchema", "decoded content does not match contentSchema", nil)
	}
	return root, nil
}
