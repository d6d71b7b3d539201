package jsonschema

// ifThenElseState is `if`'s compiled state: the if-subschema plus whichever
// of then/else siblings are present.
type ifThenElseState struct {
	ifKey          SchemaKey
	thenKey        SchemaKey
	hasThen        bool
	elseKey        SchemaKey
	hasElse        bool
}

// ifKeyword implements the `if`/`then`/`else` triple as one keyword, since
// `then`/`else` are inert without `if` and their evaluation depends on its
// result (spec.md §4.6/§4.7 treat subschema discovery per-keyword, but
// nothing stops one keyword from owning several sibling members).
type ifKeyword struct{}

func (ifKeyword) Name() string { return "if" }

func (ifKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	ifKey, ok := cc.Subschema("if")
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindReference, Detail: "if subschema not reserved"}
	}
	st := &ifThenElseState{ifKey: ifKey}
	obj, _ := cc.Value().AsObject()
	if _, present := obj.Get("then"); present {
		if key, ok := cc.Subschema("then"); ok {
			st.thenKey, st.hasThen = key, true
		}
	}
	if _, present := obj.Get("else"); present {
		if key, ok := cc.Subschema("else"); ok {
			st.elseKey, st.hasElse = key, true
		}
	}
	return true, st, nil
}

func (ifKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*ifThenElseState)
	ifNode, err := evaluateSubschema(ec, "if", st.ifKey, instance)
	if err != nil {
		return nil, err
	}
	node := leaf(ec, "if", true)
	node.Children = append(node.Children, ifNode)

	if ifNode.Valid {
		if st.hasThen {
			thenNode, err := evaluateSubschema(ec, "then", st.thenKey, instance)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, thenNode)
			if !thenNode.Valid {
				node.Valid = false
				node.Error = NewEvaluationError("then", "then", "value meets `if` but does not match `then`")
			}
		}
	} else if st.hasElse {
		elseNode, err := evaluateSubschema(ec, "else", st.elseKey, instance)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, elseNode)
		if !elseNode.Valid {
			node.Valid = false
			node.Error = NewEvaluationError("else", "else", "value fails `if` and does not match `else`")
		}
	}
	return node, nil
}

func (ifKeyword) Subschemas(v Value) ([]string, error) {
	// v is the whole schema object, as for every subschemer; "then"/"else"
	// are added separately in compile.go's subschema walk via
	// thenElseSubschemas.
	return []string{"if"}, nil
}

// thenElseSubschemas reports "then"/"else" pointers when present alongside
// "if", called directly from compile.go's T2 walk (not through the
// subschemer interface, since they depend on object-wide sibling presence
// rather than a single member's value).
func thenElseSubschemas(obj *Object) []string {
	var out []string
	if _, ok := obj.Get("then"); ok {
		out = append(out, "then")
	}
	if _, ok := obj.Get("else"); ok {
		out = append(out, "else")
	}
	return out
}
