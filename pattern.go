package jsonschema

import "github.com/dlclark/regexp2"

type patternState struct {
	re     *regexp2.Regexp
	source string
}

// patternKeyword implements `pattern`: ECMA-262-compatible, unanchored by
// default (spec.md §4.7), hence regexp2 rather than the RE2-flavored
// standard library regexp package.
type patternKeyword struct{}

func (patternKeyword) Name() string { return "pattern" }

func (patternKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	s, ok := v.AsString()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "pattern must be a string"}
	}
	re, err := regexp2.Compile(s, regexp2.ECMAScript)
	if err != nil {
		return false, nil, &CompileError{Kind: ErrKindRegex, Detail: err.Error(), Wrapped: err}
	}
	return true, &patternState{re: re, source: s}, nil
}

func (patternKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*patternState)
	s, ok := instance.AsString()
	if !ok {
		return leaf(ec, "pattern", true), nil
	}
	matched, err := st.re.MatchString(s)
	if err != nil {
		return nil, err
	}
	if matched {
		return leaf(ec, "pattern", true), nil
	}
	n := leaf(ec, "pattern", false)
	n.Error = NewEvaluationError("pattern", "pattern", "value {value} does not match pattern {pattern}", map[string]any{"value": s, "pattern": st.source})
	return n, nil
}
