package jsonschema

import "math/big"

type multipleOfState struct {
	divisor *big.Rat
	text    string
}

// multipleOfKeyword implements `multipleOf` using exact rational division
// (spec.md §4.7, MultipleOf in number.go), never floating point.
type multipleOfKeyword struct{}

func (multipleOfKeyword) Name() string { return "multipleOf" }

func (multipleOfKeyword) Compile(cc *CompileContext, v Value) (bool, any, error) {
	key, text, ok := v.AsNumber()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: "multipleOf must be a number"}
	}
	divisor := cc.Numbers().Rat(key)
	if divisor.Sign() <= 0 {
		return false, nil, &CompileError{Kind: ErrKindNumber, Detail: "multipleOf must be > 0"}
	}
	return true, &multipleOfState{divisor: divisor, text: text}, nil
}

func (multipleOfKeyword) Evaluate(ec *Context, state any, instance Value) (*Node, error) {
	st := state.(*multipleOfState)
	key, _, ok := instance.AsNumber()
	if !ok {
		return leaf(ec, "multipleOf", true), nil
	}
	value := ec.Numbers().Rat(key)
	if MultipleOf(value, st.divisor) {
		return leaf(ec, "multipleOf", true), nil
	}
	n := leaf(ec, "multipleOf", false)
	n.Error = NewEvaluationError("multipleOf", "multipleOf", "value {value} is not a multiple of {divisor}", map[string]any{
		"value":   FormatRat(value),
		"divisor": st.text,
	})
	return n, nil
}
