package jsonschema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/go-i18n"
)

// EvaluationError is the validation-failure payload carried by an invalid
// Node, grounded on the teacher's original EvaluationError/NewEvaluationError
// pair: Code is a stable, locale-independent key (e.g. "minimum"),
// Message is the default English template with `{param}` placeholders, and
// Params supplies the substitution values - the same shape every keyword
// file already built for Node.Error before the rewrite.
type EvaluationError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// NewEvaluationError builds an EvaluationError; params is optional.
func NewEvaluationError(keyword, code, message string, params ...map[string]any) *EvaluationError {
	e := &EvaluationError{Keyword: keyword, Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *EvaluationError) Error() string {
	return interpolate(e.Message, e.Params)
}

// Localize renders e through localizer's bundle, keyed by e.Code, falling
// back to the default English template when localizer is nil or the bundle
// has no entry for the code.
func (e *EvaluationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	if msg := localizer.Get(e.Code, i18n.Vars(e.Params)); msg != "" {
		return msg
	}
	return e.Error()
}

// interpolate substitutes `{name}` placeholders in msg from params; it is
// the non-localized rendering path used by Error() and as Localize's
// fallback.
func interpolate(msg string, params map[string]any) string {
	if len(params) == 0 {
		return msg
	}
	var b strings.Builder
	b.Grow(len(msg))
	for i := 0; i < len(msg); {
		if msg[i] == '{' {
			if end := strings.IndexByte(msg[i:], '}'); end >= 0 {
				key := msg[i+1 : i+end]
				if v, ok := params[key]; ok {
					fmt.Fprintf(&b, "%v", v)
					i += end + 1
					continue
				}
			}
		}
		b.WriteByte(msg[i])
		i++
	}
	return b.String()
}
