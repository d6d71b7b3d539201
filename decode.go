package jsonschema

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-json-experiment/json/jsontext"
)

// DecodeJSON parses data into a Value, interning every number it encounters
// into numbers (C2) and preserving object member order exactly as the
// decoder delivered it (C4's ordering invariant). Token-level decoding via
// jsontext, rather than unmarshaling into map[string]any, is what makes key
// order preservation possible — Go maps have none — and is already a
// teacher import (schema.go imports go-json-experiment/json).
func DecodeJSON(data []byte, numbers *NumberCache) (Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	return decodeValue(dec, numbers)
}

func decodeValue(dec *jsontext.Decoder, numbers *NumberCache) (Value, error) {
	kind := dec.PeekKind()
	switch kind {
	case 'n':
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Null(), nil
	case 't', 'f':
		tok, err := dec.ReadToken()
		if err != nil {
			return Value{}, err
		}
		return Bool(tok.Bool()), nil
	case '"':
		tok, err := dec.ReadToken()
		if err != nil {
			return Value{}, err
		}
		return String(tok.String()), nil
	case '0':
		raw, err := dec.ReadValue()
		if err != nil {
			return Value{}, err
		}
		text := string(raw)
		key, err := numbers.Insert(text)
		if err != nil {
			return Value{}, err
		}
		return Number(key, text), nil
	case '[':
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		var items []Value
		for dec.PeekKind() != ']' {
			v, err := decodeValue(dec, numbers)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return Array(items), nil
	case '{':
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		var keys []string
		var vals []Value
		for dec.PeekKind() != '}' {
			keyTok, err := dec.ReadToken()
			if err != nil {
				return Value{}, err
			}
			v, err := decodeValue(dec, numbers)
			if err != nil {
				return Value{}, err
			}
			keys = append(keys, keyTok.String())
			vals = append(vals, v)
		}
		if _, err := dec.ReadToken(); err != nil {
			return Value{}, err
		}
		return FromObject(NewObject(keys, vals)), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected token kind %q", ErrJSONDecode, kind)
	}
}

// valueFromAny converts a generic Go value - the kind produced by decoders
// that do not preserve object key order, such as goccy/go-yaml or
// pelletier/go-toml/v2 - into a Value. Object member order in the result is
// whatever the source map iteration happens to produce, which is why JSON,
// decoded token by token via DecodeJSON, remains the only order-preserving
// input format (spec.md §6 requires JSON support; YAML/TOML are optional).
func valueFromAny(v any, numbers *NumberCache) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return numberFromText(strconv.Itoa(x), numbers)
	case int64:
		return numberFromText(strconv.FormatInt(x, 10), numbers)
	case float64:
		return numberFromText(strconv.FormatFloat(x, 'g', -1, 64), numbers)
	case []any:
		items := make([]Value, len(x))
		for i, e := range x {
			cv, err := valueFromAny(e, numbers)
			if err != nil {
				return Value{}, err
			}
			items[i] = cv
		}
		return Array(items), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		vals := make([]Value, len(keys))
		for i, k := range keys {
			cv, err := valueFromAny(x[k], numbers)
			if err != nil {
				return Value{}, err
			}
			vals[i] = cv
		}
		return FromObject(NewObject(keys, vals)), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported decoded type %T", ErrJSONDecode, v)
	}
}

func numberFromText(text string, numbers *NumberCache) (Value, error) {
	key, err := numbers.Insert(text)
	if err != nil {
		return Value{}, err
	}
	return Number(key, text), nil
}
