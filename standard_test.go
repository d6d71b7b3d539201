package jsonschema

import (
	"testing"

	"github.com/kaptinlin/jsonschema/uri"
)

func mustBuildEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewBuilder().WithDefaultDialect(Draft2020_12()).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return e
}

func mustCompile(t *testing.T, e *Engine, id string, schema string) SchemaKey {
	t.Helper()
	u, err := uri.Parse(id)
	if err != nil {
		t.Fatalf("uri.Parse(%q): %v", id, err)
	}
	key, err := e.CompileBytes(u, []byte(schema), false)
	if err != nil {
		t.Fatalf("CompileBytes(%q): %v", id, err)
	}
	return key
}

func evaluateJSON(t *testing.T, e *Engine, key SchemaKey, instance string) *Output {
	t.Helper()
	v, err := DecodeJSON([]byte(instance), e.numbers)
	if err != nil {
		t.Fatalf("DecodeJSON(%q): %v", instance, err)
	}
	out, err := e.Evaluate(key, v, Flag)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return out
}

func TestDraft2020_12BasicAssertions(t *testing.T) {
	e := mustBuildEngine(t)
	key := mustCompile(t, e, "https://example.com/person", `{
		"type": "object",
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`)

	if out := evaluateJSON(t, e, key, `{"name": "Ada", "age": 30}`); !out.Valid {
		t.Fatalf("expected valid, got invalid")
	}
	if out := evaluateJSON(t, e, key, `{"age": -1}`); out.Valid {
		t.Fatalf("expected invalid (missing name, negative age)")
	}
}

func TestDraft2020_12AdditionalPropertiesRespectsProperties(t *testing.T) {
	e := mustBuildEngine(t)
	key := mustCompile(t, e, "https://example.com/strict", `{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"patternProperties": {"^x-": {"type": "number"}},
		"additionalProperties": false
	}`)

	if out := evaluateJSON(t, e, key, `{"a": "hi", "x-foo": 1}`); !out.Valid {
		t.Fatalf("expected valid: properties and patternProperties cover every member")
	}
	if out := evaluateJSON(t, e, key, `{"a": "hi", "extra": true}`); out.Valid {
		t.Fatalf("expected invalid: 'extra' matches neither properties nor patternProperties")
	}
}

func TestDraft2020_12UnevaluatedPropertiesSeesAllOfAnnotations(t *testing.T) {
	e := mustBuildEngine(t)
	key := mustCompile(t, e, "https://example.com/unevaluated", `{
		"allOf": [
			{"properties": {"a": {"type": "string"}}}
		],
		"properties": {"b": {"type": "string"}},
		"unevaluatedProperties": false
	}`)

	if out := evaluateJSON(t, e, key, `{"a": "x", "b": "y"}`); !out.Valid {
		t.Fatalf("expected valid: 'a' evaluated via allOf, 'b' via properties")
	}
	if out := evaluateJSON(t, e, key, `{"a": "x", "c": "z"}`); out.Valid {
		t.Fatalf("expected invalid: 'c' is unevaluated")
	}
}

func TestDraft2020_12ItemsAfterPrefixItems(t *testing.T) {
	e := mustBuildEngine(t)
	key := mustCompile(t, e, "https://example.com/tuple", `{
		"prefixItems": [{"type": "string"}, {"type": "number"}],
		"items": {"type": "boolean"}
	}`)

	if out := evaluateJSON(t, e, key, `["x", 1, true, false]`); !out.Valid {
		t.Fatalf("expected valid tuple+trailing booleans")
	}
	if out := evaluateJSON(t, e, key, `["x", 1, "oops"]`); out.Valid {
		t.Fatalf("expected invalid: trailing element fails items")
	}
}

func TestDraft2020_12ContainsMinMax(t *testing.T) {
	e := mustBuildEngine(t)
	key := mustCompile(t, e, "https://example.com/contains", `{
		"contains": {"type": "number", "minimum": 10},
		"minContains": 2,
		"maxContains": 3
	}`)

	if out := evaluateJSON(t, e, key, `[1, 10, 20]`); !out.Valid {
		t.Fatalf("expected valid: two matches within [2,3]")
	}
	if out := evaluateJSON(t, e, key, `[1, 10]`); out.Valid {
		t.Fatalf("expected invalid: only one match, minContains is 2")
	}
}

func TestDraft2020_12RefAcrossDocuments(t *testing.T) {
	e := mustBuildEngine(t)
	defU, _ := uri.Parse("https://example.com/defs")
	if _, err := e.CompileBytes(defU, []byte(`{
		"$id": "https://example.com/defs",
		"$defs": {"positive": {"type": "integer", "exclusiveMinimum": 0}}
	}`), false); err != nil {
		t.Fatalf("CompileBytes(defs): %v", err)
	}
	key := mustCompile(t, e, "https://example.com/user-of-defs", `{
		"$ref": "https://example.com/defs#/$defs/positive"
	}`)

	if out := evaluateJSON(t, e, key, `5`); !out.Valid {
		t.Fatalf("expected valid: 5 is a positive integer")
	}
	if out := evaluateJSON(t, e, key, `-1`); out.Valid {
		t.Fatalf("expected invalid: -1 is not positive")
	}
}
