// Package tests exercises the engine end to end against the six scenarios
// spec.md §8 names, each compiling and evaluating through the public
// Builder/Engine surface rather than any package-internal helper.
package tests

import (
	"testing"

	"github.com/kaptinlin/jsonschema"
	"github.com/kaptinlin/jsonschema/uri"
)

func buildEngine(t *testing.T, opts ...func(*jsonschema.Builder) *jsonschema.Builder) *jsonschema.Engine {
	t.Helper()
	b := jsonschema.NewBuilder().WithDefaultDialect(jsonschema.Draft2020_12())
	for _, opt := range opts {
		b = opt(b)
	}
	e, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return e
}

func compile(t *testing.T, e *jsonschema.Engine, id, schema string) jsonschema.SchemaKey {
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

func evaluate(t *testing.T, e *jsonschema.Engine, key jsonschema.SchemaKey, instance string) *jsonschema.Output {
	t.Helper()
	v, err := jsonschema.DecodeJSON([]byte(instance), e.Numbers())
	if err != nil {
		t.Fatalf("DecodeJSON(%q): %v", instance, err)
	}
	out, err := e.Evaluate(key, v, jsonschema.Verbose)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return out
}

// invalidLeaves walks a Verbose tree and returns the keyword locations of
// every invalid childless node - the set buildOutput's Basic format would
// report as errors.
func invalidLeaves(n *jsonschema.Node) []string {
	if n == nil {
		return nil
	}
	if len(n.Children) == 0 {
		if !n.Valid {
			return []string{n.KeywordLocation}
		}
		return nil
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, invalidLeaves(c)...)
	}
	return out
}

// 1. Simple allOf: {"allOf":[{"type":"integer"},{"minimum":0}]}.
func TestScenarioSimpleAllOf(t *testing.T) {
	e := buildEngine(t)
	key := compile(t, e, "https://example.com/allof", `{
		"allOf": [
			{"type": "integer"},
			{"minimum": 0}
		]
	}`)

	if out := evaluate(t, e, key, `3`); !out.Valid {
		t.Fatalf("3: expected valid")
	}

	out := evaluate(t, e, key, `-1`)
	if out.Valid {
		t.Fatalf("-1: expected invalid")
	}
	leaves := invalidLeaves(out.Node)
	if len(leaves) != 1 || leaves[0] != "/allOf/1/minimum" {
		t.Fatalf("-1: expected exactly one error at /allOf/1/minimum, got %v", leaves)
	}

	out = evaluate(t, e, key, `"x"`)
	if out.Valid {
		t.Fatalf(`"x": expected invalid`)
	}
	leaves = invalidLeaves(out.Node)
	if len(leaves) != 1 || leaves[0] != "/allOf/0/type" {
		t.Fatalf(`"x": expected exactly one error at /allOf/0/type, got %v`, leaves)
	}
}

// 2. Anchor dynamic scoping: a $dynamicRef must bind to the outermost
// matching $dynamicAnchor on the dynamic scope stack at evaluation time,
// not to whichever $dynamicAnchor is lexically nearest the reference.
//
// "member" is entered once standalone (so its own $dynamicAnchor is the
// only frame on the stack - the lexical and dynamic answers coincide) and
// once through "container", which wraps it behind a $ref and additionally
// requires a "marker" property nothing in member's own schema requires. If
// resolution bound lexically (to member's own anchor) rather than
// dynamically (to the outermost frame, container's), the second assertion
// below would come out valid instead of invalid.
func TestScenarioDynamicAnchorScoping(t *testing.T) {
	resolver := jsonschema.MapResolver{
		"https://example.com/member": []byte(`{
			"$id": "https://example.com/member",
			"$dynamicAnchor": "T",
			"type": "object",
			"properties": {
				"inner": {"$dynamicRef": "#T"}
			}
		}`),
	}
	e := buildEngine(t, func(b *jsonschema.Builder) *jsonschema.Builder {
		return b.WithResolver(resolver)
	})

	memberKey := compile(t, e, "https://example.com/member-entry", `{
		"$ref": "https://example.com/member"
	}`)
	if out := evaluate(t, e, memberKey, `{"inner": {}}`); !out.Valid {
		t.Fatalf("standalone member: expected valid (no marker required lexically)")
	}

	containerKey := compile(t, e, "https://example.com/container", `{
		"$dynamicAnchor": "T",
		"type": "object",
		"required": ["marker"],
		"properties": {
			"wrapped": {"$ref": "https://example.com/member"}
		}
	}`)

	if out := evaluate(t, e, containerKey, `{"marker": true, "wrapped": {"inner": {"marker": true}}}`); !out.Valid {
		t.Fatalf("container with marker at both levels: expected valid")
	}
	if out := evaluate(t, e, containerKey, `{"marker": true, "wrapped": {"inner": {}}}`); out.Valid {
		t.Fatalf("inner missing marker: expected invalid, #T must bind to container's outermost T (which requires marker), not member's own")
	}
}

// 3. Cyclic $ref: a schema referencing itself compiles and evaluates finite
// trees, but a 300-level-deep instance drives evaluation depth past the cap
// and Evaluate returns an error.
func TestScenarioCyclicRef(t *testing.T) {
	e := buildEngine(t)
	key := compile(t, e, "https://example.com/x", `{
		"$id": "x",
		"type": "object",
		"properties": {
			"c": {"$ref": "x"}
		}
	}`)

	if out := evaluate(t, e, key, `{"c": {"c": {}}}`); !out.Valid {
		t.Fatalf("finite nested tree: expected valid")
	}

	deep := "{}"
	for i := 0; i < 300; i++ {
		deep = `{"c": ` + deep + `}`
	}
	v, err := jsonschema.DecodeJSON([]byte(deep), e.Numbers())
	if err != nil {
		t.Fatalf("DecodeJSON deep instance: %v", err)
	}
	if _, err := e.Evaluate(key, v, jsonschema.Flag); err == nil {
		t.Fatalf("expected an error past depth 256, got nil")
	}
}

// 4. multipleOf with decimals: exact-rational arithmetic, not float64
// comparison, decides divisibility.
func TestScenarioMultipleOfDecimals(t *testing.T) {
	e := buildEngine(t)
	key := compile(t, e, "https://example.com/multiple", `{"multipleOf": 0.1}`)

	if out := evaluate(t, e, key, `0.3`); !out.Valid {
		t.Fatalf("0.3: expected valid under exact-rational multipleOf 0.1")
	}
	if out := evaluate(t, e, key, `0.3000000001`); out.Valid {
		t.Fatalf("0.3000000001: expected invalid")
	}
}

// 5. Pattern with unicode: code-point length, not UTF-16 or byte length.
func TestScenarioPatternUnicode(t *testing.T) {
	e := buildEngine(t)
	key := compile(t, e, "https://example.com/pattern", `{"pattern": "^.{3}$"}`)

	if out := evaluate(t, e, key, `"𝄞𝄞𝄞"`); !out.Valid {
		t.Fatalf("three astral code points: expected valid")
	}
	if out := evaluate(t, e, key, `"𝄞𝄞"`); out.Valid {
		t.Fatalf("two astral code points: expected invalid")
	}
}

// 6. Remote $ref: the target document is fetched on demand through a
// Resolver, and compilation/evaluation route through the fetched key.
func TestScenarioRemoteRef(t *testing.T) {
	resolver := jsonschema.MapResolver{
		"https://b/other": []byte(`{
			"$id": "https://b/other",
			"$defs": {
				"x": {"type": "string", "minLength": 1}
			}
		}`),
	}
	e := buildEngine(t, func(b *jsonschema.Builder) *jsonschema.Builder {
		return b.WithResolver(resolver)
	})

	key := compile(t, e, "https://a/schema", `{
		"$ref": "https://b/other#/$defs/x"
	}`)

	if out := evaluate(t, e, key, `"hi"`); !out.Valid {
		t.Fatalf(`"hi": expected valid`)
	}
	if out := evaluate(t, e, key, `""`); out.Valid {
		t.Fatalf(`"": expected invalid (minLength 1)`)
	}
	if out := evaluate(t, e, key, `5`); out.Valid {
		t.Fatalf("5: expected invalid (wrong type)")
	}
}
