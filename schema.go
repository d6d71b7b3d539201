package jsonschema

import "github.com/kaptinlin/jsonschema/uri"

// Anchor is a named handle onto a schema, declared by $anchor or
// $dynamicAnchor (or a legacy plain-name $id). Dynamic anchors additionally
// participate in the evaluator's dynamic-anchor stack (spec.md §4.7).
type Anchor struct {
	Name    string
	Link    Link
	Key     SchemaKey
	Dynamic bool
}

// Reference is a keyword-carried pointer from one schema to another,
// resolved during T3. Dynamic marks $dynamicRef/$recursiveRef, which first
// consult the evaluator's dynamic-anchor stack before falling back to
// Target.
type Reference struct {
	Keyword   string
	From      SchemaKey
	FromPtr   string
	RawTarget string
	Target    SchemaKey
	Dynamic   bool
}

// CompiledSchema is a fully compiled schema resource or subschema, keyed by
// SchemaKey into a schemaArena. Boolean schemas (`true`/`false`) carry
// BoolValue and nothing else - Evaluate short-circuits on them before any
// keyword runs.
type CompiledSchema struct {
	Key     SchemaKey
	Dialect *Dialect
	BaseURI uri.Absolute
	Source  Link

	IsBoolean bool
	BoolValue bool

	// DynamicAnchors lists the plain names this location declares via
	// $dynamicAnchor, pushed onto the evaluator's dynamic-anchor stack the
	// moment this schema starts evaluating (spec.md §4.7).
	DynamicAnchors []string

	// keywordStates holds each applied keyword's opaque Compile() result,
	// keyed by keyword name. keywordOrder is keywordStates' keys in
	// first-applied order (which follows the dialect's declared keyword
	// order, since T4 compiles keywords in that order), so Evaluate runs
	// keywords deterministically without re-deriving order from a map.
	keywordStates map[string]any
	keywordOrder  []string
}

// newCompiledSchema returns an empty, non-boolean compiled schema shell for
// key, to be filled in by T4.
func newCompiledSchema(key SchemaKey, dialect *Dialect, base uri.Absolute, src Link) *CompiledSchema {
	return &CompiledSchema{
		Key:           key,
		Dialect:       dialect,
		BaseURI:       base,
		Source:        src,
		keywordStates: make(map[string]any),
	}
}

// newBooleanSchema returns a compiled schema that always evaluates to v.
func newBooleanSchema(key SchemaKey, base uri.Absolute, src Link, v bool) *CompiledSchema {
	return &CompiledSchema{Key: key, BaseURI: base, Source: src, IsBoolean: true, BoolValue: v}
}

// setKeyword records keyword's compiled state, preserving first-applied order.
func (cs *CompiledSchema) setKeyword(name string, state any) {
	if _, exists := cs.keywordStates[name]; !exists {
		cs.keywordOrder = append(cs.keywordOrder, name)
	}
	cs.keywordStates[name] = state
}

// keywordState returns the compiled state for name, and whether it is applied.
func (cs *CompiledSchema) keywordState(name string) (any, bool) {
	s, ok := cs.keywordStates[name]
	return s, ok
}

// appliedKeywords returns the applied keyword names in compile order.
func (cs *CompiledSchema) appliedKeywords() []string { return cs.keywordOrder }
