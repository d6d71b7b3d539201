package jsonschema

import "github.com/kaptinlin/jsonschema/uri"

// OutputFormat selects one of the four output shapes of spec.md §4.8.
type OutputFormat uint8

const (
	Flag OutputFormat = iota
	Basic
	Detailed
	Verbose
)

// dynamicFrame is one entry of the dynamic-anchor stack (spec.md §4.7):
// $dynamicAnchor pushes a frame on descent, popped on ascent by simply
// discarding the frame (Context is copied by value at every recursive call,
// so "popping" is just returning to the caller's own copy).
type dynamicFrame struct {
	parent *dynamicFrame
	name   string
	key    SchemaKey
}

// evalShared is the handful of fields that must be visible across the whole
// evaluation tree rather than scoped to one branch: the depth cap and the
// short-circuit sticky-disable flag (spec.md §4.7 "disable_short_circuiting
// is sticky for the rest of the evaluation").
type evalShared struct {
	maxDepth        int
	circuitDisabled bool
	assertFormat    bool
}

// Context is the per-evaluation scratch threaded through every keyword call,
// named in spec.md §4.7/§9 ("scoped evaluation state ... carried by a single
// Context value threaded through every keyword - no thread-locals, no global
// state"). It is copied by value on every descent so that instance/keyword
// location and the dynamic-anchor stack are automatically scoped to the
// current branch, while evalShared (behind a pointer) carries the handful of
// fields that must persist across the whole walk.
type Context struct {
	engine *Engine
	arena  *schemaArena

	format OutputFormat

	instancePointer string
	keywordPointer  string
	absoluteLoc     uri.Absolute

	dyn   *dynamicFrame
	depth int

	localForceShortCircuit bool

	shared *evalShared

	// siblingRoot is the in-progress root Node of the schema currently being
	// evaluated, visible to keywords that need the annotations already
	// produced by earlier sibling keywords in dialect-registration order
	// (additionalProperties after properties/patternProperties,
	// unevaluatedProperties/unevaluatedItems after everything else).
	siblingRoot *Node
}

func newContext(engine *Engine, arena *schemaArena, format OutputFormat, maxDepth int) *Context {
	return &Context{
		engine: engine,
		arena:  arena,
		format: format,
		shared: &evalShared{maxDepth: maxDepth, assertFormat: engine.assertFormat},
	}
}

// AssertFormat reports whether `format` should fail validation on mismatch
// rather than merely annotate, per the Builder's WithAssertFormat setting.
func (c *Context) AssertFormat() bool { return c.shared.assertFormat }

// Numbers returns the engine-lifetime numeric cache (C2).
func (c *Context) Numbers() *NumberCache { return c.engine.numbers }

// Format returns the output structure the caller requested.
func (c *Context) Format() OutputFormat { return c.format }

// InstanceLocation returns the current instance location, as a JSON Pointer.
func (c *Context) InstanceLocation() string { return c.instancePointer }

// KeywordLocation returns the current evaluation path, as a JSON Pointer
// relative to the schema that began the evaluation.
func (c *Context) KeywordLocation() string { return c.keywordPointer }

// AbsoluteKeywordLocation returns the physical schema URI+fragment the
// currently executing keyword was compiled from.
func (c *Context) AbsoluteKeywordLocation() uri.Absolute { return c.absoluteLoc }

// ShortCircuit reports whether the evaluator may skip evaluating remaining
// siblings once one has already failed: true only for Flag output, unless
// some ancestor keyword disabled it (sticky) or a keyword locally forces it
// back on for its own children.
func (c *Context) ShortCircuit() bool {
	if c.localForceShortCircuit {
		return true
	}
	return c.format == Flag && !c.shared.circuitDisabled
}

// DisableShortCircuit turns off short-circuiting for the remainder of this
// evaluation. Irreversible, per spec.md §4.7.
func (c *Context) DisableShortCircuit() { c.shared.circuitDisabled = true }

// EnableShortCircuit returns a copy of c that forces short-circuiting for
// its own descendants only; the caller's own Context is unaffected once the
// call returns, making this the "reversible" counterpart to
// DisableShortCircuit.
func (c Context) EnableShortCircuit() *Context {
	c.localForceShortCircuit = true
	return &c
}

// descend returns a copy of c positioned at a child instance/keyword
// location, with its depth counter incremented. ErrMaxDepthExceeded is
// returned once the configured cap is hit (default 256).
func (c Context) descend(instanceToken, keywordToken string, absoluteLoc uri.Absolute) (*Context, error) {
	c.depth++
	if c.depth > c.shared.maxDepth {
		return nil, ErrMaxDepthExceeded
	}
	if instanceToken != "" {
		c.instancePointer = joinPointer(c.instancePointer, instanceToken)
	}
	if keywordToken != "" {
		// keywordToken may already be a multi-segment relative pointer path
		// built by the calling keyword (e.g. "allOf/0", "properties/a~1b"),
		// each of whose segments was escaped at construction time - unlike
		// instanceToken, it is not re-escaped here.
		c.keywordPointer = c.keywordPointer + "/" + keywordToken
	}
	c.absoluteLoc = absoluteLoc
	c.localForceShortCircuit = false
	return &c, nil
}

// Siblings returns the nodes produced so far by earlier keywords of the same
// schema evaluation, for annotation-dependent keywords (additionalProperties,
// unevaluatedProperties, unevaluatedItems).
func (c *Context) Siblings() []*Node {
	if c.siblingRoot == nil {
		return nil
	}
	return c.siblingRoot.Children
}

// pushDynamicAnchor returns a copy of c with name bound to key at the top of
// the dynamic-anchor stack.
func (c Context) pushDynamicAnchor(name string, key SchemaKey) *Context {
	c.dyn = &dynamicFrame{parent: c.dyn, name: name, key: key}
	return &c
}

// resolveDynamicAnchor looks up name in the dynamic-anchor stack, per
// spec.md §4.7/§9: $dynamicRef must resolve to the outermost matching frame
// in the current dynamic scope, not the nearest one, so the whole chain is
// walked and the last (i.e. closest-to-root) match wins.
func (c *Context) resolveDynamicAnchor(name string) (SchemaKey, bool) {
	var found SchemaKey
	ok := false
	for f := c.dyn; f != nil; f = f.parent {
		if f.name == name {
			found = f.key
			ok = true
		}
	}
	return found, ok
}
