package jsonschema

import (
	"fmt"

	"github.com/kaptinlin/jsonschema/uri"
)

// visitKey is the T1 compile-time cycle guard: (source, pointer) pairs
// visited once per transaction, per spec.md §4.6 "Cycle handling".
type visitKey struct {
	source  SourceKey
	pointer string
}

// txState is the copy-on-write state a Transaction mutates;
// Transaction.Commit commits it atomically on success, or Rollback discards
// it on any failure.
type txState struct {
	arena    *schemaArena
	sources  *Sources
	uriIndex map[string]SchemaKey // absolute URI (with fragment) string -> key
}

func (s *txState) clone() *txState {
	idx := make(map[string]SchemaKey, len(s.uriIndex))
	for k, v := range s.uriIndex {
		idx[k] = v
	}
	return &txState{arena: s.arena.clone(), sources: s.sources, uriIndex: idx}
}

// Transaction drives the T0-T5 compile state machine described in
// spec.md §4.6 against a copy-on-write snapshot of the engine's state.
type Transaction struct {
	engine  *Engine
	state   *txState
	visited map[visitKey]bool
	closed  bool
	errs    ResolveErrors
}

func newTransaction(e *Engine) *Transaction {
	return &Transaction{engine: e, state: e.committed.clone(), visited: make(map[visitKey]bool)}
}

// located is one schema location discovered while walking a document (T1):
// the root, or any embedded schema reached through a subschemer pointer.
type located struct {
	pointer string
	value   Value
	dialect *Dialect
	base    uri.Absolute
	key     SchemaKey
	refs    map[string]*Reference // filled by T3, keyed by referencer keyword name
}

// Compile is the entry point for compiling a single absolute target URI: an
// already-compiled target returns its key immediately (T0); otherwise its
// owning document is compiled in full (T1-T4) before the target's alias is
// looked up again.
func (tx *Transaction) Compile(target uri.Absolute) (SchemaKey, error) {
	if tx.closed {
		return SchemaKey{}, ErrTransactionClosed
	}
	if key, ok := tx.state.uriIndex[target.String()]; ok {
		return key, nil
	}
	root := target.RootURI()
	if _, ok := tx.state.uriIndex[root.String()]; !ok {
		if err := tx.compileDocument(root); err != nil {
			return SchemaKey{}, err
		}
	}
	if key, ok := tx.state.uriIndex[target.String()]; ok {
		return key, nil
	}
	return SchemaKey{}, fmt.Errorf("%w: %s", ErrUnresolvedReference, target.String())
}

// compileDocument runs T0-T4 for the document rooted at root.
func (tx *Transaction) compileDocument(root uri.Absolute) error {
	// T0 - locate.
	srcKey, ok := tx.state.sources.Lookup(root)
	if !ok {
		data, err := tx.engine.resolve(root)
		if err != nil {
			tx.errs = append(tx.errs, &ResolveError{URI: root.String(), Wrapped: err})
			return tx.errs
		}
		v, err := tx.engine.deserialize(data)
		if err != nil {
			return err
		}
		srcKey, err = tx.state.sources.Insert(root, v)
		if err != nil {
			return err
		}
	}
	_, rootValue, err := tx.state.sources.Get(srcKey)
	if err != nil {
		return err
	}

	// T1 + T2 - identify, detect dialect, reserve keys, register aliases.
	var locatedSchemas []*located
	byPointer := make(map[string]SchemaKey)

	var visit func(pointer string, v Value, base uri.Absolute, dialect *Dialect, isRoot bool) error
	visit = func(pointer string, v Value, base uri.Absolute, dialect *Dialect, isRoot bool) error {
		vk := visitKey{source: srcKey, pointer: pointer}
		if tx.visited[vk] {
			return nil
		}
		tx.visited[vk] = true

		effective := dialect
		if isRoot {
			d, err := tx.engine.dialects.Detect(v)
			if err != nil {
				return &CompileError{Kind: ErrKindDialect, Pointer: pointer, Detail: err.Error(), Wrapped: err}
			}
			effective = d
		} else if ov, found, err := tx.engine.dialects.DetectOverride(v); err != nil {
			return &CompileError{Kind: ErrKindDialect, Pointer: pointer, Detail: err.Error(), Wrapped: err}
		} else if found {
			effective = ov
		}

		newBase, err := resolveIdentifier(effective, base, v, pointer)
		if err != nil {
			return err
		}

		loc := &located{pointer: pointer, value: v, dialect: effective, base: newBase}
		key := tx.state.arena.reserve()
		loc.key = key
		locatedSchemas = append(locatedSchemas, loc)
		byPointer[pointer] = key

		if err := tx.registerAliases(root, pointer, newBase, key); err != nil {
			return err
		}
		anchors, err := collectAnchors(effective, v)
		if err != nil {
			return err
		}
		for _, a := range anchors {
			anchorURI := newBase
			if _, _, err := anchorURI.SetFragment(a.Name, true); err != nil {
				return &CompileError{Kind: ErrKindReference, Pointer: pointer, Detail: err.Error(), Wrapped: err}
			}
			if err := tx.registerAlias(anchorURI, key); err != nil {
				return err
			}
		}

		if effective == nil {
			return nil
		}
		var rels []string
		for _, kw := range effective.Keywords {
			sub, ok := kw.(subschemer)
			if !ok {
				continue
			}
			ptrs, err := sub.Subschemas(v)
			if err != nil {
				return err
			}
			rels = append(rels, ptrs...)
		}
		if obj, ok := v.AsObject(); ok {
			if _, hasIf := obj.Get("if"); hasIf {
				rels = append(rels, thenElseSubschemas(obj)...)
			}
		}
		for _, rel := range rels {
			childPtr := joinPointerPath(pointer, rel)
			childVal, err := ResolvePointer(rootValue, childPtr)
			if err != nil {
				continue
			}
			if err := visit(childPtr, childVal, newBase, effective, false); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit("", rootValue, root, nil, true); err != nil {
		return err
	}

	// T3 - link references. Resolution may recurse into compiling other
	// documents; references into this document resolve immediately since
	// every alias above was already registered.
	for _, loc := range locatedSchemas {
		decls, err := collectReferences(loc.dialect, loc.value)
		if err != nil {
			return err
		}
		if len(decls) == 0 {
			continue
		}
		loc.refs = make(map[string]*Reference, len(decls))
		for _, d := range decls {
			ref, err := resolveReference(tx, d, loc.key, loc.base)
			if err != nil {
				return err
			}
			loc.refs[d.Keyword] = ref
		}
	}

	// T4 - compile keywords, leaves first (locatedSchemas was appended in
	// pre-order during the walk above, so reversing gives leaves first).
	for i := len(locatedSchemas) - 1; i >= 0; i-- {
		loc := locatedSchemas[i]
		if err := tx.compileLocation(root, srcKey, loc, byPointer); err != nil {
			return err
		}
	}
	return nil
}

func (tx *Transaction) compileLocation(root uri.Absolute, srcKey SourceKey, loc *located, byPointer map[string]SchemaKey) error {
	srcLink := Link{Source: srcKey, AbsoluteURI: root, Pointer: loc.pointer}

	if b, ok := loc.value.AsBool(); ok {
		tx.state.arena.fill(loc.key, newBooleanSchema(loc.key, loc.base, srcLink, b))
		return nil
	}

	cs := newCompiledSchema(loc.key, loc.dialect, loc.base, srcLink)
	if anchors, err := collectAnchors(loc.dialect, loc.value); err == nil {
		for _, a := range anchors {
			if a.Dynamic {
				cs.DynamicAnchors = append(cs.DynamicAnchors, a.Name)
			}
		}
	}
	if loc.dialect != nil {
		cc := &CompileContext{tx: tx, loc: loc, byPointer: byPointer}
		for _, kw := range loc.dialect.Keywords {
			obj, isObj := loc.value.AsObject()
			if !isObj {
				continue
			}
			member, present := obj.Get(kw.Name())
			if !present {
				continue
			}
			applied, state, err := kw.Compile(cc, member)
			if err != nil {
				if ce, ok := err.(*CompileError); ok {
					if ce.Schema == "" {
						ce.Schema = loc.base.String()
					}
					return ce
				}
				return &CompileError{Kind: ErrKindKeywordSpecific, Schema: loc.base.String(), Pointer: loc.pointer, Detail: err.Error(), Wrapped: err}
			}
			if applied {
				cs.setKeyword(kw.Name(), state)
			}
		}
	}
	tx.state.arena.fill(loc.key, cs)
	return nil
}

// registerAliases registers the pointer-fragment alias (always valid) and,
// when loc introduced its own primary identifier, the identifier alias too.
func (tx *Transaction) registerAliases(root uri.Absolute, pointer string, base uri.Absolute, key SchemaKey) error {
	ptrURI := root
	if pointer != "" {
		if _, _, err := ptrURI.SetFragment(pointer, true); err != nil {
			return &CompileError{Kind: ErrKindReference, Pointer: pointer, Detail: err.Error(), Wrapped: err}
		}
	}
	if err := tx.registerAlias(ptrURI, key); err != nil {
		return err
	}
	if !base.Equal(root) {
		if err := tx.registerAlias(base, key); err != nil {
			return err
		}
	}
	return nil
}

// registerAlias installs u -> key in the URI index, failing with
// ErrDuplicateLink if u already names a different key (spec.md §9 decision #2
// folds duplicate anchors into this same rule).
func (tx *Transaction) registerAlias(u uri.Absolute, key SchemaKey) error {
	s := u.String()
	if existing, ok := tx.state.uriIndex[s]; ok && existing != key {
		return fmt.Errorf("%w: %s", ErrDuplicateLink, s)
	}
	tx.state.uriIndex[s] = key
	return nil
}

func joinPointerPath(base, rel string) string {
	if base == "" {
		return "/" + rel
	}
	return base + "/" + rel
}

// Commit atomically replaces the engine's committed state with this
// transaction's, provided it has not already been closed.
func (tx *Transaction) Commit() error {
	if tx.closed {
		return ErrTransactionClosed
	}
	tx.closed = true
	tx.engine.committed = tx.state
	return nil
}

// Rollback discards the transaction's state without affecting the engine.
func (tx *Transaction) Rollback() {
	tx.closed = true
}

// CompileContext is the "Compile context" of spec.md §4.6 T4: read access to
// C1-C5 plus a subschema(pointer) helper resolving a child already reserved
// in T2, handed to every Keyword.Compile call.
type CompileContext struct {
	tx        *Transaction
	loc       *located
	byPointer map[string]SchemaKey
}

// Numbers returns the engine-lifetime numeric cache (C2).
func (cc *CompileContext) Numbers() *NumberCache { return cc.tx.engine.numbers }

// Interner returns the engine-lifetime value interner (C3).
func (cc *CompileContext) Interner() *Interner { return cc.tx.engine.interner }

// Sources returns the transaction's source repository (C4).
func (cc *CompileContext) Sources() *Sources { return cc.tx.state.sources }

// Dialects returns the engine's dialect registry (C5).
func (cc *CompileContext) Dialects() *DialectRegistry { return cc.tx.engine.dialects }

// BaseURI returns the current schema location's resolved base URI.
func (cc *CompileContext) BaseURI() uri.Absolute { return cc.loc.base }

// Pointer returns the current schema location's JSON Pointer, relative to
// its source document's root.
func (cc *CompileContext) Pointer() string { return cc.loc.pointer }

// Value returns the raw schema value at the current location - the whole
// object, not just the member a single keyword owns. Used by keywords whose
// behavior spans several sibling members (if/then/else, contains, items,
// content).
func (cc *CompileContext) Value() Value { return cc.loc.value }

// Subschema returns the key of a child schema already reserved in T2 at the
// pointer relative path rel (e.g. "properties/name", "items").
func (cc *CompileContext) Subschema(rel string) (SchemaKey, bool) {
	key, ok := cc.byPointer[joinPointerPath(cc.loc.pointer, rel)]
	return key, ok
}

// Reference returns the resolved target key for a reference keyword
// collected at this location (e.g. "$ref", "$dynamicRef").
func (cc *CompileContext) Reference(keyword string) (*Reference, bool) {
	if cc.loc.refs == nil {
		return nil, false
	}
	ref, ok := cc.loc.refs[keyword]
	return ref, ok
}
