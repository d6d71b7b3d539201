package jsonschema

import (
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema/uri"
)

// AnchorDecl is one anchor declaration discovered on a schema sub-value by a
// keyword's anchorer capability: name is the plain-name fragment it defines,
// pointer is where it was declared, dynamic marks $dynamicAnchor (vs $anchor).
type AnchorDecl struct {
	Name    string
	Pointer string
	Dynamic bool
}

// RefDecl is one reference discovered by a keyword's referencer capability.
// Target is the raw (not yet resolved) URI reference string carried by the
// keyword; Dynamic marks $dynamicRef/$recursiveRef.
type RefDecl struct {
	Keyword string
	Pointer string
	Target  string
	Dynamic bool
}

// identifier, anchorer, referencer, subschemer and dialectDetector are
// optional capabilities a Keyword may implement, dispatched with a type
// assertion exactly as the standard library does for io.ReaderFrom or
// http.Hijacker. A keyword that implements none of them only participates in
// compile/evaluate.
type identifier interface {
	// Identify extracts this sub-value's primary identifier, if it defines
	// one ($id / legacy id), as the raw URI reference string (often
	// relative - resolution against the current base happens in
	// identify.go). found is false when the keyword is absent.
	Identify(v Value) (id string, found bool, err error)
}

type anchorer interface {
	Anchors(v Value) ([]AnchorDecl, error)
}

type referencer interface {
	References(v Value) ([]RefDecl, error)
}

type subschemer interface {
	// Subschemas returns the JSON Pointers, relative to v, at which this
	// keyword embeds child schemas (e.g. "allOf/0", "properties/*").
	Subschemas(v Value) ([]string, error)
}

type dialectDetector interface {
	// DetectDialect reports a document-level dialect override (e.g.
	// $schema) as a raw absolute-URI string. found is false when v carries
	// none.
	DetectDialect(v Value) (metaschema string, found bool, err error)
}

// Keyword is one schema keyword's compiled behavior, the unit the dialect
// registry and schema graph operate on. Implementations live one per file
// (allOf.go, properties.go, ...), following the teacher's layout.
type Keyword interface {
	// Name is the JSON keyword this implements ("properties", "$ref", ...).
	Name() string

	// Compile inspects v (the object member named Name(); keywords that read
	// several members get the whole schema object from cc.Value()) and returns the
	// opaque state Evaluate will receive. applied is false when the keyword
	// is absent or inert for this schema; callers must not call Evaluate in
	// that case.
	Compile(cc *CompileContext, v Value) (applied bool, state any, err error)

	// Evaluate applies the compiled state to instance and returns the
	// resulting node, or nil if this keyword contributes nothing (e.g. it
	// only ever emits annotations conditionally).
	Evaluate(ec *Context, state any, instance Value) (*Node, error)
}

// Dialect is a named, ordered set of keywords sharing a metaschema URI.
type Dialect struct {
	URI      uri.Absolute
	Keywords []Keyword

	byName map[string]Keyword
}

// NewDialect builds a Dialect from its metaschema URI and keyword set, in
// the order they should be compiled and evaluated.
func NewDialect(metaschema uri.Absolute, keywords []Keyword) *Dialect {
	d := &Dialect{URI: metaschema, Keywords: keywords, byName: make(map[string]Keyword, len(keywords))}
	for _, kw := range keywords {
		d.byName[kw.Name()] = kw
	}
	return d
}

// Keyword looks up one of this dialect's keywords by name.
func (d *Dialect) Keyword(name string) (Keyword, bool) {
	kw, ok := d.byName[name]
	return kw, ok
}

// DialectRegistry is the C5 component: dialects indexed by metaschema URI,
// consulted in registration order by Detect.
type DialectRegistry struct {
	mu      sync.RWMutex
	byURI   map[string]*Dialect
	order   []*Dialect
	dfault  *Dialect
}

// NewDialectRegistry returns an empty registry.
func NewDialectRegistry() *DialectRegistry {
	return &DialectRegistry{byURI: make(map[string]*Dialect)}
}

// Register adds d, keyed by its metaschema URI, and appends it to the
// detection order.
func (r *DialectRegistry) Register(d *Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byURI[d.URI.String()] = d
	r.order = append(r.order, d)
}

// SetDefault designates d as the dialect used when no document-level
// override applies. d must already be registered.
func (r *DialectRegistry) SetDefault(d *Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dfault = d
}

// Default returns the registry's fallback dialect, or nil if none was set.
func (r *DialectRegistry) Default() *Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dfault
}

// Lookup returns the dialect registered under metaschema URI u.
func (r *DialectRegistry) Lookup(u uri.Absolute) (*Dialect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byURI[u.RootURI().String()]
	return d, ok
}

// Detect implements spec.md §4.5's detect(document, pointer): it asks every
// registered dialect's dialectDetector-capable keywords, in registration
// order, whether v carries a document-level override; the first Some wins.
// Absent any override, the registry default applies.
func (r *DialectRegistry) Detect(v Value) (*Dialect, error) {
	r.mu.RLock()
	order := r.order
	r.mu.RUnlock()

	for _, d := range order {
		for _, kw := range d.Keywords {
			det, ok := kw.(dialectDetector)
			if !ok {
				continue
			}
			raw, found, err := det.DetectDialect(v)
			if err != nil {
				return nil, err
			}
			if !found {
				continue
			}
			id, err := uri.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrUnknownDialect, raw, err)
			}
			target, ok := r.Lookup(id)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, id.String())
			}
			return target, nil
		}
	}
	if d := r.Default(); d != nil {
		return d, nil
	}
	return nil, ErrUnknownDialect
}

// DetectOverride is Detect without the default fallback: it reports whether
// v itself names a dialect, used by T1 to decide whether a nested sub-value
// introduces a new sticky override or simply inherits its parent's dialect.
func (r *DialectRegistry) DetectOverride(v Value) (*Dialect, bool, error) {
	r.mu.RLock()
	order := r.order
	r.mu.RUnlock()

	for _, d := range order {
		for _, kw := range d.Keywords {
			det, ok := kw.(dialectDetector)
			if !ok {
				continue
			}
			raw, found, err := det.DetectDialect(v)
			if err != nil {
				return nil, false, err
			}
			if !found {
				continue
			}
			id, err := uri.Parse(raw)
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s: %v", ErrUnknownDialect, raw, err)
			}
			target, ok := r.Lookup(id)
			if !ok {
				return nil, false, fmt.Errorf("%w: %s", ErrUnknownDialect, id.String())
			}
			return target, true, nil
		}
	}
	return nil, false, nil
}
