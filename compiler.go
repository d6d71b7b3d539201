package jsonschema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/kaptinlin/jsonschema/uri"
)

// Resolver is the consumer-supplied external source loader named in
// spec.md §6. Resolve returns nil, nil when u is "not mine, try next" -
// multiple resolvers chain in registration order, first non-nil wins
// (spec.md §9 "Resolver plurality"). A non-nil error is a transport
// failure, not a "not found".
type Resolver interface {
	Resolve(u uri.Absolute) (data []byte, err error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(u uri.Absolute) ([]byte, error)

func (f ResolverFunc) Resolve(u uri.Absolute) ([]byte, error) { return f(u) }

// Deserializer turns raw bytes into a Value. The engine tries every
// registered deserializer in order until one succeeds; JSON's is always
// registered first and cannot be removed.
type Deserializer interface {
	Deserialize(data []byte, numbers *NumberCache) (Value, error)
}

type jsonDeserializer struct{}

func (jsonDeserializer) Deserialize(data []byte, numbers *NumberCache) (Value, error) {
	return DecodeJSON(data, numbers)
}

// YAMLDeserializer decodes YAML documents via goccy/go-yaml. Key order is
// not preserved (see valueFromAny).
type YAMLDeserializer struct{}

func (YAMLDeserializer) Deserialize(data []byte, numbers *NumberCache) (Value, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrYAMLUnmarshal, err)
	}
	return valueFromAny(normalizeYAML(v), numbers)
}

// normalizeYAML rewrites goccy/go-yaml's map[string]interface{} result
// (already string-keyed for YAML documents with string keys, the only kind
// a JSON Schema source document can sensibly be) into the shapes
// valueFromAny accepts.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalizeYAML(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return x
	}
}

// TOMLDeserializer decodes TOML documents via pelletier/go-toml/v2. Key
// order is not preserved (see valueFromAny).
type TOMLDeserializer struct{}

func (TOMLDeserializer) Deserialize(data []byte, numbers *NumberCache) (Value, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrTOMLUnmarshal, err)
	}
	return valueFromAny(v, numbers)
}

// HTTPResolver fetches sources over HTTP(S), grounded on the teacher's
// default loader in its old Compiler.setupLoaders.
type HTTPResolver struct {
	Client *http.Client
}

// NewHTTPResolver returns a resolver with a 10s timeout client, matching the
// teacher's default.
func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (h *HTTPResolver) Resolve(u uri.Absolute) ([]byte, error) {
	scheme := u.Scheme()
	if scheme != "http" && scheme != "https" {
		return nil, nil
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatusCode, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataRead, err)
	}
	return data, nil
}

// MapResolver serves pre-loaded documents keyed by their root URI string -
// useful for tests and for the remote-$ref scenario in spec.md §8 where a
// resolver "returns the second document on demand".
type MapResolver map[string][]byte

func (m MapResolver) Resolve(u uri.Absolute) ([]byte, error) {
	data, ok := m[u.RootURI().String()]
	if !ok {
		return nil, nil
	}
	return data, nil
}

type preloadedSource struct {
	uri   uri.Absolute
	value Value
}

// Builder is the fluent configuration surface named in spec.md §6: a
// default dialect, additional dialects, deserializers, resolvers, and
// pre-loaded sources, producing an Engine whose core operations are Compile
// and Evaluate (plus the CompileBytes, Numbers and Translate conveniences).
// Mirrors the teacher's fluent *Compiler builder
// (WithEncoderJSON, RegisterFormat, RegisterLoader, ...).
type Builder struct {
	dialects       *DialectRegistry
	defaultDialect *Dialect
	resolvers      []Resolver
	deserializers  []Deserializer
	preload        []preloadedSource
	maxDepth       int
	assertFormat   bool
}

// NewBuilder returns a Builder with JSON deserialization and a depth cap of
// 256 (spec.md §4.7), and nothing else configured.
func NewBuilder() *Builder {
	return &Builder{
		dialects:      NewDialectRegistry(),
		deserializers: []Deserializer{jsonDeserializer{}},
		maxDepth:      256,
	}
}

// WithDialect registers an additional dialect.
func (b *Builder) WithDialect(d *Dialect) *Builder {
	b.dialects.Register(d)
	return b
}

// WithDefaultDialect registers d and makes it the registry's fallback when
// no document-level override applies.
func (b *Builder) WithDefaultDialect(d *Dialect) *Builder {
	b.dialects.Register(d)
	b.dialects.SetDefault(d)
	b.defaultDialect = d
	return b
}

// WithResolver appends r to the resolver chain.
func (b *Builder) WithResolver(r Resolver) *Builder {
	b.resolvers = append(b.resolvers, r)
	return b
}

// WithDeserializer appends d to the deserializer chain (tried after JSON).
func (b *Builder) WithDeserializer(d Deserializer) *Builder {
	b.deserializers = append(b.deserializers, d)
	return b
}

// WithSource pre-loads (uri, value) into the built Engine's source
// repository, as if it had been resolved externally.
func (b *Builder) WithSource(u uri.Absolute, v Value) *Builder {
	b.preload = append(b.preload, preloadedSource{uri: u, value: v})
	return b
}

// WithMaxDepth overrides the re-entrant evaluation depth cap.
func (b *Builder) WithMaxDepth(n int) *Builder {
	b.maxDepth = n
	return b
}

// WithAssertFormat makes `format` mismatches fail validation instead of
// merely annotating the output (2020-12 leaves this to the implementation;
// off by default, matching the vocabulary's own "SHOULD NOT" default).
func (b *Builder) WithAssertFormat(assert bool) *Builder {
	b.assertFormat = assert
	return b
}

// Build finalizes the configuration into an Engine.
func (b *Builder) Build() (*Engine, error) {
	numbers := NewNumberCache()
	e := &Engine{
		numbers:       numbers,
		interner:      NewInterner(),
		dialects:      b.dialects,
		resolvers:     b.resolvers,
		deserializers: b.deserializers,
		maxDepth:      b.maxDepth,
		assertFormat:  b.assertFormat,
		translators:   newTranslatorRegistry(),
	}
	e.committed = &txState{arena: newSchemaArena(), sources: NewSources(numbers), uriIndex: make(map[string]SchemaKey)}
	for _, p := range b.preload {
		tx := newTransaction(e)
		if _, err := tx.state.sources.Insert(p.uri, p.value); err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Engine is the compiled, immutable-between-transactions state exposed
// publicly: Compile and Evaluate are its core operations, per spec.md §6;
// CompileBytes, Numbers and Translate are conveniences around them.
type Engine struct {
	numbers       *NumberCache
	interner      *Interner
	dialects      *DialectRegistry
	resolvers     []Resolver
	deserializers []Deserializer
	translators   *translatorRegistry
	maxDepth      int
	assertFormat  bool

	committed *txState
}

// resolve chains the engine's resolvers in registration order.
func (e *Engine) resolve(u uri.Absolute) ([]byte, error) {
	for _, r := range e.resolvers {
		data, err := r.Resolve(u)
		if err != nil {
			return nil, err
		}
		if data != nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDataRead, u.String())
}

// deserialize tries every registered deserializer in order.
func (e *Engine) deserialize(data []byte) (Value, error) {
	var lastErr error
	for _, d := range e.deserializers {
		v, err := d.Deserialize(data, e.numbers)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return Value{}, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, lastErr)
}

// Numbers returns the engine's numeric cache, needed by callers (such as
// cmd/schemagraph) that decode instance documents themselves via DecodeJSON
// rather than through a Deserializer.
func (e *Engine) Numbers() *NumberCache { return e.numbers }

// Compile compiles u (and transitively everything it references) and
// returns its key. When validate is true, u's document is additionally
// checked against its own dialect's metaschema before the key is returned.
// The check is skipped, and the key returned, when the metaschema itself
// cannot be compiled (for example, no resolver serves it) or when evaluating
// the document against it returns an error.
func (e *Engine) Compile(u uri.Absolute, validate bool) (SchemaKey, error) {
	tx := newTransaction(e)
	key, err := tx.Compile(u)
	if err != nil {
		tx.Rollback()
		return SchemaKey{}, err
	}
	if validate {
		cs := tx.state.arena.get(key)
		if cs != nil && !cs.IsBoolean {
			_, rootValue, gerr := tx.state.sources.Get(cs.Source.Source)
			if gerr == nil {
				metaKey, merr := tx.Compile(cs.Dialect.URI)
				if merr == nil {
					out, eerr := e.evaluateWithArena(tx.state.arena, metaKey, rootValue, Flag)
					if eerr == nil && !out.Valid {
						tx.Rollback()
						return SchemaKey{}, &CompileError{Kind: ErrKindUnexpectedValue, Schema: u.String(), Detail: "document does not satisfy its own dialect's metaschema"}
					}
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return SchemaKey{}, err
	}
	return key, nil
}

// CompileBytes deserializes data, inserts it as the document rooted at u,
// and compiles it - the common case of compiling a schema the caller
// already has in hand rather than one reachable only through a Resolver.
func (e *Engine) CompileBytes(u uri.Absolute, data []byte, validate bool) (SchemaKey, error) {
	tx := newTransaction(e)
	v, err := e.deserialize(data)
	if err != nil {
		return SchemaKey{}, err
	}
	if _, err := tx.state.sources.Insert(u.RootURI(), v); err != nil {
		return SchemaKey{}, err
	}
	if err := tx.Commit(); err != nil {
		return SchemaKey{}, err
	}
	return e.Compile(u, validate)
}
