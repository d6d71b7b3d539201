package jsonschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonschema/uri"
)

// SourceKey is an opaque handle into a Sources repository.
type SourceKey uint32

type sourceDoc struct {
	root  uri.Absolute
	value Value
}

// Sources is the source repository named C4 in spec.md §2/§4.4: an
// append-only store of root JSON documents, addressed by their primary
// absolute URI (fragment stripped), each reachable afterwards only through a
// Link. numbers is shared with every Value stored here so re-insertion
// equality checks compare numbers by value, not by text.
type Sources struct {
	numbers *NumberCache
	byURI   map[string]SourceKey
	docs    []sourceDoc
}

// NewSources returns an empty repository backed by numbers.
func NewSources(numbers *NumberCache) *Sources {
	return &Sources{numbers: numbers, byURI: make(map[string]SourceKey)}
}

// Insert registers value as the document rooted at root (its fragment, if
// any, is discarded - sources are always keyed by their root URI). Inserting
// the same (uri, value) pair twice is a no-op, matching spec.md §8's
// idempotence invariant; inserting a different value under an already-used
// URI is ErrSourceConflict.
func (s *Sources) Insert(root uri.Absolute, value Value) (SourceKey, error) {
	root = root.RootURI()
	key := root.String()
	if existing, ok := s.byURI[key]; ok {
		if !s.docs[existing].value.Equal(value, s.numbers) {
			return 0, fmt.Errorf("%w: %s", ErrSourceConflict, key)
		}
		return existing, nil
	}
	sk := SourceKey(len(s.docs))
	s.docs = append(s.docs, sourceDoc{root: root, value: value})
	s.byURI[key] = sk
	return sk, nil
}

// Lookup returns the source key already registered for root, if any.
func (s *Sources) Lookup(root uri.Absolute) (SourceKey, bool) {
	k, ok := s.byURI[root.RootURI().String()]
	return k, ok
}

// Get returns the root URI and document value for key.
func (s *Sources) Get(key SourceKey) (uri.Absolute, Value, error) {
	if int(key) >= len(s.docs) {
		return uri.Absolute{}, Value{}, fmt.Errorf("%w: key %d", ErrSourceNotFound, key)
	}
	d := s.docs[key]
	return d.root, d.value, nil
}

// Link is the triple (source-key, absolute-uri, pointer) from spec.md §4.4:
// absoluteURI includes the fragment used to resolve this link; pointer is
// always a normalized JSON Pointer relative to the document root, even when
// absoluteURI's fragment is a plain-name anchor rather than a pointer
// fragment. Two links are equal iff all three fields match.
type Link struct {
	Source      SourceKey
	AbsoluteURI uri.Absolute
	Pointer     string
}

// Equal reports whether l and o identify the same sub-value.
func (l Link) Equal(o Link) bool {
	return l.Source == o.Source && l.Pointer == o.Pointer && l.AbsoluteURI.Equal(o.AbsoluteURI)
}

// RootURI strips the fragment from the link's absolute URI.
func (l Link) RootURI() uri.Absolute { return l.AbsoluteURI.RootURI() }

// Link resolves pointer inside the document stored under key and returns the
// Link describing that sub-value, addressed externally by absoluteURI.
func (s *Sources) Link(key SourceKey, absoluteURI uri.Absolute, pointer string) (Link, error) {
	_, root, err := s.Get(key)
	if err != nil {
		return Link{}, err
	}
	if _, err := ResolvePointer(root, pointer); err != nil {
		return Link{}, err
	}
	return Link{Source: key, AbsoluteURI: absoluteURI, Pointer: pointer}, nil
}

// Resolve returns the sub-value a Link identifies.
func (s *Sources) Resolve(l Link) (Value, error) {
	_, root, err := s.Get(l.Source)
	if err != nil {
		return Value{}, err
	}
	return ResolvePointer(root, l.Pointer)
}

// WalkFunc is called once per sub-value visited by Walk, in the order
// spec.md §4.4 requires: the root first, then object members in insertion
// order, then array elements by ascending index, recursively. Returning
// false stops the walk early, mirroring filepath.WalkDir's SkipAll-by-return
// idiom rather than introducing a channel or generator type.
type WalkFunc func(pointer string, v Value) bool

// Walk performs a lazy depth-first traversal of the document stored under
// key, starting from its root.
func (s *Sources) Walk(key SourceKey, fn WalkFunc) error {
	_, root, err := s.Get(key)
	if err != nil {
		return err
	}
	walkValue("", root, fn)
	return nil
}

func walkValue(pointer string, v Value, fn WalkFunc) bool {
	if !fn(pointer, v) {
		return false
	}
	switch v.Kind() {
	case KindObject:
		obj, _ := v.AsObject()
		cont := true
		obj.Each(func(k string, vv Value) bool {
			if !walkValue(joinPointer(pointer, k), vv, fn) {
				cont = false
				return false
			}
			return true
		})
		return cont
	case KindArray:
		arr, _ := v.AsArray()
		for i, e := range arr {
			if !walkValue(pointer+"/"+strconv.Itoa(i), e, fn) {
				return false
			}
		}
	}
	return true
}

// ResolvePointer navigates root per RFC 6901. pointer must be "" (root) or
// start with "/"; each reference token is unescaped ("~1" -> "/", "~0" ->
// "~") before lookup.
func ResolvePointer(root Value, pointer string) (Value, error) {
	if pointer == "" {
		return root, nil
	}
	if pointer[0] != '/' {
		return Value{}, fmt.Errorf("%w: pointer must start with '/': %s", ErrPointerNotFound, pointer)
	}
	cur := root
	for _, raw := range strings.Split(pointer[1:], "/") {
		tok := unescapePointerToken(raw)
		switch cur.Kind() {
		case KindObject:
			obj, _ := cur.AsObject()
			v, ok := obj.Get(tok)
			if !ok {
				return Value{}, fmt.Errorf("%w: %s", ErrPointerNotFound, pointer)
			}
			cur = v
		case KindArray:
			arr, _ := cur.AsArray()
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(arr) {
				return Value{}, fmt.Errorf("%w: %s", ErrPointerNotFound, pointer)
			}
			cur = arr[idx]
		default:
			return Value{}, fmt.Errorf("%w: %s", ErrPointerNotFound, pointer)
		}
	}
	return cur, nil
}

func unescapePointerToken(tok string) string {
	if !strings.Contains(tok, "~") {
		return tok
	}
	r := strings.NewReplacer("~1", "/", "~0", "~")
	return r.Replace(tok)
}
