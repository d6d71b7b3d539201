package jsonschema

import "sync"

// ValueHandle is an opaque, shared-ownership reference to a Value retained
// by compiled-schema state (the contents of `enum`, `const`, a `pattern`
// string's source Value, ...). Two handles produced from textually
// identical JSON appearing in different documents are NOT required to
// compare equal — only structural Value.Equal is, per spec.md §4.3 ("the
// same textual value produced from two different documents may appear
// twice — this is acceptable because values are immutable").
type ValueHandle struct {
	id uint64
	v  *Value
}

// Value dereferences the handle.
func (h ValueHandle) Value() Value { return *h.v }

// Interner hands out shared-ownership ValueHandles, the C3 component named
// in spec.md §2/§4.3. It does not deduplicate by structural equality (the
// spec explicitly allows duplicate storage); it exists so that retained
// values have a single obvious owner (the Interner) instead of being copied
// into every compiled keyword that references them.
type Interner struct {
	mu   sync.Mutex
	next uint64
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner { return &Interner{} }

// Intern wraps v in a ValueHandle.
func (in *Interner) Intern(v Value) ValueHandle {
	in.mu.Lock()
	id := in.next
	in.next++
	in.mu.Unlock()
	vv := v
	return ValueHandle{id: id, v: &vv}
}
