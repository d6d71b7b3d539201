package jsonschema

import (
	"math/big"
	"strings"
	"sync"
)

// NumberKey is an opaque handle into a NumberCache, returned by Insert and
// accepted by Rat, IsInt and Text. Keys never become invalid: the cache is additive for
// the lifetime of the Engine that owns it, per spec.md §4.2.
type NumberKey uint32

type numberEntry struct {
	text   string
	isInt  bool
	intVal *big.Int
	ratVal *big.Rat
}

// NumberCache is the process^H^H^H^Hengine-lifetime intern table for JSON
// numbers named C2 in spec.md §2: it parses a number's textual form into an
// exact big.Int (no fraction or exponent in the text) or big.Rat (reduced to
// lowest terms, denominator > 0) exactly once per distinct text, grounded on
// the teacher's rat.go (*big.Rat-backed Rat type with FormatRat trimming),
// generalized here into an append-only, keyed cache instead of a one-shot
// marshal helper.
type NumberCache struct {
	mu      sync.RWMutex
	byText  map[string]NumberKey
	entries []numberEntry
}

// NewNumberCache returns an empty cache.
func NewNumberCache() *NumberCache {
	return &NumberCache{byText: make(map[string]NumberKey)}
}

// Insert parses text (the exact bytes of a JSON number literal) and returns
// its key, reusing an existing entry if the same text was seen before.
func (c *NumberCache) Insert(text string) (NumberKey, error) {
	c.mu.RLock()
	if k, ok := c.byText[text]; ok {
		c.mu.RUnlock()
		return k, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if k, ok := c.byText[text]; ok {
		return k, nil
	}

	entry := numberEntry{text: text}
	hasFracOrExp := strings.ContainsAny(text, ".eE")
	if !hasFracOrExp {
		iv := new(big.Int)
		if _, ok := iv.SetString(text, 10); !ok {
			return 0, &CompileError{Kind: ErrKindNumber, Detail: "malformed integer literal: " + text}
		}
		entry.isInt = true
		entry.intVal = iv
		entry.ratVal = new(big.Rat).SetInt(iv)
	} else {
		rv := new(big.Rat)
		if _, ok := rv.SetString(text); !ok {
			return 0, &CompileError{Kind: ErrKindNumber, Detail: "malformed number literal: " + text}
		}
		entry.ratVal = rv
		if rv.IsInt() {
			entry.isInt = true
			entry.intVal = new(big.Int).Set(rv.Num())
		}
	}

	key := NumberKey(len(c.entries))
	c.entries = append(c.entries, entry)
	c.byText[text] = key
	return key, nil
}

// Rat returns the shared rational value for key.
func (c *NumberCache) Rat(key NumberKey) *big.Rat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key].ratVal
}

// IsInt reports whether key's value is an integer: true for text with no
// fraction or exponent, and also for integral values written with one (1.0,
// 1e2).
func (c *NumberCache) IsInt(key NumberKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key].isInt
}

// Text returns the original textual form key was interned under.
func (c *NumberCache) Text(key NumberKey) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key].text
}

// Float64 is a convenience conversion used only where an approximate value
// is acceptable (e.g. surfacing a number to a pluggable format validator
// that expects a Go float64); numeric keyword comparisons never use it.
func (c *NumberCache) Float64(key NumberKey) float64 {
	r := c.Rat(key)
	f, _ := r.Float64()
	return f
}

// MultipleOf reports whether a is an exact integer multiple of b using exact
// rational arithmetic, per spec.md §4.7 ("multipleOf tests p·den_a ≡ 0 (mod
// q·num_a)") and the invariant in spec.md §8.
func MultipleOf(a, b *big.Rat) bool {
	if b.Sign() == 0 {
		return false
	}
	quotient := new(big.Rat).Quo(a, b)
	return quotient.IsInt()
}

// boundState is the shared compiled state for minimum/maximum/
// exclusiveMinimum/exclusiveMaximum: all four compare the instance's cached
// rational against a single limit, differing only in the comparison and the
// message.
type boundState struct {
	limit *big.Rat
	text  string
}

func compileBound(cc *CompileContext, v Value, name string) (bool, any, error) {
	key, text, ok := v.AsNumber()
	if !ok {
		return false, nil, &CompileError{Kind: ErrKindInvalidType, Detail: name + " must be a number"}
	}
	return true, &boundState{limit: cc.Numbers().Rat(key), text: text}, nil
}

// FormatRat renders r the way the teacher's FormatRat did: a plain integer
// string when exact, otherwise a trimmed decimal.
func FormatRat(r *big.Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}
	dec := r.FloatString(17)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" || dec == "-" {
		return "0"
	}
	return dec
}
