package jsonschema

import (
	"strconv"
	"strings"
)

// memberPointer builds the relative pointer path "name/key" for an
// object-of-subschemas keyword (properties, patternProperties,
// dependentSchemas, ...), escaping key per RFC 6901.
func memberPointer(name, key string) string {
	return name + "/" + escapePointerToken(key)
}

// objectPointers implements the common Subschemas() case: every member of
// the object stored under name is a child schema.
func objectPointers(v Value, name string) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	member, present := obj.Get(name)
	if !present {
		return nil, nil
	}
	inner, ok := member.AsObject()
	if !ok {
		return nil, &CompileError{Kind: ErrKindInvalidType, Detail: name + " must be an object"}
	}
	keys := inner.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = memberPointer(name, k)
	}
	return out, nil
}

// indexToken renders an array index as an instance-location token.
func indexToken(i int) string { return strconv.Itoa(i) }

// indexPointer builds the relative pointer path "name/i" used by both
// CompileContext.Subschema lookups and Node keyword locations for
// array-of-subschema keywords (allOf, anyOf, oneOf, prefixItems, ...).
func indexPointer(name string, i int) string {
	return name + "/" + strconv.Itoa(i)
}

// arrayPointers implements the common Subschemas() case: every element of
// the array stored under name is a child schema.
func arrayPointers(v Value, name string) ([]string, error) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, nil
	}
	member, present := obj.Get(name)
	if !present {
		return nil, nil
	}
	arr, ok := member.AsArray()
	if !ok {
		return nil, &CompileError{Kind: ErrKindInvalidType, Detail: name + " must be an array"}
	}
	out := make([]string, len(arr))
	for i := range arr {
		out[i] = indexPointer(name, i)
	}
	return out, nil
}

// nonNegativeInt parses a keyword value that must be a non-negative integer
// (minLength, maxLength, minItems, maxItems, minProperties, maxProperties,
// minContains, maxContains per spec.md §4.7) using the exact NumberCache
// rational rather than a lossy float conversion.
func nonNegativeInt(cc *CompileContext, v Value, name string) (int, error) {
	key, _, ok := v.AsNumber()
	if !ok || !cc.Numbers().IsInt(key) {
		return 0, &CompileError{Kind: ErrKindInvalidType, Detail: name + " must be a non-negative integer"}
	}
	r := cc.Numbers().Rat(key)
	if r.Sign() < 0 {
		return 0, &CompileError{Kind: ErrKindInvalidType, Detail: name + " must be a non-negative integer"}
	}
	return int(r.Num().Int64()), nil
}

// propAnnotation is the Node.Annotation payload produced by `properties`,
// `patternProperties`, `additionalProperties` and `unevaluatedProperties`:
// the set of instance
// property names the keyword applied a subschema to, collected regardless of
// validity per spec.md §4.1 ("Annotations ... propagate upward regardless of
// valid status").
type propAnnotation struct {
	names map[string]bool
}

// itemsAnnotation is the Node.Annotation payload produced by `prefixItems`,
// `items`, `contains` and `unevaluatedItems`: either a prefix count, "all
// indices", or an explicit (non-contiguous) index set as `contains` and
// `unevaluatedItems` produce.
type itemsAnnotation struct {
	count   int
	all     bool
	indices map[int]bool
}

// collectEvaluatedProperties walks nodes and their descendants for every
// propAnnotation, unioning the property names found. Only nodes at the same
// instance location as nodes themselves are visited; a node at a child
// instance location, and everything below it, is skipped.
func collectEvaluatedProperties(nodes []*Node) map[string]bool {
	out := make(map[string]bool)
	loc := ""
	for _, n := range nodes {
		if n != nil {
			loc = n.InstanceLocation
			break
		}
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.InstanceLocation != loc {
			return
		}
		if pa, ok := n.Annotation.(propAnnotation); ok {
			for k := range pa.names {
				out[k] = true
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

// collectEvaluatedItems walks nodes and their descendants for every
// itemsAnnotation, returning the maximum prefix count seen, whether any node
// claimed to have evaluated every index, and the union of any explicit
// index sets (contains). As in collectEvaluatedProperties, nodes at a child
// instance location are skipped together with everything below them.
func collectEvaluatedItems(nodes []*Node) (maxCount int, all bool, indices map[int]bool) {
	indices = make(map[int]bool)
	loc := ""
	for _, n := range nodes {
		if n != nil {
			loc = n.InstanceLocation
			break
		}
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.InstanceLocation != loc {
			return
		}
		if ia, ok := n.Annotation.(itemsAnnotation); ok {
			if ia.all {
				all = true
			}
			if ia.count > maxCount {
				maxCount = ia.count
			}
			for i := range ia.indices {
				indices[i] = true
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return maxCount, all, indices
}

// isEvaluatedIndex reports whether index i counts as evaluated given the
// aggregated item-annotation state.
func isEvaluatedIndex(i, maxCount int, all bool, indices map[int]bool) bool {
	if all || i < maxCount {
		return true
	}
	return indices[i]
}

// splitRef separates a URI reference into its base (pre-fragment) and
// fragment parts. The fragment does not include the leading "#".
func splitRef(ref string) (base string, fragment string) {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// isJSONPointer reports whether a fragment is a JSON Pointer (starts with
// "/") as opposed to a plain-name anchor.
func isJSONPointer(fragment string) bool {
	return strings.HasPrefix(fragment, "/")
}
