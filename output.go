package jsonschema

// Node is one evaluation result, the unit spec.md §4.7/§4.8 builds the
// output tree from. Every keyword's Evaluate returns at most one Node;
// aggregating keywords (allOf, properties, ...) nest their children's nodes
// underneath their own.
type Node struct {
	Keyword                 string `json:"keyword"`
	KeywordLocation         string `json:"keywordLocation"`
	AbsoluteKeywordLocation string `json:"absoluteKeywordLocation"`
	InstanceLocation        string `json:"instanceLocation"`

	Valid      bool             `json:"valid"`
	Error      *EvaluationError `json:"error,omitempty"`
	Annotation any              `json:"annotation,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// leaf builds a childless Node at ctx's current location.
func leaf(ctx *Context, keyword string, valid bool) *Node {
	return &Node{
		Keyword:                 keyword,
		KeywordLocation:         ctx.KeywordLocation(),
		AbsoluteKeywordLocation: ctx.AbsoluteKeywordLocation().String(),
		InstanceLocation:        ctx.InstanceLocation(),
		Valid:                   valid,
	}
}

// fail builds an invalid leaf Node carrying err.
func fail(ctx *Context, keyword string, err *EvaluationError) *Node {
	n := leaf(ctx, keyword, false)
	n.Error = err
	return n
}

// annotated builds a valid leaf Node carrying ann as its annotation.
func annotated(ctx *Context, keyword string, ann any) *Node {
	n := leaf(ctx, keyword, true)
	n.Annotation = ann
	return n
}

// allValid is the conjunction aggregation rule most composite keywords use:
// valid iff every non-nil child is valid.
func allValid(children []*Node) bool {
	for _, c := range children {
		if c != nil && !c.Valid {
			return false
		}
	}
	return true
}

// countValid reports how many of children are valid, skipping nils.
func countValid(children []*Node) int {
	n := 0
	for _, c := range children {
		if c != nil && c.Valid {
			n++
		}
	}
	return n
}

// Output is the rendered result of one top-level evaluation, shaped
// according to the OutputFormat requested.
type Output struct {
	Valid       bool               `json:"valid"`
	Errors      []*EvaluationError `json:"errors,omitempty"`
	Annotations []any              `json:"annotations,omitempty"`
	Node        *Node              `json:"-"`
}

// buildOutput renders root into the shape requested by format. Flag keeps
// only the boolean; Basic flattens to the leaf nodes whose validity matches
// the overall result; Detailed collapses single-child chains; Verbose keeps
// the tree as evaluated.
func buildOutput(root *Node, format OutputFormat) *Output {
	out := &Output{Valid: root.Valid}
	switch format {
	case Flag:
		return out
	case Basic:
		collectLeaves(root, !root.Valid, out)
		return out
	case Detailed:
		out.Node = collapseSingleChild(root)
		return out
	default: // Verbose
		out.Node = root
		return out
	}
}

// collectLeaves walks n for the leaves matching wantInvalid, collecting
// their Error when invalid and their Annotation when valid - spec.md §4.8's
// Basic format is "a flat list of leaf nodes whose valid matches the
// result: errors when invalid, annotations when valid".
func collectLeaves(n *Node, wantInvalid bool, out *Output) {
	if len(n.Children) == 0 {
		if n.Valid == !wantInvalid {
			if n.Error != nil {
				out.Errors = append(out.Errors, n.Error)
			} else if n.Annotation != nil {
				out.Annotations = append(out.Annotations, n.Annotation)
			}
		}
		return
	}
	for _, c := range n.Children {
		if c != nil {
			collectLeaves(c, wantInvalid, out)
		}
	}
}

// collapseSingleChild recursively replaces any node with exactly one child
// by that child, per spec.md §4.8's Detailed definition.
func collapseSingleChild(n *Node) *Node {
	if n == nil {
		return nil
	}
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			children = append(children, collapseSingleChild(c))
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	cp := *n
	cp.Children = children
	return &cp
}
