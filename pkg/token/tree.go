// ABOUTME: Token tree data model
// ABOUTME: Recursive string-keyed mapping of design values with deep clone/equal

package token

// Tree is a nested mapping of design-token names to values. Values are either
// primitives (string, bool, numbers) or nested mappings. The engine imposes no
// schema beyond this shape.
type Tree map[string]any

// AsTree reports whether v is a nested mapping and returns it as a Tree.
// Both Tree and plain map[string]any are accepted, so trees decoded from
// JSON/YAML work unchanged.
func AsTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	}
	return nil, false
}

// Clone returns a deep copy of t. Nested mappings are copied recursively;
// primitive values are copied by assignment.
func Clone(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a single token value.
func CloneValue(v any) any {
	if sub, ok := AsTree(v); ok {
		return Clone(sub)
	}
	if arr, ok := v.([]any); ok {
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = CloneValue(e)
		}
		return out
	}
	return v
}

// Equal reports deep equality of two token values. Tree and map[string]any
// compare as the same variant.
func Equal(a, b any) bool {
	at, aok := AsTree(a)
	bt, bok := AsTree(b)
	if aok != bok {
		return false
	}
	if aok {
		if len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	aa, aok := a.([]any)
	ba, bok := b.([]any)
	if aok != bok {
		return false
	}
	if aok {
		if len(aa) != len(ba) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], ba[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}
