// ABOUTME: Structural differ for token trees
// ABOUTME: Produces ordered add/remove/modify change records by recursive walk

package diff

import (
	"sort"

	"github.com/nainya/tokenvault/pkg/token"
)

// ChangeType identifies what kind of edit a Change records.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeRemove ChangeType = "remove"
	ChangeModify ChangeType = "modify"
	ChangeRename ChangeType = "rename"
)

// Change is one atomic difference at a specific path in a token tree.
type Change struct {
	Type     ChangeType `json:"type" yaml:"type"`
	Path     string     `json:"path" yaml:"path"`
	OldValue any        `json:"oldValue,omitempty" yaml:"oldValue,omitempty"`
	NewValue any        `json:"newValue,omitempty" yaml:"newValue,omitempty"`
	Reason   string     `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Diff compares two token trees and returns the ordered list of changes that
// turn oldTree into newTree. Keys are visited in sorted order at every level
// so output is deterministic. A nil oldTree (first version ever) yields a
// single synthetic add of the whole tree.
func Diff(oldTree, newTree token.Tree) []Change {
	if oldTree == nil {
		return []Change{{
			Type:     ChangeAdd,
			Path:     "",
			NewValue: newTree,
			Reason:   "Initial version",
		}}
	}
	return walk(oldTree, newTree, "")
}

func walk(oldTree, newTree token.Tree, prefix string) []Change {
	var changes []Change

	for _, key := range unionKeys(oldTree, newTree) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		oldVal, inOld := oldTree[key]
		newVal, inNew := newTree[key]

		switch {
		case !inOld:
			changes = append(changes, Change{Type: ChangeAdd, Path: path, NewValue: newVal})
		case !inNew:
			changes = append(changes, Change{Type: ChangeRemove, Path: path, OldValue: oldVal})
		default:
			oldSub, oldIsTree := token.AsTree(oldVal)
			newSub, newIsTree := token.AsTree(newVal)
			switch {
			case oldIsTree && newIsTree:
				changes = append(changes, walk(oldSub, newSub, path)...)
			case oldIsTree != newIsTree || kindOf(oldVal) != kindOf(newVal):
				// Type change, treated as potentially breaking.
				changes = append(changes, Change{Type: ChangeModify, Path: path, OldValue: oldVal, NewValue: newVal})
			case !token.Equal(oldVal, newVal):
				changes = append(changes, Change{Type: ChangeModify, Path: path, OldValue: oldVal, NewValue: newVal})
			}
		}
	}
	return changes
}

func unionKeys(a, b token.Tree) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// kindOf buckets a value into its token variant, mirroring the loose typing
// of tree data decoded from JSON/YAML.
func kindOf(v any) string {
	if v == nil {
		return "nil"
	}
	if _, ok := token.AsTree(v); ok {
		return "mapping"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return "number"
	case []any:
		return "list"
	}
	return "other"
}
