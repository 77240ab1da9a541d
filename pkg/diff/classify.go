// ABOUTME: Change classification for automatic version bumps
// ABOUTME: Breaking beats additive beats patch

package diff

import (
	"github.com/nainya/tokenvault/pkg/semver"
	"github.com/nainya/tokenvault/pkg/token"
)

// HasBreakingChanges reports whether any change can invalidate existing
// consumers: a removal, a type change, or a nested key dropped inside a
// modified mapping.
func HasBreakingChanges(changes []Change) bool {
	for _, c := range changes {
		switch c.Type {
		case ChangeRemove:
			return true
		case ChangeModify:
			if kindOf(c.OldValue) != kindOf(c.NewValue) {
				return true
			}
			oldSub, oldOK := token.AsTree(c.OldValue)
			newSub, newOK := token.AsTree(c.NewValue)
			if oldOK && newOK && droppedKey(oldSub, newSub) {
				return true
			}
		}
	}
	return false
}

// HasNewFeatures reports whether any change adds a token.
func HasNewFeatures(changes []Change) bool {
	for _, c := range changes {
		if c.Type == ChangeAdd {
			return true
		}
	}
	return false
}

// BumpFor selects the version increment a change list warrants.
// Breaking changes force major, additions minor, anything else patch.
func BumpFor(changes []Change) semver.Bump {
	switch {
	case HasBreakingChanges(changes):
		return semver.BumpMajor
	case HasNewFeatures(changes):
		return semver.BumpMinor
	}
	return semver.BumpPatch
}

func droppedKey(oldSub, newSub token.Tree) bool {
	for k := range oldSub {
		if _, ok := newSub[k]; !ok {
			return true
		}
	}
	return false
}
