// ABOUTME: Tests for change classification
// ABOUTME: Verifies breaking/additive detection and bump selection

package diff

import (
	"testing"

	"github.com/nainya/tokenvault/pkg/semver"
	"github.com/nainya/tokenvault/pkg/token"
)

func TestHasBreakingChangesOnRemove(t *testing.T) {
	changes := []Change{{Type: ChangeRemove, Path: "colors.danger", OldValue: "#f00"}}
	if !HasBreakingChanges(changes) {
		t.Error("Removal should be breaking")
	}
}

func TestHasBreakingChangesOnTypeChange(t *testing.T) {
	changes := []Change{{Type: ChangeModify, Path: "spacing.sm", OldValue: 4, NewValue: "4px"}}
	if !HasBreakingChanges(changes) {
		t.Error("Type change should be breaking")
	}
}

func TestHasBreakingChangesOnDroppedNestedKey(t *testing.T) {
	// Caller-supplied modify of two mappings where an old key vanished
	changes := []Change{{
		Type:     ChangeModify,
		Path:     "colors",
		OldValue: token.Tree{"primary": "#000", "danger": "#f00"},
		NewValue: token.Tree{"primary": "#000"},
	}}
	if !HasBreakingChanges(changes) {
		t.Error("Dropped nested key should be breaking")
	}

	// Same shape with no dropped key is not breaking
	changes[0].NewValue = token.Tree{"primary": "#111", "danger": "#f00"}
	if HasBreakingChanges(changes) {
		t.Error("Value-only mapping modify should not be breaking")
	}
}

func TestHasNewFeatures(t *testing.T) {
	if HasNewFeatures([]Change{{Type: ChangeModify, Path: "x"}}) {
		t.Error("Modify is not a feature")
	}
	if !HasNewFeatures([]Change{{Type: ChangeAdd, Path: "colors.secondary"}}) {
		t.Error("Add is a feature")
	}
}

func TestBumpForPrecedence(t *testing.T) {
	breaking := []Change{
		{Type: ChangeAdd, Path: "a"},
		{Type: ChangeRemove, Path: "b"},
	}
	if got := BumpFor(breaking); got != semver.BumpMajor {
		t.Errorf("Breaking should win over additive, got %s", got)
	}

	additive := []Change{
		{Type: ChangeAdd, Path: "a"},
		{Type: ChangeModify, Path: "c", OldValue: "#000", NewValue: "#111"},
	}
	if got := BumpFor(additive); got != semver.BumpMinor {
		t.Errorf("Additive should select minor, got %s", got)
	}

	patch := []Change{
		{Type: ChangeModify, Path: "c", OldValue: "#000", NewValue: "#111"},
	}
	if got := BumpFor(patch); got != semver.BumpPatch {
		t.Errorf("Value modify should select patch, got %s", got)
	}

	if got := BumpFor(nil); got != semver.BumpPatch {
		t.Errorf("Empty change list should default to patch, got %s", got)
	}
}

func TestDiffClassifyEndToEnd(t *testing.T) {
	oldTree := token.Tree{"colors": token.Tree{"primary": "#000"}}
	newTree := token.Tree{"colors": token.Tree{"primary": "#000", "secondary": "#fff"}}

	changes := Diff(oldTree, newTree)
	if HasBreakingChanges(changes) {
		t.Error("Adding a token is not breaking")
	}
	if !HasNewFeatures(changes) {
		t.Error("Adding a token is a feature")
	}
	if got := BumpFor(changes); got != semver.BumpMinor {
		t.Errorf("Expected minor bump, got %s", got)
	}

	// Removing a nested key flips the classification to major
	changes = Diff(newTree, oldTree)
	if !HasBreakingChanges(changes) {
		t.Error("Removing a token is breaking")
	}
	if got := BumpFor(changes); got != semver.BumpMajor {
		t.Errorf("Expected major bump, got %s", got)
	}
}
