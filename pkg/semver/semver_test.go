// ABOUTME: Tests for semantic version handling
// ABOUTME: Verifies parsing, ordering, increments and compatibility rules

package semver

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"0.0.0",
		"1.2.3",
		"10.20.30",
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-rc.1+build.42",
		"2.1.0+20260825",
	}

	for _, s := range cases {
		v, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if got := v.String(); got != s {
			t.Errorf("Round trip of %q produced %q", s, got)
		}
	}
}

func TestParseVPrefix(t *testing.T) {
	v, err := Parse("v1.2.3")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Major != 1 || v.Minor != 2 || v.Patch != 3 {
		t.Errorf("Expected 1.2.3, got %s", v)
	}
	if v.String() != "1.2.3" {
		t.Errorf("Canonical form should drop the v prefix, got %q", v.String())
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"01.2.3",
		"1.2.3-",
		"1.2.3+",
		"a.b.c",
		"1.2.x",
	}

	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Expected error for %q", s)
		} else if !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Expected ErrInvalidVersion for %q, got %v", s, err)
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	// Ascending sample set; every earlier entry must compare below every
	// later one, and equal to itself.
	ordered := []string{
		"0.1.0",
		"0.2.0",
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-alpha.beta",
		"1.0.0-beta.2",
		"1.0.0-beta.11",
		"1.0.0-rc.1",
		"1.0.0",
		"1.0.1",
		"1.1.0",
		"2.0.0",
	}

	for i, a := range ordered {
		va := MustParse(a)
		if va.Compare(va) != 0 {
			t.Errorf("Compare(%s, %s) != 0", a, a)
		}
		for _, b := range ordered[i+1:] {
			vb := MustParse(b)
			if va.Compare(vb) >= 0 {
				t.Errorf("Expected %s < %s", a, b)
			}
			if vb.Compare(va) <= 0 {
				t.Errorf("Expected %s > %s", b, a)
			}
		}
	}
}

func TestCompareIgnoresBuild(t *testing.T) {
	a := MustParse("1.2.3+build.1")
	b := MustParse("1.2.3+build.2")
	if a.Compare(b) != 0 {
		t.Errorf("Build metadata must not participate in ordering")
	}
}

func TestIncrement(t *testing.T) {
	base := MustParse("1.2.3")

	if got := base.Increment(BumpPatch).String(); got != "1.2.4" {
		t.Errorf("patch bump: expected 1.2.4, got %s", got)
	}
	if got := base.Increment(BumpMinor).String(); got != "1.3.0" {
		t.Errorf("minor bump: expected 1.3.0, got %s", got)
	}
	if got := base.Increment(BumpMajor).String(); got != "2.0.0" {
		t.Errorf("major bump: expected 2.0.0, got %s", got)
	}

	// Receiver stays untouched
	if base.String() != "1.2.3" {
		t.Errorf("Increment mutated the receiver: %s", base)
	}
}

func TestIncrementClearsPrereleaseAndBuild(t *testing.T) {
	pre := MustParse("1.2.3-rc.1+build.9")
	for _, kind := range []Bump{BumpMajor, BumpMinor, BumpPatch} {
		next := pre.Increment(kind)
		if next.Prerelease != "" || next.Build != "" {
			t.Errorf("%s bump kept prerelease/build: %s", kind, next)
		}
	}
}

func TestIsCompatible(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"1.2.0", "1.9.0", true},
		{"1.2.0", "2.0.0", false},
		{"0.1.0", "0.1.5", true},
		{"0.1.0", "0.2.0", false},
		{"2.0.0", "2.0.0", true},
	}

	for _, c := range cases {
		va := MustParse(c.a)
		vb := MustParse(c.b)
		if got := va.IsCompatible(vb); got != c.want {
			t.Errorf("IsCompatible(%s, %s) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestCompareStrings(t *testing.T) {
	got, err := Compare("1.0.0", "1.0.1")
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if got >= 0 {
		t.Errorf("Expected 1.0.0 < 1.0.1, got %d", got)
	}

	if _, err := Compare("nope", "1.0.0"); err == nil {
		t.Error("Expected error for invalid version string")
	}
}
