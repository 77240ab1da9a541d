// ABOUTME: Version history data model
// ABOUTME: Immutable version records and snapshot pairing

package history

import (
	"time"

	"github.com/nainya/tokenvault/pkg/diff"
	"github.com/nainya/tokenvault/pkg/token"
)

// Version is the metadata record for one stored token-tree version. Records
// form a singly-linked history through Parent; a record is never mutated
// after creation except for appending tags.
type Version struct {
	Version     string        `json:"version" yaml:"version"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
	CreatedBy   string        `json:"createdBy,omitempty" yaml:"createdBy,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Breaking    bool          `json:"breaking,omitempty" yaml:"breaking,omitempty"`
	Tags        []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parent      string        `json:"parent,omitempty" yaml:"parent,omitempty"`
	Changes     []diff.Change `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// Snapshot pairs a version record with the full token tree at that version.
type Snapshot struct {
	Version *Version
	Tokens  token.Tree
}

// CreateInfo carries caller-supplied metadata for CreateVersion. Breaking
// forces a major bump regardless of the computed changes. A non-nil Changes
// list takes precedence over the automatic diff against the current head.
type CreateInfo struct {
	CreatedBy   string
	Description string
	Breaking    bool
	Tags        []string
	Changes     []diff.Change
}
