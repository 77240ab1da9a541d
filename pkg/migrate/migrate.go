// ABOUTME: Migration data model and error taxonomy
// ABOUTME: Directional transforms bound to (fromVersion, toVersion) pairs

package migrate

import (
	"context"
	"errors"

	"github.com/nainya/tokenvault/pkg/token"
)

var (
	// ErrNoPath indicates no registered migration continues an explicit path.
	ErrNoPath = errors.New("migrate: no migration path")

	// ErrCircularPath indicates an explicit path request that loops.
	ErrCircularPath = errors.New("migrate: circular migration path")

	// ErrInvalidMigration indicates a migration that cannot be registered.
	ErrInvalidMigration = errors.New("migrate: invalid migration")
)

// Transform moves a token tree across one version boundary. Transforms run
// strictly sequentially within a migration; the context carries any
// caller-imposed cancellation or deadline.
type Transform func(ctx context.Context, tree token.Tree) (token.Tree, error)

// Migration is one directional step between two specific versions. Rollback
// is optional; migrations without one are skipped during downgrades.
// Immutable once registered.
type Migration struct {
	FromVersion string
	ToVersion   string
	Description string
	Breaking    bool
	Migrate     Transform
	Rollback    Transform
}

// Record is the metadata-only view of a migration, for export and
// introspection.
type Record struct {
	FromVersion string
	ToVersion   string
	Description string
	Breaking    bool
}
