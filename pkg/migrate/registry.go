// ABOUTME: Migration registry and sequential runner
// ABOUTME: Ordered forward/backward pipelines over registered version ranges

package migrate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nainya/tokenvault/internal/logger"
	"github.com/nainya/tokenvault/internal/metrics"
	"github.com/nainya/tokenvault/pkg/semver"
	"github.com/nainya/tokenvault/pkg/token"
)

// Config holds registry configuration
type Config struct {
	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Registry is an append-only, automatically re-sorted set of migrations,
// independent of any version store. Registry and store collaborate only
// through explicit version-string arguments.
type Registry struct {
	mu         sync.RWMutex
	migrations []Migration

	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewRegistry creates a migration registry
func NewRegistry(cfg Config) *Registry {
	log := cfg.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Registry{
		log:     log,
		metrics: cfg.Metrics,
	}
}

// Add registers a migration and re-sorts the registry ascending by
// fromVersion. Duplicate (fromVersion, toVersion) pairs are permitted;
// behavior with overlapping ranges follows registry order.
func (r *Registry) Add(m Migration) error {
	if _, err := semver.Parse(m.FromVersion); err != nil {
		return fmt.Errorf("%w: fromVersion: %v", ErrInvalidMigration, err)
	}
	if _, err := semver.Parse(m.ToVersion); err != nil {
		return fmt.Errorf("%w: toVersion: %v", ErrInvalidMigration, err)
	}
	if m.Migrate == nil {
		return fmt.Errorf("%w: missing migrate transform %s -> %s", ErrInvalidMigration, m.FromVersion, m.ToVersion)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.migrations = append(r.migrations, m)
	sort.SliceStable(r.migrations, func(i, j int) bool {
		vi := semver.MustParse(r.migrations[i].FromVersion)
		vj := semver.MustParse(r.migrations[j].FromVersion)
		return vi.Compare(vj) < 0
	})

	r.log.Debug("Migration registered").
		Str("from_version", m.FromVersion).
		Str("to_version", m.ToVersion).
		Bool("breaking", m.Breaking).
		Send()
	return nil
}

// Len returns the number of registered migrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.migrations)
}

// Records returns the metadata of all registered migrations in registry
// order.
func (r *Registry) Records() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]Record, len(r.migrations))
	for i, m := range r.migrations {
		records[i] = Record{
			FromVersion: m.FromVersion,
			ToVersion:   m.ToVersion,
			Description: m.Description,
			Breaking:    m.Breaking,
		}
	}
	return records
}

// Migrate transports tree from fromVersion to toVersion by applying every
// registered migration whose range falls inside the requested window.
// Upgrades apply Migrate transforms in ascending registry order; downgrades
// apply Rollback transforms in reverse order, skipping migrations without
// one. Equal versions return the input unchanged. A failing transform aborts
// the run: the tree produced by the last successful step is returned together
// with the error, and completed steps are not rolled back.
func (r *Registry) Migrate(ctx context.Context, tree token.Tree, fromVersion, toVersion string) (token.Tree, error) {
	from, err := semver.Parse(fromVersion)
	if err != nil {
		return tree, fmt.Errorf("from version: %w", err)
	}
	to, err := semver.Parse(toVersion)
	if err != nil {
		return tree, fmt.Errorf("to version: %w", err)
	}

	cmp := from.Compare(to)
	if cmp == 0 {
		return tree, nil
	}

	r.mu.RLock()
	migrations := make([]Migration, len(r.migrations))
	copy(migrations, r.migrations)
	r.mu.RUnlock()

	runLog := r.log.MigrationLogger(fromVersion, toVersion)
	if cmp < 0 {
		return r.upgrade(ctx, runLog, migrations, tree, from, to)
	}
	return r.downgrade(ctx, runLog, migrations, tree, from, to)
}

func (r *Registry) upgrade(ctx context.Context, runLog *logger.Logger, migrations []Migration, tree token.Tree, from, to semver.Version) (token.Tree, error) {
	cursor := from
	for _, m := range migrations {
		mf := semver.MustParse(m.FromVersion)
		mt := semver.MustParse(m.ToVersion)
		if mf.Compare(cursor) < 0 || mt.Compare(to) > 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return tree, err
		}

		start := time.Now()
		next, err := m.Migrate(ctx, tree)
		if err != nil {
			return tree, err
		}
		tree = next
		cursor = mt

		r.metrics.RecordMigrationStep("upgrade", time.Since(start))
		runLog.LogMigrationStep(m.FromVersion, m.ToVersion, false, time.Since(start))
	}
	return tree, nil
}

func (r *Registry) downgrade(ctx context.Context, runLog *logger.Logger, migrations []Migration, tree token.Tree, from, to semver.Version) (token.Tree, error) {
	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		if m.Rollback == nil {
			continue
		}
		mf := semver.MustParse(m.FromVersion)
		mt := semver.MustParse(m.ToVersion)
		// Window is [to, from]: only migrations fully inside it roll back.
		if mt.Compare(from) > 0 || mf.Compare(to) < 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return tree, err
		}

		start := time.Now()
		next, err := m.Rollback(ctx, tree)
		if err != nil {
			return tree, err
		}
		tree = next

		r.metrics.RecordMigrationStep("rollback", time.Since(start))
		runLog.LogMigrationStep(m.ToVersion, m.FromVersion, true, time.Since(start))
	}
	return tree, nil
}

// Path resolves the explicit migration chain from fromVersion to toVersion by
// repeatedly taking the first migration starting at the cursor. Fails with
// ErrNoPath when the chain dead-ends and ErrCircularPath when it loops.
func (r *Registry) Path(fromVersion, toVersion string) ([]Migration, error) {
	from, err := semver.Parse(fromVersion)
	if err != nil {
		return nil, fmt.Errorf("from version: %w", err)
	}
	to, err := semver.Parse(toVersion)
	if err != nil {
		return nil, fmt.Errorf("to version: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var path []Migration
	cursor := from
	for cursor.Compare(to) != 0 {
		next, ok := r.migrationFrom(cursor)
		if !ok {
			return nil, fmt.Errorf("%w: no migration from %s", ErrNoPath, cursor)
		}
		path = append(path, next)
		cursor = semver.MustParse(next.ToVersion)

		if len(path) > len(r.migrations) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrCircularPath, fromVersion, toVersion)
		}
	}
	return path, nil
}

func (r *Registry) migrationFrom(cursor semver.Version) (Migration, bool) {
	for _, m := range r.migrations {
		if semver.MustParse(m.FromVersion).Compare(cursor) == 0 {
			return m, true
		}
	}
	return Migration{}, false
}
